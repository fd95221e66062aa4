package pricing

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CatalogEntry is the minimal item record validation needs.
type CatalogEntry struct {
	ItemID   uuid.UUID
	ItemName string
}

// Catalog maps item names to their catalog records for draft validation.
type Catalog map[string]CatalogEntry

// ValidationError reports the first rule violated by a draft line item.
// Position is 1-based so the message reads naturally to the person fixing
// their cart.
type ValidationError struct {
	Position int
	ItemName string
	Reason   string
}

func (e *ValidationError) Error() string {
	if e.ItemName != "" {
		return fmt.Sprintf("item %d (%s): %s", e.Position, e.ItemName, e.Reason)
	}
	return fmt.Sprintf("item %d: %s", e.Position, e.Reason)
}

// ValidateItems checks every draft line against the catalog and returns the
// first violation found, or nil when all lines are sellable.
func ValidateItems(items []LineItem, catalog Catalog) error {
	for i, item := range items {
		pos := i + 1
		entry, ok := catalog[item.ItemName]
		if !ok {
			return &ValidationError{Position: pos, ItemName: item.ItemName, Reason: "item is not in the catalog"}
		}
		if item.ItemID == uuid.Nil || item.ItemID != entry.ItemID {
			return &ValidationError{Position: pos, ItemName: item.ItemName, Reason: "item id does not match the catalog record"}
		}
		if item.Quantity <= 0 {
			return &ValidationError{Position: pos, ItemName: item.ItemName, Reason: "quantity must be greater than zero"}
		}
		if !item.UnitPrice.GreaterThan(decimal.Zero) {
			return &ValidationError{Position: pos, ItemName: item.ItemName, Reason: "unit price must be greater than zero"}
		}
	}
	return nil
}
