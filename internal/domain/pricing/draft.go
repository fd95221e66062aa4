package pricing

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Draft accumulates line items for an in-progress transaction. Adding an
// item that is already in the draft merges into the existing line instead of
// duplicating it.
type Draft struct {
	items []LineItem
}

// Add merges the quantity into an existing line with the same item name, or
// appends a new line. The unit price of an existing line is refreshed to the
// latest value supplied.
func (d *Draft) Add(itemID uuid.UUID, itemName string, quantity int, unitPrice decimal.Decimal) {
	for i := range d.items {
		if d.items[i].ItemName == itemName {
			d.items[i].Quantity += quantity
			d.items[i].UnitPrice = unitPrice
			return
		}
	}
	d.items = append(d.items, LineItem{
		ItemID:    itemID,
		ItemName:  itemName,
		Quantity:  quantity,
		UnitPrice: unitPrice,
	})
}

// Remove drops the line with the given item name, if present.
func (d *Draft) Remove(itemName string) {
	for i := range d.items {
		if d.items[i].ItemName == itemName {
			d.items = append(d.items[:i], d.items[i+1:]...)
			return
		}
	}
}

// Items returns a copy of the draft lines in insertion order.
func (d *Draft) Items() []LineItem {
	out := make([]LineItem, len(d.items))
	copy(out, d.items)
	return out
}

// Len reports the number of distinct lines in the draft.
func (d *Draft) Len() int { return len(d.items) }

// Clear empties the draft.
func (d *Draft) Clear() { d.items = nil }
