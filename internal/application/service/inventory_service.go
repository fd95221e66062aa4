package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Pritex32/priscomsales-api/internal/domain/entity"
	"github.com/Pritex32/priscomsales-api/internal/domain/pricing"
	"github.com/Pritex32/priscomsales-api/internal/domain/repository"
	"github.com/Pritex32/priscomsales-api/pkg/apperror"
	"github.com/Pritex32/priscomsales-api/pkg/pagination"
)

// InventoryService handles catalog items and the stock movement ledger
type InventoryService struct {
	itemRepo repository.InventoryItemRepository
	logRepo  repository.InventoryLogRepository
}

// NewInventoryService creates a new inventory service
func NewInventoryService(
	itemRepo repository.InventoryItemRepository,
	logRepo repository.InventoryLogRepository,
) *InventoryService {
	return &InventoryService{
		itemRepo: itemRepo,
		logRepo:  logRepo,
	}
}

// CreateItemInput represents the input for creating a catalog item
type CreateItemInput struct {
	UserID    uuid.UUID
	Name      string
	Price     float64
	Warehouse *string
}

// CreateItem adds a new item to the catalog
func (s *InventoryService) CreateItem(ctx context.Context, input *CreateItemInput) (*entity.InventoryItem, error) {
	if input.Name == "" {
		return nil, apperror.NewBadRequestError("Item name is required")
	}
	if input.Price <= 0 {
		return nil, apperror.NewBadRequestError("Item price must be greater than zero")
	}

	existing, err := s.itemRepo.GetByName(ctx, input.UserID, input.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("An item with this name already exists")
	}

	item := &entity.InventoryItem{
		UserID:    input.UserID,
		Name:      input.Name,
		Price:     input.Price,
		Warehouse: input.Warehouse,
	}

	if err := s.itemRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// GetItem retrieves a catalog item by ID
func (s *InventoryService) GetItem(ctx context.Context, id uuid.UUID) (*entity.InventoryItem, error) {
	item, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperror.NewNotFoundError("Item")
	}
	return item, nil
}

// UpdateItemInput represents the input for updating a catalog item
type UpdateItemInput struct {
	Name      *string
	Price     *float64
	Warehouse *string
}

// UpdateItem updates a catalog item
func (s *InventoryService) UpdateItem(ctx context.Context, id uuid.UUID, input *UpdateItemInput) (*entity.InventoryItem, error) {
	item, err := s.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil && *input.Name != "" {
		item.Name = *input.Name
	}
	if input.Price != nil {
		if *input.Price <= 0 {
			return nil, apperror.NewBadRequestError("Item price must be greater than zero")
		}
		item.Price = *input.Price
	}
	if input.Warehouse != nil {
		item.Warehouse = input.Warehouse
	}

	if err := s.itemRepo.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// DeleteItem removes a catalog item
func (s *InventoryService) DeleteItem(ctx context.Context, id uuid.UUID) error {
	item, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if item == nil {
		return apperror.NewNotFoundError("Item")
	}
	return s.itemRepo.Delete(ctx, id)
}

// ListItems returns a filtered page of catalog items
func (s *InventoryService) ListItems(ctx context.Context, userID uuid.UUID, params *repository.InventoryFilterParams) ([]entity.InventoryItem, int64, error) {
	return s.itemRepo.List(ctx, userID, params)
}

// LookupCatalog loads the user's full catalog keyed by item name, the shape
// item validation works against.
func (s *InventoryService) LookupCatalog(ctx context.Context, userID uuid.UUID) (pricing.Catalog, error) {
	items, err := s.itemRepo.ListAll(ctx, userID)
	if err != nil {
		return nil, err
	}

	catalog := make(pricing.Catalog, len(items))
	for _, item := range items {
		catalog[item.Name] = pricing.CatalogEntry{ItemID: item.ID, ItemName: item.Name}
	}
	return catalog, nil
}

// ListLogs returns the movement ledger for one item, newest first
func (s *InventoryService) ListLogs(ctx context.Context, itemID uuid.UUID, params *pagination.PaginationParams) ([]entity.InventoryLog, int64, error) {
	item, err := s.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, 0, err
	}
	if item == nil {
		return nil, 0, apperror.NewNotFoundError("Item")
	}
	return s.logRepo.ListByItem(ctx, itemID, params)
}

// RecordSupplyInput represents stock received or returned for an item
type RecordSupplyInput struct {
	UserID           uuid.UUID
	ItemID           uuid.UUID
	Date             time.Time
	SuppliedQuantity int
	ReturnQuantity   int
	EmployeeID       *uuid.UUID
}

// RecordSupply adds received or returned stock to the day's ledger row,
// creating the row if the day has no movement yet.
func (s *InventoryService) RecordSupply(ctx context.Context, input *RecordSupplyInput) (*entity.InventoryLog, error) {
	if input.SuppliedQuantity < 0 || input.ReturnQuantity < 0 {
		return nil, apperror.NewBadRequestError("Quantities cannot be negative")
	}
	if input.SuppliedQuantity == 0 && input.ReturnQuantity == 0 {
		return nil, apperror.NewBadRequestError("Nothing to record")
	}

	item, err := s.itemRepo.GetByID(ctx, input.ItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperror.NewNotFoundError("Item")
	}

	day := truncateToDay(input.Date)
	row, err := s.logRepo.GetByItemAndDate(ctx, input.ItemID, day)
	if err != nil {
		return nil, err
	}

	if row == nil {
		open, err := s.openingBalance(ctx, input.ItemID, day)
		if err != nil {
			return nil, err
		}
		row = &entity.InventoryLog{
			UserID:           input.UserID,
			ItemID:           input.ItemID,
			ItemName:         item.Name,
			LogDate:          day,
			OpenBalance:      open,
			SuppliedQuantity: input.SuppliedQuantity,
			ReturnQuantity:   input.ReturnQuantity,
			EmployeeID:       input.EmployeeID,
		}
		if err := s.logRepo.Create(ctx, row); err != nil {
			return nil, err
		}
		return row, nil
	}

	row.SuppliedQuantity += input.SuppliedQuantity
	row.ReturnQuantity += input.ReturnQuantity
	if err := s.logRepo.Update(ctx, row); err != nil {
		return nil, err
	}
	return row, nil
}

func (s *InventoryService) openingBalance(ctx context.Context, itemID uuid.UUID, day time.Time) (int, error) {
	prev, err := s.logRepo.GetLatestBefore(ctx, itemID, day)
	if err != nil {
		return 0, err
	}
	if prev == nil {
		return 0, nil
	}
	return prev.ClosingBalance(), nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
