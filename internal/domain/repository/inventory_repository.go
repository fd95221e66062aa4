package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Pritex32/priscomsales-api/internal/domain/entity"
	"github.com/Pritex32/priscomsales-api/pkg/pagination"
)

// InventoryItemRepository defines the interface for catalog item data operations
type InventoryItemRepository interface {
	Create(ctx context.Context, item *entity.InventoryItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.InventoryItem, error)
	GetByName(ctx context.Context, userID uuid.UUID, name string) (*entity.InventoryItem, error)
	Update(ctx context.Context, item *entity.InventoryItem) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID, params *InventoryFilterParams) ([]entity.InventoryItem, int64, error)
	ListAll(ctx context.Context, userID uuid.UUID) ([]entity.InventoryItem, error)
}

// InventoryFilterParams contains filtering parameters for catalog queries
type InventoryFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Warehouse  string
	SortBy     string
	SortOrder  string
}

// InventoryLogRepository defines the interface for the stock movement ledger
type InventoryLogRepository interface {
	Create(ctx context.Context, log *entity.InventoryLog) error
	GetByItemAndDate(ctx context.Context, itemID uuid.UUID, date time.Time) (*entity.InventoryLog, error)
	GetLatestBefore(ctx context.Context, itemID uuid.UUID, date time.Time) (*entity.InventoryLog, error)
	Update(ctx context.Context, log *entity.InventoryLog) error
	ListByItem(ctx context.Context, itemID uuid.UUID, params *pagination.PaginationParams) ([]entity.InventoryLog, int64, error)
}
