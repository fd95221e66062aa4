package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Pritex32/priscomsales-api/internal/domain/entity"
	"github.com/Pritex32/priscomsales-api/internal/domain/enum"
	"github.com/Pritex32/priscomsales-api/pkg/pagination"
)

// SaleRepository defines the interface for sale data operations
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error)
	GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Sale, error)
	GetBySourceProforma(ctx context.Context, proformaID uuid.UUID) (*entity.Sale, error)
	GetByInvoiceNumber(ctx context.Context, userID uuid.UUID, invoiceNumber string) ([]entity.Sale, error)
	Update(ctx context.Context, sale *entity.Sale) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID, params *SaleFilterParams) ([]entity.Sale, int64, error)
	ListPending(ctx context.Context, userID uuid.UUID) ([]entity.Sale, error)
}

// SaleFilterParams contains filtering parameters for sale queries
type SaleFilterParams struct {
	Pagination    *pagination.PaginationParams
	Search        string
	PaymentStatus *enum.PaymentStatus
	CustomerID    *uuid.UUID
	DateFrom      *time.Time
	DateTo        *time.Time
	SortBy        string
	SortOrder     string
}

// SaleItemRepository defines the interface for sale line item data operations
type SaleItemRepository interface {
	CreateBatch(ctx context.Context, items []entity.SaleItem) error
	GetBySaleID(ctx context.Context, saleID uuid.UUID) ([]entity.SaleItem, error)
	DeleteBySaleID(ctx context.Context, saleID uuid.UUID) error
}
