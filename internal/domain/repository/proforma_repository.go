package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/Pritex32/priscomsales-api/internal/domain/entity"
	"github.com/Pritex32/priscomsales-api/internal/domain/enum"
	"github.com/Pritex32/priscomsales-api/pkg/pagination"
)

// ProformaRepository defines the interface for proforma data operations
type ProformaRepository interface {
	Create(ctx context.Context, proforma *entity.Proforma) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Proforma, error)
	GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Proforma, error)
	GetByReference(ctx context.Context, reference string) (*entity.Proforma, error)
	Update(ctx context.Context, proforma *entity.Proforma) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID, params *ProformaFilterParams) ([]entity.Proforma, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enum.ProformaStatus) error
	GetNextReferenceNumber(ctx context.Context) (int, error)
}

// ProformaFilterParams contains filtering parameters for proforma queries
type ProformaFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Status     *enum.ProformaStatus
	CustomerID *uuid.UUID
	SortBy     string
	SortOrder  string
}

// ProformaItemRepository defines the interface for proforma line item data operations
type ProformaItemRepository interface {
	CreateBatch(ctx context.Context, items []entity.ProformaItem) error
	GetByProformaID(ctx context.Context, proformaID uuid.UUID) ([]entity.ProformaItem, error)
	Update(ctx context.Context, item *entity.ProformaItem) error
	DeleteByProformaID(ctx context.Context, proformaID uuid.UUID) error
}
