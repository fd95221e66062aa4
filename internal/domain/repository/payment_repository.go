package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Pritex32/priscomsales-api/internal/domain/entity"
	"github.com/Pritex32/priscomsales-api/pkg/pagination"
)

// PaymentRepository defines the interface for payment data operations
type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error)
	ListBySale(ctx context.Context, saleID uuid.UUID) ([]entity.Payment, error)
	SumBySale(ctx context.Context, saleID uuid.UUID) (float64, error)
	List(ctx context.Context, userID uuid.UUID, params *PaymentFilterParams) ([]entity.Payment, int64, error)
}

// PaymentFilterParams contains filtering parameters for payment queries
type PaymentFilterParams struct {
	Pagination *pagination.PaginationParams
	SaleID     *uuid.UUID
	DateFrom   *time.Time
	DateTo     *time.Time
}
