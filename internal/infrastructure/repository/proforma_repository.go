package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Pritex32/priscomsales-api/internal/domain/entity"
	"github.com/Pritex32/priscomsales-api/internal/domain/enum"
	domainRepo "github.com/Pritex32/priscomsales-api/internal/domain/repository"
)

type proformaRepository struct {
	db *gorm.DB
}

// NewProformaRepository creates a new proforma repository
func NewProformaRepository(db *gorm.DB) domainRepo.ProformaRepository {
	return &proformaRepository{db: db}
}

func (r *proformaRepository) Create(ctx context.Context, proforma *entity.Proforma) error {
	return r.db.WithContext(ctx).Create(proforma).Error
}

func (r *proformaRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Proforma, error) {
	var proforma entity.Proforma
	err := r.db.WithContext(ctx).First(&proforma, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &proforma, err
}

func (r *proformaRepository) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Proforma, error) {
	var proforma entity.Proforma
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Items").
		First(&proforma, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &proforma, err
}

func (r *proformaRepository) GetByReference(ctx context.Context, reference string) (*entity.Proforma, error) {
	var proforma entity.Proforma
	err := r.db.WithContext(ctx).First(&proforma, "reference = ?", reference).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &proforma, err
}

func (r *proformaRepository) Update(ctx context.Context, proforma *entity.Proforma) error {
	return r.db.WithContext(ctx).Save(proforma).Error
}

func (r *proformaRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Proforma{}, "id = ?", id).Error
}

func (r *proformaRepository) List(ctx context.Context, userID uuid.UUID, params *domainRepo.ProformaFilterParams) ([]entity.Proforma, int64, error) {
	var proformas []entity.Proforma
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Proforma{})

	if userID != uuid.Nil {
		query = query.Where("user_id = ?", userID)
	}

	if params.Search != "" {
		query = query.Where("reference ILIKE ? OR customer_name ILIKE ?",
			"%"+params.Search+"%", "%"+params.Search+"%")
	}

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}

	if params.CustomerID != nil {
		query = query.Where("customer_id = ?", *params.CustomerID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// Sorting
	sortBy := "created_at"
	sortOrder := "DESC"
	if params.SortBy != "" {
		sortBy = params.SortBy
	}
	if params.SortOrder == "ASC" || params.SortOrder == "asc" {
		sortOrder = "ASC"
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Items").
		Order(sortBy + " " + sortOrder).
		Find(&proformas).Error

	return proformas, total, err
}

func (r *proformaRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.ProformaStatus) error {
	return r.db.WithContext(ctx).Model(&entity.Proforma{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *proformaRepository) GetNextReferenceNumber(ctx context.Context) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Proforma{}).Unscoped().Count(&count).Error
	return int(count) + 1, err
}

type proformaItemRepository struct {
	db *gorm.DB
}

// NewProformaItemRepository creates a new proforma item repository
func NewProformaItemRepository(db *gorm.DB) domainRepo.ProformaItemRepository {
	return &proformaItemRepository{db: db}
}

func (r *proformaItemRepository) CreateBatch(ctx context.Context, items []entity.ProformaItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&items).Error
}

func (r *proformaItemRepository) GetByProformaID(ctx context.Context, proformaID uuid.UUID) ([]entity.ProformaItem, error) {
	var items []entity.ProformaItem
	err := r.db.WithContext(ctx).Where("proforma_id = ?", proformaID).Find(&items).Error
	return items, err
}

func (r *proformaItemRepository) Update(ctx context.Context, item *entity.ProformaItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *proformaItemRepository) DeleteByProformaID(ctx context.Context, proformaID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.ProformaItem{}, "proforma_id = ?", proformaID).Error
}
