package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Pritex32/priscomsales-api/internal/domain/entity"
	domainRepo "github.com/Pritex32/priscomsales-api/internal/domain/repository"
	"github.com/Pritex32/priscomsales-api/pkg/pagination"
)

type inventoryItemRepository struct {
	db *gorm.DB
}

// NewInventoryItemRepository creates a new catalog item repository
func NewInventoryItemRepository(db *gorm.DB) domainRepo.InventoryItemRepository {
	return &inventoryItemRepository{db: db}
}

func (r *inventoryItemRepository) Create(ctx context.Context, item *entity.InventoryItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *inventoryItemRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.InventoryItem, error) {
	var item entity.InventoryItem
	err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &item, err
}

func (r *inventoryItemRepository) GetByName(ctx context.Context, userID uuid.UUID, name string) (*entity.InventoryItem, error) {
	var item entity.InventoryItem
	err := r.db.WithContext(ctx).First(&item, "user_id = ? AND name = ?", userID, name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &item, err
}

func (r *inventoryItemRepository) Update(ctx context.Context, item *entity.InventoryItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *inventoryItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.InventoryItem{}, "id = ?", id).Error
}

func (r *inventoryItemRepository) List(ctx context.Context, userID uuid.UUID, params *domainRepo.InventoryFilterParams) ([]entity.InventoryItem, int64, error) {
	var items []entity.InventoryItem
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.InventoryItem{})

	if userID != uuid.Nil {
		query = query.Where("user_id = ?", userID)
	}

	if params.Search != "" {
		query = query.Where("name ILIKE ?", "%"+params.Search+"%")
	}

	if params.Warehouse != "" {
		query = query.Where("warehouse = ?", params.Warehouse)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortBy := "name"
	sortOrder := "ASC"
	if params.SortBy != "" {
		sortBy = params.SortBy
	}
	if params.SortOrder == "DESC" || params.SortOrder == "desc" {
		sortOrder = "DESC"
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order(sortBy + " " + sortOrder).
		Find(&items).Error

	return items, total, err
}

func (r *inventoryItemRepository) ListAll(ctx context.Context, userID uuid.UUID) ([]entity.InventoryItem, error) {
	var items []entity.InventoryItem
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("name ASC").Find(&items).Error
	return items, err
}

type inventoryLogRepository struct {
	db *gorm.DB
}

// NewInventoryLogRepository creates a new stock movement ledger repository
func NewInventoryLogRepository(db *gorm.DB) domainRepo.InventoryLogRepository {
	return &inventoryLogRepository{db: db}
}

func (r *inventoryLogRepository) Create(ctx context.Context, log *entity.InventoryLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *inventoryLogRepository) GetByItemAndDate(ctx context.Context, itemID uuid.UUID, date time.Time) (*entity.InventoryLog, error) {
	var log entity.InventoryLog
	err := r.db.WithContext(ctx).
		First(&log, "item_id = ? AND log_date = ?", itemID, date).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &log, err
}

func (r *inventoryLogRepository) GetLatestBefore(ctx context.Context, itemID uuid.UUID, date time.Time) (*entity.InventoryLog, error) {
	var log entity.InventoryLog
	err := r.db.WithContext(ctx).
		Where("item_id = ? AND log_date < ?", itemID, date).
		Order("log_date DESC").
		First(&log).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &log, err
}

func (r *inventoryLogRepository) Update(ctx context.Context, log *entity.InventoryLog) error {
	return r.db.WithContext(ctx).Save(log).Error
}

func (r *inventoryLogRepository) ListByItem(ctx context.Context, itemID uuid.UUID, params *pagination.PaginationParams) ([]entity.InventoryLog, int64, error) {
	var logs []entity.InventoryLog
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.InventoryLog{}).Where("item_id = ?", itemID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("log_date DESC").
		Find(&logs).Error

	return logs, total, err
}
