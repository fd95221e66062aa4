package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Pritex32/priscomsales-api/internal/domain/enum"
	domainRepo "github.com/Pritex32/priscomsales-api/internal/domain/repository"
)

type analyticsRepository struct {
	db *gorm.DB
}

// NewAnalyticsRepository creates a new analytics repository
func NewAnalyticsRepository(db *gorm.DB) domainRepo.AnalyticsRepository {
	return &analyticsRepository{db: db}
}

func (r *analyticsRepository) GetDailySales(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]domainRepo.DailySalesResult, error) {
	var results []domainRepo.DailySalesResult

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			sale_date as date,
			COALESCE(SUM(grand_total), 0) as total_sales
		FROM sales
		WHERE user_id = ?
			AND sale_date BETWEEN ? AND ?
			AND deleted_at IS NULL
		GROUP BY sale_date
		ORDER BY sale_date ASC
	`, userID, from, to).Scan(&results).Error

	if err != nil {
		return nil, err
	}

	return results, nil
}

func (r *analyticsRepository) GetTopItems(ctx context.Context, userID uuid.UUID, from, to time.Time, limit int) ([]domainRepo.TopItemResult, error) {
	var results []domainRepo.TopItemResult

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			si.item_id as item_id,
			si.item_name as item_name,
			COALESCE(SUM(si.quantity), 0) as quantity_sold,
			COALESCE(SUM(si.line_total), 0) as revenue
		FROM sale_items si
		JOIN sales s ON s.id = si.sale_id
		WHERE s.user_id = ?
			AND s.sale_date BETWEEN ? AND ?
			AND s.deleted_at IS NULL
		GROUP BY si.item_id, si.item_name
		ORDER BY revenue DESC
		LIMIT ?
	`, userID, from, to, limit).Scan(&results).Error

	if err != nil {
		return nil, err
	}

	return results, nil
}

func (r *analyticsRepository) GetOutstanding(ctx context.Context, userID uuid.UUID) ([]domainRepo.OutstandingResult, error) {
	var results []domainRepo.OutstandingResult

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			customer_name,
			COALESCE(SUM(grand_total - amount_paid), 0) as outstanding,
			COUNT(*) as sale_count
		FROM sales
		WHERE user_id = ?
			AND payment_status IN (?, ?)
			AND deleted_at IS NULL
		GROUP BY customer_name
		ORDER BY outstanding DESC
	`, userID, enum.PaymentStatusPartial, enum.PaymentStatusCredit).Scan(&results).Error

	if err != nil {
		return nil, err
	}

	return results, nil
}

func (r *analyticsRepository) GetTotalRevenue(ctx context.Context, userID uuid.UUID, from, to time.Time) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(grand_total), 0)
		FROM sales
		WHERE user_id = ?
			AND sale_date BETWEEN ? AND ?
			AND deleted_at IS NULL
	`, userID, from, to).Scan(&total).Error
	return total, err
}

func (r *analyticsRepository) CountPendingProformas(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Raw(`
		SELECT COUNT(*)
		FROM proformas
		WHERE user_id = ?
			AND status = ?
			AND deleted_at IS NULL
	`, userID, enum.ProformaStatusPending).Scan(&count).Error
	return count, err
}
