package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// DailySalesResult represents sales totals aggregated for a single day
type DailySalesResult struct {
	Date       time.Time `json:"date"`
	TotalSales float64   `json:"total_sales"`
}

// TopItemResult represents an item's sales performance
type TopItemResult struct {
	ItemID       uuid.UUID `json:"item_id"`
	ItemName     string    `json:"item_name"`
	QuantitySold int       `json:"quantity_sold"`
	Revenue      float64   `json:"revenue"`
}

// OutstandingResult represents receivables owed by one customer
type OutstandingResult struct {
	CustomerName string  `json:"customer_name"`
	Outstanding  float64 `json:"outstanding"`
	SaleCount    int     `json:"sale_count"`
}

// AnalyticsRepository defines interface for reporting aggregation queries
type AnalyticsRepository interface {
	// GetDailySales returns day-by-day sales totals within the window,
	// ordered by date ascending
	GetDailySales(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]DailySalesResult, error)

	// GetTopItems returns top selling items by revenue within the window
	GetTopItems(ctx context.Context, userID uuid.UUID, from, to time.Time, limit int) ([]TopItemResult, error)

	// GetOutstanding returns per-customer unpaid balances
	GetOutstanding(ctx context.Context, userID uuid.UUID) ([]OutstandingResult, error)

	// GetTotalRevenue returns the summed grand totals within the window
	GetTotalRevenue(ctx context.Context, userID uuid.UUID, from, to time.Time) (float64, error)

	// CountPendingProformas returns how many proformas await conversion
	CountPendingProformas(ctx context.Context, userID uuid.UUID) (int64, error)
}
