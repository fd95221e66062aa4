package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Pritex32/priscomsales-api/internal/domain/repository"
	"github.com/Pritex32/priscomsales-api/pkg/trend"
)

func day(d int) time.Time {
	return time.Date(2026, 8, d, 0, 0, 0, 0, time.UTC)
}

func series(totals ...float64) []repository.DailySalesResult {
	out := make([]repository.DailySalesResult, 0, len(totals))
	for i, total := range totals {
		out = append(out, repository.DailySalesResult{Date: day(i + 1), TotalSales: total})
	}
	return out
}

func TestSalesTrend(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("rejects a window ending before it starts", func(t *testing.T) {
		svc := NewReportService(&fakeAnalyticsRepo{})

		_, err := svc.SalesTrend(ctx, userID, day(10), day(1))
		assert.Error(t, err)
	})

	t.Run("reports insufficient data for a single day", func(t *testing.T) {
		svc := NewReportService(&fakeAnalyticsRepo{daily: series(500)})

		report, err := svc.SalesTrend(ctx, userID, day(1), day(1))
		require.NoError(t, err)
		assert.Equal(t, trend.InsufficientData, report.Analysis.Classification)
		assert.Contains(t, report.Narrative, "Not enough sales data")
	})

	t.Run("classifies sharply rising sales", func(t *testing.T) {
		svc := NewReportService(&fakeAnalyticsRepo{daily: series(0, 200, 400)})

		report, err := svc.SalesTrend(ctx, userID, day(1), day(3))
		require.NoError(t, err)
		assert.Equal(t, trend.SignificantIncrease, report.Analysis.Classification)
		assert.InDelta(t, 200, report.Analysis.Slope, 1)
		assert.Contains(t, report.Narrative, "rising sharply")
	})

	t.Run("classifies steady sales", func(t *testing.T) {
		svc := NewReportService(&fakeAnalyticsRepo{daily: series(500, 500, 500, 500)})

		report, err := svc.SalesTrend(ctx, userID, day(1), day(4))
		require.NoError(t, err)
		assert.Equal(t, trend.Stable, report.Analysis.Classification)
		assert.Contains(t, report.Narrative, "holding steady")
		assert.InDelta(t, 500, report.Analysis.Average, 1e-9)
	})

	t.Run("classifies sharply falling sales", func(t *testing.T) {
		svc := NewReportService(&fakeAnalyticsRepo{daily: series(400, 200, 0)})

		report, err := svc.SalesTrend(ctx, userID, day(1), day(3))
		require.NoError(t, err)
		assert.Equal(t, trend.SignificantDecrease, report.Analysis.Classification)
		assert.Contains(t, report.Narrative, "falling sharply")
	})

	t.Run("carries the series and window through", func(t *testing.T) {
		daily := series(100, 300)
		svc := NewReportService(&fakeAnalyticsRepo{daily: daily})

		report, err := svc.SalesTrend(ctx, userID, day(1), day(2))
		require.NoError(t, err)
		assert.Equal(t, day(1), report.From)
		assert.Equal(t, day(2), report.To)
		assert.Equal(t, daily, report.Series)
	})
}

func TestDashboard(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	svc := NewReportService(&fakeAnalyticsRepo{
		revenue: 125000,
		pending: 3,
		topItems: []repository.TopItemResult{
			{ItemName: "Cement", QuantitySold: 40, Revenue: 40000},
		},
		outstanding: []repository.OutstandingResult{
			{CustomerName: "Chidinma Stores", Outstanding: 1500, SaleCount: 2},
		},
	})

	stats, err := svc.Dashboard(ctx, userID, day(1), day(30))
	require.NoError(t, err)
	assert.Equal(t, 125000.0, stats.TotalRevenue)
	assert.Equal(t, int64(3), stats.PendingProformas)
	require.Len(t, stats.TopItems, 1)
	assert.Equal(t, "Cement", stats.TopItems[0].ItemName)
	require.Len(t, stats.Outstanding, 1)
	assert.Equal(t, 1500.0, stats.Outstanding[0].Outstanding)
}
