package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Pritex32/priscomsales-api/internal/domain/repository"
	"github.com/Pritex32/priscomsales-api/pkg/apperror"
	"github.com/Pritex32/priscomsales-api/pkg/trend"
)

// ReportService produces the sales trend analysis and dashboard figures
type ReportService struct {
	analyticsRepo repository.AnalyticsRepository
}

// NewReportService creates a new report service
func NewReportService(analyticsRepo repository.AnalyticsRepository) *ReportService {
	return &ReportService{analyticsRepo: analyticsRepo}
}

// TrendReport is the full trend analysis over a date window
type TrendReport struct {
	From      time.Time                     `json:"from"`
	To        time.Time                     `json:"to"`
	Series    []repository.DailySalesResult `json:"series"`
	Analysis  trend.Result                  `json:"analysis"`
	Narrative string                        `json:"narrative"`
}

// SalesTrend fits the day totals inside the window and classifies the
// direction of sales at the end of it.
func (s *ReportService) SalesTrend(ctx context.Context, userID uuid.UUID, from, to time.Time) (*TrendReport, error) {
	if to.Before(from) {
		return nil, apperror.NewBadRequestError("The end date must not be before the start date")
	}

	series, err := s.analyticsRepo.GetDailySales(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}

	points := make([]trend.Point, 0, len(series))
	for i, day := range series {
		points = append(points, trend.Point{
			X:     float64(i),
			Y:     day.TotalSales,
			Label: day.Date.Format("2006-01-02"),
		})
	}

	analysis := trend.Analyze(points)

	return &TrendReport{
		From:      from,
		To:        to,
		Series:    series,
		Analysis:  analysis,
		Narrative: narrative(analysis),
	}, nil
}

// narrative renders the classification as the sentence shown on the report
func narrative(r trend.Result) string {
	switch r.Classification {
	case trend.InsufficientData:
		return "Not enough sales data to determine a trend. Record sales on at least two days."
	case trend.SignificantIncrease:
		return fmt.Sprintf("Sales are rising sharply, gaining about %.0f per day. Average daily sales stand at %.2f.", r.Slope, r.Average)
	case trend.Increase:
		return fmt.Sprintf("Sales are trending upward at about %.0f per day. Average daily sales stand at %.2f.", r.Slope, r.Average)
	case trend.Stable:
		return fmt.Sprintf("Sales are holding steady. Average daily sales stand at %.2f.", r.Average)
	case trend.Decrease:
		return fmt.Sprintf("Sales are trending downward at about %.0f per day. Average daily sales stand at %.2f.", -r.Slope, r.Average)
	default:
		return fmt.Sprintf("Sales are falling sharply, losing about %.0f per day. Average daily sales stand at %.2f.", -r.Slope, r.Average)
	}
}

// DashboardStats is the summary block on the reports page
type DashboardStats struct {
	TotalRevenue     float64                        `json:"total_revenue"`
	PendingProformas int64                          `json:"pending_proformas"`
	TopItems         []repository.TopItemResult     `json:"top_items"`
	Outstanding      []repository.OutstandingResult `json:"outstanding"`
}

// Dashboard assembles the summary figures for the window
func (s *ReportService) Dashboard(ctx context.Context, userID uuid.UUID, from, to time.Time) (*DashboardStats, error) {
	revenue, err := s.analyticsRepo.GetTotalRevenue(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}

	pending, err := s.analyticsRepo.CountPendingProformas(ctx, userID)
	if err != nil {
		return nil, err
	}

	topItems, err := s.analyticsRepo.GetTopItems(ctx, userID, from, to, 5)
	if err != nil {
		return nil, err
	}

	outstanding, err := s.analyticsRepo.GetOutstanding(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &DashboardStats{
		TotalRevenue:     revenue,
		PendingProformas: pending,
		TopItems:         topItems,
		Outstanding:      outstanding,
	}, nil
}
