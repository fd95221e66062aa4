package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/Pritex32/priscomsales-api/internal/application/service"
	"github.com/Pritex32/priscomsales-api/internal/presentation/http/dto/response"
)

// ReportHandler handles analytics and reporting HTTP requests
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// SalesTrend returns the daily sales series for a window with its trend analysis
func (h *ReportHandler) SalesTrend(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	from, to, ok := h.window(c)
	if !ok {
		return
	}

	report, err := h.reportService.SalesTrend(c.Request.Context(), *userID, from, to)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sales trend retrieved successfully", report)
}

// Dashboard returns the summary statistics for a window
func (h *ReportHandler) Dashboard(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	from, to, ok := h.window(c)
	if !ok {
		return
	}

	stats, err := h.reportService.Dashboard(c.Request.Context(), *userID, from, to)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Dashboard retrieved successfully", stats)
}

// window reads the start_date and end_date query parameters, defaulting to
// the last 30 days when absent.
func (h *ReportHandler) window(c *gin.Context) (time.Time, time.Time, bool) {
	now := time.Now().UTC().Truncate(24 * time.Hour)
	from := now.AddDate(0, 0, -30)
	to := now

	if value := c.Query("start_date"); value != "" {
		parsed, err := time.Parse("2006-01-02", value)
		if err != nil {
			response.BadRequest(c, "Invalid start_date, expected YYYY-MM-DD")
			return time.Time{}, time.Time{}, false
		}
		from = parsed
	}
	if value := c.Query("end_date"); value != "" {
		parsed, err := time.Parse("2006-01-02", value)
		if err != nil {
			response.BadRequest(c, "Invalid end_date, expected YYYY-MM-DD")
			return time.Time{}, time.Time{}, false
		}
		to = parsed
	}

	return from, to, true
}
