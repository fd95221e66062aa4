package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/Pritex32/priscomsales-api/internal/application/service"
	"github.com/Pritex32/priscomsales-api/internal/domain/enum"
	domainRepo "github.com/Pritex32/priscomsales-api/internal/domain/repository"
	"github.com/Pritex32/priscomsales-api/internal/presentation/http/dto/response"
	"github.com/Pritex32/priscomsales-api/pkg/pagination"
)

// SaleHandler handles sale-related HTTP requests
type SaleHandler struct {
	saleService *service.SaleService
}

// NewSaleHandler creates a new sale handler
func NewSaleHandler(saleService *service.SaleService) *SaleHandler {
	return &SaleHandler{saleService: saleService}
}

type saleLineRequest struct {
	ItemID    uuid.UUID `json:"item_id" binding:"required"`
	ItemName  string    `json:"item_name" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required"`
	UnitPrice float64   `json:"unit_price" binding:"required"`
}

// Create handles recording a direct sale
func (h *SaleHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req struct {
		CustomerID    *uuid.UUID         `json:"customer_id"`
		CustomerName  string             `json:"customer_name" binding:"required"`
		CustomerPhone *string            `json:"customer_phone"`
		SaleDate      *time.Time         `json:"sale_date"`
		ApplyVAT      bool               `json:"apply_vat"`
		VATRate       *float64           `json:"vat_rate"`
		DiscountType  enum.DiscountType  `json:"discount_type"`
		DiscountValue float64            `json:"discount_value"`
		PaymentMethod enum.PaymentMethod `json:"payment_method"`
		AmountPaid    float64            `json:"amount_paid"`
		DueDate       *time.Time         `json:"due_date"`
		Notes         *string            `json:"notes"`
		Items         []saleLineRequest  `json:"items" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	input := &service.CreateSaleInput{
		UserID:        *userID,
		CustomerID:    req.CustomerID,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		ApplyVAT:      req.ApplyVAT,
		VATRate:       req.VATRate,
		DiscountType:  req.DiscountType,
		DiscountValue: req.DiscountValue,
		PaymentMethod: req.PaymentMethod,
		AmountPaid:    req.AmountPaid,
		DueDate:       req.DueDate,
		Notes:         req.Notes,
	}
	if req.SaleDate != nil {
		input.SaleDate = *req.SaleDate
	}
	for _, line := range req.Items {
		input.Items = append(input.Items, service.SaleLineInput{
			ItemID:    line.ItemID,
			ItemName:  line.ItemName,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
		})
	}

	sale, err := h.saleService.CreateSale(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Sale recorded successfully", sale)
}

// List handles listing sales
func (h *SaleHandler) List(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &domainRepo.SaleFilterParams{
		Pagination: &pagination.PaginationParams{Page: page, PerPage: perPage},
		Search:     c.Query("search"),
		SortBy:     c.Query("sort_by"),
		SortOrder:  c.Query("sort_order"),
	}

	if status := c.Query("payment_status"); status != "" {
		var parsed enum.PaymentStatus
		switch status {
		case "paid":
			parsed = enum.PaymentStatusPaid
		case "partial":
			parsed = enum.PaymentStatusPartial
		case "credit":
			parsed = enum.PaymentStatusCredit
		default:
			response.BadRequest(c, "Invalid payment status filter")
			return
		}
		params.PaymentStatus = &parsed
	}

	if customerIDStr := c.Query("customer_id"); customerIDStr != "" {
		customerID, err := uuid.Parse(customerIDStr)
		if err != nil {
			response.BadRequest(c, "Invalid customer ID filter")
			return
		}
		params.CustomerID = &customerID
	}

	if from, ok := parseDateQuery(c, "date_from"); ok {
		params.DateFrom = from
	} else {
		return
	}
	if to, ok := parseDateQuery(c, "date_to"); ok {
		params.DateTo = to
	} else {
		return
	}

	sales, total, err := h.saleService.ListSales(c.Request.Context(), *userID, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	result := pagination.NewPaginatedResult(sales, pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total))
	response.SuccessWithPagination(c, 200, "Sales retrieved successfully", result)
}

// ListPending handles listing sales that still have an outstanding balance
func (h *SaleHandler) ListPending(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	sales, err := h.saleService.ListPendingSales(c.Request.Context(), *userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Pending sales retrieved successfully", sales)
}

// Get handles getting a single sale
func (h *SaleHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid sale ID")
		return
	}

	sale, err := h.saleService.GetSale(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sale retrieved successfully", sale)
}

// Delete handles deleting a sale
func (h *SaleHandler) Delete(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid sale ID")
		return
	}

	if err := h.saleService.DeleteSale(c.Request.Context(), *userID, id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sale deleted successfully", nil)
}

// parseDateQuery reads an optional YYYY-MM-DD query parameter. It writes the
// error response itself and reports ok=false when the value is malformed.
func parseDateQuery(c *gin.Context, name string) (*time.Time, bool) {
	value := c.Query(name)
	if value == "" {
		return nil, true
	}
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		response.BadRequest(c, "Invalid "+name+" date, expected YYYY-MM-DD")
		return nil, false
	}
	return &parsed, true
}
