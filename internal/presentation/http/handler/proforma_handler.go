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

// ProformaHandler handles proforma invoice HTTP requests
type ProformaHandler struct {
	proformaService *service.ProformaService
	reconciler      *service.ConversionReconciler
}

// NewProformaHandler creates a new proforma handler
func NewProformaHandler(proformaService *service.ProformaService, reconciler *service.ConversionReconciler) *ProformaHandler {
	return &ProformaHandler{
		proformaService: proformaService,
		reconciler:      reconciler,
	}
}

// Create handles creating a pending proforma
func (h *ProformaHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req struct {
		EmployeeID    *uuid.UUID        `json:"employee_id"`
		CustomerID    *uuid.UUID        `json:"customer_id"`
		CustomerName  string            `json:"customer_name" binding:"required"`
		CustomerPhone *string           `json:"customer_phone"`
		Date          *time.Time        `json:"date"`
		ApplyVAT      bool              `json:"apply_vat"`
		VATRate       *float64          `json:"vat_rate"`
		DiscountType  enum.DiscountType `json:"discount_type"`
		DiscountValue float64           `json:"discount_value"`
		Notes         *string           `json:"notes"`
		Items         []saleLineRequest `json:"items" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	input := &service.CreateProformaInput{
		UserID:        *userID,
		EmployeeID:    req.EmployeeID,
		CustomerID:    req.CustomerID,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		ApplyVAT:      req.ApplyVAT,
		VATRate:       req.VATRate,
		DiscountType:  req.DiscountType,
		DiscountValue: req.DiscountValue,
		Notes:         req.Notes,
	}
	if req.Date != nil {
		input.Date = *req.Date
	}
	for _, line := range req.Items {
		input.Items = append(input.Items, service.ProformaLineInput{
			ItemID:    line.ItemID,
			ItemName:  line.ItemName,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
		})
	}

	proforma, err := h.proformaService.CreateProforma(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Proforma created successfully", proforma)
}

// List handles listing proformas
func (h *ProformaHandler) List(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &domainRepo.ProformaFilterParams{
		Pagination: &pagination.PaginationParams{Page: page, PerPage: perPage},
		Search:     c.Query("search"),
		SortBy:     c.Query("sort_by"),
		SortOrder:  c.Query("sort_order"),
	}

	if status := c.Query("status"); status != "" {
		var parsed enum.ProformaStatus
		switch status {
		case "pending":
			parsed = enum.ProformaStatusPending
		case "converted":
			parsed = enum.ProformaStatusConverted
		default:
			response.BadRequest(c, "Invalid status filter")
			return
		}
		params.Status = &parsed
	}

	if customerIDStr := c.Query("customer_id"); customerIDStr != "" {
		customerID, err := uuid.Parse(customerIDStr)
		if err != nil {
			response.BadRequest(c, "Invalid customer ID filter")
			return
		}
		params.CustomerID = &customerID
	}

	proformas, total, err := h.proformaService.ListProformas(c.Request.Context(), *userID, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	result := pagination.NewPaginatedResult(proformas, pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total))
	response.SuccessWithPagination(c, 200, "Proformas retrieved successfully", result)
}

// Get handles getting a single proforma with its items
func (h *ProformaHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid proforma ID")
		return
	}

	proforma, err := h.proformaService.GetProforma(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Proforma retrieved successfully", proforma)
}

// UploadInvoice attaches the signed invoice document to a pending proforma
func (h *ProformaHandler) UploadInvoice(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid proforma ID")
		return
	}

	file, err := c.FormFile("invoice")
	if err != nil {
		response.BadRequest(c, "An invoice file is required")
		return
	}

	proforma, err := h.proformaService.AttachInvoiceEvidence(c.Request.Context(), *userID, id, file)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice uploaded successfully", proforma)
}

// Convert reconciles a pending proforma into a sale
func (h *ProformaHandler) Convert(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid proforma ID")
		return
	}

	result, err := h.reconciler.Convert(c.Request.Context(), *userID, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	if !result.Converted {
		response.OK(c, "Proforma conversion incomplete, resolve the failed items and retry", result)
		return
	}

	response.OK(c, "Proforma converted successfully", result)
}

// Delete handles deleting a pending proforma
func (h *ProformaHandler) Delete(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid proforma ID")
		return
	}

	if err := h.proformaService.DeleteProforma(c.Request.Context(), *userID, id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Proforma deleted successfully", nil)
}
