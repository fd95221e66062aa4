package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/Pritex32/priscomsales-api/internal/application/service"
	domainRepo "github.com/Pritex32/priscomsales-api/internal/domain/repository"
	"github.com/Pritex32/priscomsales-api/internal/presentation/http/dto/response"
	"github.com/Pritex32/priscomsales-api/pkg/pagination"
)

// InventoryHandler handles catalog and stock ledger HTTP requests
type InventoryHandler struct {
	inventoryService *service.InventoryService
}

// NewInventoryHandler creates a new inventory handler
func NewInventoryHandler(inventoryService *service.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventoryService: inventoryService}
}

// List handles listing catalog items
func (h *InventoryHandler) List(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &domainRepo.InventoryFilterParams{
		Pagination: &pagination.PaginationParams{Page: page, PerPage: perPage},
		Search:     c.Query("search"),
		Warehouse:  c.Query("warehouse"),
		SortBy:     c.Query("sort_by"),
		SortOrder:  c.Query("sort_order"),
	}

	items, total, err := h.inventoryService.ListItems(c.Request.Context(), *userID, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	result := pagination.NewPaginatedResult(items, pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total))
	response.SuccessWithPagination(c, 200, "Items retrieved successfully", result)
}

// Create handles adding a catalog item
func (h *InventoryHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req struct {
		Name      string  `json:"name" binding:"required"`
		Price     float64 `json:"price" binding:"required"`
		Warehouse *string `json:"warehouse"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	item, err := h.inventoryService.CreateItem(c.Request.Context(), &service.CreateItemInput{
		UserID:    *userID,
		Name:      req.Name,
		Price:     req.Price,
		Warehouse: req.Warehouse,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Item created successfully", item)
}

// Get handles getting a single catalog item
func (h *InventoryHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid item ID")
		return
	}

	item, err := h.inventoryService.GetItem(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item retrieved successfully", item)
}

// Update handles updating a catalog item
func (h *InventoryHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid item ID")
		return
	}

	var req struct {
		Name      *string  `json:"name"`
		Price     *float64 `json:"price"`
		Warehouse *string  `json:"warehouse"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	item, err := h.inventoryService.UpdateItem(c.Request.Context(), id, &service.UpdateItemInput{
		Name:      req.Name,
		Price:     req.Price,
		Warehouse: req.Warehouse,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item updated successfully", item)
}

// Delete handles deleting a catalog item
func (h *InventoryHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid item ID")
		return
	}

	if err := h.inventoryService.DeleteItem(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item deleted successfully", nil)
}

// ListLogs handles listing the stock ledger for an item
func (h *InventoryHandler) ListLogs(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid item ID")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))
	params := &pagination.PaginationParams{Page: page, PerPage: perPage}

	logs, total, err := h.inventoryService.ListLogs(c.Request.Context(), itemID, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	result := pagination.NewPaginatedResult(logs, pagination.NewPagination(params.Page, params.PerPage, total))
	response.SuccessWithPagination(c, 200, "Stock movements retrieved successfully", result)
}

// RecordSupply handles recording received or returned stock for an item
func (h *InventoryHandler) RecordSupply(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid item ID")
		return
	}

	var req struct {
		Date             *time.Time `json:"date"`
		SuppliedQuantity int        `json:"supplied_quantity"`
		ReturnQuantity   int        `json:"return_quantity"`
		EmployeeID       *uuid.UUID `json:"employee_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	date := time.Now()
	if req.Date != nil {
		date = *req.Date
	}

	log, err := h.inventoryService.RecordSupply(c.Request.Context(), &service.RecordSupplyInput{
		UserID:           *userID,
		ItemID:           itemID,
		Date:             date,
		SuppliedQuantity: req.SuppliedQuantity,
		ReturnQuantity:   req.ReturnQuantity,
		EmployeeID:       req.EmployeeID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Stock movement recorded successfully", log)
}
