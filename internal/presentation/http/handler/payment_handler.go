package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/Pritex32/priscomsales-api/internal/application/service"
	"github.com/Pritex32/priscomsales-api/internal/domain/enum"
	"github.com/Pritex32/priscomsales-api/internal/presentation/http/dto/response"
)

// PaymentHandler handles payment-related HTTP requests
type PaymentHandler struct {
	paymentService *service.PaymentService
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(paymentService *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// Apply records a payment against an outstanding sale
func (h *PaymentHandler) Apply(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req struct {
		TransactionType string             `json:"transaction_type" binding:"required"`
		RecordID        uuid.UUID          `json:"record_id" binding:"required"`
		Amount          float64            `json:"amount" binding:"required"`
		PaymentMethod   enum.PaymentMethod `json:"payment_method"`
		Notes           *string            `json:"notes"`
		TransactionDate *time.Time         `json:"transaction_date"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	input := &service.ApplyPaymentInput{
		UserID:          *userID,
		TransactionType: req.TransactionType,
		RecordID:        req.RecordID,
		Amount:          req.Amount,
		PaymentMethod:   req.PaymentMethod,
		Notes:           req.Notes,
	}
	if req.TransactionDate != nil {
		input.TransactionDate = *req.TransactionDate
	}

	outcome, err := h.paymentService.ApplyPayment(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Payment recorded successfully", outcome)
}

// List returns the payment history of a sale
func (h *PaymentHandler) List(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	saleID, err := uuid.Parse(c.Query("record_id"))
	if err != nil {
		response.BadRequest(c, "Invalid record ID")
		return
	}

	payments, err := h.paymentService.ListPayments(c.Request.Context(), *userID, saleID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payments retrieved successfully", payments)
}
