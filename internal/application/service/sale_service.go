package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Pritex32/priscomsales-api/internal/domain/entity"
	"github.com/Pritex32/priscomsales-api/internal/domain/enum"
	"github.com/Pritex32/priscomsales-api/internal/domain/pricing"
	"github.com/Pritex32/priscomsales-api/internal/domain/repository"
	"github.com/Pritex32/priscomsales-api/pkg/apperror"
	"github.com/Pritex32/priscomsales-api/pkg/utils"
)

// SaleService handles direct point-of-sale recording and sale queries
type SaleService struct {
	saleRepo       repository.SaleRepository
	saleItemRepo   repository.SaleItemRepository
	paymentRepo    repository.PaymentRepository
	itemRepo       repository.InventoryItemRepository
	logRepo        repository.InventoryLogRepository
	employeeRepo   repository.EmployeeRepository
	customerRepo   repository.CustomerRepository
	defaultVATRate float64
	logger         *zap.Logger
}

// NewSaleService creates a new sale service
func NewSaleService(
	saleRepo repository.SaleRepository,
	saleItemRepo repository.SaleItemRepository,
	paymentRepo repository.PaymentRepository,
	itemRepo repository.InventoryItemRepository,
	logRepo repository.InventoryLogRepository,
	employeeRepo repository.EmployeeRepository,
	customerRepo repository.CustomerRepository,
	defaultVATRate float64,
	logger *zap.Logger,
) *SaleService {
	return &SaleService{
		saleRepo:       saleRepo,
		saleItemRepo:   saleItemRepo,
		paymentRepo:    paymentRepo,
		itemRepo:       itemRepo,
		logRepo:        logRepo,
		employeeRepo:   employeeRepo,
		customerRepo:   customerRepo,
		defaultVATRate: defaultVATRate,
		logger:         logger,
	}
}

// SaleLineInput represents a line item input
type SaleLineInput struct {
	ItemID    uuid.UUID
	ItemName  string
	Quantity  int
	UnitPrice float64
}

// CreateSaleInput represents the input for recording a sale
type CreateSaleInput struct {
	UserID        uuid.UUID
	CustomerID    *uuid.UUID
	CustomerName  string
	CustomerPhone *string
	SaleDate      time.Time
	ApplyVAT      bool
	VATRate       *float64
	DiscountType  enum.DiscountType
	DiscountValue float64
	PaymentMethod enum.PaymentMethod
	AmountPaid    float64
	DueDate       *time.Time
	Notes         *string
	Items         []SaleLineInput
}

// CreateSale validates, prices and persists a direct sale, records any
// upfront payment and deducts the sold quantities from the inventory ledger.
func (s *SaleService) CreateSale(ctx context.Context, input *CreateSaleInput) (*entity.Sale, error) {
	if input.CustomerName == "" {
		return nil, apperror.NewBadRequestError("Customer name is required")
	}
	if len(input.Items) == 0 {
		return nil, apperror.NewBadRequestError("Add at least one item to the sale")
	}
	if input.AmountPaid < 0 {
		return nil, apperror.NewBadRequestError("Amount paid cannot be negative")
	}

	if input.CustomerID != nil {
		customer, err := s.customerRepo.GetByID(ctx, *input.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, apperror.NewNotFoundError("Customer")
		}
	}

	catalogItems, err := s.itemRepo.ListAll(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	catalog := make(pricing.Catalog, len(catalogItems))
	for _, item := range catalogItems {
		catalog[item.Name] = pricing.CatalogEntry{ItemID: item.ID, ItemName: item.Name}
	}

	var draft pricing.Draft
	for _, in := range input.Items {
		draft.Add(in.ItemID, in.ItemName, in.Quantity, decimal.NewFromFloat(in.UnitPrice))
	}
	lines := draft.Items()

	if err := pricing.ValidateItems(lines, catalog); err != nil {
		return nil, apperror.NewBadRequestError(err.Error())
	}

	vatRate := s.defaultVATRate
	if input.VATRate != nil {
		vatRate = *input.VATRate
	}

	totals := pricing.Calculate(lines, pricing.Config{
		ApplyVAT:      input.ApplyVAT,
		VATRate:       decimal.NewFromFloat(vatRate),
		DiscountType:  input.DiscountType,
		DiscountValue: decimal.NewFromFloat(input.DiscountValue),
	})

	grandTotal, _ := totals.GrandTotal.Float64()
	vatAmount, _ := totals.VATAmount.Float64()
	discountAmount, _ := totals.DiscountAmount.Float64()

	if input.AmountPaid > grandTotal {
		return nil, apperror.NewBadRequestError("Amount paid exceeds the sale total")
	}

	employee, err := s.employeeRepo.GetByUserID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	saleDate := truncateToDay(input.SaleDate)
	if input.SaleDate.IsZero() {
		saleDate = truncateToDay(time.Now())
	}

	invoiceNo := utils.GenerateInvoiceNo("INV")
	status := pricing.ResolveStatus(totals.GrandTotal, decimal.NewFromFloat(input.AmountPaid))

	sale := &entity.Sale{
		UserID:         input.UserID,
		CustomerID:     input.CustomerID,
		CustomerName:   input.CustomerName,
		CustomerPhone:  input.CustomerPhone,
		SaleDate:       saleDate,
		InvoiceNumber:  &invoiceNo,
		ApplyVAT:       input.ApplyVAT,
		VATRate:        vatRate,
		VATAmount:      vatAmount,
		DiscountType:   input.DiscountType,
		DiscountValue:  input.DiscountValue,
		DiscountAmount: discountAmount,
		GrandTotal:     grandTotal,
		AmountPaid:     input.AmountPaid,
		PaymentMethod:  input.PaymentMethod,
		PaymentStatus:  status,
		DueDate:        input.DueDate,
		Notes:          input.Notes,
	}
	if employee != nil {
		sale.EmployeeID = &employee.ID
	}

	if err := s.saleRepo.Create(ctx, sale); err != nil {
		return nil, err
	}

	items := make([]entity.SaleItem, 0, len(lines))
	for _, line := range lines {
		lineTotal, _ := line.Total().Float64()
		unitPrice, _ := line.UnitPrice.Float64()
		items = append(items, entity.SaleItem{
			SaleID:    sale.ID,
			ItemID:    line.ItemID,
			ItemName:  line.ItemName,
			Quantity:  line.Quantity,
			UnitPrice: unitPrice,
			LineTotal: lineTotal,
		})
	}
	if err := s.saleItemRepo.CreateBatch(ctx, items); err != nil {
		return nil, err
	}

	if input.AmountPaid > 0 {
		payment := &entity.Payment{
			UserID:        input.UserID,
			SaleID:        sale.ID,
			Amount:        input.AmountPaid,
			PaymentMethod: input.PaymentMethod,
			PaymentDate:   saleDate,
		}
		if err := s.paymentRepo.Create(ctx, payment); err != nil {
			return nil, err
		}
	}

	// Ledger deductions are best-effort: a failed row is logged but does not
	// undo the recorded sale.
	var employeeID *uuid.UUID
	if employee != nil {
		employeeID = &employee.ID
	}
	for _, line := range lines {
		if _, err := applyLedgerStockOut(ctx, s.logRepo, input.UserID, employeeID, line.ItemID, line.ItemName, line.Quantity, saleDate); err != nil {
			s.logger.Warn("stock deduction failed",
				zap.String("sale_id", sale.ID.String()),
				zap.String("item", line.ItemName),
				zap.Error(err))
		}
	}

	s.logger.Info("sale recorded",
		zap.String("sale_id", sale.ID.String()),
		zap.String("invoice_number", invoiceNo),
		zap.Float64("grand_total", grandTotal))

	return s.saleRepo.GetWithItems(ctx, sale.ID)
}

// GetSale retrieves a sale with its items and payments
func (s *SaleService) GetSale(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	sale, err := s.saleRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}
	return sale, nil
}

// ListSales returns a filtered page of sales
func (s *SaleService) ListSales(ctx context.Context, userID uuid.UUID, params *repository.SaleFilterParams) ([]entity.Sale, int64, error) {
	return s.saleRepo.List(ctx, userID, params)
}

// ListPendingSales returns sales with an outstanding balance
func (s *SaleService) ListPendingSales(ctx context.Context, userID uuid.UUID) ([]entity.Sale, error) {
	return s.saleRepo.ListPending(ctx, userID)
}

// DeleteSale removes a sale and its line items
func (s *SaleService) DeleteSale(ctx context.Context, userID, id uuid.UUID) error {
	sale, err := s.saleRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if sale == nil {
		return apperror.NewNotFoundError("Sale")
	}
	if sale.UserID != userID {
		return apperror.ErrForbidden
	}

	if err := s.saleItemRepo.DeleteBySaleID(ctx, id); err != nil {
		return err
	}
	return s.saleRepo.Delete(ctx, id)
}
