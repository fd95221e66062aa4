package service

import (
	"context"
	"mime/multipart"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Pritex32/priscomsales-api/internal/domain/entity"
	"github.com/Pritex32/priscomsales-api/internal/domain/enum"
	"github.com/Pritex32/priscomsales-api/internal/domain/pricing"
	"github.com/Pritex32/priscomsales-api/internal/domain/repository"
	"github.com/Pritex32/priscomsales-api/pkg/apperror"
	"github.com/Pritex32/priscomsales-api/pkg/utils"
)

// EvidenceStore persists uploaded invoice documents and returns the URL they
// are served from.
type EvidenceStore interface {
	SaveInvoice(proformaID uuid.UUID, file *multipart.FileHeader) (string, error)
}

// ProformaService drives the proforma lifecycle: creation, invoice evidence
// upload, and handing pending proformas to the conversion reconciler.
type ProformaService struct {
	proformaRepo     repository.ProformaRepository
	proformaItemRepo repository.ProformaItemRepository
	itemRepo         repository.InventoryItemRepository
	customerRepo     repository.CustomerRepository
	evidence         EvidenceStore
	validityDays     int
	defaultVATRate   float64
}

// NewProformaService creates a new proforma service
func NewProformaService(
	proformaRepo repository.ProformaRepository,
	proformaItemRepo repository.ProformaItemRepository,
	itemRepo repository.InventoryItemRepository,
	customerRepo repository.CustomerRepository,
	evidence EvidenceStore,
	validityDays int,
	defaultVATRate float64,
) *ProformaService {
	if validityDays <= 0 {
		validityDays = 7
	}
	return &ProformaService{
		proformaRepo:     proformaRepo,
		proformaItemRepo: proformaItemRepo,
		itemRepo:         itemRepo,
		customerRepo:     customerRepo,
		evidence:         evidence,
		validityDays:     validityDays,
		defaultVATRate:   defaultVATRate,
	}
}

// ProformaLineInput represents a line item input
type ProformaLineInput struct {
	ItemID    uuid.UUID
	ItemName  string
	Quantity  int
	UnitPrice float64
}

// CreateProformaInput represents the input for creating a proforma
type CreateProformaInput struct {
	UserID        uuid.UUID
	EmployeeID    *uuid.UUID
	CustomerID    *uuid.UUID
	CustomerName  string
	CustomerPhone *string
	Date          time.Time
	ApplyVAT      bool
	VATRate       *float64
	DiscountType  enum.DiscountType
	DiscountValue float64
	Notes         *string
	Items         []ProformaLineInput
}

// CreateProforma validates the draft and creates a pending proforma with
// server-computed totals.
func (s *ProformaService) CreateProforma(ctx context.Context, input *CreateProformaInput) (*entity.Proforma, error) {
	if input.CustomerName == "" {
		return nil, apperror.NewBadRequestError("Customer name is required")
	}
	if len(input.Items) == 0 {
		return nil, apperror.NewBadRequestError("Add at least one item to the proforma")
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

	lines, totals, err := s.priceItems(ctx, input.UserID, input.Items, pricingConfig(input.ApplyVAT, input.VATRate, s.defaultVATRate, input.DiscountType, input.DiscountValue))
	if err != nil {
		return nil, err
	}

	nextNum, err := s.proformaRepo.GetNextReferenceNumber(ctx)
	if err != nil {
		return nil, err
	}
	reference := utils.FormatReference("PF", nextNum)

	date := truncateToDay(input.Date)
	vatRate := s.defaultVATRate
	if input.VATRate != nil {
		vatRate = *input.VATRate
	}

	vatAmount, _ := totals.VATAmount.Float64()
	discountAmount, _ := totals.DiscountAmount.Float64()
	grandTotal, _ := totals.GrandTotal.Float64()

	proforma := &entity.Proforma{
		UserID:         input.UserID,
		EmployeeID:     input.EmployeeID,
		CustomerID:     input.CustomerID,
		Reference:      reference,
		Date:           date,
		ExpiryDate:     date.AddDate(0, 0, s.validityDays),
		CustomerName:   input.CustomerName,
		CustomerPhone:  input.CustomerPhone,
		ApplyVAT:       input.ApplyVAT,
		VATRate:        vatRate,
		VATAmount:      vatAmount,
		DiscountType:   input.DiscountType,
		DiscountValue:  input.DiscountValue,
		DiscountAmount: discountAmount,
		GrandTotal:     grandTotal,
		Status:         enum.ProformaStatusPending,
		Notes:          input.Notes,
	}

	if err := s.proformaRepo.Create(ctx, proforma); err != nil {
		return nil, err
	}

	items := make([]entity.ProformaItem, 0, len(lines))
	for _, line := range lines {
		lineTotal, _ := line.Total().Float64()
		unitPrice, _ := line.UnitPrice.Float64()
		items = append(items, entity.ProformaItem{
			ProformaID: proforma.ID,
			ItemID:     line.ItemID,
			ItemName:   line.ItemName,
			Quantity:   line.Quantity,
			UnitPrice:  unitPrice,
			LineTotal:  lineTotal,
		})
	}
	if err := s.proformaItemRepo.CreateBatch(ctx, items); err != nil {
		return nil, err
	}

	return s.proformaRepo.GetWithItems(ctx, proforma.ID)
}

// GetProforma retrieves a proforma with its line items
func (s *ProformaService) GetProforma(ctx context.Context, id uuid.UUID) (*entity.Proforma, error) {
	proforma, err := s.proformaRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if proforma == nil {
		return nil, apperror.NewNotFoundError("Proforma")
	}
	return proforma, nil
}

// ListProformas returns a filtered page of proformas
func (s *ProformaService) ListProformas(ctx context.Context, userID uuid.UUID, params *repository.ProformaFilterParams) ([]entity.Proforma, int64, error) {
	return s.proformaRepo.List(ctx, userID, params)
}

// AttachInvoiceEvidence stores an invoice document for a pending proforma.
// A proforma holds at most one invoice; converted proformas are immutable.
func (s *ProformaService) AttachInvoiceEvidence(ctx context.Context, userID, id uuid.UUID, file *multipart.FileHeader) (*entity.Proforma, error) {
	proforma, err := s.GetProforma(ctx, id)
	if err != nil {
		return nil, err
	}
	if proforma.UserID != userID {
		return nil, apperror.ErrForbidden
	}
	if proforma.Status == enum.ProformaStatusConverted {
		return nil, apperror.ErrAlreadyConverted
	}
	if proforma.HasInvoiceEvidence() {
		return nil, apperror.ErrInvoiceAlreadyUploaded
	}

	url, err := s.evidence.SaveInvoice(proforma.ID, file)
	if err != nil {
		return nil, apperror.NewBadRequestError(err.Error())
	}

	proforma.InvoiceURL = &url
	if err := s.proformaRepo.Update(ctx, proforma); err != nil {
		return nil, err
	}
	return proforma, nil
}

// DeleteProforma removes a pending proforma. Converted proformas are kept as
// the audit trail for their sales.
func (s *ProformaService) DeleteProforma(ctx context.Context, userID, id uuid.UUID) error {
	proforma, err := s.GetProforma(ctx, id)
	if err != nil {
		return err
	}
	if proforma.UserID != userID {
		return apperror.ErrForbidden
	}
	if proforma.Status == enum.ProformaStatusConverted {
		return apperror.NewBadRequestError("Converted proformas cannot be deleted")
	}

	if err := s.proformaItemRepo.DeleteByProformaID(ctx, id); err != nil {
		return err
	}
	return s.proformaRepo.Delete(ctx, id)
}

// priceItems validates the candidate lines against the catalog and computes
// the totals breakdown.
func (s *ProformaService) priceItems(ctx context.Context, userID uuid.UUID, inputs []ProformaLineInput, cfg pricing.Config) ([]pricing.LineItem, pricing.Totals, error) {
	catalogItems, err := s.itemRepo.ListAll(ctx, userID)
	if err != nil {
		return nil, pricing.Totals{}, err
	}
	catalog := make(pricing.Catalog, len(catalogItems))
	for _, item := range catalogItems {
		catalog[item.Name] = pricing.CatalogEntry{ItemID: item.ID, ItemName: item.Name}
	}

	var draft pricing.Draft
	for _, in := range inputs {
		draft.Add(in.ItemID, in.ItemName, in.Quantity, decimal.NewFromFloat(in.UnitPrice))
	}
	lines := draft.Items()

	if err := pricing.ValidateItems(lines, catalog); err != nil {
		return nil, pricing.Totals{}, apperror.NewBadRequestError(err.Error())
	}

	return lines, pricing.Calculate(lines, cfg), nil
}

func pricingConfig(applyVAT bool, vatRate *float64, defaultVATRate float64, discountType enum.DiscountType, discountValue float64) pricing.Config {
	rate := defaultVATRate
	if vatRate != nil {
		rate = *vatRate
	}
	return pricing.Config{
		ApplyVAT:      applyVAT,
		VATRate:       decimal.NewFromFloat(rate),
		DiscountType:  discountType,
		DiscountValue: decimal.NewFromFloat(discountValue),
	}
}
