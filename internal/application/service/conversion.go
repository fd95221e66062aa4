package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Pritex32/priscomsales-api/internal/domain/entity"
	"github.com/Pritex32/priscomsales-api/internal/domain/enum"
	"github.com/Pritex32/priscomsales-api/internal/domain/repository"
	"github.com/Pritex32/priscomsales-api/pkg/apperror"
)

// ConversionResult reports the outcome of a proforma conversion attempt:
// the per-item reconciliation record and, when every item succeeded, the
// sale that was created.
type ConversionResult struct {
	ProformaID  uuid.UUID               `json:"proforma_id"`
	Reference   string                  `json:"reference"`
	Converted   bool                    `json:"converted"`
	SaleID      *uuid.UUID              `json:"sale_id,omitempty"`
	Adjustments []entity.ItemAdjustment `json:"adjustments"`
}

// FailedCount returns how many items could not be reconciled.
func (r *ConversionResult) FailedCount() int {
	n := 0
	for _, a := range r.Adjustments {
		if a.Action == enum.AdjustmentFailed {
			n++
		}
	}
	return n
}

// ConversionReconciler converts a pending proforma into a sale, reconciling
// each line item against the inventory ledger. Item failures are recorded
// and the batch continues; the proforma only transitions to converted when
// every item reconciled, so a partially failed conversion can be retried.
type ConversionReconciler struct {
	proformaRepo     repository.ProformaRepository
	proformaItemRepo repository.ProformaItemRepository
	saleRepo         repository.SaleRepository
	saleItemRepo     repository.SaleItemRepository
	paymentRepo      repository.PaymentRepository
	employeeRepo     repository.EmployeeRepository
	logRepo          repository.InventoryLogRepository
	logger           *zap.Logger
}

// NewConversionReconciler creates a new conversion reconciler
func NewConversionReconciler(
	proformaRepo repository.ProformaRepository,
	proformaItemRepo repository.ProformaItemRepository,
	saleRepo repository.SaleRepository,
	saleItemRepo repository.SaleItemRepository,
	paymentRepo repository.PaymentRepository,
	employeeRepo repository.EmployeeRepository,
	logRepo repository.InventoryLogRepository,
	logger *zap.Logger,
) *ConversionReconciler {
	return &ConversionReconciler{
		proformaRepo:     proformaRepo,
		proformaItemRepo: proformaItemRepo,
		saleRepo:         saleRepo,
		saleItemRepo:     saleItemRepo,
		paymentRepo:      paymentRepo,
		employeeRepo:     employeeRepo,
		logRepo:          logRepo,
		logger:           logger,
	}
}

// Convert runs the full conversion for one proforma. Preconditions are
// checked up front: the proforma must exist, belong to the caller, still be
// pending, and carry invoice evidence. Items are then reconciled one at a
// time in order, so a later line observes ledger rows written by an earlier
// one.
func (c *ConversionReconciler) Convert(ctx context.Context, userID, proformaID uuid.UUID) (*ConversionResult, error) {
	proforma, err := c.proformaRepo.GetWithItems(ctx, proformaID)
	if err != nil {
		return nil, err
	}
	if proforma == nil {
		return nil, apperror.NewNotFoundError("Proforma")
	}
	if proforma.UserID != userID {
		return nil, apperror.ErrForbidden
	}
	if proforma.Status == enum.ProformaStatusConverted {
		return nil, apperror.ErrAlreadyConverted
	}
	if !proforma.HasInvoiceEvidence() {
		return nil, apperror.ErrEvidenceMissing
	}

	employee, err := c.employeeRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := &ConversionResult{
		ProformaID:  proforma.ID,
		Reference:   proforma.Reference,
		Adjustments: make([]entity.ItemAdjustment, 0, len(proforma.Items)),
	}

	today := truncateToDay(time.Now())

	for i := range proforma.Items {
		item := &proforma.Items[i]
		adjustment := entity.ItemAdjustment{
			ItemID:   item.ItemID,
			ItemName: item.ItemName,
			Quantity: item.Quantity,
		}

		switch {
		case item.Reconciled:
			adjustment.Action = enum.AdjustmentSkipped
			adjustment.Reason = "already reconciled"
		case item.Quantity <= 0:
			adjustment.Action = enum.AdjustmentSkipped
			adjustment.Reason = "quantity is not positive"
		case employee == nil:
			adjustment.Action = enum.AdjustmentFailed
			adjustment.Reason = apperror.ErrEmployeeProfileMissing.Message
		default:
			action, err := c.applyStockOut(ctx, proforma.UserID, employee.ID, item, today)
			if err != nil {
				adjustment.Action = enum.AdjustmentFailed
				adjustment.Reason = err.Error()
				c.logger.Warn("item reconciliation failed",
					zap.String("proforma", proforma.Reference),
					zap.String("item", item.ItemName),
					zap.Error(err))
			} else {
				adjustment.Action = action
				item.Reconciled = true
				if err := c.proformaItemRepo.Update(ctx, item); err != nil {
					c.logger.Warn("failed to mark item reconciled",
						zap.String("proforma", proforma.Reference),
						zap.String("item", item.ItemName),
						zap.Error(err))
				}
			}
		}

		result.Adjustments = append(result.Adjustments, adjustment)
	}

	if result.FailedCount() > 0 {
		c.logger.Info("conversion incomplete, proforma stays pending",
			zap.String("proforma", proforma.Reference),
			zap.Int("failed_items", result.FailedCount()))
		return result, nil
	}

	sale, err := c.createSale(ctx, proforma, employee)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	proforma.Status = enum.ProformaStatusConverted
	proforma.ConvertedAt = &now
	if err := c.proformaRepo.Update(ctx, proforma); err != nil {
		return nil, err
	}

	result.Converted = true
	result.SaleID = &sale.ID

	c.logger.Info("proforma converted",
		zap.String("proforma", proforma.Reference),
		zap.String("sale_id", sale.ID.String()),
		zap.Float64("grand_total", sale.GrandTotal))

	return result, nil
}

// applyStockOut records the sold quantity in the day's ledger row for the
// item, creating the row with the carried-over opening balance when the day
// has no movement yet.
func (c *ConversionReconciler) applyStockOut(ctx context.Context, userID, employeeID uuid.UUID, item *entity.ProformaItem, day time.Time) (enum.AdjustmentAction, error) {
	return applyLedgerStockOut(ctx, c.logRepo, userID, &employeeID, item.ItemID, item.ItemName, item.Quantity, day)
}

// applyLedgerStockOut is the single write path to the movement ledger shared
// by proforma conversion and direct point-of-sale recording.
func applyLedgerStockOut(ctx context.Context, logRepo repository.InventoryLogRepository, userID uuid.UUID, employeeID *uuid.UUID, itemID uuid.UUID, itemName string, quantity int, day time.Time) (enum.AdjustmentAction, error) {
	row, err := logRepo.GetByItemAndDate(ctx, itemID, day)
	if err != nil {
		return enum.AdjustmentFailed, fmt.Errorf("ledger lookup: %w", err)
	}

	if row == nil {
		open := 0
		prev, err := logRepo.GetLatestBefore(ctx, itemID, day)
		if err != nil {
			return enum.AdjustmentFailed, fmt.Errorf("ledger lookup: %w", err)
		}
		if prev != nil {
			open = prev.ClosingBalance()
		}

		row = &entity.InventoryLog{
			UserID:      userID,
			ItemID:      itemID,
			ItemName:    itemName,
			LogDate:     day,
			OpenBalance: open,
			StockOut:    quantity,
			EmployeeID:  employeeID,
		}
		if err := logRepo.Create(ctx, row); err != nil {
			return enum.AdjustmentFailed, fmt.Errorf("ledger write: %w", err)
		}
		return enum.AdjustmentCreated, nil
	}

	row.StockOut += quantity
	if err := logRepo.Update(ctx, row); err != nil {
		return enum.AdjustmentFailed, fmt.Errorf("ledger write: %w", err)
	}
	return enum.AdjustmentUpdated, nil
}

// createSale emits the single sale carrying all proforma lines. Conversion
// settles the full amount, so the sale lands already paid with a matching
// payment row.
func (c *ConversionReconciler) createSale(ctx context.Context, proforma *entity.Proforma, employee *entity.Employee) (*entity.Sale, error) {
	today := truncateToDay(time.Now())

	sale := &entity.Sale{
		UserID:           proforma.UserID,
		CustomerID:       proforma.CustomerID,
		CustomerName:     proforma.CustomerName,
		CustomerPhone:    proforma.CustomerPhone,
		SaleDate:         today,
		InvoiceNumber:    &proforma.Reference,
		SourceProformaID: &proforma.ID,
		ApplyVAT:         proforma.ApplyVAT,
		VATRate:          proforma.VATRate,
		VATAmount:        proforma.VATAmount,
		DiscountType:     proforma.DiscountType,
		DiscountValue:    proforma.DiscountValue,
		DiscountAmount:   proforma.DiscountAmount,
		GrandTotal:       proforma.GrandTotal,
		AmountPaid:       proforma.GrandTotal,
		PaymentMethod:    enum.PaymentMethodCash,
		PaymentStatus:    enum.PaymentStatusPaid,
		Notes:            proforma.Notes,
	}
	if employee != nil {
		sale.EmployeeID = &employee.ID
	}

	if err := c.saleRepo.Create(ctx, sale); err != nil {
		return nil, err
	}

	items := make([]entity.SaleItem, 0, len(proforma.Items))
	for _, line := range proforma.Items {
		items = append(items, entity.SaleItem{
			SaleID:    sale.ID,
			ItemID:    line.ItemID,
			ItemName:  line.ItemName,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			LineTotal: line.LineTotal,
		})
	}
	if err := c.saleItemRepo.CreateBatch(ctx, items); err != nil {
		return nil, err
	}

	if proforma.GrandTotal > 0 {
		notes := "Converted from proforma " + proforma.Reference
		payment := &entity.Payment{
			UserID:        proforma.UserID,
			SaleID:        sale.ID,
			Amount:        proforma.GrandTotal,
			PaymentMethod: enum.PaymentMethodCash,
			Notes:         &notes,
			PaymentDate:   today,
		}
		if err := c.paymentRepo.Create(ctx, payment); err != nil {
			return nil, err
		}
	}

	return sale, nil
}
