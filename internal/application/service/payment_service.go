package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Pritex32/priscomsales-api/internal/domain/entity"
	"github.com/Pritex32/priscomsales-api/internal/domain/enum"
	"github.com/Pritex32/priscomsales-api/internal/domain/repository"
	"github.com/Pritex32/priscomsales-api/pkg/apperror"
)

// PaymentService records instalments against sales and re-derives payment
// status from the payment rows.
type PaymentService struct {
	paymentRepo repository.PaymentRepository
	saleRepo    repository.SaleRepository
	tolerance   float64
	logger      *zap.Logger
}

// NewPaymentService creates a new payment service
func NewPaymentService(
	paymentRepo repository.PaymentRepository,
	saleRepo repository.SaleRepository,
	tolerance float64,
	logger *zap.Logger,
) *PaymentService {
	return &PaymentService{
		paymentRepo: paymentRepo,
		saleRepo:    saleRepo,
		tolerance:   tolerance,
		logger:      logger,
	}
}

// ApplyPaymentInput carries one incoming payment. Field names on the wire
// are transaction_type, record_id, amount, payment_method, notes and
// transaction_date.
type ApplyPaymentInput struct {
	UserID          uuid.UUID
	TransactionType string
	RecordID        uuid.UUID
	Amount          float64
	PaymentMethod   enum.PaymentMethod
	Notes           *string
	TransactionDate time.Time
}

// PaymentOutcome reports the updated records after a payment is applied.
// When the addressed sale shares an invoice number with other sales, the
// whole group is one logical invoice and every member receives the payment.
type PaymentOutcome struct {
	Payment *entity.Payment `json:"payment"`
	Sales   []entity.Sale   `json:"sales"`
}

// ApplyPayment validates and records a payment, then recomputes the amount
// paid and payment status of every affected sale from its payment rows.
func (s *PaymentService) ApplyPayment(ctx context.Context, input *ApplyPaymentInput) (*PaymentOutcome, error) {
	tt := enum.TransactionType(input.TransactionType)
	if !tt.Valid() {
		return nil, apperror.NewBadRequestError("Unknown transaction type: " + input.TransactionType)
	}
	if tt != enum.TransactionTypeSale {
		return nil, apperror.NewBadRequestError("Payments can only be recorded against sales")
	}
	if input.Amount <= 0 {
		return nil, apperror.NewBadRequestError("Payment amount must be greater than zero")
	}

	sale, err := s.saleRepo.GetByID(ctx, input.RecordID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}
	if sale.UserID != input.UserID {
		return nil, apperror.ErrForbidden
	}

	paid, err := s.paymentRepo.SumBySale(ctx, sale.ID)
	if err != nil {
		return nil, err
	}
	balance := sale.GrandTotal - paid
	if input.Amount > balance+s.tolerance {
		return nil, apperror.NewBadRequestError("Payment exceeds the outstanding balance on this record")
	}

	members, err := s.groupMembers(ctx, sale)
	if err != nil {
		return nil, err
	}

	date := truncateToDay(input.TransactionDate)
	if input.TransactionDate.IsZero() {
		date = truncateToDay(time.Now())
	}

	outcome := &PaymentOutcome{Sales: make([]entity.Sale, 0, len(members))}

	for i := range members {
		member := &members[i]

		payment := &entity.Payment{
			UserID:        input.UserID,
			SaleID:        member.ID,
			Amount:        input.Amount,
			PaymentMethod: input.PaymentMethod,
			Notes:         input.Notes,
			PaymentDate:   date,
		}
		if err := s.paymentRepo.Create(ctx, payment); err != nil {
			return nil, err
		}
		if member.ID == sale.ID {
			outcome.Payment = payment
		}

		total, err := s.paymentRepo.SumBySale(ctx, member.ID)
		if err != nil {
			return nil, err
		}

		member.AmountPaid = total
		member.PaymentStatus = s.resolveStatus(member.GrandTotal, total)
		if err := s.saleRepo.Update(ctx, member); err != nil {
			return nil, err
		}
		outcome.Sales = append(outcome.Sales, *member)
	}

	s.logger.Info("payment recorded",
		zap.String("sale_id", sale.ID.String()),
		zap.Float64("amount", input.Amount),
		zap.Int("group_size", len(members)))

	return outcome, nil
}

// groupMembers resolves the set of sales the payment applies to: every sale
// sharing the target's non-empty invoice number, or just the target itself.
func (s *PaymentService) groupMembers(ctx context.Context, sale *entity.Sale) ([]entity.Sale, error) {
	if sale.InvoiceNumber == nil || *sale.InvoiceNumber == "" {
		return []entity.Sale{*sale}, nil
	}

	members, err := s.saleRepo.GetByInvoiceNumber(ctx, sale.UserID, *sale.InvoiceNumber)
	if err != nil {
		return nil, err
	}
	if len(members) == 0 {
		return []entity.Sale{*sale}, nil
	}
	return members, nil
}

// resolveStatus derives the status from the grand total and the summed
// payments. A residue within the tolerance counts as settled.
func (s *PaymentService) resolveStatus(grandTotal, amountPaid float64) enum.PaymentStatus {
	if grandTotal-amountPaid <= s.tolerance {
		return enum.PaymentStatusPaid
	}
	if amountPaid > 0 {
		return enum.PaymentStatusPartial
	}
	return enum.PaymentStatusCredit
}

// ListPayments returns the payment history for one sale
func (s *PaymentService) ListPayments(ctx context.Context, userID, saleID uuid.UUID) ([]entity.Payment, error) {
	sale, err := s.saleRepo.GetByID(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}
	if sale.UserID != userID {
		return nil, apperror.ErrForbidden
	}
	return s.paymentRepo.ListBySale(ctx, saleID)
}
