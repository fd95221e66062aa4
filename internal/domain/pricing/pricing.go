// Package pricing implements the deterministic transaction pricing pipeline:
// line items plus VAT/discount configuration in, grand total and outstanding
// balance out. All money math runs on shopspring decimals; callers convert to
// float64 only at the persistence and JSON edges.
package pricing

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Pritex32/priscomsales-api/internal/domain/enum"
)

var oneHundred = decimal.NewFromInt(100)

// LineItem is a priced quantity of a catalog item inside a draft transaction.
type LineItem struct {
	ItemID    uuid.UUID
	ItemName  string
	Quantity  int
	UnitPrice decimal.Decimal
}

// Total returns quantity * unit price for the line.
func (l LineItem) Total() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Config carries the VAT and discount settings applied on top of the item
// subtotal.
type Config struct {
	ApplyVAT      bool
	VATRate       decimal.Decimal
	DiscountType  enum.DiscountType
	DiscountValue decimal.Decimal
}

// Totals is the fully derived pricing breakdown for a transaction. The
// ordering is fixed: the discount is computed over the VAT-inclusive
// subtotal, never over the bare subtotal.
type Totals struct {
	Subtotal        decimal.Decimal
	VATAmount       decimal.Decimal
	SubtotalWithVAT decimal.Decimal
	DiscountAmount  decimal.Decimal
	GrandTotal      decimal.Decimal
}

// Calculate derives the pricing breakdown for the given items and config.
// Negative VAT rates and discount values are treated as zero; the grand
// total is floored at zero.
func Calculate(items []LineItem, cfg Config) Totals {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.Total())
	}

	vatRate := cfg.VATRate
	if vatRate.IsNegative() {
		vatRate = decimal.Zero
	}

	vatAmount := decimal.Zero
	if cfg.ApplyVAT {
		vatAmount = subtotal.Mul(vatRate).Div(oneHundred)
	}
	withVAT := subtotal.Add(vatAmount)

	discountValue := cfg.DiscountValue
	if discountValue.IsNegative() {
		discountValue = decimal.Zero
	}

	discount := decimal.Zero
	switch {
	case cfg.DiscountType == enum.DiscountTypeNone || !discountValue.IsPositive():
		// no discount
	case cfg.DiscountType == enum.DiscountTypePercentage:
		discount = withVAT.Mul(discountValue).Div(oneHundred)
	default: // fixed amount
		discount = discountValue
	}

	grand := withVAT.Sub(discount)
	if grand.IsNegative() {
		grand = decimal.Zero
	}

	return Totals{
		Subtotal:        subtotal,
		VATAmount:       vatAmount,
		SubtotalWithVAT: withVAT,
		DiscountAmount:  discount,
		GrandTotal:      grand,
	}
}

// Balance is the outstanding amount on a grand total after payments, floored
// at zero.
func Balance(grandTotal, amountPaid decimal.Decimal) decimal.Decimal {
	balance := grandTotal.Sub(amountPaid)
	if balance.IsNegative() {
		return decimal.Zero
	}
	return balance
}

// ResolveStatus re-derives the payment status from a grand total and the
// amount paid so far: settled balances are paid, any payment at all is
// partial, and an untouched balance is credit.
func ResolveStatus(grandTotal, amountPaid decimal.Decimal) enum.PaymentStatus {
	if amountPaid.GreaterThanOrEqual(grandTotal) {
		return enum.PaymentStatusPaid
	}
	if amountPaid.IsPositive() {
		return enum.PaymentStatusPartial
	}
	return enum.PaymentStatusCredit
}
