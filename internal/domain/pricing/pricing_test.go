package pricing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Pritex32/priscomsales-api/internal/domain/enum"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

var (
	cementID = uuid.New()
	sandID   = uuid.New()
)

func TestCalculate(t *testing.T) {
	items := []LineItem{
		{ItemID: cementID, ItemName: "Cement", Quantity: 4, UnitPrice: dec("200")},
		{ItemID: sandID, ItemName: "Sand", Quantity: 2, UnitPrice: dec("100")},
	}

	t.Run("vat then percentage discount on vat inclusive subtotal", func(t *testing.T) {
		totals := Calculate(items, Config{
			ApplyVAT:      true,
			VATRate:       dec("7.5"),
			DiscountType:  enum.DiscountTypePercentage,
			DiscountValue: dec("10"),
		})

		assert.True(t, totals.Subtotal.Equal(dec("1000")), "subtotal %s", totals.Subtotal)
		assert.True(t, totals.VATAmount.Equal(dec("75")), "vat %s", totals.VATAmount)
		assert.True(t, totals.SubtotalWithVAT.Equal(dec("1075")), "with vat %s", totals.SubtotalWithVAT)
		assert.True(t, totals.DiscountAmount.Equal(dec("107.5")), "discount %s", totals.DiscountAmount)
		assert.True(t, totals.GrandTotal.Equal(dec("967.5")), "grand %s", totals.GrandTotal)
	})

	t.Run("fixed discount", func(t *testing.T) {
		totals := Calculate(items, Config{
			DiscountType:  enum.DiscountTypeFixedAmount,
			DiscountValue: dec("150"),
		})

		assert.True(t, totals.VATAmount.IsZero())
		assert.True(t, totals.DiscountAmount.Equal(dec("150")))
		assert.True(t, totals.GrandTotal.Equal(dec("850")))
	})

	t.Run("no discount", func(t *testing.T) {
		totals := Calculate(items, Config{ApplyVAT: true, VATRate: dec("7.5")})
		assert.True(t, totals.GrandTotal.Equal(dec("1075")))
	})

	t.Run("oversized fixed discount floors at zero", func(t *testing.T) {
		totals := Calculate(items, Config{
			DiscountType:  enum.DiscountTypeFixedAmount,
			DiscountValue: dec("5000"),
		})
		assert.True(t, totals.GrandTotal.IsZero())
	})

	t.Run("negative vat rate treated as zero", func(t *testing.T) {
		totals := Calculate(items, Config{ApplyVAT: true, VATRate: dec("-5")})
		assert.True(t, totals.VATAmount.IsZero())
		assert.True(t, totals.GrandTotal.Equal(dec("1000")))
	})

	t.Run("negative discount value treated as zero", func(t *testing.T) {
		totals := Calculate(items, Config{
			DiscountType:  enum.DiscountTypePercentage,
			DiscountValue: dec("-10"),
		})
		assert.True(t, totals.DiscountAmount.IsZero())
		assert.True(t, totals.GrandTotal.Equal(dec("1000")))
	})

	t.Run("empty cart", func(t *testing.T) {
		totals := Calculate(nil, Config{ApplyVAT: true, VATRate: dec("7.5")})
		assert.True(t, totals.Subtotal.IsZero())
		assert.True(t, totals.GrandTotal.IsZero())
	})
}

func TestBalance(t *testing.T) {
	assert.True(t, Balance(dec("967.5"), dec("500")).Equal(dec("467.5")))
	assert.True(t, Balance(dec("967.5"), dec("967.5")).IsZero())
	assert.True(t, Balance(dec("100"), dec("150")).IsZero(), "overpayment floors at zero")
}

func TestResolveStatus(t *testing.T) {
	assert.Equal(t, enum.PaymentStatusPaid, ResolveStatus(dec("100"), dec("100")))
	assert.Equal(t, enum.PaymentStatusPaid, ResolveStatus(dec("100"), dec("120")))
	assert.Equal(t, enum.PaymentStatusPartial, ResolveStatus(dec("100"), dec("40")))
	assert.Equal(t, enum.PaymentStatusCredit, ResolveStatus(dec("100"), dec("0")))
}

func TestValidateItems(t *testing.T) {
	catalog := Catalog{
		"Cement": {ItemID: cementID, ItemName: "Cement"},
		"Sand":   {ItemID: sandID, ItemName: "Sand"},
	}

	t.Run("valid items pass", func(t *testing.T) {
		err := ValidateItems([]LineItem{
			{ItemID: cementID, ItemName: "Cement", Quantity: 2, UnitPrice: dec("200")},
			{ItemID: sandID, ItemName: "Sand", Quantity: 1, UnitPrice: dec("100")},
		}, catalog)
		assert.NoError(t, err)
	})

	t.Run("unknown item", func(t *testing.T) {
		err := ValidateItems([]LineItem{
			{ItemID: uuid.New(), ItemName: "Gravel", Quantity: 1, UnitPrice: dec("50")},
		}, catalog)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, 1, verr.Position)
		assert.Equal(t, "Gravel", verr.ItemName)
	})

	t.Run("mismatched item id", func(t *testing.T) {
		err := ValidateItems([]LineItem{
			{ItemID: sandID, ItemName: "Cement", Quantity: 1, UnitPrice: dec("200")},
		}, catalog)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Reason, "id")
	})

	t.Run("position is one based", func(t *testing.T) {
		err := ValidateItems([]LineItem{
			{ItemID: cementID, ItemName: "Cement", Quantity: 1, UnitPrice: dec("200")},
			{ItemID: sandID, ItemName: "Sand", Quantity: 0, UnitPrice: dec("100")},
		}, catalog)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, 2, verr.Position)
		assert.Contains(t, verr.Reason, "quantity")
	})

	t.Run("non positive price", func(t *testing.T) {
		err := ValidateItems([]LineItem{
			{ItemID: cementID, ItemName: "Cement", Quantity: 1, UnitPrice: decimal.Zero},
		}, catalog)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Reason, "price")
	})
}

func TestDraft(t *testing.T) {
	var d Draft
	d.Add(cementID, "Cement", 2, dec("200"))
	d.Add(sandID, "Sand", 1, dec("100"))
	d.Add(cementID, "Cement", 3, dec("210"))

	require.Equal(t, 2, d.Len())
	items := d.Items()
	assert.Equal(t, 5, items[0].Quantity)
	assert.True(t, items[0].UnitPrice.Equal(dec("210")), "merged line keeps latest price")

	d.Remove("Sand")
	assert.Equal(t, 1, d.Len())

	d.Clear()
	assert.Equal(t, 0, d.Len())
}
