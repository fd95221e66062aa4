package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Pritex32/priscomsales-api/internal/domain/entity"
	"github.com/Pritex32/priscomsales-api/internal/domain/enum"
	"github.com/Pritex32/priscomsales-api/pkg/apperror"
)

type saleFixture struct {
	svc       *SaleService
	sales     *fakeSaleRepo
	saleItems *fakeSaleItemRepo
	payments  *fakePaymentRepo
	items     *fakeItemRepo
	ledger    *fakeLedgerRepo
	employees *fakeEmployeeRepo
	customers *fakeCustomerRepo
}

func newSaleFixture() *saleFixture {
	f := &saleFixture{
		sales:     newFakeSaleRepo(),
		saleItems: newFakeSaleItemRepo(),
		payments:  newFakePaymentRepo(),
		items:     newFakeItemRepo(),
		ledger:    newFakeLedgerRepo(),
		employees: newFakeEmployeeRepo(),
		customers: newFakeCustomerRepo(),
	}
	f.svc = NewSaleService(f.sales, f.saleItems, f.payments, f.items, f.ledger, f.employees, f.customers, 7.5, zap.NewNop())
	return f
}

func (f *saleFixture) seedItems(userID uuid.UUID, names ...string) map[string]uuid.UUID {
	ids := make(map[string]uuid.UUID, len(names))
	for _, name := range names {
		item := &entity.InventoryItem{UserID: userID, Name: name, Price: 100}
		_ = f.items.Create(context.Background(), item)
		ids[name] = item.ID
	}
	return ids
}

func TestCreateSale(t *testing.T) {
	ctx := context.Background()
	saleDate := time.Date(2026, 8, 15, 14, 30, 0, 0, time.UTC)

	t.Run("records a priced sale with payment and stock deduction", func(t *testing.T) {
		f := newSaleFixture()
		userID := uuid.New()
		ids := f.seedItems(userID, "Cement")
		require.NoError(t, f.employees.Create(ctx, &entity.Employee{UserID: userID, Name: "Ada"}))

		sale, err := f.svc.CreateSale(ctx, &CreateSaleInput{
			UserID:        userID,
			CustomerName:  "Chidinma Stores",
			SaleDate:      saleDate,
			ApplyVAT:      true,
			DiscountType:  enum.DiscountTypePercentage,
			DiscountValue: 10,
			PaymentMethod: enum.PaymentMethodCash,
			AmountPaid:    967.50,
			Items: []SaleLineInput{
				{ItemID: ids["Cement"], ItemName: "Cement", Quantity: 10, UnitPrice: 100},
			},
		})
		require.NoError(t, err)

		assert.InDelta(t, 75, sale.VATAmount, 1e-9)
		assert.InDelta(t, 107.50, sale.DiscountAmount, 1e-9)
		assert.InDelta(t, 967.50, sale.GrandTotal, 1e-9)
		assert.InDelta(t, 967.50, sale.AmountPaid, 1e-9)
		assert.Equal(t, enum.PaymentStatusPaid, sale.PaymentStatus)
		require.NotNil(t, sale.InvoiceNumber)
		assert.NotEmpty(t, *sale.InvoiceNumber)
		assert.NotNil(t, sale.EmployeeID)
		assert.Equal(t, time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC), sale.SaleDate)

		items, err := f.saleItems.GetBySaleID(ctx, sale.ID)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, 10, items[0].Quantity)
		assert.InDelta(t, 1000, items[0].LineTotal, 1e-9)

		paid, err := f.payments.SumBySale(ctx, sale.ID)
		require.NoError(t, err)
		assert.InDelta(t, 967.50, paid, 1e-9)

		row, err := f.ledger.GetByItemAndDate(ctx, ids["Cement"], sale.SaleDate)
		require.NoError(t, err)
		require.NotNil(t, row)
		assert.Equal(t, 10, row.StockOut)
	})

	t.Run("resolves a partial payment status", func(t *testing.T) {
		f := newSaleFixture()
		userID := uuid.New()
		ids := f.seedItems(userID, "Sand")

		sale, err := f.svc.CreateSale(ctx, &CreateSaleInput{
			UserID:        userID,
			CustomerName:  "Walk-in",
			SaleDate:      saleDate,
			PaymentMethod: enum.PaymentMethodTransfer,
			AmountPaid:    400,
			Items: []SaleLineInput{
				{ItemID: ids["Sand"], ItemName: "Sand", Quantity: 10, UnitPrice: 100},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, enum.PaymentStatusPartial, sale.PaymentStatus)
		assert.InDelta(t, 400, sale.AmountPaid, 1e-9)
	})

	t.Run("leaves an unpaid sale on credit without a payment row", func(t *testing.T) {
		f := newSaleFixture()
		userID := uuid.New()
		ids := f.seedItems(userID, "Sand")

		sale, err := f.svc.CreateSale(ctx, &CreateSaleInput{
			UserID:       userID,
			CustomerName: "Walk-in",
			SaleDate:     saleDate,
			Items: []SaleLineInput{
				{ItemID: ids["Sand"], ItemName: "Sand", Quantity: 2, UnitPrice: 100},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, enum.PaymentStatusCredit, sale.PaymentStatus)

		payments, err := f.payments.ListBySale(ctx, sale.ID)
		require.NoError(t, err)
		assert.Empty(t, payments)
	})

	t.Run("rejects a missing customer name", func(t *testing.T) {
		f := newSaleFixture()
		_, err := f.svc.CreateSale(ctx, &CreateSaleInput{
			UserID: uuid.New(),
			Items:  []SaleLineInput{{ItemID: uuid.New(), ItemName: "Sand", Quantity: 1, UnitPrice: 100}},
		})
		assert.Error(t, err)
	})

	t.Run("rejects an empty item list", func(t *testing.T) {
		f := newSaleFixture()
		_, err := f.svc.CreateSale(ctx, &CreateSaleInput{
			UserID:       uuid.New(),
			CustomerName: "Walk-in",
		})
		assert.Error(t, err)
	})

	t.Run("rejects a negative amount paid", func(t *testing.T) {
		f := newSaleFixture()
		userID := uuid.New()
		ids := f.seedItems(userID, "Sand")

		_, err := f.svc.CreateSale(ctx, &CreateSaleInput{
			UserID:       userID,
			CustomerName: "Walk-in",
			AmountPaid:   -5,
			Items:        []SaleLineInput{{ItemID: ids["Sand"], ItemName: "Sand", Quantity: 1, UnitPrice: 100}},
		})
		assert.Error(t, err)
	})

	t.Run("rejects paying more than the sale total", func(t *testing.T) {
		f := newSaleFixture()
		userID := uuid.New()
		ids := f.seedItems(userID, "Sand")

		_, err := f.svc.CreateSale(ctx, &CreateSaleInput{
			UserID:       userID,
			CustomerName: "Walk-in",
			SaleDate:     saleDate,
			AmountPaid:   250,
			Items:        []SaleLineInput{{ItemID: ids["Sand"], ItemName: "Sand", Quantity: 2, UnitPrice: 100}},
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "exceeds the sale total")
	})

	t.Run("rejects an item missing from the catalog", func(t *testing.T) {
		f := newSaleFixture()
		userID := uuid.New()
		f.seedItems(userID, "Cement")

		_, err := f.svc.CreateSale(ctx, &CreateSaleInput{
			UserID:       userID,
			CustomerName: "Walk-in",
			Items:        []SaleLineInput{{ItemID: uuid.New(), ItemName: "Gravel", Quantity: 1, UnitPrice: 100}},
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Gravel")
	})

	t.Run("rejects an unknown customer reference", func(t *testing.T) {
		f := newSaleFixture()
		userID := uuid.New()
		ids := f.seedItems(userID, "Sand")
		missing := uuid.New()

		_, err := f.svc.CreateSale(ctx, &CreateSaleInput{
			UserID:       userID,
			CustomerID:   &missing,
			CustomerName: "Walk-in",
			Items:        []SaleLineInput{{ItemID: ids["Sand"], ItemName: "Sand", Quantity: 1, UnitPrice: 100}},
		})
		require.Error(t, err)
		assert.Equal(t, 404, apperror.GetAppError(err).Code)
	})

	t.Run("keeps the sale when the ledger write fails", func(t *testing.T) {
		f := newSaleFixture()
		userID := uuid.New()
		ids := f.seedItems(userID, "Cement")
		f.ledger.failItemID = ids["Cement"]

		sale, err := f.svc.CreateSale(ctx, &CreateSaleInput{
			UserID:       userID,
			CustomerName: "Walk-in",
			SaleDate:     saleDate,
			Items:        []SaleLineInput{{ItemID: ids["Cement"], ItemName: "Cement", Quantity: 3, UnitPrice: 100}},
		})
		require.NoError(t, err)

		stored, err := f.sales.GetByID(ctx, sale.ID)
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Empty(t, f.ledger.rows)
	})

	t.Run("merges the deduction into the day's ledger row", func(t *testing.T) {
		f := newSaleFixture()
		userID := uuid.New()
		ids := f.seedItems(userID, "Cement")
		logDay := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)
		require.NoError(t, f.ledger.Create(ctx, &entity.InventoryLog{
			UserID:      userID,
			ItemID:      ids["Cement"],
			ItemName:    "Cement",
			LogDate:     logDay,
			OpenBalance: 50,
			StockOut:    4,
		}))

		_, err := f.svc.CreateSale(ctx, &CreateSaleInput{
			UserID:       userID,
			CustomerName: "Walk-in",
			SaleDate:     saleDate,
			Items:        []SaleLineInput{{ItemID: ids["Cement"], ItemName: "Cement", Quantity: 6, UnitPrice: 100}},
		})
		require.NoError(t, err)

		row, err := f.ledger.GetByItemAndDate(ctx, ids["Cement"], logDay)
		require.NoError(t, err)
		require.NotNil(t, row)
		assert.Equal(t, 50, row.OpenBalance)
		assert.Equal(t, 10, row.StockOut)
	})
}

func TestDeleteSale(t *testing.T) {
	ctx := context.Background()

	t.Run("removes the sale and its lines", func(t *testing.T) {
		f := newSaleFixture()
		userID := uuid.New()
		ids := f.seedItems(userID, "Sand")

		sale, err := f.svc.CreateSale(ctx, &CreateSaleInput{
			UserID:       userID,
			CustomerName: "Walk-in",
			Items:        []SaleLineInput{{ItemID: ids["Sand"], ItemName: "Sand", Quantity: 1, UnitPrice: 100}},
		})
		require.NoError(t, err)

		require.NoError(t, f.svc.DeleteSale(ctx, userID, sale.ID))

		stored, err := f.sales.GetByID(ctx, sale.ID)
		require.NoError(t, err)
		assert.Nil(t, stored)
		items, err := f.saleItems.GetBySaleID(ctx, sale.ID)
		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("refuses another user's sale", func(t *testing.T) {
		f := newSaleFixture()
		userID := uuid.New()
		ids := f.seedItems(userID, "Sand")

		sale, err := f.svc.CreateSale(ctx, &CreateSaleInput{
			UserID:       userID,
			CustomerName: "Walk-in",
			Items:        []SaleLineInput{{ItemID: ids["Sand"], ItemName: "Sand", Quantity: 1, UnitPrice: 100}},
		})
		require.NoError(t, err)

		err = f.svc.DeleteSale(ctx, uuid.New(), sale.ID)
		assert.ErrorIs(t, err, apperror.ErrForbidden)
	})
}
