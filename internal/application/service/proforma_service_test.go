package service

import (
	"context"
	"mime/multipart"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Pritex32/priscomsales-api/internal/domain/entity"
	"github.com/Pritex32/priscomsales-api/internal/domain/enum"
	"github.com/Pritex32/priscomsales-api/pkg/apperror"
)

type proformaFixture struct {
	store        *proformaStore
	proformaRepo *fakeProformaRepo
	itemLineRepo *fakeProformaItemRepo
	catalogRepo  *fakeItemRepo
	customerRepo *fakeCustomerRepo
	evidence     *fakeEvidenceStore
	svc          *ProformaService
}

func newProformaFixture() *proformaFixture {
	store := newProformaStore()
	f := &proformaFixture{
		store:        store,
		proformaRepo: &fakeProformaRepo{store: store},
		itemLineRepo: &fakeProformaItemRepo{store: store},
		catalogRepo:  newFakeItemRepo(),
		customerRepo: newFakeCustomerRepo(),
		evidence:     &fakeEvidenceStore{},
	}
	f.svc = NewProformaService(f.proformaRepo, f.itemLineRepo, f.catalogRepo, f.customerRepo, f.evidence, 7, 7.5)
	return f
}

func (f *proformaFixture) seedCatalog(userID uuid.UUID, names ...string) map[string]uuid.UUID {
	ids := make(map[string]uuid.UUID, len(names))
	for _, name := range names {
		item := &entity.InventoryItem{UserID: userID, Name: name, Price: 100}
		_ = f.catalogRepo.Create(context.Background(), item)
		ids[name] = item.ID
	}
	return ids
}

func TestCreateProforma(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("creates a pending proforma with computed totals", func(t *testing.T) {
		f := newProformaFixture()
		ids := f.seedCatalog(userID, "Cement", "Sand")

		date := time.Date(2026, 8, 10, 15, 30, 0, 0, time.UTC)
		proforma, err := f.svc.CreateProforma(ctx, &CreateProformaInput{
			UserID:        userID,
			CustomerName:  "Chidinma Stores",
			Date:          date,
			ApplyVAT:      true,
			DiscountType:  enum.DiscountTypePercentage,
			DiscountValue: 10,
			Items: []ProformaLineInput{
				{ItemID: ids["Cement"], ItemName: "Cement", Quantity: 8, UnitPrice: 100},
				{ItemID: ids["Sand"], ItemName: "Sand", Quantity: 4, UnitPrice: 50},
			},
		})
		require.NoError(t, err)

		assert.Equal(t, "PF-000001", proforma.Reference)
		assert.Equal(t, enum.ProformaStatusPending, proforma.Status)
		assert.Equal(t, time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC), proforma.Date)
		assert.Equal(t, time.Date(2026, 8, 17, 0, 0, 0, 0, time.UTC), proforma.ExpiryDate)

		// 1000 subtotal, 7.5% VAT = 75, 10% discount on 1075 = 107.50
		assert.InDelta(t, 75.0, proforma.VATAmount, 1e-9)
		assert.InDelta(t, 107.5, proforma.DiscountAmount, 1e-9)
		assert.InDelta(t, 967.5, proforma.GrandTotal, 1e-9)
		assert.Equal(t, 7.5, proforma.VATRate)

		require.Len(t, proforma.Items, 2)
		assert.False(t, proforma.Items[0].Reconciled)
	})

	t.Run("merges duplicate lines by item name", func(t *testing.T) {
		f := newProformaFixture()
		ids := f.seedCatalog(userID, "Cement")

		proforma, err := f.svc.CreateProforma(ctx, &CreateProformaInput{
			UserID:       userID,
			CustomerName: "Chidinma Stores",
			Items: []ProformaLineInput{
				{ItemID: ids["Cement"], ItemName: "Cement", Quantity: 3, UnitPrice: 100},
				{ItemID: ids["Cement"], ItemName: "Cement", Quantity: 2, UnitPrice: 100},
			},
		})
		require.NoError(t, err)

		require.Len(t, proforma.Items, 1)
		assert.Equal(t, 5, proforma.Items[0].Quantity)
		assert.InDelta(t, 500.0, proforma.GrandTotal, 1e-9)
	})

	t.Run("rejects an empty customer name", func(t *testing.T) {
		f := newProformaFixture()
		ids := f.seedCatalog(userID, "Cement")

		_, err := f.svc.CreateProforma(ctx, &CreateProformaInput{
			UserID: userID,
			Items:  []ProformaLineInput{{ItemID: ids["Cement"], ItemName: "Cement", Quantity: 1, UnitPrice: 100}},
		})
		assert.Error(t, err)
	})

	t.Run("rejects an empty item list", func(t *testing.T) {
		f := newProformaFixture()

		_, err := f.svc.CreateProforma(ctx, &CreateProformaInput{
			UserID:       userID,
			CustomerName: "Chidinma Stores",
		})
		assert.Error(t, err)
	})

	t.Run("rejects an item missing from the catalog", func(t *testing.T) {
		f := newProformaFixture()
		f.seedCatalog(userID, "Cement")

		_, err := f.svc.CreateProforma(ctx, &CreateProformaInput{
			UserID:       userID,
			CustomerName: "Chidinma Stores",
			Items:        []ProformaLineInput{{ItemID: uuid.New(), ItemName: "Gravel", Quantity: 1, UnitPrice: 100}},
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Gravel")
	})

	t.Run("rejects an unknown customer reference", func(t *testing.T) {
		f := newProformaFixture()
		ids := f.seedCatalog(userID, "Cement")
		ghost := uuid.New()

		_, err := f.svc.CreateProforma(ctx, &CreateProformaInput{
			UserID:       userID,
			CustomerID:   &ghost,
			CustomerName: "Chidinma Stores",
			Items:        []ProformaLineInput{{ItemID: ids["Cement"], ItemName: "Cement", Quantity: 1, UnitPrice: 100}},
		})
		require.Error(t, err)
		assert.Equal(t, 404, apperror.GetAppError(err).Code)
	})

	t.Run("references increment per proforma", func(t *testing.T) {
		f := newProformaFixture()
		ids := f.seedCatalog(userID, "Cement")
		input := &CreateProformaInput{
			UserID:       userID,
			CustomerName: "Chidinma Stores",
			Items:        []ProformaLineInput{{ItemID: ids["Cement"], ItemName: "Cement", Quantity: 1, UnitPrice: 100}},
		}

		first, err := f.svc.CreateProforma(ctx, input)
		require.NoError(t, err)
		second, err := f.svc.CreateProforma(ctx, input)
		require.NoError(t, err)

		assert.Equal(t, "PF-000001", first.Reference)
		assert.Equal(t, "PF-000002", second.Reference)
	})
}

func TestAttachInvoiceEvidence(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	file := &multipart.FileHeader{Filename: "invoice.pdf"}

	create := func(t *testing.T, f *proformaFixture) *entity.Proforma {
		t.Helper()
		ids := f.seedCatalog(userID, "Cement")
		proforma, err := f.svc.CreateProforma(ctx, &CreateProformaInput{
			UserID:       userID,
			CustomerName: "Chidinma Stores",
			Items:        []ProformaLineInput{{ItemID: ids["Cement"], ItemName: "Cement", Quantity: 1, UnitPrice: 100}},
		})
		require.NoError(t, err)
		return proforma
	}

	t.Run("stores the document and records the URL", func(t *testing.T) {
		f := newProformaFixture()
		proforma := create(t, f)

		updated, err := f.svc.AttachInvoiceEvidence(ctx, userID, proforma.ID, file)
		require.NoError(t, err)
		require.NotNil(t, updated.InvoiceURL)
		assert.True(t, updated.HasInvoiceEvidence())
	})

	t.Run("rejects a second upload", func(t *testing.T) {
		f := newProformaFixture()
		proforma := create(t, f)

		_, err := f.svc.AttachInvoiceEvidence(ctx, userID, proforma.ID, file)
		require.NoError(t, err)

		_, err = f.svc.AttachInvoiceEvidence(ctx, userID, proforma.ID, file)
		assert.ErrorIs(t, err, apperror.ErrInvoiceAlreadyUploaded)
	})

	t.Run("rejects another user's proforma", func(t *testing.T) {
		f := newProformaFixture()
		proforma := create(t, f)

		_, err := f.svc.AttachInvoiceEvidence(ctx, uuid.New(), proforma.ID, file)
		assert.ErrorIs(t, err, apperror.ErrForbidden)
	})

	t.Run("rejects a converted proforma", func(t *testing.T) {
		f := newProformaFixture()
		proforma := create(t, f)

		stored, _ := f.proformaRepo.GetByID(ctx, proforma.ID)
		stored.Status = enum.ProformaStatusConverted
		require.NoError(t, f.proformaRepo.Update(ctx, stored))

		_, err := f.svc.AttachInvoiceEvidence(ctx, userID, proforma.ID, file)
		assert.ErrorIs(t, err, apperror.ErrAlreadyConverted)
	})
}

func TestDeleteProforma(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("deletes a pending proforma and its lines", func(t *testing.T) {
		f := newProformaFixture()
		ids := f.seedCatalog(userID, "Cement")
		proforma, err := f.svc.CreateProforma(ctx, &CreateProformaInput{
			UserID:       userID,
			CustomerName: "Chidinma Stores",
			Items:        []ProformaLineInput{{ItemID: ids["Cement"], ItemName: "Cement", Quantity: 1, UnitPrice: 100}},
		})
		require.NoError(t, err)

		require.NoError(t, f.svc.DeleteProforma(ctx, userID, proforma.ID))

		stored, _ := f.proformaRepo.GetByID(ctx, proforma.ID)
		assert.Nil(t, stored)
		lines, _ := f.itemLineRepo.GetByProformaID(ctx, proforma.ID)
		assert.Empty(t, lines)
	})

	t.Run("refuses to delete a converted proforma", func(t *testing.T) {
		f := newProformaFixture()
		ids := f.seedCatalog(userID, "Cement")
		proforma, err := f.svc.CreateProforma(ctx, &CreateProformaInput{
			UserID:       userID,
			CustomerName: "Chidinma Stores",
			Items:        []ProformaLineInput{{ItemID: ids["Cement"], ItemName: "Cement", Quantity: 1, UnitPrice: 100}},
		})
		require.NoError(t, err)

		stored, _ := f.proformaRepo.GetByID(ctx, proforma.ID)
		stored.Status = enum.ProformaStatusConverted
		require.NoError(t, f.proformaRepo.Update(ctx, stored))

		err = f.svc.DeleteProforma(ctx, userID, proforma.ID)
		assert.Error(t, err)
	})
}
