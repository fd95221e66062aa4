package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Pritex32/priscomsales-api/internal/domain/entity"
	"github.com/Pritex32/priscomsales-api/pkg/apperror"
)

func newInventoryFixture() (*InventoryService, *fakeItemRepo, *fakeLedgerRepo) {
	items := newFakeItemRepo()
	ledger := newFakeLedgerRepo()
	return NewInventoryService(items, ledger), items, ledger
}

func TestCreateItem(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("adds an item to the catalog", func(t *testing.T) {
		svc, items, _ := newInventoryFixture()

		item, err := svc.CreateItem(ctx, &CreateItemInput{UserID: userID, Name: "Cement", Price: 4500})
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, item.ID)

		stored, err := items.GetByName(ctx, userID, "Cement")
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.InDelta(t, 4500, stored.Price, 1e-9)
	})

	t.Run("rejects a blank name", func(t *testing.T) {
		svc, _, _ := newInventoryFixture()
		_, err := svc.CreateItem(ctx, &CreateItemInput{UserID: userID, Price: 100})
		assert.Error(t, err)
	})

	t.Run("rejects a non positive price", func(t *testing.T) {
		svc, _, _ := newInventoryFixture()
		_, err := svc.CreateItem(ctx, &CreateItemInput{UserID: userID, Name: "Cement"})
		assert.Error(t, err)
	})

	t.Run("rejects a duplicate name", func(t *testing.T) {
		svc, _, _ := newInventoryFixture()
		_, err := svc.CreateItem(ctx, &CreateItemInput{UserID: userID, Name: "Cement", Price: 100})
		require.NoError(t, err)

		_, err = svc.CreateItem(ctx, &CreateItemInput{UserID: userID, Name: "Cement", Price: 200})
		require.Error(t, err)
		assert.Equal(t, 409, apperror.GetAppError(err).Code)
	})
}

func TestRecordSupply(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	supplyDate := time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC)
	supplyDay := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)

	seedItem := func(t *testing.T, items *fakeItemRepo) uuid.UUID {
		t.Helper()
		item := &entity.InventoryItem{UserID: userID, Name: "Cement", Price: 4500}
		require.NoError(t, items.Create(ctx, item))
		return item.ID
	}

	t.Run("opens the first ledger row at zero", func(t *testing.T) {
		svc, items, _ := newInventoryFixture()
		itemID := seedItem(t, items)

		row, err := svc.RecordSupply(ctx, &RecordSupplyInput{
			UserID:           userID,
			ItemID:           itemID,
			Date:             supplyDate,
			SuppliedQuantity: 20,
		})
		require.NoError(t, err)
		assert.Equal(t, supplyDay, row.LogDate)
		assert.Equal(t, 0, row.OpenBalance)
		assert.Equal(t, 20, row.SuppliedQuantity)
		assert.Equal(t, 20, row.ClosingBalance())
	})

	t.Run("carries the previous closing balance forward", func(t *testing.T) {
		svc, items, ledger := newInventoryFixture()
		itemID := seedItem(t, items)
		require.NoError(t, ledger.Create(ctx, &entity.InventoryLog{
			UserID:           userID,
			ItemID:           itemID,
			ItemName:         "Cement",
			LogDate:          supplyDay.AddDate(0, 0, -3),
			OpenBalance:      40,
			SuppliedQuantity: 10,
			StockOut:         5,
		}))

		row, err := svc.RecordSupply(ctx, &RecordSupplyInput{
			UserID:           userID,
			ItemID:           itemID,
			Date:             supplyDate,
			SuppliedQuantity: 8,
			ReturnQuantity:   2,
		})
		require.NoError(t, err)
		assert.Equal(t, 45, row.OpenBalance)
		assert.Equal(t, 8, row.SuppliedQuantity)
		assert.Equal(t, 2, row.ReturnQuantity)
		assert.Equal(t, 55, row.ClosingBalance())
	})

	t.Run("merges into the day's existing row", func(t *testing.T) {
		svc, items, ledger := newInventoryFixture()
		itemID := seedItem(t, items)
		require.NoError(t, ledger.Create(ctx, &entity.InventoryLog{
			UserID:           userID,
			ItemID:           itemID,
			ItemName:         "Cement",
			LogDate:          supplyDay,
			OpenBalance:      30,
			SuppliedQuantity: 5,
		}))

		row, err := svc.RecordSupply(ctx, &RecordSupplyInput{
			UserID:           userID,
			ItemID:           itemID,
			Date:             supplyDate,
			SuppliedQuantity: 7,
		})
		require.NoError(t, err)
		assert.Equal(t, 30, row.OpenBalance)
		assert.Equal(t, 12, row.SuppliedQuantity)

		stored, err := ledger.GetByItemAndDate(ctx, itemID, supplyDay)
		require.NoError(t, err)
		assert.Equal(t, 12, stored.SuppliedQuantity)
	})

	t.Run("rejects negative quantities", func(t *testing.T) {
		svc, items, _ := newInventoryFixture()
		itemID := seedItem(t, items)

		_, err := svc.RecordSupply(ctx, &RecordSupplyInput{
			UserID:           userID,
			ItemID:           itemID,
			Date:             supplyDate,
			SuppliedQuantity: -1,
		})
		assert.Error(t, err)
	})

	t.Run("rejects an empty movement", func(t *testing.T) {
		svc, items, _ := newInventoryFixture()
		itemID := seedItem(t, items)

		_, err := svc.RecordSupply(ctx, &RecordSupplyInput{
			UserID: userID,
			ItemID: itemID,
			Date:   supplyDate,
		})
		assert.Error(t, err)
	})

	t.Run("returns not found for an unknown item", func(t *testing.T) {
		svc, _, _ := newInventoryFixture()

		_, err := svc.RecordSupply(ctx, &RecordSupplyInput{
			UserID:           userID,
			ItemID:           uuid.New(),
			Date:             supplyDate,
			SuppliedQuantity: 1,
		})
		require.Error(t, err)
		assert.Equal(t, 404, apperror.GetAppError(err).Code)
	})
}
