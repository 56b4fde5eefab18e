package memstore_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfigueroa/stockpos-be/internal/adapters/memstore"
	"github.com/mfigueroa/stockpos-be/internal/core/domain"
)

func seedItem(t *testing.T, store *memstore.Store, total int64) *domain.Item {
	t.Helper()
	ctx := context.Background()

	item := &domain.Item{Name: "House Blend 250g", TotalAmount: decimal.NewFromInt(total)}
	item.PrepareForStorage()

	tx, err := store.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.CreateItem(ctx, item))
	require.NoError(t, tx.Commit(ctx))
	return item
}

func TestStore_CommitMakesWritesVisible(t *testing.T) {
	store := memstore.New()
	item := seedItem(t, store, 12)

	got := store.Item(item.ID)
	require.NotNil(t, got)
	assert.True(t, got.TotalAmount.Equal(decimal.NewFromInt(12)))
}

func TestStore_RollbackRestoresSnapshot(t *testing.T) {
	store := memstore.New()
	item := seedItem(t, store, 12)
	ctx := context.Background()
	before := store.Snapshot()

	tx, err := store.Begin(ctx)
	require.NoError(t, err)

	item.TotalAmount = decimal.NewFromInt(3)
	n, err := tx.UpdateItem(ctx, item)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	entry := &domain.LedgerEntry{ID: uuid.New(), ItemID: item.ID, Quantity: decimal.NewFromInt(9), Price: decimal.Zero}
	require.NoError(t, tx.AppendLedgerEntry(ctx, entry))

	require.NoError(t, tx.Rollback(ctx))

	assert.True(t, before.Equal(store.Snapshot()))
	assert.Empty(t, store.LedgerEntries())
}

func TestStore_FailOnInjectsErrors(t *testing.T) {
	store := memstore.New()
	item := seedItem(t, store, 5)
	ctx := context.Background()

	boom := errors.New("disk on fire")
	store.FailOn(memstore.OpUpdateItem, boom)

	tx, err := store.Begin(ctx)
	require.NoError(t, err)
	_, err = tx.UpdateItem(ctx, item)
	assert.ErrorIs(t, err, boom)
	require.NoError(t, tx.Rollback(ctx))

	store.FailOn(memstore.OpUpdateItem, nil)
	tx, err = store.Begin(ctx)
	require.NoError(t, err)
	n, err := tx.UpdateItem(ctx, item)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
	require.NoError(t, tx.Commit(ctx))
}

func TestStore_FailedCommitLeavesNoEffects(t *testing.T) {
	store := memstore.New()
	item := seedItem(t, store, 5)
	ctx := context.Background()
	before := store.Snapshot()

	store.FailOn(memstore.OpCommit, errors.New("commit refused"))
	tx, err := store.Begin(ctx)
	require.NoError(t, err)
	item.TotalAmount = decimal.Zero
	_, err = tx.UpdateItem(ctx, item)
	require.NoError(t, err)
	require.Error(t, tx.Commit(ctx))

	assert.True(t, before.Equal(store.Snapshot()))
}

func TestStore_DeleteSaleGroupCascadesEntries(t *testing.T) {
	store := memstore.New()
	item := seedItem(t, store, 5)
	ctx := context.Background()

	groupID := uuid.New()
	tx, err := store.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.CreateSaleGroup(ctx, &domain.SaleGroup{ID: groupID}))
	require.NoError(t, tx.AppendLedgerEntry(ctx, &domain.LedgerEntry{
		ID: uuid.New(), ItemID: item.ID, GroupID: &groupID, Quantity: decimal.NewFromInt(1),
	}))
	require.NoError(t, tx.AppendLedgerEntry(ctx, &domain.LedgerEntry{
		ID: uuid.New(), ItemID: item.ID, Quantity: decimal.NewFromInt(2),
	}))
	require.NoError(t, tx.Commit(ctx))

	tx, err = store.Begin(ctx)
	require.NoError(t, err)
	n, err := tx.DeleteSaleGroup(ctx, groupID)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)
	require.NoError(t, tx.Commit(ctx))

	assert.Nil(t, store.SaleGroup(groupID))
	entries := store.LedgerEntries()
	require.Len(t, entries, 1)
	assert.Nil(t, entries[0].GroupID)
}

func TestStore_CancelledContextBlocksWrites(t *testing.T) {
	store := memstore.New()
	item := seedItem(t, store, 5)

	ctx, cancel := context.WithCancel(context.Background())
	tx, err := store.Begin(ctx)
	require.NoError(t, err)
	cancel()

	_, err = tx.UpdateItem(ctx, item)
	assert.ErrorIs(t, err, context.Canceled)
	require.Error(t, tx.Commit(ctx))

	got := store.Item(item.ID)
	require.NotNil(t, got)
	assert.True(t, got.TotalAmount.Equal(decimal.NewFromInt(5)))
}
