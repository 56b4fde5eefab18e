package services_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfigueroa/stockpos-be/internal/adapters/memstore"
	"github.com/mfigueroa/stockpos-be/internal/core/domain"
	"github.com/mfigueroa/stockpos-be/internal/core/ports"
	"github.com/mfigueroa/stockpos-be/internal/core/services"
	"github.com/mfigueroa/stockpos-be/test/helpers"
)

func newService(store *memstore.Store) *services.StockService {
	return services.NewStockService(store, nil, helpers.TestLogger())
}

// seedStock creates an item with the given total and retail quantities.
func seedStock(t *testing.T, svc *services.StockService, total, retail int64) *domain.Item {
	t.Helper()
	qty := decimal.NewFromInt(retail)
	item, err := svc.CreateItem(context.Background(), ports.CreateItemCommand{
		Name:         "Single Origin 250g",
		SKU:          "SO-250",
		Price:        decimal.NewFromFloat(14.00),
		TotalAmount:  decimal.NewFromInt(total),
		ReorderLevel: decimal.NewFromInt(2),
		RetailQuantity: func() *decimal.Decimal {
			if retail < 0 {
				return nil
			}
			return &qty
		}(),
	})
	require.NoError(t, err)
	return item
}

func assertInvariant(t *testing.T, store *memstore.Store, itemID uuid.UUID) {
	t.Helper()
	item := store.Item(itemID)
	if item == nil {
		assert.Nil(t, store.AllocationByItem(itemID), "allocation must not survive its item")
		return
	}
	assert.False(t, item.TotalAmount.IsNegative(), "total must stay non-negative")
	if alloc := store.AllocationByItem(itemID); alloc != nil {
		assert.False(t, alloc.Quantity.IsNegative(), "allocation must stay non-negative")
		assert.True(t, alloc.Quantity.LessThanOrEqual(item.TotalAmount),
			"allocation %s must not exceed total %s", alloc.Quantity, item.TotalAmount)
	}
}

func TestStockService_CreateItem(t *testing.T) {
	t.Run("with_initial_allocation", func(t *testing.T) {
		store := memstore.New()
		svc := newService(store)
		item := seedStock(t, svc, 10, 4)

		alloc := store.AllocationByItem(item.ID)
		require.NotNil(t, alloc)
		assert.True(t, alloc.Quantity.Equal(decimal.NewFromInt(4)))
		assertInvariant(t, store, item.ID)
	})

	t.Run("without_allocation", func(t *testing.T) {
		store := memstore.New()
		svc := newService(store)
		item := seedStock(t, svc, 10, -1)
		assert.Nil(t, store.AllocationByItem(item.ID))
	})

	t.Run("initial_allocation_above_total_rejected", func(t *testing.T) {
		store := memstore.New()
		svc := newService(store)
		qty := decimal.NewFromInt(11)
		_, err := svc.CreateItem(context.Background(), ports.CreateItemCommand{
			Name:           "Too Eager",
			TotalAmount:    decimal.NewFromInt(10),
			RetailQuantity: &qty,
		})
		require.Error(t, err)
		assert.Equal(t, domain.KindValidation, domain.KindOf(err))
		assert.Equal(t, domain.CodeRetailExceedsTotal, domain.CodeOf(err))
	})
}

func TestStockService_RecordSale_Conservation(t *testing.T) {
	store := memstore.New()
	svc := newService(store)
	item := seedStock(t, svc, 10, 6)

	entry, err := svc.RecordSale(context.Background(), ports.SaleCommand{
		ItemID:   item.ID,
		Quantity: decimal.NewFromInt(4),
		Price:    decimal.NewFromFloat(14.00),
	})
	require.NoError(t, err)

	// Total and allocation each decrease by exactly the sold quantity.
	got := store.Item(item.ID)
	assert.True(t, got.TotalAmount.Equal(decimal.NewFromInt(6)))
	alloc := store.AllocationByItem(item.ID)
	assert.True(t, alloc.Quantity.Equal(decimal.NewFromInt(2)))

	// Exactly one ledger entry with the sold quantity and price.
	entries := store.LedgerEntries()
	require.Len(t, entries, 1)
	assert.Equal(t, entry.ID, entries[0].ID)
	assert.True(t, entries[0].Quantity.Equal(decimal.NewFromInt(4)))
	assert.True(t, entries[0].Price.Equal(decimal.NewFromFloat(14.00)))
	assert.Nil(t, entries[0].GroupID)

	assertInvariant(t, store, item.ID)
}

func TestStockService_RecordSale_AllocationCanReachZero(t *testing.T) {
	store := memstore.New()
	svc := newService(store)
	item := seedStock(t, svc, 10, 6)

	_, err := svc.RecordSale(context.Background(), ports.SaleCommand{
		ItemID:   item.ID,
		Quantity: decimal.NewFromInt(6),
		Price:    decimal.NewFromInt(1),
	})
	require.NoError(t, err)
	assert.True(t, store.AllocationByItem(item.ID).Quantity.IsZero())
	assertInvariant(t, store, item.ID)
}

func TestStockService_RecordSale_Failures(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(t *testing.T, svc *services.StockService, store *memstore.Store) ports.SaleCommand
		wantKind domain.ErrorKind
		wantCode string
	}{
		{
			name: "item_not_found",
			setup: func(t *testing.T, svc *services.StockService, store *memstore.Store) ports.SaleCommand {
				return ports.SaleCommand{ItemID: uuid.New(), Quantity: decimal.NewFromInt(1), Price: decimal.NewFromInt(1)}
			},
			wantKind: domain.KindNotFound,
			wantCode: domain.CodeItemNotFound,
		},
		{
			name: "allocation_missing",
			setup: func(t *testing.T, svc *services.StockService, store *memstore.Store) ports.SaleCommand {
				item := seedStock(t, svc, 10, -1)
				return ports.SaleCommand{ItemID: item.ID, Quantity: decimal.NewFromInt(1), Price: decimal.NewFromInt(1)}
			},
			wantKind: domain.KindNotFound,
			wantCode: domain.CodeAllocationNotFound,
		},
		{
			name: "insufficient_retail_stock",
			setup: func(t *testing.T, svc *services.StockService, store *memstore.Store) ports.SaleCommand {
				item := seedStock(t, svc, 10, 2)
				return ports.SaleCommand{ItemID: item.ID, Quantity: decimal.NewFromInt(3), Price: decimal.NewFromInt(1)}
			},
			wantKind: domain.KindConflict,
			wantCode: domain.CodeInsufficientStock,
		},
		{
			name: "non_positive_quantity",
			setup: func(t *testing.T, svc *services.StockService, store *memstore.Store) ports.SaleCommand {
				item := seedStock(t, svc, 10, 5)
				return ports.SaleCommand{ItemID: item.ID, Quantity: decimal.Zero, Price: decimal.NewFromInt(1)}
			},
			wantKind: domain.KindValidation,
			wantCode: domain.CodeInvalidSale,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := memstore.New()
			svc := newService(store)
			cmd := tt.setup(t, svc, store)
			before := store.Snapshot()

			_, err := svc.RecordSale(context.Background(), cmd)
			require.Error(t, err)
			assert.Equal(t, tt.wantKind, domain.KindOf(err))
			assert.Equal(t, tt.wantCode, domain.CodeOf(err))

			// A failed sale leaves every record untouched.
			assert.True(t, before.Equal(store.Snapshot()))
		})
	}
}

func TestStockService_RecordSale_AtomicOnInjectedFailures(t *testing.T) {
	for _, op := range []memstore.Op{
		memstore.OpAppendLedgerEntry,
		memstore.OpUpdateAllocation,
		memstore.OpUpdateItem,
		memstore.OpCommit,
	} {
		t.Run(string(op), func(t *testing.T) {
			store := memstore.New()
			svc := newService(store)
			item := seedStock(t, svc, 10, 6)
			before := store.Snapshot()

			store.FailOn(op, errors.New("injected failure"))
			_, err := svc.RecordSale(context.Background(), ports.SaleCommand{
				ItemID:   item.ID,
				Quantity: decimal.NewFromInt(2),
				Price:    decimal.NewFromInt(1),
			})
			require.Error(t, err)
			assert.Equal(t, domain.KindStoreFailure, domain.KindOf(err))

			// Item, allocation and ledger match the pre-operation snapshot.
			assert.True(t, before.Equal(store.Snapshot()))
		})
	}
}

func TestStockService_ReviseSale_UpwardCorrection(t *testing.T) {
	store := memstore.New()
	svc := newService(store)
	item := seedStock(t, svc, 10, 6)

	entry, err := svc.RecordSale(context.Background(), ports.SaleCommand{
		ItemID:   item.ID,
		Quantity: decimal.NewFromInt(2),
		Price:    decimal.NewFromInt(14),
	})
	require.NoError(t, err)

	// Correcting 2 -> 5 moves allocation and total by the delta of 3, so the
	// records read as if 5 had been sold in the first place.
	revised, err := svc.ReviseSale(context.Background(), entry.ID, decimal.NewFromInt(5))
	require.NoError(t, err)
	assert.True(t, revised.Quantity.Equal(decimal.NewFromInt(5)))

	assert.True(t, store.Item(item.ID).TotalAmount.Equal(decimal.NewFromInt(5)))
	assert.True(t, store.AllocationByItem(item.ID).Quantity.Equal(decimal.NewFromInt(1)))

	entries := store.LedgerEntries()
	require.Len(t, entries, 1)
	assert.True(t, entries[0].Quantity.Equal(decimal.NewFromInt(5)))
	assert.True(t, entries[0].Price.Equal(decimal.NewFromInt(14)))

	assertInvariant(t, store, item.ID)
}

func TestStockService_ReviseSale_DownwardCorrectionReturnsStock(t *testing.T) {
	store := memstore.New()
	svc := newService(store)
	item := seedStock(t, svc, 10, 6)

	entry, err := svc.RecordSale(context.Background(), ports.SaleCommand{
		ItemID:   item.ID,
		Quantity: decimal.NewFromInt(5),
		Price:    decimal.NewFromInt(14),
	})
	require.NoError(t, err)

	_, err = svc.ReviseSale(context.Background(), entry.ID, decimal.NewFromInt(2))
	require.NoError(t, err)

	// The overstated 3 units come back to both sides.
	assert.True(t, store.Item(item.ID).TotalAmount.Equal(decimal.NewFromInt(8)))
	assert.True(t, store.AllocationByItem(item.ID).Quantity.Equal(decimal.NewFromInt(4)))
	assertInvariant(t, store, item.ID)
}

func TestStockService_ReviseSale_SameQuantityIsNoOp(t *testing.T) {
	store := memstore.New()
	svc := newService(store)
	item := seedStock(t, svc, 10, 6)

	entry, err := svc.RecordSale(context.Background(), ports.SaleCommand{
		ItemID:   item.ID,
		Quantity: decimal.NewFromInt(2),
		Price:    decimal.NewFromInt(1),
	})
	require.NoError(t, err)
	before := store.Snapshot()

	_, err = svc.ReviseSale(context.Background(), entry.ID, decimal.NewFromInt(2))
	require.NoError(t, err)
	assert.True(t, before.Equal(store.Snapshot()))
}

func TestStockService_ReviseSale_Failures(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(t *testing.T, svc *services.StockService, store *memstore.Store) (uuid.UUID, decimal.Decimal)
		wantKind domain.ErrorKind
		wantCode string
	}{
		{
			name: "entry_not_found",
			setup: func(t *testing.T, svc *services.StockService, store *memstore.Store) (uuid.UUID, decimal.Decimal) {
				seedStock(t, svc, 10, 6)
				return uuid.New(), decimal.NewFromInt(1)
			},
			wantKind: domain.KindNotFound,
			wantCode: domain.CodeEntryNotFound,
		},
		{
			name: "non_positive_quantity",
			setup: func(t *testing.T, svc *services.StockService, store *memstore.Store) (uuid.UUID, decimal.Decimal) {
				item := seedStock(t, svc, 10, 6)
				entry, err := svc.RecordSale(context.Background(), ports.SaleCommand{
					ItemID: item.ID, Quantity: decimal.NewFromInt(1), Price: decimal.NewFromInt(1),
				})
				require.NoError(t, err)
				return entry.ID, decimal.Zero
			},
			wantKind: domain.KindValidation,
			wantCode: domain.CodeInvalidSale,
		},
		{
			name: "correction_exceeds_retail_stock",
			setup: func(t *testing.T, svc *services.StockService, store *memstore.Store) (uuid.UUID, decimal.Decimal) {
				item := seedStock(t, svc, 10, 6)
				entry, err := svc.RecordSale(context.Background(), ports.SaleCommand{
					ItemID: item.ID, Quantity: decimal.NewFromInt(2), Price: decimal.NewFromInt(1),
				})
				require.NoError(t, err)
				// Only 4 remain on the shelf; a correction to 7 needs 5 more.
				return entry.ID, decimal.NewFromInt(7)
			},
			wantKind: domain.KindConflict,
			wantCode: domain.CodeInsufficientStock,
		},
		{
			name: "loss_entry_not_revisable",
			setup: func(t *testing.T, svc *services.StockService, store *memstore.Store) (uuid.UUID, decimal.Decimal) {
				item := seedStock(t, svc, 10, 6)
				_, err := svc.ReviseItem(context.Background(), ports.ReviseItemCommand{
					ItemID: item.ID, Name: item.Name, TotalAmount: decimal.NewFromInt(8), RecordLoss: true,
				})
				require.NoError(t, err)
				entries := store.LedgerEntries()
				require.Len(t, entries, 1)
				require.True(t, entries[0].IsLoss())
				return entries[0].ID, decimal.NewFromInt(1)
			},
			wantKind: domain.KindConflict,
			wantCode: domain.CodeInvalidSale,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := memstore.New()
			svc := newService(store)
			entryID, quantity := tt.setup(t, svc, store)
			before := store.Snapshot()

			_, err := svc.ReviseSale(context.Background(), entryID, quantity)
			require.Error(t, err)
			assert.Equal(t, tt.wantKind, domain.KindOf(err))
			assert.Equal(t, tt.wantCode, domain.CodeOf(err))

			// A failed correction leaves every record untouched.
			assert.True(t, before.Equal(store.Snapshot()))
		})
	}
}

func TestStockService_ReviseSale_AtomicOnInjectedFailures(t *testing.T) {
	for _, op := range []memstore.Op{
		memstore.OpUpdateLedgerEntry,
		memstore.OpUpdateAllocation,
		memstore.OpUpdateItem,
		memstore.OpCommit,
	} {
		t.Run(string(op), func(t *testing.T) {
			store := memstore.New()
			svc := newService(store)
			item := seedStock(t, svc, 10, 6)
			entry, err := svc.RecordSale(context.Background(), ports.SaleCommand{
				ItemID:   item.ID,
				Quantity: decimal.NewFromInt(2),
				Price:    decimal.NewFromInt(1),
			})
			require.NoError(t, err)
			before := store.Snapshot()

			store.FailOn(op, errors.New("injected failure"))
			_, err = svc.ReviseSale(context.Background(), entry.ID, decimal.NewFromInt(4))
			require.Error(t, err)
			assert.Equal(t, domain.KindStoreFailure, domain.KindOf(err))

			// Entry, allocation and item match the pre-operation snapshot.
			assert.True(t, before.Equal(store.Snapshot()))
		})
	}
}

func TestStockService_RecordSaleGroup(t *testing.T) {
	store := memstore.New()
	svc := newService(store)
	a := seedStock(t, svc, 10, 6)
	b := seedStock(t, svc, 20, 8)

	group, err := svc.RecordSaleGroup(context.Background(), ports.SaleGroupCommand{
		CustomerName:  "walk-in",
		PaymentMethod: "card",
		TotalAmount:   decimal.NewFromFloat(42.00),
		Lines: []ports.SaleCommand{
			{ItemID: a.ID, Quantity: decimal.NewFromInt(2), Price: decimal.NewFromInt(14)},
			{ItemID: b.ID, Quantity: decimal.NewFromInt(1), Price: decimal.NewFromInt(14)},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, store.SaleGroup(group.ID))

	entries := store.LedgerEntries()
	require.Len(t, entries, 2)
	for _, e := range entries {
		require.NotNil(t, e.GroupID)
		assert.Equal(t, group.ID, *e.GroupID)
	}
	// Lines applied in input order.
	assert.Equal(t, a.ID, entries[0].ItemID)
	assert.Equal(t, b.ID, entries[1].ItemID)

	assert.True(t, store.Item(a.ID).TotalAmount.Equal(decimal.NewFromInt(8)))
	assert.True(t, store.Item(b.ID).TotalAmount.Equal(decimal.NewFromInt(19)))
	assertInvariant(t, store, a.ID)
	assertInvariant(t, store, b.ID)
}

func TestStockService_RecordSaleGroup_AllOrNothing(t *testing.T) {
	store := memstore.New()
	svc := newService(store)
	a := seedStock(t, svc, 10, 6)
	b := seedStock(t, svc, 20, 1) // line 2 will fail here
	c := seedStock(t, svc, 30, 9)
	before := store.Snapshot()

	_, err := svc.RecordSaleGroup(context.Background(), ports.SaleGroupCommand{
		TotalAmount: decimal.NewFromInt(10),
		Lines: []ports.SaleCommand{
			{ItemID: a.ID, Quantity: decimal.NewFromInt(2), Price: decimal.NewFromInt(1)},
			{ItemID: b.ID, Quantity: decimal.NewFromInt(5), Price: decimal.NewFromInt(1)},
			{ItemID: c.ID, Quantity: decimal.NewFromInt(1), Price: decimal.NewFromInt(1)},
		},
	})
	require.Error(t, err)
	assert.Equal(t, domain.KindConflict, domain.KindOf(err))
	assert.Contains(t, err.Error(), "line 1")

	// Zero entries from the group are visible and the group row is gone.
	assert.Empty(t, store.LedgerEntries())
	assert.True(t, before.Equal(store.Snapshot()))
}

func TestStockService_RecordSaleGroup_EmptyRejected(t *testing.T) {
	store := memstore.New()
	svc := newService(store)

	_, err := svc.RecordSaleGroup(context.Background(), ports.SaleGroupCommand{TotalAmount: decimal.NewFromInt(1)})
	require.Error(t, err)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}

func TestStockService_ReviseItem_ClampWithoutLoss(t *testing.T) {
	store := memstore.New()
	svc := newService(store)
	item := seedStock(t, svc, 10, 8)

	// Shrinking total below the allocation clamps the allocation; no loss
	// entry is required to produce the clamp.
	_, err := svc.ReviseItem(context.Background(), ports.ReviseItemCommand{
		ItemID:       item.ID,
		Name:         item.Name,
		SKU:          item.SKU,
		Price:        item.Price,
		TotalAmount:  decimal.NewFromInt(5),
		ReorderLevel: item.ReorderLevel,
	})
	require.NoError(t, err)

	alloc := store.AllocationByItem(item.ID)
	assert.True(t, alloc.Quantity.Equal(decimal.NewFromInt(5)))
	assert.Empty(t, store.LedgerEntries())
	assertInvariant(t, store, item.ID)
}

func TestStockService_ReviseItem_LossAndReallocationIndependent(t *testing.T) {
	store := memstore.New()
	svc := newService(store)
	item := seedStock(t, svc, 10, 8)

	retail := decimal.NewFromInt(3)
	_, err := svc.ReviseItem(context.Background(), ports.ReviseItemCommand{
		ItemID:         item.ID,
		Name:           item.Name,
		SKU:            item.SKU,
		Price:          item.Price,
		TotalAmount:    decimal.NewFromInt(4),
		ReorderLevel:   item.ReorderLevel,
		RetailQuantity: &retail,
		RecordLoss:     true,
	})
	require.NoError(t, err)

	// Loss entry records the reduction at zero price.
	entries := store.LedgerEntries()
	require.Len(t, entries, 1)
	assert.True(t, entries[0].Quantity.Equal(decimal.NewFromInt(6)))
	assert.True(t, entries[0].IsLoss())

	// The explicit value wins over any clamp.
	alloc := store.AllocationByItem(item.ID)
	assert.True(t, alloc.Quantity.Equal(decimal.NewFromInt(3)))

	// Total applied once, not decremented again by the loss entry.
	assert.True(t, store.Item(item.ID).TotalAmount.Equal(decimal.NewFromInt(4)))
	assertInvariant(t, store, item.ID)
}

func TestStockService_ReviseItem_NoLossEntryWhenTotalGrows(t *testing.T) {
	store := memstore.New()
	svc := newService(store)
	item := seedStock(t, svc, 10, 8)

	_, err := svc.ReviseItem(context.Background(), ports.ReviseItemCommand{
		ItemID:       item.ID,
		Name:         item.Name,
		SKU:          item.SKU,
		Price:        item.Price,
		TotalAmount:  decimal.NewFromInt(15),
		ReorderLevel: item.ReorderLevel,
		RecordLoss:   true,
	})
	require.NoError(t, err)
	assert.Empty(t, store.LedgerEntries())
	// Allocation untouched when it already fits.
	assert.True(t, store.AllocationByItem(item.ID).Quantity.Equal(decimal.NewFromInt(8)))
}

func TestStockService_ReviseItem_ExplicitRetailAboveTotalRejected(t *testing.T) {
	store := memstore.New()
	svc := newService(store)
	item := seedStock(t, svc, 10, 8)
	before := store.Snapshot()

	retail := decimal.NewFromInt(6)
	_, err := svc.ReviseItem(context.Background(), ports.ReviseItemCommand{
		ItemID:         item.ID,
		Name:           item.Name,
		TotalAmount:    decimal.NewFromInt(5),
		RetailQuantity: &retail,
	})
	require.Error(t, err)
	assert.Equal(t, domain.CodeRetailExceedsTotal, domain.CodeOf(err))
	// Rejected before any mutation.
	assert.True(t, before.Equal(store.Snapshot()))
}

func TestStockService_ReviseItem_NoAllocationToReconcile(t *testing.T) {
	store := memstore.New()
	svc := newService(store)
	item := seedStock(t, svc, 10, -1)

	_, err := svc.ReviseItem(context.Background(), ports.ReviseItemCommand{
		ItemID:      item.ID,
		Name:        item.Name,
		TotalAmount: decimal.NewFromInt(2),
		RecordLoss:  true,
	})
	require.NoError(t, err)
	assert.Nil(t, store.AllocationByItem(item.ID))

	entries := store.LedgerEntries()
	require.Len(t, entries, 1)
	assert.True(t, entries[0].Quantity.Equal(decimal.NewFromInt(8)))
}

func TestStockService_ReviseItem_AtomicOnLossFailure(t *testing.T) {
	store := memstore.New()
	svc := newService(store)
	item := seedStock(t, svc, 10, 8)
	before := store.Snapshot()

	store.FailOn(memstore.OpAppendLedgerEntry, errors.New("ledger down"))
	_, err := svc.ReviseItem(context.Background(), ports.ReviseItemCommand{
		ItemID:      item.ID,
		Name:        item.Name,
		TotalAmount: decimal.NewFromInt(4),
		RecordLoss:  true,
	})
	require.Error(t, err)
	assert.Equal(t, domain.KindStoreFailure, domain.KindOf(err))

	// The total-amount change rolled back with the failed loss append.
	assert.True(t, before.Equal(store.Snapshot()))
}

func TestStockService_RemoveItem_Cascade(t *testing.T) {
	store := memstore.New()
	svc := newService(store)
	item := seedStock(t, svc, 10, 8)

	require.NoError(t, svc.RemoveItem(context.Background(), item.ID))

	assert.Nil(t, store.Item(item.ID))
	assert.Nil(t, store.AllocationByItem(item.ID))
}

func TestStockService_RemoveItem_AtomicWhenItemDeleteFails(t *testing.T) {
	store := memstore.New()
	svc := newService(store)
	item := seedStock(t, svc, 10, 8)
	before := store.Snapshot()

	store.FailOn(memstore.OpDeleteItem, errors.New("delete refused"))
	err := svc.RemoveItem(context.Background(), item.ID)
	require.Error(t, err)

	// The already-deleted allocation came back with the rollback.
	require.NotNil(t, store.AllocationByItem(item.ID))
	assert.True(t, before.Equal(store.Snapshot()))
}

func TestStockService_RemoveItem_NotFound(t *testing.T) {
	store := memstore.New()
	svc := newService(store)

	err := svc.RemoveItem(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
}

func TestStockService_RestockItem(t *testing.T) {
	store := memstore.New()
	svc := newService(store)
	item := seedStock(t, svc, 10, 8)

	got, err := svc.RestockItem(context.Background(), item.ID, decimal.NewFromInt(15))
	require.NoError(t, err)
	assert.True(t, got.TotalAmount.Equal(decimal.NewFromInt(25)))
	// Restocks are not ledger events.
	assert.Empty(t, store.LedgerEntries())

	_, err = svc.RestockItem(context.Background(), item.ID, decimal.Zero)
	require.Error(t, err)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}

func TestStockService_ItemTypeLifecycle(t *testing.T) {
	store := memstore.New()
	svc := newService(store)
	ctx := context.Background()

	itemType, err := svc.CreateItemType(ctx, "Beans")
	require.NoError(t, err)
	require.NotNil(t, store.ItemType(itemType.ID))
	assert.Equal(t, "Beans", store.ItemType(itemType.ID).Name)

	renamed, err := svc.RenameItemType(ctx, itemType.ID, "Whole Beans")
	require.NoError(t, err)
	assert.Equal(t, "Whole Beans", renamed.Name)
	assert.Equal(t, "Whole Beans", store.ItemType(itemType.ID).Name)

	require.NoError(t, svc.RemoveItemType(ctx, itemType.ID))
	assert.Nil(t, store.ItemType(itemType.ID))
}

func TestStockService_CreateItemType_EmptyNameRejected(t *testing.T) {
	store := memstore.New()
	svc := newService(store)

	_, err := svc.CreateItemType(context.Background(), "")
	require.Error(t, err)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
	assert.Equal(t, domain.CodeInvalidItemType, domain.CodeOf(err))
}

func TestStockService_RenameItemType_NotFound(t *testing.T) {
	store := memstore.New()
	svc := newService(store)

	_, err := svc.RenameItemType(context.Background(), uuid.New(), "Ghost")
	require.Error(t, err)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
	assert.Equal(t, domain.CodeItemTypeNotFound, domain.CodeOf(err))
}

func TestStockService_RemoveItemType_InUseConflicts(t *testing.T) {
	store := memstore.New()
	svc := newService(store)
	ctx := context.Background()

	itemType, err := svc.CreateItemType(ctx, "Beans")
	require.NoError(t, err)
	item, err := svc.CreateItem(ctx, ports.CreateItemCommand{
		Name:        "Single Origin 250g",
		SKU:         "SO-250",
		TypeID:      &itemType.ID,
		Price:       decimal.NewFromFloat(14.00),
		TotalAmount: decimal.NewFromInt(10),
	})
	require.NoError(t, err)

	err = svc.RemoveItemType(ctx, itemType.ID)
	require.Error(t, err)
	assert.Equal(t, domain.KindConflict, domain.KindOf(err))
	assert.Equal(t, domain.CodeItemTypeInUse, domain.CodeOf(err))
	require.NotNil(t, store.ItemType(itemType.ID))

	// Once no item references it, the type can go.
	require.NoError(t, svc.RemoveItem(ctx, item.ID))
	require.NoError(t, svc.RemoveItemType(ctx, itemType.ID))
}

func TestStockService_CreateItem_UnknownTypeRejected(t *testing.T) {
	store := memstore.New()
	svc := newService(store)
	ghost := uuid.New()
	before := store.Snapshot()

	_, err := svc.CreateItem(context.Background(), ports.CreateItemCommand{
		Name:        "Untypeable",
		TypeID:      &ghost,
		TotalAmount: decimal.NewFromInt(5),
	})
	require.Error(t, err)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
	assert.Equal(t, domain.CodeItemTypeNotFound, domain.CodeOf(err))

	// The item creation rolled back with the failed type check.
	assert.True(t, before.Equal(store.Snapshot()))
}

func TestStockService_CreateItem_WithTypePersistsReference(t *testing.T) {
	store := memstore.New()
	svc := newService(store)
	ctx := context.Background()

	itemType, err := svc.CreateItemType(ctx, "Beans")
	require.NoError(t, err)
	item, err := svc.CreateItem(ctx, ports.CreateItemCommand{
		Name:        "Single Origin 250g",
		TypeID:      &itemType.ID,
		TotalAmount: decimal.NewFromInt(10),
	})
	require.NoError(t, err)

	got := store.Item(item.ID)
	require.NotNil(t, got)
	require.NotNil(t, got.TypeID)
	assert.Equal(t, itemType.ID, *got.TypeID)
}

func TestStockService_ReviseItem_CanRetypeItem(t *testing.T) {
	store := memstore.New()
	svc := newService(store)
	ctx := context.Background()
	item := seedStock(t, svc, 10, 8)

	itemType, err := svc.CreateItemType(ctx, "Beans")
	require.NoError(t, err)

	_, err = svc.ReviseItem(ctx, ports.ReviseItemCommand{
		ItemID:       item.ID,
		Name:         item.Name,
		SKU:          item.SKU,
		TypeID:       &itemType.ID,
		Price:        item.Price,
		TotalAmount:  item.TotalAmount,
		ReorderLevel: item.ReorderLevel,
	})
	require.NoError(t, err)

	got := store.Item(item.ID)
	require.NotNil(t, got.TypeID)
	assert.Equal(t, itemType.ID, *got.TypeID)

	// Clearing the reference detaches the item from the category.
	_, err = svc.ReviseItem(ctx, ports.ReviseItemCommand{
		ItemID:       item.ID,
		Name:         item.Name,
		SKU:          item.SKU,
		Price:        item.Price,
		TotalAmount:  item.TotalAmount,
		ReorderLevel: item.ReorderLevel,
	})
	require.NoError(t, err)
	assert.Nil(t, store.Item(item.ID).TypeID)
	require.NoError(t, svc.RemoveItemType(ctx, itemType.ID))
}

func TestStockService_SetAllocation(t *testing.T) {
	store := memstore.New()
	svc := newService(store)
	item := seedStock(t, svc, 10, 8)

	alloc, err := svc.SetAllocation(context.Background(), item.ID, decimal.NewFromInt(10))
	require.NoError(t, err)
	assert.True(t, alloc.Quantity.Equal(decimal.NewFromInt(10)))

	_, err = svc.SetAllocation(context.Background(), item.ID, decimal.NewFromInt(11))
	require.Error(t, err)
	assert.Equal(t, domain.CodeRetailExceedsTotal, domain.CodeOf(err))

	// Creates the allocation when the item has none yet.
	bare := seedStock(t, svc, 5, -1)
	alloc, err = svc.SetAllocation(context.Background(), bare.ID, decimal.NewFromInt(2))
	require.NoError(t, err)
	assert.True(t, alloc.Quantity.Equal(decimal.NewFromInt(2)))
	assertInvariant(t, store, bare.ID)
}

func TestStockService_DeleteSaleGroup(t *testing.T) {
	store := memstore.New()
	svc := newService(store)
	item := seedStock(t, svc, 10, 8)

	group, err := svc.RecordSaleGroup(context.Background(), ports.SaleGroupCommand{
		TotalAmount: decimal.NewFromInt(2),
		Lines: []ports.SaleCommand{
			{ItemID: item.ID, Quantity: decimal.NewFromInt(2), Price: decimal.NewFromInt(1)},
		},
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteSaleGroup(context.Background(), group.ID))
	assert.Nil(t, store.SaleGroup(group.ID))

	err = svc.DeleteSaleGroup(context.Background(), group.ID)
	require.Error(t, err)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
}

func TestStockService_CancelledContextLeavesNoEffect(t *testing.T) {
	store := memstore.New()
	svc := newService(store)
	item := seedStock(t, svc, 10, 8)
	before := store.Snapshot()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := svc.RecordSale(ctx, ports.SaleCommand{
		ItemID:   item.ID,
		Quantity: decimal.NewFromInt(1),
		Price:    decimal.NewFromInt(1),
	})
	require.Error(t, err)
	assert.True(t, before.Equal(store.Snapshot()))
}

func TestStockService_InvariantAcrossOperationSequence(t *testing.T) {
	store := memstore.New()
	svc := newService(store)
	item := seedStock(t, svc, 50, 30)
	ctx := context.Background()

	retail := decimal.NewFromInt(12)
	steps := []func() error{
		func() error {
			_, err := svc.RecordSale(ctx, ports.SaleCommand{ItemID: item.ID, Quantity: decimal.NewFromInt(10), Price: decimal.NewFromInt(1)})
			return err
		},
		func() error {
			_, err := svc.ReviseItem(ctx, ports.ReviseItemCommand{
				ItemID: item.ID, Name: item.Name, TotalAmount: decimal.NewFromInt(15), RecordLoss: true,
			})
			return err
		},
		func() error {
			_, err := svc.SetAllocation(ctx, item.ID, retail)
			return err
		},
		func() error {
			_, err := svc.RecordSaleGroup(ctx, ports.SaleGroupCommand{
				TotalAmount: decimal.NewFromInt(5),
				Lines: []ports.SaleCommand{
					{ItemID: item.ID, Quantity: decimal.NewFromInt(3), Price: decimal.NewFromInt(1)},
					{ItemID: item.ID, Quantity: decimal.NewFromInt(2), Price: decimal.NewFromInt(1)},
				},
			})
			return err
		},
		func() error {
			_, err := svc.RestockItem(ctx, item.ID, decimal.NewFromInt(7))
			return err
		},
	}

	// The allocation invariant holds after every individually successful
	// operation.
	for i, step := range steps {
		require.NoError(t, step(), "step %d", i)
		assertInvariant(t, store, item.ID)
	}
}

func TestStockService_ConcurrentSalesSameItem(t *testing.T) {
	store := memstore.New()
	svc := newService(store)
	item := seedStock(t, svc, 100, 100)

	const goroutines = 20
	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			_, err := svc.RecordSale(context.Background(), ports.SaleCommand{
				ItemID:   item.ID,
				Quantity: decimal.NewFromInt(2),
				Price:    decimal.NewFromInt(1),
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	// No lost updates: every decrement landed exactly once.
	assert.True(t, store.Item(item.ID).TotalAmount.Equal(decimal.NewFromInt(60)))
	assert.True(t, store.AllocationByItem(item.ID).Quantity.Equal(decimal.NewFromInt(60)))
	assert.Len(t, store.LedgerEntries(), goroutines)
	assertInvariant(t, store, item.ID)
}
