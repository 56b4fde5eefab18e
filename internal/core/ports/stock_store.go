// internal/core/ports/stock_store.go
package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/mfigueroa/stockpos-be/internal/core/domain"
)

// StockStore is the persistence port for the stock transaction engine.
// Begin opens a transaction scope that every call of one atomic unit joins;
// rollback restores the pre-operation state exactly, including ledger
// entries already appended.
type StockStore interface {
	Begin(ctx context.Context) (StockTx, error)
}

// StockTx is a single transaction scope over the stock records.
//
// Lookups return (nil, nil) when the record is absent. Update and Delete
// report the number of affected records; the orchestrator treats a
// non-positive count as a store failure. Rollback after Commit is a no-op,
// so `defer tx.Rollback(ctx)` is safe.
type StockTx interface {
	GetItem(ctx context.Context, id uuid.UUID) (*domain.Item, error)
	CreateItem(ctx context.Context, item *domain.Item) error
	UpdateItem(ctx context.Context, item *domain.Item) (int64, error)
	DeleteItem(ctx context.Context, id uuid.UUID) (int64, error)

	GetItemType(ctx context.Context, id uuid.UUID) (*domain.ItemType, error)
	CreateItemType(ctx context.Context, itemType *domain.ItemType) error
	UpdateItemType(ctx context.Context, itemType *domain.ItemType) (int64, error)
	DeleteItemType(ctx context.Context, id uuid.UUID) (int64, error)
	CountItemsByType(ctx context.Context, typeID uuid.UUID) (int64, error)

	GetAllocationByItem(ctx context.Context, itemID uuid.UUID) (*domain.RetailAllocation, error)
	CreateAllocation(ctx context.Context, alloc *domain.RetailAllocation) error
	UpdateAllocation(ctx context.Context, alloc *domain.RetailAllocation) (int64, error)
	DeleteAllocation(ctx context.Context, id uuid.UUID) (int64, error)

	AppendLedgerEntry(ctx context.Context, entry *domain.LedgerEntry) error
	GetLedgerEntry(ctx context.Context, id uuid.UUID) (*domain.LedgerEntry, error)
	UpdateLedgerEntry(ctx context.Context, entry *domain.LedgerEntry) (int64, error)

	CreateSaleGroup(ctx context.Context, group *domain.SaleGroup) error
	DeleteSaleGroup(ctx context.Context, id uuid.UUID) (int64, error)

	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}
