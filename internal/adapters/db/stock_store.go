// internal/adapters/db/stock_store.go
package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/mfigueroa/stockpos-be/internal/core/domain"
	"github.com/mfigueroa/stockpos-be/internal/core/ports"
)

// StockStore implements ports.StockStore on top of pgx transactions. Each
// Begin opens one database transaction that every call of the scope joins,
// so a rollback discards ledger appends together with the stock updates.
type StockStore struct {
	db     *Database
	logger *slog.Logger
}

var _ ports.StockStore = (*StockStore)(nil)

// NewStockStore creates a new stock store
func NewStockStore(database *Database, logger *slog.Logger) *StockStore {
	return &StockStore{
		db:     database,
		logger: logger.With(slog.String("store", "stock")),
	}
}

// Begin opens a transaction scope
func (s *StockStore) Begin(ctx context.Context) (ports.StockTx, error) {
	tx, err := s.db.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return &stockTx{tx: tx, logger: s.logger}, nil
}

// stockTx implements ports.StockTx over a single pgx.Tx.
type stockTx struct {
	tx     pgx.Tx
	logger *slog.Logger
	done   bool
}

const itemColumns = `id, name, sku, description, type_id, price, total_amount, reorder_level, created_at, updated_at`

func scanItem(row pgx.Row) (*domain.Item, error) {
	item := &domain.Item{}
	err := row.Scan(
		&item.ID, &item.Name, &item.SKU, &item.Description, &item.TypeID,
		&item.Price, &item.TotalAmount, &item.ReorderLevel,
		&item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return item, nil
}

func (t *stockTx) GetItem(ctx context.Context, id uuid.UUID) (*domain.Item, error) {
	// FOR UPDATE holds the row against concurrent writers for the rest of
	// the scope.
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1 FOR UPDATE`

	item, err := scanItem(t.tx.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("failed to get item: %w", err)
	}
	return item, nil
}

func (t *stockTx) CreateItem(ctx context.Context, item *domain.Item) error {
	query := `
		INSERT INTO items (id, name, sku, description, type_id, price, total_amount, reorder_level, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := t.tx.Exec(ctx, query,
		item.ID, item.Name, item.SKU, item.Description, item.TypeID,
		item.Price, item.TotalAmount, item.ReorderLevel,
		item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create item: %w", err)
	}
	return nil
}

func (t *stockTx) UpdateItem(ctx context.Context, item *domain.Item) (int64, error) {
	query := `
		UPDATE items SET
			name = $2, sku = $3, description = $4, type_id = $5, price = $6,
			total_amount = $7, reorder_level = $8, updated_at = $9
		WHERE id = $1`

	tag, err := t.tx.Exec(ctx, query,
		item.ID, item.Name, item.SKU, item.Description, item.TypeID,
		item.Price, item.TotalAmount, item.ReorderLevel, item.UpdatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to update item: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (t *stockTx) DeleteItem(ctx context.Context, id uuid.UUID) (int64, error) {
	tag, err := t.tx.Exec(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("failed to delete item: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (t *stockTx) GetItemType(ctx context.Context, id uuid.UUID) (*domain.ItemType, error) {
	query := `
		SELECT id, name, created_at, updated_at
		FROM item_types
		WHERE id = $1
		FOR UPDATE`

	itemType := &domain.ItemType{}
	err := t.tx.QueryRow(ctx, query, id).Scan(
		&itemType.ID, &itemType.Name, &itemType.CreatedAt, &itemType.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get item type: %w", err)
	}
	return itemType, nil
}

func (t *stockTx) CreateItemType(ctx context.Context, itemType *domain.ItemType) error {
	query := `
		INSERT INTO item_types (id, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4)`

	_, err := t.tx.Exec(ctx, query,
		itemType.ID, itemType.Name, itemType.CreatedAt, itemType.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create item type: %w", err)
	}
	return nil
}

func (t *stockTx) UpdateItemType(ctx context.Context, itemType *domain.ItemType) (int64, error) {
	query := `UPDATE item_types SET name = $2, updated_at = $3 WHERE id = $1`

	tag, err := t.tx.Exec(ctx, query, itemType.ID, itemType.Name, itemType.UpdatedAt)
	if err != nil {
		return 0, fmt.Errorf("failed to update item type: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (t *stockTx) DeleteItemType(ctx context.Context, id uuid.UUID) (int64, error) {
	tag, err := t.tx.Exec(ctx, `DELETE FROM item_types WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("failed to delete item type: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (t *stockTx) CountItemsByType(ctx context.Context, typeID uuid.UUID) (int64, error) {
	var n int64
	err := t.tx.QueryRow(ctx, `SELECT COUNT(*) FROM items WHERE type_id = $1`, typeID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count items by type: %w", err)
	}
	return n, nil
}

func (t *stockTx) GetAllocationByItem(ctx context.Context, itemID uuid.UUID) (*domain.RetailAllocation, error) {
	query := `
		SELECT id, item_id, quantity, created_at, updated_at
		FROM retail_allocations
		WHERE item_id = $1
		FOR UPDATE`

	alloc := &domain.RetailAllocation{}
	err := t.tx.QueryRow(ctx, query, itemID).Scan(
		&alloc.ID, &alloc.ItemID, &alloc.Quantity,
		&alloc.CreatedAt, &alloc.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get retail allocation: %w", err)
	}
	return alloc, nil
}

func (t *stockTx) CreateAllocation(ctx context.Context, alloc *domain.RetailAllocation) error {
	query := `
		INSERT INTO retail_allocations (id, item_id, quantity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := t.tx.Exec(ctx, query,
		alloc.ID, alloc.ItemID, alloc.Quantity, alloc.CreatedAt, alloc.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create retail allocation: %w", err)
	}
	return nil
}

func (t *stockTx) UpdateAllocation(ctx context.Context, alloc *domain.RetailAllocation) (int64, error) {
	query := `UPDATE retail_allocations SET quantity = $2, updated_at = $3 WHERE id = $1`

	tag, err := t.tx.Exec(ctx, query, alloc.ID, alloc.Quantity, alloc.UpdatedAt)
	if err != nil {
		return 0, fmt.Errorf("failed to update retail allocation: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (t *stockTx) DeleteAllocation(ctx context.Context, id uuid.UUID) (int64, error) {
	tag, err := t.tx.Exec(ctx, `DELETE FROM retail_allocations WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("failed to delete retail allocation: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (t *stockTx) AppendLedgerEntry(ctx context.Context, entry *domain.LedgerEntry) error {
	query := `
		INSERT INTO ledger_entries (id, item_id, group_id, quantity, price, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := t.tx.Exec(ctx, query,
		entry.ID, entry.ItemID, entry.GroupID, entry.Quantity, entry.Price, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to append ledger entry: %w", err)
	}
	return nil
}

func (t *stockTx) GetLedgerEntry(ctx context.Context, id uuid.UUID) (*domain.LedgerEntry, error) {
	query := `
		SELECT id, item_id, group_id, quantity, price, created_at
		FROM ledger_entries
		WHERE id = $1
		FOR UPDATE`

	entry := &domain.LedgerEntry{}
	err := t.tx.QueryRow(ctx, query, id).Scan(
		&entry.ID, &entry.ItemID, &entry.GroupID,
		&entry.Quantity, &entry.Price, &entry.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get ledger entry: %w", err)
	}
	return entry, nil
}

func (t *stockTx) UpdateLedgerEntry(ctx context.Context, entry *domain.LedgerEntry) (int64, error) {
	query := `UPDATE ledger_entries SET quantity = $2 WHERE id = $1`

	tag, err := t.tx.Exec(ctx, query, entry.ID, entry.Quantity)
	if err != nil {
		return 0, fmt.Errorf("failed to update ledger entry: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (t *stockTx) CreateSaleGroup(ctx context.Context, group *domain.SaleGroup) error {
	query := `
		INSERT INTO sale_groups (id, customer_name, payment_method, total_amount, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := t.tx.Exec(ctx, query,
		group.ID, group.CustomerName, group.PaymentMethod, group.TotalAmount, group.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create sale group: %w", err)
	}
	return nil
}

func (t *stockTx) DeleteSaleGroup(ctx context.Context, id uuid.UUID) (int64, error) {
	// Member entries go with the group via ON DELETE CASCADE.
	tag, err := t.tx.Exec(ctx, `DELETE FROM sale_groups WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("failed to delete sale group: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (t *stockTx) Commit(ctx context.Context) error {
	if t.done {
		return nil
	}
	if err := t.tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	t.done = true
	return nil
}

func (t *stockTx) Rollback(ctx context.Context) error {
	if t.done {
		return nil
	}
	t.done = true
	if err := t.tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}
	return nil
}
