// internal/adapters/db/stock_reader.go
package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/mfigueroa/stockpos-be/internal/core/domain"
	"github.com/mfigueroa/stockpos-be/internal/core/ports"
)

// stockReader implements ports.StockReader
type stockReader struct {
	db     *Database
	logger *slog.Logger
}

// NewStockReader creates a new stock reader
func NewStockReader(database *Database, logger *slog.Logger) ports.StockReader {
	return &stockReader{
		db:     database,
		logger: logger.With(slog.String("repository", "stock_reader")),
	}
}

func (r *stockReader) GetItem(ctx context.Context, id uuid.UUID) (*domain.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1`

	item, err := scanItem(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("failed to get item: %w", err)
	}
	return item, nil
}

func (r *stockReader) FindItemBySKU(ctx context.Context, sku string) (*domain.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE sku = $1`

	item, err := scanItem(r.db.QueryRow(ctx, query, sku))
	if err != nil {
		return nil, fmt.Errorf("failed to find item by sku: %w", err)
	}
	return item, nil
}

// ListItems retrieves items with filtering and pagination
func (r *stockReader) ListItems(ctx context.Context, params ports.ItemListParams) (*ports.ItemListResult, error) {
	qb := squirrel.Select(
		"id", "name", "sku", "description", "type_id", "price",
		"total_amount", "reorder_level", "created_at", "updated_at",
	).From("items").
		PlaceholderFormat(squirrel.Dollar)

	if params.Search != "" {
		qb = qb.Where("(name ILIKE '%' || ? || '%' OR description ILIKE '%' || ? || '%')",
			params.Search, params.Search)
	}
	if params.SKU != "" {
		qb = qb.Where(squirrel.Eq{"sku": params.SKU})
	}
	if params.LowStock {
		qb = qb.Where("reorder_level > 0 AND total_amount <= reorder_level")
	}

	countQb := squirrel.Select("COUNT(*)").From("items").PlaceholderFormat(squirrel.Dollar)
	if params.Search != "" {
		countQb = countQb.Where("(name ILIKE '%' || ? || '%' OR description ILIKE '%' || ? || '%')",
			params.Search, params.Search)
	}
	if params.SKU != "" {
		countQb = countQb.Where(squirrel.Eq{"sku": params.SKU})
	}
	if params.LowStock {
		countQb = countQb.Where("reorder_level > 0 AND total_amount <= reorder_level")
	}
	countSQL, countArgs, err := countQb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build count query: %w", err)
	}

	var totalCount int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&totalCount); err != nil {
		return nil, fmt.Errorf("failed to count items: %w", err)
	}

	direction := "ASC"
	if params.SortOrder == "desc" {
		direction = "DESC"
	}
	orderBy := "created_at DESC"
	switch params.SortBy {
	case "name":
		orderBy = fmt.Sprintf("name %s", direction)
	case "sku":
		orderBy = fmt.Sprintf("sku %s", direction)
	case "total":
		orderBy = fmt.Sprintf("total_amount %s", direction)
	case "updated":
		orderBy = fmt.Sprintf("updated_at %s", direction)
	}
	qb = qb.OrderBy(orderBy)

	page := params.Page
	if page < 1 {
		page = 1
	}
	pageSize := params.PageSize
	if pageSize < 1 {
		pageSize = 50
	}
	qb = qb.Limit(uint64(pageSize)).Offset(uint64((page - 1) * pageSize))

	listSQL, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.db.Query(ctx, listSQL, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query items: %w", err)
	}
	defer rows.Close()

	var items []*domain.Item
	for rows.Next() {
		item := &domain.Item{}
		err := rows.Scan(
			&item.ID, &item.Name, &item.SKU, &item.Description, &item.TypeID,
			&item.Price, &item.TotalAmount, &item.ReorderLevel,
			&item.CreatedAt, &item.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	totalPages := int((totalCount + int64(pageSize) - 1) / int64(pageSize))
	return &ports.ItemListResult{
		Items:      items,
		Page:       page,
		PageSize:   pageSize,
		TotalCount: totalCount,
		TotalPages: totalPages,
	}, nil
}

// ListItemsBelowReorder returns items whose on-hand stock has fallen to
// their reorder level.
func (r *stockReader) ListItemsBelowReorder(ctx context.Context) ([]domain.Item, error) {
	query := `
		SELECT ` + itemColumns + `
		FROM items
		WHERE reorder_level > 0 AND total_amount <= reorder_level
		ORDER BY total_amount ASC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query items below reorder: %w", err)
	}
	defer rows.Close()

	var items []domain.Item
	for rows.Next() {
		var item domain.Item
		err := rows.Scan(
			&item.ID, &item.Name, &item.SKU, &item.Description, &item.TypeID,
			&item.Price, &item.TotalAmount, &item.ReorderLevel,
			&item.CreatedAt, &item.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return items, nil
}

func (r *stockReader) GetItemType(ctx context.Context, id uuid.UUID) (*domain.ItemType, error) {
	query := `SELECT id, name, created_at, updated_at FROM item_types WHERE id = $1`

	itemType := &domain.ItemType{}
	err := r.db.QueryRow(ctx, query, id).Scan(
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

func (r *stockReader) ListItemTypes(ctx context.Context) ([]domain.ItemType, error) {
	query := `SELECT id, name, created_at, updated_at FROM item_types ORDER BY name ASC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query item types: %w", err)
	}
	defer rows.Close()

	var types []domain.ItemType
	for rows.Next() {
		var t domain.ItemType
		if err := rows.Scan(&t.ID, &t.Name, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan item type: %w", err)
		}
		types = append(types, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return types, nil
}

func (r *stockReader) GetAllocationByItem(ctx context.Context, itemID uuid.UUID) (*domain.RetailAllocation, error) {
	query := `
		SELECT id, item_id, quantity, created_at, updated_at
		FROM retail_allocations
		WHERE item_id = $1`

	alloc := &domain.RetailAllocation{}
	err := r.db.QueryRow(ctx, query, itemID).Scan(
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

func (r *stockReader) GetSaleGroup(ctx context.Context, id uuid.UUID) (*domain.SaleGroup, error) {
	query := `
		SELECT id, customer_name, payment_method, total_amount, created_at
		FROM sale_groups
		WHERE id = $1`

	group := &domain.SaleGroup{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&group.ID, &group.CustomerName, &group.PaymentMethod,
		&group.TotalAmount, &group.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get sale group: %w", err)
	}
	return group, nil
}

func (r *stockReader) ListSaleGroups(ctx context.Context, page, pageSize int) ([]domain.SaleGroup, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 50
	}

	var totalCount int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM sale_groups`).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count sale groups: %w", err)
	}

	query := `
		SELECT id, customer_name, payment_method, total_amount, created_at
		FROM sale_groups
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`

	rows, err := r.db.Query(ctx, query, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query sale groups: %w", err)
	}
	defer rows.Close()

	var groups []domain.SaleGroup
	for rows.Next() {
		var group domain.SaleGroup
		err := rows.Scan(
			&group.ID, &group.CustomerName, &group.PaymentMethod,
			&group.TotalAmount, &group.CreatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan sale group: %w", err)
		}
		groups = append(groups, group)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating rows: %w", err)
	}

	return groups, totalCount, nil
}

func (r *stockReader) ListLedgerByGroup(ctx context.Context, groupID uuid.UUID) ([]domain.LedgerEntry, error) {
	query := `
		SELECT id, item_id, group_id, quantity, price, created_at
		FROM ledger_entries
		WHERE group_id = $1
		ORDER BY created_at ASC, id ASC`

	rows, err := r.db.Query(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger entries: %w", err)
	}
	defer rows.Close()

	return scanLedgerEntries(rows)
}

// ListLedger retrieves ledger entries with filtering and pagination
func (r *stockReader) ListLedger(ctx context.Context, params ports.LedgerListParams) ([]domain.LedgerEntry, int64, error) {
	qb := squirrel.Select("id", "item_id", "group_id", "quantity", "price", "created_at").
		From("ledger_entries").
		PlaceholderFormat(squirrel.Dollar)

	countQb := squirrel.Select("COUNT(*)").
		From("ledger_entries").
		PlaceholderFormat(squirrel.Dollar)

	apply := func(qb squirrel.SelectBuilder) squirrel.SelectBuilder {
		if params.ItemID != nil {
			qb = qb.Where(squirrel.Eq{"item_id": *params.ItemID})
		}
		if params.GroupID != nil {
			qb = qb.Where(squirrel.Eq{"group_id": *params.GroupID})
		}
		if params.LossesOnly {
			qb = qb.Where("price = 0")
		}
		if params.From != nil {
			qb = qb.Where(squirrel.GtOrEq{"created_at": *params.From})
		}
		if params.To != nil {
			qb = qb.Where(squirrel.Lt{"created_at": *params.To})
		}
		return qb
	}
	qb = apply(qb)
	countQb = apply(countQb)

	countSQL, countArgs, err := countQb.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count query: %w", err)
	}
	var totalCount int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count ledger entries: %w", err)
	}

	page := params.Page
	if page < 1 {
		page = 1
	}
	pageSize := params.PageSize
	if pageSize < 1 {
		pageSize = 50
	}
	qb = qb.OrderBy("created_at DESC, id DESC").
		Limit(uint64(pageSize)).
		Offset(uint64((page - 1) * pageSize))

	listSQL, args, err := qb.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.db.Query(ctx, listSQL, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query ledger entries: %w", err)
	}
	defer rows.Close()

	entries, err := scanLedgerEntries(rows)
	if err != nil {
		return nil, 0, err
	}
	return entries, totalCount, nil
}

// SaleStats aggregates ledger activity between from (inclusive) and to
// (exclusive). Zero-price entries count as losses, everything else as sales.
func (r *stockReader) SaleStats(ctx context.Context, from, to time.Time) (*domain.SaleStats, error) {
	query := `
		SELECT
			COUNT(*) FILTER (WHERE price > 0),
			COALESCE(SUM(quantity) FILTER (WHERE price > 0), 0),
			COALESCE(SUM(quantity * price) FILTER (WHERE price > 0), 0),
			COUNT(*) FILTER (WHERE price = 0),
			COALESCE(SUM(quantity) FILTER (WHERE price = 0), 0)
		FROM ledger_entries
		WHERE created_at >= $1 AND created_at < $2`

	stats := &domain.SaleStats{From: from, To: to}
	err := r.db.QueryRow(ctx, query, from, to).Scan(
		&stats.SaleCount, &stats.UnitsSold, &stats.Revenue,
		&stats.LossCount, &stats.UnitsLost,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate sale stats: %w", err)
	}
	return stats, nil
}

func scanLedgerEntries(rows pgx.Rows) ([]domain.LedgerEntry, error) {
	var entries []domain.LedgerEntry
	for rows.Next() {
		var entry domain.LedgerEntry
		err := rows.Scan(
			&entry.ID, &entry.ItemID, &entry.GroupID,
			&entry.Quantity, &entry.Price, &entry.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ledger entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return entries, nil
}
