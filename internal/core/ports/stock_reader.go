// internal/core/ports/stock_reader.go
package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/mfigueroa/stockpos-be/internal/core/domain"
)

// StockReader is the query-side port consumed by handlers and workers. It
// reads committed state only and never participates in a transaction scope.
type StockReader interface {
	GetItem(ctx context.Context, id uuid.UUID) (*domain.Item, error)
	FindItemBySKU(ctx context.Context, sku string) (*domain.Item, error)
	ListItems(ctx context.Context, params ItemListParams) (*ItemListResult, error)
	ListItemsBelowReorder(ctx context.Context) ([]domain.Item, error)

	GetItemType(ctx context.Context, id uuid.UUID) (*domain.ItemType, error)
	ListItemTypes(ctx context.Context) ([]domain.ItemType, error)

	GetAllocationByItem(ctx context.Context, itemID uuid.UUID) (*domain.RetailAllocation, error)

	GetSaleGroup(ctx context.Context, id uuid.UUID) (*domain.SaleGroup, error)
	ListSaleGroups(ctx context.Context, page, pageSize int) ([]domain.SaleGroup, int64, error)
	ListLedgerByGroup(ctx context.Context, groupID uuid.UUID) ([]domain.LedgerEntry, error)
	ListLedger(ctx context.Context, params LedgerListParams) ([]domain.LedgerEntry, int64, error)

	SaleStats(ctx context.Context, from, to time.Time) (*domain.SaleStats, error)
}

// ItemListParams holds filters and pagination for listing items.
type ItemListParams struct {
	Search    string `json:"search,omitempty"`
	SKU       string `json:"sku,omitempty"`
	LowStock  bool   `json:"low_stock,omitempty"`
	SortBy    string `json:"sort_by"`
	SortOrder string `json:"sort_order"`
	Page      int    `json:"page"`
	PageSize  int    `json:"page_size"`
}

// ItemListResult represents paginated item results.
type ItemListResult struct {
	Items      []*domain.Item `json:"items"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
	TotalCount int64          `json:"total_count"`
	TotalPages int            `json:"total_pages"`
}

// LedgerListParams holds filters and pagination for listing ledger entries.
type LedgerListParams struct {
	ItemID     *uuid.UUID `json:"item_id,omitempty"`
	GroupID    *uuid.UUID `json:"group_id,omitempty"`
	LossesOnly bool       `json:"losses_only,omitempty"`
	From       *time.Time `json:"from,omitempty"`
	To         *time.Time `json:"to,omitempty"`
	Page       int        `json:"page"`
	PageSize   int        `json:"page_size"`
}
