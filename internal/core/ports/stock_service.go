// internal/core/ports/stock_service.go
package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mfigueroa/stockpos-be/internal/core/domain"
)

// StockService is the application port for the stock transaction engine.
// Every operation is one all-or-nothing unit; a failed call leaves items,
// allocations and the ledger exactly as they were. Failures carry a
// domain.ErrorKind classification the request layer maps to a status.
type StockService interface {
	CreateItem(ctx context.Context, cmd CreateItemCommand) (*domain.Item, error)
	ReviseItem(ctx context.Context, cmd ReviseItemCommand) (*domain.Item, error)
	RemoveItem(ctx context.Context, itemID uuid.UUID) error
	RestockItem(ctx context.Context, itemID uuid.UUID, quantity decimal.Decimal) (*domain.Item, error)

	CreateItemType(ctx context.Context, name string) (*domain.ItemType, error)
	RenameItemType(ctx context.Context, typeID uuid.UUID, name string) (*domain.ItemType, error)
	RemoveItemType(ctx context.Context, typeID uuid.UUID) error

	SetAllocation(ctx context.Context, itemID uuid.UUID, quantity decimal.Decimal) (*domain.RetailAllocation, error)

	RecordSale(ctx context.Context, cmd SaleCommand) (*domain.LedgerEntry, error)
	ReviseSale(ctx context.Context, entryID uuid.UUID, quantity decimal.Decimal) (*domain.LedgerEntry, error)
	RecordSaleGroup(ctx context.Context, cmd SaleGroupCommand) (*domain.SaleGroup, error)
	DeleteSaleGroup(ctx context.Context, groupID uuid.UUID) error
}

// CreateItemCommand creates an item, optionally with an initial retail
// allocation.
type CreateItemCommand struct {
	Name           string           `json:"name"`
	SKU            string           `json:"sku,omitempty"`
	Description    string           `json:"description,omitempty"`
	TypeID         *uuid.UUID       `json:"type_id,omitempty"`
	Price          decimal.Decimal  `json:"price"`
	TotalAmount    decimal.Decimal  `json:"total_amount"`
	ReorderLevel   decimal.Decimal  `json:"reorder_level"`
	RetailQuantity *decimal.Decimal `json:"retail_quantity,omitempty"`
}

// ReviseItemCommand edits an item. RetailQuantity, when present, is an
// authoritative reallocation of the retail display quantity. RecordLoss
// requests a zero-price ledger entry for any reduction of the total.
type ReviseItemCommand struct {
	ItemID         uuid.UUID        `json:"item_id"`
	Name           string           `json:"name"`
	SKU            string           `json:"sku,omitempty"`
	Description    string           `json:"description,omitempty"`
	TypeID         *uuid.UUID       `json:"type_id,omitempty"`
	Price          decimal.Decimal  `json:"price"`
	TotalAmount    decimal.Decimal  `json:"total_amount"`
	ReorderLevel   decimal.Decimal  `json:"reorder_level"`
	RetailQuantity *decimal.Decimal `json:"retail_quantity,omitempty"`
	RecordLoss     bool             `json:"record_loss"`
}

// SaleCommand records a single sale against an item's retail allocation.
type SaleCommand struct {
	ItemID   uuid.UUID       `json:"item_id"`
	Quantity decimal.Decimal `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// SaleGroupCommand records a batch of sales as one customer transaction.
// Lines are applied in input order.
type SaleGroupCommand struct {
	CustomerName  string          `json:"customer_name,omitempty"`
	PaymentMethod string          `json:"payment_method,omitempty"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	Lines         []SaleCommand   `json:"lines"`
}
