// internal/core/domain/stock.go
package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Item represents a stocked product with a total on-hand quantity. TypeID,
// when set, files the item under an ItemType category.
type Item struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	SKU          string          `json:"sku,omitempty"`
	Description  string          `json:"description,omitempty"`
	TypeID       *uuid.UUID      `json:"type_id,omitempty"`
	Price        decimal.Decimal `json:"price"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	ReorderLevel decimal.Decimal `json:"reorder_level"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// Validate performs domain validation on the item.
func (i *Item) Validate() error {
	if i.Name == "" {
		return NewValidation(CodeInvalidItem, "name is required")
	}
	if i.Price.IsNegative() {
		return NewValidation(CodeInvalidItem, "price cannot be negative")
	}
	if i.TotalAmount.IsNegative() {
		return NewValidation(CodeInvalidItem, "total_amount cannot be negative")
	}
	if i.ReorderLevel.IsNegative() {
		return NewValidation(CodeInvalidItem, "reorder_level cannot be negative")
	}
	return nil
}

// PrepareForStorage assigns an identity and timestamps before the first write.
func (i *Item) PrepareForStorage() {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	now := time.Now().UTC()
	if i.CreatedAt.IsZero() {
		i.CreatedAt = now
	}
	i.UpdatedAt = now
}

// NeedsReorder reports whether on-hand stock has fallen to the reorder level.
func (i *Item) NeedsReorder() bool {
	return i.ReorderLevel.IsPositive() && i.TotalAmount.LessThanOrEqual(i.ReorderLevel)
}

// RetailAllocation is the portion of an item's stock available for retail
// sale. At most one allocation exists per item, and its quantity never
// exceeds the item's total amount.
type RetailAllocation struct {
	ID        uuid.UUID       `json:"id"`
	ItemID    uuid.UUID       `json:"item_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Validate performs domain validation on the allocation.
func (a *RetailAllocation) Validate() error {
	if a.ItemID == uuid.Nil {
		return NewValidation(CodeInvalidAllocation, "item_id is required")
	}
	if a.Quantity.IsNegative() {
		return NewValidation(CodeInvalidAllocation, "quantity cannot be negative")
	}
	return nil
}

// PrepareForStorage assigns an identity and timestamps before the first write.
func (a *RetailAllocation) PrepareForStorage() {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	now := time.Now().UTC()
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}
	a.UpdatedAt = now
}
