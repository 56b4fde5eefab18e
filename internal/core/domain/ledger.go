// internal/core/domain/ledger.go
package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LedgerEntry is an immutable record of stock leaving inventory. A zero
// price marks a loss adjustment rather than a real sale.
type LedgerEntry struct {
	ID        uuid.UUID       `json:"id"`
	ItemID    uuid.UUID       `json:"item_id"`
	GroupID   *uuid.UUID      `json:"group_id,omitempty"`
	Quantity  decimal.Decimal `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	CreatedAt time.Time       `json:"created_at"`
}

// IsLoss reports whether the entry records a loss adjustment.
func (e *LedgerEntry) IsLoss() bool {
	return e.Price.IsZero()
}

// Revenue returns the amount this entry contributed, zero for losses.
func (e *LedgerEntry) Revenue() decimal.Decimal {
	return e.Price.Mul(e.Quantity)
}

// SaleGroup is a batch of ledger entries created together as one customer
// transaction. Deleting a group removes its member entries with it.
type SaleGroup struct {
	ID            uuid.UUID       `json:"id"`
	CustomerName  string          `json:"customer_name,omitempty"`
	PaymentMethod string          `json:"payment_method,omitempty"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	CreatedAt     time.Time       `json:"created_at"`
}

// SaleStats aggregates ledger activity over a period.
type SaleStats struct {
	From         time.Time       `json:"from"`
	To           time.Time       `json:"to"`
	SaleCount    int64           `json:"sale_count"`
	UnitsSold    decimal.Decimal `json:"units_sold"`
	Revenue      decimal.Decimal `json:"revenue"`
	LossCount    int64           `json:"loss_count"`
	UnitsLost    decimal.Decimal `json:"units_lost"`
}
