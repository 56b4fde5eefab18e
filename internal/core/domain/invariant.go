// internal/core/domain/invariant.go
package domain

import "github.com/shopspring/decimal"

// ValidateAllocation checks that a proposed retail quantity does not exceed
// the item's total on-hand amount.
func ValidateAllocation(total, proposed decimal.Decimal) error {
	if proposed.GreaterThan(total) {
		return NewValidation(CodeRetailExceedsTotal,
			"retail quantity %s cannot be greater than total inventory amount %s", proposed, total)
	}
	return nil
}

// ClampAllocation returns the retail quantity adjusted to fit a new total.
// Shrinking the total always wins over a stale allocation.
func ClampAllocation(total, current decimal.Decimal) decimal.Decimal {
	if current.GreaterThan(total) {
		return total
	}
	return current
}
