package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfigueroa/stockpos-be/internal/core/domain"
)

func TestValidateAllocation(t *testing.T) {
	tests := []struct {
		name      string
		total     decimal.Decimal
		proposed  decimal.Decimal
		wantError bool
	}{
		{"proposed_below_total", decimal.NewFromInt(10), decimal.NewFromInt(4), false},
		{"proposed_equals_total", decimal.NewFromInt(10), decimal.NewFromInt(10), false},
		{"proposed_above_total", decimal.NewFromInt(10), decimal.NewFromFloat(10.01), true},
		{"zero_proposed", decimal.NewFromInt(10), decimal.Zero, false},
		{"zero_total_zero_proposed", decimal.Zero, decimal.Zero, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := domain.ValidateAllocation(tt.total, tt.proposed)
			if tt.wantError {
				require.Error(t, err)
				assert.Equal(t, domain.KindValidation, domain.KindOf(err))
				assert.Equal(t, domain.CodeRetailExceedsTotal, domain.CodeOf(err))
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestClampAllocation(t *testing.T) {
	// Shrinking total wins over a stale allocation.
	got := domain.ClampAllocation(decimal.NewFromInt(5), decimal.NewFromInt(8))
	assert.True(t, got.Equal(decimal.NewFromInt(5)))

	// Allocation within bounds is left untouched.
	got = domain.ClampAllocation(decimal.NewFromInt(5), decimal.NewFromInt(3))
	assert.True(t, got.Equal(decimal.NewFromInt(3)))

	got = domain.ClampAllocation(decimal.Zero, decimal.NewFromInt(3))
	assert.True(t, got.IsZero())
}
