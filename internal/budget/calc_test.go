package budget

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"budget-backend/internal/model"
)

func TestLineTotal(t *testing.T) {
	tests := []struct {
		name     string
		quantity int
		unitCost string
		want     string
		wantErr  error
	}{
		{name: "simple multiply", quantity: 3, unitCost: "19.99", want: "59.97"},
		{name: "quantity one", quantity: 1, unitCost: "100", want: "100"},
		{name: "zero cost is allowed", quantity: 5, unitCost: "0", want: "0"},
		{name: "zero quantity", quantity: 0, unitCost: "10", wantErr: ErrInvalidQuantity},
		{name: "negative quantity", quantity: -2, unitCost: "10", wantErr: ErrInvalidQuantity},
		{name: "negative cost", quantity: 2, unitCost: "-0.01", wantErr: ErrInvalidCost},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := LineTotal(tt.quantity, decimal.RequireFromString(tt.unitCost))
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "got %s", got)
		})
	}
}

func TestTotalAmount(t *testing.T) {
	t.Run("empty yields zero", func(t *testing.T) {
		assert.True(t, TotalAmount(nil).IsZero())
	})

	t.Run("sums recomputed totals", func(t *testing.T) {
		items := []model.BudgetLineItem{
			{Quantity: 2, UnitCost: decimal.RequireFromString("50")},
			{Quantity: 3, UnitCost: decimal.RequireFromString("25.50")},
		}
		assert.True(t, TotalAmount(items).Equal(decimal.RequireFromString("176.50")))
	})

	t.Run("ignores stale stored totals", func(t *testing.T) {
		// The stored column must never drive the sum.
		items := []model.BudgetLineItem{
			{Quantity: 2, UnitCost: decimal.RequireFromString("10"), TotalAmount: decimal.RequireFromString("999")},
		}
		assert.True(t, TotalAmount(items).Equal(decimal.RequireFromString("20")))
	})
}
