// Package budget holds the pure lifecycle and aggregation core: line-item math,
// submission/review validation, the status state machine, report aggregation,
// and the list filter. Nothing here touches the database; the service layer
// feeds it records and persists what it returns.
package budget

import (
	"errors"

	"github.com/shopspring/decimal"

	"budget-backend/internal/model"
)

var (
	// ErrInvalidQuantity is returned when a line item quantity is below 1.
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	// ErrInvalidCost is returned when a line item unit cost is negative.
	ErrInvalidCost = errors.New("unit cost must not be negative")
)

// LineTotal computes quantity * unitCost for a single line item.
func LineTotal(quantity int, unitCost decimal.Decimal) (decimal.Decimal, error) {
	if quantity < 1 {
		return decimal.Zero, ErrInvalidQuantity
	}
	if unitCost.IsNegative() {
		return decimal.Zero, ErrInvalidCost
	}
	return unitCost.Mul(decimal.NewFromInt(int64(quantity))), nil
}

// TotalAmount sums the recomputed totals of all line items. Totals are derived
// from quantity and unit cost here, never trusted from the stored column.
// An empty slice yields zero.
func TotalAmount(items []model.BudgetLineItem) decimal.Decimal {
	sum := decimal.Zero
	for _, item := range items {
		sum = sum.Add(item.UnitCost.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return sum
}
