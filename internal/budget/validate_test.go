package budget

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"budget-backend/internal/model"
)

func validDraft() (model.Budget, []model.BudgetLineItem) {
	b := model.Budget{
		Department:  "IT",
		CostCenter:  "IT-001",
		BudgetType:  model.TypeOpex,
		Status:      model.StatusDraft,
		PeriodStart: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:   time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
	}
	items := []model.BudgetLineItem{
		{Category: "Software", Description: "Licenses", Quantity: 10, UnitCost: decimal.RequireFromString("120")},
	}
	return b, items
}

func itBelongs(department, code string) bool {
	return department == "IT" && code == "IT-001"
}

func fieldsOf(errs ValidationErrors) []string {
	out := make([]string, 0, len(errs))
	for _, e := range errs {
		out = append(out, e.Field)
	}
	return out
}

func TestValidateForSubmission(t *testing.T) {
	t.Run("valid budget passes", func(t *testing.T) {
		b, items := validDraft()
		assert.Empty(t, ValidateForSubmission(b, items, itBelongs))
	})

	t.Run("missing department is reported", func(t *testing.T) {
		b, items := validDraft()
		b.Department = ""
		errs := ValidateForSubmission(b, items, itBelongs)
		require.NotEmpty(t, errs)
		assert.Contains(t, fieldsOf(errs), "department")
	})

	t.Run("collects every violation", func(t *testing.T) {
		errs := ValidateForSubmission(model.Budget{}, nil, itBelongs)
		fields := fieldsOf(errs)
		assert.Contains(t, fields, "department")
		assert.Contains(t, fields, "cost_center")
		assert.Contains(t, fields, "budget_type")
		assert.Contains(t, fields, "period")
		assert.Contains(t, fields, "items")
	})

	t.Run("cost center must belong to department", func(t *testing.T) {
		b, items := validDraft()
		b.CostCenter = "HR-001"
		errs := ValidateForSubmission(b, items, itBelongs)
		require.Len(t, errs, 1)
		assert.Equal(t, "cost_center", errs[0].Field)
	})

	t.Run("period end before start", func(t *testing.T) {
		b, items := validDraft()
		b.PeriodStart, b.PeriodEnd = b.PeriodEnd, b.PeriodStart
		errs := ValidateForSubmission(b, items, itBelongs)
		require.Len(t, errs, 1)
		assert.Equal(t, "period", errs[0].Field)
	})

	t.Run("line item without description", func(t *testing.T) {
		b, items := validDraft()
		items[0].Description = "   "
		errs := ValidateForSubmission(b, items, itBelongs)
		require.NotEmpty(t, errs)
		assert.Contains(t, errs.Error(), "description")
	})

	t.Run("line item with zero total", func(t *testing.T) {
		b, items := validDraft()
		items[0].UnitCost = decimal.Zero
		errs := ValidateForSubmission(b, items, itBelongs)
		require.NotEmpty(t, errs)
		assert.Contains(t, errs.Error(), "positive")
	})

	t.Run("nil lookup skips referential check", func(t *testing.T) {
		b, items := validDraft()
		b.CostCenter = "ANYTHING"
		assert.Empty(t, ValidateForSubmission(b, items, nil))
	})
}

func TestValidateForReview(t *testing.T) {
	assert.Empty(t, ValidateForReview(EventApprove, ""))
	assert.Empty(t, ValidateForReview(EventApprove, "looks good"))
	assert.Empty(t, ValidateForReview(EventReject, "over the ceiling"))
	assert.NotEmpty(t, ValidateForReview(EventReject, ""))
	assert.NotEmpty(t, ValidateForReview(EventReject, "   "))
	assert.NotEmpty(t, ValidateForReview(EventRequestRevision, ""))
	assert.Empty(t, ValidateForReview(EventRequestRevision, "split the hardware items"))
}
