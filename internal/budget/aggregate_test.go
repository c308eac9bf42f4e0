package budget

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"budget-backend/internal/model"
)

func amount(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestSummarize(t *testing.T) {
	t.Run("empty collection yields zero values", func(t *testing.T) {
		s := Summarize(nil)
		assert.Equal(t, 0, s.TotalCount)
		assert.True(t, s.TotalAmount.IsZero())
		assert.Zero(t, s.ApprovalRate)
		assert.Zero(t, s.ApprovalRatePercent)
	})

	t.Run("mixed statuses", func(t *testing.T) {
		records := []model.Budget{
			{Status: model.StatusApproved, Amount: amount("100")},
			{Status: model.StatusSubmitted, Amount: amount("50")},
			{Status: model.StatusRejected, Amount: amount("25")},
		}
		s := Summarize(records)
		assert.Equal(t, 3, s.TotalCount)
		assert.True(t, s.TotalAmount.Equal(amount("175")))
		assert.True(t, s.ApprovedAmount.Equal(amount("100")))
		assert.True(t, s.PendingAmount.Equal(amount("50")))
		assert.True(t, s.RejectedAmount.Equal(amount("25")))
		assert.Equal(t, 33, s.ApprovalRatePercent) // 1 of 3
	})

	t.Run("under review counts as pending", func(t *testing.T) {
		s := Summarize([]model.Budget{
			{Status: model.StatusSubmitted, Amount: amount("10")},
			{Status: model.StatusUnderReview, Amount: amount("15")},
		})
		assert.Equal(t, 2, s.PendingCount)
		assert.True(t, s.PendingAmount.Equal(amount("25")))
	})

	t.Run("approval rate rounds to nearest whole percent", func(t *testing.T) {
		s := Summarize([]model.Budget{
			{Status: model.StatusApproved},
			{Status: model.StatusApproved},
			{Status: model.StatusRejected},
		})
		assert.InDelta(t, 66.67, s.ApprovalRate, 0.01)
		assert.Equal(t, 67, s.ApprovalRatePercent)
	})

	t.Run("idempotent over the same collection", func(t *testing.T) {
		records := []model.Budget{
			{Status: model.StatusApproved, Amount: amount("12.34")},
			{Status: model.StatusDraft, Amount: amount("5")},
		}
		first := Summarize(records)
		second := Summarize(records)
		assert.Equal(t, first, second)
	})
}

func TestGroupByDepartment(t *testing.T) {
	records := []model.Budget{
		{Department: "IT", Status: model.StatusApproved, Amount: amount("100")},
		{Department: "IT", Status: model.StatusSubmitted, Amount: amount("40")},
		{Department: "HR", Status: model.StatusRejected, Amount: amount("30")},
	}

	groups := GroupByDepartment(records)
	require.Len(t, groups, 2)

	// Sorted by department name.
	assert.Equal(t, "HR", groups[0].Department)
	assert.Equal(t, 1, groups[0].Count)
	assert.True(t, groups[0].ApprovedAmount.IsZero())

	assert.Equal(t, "IT", groups[1].Department)
	assert.Equal(t, 2, groups[1].Count)
	assert.True(t, groups[1].TotalAmount.Equal(amount("140")))
	assert.True(t, groups[1].ApprovedAmount.Equal(amount("100")))
	assert.True(t, groups[1].PendingAmount.Equal(amount("40")))
}

func TestGroupByMonth(t *testing.T) {
	jan := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	feb := time.Date(2024, 2, 2, 8, 0, 0, 0, time.UTC)

	records := []model.Budget{
		{CreatedAt: feb, Amount: amount("20"), Status: model.StatusDraft},
		{CreatedAt: jan, Amount: amount("10"), Status: model.StatusApproved},
		{CreatedAt: jan.Add(24 * time.Hour), Amount: amount("5"), Status: model.StatusSubmitted},
	}

	buckets := GroupByMonth(records)
	require.Len(t, buckets, 2)

	// Chronologically ascending regardless of input order.
	assert.Equal(t, "2024-01", buckets[0].Month)
	assert.Equal(t, 2, buckets[0].Count)
	assert.True(t, buckets[0].TotalAmount.Equal(amount("15")))
	assert.True(t, buckets[0].ApprovedAmount.Equal(amount("10")))

	assert.Equal(t, "2024-02", buckets[1].Month)
	assert.Equal(t, 1, buckets[1].Count)
}

func TestGroupByType(t *testing.T) {
	records := []model.Budget{
		{BudgetType: model.TypeOpex, Amount: amount("70")},
		{BudgetType: model.TypeCapex, Amount: amount("200")},
		{BudgetType: model.TypeOpex, Amount: amount("30")},
	}

	groups := GroupByType(records)
	require.Len(t, groups, 2)
	assert.Equal(t, model.TypeOpex, groups[0].BudgetType)
	assert.Equal(t, 2, groups[0].Count)
	assert.True(t, groups[0].TotalAmount.Equal(amount("100")))
	assert.Equal(t, model.TypeCapex, groups[1].BudgetType)
	assert.True(t, groups[1].TotalAmount.Equal(amount("200")))
}
