package budget

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"budget-backend/internal/model"
)

func TestFilterMatch(t *testing.T) {
	records := []model.Budget{
		{BudgetID: "BUD-000001", Department: "IT", Description: "Laptops", Status: model.StatusApproved},
		{BudgetID: "BUD-000002", Department: "HR", Description: "Training", Status: model.StatusDraft},
	}

	t.Run("free text matches department", func(t *testing.T) {
		out := Filter{Query: "IT"}.Apply(records)
		require.Len(t, out, 1)
		assert.Equal(t, "BUD-000001", out[0].BudgetID)
	})

	t.Run("free text is case-insensitive", func(t *testing.T) {
		assert.Len(t, Filter{Query: "training"}.Apply(records), 1)
		assert.Len(t, Filter{Query: "bud-0000"}.Apply(records), 2)
	})

	t.Run("empty filter matches everything", func(t *testing.T) {
		assert.Len(t, Filter{}.Apply(records), 2)
	})

	t.Run("terms combine with AND", func(t *testing.T) {
		assert.Empty(t, Filter{Query: "IT", Status: model.StatusDraft}.Apply(records))
		assert.Len(t, Filter{Query: "IT", Status: model.StatusApproved}.Apply(records), 1)
	})

	t.Run("exact department", func(t *testing.T) {
		out := Filter{Department: "HR"}.Apply(records)
		require.Len(t, out, 1)
		assert.Equal(t, "BUD-000002", out[0].BudgetID)
	})
}

func TestFilterDateRange(t *testing.T) {
	jan := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	mar := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	records := []model.Budget{
		{BudgetID: "BUD-000001", CreatedAt: jan},
		{BudgetID: "BUD-000002", CreatedAt: mar},
	}

	from := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	out := Filter{From: &from}.Apply(records)
	require.Len(t, out, 1)
	assert.Equal(t, "BUD-000002", out[0].BudgetID)

	to := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	out = Filter{To: &to}.Apply(records)
	require.Len(t, out, 1)
	assert.Equal(t, "BUD-000001", out[0].BudgetID)

	// Bounds are inclusive.
	out = Filter{From: &jan, To: &mar}.Apply(records)
	assert.Len(t, out, 2)
}

func TestDistinctValues(t *testing.T) {
	records := []model.Budget{
		{Department: "IT", Status: model.StatusDraft, BudgetType: model.TypeOpex, CostCenter: "IT-001"},
		{Department: "IT", Status: model.StatusApproved, BudgetType: model.TypeCapex, CostCenter: "IT-002"},
		{Department: "HR", Status: model.StatusDraft, BudgetType: model.TypeOpex},
	}

	assert.Equal(t, []string{"HR", "IT"}, DistinctValues(records, FieldDepartment))
	assert.Equal(t, []string{"Approved", "Draft"}, DistinctValues(records, FieldStatus))
	assert.Equal(t, []string{"CAPEX", "OPEX"}, DistinctValues(records, FieldBudgetType))
	// Empty values are dropped.
	assert.Equal(t, []string{"IT-001", "IT-002"}, DistinctValues(records, FieldCostCenter))
}
