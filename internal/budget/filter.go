package budget

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"budget-backend/internal/model"
)

// Filter combines free-text search with categorical and date-range terms.
// Empty terms are always satisfied, so filtering is opt-in per field and the
// zero Filter matches everything. Active terms combine with logical AND.
type Filter struct {
	Query      string       // Case-insensitive substring over business id, department, description
	Status     model.Status // Exact match when set
	Department string       // Exact match when set
	From       *time.Time   // Inclusive lower bound on creation timestamp
	To         *time.Time   // Inclusive upper bound on creation timestamp
}

// Match reports whether a single record satisfies every active term.
func (f Filter) Match(b model.Budget) bool {
	if q := strings.ToLower(strings.TrimSpace(f.Query)); q != "" {
		if !strings.Contains(strings.ToLower(b.BudgetID), q) &&
			!strings.Contains(strings.ToLower(b.Department), q) &&
			!strings.Contains(strings.ToLower(b.Description), q) {
			return false
		}
	}
	if f.Status != "" && b.Status != f.Status {
		return false
	}
	if f.Department != "" && b.Department != f.Department {
		return false
	}
	if f.From != nil && b.CreatedAt.Before(*f.From) {
		return false
	}
	if f.To != nil && b.CreatedAt.After(*f.To) {
		return false
	}
	return true
}

// Apply returns the records satisfying the filter, preserving input order.
func (f Filter) Apply(records []model.Budget) []model.Budget {
	out := make([]model.Budget, 0, len(records))
	for _, b := range records {
		if f.Match(b) {
			out = append(out, b)
		}
	}
	return out
}

// Field names a budget attribute whose distinct values populate a dropdown.
type Field int

const (
	FieldStatus Field = iota
	FieldDepartment
	FieldBudgetType
	FieldCostCenter
)

// DistinctValues returns the deduplicated values of a field across the record
// set, sorted for stable output. Empty values are skipped.
func DistinctValues(records []model.Budget, field Field) []string {
	seen := make(map[string]struct{})
	for _, b := range records {
		var v string
		switch field {
		case FieldStatus:
			v = string(b.Status)
		case FieldDepartment:
			v = b.Department
		case FieldBudgetType:
			v = string(b.BudgetType)
		case FieldCostCenter:
			v = b.CostCenter
		default:
			panic(fmt.Sprintf("unknown filter field %d", field))
		}
		if v != "" {
			seen[v] = struct{}{}
		}
	}

	out := make([]string, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
