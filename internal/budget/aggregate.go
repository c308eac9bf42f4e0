package budget

import (
	"math"
	"sort"

	"github.com/shopspring/decimal"

	"budget-backend/internal/model"
)

// Summary holds the dashboard totals derived from a budget collection.
type Summary struct {
	TotalCount     int             `json:"total_count"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	ApprovedCount  int             `json:"approved_count"`
	ApprovedAmount decimal.Decimal `json:"approved_amount"`
	PendingCount   int             `json:"pending_count"` // Submitted + Under Review
	PendingAmount  decimal.Decimal `json:"pending_amount"`
	RejectedCount  int             `json:"rejected_count"`
	RejectedAmount decimal.Decimal `json:"rejected_amount"`
	DraftCount     int             `json:"draft_count"`
	DraftAmount    decimal.Decimal `json:"draft_amount"`
	// ApprovalRate is the exact approved/total percentage; Percent is the
	// nearest whole percent for display. Both are 0 for an empty collection.
	ApprovalRate        float64 `json:"approval_rate"`
	ApprovalRatePercent int     `json:"approval_rate_percent"`
}

// Summarize computes totals and the approval rate over a record collection.
// Pure and idempotent — empty input yields a zero-valued summary, not an error.
func Summarize(records []model.Budget) Summary {
	s := Summary{
		TotalAmount:    decimal.Zero,
		ApprovedAmount: decimal.Zero,
		PendingAmount:  decimal.Zero,
		RejectedAmount: decimal.Zero,
		DraftAmount:    decimal.Zero,
	}

	for _, b := range records {
		s.TotalCount++
		s.TotalAmount = s.TotalAmount.Add(b.Amount)
		switch b.Status {
		case model.StatusApproved:
			s.ApprovedCount++
			s.ApprovedAmount = s.ApprovedAmount.Add(b.Amount)
		case model.StatusSubmitted, model.StatusUnderReview:
			s.PendingCount++
			s.PendingAmount = s.PendingAmount.Add(b.Amount)
		case model.StatusRejected:
			s.RejectedCount++
			s.RejectedAmount = s.RejectedAmount.Add(b.Amount)
		case model.StatusDraft, model.StatusRevisionRequired:
			s.DraftCount++
			s.DraftAmount = s.DraftAmount.Add(b.Amount)
		}
	}

	if s.TotalCount > 0 {
		s.ApprovalRate = float64(s.ApprovedCount) / float64(s.TotalCount) * 100
		s.ApprovalRatePercent = int(math.Round(s.ApprovalRate))
	}
	return s
}

// DepartmentSummary aggregates budgets of a single department.
type DepartmentSummary struct {
	Department     string          `json:"department"`
	Count          int             `json:"count"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	ApprovedAmount decimal.Decimal `json:"approved_amount"`
	PendingAmount  decimal.Decimal `json:"pending_amount"`
}

// GroupByDepartment buckets records by department name, sorted by name.
func GroupByDepartment(records []model.Budget) []DepartmentSummary {
	byDept := make(map[string]*DepartmentSummary)
	for _, b := range records {
		d, ok := byDept[b.Department]
		if !ok {
			d = &DepartmentSummary{
				Department:     b.Department,
				TotalAmount:    decimal.Zero,
				ApprovedAmount: decimal.Zero,
				PendingAmount:  decimal.Zero,
			}
			byDept[b.Department] = d
		}
		d.Count++
		d.TotalAmount = d.TotalAmount.Add(b.Amount)
		switch b.Status {
		case model.StatusApproved:
			d.ApprovedAmount = d.ApprovedAmount.Add(b.Amount)
		case model.StatusSubmitted, model.StatusUnderReview:
			d.PendingAmount = d.PendingAmount.Add(b.Amount)
		case model.StatusDraft, model.StatusRejected, model.StatusRevisionRequired:
		}
	}

	out := make([]DepartmentSummary, 0, len(byDept))
	for _, d := range byDept {
		out = append(out, *d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Department < out[j].Department })
	return out
}

// MonthBucket aggregates budgets created in one calendar month.
type MonthBucket struct {
	Month          string          `json:"month"` // "2006-01"
	Count          int             `json:"count"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	ApprovedAmount decimal.Decimal `json:"approved_amount"`
}

// GroupByMonth buckets records by the calendar month of their stored creation
// timestamp, sorted chronologically ascending.
func GroupByMonth(records []model.Budget) []MonthBucket {
	byMonth := make(map[string]*MonthBucket)
	for _, b := range records {
		key := b.CreatedAt.Format("2006-01")
		m, ok := byMonth[key]
		if !ok {
			m = &MonthBucket{Month: key, TotalAmount: decimal.Zero, ApprovedAmount: decimal.Zero}
			byMonth[key] = m
		}
		m.Count++
		m.TotalAmount = m.TotalAmount.Add(b.Amount)
		if b.Status == model.StatusApproved {
			m.ApprovedAmount = m.ApprovedAmount.Add(b.Amount)
		}
	}

	out := make([]MonthBucket, 0, len(byMonth))
	for _, m := range byMonth {
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}

// TypeSummary aggregates budgets of one budget type.
type TypeSummary struct {
	BudgetType  model.BudgetType `json:"budget_type"`
	Count       int              `json:"count"`
	TotalAmount decimal.Decimal  `json:"total_amount"`
}

// GroupByType partitions records into OPEX and CAPEX totals, in that order.
func GroupByType(records []model.Budget) []TypeSummary {
	opex := TypeSummary{BudgetType: model.TypeOpex, TotalAmount: decimal.Zero}
	capex := TypeSummary{BudgetType: model.TypeCapex, TotalAmount: decimal.Zero}

	for _, b := range records {
		switch b.BudgetType {
		case model.TypeOpex:
			opex.Count++
			opex.TotalAmount = opex.TotalAmount.Add(b.Amount)
		case model.TypeCapex:
			capex.Count++
			capex.TotalAmount = capex.TotalAmount.Add(b.Amount)
		}
	}

	return []TypeSummary{opex, capex}
}
