package budget

import (
	"strings"

	"budget-backend/internal/model"
)

// ValidationError describes one violated business rule on a budget record.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// ValidationErrors collects every violation found, so callers can present the
// complete list instead of fixing one rule at a time.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, v := range e {
		msgs = append(msgs, v.Error())
	}
	return strings.Join(msgs, "; ")
}

// CostCenterLookup reports whether a cost center code belongs to a department.
// The referential check is the validator's job, not the storage layer's.
type CostCenterLookup func(department, code string) bool

// ValidateForSubmission checks every rule a budget must satisfy before it may
// leave Draft (or Revision Required). All violations are collected; a nil
// result means the budget may be submitted. Pure — no side effects.
func ValidateForSubmission(b model.Budget, items []model.BudgetLineItem, belongs CostCenterLookup) ValidationErrors {
	var errs ValidationErrors

	if strings.TrimSpace(b.Department) == "" {
		errs = append(errs, ValidationError{Field: "department", Message: "department is required"})
	}
	if strings.TrimSpace(b.CostCenter) == "" {
		errs = append(errs, ValidationError{Field: "cost_center", Message: "cost center is required"})
	} else if b.Department != "" && belongs != nil && !belongs(b.Department, b.CostCenter) {
		errs = append(errs, ValidationError{Field: "cost_center", Message: "cost center does not belong to the selected department"})
	}
	if _, err := model.ParseBudgetType(string(b.BudgetType)); err != nil {
		errs = append(errs, ValidationError{Field: "budget_type", Message: "budget type must be OPEX or CAPEX"})
	}
	if b.PeriodStart.IsZero() || b.PeriodEnd.IsZero() {
		errs = append(errs, ValidationError{Field: "period", Message: "period start and end are required"})
	} else if b.PeriodEnd.Before(b.PeriodStart) {
		errs = append(errs, ValidationError{Field: "period", Message: "period end must not be before period start"})
	}

	if len(items) == 0 {
		errs = append(errs, ValidationError{Field: "items", Message: "at least one line item is required"})
	}
	for _, item := range items {
		if strings.TrimSpace(item.Description) == "" {
			errs = append(errs, ValidationError{Field: "items", Message: "line item description is required"})
		}
		total, err := LineTotal(item.Quantity, item.UnitCost)
		if err != nil || !total.IsPositive() {
			errs = append(errs, ValidationError{Field: "items", Message: "line item total must be positive"})
		}
	}

	return errs
}

// ValidateForReview checks the reviewer-side rules for a decision event.
// Rejection and revision requests require comments; approval does not.
func ValidateForReview(ev Event, comments string) ValidationErrors {
	switch ev {
	case EventReject, EventRequestRevision:
		if strings.TrimSpace(comments) == "" {
			return ValidationErrors{{Field: "review_comments", Message: "comments are required when rejecting or requesting revision"}}
		}
	case EventSubmit, EventStartReview, EventApprove, EventResubmit:
	}
	return nil
}
