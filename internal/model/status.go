package model

import "fmt"

// Status is the closed set of budget lifecycle states. Keep switches over it
// exhaustive — adding a state must be a compile-visible change everywhere.
type Status string

const (
	StatusDraft            Status = "Draft"
	StatusSubmitted        Status = "Submitted"
	StatusUnderReview      Status = "Under Review"
	StatusApproved         Status = "Approved"
	StatusRejected         Status = "Rejected"
	StatusRevisionRequired Status = "Revision Required"
)

// AllStatuses lists every lifecycle state in display order.
func AllStatuses() []Status {
	return []Status{
		StatusDraft,
		StatusSubmitted,
		StatusUnderReview,
		StatusApproved,
		StatusRejected,
		StatusRevisionRequired,
	}
}

// ParseStatus validates a raw status string coming off the wire.
func ParseStatus(raw string) (Status, error) {
	switch s := Status(raw); s {
	case StatusDraft, StatusSubmitted, StatusUnderReview, StatusApproved, StatusRejected, StatusRevisionRequired:
		return s, nil
	default:
		return "", fmt.Errorf("unknown budget status %q", raw)
	}
}

// IsTerminal reports whether no further lifecycle transition is defined.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusApproved, StatusRejected:
		return true
	case StatusDraft, StatusSubmitted, StatusUnderReview, StatusRevisionRequired:
		return false
	}
	return false
}

// IsPending reports whether the budget is waiting on a reviewer decision.
func (s Status) IsPending() bool {
	switch s {
	case StatusSubmitted, StatusUnderReview:
		return true
	case StatusDraft, StatusApproved, StatusRejected, StatusRevisionRequired:
		return false
	}
	return false
}

// BudgetType classifies spend as operating or capital expenditure.
type BudgetType string

const (
	TypeOpex  BudgetType = "OPEX"
	TypeCapex BudgetType = "CAPEX"
)

// ParseBudgetType validates a raw budget type string.
func ParseBudgetType(raw string) (BudgetType, error) {
	switch t := BudgetType(raw); t {
	case TypeOpex, TypeCapex:
		return t, nil
	default:
		return "", fmt.Errorf("unknown budget type %q", raw)
	}
}
