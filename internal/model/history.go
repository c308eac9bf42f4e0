package model

import (
	"time"

	"github.com/google/uuid"
)

// Lifecycle actions recorded in budget history
const (
	ActionCreateBudget    = "CREATE_BUDGET"
	ActionUpdateBudget    = "UPDATE_BUDGET"
	ActionDeleteBudget    = "DELETE_BUDGET"
	ActionAddLineItem     = "ADD_LINE_ITEM"
	ActionUpdateLineItem  = "UPDATE_LINE_ITEM"
	ActionDeleteLineItem  = "DELETE_LINE_ITEM"
	ActionSubmitBudget    = "SUBMIT_BUDGET"
	ActionStartReview     = "START_REVIEW"
	ActionApproveBudget   = "APPROVE_BUDGET"
	ActionRejectBudget    = "REJECT_BUDGET"
	ActionRequestRevision = "REQUEST_REVISION"
	ActionResubmitBudget  = "RESUBMIT_BUDGET"
)

// BudgetHistory tracks who changed a budget, what changed, and when.
// Written in the same transaction as the change itself.
type BudgetHistory struct {
	ID        uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	BudgetRef uuid.UUID  `gorm:"type:uuid;not null;index" json:"budget_ref"` // FK to budgets.id
	Action    string     `gorm:"type:varchar(50);not null;index" json:"action"`
	OldValues string     `gorm:"type:jsonb" json:"old_values"` // Serialized snapshot before the change
	NewValues string     `gorm:"type:jsonb" json:"new_values"` // Serialized snapshot after the change
	ChangedBy *uuid.UUID `gorm:"type:uuid;index" json:"changed_by"`
	Actor     *User      `gorm:"foreignKey:ChangedBy" json:"actor,omitempty"`
	CreatedAt time.Time  `gorm:"index" json:"created_at"`
}
