package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Budget represents a single funding request moving through the review lifecycle.
// Amount is derived — always the sum of line item totals once any exist — and is
// rewritten inside the same transaction as every line item change.
type Budget struct {
	ID       uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	BudgetID string    `gorm:"type:varchar(20);uniqueIndex;not null" json:"budget_id"` // Business id, BUD-%06d

	Department string     `gorm:"type:varchar(255);not null;index" json:"department"`
	CostCenter string     `gorm:"type:varchar(50);not null" json:"cost_center"` // Code, must belong to Department
	BudgetType BudgetType `gorm:"type:varchar(10);not null" json:"budget_type"` // OPEX, CAPEX

	Amount   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"amount"`
	Currency string          `gorm:"type:varchar(10);not null;default:'USD'" json:"currency"`

	PeriodStart time.Time `gorm:"type:date;not null" json:"period_start"`
	PeriodEnd   time.Time `gorm:"type:date;not null" json:"period_end"`

	Description   string `gorm:"type:text" json:"description"`
	Justification string `gorm:"type:text" json:"justification"`

	Status Status `gorm:"type:varchar(20);not null;default:'Draft';index" json:"status"`

	SubmittedBy *uuid.UUID `gorm:"type:uuid;index" json:"submitted_by"`
	Submitter   *User      `gorm:"foreignKey:SubmittedBy" json:"submitter,omitempty"`
	SubmittedAt *time.Time `json:"submitted_at"` // Set only on the submit transition

	ReviewedBy     *uuid.UUID `gorm:"type:uuid" json:"reviewed_by"`
	Reviewer       *User      `gorm:"foreignKey:ReviewedBy" json:"reviewer,omitempty"`
	ReviewedAt     *time.Time `json:"reviewed_at"` // Set only on approve/reject
	ReviewComments string     `gorm:"type:text" json:"review_comments"`

	Items []BudgetLineItem `gorm:"foreignKey:BudgetRef;constraint:OnDelete:CASCADE" json:"items,omitempty"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BudgetLineItem is one cost component of a Budget, owned by it.
// TotalAmount is recomputed from quantity and unit cost on every write,
// never trusted from the caller.
type BudgetLineItem struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	BudgetRef uuid.UUID `gorm:"type:uuid;not null;index" json:"budget_ref"` // FK to budgets.id

	Category    string `gorm:"type:varchar(100);not null" json:"category"`
	Subcategory string `gorm:"type:varchar(100)" json:"subcategory"`
	Description string `gorm:"type:text;not null" json:"description"`

	Quantity    int             `gorm:"not null;default:1" json:"quantity"`
	UnitCost    decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"unit_cost"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"total_amount"` // quantity * unit_cost

	Notes string `gorm:"type:text" json:"notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
