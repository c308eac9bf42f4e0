package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Department is an organizational unit owning zero or more cost centers.
// BudgetLimit is an advisory ceiling — nothing in the lifecycle enforces it.
type Department struct {
	ID               uuid.UUID        `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name             string           `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`
	Code             string           `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"`
	Description      string           `gorm:"type:text" json:"description"`
	HeadOfDepartment string           `gorm:"type:varchar(255)" json:"head_of_department"`
	BudgetLimit      *decimal.Decimal `gorm:"type:decimal(18,4)" json:"budget_limit"`
	IsActive         bool             `gorm:"default:true" json:"is_active"`
	CostCenters      []CostCenter     `gorm:"foreignKey:DepartmentID;constraint:OnDelete:CASCADE" json:"cost_centers,omitempty"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
	DeletedAt        gorm.DeletedAt   `gorm:"index" json:"-"`
}

// CostCenter is a billing subdivision of a Department. Code is unique within
// its department; a budget's cost center must belong to its selected department
// (checked by the validator, not by the storage layer).
type CostCenter struct {
	ID           uuid.UUID        `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	DepartmentID uuid.UUID        `gorm:"type:uuid;not null;index;uniqueIndex:idx_cc_dept_code" json:"department_id"`
	Department   *Department      `gorm:"foreignKey:DepartmentID" json:"department,omitempty"`
	Code         string           `gorm:"type:varchar(50);not null;uniqueIndex:idx_cc_dept_code" json:"code"`
	Name         string           `gorm:"type:varchar(255);not null" json:"name"`
	Description  string           `gorm:"type:text" json:"description"`
	BudgetLimit  *decimal.Decimal `gorm:"type:decimal(18,4)" json:"budget_limit"`
	IsActive     bool             `gorm:"default:true" json:"is_active"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
	DeletedAt    gorm.DeletedAt   `gorm:"index" json:"-"`
}
