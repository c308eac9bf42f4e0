package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role is the closed set of user roles. finance_team is accepted as a legacy
// spelling of finance_manager at parse time but never stored.
type Role string

const (
	RoleAdmin             Role = "admin"
	RoleFinanceManager    Role = "finance_manager"
	RoleDepartmentUser    Role = "department_user"
	RoleDepartmentManager Role = "department_manager"
	RoleViewOnly          Role = "view_only"
)

// ParseRole validates a raw role string, folding legacy aliases.
func ParseRole(raw string) (Role, error) {
	if raw == "finance_team" {
		return RoleFinanceManager, nil
	}
	switch r := Role(raw); r {
	case RoleAdmin, RoleFinanceManager, RoleDepartmentUser, RoleDepartmentManager, RoleViewOnly:
		return r, nil
	default:
		return "", fmt.Errorf("unknown role %q", raw)
	}
}

// AllRoles lists every valid role, useful for auth checks that accept any
// signed-in user.
func AllRoles() []Role {
	return []Role{RoleAdmin, RoleFinanceManager, RoleDepartmentUser, RoleDepartmentManager, RoleViewOnly}
}

// CanReview reports whether the role may approve, reject, or request revisions.
func (r Role) CanReview() bool {
	switch r {
	case RoleAdmin, RoleFinanceManager:
		return true
	case RoleDepartmentUser, RoleDepartmentManager, RoleViewOnly:
		return false
	}
	return false
}

// User is an identity record with a role and department/cost-center scoping.
type User struct {
	ID          uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Email       string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	DisplayName string         `gorm:"type:varchar(255);not null" json:"display_name"`
	Password    string         `gorm:"type:varchar(255);not null" json:"-"` // Omit hash from JSON
	Role        Role           `gorm:"type:varchar(50);not null" json:"role"`
	Department  string         `gorm:"type:varchar(255)" json:"department"` // Scoping for department roles
	CostCenter  string         `gorm:"type:varchar(50)" json:"cost_center"` // Optional finer scoping
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"` // GORM soft delete
}

// RefreshToken stores long-lived tokens allowing users to request new access tokens
type RefreshToken struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Token     string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"token"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
