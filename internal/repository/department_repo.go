package repository

import (
	"context"

	"budget-backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DepartmentRepository defines data access for departments and cost centers.
type DepartmentRepository interface {
	Create(ctx context.Context, dept *model.Department) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Department, error)
	FindByName(ctx context.Context, name string) (*model.Department, error)
	List(ctx context.Context, activeOnly bool) ([]model.Department, error)
	Save(ctx context.Context, dept *model.Department) error
	Delete(ctx context.Context, id uuid.UUID) error

	CreateCostCenter(ctx context.Context, cc *model.CostCenter) error
	FindCostCenter(ctx context.Context, id uuid.UUID) (*model.CostCenter, error)
	ListCostCenters(ctx context.Context, departmentID uuid.UUID) ([]model.CostCenter, error)
	SaveCostCenter(ctx context.Context, cc *model.CostCenter) error
	DeleteCostCenter(ctx context.Context, id uuid.UUID) error
	// CostCenterBelongs reports whether an active cost center with the given
	// code exists under the named department. Backs the validator's
	// referential check.
	CostCenterBelongs(ctx context.Context, departmentName, code string) (bool, error)
}

type departmentRepository struct {
	db *gorm.DB
}

func NewDepartmentRepository(db *gorm.DB) DepartmentRepository {
	return &departmentRepository{db: db}
}

func (r *departmentRepository) Create(ctx context.Context, dept *model.Department) error {
	return GetDB(ctx, r.db).Create(dept).Error
}

func (r *departmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Department, error) {
	var dept model.Department
	if err := GetDB(ctx, r.db).Preload("CostCenters").First(&dept, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &dept, nil
}

func (r *departmentRepository) FindByName(ctx context.Context, name string) (*model.Department, error) {
	var dept model.Department
	if err := GetDB(ctx, r.db).First(&dept, "name = ?", name).Error; err != nil {
		return nil, err
	}
	return &dept, nil
}

func (r *departmentRepository) List(ctx context.Context, activeOnly bool) ([]model.Department, error) {
	var depts []model.Department
	q := GetDB(ctx, r.db).Preload("CostCenters").Order("name asc")
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	if err := q.Find(&depts).Error; err != nil {
		return nil, err
	}
	return depts, nil
}

func (r *departmentRepository) Save(ctx context.Context, dept *model.Department) error {
	return GetDB(ctx, r.db).Save(dept).Error
}

func (r *departmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.Department{}).Error
}

func (r *departmentRepository) CreateCostCenter(ctx context.Context, cc *model.CostCenter) error {
	return GetDB(ctx, r.db).Create(cc).Error
}

func (r *departmentRepository) FindCostCenter(ctx context.Context, id uuid.UUID) (*model.CostCenter, error) {
	var cc model.CostCenter
	if err := GetDB(ctx, r.db).First(&cc, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &cc, nil
}

func (r *departmentRepository) ListCostCenters(ctx context.Context, departmentID uuid.UUID) ([]model.CostCenter, error) {
	var centers []model.CostCenter
	if err := GetDB(ctx, r.db).Where("department_id = ?", departmentID).Order("code asc").Find(&centers).Error; err != nil {
		return nil, err
	}
	return centers, nil
}

func (r *departmentRepository) SaveCostCenter(ctx context.Context, cc *model.CostCenter) error {
	return GetDB(ctx, r.db).Save(cc).Error
}

func (r *departmentRepository) DeleteCostCenter(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.CostCenter{}).Error
}

func (r *departmentRepository) CostCenterBelongs(ctx context.Context, departmentName, code string) (bool, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&model.CostCenter{}).
		Joins("JOIN departments ON departments.id = cost_centers.department_id").
		Where("departments.name = ? AND cost_centers.code = ? AND cost_centers.is_active = ?", departmentName, code, true).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
