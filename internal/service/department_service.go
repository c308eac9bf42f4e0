package service

import (
	"context"
	"errors"
	"fmt"

	"budget-backend/internal/model"
	"budget-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// --- DTOs ---

type DepartmentRequest struct {
	Name             string `json:"name" binding:"required"`
	Code             string `json:"code" binding:"required"`
	Description      string `json:"description"`
	HeadOfDepartment string `json:"head_of_department"`
	BudgetLimit      string `json:"budget_limit"` // Decimal string, empty for no limit
	IsActive         *bool  `json:"is_active"`
}

type CostCenterRequest struct {
	Code        string `json:"code" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	BudgetLimit string `json:"budget_limit"`
	IsActive    *bool  `json:"is_active"`
}

type CostCenterResponse struct {
	ID           string  `json:"id"`
	DepartmentID string  `json:"department_id"`
	Code         string  `json:"code"`
	Name         string  `json:"name"`
	Description  string  `json:"description,omitempty"`
	BudgetLimit  *string `json:"budget_limit"`
	IsActive     bool    `json:"is_active"`
}

type DepartmentResponse struct {
	ID               string               `json:"id"`
	Name             string               `json:"name"`
	Code             string               `json:"code"`
	Description      string               `json:"description,omitempty"`
	HeadOfDepartment string               `json:"head_of_department,omitempty"`
	BudgetLimit      *string              `json:"budget_limit"`
	IsActive         bool                 `json:"is_active"`
	CostCenters      []CostCenterResponse `json:"cost_centers,omitempty"`
}

// --- Interface ---

type DepartmentService interface {
	CreateDepartment(ctx context.Context, req DepartmentRequest) (DepartmentResponse, error)
	ListDepartments(ctx context.Context, activeOnly bool) ([]DepartmentResponse, error)
	GetDepartment(ctx context.Context, id string) (DepartmentResponse, error)
	UpdateDepartment(ctx context.Context, id string, req DepartmentRequest) (DepartmentResponse, error)
	DeleteDepartment(ctx context.Context, id string) error

	CreateCostCenter(ctx context.Context, departmentID string, req CostCenterRequest) (CostCenterResponse, error)
	ListCostCenters(ctx context.Context, departmentID string) ([]CostCenterResponse, error)
	UpdateCostCenter(ctx context.Context, id string, req CostCenterRequest) (CostCenterResponse, error)
	DeleteCostCenter(ctx context.Context, id string) error
}

type departmentService struct {
	repo repository.DepartmentRepository
}

func NewDepartmentService(repo repository.DepartmentRepository) DepartmentService {
	return &departmentService{repo: repo}
}

// --- Implementation ---

func (s *departmentService) CreateDepartment(ctx context.Context, req DepartmentRequest) (DepartmentResponse, error) {
	limit, err := parseLimit(req.BudgetLimit)
	if err != nil {
		return DepartmentResponse{}, err
	}

	if _, findErr := s.repo.FindByName(ctx, req.Name); findErr == nil {
		return DepartmentResponse{}, fmt.Errorf("department %q already exists", req.Name)
	}

	dept := model.Department{
		Name:             req.Name,
		Code:             req.Code,
		Description:      req.Description,
		HeadOfDepartment: req.HeadOfDepartment,
		BudgetLimit:      limit,
		IsActive:         true,
	}
	if req.IsActive != nil {
		dept.IsActive = *req.IsActive
	}

	if err := s.repo.Create(ctx, &dept); err != nil {
		return DepartmentResponse{}, fmt.Errorf("failed to create department: %w", err)
	}
	return toDepartmentResponse(dept), nil
}

func (s *departmentService) ListDepartments(ctx context.Context, activeOnly bool) ([]DepartmentResponse, error) {
	depts, err := s.repo.List(ctx, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}

	out := make([]DepartmentResponse, 0, len(depts))
	for _, d := range depts {
		out = append(out, toDepartmentResponse(d))
	}
	return out, nil
}

func (s *departmentService) GetDepartment(ctx context.Context, id string) (DepartmentResponse, error) {
	deptID, err := uuid.Parse(id)
	if err != nil {
		return DepartmentResponse{}, fmt.Errorf("invalid department id: %w", err)
	}

	dept, err := s.repo.FindByID(ctx, deptID)
	if err != nil {
		return DepartmentResponse{}, notFoundOr(err, "department")
	}
	return toDepartmentResponse(*dept), nil
}

func (s *departmentService) UpdateDepartment(ctx context.Context, id string, req DepartmentRequest) (DepartmentResponse, error) {
	deptID, err := uuid.Parse(id)
	if err != nil {
		return DepartmentResponse{}, fmt.Errorf("invalid department id: %w", err)
	}

	dept, err := s.repo.FindByID(ctx, deptID)
	if err != nil {
		return DepartmentResponse{}, notFoundOr(err, "department")
	}

	limit, err := parseLimit(req.BudgetLimit)
	if err != nil {
		return DepartmentResponse{}, err
	}

	dept.Name = req.Name
	dept.Code = req.Code
	dept.Description = req.Description
	dept.HeadOfDepartment = req.HeadOfDepartment
	dept.BudgetLimit = limit
	if req.IsActive != nil {
		dept.IsActive = *req.IsActive
	}

	if err := s.repo.Save(ctx, dept); err != nil {
		return DepartmentResponse{}, fmt.Errorf("failed to update department: %w", err)
	}
	return toDepartmentResponse(*dept), nil
}

func (s *departmentService) DeleteDepartment(ctx context.Context, id string) error {
	deptID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid department id: %w", err)
	}
	if err := s.repo.Delete(ctx, deptID); err != nil {
		return notFoundOr(err, "department")
	}
	return nil
}

func (s *departmentService) CreateCostCenter(ctx context.Context, departmentID string, req CostCenterRequest) (CostCenterResponse, error) {
	deptID, err := uuid.Parse(departmentID)
	if err != nil {
		return CostCenterResponse{}, fmt.Errorf("invalid department id: %w", err)
	}
	if _, err := s.repo.FindByID(ctx, deptID); err != nil {
		return CostCenterResponse{}, notFoundOr(err, "department")
	}

	limit, err := parseLimit(req.BudgetLimit)
	if err != nil {
		return CostCenterResponse{}, err
	}

	cc := model.CostCenter{
		DepartmentID: deptID,
		Code:         req.Code,
		Name:         req.Name,
		Description:  req.Description,
		BudgetLimit:  limit,
		IsActive:     true,
	}
	if req.IsActive != nil {
		cc.IsActive = *req.IsActive
	}

	if err := s.repo.CreateCostCenter(ctx, &cc); err != nil {
		return CostCenterResponse{}, fmt.Errorf("failed to create cost center: %w", err)
	}
	return toCostCenterResponse(cc), nil
}

func (s *departmentService) ListCostCenters(ctx context.Context, departmentID string) ([]CostCenterResponse, error) {
	deptID, err := uuid.Parse(departmentID)
	if err != nil {
		return nil, fmt.Errorf("invalid department id: %w", err)
	}

	centers, err := s.repo.ListCostCenters(ctx, deptID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cost centers: %w", err)
	}

	out := make([]CostCenterResponse, 0, len(centers))
	for _, cc := range centers {
		out = append(out, toCostCenterResponse(cc))
	}
	return out, nil
}

func (s *departmentService) UpdateCostCenter(ctx context.Context, id string, req CostCenterRequest) (CostCenterResponse, error) {
	ccID, err := uuid.Parse(id)
	if err != nil {
		return CostCenterResponse{}, fmt.Errorf("invalid cost center id: %w", err)
	}

	cc, err := s.repo.FindCostCenter(ctx, ccID)
	if err != nil {
		return CostCenterResponse{}, notFoundOr(err, "cost center")
	}

	limit, err := parseLimit(req.BudgetLimit)
	if err != nil {
		return CostCenterResponse{}, err
	}

	cc.Code = req.Code
	cc.Name = req.Name
	cc.Description = req.Description
	cc.BudgetLimit = limit
	if req.IsActive != nil {
		cc.IsActive = *req.IsActive
	}

	if err := s.repo.SaveCostCenter(ctx, cc); err != nil {
		return CostCenterResponse{}, fmt.Errorf("failed to update cost center: %w", err)
	}
	return toCostCenterResponse(*cc), nil
}

func (s *departmentService) DeleteCostCenter(ctx context.Context, id string) error {
	ccID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid cost center id: %w", err)
	}
	if _, err := s.repo.FindCostCenter(ctx, ccID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("cost center: %w", ErrNotFound)
		}
		return err
	}
	return s.repo.DeleteCostCenter(ctx, ccID)
}

// --- Helpers ---

func parseLimit(raw string) (*decimal.Decimal, error) {
	if raw == "" {
		return nil, nil
	}
	limit, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid budget_limit: %w", err)
	}
	if limit.IsNegative() {
		return nil, fmt.Errorf("budget_limit must not be negative")
	}
	return &limit, nil
}

func toDepartmentResponse(d model.Department) DepartmentResponse {
	resp := DepartmentResponse{
		ID:               d.ID.String(),
		Name:             d.Name,
		Code:             d.Code,
		Description:      d.Description,
		HeadOfDepartment: d.HeadOfDepartment,
		IsActive:         d.IsActive,
	}
	if d.BudgetLimit != nil {
		v := d.BudgetLimit.StringFixed(2)
		resp.BudgetLimit = &v
	}
	if len(d.CostCenters) > 0 {
		resp.CostCenters = make([]CostCenterResponse, 0, len(d.CostCenters))
		for _, cc := range d.CostCenters {
			resp.CostCenters = append(resp.CostCenters, toCostCenterResponse(cc))
		}
	}
	return resp
}

func toCostCenterResponse(cc model.CostCenter) CostCenterResponse {
	resp := CostCenterResponse{
		ID:           cc.ID.String(),
		DepartmentID: cc.DepartmentID.String(),
		Code:         cc.Code,
		Name:         cc.Name,
		Description:  cc.Description,
		IsActive:     cc.IsActive,
	}
	if cc.BudgetLimit != nil {
		v := cc.BudgetLimit.StringFixed(2)
		resp.BudgetLimit = &v
	}
	return resp
}
