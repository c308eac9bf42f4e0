package service

import (
	"context"
	"fmt"

	"budget-backend/internal/budget"
	"budget-backend/internal/model"
	"budget-backend/internal/repository"
)

// FilterOptions carries the distinct values that populate filter dropdowns.
type FilterOptions struct {
	Statuses    []string `json:"statuses"`
	Departments []string `json:"departments"`
	BudgetTypes []string `json:"budget_types"`
}

// ReportService fetches scoped budget collections and runs the pure
// aggregation engine over them. Every figure is recomputed per call.
type ReportService interface {
	Summary(ctx context.Context, filter ListBudgetsFilter) (budget.Summary, error)
	ByDepartment(ctx context.Context, filter ListBudgetsFilter) ([]budget.DepartmentSummary, error)
	Monthly(ctx context.Context, filter ListBudgetsFilter) ([]budget.MonthBucket, error)
	ByType(ctx context.Context, filter ListBudgetsFilter) ([]budget.TypeSummary, error)
	Options(ctx context.Context) (FilterOptions, error)
}

type reportService struct {
	budgetRepo repository.BudgetRepository
}

func NewReportService(budgetRepo repository.BudgetRepository) ReportService {
	return &reportService{budgetRepo: budgetRepo}
}

func (s *reportService) load(ctx context.Context, filter ListBudgetsFilter) ([]model.Budget, error) {
	f, err := toDomainFilter(filter)
	if err != nil {
		return nil, err
	}
	records, err := s.budgetRepo.ListAll(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch budgets: %w", err)
	}
	return records, nil
}

func (s *reportService) Summary(ctx context.Context, filter ListBudgetsFilter) (budget.Summary, error) {
	records, err := s.load(ctx, filter)
	if err != nil {
		return budget.Summary{}, err
	}
	return budget.Summarize(records), nil
}

func (s *reportService) ByDepartment(ctx context.Context, filter ListBudgetsFilter) ([]budget.DepartmentSummary, error) {
	records, err := s.load(ctx, filter)
	if err != nil {
		return nil, err
	}
	return budget.GroupByDepartment(records), nil
}

func (s *reportService) Monthly(ctx context.Context, filter ListBudgetsFilter) ([]budget.MonthBucket, error) {
	records, err := s.load(ctx, filter)
	if err != nil {
		return nil, err
	}
	return budget.GroupByMonth(records), nil
}

func (s *reportService) ByType(ctx context.Context, filter ListBudgetsFilter) ([]budget.TypeSummary, error) {
	records, err := s.load(ctx, filter)
	if err != nil {
		return nil, err
	}
	return budget.GroupByType(records), nil
}

func (s *reportService) Options(ctx context.Context) (FilterOptions, error) {
	records, err := s.budgetRepo.ListAll(ctx, budget.Filter{})
	if err != nil {
		return FilterOptions{}, fmt.Errorf("failed to fetch budgets: %w", err)
	}
	return FilterOptions{
		Statuses:    budget.DistinctValues(records, budget.FieldStatus),
		Departments: budget.DistinctValues(records, budget.FieldDepartment),
		BudgetTypes: budget.DistinctValues(records, budget.FieldBudgetType),
	}, nil
}
