package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"budget-backend/internal/budget"
	"budget-backend/internal/model"
	"budget-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when a referenced budget or line item does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrStateConflict is returned when a concurrent writer changed the budget's
	// status between read and commit. The caller should reload and retry.
	ErrStateConflict = errors.New("budget status changed concurrently")
	// ErrNotEditable is returned when a mutation targets a budget outside Draft
	// or Revision Required.
	ErrNotEditable = errors.New("budget is not editable in its current status")
	// ErrNotOwner is returned when a non-owner tries an owner-only transition.
	ErrNotOwner = errors.New("only the budget owner may perform this action")
)

const dateLayout = "2006-01-02"

// --- DTOs ---

type CreateBudgetRequest struct {
	Department    string `json:"department" binding:"required"`
	CostCenter    string `json:"cost_center" binding:"required"`
	BudgetType    string `json:"budget_type" binding:"required,oneof=OPEX CAPEX"`
	Currency      string `json:"currency"`
	PeriodStart   string `json:"period_start" binding:"required"` // 2006-01-02
	PeriodEnd     string `json:"period_end" binding:"required"`
	Description   string `json:"description"`
	Justification string `json:"justification"`
}

type UpdateBudgetRequest struct {
	Department    string `json:"department"`
	CostCenter    string `json:"cost_center"`
	BudgetType    string `json:"budget_type" binding:"omitempty,oneof=OPEX CAPEX"`
	PeriodStart   string `json:"period_start"`
	PeriodEnd     string `json:"period_end"`
	Description   string `json:"description"`
	Justification string `json:"justification"`
}

type LineItemRequest struct {
	Category    string `json:"category" binding:"required"`
	Subcategory string `json:"subcategory"`
	Description string `json:"description" binding:"required"`
	Quantity    int    `json:"quantity" binding:"required"`
	UnitCost    string `json:"unit_cost" binding:"required"` // Decimal string
	Notes       string `json:"notes"`
}

type ReviewRequest struct {
	Comments string `json:"comments"`
}

type ListBudgetsFilter struct {
	Query      string
	Status     string
	Department string
	From       string // 2006-01-02, inclusive
	To         string
	Page       int
	Limit      int
}

type LineItemResponse struct {
	ID          string `json:"id"`
	Category    string `json:"category"`
	Subcategory string `json:"subcategory,omitempty"`
	Description string `json:"description"`
	Quantity    int    `json:"quantity"`
	UnitCost    string `json:"unit_cost"`
	TotalAmount string `json:"total_amount"`
	Notes       string `json:"notes,omitempty"`
}

type BudgetResponse struct {
	ID             string             `json:"id"`
	BudgetID       string             `json:"budget_id"`
	Department     string             `json:"department"`
	CostCenter     string             `json:"cost_center"`
	BudgetType     string             `json:"budget_type"`
	Amount         string             `json:"amount"`
	Currency       string             `json:"currency"`
	PeriodStart    string             `json:"period_start"`
	PeriodEnd      string             `json:"period_end"`
	Description    string             `json:"description"`
	Justification  string             `json:"justification"`
	Status         string             `json:"status"`
	SubmittedBy    *string            `json:"submitted_by"`
	SubmitterName  string             `json:"submitter_name,omitempty"`
	SubmittedAt    *string            `json:"submitted_at"`
	ReviewedBy     *string            `json:"reviewed_by"`
	ReviewerName   string             `json:"reviewer_name,omitempty"`
	ReviewedAt     *string            `json:"reviewed_at"`
	ReviewComments string             `json:"review_comments,omitempty"`
	Items          []LineItemResponse `json:"items,omitempty"`
	CreatedAt      string             `json:"created_at"`
	UpdatedAt      string             `json:"updated_at"`
}

type HistoryResponse struct {
	ID        string `json:"id"`
	Action    string `json:"action"`
	OldValues string `json:"old_values,omitempty"`
	NewValues string `json:"new_values,omitempty"`
	ChangedBy string `json:"changed_by,omitempty"`
	ActorName string `json:"actor_name,omitempty"`
	CreatedAt string `json:"created_at"`
}

// --- Interface ---

type BudgetService interface {
	CreateBudget(ctx context.Context, userID string, req CreateBudgetRequest) (BudgetResponse, error)
	GetBudget(ctx context.Context, id string) (BudgetResponse, error)
	ListBudgets(ctx context.Context, filter ListBudgetsFilter) ([]BudgetResponse, int64, error)
	UpdateBudget(ctx context.Context, id, userID string, req UpdateBudgetRequest) (BudgetResponse, error)
	DeleteBudget(ctx context.Context, id, userID string) error

	AddLineItem(ctx context.Context, budgetID, userID string, req LineItemRequest) (BudgetResponse, error)
	UpdateLineItem(ctx context.Context, budgetID, itemID, userID string, req LineItemRequest) (BudgetResponse, error)
	DeleteLineItem(ctx context.Context, budgetID, itemID, userID string) (BudgetResponse, error)

	Submit(ctx context.Context, id, userID string) (BudgetResponse, error)
	StartReview(ctx context.Context, id, userID string) (BudgetResponse, error)
	Approve(ctx context.Context, id, userID, comments string) (BudgetResponse, error)
	Reject(ctx context.Context, id, userID, comments string) (BudgetResponse, error)
	RequestRevision(ctx context.Context, id, userID, comments string) (BudgetResponse, error)
	Resubmit(ctx context.Context, id, userID string) (BudgetResponse, error)

	GetHistory(ctx context.Context, budgetID string, page, limit int) ([]HistoryResponse, int64, error)
}

type budgetService struct {
	budgetRepo  repository.BudgetRepository
	deptRepo    repository.DepartmentRepository
	historyRepo repository.HistoryRepository
	txManager   repository.TransactionManager
	now         func() time.Time
}

func NewBudgetService(
	budgetRepo repository.BudgetRepository,
	deptRepo repository.DepartmentRepository,
	historyRepo repository.HistoryRepository,
	txManager repository.TransactionManager,
) BudgetService {
	return &budgetService{
		budgetRepo:  budgetRepo,
		deptRepo:    deptRepo,
		historyRepo: historyRepo,
		txManager:   txManager,
		now:         time.Now,
	}
}

// --- Creation and draft editing ---

func (s *budgetService) CreateBudget(ctx context.Context, userID string, req CreateBudgetRequest) (BudgetResponse, error) {
	ownerID, err := uuid.Parse(userID)
	if err != nil {
		return BudgetResponse{}, fmt.Errorf("invalid user id: %w", err)
	}

	budgetType, err := model.ParseBudgetType(req.BudgetType)
	if err != nil {
		return BudgetResponse{}, err
	}

	periodStart, err := time.Parse(dateLayout, req.PeriodStart)
	if err != nil {
		return BudgetResponse{}, fmt.Errorf("invalid period_start: %w", err)
	}
	periodEnd, err := time.Parse(dateLayout, req.PeriodEnd)
	if err != nil {
		return BudgetResponse{}, fmt.Errorf("invalid period_end: %w", err)
	}
	if periodEnd.Before(periodStart) {
		return BudgetResponse{}, budget.ValidationErrors{{Field: "period", Message: "period end must not be before period start"}}
	}

	currency := req.Currency
	if currency == "" {
		currency = "USD"
	}

	var created model.Budget
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		businessID, genErr := s.budgetRepo.NextBusinessID(txCtx)
		if genErr != nil {
			return fmt.Errorf("failed to generate business id: %w", genErr)
		}

		created = model.Budget{
			BudgetID:      businessID,
			Department:    req.Department,
			CostCenter:    req.CostCenter,
			BudgetType:    budgetType,
			Amount:        decimal.Zero,
			Currency:      currency,
			PeriodStart:   periodStart,
			PeriodEnd:     periodEnd,
			Description:   req.Description,
			Justification: req.Justification,
			Status:        model.StatusDraft,
			SubmittedBy:   &ownerID,
		}
		if createErr := s.budgetRepo.Create(txCtx, &created); createErr != nil {
			return fmt.Errorf("failed to create budget: %w", createErr)
		}

		return s.logHistory(txCtx, created.ID, model.ActionCreateBudget, &ownerID, nil, &created)
	})
	if err != nil {
		return BudgetResponse{}, err
	}

	return toBudgetResponse(created, nil), nil
}

func (s *budgetService) GetBudget(ctx context.Context, id string) (BudgetResponse, error) {
	budgetID, err := uuid.Parse(id)
	if err != nil {
		return BudgetResponse{}, fmt.Errorf("invalid budget id: %w", err)
	}

	b, err := s.budgetRepo.FindByIDWithItems(ctx, budgetID)
	if err != nil {
		return BudgetResponse{}, notFoundOr(err, "budget")
	}

	return toBudgetResponse(*b, b.Items), nil
}

func (s *budgetService) ListBudgets(ctx context.Context, filter ListBudgetsFilter) ([]BudgetResponse, int64, error) {
	f, err := toDomainFilter(filter)
	if err != nil {
		return nil, 0, err
	}

	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = 20
	}

	budgets, total, err := s.budgetRepo.List(ctx, f, filter.Page, filter.Limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list budgets: %w", err)
	}

	out := make([]BudgetResponse, 0, len(budgets))
	for _, b := range budgets {
		out = append(out, toBudgetResponse(b, nil))
	}
	return out, total, nil
}

func (s *budgetService) UpdateBudget(ctx context.Context, id, userID string, req UpdateBudgetRequest) (BudgetResponse, error) {
	budgetID, err := uuid.Parse(id)
	if err != nil {
		return BudgetResponse{}, fmt.Errorf("invalid budget id: %w", err)
	}
	actorID, err := uuid.Parse(userID)
	if err != nil {
		return BudgetResponse{}, fmt.Errorf("invalid user id: %w", err)
	}

	var updated model.Budget
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		b, findErr := s.budgetRepo.FindByID(txCtx, budgetID)
		if findErr != nil {
			return notFoundOr(findErr, "budget")
		}
		if guardErr := s.guardEditable(*b, actorID); guardErr != nil {
			return guardErr
		}

		before := *b
		if req.Department != "" {
			b.Department = req.Department
		}
		if req.CostCenter != "" {
			b.CostCenter = req.CostCenter
		}
		if req.BudgetType != "" {
			budgetType, parseErr := model.ParseBudgetType(req.BudgetType)
			if parseErr != nil {
				return parseErr
			}
			b.BudgetType = budgetType
		}
		if req.PeriodStart != "" {
			start, parseErr := time.Parse(dateLayout, req.PeriodStart)
			if parseErr != nil {
				return fmt.Errorf("invalid period_start: %w", parseErr)
			}
			b.PeriodStart = start
		}
		if req.PeriodEnd != "" {
			end, parseErr := time.Parse(dateLayout, req.PeriodEnd)
			if parseErr != nil {
				return fmt.Errorf("invalid period_end: %w", parseErr)
			}
			b.PeriodEnd = end
		}
		if b.PeriodEnd.Before(b.PeriodStart) {
			return budget.ValidationErrors{{Field: "period", Message: "period end must not be before period start"}}
		}
		if req.Description != "" {
			b.Description = req.Description
		}
		if req.Justification != "" {
			b.Justification = req.Justification
		}
		b.UpdatedAt = s.now()

		if saveErr := s.budgetRepo.Save(txCtx, b); saveErr != nil {
			return fmt.Errorf("failed to update budget: %w", saveErr)
		}
		updated = *b

		return s.logHistory(txCtx, b.ID, model.ActionUpdateBudget, &actorID, &before, b)
	})
	if err != nil {
		return BudgetResponse{}, err
	}

	return toBudgetResponse(updated, nil), nil
}

func (s *budgetService) DeleteBudget(ctx context.Context, id, userID string) error {
	budgetID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid budget id: %w", err)
	}
	actorID, err := uuid.Parse(userID)
	if err != nil {
		return fmt.Errorf("invalid user id: %w", err)
	}

	return s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		b, findErr := s.budgetRepo.FindByID(txCtx, budgetID)
		if findErr != nil {
			return notFoundOr(findErr, "budget")
		}
		if b.Status != model.StatusDraft {
			return ErrNotEditable
		}
		if b.SubmittedBy != nil && *b.SubmittedBy != actorID {
			return ErrNotOwner
		}

		if logErr := s.logHistory(txCtx, b.ID, model.ActionDeleteBudget, &actorID, b, nil); logErr != nil {
			return logErr
		}
		return s.budgetRepo.Delete(txCtx, budgetID)
	})
}

// --- Line items ---

// mutateItems runs fn inside a transaction and rewrites the budget's derived
// amount from the surviving line items before committing. Amount and items
// can never drift apart.
func (s *budgetService) mutateItems(ctx context.Context, budgetID uuid.UUID, actorID uuid.UUID, action string, fn func(txCtx context.Context, b *model.Budget) error) (BudgetResponse, error) {
	var out BudgetResponse
	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		b, findErr := s.budgetRepo.FindByID(txCtx, budgetID)
		if findErr != nil {
			return notFoundOr(findErr, "budget")
		}
		if guardErr := s.guardEditable(*b, actorID); guardErr != nil {
			return guardErr
		}
		before := *b

		if fnErr := fn(txCtx, b); fnErr != nil {
			return fnErr
		}

		items, listErr := s.budgetRepo.ListItems(txCtx, budgetID)
		if listErr != nil {
			return fmt.Errorf("failed to reload line items: %w", listErr)
		}

		amount := budget.TotalAmount(items)
		if updateErr := s.budgetRepo.UpdateAmount(txCtx, budgetID, amount); updateErr != nil {
			return fmt.Errorf("failed to update budget amount: %w", updateErr)
		}
		b.Amount = amount

		if logErr := s.logHistory(txCtx, budgetID, action, &actorID, &before, b); logErr != nil {
			return logErr
		}

		out = toBudgetResponse(*b, items)
		return nil
	})
	if err != nil {
		return BudgetResponse{}, err
	}
	return out, nil
}

func (s *budgetService) AddLineItem(ctx context.Context, budgetID, userID string, req LineItemRequest) (BudgetResponse, error) {
	id, actorID, err := parseIDs(budgetID, userID)
	if err != nil {
		return BudgetResponse{}, err
	}

	unitCost, err := decimal.NewFromString(req.UnitCost)
	if err != nil {
		return BudgetResponse{}, fmt.Errorf("invalid unit_cost: %w", err)
	}
	total, err := budget.LineTotal(req.Quantity, unitCost)
	if err != nil {
		return BudgetResponse{}, err
	}

	return s.mutateItems(ctx, id, actorID, model.ActionAddLineItem, func(txCtx context.Context, b *model.Budget) error {
		item := model.BudgetLineItem{
			BudgetRef:   b.ID,
			Category:    req.Category,
			Subcategory: req.Subcategory,
			Description: req.Description,
			Quantity:    req.Quantity,
			UnitCost:    unitCost,
			TotalAmount: total,
			Notes:       req.Notes,
		}
		if createErr := s.budgetRepo.CreateItem(txCtx, &item); createErr != nil {
			return fmt.Errorf("failed to create line item: %w", createErr)
		}
		return nil
	})
}

func (s *budgetService) UpdateLineItem(ctx context.Context, budgetID, itemID, userID string, req LineItemRequest) (BudgetResponse, error) {
	id, actorID, err := parseIDs(budgetID, userID)
	if err != nil {
		return BudgetResponse{}, err
	}
	lineID, err := uuid.Parse(itemID)
	if err != nil {
		return BudgetResponse{}, fmt.Errorf("invalid line item id: %w", err)
	}

	unitCost, err := decimal.NewFromString(req.UnitCost)
	if err != nil {
		return BudgetResponse{}, fmt.Errorf("invalid unit_cost: %w", err)
	}
	total, err := budget.LineTotal(req.Quantity, unitCost)
	if err != nil {
		return BudgetResponse{}, err
	}

	return s.mutateItems(ctx, id, actorID, model.ActionUpdateLineItem, func(txCtx context.Context, b *model.Budget) error {
		item, findErr := s.budgetRepo.FindItem(txCtx, b.ID, lineID)
		if findErr != nil {
			return notFoundOr(findErr, "line item")
		}

		item.Category = req.Category
		item.Subcategory = req.Subcategory
		item.Description = req.Description
		item.Quantity = req.Quantity
		item.UnitCost = unitCost
		item.TotalAmount = total
		item.Notes = req.Notes

		if saveErr := s.budgetRepo.SaveItem(txCtx, item); saveErr != nil {
			return fmt.Errorf("failed to update line item: %w", saveErr)
		}
		return nil
	})
}

func (s *budgetService) DeleteLineItem(ctx context.Context, budgetID, itemID, userID string) (BudgetResponse, error) {
	id, actorID, err := parseIDs(budgetID, userID)
	if err != nil {
		return BudgetResponse{}, err
	}
	lineID, err := uuid.Parse(itemID)
	if err != nil {
		return BudgetResponse{}, fmt.Errorf("invalid line item id: %w", err)
	}

	return s.mutateItems(ctx, id, actorID, model.ActionDeleteLineItem, func(txCtx context.Context, b *model.Budget) error {
		if _, findErr := s.budgetRepo.FindItem(txCtx, b.ID, lineID); findErr != nil {
			return notFoundOr(findErr, "line item")
		}
		return s.budgetRepo.DeleteItem(txCtx, b.ID, lineID)
	})
}

// --- Lifecycle transitions ---

func (s *budgetService) Submit(ctx context.Context, id, userID string) (BudgetResponse, error) {
	return s.transition(ctx, id, userID, budget.EventSubmit, "", model.ActionSubmitBudget, true)
}

func (s *budgetService) StartReview(ctx context.Context, id, userID string) (BudgetResponse, error) {
	return s.transition(ctx, id, userID, budget.EventStartReview, "", model.ActionStartReview, false)
}

func (s *budgetService) Approve(ctx context.Context, id, userID, comments string) (BudgetResponse, error) {
	return s.transition(ctx, id, userID, budget.EventApprove, comments, model.ActionApproveBudget, false)
}

func (s *budgetService) Reject(ctx context.Context, id, userID, comments string) (BudgetResponse, error) {
	return s.transition(ctx, id, userID, budget.EventReject, comments, model.ActionRejectBudget, false)
}

func (s *budgetService) RequestRevision(ctx context.Context, id, userID, comments string) (BudgetResponse, error) {
	return s.transition(ctx, id, userID, budget.EventRequestRevision, comments, model.ActionRequestRevision, false)
}

func (s *budgetService) Resubmit(ctx context.Context, id, userID string) (BudgetResponse, error) {
	return s.transition(ctx, id, userID, budget.EventResubmit, "", model.ActionResubmitBudget, true)
}

// transition runs one lifecycle event end to end: load, apply the pure state
// machine, and commit with a status-conditioned write. RowsAffected == 0 means
// another writer moved the budget first, so nothing is applied.
func (s *budgetService) transition(ctx context.Context, id, userID string, ev budget.Event, comments, action string, ownerOnly bool) (BudgetResponse, error) {
	budgetID, actorID, err := parseIDs(id, userID)
	if err != nil {
		return BudgetResponse{}, err
	}

	var out BudgetResponse
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		b, findErr := s.budgetRepo.FindByID(txCtx, budgetID)
		if findErr != nil {
			return notFoundOr(findErr, "budget")
		}
		if ownerOnly && b.SubmittedBy != nil && *b.SubmittedBy != actorID {
			return ErrNotOwner
		}

		items, listErr := s.budgetRepo.ListItems(txCtx, budgetID)
		if listErr != nil {
			return fmt.Errorf("failed to load line items: %w", listErr)
		}

		belongs := func(department, code string) bool {
			ok, lookupErr := s.deptRepo.CostCenterBelongs(txCtx, department, code)
			return lookupErr == nil && ok
		}

		before := *b
		updated, applyErr := budget.Apply(*b, items, ev, budget.TransitionInput{
			Actor:    actorID,
			Comments: comments,
			Now:      s.now(),
		}, belongs)
		if applyErr != nil {
			return applyErr
		}

		rows, saveErr := s.budgetRepo.SaveWhereStatus(txCtx, &updated, []model.Status{before.Status})
		if saveErr != nil {
			return fmt.Errorf("failed to commit transition: %w", saveErr)
		}
		if rows == 0 {
			return ErrStateConflict
		}

		if logErr := s.logHistory(txCtx, budgetID, action, &actorID, &before, &updated); logErr != nil {
			return logErr
		}

		out = toBudgetResponse(updated, items)
		return nil
	})
	if err != nil {
		return BudgetResponse{}, err
	}
	return out, nil
}

// --- History ---

func (s *budgetService) GetHistory(ctx context.Context, budgetID string, page, limit int) ([]HistoryResponse, int64, error) {
	id, err := uuid.Parse(budgetID)
	if err != nil {
		return nil, 0, fmt.Errorf("invalid budget id: %w", err)
	}

	entries, total, err := s.historyRepo.ListByBudget(ctx, id, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch budget history: %w", err)
	}

	out := make([]HistoryResponse, 0, len(entries))
	for _, e := range entries {
		resp := HistoryResponse{
			ID:        e.ID.String(),
			Action:    e.Action,
			OldValues: e.OldValues,
			NewValues: e.NewValues,
			CreatedAt: e.CreatedAt.Format(time.RFC3339),
		}
		if e.ChangedBy != nil {
			resp.ChangedBy = e.ChangedBy.String()
		}
		if e.Actor != nil {
			resp.ActorName = e.Actor.DisplayName
		}
		out = append(out, resp)
	}
	return out, total, nil
}

// logHistory snapshots the lifecycle-relevant fields before and after a change.
func (s *budgetService) logHistory(ctx context.Context, budgetID uuid.UUID, action string, actor *uuid.UUID, before, after *model.Budget) error {
	entry := model.BudgetHistory{
		BudgetRef: budgetID,
		Action:    action,
		ChangedBy: actor,
	}
	if before != nil {
		raw, _ := json.Marshal(historySnapshot(*before))
		entry.OldValues = string(raw)
	}
	if after != nil {
		raw, _ := json.Marshal(historySnapshot(*after))
		entry.NewValues = string(raw)
	}

	if err := s.historyRepo.Log(ctx, &entry); err != nil {
		return fmt.Errorf("failed to write budget history: %w", err)
	}
	return nil
}

func historySnapshot(b model.Budget) map[string]interface{} {
	snap := map[string]interface{}{
		"status":      string(b.Status),
		"amount":      b.Amount.StringFixed(4),
		"department":  b.Department,
		"cost_center": b.CostCenter,
		"budget_type": string(b.BudgetType),
	}
	if b.ReviewComments != "" {
		snap["review_comments"] = b.ReviewComments
	}
	return snap
}

// --- Helpers ---

// guardEditable allows draft-phase mutations only, and only by the owner.
func (s *budgetService) guardEditable(b model.Budget, actorID uuid.UUID) error {
	switch b.Status {
	case model.StatusDraft, model.StatusRevisionRequired:
	case model.StatusSubmitted, model.StatusUnderReview, model.StatusApproved, model.StatusRejected:
		return ErrNotEditable
	}
	if b.SubmittedBy != nil && *b.SubmittedBy != actorID {
		return ErrNotOwner
	}
	return nil
}

func parseIDs(budgetID, userID string) (uuid.UUID, uuid.UUID, error) {
	id, err := uuid.Parse(budgetID)
	if err != nil {
		return uuid.Nil, uuid.Nil, fmt.Errorf("invalid budget id: %w", err)
	}
	actor, err := uuid.Parse(userID)
	if err != nil {
		return uuid.Nil, uuid.Nil, fmt.Errorf("invalid user id: %w", err)
	}
	return id, actor, nil
}

func notFoundOr(err error, entity string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", entity, ErrNotFound)
	}
	return err
}

func toDomainFilter(filter ListBudgetsFilter) (budget.Filter, error) {
	f := budget.Filter{
		Query:      filter.Query,
		Department: filter.Department,
	}
	if filter.Status != "" {
		status, err := model.ParseStatus(filter.Status)
		if err != nil {
			return budget.Filter{}, err
		}
		f.Status = status
	}
	if filter.From != "" {
		from, err := time.Parse(dateLayout, filter.From)
		if err != nil {
			return budget.Filter{}, fmt.Errorf("invalid from date: %w", err)
		}
		f.From = &from
	}
	if filter.To != "" {
		to, err := time.Parse(dateLayout, filter.To)
		if err != nil {
			return budget.Filter{}, fmt.Errorf("invalid to date: %w", err)
		}
		// Inclusive upper bound over the whole day.
		to = to.Add(24*time.Hour - time.Nanosecond)
		f.To = &to
	}
	return f, nil
}

func toBudgetResponse(b model.Budget, items []model.BudgetLineItem) BudgetResponse {
	resp := BudgetResponse{
		ID:             b.ID.String(),
		BudgetID:       b.BudgetID,
		Department:     b.Department,
		CostCenter:     b.CostCenter,
		BudgetType:     string(b.BudgetType),
		Amount:         b.Amount.StringFixed(2),
		Currency:       b.Currency,
		PeriodStart:    b.PeriodStart.Format(dateLayout),
		PeriodEnd:      b.PeriodEnd.Format(dateLayout),
		Description:    b.Description,
		Justification:  b.Justification,
		Status:         string(b.Status),
		ReviewComments: b.ReviewComments,
		CreatedAt:      b.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      b.UpdatedAt.Format(time.RFC3339),
	}

	if b.SubmittedBy != nil {
		v := b.SubmittedBy.String()
		resp.SubmittedBy = &v
	}
	if b.Submitter != nil {
		resp.SubmitterName = b.Submitter.DisplayName
	}
	if b.SubmittedAt != nil {
		v := b.SubmittedAt.Format(time.RFC3339)
		resp.SubmittedAt = &v
	}
	if b.ReviewedBy != nil {
		v := b.ReviewedBy.String()
		resp.ReviewedBy = &v
	}
	if b.Reviewer != nil {
		resp.ReviewerName = b.Reviewer.DisplayName
	}
	if b.ReviewedAt != nil {
		v := b.ReviewedAt.Format(time.RFC3339)
		resp.ReviewedAt = &v
	}

	if items != nil {
		resp.Items = make([]LineItemResponse, 0, len(items))
		for _, item := range items {
			resp.Items = append(resp.Items, LineItemResponse{
				ID:          item.ID.String(),
				Category:    item.Category,
				Subcategory: item.Subcategory,
				Description: item.Description,
				Quantity:    item.Quantity,
				UnitCost:    item.UnitCost.StringFixed(2),
				TotalAmount: item.TotalAmount.StringFixed(2),
				Notes:       item.Notes,
			})
		}
	}

	return resp
}
