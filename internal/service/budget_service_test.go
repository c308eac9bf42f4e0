package service

import (
	"context"
	"testing"
	"time"

	"budget-backend/internal/budget"
	"budget-backend/internal/model"
	"budget-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Stubs embed the repository interfaces so only the methods a test path
// touches need implementations.

type stubBudgetRepo struct {
	repository.BudgetRepository

	budget   *model.Budget
	items    []model.BudgetLineItem
	casRows  int64
	saved    *model.Budget
	savedFor []model.Status
	deleted  bool
}

func (s *stubBudgetRepo) Delete(_ context.Context, _ uuid.UUID) error {
	s.deleted = true
	return nil
}

func (s *stubBudgetRepo) FindByID(_ context.Context, _ uuid.UUID) (*model.Budget, error) {
	b := *s.budget
	return &b, nil
}

func (s *stubBudgetRepo) ListItems(_ context.Context, _ uuid.UUID) ([]model.BudgetLineItem, error) {
	return s.items, nil
}

func (s *stubBudgetRepo) SaveWhereStatus(_ context.Context, b *model.Budget, allowed []model.Status) (int64, error) {
	s.saved = b
	s.savedFor = allowed
	return s.casRows, nil
}

type stubDeptRepo struct {
	repository.DepartmentRepository
}

func (s *stubDeptRepo) CostCenterBelongs(_ context.Context, _, _ string) (bool, error) {
	return true, nil
}

type stubHistoryRepo struct {
	repository.HistoryRepository

	entries []model.BudgetHistory
}

func (s *stubHistoryRepo) Log(_ context.Context, entry *model.BudgetHistory) error {
	s.entries = append(s.entries, *entry)
	return nil
}

type passthroughTx struct{}

func (passthroughTx) RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	return fn(ctx)
}

func submittableDraft(owner uuid.UUID) (*model.Budget, []model.BudgetLineItem) {
	b := &model.Budget{
		ID:          uuid.New(),
		BudgetID:    "BUD-000001",
		Department:  "IT",
		CostCenter:  "CC-100",
		BudgetType:  model.TypeOpex,
		Amount:      decimal.NewFromInt(500),
		Currency:    "USD",
		PeriodStart: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:   time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
		Status:      model.StatusDraft,
		SubmittedBy: &owner,
	}
	items := []model.BudgetLineItem{{
		BudgetRef:   b.ID,
		Category:    "Software",
		Description: "Licenses",
		Quantity:    5,
		UnitCost:    decimal.NewFromInt(100),
		TotalAmount: decimal.NewFromInt(500),
	}}
	return b, items
}

func newTestService(br *stubBudgetRepo, hr *stubHistoryRepo) BudgetService {
	return NewBudgetService(br, &stubDeptRepo{}, hr, passthroughTx{})
}

func TestSubmitMovesDraftToSubmitted(t *testing.T) {
	owner := uuid.New()
	b, items := submittableDraft(owner)
	br := &stubBudgetRepo{budget: b, items: items, casRows: 1}
	hr := &stubHistoryRepo{}

	resp, err := newTestService(br, hr).Submit(context.Background(), b.ID.String(), owner.String())
	require.NoError(t, err)

	assert.Equal(t, string(model.StatusSubmitted), resp.Status)
	require.NotNil(t, br.saved)
	assert.Equal(t, model.StatusSubmitted, br.saved.Status)
	assert.NotNil(t, br.saved.SubmittedAt)

	// The guarded write must require the status read at load time.
	assert.Equal(t, []model.Status{model.StatusDraft}, br.savedFor)

	require.Len(t, hr.entries, 1)
	assert.Equal(t, model.ActionSubmitBudget, hr.entries[0].Action)
}

func TestSubmitByNonOwnerFails(t *testing.T) {
	owner := uuid.New()
	b, items := submittableDraft(owner)
	br := &stubBudgetRepo{budget: b, items: items, casRows: 1}

	_, err := newTestService(br, &stubHistoryRepo{}).Submit(context.Background(), b.ID.String(), uuid.NewString())
	assert.ErrorIs(t, err, ErrNotOwner)
	assert.Nil(t, br.saved, "nothing may be written on a failed guard")
}

func TestSubmitWithoutItemsFailsValidation(t *testing.T) {
	owner := uuid.New()
	b, _ := submittableDraft(owner)
	br := &stubBudgetRepo{budget: b, items: nil, casRows: 1}
	hr := &stubHistoryRepo{}

	_, err := newTestService(br, hr).Submit(context.Background(), b.ID.String(), owner.String())

	var vErrs budget.ValidationErrors
	require.ErrorAs(t, err, &vErrs)
	assert.Nil(t, br.saved)
	assert.Empty(t, hr.entries)
}

func TestDeleteBudgetByNonOwnerFails(t *testing.T) {
	owner := uuid.New()
	b, _ := submittableDraft(owner)
	br := &stubBudgetRepo{budget: b}
	hr := &stubHistoryRepo{}

	err := newTestService(br, hr).DeleteBudget(context.Background(), b.ID.String(), uuid.NewString())
	assert.ErrorIs(t, err, ErrNotOwner)
	assert.False(t, br.deleted, "a stranger's delete must never reach the store")
	assert.Empty(t, hr.entries)
}

func TestDeleteBudgetByOwnerRemovesDraft(t *testing.T) {
	owner := uuid.New()
	b, _ := submittableDraft(owner)
	br := &stubBudgetRepo{budget: b}
	hr := &stubHistoryRepo{}

	err := newTestService(br, hr).DeleteBudget(context.Background(), b.ID.String(), owner.String())
	require.NoError(t, err)
	assert.True(t, br.deleted)

	require.Len(t, hr.entries, 1)
	assert.Equal(t, model.ActionDeleteBudget, hr.entries[0].Action)
}

func TestDeleteBudgetOutsideDraftFails(t *testing.T) {
	owner := uuid.New()
	b, _ := submittableDraft(owner)
	b.Status = model.StatusSubmitted
	br := &stubBudgetRepo{budget: b}

	err := newTestService(br, &stubHistoryRepo{}).DeleteBudget(context.Background(), b.ID.String(), owner.String())
	assert.ErrorIs(t, err, ErrNotEditable)
	assert.False(t, br.deleted)
}

func TestTransitionConflictWhenAnotherWriterWins(t *testing.T) {
	owner := uuid.New()
	b, items := submittableDraft(owner)
	b.Status = model.StatusUnderReview
	br := &stubBudgetRepo{budget: b, items: items, casRows: 0}

	_, err := newTestService(br, &stubHistoryRepo{}).Approve(context.Background(), b.ID.String(), uuid.NewString(), "fine")
	assert.ErrorIs(t, err, ErrStateConflict)
}

func TestRejectRequiresComments(t *testing.T) {
	owner := uuid.New()
	b, items := submittableDraft(owner)
	b.Status = model.StatusUnderReview
	br := &stubBudgetRepo{budget: b, items: items, casRows: 1}

	_, err := newTestService(br, &stubHistoryRepo{}).Reject(context.Background(), b.ID.String(), uuid.NewString(), "")

	var vErrs budget.ValidationErrors
	require.ErrorAs(t, err, &vErrs)
	assert.Nil(t, br.saved)
}

func TestApproveFromTerminalStatusFails(t *testing.T) {
	owner := uuid.New()
	b, items := submittableDraft(owner)
	b.Status = model.StatusApproved
	br := &stubBudgetRepo{budget: b, items: items, casRows: 1}

	_, err := newTestService(br, &stubHistoryRepo{}).Approve(context.Background(), b.ID.String(), uuid.NewString(), "again")

	var tErr *budget.TransitionError
	require.ErrorAs(t, err, &tErr)
	assert.Nil(t, br.saved)
}

func TestResubmitClearsReviewerFields(t *testing.T) {
	owner := uuid.New()
	reviewer := uuid.New()
	now := time.Now()
	b, items := submittableDraft(owner)
	b.Status = model.StatusRevisionRequired
	b.ReviewedBy = &reviewer
	b.ReviewedAt = &now
	b.ReviewComments = "needs detail"
	br := &stubBudgetRepo{budget: b, items: items, casRows: 1}

	resp, err := newTestService(br, &stubHistoryRepo{}).Resubmit(context.Background(), b.ID.String(), owner.String())
	require.NoError(t, err)

	assert.Equal(t, string(model.StatusSubmitted), resp.Status)
	assert.Nil(t, br.saved.ReviewedBy)
	assert.Nil(t, br.saved.ReviewedAt)
	assert.Empty(t, br.saved.ReviewComments)
}
