package repository

import (
	"context"
	"fmt"

	"budget-backend/internal/budget"
	"budget-backend/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// BudgetRepository defines data access for budgets and their line items.
type BudgetRepository interface {
	Create(ctx context.Context, b *model.Budget) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Budget, error)
	FindByIDWithItems(ctx context.Context, id uuid.UUID) (*model.Budget, error)
	List(ctx context.Context, f budget.Filter, page, limit int) ([]model.Budget, int64, error)
	// ListAll returns every record matching the filter, unpaginated, for the
	// aggregation engine.
	ListAll(ctx context.Context, f budget.Filter) ([]model.Budget, error)
	Save(ctx context.Context, b *model.Budget) error
	// SaveWhereStatus writes the full record only if the stored status is still
	// one of allowed; the returned count is 0 when another writer got there
	// first (compare-and-swap on status).
	SaveWhereStatus(ctx context.Context, b *model.Budget, allowed []model.Status) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
	NextBusinessID(ctx context.Context) (string, error)

	CreateItem(ctx context.Context, item *model.BudgetLineItem) error
	FindItem(ctx context.Context, budgetID, itemID uuid.UUID) (*model.BudgetLineItem, error)
	ListItems(ctx context.Context, budgetID uuid.UUID) ([]model.BudgetLineItem, error)
	SaveItem(ctx context.Context, item *model.BudgetLineItem) error
	DeleteItem(ctx context.Context, budgetID, itemID uuid.UUID) error
	UpdateAmount(ctx context.Context, budgetID uuid.UUID, amount decimal.Decimal) error
}

type budgetRepository struct {
	db *gorm.DB
}

func NewBudgetRepository(db *gorm.DB) BudgetRepository {
	return &budgetRepository{db: db}
}

func (r *budgetRepository) Create(ctx context.Context, b *model.Budget) error {
	return GetDB(ctx, r.db).Create(b).Error
}

func (r *budgetRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Budget, error) {
	var b model.Budget
	if err := GetDB(ctx, r.db).First(&b, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *budgetRepository) FindByIDWithItems(ctx context.Context, id uuid.UUID) (*model.Budget, error) {
	var b model.Budget
	if err := GetDB(ctx, r.db).Preload("Items").Preload("Submitter").Preload("Reviewer").First(&b, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

// applyFilter translates the in-memory predicate terms into SQL so listing
// stays paginated server-side; the same terms drive budget.Filter for
// already-fetched collections.
func applyFilter(q *gorm.DB, f budget.Filter) *gorm.DB {
	if f.Query != "" {
		like := "%" + f.Query + "%"
		q = q.Where("budget_id ILIKE ? OR department ILIKE ? OR description ILIKE ?", like, like, like)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Department != "" {
		q = q.Where("department = ?", f.Department)
	}
	if f.From != nil {
		q = q.Where("created_at >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("created_at <= ?", *f.To)
	}
	return q
}

func (r *budgetRepository) List(ctx context.Context, f budget.Filter, page, limit int) ([]model.Budget, int64, error) {
	db := GetDB(ctx, r.db)

	var total int64
	if err := applyFilter(db.Model(&model.Budget{}), f).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var budgets []model.Budget
	offset := (page - 1) * limit
	if err := applyFilter(db, f).Order("created_at DESC").Offset(offset).Limit(limit).Find(&budgets).Error; err != nil {
		return nil, 0, err
	}

	return budgets, total, nil
}

func (r *budgetRepository) ListAll(ctx context.Context, f budget.Filter) ([]model.Budget, error) {
	var budgets []model.Budget
	if err := applyFilter(GetDB(ctx, r.db), f).Order("created_at ASC").Find(&budgets).Error; err != nil {
		return nil, err
	}
	return budgets, nil
}

func (r *budgetRepository) Save(ctx context.Context, b *model.Budget) error {
	return GetDB(ctx, r.db).Save(b).Error
}

func (r *budgetRepository) SaveWhereStatus(ctx context.Context, b *model.Budget, allowed []model.Status) (int64, error) {
	res := GetDB(ctx, r.db).Model(&model.Budget{}).
		Where("id = ? AND status IN ?", b.ID, allowed).
		Select("status", "submitted_by", "submitted_at", "reviewed_by", "reviewed_at", "review_comments", "updated_at").
		Updates(b)
	return res.RowsAffected, res.Error
}

func (r *budgetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.Budget{}).Error
}

// NextBusinessID issues the next BUD-%06d id from a store-side sequence. An
// advisory lock serializes concurrent creators so ids cannot collide.
func (r *budgetRepository) NextBusinessID(ctx context.Context) (string, error) {
	db := GetDB(ctx, r.db)
	if err := db.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", "budget_business_id").Error; err != nil {
		return "", fmt.Errorf("failed to acquire id lock: %w", err)
	}

	// Max, not count: deleted drafts must never free an id for reuse.
	var max int64
	if err := db.Model(&model.Budget{}).Unscoped().
		Select("COALESCE(MAX(CAST(SUBSTRING(budget_id FROM 5) AS INTEGER)), 0)").
		Scan(&max).Error; err != nil {
		return "", err
	}

	return fmt.Sprintf("BUD-%06d", max+1), nil
}

func (r *budgetRepository) CreateItem(ctx context.Context, item *model.BudgetLineItem) error {
	return GetDB(ctx, r.db).Create(item).Error
}

func (r *budgetRepository) FindItem(ctx context.Context, budgetID, itemID uuid.UUID) (*model.BudgetLineItem, error) {
	var item model.BudgetLineItem
	if err := GetDB(ctx, r.db).First(&item, "id = ? AND budget_ref = ?", itemID, budgetID).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *budgetRepository) ListItems(ctx context.Context, budgetID uuid.UUID) ([]model.BudgetLineItem, error) {
	var items []model.BudgetLineItem
	if err := GetDB(ctx, r.db).Where("budget_ref = ?", budgetID).Order("created_at asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *budgetRepository) SaveItem(ctx context.Context, item *model.BudgetLineItem) error {
	return GetDB(ctx, r.db).Save(item).Error
}

func (r *budgetRepository) DeleteItem(ctx context.Context, budgetID, itemID uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ? AND budget_ref = ?", itemID, budgetID).Delete(&model.BudgetLineItem{}).Error
}

func (r *budgetRepository) UpdateAmount(ctx context.Context, budgetID uuid.UUID, amount decimal.Decimal) error {
	return GetDB(ctx, r.db).Model(&model.Budget{}).Where("id = ?", budgetID).Update("amount", amount).Error
}
