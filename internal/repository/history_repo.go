package repository

import (
	"context"

	"budget-backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// HistoryRepository records and reads the budget change trail.
type HistoryRepository interface {
	Log(ctx context.Context, entry *model.BudgetHistory) error
	ListByBudget(ctx context.Context, budgetID uuid.UUID, page, limit int) ([]model.BudgetHistory, int64, error)
}

type historyRepository struct {
	db *gorm.DB
}

func NewHistoryRepository(db *gorm.DB) HistoryRepository {
	return &historyRepository{db: db}
}

func (r *historyRepository) Log(ctx context.Context, entry *model.BudgetHistory) error {
	return GetDB(ctx, r.db).Create(entry).Error
}

func (r *historyRepository) ListByBudget(ctx context.Context, budgetID uuid.UUID, page, limit int) ([]model.BudgetHistory, int64, error) {
	var entries []model.BudgetHistory
	var total int64

	db := GetDB(ctx, r.db)
	if err := db.Model(&model.BudgetHistory{}).Where("budget_ref = ?", budgetID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Preload("Actor").Where("budget_ref = ?", budgetID).
		Order("created_at desc").Offset(offset).Limit(limit).Find(&entries).Error; err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}
