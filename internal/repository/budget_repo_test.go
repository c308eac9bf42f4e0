package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"budget-backend/internal/budget"
	"budget-backend/internal/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockRepo(t *testing.T) (BudgetRepository, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 conn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)

	return NewBudgetRepository(db), mock
}

func TestSaveWhereStatusReportsConflict(t *testing.T) {
	repo, mock := newMockRepo(t)

	b := &model.Budget{ID: uuid.New(), Status: model.StatusSubmitted}

	// Another writer already moved the budget out of the allowed set, so the
	// guarded update touches no rows.
	mock.ExpectExec(`UPDATE "budgets" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	rows, err := repo.SaveWhereStatus(context.Background(), b, []model.Status{model.StatusDraft})
	require.NoError(t, err)
	assert.Zero(t, rows)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveWhereStatusWritesWhenStatusHolds(t *testing.T) {
	repo, mock := newMockRepo(t)

	b := &model.Budget{ID: uuid.New(), Status: model.StatusSubmitted}

	mock.ExpectExec(`UPDATE "budgets" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	rows, err := repo.SaveWhereStatus(context.Background(), b, []model.Status{model.StatusDraft})
	require.NoError(t, err)
	assert.EqualValues(t, 1, rows)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNextBusinessIDFormatsSequence(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(`SELECT pg_advisory_xact_lock`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT COALESCE\(MAX\(CAST\(SUBSTRING\(budget_id FROM 5\) AS INTEGER\)\), 0\)`).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(41))

	id, err := repo.NextBusinessID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "BUD-000042", id)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNextBusinessIDStartsAtOne(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(`SELECT pg_advisory_xact_lock`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT COALESCE`).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(0))

	id, err := repo.NextBusinessID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "BUD-000001", id)
}

func TestNextBusinessIDFailsWhenLockUnavailable(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(`SELECT pg_advisory_xact_lock`).
		WillReturnError(errors.New("lock timeout"))

	_, err := repo.NextBusinessID(context.Background())
	require.Error(t, err)
	assert.ErrorContains(t, err, "lock")
}

func TestListAppliesFilterTerms(t *testing.T) {
	repo, mock := newMockRepo(t)

	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	f := budget.Filter{
		Query:      "IT",
		Status:     model.StatusApproved,
		Department: "IT",
		From:       &from,
	}

	mock.ExpectQuery(`SELECT count\(\*\) FROM "budgets" WHERE \(budget_id ILIKE .+ OR department ILIKE .+ OR description ILIKE .+\) AND status = .+ AND department = .+ AND created_at >= .+`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	mock.ExpectQuery(`SELECT \* FROM "budgets" WHERE \(budget_id ILIKE .+ OR department ILIKE .+ OR description ILIKE .+\) AND status = .+ AND department = .+ AND created_at >= .+ ORDER BY created_at DESC`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "budget_id", "department", "status"}).
			AddRow(uuid.New().String(), "BUD-000007", "IT", "Approved"))

	budgets, total, err := repo.List(context.Background(), f, 1, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, budgets, 1)
	assert.Equal(t, "BUD-000007", budgets[0].BudgetID)
	assert.Equal(t, model.StatusApproved, budgets[0].Status)

	assert.NoError(t, mock.ExpectationsWereMet())
}
