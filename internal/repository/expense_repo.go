package repository

import (
	"context"
	"errors"
	"fmt"

	"expensetracker/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ExpenseRepository defines operations for expense data
type ExpenseRepository interface {
	Create(ctx context.Context, expense *model.Expense) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Expense, error)
	FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Expense, error)
	FindAllWithOwner(ctx context.Context) ([]model.AdminExpense, error)
	Update(ctx context.Context, expense *model.Expense) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type expenseRepository struct {
	db Querier
}

// NewExpenseRepository creates a new ExpenseRepository
func NewExpenseRepository(db Querier) ExpenseRepository {
	return &expenseRepository{db: db}
}

// Create inserts a new expense into the database
func (r *expenseRepository) Create(ctx context.Context, e *model.Expense) error {
	sql := `INSERT INTO expenses (id, user_id, source, amount, date, created_at, updated_at)
            VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.Exec(ctx, sql, e.ID, e.UserID, e.Source, e.Amount, e.Date, e.CreatedAt, e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create expense: %w", err)
	}
	return nil
}

// FindByID retrieves an expense by its ID
func (r *expenseRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Expense, error) {
	e := &model.Expense{}
	sql := `SELECT id, user_id, source, amount, date, created_at, updated_at
            FROM expenses WHERE id = $1`
	err := r.db.QueryRow(ctx, sql, id).Scan(
		&e.ID, &e.UserID, &e.Source, &e.Amount, &e.Date, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("failed to find expense by ID: %w", err)
	}
	return e, nil
}

// FindByOwner retrieves all expenses belonging to one user, newest first
func (r *expenseRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Expense, error) {
	sql := `SELECT id, user_id, source, amount, date, created_at, updated_at
            FROM expenses WHERE user_id = $1
            ORDER BY date DESC, created_at DESC`
	rows, err := r.db.Query(ctx, sql, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses by owner: %w", err)
	}
	defer rows.Close()

	var expenses []model.Expense
	for rows.Next() {
		var e model.Expense
		if err := rows.Scan(&e.ID, &e.UserID, &e.Source, &e.Amount, &e.Date, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan expense row: %w", err)
		}
		expenses = append(expenses, e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expense rows: %w", err)
	}
	return expenses, nil
}

// FindAllWithOwner retrieves every expense joined with its owner's username
// for the admin listing. A single join replaces per-expense user lookups.
func (r *expenseRepository) FindAllWithOwner(ctx context.Context) ([]model.AdminExpense, error) {
	sql := `SELECT e.id, e.user_id, u.username, e.source, e.amount, e.date, e.created_at, e.updated_at
            FROM expenses e JOIN users u ON e.user_id = u.id
            ORDER BY e.date DESC, e.created_at DESC`
	rows, err := r.db.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("failed to query all expenses: %w", err)
	}
	defer rows.Close()

	var expenses []model.AdminExpense
	for rows.Next() {
		var e model.AdminExpense
		if err := rows.Scan(&e.ID, &e.UserID, &e.Username, &e.Source, &e.Amount, &e.Date, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan expense row for admin: %w", err)
		}
		expenses = append(expenses, e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating admin expense rows: %w", err)
	}
	return expenses, nil
}

// Update modifies an existing expense. Ownership has already been verified by
// the service layer; the owner reference itself is never updated.
func (r *expenseRepository) Update(ctx context.Context, e *model.Expense) error {
	sql := `UPDATE expenses
            SET source = $1, amount = $2, date = $3, updated_at = NOW()
            WHERE id = $4 RETURNING updated_at`
	err := r.db.QueryRow(ctx, sql, e.Source, e.Amount, e.Date, e.ID).Scan(&e.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("expense not found for update")
		}
		return fmt.Errorf("failed to update expense: %w", err)
	}
	return nil
}

// Delete removes an expense from the database
func (r *expenseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	sql := `DELETE FROM expenses WHERE id = $1`
	cmdTag, err := r.db.Exec(ctx, sql, id)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("expense not found for deletion")
	}
	return nil
}
