package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"expensetracker/internal/model"
	"expensetracker/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrExpenseNotFound = errors.New("expense not found")
	ErrForbidden       = errors.New("forbidden: user does not have permission for this action")
	ErrInvalidDate     = errors.New("invalid date format, use YYYY-MM-DD")
)

// ExpenseService defines operations for expenses. Single-expense operations
// fetch the record first and compare its stored owner against the caller, so
// a missing id and a foreign owner stay distinguishable (404 vs 403).
type ExpenseService interface {
	CreateExpense(ctx context.Context, ownerID uuid.UUID, req model.CreateExpenseRequest) (*model.Expense, error)
	GetUserExpenses(ctx context.Context, ownerID uuid.UUID) ([]model.Expense, error)
	GetExpenseByID(ctx context.Context, expenseID, callerID uuid.UUID, callerRole model.Role) (*model.Expense, error)
	UpdateExpense(ctx context.Context, expenseID, callerID uuid.UUID, callerRole model.Role, req model.UpdateExpenseRequest) (*model.Expense, error)
	DeleteExpense(ctx context.Context, expenseID, callerID uuid.UUID, callerRole model.Role) error

	// Admin methods
	GetAllExpensesAdmin(ctx context.Context) ([]model.AdminExpense, error)
}

type expenseService struct {
	repo repository.ExpenseRepository
}

// NewExpenseService creates a new ExpenseService
func NewExpenseService(repo repository.ExpenseRepository) ExpenseService {
	return &expenseService{repo: repo}
}

// parseDate accepts a plain day or a full RFC 3339 timestamp
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Time{}, ErrInvalidDate
}

func (s *expenseService) CreateExpense(ctx context.Context, ownerID uuid.UUID, req model.CreateExpenseRequest) (*model.Expense, error) {
	date, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	expense := &model.Expense{
		ID:        uuid.New(),
		UserID:    ownerID,
		Source:    req.Source,
		Amount:    req.Amount,
		Date:      date,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, expense); err != nil {
		return nil, fmt.Errorf("failed to create expense in repo: %w", err)
	}
	return expense, nil
}

func (s *expenseService) GetUserExpenses(ctx context.Context, ownerID uuid.UUID) ([]model.Expense, error) {
	expenses, err := s.repo.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user expenses from repo: %w", err)
	}
	return expenses, nil
}

func (s *expenseService) GetExpenseByID(ctx context.Context, expenseID, callerID uuid.UUID, callerRole model.Role) (*model.Expense, error) {
	expense, err := s.repo.FindByID(ctx, expenseID)
	if err != nil {
		return nil, fmt.Errorf("failed to find expense by ID: %w", err)
	}
	if expense == nil {
		return nil, ErrExpenseNotFound
	}

	if callerRole != model.RoleAdmin && expense.UserID != callerID {
		return nil, ErrForbidden
	}
	return expense, nil
}

func (s *expenseService) UpdateExpense(ctx context.Context, expenseID, callerID uuid.UUID, callerRole model.Role, req model.UpdateExpenseRequest) (*model.Expense, error) {
	existing, err := s.repo.FindByID(ctx, expenseID)
	if err != nil {
		return nil, fmt.Errorf("failed to find expense for update: %w", err)
	}
	if existing == nil {
		return nil, ErrExpenseNotFound
	}
	if callerRole != model.RoleAdmin && existing.UserID != callerID {
		return nil, ErrForbidden
	}

	// Apply updates; the owner reference is immutable
	if req.Source != nil {
		existing.Source = *req.Source
	}
	if req.Amount != nil {
		existing.Amount = *req.Amount
	}
	if req.Date != nil {
		date, err := parseDate(*req.Date)
		if err != nil {
			return nil, err
		}
		existing.Date = date
	}
	existing.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, fmt.Errorf("failed to update expense in repo: %w", err)
	}
	return existing, nil
}

func (s *expenseService) DeleteExpense(ctx context.Context, expenseID, callerID uuid.UUID, callerRole model.Role) error {
	existing, err := s.repo.FindByID(ctx, expenseID)
	if err != nil {
		return fmt.Errorf("failed to find expense for deletion: %w", err)
	}
	if existing == nil {
		return ErrExpenseNotFound
	}

	if callerRole != model.RoleAdmin && existing.UserID != callerID {
		return ErrForbidden
	}
	if err := s.repo.Delete(ctx, expenseID); err != nil {
		return fmt.Errorf("failed to delete expense in repo: %w", err)
	}
	return nil
}

// --- Admin Methods ---

func (s *expenseService) GetAllExpensesAdmin(ctx context.Context) ([]model.AdminExpense, error) {
	expenses, err := s.repo.FindAllWithOwner(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get all expenses for admin: %w", err)
	}
	return expenses, nil
}
