package service

import (
	"context"

	"expensetracker/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepo) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	if u := args.Get(0); u != nil {
		return u.(*model.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if u := args.Get(0); u != nil {
		return u.(*model.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if u := args.Get(0); u != nil {
		return u.(*model.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) FindAll(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if u := args.Get(0); u != nil {
		return u.([]model.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockExpenseRepo struct {
	mock.Mock
}

func (m *mockExpenseRepo) Create(ctx context.Context, expense *model.Expense) error {
	args := m.Called(ctx, expense)
	return args.Error(0)
}

func (m *mockExpenseRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Expense, error) {
	args := m.Called(ctx, id)
	if e := args.Get(0); e != nil {
		return e.(*model.Expense), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockExpenseRepo) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Expense, error) {
	args := m.Called(ctx, ownerID)
	if e := args.Get(0); e != nil {
		return e.([]model.Expense), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockExpenseRepo) FindAllWithOwner(ctx context.Context) ([]model.AdminExpense, error) {
	args := m.Called(ctx)
	if e := args.Get(0); e != nil {
		return e.([]model.AdminExpense), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockExpenseRepo) Update(ctx context.Context, expense *model.Expense) error {
	args := m.Called(ctx, expense)
	return args.Error(0)
}

func (m *mockExpenseRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
