package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"expensetracker/internal/model"
	"expensetracker/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockUserService struct {
	mock.Mock
}

func (m *mockUserService) GetAllUsers(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if u := args.Get(0); u != nil {
		return u.([]model.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserService) GetUserByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if u := args.Get(0); u != nil {
		return u.(*model.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserService) UpdateUser(ctx context.Context, id uuid.UUID, req model.UpdateUserRequest) (*model.User, error) {
	args := m.Called(ctx, id, req)
	if u := args.Get(0); u != nil {
		return u.(*model.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserService) DeleteUser(ctx context.Context, id, callerID uuid.UUID) error {
	args := m.Called(ctx, id, callerID)
	return args.Error(0)
}

func adminRouter(users service.UserService, expenses service.ExpenseService, callerID uuid.UUID) *gin.Engine {
	r := gin.New()
	h := NewAdminHandler(users, expenses, discardLogger())
	noop := func(c *gin.Context) { c.Next() }
	h.RegisterAdminRoutes(r.Group("/api/v1"), fakeAuth(callerID, model.RoleAdmin), noop)
	return r
}

func TestAdminHandler_GetAllUsers(t *testing.T) {
	users := new(mockUserService)
	users.On("GetAllUsers", mock.Anything).Return([]model.User{
		{ID: uuid.New(), Username: "alice"},
		{ID: uuid.New(), Username: "bob"},
	}, nil)

	w := doJSON(adminRouter(users, new(mockExpenseService), uuid.New()), http.MethodGet, "/api/v1/admin/users", nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data, ok := resp["data"].([]interface{})
	require.True(t, ok)
	assert.Len(t, data, 2)
}

func TestAdminHandler_GetUserByID_NotFound(t *testing.T) {
	users := new(mockUserService)
	id := uuid.New()
	users.On("GetUserByID", mock.Anything, id).Return(nil, service.ErrUserNotFound)

	w := doJSON(adminRouter(users, new(mockExpenseService), uuid.New()), http.MethodGet, "/api/v1/admin/users/"+id.String(), nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "User not found.")
}

func TestAdminHandler_UpdateUser_Conflict(t *testing.T) {
	users := new(mockUserService)
	id := uuid.New()
	users.On("UpdateUser", mock.Anything, id, mock.AnythingOfType("model.UpdateUserRequest")).Return(nil, service.ErrUserConflict)

	w := doJSON(adminRouter(users, new(mockExpenseService), uuid.New()), http.MethodPut, "/api/v1/admin/users/"+id.String(), map[string]string{
		"firstName": "Bob",
		"lastName":  "Jones",
		"gender":    "male",
		"phone":     "0987654321",
		"email":     "bob@x.com",
		"username":  "bob",
		"role":      "user",
	})

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "already in use")
}

func TestAdminHandler_DeleteUser_Self(t *testing.T) {
	users := new(mockUserService)
	callerID := uuid.New()
	users.On("DeleteUser", mock.Anything, callerID, callerID).Return(service.ErrSelfDelete)

	w := doJSON(adminRouter(users, new(mockExpenseService), callerID), http.MethodDelete, "/api/v1/admin/users/"+callerID.String(), nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Cannot delete your own account.")
}

func TestAdminHandler_DeleteUser(t *testing.T) {
	users := new(mockUserService)
	callerID := uuid.New()
	targetID := uuid.New()
	users.On("DeleteUser", mock.Anything, targetID, callerID).Return(nil)

	w := doJSON(adminRouter(users, new(mockExpenseService), callerID), http.MethodDelete, "/api/v1/admin/users/"+targetID.String(), nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "User and associated data deleted successfully.")
}

func TestAdminHandler_GetAllExpenses(t *testing.T) {
	expenses := new(mockExpenseService)
	expenses.On("GetAllExpensesAdmin", mock.Anything).Return([]model.AdminExpense{
		{Expense: model.Expense{ID: uuid.New(), Source: "coffee", Amount: 3.50}, Username: "alice"},
	}, nil)

	w := doJSON(adminRouter(new(mockUserService), expenses, uuid.New()), http.MethodGet, "/api/v1/admin/expenses", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "alice")
}

func TestAdminHandler_DeleteExpense_AdminRoleForwarded(t *testing.T) {
	expenses := new(mockExpenseService)
	callerID := uuid.New()
	expenseID := uuid.New()
	expenses.On("DeleteExpense", mock.Anything, expenseID, callerID, model.RoleAdmin).Return(nil)

	w := doJSON(adminRouter(new(mockUserService), expenses, callerID), http.MethodDelete, "/api/v1/admin/expenses/"+expenseID.String(), nil)

	assert.Equal(t, http.StatusOK, w.Code)
	expenses.AssertExpectations(t)
}
