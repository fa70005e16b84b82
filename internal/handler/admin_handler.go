package handler

import (
	"errors"
	"net/http"

	"expensetracker/internal/model"
	"expensetracker/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// AdminHandler handles the admin dashboard routes: full user management and
// unrestricted expense access. The role gate guards every route here; the
// ownership check is skipped by design.
type AdminHandler struct {
	users    service.UserService
	expenses service.ExpenseService
	log      *logrus.Logger
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(users service.UserService, expenses service.ExpenseService, log *logrus.Logger) *AdminHandler {
	return &AdminHandler{users: users, expenses: expenses, log: log}
}

// --- Users ---

func (h *AdminHandler) GetAllUsers(c *gin.Context) {
	users, err := h.users.GetAllUsers(c.Request.Context())
	if err != nil {
		h.log.WithError(err).Error("failed to list users")
		respondError(c, http.StatusInternalServerError, "Server error occurred.")
		return
	}
	respondData(c, http.StatusOK, "Users retrieved successfully.", users)
}

func (h *AdminHandler) GetUserByID(c *gin.Context) {
	userID, ok := parseIDParam(c)
	if !ok {
		respondError(c, http.StatusBadRequest, "Invalid user ID format.")
		return
	}

	user, err := h.users.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		h.respondUserError(c, err, "failed to get user")
		return
	}
	respondData(c, http.StatusOK, "User retrieved successfully.", user)
}

func (h *AdminHandler) UpdateUser(c *gin.Context) {
	userID, ok := parseIDParam(c)
	if !ok {
		respondError(c, http.StatusBadRequest, "Invalid user ID format.")
		return
	}

	var req model.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	user, err := h.users.UpdateUser(c.Request.Context(), userID, req)
	if err != nil {
		h.respondUserError(c, err, "failed to update user")
		return
	}
	respondData(c, http.StatusOK, "User updated successfully.", user)
}

func (h *AdminHandler) DeleteUser(c *gin.Context) {
	callerID, err := getAuthUserID(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Authentication required.")
		return
	}

	userID, ok := parseIDParam(c)
	if !ok {
		respondError(c, http.StatusBadRequest, "Invalid user ID format.")
		return
	}

	if err := h.users.DeleteUser(c.Request.Context(), userID, callerID); err != nil {
		if errors.Is(err, service.ErrSelfDelete) {
			respondError(c, http.StatusBadRequest, "Cannot delete your own account.")
			return
		}
		h.respondUserError(c, err, "failed to delete user")
		return
	}
	respondMessage(c, http.StatusOK, "User and associated data deleted successfully.")
}

func (h *AdminHandler) respondUserError(c *gin.Context, err error, logMsg string) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		respondError(c, http.StatusNotFound, "User not found.")
	case errors.Is(err, service.ErrUserConflict):
		respondError(c, http.StatusConflict, "Username or email already in use by another user.")
	default:
		h.log.WithError(err).Error(logMsg)
		respondError(c, http.StatusInternalServerError, "Server error occurred.")
	}
}

// --- Expenses ---

func (h *AdminHandler) GetAllExpenses(c *gin.Context) {
	expenses, err := h.expenses.GetAllExpensesAdmin(c.Request.Context())
	if err != nil {
		h.log.WithError(err).Error("failed to list all expenses")
		respondError(c, http.StatusInternalServerError, "Server error occurred while fetching expenses.")
		return
	}
	respondData(c, http.StatusOK, "All expenses retrieved successfully.", expenses)
}

func (h *AdminHandler) GetExpenseByID(c *gin.Context) {
	callerID, err := getAuthUserID(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Authentication required.")
		return
	}

	expenseID, ok := parseIDParam(c)
	if !ok {
		respondError(c, http.StatusBadRequest, "Invalid expense ID format.")
		return
	}

	expense, err := h.expenses.GetExpenseByID(c.Request.Context(), expenseID, callerID, model.RoleAdmin)
	if err != nil {
		h.respondExpenseError(c, err, "failed to get expense")
		return
	}
	respondData(c, http.StatusOK, "Expense retrieved successfully.", expense)
}

func (h *AdminHandler) UpdateExpense(c *gin.Context) {
	callerID, err := getAuthUserID(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Authentication required.")
		return
	}

	expenseID, ok := parseIDParam(c)
	if !ok {
		respondError(c, http.StatusBadRequest, "Invalid expense ID format.")
		return
	}

	var req model.UpdateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	expense, err := h.expenses.UpdateExpense(c.Request.Context(), expenseID, callerID, model.RoleAdmin, req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidDate) {
			respondError(c, http.StatusBadRequest, "Invalid date format, use YYYY-MM-DD.")
			return
		}
		h.respondExpenseError(c, err, "failed to update expense")
		return
	}
	respondData(c, http.StatusOK, "Expense updated successfully.", expense)
}

func (h *AdminHandler) DeleteExpense(c *gin.Context) {
	callerID, err := getAuthUserID(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Authentication required.")
		return
	}

	expenseID, ok := parseIDParam(c)
	if !ok {
		respondError(c, http.StatusBadRequest, "Invalid expense ID format.")
		return
	}

	if err := h.expenses.DeleteExpense(c.Request.Context(), expenseID, callerID, model.RoleAdmin); err != nil {
		h.respondExpenseError(c, err, "failed to delete expense")
		return
	}
	respondMessage(c, http.StatusOK, "Expense deleted successfully.")
}

func (h *AdminHandler) respondExpenseError(c *gin.Context, err error, logMsg string) {
	switch {
	case errors.Is(err, service.ErrExpenseNotFound):
		respondError(c, http.StatusNotFound, "Expense not found.")
	case errors.Is(err, service.ErrForbidden):
		respondError(c, http.StatusForbidden, "Access denied.")
	default:
		h.log.WithError(err).Error(logMsg)
		respondError(c, http.StatusInternalServerError, "Server error occurred.")
	}
}

// RegisterAdminRoutes registers admin routes; every route requires
// authentication followed by the admin role gate, in that order.
func (h *AdminHandler) RegisterAdminRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc, adminMW gin.HandlerFunc) {
	adminRoutes := rg.Group("/admin")
	adminRoutes.Use(authMW)
	adminRoutes.Use(adminMW)
	{
		adminRoutes.GET("/users", h.GetAllUsers)
		adminRoutes.GET("/users/:id", h.GetUserByID)
		adminRoutes.PUT("/users/:id", h.UpdateUser)
		adminRoutes.DELETE("/users/:id", h.DeleteUser)

		adminRoutes.GET("/expenses", h.GetAllExpenses)
		adminRoutes.GET("/expenses/:id", h.GetExpenseByID)
		adminRoutes.PUT("/expenses/:id", h.UpdateExpense)
		adminRoutes.DELETE("/expenses/:id", h.DeleteExpense)
	}
}
