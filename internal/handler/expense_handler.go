package handler

import (
	"errors"
	"net/http"

	"expensetracker/internal/middleware"
	"expensetracker/internal/model"
	"expensetracker/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ExpenseHandler handles expense related requests
type ExpenseHandler struct {
	service service.ExpenseService
	log     *logrus.Logger
}

// NewExpenseHandler creates a new ExpenseHandler
func NewExpenseHandler(s service.ExpenseService, log *logrus.Logger) *ExpenseHandler {
	return &ExpenseHandler{service: s, log: log}
}

// getAuthUserID returns the authenticated subject id from the context. The
// claims are authoritative; ids in the request body are never trusted.
func getAuthUserID(c *gin.Context) (uuid.UUID, error) {
	userIDVal, exists := c.Get(middleware.AuthUserKey)
	if !exists {
		return uuid.Nil, errors.New("user ID not found in context")
	}
	userID, ok := userIDVal.(uuid.UUID)
	if !ok {
		return uuid.Nil, errors.New("invalid user ID type in context")
	}
	return userID, nil
}

// getAuthUserRole returns the authenticated role from the context
func getAuthUserRole(c *gin.Context) (model.Role, error) {
	roleVal, exists := c.Get(middleware.AuthRoleKey)
	if !exists {
		return "", errors.New("user role not found in context")
	}
	role, ok := roleVal.(model.Role)
	if !ok {
		return "", errors.New("invalid user role type in context")
	}
	return role, nil
}

// parseIDParam normalizes the :id path parameter to a UUID
func parseIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

func (h *ExpenseHandler) CreateExpense(c *gin.Context) {
	userID, err := getAuthUserID(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Authentication required.")
		return
	}

	var req model.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	expense, err := h.service.CreateExpense(c.Request.Context(), userID, req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidDate) {
			respondError(c, http.StatusBadRequest, "Invalid date format, use YYYY-MM-DD.")
			return
		}
		h.log.WithError(err).Error("failed to create expense")
		respondError(c, http.StatusInternalServerError, "Failed to create expense.")
		return
	}
	respondData(c, http.StatusCreated, "Expense created successfully.", expense)
}

func (h *ExpenseHandler) GetMyExpenses(c *gin.Context) {
	userID, err := getAuthUserID(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Authentication required.")
		return
	}

	expenses, err := h.service.GetUserExpenses(c.Request.Context(), userID)
	if err != nil {
		h.log.WithError(err).Error("failed to list expenses")
		respondError(c, http.StatusInternalServerError, "Failed to retrieve expenses.")
		return
	}
	respondData(c, http.StatusOK, "Expenses retrieved successfully.", expenses)
}

func (h *ExpenseHandler) GetExpenseByID(c *gin.Context) {
	userID, err := getAuthUserID(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Authentication required.")
		return
	}
	userRole, err := getAuthUserRole(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Authentication required.")
		return
	}

	expenseID, ok := parseIDParam(c)
	if !ok {
		respondError(c, http.StatusBadRequest, "Invalid expense ID format.")
		return
	}

	expense, err := h.service.GetExpenseByID(c.Request.Context(), expenseID, userID, userRole)
	if err != nil {
		h.respondExpenseError(c, err, "failed to get expense")
		return
	}
	respondData(c, http.StatusOK, "Expense retrieved successfully.", expense)
}

func (h *ExpenseHandler) UpdateExpense(c *gin.Context) {
	userID, err := getAuthUserID(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Authentication required.")
		return
	}
	userRole, err := getAuthUserRole(c)
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

	expense, err := h.service.UpdateExpense(c.Request.Context(), expenseID, userID, userRole, req)
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

func (h *ExpenseHandler) DeleteExpense(c *gin.Context) {
	userID, err := getAuthUserID(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Authentication required.")
		return
	}
	userRole, err := getAuthUserRole(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Authentication required.")
		return
	}

	expenseID, ok := parseIDParam(c)
	if !ok {
		respondError(c, http.StatusBadRequest, "Invalid expense ID format.")
		return
	}

	if err := h.service.DeleteExpense(c.Request.Context(), expenseID, userID, userRole); err != nil {
		h.respondExpenseError(c, err, "failed to delete expense")
		return
	}
	respondMessage(c, http.StatusOK, "Expense deleted successfully.")
}

// respondExpenseError maps expense service sentinels onto the envelope
func (h *ExpenseHandler) respondExpenseError(c *gin.Context, err error, logMsg string) {
	switch {
	case errors.Is(err, service.ErrExpenseNotFound):
		respondError(c, http.StatusNotFound, "Expense not found.")
	case errors.Is(err, service.ErrForbidden):
		respondError(c, http.StatusForbidden, "Access denied. You do not own this expense.")
	default:
		h.log.WithError(err).Error(logMsg)
		respondError(c, http.StatusInternalServerError, "Server error occurred.")
	}
}

// RegisterExpenseRoutes registers expense routes for authenticated users
func (h *ExpenseHandler) RegisterExpenseRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	expenseRoutes := rg.Group("/expenses")
	expenseRoutes.Use(authMW)
	{
		expenseRoutes.POST("", h.CreateExpense)
		expenseRoutes.GET("", h.GetMyExpenses)
		expenseRoutes.GET("/:id", h.GetExpenseByID)       // Service layer handles ownership for non-admins
		expenseRoutes.PUT("/:id", h.UpdateExpense)        // Service layer handles ownership
		expenseRoutes.DELETE("/:id", h.DeleteExpense)     // Service layer handles ownership for non-admins
	}
}
