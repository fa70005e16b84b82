package model

import (
	"time"

	"github.com/google/uuid"
)

// Expense is a single spending record owned by one user
type Expense struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Source    string    `json:"source"`
	Amount    float64   `json:"amount"`
	Date      time.Time `json:"date"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AdminExpense is an expense enriched with its owner's username for the
// admin dashboard listing
type AdminExpense struct {
	Expense
	Username string `json:"username"`
}

// CreateExpenseRequest is used for creating a new expense. Date accepts
// YYYY-MM-DD or RFC 3339.
type CreateExpenseRequest struct {
	Source string  `json:"source" binding:"required"`
	Amount float64 `json:"amount" binding:"required,gt=0"`
	Date   string  `json:"date" binding:"required"`
}

// UpdateExpenseRequest allows partial updates; pointers distinguish "absent"
// from zero values
type UpdateExpenseRequest struct {
	Source *string  `json:"source,omitempty"`
	Amount *float64 `json:"amount,omitempty" binding:"omitempty,gt=0"`
	Date   *string  `json:"date,omitempty"`
}
