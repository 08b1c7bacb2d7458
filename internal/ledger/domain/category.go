package domain

import (
	"context"
	"time"

	ledgerErrors "github.com/rkhatri/LedgerManager/internal/ledger/errors"
)

const (
	CategoryTypeIncome  = "income"
	CategoryTypeExpense = "expense"

	CategoryStatusActive   = "active"
	CategoryStatusInactive = "inactive"
)

// Category classifies entries. An inactive category no longer shows up when
// creating entries but stays attached to historical ones.
type Category struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"category_name"`
	Type      string    `json:"category_type"` // "income" or "expense"
	Status    string    `json:"status"`        // "active" or "inactive"
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Category) Validate() error {
	if c.Name == "" {
		return ledgerErrors.NewValidationError("Category name must not be empty")
	}
	if c.Type != CategoryTypeIncome && c.Type != CategoryTypeExpense {
		return ledgerErrors.NewValidationError("Category type must be 'income' or 'expense'")
	}
	if c.Status != CategoryStatusActive && c.Status != CategoryStatusInactive {
		return ledgerErrors.NewValidationError("Category status must be 'active' or 'inactive'")
	}
	return nil
}

type CategoryRepository interface {
	Save(ctx context.Context, category Category) error
	// FindByUser lists the user's categories, newest first. categoryType
	// filters by type when non-empty; activeOnly excludes inactive ones.
	FindByUser(ctx context.Context, userID, categoryType string, activeOnly bool) ([]Category, error)
	FindByID(ctx context.Context, userID, categoryID string) (*Category, error)
	Update(ctx context.Context, category Category) error
	Delete(ctx context.Context, userID, categoryID string) error
}
