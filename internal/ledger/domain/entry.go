package domain

import (
	"context"
	"time"

	ledgerErrors "github.com/rkhatri/LedgerManager/internal/ledger/errors"
)

const (
	EntryTypeIncome  = "income"
	EntryTypeExpense = "expense"
)

// Entry is a single expense or income record. Posting one moves the owning
// account's balance by Amount; deleting one moves it back.
type Entry struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	AccountID  string    `json:"account_id"`
	CategoryID string    `json:"category_id"`
	Type       string    `json:"entry_type"` // "income" or "expense"
	Amount     Money     `json:"amount"`
	Date       time.Time `json:"entry_date"`
	Note       string    `json:"note,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

func (e *Entry) Validate() error {
	if e.Type != EntryTypeIncome && e.Type != EntryTypeExpense {
		return ledgerErrors.NewValidationError("Entry type must be 'income' or 'expense'")
	}
	if e.Amount <= 0 {
		return ledgerErrors.NewValidationError("Amount must be greater than zero")
	}
	if e.Date.IsZero() {
		return ledgerErrors.NewValidationError("Entry date is required")
	}
	if len(e.Note) > 200 {
		return ledgerErrors.NewValidationError("Note must be of length less than 200")
	}
	return nil
}

// CategorySummary is one row of the per-category expense breakdown shown on
// the dashboard chart.
type CategorySummary struct {
	CategoryID   string `json:"category_id"`
	CategoryName string `json:"category_name"`
	Total        Money  `json:"total"`
}

type EntryRepository interface {
	// FindByUser lists entries newest first. entryType filters by type when
	// non-empty; the date range is inclusive, zero times mean unbounded.
	FindByUser(ctx context.Context, userID, entryType string, startDate, endDate time.Time) ([]Entry, error)
	FindByID(ctx context.Context, userID, entryID string) (*Entry, error)
	SummaryByCategory(ctx context.Context, userID, entryType string, startDate, endDate time.Time, limit int) ([]CategorySummary, error)
}
