package domain

import (
	"context"
	"time"

	ledgerErrors "github.com/rkhatri/LedgerManager/internal/ledger/errors"
)

const (
	LendingStatusNotSettled = "not settled"
	LendingStatusSettled    = "settled"
)

// Lending is money lent out of one of the user's accounts, tracked until
// fully repaid. settled_amount only ever grows; once it reaches Amount the
// lending is terminal.
type Lending struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	Date          time.Time `json:"date"`
	Amount        Money     `json:"amount"`
	FromAccountID string    `json:"from_account_id"`
	Note          string    `json:"note,omitempty"`
	SettledAmount Money     `json:"settled_amount"`
	Status        string    `json:"status"` // "not settled" or "settled"
	CreatedAt     time.Time `json:"created_at"`
}

// Remaining is the amount still owed back.
func (l *Lending) Remaining() Money {
	return l.Amount - l.SettledAmount
}

func (l *Lending) Validate() error {
	if l.Amount <= 0 {
		return ledgerErrors.NewValidationError("Amount must be greater than zero")
	}
	if l.Date.IsZero() {
		return ledgerErrors.NewValidationError("Lending date is required")
	}
	if len(l.Note) > 200 {
		return ledgerErrors.NewValidationError("Note must be of length less than 200")
	}
	return nil
}

type LendingRepository interface {
	// FindByUser lists lendings newest first, date range inclusive, zero
	// times mean unbounded.
	FindByUser(ctx context.Context, userID string, startDate, endDate time.Time) ([]Lending, error)
	FindByID(ctx context.Context, userID, lendingID string) (*Lending, error)
	// OutstandingTotal is the sum of amount - settled_amount over all of the
	// user's lendings.
	OutstandingTotal(ctx context.Context, userID string) (Money, error)
}
