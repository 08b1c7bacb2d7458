package domain

import (
	"context"

	ledgerErrors "github.com/rkhatri/LedgerManager/internal/ledger/errors"
)

const (
	AccountStatusPrimary   = "primary"
	AccountStatusSecondary = "secondary"
)

type Account struct {
	ID      string `json:"id"`
	UserID  string `json:"user_id"`
	Name    string `json:"account_name"`
	Balance Money  `json:"total_money"`
	Status  string `json:"status"` // "primary" or "secondary"
}

func (a *Account) Validate() error {
	if a.Name == "" {
		return ledgerErrors.NewValidationError("Account name must not be empty")
	}
	if len(a.Name) > 100 {
		return ledgerErrors.NewValidationError("Account name must be of length less than 100")
	}
	if a.Balance < 0 {
		return ledgerErrors.NewValidationError("Account balance must not be negative")
	}
	if a.Status != AccountStatusPrimary && a.Status != AccountStatusSecondary {
		return ledgerErrors.NewValidationError("Account status must be 'primary' or 'secondary'")
	}
	return nil
}

type AccountRepository interface {
	Save(ctx context.Context, account Account) error
	FindByUser(ctx context.Context, userID string) ([]Account, error)
	FindByID(ctx context.Context, userID, accountID string) (*Account, error)
	Update(ctx context.Context, account Account) error
	Delete(ctx context.Context, userID, accountID string) error
}
