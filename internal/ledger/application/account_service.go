package application

import (
	"context"

	"github.com/google/uuid"
	"github.com/rkhatri/LedgerManager/internal/ledger/domain"
	ledgerErrors "github.com/rkhatri/LedgerManager/internal/ledger/errors"
)

// AccountService owns account lifecycle and the transfer operation. All
// balance movement goes through the TxRunner so concurrent operations on the
// same accounts serialize.
type AccountService struct {
	repo domain.AccountRepository
	tx   domain.TxRunner
}

func NewAccountService(repo domain.AccountRepository, tx domain.TxRunner) *AccountService {
	return &AccountService{repo: repo, tx: tx}
}

func (s *AccountService) CreateAccount(ctx context.Context, userID, name string, initialBalance domain.Money, status string) (*domain.Account, error) {
	if status == "" {
		status = domain.AccountStatusSecondary
	}
	account := domain.Account{
		ID:      uuid.NewString(),
		UserID:  userID,
		Name:    name,
		Balance: initialBalance,
		Status:  status,
	}
	if err := account.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, account); err != nil {
		return nil, err
	}
	return &account, nil
}

func (s *AccountService) GetUserAccounts(ctx context.Context, userID string) ([]domain.Account, error) {
	accounts, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if accounts == nil {
		return []domain.Account{}, nil
	}
	return accounts, nil
}

// UpdateAccount covers the manual edits the admin panel allows: rename,
// direct balance correction, status change.
func (s *AccountService) UpdateAccount(ctx context.Context, userID, accountID, name string, balance domain.Money, status string) (*domain.Account, error) {
	account := domain.Account{
		ID:      accountID,
		UserID:  userID,
		Name:    name,
		Balance: balance,
		Status:  status,
	}
	if err := account.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, account); err != nil {
		return nil, err
	}
	return &account, nil
}

func (s *AccountService) DeleteAccount(ctx context.Context, userID, accountID string) error {
	return s.repo.Delete(ctx, userID, accountID)
}

// TransferFunds atomically debits the source account and credits the
// destination. Either both legs apply or neither does.
func (s *AccountService) TransferFunds(ctx context.Context, userID, sourceAccountID, destinationAccountID string, amount domain.Money) error {
	if amount <= 0 {
		return ledgerErrors.NewValidationError("Amount must be greater than zero")
	}
	if sourceAccountID == destinationAccountID {
		return ledgerErrors.ErrSameAccount
	}

	return s.tx.WithinTx(ctx, func(tx domain.LedgerTx) error {
		// Lock the two rows in id order so two opposite transfers running
		// concurrently cannot deadlock.
		firstID, secondID := sourceAccountID, destinationAccountID
		if secondID < firstID {
			firstID, secondID = secondID, firstID
		}
		first, err := tx.AccountForUpdate(userID, firstID)
		if err != nil {
			return err
		}
		second, err := tx.AccountForUpdate(userID, secondID)
		if err != nil {
			return err
		}

		source, destination := first, second
		if source.ID != sourceAccountID {
			source, destination = second, first
		}

		if source.Balance < amount {
			return ledgerErrors.ErrInsufficientFunds
		}
		if err := tx.SetAccountBalance(source.ID, source.Balance-amount); err != nil {
			return err
		}
		return tx.SetAccountBalance(destination.ID, destination.Balance+amount)
	})
}
