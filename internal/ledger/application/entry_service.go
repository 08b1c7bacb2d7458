package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rkhatri/LedgerManager/internal/ledger/domain"
	ledgerErrors "github.com/rkhatri/LedgerManager/internal/ledger/errors"
)

type CategoryServiceInterface interface {
	DoesActiveCategoryExist(ctx context.Context, userID, categoryID, categoryType string) (bool, error)
}

// EntryService posts and deletes expense/income entries. Each posting moves
// the owning account's balance inside one transaction with the entry write.
type EntryService struct {
	repo            domain.EntryRepository
	categoryService CategoryServiceInterface
	tx              domain.TxRunner
}

func NewEntryService(repo domain.EntryRepository, categoryService CategoryServiceInterface, tx domain.TxRunner) *EntryService {
	return &EntryService{repo: repo, categoryService: categoryService, tx: tx}
}

func (s *EntryService) PostExpense(ctx context.Context, userID, accountID, categoryID string, amount domain.Money, date time.Time, note string) (*domain.Entry, error) {
	return s.postEntry(ctx, userID, accountID, categoryID, domain.EntryTypeExpense, amount, date, note)
}

func (s *EntryService) PostIncome(ctx context.Context, userID, accountID, categoryID string, amount domain.Money, date time.Time, note string) (*domain.Entry, error) {
	return s.postEntry(ctx, userID, accountID, categoryID, domain.EntryTypeIncome, amount, date, note)
}

func (s *EntryService) postEntry(ctx context.Context, userID, accountID, categoryID, entryType string, amount domain.Money, date time.Time, note string) (*domain.Entry, error) {
	entry := domain.Entry{
		ID:         uuid.NewString(),
		UserID:     userID,
		AccountID:  accountID,
		CategoryID: categoryID,
		Type:       entryType,
		Amount:     amount,
		Date:       date,
		Note:       note,
		CreatedAt:  time.Now().UTC(),
	}
	if err := entry.Validate(); err != nil {
		return nil, err
	}

	exists, err := s.categoryService.DoesActiveCategoryExist(ctx, userID, categoryID, entryType)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ledgerErrors.ErrInvalidCategory
	}

	err = s.tx.WithinTx(ctx, func(tx domain.LedgerTx) error {
		account, err := tx.AccountForUpdate(userID, accountID)
		if err != nil {
			return err
		}
		balance := account.Balance
		if entryType == domain.EntryTypeExpense {
			// Overdrafts are rejected rather than allowed to push the
			// balance negative.
			if balance < amount {
				return ledgerErrors.ErrInsufficientFunds
			}
			balance -= amount
		} else {
			balance += amount
		}
		if err := tx.SetAccountBalance(account.ID, balance); err != nil {
			return err
		}
		return tx.InsertEntry(entry)
	})
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// DeleteEntry removes the entry and restores the balance it moved, in one
// transaction. Balance after post+delete equals the balance before the post.
func (s *EntryService) DeleteEntry(ctx context.Context, userID, entryID string) error {
	return s.tx.WithinTx(ctx, func(tx domain.LedgerTx) error {
		entry, err := tx.EntryForUpdate(userID, entryID)
		if err != nil {
			return err
		}
		account, err := tx.AccountForUpdate(userID, entry.AccountID)
		if err != nil {
			return err
		}
		balance := account.Balance
		if entry.Type == domain.EntryTypeExpense {
			balance += entry.Amount
		} else {
			// The income may have been spent already.
			if balance < entry.Amount {
				return ledgerErrors.ErrInsufficientFunds
			}
			balance -= entry.Amount
		}
		if err := tx.SetAccountBalance(account.ID, balance); err != nil {
			return err
		}
		return tx.DeleteEntry(entry.ID)
	})
}

func (s *EntryService) GetUserEntries(ctx context.Context, userID, entryType string, startDate, endDate time.Time) ([]domain.Entry, error) {
	if entryType != "" && entryType != domain.EntryTypeIncome && entryType != domain.EntryTypeExpense {
		return nil, ledgerErrors.NewValidationError("Entry type must be 'income' or 'expense'")
	}
	entries, err := s.repo.FindByUser(ctx, userID, entryType, startDate, endDate)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		return []domain.Entry{}, nil
	}
	return entries, nil
}
