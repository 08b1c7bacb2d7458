package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rkhatri/LedgerManager/internal/ledger/domain"
	ledgerErrors "github.com/rkhatri/LedgerManager/internal/ledger/errors"
)

// LendingService tracks money lent out until it is fully settled. Creating a
// lending debits the source account; every settlement credits money back to
// that same account (the repayment lands where the loan came from).
type LendingService struct {
	repo domain.LendingRepository
	tx   domain.TxRunner
}

func NewLendingService(repo domain.LendingRepository, tx domain.TxRunner) *LendingService {
	return &LendingService{repo: repo, tx: tx}
}

func (s *LendingService) CreateLending(ctx context.Context, userID string, date time.Time, amount domain.Money, fromAccountID, note string) (*domain.Lending, error) {
	lending := domain.Lending{
		ID:            uuid.NewString(),
		UserID:        userID,
		Date:          date,
		Amount:        amount,
		FromAccountID: fromAccountID,
		Note:          note,
		SettledAmount: 0,
		Status:        domain.LendingStatusNotSettled,
		CreatedAt:     time.Now().UTC(),
	}
	if err := lending.Validate(); err != nil {
		return nil, err
	}

	err := s.tx.WithinTx(ctx, func(tx domain.LedgerTx) error {
		account, err := tx.AccountForUpdate(userID, fromAccountID)
		if err != nil {
			return err
		}
		if account.Balance < amount {
			return ledgerErrors.ErrInsufficientFunds
		}
		if err := tx.SetAccountBalance(account.ID, account.Balance-amount); err != nil {
			return err
		}
		return tx.InsertLending(lending)
	})
	if err != nil {
		return nil, err
	}
	return &lending, nil
}

// SettleLending records a partial or full repayment: settled_amount grows by
// amount and the source account is credited back the same amount, both in
// one transaction. A fully settled lending is terminal.
func (s *LendingService) SettleLending(ctx context.Context, userID, lendingID string, amount domain.Money) (*domain.Lending, error) {
	if amount <= 0 {
		return nil, ledgerErrors.NewValidationError("Amount must be greater than zero")
	}

	var settled domain.Lending
	err := s.tx.WithinTx(ctx, func(tx domain.LedgerTx) error {
		lending, err := tx.LendingForUpdate(userID, lendingID)
		if err != nil {
			return err
		}
		if lending.Status == domain.LendingStatusSettled {
			return ledgerErrors.ErrAlreadySettled
		}
		if amount > lending.Remaining() {
			return ledgerErrors.ErrOverSettlement
		}

		account, err := tx.AccountForUpdate(userID, lending.FromAccountID)
		if err != nil {
			return err
		}
		if err := tx.SetAccountBalance(account.ID, account.Balance+amount); err != nil {
			return err
		}

		lending.SettledAmount += amount
		if lending.SettledAmount == lending.Amount {
			lending.Status = domain.LendingStatusSettled
		}
		if err := tx.UpdateLendingSettlement(lending.ID, lending.SettledAmount, lending.Status); err != nil {
			return err
		}
		settled = *lending
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &settled, nil
}

func (s *LendingService) GetUserLendings(ctx context.Context, userID string, startDate, endDate time.Time) ([]domain.Lending, error) {
	lendings, err := s.repo.FindByUser(ctx, userID, startDate, endDate)
	if err != nil {
		return nil, err
	}
	if lendings == nil {
		return []domain.Lending{}, nil
	}
	return lendings, nil
}

func (s *LendingService) GetOutstandingTotal(ctx context.Context, userID string) (domain.Money, error) {
	return s.repo.OutstandingTotal(ctx, userID)
}
