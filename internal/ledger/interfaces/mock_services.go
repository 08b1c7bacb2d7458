package interfaces

import (
	"context"
	"errors"
	"time"

	"github.com/rkhatri/LedgerManager/internal/ledger/domain"
)

// MockAccountService returns canned data, or a fixed error per call.
type MockAccountService struct {
	accounts   []domain.Account
	err        error
	shouldFail bool
}

func (m *MockAccountService) CreateAccount(_ context.Context, userID, name string, initialBalance domain.Money, status string) (*domain.Account, error) {
	if m.shouldFail {
		return nil, errors.New("service error")
	}
	if m.err != nil {
		return nil, m.err
	}
	return &domain.Account{ID: "new-account", UserID: userID, Name: name, Balance: initialBalance, Status: status}, nil
}

func (m *MockAccountService) GetUserAccounts(_ context.Context, _ string) ([]domain.Account, error) {
	if m.shouldFail {
		return nil, errors.New("service error")
	}
	return m.accounts, nil
}

func (m *MockAccountService) UpdateAccount(_ context.Context, userID, accountID, name string, balance domain.Money, status string) (*domain.Account, error) {
	if m.shouldFail {
		return nil, errors.New("service error")
	}
	if m.err != nil {
		return nil, m.err
	}
	return &domain.Account{ID: accountID, UserID: userID, Name: name, Balance: balance, Status: status}, nil
}

func (m *MockAccountService) DeleteAccount(_ context.Context, _, _ string) error {
	if m.shouldFail {
		return errors.New("service error")
	}
	return m.err
}

func (m *MockAccountService) TransferFunds(_ context.Context, _, _, _ string, _ domain.Money) error {
	if m.shouldFail {
		return errors.New("service error")
	}
	return m.err
}

// MockLendingService mirrors MockAccountService for lending endpoints.
type MockLendingService struct {
	lendings    []domain.Lending
	outstanding domain.Money
	err         error
	shouldFail  bool
}

func (m *MockLendingService) CreateLending(_ context.Context, userID string, date time.Time, amount domain.Money, fromAccountID, note string) (*domain.Lending, error) {
	if m.shouldFail {
		return nil, errors.New("service error")
	}
	if m.err != nil {
		return nil, m.err
	}
	return &domain.Lending{
		ID:            "new-lending",
		UserID:        userID,
		Date:          date,
		Amount:        amount,
		FromAccountID: fromAccountID,
		Note:          note,
		Status:        domain.LendingStatusNotSettled,
	}, nil
}

func (m *MockLendingService) SettleLending(_ context.Context, userID, lendingID string, amount domain.Money) (*domain.Lending, error) {
	if m.shouldFail {
		return nil, errors.New("service error")
	}
	if m.err != nil {
		return nil, m.err
	}
	return &domain.Lending{ID: lendingID, UserID: userID, SettledAmount: amount, Status: domain.LendingStatusNotSettled}, nil
}

func (m *MockLendingService) GetUserLendings(_ context.Context, _ string, _, _ time.Time) ([]domain.Lending, error) {
	if m.shouldFail {
		return nil, errors.New("service error")
	}
	return m.lendings, nil
}

func (m *MockLendingService) GetOutstandingTotal(_ context.Context, _ string) (domain.Money, error) {
	if m.shouldFail {
		return 0, errors.New("service error")
	}
	return m.outstanding, nil
}
