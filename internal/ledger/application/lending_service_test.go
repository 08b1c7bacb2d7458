package application

import (
	"context"
	"testing"
	"time"

	"github.com/rkhatri/LedgerManager/internal/ledger/domain"
	ledgerErrors "github.com/rkhatri/LedgerManager/internal/ledger/errors"
	"github.com/stretchr/testify/assert"
)

var lendingDate = time.Date(2025, time.April, 2, 0, 0, 0, 0, time.UTC)

func TestCreateLending_DebitsSourceAccount(t *testing.T) {
	ledger, accountService, _, _, lendingService := newLedgerServices(t)
	ctx := context.Background()

	checking, _ := accountService.CreateAccount(ctx, testUserID, "Checking", 50000, domain.AccountStatusPrimary)

	lending, err := lendingService.CreateLending(ctx, testUserID, lendingDate, 20000, checking.ID, "loan to Sam")
	assert.NoError(t, err)
	assert.Equal(t, domain.Money(30000), mustBalance(t, ledger, testUserID, checking.ID))
	assert.Equal(t, domain.Money(20000), lending.Amount)
	assert.Equal(t, domain.Money(0), lending.SettledAmount)
	assert.Equal(t, domain.LendingStatusNotSettled, lending.Status)
}

func TestCreateLending_InsufficientFunds(t *testing.T) {
	ledger, accountService, _, _, lendingService := newLedgerServices(t)
	ctx := context.Background()

	checking, _ := accountService.CreateAccount(ctx, testUserID, "Checking", 10000, domain.AccountStatusPrimary)

	_, err := lendingService.CreateLending(ctx, testUserID, lendingDate, 10001, checking.ID, "")
	assert.ErrorIs(t, err, ledgerErrors.ErrInsufficientFunds)
	assert.Equal(t, domain.Money(10000), mustBalance(t, ledger, testUserID, checking.ID))

	lendings, err := lendingService.GetUserLendings(ctx, testUserID, time.Time{}, time.Time{})
	assert.NoError(t, err)
	assert.Empty(t, lendings, "a failed lending must not be recorded")
}

func TestCreateLending_InvalidAccountAndAmount(t *testing.T) {
	_, _, _, _, lendingService := newLedgerServices(t)
	ctx := context.Background()

	_, err := lendingService.CreateLending(ctx, testUserID, lendingDate, 100, "no-such-account", "")
	assert.ErrorIs(t, err, ledgerErrors.ErrInvalidAccount)

	_, err = lendingService.CreateLending(ctx, testUserID, lendingDate, 0, "irrelevant", "")
	assert.True(t, ledgerErrors.IsValidationError(err))
}

func TestSettleLending_PartialThenFull(t *testing.T) {
	ledger, accountService, _, _, lendingService := newLedgerServices(t)
	ctx := context.Background()

	checking, _ := accountService.CreateAccount(ctx, testUserID, "Checking", 10000, domain.AccountStatusPrimary)
	lending, _ := lendingService.CreateLending(ctx, testUserID, lendingDate, 10000, checking.ID, "")
	assert.Equal(t, domain.Money(0), mustBalance(t, ledger, testUserID, checking.ID))

	partial, err := lendingService.SettleLending(ctx, testUserID, lending.ID, 4000)
	assert.NoError(t, err)
	assert.Equal(t, domain.Money(4000), partial.SettledAmount)
	assert.Equal(t, domain.LendingStatusNotSettled, partial.Status)
	assert.Equal(t, domain.Money(4000), mustBalance(t, ledger, testUserID, checking.ID), "settlement credits the original source account")

	full, err := lendingService.SettleLending(ctx, testUserID, lending.ID, 6000)
	assert.NoError(t, err)
	assert.Equal(t, domain.Money(10000), full.SettledAmount)
	assert.Equal(t, domain.LendingStatusSettled, full.Status)
	assert.Equal(t, domain.Money(10000), mustBalance(t, ledger, testUserID, checking.ID))

	_, err = lendingService.SettleLending(ctx, testUserID, lending.ID, 1)
	assert.ErrorIs(t, err, ledgerErrors.ErrAlreadySettled)
}

func TestSettleLending_OverSettlementLeavesStateUnchanged(t *testing.T) {
	ledger, accountService, _, _, lendingService := newLedgerServices(t)
	ctx := context.Background()

	checking, _ := accountService.CreateAccount(ctx, testUserID, "Checking", 10000, domain.AccountStatusPrimary)
	lending, _ := lendingService.CreateLending(ctx, testUserID, lendingDate, 10000, checking.ID, "")

	_, err := lendingService.SettleLending(ctx, testUserID, lending.ID, 10001)
	assert.ErrorIs(t, err, ledgerErrors.ErrOverSettlement)

	lendings, err := lendingService.GetUserLendings(ctx, testUserID, time.Time{}, time.Time{})
	assert.NoError(t, err)
	assert.Equal(t, domain.Money(0), lendings[0].SettledAmount)
	assert.Equal(t, domain.Money(0), mustBalance(t, ledger, testUserID, checking.ID))

	_, err = lendingService.SettleLending(ctx, testUserID, lending.ID, 6000)
	assert.NoError(t, err)
	_, err = lendingService.SettleLending(ctx, testUserID, lending.ID, 4001)
	assert.ErrorIs(t, err, ledgerErrors.ErrOverSettlement, "remaining balance shrinks as settlements land")
}

func TestSettleLending_Validation(t *testing.T) {
	_, accountService, _, _, lendingService := newLedgerServices(t)
	ctx := context.Background()

	checking, _ := accountService.CreateAccount(ctx, testUserID, "Checking", 10000, domain.AccountStatusPrimary)
	lending, _ := lendingService.CreateLending(ctx, testUserID, lendingDate, 10000, checking.ID, "")

	_, err := lendingService.SettleLending(ctx, testUserID, lending.ID, 0)
	assert.True(t, ledgerErrors.IsValidationError(err))

	_, err = lendingService.SettleLending(ctx, testUserID, lending.ID, -5)
	assert.True(t, ledgerErrors.IsValidationError(err))

	_, err = lendingService.SettleLending(ctx, testUserID, "no-such-lending", 100)
	assert.ErrorIs(t, err, ledgerErrors.ErrNotFound)

	_, err = lendingService.SettleLending(ctx, "another-user", lending.ID, 100)
	assert.ErrorIs(t, err, ledgerErrors.ErrNotFound, "lendings of other users must be invisible")
}

func TestGetOutstandingTotal(t *testing.T) {
	_, accountService, _, _, lendingService := newLedgerServices(t)
	ctx := context.Background()

	checking, _ := accountService.CreateAccount(ctx, testUserID, "Checking", 100000, domain.AccountStatusPrimary)
	first, _ := lendingService.CreateLending(ctx, testUserID, lendingDate, 30000, checking.ID, "")
	_, err := lendingService.CreateLending(ctx, testUserID, lendingDate, 20000, checking.ID, "")
	assert.NoError(t, err)

	_, err = lendingService.SettleLending(ctx, testUserID, first.ID, 10000)
	assert.NoError(t, err)

	total, err := lendingService.GetOutstandingTotal(ctx, testUserID)
	assert.NoError(t, err)
	assert.Equal(t, domain.Money(40000), total)
}
