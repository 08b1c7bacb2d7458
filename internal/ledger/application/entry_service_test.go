package application

import (
	"context"
	"testing"
	"time"

	"github.com/rkhatri/LedgerManager/internal/ledger/domain"
	ledgerErrors "github.com/rkhatri/LedgerManager/internal/ledger/errors"
	"github.com/stretchr/testify/assert"
)

var entryDate = time.Date(2025, time.March, 14, 0, 0, 0, 0, time.UTC)

func TestPostExpense_DebitsAccountAndDeleteRestores(t *testing.T) {
	ledger, accountService, categoryService, entryService, _ := newLedgerServices(t)
	ctx := context.Background()

	checking, _ := accountService.CreateAccount(ctx, testUserID, "Checking", 50000, domain.AccountStatusPrimary)
	food, _ := categoryService.CreateCategory(ctx, testUserID, "Food", domain.CategoryTypeExpense, domain.CategoryStatusActive)

	entry, err := entryService.PostExpense(ctx, testUserID, checking.ID, food.ID, 5000, entryDate, "groceries")
	assert.NoError(t, err)
	assert.Equal(t, domain.Money(45000), mustBalance(t, ledger, testUserID, checking.ID))

	assert.NoError(t, entryService.DeleteEntry(ctx, testUserID, entry.ID))
	assert.Equal(t, domain.Money(50000), mustBalance(t, ledger, testUserID, checking.ID), "post then delete must restore the prior balance")

	assert.ErrorIs(t, entryService.DeleteEntry(ctx, testUserID, entry.ID), ledgerErrors.ErrNotFound)
}

func TestPostExpense_RejectsOverdraft(t *testing.T) {
	ledger, accountService, categoryService, entryService, _ := newLedgerServices(t)
	ctx := context.Background()

	checking, _ := accountService.CreateAccount(ctx, testUserID, "Checking", 4000, domain.AccountStatusPrimary)
	food, _ := categoryService.CreateCategory(ctx, testUserID, "Food", domain.CategoryTypeExpense, domain.CategoryStatusActive)

	_, err := entryService.PostExpense(ctx, testUserID, checking.ID, food.ID, 4001, entryDate, "")
	assert.ErrorIs(t, err, ledgerErrors.ErrInsufficientFunds)
	assert.Equal(t, domain.Money(4000), mustBalance(t, ledger, testUserID, checking.ID))

	entries, err := entryService.GetUserEntries(ctx, testUserID, "", time.Time{}, time.Time{})
	assert.NoError(t, err)
	assert.Empty(t, entries, "a rejected expense must not leave an entry behind")
}

func TestPostIncome_CreditsAccount(t *testing.T) {
	ledger, accountService, categoryService, entryService, _ := newLedgerServices(t)
	ctx := context.Background()

	checking, _ := accountService.CreateAccount(ctx, testUserID, "Checking", 1000, domain.AccountStatusPrimary)
	salary, _ := categoryService.CreateCategory(ctx, testUserID, "Salary", domain.CategoryTypeIncome, domain.CategoryStatusActive)

	_, err := entryService.PostIncome(ctx, testUserID, checking.ID, salary.ID, 250000, entryDate, "march salary")
	assert.NoError(t, err)
	assert.Equal(t, domain.Money(251000), mustBalance(t, ledger, testUserID, checking.ID))
}

func TestDeleteIncomeEntry_DebitsBack(t *testing.T) {
	ledger, accountService, categoryService, entryService, _ := newLedgerServices(t)
	ctx := context.Background()

	checking, _ := accountService.CreateAccount(ctx, testUserID, "Checking", 0, domain.AccountStatusPrimary)
	salary, _ := categoryService.CreateCategory(ctx, testUserID, "Salary", domain.CategoryTypeIncome, domain.CategoryStatusActive)

	entry, err := entryService.PostIncome(ctx, testUserID, checking.ID, salary.ID, 10000, entryDate, "")
	assert.NoError(t, err)

	assert.NoError(t, entryService.DeleteEntry(ctx, testUserID, entry.ID))
	assert.Equal(t, domain.Money(0), mustBalance(t, ledger, testUserID, checking.ID))
}

func TestDeleteIncomeEntry_FailsWhenIncomeAlreadySpent(t *testing.T) {
	ledger, accountService, categoryService, entryService, _ := newLedgerServices(t)
	ctx := context.Background()

	checking, _ := accountService.CreateAccount(ctx, testUserID, "Checking", 0, domain.AccountStatusPrimary)
	savings, _ := accountService.CreateAccount(ctx, testUserID, "Savings", 0, domain.AccountStatusSecondary)
	salary, _ := categoryService.CreateCategory(ctx, testUserID, "Salary", domain.CategoryTypeIncome, domain.CategoryStatusActive)

	entry, err := entryService.PostIncome(ctx, testUserID, checking.ID, salary.ID, 10000, entryDate, "")
	assert.NoError(t, err)

	// Move the money away so the reversal would overdraw.
	assert.NoError(t, accountService.TransferFunds(ctx, testUserID, checking.ID, savings.ID, 8000))

	err = entryService.DeleteEntry(ctx, testUserID, entry.ID)
	assert.ErrorIs(t, err, ledgerErrors.ErrInsufficientFunds)
	assert.Equal(t, domain.Money(2000), mustBalance(t, ledger, testUserID, checking.ID))

	entries, err := entryService.GetUserEntries(ctx, testUserID, domain.EntryTypeIncome, time.Time{}, time.Time{})
	assert.NoError(t, err)
	assert.Len(t, entries, 1, "the failed delete must keep the entry")
}

func TestPostEntry_InvalidCategory(t *testing.T) {
	_, accountService, categoryService, entryService, _ := newLedgerServices(t)
	ctx := context.Background()

	checking, _ := accountService.CreateAccount(ctx, testUserID, "Checking", 10000, domain.AccountStatusPrimary)
	salary, _ := categoryService.CreateCategory(ctx, testUserID, "Salary", domain.CategoryTypeIncome, domain.CategoryStatusActive)
	dormant, _ := categoryService.CreateCategory(ctx, testUserID, "Old Food", domain.CategoryTypeExpense, domain.CategoryStatusInactive)

	_, err := entryService.PostExpense(ctx, testUserID, checking.ID, "no-such-category", 100, entryDate, "")
	assert.ErrorIs(t, err, ledgerErrors.ErrInvalidCategory)

	// Wrong type: an income category cannot classify an expense.
	_, err = entryService.PostExpense(ctx, testUserID, checking.ID, salary.ID, 100, entryDate, "")
	assert.ErrorIs(t, err, ledgerErrors.ErrInvalidCategory)

	// Inactive categories are excluded from new entries.
	_, err = entryService.PostExpense(ctx, testUserID, checking.ID, dormant.ID, 100, entryDate, "")
	assert.ErrorIs(t, err, ledgerErrors.ErrInvalidCategory)
}

func TestPostEntry_InvalidAccountAndAmount(t *testing.T) {
	_, accountService, categoryService, entryService, _ := newLedgerServices(t)
	ctx := context.Background()

	food, _ := categoryService.CreateCategory(ctx, testUserID, "Food", domain.CategoryTypeExpense, domain.CategoryStatusActive)

	_, err := entryService.PostExpense(ctx, testUserID, "no-such-account", food.ID, 100, entryDate, "")
	assert.ErrorIs(t, err, ledgerErrors.ErrInvalidAccount)

	checking, _ := accountService.CreateAccount(ctx, testUserID, "Checking", 10000, domain.AccountStatusPrimary)
	_, err = entryService.PostExpense(ctx, testUserID, checking.ID, food.ID, 0, entryDate, "")
	assert.True(t, ledgerErrors.IsValidationError(err))
}

func TestGetUserEntries_FiltersByTypeAndDateRange(t *testing.T) {
	_, accountService, categoryService, entryService, _ := newLedgerServices(t)
	ctx := context.Background()

	checking, _ := accountService.CreateAccount(ctx, testUserID, "Checking", 100000, domain.AccountStatusPrimary)
	food, _ := categoryService.CreateCategory(ctx, testUserID, "Food", domain.CategoryTypeExpense, domain.CategoryStatusActive)
	salary, _ := categoryService.CreateCategory(ctx, testUserID, "Salary", domain.CategoryTypeIncome, domain.CategoryStatusActive)

	january := time.Date(2025, time.January, 10, 0, 0, 0, 0, time.UTC)
	february := time.Date(2025, time.February, 10, 0, 0, 0, 0, time.UTC)

	_, err := entryService.PostExpense(ctx, testUserID, checking.ID, food.ID, 1000, january, "")
	assert.NoError(t, err)
	_, err = entryService.PostExpense(ctx, testUserID, checking.ID, food.ID, 2000, february, "")
	assert.NoError(t, err)
	_, err = entryService.PostIncome(ctx, testUserID, checking.ID, salary.ID, 3000, february, "")
	assert.NoError(t, err)

	expenses, err := entryService.GetUserEntries(ctx, testUserID, domain.EntryTypeExpense, time.Time{}, time.Time{})
	assert.NoError(t, err)
	assert.Len(t, expenses, 2)

	februaryOnly, err := entryService.GetUserEntries(ctx, testUserID, "",
		time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, time.February, 28, 0, 0, 0, 0, time.UTC))
	assert.NoError(t, err)
	assert.Len(t, februaryOnly, 2)

	_, err = entryService.GetUserEntries(ctx, testUserID, "transfer", time.Time{}, time.Time{})
	assert.True(t, ledgerErrors.IsValidationError(err))
}
