package application

import (
	"context"
	"testing"

	"github.com/rkhatri/LedgerManager/internal/ledger/domain"
	ledgerErrors "github.com/rkhatri/LedgerManager/internal/ledger/errors"
	"github.com/stretchr/testify/assert"
)

func TestCreateCategory_Validation(t *testing.T) {
	_, _, categoryService, _, _ := newLedgerServices(t)
	ctx := context.Background()

	_, err := categoryService.CreateCategory(ctx, testUserID, "", domain.CategoryTypeExpense, "")
	assert.True(t, ledgerErrors.IsValidationError(err))

	_, err = categoryService.CreateCategory(ctx, testUserID, "Food", "transfer", "")
	assert.True(t, ledgerErrors.IsValidationError(err))

	category, err := categoryService.CreateCategory(ctx, testUserID, "Food", domain.CategoryTypeExpense, "")
	assert.NoError(t, err)
	assert.Equal(t, domain.CategoryStatusActive, category.Status)
}

func TestGetUserCategories_Filters(t *testing.T) {
	_, _, categoryService, _, _ := newLedgerServices(t)
	ctx := context.Background()

	_, err := categoryService.CreateCategory(ctx, testUserID, "Food", domain.CategoryTypeExpense, domain.CategoryStatusActive)
	assert.NoError(t, err)
	_, err = categoryService.CreateCategory(ctx, testUserID, "Old Rent", domain.CategoryTypeExpense, domain.CategoryStatusInactive)
	assert.NoError(t, err)
	_, err = categoryService.CreateCategory(ctx, testUserID, "Salary", domain.CategoryTypeIncome, domain.CategoryStatusActive)
	assert.NoError(t, err)

	all, err := categoryService.GetUserCategories(ctx, testUserID, "", false)
	assert.NoError(t, err)
	assert.Len(t, all, 3)

	activeExpenses, err := categoryService.GetUserCategories(ctx, testUserID, domain.CategoryTypeExpense, true)
	assert.NoError(t, err)
	assert.Len(t, activeExpenses, 1)
	assert.Equal(t, "Food", activeExpenses[0].Name)
}

func TestUpdateAndDeleteCategory_Unknown(t *testing.T) {
	_, _, categoryService, _, _ := newLedgerServices(t)
	ctx := context.Background()

	_, err := categoryService.UpdateCategory(ctx, testUserID, "no-such-category", "Food", domain.CategoryTypeExpense, domain.CategoryStatusActive)
	assert.ErrorIs(t, err, ledgerErrors.ErrNotFound)

	assert.ErrorIs(t, categoryService.DeleteCategory(ctx, testUserID, "no-such-category"), ledgerErrors.ErrNotFound)
}

func TestDoesActiveCategoryExist(t *testing.T) {
	_, _, categoryService, _, _ := newLedgerServices(t)
	ctx := context.Background()

	food, _ := categoryService.CreateCategory(ctx, testUserID, "Food", domain.CategoryTypeExpense, domain.CategoryStatusActive)

	exists, err := categoryService.DoesActiveCategoryExist(ctx, testUserID, food.ID, domain.CategoryTypeExpense)
	assert.NoError(t, err)
	assert.True(t, exists)

	exists, err = categoryService.DoesActiveCategoryExist(ctx, testUserID, food.ID, domain.CategoryTypeIncome)
	assert.NoError(t, err)
	assert.False(t, exists)

	exists, err = categoryService.DoesActiveCategoryExist(ctx, testUserID, "no-such-category", domain.CategoryTypeExpense)
	assert.NoError(t, err)
	assert.False(t, exists)
}
