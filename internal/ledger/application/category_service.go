package application

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rkhatri/LedgerManager/internal/ledger/domain"
	ledgerErrors "github.com/rkhatri/LedgerManager/internal/ledger/errors"
)

type CategoryService struct {
	repo domain.CategoryRepository
}

func NewCategoryService(repo domain.CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

func (s *CategoryService) CreateCategory(ctx context.Context, userID, name, categoryType, status string) (*domain.Category, error) {
	if status == "" {
		status = domain.CategoryStatusActive
	}
	category := domain.Category{
		ID:        uuid.NewString(),
		UserID:    userID,
		Name:      name,
		Type:      categoryType,
		Status:    status,
		UpdatedAt: time.Now().UTC(),
	}
	if err := category.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, category); err != nil {
		return nil, err
	}
	return &category, nil
}

func (s *CategoryService) GetUserCategories(ctx context.Context, userID, categoryType string, activeOnly bool) ([]domain.Category, error) {
	categories, err := s.repo.FindByUser(ctx, userID, categoryType, activeOnly)
	if err != nil {
		return nil, err
	}
	if categories == nil {
		return []domain.Category{}, nil
	}
	return categories, nil
}

func (s *CategoryService) UpdateCategory(ctx context.Context, userID, categoryID, name, categoryType, status string) (*domain.Category, error) {
	category := domain.Category{
		ID:     categoryID,
		UserID: userID,
		Name:   name,
		Type:   categoryType,
		Status: status,
	}
	if err := category.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, category); err != nil {
		return nil, err
	}
	return &category, nil
}

func (s *CategoryService) DeleteCategory(ctx context.Context, userID, categoryID string) error {
	return s.repo.Delete(ctx, userID, categoryID)
}

// DoesActiveCategoryExist reports whether the category exists, belongs to
// the user, is active, and matches the entry type it is about to classify.
func (s *CategoryService) DoesActiveCategoryExist(ctx context.Context, userID, categoryID, categoryType string) (bool, error) {
	category, err := s.repo.FindByID(ctx, userID, categoryID)
	if errors.Is(err, ledgerErrors.ErrInvalidCategory) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return category.Status == domain.CategoryStatusActive && category.Type == categoryType, nil
}
