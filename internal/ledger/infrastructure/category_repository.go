package infrastructure

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/rkhatri/LedgerManager/internal/ledger/domain"
	ledgerErrors "github.com/rkhatri/LedgerManager/internal/ledger/errors"
)

type CategoryRepository struct {
	db *sql.DB
}

func NewCategoryRepository(db *sql.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) Save(ctx context.Context, category domain.Category) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO user_income_expense_categories (id, user_id, category_name, category_type, status, updated_at)
         VALUES ($1, $2, $3, $4, $5, $6)`,
		category.ID, category.UserID, category.Name, category.Type, category.Status, category.UpdatedAt,
	)
	return err
}

func (r *CategoryRepository) FindByUser(ctx context.Context, userID, categoryType string, activeOnly bool) ([]domain.Category, error) {
	query := `SELECT id, user_id, category_name, category_type, status, updated_at
              FROM user_income_expense_categories WHERE user_id = $1`
	args := []interface{}{userID}

	if categoryType != "" {
		args = append(args, categoryType)
		query += ` AND category_type = $2`
	}
	if activeOnly {
		query += ` AND status = 'active'`
	}
	query += ` ORDER BY updated_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		var category domain.Category
		if err := rows.Scan(&category.ID, &category.UserID, &category.Name,
			&category.Type, &category.Status, &category.UpdatedAt); err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}

func (r *CategoryRepository) FindByID(ctx context.Context, userID, categoryID string) (*domain.Category, error) {
	var category domain.Category
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, category_name, category_type, status, updated_at
         FROM user_income_expense_categories WHERE id = $1 AND user_id = $2`,
		categoryID, userID).
		Scan(&category.ID, &category.UserID, &category.Name, &category.Type, &category.Status, &category.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ledgerErrors.ErrInvalidCategory
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *CategoryRepository) Update(ctx context.Context, category domain.Category) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE user_income_expense_categories
         SET category_name = $1, category_type = $2, status = $3, updated_at = $4
         WHERE id = $5 AND user_id = $6`,
		category.Name, category.Type, category.Status, time.Now().UTC(), category.ID, category.UserID,
	)
	if err != nil {
		return err
	}
	return requireOneRow(result)
}

func (r *CategoryRepository) Delete(ctx context.Context, userID, categoryID string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM user_income_expense_categories WHERE id = $1 AND user_id = $2`,
		categoryID, userID)
	if err != nil {
		return err
	}
	return requireOneRow(result)
}
