package infrastructure

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rkhatri/LedgerManager/internal/ledger/domain"
	ledgerErrors "github.com/rkhatri/LedgerManager/internal/ledger/errors"
)

type LendingRepository struct {
	db *sql.DB
}

func NewLendingRepository(db *sql.DB) *LendingRepository {
	return &LendingRepository{db: db}
}

func (r *LendingRepository) FindByUser(ctx context.Context, userID string, startDate, endDate time.Time) ([]domain.Lending, error) {
	query := `SELECT id, user_id, date, amount, from_account_id, note, settled_amount, status, created_at
              FROM lendings WHERE user_id = $1`
	args := []interface{}{userID}

	if !startDate.IsZero() {
		args = append(args, startDate)
		query += fmt.Sprintf(" AND date >= $%d", len(args))
	}
	if !endDate.IsZero() {
		args = append(args, endDate)
		query += fmt.Sprintf(" AND date <= $%d", len(args))
	}
	query += ` ORDER BY date DESC, created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lendings []domain.Lending
	for rows.Next() {
		lending, err := scanLending(rows)
		if err != nil {
			return nil, err
		}
		lendings = append(lendings, *lending)
	}
	return lendings, rows.Err()
}

func (r *LendingRepository) FindByID(ctx context.Context, userID, lendingID string) (*domain.Lending, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, date, amount, from_account_id, note, settled_amount, status, created_at
         FROM lendings WHERE id = $1 AND user_id = $2`, lendingID, userID)
	lending, err := scanLending(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ledgerErrors.ErrNotFound
	}
	return lending, err
}

func (r *LendingRepository) OutstandingTotal(ctx context.Context, userID string) (domain.Money, error) {
	var total int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(amount - settled_amount), 0) FROM lendings WHERE user_id = $1`,
		userID).Scan(&total)
	return domain.Money(total), err
}

func scanLending(row rowScanner) (*domain.Lending, error) {
	var lending domain.Lending
	var amount, settled int64
	var note sql.NullString
	if err := row.Scan(&lending.ID, &lending.UserID, &lending.Date, &amount,
		&lending.FromAccountID, &note, &settled, &lending.Status, &lending.CreatedAt); err != nil {
		return nil, err
	}
	lending.Amount = domain.Money(amount)
	lending.SettledAmount = domain.Money(settled)
	lending.Note = note.String
	return &lending, nil
}
