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

type EntryRepository struct {
	db *sql.DB
}

func NewEntryRepository(db *sql.DB) *EntryRepository {
	return &EntryRepository{db: db}
}

func (r *EntryRepository) FindByUser(ctx context.Context, userID, entryType string, startDate, endDate time.Time) ([]domain.Entry, error) {
	query := `SELECT id, user_id, account_id, category_id, entry_type, amount, entry_date, note, created_at
              FROM user_entries WHERE user_id = $1`
	args := []interface{}{userID}

	if entryType != "" {
		args = append(args, entryType)
		query += fmt.Sprintf(" AND entry_type = $%d", len(args))
	}
	if !startDate.IsZero() {
		args = append(args, startDate)
		query += fmt.Sprintf(" AND entry_date >= $%d", len(args))
	}
	if !endDate.IsZero() {
		args = append(args, endDate)
		query += fmt.Sprintf(" AND entry_date <= $%d", len(args))
	}
	query += ` ORDER BY entry_date DESC, created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *entry)
	}
	return entries, rows.Err()
}

func (r *EntryRepository) FindByID(ctx context.Context, userID, entryID string) (*domain.Entry, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, account_id, category_id, entry_type, amount, entry_date, note, created_at
         FROM user_entries WHERE id = $1 AND user_id = $2`, entryID, userID)
	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ledgerErrors.ErrNotFound
	}
	return entry, err
}

func (r *EntryRepository) SummaryByCategory(ctx context.Context, userID, entryType string, startDate, endDate time.Time, limit int) ([]domain.CategorySummary, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT e.category_id, c.category_name, SUM(e.amount) AS total
         FROM user_entries e
         JOIN user_income_expense_categories c ON c.id = e.category_id
         WHERE e.user_id = $1 AND e.entry_type = $2 AND e.entry_date >= $3 AND e.entry_date <= $4
         GROUP BY e.category_id, c.category_name
         ORDER BY total DESC
         LIMIT $5`,
		userID, entryType, startDate, endDate, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []domain.CategorySummary
	for rows.Next() {
		var summary domain.CategorySummary
		var total int64
		if err := rows.Scan(&summary.CategoryID, &summary.CategoryName, &total); err != nil {
			return nil, err
		}
		summary.Total = domain.Money(total)
		summaries = append(summaries, summary)
	}
	return summaries, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanEntry(row rowScanner) (*domain.Entry, error) {
	var entry domain.Entry
	var amount int64
	var note sql.NullString
	if err := row.Scan(&entry.ID, &entry.UserID, &entry.AccountID, &entry.CategoryID,
		&entry.Type, &amount, &entry.Date, &note, &entry.CreatedAt); err != nil {
		return nil, err
	}
	entry.Amount = domain.Money(amount)
	entry.Note = note.String
	return &entry, nil
}
