package infrastructure

import (
	"context"
	"database/sql"
	"errors"

	"github.com/rkhatri/LedgerManager/internal/ledger/domain"
	ledgerErrors "github.com/rkhatri/LedgerManager/internal/ledger/errors"
)

type AccountRepository struct {
	db *sql.DB
}

func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) Save(ctx context.Context, account domain.Account) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO user_accounts (id, user_id, account_name, total_money, status)
         VALUES ($1, $2, $3, $4, $5)`,
		account.ID, account.UserID, account.Name, int64(account.Balance), account.Status,
	)
	return err
}

func (r *AccountRepository) FindByUser(ctx context.Context, userID string) ([]domain.Account, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, account_name, total_money, status
         FROM user_accounts WHERE user_id = $1
         ORDER BY status ASC, account_name ASC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		var account domain.Account
		var balance int64
		if err := rows.Scan(&account.ID, &account.UserID, &account.Name, &balance, &account.Status); err != nil {
			return nil, err
		}
		account.Balance = domain.Money(balance)
		accounts = append(accounts, account)
	}
	return accounts, rows.Err()
}

func (r *AccountRepository) FindByID(ctx context.Context, userID, accountID string) (*domain.Account, error) {
	var account domain.Account
	var balance int64
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, account_name, total_money, status
         FROM user_accounts WHERE id = $1 AND user_id = $2`, accountID, userID).
		Scan(&account.ID, &account.UserID, &account.Name, &balance, &account.Status)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ledgerErrors.ErrInvalidAccount
	}
	if err != nil {
		return nil, err
	}
	account.Balance = domain.Money(balance)
	return &account, nil
}

func (r *AccountRepository) Update(ctx context.Context, account domain.Account) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE user_accounts SET account_name = $1, total_money = $2, status = $3
         WHERE id = $4 AND user_id = $5`,
		account.Name, int64(account.Balance), account.Status, account.ID, account.UserID,
	)
	if err != nil {
		return err
	}
	return requireOneRow(result)
}

func (r *AccountRepository) Delete(ctx context.Context, userID, accountID string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM user_accounts WHERE id = $1 AND user_id = $2`, accountID, userID)
	if err != nil {
		return err
	}
	return requireOneRow(result)
}

// requireOneRow maps "no row touched" to ErrNotFound so ownership checks in
// the WHERE clause surface as a typed error instead of a silent no-op.
func requireOneRow(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ledgerErrors.ErrNotFound
	}
	return nil
}
