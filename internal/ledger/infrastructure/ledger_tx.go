package infrastructure

import (
	"context"
	"database/sql"
	"errors"
	"log"

	"github.com/rkhatri/LedgerManager/internal/ledger/domain"
	ledgerErrors "github.com/rkhatri/LedgerManager/internal/ledger/errors"
)

// SQLTxRunner runs ledger units of work on a database/sql connection. Every
// account or lending row touched inside the transaction is taken with
// SELECT ... FOR UPDATE, so concurrent operations on the same rows serialize
// and read-then-write balance updates cannot interleave.
type SQLTxRunner struct {
	db *sql.DB
}

func NewSQLTxRunner(db *sql.DB) *SQLTxRunner {
	return &SQLTxRunner{db: db}
}

func (r *SQLTxRunner) WithinTx(ctx context.Context, fn func(tx domain.LedgerTx) error) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if p := recover(); p != nil {
			safeRollback(tx)
			panic(p)
		} else if err != nil {
			safeRollback(tx)
		} else {
			err = tx.Commit()
		}
	}()

	err = fn(&sqlLedgerTx{ctx: ctx, tx: tx})
	return err
}

func safeRollback(tx *sql.Tx) {
	if err := tx.Rollback(); err != nil {
		log.Printf("Error during transaction rollback: %v", err)
	}
}

type sqlLedgerTx struct {
	ctx context.Context
	tx  *sql.Tx
}

func (t *sqlLedgerTx) AccountForUpdate(userID, accountID string) (*domain.Account, error) {
	var account domain.Account
	var balance int64
	err := t.tx.QueryRowContext(t.ctx,
		`SELECT id, user_id, account_name, total_money, status
         FROM user_accounts WHERE id = $1 AND user_id = $2
         FOR UPDATE`, accountID, userID).
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

func (t *sqlLedgerTx) SetAccountBalance(accountID string, balance domain.Money) error {
	_, err := t.tx.ExecContext(t.ctx,
		`UPDATE user_accounts SET total_money = $1 WHERE id = $2`,
		int64(balance), accountID)
	return err
}

func (t *sqlLedgerTx) InsertEntry(entry domain.Entry) error {
	var note interface{}
	if entry.Note != "" {
		note = entry.Note
	}
	_, err := t.tx.ExecContext(t.ctx,
		`INSERT INTO user_entries (id, user_id, account_id, category_id, entry_type, amount, entry_date, note, created_at)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		entry.ID, entry.UserID, entry.AccountID, entry.CategoryID, entry.Type,
		int64(entry.Amount), entry.Date, note, entry.CreatedAt)
	return err
}

func (t *sqlLedgerTx) EntryForUpdate(userID, entryID string) (*domain.Entry, error) {
	row := t.tx.QueryRowContext(t.ctx,
		`SELECT id, user_id, account_id, category_id, entry_type, amount, entry_date, note, created_at
         FROM user_entries WHERE id = $1 AND user_id = $2
         FOR UPDATE`, entryID, userID)
	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ledgerErrors.ErrNotFound
	}
	return entry, err
}

func (t *sqlLedgerTx) DeleteEntry(entryID string) error {
	_, err := t.tx.ExecContext(t.ctx, `DELETE FROM user_entries WHERE id = $1`, entryID)
	return err
}

func (t *sqlLedgerTx) InsertLending(lending domain.Lending) error {
	var note interface{}
	if lending.Note != "" {
		note = lending.Note
	}
	_, err := t.tx.ExecContext(t.ctx,
		`INSERT INTO lendings (id, user_id, date, amount, from_account_id, note, settled_amount, status, created_at)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		lending.ID, lending.UserID, lending.Date, int64(lending.Amount),
		lending.FromAccountID, note, int64(lending.SettledAmount), lending.Status, lending.CreatedAt)
	return err
}

func (t *sqlLedgerTx) LendingForUpdate(userID, lendingID string) (*domain.Lending, error) {
	row := t.tx.QueryRowContext(t.ctx,
		`SELECT id, user_id, date, amount, from_account_id, note, settled_amount, status, created_at
         FROM lendings WHERE id = $1 AND user_id = $2
         FOR UPDATE`, lendingID, userID)
	lending, err := scanLending(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ledgerErrors.ErrNotFound
	}
	return lending, err
}

func (t *sqlLedgerTx) UpdateLendingSettlement(lendingID string, settledAmount domain.Money, status string) error {
	_, err := t.tx.ExecContext(t.ctx,
		`UPDATE lendings SET settled_amount = $1, status = $2 WHERE id = $3`,
		int64(settledAmount), status, lendingID)
	return err
}
