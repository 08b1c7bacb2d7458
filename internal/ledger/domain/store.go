package domain

import "context"

// LedgerTx is the unit of work for money movement. Every method operates on
// rows locked for the duration of the transaction, so a balance read through
// AccountForUpdate cannot be invalidated by a concurrent writer before the
// matching SetAccountBalance commits.
type LedgerTx interface {
	// AccountForUpdate loads an account owned by userID and locks it for the
	// rest of the transaction. Returns ErrInvalidAccount when the account
	// does not exist or belongs to someone else.
	AccountForUpdate(userID, accountID string) (*Account, error)
	SetAccountBalance(accountID string, balance Money) error

	InsertEntry(entry Entry) error
	// EntryForUpdate returns ErrNotFound for unknown or foreign entries.
	EntryForUpdate(userID, entryID string) (*Entry, error)
	DeleteEntry(entryID string) error

	InsertLending(lending Lending) error
	// LendingForUpdate returns ErrNotFound for unknown or foreign lendings.
	LendingForUpdate(userID, lendingID string) (*Lending, error)
	UpdateLendingSettlement(lendingID string, settledAmount Money, status string) error
}

// TxRunner executes fn inside one atomic transaction. When fn returns an
// error the transaction is rolled back and the error is returned unchanged;
// otherwise the transaction commits before WithinTx returns. Callers never
// observe a partially applied operation.
type TxRunner interface {
	WithinTx(ctx context.Context, fn func(tx LedgerTx) error) error
}
