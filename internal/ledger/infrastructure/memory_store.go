package infrastructure

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/rkhatri/LedgerManager/internal/ledger/domain"
	ledgerErrors "github.com/rkhatri/LedgerManager/internal/ledger/errors"
)

// MemoryLedger keeps the whole ledger in maps. It implements the same
// repository and TxRunner interfaces as the Postgres store, which makes it
// the backing store for service tests. A single mutex serializes
// transactions; WithinTx works on a copy of the state and swaps it in on
// success, so a failed unit of work leaves nothing behind.
type MemoryLedger struct {
	mu         sync.Mutex
	accounts   map[string]domain.Account
	categories map[string]domain.Category
	entries    map[string]domain.Entry
	lendings   map[string]domain.Lending
}

func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{
		accounts:   make(map[string]domain.Account),
		categories: make(map[string]domain.Category),
		entries:    make(map[string]domain.Entry),
		lendings:   make(map[string]domain.Lending),
	}
}

// --- TxRunner ---

func (m *MemoryLedger) WithinTx(_ context.Context, fn func(tx domain.LedgerTx) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	tx := &memoryTx{
		accounts: cloneMap(m.accounts),
		entries:  cloneMap(m.entries),
		lendings: cloneMap(m.lendings),
	}
	if err := fn(tx); err != nil {
		return err
	}
	m.accounts = tx.accounts
	m.entries = tx.entries
	m.lendings = tx.lendings
	return nil
}

func cloneMap[V any](src map[string]V) map[string]V {
	dst := make(map[string]V, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

type memoryTx struct {
	accounts map[string]domain.Account
	entries  map[string]domain.Entry
	lendings map[string]domain.Lending
}

func (t *memoryTx) AccountForUpdate(userID, accountID string) (*domain.Account, error) {
	account, ok := t.accounts[accountID]
	if !ok || account.UserID != userID {
		return nil, ledgerErrors.ErrInvalidAccount
	}
	return &account, nil
}

func (t *memoryTx) SetAccountBalance(accountID string, balance domain.Money) error {
	account := t.accounts[accountID]
	account.Balance = balance
	t.accounts[accountID] = account
	return nil
}

func (t *memoryTx) InsertEntry(entry domain.Entry) error {
	t.entries[entry.ID] = entry
	return nil
}

func (t *memoryTx) EntryForUpdate(userID, entryID string) (*domain.Entry, error) {
	entry, ok := t.entries[entryID]
	if !ok || entry.UserID != userID {
		return nil, ledgerErrors.ErrNotFound
	}
	return &entry, nil
}

func (t *memoryTx) DeleteEntry(entryID string) error {
	delete(t.entries, entryID)
	return nil
}

func (t *memoryTx) InsertLending(lending domain.Lending) error {
	t.lendings[lending.ID] = lending
	return nil
}

func (t *memoryTx) LendingForUpdate(userID, lendingID string) (*domain.Lending, error) {
	lending, ok := t.lendings[lendingID]
	if !ok || lending.UserID != userID {
		return nil, ledgerErrors.ErrNotFound
	}
	return &lending, nil
}

func (t *memoryTx) UpdateLendingSettlement(lendingID string, settledAmount domain.Money, status string) error {
	lending := t.lendings[lendingID]
	lending.SettledAmount = settledAmount
	lending.Status = status
	t.lendings[lendingID] = lending
	return nil
}

// --- AccountRepository ---

func (m *MemoryLedger) Save(_ context.Context, account domain.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[account.ID] = account
	return nil
}

func (m *MemoryLedger) FindByUser(_ context.Context, userID string) ([]domain.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var accounts []domain.Account
	for _, account := range m.accounts {
		if account.UserID == userID {
			accounts = append(accounts, account)
		}
	}
	sort.Slice(accounts, func(i, j int) bool {
		if accounts[i].Status != accounts[j].Status {
			return accounts[i].Status < accounts[j].Status
		}
		return accounts[i].Name < accounts[j].Name
	})
	return accounts, nil
}

func (m *MemoryLedger) FindByID(_ context.Context, userID, accountID string) (*domain.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	account, ok := m.accounts[accountID]
	if !ok || account.UserID != userID {
		return nil, ledgerErrors.ErrInvalidAccount
	}
	return &account, nil
}

func (m *MemoryLedger) Update(_ context.Context, account domain.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.accounts[account.ID]
	if !ok || existing.UserID != account.UserID {
		return ledgerErrors.ErrNotFound
	}
	m.accounts[account.ID] = account
	return nil
}

func (m *MemoryLedger) Delete(_ context.Context, userID, accountID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	account, ok := m.accounts[accountID]
	if !ok || account.UserID != userID {
		return ledgerErrors.ErrNotFound
	}
	delete(m.accounts, accountID)
	return nil
}

// --- CategoryRepository ---
// Category method names carry the Category prefix because MemoryLedger
// backs every repository at once; the service layer consumes it through
// the narrow CategoryStore adapter below.

type memoryCategoryStore struct {
	ledger *MemoryLedger
}

// Categories exposes the MemoryLedger as a domain.CategoryRepository.
func (m *MemoryLedger) Categories() domain.CategoryRepository {
	return &memoryCategoryStore{ledger: m}
}

func (s *memoryCategoryStore) Save(_ context.Context, category domain.Category) error {
	s.ledger.mu.Lock()
	defer s.ledger.mu.Unlock()
	s.ledger.categories[category.ID] = category
	return nil
}

func (s *memoryCategoryStore) FindByUser(_ context.Context, userID, categoryType string, activeOnly bool) ([]domain.Category, error) {
	s.ledger.mu.Lock()
	defer s.ledger.mu.Unlock()

	var categories []domain.Category
	for _, category := range s.ledger.categories {
		if category.UserID != userID {
			continue
		}
		if categoryType != "" && category.Type != categoryType {
			continue
		}
		if activeOnly && category.Status != domain.CategoryStatusActive {
			continue
		}
		categories = append(categories, category)
	}
	sort.Slice(categories, func(i, j int) bool {
		return categories[i].UpdatedAt.After(categories[j].UpdatedAt)
	})
	return categories, nil
}

func (s *memoryCategoryStore) FindByID(_ context.Context, userID, categoryID string) (*domain.Category, error) {
	s.ledger.mu.Lock()
	defer s.ledger.mu.Unlock()

	category, ok := s.ledger.categories[categoryID]
	if !ok || category.UserID != userID {
		return nil, ledgerErrors.ErrInvalidCategory
	}
	return &category, nil
}

func (s *memoryCategoryStore) Update(_ context.Context, category domain.Category) error {
	s.ledger.mu.Lock()
	defer s.ledger.mu.Unlock()

	existing, ok := s.ledger.categories[category.ID]
	if !ok || existing.UserID != category.UserID {
		return ledgerErrors.ErrNotFound
	}
	category.UpdatedAt = time.Now().UTC()
	s.ledger.categories[category.ID] = category
	return nil
}

func (s *memoryCategoryStore) Delete(_ context.Context, userID, categoryID string) error {
	s.ledger.mu.Lock()
	defer s.ledger.mu.Unlock()

	category, ok := s.ledger.categories[categoryID]
	if !ok || category.UserID != userID {
		return ledgerErrors.ErrNotFound
	}
	delete(s.ledger.categories, categoryID)
	return nil
}

// --- EntryRepository ---

type memoryEntryStore struct {
	ledger *MemoryLedger
}

// Entries exposes the MemoryLedger as a domain.EntryRepository.
func (m *MemoryLedger) Entries() domain.EntryRepository {
	return &memoryEntryStore{ledger: m}
}

func (s *memoryEntryStore) FindByUser(_ context.Context, userID, entryType string, startDate, endDate time.Time) ([]domain.Entry, error) {
	s.ledger.mu.Lock()
	defer s.ledger.mu.Unlock()

	var entries []domain.Entry
	for _, entry := range s.ledger.entries {
		if entry.UserID != userID {
			continue
		}
		if entryType != "" && entry.Type != entryType {
			continue
		}
		if !inDateRange(entry.Date, startDate, endDate) {
			continue
		}
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Date.After(entries[j].Date)
	})
	return entries, nil
}

func (s *memoryEntryStore) FindByID(_ context.Context, userID, entryID string) (*domain.Entry, error) {
	s.ledger.mu.Lock()
	defer s.ledger.mu.Unlock()

	entry, ok := s.ledger.entries[entryID]
	if !ok || entry.UserID != userID {
		return nil, ledgerErrors.ErrNotFound
	}
	return &entry, nil
}

func (s *memoryEntryStore) SummaryByCategory(_ context.Context, userID, entryType string, startDate, endDate time.Time, limit int) ([]domain.CategorySummary, error) {
	s.ledger.mu.Lock()
	defer s.ledger.mu.Unlock()

	totals := make(map[string]domain.Money)
	for _, entry := range s.ledger.entries {
		if entry.UserID != userID || entry.Type != entryType {
			continue
		}
		if !inDateRange(entry.Date, startDate, endDate) {
			continue
		}
		totals[entry.CategoryID] += entry.Amount
	}

	var summaries []domain.CategorySummary
	for categoryID, total := range totals {
		name := ""
		if category, ok := s.ledger.categories[categoryID]; ok {
			name = category.Name
		}
		summaries = append(summaries, domain.CategorySummary{
			CategoryID:   categoryID,
			CategoryName: name,
			Total:        total,
		})
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].Total > summaries[j].Total
	})
	if limit > 0 && len(summaries) > limit {
		summaries = summaries[:limit]
	}
	return summaries, nil
}

// --- LendingRepository ---

type memoryLendingStore struct {
	ledger *MemoryLedger
}

// Lendings exposes the MemoryLedger as a domain.LendingRepository.
func (m *MemoryLedger) Lendings() domain.LendingRepository {
	return &memoryLendingStore{ledger: m}
}

func (s *memoryLendingStore) FindByUser(_ context.Context, userID string, startDate, endDate time.Time) ([]domain.Lending, error) {
	s.ledger.mu.Lock()
	defer s.ledger.mu.Unlock()

	var lendings []domain.Lending
	for _, lending := range s.ledger.lendings {
		if lending.UserID != userID {
			continue
		}
		if !inDateRange(lending.Date, startDate, endDate) {
			continue
		}
		lendings = append(lendings, lending)
	}
	sort.Slice(lendings, func(i, j int) bool {
		return lendings[i].Date.After(lendings[j].Date)
	})
	return lendings, nil
}

func (s *memoryLendingStore) FindByID(_ context.Context, userID, lendingID string) (*domain.Lending, error) {
	s.ledger.mu.Lock()
	defer s.ledger.mu.Unlock()

	lending, ok := s.ledger.lendings[lendingID]
	if !ok || lending.UserID != userID {
		return nil, ledgerErrors.ErrNotFound
	}
	return &lending, nil
}

func (s *memoryLendingStore) OutstandingTotal(_ context.Context, userID string) (domain.Money, error) {
	s.ledger.mu.Lock()
	defer s.ledger.mu.Unlock()

	var total domain.Money
	for _, lending := range s.ledger.lendings {
		if lending.UserID == userID {
			total += lending.Remaining()
		}
	}
	return total, nil
}

func inDateRange(date, startDate, endDate time.Time) bool {
	if !startDate.IsZero() && date.Before(startDate) {
		return false
	}
	if !endDate.IsZero() && date.After(endDate) {
		return false
	}
	return true
}
