package ledger

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bscf-core/virtual-accounts/internal/account"
)

// MemoryStore is a concurrency-safe in-memory store useful for unit tests and
// local development. It implements both the ledger Store and the account
// Store so the two views share state the way the Postgres pair shares the
// database.
type MemoryStore struct {
	mu       sync.Mutex
	accounts map[uuid.UUID]account.Account
	entries  []Entry
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{accounts: make(map[uuid.UUID]account.Account)}
}

// Create inserts an account record.
func (s *MemoryStore) Create(_ context.Context, acc account.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.accounts[acc.ID]; exists {
		return errors.New("account exists")
	}
	now := time.Now().UTC()
	if acc.CreatedAt.IsZero() {
		acc.CreatedAt = now
	}
	if acc.UpdatedAt.IsZero() {
		acc.UpdatedAt = now
	}
	s.accounts[acc.ID] = acc
	return nil
}

// Get fetches an account by identifier.
func (s *MemoryStore) Get(_ context.Context, id uuid.UUID) (account.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	acc, ok := s.accounts[id]
	if !ok {
		return account.Account{}, account.ErrNotFound
	}
	return acc, nil
}

// GetByNumber fetches an account by its external account number.
func (s *MemoryStore) GetByNumber(_ context.Context, accountNumber string) (account.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, acc := range s.accounts {
		if acc.AccountNumber == accountNumber {
			return acc, nil
		}
	}
	return account.Account{}, account.ErrNotFound
}

// Account resolves an account for the ledger engine.
func (s *MemoryStore) Account(_ context.Context, id uuid.UUID) (account.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	acc, ok := s.accounts[id]
	if !ok {
		return account.Account{}, ErrAccountNotFound
	}
	return acc, nil
}

// Post runs fn as one atomic unit. Writes are staged in the transaction and
// only applied to the store when fn returns nil.
func (s *MemoryStore) Post(_ context.Context, fn func(Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &memoryTx{store: s, balances: make(map[uuid.UUID]decimal.Decimal)}
	if err := fn(tx); err != nil {
		return err
	}

	now := time.Now().UTC()
	for id, balance := range tx.balances {
		acc := s.accounts[id]
		acc.Balance = balance
		acc.UpdatedAt = now
		s.accounts[id] = acc
	}
	s.entries = append(s.entries, tx.entries...)
	return nil
}

// Entries returns a copy of every posted entry in posting order.
func (s *MemoryStore) Entries() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// EntriesForAccount returns the posted entries for one account in posting order.
func (s *MemoryStore) EntriesForAccount(id uuid.UUID) []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Entry
	for _, entry := range s.entries {
		if entry.AccountID == id {
			out = append(out, entry)
		}
	}
	return out
}

type memoryTx struct {
	store    *MemoryStore
	balances map[uuid.UUID]decimal.Decimal
	entries  []Entry
}

func (t *memoryTx) LockAccount(_ context.Context, id uuid.UUID) (account.Account, error) {
	acc, ok := t.store.accounts[id]
	if !ok {
		return account.Account{}, ErrAccountNotFound
	}
	if staged, ok := t.balances[id]; ok {
		acc.Balance = staged
	}
	return acc, nil
}

func (t *memoryTx) InsertEntry(_ context.Context, entry *Entry) error {
	t.entries = append(t.entries, *entry)
	return nil
}

func (t *memoryTx) ApplyDelta(_ context.Context, id uuid.UUID, delta decimal.Decimal) (decimal.Decimal, error) {
	acc, ok := t.store.accounts[id]
	if !ok {
		return decimal.Zero, ErrAccountNotFound
	}
	current := acc.Balance
	if staged, ok := t.balances[id]; ok {
		current = staged
	}
	next := current.Add(delta)
	if next.IsNegative() {
		return decimal.Zero, ErrInsufficientBalance
	}
	t.balances[id] = next
	return next, nil
}
