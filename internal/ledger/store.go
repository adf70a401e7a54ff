package ledger

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bscf-core/virtual-accounts/internal/account"
)

var (
	// ErrAccountNotFound occurs when a referenced account does not resolve.
	ErrAccountNotFound = errors.New("account not found")

	// ErrInsufficientBalance occurs when a debit would drive an account
	// balance negative.
	ErrInsufficientBalance = errors.New("insufficient balance")
)

// Store is the persistence contract the engine consumes. Post runs fn as one
// atomic unit: every entry insert and balance delta inside it is committed
// together or not at all.
type Store interface {
	Account(ctx context.Context, id uuid.UUID) (account.Account, error)
	Post(ctx context.Context, fn func(Tx) error) error
}

// Tx exposes the operations available inside an atomic posting unit.
// LockAccount takes an exclusive lock scoped to that account row; callers
// lock multiple accounts in sorted identifier order so concurrent postings
// cannot deadlock.
type Tx interface {
	LockAccount(ctx context.Context, id uuid.UUID) (account.Account, error)
	InsertEntry(ctx context.Context, entry *Entry) error
	ApplyDelta(ctx context.Context, id uuid.UUID, delta decimal.Decimal) (decimal.Decimal, error)
}
