package account

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrNotFound indicates the requested account does not exist.
var ErrNotFound = errors.New("account not found")

// Store persists account records. Balance mutations are not part of this
// interface; they happen exclusively inside the ledger's atomic posting unit.
type Store interface {
	Create(ctx context.Context, acc Account) error
	Get(ctx context.Context, id uuid.UUID) (Account, error)
	GetByNumber(ctx context.Context, accountNumber string) (Account, error)
}
