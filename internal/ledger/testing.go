package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bscf-core/virtual-accounts/internal/account"
)

// SeedAccount is a test helper that inserts an active account with the given
// balance into the in-memory store and returns it.
func SeedAccount(s *MemoryStore, accountNumber string, balance decimal.Decimal) account.Account {
	now := time.Now().UTC()
	acc := account.Account{
		ID:            uuid.New(),
		UserID:        uuid.New(),
		AccountNumber: accountNumber,
		Balance:       balance,
		Active:        true,
		Status:        account.StatusActive,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	s.mu.Lock()
	s.accounts[acc.ID] = acc
	s.mu.Unlock()
	return acc
}
