package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EntryType is the direction of a movement relative to its account.
type EntryType string

const (
	EntryCredit EntryType = "credit"
	EntryDebit  EntryType = "debit"
)

// TransactionType is the business classification of a posting.
type TransactionType string

const (
	TransactionTransfer   TransactionType = "transfer"
	TransactionDeposit    TransactionType = "deposit"
	TransactionWithdrawal TransactionType = "withdrawal"
)

// StatusCompleted is the default entry status when the caller supplies none.
const StatusCompleted = "completed"

// Entry is one append-only record of a single-account balance movement.
// Entries are never updated or deleted; corrections are new offsetting
// entries.
type Entry struct {
	ID              uuid.UUID       `json:"id"`
	AccountID       uuid.UUID       `json:"account_id"`
	Amount          decimal.Decimal `json:"amount"`
	EntryType       EntryType       `json:"entry_type"`
	TransactionType TransactionType `json:"transaction_type"`
	Status          string          `json:"status"`
	Description     string          `json:"description"`
	ReferenceNumber string          `json:"reference_number"`
	RunningBalance  decimal.Decimal `json:"running_balance"`
	PairedEntryID   *uuid.UUID      `json:"paired_entry_id,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

// Request describes one transaction to post. Account references are
// canonical: AccountID for deposits and withdrawals, FromAccountID and
// ToAccountID for transfers. Aliasing identifier fields are normalized at
// the transport boundary before a Request is built.
type Request struct {
	TransactionType string
	Amount          string
	FromAccountID   string
	ToAccountID     string
	AccountID       string
	Status          string
	Description     string
	ReferenceNumber string
}

// Result is the outcome of processing a Request: either an ordered list of
// one or two entries, or a non-empty list of human-readable errors.
type Result struct {
	Entries []Entry  `json:"entries"`
	Errors  []string `json:"errors"`
}

// Succeeded reports whether the transaction was posted.
func (r Result) Succeeded() bool {
	return len(r.Errors) == 0
}

func failure(messages ...string) Result {
	return Result{Errors: messages}
}
