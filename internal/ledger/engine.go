package ledger

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bscf-core/virtual-accounts/internal/account"
)

// Engine converts transaction requests into immutable ledger entries plus
// balance updates. A transfer posts two cross-referenced entries, a deposit
// or withdrawal posts one; all writes for a single request commit as one
// atomic unit. The engine keeps no state between invocations.
type Engine struct {
	store Store
}

// NewEngine builds a ledger engine on top of the given store.
func NewEngine(store Store) *Engine {
	return &Engine{store: store}
}

// Process validates the request and, when valid, posts the resulting entries.
// Every failure mode surfaces inside the Result; Process never panics and
// performs no writes unless the whole unit succeeds.
func (e *Engine) Process(ctx context.Context, req Request) Result {
	txType := TransactionType(req.TransactionType)
	switch txType {
	case TransactionTransfer, TransactionDeposit, TransactionWithdrawal:
	default:
		return failure("Invalid transaction type")
	}

	if req.Amount == "" {
		return failure("Amount is required")
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil || !amount.IsPositive() {
		return failure("Amount must be positive")
	}

	switch txType {
	case TransactionTransfer:
		return e.processTransfer(ctx, req, amount)
	case TransactionDeposit:
		return e.processDeposit(ctx, req, amount)
	default:
		return e.processWithdrawal(ctx, req, amount)
	}
}

func (e *Engine) processTransfer(ctx context.Context, req Request, amount decimal.Decimal) Result {
	from, err := e.resolveAccount(ctx, req.FromAccountID)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return failure("From account not found")
		}
		return failureFromErr(err)
	}
	to, err := e.resolveAccount(ctx, req.ToAccountID)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return failure("To account not found")
		}
		return failureFromErr(err)
	}
	if from.Balance.LessThan(amount) {
		return failure("Insufficient balance")
	}

	baseReference := req.ReferenceNumber
	if baseReference == "" {
		baseReference = newReferenceNumber()
	}
	status := defaultString(req.Status, StatusCompleted)

	var entries []Entry
	err = e.store.Post(ctx, func(tx Tx) error {
		lockedFrom, lockedTo, err := lockPair(ctx, tx, from.ID, to.ID)
		if err != nil {
			return err
		}
		// Re-check under lock: two concurrent debits must not both pass
		// against a stale balance.
		if lockedFrom.Balance.LessThan(amount) {
			return ErrInsufficientBalance
		}

		debit := newEntry(lockedFrom, amount, EntryDebit, TransactionTransfer, status,
			defaultString(req.Description, "Transfer to "+to.AccountNumber),
			baseReference+"-DR")
		credit := newEntry(lockedTo, amount, EntryCredit, TransactionTransfer, status,
			defaultString(req.Description, "Transfer from "+from.AccountNumber),
			baseReference+"-CR")

		// Pairing is a second pass over the staged entries; both must exist
		// before either cross-reference is finalized.
		debit.PairedEntryID = &credit.ID
		credit.PairedEntryID = &debit.ID

		if err := tx.InsertEntry(ctx, &debit); err != nil {
			return err
		}
		if err := tx.InsertEntry(ctx, &credit); err != nil {
			return err
		}
		if _, err := tx.ApplyDelta(ctx, lockedFrom.ID, amount.Neg()); err != nil {
			return err
		}
		if _, err := tx.ApplyDelta(ctx, lockedTo.ID, amount); err != nil {
			return err
		}

		entries = []Entry{debit, credit}
		return nil
	})
	if err != nil {
		return failureFromErr(err)
	}

	return Result{Entries: entries}
}

func (e *Engine) processDeposit(ctx context.Context, req Request, amount decimal.Decimal) Result {
	acc, err := e.resolveAccount(ctx, req.AccountID)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return failure("Account not found")
		}
		return failureFromErr(err)
	}

	reference := defaultString(req.ReferenceNumber, newReferenceNumber())
	status := defaultString(req.Status, StatusCompleted)

	var entries []Entry
	err = e.store.Post(ctx, func(tx Tx) error {
		locked, err := tx.LockAccount(ctx, acc.ID)
		if err != nil {
			return err
		}

		entry := newEntry(locked, amount, EntryCredit, TransactionDeposit, status,
			defaultString(req.Description, "Deposit"), reference)
		if err := tx.InsertEntry(ctx, &entry); err != nil {
			return err
		}
		if _, err := tx.ApplyDelta(ctx, locked.ID, amount); err != nil {
			return err
		}

		entries = []Entry{entry}
		return nil
	})
	if err != nil {
		return failureFromErr(err)
	}

	return Result{Entries: entries}
}

func (e *Engine) processWithdrawal(ctx context.Context, req Request, amount decimal.Decimal) Result {
	acc, err := e.resolveAccount(ctx, req.AccountID)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return failure("Account not found")
		}
		return failureFromErr(err)
	}
	if acc.Balance.LessThan(amount) {
		return failure("Insufficient balance")
	}

	reference := defaultString(req.ReferenceNumber, newReferenceNumber())
	status := defaultString(req.Status, StatusCompleted)

	var entries []Entry
	err = e.store.Post(ctx, func(tx Tx) error {
		locked, err := tx.LockAccount(ctx, acc.ID)
		if err != nil {
			return err
		}
		if locked.Balance.LessThan(amount) {
			return ErrInsufficientBalance
		}

		entry := newEntry(locked, amount, EntryDebit, TransactionWithdrawal, status,
			defaultString(req.Description, "Withdrawal"), reference)
		if err := tx.InsertEntry(ctx, &entry); err != nil {
			return err
		}
		if _, err := tx.ApplyDelta(ctx, locked.ID, amount.Neg()); err != nil {
			return err
		}

		entries = []Entry{entry}
		return nil
	})
	if err != nil {
		return failureFromErr(err)
	}

	return Result{Entries: entries}
}

func (e *Engine) resolveAccount(ctx context.Context, raw string) (account.Account, error) {
	if raw == "" {
		return account.Account{}, ErrAccountNotFound
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return account.Account{}, ErrAccountNotFound
	}
	return e.store.Account(ctx, id)
}

// newEntry stages an entry for the given account. RunningBalance is a
// snapshot computed from the balance observed under lock; it is never
// recomputed later.
func newEntry(acc account.Account, amount decimal.Decimal, entryType EntryType,
	txType TransactionType, status, description, reference string) Entry {
	running := acc.Balance
	if entryType == EntryCredit {
		running = running.Add(amount)
	} else {
		running = running.Sub(amount)
	}
	return Entry{
		ID:              uuid.New(),
		AccountID:       acc.ID,
		Amount:          amount,
		EntryType:       entryType,
		TransactionType: txType,
		Status:          status,
		Description:     description,
		ReferenceNumber: reference,
		RunningBalance:  running,
		CreatedAt:       time.Now().UTC(),
	}
}

// lockPair locks two accounts in sorted identifier order so concurrent
// transfers touching the same pair cannot deadlock.
func lockPair(ctx context.Context, tx Tx, fromID, toID uuid.UUID) (account.Account, account.Account, error) {
	first, second := fromID, toID
	if second.String() < first.String() {
		first, second = second, first
	}
	lockedFirst, err := tx.LockAccount(ctx, first)
	if err != nil {
		return account.Account{}, account.Account{}, err
	}
	lockedSecond := lockedFirst
	if second != first {
		lockedSecond, err = tx.LockAccount(ctx, second)
		if err != nil {
			return account.Account{}, account.Account{}, err
		}
	}
	if first == fromID {
		return lockedFirst, lockedSecond, nil
	}
	return lockedSecond, lockedFirst, nil
}

func failureFromErr(err error) Result {
	if errors.Is(err, ErrInsufficientBalance) {
		return failure("Insufficient balance")
	}
	return failure("Transaction failed: " + err.Error())
}

func defaultString(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
