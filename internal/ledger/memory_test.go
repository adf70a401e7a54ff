package ledger

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestMemoryStorePostRollsBackOnError(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	acc := SeedAccount(store, "ACC-1", decimal.RequireFromString("100.00"))

	boom := errors.New("boom")
	err := store.Post(ctx, func(tx Tx) error {
		locked, err := tx.LockAccount(ctx, acc.ID)
		if err != nil {
			return err
		}
		entry := newEntry(locked, decimal.RequireFromString("40.00"), EntryDebit,
			TransactionWithdrawal, StatusCompleted, "Withdrawal", "REF-1")
		if err := tx.InsertEntry(ctx, &entry); err != nil {
			return err
		}
		if _, err := tx.ApplyDelta(ctx, acc.ID, decimal.RequireFromString("-40.00")); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}

	if len(store.Entries()) != 0 {
		t.Fatalf("staged entries leaked into the store")
	}
	after, _ := store.Account(ctx, acc.ID)
	if !after.Balance.Equal(decimal.RequireFromString("100.00")) {
		t.Fatalf("staged balance leaked: %s", after.Balance)
	}
}

func TestMemoryStoreApplyDeltaRejectsNegativeBalance(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	acc := SeedAccount(store, "ACC-1", decimal.RequireFromString("10.00"))

	err := store.Post(ctx, func(tx Tx) error {
		_, err := tx.ApplyDelta(ctx, acc.ID, decimal.RequireFromString("-10.01"))
		return err
	})
	if !errors.Is(err, ErrInsufficientBalance) {
		t.Fatalf("expected ErrInsufficientBalance, got %v", err)
	}

	after, _ := store.Account(ctx, acc.ID)
	if !after.Balance.Equal(decimal.RequireFromString("10.00")) {
		t.Fatalf("balance changed: %s", after.Balance)
	}
}

func TestMemoryStoreStagedBalanceVisibleWithinUnit(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	acc := SeedAccount(store, "ACC-1", decimal.RequireFromString("100.00"))

	err := store.Post(ctx, func(tx Tx) error {
		if _, err := tx.ApplyDelta(ctx, acc.ID, decimal.RequireFromString("-30.00")); err != nil {
			return err
		}
		locked, err := tx.LockAccount(ctx, acc.ID)
		if err != nil {
			return err
		}
		if !locked.Balance.Equal(decimal.RequireFromString("70.00")) {
			t.Fatalf("staged balance not visible inside unit: %s", locked.Balance)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("post failed: %v", err)
	}

	after, _ := store.Account(ctx, acc.ID)
	if !after.Balance.Equal(decimal.RequireFromString("70.00")) {
		t.Fatalf("committed balance wrong: %s", after.Balance)
	}
}
