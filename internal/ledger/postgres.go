package ledger

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/bscf-core/virtual-accounts/internal/account"
)

// PostgresStore persists ledger entries and account balances in PostgreSQL.
// The atomic posting unit maps onto a single database transaction with
// row-level locks scoped to exactly the accounts touched.
type PostgresStore struct {
	db *pgxpool.Pool
}

// NewPostgresStore constructs a Postgres-backed ledger store.
func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

// Account resolves an account without locking it. Used for read-only
// validation before the posting unit starts.
func (s *PostgresStore) Account(ctx context.Context, id uuid.UUID) (account.Account, error) {
	row := s.db.QueryRow(ctx, `SELECT `+account.Columns+`
		FROM virtual_accounts WHERE id = $1`, id)
	acc, err := account.ScanRow(row)
	if err != nil {
		if errors.Is(err, account.ErrNotFound) {
			return account.Account{}, ErrAccountNotFound
		}
		return account.Account{}, err
	}
	return acc, nil
}

// Post runs fn inside one database transaction. If fn returns an error the
// transaction rolls back and no entry or balance change survives.
func (s *PostgresStore) Post(ctx context.Context, fn func(Tx) error) error {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) // nolint:errcheck

	if err := fn(&postgresTx{tx: tx}); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

type postgresTx struct {
	tx pgx.Tx
}

// LockAccount reads the account row under an exclusive row lock, blocking
// concurrent posting units touching the same account until commit.
func (t *postgresTx) LockAccount(ctx context.Context, id uuid.UUID) (account.Account, error) {
	row := t.tx.QueryRow(ctx, `SELECT `+account.Columns+`
		FROM virtual_accounts WHERE id = $1 FOR UPDATE`, id)
	acc, err := account.ScanRow(row)
	if err != nil {
		if errors.Is(err, account.ErrNotFound) {
			return account.Account{}, ErrAccountNotFound
		}
		return account.Account{}, err
	}
	return acc, nil
}

// InsertEntry stages one ledger entry. The paired_entry_id foreign key is
// deferred, so both legs of a transfer can reference each other within the
// same transaction.
func (t *postgresTx) InsertEntry(ctx context.Context, entry *Entry) error {
	_, err := t.tx.Exec(ctx, `INSERT INTO virtual_account_transactions
		(id, account_id, amount, entry_type, transaction_type, status,
		 description, reference_number, running_balance, paired_entry_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		entry.ID, entry.AccountID, entry.Amount, entry.EntryType,
		entry.TransactionType, entry.Status, entry.Description,
		entry.ReferenceNumber, entry.RunningBalance, entry.PairedEntryID,
		entry.CreatedAt)
	return err
}

// ApplyDelta adjusts the account balance in place and returns the new value.
// The balance CHECK constraint backstops the engine's sufficiency check.
func (t *postgresTx) ApplyDelta(ctx context.Context, id uuid.UUID, delta decimal.Decimal) (decimal.Decimal, error) {
	var balance decimal.Decimal
	err := t.tx.QueryRow(ctx, `UPDATE virtual_accounts
		SET balance = balance + $2, updated_at = now()
		WHERE id = $1
		RETURNING balance`, id, delta).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, ErrAccountNotFound
		}
		return decimal.Zero, err
	}
	return balance, nil
}
