package account

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Columns is the canonical select list for virtual_accounts rows, paired
// with ScanRow. The ledger store reuses it for locked reads inside its
// posting transaction.
const Columns = `id, user_id, account_number, cbs_account_number, balance,
		interest_rate, interest_type, active, branch_code, product_scheme,
		voucher_type, status, created_at, updated_at`

// PostgresStore stores virtual accounts in PostgreSQL.
type PostgresStore struct {
	db *pgxpool.Pool
}

// NewPostgresStore builds a store backed by PostgreSQL.
func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

// Create inserts an account record.
func (s *PostgresStore) Create(ctx context.Context, acc Account) error {
	now := time.Now().UTC()
	if acc.CreatedAt.IsZero() {
		acc.CreatedAt = now
	}
	if acc.UpdatedAt.IsZero() {
		acc.UpdatedAt = now
	}
	_, err := s.db.Exec(ctx, `INSERT INTO virtual_accounts
		(id, user_id, account_number, cbs_account_number, balance, interest_rate,
		 interest_type, active, branch_code, product_scheme, voucher_type, status,
		 created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		acc.ID, acc.UserID, acc.AccountNumber, acc.CBSAccountNumber, acc.Balance,
		acc.InterestRate, acc.InterestType, acc.Active, acc.BranchCode,
		acc.ProductScheme, acc.VoucherType, acc.Status, acc.CreatedAt, acc.UpdatedAt)
	return err
}

// Get fetches an account by identifier.
func (s *PostgresStore) Get(ctx context.Context, id uuid.UUID) (Account, error) {
	row := s.db.QueryRow(ctx, `SELECT `+Columns+`
		FROM virtual_accounts WHERE id = $1`, id)
	return ScanRow(row)
}

// GetByNumber fetches an account by its external account number.
func (s *PostgresStore) GetByNumber(ctx context.Context, accountNumber string) (Account, error) {
	row := s.db.QueryRow(ctx, `SELECT `+Columns+`
		FROM virtual_accounts WHERE account_number = $1`, accountNumber)
	return ScanRow(row)
}

// ScanRow scans one virtual_accounts row selected with Columns.
func ScanRow(row pgx.Row) (Account, error) {
	var acc Account
	err := row.Scan(&acc.ID, &acc.UserID, &acc.AccountNumber, &acc.CBSAccountNumber,
		&acc.Balance, &acc.InterestRate, &acc.InterestType, &acc.Active,
		&acc.BranchCode, &acc.ProductScheme, &acc.VoucherType, &acc.Status,
		&acc.CreatedAt, &acc.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Account{}, ErrNotFound
		}
		return Account{}, err
	}
	acc.CreatedAt = acc.CreatedAt.UTC()
	acc.UpdatedAt = acc.UpdatedAt.UTC()
	return acc, nil
}
