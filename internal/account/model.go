package account

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status represents the lifecycle state of a virtual account. The ledger
// engine only reads it; transitions belong to the provisioning flow.
type Status string

const (
	StatusPending   Status = "pending"
	StatusActive    Status = "active"
	StatusSuspended Status = "suspended"
	StatusClosed    Status = "closed"
)

// Account is a virtual monetary account. Balance always equals the signed sum
// of the ledger entries posted against the account.
type Account struct {
	ID               uuid.UUID       `json:"id"`
	UserID           uuid.UUID       `json:"user_id"`
	AccountNumber    string          `json:"account_number"`
	CBSAccountNumber string          `json:"cbs_account_number"`
	Balance          decimal.Decimal `json:"balance"`
	InterestRate     decimal.Decimal `json:"interest_rate"`
	InterestType     string          `json:"interest_type"`
	Active           bool            `json:"active"`
	BranchCode       string          `json:"branch_code"`
	ProductScheme    string          `json:"product_scheme"`
	VoucherType      string          `json:"voucher_type"`
	Status           Status          `json:"status"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}
