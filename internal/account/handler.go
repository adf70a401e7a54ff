package account

import (
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Handler exposes virtual account HTTP endpoints.
type Handler struct {
	store Store
}

// NewHandler builds an account HTTP handler.
func NewHandler(store Store) *Handler {
	return &Handler{store: store}
}

type createRequest struct {
	UserID           string           `json:"user_id"`
	AccountNumber    string           `json:"account_number"`
	CBSAccountNumber string           `json:"cbs_account_number"`
	Balance          *decimal.Decimal `json:"balance"`
	BranchCode       string           `json:"branch_code"`
	ProductScheme    string           `json:"product_scheme"`
	VoucherType      string           `json:"voucher_type"`
}

// Create provisions a virtual account record in pending state.
func (h *Handler) Create(c *fiber.Ctx) error {
	var req createRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "user_id must be a valid UUID")
	}
	if req.AccountNumber == "" {
		return fiber.NewError(http.StatusBadRequest, "account_number is required")
	}

	balance := decimal.Zero
	if req.Balance != nil {
		balance = *req.Balance
	}

	acc := Account{
		ID:               uuid.New(),
		UserID:           userID,
		AccountNumber:    req.AccountNumber,
		CBSAccountNumber: req.CBSAccountNumber,
		Balance:          balance,
		Active:           true,
		BranchCode:       req.BranchCode,
		ProductScheme:    req.ProductScheme,
		VoucherType:      req.VoucherType,
		Status:           StatusPending,
		CreatedAt:        time.Now().UTC(),
		UpdatedAt:        time.Now().UTC(),
	}

	if err := h.store.Create(c.UserContext(), acc); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	return c.Status(http.StatusCreated).JSON(acc)
}

// Get returns an account with its current balance.
func (h *Handler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("accountId"))
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "account id must be a valid UUID")
	}

	acc, err := h.store.Get(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return fiber.NewError(http.StatusNotFound, "account not found")
		}
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}

	return c.Status(http.StatusOK).JSON(acc)
}

// Lookup resolves an account by its external account number.
func (h *Handler) Lookup(c *fiber.Ctx) error {
	accountNumber := c.Query("account_number")
	if accountNumber == "" {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Account number is required",
		})
	}

	acc, err := h.store.GetByNumber(c.UserContext(), accountNumber)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.Status(http.StatusNotFound).JSON(fiber.Map{
				"success": false,
				"error":   "Virtual account not found",
			})
		}
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"account_id":     acc.ID,
			"account_number": acc.AccountNumber,
			"user_id":        acc.UserID,
			"status":         acc.Status,
		},
	})
}
