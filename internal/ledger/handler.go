package ledger

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/bscf-core/virtual-accounts/internal/events"
)

// Handler exposes the transaction posting endpoint.
type Handler struct {
	engine    *Engine
	publisher events.Publisher
	logger    *slog.Logger
}

// NewHandler constructs a transaction handler.
func NewHandler(engine *Engine, publisher events.Publisher, logger *slog.Logger) *Handler {
	return &Handler{engine: engine, publisher: publisher, logger: logger}
}

type createTransactionRequest struct {
	TransactionType string           `json:"transaction_type"`
	Amount          *decimal.Decimal `json:"amount"`
	FromAccountID   string           `json:"from_account_id"`
	ToAccountID     string           `json:"to_account_id"`
	AccountID       string           `json:"account_id"`
	Status          string           `json:"status"`
	Description     string           `json:"description"`
	ReferenceNumber string           `json:"reference_number"`
}

// toRequest normalizes the aliasing account identifier fields into the single
// canonical reference per role the engine expects.
func (r createTransactionRequest) toRequest() Request {
	req := Request{
		TransactionType: r.TransactionType,
		FromAccountID:   r.FromAccountID,
		ToAccountID:     r.ToAccountID,
		Status:          r.Status,
		Description:     r.Description,
		ReferenceNumber: r.ReferenceNumber,
	}
	if r.Amount != nil {
		req.Amount = r.Amount.String()
	}
	switch TransactionType(r.TransactionType) {
	case TransactionDeposit:
		req.AccountID = firstNonEmpty(r.AccountID, r.ToAccountID, r.FromAccountID)
	case TransactionWithdrawal:
		req.AccountID = firstNonEmpty(r.AccountID, r.FromAccountID, r.ToAccountID)
	default:
		req.AccountID = r.AccountID
	}
	return req
}

// Create processes a transaction request and maps the engine result onto
// transport status codes: created on success, unprocessable on failure.
func (h *Handler) Create(c *fiber.Ctx) error {
	var req createTransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	result := h.engine.Process(c.UserContext(), req.toRequest())
	if !result.Succeeded() {
		return c.Status(http.StatusUnprocessableEntity).JSON(fiber.Map{
			"success": false,
			"errors":  result.Errors,
		})
	}

	h.publish(c.UserContext(), result.Entries)

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    result.Entries,
	})
}

// publish emits a posting event best effort; delivery problems never fail the
// request that already committed.
func (h *Handler) publish(ctx context.Context, entries []Entry) {
	if h.publisher == nil || len(entries) == 0 {
		return
	}

	event := events.TransactionPosted{
		ReferenceNumber: entries[0].ReferenceNumber,
		TransactionType: string(entries[0].TransactionType),
		Amount:          entries[0].Amount,
		OccurredAt:      time.Now().UTC(),
	}
	for _, entry := range entries {
		event.AccountIDs = append(event.AccountIDs, entry.AccountID.String())
		event.EntryIDs = append(event.EntryIDs, entry.ID.String())
	}

	if err := h.publisher.TransactionPosted(ctx, event); err != nil && h.logger != nil {
		h.logger.Warn("publish transaction event", "reference_number", event.ReferenceNumber, "error", err)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
