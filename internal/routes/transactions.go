package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/bscf-core/virtual-accounts/internal/ledger"
)

// RegisterTransactionRoutes wires the transaction posting endpoint.
func RegisterTransactionRoutes(r fiber.Router, h *ledger.Handler) {
	r.Post("/virtual_account_transactions", h.Create)
}
