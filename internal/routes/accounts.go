package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/bscf-core/virtual-accounts/internal/account"
)

// RegisterAccountRoutes wires virtual account endpoints.
func RegisterAccountRoutes(r fiber.Router, h *account.Handler) {
	r.Post("/virtual_accounts", h.Create)
	r.Get("/virtual_accounts/lookup", h.Lookup)
	r.Get("/virtual_accounts/:accountId", h.Get)
}
