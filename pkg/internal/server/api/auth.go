package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
)

// adminGate guards mutating sticker routes. The caller identifies itself via
// the X-Wallet-Address header; anything outside the allow-list is rejected.
// The original client only hid these actions in the UI, which left the API
// itself open, so the check lives server-side here.
func (h *Handler) adminGate(c *fiber.Ctx) error {
	wallet := strings.ToLower(strings.TrimSpace(c.Get("X-Wallet-Address")))
	if !h.isAdmin(wallet) {
		return fiber.NewError(fiber.StatusForbidden, "Unauthorized: Admin wallet required")
	}

	return c.Next()
}

func (h *Handler) isAdmin(wallet string) bool {
	return len(wallet) > 0 && lo.Contains(h.AdminWallets, wallet)
}
