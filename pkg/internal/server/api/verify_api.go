package api

import (
	"github.com/gofiber/fiber/v2"
)

func (h *Handler) verifyCollectible(c *fiber.Ctx) error {
	address := c.Query("address")
	if len(address) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "Address required")
	}

	hasNFT, err := h.Verifier.HasCollectible(c.Context(), address)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to verify NFT")
	}

	return c.JSON(fiber.Map{"hasNFT": hasNFT})
}
