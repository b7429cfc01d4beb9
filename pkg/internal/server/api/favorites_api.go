package api

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/mystickers/mystickers/pkg/internal/services"
	"gorm.io/gorm"
)

func (h *Handler) listFavorites(c *fiber.Ctx) error {
	wallet := c.Query("wallet")
	if len(wallet) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "Wallet address is required")
	}

	stickers, err := h.Favorites.ListFavoriteStickers(wallet)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch favorites")
	}

	return c.JSON(stickers)
}

func (h *Handler) createFavorite(c *fiber.Ctx) error {
	var data struct {
		WalletAddress string `json:"wallet_address"`
		StickerID     uint   `json:"sticker_id"`
	}
	if err := c.BodyParser(&data); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Wallet address and sticker ID are required")
	}
	if len(data.WalletAddress) == 0 || data.StickerID == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "Wallet address and sticker ID are required")
	}

	favorite, err := h.Favorites.NewFavorite(data.WalletAddress, data.StickerID)
	if err != nil {
		if errors.Is(err, services.ErrFavoriteExists) {
			return fiber.NewError(fiber.StatusConflict, "Favorite already exists")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create favorite")
	}

	return c.Status(fiber.StatusCreated).JSON(favorite)
}

func (h *Handler) deleteFavorite(c *fiber.Ctx) error {
	wallet := c.Query("wallet")
	stickerId, _ := strconv.Atoi(c.Query("stickerId"))
	if len(wallet) == 0 || stickerId == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "Wallet address and sticker ID are required")
	}

	if err := h.Favorites.RemoveFavorite(wallet, uint(stickerId)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Favorite not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete favorite")
	}

	return c.JSON(fiber.Map{"success": true})
}
