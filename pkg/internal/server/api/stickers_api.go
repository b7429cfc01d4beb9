package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/mystickers/mystickers/pkg/internal/models"
	"github.com/mystickers/mystickers/pkg/internal/server/exts"
	"github.com/samber/lo"
	"gorm.io/datatypes"
)

func (h *Handler) listStickers(c *fiber.Ctx) error {
	search := c.Query("search")
	tags := lo.Filter(strings.Split(c.Query("tags"), ","), func(item string, _ int) bool {
		return len(item) > 0
	})

	stickers, err := h.Stickers.ListStickers(search, tags)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch stickers")
	}

	return c.JSON(stickers)
}

func (h *Handler) getSticker(c *fiber.Ctx) error {
	id, _ := c.ParamsInt("stickerId", 0)

	sticker, err := h.Stickers.GetSticker(uint(id))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, "Sticker not found")
	}

	return c.JSON(sticker)
}

func (h *Handler) createSticker(c *fiber.Ctx) error {
	var data struct {
		Title           string   `json:"title" validate:"required"`
		Description     string   `json:"description"`
		FileURL         string   `json:"file_url" validate:"required"`
		FileType        string   `json:"file_type" validate:"required,oneof=image gif"`
		Tags            []string `json:"tags"`
		TelegramPackURL string   `json:"telegram_pack_url"`
		DiscordPackURL  string   `json:"discord_pack_url"`
		UploaderWallet  string   `json:"uploader_wallet" validate:"required"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	sticker, err := h.Stickers.NewSticker(models.Sticker{
		Title:           data.Title,
		Description:     data.Description,
		FileURL:         data.FileURL,
		FileType:        data.FileType,
		Tags:            datatypes.NewJSONSlice(data.Tags),
		TelegramPackURL: data.TelegramPackURL,
		DiscordPackURL:  data.DiscordPackURL,
		UploaderWallet:  data.UploaderWallet,
	})
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create sticker")
	}

	return c.Status(fiber.StatusCreated).JSON(sticker)
}

func (h *Handler) updateSticker(c *fiber.Ctx) error {
	id, _ := c.ParamsInt("stickerId", 0)

	var data struct {
		Title string `json:"title"`
	}
	if err := c.BodyParser(&data); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Title must be a non-empty string")
	}
	if len(strings.TrimSpace(data.Title)) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "Title must be a non-empty string")
	}

	sticker, err := h.Stickers.RetitleSticker(uint(id), data.Title)
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, "Sticker not found")
	}

	return c.JSON(sticker)
}

func (h *Handler) deleteSticker(c *fiber.Ctx) error {
	id, _ := c.ParamsInt("stickerId", 0)

	if err := h.Stickers.DeleteSticker(uint(id)); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete sticker")
	}

	return c.JSON(fiber.Map{"success": true})
}
