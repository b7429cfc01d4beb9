package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// createUploadUrl hands an admin a presigned PUT URL plus the public URL the
// file will live at. The bytes never pass through this service; the browser
// uploads straight to storage and registers the sticker record afterwards.
func (h *Handler) createUploadUrl(c *fiber.Ctx) error {
	var data struct {
		FileName      string `json:"fileName"`
		FileType      string `json:"fileType"`
		WalletAddress string `json:"walletAddress"`
	}
	if err := c.BodyParser(&data); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Missing required fields")
	}
	if len(data.FileName) == 0 || len(data.FileType) == 0 || len(data.WalletAddress) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "Missing required fields")
	}

	if !h.isAdmin(strings.ToLower(data.WalletAddress)) {
		return fiber.NewError(fiber.StatusForbidden, "Unauthorized: Admin wallet required")
	}

	uploadUrl, fileUrl, err := h.Uploader.PresignUpload(c.Context(), data.FileName)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to generate upload URL")
	}

	return c.JSON(fiber.Map{
		"uploadUrl": uploadUrl,
		"fileUrl":   fileUrl,
	})
}
