package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mystickers/mystickers/pkg/internal/services"
)

// Handler carries the constructed services every route needs.
type Handler struct {
	Stickers  *services.StickerService
	Favorites *services.FavoriteService
	Uploader  *services.Uploader
	Verifier  *services.OwnershipVerifier

	// AdminWallets is the lower-cased allow-list for privileged actions.
	AdminWallets []string
}

func (h *Handler) MapAPIs(app *fiber.App, baseURL string) {
	api := app.Group(baseURL).Name("API")
	{
		stickers := api.Group("/stickers").Name("Stickers API")
		{
			stickers.Get("/", h.listStickers)
			stickers.Get("/:stickerId", h.getSticker)
			stickers.Post("/", h.adminGate, h.createSticker)
			stickers.Patch("/:stickerId", h.adminGate, h.updateSticker)
			stickers.Delete("/:stickerId", h.adminGate, h.deleteSticker)
		}

		favorites := api.Group("/favorites").Name("Favorites API")
		{
			favorites.Get("/", h.listFavorites)
			favorites.Post("/", h.createFavorite)
			favorites.Delete("/", h.deleteFavorite)
		}

		api.Post("/upload-url", h.createUploadUrl)
		api.Get("/verify-nft", h.verifyCollectible)
	}
}
