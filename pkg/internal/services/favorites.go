package services

import (
	"errors"
	"strings"

	"github.com/mystickers/mystickers/pkg/internal/models"
	"github.com/samber/lo"
	"gorm.io/gorm"
)

// ErrFavoriteExists reports a (wallet, sticker) pair that is already stored.
var ErrFavoriteExists = errors.New("favorite already exists")

type FavoriteService struct {
	db *gorm.DB
}

func NewFavoriteService(db *gorm.DB) *FavoriteService {
	return &FavoriteService{db: db}
}

// ListFavoriteStickers returns the stickers a wallet favorited, most
// recently favorited first.
func (v *FavoriteService) ListFavoriteStickers(wallet string) ([]models.Sticker, error) {
	var favorites []models.Favorite
	if err := v.db.
		Where("wallet_address = ?", strings.ToLower(wallet)).
		Order("created_at DESC").
		Preload("Sticker").
		Find(&favorites).Error; err != nil {
		return nil, err
	}

	stickers := lo.FilterMap(favorites, func(item models.Favorite, _ int) (models.Sticker, bool) {
		return item.Sticker, item.Sticker.ID != 0
	})

	return stickers, nil
}

// NewFavorite inserts the pair and lets the composite unique index decide
// whether it is a duplicate; there is no prior existence read.
func (v *FavoriteService) NewFavorite(wallet string, stickerId uint) (models.Favorite, error) {
	favorite := models.Favorite{
		WalletAddress: strings.ToLower(wallet),
		StickerID:     stickerId,
	}

	if err := v.db.Create(&favorite).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return favorite, ErrFavoriteExists
		}
		return favorite, err
	}

	return favorite, nil
}

func (v *FavoriteService) RemoveFavorite(wallet string, stickerId uint) error {
	tx := v.db.
		Where("wallet_address = ? AND sticker_id = ?", strings.ToLower(wallet), stickerId).
		Delete(&models.Favorite{})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
