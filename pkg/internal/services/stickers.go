package services

import (
	"errors"
	"strings"

	"github.com/mystickers/mystickers/pkg/internal/models"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"gorm.io/gorm"
)

type StickerService struct {
	db       *gorm.DB
	recycler *Recycler
}

func NewStickerService(db *gorm.DB, recycler *Recycler) *StickerService {
	return &StickerService{db: db, recycler: recycler}
}

// ListStickers returns the catalog newest first. The search term matches
// title or description case-insensitively; the tag list keeps only stickers
// whose tag set intersects it, so a sticker without tags never matches a
// tag filter.
func (v *StickerService) ListStickers(search string, tags []string) ([]models.Sticker, error) {
	tx := v.db.Order("created_at DESC")

	if len(search) > 0 {
		probe := "%" + strings.ToLower(search) + "%"
		tx = tx.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", probe, probe)
	}

	stickers := make([]models.Sticker, 0)
	if err := tx.Find(&stickers).Error; err != nil {
		return stickers, err
	}

	if len(tags) > 0 {
		stickers = lo.Filter(stickers, func(item models.Sticker, _ int) bool {
			return len(lo.Intersect([]string(item.Tags), tags)) > 0
		})
	}

	return stickers, nil
}

func (v *StickerService) GetSticker(id uint) (models.Sticker, error) {
	var sticker models.Sticker
	if err := v.db.Where("id = ?", id).First(&sticker).Error; err != nil {
		return sticker, err
	}
	return sticker, nil
}

func (v *StickerService) NewSticker(sticker models.Sticker) (models.Sticker, error) {
	sticker.UploaderWallet = strings.ToLower(sticker.UploaderWallet)
	if sticker.Tags == nil {
		sticker.Tags = []string{}
	}
	if err := v.db.Create(&sticker).Error; err != nil {
		return sticker, err
	}
	return sticker, nil
}

func (v *StickerService) RetitleSticker(id uint, title string) (models.Sticker, error) {
	sticker, err := v.GetSticker(id)
	if err != nil {
		return sticker, err
	}

	sticker.Title = title
	if err := v.db.Save(&sticker).Error; err != nil {
		return sticker, err
	}
	return sticker, nil
}

// DeleteSticker removes a sticker along with its favorites and queues the
// backing object for removal once the delete has committed; a failed delete
// must leave the object alone. The row itself is soft-deleted and purged
// later by the cleanup job. A missing id is not an error.
func (v *StickerService) DeleteSticker(id uint) error {
	var fileUrl string
	var sticker models.Sticker
	if err := v.db.Where("id = ?", id).First(&sticker).Error; err == nil {
		fileUrl = sticker.FileURL
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Warn().Err(err).Uint("id", id).Msg("Unable to load sticker before deletion...")
	}

	if err := v.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("sticker_id = ?", id).Delete(&models.Favorite{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Sticker{}, "id = ?", id).Error
	}); err != nil {
		return err
	}

	if v.recycler != nil && len(fileUrl) > 0 {
		v.recycler.PublishDeleteObjectTask(fileUrl)
	}

	return nil
}
