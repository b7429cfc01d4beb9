package services

import (
	"time"

	"github.com/mystickers/mystickers/pkg/internal/models"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const softDeleteRetention = 60 * time.Minute

type Cleaner struct {
	db *gorm.DB
}

func NewCleaner(db *gorm.DB) *Cleaner {
	return &Cleaner{db: db}
}

// DoAutoDatabaseCleanup purges soft-deleted rows past the retention window.
func (v *Cleaner) DoAutoDatabaseCleanup() {
	deadline := time.Now().Add(-softDeleteRetention)
	log.Debug().Time("deadline", deadline).Msg("Now cleaning up entire database...")

	tx := v.db.Unscoped().
		Where("deleted_at IS NOT NULL AND deleted_at < ?", deadline).
		Delete(&models.Sticker{})
	if tx.Error != nil {
		log.Error().Err(tx.Error).Msg("An error occurred when running database cleanup...")
	}

	log.Debug().Int64("affected", tx.RowsAffected).Msg("Clean up entire database accomplished.")
}
