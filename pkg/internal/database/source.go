package database

import (
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewSource opens the relational store. The handle is constructed once in
// main and handed to every service that needs it.
func NewSource() (*gorm.DB, error) {
	dsn := viper.GetString("database.dsn")
	return gorm.Open(postgres.Open(dsn), &gorm.Config{
		// Unique violations must surface as gorm.ErrDuplicatedKey so the
		// favorites API can answer 409 without a prior existence read.
		TranslateError: true,
		Logger: logger.New(&log.Logger, logger.Config{
			Colorful:                  true,
			IgnoreRecordNotFoundError: true,
			LogLevel:                  lo.Ternary(viper.GetBool("debug.database"), logger.Info, logger.Silent),
		}),
	})
}
