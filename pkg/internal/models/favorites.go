package models

import "time"

// Favorite joins a wallet to a sticker. Rows are hard-deleted so the
// composite unique index never blocks a re-favorite.
type Favorite struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	WalletAddress string    `json:"wallet_address" gorm:"uniqueIndex:idx_favorites_wallet_sticker"`
	StickerID     uint      `json:"sticker_id" gorm:"uniqueIndex:idx_favorites_wallet_sticker"`
	Sticker       Sticker   `json:"sticker"`
	CreatedAt     time.Time `json:"created_at"`
}
