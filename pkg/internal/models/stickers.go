package models

import "gorm.io/datatypes"

const (
	StickerFileTypeImage = "image"
	StickerFileTypeGif   = "gif"
)

type Sticker struct {
	BaseModel

	Title           string                      `json:"title"`
	Description     string                      `json:"description"`
	FileURL         string                      `json:"file_url"`
	FileType        string                      `json:"file_type"`
	Tags            datatypes.JSONSlice[string] `json:"tags"`
	TelegramPackURL string                      `json:"telegram_pack_url"`
	DiscordPackURL  string                      `json:"discord_pack_url"`
	UploaderWallet  string                      `json:"uploader_wallet" gorm:"index"`

	Favorites []Favorite `json:"-" gorm:"foreignKey:StickerID;constraint:OnDelete:CASCADE"`
}
