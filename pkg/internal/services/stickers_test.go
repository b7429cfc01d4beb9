package services

import (
	"testing"
	"time"

	"github.com/mystickers/mystickers/pkg/internal/models"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedCatalog(t *testing.T, db *gorm.DB) {
	t.Helper()

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	stickers := []models.Sticker{
		{
			BaseModel:      models.BaseModel{CreatedAt: base},
			Title:          "Dancing Cat",
			Description:    "A very happy feline",
			FileURL:        "https://cdn.example.com/stickers/cat.gif",
			FileType:       models.StickerFileTypeGif,
			Tags:           []string{"cat", "dance"},
			UploaderWallet: "0xabc",
		},
		{
			BaseModel:      models.BaseModel{CreatedAt: base.Add(time.Hour)},
			Title:          "Grumpy Dog",
			Description:    "not amused",
			FileURL:        "https://cdn.example.com/stickers/dog.png",
			FileType:       models.StickerFileTypeImage,
			Tags:           []string{"dog"},
			UploaderWallet: "0xabc",
		},
		{
			BaseModel:      models.BaseModel{CreatedAt: base.Add(2 * time.Hour)},
			Title:          "Plain",
			Description:    "no tags on this one",
			FileURL:        "https://cdn.example.com/stickers/plain.png",
			FileType:       models.StickerFileTypeImage,
			Tags:           []string{},
			UploaderWallet: "0xdef",
		},
	}
	for idx := range stickers {
		require.NoError(t, db.Create(&stickers[idx]).Error)
	}
}

func TestListStickersOrdering(t *testing.T) {
	db := newTestDB(t)
	seedCatalog(t, db)
	stickers := NewStickerService(db, nil)

	out, err := stickers.ListStickers("", nil)
	require.NoError(t, err)
	require.Len(t, out, 3)

	titles := lo.Map(out, func(item models.Sticker, _ int) string { return item.Title })
	assert.Equal(t, []string{"Plain", "Grumpy Dog", "Dancing Cat"}, titles)
}

func TestListStickersSearch(t *testing.T) {
	db := newTestDB(t)
	seedCatalog(t, db)
	stickers := NewStickerService(db, nil)

	// Case-insensitive over the title
	out, err := stickers.ListStickers("dancing", nil)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Dancing Cat", out[0].Title)

	// Case-insensitive over the description
	out, err = stickers.ListStickers("FELINE", nil)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Dancing Cat", out[0].Title)

	out, err = stickers.ListStickers("nothing matches this", nil)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestListStickersTagIntersection(t *testing.T) {
	db := newTestDB(t)
	seedCatalog(t, db)
	stickers := NewStickerService(db, nil)

	out, err := stickers.ListStickers("", []string{"cat", "dog"})
	require.NoError(t, err)
	titles := lo.Map(out, func(item models.Sticker, _ int) string { return item.Title })
	assert.ElementsMatch(t, []string{"Dancing Cat", "Grumpy Dog"}, titles)

	// An untagged sticker never matches any tag filter
	out, err = stickers.ListStickers("", []string{"plain"})
	require.NoError(t, err)
	assert.Empty(t, out)

	// Both filters combine with AND
	out, err = stickers.ListStickers("grumpy", []string{"cat"})
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestNewStickerNormalization(t *testing.T) {
	db := newTestDB(t)
	stickers := NewStickerService(db, nil)

	sticker, err := stickers.NewSticker(models.Sticker{
		Title:          "Cat",
		FileURL:        "https://x/cat.png",
		FileType:       models.StickerFileTypeImage,
		UploaderWallet: "0xABC",
	})
	require.NoError(t, err)

	assert.Equal(t, "0xabc", sticker.UploaderWallet)
	assert.NotNil(t, sticker.Tags)
	assert.Empty(t, []string(sticker.Tags))
	assert.NotZero(t, sticker.ID)
}

func TestRetitleSticker(t *testing.T) {
	db := newTestDB(t)
	seedCatalog(t, db)
	stickers := NewStickerService(db, nil)

	out, err := stickers.ListStickers("dancing", nil)
	require.NoError(t, err)
	require.Len(t, out, 1)

	updated, err := stickers.RetitleSticker(out[0].ID, "Waltzing Cat")
	require.NoError(t, err)
	assert.Equal(t, "Waltzing Cat", updated.Title)

	_, err = stickers.RetitleSticker(99999, "Ghost")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestDeleteStickerCascadesFavorites(t *testing.T) {
	db := newTestDB(t)
	seedCatalog(t, db)
	stickers := NewStickerService(db, nil)
	favorites := NewFavoriteService(db)

	out, err := stickers.ListStickers("dancing", nil)
	require.NoError(t, err)
	require.Len(t, out, 1)
	target := out[0]

	_, err = favorites.NewFavorite("0xAAA", target.ID)
	require.NoError(t, err)

	require.NoError(t, stickers.DeleteSticker(target.ID))

	_, err = stickers.GetSticker(target.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	remaining, err := favorites.ListFavoriteStickers("0xAAA")
	require.NoError(t, err)
	assert.Empty(t, remaining)
}

func TestDeleteStickerQueuesObjectRemovalAfterCommit(t *testing.T) {
	db := newTestDB(t)
	seedCatalog(t, db)
	recycler := NewRecycler(db, newTestUploader(t))
	stickers := NewStickerService(db, recycler)

	out, err := stickers.ListStickers("dancing", nil)
	require.NoError(t, err)
	require.Len(t, out, 1)
	target := out[0]

	// No worker is draining the queue, so queued tasks stay observable.
	require.NoError(t, stickers.DeleteSticker(target.ID))
	require.Len(t, recycler.objectDeletionQueue, 1)
	assert.Equal(t, target.FileURL, <-recycler.objectDeletionQueue)
}

func TestDeleteStickerKeepsObjectWhenDeleteFails(t *testing.T) {
	db := newTestDB(t)
	seedCatalog(t, db)
	recycler := NewRecycler(db, newTestUploader(t))
	stickers := NewStickerService(db, recycler)

	out, err := stickers.ListStickers("dancing", nil)
	require.NoError(t, err)
	require.Len(t, out, 1)
	target := out[0]

	// Fault the store so the delete transaction cannot run.
	require.NoError(t, db.Migrator().DropTable(&models.Favorite{}))

	require.Error(t, stickers.DeleteSticker(target.ID))

	// The row survived, so the backing object must not be touched.
	assert.Empty(t, recycler.objectDeletionQueue)
	_, err = stickers.GetSticker(target.ID)
	assert.NoError(t, err)
}

func TestDeleteStickerMissingIsQuiet(t *testing.T) {
	db := newTestDB(t)
	stickers := NewStickerService(db, nil)

	assert.NoError(t, stickers.DeleteSticker(424242))
}
