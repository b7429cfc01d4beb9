package services

import (
	"context"
	"time"

	"github.com/mystickers/mystickers/pkg/internal/models"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Grace window before an unreferenced object counts as orphaned, covering
// uploads whose metadata record is still on its way.
const orphanGracePeriod = 60 * time.Minute

// Recycler reconciles the object store with the catalog. The upload flow is
// not transactional: the browser PUTs bytes to a presigned URL first and
// registers the sticker record afterwards, so a failed registration leaves
// an object behind that nothing references.
type Recycler struct {
	db       *gorm.DB
	uploader *Uploader

	objectDeletionQueue chan string
}

func NewRecycler(db *gorm.DB, uploader *Uploader) *Recycler {
	return &Recycler{
		db:                  db,
		uploader:            uploader,
		objectDeletionQueue: make(chan string, 256),
	}
}

// PublishDeleteObjectTask queues the object behind a file url for removal.
func (v *Recycler) PublishDeleteObjectTask(fileUrl string) {
	select {
	case v.objectDeletionQueue <- fileUrl:
	default:
		log.Warn().Str("url", fileUrl).Msg("Object deletion queue is full, dropping task...")
	}
}

func (v *Recycler) StartConsumeDeletionTask() {
	for fileUrl := range v.objectDeletionQueue {
		key, ok := v.uploader.KeyFromURL(fileUrl)
		if !ok {
			log.Warn().Str("url", fileUrl).Msg("A file url points outside the configured destination, skipping...")
			continue
		}

		start := time.Now()
		if err := v.uploader.RemoveObject(context.Background(), key); err != nil {
			log.Error().Err(err).Str("key", key).Msg("An object deletion task failed...")
		} else {
			log.Info().Dur("elapsed", time.Since(start)).Str("key", key).Msg("An object deletion task was completed.")
		}
	}
}

// RunOrphanCollectionTask scans the bucket for objects old enough to be past
// the grace window with no sticker row referencing them, and queues each for
// removal. Soft-deleted stickers still count as references until the cleanup
// job purges them.
func (v *Recycler) RunOrphanCollectionTask() {
	ctx := context.Background()
	deadline := time.Now().Add(-orphanGracePeriod)

	var scanned, orphaned int64
	for object := range v.uploader.ListObjects(ctx) {
		if object.Err != nil {
			log.Error().Err(object.Err).Msg("An error occurred when listing objects for reconciliation...")
			return
		}
		scanned++

		if object.LastModified.After(deadline) {
			continue
		}

		fileUrl := v.uploader.PublicURL(object.Key)

		var count int64
		if err := v.db.Unscoped().Model(&models.Sticker{}).
			Where("file_url = ?", fileUrl).
			Count(&count).Error; err != nil {
			log.Error().Err(err).Str("key", object.Key).Msg("Unable to count references for object...")
			continue
		}

		if count == 0 {
			orphaned++
			v.PublishDeleteObjectTask(fileUrl)
		}
	}

	log.Info().
		Int64("scanned", scanned).
		Int64("orphaned", orphaned).
		Msg("Orphaned object reconciliation accomplished.")
}
