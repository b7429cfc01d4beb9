package services

import (
	"context"
	"fmt"
	nurl "net/url"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/mystickers/mystickers/pkg/internal/models"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// Signed upload URLs stay valid for five minutes; long enough for a browser
// PUT, short enough to be useless if leaked.
const presignExpiry = 5 * time.Minute

type Uploader struct {
	client      *minio.Client
	destination models.S3Destination
}

func NewUploader() (*Uploader, error) {
	var destination models.S3Destination
	if err := viper.UnmarshalKey("storage", &destination); err != nil {
		return nil, fmt.Errorf("unable to read storage destination: %v", err)
	}

	client, err := minio.New(destination.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(destination.SecretID, destination.SecretKey, ""),
		Secure: destination.EnableSSL,
		Region: destination.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("unable to configure s3 client: %v", err)
	}

	return &Uploader{client: client, destination: destination}, nil
}

var (
	whitespacePattern = regexp.MustCompile(`\s+`)
	unsafePattern     = regexp.MustCompile(`[^a-zA-Z0-9.-]`)
)

// SanitizeFileName turns whitespace runs into dashes and strips everything
// outside alphanumerics, dots and dashes, so the storage key stays free of
// path separators and exotic characters.
func SanitizeFileName(name string) string {
	name = whitespacePattern.ReplaceAllString(name, "-")
	return unsafePattern.ReplaceAllString(name, "")
}

// PresignUpload issues a time-limited PUT URL for a new object and the
// public URL the object will be readable at once uploaded. The key embeds
// the current timestamp so two uploads of the same filename never collide.
func (v *Uploader) PresignUpload(ctx context.Context, fileName string) (uploadUrl string, fileUrl string, err error) {
	key := v.ObjectKey(fileName)

	signed, err := v.client.PresignedPutObject(ctx, v.destination.Bucket, key, presignExpiry)
	if err != nil {
		return "", "", fmt.Errorf("unable to presign upload url: %v", err)
	}

	log.Info().
		Str("ref", uuid.NewString()).
		Str("key", key).
		Msg("Issued a presigned upload url.")

	return signed.String(), v.PublicURL(key), nil
}

func (v *Uploader) ObjectKey(fileName string) string {
	key := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), SanitizeFileName(fileName))
	if len(v.destination.Path) > 0 {
		key = strings.Trim(v.destination.Path, "/") + "/" + key
	}
	return key
}

func (v *Uploader) PublicURL(key string) string {
	base := strings.TrimSuffix(v.destination.AccessBaseURL, "/")
	escaped := (&nurl.URL{Path: key}).EscapedPath()
	return base + "/" + strings.TrimPrefix(escaped, "/")
}

// KeyFromURL reverses PublicURL; it returns false for urls outside the
// configured destination.
func (v *Uploader) KeyFromURL(fileUrl string) (string, bool) {
	base := strings.TrimSuffix(v.destination.AccessBaseURL, "/") + "/"
	if !strings.HasPrefix(fileUrl, base) {
		return "", false
	}
	key, err := nurl.PathUnescape(strings.TrimPrefix(fileUrl, base))
	if err != nil {
		return "", false
	}
	return key, true
}

func (v *Uploader) RemoveObject(ctx context.Context, key string) error {
	err := v.client.RemoveObject(ctx, v.destination.Bucket, key, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("unable to remove object from s3: %v", err)
	}
	return nil
}

// ListObjects streams every object under the destination path.
func (v *Uploader) ListObjects(ctx context.Context) <-chan minio.ObjectInfo {
	prefix := ""
	if len(v.destination.Path) > 0 {
		prefix = strings.Trim(v.destination.Path, "/") + "/"
	}
	return v.client.ListObjects(ctx, v.destination.Bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	})
}
