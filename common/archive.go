package common

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"strings"
)

// ObjectPutter is the slice of S3 the archiver uses, split out so tests can
// substitute a fake.
type ObjectPutter interface {
	Put(ctx context.Context, bucket, key string, body io.Reader, contentType string) error
}

// Archiver uploads finished exports (encoded video, SRT files, narration MP3)
// under exports/<project>/<artifact>.
type Archiver struct {
	store  ObjectPutter
	bucket string
}

func NewArchiver(store ObjectPutter, bucket string) *Archiver {
	return &Archiver{store: store, bucket: bucket}
}

// NewArchiverFromEnv builds an archiver from EXPORT_BUCKET and AWS_REGION.
// Returns nil when no bucket is configured, meaning archival is disabled.
func NewArchiverFromEnv(ctx context.Context) (*Archiver, error) {
	bucket := os.Getenv("EXPORT_BUCKET")
	if bucket == "" {
		return nil, nil
	}
	s3, err := NewS3(ctx, S3Config{Region: os.Getenv("AWS_REGION")})
	if err != nil {
		return nil, err
	}
	return NewArchiver(s3, bucket), nil
}

// ArchiveExport stores one artifact and returns its object key. The filename's
// extension decides the content type.
func (a *Archiver) ArchiveExport(ctx context.Context, projectName, filename string, body io.Reader) (string, error) {
	key := fmt.Sprintf("exports/%s/%s", projectName, path.Base(filename))
	if err := a.store.Put(ctx, a.bucket, key, body, contentTypeFor(filename)); err != nil {
		return "", fmt.Errorf("archive %s: %w", key, err)
	}
	return key, nil
}

func contentTypeFor(filename string) string {
	switch strings.ToLower(path.Ext(filename)) {
	case ".mp4":
		return "video/mp4"
	case ".mp3":
		return "audio/mpeg"
	case ".srt":
		return "application/x-subrip"
	default:
		return "application/octet-stream"
	}
}
