package s3mock

import (
	"context"
	"time"

	"github.com/humanbelnik/flickswipe/internal/model"
)

// S3Storage stands in when no object storage is configured. Nothing is
// mirrored, so posters are served from the TMDB CDN.
type S3Storage struct{}

func New() *S3Storage {
	return &S3Storage{}
}

func (s *S3Storage) Save(ctx context.Context, obj *model.Poster, readyKey *string) (string, error) {
	return "", nil
}

func (s *S3Storage) Delete(ctx context.Context, readyKey string) error {
	return nil
}

func (s *S3Storage) GeneratePresignedURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	return "", nil
}
