package infra_s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/humanbelnik/flickswipe/internal/model"
)

var ErrBucketUnavailable = errors.New("bucket unavailable")

// S3Storage keeps mirrored posters under prefix/<movie id>/<file>.
type S3Storage struct {
	client  *s3.Client
	presign *s3.PresignClient

	prefix     string
	bucketName string
	logger     *slog.Logger
}

type Option func(*S3Storage)

func WithLogger(logger *slog.Logger) Option {
	return func(s *S3Storage) {
		s.logger = logger
	}
}

func New(ctx context.Context, bucketName string, client *s3.Client, prefix string, opts ...Option) (*S3Storage, error) {
	storage := &S3Storage{
		bucketName: bucketName,
		client:     client,
		presign:    s3.NewPresignClient(client),
		prefix:     prefix,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(storage)
	}

	_, err := storage.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(bucketName),
	})
	if err == nil {
		storage.logger.Info("bucket ready", slog.String("bucket", bucketName))
		return storage, nil
	}

	var apiError smithy.APIError
	if errors.As(err, &apiError) {
		var notFound *types.NotFound
		if errors.As(err, &notFound) {
			return nil, fmt.Errorf("%w: bucket %s does not exist", ErrBucketUnavailable, bucketName)
		}
		storage.logger.Error("bucket check failed",
			slog.String("bucket", bucketName),
			slog.String("code", apiError.ErrorCode()),
		)
	}
	return nil, errors.Join(ErrBucketUnavailable, err)
}

func (s *S3Storage) buildKey(paths ...string) string {
	var cleaned []string
	for _, p := range paths {
		clean := strings.ReplaceAll(p, "\\", "")
		clean = strings.ReplaceAll(clean, "/", "")
		if clean != "" {
			cleaned = append(cleaned, clean)
		}
	}
	return path.Join(cleaned...)
}

// Save writes the poster under a key derived from its movie, unless
// readyKey names one.
func (s *S3Storage) Save(ctx context.Context, obj *model.Poster, readyKey *string) (string, error) {
	var key string
	if readyKey == nil {
		key = s.buildKey(s.prefix, obj.GetParent(), obj.GetFilename())
	} else {
		key = *readyKey
	}
	if _, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &s.bucketName,
		Key:         &key,
		Body:        bytes.NewReader(obj.GetContent()),
		ContentType: aws.String(contentType(key)),
		ACL:         types.ObjectCannedACLPrivate,
	}); err != nil {
		return "", fmt.Errorf("failed to save object to S3: %w", err)
	}
	return key, nil
}

func (s *S3Storage) Delete(ctx context.Context, readyKey string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: &s.bucketName,
		Key:    &readyKey,
	})
	if err != nil {
		return fmt.Errorf("failed to delete object from S3: %w", err)
	}
	return nil
}

func (s *S3Storage) GeneratePresignedURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	req, err := s.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(ttl))
	if err != nil {
		return "", err
	}

	return req.URL, nil
}

func contentType(key string) string {
	switch strings.ToLower(path.Ext(key)) {
	case ".png":
		return "image/png"
	case ".webp":
		return "image/webp"
	default:
		return "image/jpeg"
	}
}
