package objectstore

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rs/zerolog"
)

// Config contains connection details for the S3-compatible object store.
type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	UseSSL    bool
}

// Service stores documents in a MinIO bucket and mints short-lived
// presigned access URLs for them.
type Service struct {
	client *minio.Client
	bucket string
	logger zerolog.Logger
}

// New constructs an object store client and ensures the bucket exists.
func New(ctx context.Context, cfg Config, logger zerolog.Logger) (*Service, error) {
	if cfg.Endpoint == "" || cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, fmt.Errorf("object store credentials must be provided")
	}
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("object store bucket must be provided")
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create object store client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{Region: cfg.Region}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return &Service{
		client: client,
		bucket: cfg.Bucket,
		logger: logger.With().Str("component", "objectstore").Logger(),
	}, nil
}

// Upload stores the document under a collision-resistant object key derived
// from a random token plus the original extension, and returns the key.
// Caller-supplied filenames are never trusted, so two uploads of the same
// name always produce distinct keys.
func (s *Service) Upload(ctx context.Context, name string, reader io.Reader, size int64) (string, error) {
	key := buildObjectKey(name)

	info, err := s.client.PutObject(ctx, s.bucket, key, reader, size, minio.PutObjectOptions{
		ContentType: "application/octet-stream",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload document: %w", err)
	}

	s.logger.Info().
		Str("key", info.Key).
		Int64("size", info.Size).
		Msg("document uploaded")

	return key, nil
}

// SignedURL mints a presigned GET URL for the stored object. Links expire
// after ttl, so callers mint a fresh one per view instead of caching.
func (s *Service) SignedURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	if key == "" {
		return "", fmt.Errorf("object key must not be empty")
	}

	url, err := s.client.PresignedGetObject(ctx, s.bucket, key, ttl, nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate signed url: %w", err)
	}

	return url.String(), nil
}

func buildObjectKey(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	now := time.Now()
	return fmt.Sprintf("%d/%02d/%s%s", now.Year(), now.Month(), uuid.NewString(), ext)
}
