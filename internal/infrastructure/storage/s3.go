package storage

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rs/zerolog/log"
)

const s3Prefix = "properties/"

// S3Store keeps listing images in an S3-compatible bucket (MinIO, AWS, etc.).
type S3Store struct {
	client *minio.Client
	bucket string
}

// S3Config carries the connection settings for NewS3Store.
type S3Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// NewS3Store connects to the object store and makes sure the bucket exists.
func NewS3Store(cfg S3Config) (*S3Store, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("s3 store: client for %s: %w", cfg.Endpoint, err)
	}
	if err := client.MakeBucket(context.Background(), cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
		exists, existsErr := client.BucketExists(context.Background(), cfg.Bucket)
		if existsErr != nil || !exists {
			return nil, fmt.Errorf("s3 store: make/verify bucket %s: %w", cfg.Bucket, err)
		}
	}
	log.Info().Str("endpoint", cfg.Endpoint).Str("bucket", cfg.Bucket).Msg("S3 asset store ready")
	return &S3Store{client: client, bucket: cfg.Bucket}, nil
}

// Store uploads the file under a fresh object key and returns its public URL.
func (s *S3Store) Store(ctx context.Context, file File) (string, error) {
	key := s3Prefix + objectName(file.Name)
	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(file.Data), int64(len(file.Data)), minio.PutObjectOptions{
		ContentType: http.DetectContentType(file.Data),
	})
	if err != nil {
		return "", fmt.Errorf("s3 store: put %s: %w", key, err)
	}
	return fmt.Sprintf("%s/%s/%s", s.client.EndpointURL().String(), s.bucket, key), nil
}

// Delete removes the object the URL points at. RemoveObject on a missing key
// already succeeds, which gives us idempotency for free.
func (s *S3Store) Delete(ctx context.Context, url string) error {
	key := s.objectKey(url)
	if key == "" {
		return nil
	}
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("s3 store: remove %s: %w", key, err)
	}
	return nil
}

// objectKey recovers the object key from a URL built by Store.
func (s *S3Store) objectKey(url string) string {
	marker := "/" + s.bucket + "/"
	if i := strings.Index(url, marker); i >= 0 {
		return url[i+len(marker):]
	}
	// Bare key (or path) passed directly.
	return strings.TrimPrefix(url, "/")
}
