package storage

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"github.com/geekplay/platform/internal/config"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MediaStore keeps uploaded images in a MinIO bucket. Object names carry a
// type prefix plus the owning entity id; the random UUID segment makes
// re-uploads non-destructive.
type MediaStore struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

// NewMediaStore connects to MinIO and ensures the bucket exists
func NewMediaStore(ctx context.Context, cfg config.StorageConfig) (*MediaStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return &MediaStore{
		client:    client,
		bucket:    cfg.Bucket,
		publicURL: strings.TrimSuffix(cfg.PublicURL, "/"),
	}, nil
}

// SaveProfileImage stores a user's profile image and returns its object path
func (s *MediaStore) SaveProfileImage(ctx context.Context, userID int64, filename string, size int64, content io.Reader) (string, error) {
	objectName := s.objectName("profiles", userID, filename)

	if err := s.put(ctx, objectName, filename, size, content); err != nil {
		return "", err
	}

	return objectName, nil
}

// SavePostImage stores a post image and returns its public URL
func (s *MediaStore) SavePostImage(ctx context.Context, postID int64, filename string, size int64, content io.Reader) (string, error) {
	objectName := s.objectName("posts", postID, filename)

	if err := s.put(ctx, objectName, filename, size, content); err != nil {
		return "", err
	}

	return fmt.Sprintf("%s/%s/%s", s.publicURL, s.bucket, objectName), nil
}

// DeleteObject removes a stored object by name
func (s *MediaStore) DeleteObject(ctx context.Context, objectName string) error {
	err := s.client.RemoveObject(ctx, s.bucket, objectName, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to delete object %s: %w", objectName, err)
	}
	return nil
}

func (s *MediaStore) objectName(prefix string, ownerID int64, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		ext = ".jpg"
	}

	now := time.Now()
	return fmt.Sprintf("%s/%d/%d/%02d/%s%s",
		prefix, ownerID, now.Year(), now.Month(), uuid.New().String(), ext)
}

func (s *MediaStore) put(ctx context.Context, objectName, filename string, size int64, content io.Reader) error {
	contentType := mime.TypeByExtension(strings.ToLower(filepath.Ext(filename)))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err := s.client.PutObject(ctx, s.bucket, objectName, content, size,
		minio.PutObjectOptions{
			ContentType: contentType,
			UserMetadata: map[string]string{
				"original-filename": filename,
				"uploaded-at":       time.Now().Format(time.RFC3339),
			},
		})
	if err != nil {
		return fmt.Errorf("failed to upload to minio: %w", err)
	}

	return nil
}
