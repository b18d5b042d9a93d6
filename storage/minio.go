package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/arvane/photodex/config"
)

// MinioStorage keeps image bytes in an S3-compatible bucket.
type MinioStorage struct {
	client     *minio.Client
	bucketName string
}

// NewMinioStorage creates a MinIO storage provider and ensures the bucket
// exists.
func NewMinioStorage(cfg *config.Config) (*MinioStorage, error) {
	client, err := minio.New(cfg.StorageMinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.StorageMinioAccessKey, cfg.StorageMinioSecretKey, ""),
		Secure: cfg.StorageMinioUseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize MinIO client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, cfg.StorageMinioBucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket '%s': %w", cfg.StorageMinioBucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.StorageMinioBucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket '%s': %w", cfg.StorageMinioBucket, err)
		}
	}

	return &MinioStorage{client: client, bucketName: cfg.StorageMinioBucket}, nil
}

func (s *MinioStorage) Save(ctx context.Context, fileName string, data []byte) (string, error) {
	_, err := s.client.PutObject(ctx, s.bucketName, fileName,
		bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{})
	if err != nil {
		return "", fmt.Errorf("failed to upload object '%s': %w", fileName, err)
	}
	return fmt.Sprintf("minio://%s/%s", s.bucketName, fileName), nil
}

func (s *MinioStorage) Delete(ctx context.Context, path string) error {
	object := s.objectName(path)
	if err := s.client.RemoveObject(ctx, s.bucketName, object, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete object '%s': %w", object, err)
	}
	return nil
}

func (s *MinioStorage) Exists(ctx context.Context, path string) (bool, error) {
	object := s.objectName(path)
	_, err := s.client.StatObject(ctx, s.bucketName, object, minio.StatObjectOptions{})
	if err != nil {
		if resp := minio.ToErrorResponse(err); resp.Code == "NoSuchKey" {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *MinioStorage) Health(ctx context.Context) error {
	if _, err := s.client.BucketExists(ctx, s.bucketName); err != nil {
		return fmt.Errorf("minio unreachable: %w", err)
	}
	return nil
}

func (s *MinioStorage) Name() string {
	return "minio"
}

// objectName maps a stored path handle back to the bucket object key.
func (s *MinioStorage) objectName(path string) string {
	trimmed := strings.TrimPrefix(path, "minio://"+s.bucketName+"/")
	return strings.TrimPrefix(trimmed, "/")
}
