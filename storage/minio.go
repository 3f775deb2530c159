package storage

import (
	"context"
	"io"

	"github.com/formhub/formhub-go/config"
	"github.com/formhub/formhub-go/logging"
	minioSDK "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioStore keeps objects in a single bucket. Object names map
// directly to bucket keys.
type MinioStore struct {
	client *minioSDK.Client
	bucket string
}

func NewMinioStore() (*MinioStore, error) {
	client, err := minioSDK.New(config.MinioEndpoint, &minioSDK.Options{
		Creds:  credentials.NewStaticV4(config.MinioAccessKey, config.MinioSecretKey, ""),
		Secure: config.MinioUseSSL,
	})
	if err != nil {
		return nil, err
	}

	ctx := context.Background()
	exists, err := client.BucketExists(ctx, config.MinioBucket)
	if err != nil {
		return nil, err
	}
	if !exists {
		if err := client.MakeBucket(ctx, config.MinioBucket, minioSDK.MakeBucketOptions{}); err != nil {
			return nil, err
		}
		logging.Logger.Infof("Bucket created: %s", config.MinioBucket)
	}

	return &MinioStore{client: client, bucket: config.MinioBucket}, nil
}

func (s *MinioStore) Save(ctx context.Context, name string, contentType string, r io.Reader, size int64) (string, error) {
	_, err := s.client.PutObject(ctx, s.bucket, name, r, size, minioSDK.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", err
	}
	return name, nil
}

func (s *MinioStore) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	return s.client.GetObject(ctx, s.bucket, name, minioSDK.GetObjectOptions{})
}

func (s *MinioStore) Remove(ctx context.Context, name string) error {
	return s.client.RemoveObject(ctx, s.bucket, name, minioSDK.RemoveObjectOptions{})
}
