package storage

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/clipstream/clipstream/internal/logger"
	"github.com/clipstream/clipstream/internal/models"
)

// S3API is the subset of the S3 client used by the asset store.
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// NewClient builds an S3 client for the media bucket. Endpoint is
// overridable so a MinIO deployment works the same as AWS.
func NewClient(ctx context.Context, region, endpoint, accessKey, secretKey string) (*s3.Client, error) {
	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(accessKey, secretKey, "")),
	)
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})

	return client, nil
}

// AssetStore uploads and deletes media assets in an S3 bucket.
type AssetStore struct {
	client  S3API
	bucket  string
	baseURL string // public URL prefix for uploaded objects
}

// NewAssetStore creates an AssetStore for the given bucket.
func NewAssetStore(client S3API, bucket, baseURL string) *AssetStore {
	return &AssetStore{
		client:  client,
		bucket:  bucket,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// storageKey returns a date-partitioned random object key that keeps
// the original file extension.
func storageKey(localPath string) string {
	d := time.Now()
	return fmt.Sprintf("uploads/%d/%02d/%02d/%v%s", d.Year(), d.Month(), d.Day(), uuid.New(), filepath.Ext(localPath))
}

// Upload sends the staged local file to the bucket and returns the
// resulting asset reference. The local temp file is removed after a
// terminal attempt, whether the upload succeeded or not. Failures are
// returned as values, never panics.
func (s *AssetStore) Upload(ctx context.Context, localPath string) (*models.Asset, error) {
	if localPath == "" {
		return nil, fmt.Errorf("no local file to upload")
	}

	f, err := os.Open(localPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	defer func() {
		if err := os.Remove(localPath); err != nil {
			logger.Log.Warnw("failed to remove temp upload", "path", localPath, "error", err)
		}
	}()

	key := storageKey(localPath)
	contentType := mime.TypeByExtension(filepath.Ext(localPath))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        f,
		ContentType: aws.String(contentType),
	})

	logger.Log.Infow("asset upload",
		"bucket", s.bucket,
		"key", key,
		"content_type", contentType,
		"error", err,
	)

	if err != nil {
		return nil, err
	}

	return &models.Asset{
		URL: s.baseURL + "/" + key,
		Key: key,
	}, nil
}

// Delete removes an object from the bucket by its storage key.
func (s *AssetStore) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})

	logger.Log.Infow("asset delete",
		"bucket", s.bucket,
		"key", key,
		"error", err,
	)

	return err
}
