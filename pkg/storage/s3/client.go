// Package s3 implements the storage.Provider interface against any
// S3-compatible object store.
package s3

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/bstardust/cloud-file-uploader/internal/logger"
	"github.com/bstardust/cloud-file-uploader/pkg/common"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const defaultEndpoint = "s3.amazonaws.com"

// Config holds the [s3] section of the configuration file.
type Config struct {
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	Endpoint  string
}

// Client uploads objects to an S3 bucket.
type Client struct {
	client *minio.Client
	config Config
}

// New creates a new S3 client. Required keys are validated here, so a
// broken [s3] section fails before any file is touched. No network call is
// made; a missing bucket surfaces per file at upload time.
func New(cfg Config) (*Client, error) {
	if cfg.AccessKey == "" {
		return nil, common.NewMissingFieldError("s3", "access_key")
	}
	if cfg.SecretKey == "" {
		return nil, common.NewMissingFieldError("s3", "secret_key")
	}
	if cfg.Bucket == "" {
		return nil, common.NewMissingFieldError("s3", "bucket_name")
	}

	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = defaultEndpoint
	}

	// Plain-http endpoints are only used against local test stores.
	secure := !strings.HasPrefix(endpoint, "http://")
	endpoint = strings.TrimPrefix(endpoint, "https://")
	endpoint = strings.TrimPrefix(endpoint, "http://")

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: secure,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 client: %w", err)
	}

	logger.Debug("S3 client ready for bucket %s at %s", cfg.Bucket, endpoint)

	return &Client{
		client: client,
		config: cfg,
	}, nil
}

// Upload puts a single object. An existing object with the same key is
// overwritten.
func (c *Client) Upload(ctx context.Context, reader io.Reader, key string, size int64, metadata map[string]string, contentType string) error {
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	opts := minio.PutObjectOptions{
		ContentType:  contentType,
		UserMetadata: metadata,
	}

	info, err := c.client.PutObject(ctx, c.config.Bucket, key, reader, size, opts)
	if err != nil {
		return fmt.Errorf("s3 upload of %s failed: %w", key, err)
	}

	logger.Debug("Uploaded %s to s3://%s (%d bytes, etag: %s)", key, c.config.Bucket, info.Size, info.ETag)
	return nil
}

// Name returns the provider name.
func (c *Client) Name() string {
	return "s3"
}

// Bucket returns the destination bucket name.
func (c *Client) Bucket() string {
	return c.config.Bucket
}
