// Package gcs implements the storage.Provider interface against Google
// Cloud Storage.
package gcs

import (
	"context"
	"fmt"
	"io"

	"cloud.google.com/go/storage"
	"github.com/bstardust/cloud-file-uploader/internal/logger"
	"github.com/bstardust/cloud-file-uploader/pkg/common"
	"google.golang.org/api/option"
)

// Chunk size for resumable writes, the minimum allowed part size.
const uploadChunkSize = 5 * 1024 * 1024

// Config holds the [gcs] section of the configuration file.
type Config struct {
	CredentialsPath string
	ProjectID       string
	Bucket          string
}

// Client uploads blobs to a GCS bucket.
type Client struct {
	client *storage.Client
	bucket *storage.BucketHandle
	config Config
}

// New creates a new GCS client authenticated with the configured
// service-account credentials file. Required keys are validated first.
// Bucket existence is not probed; a missing bucket surfaces per file.
func New(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.CredentialsPath == "" {
		return nil, common.NewMissingFieldError("gcs", "credentials_path")
	}
	if cfg.ProjectID == "" {
		return nil, common.NewMissingFieldError("gcs", "project_id")
	}
	if cfg.Bucket == "" {
		return nil, common.NewMissingFieldError("gcs", "bucket_name")
	}

	client, err := storage.NewClient(ctx, option.WithCredentialsFile(cfg.CredentialsPath))
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client: %w", err)
	}

	logger.Debug("GCS client ready for bucket %s (project %s)", cfg.Bucket, cfg.ProjectID)

	return &Client{
		client: client,
		bucket: client.Bucket(cfg.Bucket),
		config: cfg,
	}, nil
}

// Upload writes a single blob. An existing blob with the same key is
// overwritten.
func (c *Client) Upload(ctx context.Context, reader io.Reader, key string, size int64, metadata map[string]string, contentType string) error {
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	w := c.bucket.Object(key).NewWriter(ctx)
	w.ContentType = contentType
	w.Metadata = metadata
	w.ChunkSize = uploadChunkSize

	if _, err := io.Copy(w, reader); err != nil {
		w.Close()
		return fmt.Errorf("gcs upload of %s failed: %w", key, err)
	}

	// The write is committed on Close; upload errors surface here too.
	if err := w.Close(); err != nil {
		return fmt.Errorf("gcs upload of %s failed: %w", key, err)
	}

	logger.Debug("Uploaded %s to gs://%s (%d bytes)", key, c.config.Bucket, size)
	return nil
}

// Name returns the provider name.
func (c *Client) Name() string {
	return "gcs"
}

// Bucket returns the destination bucket name.
func (c *Client) Bucket() string {
	return c.config.Bucket
}

// Close releases the underlying client connection.
func (c *Client) Close() error {
	return c.client.Close()
}
