// Package storage defines the capability interface a cloud storage backend
// must implement to receive uploads, and the per-file result record.
package storage

import (
	"context"
	"io"
)

// Provider is a single-object upload sink. Implementations authenticate at
// construction time; Upload performs one put with plain overwrite semantics
// and no retries.
type Provider interface {
	// Upload stores the content read from reader under key in the
	// provider's configured bucket.
	Upload(ctx context.Context, reader io.Reader, key string, size int64, metadata map[string]string, contentType string) error

	// Name returns the provider name ("s3" or "gcs"). Used in reporting.
	Name() string

	// Bucket returns the destination bucket name.
	Bucket() string
}

// UploadResult records the outcome of one upload attempt.
type UploadResult struct {
	Path string
	Key  string
	Err  error
}

// Ok reports whether the upload succeeded.
func (r UploadResult) Ok() bool {
	return r.Err == nil
}
