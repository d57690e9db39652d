// Package uploader dispatches selected files to a storage provider, one
// upload attempt per file.
package uploader

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/bstardust/cloud-file-uploader/internal/exif"
	"github.com/bstardust/cloud-file-uploader/internal/logger"
	"github.com/bstardust/cloud-file-uploader/internal/progress"
	"github.com/bstardust/cloud-file-uploader/internal/worker"
	"github.com/bstardust/cloud-file-uploader/pkg/storage"
)

// Options control the upload run.
type Options struct {
	// Concurrency is the worker pool size. 1 uploads sequentially.
	Concurrency int
	// DryRun logs what would be uploaded without performing any upload.
	DryRun bool
	// PreserveMetadata attaches file modtime, and EXIF capture data for
	// images, as object metadata.
	PreserveMetadata bool
}

// Uploader runs the upload dispatch loop for one provider.
type Uploader struct {
	provider storage.Provider
	reporter *progress.Reporter
	opts     Options
}

// New creates a new Uploader.
func New(provider storage.Provider, reporter *progress.Reporter, opts Options) *Uploader {
	return &Uploader{
		provider: provider,
		reporter: reporter,
		opts:     opts,
	}
}

// Run attempts each path exactly once and returns one result per path, in
// input order. A failed upload is recorded and does not stop the rest.
// Canceling ctx stops new attempts; unattempted files report the
// cancellation error.
func (u *Uploader) Run(ctx context.Context, paths []string) []storage.UploadResult {
	results := make([]storage.UploadResult, len(paths))
	pool := worker.NewPool(u.opts.Concurrency)

	u.reporter.Start(len(paths))

	for i, path := range paths {
		if err := ctx.Err(); err != nil {
			results[i] = storage.UploadResult{
				Path: path,
				Key:  filepath.Base(path),
				Err:  fmt.Errorf("upload canceled: %w", err),
			}
			u.reporter.Record(results[i], u.provider.Name(), u.provider.Bucket())
			continue
		}

		i, path := i, path
		pool.Submit(func() {
			results[i] = u.uploadOne(ctx, path)
			u.reporter.Record(results[i], u.provider.Name(), u.provider.Bucket())
		})
	}

	pool.Wait()

	return results
}

// uploadOne performs the single attempt for one file. The object key is
// the file's base name, so re-running overwrites the previous object.
func (u *Uploader) uploadOne(ctx context.Context, path string) storage.UploadResult {
	res := storage.UploadResult{
		Path: path,
		Key:  filepath.Base(path),
	}

	f, err := os.Open(path)
	if err != nil {
		res.Err = fmt.Errorf("failed to open file: %w", err)
		return res
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		res.Err = fmt.Errorf("failed to stat file: %w", err)
		return res
	}

	metadata := map[string]string{
		"original-filename": res.Key,
	}

	if u.opts.PreserveMetadata {
		metadata["modified-time"] = info.ModTime().UTC().Format(time.RFC3339)

		if storage.IsImageFile(path) {
			if data, err := exif.Extract(f); err == nil {
				for k, v := range data.ToMap() {
					metadata[k] = v
				}
			} else {
				logger.Debug("No EXIF metadata for %s: %v", path, err)
			}

			if _, err := f.Seek(0, io.SeekStart); err != nil {
				res.Err = fmt.Errorf("failed to rewind file: %w", err)
				return res
			}
		}
	}

	contentType := storage.DetectContentType(path)

	if u.opts.DryRun {
		logger.Info("DRY RUN: would upload %s (%d bytes, %s) to %s bucket %s",
			path, info.Size(), contentType, u.provider.Name(), u.provider.Bucket())
		return res
	}

	res.Err = u.provider.Upload(ctx, f, res.Key, info.Size(), metadata, contentType)

	return res
}
