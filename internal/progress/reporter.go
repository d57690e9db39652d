// internal/progress/reporter.go
package progress

import (
	"sync"
	"time"

	"github.com/bstardust/cloud-file-uploader/internal/logger"
	"github.com/bstardust/cloud-file-uploader/pkg/storage"
)

// Reporter prints one line per upload result and a final summary.
type Reporter struct {
	mu        sync.Mutex
	total     int
	uploaded  int
	failed    int
	startTime time.Time
}

// New creates a new progress reporter.
func New() *Reporter {
	return &Reporter{}
}

// Start initializes the reporter with the total number of selected files.
func (r *Reporter) Start(total int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.total = total
	r.uploaded = 0
	r.failed = 0
	r.startTime = time.Now()

	logger.Info("Uploading %d files", total)
}

// Record reports the outcome of one upload attempt.
func (r *Reporter) Record(res storage.UploadResult, provider, bucket string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if res.Ok() {
		r.uploaded++
		logger.Info("Uploaded %s to %s bucket %s as %s", res.Path, provider, bucket, res.Key)
		return
	}

	r.failed++
	logger.Error("Failed to upload %s to %s bucket %s: %v", res.Path, provider, bucket, res.Err)
}

// Finish prints the summary and returns the final counts.
func (r *Reporter) Finish() (uploaded, failed int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	duration := time.Since(r.startTime)

	logger.Info("Upload complete: %d uploaded, %d failed (of %d) in %s",
		r.uploaded, r.failed, r.total, duration.Round(time.Millisecond))

	return r.uploaded, r.failed
}
