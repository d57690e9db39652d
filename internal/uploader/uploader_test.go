package uploader

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/bstardust/cloud-file-uploader/internal/logger"
	"github.com/bstardust/cloud-file-uploader/internal/progress"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.SetOutput(io.Discard)
	os.Exit(m.Run())
}

// Mock provider
type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) Upload(ctx context.Context, reader io.Reader, key string, size int64, metadata map[string]string, contentType string) error {
	args := m.Called(ctx, reader, key, size, metadata, contentType)
	return args.Error(0)
}

func (m *MockProvider) Name() string {
	return "s3"
}

func (m *MockProvider) Bucket() string {
	return "test-bucket"
}

// recordingProvider keeps the last uploaded content per key.
type recordingProvider struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func newRecordingProvider() *recordingProvider {
	return &recordingProvider{objects: make(map[string][]byte)}
}

func (p *recordingProvider) Upload(ctx context.Context, reader io.Reader, key string, size int64, metadata map[string]string, contentType string) error {
	content, err := io.ReadAll(reader)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.objects[key] = content

	return nil
}

func (p *recordingProvider) Name() string   { return "gcs" }
func (p *recordingProvider) Bucket() string { return "test-bucket" }

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestRunContinuesPastFailures(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeFile(t, dir, "a.txt", "aaa"),
		writeFile(t, dir, "b.txt", "bbb"),
		writeFile(t, dir, "c.txt", "ccc"),
	}

	mockProvider := new(MockProvider)
	mockProvider.On("Upload", mock.Anything, mock.Anything, "a.txt", int64(3), mock.Anything, mock.Anything).
		Return(errors.New("access denied"))
	mockProvider.On("Upload", mock.Anything, mock.Anything, "b.txt", int64(3), mock.Anything, mock.Anything).
		Return(nil)
	mockProvider.On("Upload", mock.Anything, mock.Anything, "c.txt", int64(3), mock.Anything, mock.Anything).
		Return(nil)

	up := New(mockProvider, progress.New(), Options{Concurrency: 1, PreserveMetadata: true})
	results := up.Run(context.Background(), paths)

	require.Len(t, results, 3)

	assert.Equal(t, "a.txt", results[0].Key)
	assert.False(t, results[0].Ok())
	assert.Contains(t, results[0].Err.Error(), "access denied")

	assert.True(t, results[1].Ok())
	assert.True(t, results[2].Ok())

	mockProvider.AssertNumberOfCalls(t, "Upload", 3)
}

func TestRunKeyIsBaseName(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "report.csv", "x,y")

	mockProvider := new(MockProvider)
	mockProvider.On("Upload", mock.Anything, mock.Anything, "report.csv", int64(3), mock.Anything, "text/csv").
		Return(nil)

	up := New(mockProvider, progress.New(), Options{Concurrency: 1})
	results := up.Run(context.Background(), []string{path})

	require.Len(t, results, 1)
	assert.Equal(t, path, results[0].Path)
	assert.Equal(t, "report.csv", results[0].Key)

	mockProvider.AssertExpectations(t)
}

func TestRunOverwritesOnRerun(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.txt", "first")

	provider := newRecordingProvider()
	up := New(provider, progress.New(), Options{Concurrency: 1})

	up.Run(context.Background(), []string{path})
	require.Equal(t, []byte("first"), provider.objects["a.txt"])

	require.NoError(t, os.WriteFile(path, []byte("second"), 0o600))
	up.Run(context.Background(), []string{path})

	assert.Len(t, provider.objects, 1)
	assert.Equal(t, []byte("second"), provider.objects["a.txt"])
}

func TestRunDryRun(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.txt", "aaa")

	mockProvider := new(MockProvider)

	up := New(mockProvider, progress.New(), Options{Concurrency: 1, DryRun: true})
	results := up.Run(context.Background(), []string{path})

	require.Len(t, results, 1)
	assert.True(t, results[0].Ok())

	mockProvider.AssertNotCalled(t, "Upload",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRunMissingFile(t *testing.T) {
	mockProvider := new(MockProvider)

	up := New(mockProvider, progress.New(), Options{Concurrency: 1})
	results := up.Run(context.Background(), []string{filepath.Join(t.TempDir(), "gone.txt")})

	require.Len(t, results, 1)
	assert.False(t, results[0].Ok())

	mockProvider.AssertNotCalled(t, "Upload",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRunCanceledContext(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeFile(t, dir, "a.txt", "aaa"),
		writeFile(t, dir, "b.txt", "bbb"),
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	mockProvider := new(MockProvider)

	up := New(mockProvider, progress.New(), Options{Concurrency: 1})
	results := up.Run(ctx, paths)

	require.Len(t, results, 2)
	for _, res := range results {
		assert.False(t, res.Ok())
		assert.ErrorIs(t, res.Err, context.Canceled)
	}

	mockProvider.AssertNotCalled(t, "Upload",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRunPreserveMetadata(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.txt", "aaa")

	var captured map[string]string

	mockProvider := new(MockProvider)
	mockProvider.On("Upload", mock.Anything, mock.Anything, "a.txt", int64(3), mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			captured = args.Get(4).(map[string]string)
		}).
		Return(nil)

	up := New(mockProvider, progress.New(), Options{Concurrency: 1, PreserveMetadata: true})
	up.Run(context.Background(), []string{path})

	require.NotNil(t, captured)
	assert.Equal(t, "a.txt", captured["original-filename"])
	assert.NotEmpty(t, captured["modified-time"])
}
