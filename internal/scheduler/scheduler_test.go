package scheduler_test

import (
	"context"
	"strings"
	"sync"
	"testing"
	"testing/fstest"
	"time"

	"github.com/rohmanhakim/richtext-icons/internal/cache"
	"github.com/rohmanhakim/richtext-icons/internal/config"
	"github.com/rohmanhakim/richtext-icons/internal/metadata"
	"github.com/rohmanhakim/richtext-icons/internal/scheduler"
	"github.com/rohmanhakim/richtext-icons/internal/storage"
	"github.com/rohmanhakim/richtext-icons/pkg/failure"
	"github.com/rohmanhakim/richtext-icons/pkg/hashutil"
	"github.com/rohmanhakim/richtext-icons/pkg/retry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// storageSinkMock is a testify mock for storage.Sink
type storageSinkMock struct {
	mock.Mock
}

func (m *storageSinkMock) WriteStylesheet(
	outputDir string,
	name string,
	css []byte,
	hashAlgo hashutil.HashAlgo,
) (storage.WriteResult, failure.ClassifiedError) {
	args := m.Called(outputDir, name, css, hashAlgo)
	return args.Get(0).(storage.WriteResult), classified(args.Get(1))
}

func (m *storageSinkMock) WritePreview(
	outputDir string,
	name string,
	html []byte,
	hashAlgo hashutil.HashAlgo,
) (storage.WriteResult, failure.ClassifiedError) {
	args := m.Called(outputDir, name, html, hashAlgo)
	return args.Get(0).(storage.WriteResult), classified(args.Get(1))
}

func classified(v any) failure.ClassifiedError {
	if v == nil {
		return nil
	}
	return v.(failure.ClassifiedError)
}

// finalizerMock records every RecordFinalStats call.
type finalizerMock struct {
	mu    sync.Mutex
	stats [][2]int
}

func (f *finalizerMock) RecordFinalStats(totalIcons int, totalRejected int, duration time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stats = append(f.stats, [2]int{totalIcons, totalRejected})
}

func iconFS() fstest.MapFS {
	return fstest.MapFS{
		"arrow.svg":  {Data: []byte(`<svg viewBox="0 0 2 1"><path d="M0 0"/></svg>`)},
		"star.svg":   {Data: []byte(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 1 1"><path d="M1 1"/></svg>`)},
		"broken.svg": {Data: []byte(`<svg><path`)},
	}
}

func newConfig(t *testing.T, edit func(c *config.Config)) config.Config {
	t.Helper()
	builder := config.WithDefault("icons").WithOutputDir("out")
	if edit != nil {
		edit(builder)
	}
	cfg, err := builder.Build()
	require.NoError(t, err)
	return cfg
}

func fastRetry() retry.RetryParam {
	return retry.NewRetryParam(3, time.Millisecond, 2.0, 2*time.Millisecond)
}

func newScheduler(cfg config.Config, sink storage.Sink, finalizer *finalizerMock) scheduler.Scheduler {
	return scheduler.NewSchedulerWithDeps(
		cfg,
		iconFS(),
		cache.NewMemoryCache(),
		finalizer,
		&metadata.NoopSink{},
		sink,
		fastRetry(),
	)
}

func TestExecuteStylesheet_WritesThroughSink(t *testing.T) {
	cfg := newConfig(t, nil)
	sink := &storageSinkMock{}
	sink.On("WriteStylesheet", "out", "icons", mock.Anything, hashutil.HashAlgoSHA256).
		Return(storage.NewWriteResult("out/icons.css", "abc123", false), nil).Once()
	finalizer := &finalizerMock{}

	s := newScheduler(cfg, sink, finalizer)
	execution, err := s.ExecuteStylesheet(context.Background())

	require.NoError(t, err)
	require.NotNil(t, execution.WriteResult)
	assert.Equal(t, "out/icons.css", execution.WriteResult.Path())
	assert.Contains(t, string(execution.Content), "i.icon.arrow")
	assert.Contains(t, string(execution.Content), "i.icon.star")
	assert.Len(t, execution.Catalog.Icons, 2)
	require.Len(t, execution.Catalog.Rejected, 1)
	assert.Equal(t, "broken.svg", execution.Catalog.Rejected[0].File)
	assert.Equal(t, [][2]int{{2, 1}}, finalizer.stats)

	written := sink.Calls[0].Arguments.Get(2).([]byte)
	assert.Equal(t, execution.Content, written)
	sink.AssertExpectations(t)
}

func TestExecuteStylesheet_RetriesRetryableStorageError(t *testing.T) {
	cfg := newConfig(t, nil)
	sink := &storageSinkMock{}
	sink.On("WriteStylesheet", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(storage.WriteResult{}, &storage.StorageError{
			Message:   "no space left on device",
			Retryable: true,
			Cause:     storage.ErrCauseDiskFull,
			Path:      "out/icons.css",
		}).Once()
	sink.On("WriteStylesheet", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(storage.NewWriteResult("out/icons.css", "abc123", false), nil).Once()

	s := newScheduler(cfg, sink, &finalizerMock{})
	execution, err := s.ExecuteStylesheet(context.Background())

	require.NoError(t, err)
	require.NotNil(t, execution.WriteResult)
	sink.AssertNumberOfCalls(t, "WriteStylesheet", 2)
}

func TestExecuteStylesheet_FatalStorageErrorIsNotRetried(t *testing.T) {
	cfg := newConfig(t, nil)
	fatal := &storage.StorageError{
		Message:   "file name must be a single path element",
		Retryable: false,
		Cause:     storage.ErrCauseInvalidName,
	}
	sink := &storageSinkMock{}
	sink.On("WriteStylesheet", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(storage.WriteResult{}, fatal)
	finalizer := &finalizerMock{}

	s := newScheduler(cfg, sink, finalizer)
	execution, err := s.ExecuteStylesheet(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, fatal)
	assert.Nil(t, execution.WriteResult)
	sink.AssertNumberOfCalls(t, "WriteStylesheet", 1)
	assert.Len(t, finalizer.stats, 1)
}

func TestExecuteStylesheet_ExhaustedRetries(t *testing.T) {
	cfg := newConfig(t, nil)
	sink := &storageSinkMock{}
	sink.On("WriteStylesheet", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(storage.WriteResult{}, &storage.StorageError{
			Message:   "no space left on device",
			Retryable: true,
			Cause:     storage.ErrCauseDiskFull,
		})

	s := newScheduler(cfg, sink, &finalizerMock{})
	_, err := s.ExecuteStylesheet(context.Background())

	var retryErr *retry.RetryError
	require.ErrorAs(t, err, &retryErr)
	assert.Equal(t, retry.ErrCauseExhaustedAttempts, retryErr.Cause)
	sink.AssertNumberOfCalls(t, "WriteStylesheet", 3)
}

func TestExecuteStylesheet_DryRunSkipsStorage(t *testing.T) {
	cfg := newConfig(t, func(c *config.Config) { c.WithDryRun(true) })
	sink := &storageSinkMock{}

	s := newScheduler(cfg, sink, &finalizerMock{})
	execution, err := s.ExecuteStylesheet(context.Background())

	require.NoError(t, err)
	assert.Nil(t, execution.WriteResult)
	assert.NotEmpty(t, execution.Content)
	sink.AssertNotCalled(t, "WriteStylesheet", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestExecuteStylesheet_InlineSVGLoadsNoIcons(t *testing.T) {
	cfg := newConfig(t, func(c *config.Config) {
		c.WithTechnology("inline-svg").WithDryRun(true)
	})
	finalizer := &finalizerMock{}

	s := newScheduler(cfg, &storageSinkMock{}, finalizer)
	execution, err := s.ExecuteStylesheet(context.Background())

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(execution.Content), "svg.icon {"))
	assert.Empty(t, execution.Catalog.Icons)
	assert.Empty(t, execution.Catalog.Rejected)
	assert.Equal(t, [][2]int{{0, 0}}, finalizer.stats)
}

func TestExecuteStylesheet_Minify(t *testing.T) {
	plainCfg := newConfig(t, func(c *config.Config) { c.WithDryRun(true) })
	minCfg := newConfig(t, func(c *config.Config) { c.WithDryRun(true).WithMinify(true) })

	plainScheduler := newScheduler(plainCfg, &storageSinkMock{}, &finalizerMock{})
	plain, err := plainScheduler.ExecuteStylesheet(context.Background())
	require.NoError(t, err)

	minScheduler := newScheduler(minCfg, &storageSinkMock{}, &finalizerMock{})
	minified, err := minScheduler.ExecuteStylesheet(context.Background())
	require.NoError(t, err)

	assert.Less(t, len(minified.Content), len(plain.Content))
	assert.NotContains(t, string(minified.Content), "\n    ")
}

func TestExecutePreview(t *testing.T) {
	cfg := newConfig(t, nil)
	sink := &storageSinkMock{}
	sink.On("WritePreview", "out", "icons-preview", mock.Anything, hashutil.HashAlgoSHA256).
		Return(storage.NewWriteResult("out/icons-preview.html", "def456", false), nil).Once()

	s := newScheduler(cfg, sink, &finalizerMock{})
	execution, err := s.ExecutePreview(context.Background(), "Icons")

	require.NoError(t, err)
	require.NotNil(t, execution.WriteResult)
	assert.Equal(t, "out/icons-preview.html", execution.WriteResult.Path())
	assert.Contains(t, string(execution.Content), "<title>Icons</title>")
	assert.Len(t, execution.Catalog.Icons, 2)
	sink.AssertExpectations(t)
}

func TestExecutePreview_CancelledContext(t *testing.T) {
	cfg := newConfig(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := newScheduler(cfg, &storageSinkMock{}, &finalizerMock{})
	_, err := s.ExecutePreview(ctx, "Icons")

	assert.ErrorIs(t, err, context.Canceled)
}
