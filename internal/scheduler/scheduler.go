package scheduler

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/rohmanhakim/richtext-icons/internal/cache"
	"github.com/rohmanhakim/richtext-icons/internal/catalog"
	"github.com/rohmanhakim/richtext-icons/internal/config"
	"github.com/rohmanhakim/richtext-icons/internal/metadata"
	"github.com/rohmanhakim/richtext-icons/internal/preview"
	"github.com/rohmanhakim/richtext-icons/internal/render"
	"github.com/rohmanhakim/richtext-icons/internal/sanitizer"
	"github.com/rohmanhakim/richtext-icons/internal/storage"
	"github.com/rohmanhakim/richtext-icons/pkg/failure"
	"github.com/rohmanhakim/richtext-icons/pkg/hashutil"
	"github.com/rohmanhakim/richtext-icons/pkg/retry"
)

/*
 Scheduler is the control plane of a generation run.

 Stages (catalog, render, storage) detect and classify failures; only the
 scheduler decides whether to retry, continue or abort:
 - a rejected icon never aborts a run, it is reported in the execution
 - a failed minification falls back to the unminified stylesheet
 - retryable storage failures are retried with backoff, fatal ones abort

 Metadata emission is observational only and MUST NOT influence
 retries or run termination.

 The icon cache outlives a single run, so a watcher that reuses one
 Scheduler only re-sanitizes files whose content changed. Each load evicts
 the entries of edited or removed files, so the cache never holds more
 than one entry per icon.
*/

type Scheduler struct {
	cfg          config.Config
	iconFS       fs.FS
	iconCache    cache.Cache
	metadataSink metadata.MetadataSink
	runFinalizer metadata.RunFinalizer
	storageSink  storage.Sink
	retryParam   retry.RetryParam
}

// NewScheduler wires the production stages for cfg around one recorder.
func NewScheduler(cfg config.Config, recorder *metadata.Recorder) Scheduler {
	storageSink := storage.NewLocalSink(recorder)
	return Scheduler{
		cfg:          cfg,
		iconFS:       os.DirFS(cfg.IconDir()),
		iconCache:    cache.NewMemoryCache(),
		metadataSink: recorder,
		runFinalizer: recorder,
		storageSink:  &storageSink,
		retryParam:   retry.DefaultRetryParam(),
	}
}

// NewSchedulerWithDeps creates a Scheduler with injected dependencies for testing.
func NewSchedulerWithDeps(
	cfg config.Config,
	iconFS fs.FS,
	iconCache cache.Cache,
	runFinalizer metadata.RunFinalizer,
	metadataSink metadata.MetadataSink,
	storageSink storage.Sink,
	retryParam retry.RetryParam,
) Scheduler {
	return Scheduler{
		cfg:          cfg,
		iconFS:       iconFS,
		iconCache:    iconCache,
		metadataSink: metadataSink,
		runFinalizer: runFinalizer,
		storageSink:  storageSink,
		retryParam:   retryParam,
	}
}

// LoadCatalog sanitizes every icon of the configured directory.
func (s *Scheduler) LoadCatalog(ctx context.Context) (catalog.LoadResult, error) {
	svgSanitizer := sanitizer.NewSVGSanitizer(s.metadataSink)
	loader := catalog.NewLoader(&svgSanitizer, s.iconCache, s.metadataSink, catalog.LoaderParam{
		Concurrency: s.cfg.Concurrency(),
		Minify:      s.cfg.Minify(),
	})
	result, err := loader.Load(ctx, s.iconFS)
	if err != nil {
		return catalog.LoadResult{}, fmt.Errorf("loading icons from %s: %w", s.cfg.IconDir(), err)
	}
	return result, nil
}

// ExecuteStylesheet generates the stylesheet and writes it unless the run
// is dry. In inline-svg mode no icon is read and the stylesheet only sizes
// inline <svg> elements.
func (s *Scheduler) ExecuteStylesheet(ctx context.Context) (Execution, error) {
	start := time.Now()
	renderer := s.cfg.Renderer()

	var (
		css    string
		result catalog.LoadResult
	)
	if s.cfg.InlineSVG() {
		css = renderer.InlineSVGCSS()
	} else {
		var err error
		if result, err = s.LoadCatalog(ctx); err != nil {
			return Execution{}, err
		}
		css = renderer.GenerateCSS(result.Descriptors(), s.cfg.Technology())
	}

	if s.cfg.Minify() {
		css = s.minifyCSS(css)
	}

	execution, err := s.persist(ctx, []byte(css), result, s.storageSink.WriteStylesheet, s.cfg.StylesheetName())
	s.runFinalizer.RecordFinalStats(len(result.Icons), len(result.Rejected), time.Since(start))
	return execution, err
}

// ExecutePreview renders the preview page of the catalog and writes it as
// <stylesheetName>-preview.html unless the run is dry.
func (s *Scheduler) ExecutePreview(ctx context.Context, title string) (Execution, error) {
	start := time.Now()

	result, err := s.LoadCatalog(ctx)
	if err != nil {
		return Execution{}, err
	}
	page := preview.Build(title, s.cfg.Renderer(), result)

	execution, err := s.persist(ctx, page, result, s.storageSink.WritePreview, s.cfg.StylesheetName()+"-preview")
	s.runFinalizer.RecordFinalStats(len(result.Icons), len(result.Rejected), time.Since(start))
	return execution, err
}

type writeFunc func(
	outputDir string,
	name string,
	content []byte,
	hashAlgo hashutil.HashAlgo,
) (storage.WriteResult, failure.ClassifiedError)

func (s *Scheduler) persist(
	ctx context.Context,
	content []byte,
	result catalog.LoadResult,
	write writeFunc,
	name string,
) (Execution, error) {
	execution := Execution{
		Content: content,
		Catalog: result,
	}
	if s.cfg.DryRun() {
		return execution, nil
	}

	writeResult, err := retry.Retry(ctx, s.retryParam, func() (storage.WriteResult, failure.ClassifiedError) {
		return write(s.cfg.OutputDir(), name, content, s.cfg.HashAlgo())
	})
	if err != nil {
		return execution, err
	}
	execution.WriteResult = &writeResult
	return execution, nil
}

func (s *Scheduler) minifyCSS(css string) string {
	minified, err := render.Minify(css)
	if err != nil {
		s.metadataSink.RecordError(
			time.Now(),
			"scheduler",
			"Scheduler.ExecuteStylesheet",
			metadata.CauseUnknown,
			err.Error(),
			nil,
		)
		return css
	}
	return minified
}
