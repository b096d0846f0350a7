package metadata

import (
	"context"
	"log/slog"
	"time"
)

/*
Metadata Collected
- Icon load timings and sizes
- Content hashes of written stylesheets
- Sanitizer rejections

Logging Goals
- Debuggable catalog behavior
- Post-run auditability
- Failure diagnostics

Allowed:
- Primitive values
- Timestamps
- File paths (as values)
- Hashes
- Durations
- Identifiers (icon names)

Metadata is write-only.
No component may read metadata to decide which icons are rendered.
*/

/*
Recorder writes structured events to a *slog.Logger.
It must not:
- perform I/O decisions
- affect control flow
Ordering guarantees:
- Events are recorded synchronously in the order they are received.
- Loaders working concurrently interleave freely; consumers MUST NOT
  assume total ordering across icons.
*/
type Recorder struct {
	logger *slog.Logger
}

// NewRecorder returns a Recorder logging to logger. A nil logger discards
// every event.
func NewRecorder(logger *slog.Logger) Recorder {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return Recorder{
		logger: logger,
	}
}

// RecordError logs a failure. Content and policy failures are caused by
// the input and go out at warn level; everything else at error level.
func (r *Recorder) RecordError(
	observedAt time.Time,
	packageName string,
	action string,
	cause ErrorCause,
	errorString string,
	attrs []Attribute,
) {
	record := ErrorRecord{
		packageName: packageName,
		action:      action,
		cause:       cause,
		errorString: errorString,
		observedAt:  observedAt,
		attrs:       attrs,
	}

	level := slog.LevelError
	if cause == CauseContentInvalid || cause == CausePolicyDisallow {
		level = slog.LevelWarn
	}

	logAttrs := []slog.Attr{
		slog.Time("observed_at", record.observedAt),
		slog.String("package", record.packageName),
		slog.String("action", record.action),
		slog.String("cause", record.cause.String()),
		slog.String("error", record.errorString),
	}
	logAttrs = append(logAttrs, toSlog(record.attrs)...)
	r.logger.LogAttrs(context.Background(), level, "operation failed", logAttrs...)
}

func (r *Recorder) RecordIcon(
	name string,
	sourceFile string,
	bytes int,
	duration time.Duration,
) {
	event := IconEvent{
		name:       name,
		sourceFile: sourceFile,
		bytes:      bytes,
		duration:   duration,
	}
	r.logger.LogAttrs(context.Background(), slog.LevelDebug, "icon loaded",
		slog.String(string(AttrIcon), event.name),
		slog.String(string(AttrFile), event.sourceFile),
		slog.Int(string(AttrBytes), event.bytes),
		slog.Duration("duration", event.duration),
	)
}

func (r *Recorder) RecordArtifact(kind ArtifactKind, path string, attrs []Attribute) {
	logAttrs := []slog.Attr{
		slog.String("kind", string(kind)),
		slog.String(string(AttrPath), path),
	}
	logAttrs = append(logAttrs, toSlog(attrs)...)
	r.logger.LogAttrs(context.Background(), slog.LevelInfo, "artifact written", logAttrs...)
}

/*
RecordFinalStats records a terminal, derived summary of a catalog run.

Contract:
  - MUST be called at most once per run, after loading finished.
  - The counts MUST be derived from the load result,
    not accumulated incrementally via the recorder.
*/
func (r *Recorder) RecordFinalStats(
	totalIcons int,
	totalRejected int,
	duration time.Duration,
) {
	stats := runStats{
		totalIcons:    totalIcons,
		totalRejected: totalRejected,
		durationMs:    duration.Milliseconds(),
	}

	r.logger.LogAttrs(context.Background(), slog.LevelInfo, "run finished",
		slog.Int("total_icons", stats.totalIcons),
		slog.Int("total_rejected", stats.totalRejected),
		slog.Int64("duration_ms", stats.durationMs),
	)
}

func toSlog(attrs []Attribute) []slog.Attr {
	out := make([]slog.Attr, 0, len(attrs))
	for _, a := range attrs {
		out = append(out, slog.String(string(a.Key), a.Value))
	}
	return out
}

type MetadataSink interface {
	RecordError(
		observedAt time.Time,
		packageName string,
		action string,
		cause ErrorCause,
		details string,
		attrs []Attribute,
	)

	RecordIcon(
		name string,
		sourceFile string,
		bytes int,
		duration time.Duration,
	)
	RecordArtifact(kind ArtifactKind, path string, attrs []Attribute)
}

type RunFinalizer interface {
	RecordFinalStats(
		totalIcons int,
		totalRejected int,
		duration time.Duration,
	)
}

var (
	_ MetadataSink = (*Recorder)(nil)
	_ RunFinalizer = (*Recorder)(nil)
	_ MetadataSink = (*NoopSink)(nil)
)

// NoopSink implements MetadataSink and does nothing.
// Callers and tests decide whether to inject a Recorder or a NoopSink.
type NoopSink struct{}

func (n *NoopSink) RecordError(
	observedAt time.Time,
	packageName string,
	action string,
	cause ErrorCause,
	errorString string,
	attrs []Attribute,
) {
}

func (n *NoopSink) RecordIcon(
	name string,
	sourceFile string,
	bytes int,
	duration time.Duration,
) {
}

func (n *NoopSink) RecordArtifact(kind ArtifactKind, path string, attrs []Attribute) {}
