package catalog_test

import (
	"sync"
	"time"

	"github.com/rohmanhakim/richtext-icons/internal/metadata"
	"github.com/rohmanhakim/richtext-icons/internal/sanitizer"
	"github.com/rohmanhakim/richtext-icons/pkg/failure"
)

// countingSanitizer wraps the real sanitizer and counts calls per file.
type countingSanitizer struct {
	mu    sync.Mutex
	calls map[string]int
	inner sanitizer.SVGSanitizer
}

func newCountingSanitizer() *countingSanitizer {
	return &countingSanitizer{
		calls: make(map[string]int),
		inner: sanitizer.NewSVGSanitizer(&metadata.NoopSink{}),
	}
}

func (c *countingSanitizer) Sanitize(sourceFile string, raw string) (sanitizer.SanitizedSVG, failure.ClassifiedError) {
	c.mu.Lock()
	c.calls[sourceFile]++
	c.mu.Unlock()
	return c.inner.Sanitize(sourceFile, raw)
}

func (c *countingSanitizer) total() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, v := range c.calls {
		n += v
	}
	return n
}

type errorRecord struct {
	Action string
	Cause  metadata.ErrorCause
	Attrs  []metadata.Attribute
}

// metadataSinkMock is safe for concurrent use, since the loader records
// from several goroutines.
type metadataSinkMock struct {
	mu           sync.Mutex
	errorRecords []errorRecord
	icons        []string
}

func (m *metadataSinkMock) RecordError(
	observedAt time.Time,
	packageName string,
	action string,
	cause metadata.ErrorCause,
	details string,
	attrs []metadata.Attribute,
) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errorRecords = append(m.errorRecords, errorRecord{Action: action, Cause: cause, Attrs: attrs})
}

func (m *metadataSinkMock) RecordIcon(name string, sourceFile string, bytes int, duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.icons = append(m.icons, name)
}

func (m *metadataSinkMock) RecordArtifact(kind metadata.ArtifactKind, path string, attrs []metadata.Attribute) {
}

func (m *metadataSinkMock) causes() []metadata.ErrorCause {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]metadata.ErrorCause, 0, len(m.errorRecords))
	for _, r := range m.errorRecords {
		out = append(out, r.Cause)
	}
	return out
}

const pngHeader = "\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"
