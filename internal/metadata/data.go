package metadata

import (
	"time"
)

type IconEvent struct {
	name       string
	sourceFile string
	bytes      int
	duration   time.Duration
}

/*
runStats
  - Represents a terminal, derived summary of a completed catalog run
  - Contains only aggregate counts and durations
  - Is computed by the caller after every icon has been loaded
  - Is recorded exactly once per run
  - Must not influence which icons are rendered
*/
type runStats struct {
	totalIcons    int
	totalRejected int
	durationMs    int64
}

/*
	ErrorCause is a closed, canonical classification used exclusively for
	observability (logging, reporting).

	Rules:
	 - ErrorCause MUST NOT influence control flow.
	 - ErrorCause MUST NOT be used to decide whether an icon is skipped,
	   retried, or whether a run aborts.
	 - ErrorCause values MUST have stable, package-agnostic semantics.
	 - Packages MAY map their local errors to ErrorCause,
	   but MUST NOT invent new meanings.
	Non-goals:
	 - ErrorCause does not encode severity.
	 - ErrorCause does not imply retryability.

If a failure does not clearly match a defined cause, CauseUnknown MUST be used.
*/
type ErrorCause int

/*
Canonical ErrorCause Table

# CauseUnknown

Meaning:
  - The failure does not map cleanly to any known category.

# CausePolicyDisallow

Meaning:
  - Input was refused by an explicit rule before it was processed.

Examples:
  - A binary image uploaded where an SVG was expected
  - An icon name that escapes the icon directory

# CauseContentInvalid

Meaning:
  - Input was read but could not be processed meaningfully.

Examples:
  - Empty SVG file
  - Malformed XML
  - Root element other than <svg>

# CauseStorageFailure

Meaning:
  - Failure while persisting generated artifacts.

Examples:
  - Disk full
  - Write permission errors

# CauseInvariantViolation

Meaning:
  - A system-level invariant was violated.

Examples:
  - Two icon files mapping to the same class name
*/
const (
	CauseUnknown ErrorCause = iota
	CausePolicyDisallow
	CauseContentInvalid
	CauseStorageFailure
	CauseInvariantViolation
)

func (c ErrorCause) String() string {
	switch c {
	case CausePolicyDisallow:
		return "policy_disallow"
	case CauseContentInvalid:
		return "content_invalid"
	case CauseStorageFailure:
		return "storage_failure"
	case CauseInvariantViolation:
		return "invariant_violation"
	default:
		return "unknown"
	}
}

type ErrorRecord struct {
	packageName string
	action      string
	cause       ErrorCause
	errorString string
	observedAt  time.Time
	attrs       []Attribute
}

type Attribute struct {
	Key   AttributeKey
	Value string
}

func NewAttr(key AttributeKey, val string) Attribute {
	return Attribute{
		Key:   key,
		Value: val,
	}
}

type AttributeKey string

const (
	AttrIcon       AttributeKey = "icon"
	AttrFile       AttributeKey = "file"
	AttrPath       AttributeKey = "path"
	AttrField      AttributeKey = "field"
	AttrWritePath  AttributeKey = "write_path"
	AttrHash       AttributeKey = "hash"
	AttrTechnology AttributeKey = "technology"
	AttrBytes      AttributeKey = "bytes"
)

type ArtifactKind string

const (
	ArtifactStylesheet ArtifactKind = "stylesheet"
	ArtifactPreview    ArtifactKind = "preview"
	ArtifactHTML       ArtifactKind = "html"
)
