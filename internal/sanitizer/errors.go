package sanitizer

import (
	"fmt"

	"github.com/rohmanhakim/richtext-icons/internal/metadata"
	"github.com/rohmanhakim/richtext-icons/pkg/failure"
)

type SanitizationErrorCause string

const (
	ErrCauseEmptyInput  SanitizationErrorCause = "empty input"
	ErrCauseParseError  SanitizationErrorCause = "parse error"
	ErrCauseInvalidRoot SanitizationErrorCause = "invalid root"
)

// SanitizationError reports why no SVG was produced. A malformed file stays
// malformed, so it is never retryable.
type SanitizationError struct {
	Message   string
	Retryable bool
	Cause     SanitizationErrorCause
}

func (e *SanitizationError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("sanitization error: %s", e.Cause)
	}
	return fmt.Sprintf("sanitization error: %s: %s", e.Cause, e.Message)
}

func (e *SanitizationError) Severity() failure.Severity {
	if e.Retryable {
		return failure.SeverityRecoverable
	}
	return failure.SeverityFatal
}

// mapSanitizationErrorToMetadataCause maps sanitizer-local error semantics
// to the canonical metadata.ErrorCause table.
//
// This mapping is observational only and MUST NOT be used
// to derive control-flow decisions.
func mapSanitizationErrorToMetadataCause(err SanitizationError) metadata.ErrorCause {
	switch err.Cause {
	case ErrCauseEmptyInput, ErrCauseParseError, ErrCauseInvalidRoot:
		return metadata.CauseContentInvalid
	default:
		return metadata.CauseUnknown
	}
}
