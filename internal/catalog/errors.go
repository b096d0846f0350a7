package catalog

import (
	"fmt"

	"github.com/rohmanhakim/richtext-icons/internal/metadata"
	"github.com/rohmanhakim/richtext-icons/pkg/failure"
)

type CatalogErrorCause string

const (
	ErrCauseReadFailure   CatalogErrorCause = "read failed"
	ErrCauseBinaryImage   CatalogErrorCause = "binary file"
	ErrCauseInvalidName   CatalogErrorCause = "invalid icon name"
	ErrCauseDuplicateName CatalogErrorCause = "duplicate icon name"
)

type CatalogError struct {
	Message   string
	Retryable bool
	Cause     CatalogErrorCause
	File      string
}

func (e *CatalogError) Error() string {
	return fmt.Sprintf("catalog error: %s: %s: %s", e.Cause, e.File, e.Message)
}

func (e *CatalogError) Severity() failure.Severity {
	if e.Retryable {
		return failure.SeverityRecoverable
	}
	return failure.SeverityFatal
}

// mapCatalogErrorToMetadataCause maps catalog-local error semantics
// to the canonical metadata.ErrorCause table.
//
// This mapping is observational only and MUST NOT be used
// to derive control-flow decisions.
func mapCatalogErrorToMetadataCause(err *CatalogError) metadata.ErrorCause {
	switch err.Cause {
	case ErrCauseReadFailure:
		return metadata.CauseStorageFailure
	case ErrCauseBinaryImage, ErrCauseInvalidName:
		return metadata.CausePolicyDisallow
	case ErrCauseDuplicateName:
		return metadata.CauseInvariantViolation
	default:
		return metadata.CauseUnknown
	}
}
