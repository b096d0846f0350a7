package sanitizer

import (
	"errors"
	"time"

	"github.com/rohmanhakim/richtext-icons/internal/metadata"
	"github.com/rohmanhakim/richtext-icons/pkg/failure"
)

// Sanitizer is the stage used by the catalog and the CLI.
type Sanitizer interface {
	// Sanitize cleans raw SVG read from sourceFile. sourceFile is only used
	// to label recorded failures.
	Sanitize(sourceFile string, raw string) (SanitizedSVG, failure.ClassifiedError)
}

var _ Sanitizer = (*SVGSanitizer)(nil)

type SVGSanitizer struct {
	metadataSink metadata.MetadataSink
}

func NewSVGSanitizer(metadataSink metadata.MetadataSink) SVGSanitizer {
	return SVGSanitizer{
		metadataSink: metadataSink,
	}
}

func (s *SVGSanitizer) Sanitize(sourceFile string, raw string) (SanitizedSVG, failure.ClassifiedError) {
	svg, err := Sanitize(raw)
	if err != nil {
		var sanitizationError *SanitizationError
		if !errors.As(err, &sanitizationError) {
			sanitizationError = &SanitizationError{Message: err.Error(), Cause: ErrCauseParseError}
		}
		s.metadataSink.RecordError(
			time.Now(),
			"sanitizer",
			"SVGSanitizer.Sanitize",
			mapSanitizationErrorToMetadataCause(*sanitizationError),
			sanitizationError.Error(),
			[]metadata.Attribute{
				metadata.NewAttr(metadata.AttrFile, sourceFile),
			},
		)
		return SanitizedSVG{}, sanitizationError
	}
	return svg, nil
}
