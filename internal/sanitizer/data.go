package sanitizer

// SanitizedSVG holds markup that has passed Sanitize. The zero value is
// returned alongside every sanitization error.
type SanitizedSVG struct {
	svg string
}

func (s SanitizedSVG) SVG() string {
	return s.svg
}

func (s SanitizedSVG) IsZero() bool {
	return s.svg == ""
}

// NewSanitizedSVG wraps markup that is already known to be sanitized,
// such as a cached result. The field remains private to keep the value
// immutable.
func NewSanitizedSVG(svg string) SanitizedSVG {
	return SanitizedSVG{
		svg: svg,
	}
}
