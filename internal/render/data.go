package render

import "strings"

const (
	DefaultPrefix          = "icon"
	DefaultWrapperSelector = ".wp-block"
)

// Technology selects where the mask is painted.
type Technology int

const (
	// MaskInline paints the mask on the <i> element itself.
	MaskInline Technology = iota
	// MaskBefore paints the mask on a ::before pseudo-element.
	MaskBefore
	// MaskAfter paints the mask on a ::after pseudo-element.
	MaskAfter
)

func (t Technology) String() string {
	switch t {
	case MaskBefore:
		return "mask-before"
	case MaskAfter:
		return "mask-after"
	default:
		return "mask-inline"
	}
}

func (t Technology) pseudo() string {
	switch t {
	case MaskBefore:
		return "before"
	case MaskAfter:
		return "after"
	default:
		return ""
	}
}

func (t Technology) usesPseudo() bool {
	return t.pseudo() != ""
}

// ParseTechnology maps a setting value to a Technology. The plugin setting
// names html-css, html-css-before, html-css-after and inline-svg are
// accepted next to the mask-* names. Anything else falls back to
// MaskInline.
func ParseTechnology(value string) Technology {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "html-css-before", "mask-before":
		return MaskBefore
	case "html-css-after", "mask-after":
		return MaskAfter
	default:
		return MaskInline
	}
}

// KnownTechnology reports whether value is one of the names
// ParseTechnology accepts.
func KnownTechnology(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "html-css", "html-css-before", "html-css-after", "inline-svg",
		"mask-inline", "mask-before", "mask-after":
		return true
	}
	return false
}

// IconDescriptor is one icon as handed to GenerateCSS. SVG must already be
// sanitized.
type IconDescriptor struct {
	ClassName   string
	SVG         string
	AspectRatio float64
}

type Renderer struct {
	prefix          string
	wrapperSelector string
}

// NewRenderer returns a Renderer for the given class prefix. An empty
// prefix selects DefaultPrefix.
func NewRenderer(prefix string) Renderer {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return Renderer{
		prefix:          prefix,
		wrapperSelector: DefaultWrapperSelector,
	}
}

// WithWrapperSelector returns a copy of r whose reset rule targets selector.
// An empty selector keeps the current one.
func (r Renderer) WithWrapperSelector(selector string) Renderer {
	if selector != "" {
		r.wrapperSelector = selector
	}
	return r
}

func (r Renderer) Prefix() string {
	return r.prefix
}
