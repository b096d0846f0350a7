package catalog

import (
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/svg"
)

const svgMimeType = "image/svg+xml"

var minifier = minify.New()

func init() {
	minifier.AddFunc(svgMimeType, svg.Minify)
}

// MinifySVG shrinks already sanitized markup.
func MinifySVG(markup string) (string, error) {
	return minifier.String(svgMimeType, markup)
}
