package render

import (
	"github.com/tdewolff/minify/v2"
	mincss "github.com/tdewolff/minify/v2/css"
)

const cssMimeType = "text/css"

var minifier = minify.New()

func init() {
	minifier.AddFunc(cssMimeType, mincss.Minify)
}

// Minify compacts a generated stylesheet. Custom properties and data URIs
// pass through unchanged.
func Minify(css string) (string, error) {
	return minifier.String(cssMimeType, css)
}
