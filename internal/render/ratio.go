package render

import (
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/rohmanhakim/richtext-icons/internal/svgdoc"
)

// AspectRatio returns width/height of the root <svg>. The viewBox is
// preferred; width and height attributes (optionally in px) are used when
// it is missing or unusable. Anything else yields 1.
func AspectRatio(svg string) float64 {
	doc, err := svgdoc.ParseString(svg)
	if err != nil {
		return 1
	}
	root := doc.Root()

	if viewBox, ok := rootAttr(doc, root, "viewbox"); ok {
		fields := strings.FieldsFunc(viewBox, func(r rune) bool {
			return unicode.IsSpace(r) || r == ','
		})
		if len(fields) == 4 {
			if ratio, ok := divide(fields[2], fields[3]); ok {
				return ratio
			}
		}
	}

	width, _ := rootAttr(doc, root, "width")
	height, _ := rootAttr(doc, root, "height")
	if ratio, ok := divide(stripPx(width), stripPx(height)); ok {
		return ratio
	}
	return 1
}

// rootAttr finds an unprefixed attribute by case-insensitive name.
func rootAttr(doc *svgdoc.Document, id svgdoc.NodeID, name string) (string, bool) {
	for _, a := range doc.Attrs(id) {
		if a.Name.Prefix == "" && a.Name.LowerLocal() == name {
			return a.Value, true
		}
	}
	return "", false
}

func stripPx(v string) string {
	v = strings.TrimSpace(v)
	return strings.TrimSpace(strings.TrimSuffix(v, "px"))
}

func divide(w, h string) (float64, bool) {
	width, err := strconv.ParseFloat(strings.TrimSpace(w), 64)
	if err != nil {
		return 0, false
	}
	height, err := strconv.ParseFloat(strings.TrimSpace(h), 64)
	if err != nil {
		return 0, false
	}
	if width <= 0 || height <= 0 {
		return 0, false
	}
	ratio := width / height
	if math.IsNaN(ratio) || math.IsInf(ratio, 0) {
		return 0, false
	}
	return ratio, true
}
