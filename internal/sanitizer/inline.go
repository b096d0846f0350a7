package sanitizer

import (
	"regexp"
	"strings"
)

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	svgOpenTag    = regexp.MustCompile(`(?i)<svg\b[^>]*>`)
	sizeAttr      = regexp.MustCompile(`\s(?:width|height)=(?:"[^"]*"|'[^']*')`)
)

// CleanForInlineDisplay prepares sanitized markup for display at a size
// chosen by the surrounding CSS. Whitespace runs collapse to one space and
// width and height are removed from the first <svg> tag only; nested
// elements keep theirs.
//
// It is not a security filter. Only pass output of Sanitize.
func CleanForInlineDisplay(svg string) string {
	svg = strings.TrimSpace(whitespaceRun.ReplaceAllString(svg, " "))
	loc := svgOpenTag.FindStringIndex(svg)
	if loc == nil {
		return svg
	}
	tag := sizeAttr.ReplaceAllString(svg[loc[0]:loc[1]], "")
	return svg[:loc[0]] + tag + svg[loc[1]:]
}
