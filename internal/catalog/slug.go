package catalog

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	nonSlugRun = regexp.MustCompile(`[^a-z0-9_-]+`)
	dashRun    = regexp.MustCompile(`-{2,}`)
)

// Slugify turns a file name stem into a class name: accents are folded,
// the result is lower-cased, and every run of characters outside
// [a-z0-9_-] becomes a single dash. Leading and trailing dashes are
// trimmed.
func Slugify(name string) string {
	fold := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(fold, name)
	if err != nil {
		folded = name
	}
	slug := nonSlugRun.ReplaceAllString(strings.ToLower(folded), "-")
	slug = dashRun.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}
