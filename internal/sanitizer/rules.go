package sanitizer

import "strings"

// All tag and attribute comparisons are made on lower-cased names.

var forbiddenTags = map[string]struct{}{
	"script":        {},
	"iframe":        {},
	"object":        {},
	"embed":         {},
	"link":          {},
	"style":         {},
	"foreignobject": {},
}

// editorNamespaces are prefixes written by drawing tools. They are matched
// exactly as written in the source.
var editorNamespaces = map[string]struct{}{
	"sodipodi": {},
	"inkscape": {},
	"dc":       {},
	"cc":       {},
	"rdf":      {},
	"xodm":     {},
}

var metadataTags = map[string]struct{}{
	"metadata": {},
	"title":    {},
	"desc":     {},
}

var forbiddenAttributes = map[string]struct{}{
	"onload":      {},
	"onclick":     {},
	"onmouseover": {},
	"onmouseout":  {},
	"onmousemove": {},
	"onfocus":     {},
	"onblur":      {},
	"onchange":    {},
	"oninput":     {},
	"onsubmit":    {},
	"onkeydown":   {},
	"onkeyup":     {},
	"onkeypress":  {},
	"onerror":     {},
	"onabort":     {},
	"onactivate":  {},
	"onbegin":     {},
	"onend":       {},
	"onrepeat":    {},
	"onzoom":      {},
	"formaction":  {},
	"href":        {},
}

// hrefOwners may carry a bare href into the external reference pass.
var hrefOwners = map[string]struct{}{
	"a":     {},
	"use":   {},
	"image": {},
}

// animationTags can rewrite an attribute after the document is loaded.
var animationTags = map[string]struct{}{
	"animate": {},
	"set":     {},
}

var unsafeSchemes = []string{"javascript:", "data:", "vbscript:"}

// isSafeHref reports whether value does not start with a script-capable
// scheme. Browsers ignore ASCII whitespace and control characters inside a
// scheme, so those are removed before comparing.
func isSafeHref(value string) bool {
	v := strings.ToLower(strings.TrimSpace(value))
	v = strings.Map(func(r rune) rune {
		if r <= 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, v)
	for _, scheme := range unsafeSchemes {
		if strings.HasPrefix(v, scheme) {
			return false
		}
	}
	return true
}

// isInternalRef reports whether an href stays inside the document.
func isInternalRef(value string) bool {
	v := strings.TrimSpace(value)
	return v == "" || strings.HasPrefix(v, "#")
}

func contains(set map[string]struct{}, key string) bool {
	_, ok := set[key]
	return ok
}
