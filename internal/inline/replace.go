/*
Responsibilities
- Find empty <i class="<prefix> ..."></i> placeholders in a page
- Swap each one for the inline SVG of its icon
- Leave every other byte of the page untouched

An icon name is the last class of the placeholder. Placeholders whose icon
is unknown stay as they are and are reported.
*/
package inline

import (
	"errors"
	"html"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/rohmanhakim/richtext-icons/internal/cache"
	"github.com/rohmanhakim/richtext-icons/internal/metadata"
	xhtml "golang.org/x/net/html"
)

const cacheKeyPrefix = "inline:"

// svgOpenTag matches an unprefixed <svg> root tag up to the character
// after its name.
var svgOpenTag = regexp.MustCompile(`(?i)^\s*<svg[\s/>]`)

type Replacer struct {
	prefix       string
	source       IconSource
	cache        cache.Cache
	metadataSink metadata.MetadataSink
}

func NewReplacer(
	prefix string,
	source IconSource,
	iconCache cache.Cache,
	metadataSink metadata.MetadataSink,
) Replacer {
	return Replacer{
		prefix:       prefix,
		source:       source,
		cache:        iconCache,
		metadataSink: metadataSink,
	}
}

// placeholder is an <i> start tag waiting for its end tag.
type placeholder struct {
	raw     strings.Builder
	classes string
	name    string
	extra   []xhtml.Attribute
}

func (r *Replacer) Replace(page string) (ReplaceResult, error) {
	var (
		out     strings.Builder
		result  ReplaceResult
		pending *placeholder
		seen    = make(map[string]bool)
	)
	out.Grow(len(page))

	flush := func() {
		if pending != nil {
			out.WriteString(pending.raw.String())
			pending = nil
		}
	}

	z := xhtml.NewTokenizer(strings.NewReader(page))
	for {
		tt := z.Next()
		// Raw is copied first: reading the tag name lower-cases the buffer.
		raw := string(z.Raw())

		if tt == xhtml.ErrorToken {
			flush()
			out.WriteString(raw)
			if err := z.Err(); !errors.Is(err, io.EOF) {
				return ReplaceResult{}, err
			}
			break
		}

		if pending != nil {
			switch {
			case tt == xhtml.TextToken && strings.TrimSpace(raw) == "":
				pending.raw.WriteString(raw)
				continue
			case tt == xhtml.EndTagToken && tagName(z) == "i":
				if svg, ok := r.lookup(pending.name); ok {
					out.WriteString(r.inject(svg, pending))
					result.Replaced++
				} else {
					pending.raw.WriteString(raw)
					r.reportMissing(pending.name, seen, &result)
				}
				flush()
				continue
			default:
				flush()
			}
		}

		if tt == xhtml.StartTagToken {
			if p := r.match(z); p != nil {
				p.raw.WriteString(raw)
				pending = p
				continue
			}
		}
		out.WriteString(raw)
	}

	result.HTML = out.String()
	return result, nil
}

func tagName(z *xhtml.Tokenizer) string {
	name, _ := z.TagName()
	return string(name)
}

// match returns a placeholder when the current start tag is an <i> whose
// class attribute starts with the prefix and names at least one class.
func (r *Replacer) match(z *xhtml.Tokenizer) *placeholder {
	name, hasAttr := z.TagName()
	if string(name) != "i" || !hasAttr {
		return nil
	}

	var (
		class    string
		hasClass bool
		extra    []xhtml.Attribute
	)
	for more := true; more; {
		var key, val []byte
		key, val, more = z.TagAttr()
		switch k := string(key); k {
		case "class":
			if !hasClass {
				class, hasClass = string(val), true
			}
		case "aria-hidden":
		default:
			extra = append(extra, xhtml.Attribute{Key: k, Val: string(val)})
		}
	}

	rest, ok := strings.CutPrefix(class, r.prefix+" ")
	if !hasClass || !ok {
		return nil
	}
	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return nil
	}
	return &placeholder{
		classes: rest,
		name:    fields[len(fields)-1],
		extra:   extra,
	}
}

// lookup consults the cache before the source. Unknown icons are cached as
// an empty value.
func (r *Replacer) lookup(name string) (string, bool) {
	key := cacheKeyPrefix + name
	if svg, ok := r.cache.Get(key); ok {
		return svg, svg != ""
	}
	svg, ok := r.source.Lookup(name)
	if !ok || !svgOpenTag.MatchString(svg) {
		r.cache.Put(key, "")
		return "", false
	}
	r.cache.Put(key, svg)
	return svg, true
}

// inject writes the placeholder's class and attributes right after the
// name of the root <svg> tag.
func (r *Replacer) inject(svg string, p *placeholder) string {
	at := svgOpenTag.FindStringIndex(svg)[1] - 1

	var attrs strings.Builder
	attrs.WriteString(` class="`)
	attrs.WriteString(html.EscapeString(r.prefix + " " + p.classes))
	attrs.WriteString(`" aria-hidden="true"`)
	for _, a := range p.extra {
		attrs.WriteByte(' ')
		attrs.WriteString(a.Key)
		attrs.WriteString(`="`)
		attrs.WriteString(html.EscapeString(a.Val))
		attrs.WriteByte('"')
	}

	return svg[:at] + attrs.String() + svg[at:]
}

func (r *Replacer) reportMissing(name string, seen map[string]bool, result *ReplaceResult) {
	if seen[name] {
		return
	}
	seen[name] = true

	suggestion := Suggest(name, r.source.Names())
	result.Missing = append(result.Missing, Missing{Name: name, Suggestion: suggestion})

	details := "unknown icon " + name
	if suggestion != "" {
		details += ", did you mean " + suggestion + "?"
	}
	r.metadataSink.RecordError(
		time.Now(),
		"inline",
		"Replacer.Replace",
		metadata.CauseContentInvalid,
		details,
		[]metadata.Attribute{
			metadata.NewAttr(metadata.AttrIcon, name),
		},
	)
}
