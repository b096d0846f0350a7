/*
Responsibilities
- Describe an icon catalog as Markdown
- Render that Markdown to a standalone HTML page

Icons are shown as inline <svg> elements sized by the renderer's inline
CSS, next to the class a page author has to type.
*/
package preview

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/rohmanhakim/richtext-icons/internal/catalog"
	"github.com/rohmanhakim/richtext-icons/internal/render"
	"github.com/rohmanhakim/richtext-icons/internal/sanitizer"
)

const DefaultTitle = "Icon preview"

var svgOpenTag = regexp.MustCompile(`(?i)^\s*<svg[\s/>]`)

// Markdown lists every icon of result in catalog order, followed by the
// rejected files.
func Markdown(title string, renderer render.Renderer, result catalog.LoadResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", title)
	b.WriteString("<style>\n")
	b.WriteString(renderer.InlineSVGCSS())
	b.WriteString("</style>\n\n")

	if len(result.Icons) == 0 {
		b.WriteString("No icons found.\n")
	} else {
		fmt.Fprintf(&b, "%d icons.\n\n", len(result.Icons))
		b.WriteString("| Icon | Markup |\n")
		b.WriteString("| --- | --- |\n")
		for _, icon := range result.Icons {
			fmt.Fprintf(&b, "| %s | `<i class=\"%s %s\"></i>` |\n",
				displaySVG(renderer.Prefix(), icon.SVG),
				renderer.Prefix(),
				icon.Name,
			)
		}
	}

	if len(result.Rejected) > 0 {
		b.WriteString("\n## Rejected\n\n")
		for _, r := range result.Rejected {
			fmt.Fprintf(&b, "- %s: %s\n", escapeText(r.File), escapeText(r.Err.Error()))
		}
	}
	return b.String()
}

// Build renders the preview as a complete HTML page.
func Build(title string, renderer render.Renderer, result catalog.LoadResult) []byte {
	if title == "" {
		title = DefaultTitle
	}
	md := Markdown(title, renderer, result)

	p := parser.NewWithExtensions(parser.CommonExtensions)
	doc := p.Parse([]byte(md))

	htmlRenderer := mdhtml.NewRenderer(mdhtml.RendererOptions{
		Flags: mdhtml.CommonFlags | mdhtml.CompletePage,
		Title: title,
	})
	return markdown.Render(doc, htmlRenderer)
}

// displaySVG puts svg on one line, drops its fixed size and tags it with
// the prefix class. Pipes would split the table cell.
func displaySVG(prefix string, svg string) string {
	svg = sanitizer.CleanForInlineDisplay(svg)
	if loc := svgOpenTag.FindStringIndex(svg); loc != nil {
		at := loc[1] - 1
		svg = svg[:at] + ` class="` + prefix + `"` + svg[at:]
	}
	return strings.ReplaceAll(svg, "|", "&#124;")
}

var markdownSpecial = strings.NewReplacer(
	`\`, `\\`,
	"`", "\\`",
	"*", `\*`,
	"_", `\_`,
	"[", `\[`,
	"]", `\]`,
	"<", "&lt;",
	">", "&gt;",
)

func escapeText(s string) string {
	return markdownSpecial.Replace(s)
}
