/*
Responsibilities
- Emit the shared rules for the icon element
- Emit one mask-image rule per icon, embedding the SVG as a data URI
- Keep output byte-stable for identical input so stylesheets can be
  cached and diffed

Every rule is written one declaration per line, four-space indented.
*/
package render

import (
	"encoding/base64"
	"math"
	"strconv"
	"strings"
)

const indent = "    "

// BaseCSS returns the wrapper reset followed by the rule shared by every
// icon element.
func (r Renderer) BaseCSS(tech Technology) string {
	var b strings.Builder

	b.WriteString(r.wrapperSelector + " {\n")
	b.WriteString(indent + "/* Fixes the iframe site editor */\n")
	b.WriteString("}\n")

	base := "i." + r.prefix
	if tech.usesPseudo() {
		writeRule(&b, base,
			"width: 1em",
			"display: inline-block",
			"height: 1em",
			"position: relative",
			"white-space: break-spaces",
			"line-height: 1",
		)
		writeRule(&b, base+":"+tech.pseudo(), append([]string{
			"content: ''",
			"position: absolute",
			"height: 100%",
			"width: 100%",
			"top: 0",
			"left: 0",
		}, maskDeclarations("50% 50%")...)...)
		return b.String()
	}

	decls := []string{
		"width: 1em",
		"display: inline-block",
		"height: 1em",
	}
	decls = append(decls, maskDeclarations("0% 50%")...)
	decls = append(decls, "white-space: break-spaces")
	writeRule(&b, base, decls...)
	return b.String()
}

// maskDeclarations paints currentColor through the mask, in standard and
// -webkit- form.
func maskDeclarations(position string) []string {
	return []string{
		"background-color: currentColor",
		"mask-repeat: no-repeat",
		"-webkit-mask-repeat: no-repeat",
		"mask-size: contain",
		"-webkit-mask-size: contain",
		"mask-position: " + position,
		"-webkit-mask-position: " + position,
	}
}

// IconCSS returns the rule painting svg for one icon class. A className
// starting with "." is appended to the prefix as written, so compound
// selectors such as ".set.solid.arrow" work; any other value becomes one
// extra class.
//
// ratio widens inline icons; pseudo-element icons take their width from
// the host element and ignore it.
func (r Renderer) IconCSS(className string, svg string, tech Technology, ratio float64) string {
	selector := r.Selector(className)
	if tech.usesPseudo() {
		selector += ":" + tech.pseudo()
	}

	var decls []string
	ratio = normalizeRatio(ratio)
	if !tech.usesPseudo() && ratio != 1 {
		decls = append(decls, "width: "+strconv.FormatFloat(ratio, 'f', -1, 64)+"em")
	}
	decls = append(decls,
		`--icon-bg: url("`+DataURI(svg)+`")`,
		"-webkit-mask-image: var(--icon-bg)",
		"mask-image: var(--icon-bg)",
	)

	var b strings.Builder
	writeRule(&b, selector, decls...)
	return b.String()
}

// GenerateCSS returns BaseCSS followed by IconCSS for every icon, in input
// order.
func (r Renderer) GenerateCSS(icons []IconDescriptor, tech Technology) string {
	var b strings.Builder
	b.WriteString(r.BaseCSS(tech))
	for _, icon := range icons {
		b.WriteString(r.IconCSS(icon.ClassName, icon.SVG, tech, icon.AspectRatio))
	}
	return b.String()
}

// InlineSVGCSS sizes icons that were substituted as inline <svg> elements.
func (r Renderer) InlineSVGCSS() string {
	var b strings.Builder
	writeRule(&b, "svg."+r.prefix,
		"width: 1em",
		"height: 1em",
		"display: inline-block",
		"vertical-align: -0.125em",
	)
	return b.String()
}

// Selector returns the selector of one icon class without a pseudo-element.
func (r Renderer) Selector(className string) string {
	if strings.HasPrefix(className, ".") {
		return "i." + r.prefix + className
	}
	return "i." + r.prefix + "." + className
}

func DataURI(svg string) string {
	return "data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString([]byte(svg))
}

func normalizeRatio(ratio float64) float64 {
	if math.IsNaN(ratio) || math.IsInf(ratio, 0) || ratio <= 0 {
		return 1
	}
	return ratio
}

func writeRule(b *strings.Builder, selector string, decls ...string) {
	b.WriteString(selector)
	b.WriteString(" {\n")
	for _, d := range decls {
		b.WriteString(indent)
		b.WriteString(d)
		b.WriteString(";\n")
	}
	b.WriteString("}\n")
}
