package svgdoc

import (
	"strings"
)

const indentUnit = "  "

var (
	textEscaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		"\r", "&#13;",
	)
	attrEscaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"\t", "&#9;",
		"\n", "&#10;",
		"\r", "&#13;",
	)
)

// OuterXML serializes id and its descendants without an XML declaration.
//
// Elements whose children are all elements are indented two spaces per
// level. Elements holding text, and everything inside a text content
// element, are written inline so no whitespace is added to rendered text.
// Parsing the output yields the same tree, which keeps serialization a
// fixed point.
func (d *Document) OuterXML(id NodeID) string {
	var b strings.Builder
	d.write(&b, id, 0, false)
	return b.String()
}

func (d *Document) String() string {
	if d.root == NoNode {
		return ""
	}
	return d.OuterXML(d.root)
}

func (d *Document) write(b *strings.Builder, id NodeID, depth int, inline bool) {
	n := &d.nodes[id]
	switch n.kind {
	case KindText:
		b.WriteString(textEscaper.Replace(n.data))
	case KindComment:
		b.WriteString("<!--")
		b.WriteString(n.data)
		b.WriteString("-->")
	case KindProcInst:
		b.WriteString("<?")
		b.WriteString(n.name.Local)
		if n.data != "" {
			b.WriteByte(' ')
			b.WriteString(n.data)
		}
		b.WriteString("?>")
	case KindElement:
		d.writeElement(b, id, depth, inline)
	}
}

func (d *Document) writeElement(b *strings.Builder, id NodeID, depth int, inline bool) {
	n := &d.nodes[id]
	name := n.name.String()

	b.WriteByte('<')
	b.WriteString(name)
	for _, a := range n.attrs {
		b.WriteByte(' ')
		b.WriteString(a.Name.String())
		b.WriteString(`="`)
		b.WriteString(attrEscaper.Replace(a.Value))
		b.WriteByte('"')
	}
	if len(n.children) == 0 {
		b.WriteString("/>")
		return
	}
	b.WriteByte('>')

	inline = inline || isTextContent(n.name.Local) || d.hasTextChild(id)
	for _, child := range n.children {
		if !inline {
			b.WriteByte('\n')
			b.WriteString(strings.Repeat(indentUnit, depth+1))
		}
		d.write(b, child, depth+1, inline)
	}
	if !inline {
		b.WriteByte('\n')
		b.WriteString(strings.Repeat(indentUnit, depth))
	}

	b.WriteString("</")
	b.WriteString(name)
	b.WriteByte('>')
}

func (d *Document) hasTextChild(id NodeID) bool {
	for _, child := range d.nodes[id].children {
		if d.nodes[child].kind == KindText {
			return true
		}
	}
	return false
}
