package svgdoc

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html/charset"
)

var (
	errMissingRoot        = errors.New("missing root element")
	errMultipleRoots      = errors.New("extra content at the end of the document")
	errContentOutsideRoot = errors.New("content outside root element")
	errUnexpectedEOF      = errors.New("premature end of data")
)

// textContentElements keep whitespace-only text, since spaces between
// spans are visible there.
var textContentElements = map[string]struct{}{
	"text":     {},
	"tspan":    {},
	"textpath": {},
}

// ParseString parses s as a standalone XML document. See Parse.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

// Parse reads a standalone XML document into an arena tree.
//
// The decoder runs in strict mode with no entity map: only the predefined
// XML entities and character references expand. Document type declarations
// are read as opaque directives and dropped, so neither internal nor
// external entities are ever defined and nothing is fetched. Declared
// non-UTF-8 encodings are decoded through x/net/html/charset.
//
// Whitespace-only text is dropped unless it sits inside a text content
// element. Comments and processing instructions inside the root are kept as
// nodes; anything before or after the root is discarded.
func Parse(r io.Reader) (*Document, error) {
	decoder := xml.NewDecoder(r)
	decoder.Strict = true
	decoder.Entity = nil
	decoder.CharsetReader = charset.NewReaderLabel

	doc := &Document{root: NoNode}
	var stack []NodeID
	preserveDepth := 0 // number of open text content elements

	for {
		tok, err := decoder.RawToken()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if len(stack) == 0 && doc.root != NoNode {
				return nil, positioned(decoder, errMultipleRoots)
			}
			attrs, err := convertAttrs(t.Attr)
			if err != nil {
				return nil, positioned(decoder, err)
			}
			id := doc.add(node{
				kind:  KindElement,
				name:  Name{Prefix: t.Name.Space, Local: t.Name.Local},
				attrs: attrs,
			})
			if len(stack) == 0 {
				doc.root = id
			} else {
				parent := stack[len(stack)-1]
				doc.nodes[parent].children = append(doc.nodes[parent].children, id)
			}
			stack = append(stack, id)
			if isTextContent(t.Name.Local) {
				preserveDepth++
			}

		case xml.EndElement:
			if len(stack) == 0 {
				return nil, positioned(decoder, fmt.Errorf("unexpected end element </%s>", rawName(t.Name)))
			}
			open := doc.nodes[stack[len(stack)-1]].name
			closing := Name{Prefix: t.Name.Space, Local: t.Name.Local}
			if open != closing {
				return nil, positioned(decoder, fmt.Errorf("opening and ending tag mismatch: %s and %s", open, closing))
			}
			stack = stack[:len(stack)-1]
			if isTextContent(t.Name.Local) {
				preserveDepth--
			}

		case xml.CharData:
			text := string(t)
			blank := strings.TrimSpace(text) == ""
			if len(stack) == 0 {
				if !blank {
					return nil, positioned(decoder, errContentOutsideRoot)
				}
				continue
			}
			if blank && preserveDepth == 0 {
				continue
			}
			doc.appendChild(stack[len(stack)-1], node{kind: KindText, data: text})

		case xml.Comment:
			if len(stack) == 0 {
				continue
			}
			doc.appendChild(stack[len(stack)-1], node{kind: KindComment, data: string(t)})

		case xml.ProcInst:
			if len(stack) == 0 {
				continue
			}
			doc.appendChild(stack[len(stack)-1], node{
				kind: KindProcInst,
				name: Name{Local: t.Target},
				data: string(t.Inst),
			})

		case xml.Directive:
			// DOCTYPE and friends carry no paint-relevant content.
			continue
		}
	}

	if len(stack) > 0 {
		return nil, positioned(decoder, errUnexpectedEOF)
	}
	if doc.root == NoNode {
		return nil, errMissingRoot
	}
	return doc, nil
}

func (d *Document) appendChild(parent NodeID, n node) {
	id := d.add(n)
	d.nodes[parent].children = append(d.nodes[parent].children, id)
}

func convertAttrs(raw []xml.Attr) ([]Attr, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	attrs := make([]Attr, 0, len(raw))
	seen := make(map[Name]struct{}, len(raw))
	for _, a := range raw {
		name := Name{Prefix: a.Name.Space, Local: a.Name.Local}
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("attribute %s redefined", name)
		}
		seen[name] = struct{}{}
		attrs = append(attrs, Attr{Name: name, Value: a.Value})
	}
	return attrs, nil
}

func isTextContent(local string) bool {
	_, ok := textContentElements[strings.ToLower(local)]
	return ok
}

func rawName(n xml.Name) string {
	return Name{Prefix: n.Space, Local: n.Local}.String()
}

func positioned(decoder *xml.Decoder, err error) error {
	line, _ := decoder.InputPos()
	return &xml.SyntaxError{Msg: err.Error(), Line: line}
}
