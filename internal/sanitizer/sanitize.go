/*
Responsibilities
- Parse untrusted SVG without resolving entities or fetching anything
- Remove script contexts, event handlers and external references
- Remove editor metadata
- Serialize deterministically so sanitizing twice changes nothing

Passes run in a fixed order. Structural removal comes before attribute
removal so removed elements leave no orphaned declarations behind.
*/
package sanitizer

import (
	"strings"

	"github.com/rohmanhakim/richtext-icons/internal/svgdoc"
)

type pass func(doc *svgdoc.Document)

var passes = []pass{
	removeCommentsAndInstructions,
	removeForbiddenTags,
	removeEditorNamespaces,
	removeMetadata,
	removeForbiddenAttributes,
	removeExternalReferences,
}

// Sanitize turns untrusted SVG text into markup that is safe to place in a
// page. It never returns partial output: on error the SanitizedSVG is zero
// and the error is a *SanitizationError.
func Sanitize(raw string) (SanitizedSVG, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return SanitizedSVG{}, &SanitizationError{
			Message:   "SVG input is empty",
			Retryable: false,
			Cause:     ErrCauseEmptyInput,
		}
	}

	doc, err := svgdoc.ParseString(raw)
	if err != nil {
		return SanitizedSVG{}, &SanitizationError{
			Message:   err.Error(),
			Retryable: false,
			Cause:     ErrCauseParseError,
		}
	}

	// The qualified name must be svg: a prefixed <x:svg> is not an SVG root.
	root := doc.Root()
	if strings.ToLower(doc.Name(root).String()) != "svg" {
		return SanitizedSVG{}, &SanitizationError{
			Message:   "root element is <" + doc.Name(root).String() + ">, not <svg>",
			Retryable: false,
			Cause:     ErrCauseInvalidRoot,
		}
	}

	for _, p := range passes {
		p(doc)
	}

	return SanitizedSVG{
		svg: strings.TrimSpace(doc.OuterXML(root)),
	}, nil
}

func removeCommentsAndInstructions(doc *svgdoc.Document) {
	doc.Prune(doc.Root(), func(id svgdoc.NodeID) bool {
		kind := doc.Kind(id)
		return kind == svgdoc.KindComment || kind == svgdoc.KindProcInst
	})
}

func removeForbiddenTags(doc *svgdoc.Document) {
	doc.Prune(doc.Root(), func(id svgdoc.NodeID) bool {
		return doc.IsElement(id) && contains(forbiddenTags, doc.Name(id).LowerLocal())
	})
}

func removeEditorNamespaces(doc *svgdoc.Document) {
	doc.Prune(doc.Root(), func(id svgdoc.NodeID) bool {
		return doc.IsElement(id) && contains(editorNamespaces, doc.Name(id).Prefix)
	})
	forEachElement(doc, func(id svgdoc.NodeID) {
		doc.RemoveAttrs(id, func(a svgdoc.Attr) bool {
			if a.Name.Prefix == "xmlns" {
				return contains(editorNamespaces, a.Name.Local)
			}
			return contains(editorNamespaces, a.Name.Prefix)
		})
	})
}

func removeMetadata(doc *svgdoc.Document) {
	doc.Prune(doc.Root(), func(id svgdoc.NodeID) bool {
		return doc.IsElement(id) && contains(metadataTags, doc.Name(id).LowerLocal())
	})
}

// removeForbiddenAttributes drops event handlers, the fixed forbidden
// list, and bare href on elements that never need one. href on a, use and
// image is left to removeExternalReferences.
func removeForbiddenAttributes(doc *svgdoc.Document) {
	forEachElement(doc, func(id svgdoc.NodeID) {
		tag := doc.Name(id).LowerLocal()
		doc.RemoveAttrs(id, func(a svgdoc.Attr) bool {
			if isEventHandler(a.Name) {
				return true
			}
			qname := strings.ToLower(a.Name.String())
			if !contains(forbiddenAttributes, qname) {
				return false
			}
			if qname == "href" && contains(hrefOwners, tag) {
				return false
			}
			return true
		})
	})
}

func isEventHandler(name svgdoc.Name) bool {
	if strings.HasPrefix(strings.ToLower(name.String()), "on") {
		return true
	}
	// xmlns:one declares a prefix; it is not an attribute a browser runs.
	return name.Prefix != "xmlns" && strings.HasPrefix(name.LowerLocal(), "on")
}

// removeExternalReferences applies one rule to every href, plain or
// namespaced: keep it when it is empty or a fragment, or when it sits on
// an anchor and carries no script scheme. Images pointing outside the
// document, and animations that could rewrite an href, are removed
// entirely before any href is dropped.
func removeExternalReferences(doc *svgdoc.Document) {
	doc.Prune(doc.Root(), func(id svgdoc.NodeID) bool {
		if !doc.IsElement(id) {
			return false
		}
		switch tag := doc.Name(id).LowerLocal(); {
		case tag == "image":
			return !isInternalRef(imageHref(doc, id))
		case contains(animationTags, tag):
			return animatesHref(doc, id)
		default:
			return false
		}
	})

	forEachElement(doc, func(id svgdoc.NodeID) {
		isAnchor := doc.Name(id).LowerLocal() == "a"
		doc.RemoveAttrs(id, func(a svgdoc.Attr) bool {
			if !isHrefAttr(a.Name) {
				return false
			}
			if isInternalRef(a.Value) {
				return false
			}
			return !(isAnchor && isSafeHref(a.Value))
		})
	})
}

func isHrefAttr(name svgdoc.Name) bool {
	return name.Prefix != "xmlns" && name.LowerLocal() == "href"
}

// imageHref resolves the href of an image the way a browser does: the
// plain attribute wins when it is non-empty, otherwise a namespaced one.
func imageHref(doc *svgdoc.Document, id svgdoc.NodeID) string {
	var namespaced string
	for _, a := range doc.Attrs(id) {
		if !isHrefAttr(a.Name) {
			continue
		}
		if a.Name.Prefix == "" {
			if a.Value != "" {
				return a.Value
			}
			continue
		}
		if namespaced == "" {
			namespaced = a.Value
		}
	}
	return namespaced
}

func animatesHref(doc *svgdoc.Document, id svgdoc.NodeID) bool {
	for _, a := range doc.Attrs(id) {
		if a.Name.LowerLocal() != "attributename" {
			continue
		}
		target := strings.ToLower(strings.TrimSpace(a.Value))
		if i := strings.LastIndexByte(target, ':'); i >= 0 {
			target = target[i+1:]
		}
		if target == "href" {
			return true
		}
	}
	return false
}

func forEachElement(doc *svgdoc.Document, fn func(id svgdoc.NodeID)) {
	doc.Walk(doc.Root(), func(id svgdoc.NodeID) bool {
		if doc.IsElement(id) {
			fn(id)
		}
		return true
	})
}
