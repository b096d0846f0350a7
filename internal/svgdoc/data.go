package svgdoc

import "strings"

// NodeID addresses a node inside a Document's arena.
type NodeID int

// NoNode is returned where a node is absent.
const NoNode NodeID = -1

type Kind int

const (
	KindElement Kind = iota
	KindText
	KindComment
	KindProcInst
)

// Name is a raw qualified name. Prefixes are kept as written in the source;
// they are not resolved to namespace URIs.
type Name struct {
	Prefix string
	Local  string
}

func (n Name) String() string {
	if n.Prefix == "" {
		return n.Local
	}
	return n.Prefix + ":" + n.Local
}

// LowerLocal returns the local part lower-cased, which is how every
// sanitizer rule compares names.
func (n Name) LowerLocal() string {
	return strings.ToLower(n.Local)
}

type Attr struct {
	Name  Name
	Value string
}

type node struct {
	kind     Kind
	name     Name // element name, or target for processing instructions
	attrs    []Attr
	data     string // text, comment body, or processing instruction body
	children []NodeID
}

// Document is an arena of nodes. Parents own their children through index
// lists; there are no back-references since every pass walks top-down.
// Nodes detached by a removal stay in the arena but are unreachable from
// the root.
type Document struct {
	nodes []node
	root  NodeID
}
