package svgdoc

func (d *Document) add(n node) NodeID {
	d.nodes = append(d.nodes, n)
	return NodeID(len(d.nodes) - 1)
}

func (d *Document) Root() NodeID {
	return d.root
}

func (d *Document) Kind(id NodeID) Kind {
	return d.nodes[id].kind
}

func (d *Document) Name(id NodeID) Name {
	return d.nodes[id].name
}

func (d *Document) Data(id NodeID) string {
	return d.nodes[id].data
}

func (d *Document) IsElement(id NodeID) bool {
	return d.nodes[id].kind == KindElement
}

// Attrs returns the attributes of an element in source order.
// The returned slice must not be modified.
func (d *Document) Attrs(id NodeID) []Attr {
	return d.nodes[id].attrs
}

// Children returns the child ids of a node in document order.
// The returned slice must not be modified.
func (d *Document) Children(id NodeID) []NodeID {
	return d.nodes[id].children
}

// Attr looks up an attribute by its qualified name.
func (d *Document) Attr(id NodeID, qname string) (string, bool) {
	for _, a := range d.nodes[id].attrs {
		if a.Name.String() == qname {
			return a.Value, true
		}
	}
	return "", false
}

// SetAttr replaces the value of an existing attribute or appends a new one.
func (d *Document) SetAttr(id NodeID, name Name, value string) {
	n := &d.nodes[id]
	for i := range n.attrs {
		if n.attrs[i].Name == name {
			n.attrs[i].Value = value
			return
		}
	}
	n.attrs = append(n.attrs, Attr{Name: name, Value: value})
}

// RemoveAttrs drops every attribute of id for which drop returns true and
// reports how many were removed.
func (d *Document) RemoveAttrs(id NodeID, drop func(Attr) bool) int {
	n := &d.nodes[id]
	kept := n.attrs[:0]
	removed := 0
	for _, a := range n.attrs {
		if drop(a) {
			removed++
			continue
		}
		kept = append(kept, a)
	}
	n.attrs = kept
	return removed
}

// Walk visits id and its descendants in pre-order. When visit returns false
// the children of that node are skipped.
func (d *Document) Walk(id NodeID, visit func(NodeID) bool) {
	if !visit(id) {
		return
	}
	for _, child := range d.nodes[id].children {
		d.Walk(child, visit)
	}
}

// Prune removes every descendant of id for which drop returns true,
// together with its subtree. id itself is never removed. It reports the
// number of subtrees removed.
func (d *Document) Prune(id NodeID, drop func(NodeID) bool) int {
	n := &d.nodes[id]
	kept := n.children[:0]
	removed := 0
	for _, child := range n.children {
		if drop(child) {
			removed++
			continue
		}
		kept = append(kept, child)
	}
	n.children = kept
	for _, child := range kept {
		removed += d.Prune(child, drop)
	}
	return removed
}
