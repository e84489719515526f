// Package layout derives a human-readable structural layout of a
// compiled type: a flat, depth-annotated preorder listing plus the
// reconstruction of its nested tree form (the "vesper") used for
// rendering and structural diffing.
package layout

import (
	"fmt"
	"strings"
)

// MaxChildren bounds the number of children of a single vesper node,
// keeping rendered output finite and child indexes narrow.
const MaxChildren = 255

// Item is one line of a type layout: a rendering descriptor at a
// nesting depth, emitted by a parent-before-children traversal.
type Item struct {
	Label string // field, variant or element label; may be empty
	Descr string // structural descriptor
	Depth int
}

// Expr renders the item as a one-line expression.
func (it Item) Expr() string {
	if it.Label == "" {
		return it.Descr
	}
	return it.Label + " " + it.Descr
}

// TypeLayout is an ordered preorder flattening of one type's
// composition. It is transient: derived on demand, never persisted.
type TypeLayout struct {
	items []Item
}

// New returns a layout over the given items.
func New(items []Item) TypeLayout { return TypeLayout{items: items} }

// Items returns the flattened items in order.
func (l TypeLayout) Items() []Item {
	out := make([]Item, len(l.items))
	copy(out, l.items)
	return out
}

// Count returns the number of items.
func (l TypeLayout) Count() int { return len(l.items) }

// Error reports a layout whose depth sequence cannot correspond to a
// legal preorder flattening.
type Error struct {
	Index int // offending item index, -1 for the whole layout
	What  string
}

func (e *Error) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("invalid type layout: %s", e.What)
	}
	return fmt.Sprintf("invalid type layout at item %d: %s", e.Index, e.What)
}

// Node is one node of the reconstructed vesper tree.
type Node struct {
	Item     Item
	children []*Node
}

// Children returns the node's children in emission order.
func (n *Node) Children() []*Node {
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

// Vesper rebuilds the rooted tree from the flat layout. Depth is the
// only structural signal: the node at depth d becomes a child of the
// most recently emitted node at depth d-1, which disambiguates
// parent, child and sibling relations only while depths never skip a
// level downward.
func (l TypeLayout) Vesper() (*Node, error) {
	var root *Node
	var path []int // child index per ancestor level
	for i, item := range l.items {
		if item.Depth < 0 {
			return nil, &Error{Index: i, What: fmt.Sprintf("negative depth %d", item.Depth)}
		}
		if item.Depth == 0 {
			if root != nil {
				return nil, &Error{Index: i, What: "second root item"}
			}
			root = &Node{Item: item}
			continue
		}
		if root == nil {
			return nil, &Error{Index: i, What: "first item is not a root"}
		}
		depth := item.Depth
		if len(path) < depth-1 {
			return nil, &Error{Index: i, What: fmt.Sprintf("skipped level: depth %d after nesting %d", depth, len(path)+1)}
		}
		// Pop back to the ancestor the new item hangs off when it is a
		// sibling, or an ancestor's sibling, of the previous item.
		path = path[:depth-1]
		head := root
		for _, idx := range path {
			head = head.children[idx]
		}
		if len(head.children) >= MaxChildren {
			return nil, &Error{Index: i, What: fmt.Sprintf("node with more than %d children", MaxChildren)}
		}
		path = append(path, len(head.children))
		head.children = append(head.children, &Node{Item: item})
	}
	if root == nil {
		return nil, &Error{Index: -1, What: "zero items"}
	}
	return root, nil
}

// Flatten reverses Vesper: a preorder, depth-annotated traversal of
// the tree.
func Flatten(root *Node) TypeLayout {
	var items []Item
	var walk func(n *Node, depth int)
	walk = func(n *Node, depth int) {
		it := n.Item
		it.Depth = depth
		items = append(items, it)
		for _, c := range n.children {
			walk(c, depth+1)
		}
	}
	walk(root, 0)
	return TypeLayout{items: items}
}

// String renders the layout as indented lines, two spaces per level.
func (l TypeLayout) String() string {
	var sb strings.Builder
	for _, item := range l.items {
		sb.WriteString(strings.Repeat("  ", item.Depth))
		sb.WriteString(item.Expr())
		sb.WriteByte('\n')
	}
	return sb.String()
}
