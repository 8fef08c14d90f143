// Package tree implements a general ordered tree where every node holds a
// value and an ordered, possibly empty, sequence of children.
package tree

import (
	"fmt"
	"strings"
)

//---------------------
// Node
//---------------------

// Node is a tree node with any number of ordered children.
// A nil entry in Children is an absent slot and is skipped by every query.
type Node[T any] struct {
	Value    T
	Children []*Node[T]
}

// New creates a node holding value. The children slice is copied so the
// caller's slice is never shared with the tree.
func New[T any](value T, children ...*Node[T]) *Node[T] {
	n := &Node[T]{Value: value}
	if len(children) > 0 {
		n.Children = append([]*Node[T](nil), children...)
	}
	return n
}

// Add appends children to n and returns n.
func (n *Node[T]) Add(children ...*Node[T]) *Node[T] {
	n.Children = append(n.Children, children...)
	return n
}

// IsLeaf reports whether n has no non-nil children.
func (n *Node[T]) IsLeaf() bool {
	for _, c := range n.Children {
		if c != nil {
			return false
		}
	}
	return true
}

// kids returns the non-nil children of n in order.
func (n *Node[T]) kids() []*Node[T] {
	out := make([]*Node[T], 0, len(n.Children))
	for _, c := range n.Children {
		if c != nil {
			out = append(out, c)
		}
	}
	return out
}

//---------------------
// Equality
//---------------------

// Equal reports whether a and b have the same shape and values.
// Absent slots are ignored, so a leaf equals a node built with no children.
func Equal[T comparable](a, b *Node[T]) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Value != b.Value {
		return false
	}
	ak, bk := a.kids(), b.kids()
	if len(ak) != len(bk) {
		return false
	}
	for i := range ak {
		if !Equal(ak[i], bk[i]) {
			return false
		}
	}
	return true
}

//---------------------
// Printing
//---------------------

const indentStep = "   "

// String renders the tree with the root on the first line and each level
// of children indented by three spaces.
func (n *Node[T]) String() string {
	if n == nil {
		return ""
	}
	var b strings.Builder
	n.write(&b, 0)
	return strings.TrimSuffix(b.String(), "\n")
}

func (n *Node[T]) write(b *strings.Builder, depth int) {
	b.WriteString(strings.Repeat(indentStep, depth))
	fmt.Fprintf(b, "%v\n", n.Value)
	for _, c := range n.Children {
		if c != nil {
			c.write(b, depth+1)
		}
	}
}

// GoString renders n as a constructor-like expression, e.g.
// Tree(7, [Tree(5)]).
func (n *Node[T]) GoString() string {
	if n == nil {
		return "None"
	}
	if len(n.Children) == 0 {
		return fmt.Sprintf("Tree(%#v)", n.Value)
	}
	parts := make([]string, len(n.Children))
	for i, c := range n.Children {
		parts[i] = c.GoString()
	}
	return fmt.Sprintf("Tree(%#v, [%s])", n.Value, strings.Join(parts, ", "))
}
