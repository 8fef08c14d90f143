// Package bintree implements binary trees and the binary search tree
// operations built on them.
package bintree

import (
	"fmt"
	"strings"
)

// Node is a binary tree node. Left and Right are independently optional.
type Node[T any] struct {
	Value T
	Left  *Node[T]
	Right *Node[T]
}

// New creates a node holding value with the given children.
func New[T any](value T, left, right *Node[T]) *Node[T] {
	return &Node[T]{Value: value, Left: left, Right: right}
}

// Leaf creates a node with no children.
func Leaf[T any](value T) *Node[T] {
	return &Node[T]{Value: value}
}

// IsLeaf reports whether n has neither child.
func (n *Node[T]) IsLeaf() bool {
	return n.Left == nil && n.Right == nil
}

// Equal reports whether a and b have the same shape and values.
// A missing child is equal only to a missing child.
func Equal[T comparable](a, b *Node[T]) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Value == b.Value && Equal(a.Left, b.Left) && Equal(a.Right, b.Right)
}

//---------------------
// Printing
//---------------------

const indentStep = "    "

// String renders the tree sideways: the right subtree above its parent,
// the left subtree below, four spaces of indent per level. Every line,
// including the last, ends in a newline.
func (n *Node[T]) String() string {
	var b strings.Builder
	n.write(&b, "")
	return b.String()
}

func (n *Node[T]) write(b *strings.Builder, indent string) {
	if n == nil {
		return
	}
	n.Right.write(b, indent+indentStep)
	fmt.Fprintf(b, "%s%v\n", indent, n.Value)
	n.Left.write(b, indent+indentStep)
}

// GoString renders n as a constructor-like expression, e.g.
// BinaryTree(1, BinaryTree(2, None, None), None).
func (n *Node[T]) GoString() string {
	if n == nil {
		return "None"
	}
	return fmt.Sprintf("BinaryTree(%#v, %s, %s)", n.Value, n.Left.GoString(), n.Right.GoString())
}
