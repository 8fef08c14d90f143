// Package inspect maps traversal order names onto the tree packages and
// gathers shape statistics in one place for the CLI, shell and API.
package inspect

import (
	"fmt"

	"github.com/rskv-p/treekit/bintree"
	"github.com/rskv-p/treekit/constant"
	"github.com/rskv-p/treekit/tree"
)

//---------------------
// Walks
//---------------------

// Walk visits t in the named order. General trees have no inorder.
func Walk[T any](t *tree.Node[T], order string, fn func(T)) error {
	o, err := constant.NormalizeOrder(order)
	if err != nil {
		return fmt.Errorf("%w: %q", err, order)
	}
	v := tree.VisitorFunc[T](func(n *tree.Node[T]) { fn(n.Value) })

	switch o {
	case constant.OrderPre:
		tree.Preorder(t, v)
	case constant.OrderPost:
		tree.Postorder(t, v)
	case constant.OrderLevel:
		tree.LevelOrder(t, v)
	default:
		return fmt.Errorf("%w: inorder", constant.ErrNotBinary)
	}
	return nil
}

// WalkBinary visits t in the named order.
func WalkBinary[T any](t *bintree.Node[T], order string, fn func(T)) error {
	o, err := constant.NormalizeOrder(order)
	if err != nil {
		return fmt.Errorf("%w: %q", err, order)
	}
	v := bintree.VisitorFunc[T](func(n *bintree.Node[T]) { fn(n.Value) })

	switch o {
	case constant.OrderPre:
		bintree.Preorder(t, v)
	case constant.OrderPost:
		bintree.Postorder(t, v)
	case constant.OrderIn:
		bintree.Inorder(t, v)
	case constant.OrderLevel:
		bintree.LevelOrder(t, v)
	}
	return nil
}

// Values collects a walk of t into a slice.
func Values[T any](t *tree.Node[T], order string) ([]T, error) {
	out := []T{}
	err := Walk(t, order, func(v T) { out = append(out, v) })
	return out, err
}

// BinaryValues collects a walk of t into a slice.
func BinaryValues[T any](t *bintree.Node[T], order string) ([]T, error) {
	out := []T{}
	err := WalkBinary(t, order, func(v T) { out = append(out, v) })
	return out, err
}

//---------------------
// Stats
//---------------------

// Stats summarizes the shape of a tree.
type Stats struct {
	Kind     string `json:"kind"`
	Height   int    `json:"height"`
	Count    int    `json:"count"`
	Leaves   int    `json:"leaves"`
	Internal int    `json:"internal"`
	Arity    int    `json:"arity"`
	Widths   []int  `json:"widths"`
	IsBST    *bool  `json:"is_bst,omitempty"`
}

// TreeStats computes Stats for a general tree. A nil tree is all zeros.
func TreeStats[T any](t *tree.Node[T]) Stats {
	s := Stats{Kind: constant.KindTree, Widths: []int{}}
	if t == nil {
		return s
	}
	s.Height = tree.Height(t)
	s.Count = tree.Count(t)
	s.Leaves = tree.LeafCount(t)
	s.Internal = tree.InternalCount(t)
	s.Arity = tree.Arity(t)
	for d := range s.Height {
		s.Widths = append(s.Widths, len(tree.ValuesAtDepth(t, d)))
	}
	return s
}

// BinaryStats computes Stats for an integer binary tree.
func BinaryStats(t *bintree.Node[int]) Stats {
	ok := bintree.IsBST(t)
	s := Stats{
		Kind:     constant.KindBinary,
		Height:   bintree.Height(t),
		Count:    bintree.Count(t),
		Leaves:   bintree.LeafCount(t),
		Internal: bintree.InternalCount(t),
		Arity:    bintree.Arity(t),
		Widths:   bintree.LevelWidths(t),
		IsBST:    &ok,
	}
	if s.Widths == nil {
		s.Widths = []int{}
	}
	return s
}
