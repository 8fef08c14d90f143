package bintree

import "cmp"

//---------------------
// Binary search tree
//---------------------

// The functions below assume t already satisfies the search tree order:
// every value in a left subtree is less than its parent and every value in
// a right subtree is greater. The order is not checked; use IsBST for that.

// BSTContains reports whether v is in the search tree t, following a
// single path from the root.
func BSTContains[T cmp.Ordered](t *Node[T], v T) bool {
	for t != nil {
		switch {
		case v < t.Value:
			t = t.Left
		case v > t.Value:
			t = t.Right
		default:
			return true
		}
	}
	return false
}

// Insert adds v to the search tree t and returns the root of the result.
// A nil t yields a new leaf. Inserting a value already present leaves the
// tree unchanged. Callers must keep the returned root.
func Insert[T cmp.Ordered](t *Node[T], v T) *Node[T] {
	switch {
	case t == nil:
		return Leaf(v)
	case v < t.Value:
		t.Left = Insert(t.Left, v)
	case v > t.Value:
		t.Right = Insert(t.Right, v)
	}
	return t
}

// FromValues inserts values one at a time into an empty search tree.
func FromValues[T cmp.Ordered](values ...T) *Node[T] {
	var root *Node[T]
	for _, v := range values {
		root = Insert(root, v)
	}
	return root
}

// ListBetween returns the values v of the search tree t with
// start <= v <= end, in ascending order. Subtrees that lie wholly outside
// the range are skipped.
func ListBetween[T cmp.Ordered](t *Node[T], start, end T) []T {
	var out []T
	listBetween(t, start, end, &out)
	return out
}

func listBetween[T cmp.Ordered](t *Node[T], start, end T, out *[]T) {
	if t == nil {
		return
	}
	if start < t.Value {
		listBetween(t.Left, start, end, out)
	}
	if start <= t.Value && t.Value <= end {
		*out = append(*out, t.Value)
	}
	if t.Value < end {
		listBetween(t.Right, start, end, out)
	}
}

// ListLeavesBetween returns the leaf values v of t with start <= v <= end,
// left to right. It visits the whole tree.
func ListLeavesBetween[T cmp.Ordered](t *Node[T], start, end T) []T {
	var out []T
	Preorder(t, VisitorFunc[T](func(n *Node[T]) {
		if n.IsLeaf() && start <= n.Value && n.Value <= end {
			out = append(out, n.Value)
		}
	}))
	return out
}

// IsBST reports whether t satisfies the search tree order with no
// duplicate values. A nil tree is a valid search tree.
func IsBST[T cmp.Ordered](t *Node[T]) bool {
	return isBST(t, nil, nil)
}

func isBST[T cmp.Ordered](t *Node[T], lo, hi *T) bool {
	if t == nil {
		return true
	}
	if (lo != nil && t.Value <= *lo) || (hi != nil && t.Value >= *hi) {
		return false
	}
	return isBST(t.Left, lo, &t.Value) && isBST(t.Right, &t.Value, hi)
}

// Min returns the smallest value of the search tree t.
func Min[T cmp.Ordered](t *Node[T]) (T, bool) {
	if t == nil {
		var zero T
		return zero, false
	}
	for t.Left != nil {
		t = t.Left
	}
	return t.Value, true
}

// Max returns the largest value of the search tree t.
func Max[T cmp.Ordered](t *Node[T]) (T, bool) {
	if t == nil {
		var zero T
		return zero, false
	}
	for t.Right != nil {
		t = t.Right
	}
	return t.Value, true
}
