package bintree

//---------------------
// Shape queries
//---------------------

// Height returns the number of nodes on a longest root-to-leaf path, or 0
// for a nil tree.
func Height[T any](t *Node[T]) int {
	if t == nil {
		return 0
	}
	return 1 + max(Height(t.Left), Height(t.Right))
}

// Count returns the number of nodes in t.
func Count[T any](t *Node[T]) int {
	if t == nil {
		return 0
	}
	return 1 + Count(t.Left) + Count(t.Right)
}

// LeafCount returns the number of leaves in t.
func LeafCount[T any](t *Node[T]) int {
	switch {
	case t == nil:
		return 0
	case t.IsLeaf():
		return 1
	}
	return LeafCount(t.Left) + LeafCount(t.Right)
}

// InternalCount returns the number of nodes with at least one child.
func InternalCount[T any](t *Node[T]) int {
	if t == nil || t.IsLeaf() {
		return 0
	}
	return 1 + InternalCount(t.Left) + InternalCount(t.Right)
}

// Arity returns the largest number of children held by any node: 0, 1 or 2.
func Arity[T any](t *Node[T]) int {
	if t == nil {
		return 0
	}
	a := 0
	if t.Left != nil {
		a++
	}
	if t.Right != nil {
		a++
	}
	return max(a, Arity(t.Left), Arity(t.Right))
}

// Flatten returns every value of t in preorder.
func Flatten[T any](t *Node[T]) []T {
	var out []T
	Preorder(t, Collect(&out))
	return out
}

// CountIf returns how many values in t satisfy p.
func CountIf[T any](t *Node[T], p func(T) bool) int {
	if t == nil {
		return 0
	}
	n := CountIf(t.Left, p) + CountIf(t.Right, p)
	if p(t.Value) {
		n++
	}
	return n
}

// ListIf returns the values in t that satisfy p, in preorder.
func ListIf[T any](t *Node[T], p func(T) bool) []T {
	var out []T
	Preorder(t, VisitorFunc[T](func(n *Node[T]) {
		if p(n.Value) {
			out = append(out, n.Value)
		}
	}))
	return out
}

// Contains reports whether some node of t holds v. It scans the whole
// tree and does not rely on any ordering.
func Contains[T comparable](t *Node[T], v T) bool {
	if t == nil {
		return false
	}
	return t.Value == v || Contains(t.Left, v) || Contains(t.Right, v)
}

// CountShallower returns the number of nodes whose depth is less than n.
func CountShallower[T any](t *Node[T], n int) int {
	if t == nil || n <= 0 {
		return 0
	}
	return 1 + CountShallower(t.Left, n-1) + CountShallower(t.Right, n-1)
}

// LevelWidths returns the number of nodes on each level, root first.
func LevelWidths[T any](t *Node[T]) []int {
	var widths []int
	for depth := 0; ; depth++ {
		n := VisitLevel(t, depth, VisitorFunc[T](func(*Node[T]) {}))
		if n == 0 {
			return widths
		}
		widths = append(widths, n)
	}
}

// LongestPath returns the values along a longest root-to-leaf path. On a
// tie the left branch wins.
func LongestPath[T any](t *Node[T]) []T {
	if t == nil {
		return nil
	}
	l, r := LongestPath(t.Left), LongestPath(t.Right)
	if len(r) > len(l) {
		l = r
	}
	return append([]T{t.Value}, l...)
}

// SwapEven swaps the children of every node at an even depth, starting
// with the root at depth 0.
func SwapEven[T any](t *Node[T]) {
	swapEven(t, 0)
}

func swapEven[T any](t *Node[T], depth int) {
	if t == nil {
		return
	}
	if depth%2 == 0 {
		t.Left, t.Right = t.Right, t.Left
	}
	swapEven(t.Left, depth+1)
	swapEven(t.Right, depth+1)
}
