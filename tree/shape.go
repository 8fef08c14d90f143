package tree

//---------------------
// Shape queries
//---------------------

// Height returns the number of nodes on a longest root-to-leaf path.
// t must not be nil.
func Height[T any](t *Node[T]) int {
	h := 0
	for _, c := range t.Children {
		if c != nil {
			h = max(h, Height(c))
		}
	}
	return h + 1
}

// Arity returns the largest number of children held by any node of t.
// A leaf has arity 0.
func Arity[T any](t *Node[T]) int {
	if t == nil {
		return 0
	}
	kids := t.kids()
	a := len(kids)
	for _, c := range kids {
		a = max(a, Arity(c))
	}
	return a
}

// Count returns the number of nodes in t.
func Count[T any](t *Node[T]) int {
	if t == nil {
		return 0
	}
	n := 1
	for _, c := range t.Children {
		n += Count(c)
	}
	return n
}

// LeafCount returns the number of leaves in t.
func LeafCount[T any](t *Node[T]) int {
	if t == nil {
		return 0
	}
	if t.IsLeaf() {
		return 1
	}
	n := 0
	for _, c := range t.Children {
		n += LeafCount(c)
	}
	return n
}

// InternalCount returns the number of nodes in t with at least one child.
func InternalCount[T any](t *Node[T]) int {
	if t == nil || t.IsLeaf() {
		return 0
	}
	n := 1
	for _, c := range t.Children {
		n += InternalCount(c)
	}
	return n
}

// Flatten returns every value in t: the root first, then each child's
// values in child order.
func Flatten[T any](t *Node[T]) []T {
	var out []T
	Preorder(t, Collect(&out))
	return out
}

//---------------------
// Predicate queries
//---------------------

// CountIf returns how many values in t satisfy p.
func CountIf[T any](t *Node[T], p func(T) bool) int {
	if t == nil {
		return 0
	}
	n := 0
	if p(t.Value) {
		n++
	}
	for _, c := range t.Children {
		n += CountIf(c, p)
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

// ListInternal returns the values of the non-leaf nodes of t, in preorder.
func ListInternal[T any](t *Node[T]) []T {
	return listWhere(t, func(n *Node[T]) bool { return !n.IsLeaf() })
}

// ListLeaves returns the values of the leaves of t, left to right.
func ListLeaves[T any](t *Node[T]) []T {
	return listWhere(t, (*Node[T]).IsLeaf)
}

func listWhere[T any](t *Node[T], keep func(*Node[T]) bool) []T {
	var out []T
	Preorder(t, VisitorFunc[T](func(n *Node[T]) {
		if keep(n) {
			out = append(out, n.Value)
		}
	}))
	return out
}

// Contains reports whether some node of t holds v.
func Contains[T comparable](t *Node[T], v T) bool {
	return ContainsIf(t, func(x T) bool { return x == v })
}

// ContainsIf reports whether some value in t satisfies p. The search stops
// at the first match, checking the root before its children.
func ContainsIf[T any](t *Node[T], p func(T) bool) bool {
	if t == nil {
		return false
	}
	if p(t.Value) {
		return true
	}
	for _, c := range t.Children {
		if ContainsIf(c, p) {
			return true
		}
	}
	return false
}

//---------------------
// Depth queries
//---------------------

// CountShallower returns the number of nodes of t whose depth is less
// than n. The root has depth 0.
func CountShallower[T any](t *Node[T], n int) int {
	if t == nil || n <= 0 {
		return 0
	}
	total := 1
	for _, c := range t.Children {
		total += CountShallower(c, n-1)
	}
	return total
}

// ValuesAtDepth returns the values of the nodes at exactly depth d,
// left to right.
func ValuesAtDepth[T any](t *Node[T], d int) []T {
	var out []T
	VisitLevel(t, d, Collect(&out))
	return out
}
