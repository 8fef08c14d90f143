package tree

// FromSequence populates a new tree rooted at root from values in level
// order, giving each node up to k children before moving on to the next
// node in the queue. It stops as soon as values runs out; values itself is
// not modified. A k below 1 yields a lone root.
func FromSequence[T any](root T, values []T, k int) *Node[T] {
	t := New(root)
	if k < 1 {
		return t
	}
	queue := []*Node[T]{t}
	next := 0
	for len(queue) > 0 && next < len(values) {
		parent := queue[0]
		queue = queue[1:]
		for i := 0; i < k && next < len(values); i++ {
			child := New(values[next])
			next++
			parent.Children = append(parent.Children, child)
			queue = append(queue, child)
		}
	}
	return t
}

// Deepen rewrites t in place so that every node gains a copy of itself
// as its only child, and that copy adopts the node's former children.
// A tree of n nodes ends up with 2n.
func Deepen[T any](t *Node[T]) {
	if t == nil {
		return
	}
	kids := t.Children
	t.Children = []*Node[T]{New(t.Value, kids...)}
	for _, c := range kids {
		Deepen(c)
	}
}
