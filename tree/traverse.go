package tree

//---------------------
// Visitor
//---------------------

// Visitor is the action applied to every node a traversal reaches.
type Visitor[T any] interface {
	Visit(n *Node[T])
}

// VisitorFunc adapts a plain function to Visitor.
type VisitorFunc[T any] func(n *Node[T])

// Visit calls f(n).
func (f VisitorFunc[T]) Visit(n *Node[T]) { f(n) }

// Collect returns a visitor that appends each visited value to *dst.
func Collect[T any](dst *[]T) Visitor[T] {
	return VisitorFunc[T](func(n *Node[T]) {
		*dst = append(*dst, n.Value)
	})
}

//---------------------
// Depth-first walks
//---------------------

// Preorder visits t, then each child subtree in order.
func Preorder[T any](t *Node[T], v Visitor[T]) {
	if t == nil {
		return
	}
	v.Visit(t)
	for _, c := range t.Children {
		Preorder(c, v)
	}
}

// Postorder visits each child subtree in order, then t.
func Postorder[T any](t *Node[T], v Visitor[T]) {
	if t == nil {
		return
	}
	for _, c := range t.Children {
		Postorder(c, v)
	}
	v.Visit(t)
}

//---------------------
// Level order
//---------------------

// VisitLevel visits the nodes exactly n levels below t, left to right, and
// returns how many it visited. Children see a budget of n-1; a node is
// visited when its budget is 0 and a negative budget visits nothing.
func VisitLevel[T any](t *Node[T], n int, v Visitor[T]) int {
	switch {
	case t == nil || n < 0:
		return 0
	case n == 0:
		v.Visit(t)
		return 1
	}
	visited := 0
	for _, c := range t.Children {
		visited += VisitLevel(c, n-1, v)
	}
	return visited
}

// LevelOrder visits t breadth-first by iterative deepening: one VisitLevel
// pass per depth, stopping at the first pass that visits nothing.
func LevelOrder[T any](t *Node[T], v Visitor[T]) {
	for depth := 0; VisitLevel(t, depth, v) > 0; depth++ {
	}
}

// LevelOrderQueue visits t in the same order as LevelOrder using a FIFO
// queue, so each node is reached once.
func LevelOrderQueue[T any](t *Node[T], v Visitor[T]) {
	if t == nil {
		return
	}
	queue := []*Node[T]{t}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		v.Visit(n)
		for _, c := range n.Children {
			if c != nil {
				queue = append(queue, c)
			}
		}
	}
}
