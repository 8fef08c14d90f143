package bintree

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

// Preorder visits t, then its left subtree, then its right subtree.
func Preorder[T any](t *Node[T], v Visitor[T]) {
	if t == nil {
		return
	}
	v.Visit(t)
	Preorder(t.Left, v)
	Preorder(t.Right, v)
}

// Inorder visits the left subtree, then t, then the right subtree.
func Inorder[T any](t *Node[T], v Visitor[T]) {
	if t == nil {
		return
	}
	Inorder(t.Left, v)
	v.Visit(t)
	Inorder(t.Right, v)
}

// Postorder visits both subtrees, left first, then t.
func Postorder[T any](t *Node[T], v Visitor[T]) {
	if t == nil {
		return
	}
	Postorder(t.Left, v)
	Postorder(t.Right, v)
	v.Visit(t)
}

// VisitLevel visits the nodes exactly n levels below t, left to right, and
// returns how many it visited.
func VisitLevel[T any](t *Node[T], n int, v Visitor[T]) int {
	switch {
	case t == nil || n < 0:
		return 0
	case n == 0:
		v.Visit(t)
		return 1
	}
	return VisitLevel(t.Left, n-1, v) + VisitLevel(t.Right, n-1, v)
}

// LevelOrder visits t breadth-first by iterative deepening.
func LevelOrder[T any](t *Node[T], v Visitor[T]) {
	for depth := 0; VisitLevel(t, depth, v) > 0; depth++ {
	}
}

// LevelOrderQueue visits t in level order using a FIFO queue.
func LevelOrderQueue[T any](t *Node[T], v Visitor[T]) {
	if t == nil {
		return
	}
	queue := []*Node[T]{t}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		v.Visit(n)
		if n.Left != nil {
			queue = append(queue, n.Left)
		}
		if n.Right != nil {
			queue = append(queue, n.Right)
		}
	}
}
