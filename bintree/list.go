package bintree

import "github.com/rskv-p/treekit/lnk"

// InorderList returns the values of t in inorder as a linked list.
func InorderList[T any](t *Node[T]) *lnk.List[T] {
	return collectList(t, Inorder[T])
}

// PreorderList returns the values of t in preorder as a linked list.
func PreorderList[T any](t *Node[T]) *lnk.List[T] {
	return collectList(t, Preorder[T])
}

// PostorderList returns the values of t in postorder as a linked list.
func PostorderList[T any](t *Node[T]) *lnk.List[T] {
	return collectList(t, Postorder[T])
}

func collectList[T any](t *Node[T], walk func(*Node[T], Visitor[T])) *lnk.List[T] {
	out := &lnk.List[T]{}
	walk(t, VisitorFunc[T](func(n *Node[T]) { out.Append(n.Value) }))
	return out
}
