// file: treekit/constant/constant.go
package constant

import "errors"

// ----------------------------------------------------
// Standard errors
// ----------------------------------------------------

var (
	ErrBadRequest     = errors.New("invalid request")
	ErrTreeNotFound   = errors.New("tree not found")
	ErrUnknownKind    = errors.New("unknown tree kind")
	ErrUnknownOrder   = errors.New("unknown traversal order")
	ErrNotBinary      = errors.New("operation requires a binary search tree")
	ErrKindMismatch   = errors.New("snapshot holds a different tree kind")
	ErrEmptyTree      = errors.New("tree is empty")
	ErrUnknownCommand = errors.New("unknown command")
	ErrUnauthorized   = errors.New("unauthorized")
)

// ----------------------------------------------------
// Tree kinds
// ----------------------------------------------------

const (
	KindTree   = "tree"   // general tree built from a sequence
	KindBinary = "binary" // binary search tree
)

// ----------------------------------------------------
// Traversal orders
// ----------------------------------------------------

const (
	OrderPre   = "pre"
	OrderPost  = "post"
	OrderIn    = "in"
	OrderLevel = "level"
)

// Orders lists every traversal order name.
var Orders = []string{OrderPre, OrderPost, OrderIn, OrderLevel}

// ----------------------------------------------------
// Defaults
// ----------------------------------------------------

const (
	DefaultBranching = 2
	DefaultSubject   = "treekit.visit"
	ServiceName      = "treekit"
)

// NormalizeKind maps accepted aliases to a kind constant.
func NormalizeKind(s string) (string, error) {
	switch s {
	case "", KindTree, "general":
		return KindTree, nil
	case KindBinary, "bst":
		return KindBinary, nil
	}
	return "", ErrUnknownKind
}

// NormalizeOrder maps accepted aliases to an order constant.
func NormalizeOrder(s string) (string, error) {
	switch s {
	case OrderPre, "preorder":
		return OrderPre, nil
	case OrderPost, "postorder":
		return OrderPost, nil
	case OrderIn, "inorder":
		return OrderIn, nil
	case OrderLevel, "levelorder", "bfs":
		return OrderLevel, nil
	}
	return "", ErrUnknownOrder
}
