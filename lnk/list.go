// Package lnk provides a small singly linked list used to hand back
// traversal results.
package lnk

import (
	"errors"
	"fmt"
	"strings"
)

// ErrIndexOutOfRange is returned by index access outside the list.
var ErrIndexOutOfRange = errors.New("index out of range")

// EmptyText is what String returns for a list with no nodes.
const EmptyText = "I'm so empty... experiencing existential angst!!!"

//---------------------
// Node
//---------------------

// Node is one link of a List.
type Node[T any] struct {
	Value T
	Next  *Node[T]
}

// String renders n and its successors as "5 -> 7 ->|".
func (n *Node[T]) String() string {
	var b strings.Builder
	for cur := n; cur != nil; cur = cur.Next {
		fmt.Fprintf(&b, "%v -> ", cur.Value)
	}
	s := strings.TrimSuffix(b.String(), " ")
	return s + "|"
}

//---------------------
// List
//---------------------

// List is a singly linked list tracking its front, back and size.
// The zero value is an empty list.
type List[T any] struct {
	front *Node[T]
	back  *Node[T]
	size  int
}

// New returns a list holding values in order.
func New[T any](values ...T) *List[T] {
	l := &List[T]{}
	for _, v := range values {
		l.Append(v)
	}
	return l
}

// Len returns the number of values in l.
func (l *List[T]) Len() int {
	if l == nil {
		return 0
	}
	return l.size
}

// Front returns the first node, or nil.
func (l *List[T]) Front() *Node[T] {
	if l == nil {
		return nil
	}
	return l.front
}

// Append adds v after the last node. It is a no-op on a nil list.
func (l *List[T]) Append(v T) {
	if l == nil {
		return
	}
	n := &Node[T]{Value: v}
	if l.size == 0 {
		l.front, l.back = n, n
	} else {
		l.back.Next = n
		l.back = n
	}
	l.size++
}

// Prepend adds v before the first node. It is a no-op on a nil list.
func (l *List[T]) Prepend(v T) {
	if l == nil {
		return
	}
	l.front = &Node[T]{Value: v, Next: l.front}
	if l.size == 0 {
		l.back = l.front
	}
	l.size++
}

// DeleteFront removes the first node and returns its value.
// It reports false when l is empty or nil.
func (l *List[T]) DeleteFront() (T, bool) {
	var zero T
	if l == nil || l.size == 0 {
		return zero, false
	}
	v := l.front.Value
	l.front = l.front.Next
	l.size--
	if l.size == 0 {
		l.back = nil
	}
	return v, true
}

// Copy returns a list with new nodes holding the same values.
func (l *List[T]) Copy() *List[T] {
	return New(l.Values()...)
}

// Concat returns a new list with the values of l followed by those of
// other. Neither input is modified.
func (l *List[T]) Concat(other *List[T]) *List[T] {
	out := l.Copy()
	for cur := other.Front(); cur != nil; cur = cur.Next {
		out.Append(cur.Value)
	}
	return out
}

// Values returns the values of l in order.
func (l *List[T]) Values() []T {
	if l == nil {
		return nil
	}
	out := make([]T, 0, l.size)
	for cur := l.front; cur != nil; cur = cur.Next {
		out = append(out, cur.Value)
	}
	return out
}

//---------------------
// Index access
//---------------------

// node returns the node at index i. Negative indexes count from the back.
func (l *List[T]) node(i int) (*Node[T], error) {
	if i < 0 {
		i += l.size
	}
	if i < 0 || i >= l.size {
		return nil, fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, i, l.size)
	}
	cur := l.front
	for ; i > 0; i-- {
		cur = cur.Next
	}
	return cur, nil
}

// Get returns the value at index i.
func (l *List[T]) Get(i int) (T, error) {
	n, err := l.node(i)
	if err != nil {
		var zero T
		return zero, err
	}
	return n.Value, nil
}

// Set replaces the value at index i.
func (l *List[T]) Set(i int, v T) error {
	n, err := l.node(i)
	if err != nil {
		return err
	}
	n.Value = v
	return nil
}

// String renders l as "1 -> 0 -> 2 ->|".
func (l *List[T]) String() string {
	if l.Len() == 0 {
		return EmptyText
	}
	return l.front.String()
}

// Contains reports whether some node of l holds v.
func Contains[T comparable](l *List[T], v T) bool {
	for cur := l.Front(); cur != nil; cur = cur.Next {
		if cur.Value == v {
			return true
		}
	}
	return false
}
