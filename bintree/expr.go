package bintree

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

// ErrBadExpression is returned by Evaluate for a tree that is not a
// well-formed arithmetic expression.
var ErrBadExpression = errors.New("malformed expression tree")

// Parenthesize returns the fully parenthesized infix form of an expression
// tree: leaves print as their value and every internal node as
// "(left op right)". A nil tree yields "".
func Parenthesize[T any](t *Node[T]) string {
	switch {
	case t == nil:
		return ""
	case t.IsLeaf():
		return fmt.Sprint(t.Value)
	}
	return fmt.Sprintf("(%s %v %s)", Parenthesize(t.Left), t.Value, Parenthesize(t.Right))
}

// Evaluate computes an expression tree whose internal nodes hold one of
// "+", "-", "*", "/" and always have two children, and whose leaves hold
// numbers.
func Evaluate(t *Node[string]) (float64, error) {
	if t == nil {
		return 0, fmt.Errorf("%w: missing operand", ErrBadExpression)
	}
	if t.IsLeaf() {
		v, err := strconv.ParseFloat(t.Value, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, fmt.Errorf("%w: leaf %q is not a number", ErrBadExpression, t.Value)
		}
		return v, nil
	}

	l, err := Evaluate(t.Left)
	if err != nil {
		return 0, err
	}
	r, err := Evaluate(t.Right)
	if err != nil {
		return 0, err
	}

	switch t.Value {
	case "+":
		return l + r, nil
	case "-":
		return l - r, nil
	case "*":
		return l * r, nil
	case "/":
		if r == 0 {
			return 0, fmt.Errorf("%w: division by zero", ErrBadExpression)
		}
		return l / r, nil
	default:
		return 0, fmt.Errorf("%w: unknown operator %q", ErrBadExpression, t.Value)
	}
}
