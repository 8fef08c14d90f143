// Package recover turns panics in tree commands and stream handlers into
// logged errors.
package recover

import (
	"context"
	"fmt"
	"runtime/debug"

	"github.com/rskv-p/treekit/pkg/x_log"
)

// ----------------------------------------------------
// Global panic hook (optional)
// ----------------------------------------------------

// OnPanic, when set, is called after a recovered panic is logged.
var OnPanic func(label string, recovered any)

// ----------------------------------------------------
// Panic recovery functions
// ----------------------------------------------------

// report logs a recovered panic with its stack and returns it as an error.
func report(label string, r any) error {
	l := x_log.New("recover")
	l.Error().
		Str("label", label).
		Interface("panic", r).
		Str("stack", string(debug.Stack())).
		Msg("panic recovered")

	if OnPanic != nil {
		OnPanic(label, r)
	}
	return fmt.Errorf("panic in %s: %v", label, r)
}

// Guard must be deferred directly. A panic is recovered and stored in
// *errp, replacing any error already there.
func Guard(label string, errp *error) {
	if r := recover(); r != nil {
		err := report(label, r)
		if errp != nil {
			*errp = err
		}
	}
}

// Safe runs fn and swallows a panic after logging it.
func Safe(label string, fn func()) {
	defer Guard(label, nil)
	fn()
}

// RecoverFunc runs fn and returns a panic as an error.
func RecoverFunc(label string, fn func() error) (err error) {
	defer Guard(label, &err)
	return fn()
}

// ----------------------------------------------------
// Universal wrapper
// ----------------------------------------------------

// RecoverableFunc is a context-aware function that may panic.
type RecoverableFunc func(ctx context.Context) error

// WrapRecover wraps f with panic protection.
func WrapRecover(label string, f RecoverableFunc) RecoverableFunc {
	return func(ctx context.Context) (err error) {
		defer Guard(label, &err)
		return f(ctx)
	}
}
