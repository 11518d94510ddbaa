// Package wm implements the pure state model (§3/§4.1-4.2): a
// zipper-based universe of screens, workspaces and windows manipulated
// entirely by value-returning operations. Nothing in this package talks
// to X; it is exercised exclusively through the diff-and-refresh driver
// one layer up.
package wm

import (
	"github.com/tilecore/wm/layout"
	"github.com/tilecore/wm/zipper"
)

// Workspace is a tag, a cycle of layouts, and an optional focused stack
// of clients. A nil Stack means the workspace holds no clients.
type Workspace[T any] struct {
	ID      int
	Tag     string
	Layouts layout.LayoutStack
	Stack   *zipper.Stack[T]
}

// NewWorkspace builds an empty workspace with the given id, tag and
// layout cycle.
func NewWorkspace[T any](id int, tag string, layouts layout.LayoutStack) Workspace[T] {
	return Workspace[T]{ID: id, Tag: tag, Layouts: layouts}
}

// Clone deep-copies w: its layout cycle and client stack share no
// mutable state with the original.
func (w Workspace[T]) Clone() Workspace[T] {
	clone := w
	clone.Layouts = w.Layouts.Clone()
	if w.Stack != nil {
		s := *w.Stack
		up := make([]T, len(s.Up))
		copy(up, s.Up)
		down := make([]T, len(s.Down))
		copy(down, s.Down)
		s.Up, s.Down = up, down
		clone.Stack = &s
	}
	return clone
}

// Contains reports whether id is present in w's client stack.
func Contains[T comparable](w Workspace[T], id T) bool {
	if w.Stack == nil {
		return false
	}
	return zipper.Contains(*w.Stack, id)
}

// WithStack returns a copy of w with its client stack replaced.
func (w Workspace[T]) WithStack(s *zipper.Stack[T]) Workspace[T] {
	clone := w
	clone.Stack = s
	return clone
}

// IsEmpty reports whether the workspace has no client stack.
func (w Workspace[T]) IsEmpty() bool {
	return w.Stack == nil
}
