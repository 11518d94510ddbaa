package wm

import "github.com/tilecore/wm/geometry"

// Screen is a physical output: an index, its geometry, and the
// workspace currently visible on it.
type Screen[T any] struct {
	Index     int
	Geometry  geometry.Rect
	Workspace Workspace[T]
}

// Clone deep-copies s, including its visible workspace.
func (s Screen[T]) Clone() Screen[T] {
	clone := s
	clone.Workspace = s.Workspace.Clone()
	return clone
}
