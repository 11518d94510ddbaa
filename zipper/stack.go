// Package zipper implements a focused, non-empty sequence (a "zipper"):
// an ordered list with a single distinguished focus element, manipulated
// by pure, value-returning operations (§4.1 of the spec).
package zipper

// Stack is a focused non-empty sequence. Up holds the elements above the
// focus, nearest first; Down holds the elements below the focus, nearest
// first. Iteration order (Iter) is top-to-bottom of the visual stacking:
// reverse(Up) + Focus + Down.
type Stack[T any] struct {
	Up    []T
	Focus T
	Down  []T
}

// New builds a singleton stack focused on v.
func New[T any](v T) Stack[T] {
	return Stack[T]{Focus: v}
}

// FromList builds a stack from a non-empty slice, focused on the first
// element. Panics if xs is empty — constructing an empty Stack violates
// the zipper's non-empty invariant by construction, so the zero-length
// case is a programmer error rather than a runtime condition callers are
// expected to recover from.
func FromList[T any](xs []T) Stack[T] {
	if len(xs) == 0 {
		panic("zipper: FromList requires a non-empty slice")
	}
	rest := make([]T, len(xs)-1)
	copy(rest, xs[1:])
	return Stack[T]{Focus: xs[0], Down: rest}
}

// Len returns the total number of elements in the stack.
func (s Stack[T]) Len() int {
	return len(s.Up) + 1 + len(s.Down)
}

// Iter returns every element in top-to-bottom visual order: Up reversed,
// then Focus, then Down.
func (s Stack[T]) Iter() []T {
	out := make([]T, 0, s.Len())
	for i := len(s.Up) - 1; i >= 0; i-- {
		out = append(out, s.Up[i])
	}
	out = append(out, s.Focus)
	out = append(out, s.Down...)
	return out
}

// FocusUp moves the focus to the element above, wrapping to the bottom
// of the stack if already at the top. Underlying order is unchanged.
func (s Stack[T]) FocusUp() Stack[T] {
	if len(s.Up) == 0 {
		if len(s.Down) == 0 {
			return s
		}
		// Wrap: focus becomes the bottom of Down, everything else
		// rotates into Up (nearest-first, so reverse Down minus its
		// last element, with the old focus now nearest to the new one).
		all := s.Iter()
		last := len(all) - 1
		newUp := make([]T, 0, last)
		for i := last - 1; i >= 0; i-- {
			newUp = append(newUp, all[i])
		}
		return Stack[T]{Up: newUp, Focus: all[last], Down: nil}
	}
	newFocus := s.Up[0]
	newDown := make([]T, 0, len(s.Down)+1)
	newDown = append(newDown, s.Focus)
	newDown = append(newDown, s.Down...)
	newUp := make([]T, len(s.Up)-1)
	copy(newUp, s.Up[1:])
	return Stack[T]{Up: newUp, Focus: newFocus, Down: newDown}
}

// FocusDown moves the focus to the element below, wrapping to the top
// of the stack if already at the bottom.
func (s Stack[T]) FocusDown() Stack[T] {
	if len(s.Down) == 0 {
		if len(s.Up) == 0 {
			return s
		}
		all := s.Iter()
		newDown := make([]T, 0, len(all)-1)
		newDown = append(newDown, all[1:]...)
		return Stack[T]{Up: nil, Focus: all[0], Down: newDown}
	}
	newFocus := s.Down[0]
	newUp := make([]T, 0, len(s.Up)+1)
	newUp = append(newUp, s.Focus)
	newUp = append(newUp, s.Up...)
	newDown := make([]T, len(s.Down)-1)
	copy(newDown, s.Down[1:])
	return Stack[T]{Up: newUp, Focus: newFocus, Down: newDown}
}

// SwapUp swaps the focused item with its nearest neighbour above,
// wrapping around to the bottom if the focus is already at the top. The
// focused value itself is unchanged; only its position moves.
func (s Stack[T]) SwapUp() Stack[T] {
	if len(s.Up) == 0 {
		if len(s.Down) == 0 {
			return s
		}
		return Stack[T]{Up: reverseCopy(s.Down), Focus: s.Focus, Down: nil}
	}
	l := s.Up[0]
	newUp := append([]T{}, s.Up[1:]...)
	newDown := append([]T{l}, s.Down...)
	return Stack[T]{Up: newUp, Focus: s.Focus, Down: newDown}
}

// SwapDown swaps the focused item with its nearest neighbour below,
// wrapping around to the top if the focus is already at the bottom.
func (s Stack[T]) SwapDown() Stack[T] {
	if len(s.Down) == 0 {
		if len(s.Up) == 0 {
			return s
		}
		return Stack[T]{Up: nil, Focus: s.Focus, Down: reverseCopy(s.Up)}
	}
	r := s.Down[0]
	newDown := append([]T{}, s.Down[1:]...)
	newUp := append([]T{r}, s.Up...)
	return Stack[T]{Up: newUp, Focus: s.Focus, Down: newDown}
}

// SwapFocusToHead moves the focused element to the head of the stack
// (index 0 in iteration order) without changing focus identity.
func (s Stack[T]) SwapFocusToHead() Stack[T] {
	if len(s.Up) == 0 {
		return s
	}
	down := make([]T, 0, len(s.Up)+len(s.Down))
	down = append(down, reverseCopy(s.Up)...)
	down = append(down, s.Down...)
	return Stack[T]{Up: nil, Focus: s.Focus, Down: down}
}

// InsertPosition selects where Insert places a new element.
type InsertPosition int

const (
	// InsertHead places the new element at the very top, becoming focus.
	InsertHead InsertPosition = iota
	// InsertTail places the new element at the very bottom, focus unchanged.
	InsertTail
	// InsertAfterFocus places the new element immediately after the
	// current focus, and makes it the new focus.
	InsertAfterFocus
)

// Insert adds v to the stack at pos. InsertHead and InsertAfterFocus make
// v the new focus; InsertTail appends below Down without moving focus.
func Insert[T any](s Stack[T], v T, pos InsertPosition) Stack[T] {
	switch pos {
	case InsertHead:
		all := s.Iter()
		return Stack[T]{Up: nil, Focus: v, Down: all}
	case InsertTail:
		newDown := make([]T, len(s.Down), len(s.Down)+1)
		copy(newDown, s.Down)
		newDown = append(newDown, v)
		return Stack[T]{Up: s.Up, Focus: s.Focus, Down: newDown}
	case InsertAfterFocus:
		newUp := make([]T, 0, len(s.Up)+1)
		newUp = append(newUp, s.Focus)
		newUp = append(newUp, s.Up...)
		newDown := make([]T, len(s.Down))
		copy(newDown, s.Down)
		return Stack[T]{Up: newUp, Focus: v, Down: newDown}
	}
	return s
}

// RemoveFocused removes the currently focused element, promoting the
// nearest neighbour below, else the nearest neighbour above, as the new
// focus. Returns (zero, false) if s is a singleton.
func (s Stack[T]) RemoveFocused() (Stack[T], bool) {
	if len(s.Down) > 0 {
		return Stack[T]{Up: s.Up, Focus: s.Down[0], Down: s.Down[1:]}, true
	}
	if len(s.Up) > 0 {
		return Stack[T]{Up: s.Up[1:], Focus: s.Up[0], Down: nil}, true
	}
	var zero Stack[T]
	return zero, false
}

// Filter keeps only elements matching pred, preserving relative order.
// Returns (zero, false) if nothing survives. If the focused element
// itself is filtered out but others survive, the nearest surviving
// element below the old focus becomes the new focus, else the nearest
// surviving element above it.
func Filter[T any](s Stack[T], pred func(T) bool) (Stack[T], bool) {
	all := s.Iter()
	focusIdx := len(s.Up)

	type entry struct {
		v       T
		origIdx int
	}
	kept := make([]entry, 0, len(all))
	for i, v := range all {
		if pred(v) {
			kept = append(kept, entry{v: v, origIdx: i})
		}
	}
	if len(kept) == 0 {
		var zero Stack[T]
		return zero, false
	}

	keptFocusIdx := -1
	for ki, e := range kept {
		if e.origIdx == focusIdx {
			keptFocusIdx = ki
			break
		}
	}
	if keptFocusIdx == -1 {
		// Prefer nearest surviving element below the old focus.
		for ki, e := range kept {
			if e.origIdx > focusIdx {
				keptFocusIdx = ki
				break
			}
		}
	}
	if keptFocusIdx == -1 {
		// Nothing survived below; take the nearest above (the last kept).
		keptFocusIdx = len(kept) - 1
	}

	up := make([]T, keptFocusIdx)
	for i := 0; i < keptFocusIdx; i++ {
		up[i] = kept[i].v
	}
	down := make([]T, 0, len(kept)-keptFocusIdx-1)
	for i := keptFocusIdx + 1; i < len(kept); i++ {
		down = append(down, kept[i].v)
	}
	return Stack[T]{
		Up:    reverseCopy(up),
		Focus: kept[keptFocusIdx].v,
		Down:  down,
	}, true
}

// Map applies f to every element, preserving structure and focus
// position.
func Map[T, U any](s Stack[T], f func(T) U) Stack[U] {
	newUp := make([]U, len(s.Up))
	for i, v := range s.Up {
		newUp[i] = f(v)
	}
	newDown := make([]U, len(s.Down))
	for i, v := range s.Down {
		newDown[i] = f(v)
	}
	return Stack[U]{Up: newUp, Focus: f(s.Focus), Down: newDown}
}

// Contains reports whether v is anywhere in the stack, by equality.
func Contains[T comparable](s Stack[T], v T) bool {
	if s.Focus == v {
		return true
	}
	for _, u := range s.Up {
		if u == v {
			return true
		}
	}
	for _, d := range s.Down {
		if d == v {
			return true
		}
	}
	return false
}

func reverseCopy[T any](xs []T) []T {
	out := make([]T, len(xs))
	for i, v := range xs {
		out[len(xs)-1-i] = v
	}
	return out
}
