package layout

import "github.com/tilecore/wm/zipper"

// LayoutStack holds the cycle of layouts available to a workspace as a
// zipper focused on the active one (§4.3: "a workspace holds an ordered,
// focused list of layouts; only the focused layout is ever asked to
// arrange windows").
type LayoutStack struct {
	stack zipper.Stack[Layout]
}

// NewLayoutStack builds a LayoutStack focused on the first of layouts.
// Panics if layouts is empty: a workspace with no layout choices is a
// construction error, not a runtime state to represent.
func NewLayoutStack(layouts []Layout) LayoutStack {
	return LayoutStack{stack: zipper.FromList(layouts)}
}

// Active returns the currently focused layout.
func (s LayoutStack) Active() Layout {
	return s.stack.Focus
}

// Clone deep-copies every layout in the cycle (each via its own Clone),
// so the copy shares no mutable layout state with the original. Used
// whenever the owning workspace is cloned.
func (s LayoutStack) Clone() LayoutStack {
	return LayoutStack{stack: zipper.Map(s.stack, func(l Layout) Layout {
		return l.Clone()
	})}
}

// Layouts returns the cycle's layouts in order, starting from the top
// of the cycle (not from the focused one).
func (s LayoutStack) Layouts() []Layout {
	return s.stack.Iter()
}

// Next rotates the focus to the next layout in the cycle, wrapping
// around.
func (s LayoutStack) Next() LayoutStack {
	return LayoutStack{stack: s.stack.FocusDown()}
}

// Previous rotates the focus to the previous layout in the cycle,
// wrapping around.
func (s LayoutStack) Previous() LayoutStack {
	return LayoutStack{stack: s.stack.FocusUp()}
}

// SetActive replaces the focused layout, leaving every other layout in
// the cycle untouched. Used after Active().Layout(...) returns a
// non-nil replacement.
func (s LayoutStack) SetActive(l Layout) LayoutStack {
	clone := s.stack
	clone.Focus = l
	return LayoutStack{stack: clone}
}

// Broadcast delivers m to every layout in the cycle, not only the
// active one, so that e.g. a global gap-size change reaches layouts the
// user isn't currently looking at. Layouts that return nil (message not
// handled) are left as they were.
func (s LayoutStack) Broadcast(m Message) LayoutStack {
	return LayoutStack{stack: zipper.Map(s.stack, func(l Layout) Layout {
		if updated := l.HandleMessage(m); updated != nil {
			return updated
		}
		return l
	})}
}

// HandleActive delivers m only to the focused layout (the default
// dispatch for layout-changing messages like IncMain or Rotate).
func (s LayoutStack) HandleActive(m Message) LayoutStack {
	clone := s.stack
	if updated := clone.Focus.HandleMessage(m); updated != nil {
		clone.Focus = updated
	}
	return LayoutStack{stack: clone}
}
