// Package layout implements the polymorphic layout engine (§4.3): a
// trait-object style Layout interface mapping a focused window stack
// inside a rectangle to concrete per-window rectangles, a typed dynamic
// message interface, and layout transformers.
package layout

import (
	"github.com/tilecore/wm/geometry"
	"github.com/tilecore/wm/xid"
	"github.com/tilecore/wm/zipper"
)

// Placement pairs a client with the rectangle the layout wants it drawn
// at. Order within a []Placement slice is top-to-bottom stacking: a
// client earlier in the slice is drawn above one later in the slice.
type Placement struct {
	Window xid.Xid
	Rect   geometry.Rect
}

// Message is a type-erased payload layouts may choose to react to.
// Layouts downcast with a type switch/assertion on Payload; unknown
// message types are silently ignored (§4.3.1).
type Message struct {
	Payload any
}

// NewMessage wraps v as a dynamic Message.
func NewMessage(v any) Message {
	return Message{Payload: v}
}

// Reserved framework messages (§4.3.1).
type (
	// Hide is sent to a workspace's active layout when that workspace
	// leaves a screen, so the layout can release per-workspace resources.
	Hide struct{}

	// UnwrapTransformer is handled only by the transformer layer: a
	// transformer receiving it replaces itself with its inner layout.
	UnwrapTransformer struct{}
)

// Built-in layout messages (§4.3).
type (
	// IncMain changes the main-area client count by Delta (may be
	// negative), clamped to at least 1 and at most the stack length.
	IncMain struct{ Delta int }

	// ExpandMain increases the main-area ratio by the layout's
	// configured step, clamped to (0,1).
	ExpandMain struct{}

	// ShrinkMain decreases the main-area ratio by the layout's
	// configured step, clamped to (0,1).
	ShrinkMain struct{}

	// Rotate cycles the orientation/ordering a layout uses (meaning is
	// layout-specific: MainAndStack rotates MainSide). Grid and
	// CenteredMain ignore it.
	Rotate struct{}

	// Mirror flips a layout's output about its region's axis.
	Mirror struct{}
)

// Layout is the core's abstract layout capability (§4.3). Implementations
// own their own mutable state (e.g. MainAndStack's ratio/count); Clone
// must deep-copy that state since a workspace's layout stack is cloned
// whenever the owning workspace is cloned.
type Layout interface {
	// Name returns the layout's display name; it may be computed
	// dynamically (e.g. to reflect current parameters).
	Name() string

	// Clone returns an independent copy of this layout, including its
	// internal mutable state.
	Clone() Layout

	// Layout is the primary entry point for a non-empty workspace. It
	// returns an optional replacement layout (non-nil if internal state
	// changed in a way that should be persisted) and the list of
	// per-client placements. A client present in stack but absent from
	// the returned list is unmapped.
	Layout(stack zipper.Stack[xid.Xid], region geometry.Rect) (Layout, []Placement)

	// LayoutEmpty is invoked for a workspace with no stack at all. The
	// default (for layouts that embed Base) returns an empty placement
	// list.
	LayoutEmpty(region geometry.Rect) (Layout, []Placement)

	// HandleMessage lets the layout react to a dynamic message. It
	// returns a replacement layout if its state changed, or nil if the
	// message was ignored (unknown or inapplicable message types are
	// always ignored, never an error).
	HandleMessage(m Message) Layout
}

// LayoutWorkspace dispatches to l.Layout or l.LayoutEmpty depending on
// whether stack is present, per §4.3's default dispatch rule.
func LayoutWorkspace(l Layout, stack *zipper.Stack[xid.Xid], region geometry.Rect) (Layout, []Placement) {
	if stack == nil {
		return l.LayoutEmpty(region)
	}
	return l.Layout(*stack, region)
}

// Base provides the LayoutEmpty default (empty placement list, no state
// change) so built-in layouts need only implement Name/Clone/Layout/
// HandleMessage. Embed it by value.
type Base struct{}

// LayoutEmpty implements the §4.3 default: empty region, no clients.
func (Base) LayoutEmpty(_ geometry.Rect) (Layout, []Placement) {
	return nil, nil
}
