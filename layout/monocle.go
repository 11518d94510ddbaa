package layout

import (
	"github.com/tilecore/wm/geometry"
	"github.com/tilecore/wm/xid"
	"github.com/tilecore/wm/zipper"
)

// Monocle gives the focused window the full region; every other window
// in the stack is left unmapped.
type Monocle struct {
	Base
}

// NewMonocle constructs a Monocle layout.
func NewMonocle() *Monocle {
	return &Monocle{}
}

func (m *Monocle) Name() string { return "monocle" }

func (m *Monocle) Clone() Layout {
	clone := *m
	return &clone
}

func (m *Monocle) Layout(stack zipper.Stack[xid.Xid], region geometry.Rect) (Layout, []Placement) {
	return nil, []Placement{{Window: stack.Focus, Rect: region}}
}

func (m *Monocle) HandleMessage(Message) Layout {
	return nil
}
