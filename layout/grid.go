package layout

import (
	"github.com/tilecore/wm/geometry"
	"github.com/tilecore/wm/xid"
	"github.com/tilecore/wm/zipper"
)

// Grid arranges every window in the stack in the smallest ceil(sqrt(k))
// x ceil(sqrt(k)) grid that fits k windows.
type Grid struct {
	Base
}

// NewGrid constructs a Grid layout.
func NewGrid() *Grid {
	return &Grid{}
}

func (g *Grid) Name() string { return "grid" }

func (g *Grid) Clone() Layout {
	clone := *g
	return &clone
}

func (g *Grid) Layout(stack zipper.Stack[xid.Xid], region geometry.Rect) (Layout, []Placement) {
	clients := stack.Iter()
	cells := region.Subdivide(len(clients))
	placements := make([]Placement, len(clients))
	for i, c := range clients {
		placements[i] = Placement{Window: c, Rect: cells[i]}
	}
	return nil, placements
}

func (g *Grid) HandleMessage(Message) Layout {
	return nil
}
