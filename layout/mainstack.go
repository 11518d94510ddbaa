package layout

import (
	"fmt"

	"github.com/tilecore/wm/geometry"
	"github.com/tilecore/wm/xid"
	"github.com/tilecore/wm/zipper"
)

// Side identifies which edge of the region the main area occupies.
type Side int

const (
	SideLeft Side = iota
	SideRight
	SideTop
	SideBottom
)

func (s Side) String() string {
	switch s {
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	case SideTop:
		return "top"
	case SideBottom:
		return "bottom"
	}
	return "unknown"
}

func (s Side) rotateClockwise() Side {
	switch s {
	case SideLeft:
		return SideTop
	case SideTop:
		return SideRight
	case SideRight:
		return SideBottom
	default:
		return SideLeft
	}
}

func (s Side) mirror() Side {
	switch s {
	case SideLeft:
		return SideRight
	case SideRight:
		return SideLeft
	case SideTop:
		return SideBottom
	default:
		return SideTop
	}
}

// MainAndStack splits the region into a main area (holding up to
// MainCount windows, nearest the given MainSide) and a stack area
// holding the rest.
type MainAndStack struct {
	Base
	MainSide  Side
	MainCount int
	MainRatio float64
	Step      float64
}

// NewMainAndStack builds a MainAndStack layout with the given main side,
// main-area client count (clamped to >= 1) and main-area ratio (clamped
// to (0,1)).
func NewMainAndStack(side Side, mainCount int, mainRatio float64) *MainAndStack {
	if mainCount < 1 {
		mainCount = 1
	}
	return &MainAndStack{
		MainSide:  side,
		MainCount: mainCount,
		MainRatio: clampOpen(mainRatio),
		Step:      0.05,
	}
}

func (l *MainAndStack) Name() string {
	return fmt.Sprintf("mainstack-%s", l.MainSide)
}

func (l *MainAndStack) Clone() Layout {
	clone := *l
	return &clone
}

func (l *MainAndStack) Layout(stack zipper.Stack[xid.Xid], region geometry.Rect) (Layout, []Placement) {
	clients := stack.Iter()
	n := clampMainCount(l.MainCount, len(clients))

	main := clients[:n]
	rest := clients[n:]

	var mainRegion, stackRegion geometry.Rect
	switch l.MainSide {
	case SideLeft:
		mainRegion, stackRegion = region.SplitVertical(l.MainRatio)
	case SideRight:
		stackRegion, mainRegion = region.SplitVertical(1 - l.MainRatio)
	case SideTop:
		mainRegion, stackRegion = region.SplitHorizontal(l.MainRatio)
	case SideBottom:
		stackRegion, mainRegion = region.SplitHorizontal(1 - l.MainRatio)
	}

	if len(rest) == 0 {
		mainRegion = region
	}

	placements := make([]Placement, 0, len(clients))
	for i, rect := range axisSplit(l.MainSide, mainRegion, len(main)) {
		placements = append(placements, Placement{Window: main[i], Rect: rect})
	}
	for i, rect := range axisSplit(l.MainSide, stackRegion, len(rest)) {
		placements = append(placements, Placement{Window: rest[i], Rect: rect})
	}

	return nil, placements
}

// axisSplit divides region into n pieces stacked along the axis
// perpendicular to side (rows for a left/right main area, columns for a
// top/bottom one), matching how a MainAndStack area subdivides.
func axisSplit(side Side, region geometry.Rect, n int) []geometry.Rect {
	if n == 0 {
		return nil
	}
	switch side {
	case SideLeft, SideRight:
		return region.SplitRows(n)
	default:
		return region.SplitColumns(n)
	}
}

func (l *MainAndStack) HandleMessage(m Message) Layout {
	clone := *l
	switch msg := m.Payload.(type) {
	case IncMain:
		n := clone.MainCount + msg.Delta
		if n < 1 {
			n = 1
		}
		clone.MainCount = n
	case ExpandMain:
		clone.MainRatio = clampOpen(clone.MainRatio + clone.Step)
	case ShrinkMain:
		clone.MainRatio = clampOpen(clone.MainRatio - clone.Step)
	case Rotate:
		clone.MainSide = clone.MainSide.rotateClockwise()
	case Mirror:
		clone.MainSide = clone.MainSide.mirror()
	default:
		return nil
	}
	return &clone
}

func clampOpen(v float64) float64 {
	const eps = 0.01
	if v < eps {
		return eps
	}
	if v > 1-eps {
		return 1 - eps
	}
	return v
}

func clampMainCount(n, total int) int {
	if n > total {
		return total
	}
	if n < 0 {
		return 0
	}
	return n
}
