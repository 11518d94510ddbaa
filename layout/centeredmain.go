package layout

import (
	"github.com/tilecore/wm/geometry"
	"github.com/tilecore/wm/xid"
	"github.com/tilecore/wm/zipper"
)

// CenteredMain centers up to MainCount windows in a middle column, and
// splits the remaining windows evenly between a left and a right
// secondary column (alternating nearest-first: 1st secondary client to
// the right, 2nd to the left, 3rd to the right, ...).
type CenteredMain struct {
	Base
	MainCount int
	MainRatio float64
	Step      float64
}

// NewCenteredMain builds a CenteredMain layout.
func NewCenteredMain(mainCount int, mainRatio float64) *CenteredMain {
	if mainCount < 1 {
		mainCount = 1
	}
	return &CenteredMain{
		MainCount: mainCount,
		MainRatio: clampOpen(mainRatio),
		Step:      0.05,
	}
}

func (l *CenteredMain) Name() string { return "centered-main" }

func (l *CenteredMain) Clone() Layout {
	clone := *l
	return &clone
}

func (l *CenteredMain) Layout(stack zipper.Stack[xid.Xid], region geometry.Rect) (Layout, []Placement) {
	clients := stack.Iter()
	n := clampMainCount(l.MainCount, len(clients))
	main := clients[:n]
	rest := clients[n:]

	var left, right []xid.Xid
	for i, c := range rest {
		if i%2 == 0 {
			right = append(right, c)
		} else {
			left = append(left, c)
		}
	}

	if len(rest) == 0 {
		return nil, placeColumn(main, region)
	}

	sideFrac := (1 - l.MainRatio) / 2
	leftFrac, mainFrac, rightFrac := sideFrac, l.MainRatio, sideFrac
	if len(left) == 0 {
		mainFrac += leftFrac
		leftFrac = 0
	}
	if len(right) == 0 {
		mainFrac += rightFrac
		rightFrac = 0
	}

	cols := region.SplitFractionsVertical([]float64{leftFrac, mainFrac, rightFrac})
	leftRegion, mainRegion, rightRegion := cols[0], cols[1], cols[2]

	placements := make([]Placement, 0, len(clients))
	placements = append(placements, placeColumn(main, mainRegion)...)
	placements = append(placements, placeColumn(left, leftRegion)...)
	placements = append(placements, placeColumn(right, rightRegion)...)
	return nil, placements
}

func placeColumn(clients []xid.Xid, region geometry.Rect) []Placement {
	if len(clients) == 0 {
		return nil
	}
	rows := region.SplitRows(len(clients))
	out := make([]Placement, len(clients))
	for i, c := range clients {
		out[i] = Placement{Window: c, Rect: rows[i]}
	}
	return out
}

func (l *CenteredMain) HandleMessage(m Message) Layout {
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
	case Rotate, Mirror:
		// Symmetric by construction; nothing to rotate or mirror.
		return nil
	default:
		return nil
	}
	return &clone
}
