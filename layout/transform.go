package layout

import (
	"fmt"

	"github.com/tilecore/wm/geometry"
	"github.com/tilecore/wm/xid"
	"github.com/tilecore/wm/zipper"
)

// handleWrappedMessage implements the shared transformer message
// discipline (§4.3.2): UnwrapTransformer replaces the transformer with
// its inner layout; every other message is forwarded to inner, and the
// transformer is rebuilt around whatever inner returns (nil if inner
// didn't change).
func handleWrappedMessage(inner Layout, m Message, rewrap func(Layout) Layout) Layout {
	if _, ok := m.Payload.(UnwrapTransformer); ok {
		return inner
	}
	newInner := inner.HandleMessage(m)
	if newInner == nil {
		return nil
	}
	return rewrap(newInner)
}

// Gaps shrinks the region by Outer pixels before delegating to Inner,
// then shrinks every rectangle Inner returns by Gap/2 pixels on each
// side, so neighbouring windows end up Gap pixels apart.
type Gaps struct {
	Inner Layout
	Outer uint32
	Gap   uint32
}

// NewGaps wraps inner with outer-screen and inner-window gaps.
func NewGaps(inner Layout, outer, gap uint32) *Gaps {
	return &Gaps{Inner: inner, Outer: outer, Gap: gap}
}

func (g *Gaps) Name() string { return fmt.Sprintf("gaps(%s)", g.Inner.Name()) }

func (g *Gaps) Clone() Layout {
	return &Gaps{Inner: g.Inner.Clone(), Outer: g.Outer, Gap: g.Gap}
}

func (g *Gaps) Layout(stack zipper.Stack[xid.Xid], region geometry.Rect) (Layout, []Placement) {
	newInner, placements := g.Inner.Layout(stack, region.ShrinkIn(g.Outer))
	return g.rewrapIfChanged(newInner), shrinkPlacements(placements, g.Gap/2)
}

func (g *Gaps) LayoutEmpty(region geometry.Rect) (Layout, []Placement) {
	newInner, placements := g.Inner.LayoutEmpty(region.ShrinkIn(g.Outer))
	return g.rewrapIfChanged(newInner), shrinkPlacements(placements, g.Gap/2)
}

func (g *Gaps) HandleMessage(m Message) Layout {
	return handleWrappedMessage(g.Inner, m, func(newInner Layout) Layout {
		return &Gaps{Inner: newInner, Outer: g.Outer, Gap: g.Gap}
	})
}

func (g *Gaps) rewrapIfChanged(newInner Layout) Layout {
	if newInner == nil {
		return nil
	}
	return &Gaps{Inner: newInner, Outer: g.Outer, Gap: g.Gap}
}

func shrinkPlacements(placements []Placement, half uint32) []Placement {
	if half == 0 || placements == nil {
		return placements
	}
	out := make([]Placement, len(placements))
	for i, p := range placements {
		out[i] = Placement{Window: p.Window, Rect: p.Rect.ShrinkIn(half)}
	}
	return out
}

// reflectAxis identifies which axis a reflection mirrors about.
type reflectAxis int

const (
	axisHorizontal reflectAxis = iota // mirror about the vertical midline (left/right)
	axisVertical                      // mirror about the horizontal midline (top/bottom)
)

// reflect mirrors a single placement's rectangle within region about the
// given axis.
func reflect(region geometry.Rect, r geometry.Rect, axis reflectAxis) geometry.Rect {
	switch axis {
	case axisHorizontal:
		mirroredX := region.X + int32(region.Width) - (r.X - region.X) - int32(r.Width)
		return geometry.Rect{X: mirroredX, Y: r.Y, Width: r.Width, Height: r.Height}
	default:
		mirroredY := region.Y + int32(region.Height) - (r.Y - region.Y) - int32(r.Height)
		return geometry.Rect{X: r.X, Y: mirroredY, Width: r.Width, Height: r.Height}
	}
}

// ReflectHorizontal mirrors its inner layout's output about the
// region's vertical midline (swaps left and right).
type ReflectHorizontal struct {
	Inner Layout
}

// NewReflectHorizontal wraps inner with a horizontal mirror.
func NewReflectHorizontal(inner Layout) *ReflectHorizontal {
	return &ReflectHorizontal{Inner: inner}
}

func (r *ReflectHorizontal) Name() string { return fmt.Sprintf("reflect-h(%s)", r.Inner.Name()) }

func (r *ReflectHorizontal) Clone() Layout {
	return &ReflectHorizontal{Inner: r.Inner.Clone()}
}

func (r *ReflectHorizontal) Layout(stack zipper.Stack[xid.Xid], region geometry.Rect) (Layout, []Placement) {
	newInner, placements := r.Inner.Layout(stack, region)
	return r.rewrap(newInner), reflectPlacements(region, placements, axisHorizontal)
}

func (r *ReflectHorizontal) LayoutEmpty(region geometry.Rect) (Layout, []Placement) {
	newInner, placements := r.Inner.LayoutEmpty(region)
	return r.rewrap(newInner), reflectPlacements(region, placements, axisHorizontal)
}

func (r *ReflectHorizontal) HandleMessage(m Message) Layout {
	return handleWrappedMessage(r.Inner, m, func(newInner Layout) Layout {
		return &ReflectHorizontal{Inner: newInner}
	})
}

func (r *ReflectHorizontal) rewrap(newInner Layout) Layout {
	if newInner == nil {
		return nil
	}
	return &ReflectHorizontal{Inner: newInner}
}

// ReflectVertical mirrors its inner layout's output about the region's
// horizontal midline (swaps top and bottom).
type ReflectVertical struct {
	Inner Layout
}

// NewReflectVertical wraps inner with a vertical mirror.
func NewReflectVertical(inner Layout) *ReflectVertical {
	return &ReflectVertical{Inner: inner}
}

func (r *ReflectVertical) Name() string { return fmt.Sprintf("reflect-v(%s)", r.Inner.Name()) }

func (r *ReflectVertical) Clone() Layout {
	return &ReflectVertical{Inner: r.Inner.Clone()}
}

func (r *ReflectVertical) Layout(stack zipper.Stack[xid.Xid], region geometry.Rect) (Layout, []Placement) {
	newInner, placements := r.Inner.Layout(stack, region)
	return r.rewrap(newInner), reflectPlacements(region, placements, axisVertical)
}

func (r *ReflectVertical) LayoutEmpty(region geometry.Rect) (Layout, []Placement) {
	newInner, placements := r.Inner.LayoutEmpty(region)
	return r.rewrap(newInner), reflectPlacements(region, placements, axisVertical)
}

func (r *ReflectVertical) HandleMessage(m Message) Layout {
	return handleWrappedMessage(r.Inner, m, func(newInner Layout) Layout {
		return &ReflectVertical{Inner: newInner}
	})
}

func (r *ReflectVertical) rewrap(newInner Layout) Layout {
	if newInner == nil {
		return nil
	}
	return &ReflectVertical{Inner: newInner}
}

func reflectPlacements(region geometry.Rect, placements []Placement, axis reflectAxis) []Placement {
	if placements == nil {
		return nil
	}
	out := make([]Placement, len(placements))
	for i, p := range placements {
		out[i] = Placement{Window: p.Window, Rect: reflect(region, p.Rect, axis)}
	}
	return out
}

// ReserveTop reserves Height rows at the top of the region for an
// external status bar, excluding that strip from Inner's region.
type ReserveTop struct {
	Inner  Layout
	Height uint32
}

// NewReserveTop wraps inner, reserving height pixels at the top.
func NewReserveTop(inner Layout, height uint32) *ReserveTop {
	return &ReserveTop{Inner: inner, Height: height}
}

func (r *ReserveTop) Name() string { return fmt.Sprintf("reserve-top(%s)", r.Inner.Name()) }

func (r *ReserveTop) Clone() Layout {
	return &ReserveTop{Inner: r.Inner.Clone(), Height: r.Height}
}

func (r *ReserveTop) shrink(region geometry.Rect) geometry.Rect {
	h := r.Height
	if h > region.Height {
		h = region.Height
	}
	return geometry.Rect{X: region.X, Y: region.Y + int32(h), Width: region.Width, Height: region.Height - h}
}

func (r *ReserveTop) Layout(stack zipper.Stack[xid.Xid], region geometry.Rect) (Layout, []Placement) {
	newInner, placements := r.Inner.Layout(stack, r.shrink(region))
	return r.rewrap(newInner), placements
}

func (r *ReserveTop) LayoutEmpty(region geometry.Rect) (Layout, []Placement) {
	newInner, placements := r.Inner.LayoutEmpty(r.shrink(region))
	return r.rewrap(newInner), placements
}

func (r *ReserveTop) HandleMessage(m Message) Layout {
	return handleWrappedMessage(r.Inner, m, func(newInner Layout) Layout {
		return &ReserveTop{Inner: newInner, Height: r.Height}
	})
}

func (r *ReserveTop) rewrap(newInner Layout) Layout {
	if newInner == nil {
		return nil
	}
	return &ReserveTop{Inner: newInner, Height: r.Height}
}
