package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tilecore/wm/geometry"
	"github.com/tilecore/wm/xid"
	"github.com/tilecore/wm/zipper"
)

func stackOf(ids ...xid.Xid) zipper.Stack[xid.Xid] {
	return zipper.FromList(ids)
}

func totalArea(rects []geometry.Rect) int64 {
	var total int64
	for _, r := range rects {
		total += int64(r.Width) * int64(r.Height)
	}
	return total
}

func TestMonocleGivesFocusFullRegion(t *testing.T) {
	region := geometry.New(0, 0, 1920, 1080)
	s := stackOf(1, 2, 3)
	_, placements := (&Monocle{}).Layout(s, region)
	assert.Len(t, placements, 1)
	assert.Equal(t, s.Focus, placements[0].Window)
	assert.Equal(t, region, placements[0].Rect)
}

func TestMainAndStackCountsSatisfyProperty(t *testing.T) {
	region := geometry.New(0, 0, 1920, 1080)
	l := NewMainAndStack(SideLeft, 2, 0.5)
	for _, n := range []int{1, 2, 3, 5} {
		ids := make([]xid.Xid, n)
		for i := range ids {
			ids[i] = xid.Xid(i + 1)
		}
		_, placements := l.Layout(stackOf(ids...), region)
		assert.Len(t, placements, n)
		mainWindows := 0
		for _, p := range placements {
			if p.Rect.X < region.X+int32(region.Width/2) {
				mainWindows++
			}
		}
		assert.Equal(t, min(l.MainCount, n), mainWindows)
	}
}

func TestMainAndStackTilesRegionExactly(t *testing.T) {
	region := geometry.New(0, 0, 1920, 1080)
	l := NewMainAndStack(SideLeft, 1, 0.6)
	_, placements := l.Layout(stackOf(1, 2, 3, 4), region)
	var rects []geometry.Rect
	for _, p := range placements {
		rects = append(rects, p.Rect)
	}
	assert.Equal(t, int64(region.Width)*int64(region.Height), totalArea(rects))
}

func TestMainAndStackHandleMessageIncMain(t *testing.T) {
	l := NewMainAndStack(SideLeft, 1, 0.5)
	updated := l.HandleMessage(NewMessage(IncMain{Delta: 2}))
	ms, ok := updated.(*MainAndStack)
	assert.True(t, ok)
	assert.Equal(t, 3, ms.MainCount)
}

func TestMainAndStackRotateCycles(t *testing.T) {
	l := NewMainAndStack(SideLeft, 1, 0.5)
	updated := l.HandleMessage(NewMessage(Rotate{})).(*MainAndStack)
	assert.Equal(t, SideTop, updated.MainSide)
}

func TestMainAndStackIgnoresUnknownMessage(t *testing.T) {
	l := NewMainAndStack(SideLeft, 1, 0.5)
	assert.Nil(t, l.HandleMessage(NewMessage("unknown")))
}

func TestCenteredMainSingleColumnWhenNoSecondaries(t *testing.T) {
	region := geometry.New(0, 0, 1920, 1080)
	l := NewCenteredMain(2, 0.5)
	_, placements := l.Layout(stackOf(1, 2), region)
	assert.Len(t, placements, 2)
}

func TestCenteredMainTilesRegionExactly(t *testing.T) {
	region := geometry.New(0, 0, 1920, 1080)
	l := NewCenteredMain(1, 0.5)
	_, placements := l.Layout(stackOf(1, 2, 3, 4, 5), region)
	var rects []geometry.Rect
	for _, p := range placements {
		rects = append(rects, p.Rect)
	}
	assert.Equal(t, int64(region.Width)*int64(region.Height), totalArea(rects))
}

func TestGridCoversAllClients(t *testing.T) {
	region := geometry.New(0, 0, 1920, 1080)
	g := NewGrid()
	for _, n := range []int{1, 2, 3, 4, 5, 9} {
		ids := make([]xid.Xid, n)
		for i := range ids {
			ids[i] = xid.Xid(i + 1)
		}
		_, placements := g.Layout(stackOf(ids...), region)
		assert.Len(t, placements, n)
	}
}

func TestLayoutWorkspaceDispatchesEmpty(t *testing.T) {
	region := geometry.New(0, 0, 800, 600)
	l := NewGrid()
	_, placements := LayoutWorkspace(l, nil, region)
	assert.Nil(t, placements)
}

func TestGapsShrinksOuterAndInner(t *testing.T) {
	region := geometry.New(0, 0, 1000, 1000)
	g := NewGaps(&Monocle{}, 10, 20)
	_, placements := g.Layout(stackOf(1), region)
	assert.Len(t, placements, 1)
	r := placements[0].Rect
	assert.Equal(t, int32(20), r.X)
	assert.Equal(t, int32(20), r.Y)
	assert.Equal(t, uint32(960), r.Width)
	assert.Equal(t, uint32(960), r.Height)
}

func TestGapsUnwrapTransformerReturnsInner(t *testing.T) {
	inner := &Monocle{}
	g := NewGaps(inner, 10, 20)
	unwrapped := g.HandleMessage(NewMessage(UnwrapTransformer{}))
	assert.Same(t, inner, unwrapped)
}

func TestReflectHorizontalMirrorsXPosition(t *testing.T) {
	region := geometry.New(0, 0, 1000, 1000)
	l := NewMainAndStack(SideLeft, 1, 0.5)
	rh := NewReflectHorizontal(l)
	_, direct := l.Layout(stackOf(1, 2), region)
	_, mirrored := rh.Layout(stackOf(1, 2), region)
	for i := range direct {
		expectedX := region.X + int32(region.Width) - (direct[i].Rect.X - region.X) - int32(direct[i].Rect.Width)
		assert.Equal(t, expectedX, mirrored[i].Rect.X)
		assert.Equal(t, direct[i].Rect.Y, mirrored[i].Rect.Y)
	}
}

func TestReflectVerticalMirrorsYPosition(t *testing.T) {
	region := geometry.New(0, 0, 1000, 1000)
	l := NewMainAndStack(SideTop, 1, 0.5)
	rv := NewReflectVertical(l)
	_, direct := l.Layout(stackOf(1, 2), region)
	_, mirrored := rv.Layout(stackOf(1, 2), region)
	for i := range direct {
		expectedY := region.Y + int32(region.Height) - (direct[i].Rect.Y - region.Y) - int32(direct[i].Rect.Height)
		assert.Equal(t, expectedY, mirrored[i].Rect.Y)
	}
}

func TestReserveTopExcludesStrip(t *testing.T) {
	region := geometry.New(0, 0, 1000, 1000)
	rt := NewReserveTop(&Monocle{}, 30)
	_, placements := rt.Layout(stackOf(1), region)
	assert.Equal(t, int32(30), placements[0].Rect.Y)
	assert.Equal(t, uint32(970), placements[0].Rect.Height)
}

func TestLayoutStackNextPreviousWrap(t *testing.T) {
	ls := NewLayoutStack([]Layout{&Monocle{}, NewGrid()})
	assert.Equal(t, "monocle", ls.Active().Name())
	ls = ls.Next()
	assert.Equal(t, "grid", ls.Active().Name())
	ls = ls.Next()
	assert.Equal(t, "monocle", ls.Active().Name())
	ls = ls.Previous()
	assert.Equal(t, "grid", ls.Active().Name())
}

func TestLayoutStackBroadcastReachesInactiveLayouts(t *testing.T) {
	ls := NewLayoutStack([]Layout{NewMainAndStack(SideLeft, 1, 0.5), NewMainAndStack(SideRight, 1, 0.5)})
	ls = ls.Broadcast(NewMessage(IncMain{Delta: 1}))
	first := ls.Active().(*MainAndStack)
	assert.Equal(t, 2, first.MainCount)
	second := ls.Next().Active().(*MainAndStack)
	assert.Equal(t, 2, second.MainCount)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
