package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tilecore/wm/geometry"
	"github.com/tilecore/wm/layout"
	"github.com/tilecore/wm/wm"
	"github.com/tilecore/wm/xid"
)

func newReindexSet(t *testing.T, tags []string, screens int) wm.StackSet[xid.Xid] {
	t.Helper()
	geoms := make([]geometry.Rect, screens)
	for i := range geoms {
		geoms[i] = geometry.New(int32(i*1920), 0, 1920, 1080)
	}
	s, err := wm.New[xid.Xid](tags, geoms, func() layout.LayoutStack {
		return layout.NewLayoutStack([]layout.Layout{layout.NewMonocle()})
	})
	require.NoError(t, err)
	return s
}

func TestReindexScreensShrinkSpillsToHidden(t *testing.T) {
	s := newReindexSet(t, []string{"1", "2", "3"}, 2)
	next := ReindexScreens(s, []geometry.Rect{geometry.New(0, 0, 1920, 1080)})

	assert.Equal(t, 1, next.Screens.Len())
	assert.Equal(t, "1", next.Screens.Focus.Workspace.Tag)

	foundTwo := false
	for _, w := range next.Hidden {
		if w.Tag == "2" {
			foundTwo = true
		}
	}
	assert.True(t, foundTwo, "screen 1's workspace must spill to hidden")
}

func TestReindexScreensGrowPullsFromHidden(t *testing.T) {
	s := newReindexSet(t, []string{"1", "2", "3"}, 1)
	next := ReindexScreens(s, []geometry.Rect{
		geometry.New(0, 0, 1920, 1080),
		geometry.New(1920, 0, 1920, 1080),
	})

	screens := next.Screens.Iter()
	require.Len(t, screens, 2)
	assert.Equal(t, "1", screens[0].Workspace.Tag)
	assert.Equal(t, "2", screens[1].Workspace.Tag, "first hidden workspace fills the new output")

	for _, w := range next.Hidden {
		assert.NotEqual(t, "2", w.Tag)
	}
}

func TestReindexScreensPreservesFocusedTag(t *testing.T) {
	s := newReindexSet(t, []string{"1", "2", "3"}, 3)
	viewed, err := s.View("2")
	require.NoError(t, err)

	next := ReindexScreens(viewed, []geometry.Rect{
		geometry.New(0, 0, 1920, 1080),
		geometry.New(1920, 0, 1920, 1080),
	})
	assert.Equal(t, "2", next.CurrentTag(), "focus follows the previously-focused tag to its surviving screen")
}

func TestReindexScreensSameCountUpdatesGeometryOnly(t *testing.T) {
	s := newReindexSet(t, []string{"1", "2"}, 2)
	bigger := []geometry.Rect{
		geometry.New(0, 0, 2560, 1440),
		geometry.New(2560, 0, 2560, 1440),
	}
	next := ReindexScreens(s, bigger)

	screens := next.Screens.Iter()
	require.Len(t, screens, 2)
	assert.Equal(t, bigger[0], screens[0].Geometry)
	assert.Equal(t, bigger[1], screens[1].Geometry)
	assert.Equal(t, "1", screens[0].Workspace.Tag)
	assert.Equal(t, "2", screens[1].Workspace.Tag)
}
