package wm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tilecore/wm/geometry"
	"github.com/tilecore/wm/layout"
)

func newTestSet(t *testing.T, tags []string, screens int) StackSet[int] {
	t.Helper()
	geoms := make([]geometry.Rect, screens)
	for i := range geoms {
		geoms[i] = geometry.New(int32(i*1920), 0, 1920, 1080)
	}
	s, err := New[int](tags, geoms, func() layout.LayoutStack {
		return layout.NewLayoutStack([]layout.Layout{layout.NewMonocle(), layout.NewGrid()})
	})
	require.NoError(t, err)
	return s
}

func TestNewValidatesTagsAndScreens(t *testing.T) {
	geoms := []geometry.Rect{geometry.New(0, 0, 100, 100)}
	_, err := New[int](nil, geoms, func() layout.LayoutStack { return layout.NewLayoutStack([]layout.Layout{layout.NewMonocle()}) })
	assert.Error(t, err)

	_, err = New[int]([]string{"a", "a"}, geoms, func() layout.LayoutStack { return layout.NewLayoutStack([]layout.Layout{layout.NewMonocle()}) })
	assert.Error(t, err)

	_, err = New[int]([]string{"a"}, []geometry.Rect{geoms[0], geoms[0]}, func() layout.LayoutStack { return layout.NewLayoutStack([]layout.Layout{layout.NewMonocle()}) })
	assert.Error(t, err)
}

func TestInsertAndFocusedClient(t *testing.T) {
	s := newTestSet(t, []string{"1", "2", "3"}, 1)
	s, err := s.InsertDefault(10)
	require.NoError(t, err)
	s, err = s.InsertDefault(11)
	require.NoError(t, err)
	id, ok := s.FocusedClient()
	require.True(t, ok)
	assert.Equal(t, 11, id)
}

func TestInsertRejectsDuplicateClient(t *testing.T) {
	s := newTestSet(t, []string{"1", "2"}, 1)
	s, err := s.InsertDefault(10)
	require.NoError(t, err)
	_, err = s.InsertDefault(10)
	assert.Error(t, err)
}

func TestViewIsIdempotent(t *testing.T) {
	s := newTestSet(t, []string{"1", "2", "3"}, 1)
	before := s.CurrentTag()
	after, err := s.View(before)
	require.NoError(t, err)
	assert.Equal(t, before, after.CurrentTag())
	assert.Nil(t, after.PreviousTag)
}

func TestViewABARoundTrip(t *testing.T) {
	s := newTestSet(t, []string{"1", "2", "3"}, 1)
	a := s.CurrentTag()
	s, err := s.View("2")
	require.NoError(t, err)
	s, err = s.View(a)
	require.NoError(t, err)
	assert.Equal(t, a, s.CurrentTag())
}

func TestViewUnknownTagErrors(t *testing.T) {
	s := newTestSet(t, []string{"1", "2"}, 1)
	_, err := s.View("nope")
	assert.Error(t, err)
}

func TestViewSwapsHiddenWorkspaceIn(t *testing.T) {
	s := newTestSet(t, []string{"1", "2", "3"}, 1)
	require.Len(t, s.Hidden, 2)
	s, err := s.View("3")
	require.NoError(t, err)
	assert.Equal(t, "3", s.CurrentTag())
	tags := map[string]bool{}
	for _, w := range s.Hidden {
		tags[w.Tag] = true
	}
	assert.True(t, tags["1"])
}

func TestGreedyViewSwapsScreensInsteadOfFocus(t *testing.T) {
	s := newTestSet(t, []string{"1", "2"}, 2)
	focusedScreenBefore := s.Screens.Focus.Index
	s2, err := s.GreedyView("2")
	require.NoError(t, err)
	assert.Equal(t, focusedScreenBefore, s2.Screens.Focus.Index, "greedy_view preserves screen focus")
	assert.Equal(t, "2", s2.Screens.Focus.Workspace.Tag)
}

func TestToggleTagNoopWithoutPreviousTag(t *testing.T) {
	s := newTestSet(t, []string{"1", "2"}, 1)
	s2, err := s.ToggleTag()
	require.NoError(t, err)
	assert.Equal(t, s.CurrentTag(), s2.CurrentTag())
}

func TestToggleTagReturnsToPreviousTag(t *testing.T) {
	s := newTestSet(t, []string{"1", "2", "3"}, 1)
	a := s.CurrentTag()
	s, err := s.View("2")
	require.NoError(t, err)
	s, err = s.ToggleTag()
	require.NoError(t, err)
	assert.Equal(t, a, s.CurrentTag())
}

func TestMoveClientToTag(t *testing.T) {
	s := newTestSet(t, []string{"1", "2"}, 1)
	s, err := s.InsertDefault(10)
	require.NoError(t, err)
	s, err = s.MoveClientToTag("2")
	require.NoError(t, err)

	assert.True(t, s.Screens.Focus.Workspace.Stack == nil)
	s2, err := s.View("2")
	require.NoError(t, err)
	id, ok := s2.FocusedClient()
	require.True(t, ok)
	assert.Equal(t, 10, id)
}

func TestMoveClientToTagRoundTripRestoresLocation(t *testing.T) {
	s := newTestSet(t, []string{"1", "2"}, 1)
	s, err := s.InsertDefault(10)
	require.NoError(t, err)
	original := s.CurrentTag()

	s, err = s.MoveClientToTag("2")
	require.NoError(t, err)
	s, err = s.View("2")
	require.NoError(t, err)
	s, err = s.MoveClientToTag(original)
	require.NoError(t, err)
	s, err = s.View(original)
	require.NoError(t, err)

	id, ok := s.FocusedClient()
	require.True(t, ok)
	assert.Equal(t, 10, id)
}

func TestMoveClientToScreen(t *testing.T) {
	s := newTestSet(t, []string{"1", "2"}, 2)
	s, err := s.InsertDefault(10)
	require.NoError(t, err)
	s, err = s.MoveClientToScreen(1)
	require.NoError(t, err)
	assert.Nil(t, s.Screens.Focus.Workspace.Stack)

	s2 := s.NextScreen()
	id, ok := s2.FocusedClient()
	require.True(t, ok)
	assert.Equal(t, 10, id)
}

func TestRemoveStripsClientEverywhere(t *testing.T) {
	s := newTestSet(t, []string{"1", "2"}, 1)
	s, err := s.InsertDefault(10)
	require.NoError(t, err)
	s, err = s.Float(10, geometry.New(0, 0, 100, 100))
	require.NoError(t, err)
	require.Contains(t, s.Floating, 10)

	s = s.Remove(10)
	assert.Nil(t, s.Screens.Focus.Workspace.Stack)
	assert.NotContains(t, s.Floating, 10)
}

func TestFocusClientBringsHiddenWorkspaceForward(t *testing.T) {
	s := newTestSet(t, []string{"1", "2"}, 1)
	s, err := s.View("2")
	require.NoError(t, err)
	s, err = s.InsertDefault(10)
	require.NoError(t, err)
	s, err = s.View("1")
	require.NoError(t, err)

	s, err = s.FocusClient(10)
	require.NoError(t, err)
	assert.Equal(t, "2", s.CurrentTag())
	id, ok := s.FocusedClient()
	require.True(t, ok)
	assert.Equal(t, 10, id)
}

func TestFocusClientUnknownErrors(t *testing.T) {
	s := newTestSet(t, []string{"1"}, 1)
	_, err := s.FocusClient(999)
	assert.Error(t, err)
}

func TestNextPreviousScreenWraps(t *testing.T) {
	s := newTestSet(t, []string{"1", "2", "3"}, 3)
	tag0 := s.CurrentTag()
	s2 := s.NextScreen().NextScreen().NextScreen()
	assert.Equal(t, tag0, s2.CurrentTag())
	s3 := s.PreviousScreen()
	assert.NotEqual(t, tag0, s3.CurrentTag())
}

func TestFloatNormalizesAgainstScreenGeometry(t *testing.T) {
	s := newTestSet(t, []string{"1"}, 1)
	s, err := s.InsertDefault(10)
	require.NoError(t, err)
	s, err = s.Float(10, geometry.New(192, 108, 192, 108))
	require.NoError(t, err)
	frac := s.Floating[10]
	assert.InDelta(t, 0.1, frac.X, 0.001)
	assert.InDelta(t, 0.1, frac.Y, 0.001)
	assert.InDelta(t, 0.1, frac.Width, 0.001)
	assert.InDelta(t, 0.1, frac.Height, 0.001)
}

func TestSinkRemovesFloatingOverride(t *testing.T) {
	s := newTestSet(t, []string{"1"}, 1)
	s, err := s.InsertDefault(10)
	require.NoError(t, err)
	s, err = s.Float(10, geometry.New(0, 0, 10, 10))
	require.NoError(t, err)
	s = s.Sink(10)
	assert.NotContains(t, s.Floating, 10)
}

func TestNextLayoutRotatesFocusedWorkspaceOnly(t *testing.T) {
	s := newTestSet(t, []string{"1", "2"}, 1)
	before := s.Screens.Focus.Workspace.Layouts.Active().Name()
	s = s.NextLayout()
	after := s.Screens.Focus.Workspace.Layouts.Active().Name()
	assert.NotEqual(t, before, after)
}

func TestHandleMessageOnlyAffectsActiveLayout(t *testing.T) {
	s := newTestSet(t, []string{"1"}, 1)
	s = s.HandleMessage(layout.NewMessage(layout.IncMain{Delta: 1}))
	assert.Equal(t, "monocle", s.Screens.Focus.Workspace.Layouts.Active().Name())
}

func TestCloneIsIndependent(t *testing.T) {
	s := newTestSet(t, []string{"1", "2"}, 1)
	s, err := s.InsertDefault(10)
	require.NoError(t, err)
	clone := s.Clone()
	clone, err = clone.InsertDefault(11)
	require.NoError(t, err)

	_, _, _, _, stillOneOnOriginal := s.locateClient(11)
	assert.False(t, stillOneOnOriginal)
	id, ok := s.FocusedClient()
	require.True(t, ok)
	assert.Equal(t, 10, id)
}
