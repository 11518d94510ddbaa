package diff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tilecore/wm/geometry"
	"github.com/tilecore/wm/layout"
	"github.com/tilecore/wm/wm"
	"github.com/tilecore/wm/xid"
	"github.com/tilecore/wm/zipper"
)

func newSet(t *testing.T, tags []string, screens int) wm.StackSet[xid.Xid] {
	t.Helper()
	geoms := make([]geometry.Rect, screens)
	for i := range geoms {
		geoms[i] = geometry.New(int32(i*1920), 0, 1920, 1080)
	}
	s, err := wm.New[xid.Xid](tags, geoms, func() layout.LayoutStack {
		return layout.NewLayoutStack([]layout.Layout{layout.NewMainAndStack(layout.SideLeft, 1, 0.5)})
	})
	require.NoError(t, err)
	return s
}

func testStyle() Style {
	return Style{Root: xid.Xid(1), BorderWidth: 2, FocusedColor: 0xff0000, UnfocusedColor: 0x888888}
}

func opsOfKind(ops []Op, kind OpKind) []Op {
	var out []Op
	for _, op := range ops {
		if op.Kind == kind {
			out = append(out, op)
		}
	}
	return out
}

func TestComputeMapsNewlyInsertedClient(t *testing.T) {
	pre := newSet(t, []string{"1"}, 1)
	post, err := pre.InsertDefault(xid.Xid(100))
	require.NoError(t, err)

	plan, next := Compute(pre, post, testStyle())

	maps := opsOfKind(plan.Ops, OpMap)
	require.Len(t, maps, 1)
	assert.Equal(t, xid.Xid(100), maps[0].Window)

	focused, ok := next.FocusedClient()
	require.True(t, ok)
	assert.Equal(t, xid.Xid(100), focused)
}

func TestComputeUnmapsClientNoLongerDisplayed(t *testing.T) {
	pre := newSet(t, []string{"1"}, 1)
	pre, err := pre.InsertDefault(xid.Xid(100))
	require.NoError(t, err)
	post := pre.Remove(xid.Xid(100))

	plan, _ := Compute(pre, post, testStyle())
	unmaps := opsOfKind(plan.Ops, OpUnmap)
	require.Len(t, unmaps, 1)
	assert.Equal(t, xid.Xid(100), unmaps[0].Window)
}

func TestComputeEmitsFocusAfterProperties(t *testing.T) {
	pre := newSet(t, []string{"1"}, 1)
	pre, err := pre.InsertDefault(xid.Xid(1))
	require.NoError(t, err)
	post, err := pre.InsertDefault(xid.Xid(2))
	require.NoError(t, err)

	plan, _ := Compute(pre, post, testStyle())

	focusIdx, propIdx := -1, -1
	for i, op := range plan.Ops {
		switch op.Kind {
		case OpFocus:
			focusIdx = i
		case OpSetProp:
			if propIdx == -1 {
				propIdx = i
			}
		}
	}
	require.NotEqual(t, -1, focusIdx)
	require.NotEqual(t, -1, propIdx)
	assert.Greater(t, focusIdx, propIdx, "focus change must be emitted after property updates")
}

func TestComputeSendsHideToWorkspaceLeavingVisibility(t *testing.T) {
	pre := newSet(t, []string{"1", "2"}, 2)
	screens := pre.Screens.Iter()

	// Simulate an output disappearing: only screen 0 survives, screen 1's
	// workspace ("2") is pushed to Hidden.
	post := wm.StackSet[xid.Xid]{
		Screens:   zipper.FromList([]wm.Screen[xid.Xid]{screens[0]}),
		Hidden:    append([]wm.Workspace[xid.Xid]{screens[1].Workspace}, pre.Hidden...),
		Floating:  pre.Floating,
		Invisible: pre.Invisible,
	}

	plan, next := Compute(pre, post, testStyle())
	assert.NotEmpty(t, opsOfKind(plan.Ops, OpLayoutMessage), "tag leaving visibility must get a Hide message")
	assert.Equal(t, "1", next.CurrentTag())

	foundHidden := false
	for _, w := range next.Hidden {
		if w.Tag == "2" {
			foundHidden = true
		}
	}
	assert.True(t, foundHidden, "tag 2 must end up hidden in the returned state")
}

func TestComputeFloatingClientStaysAboveTiled(t *testing.T) {
	pre := newSet(t, []string{"1"}, 1)
	pre, err := pre.InsertDefault(xid.Xid(1))
	require.NoError(t, err)
	pre, err = pre.InsertDefault(xid.Xid(2))
	require.NoError(t, err)
	post, err := pre.Float(xid.Xid(2), geometry.New(100, 100, 200, 200))
	require.NoError(t, err)

	plan, _ := Compute(pre, post, testStyle())
	configures := opsOfKind(plan.Ops, OpConfigure)
	require.NotEmpty(t, configures)

	var floatRect geometry.Rect
	found := false
	for _, op := range configures {
		if op.Window == xid.Xid(2) {
			floatRect = op.Rect
			found = true
		}
	}
	require.True(t, found)
	assert.Equal(t, geometry.New(100, 100, 200, 200), floatRect)

	stacked := false
	for _, op := range opsOfKind(plan.Ops, OpStack) {
		if op.Window == xid.Xid(2) && op.StackAbove == xid.Xid(1) {
			stacked = true
		}
	}
	assert.True(t, stacked, "floating client must be restacked above the tiled one")
}
