package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tilecore/wm/geometry"
	"github.com/tilecore/wm/wmerrors"
	"github.com/tilecore/wm/xconn"
	"github.com/tilecore/wm/xid"
)

func noop(state *int, x xconn.XConn)                      {}
func mnoop(state *int, x xconn.XConn, rootX, rootY int32) {}

func TestBindKeyRegistersAllLockVariants(t *testing.T) {
	b := NewBindings[int]()
	require.NoError(t, b.BindKey(KeyBinding{Modifiers: Super, Code: 1}, noop))

	for _, m := range lockVariants(Super) {
		_, ok := b.KeyHandlerFor(m, 1)
		assert.True(t, ok, "variant %#x should be registered", m)
	}
	_, ok := b.KeyHandlerFor(Super|Alt, 1)
	assert.False(t, ok)
}

func TestBindKeyRejectsDuplicateWithoutPartialRegistration(t *testing.T) {
	b := NewBindings[int]()
	require.NoError(t, b.BindKey(KeyBinding{Modifiers: Super | NumLock, Code: 5}, noop))

	err := b.BindKey(KeyBinding{Modifiers: Super, Code: 5}, noop)
	require.Error(t, err)
	assert.True(t, wmerrors.Is(err, wmerrors.ParseBinding))

	// Only the original four variants should be present; the conflicting
	// bind must not have partially registered any of its own variants.
	assert.Len(t, b.Keys, 4)
}

func TestBindMouseDeduplicatesGrabsAcrossActions(t *testing.T) {
	b := NewBindings[int]()
	require.NoError(t, b.BindMouse(MouseBinding{Button: 1, Action: MousePress}, mnoop))
	require.NoError(t, b.BindMouse(MouseBinding{Button: 1, Action: MouseRelease}, mnoop))

	grabs := b.MouseGrabs()
	assert.Len(t, grabs, 4, "press and release on the same button/modifier share one grab per lock variant")
}

func TestDragStateMoveAndResizeDelta(t *testing.T) {
	var d DragState
	start := geometry.New(100, 100, 200, 150)
	d.Begin(xid.Xid(1), 50, 50, start)

	assert.True(t, d.Active)
	moved := d.MoveDelta(60, 40)
	assert.Equal(t, int32(110), moved.X)
	assert.Equal(t, int32(90), moved.Y)

	resized := d.ResizeDelta(70, 80, 20)
	assert.Equal(t, uint32(220), resized.Width)
	assert.Equal(t, uint32(180), resized.Height)

	shrunk := d.ResizeDelta(-1000, -1000, 20)
	assert.Equal(t, uint32(20), shrunk.Width)
	assert.Equal(t, uint32(20), shrunk.Height)

	d.End()
	assert.False(t, d.Active)
}
