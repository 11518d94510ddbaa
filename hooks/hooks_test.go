package hooks

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tilecore/wm/xconn"
	"github.com/tilecore/wm/xid"
)

func TestRunEventStopsChainOnFirstStop(t *testing.T) {
	r := NewRegistry[int]()
	var order []int
	r.SetEvent(func(state *int, x xconn.XConn, ev xconn.Event) Result {
		order = append(order, 1)
		return Stop
	})
	r.ComposeEvent(func(state *int, x xconn.XConn, ev xconn.Event) Result {
		order = append(order, 2)
		return Continue
	})

	var state int
	result := r.RunEvent(&state, nil, xconn.Event{})
	assert.Equal(t, Stop, result)
	assert.Equal(t, []int{1}, order, "second hook must not run after a Stop")
}

func TestRunEventContinuesThroughWholeChain(t *testing.T) {
	r := NewRegistry[int]()
	var order []int
	r.SetEvent(func(state *int, x xconn.XConn, ev xconn.Event) Result {
		order = append(order, 1)
		return Continue
	})
	r.ComposeEvent(func(state *int, x xconn.XConn, ev xconn.Event) Result {
		order = append(order, 2)
		return Continue
	})

	var state int
	result := r.RunEvent(&state, nil, xconn.Event{})
	assert.Equal(t, Continue, result)
	assert.Equal(t, []int{1, 2}, order)
}

func TestSetTwiceOnAnyChainPanics(t *testing.T) {
	r := NewRegistry[int]()
	r.SetStartup(func(state *int, x xconn.XConn) {})
	assert.Panics(t, func() {
		r.SetStartup(func(state *int, x xconn.XConn) {})
	})

	r.SetEvent(func(state *int, x xconn.XConn, ev xconn.Event) Result { return Continue })
	assert.Panics(t, func() {
		r.SetEvent(func(state *int, x xconn.XConn, ev xconn.Event) Result { return Continue })
	})

	r.SetManage(func(state *int, x xconn.XConn, w xid.Xid) {})
	assert.Panics(t, func() {
		r.SetManage(func(state *int, x xconn.XConn, w xid.Xid) {})
	})

	r.SetRefresh(func(state *int, x xconn.XConn) {})
	assert.Panics(t, func() {
		r.SetRefresh(func(state *int, x xconn.XConn) {})
	})
}

func TestComposeManageRunsInInstallationOrder(t *testing.T) {
	r := NewRegistry[int]()
	var seen []xid.Xid
	r.SetManage(func(state *int, x xconn.XConn, w xid.Xid) { seen = append(seen, w) })
	r.ComposeManage(func(state *int, x xconn.XConn, w xid.Xid) { seen = append(seen, w+100) })

	var state int
	r.RunManage(&state, nil, xid.Xid(1))
	assert.Equal(t, []xid.Xid{1, 101}, seen)
}

func TestRefreshHookReceivesPostRefreshState(t *testing.T) {
	r := NewRegistry[int]()
	var observed int
	r.SetRefresh(func(state *int, x xconn.XConn) { observed = *state })

	state := 42
	r.RunRefresh(&state, nil)
	assert.Equal(t, 42, observed)
}
