// Package core implements the composition root's two remaining pieces
// (§4.8-4.9): the mutable State a running manager owns, and the
// WindowManager orchestrator that drives the single-threaded
// bootstrap→grab→loop lifecycle over an xconn.XConn and a diff-and-
// refresh cycle.
package core

import (
	"time"

	"github.com/tilecore/wm/hooks"
	"github.com/tilecore/wm/input"
	"github.com/tilecore/wm/layout"
	"github.com/tilecore/wm/xconn"
)

// ManageFilter decides whether a newly mapped window should be managed
// at all, inspecting the attributes the map-request handler already
// fetched (§4.8: "if window attributes allow management"). A nil
// filter manages everything; a typical filter rejects override-redirect
// windows. The attributes carry only override-redirect and map state,
// so a filter cannot inspect EWMH window types or states.
type ManageFilter func(attrs xconn.WindowAttributes) bool

// Config is the plain struct a host program fills in to compose a
// window manager (§6.3) — there is no file- or env-driven
// configuration by design (explicit Non-goal), mirroring how the
// teacher's `common.Config` fields are consumed by code that never
// itself reads the file populating them.
type Config struct {
	// Tags lists every workspace, in order; len(Tags) must be >= the
	// number of screens detected at startup.
	Tags []string
	// NewLayouts builds a fresh layout cycle for one workspace; called
	// once per tag so each workspace's layout state is independent.
	NewLayouts func() layout.LayoutStack

	BorderWidth    uint32
	FocusedColor   uint32
	UnfocusedColor uint32

	FocusFollowsMouse  bool
	WarpPointerOnFocus bool

	ConnectRetries    int
	ConnectRetryDelay time.Duration

	// ManageFilter, if set, skips managing windows it rejects.
	ManageFilter ManageFilter

	// WMName is advertised via _NET_WM_NAME (§6.2).
	WMName string

	Bindings *input.Bindings[State]
	Hooks    *hooks.Registry[State]
}
