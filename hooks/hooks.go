// Package hooks implements the core's hook registry (§4.5): four
// optional, composable callback chains (startup, event, manage,
// refresh) that run at fixed points in the run loop, plus an error
// handler for hook errors. Hooks are generic over the state type S so
// this package never needs to depend on core.State; the core package
// instantiates Registry[State].
package hooks

import (
	"github.com/tilecore/wm/wmerrors"
	"github.com/tilecore/wm/xconn"
	"github.com/tilecore/wm/xid"
)

// Result is what an event hook returns to decide whether the chain (and
// the built-in handler behind it) keeps running.
type Result int

const (
	// Continue lets the remaining event hooks, then the built-in
	// handler, run.
	Continue Result = iota
	// Stop short-circuits the remaining event hooks and the built-in
	// handler for this event.
	Stop
)

// StartupHook runs once, after bindings are grabbed and before the
// first event is read.
type StartupHook[S any] func(state *S, x xconn.XConn)

// EventHook runs before the built-in handler for every X event.
type EventHook[S any] func(state *S, x xconn.XConn, ev xconn.Event) Result

// ManageHook runs when a new client is first inserted into the state;
// it may mutate state (move the client to a tag, mark it floating, ...).
type ManageHook[S any] func(state *S, x xconn.XConn, w xid.Xid)

// RefreshHook runs at the end of every ModifyAndRefresh, with the
// post-refresh state.
type RefreshHook[S any] func(state *S, x xconn.XConn)

// ErrorHandler receives errors bubbled from user hooks (§7's
// UserHook kind); the default logs at warn level.
type ErrorHandler func(err *wmerrors.Error)

// Registry holds the four installable hook chains. The zero value is
// usable: every chain starts empty (a no-op).
type Registry[S any] struct {
	startup []StartupHook[S]
	event   []EventHook[S]
	manage  []ManageHook[S]
	refresh []RefreshHook[S]
}

// NewRegistry builds an empty hook registry.
func NewRegistry[S any]() *Registry[S] {
	return &Registry[S]{}
}

// SetStartup installs fn as the chain's first startup hook. Panics if a
// startup hook is already installed — use ComposeStartup to add
// another one (§4.5's compose_or_set discipline: overwriting is only
// valid on initial install).
func (r *Registry[S]) SetStartup(fn StartupHook[S]) {
	if len(r.startup) > 0 {
		panic("hooks: startup hook already installed; use ComposeStartup")
	}
	r.startup = []StartupHook[S]{fn}
}

// ComposeStartup appends fn to the startup chain, running after every
// hook already installed.
func (r *Registry[S]) ComposeStartup(fn StartupHook[S]) {
	r.startup = append(r.startup, fn)
}

// SetEvent installs fn as the chain's first event hook. See SetStartup.
func (r *Registry[S]) SetEvent(fn EventHook[S]) {
	if len(r.event) > 0 {
		panic("hooks: event hook already installed; use ComposeEvent")
	}
	r.event = []EventHook[S]{fn}
}

// ComposeEvent appends fn to the event chain.
func (r *Registry[S]) ComposeEvent(fn EventHook[S]) {
	r.event = append(r.event, fn)
}

// SetManage installs fn as the chain's first manage hook. See
// SetStartup.
func (r *Registry[S]) SetManage(fn ManageHook[S]) {
	if len(r.manage) > 0 {
		panic("hooks: manage hook already installed; use ComposeManage")
	}
	r.manage = []ManageHook[S]{fn}
}

// ComposeManage appends fn to the manage chain.
func (r *Registry[S]) ComposeManage(fn ManageHook[S]) {
	r.manage = append(r.manage, fn)
}

// SetRefresh installs fn as the chain's first refresh hook. See
// SetStartup.
func (r *Registry[S]) SetRefresh(fn RefreshHook[S]) {
	if len(r.refresh) > 0 {
		panic("hooks: refresh hook already installed; use ComposeRefresh")
	}
	r.refresh = []RefreshHook[S]{fn}
}

// ComposeRefresh appends fn to the refresh chain.
func (r *Registry[S]) ComposeRefresh(fn RefreshHook[S]) {
	r.refresh = append(r.refresh, fn)
}

// RunStartup runs every installed startup hook, in installation order.
func (r *Registry[S]) RunStartup(state *S, x xconn.XConn) {
	for _, fn := range r.startup {
		fn(state, x)
	}
}

// RunEvent runs every installed event hook in order, stopping at the
// first Stop result.
func (r *Registry[S]) RunEvent(state *S, x xconn.XConn, ev xconn.Event) Result {
	for _, fn := range r.event {
		if fn(state, x, ev) == Stop {
			return Stop
		}
	}
	return Continue
}

// RunManage runs every installed manage hook, in installation order.
func (r *Registry[S]) RunManage(state *S, x xconn.XConn, w xid.Xid) {
	for _, fn := range r.manage {
		fn(state, x, w)
	}
}

// RunRefresh runs every installed refresh hook, in installation order.
func (r *Registry[S]) RunRefresh(state *S, x xconn.XConn) {
	for _, fn := range r.refresh {
		fn(state, x)
	}
}

// DefaultErrorHandler logs err through the supplied logf, matching §7's
// default policy for errors from user hooks.
func DefaultErrorHandler(logf func(format string, args ...any)) ErrorHandler {
	return func(err *wmerrors.Error) {
		logf("user hook error: %v", err)
	}
}
