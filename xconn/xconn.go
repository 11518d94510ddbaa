// Package xconn defines the abstract X capability the core requires
// from a backend (§6.1): a small set of blocking operations plus a
// closed Event union (§4.8). Nothing in this package talks to a real X
// server — github.com/tilecore/wm/backend/xgbutil provides that.
package xconn

import (
	"context"

	"github.com/tilecore/wm/geometry"
	"github.com/tilecore/wm/xid"
)

// PropKind identifies the shape of a property's value.
type PropKind int

const (
	PropCardinal PropKind = iota
	PropAtom
	PropString
	PropWindow
)

// Prop is a single X property value, typed by Kind. Exactly one of the
// slice fields is meaningful for a given Kind.
type Prop struct {
	Kind     PropKind
	Cardinals []uint32
	Atoms     []xid.Xid
	Strings   []string
	Windows   []xid.Xid
}

// WindowAttributes carries the subset of X window attributes the core's
// map-request and configure-request handlers need.
type WindowAttributes struct {
	OverrideRedirect bool
	MapState         uint8
}

// ClientConfig is a partial client geometry/stacking change, as
// requested by a configure-request or issued by the diff engine. Zero
// fields (paired with their Has* flag false) are left unchanged.
type ClientConfig struct {
	Rect        geometry.Rect
	HasRect     bool
	BorderWidth uint32
	HasBorder   bool
	StackAbove  xid.Xid
	HasStacking bool
}

// ClientAttributes sets border color / event mask style attributes on a
// client.
type ClientAttributes struct {
	BorderPixel uint32
	HasBorder   bool
	EventMask   uint32
	HasEventMask bool
}

// ClientMessage is an outbound or inbound ClientMessage event (EWMH
// requests are delivered this way, e.g. _NET_CLOSE_WINDOW).
type ClientMessage struct {
	Window xid.Xid
	Type   string
	Data   [5]uint32
}

// EventKind is the closed set of event cases the core's built-in
// handler dispatches on (§4.8's table).
type EventKind int

const (
	EventKeyPress EventKind = iota
	EventButtonPress
	EventButtonRelease
	EventMotionNotify
	EventMapRequest
	EventUnmapNotify
	EventDestroyNotify
	EventConfigureRequest
	EventPropertyNotify
	EventEnterNotify
	EventClientMessage
	EventRandRScreenChange
)

// Event is a closed tagged union of everything next_event can return.
// Only the fields relevant to Kind are populated.
type Event struct {
	Kind EventKind

	Window xid.Xid // the window the event concerns, where applicable

	// KeyPress / ButtonPress / ButtonRelease / MotionNotify
	Modifiers uint16
	Code      uint8 // keycode or button number
	RootX     int32
	RootY     int32

	// UnmapNotify
	Synthetic bool

	// ConfigureRequest
	RequestedConfig ClientConfig

	// PropertyNotify
	Atom string

	// ClientMessage
	Message ClientMessage
}

// XConn is every blocking operation the core requires of an X backend
// (§6.1). All operations may fail; a failure from next_event is fatal
// to the run loop, a failure during a refresh causes that refresh's
// plan to be abandoned (§7's propagation policy).
type XConn interface {
	Root() xid.Xid
	ScreenDetails() ([]geometry.Rect, error)
	CursorPosition() (geometry.Point, error)

	Grab(keys []KeyGrab, mouse []MouseGrab) error
	Ungrab() error

	NextEvent(ctx context.Context) (Event, error)
	Flush() error

	InternAtom(name string) (xid.Xid, error)
	AtomName(atom xid.Xid) (string, error)

	ExistingClients() ([]xid.Xid, error)
	ClientGeometry(w xid.Xid) (geometry.Rect, error)

	Map(w xid.Xid) error
	Unmap(w xid.Xid) error
	Kill(w xid.Xid) error

	Focus(w xid.Xid) error
	WarpPointer(w xid.Xid, x, y int32) error

	GetProp(w xid.Xid, name string) (Prop, bool, error)
	SetProp(w xid.Xid, name string, p Prop) error
	DeleteProp(w xid.Xid, name string) error
	ListProps(w xid.Xid) ([]string, error)

	GetWindowAttributes(w xid.Xid) (WindowAttributes, error)
	GetWMState(w xid.Xid) (uint32, error)
	SetWMState(w xid.Xid, state uint32) error

	SetClientAttributes(w xid.Xid, attrs ClientAttributes) error
	SetClientConfig(w xid.Xid, cfg ClientConfig) error

	SendClientMessage(msg ClientMessage) error
}

// KeyGrab is a single key combination to grab on the root window.
type KeyGrab struct {
	Modifiers uint16
	Code      uint8
}

// MouseGrab is a single button combination to grab.
type MouseGrab struct {
	Modifiers uint16
	Button    uint8
}
