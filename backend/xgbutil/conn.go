// Package xgbutil is the concrete xconn.XConn backend: it talks to a
// real X server via github.com/jezek/xgb and
// github.com/jezek/xgbutil (plus its ewmh/icccm/xevent/xprop/xwindow
// subpackages), grounded directly on the connection bootstrap and EWMH
// plumbing the teacher's store package implemented as package-level
// globals and functions — restructured here as methods on a connection
// struct so a host program can run more than one (and so tests can
// substitute a fake XConn).
package xgbutil

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/jezek/xgb/randr"
	"github.com/jezek/xgb/xproto"

	xu "github.com/jezek/xgbutil"
	"github.com/jezek/xgbutil/ewmh"
	"github.com/jezek/xgbutil/xevent"

	"github.com/sirupsen/logrus"

	"github.com/tilecore/wm/geometry"
	"github.com/tilecore/wm/wmerrors"
	"github.com/tilecore/wm/xconn"
	"github.com/tilecore/wm/xid"
)

// Conn is a live connection to an X server, implementing xconn.XConn.
type Conn struct {
	X      *xu.XUtil
	wmName string

	mu                sync.RWMutex
	screensCache      []geometry.Rect
	screensCacheValid bool

	events chan xconn.Event
}

// Connect dials the X server, retrying up to retries times with a fixed
// retryDelay between attempts (teacher's store.Connected idiom), and verifies the running
// window manager is EWMH-compliant before returning.
func Connect(retries int, retryDelay time.Duration) (*Conn, error) {
	if retries <= 0 {
		retries = 10
	}
	if retryDelay <= 0 {
		retryDelay = time.Second
	}

	var lastErr error
	for attempt := 0; attempt <= retries; attempt++ {
		if attempt > 0 {
			logrus.WithField("attempt", attempt).Warn("retrying X connection")
			time.Sleep(retryDelay)
		}

		conn, err := xu.NewConn()
		if err != nil {
			lastErr = err
			continue
		}
		name, err := ewmh.GetEwmhWM(conn)
		if err != nil {
			lastErr = fmt.Errorf("window manager is not EWMH compliant: %w", err)
			continue
		}
		if _, err := ewmh.ClientListStackingGet(conn); err != nil {
			lastErr = fmt.Errorf("reading root properties: %w", err)
			continue
		}
		if err := randr.Init(conn.Conn()); err != nil {
			lastErr = fmt.Errorf("initializing RandR: %w", err)
			continue
		}

		c := &Conn{X: conn, wmName: name, events: make(chan xconn.Event, 64)}
		c.attachEvents()
		logrus.WithField("wm", name).Info("connected to X server")
		return c, nil
	}
	return nil, wmerrors.Wrap(wmerrors.Backend, "connect to X server", lastErr)
}

// Compatible reports whether the currently running window manager
// supports feature, mirroring store.Compatible's escape hatch for
// known-broken ICCCM behavior in specific window managers.
func (c *Conn) Compatible(feature string) bool {
	wm := strings.ToLower(c.wmName)
	switch feature {
	case "icccm.SizeHintPMinSize":
		return !strings.Contains(wm, "mutter") && !strings.Contains(wm, "muffin")
	}
	return true
}

func (c *Conn) Root() xid.Xid {
	return xid.Xid(c.X.RootWin())
}

// Flush is a no-op: xgb issues each request to the server as it is
// made rather than buffering it client-side, so there is nothing to
// flush. It exists to satisfy xconn.XConn for backends that do buffer.
func (c *Conn) Flush() error {
	return nil
}

// NextEvent blocks until the background event-translation loop (see
// events.go) has a readable X event, or ctx is done.
func (c *Conn) NextEvent(ctx context.Context) (xconn.Event, error) {
	select {
	case ev, ok := <-c.events:
		if !ok {
			return xconn.Event{}, wmerrors.New(wmerrors.Backend, "X event stream closed")
		}
		return ev, nil
	case <-ctx.Done():
		return xconn.Event{}, wmerrors.Wrap(wmerrors.Backend, "next_event canceled", ctx.Err())
	}
}

// Ungrab releases every key and button grab on the root window, so a
// shutting-down manager doesn't leave the X server in a half-grabbed
// state for whatever takes over next.
func (c *Conn) Ungrab() error {
	root := c.X.RootWin()
	if err := xproto.UngrabKeyChecked(c.X.Conn(), xproto.GrabAny, root, xproto.ModMaskAny).Check(); err != nil {
		return wmerrors.Wrap(wmerrors.Backend, "ungrab keys", err)
	}
	if err := xproto.UngrabButtonChecked(c.X.Conn(), xproto.ButtonIndexAny, root, xproto.ModMaskAny).Check(); err != nil {
		return wmerrors.Wrap(wmerrors.Backend, "ungrab buttons", err)
	}
	xevent.Detach(c.X, root)
	return nil
}

// Grab grabs every requested key and button combination on the root
// window. Callers are expected to have already synthesized the
// NumLock/CapsLock variants (input.Bindings.Grabs/MouseGrabs do this).
func (c *Conn) Grab(keys []xconn.KeyGrab, mouse []xconn.MouseGrab) error {
	root := c.X.RootWin()
	for _, k := range keys {
		err := xproto.GrabKeyChecked(
			c.X.Conn(), true, root,
			k.Modifiers, xproto.Keycode(k.Code),
			xproto.GrabModeAsync, xproto.GrabModeAsync,
		).Check()
		if err != nil {
			return wmerrors.Wrapf(wmerrors.Backend, err, "grab key modifiers=%#x code=%d", k.Modifiers, k.Code)
		}
	}
	for _, m := range mouse {
		err := xproto.GrabButtonChecked(
			c.X.Conn(), false, root,
			xproto.EventMaskButtonPress|xproto.EventMaskButtonRelease|xproto.EventMaskButtonMotion,
			xproto.GrabModeAsync, xproto.GrabModeAsync,
			0, 0,
			xproto.ButtonIndex(m.Button), m.Modifiers,
		).Check()
		if err != nil {
			return wmerrors.Wrapf(wmerrors.Backend, err, "grab button modifiers=%#x button=%d", m.Modifiers, m.Button)
		}
	}
	return nil
}
