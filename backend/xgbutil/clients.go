package xgbutil

import (
	"github.com/jezek/xgb/xproto"

	"github.com/jezek/xgbutil/ewmh"
	"github.com/jezek/xgbutil/icccm"

	"github.com/tilecore/wm/wmerrors"
	"github.com/tilecore/wm/xconn"
	"github.com/tilecore/wm/xid"
)

// Map maps a client window.
func (c *Conn) Map(w xid.Xid) error {
	if err := xproto.MapWindowChecked(c.X.Conn(), xproto.Window(w)).Check(); err != nil {
		return wmerrors.Wrapf(wmerrors.Backend, err, "map window=%d", w)
	}
	return nil
}

// Unmap unmaps a client window.
func (c *Conn) Unmap(w xid.Xid) error {
	if err := xproto.UnmapWindowChecked(c.X.Conn(), xproto.Window(w)).Check(); err != nil {
		return wmerrors.Wrapf(wmerrors.Backend, err, "unmap window=%d", w)
	}
	return nil
}

// Kill closes a client, preferring the polite ICCCM WM_DELETE_WINDOW
// protocol and falling back to XKillClient when the client doesn't
// support it — grounded on store/client.go's Close, which does the
// same fallback via icccm.WmProtocolsGet.
func (c *Conn) Kill(w xid.Xid) error {
	win := xproto.Window(w)
	protocols, err := icccm.WmProtocolsGet(c.X, win)
	if err == nil {
		for _, p := range protocols {
			if p == "WM_DELETE_WINDOW" {
				if err := icccm.DeleteWindow(c.X, win); err != nil {
					return wmerrors.Wrapf(wmerrors.Backend, err, "delete_window window=%d", w)
				}
				return nil
			}
		}
	}
	if err := xproto.KillClientChecked(c.X.Conn(), uint32(win)).Check(); err != nil {
		return wmerrors.Wrapf(wmerrors.Backend, err, "kill_client window=%d", w)
	}
	return nil
}

// Focus sets both the input focus and _NET_ACTIVE_WINDOW to w,
// mirroring store/root.go's ActiveWindowSet pairing.
func (c *Conn) Focus(w xid.Xid) error {
	win := xproto.Window(w)
	if err := ewmh.ActiveWindowSet(c.X, win); err != nil {
		return wmerrors.Wrapf(wmerrors.Backend, err, "active_window_set window=%d", w)
	}
	err := xproto.SetInputFocusChecked(
		c.X.Conn(), xproto.InputFocusPointerRoot, win, xproto.TimeCurrentTime,
	).Check()
	if err != nil {
		return wmerrors.Wrapf(wmerrors.Backend, err, "set_input_focus window=%d", w)
	}
	return nil
}

// WarpPointer moves the pointer to (x, y) relative to w.
func (c *Conn) WarpPointer(w xid.Xid, x, y int32) error {
	err := xproto.WarpPointerChecked(
		c.X.Conn(), 0, xproto.Window(w), 0, 0, 0, 0, int16(x), int16(y),
	).Check()
	if err != nil {
		return wmerrors.Wrapf(wmerrors.Backend, err, "warp_pointer window=%d", w)
	}
	return nil
}

// GetWindowAttributes returns the subset of X window attributes the
// core's request handlers need.
func (c *Conn) GetWindowAttributes(w xid.Xid) (xconn.WindowAttributes, error) {
	reply, err := xproto.GetWindowAttributes(c.X.Conn(), xproto.Window(w)).Reply()
	if err != nil {
		return xconn.WindowAttributes{}, wmerrors.Wrapf(wmerrors.Backend, err, "get_window_attributes window=%d", w)
	}
	return xconn.WindowAttributes{
		OverrideRedirect: reply.OverrideRedirect,
		MapState:         uint8(reply.MapState),
	}, nil
}

// GetWMState returns the client's ICCCM WM_STATE value (Withdrawn,
// Normal or Iconic).
func (c *Conn) GetWMState(w xid.Xid) (uint32, error) {
	state, err := icccm.WmStateGet(c.X, xproto.Window(w))
	if err != nil {
		return 0, wmerrors.Wrapf(wmerrors.Backend, err, "wm_state_get window=%d", w)
	}
	return uint32(state.State), nil
}

// SetWMState sets the client's ICCCM WM_STATE value.
func (c *Conn) SetWMState(w xid.Xid, state uint32) error {
	err := icccm.WmStateSet(c.X, xproto.Window(w), &icccm.WmState{State: uint(state)})
	if err != nil {
		return wmerrors.Wrapf(wmerrors.Backend, err, "wm_state_set window=%d", w)
	}
	return nil
}

// SetClientAttributes applies border color and/or event mask changes.
func (c *Conn) SetClientAttributes(w xid.Xid, attrs xconn.ClientAttributes) error {
	win := xproto.Window(w)
	var mask uint32
	var values []uint32
	if attrs.HasBorder {
		mask |= xproto.CwBorderPixel
		values = append(values, attrs.BorderPixel)
	}
	if attrs.HasEventMask {
		mask |= xproto.CwEventMask
		values = append(values, attrs.EventMask)
	}
	if mask == 0 {
		return nil
	}
	if err := xproto.ChangeWindowAttributesChecked(c.X.Conn(), win, mask, values).Check(); err != nil {
		return wmerrors.Wrapf(wmerrors.Backend, err, "change_window_attributes window=%d", w)
	}
	return nil
}

// SetClientConfig applies a geometry/border-width/stacking change to a
// client, mirroring store/client.go's MoveWindow use of
// ewmh.MoveresizeWindow for the common geometry-only case and falling
// back to a raw ConfigureWindow request when border width or stacking
// is also requested.
func (c *Conn) SetClientConfig(w xid.Xid, cfg xconn.ClientConfig) error {
	win := xproto.Window(w)

	if cfg.HasRect && !cfg.HasBorder && !cfg.HasStacking {
		err := ewmh.MoveresizeWindow(c.X, win, int(cfg.Rect.X), int(cfg.Rect.Y), int(cfg.Rect.Width), int(cfg.Rect.Height))
		if err != nil {
			return wmerrors.Wrapf(wmerrors.Backend, err, "moveresize_window window=%d", w)
		}
		return nil
	}

	var mask uint16
	var values []uint32
	if cfg.HasRect {
		mask |= xproto.ConfigWindowX | xproto.ConfigWindowY | xproto.ConfigWindowWidth | xproto.ConfigWindowHeight
		values = append(values, uint32(cfg.Rect.X), uint32(cfg.Rect.Y), cfg.Rect.Width, cfg.Rect.Height)
	}
	if cfg.HasBorder {
		mask |= xproto.ConfigWindowBorderWidth
		values = append(values, cfg.BorderWidth)
	}
	if cfg.HasStacking {
		mask |= xproto.ConfigWindowSibling | xproto.ConfigWindowStackMode
		values = append(values, uint32(cfg.StackAbove), xproto.StackModeAbove)
	}
	if mask == 0 {
		return nil
	}
	if err := xproto.ConfigureWindowChecked(c.X.Conn(), win, mask, values).Check(); err != nil {
		return wmerrors.Wrapf(wmerrors.Backend, err, "configure_window window=%d", w)
	}
	return nil
}

// SendClientMessage delivers a 32-bit ClientMessage event to the
// window it names, the mechanism EWMH client requests (closing a
// window, changing desktop, ...) use.
func (c *Conn) SendClientMessage(msg xconn.ClientMessage) error {
	if _, err := c.InternAtom(msg.Type); err != nil {
		return err
	}
	err := ewmh.ClientEvent(c.X, xproto.Window(msg.Window), msg.Type,
		int(msg.Data[0]), int(msg.Data[1]), int(msg.Data[2]), int(msg.Data[3]), int(msg.Data[4]))
	if err != nil {
		return wmerrors.Wrapf(wmerrors.Backend, err, "send_client_message type=%s window=%d", msg.Type, msg.Window)
	}
	return nil
}
