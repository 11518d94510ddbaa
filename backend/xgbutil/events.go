package xgbutil

import (
	"github.com/jezek/xgb/randr"
	"github.com/jezek/xgb/xproto"

	xu "github.com/jezek/xgbutil"
	"github.com/jezek/xgbutil/xevent"

	"github.com/sirupsen/logrus"

	"github.com/tilecore/wm/xconn"
	"github.com/tilecore/wm/xid"
)

// attachEvents wires xevent callbacks for every event kind the closed
// Event union cares about, each translating the xgbutil event into an
// xconn.Event and pushing it onto c.events, then starts the xgbutil
// dispatch loop in the background. Grounded on store/root.go's
// xevent.PropertyNotifyFun(StateUpdate).Connect(X, root) idiom and
// desktop/tracker.go's parallel per-kind handler attachment, collapsed
// here into one push-to-channel translation per event kind instead of
// one callback per concern.
func (c *Conn) attachEvents() {
	root := c.X.RootWin()

	xevent.KeyPressFun(func(_ *xu.XUtil, ev xevent.KeyPressEvent) {
		c.push(xconn.Event{
			Kind:      xconn.EventKeyPress,
			Window:    xid.Xid(ev.Event),
			Modifiers: ev.State,
			Code:      uint8(ev.Detail),
			RootX:     int32(ev.RootX),
			RootY:     int32(ev.RootY),
		})
	}).Connect(c.X, root)

	xevent.ButtonPressFun(func(_ *xu.XUtil, ev xevent.ButtonPressEvent) {
		c.push(xconn.Event{
			Kind:      xconn.EventButtonPress,
			Window:    xid.Xid(ev.Event),
			Modifiers: ev.State,
			Code:      uint8(ev.Detail),
			RootX:     int32(ev.RootX),
			RootY:     int32(ev.RootY),
		})
	}).Connect(c.X, root)

	xevent.ButtonReleaseFun(func(_ *xu.XUtil, ev xevent.ButtonReleaseEvent) {
		c.push(xconn.Event{
			Kind:      xconn.EventButtonRelease,
			Window:    xid.Xid(ev.Event),
			Modifiers: ev.State,
			Code:      uint8(ev.Detail),
			RootX:     int32(ev.RootX),
			RootY:     int32(ev.RootY),
		})
	}).Connect(c.X, root)

	xevent.MotionNotifyFun(func(_ *xu.XUtil, ev xevent.MotionNotifyEvent) {
		c.push(xconn.Event{
			Kind:      xconn.EventMotionNotify,
			Window:    xid.Xid(ev.Event),
			Modifiers: ev.State,
			RootX:     int32(ev.RootX),
			RootY:     int32(ev.RootY),
		})
	}).Connect(c.X, root)

	xevent.MapRequestFun(func(_ *xu.XUtil, ev xevent.MapRequestEvent) {
		c.push(xconn.Event{Kind: xconn.EventMapRequest, Window: xid.Xid(ev.Window)})
	}).Connect(c.X, root)

	xevent.UnmapNotifyFun(func(_ *xu.XUtil, ev xevent.UnmapNotifyEvent) {
		c.push(xconn.Event{
			Kind:      xconn.EventUnmapNotify,
			Window:    xid.Xid(ev.Window),
			Synthetic: ev.Event == root,
		})
	}).Connect(c.X, root)

	xevent.DestroyNotifyFun(func(_ *xu.XUtil, ev xevent.DestroyNotifyEvent) {
		c.push(xconn.Event{Kind: xconn.EventDestroyNotify, Window: xid.Xid(ev.Window)})
	}).Connect(c.X, root)

	xevent.ConfigureRequestFun(func(_ *xu.XUtil, ev xevent.ConfigureRequestEvent) {
		c.push(xconn.Event{
			Kind:            xconn.EventConfigureRequest,
			Window:          xid.Xid(ev.Window),
			RequestedConfig: configFromRequest(ev),
		})
	}).Connect(c.X, root)

	xevent.PropertyNotifyFun(func(_ *xu.XUtil, ev xevent.PropertyNotifyEvent) {
		name, err := c.AtomName(xid.Xid(ev.Atom))
		if err != nil {
			logrus.WithError(err).Warn("resolving property atom name")
			return
		}
		c.push(xconn.Event{Kind: xconn.EventPropertyNotify, Window: xid.Xid(ev.Window), Atom: name})
	}).Connect(c.X, root)

	xevent.EnterNotifyFun(func(_ *xu.XUtil, ev xevent.EnterNotifyEvent) {
		c.push(xconn.Event{
			Kind:   xconn.EventEnterNotify,
			Window: xid.Xid(ev.Event),
			RootX:  int32(ev.RootX),
			RootY:  int32(ev.RootY),
		})
	}).Connect(c.X, root)

	xevent.ClientMessageFun(func(_ *xu.XUtil, ev xevent.ClientMessageEvent) {
		name, err := c.AtomName(xid.Xid(ev.Type))
		if err != nil {
			logrus.WithError(err).Warn("resolving client message type atom")
			return
		}
		var data [5]uint32
		for i := 0; i < 5 && i < len(ev.Data.Data32); i++ {
			data[i] = ev.Data.Data32[i]
		}
		c.push(xconn.Event{
			Kind:   xconn.EventClientMessage,
			Window: xid.Xid(ev.Window),
			Message: xconn.ClientMessage{
				Window: xid.Xid(ev.Window),
				Type:   name,
				Data:   data,
			},
		})
	}).Connect(c.X, root)

	xevent.RandrScreenChangeNotifyFun(func(_ *xu.XUtil, ev xevent.RandrScreenChangeNotifyEvent) {
		c.invalidateScreens()
		c.push(xconn.Event{Kind: xconn.EventRandRScreenChange})
	}).Connect(c.X, root)

	randr.SelectInputChecked(c.X.Conn(), root, randr.NotifyMaskScreenChange).Check()

	go xevent.Main(c.X)
}

func (c *Conn) push(ev xconn.Event) {
	select {
	case c.events <- ev:
	default:
		logrus.WithField("kind", ev.Kind).Warn("dropping X event: backlog full")
	}
}

func (c *Conn) invalidateScreens() {
	c.mu.Lock()
	c.screensCacheValid = false
	c.mu.Unlock()
}

func configFromRequest(ev xevent.ConfigureRequestEvent) xconn.ClientConfig {
	cfg := xconn.ClientConfig{}
	mask := ev.ValueMask
	if mask&uint16(xproto.ConfigWindowX|xproto.ConfigWindowY|xproto.ConfigWindowWidth|xproto.ConfigWindowHeight) != 0 {
		cfg.HasRect = true
		cfg.Rect.X = int32(ev.X)
		cfg.Rect.Y = int32(ev.Y)
		cfg.Rect.Width = uint32(ev.Width)
		cfg.Rect.Height = uint32(ev.Height)
	}
	if mask&uint16(xproto.ConfigWindowBorderWidth) != 0 {
		cfg.HasBorder = true
		cfg.BorderWidth = uint32(ev.BorderWidth)
	}
	if mask&uint16(xproto.ConfigWindowSibling) != 0 {
		cfg.HasStacking = true
		cfg.StackAbove = xid.Xid(ev.Sibling)
	}
	return cfg
}
