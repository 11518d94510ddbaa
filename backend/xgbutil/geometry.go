package xgbutil

import (
	"github.com/jezek/xgb/randr"
	"github.com/jezek/xgb/xproto"

	"github.com/jezek/xgbutil/ewmh"
	"github.com/jezek/xgbutil/xwindow"

	"github.com/tilecore/wm/geometry"
	"github.com/tilecore/wm/wmerrors"
	"github.com/tilecore/wm/xid"
)

// ScreenDetails returns one Rect per physical output, in RandR output
// order, caching the result until a RandR screen-change event
// invalidates it — grounded on store/root.go's displaysCache /
// displaysCacheValid fields and PhysicalHeadsGet's
// GetScreenResources+GetCrtcInfo walk, collapsed here to geometry only.
// The rects are the raw CRTC areas: no desktop strut is subtracted,
// here or anywhere else in the pipeline.
func (c *Conn) ScreenDetails() ([]geometry.Rect, error) {
	c.mu.RLock()
	if c.screensCacheValid {
		cached := c.screensCache
		c.mu.RUnlock()
		return cached, nil
	}
	c.mu.RUnlock()

	root := c.X.RootWin()
	resources, err := randr.GetScreenResources(c.X.Conn(), root).Reply()
	if err != nil {
		return nil, wmerrors.Wrap(wmerrors.Backend, "randr get_screen_resources", err)
	}

	var rects []geometry.Rect
	for _, crtc := range resources.Crtcs {
		info, err := randr.GetCrtcInfo(c.X.Conn(), crtc, resources.ConfigTimestamp).Reply()
		if err != nil {
			continue
		}
		if info.Width == 0 || info.Height == 0 || len(info.Outputs) == 0 {
			continue
		}
		rects = append(rects, geometry.Rect{
			X:      int32(info.X),
			Y:      int32(info.Y),
			Width:  uint32(info.Width),
			Height: uint32(info.Height),
		})
	}
	if len(rects) == 0 {
		geom, err := xwindow.New(c.X, root).Geometry()
		if err != nil {
			return nil, wmerrors.Wrap(wmerrors.Backend, "root window geometry", err)
		}
		rects = []geometry.Rect{{X: 0, Y: 0, Width: uint32(geom.Width()), Height: uint32(geom.Height())}}
	}

	c.mu.Lock()
	c.screensCache = rects
	c.screensCacheValid = true
	c.mu.Unlock()
	return rects, nil
}

// CursorPosition returns the pointer's current root-relative position.
func (c *Conn) CursorPosition() (geometry.Point, error) {
	root := c.X.RootWin()
	reply, err := xproto.QueryPointer(c.X.Conn(), root).Reply()
	if err != nil {
		return geometry.Point{}, wmerrors.Wrap(wmerrors.Backend, "query_pointer", err)
	}
	return geometry.Point{X: int32(reply.RootX), Y: int32(reply.RootY)}, nil
}

// ClientGeometry returns a client window's geometry, decoration
// included, mirroring store/client.go's OuterGeometry.
func (c *Conn) ClientGeometry(w xid.Xid) (geometry.Rect, error) {
	win := xwindow.New(c.X, xproto.Window(w))
	geom, err := win.DecorGeometry()
	if err != nil {
		return geometry.Rect{}, wmerrors.Wrapf(wmerrors.Backend, err, "client geometry window=%d", w)
	}
	return geometry.Rect{
		X:      int32(geom.X()),
		Y:      int32(geom.Y()),
		Width:  uint32(geom.Width()),
		Height: uint32(geom.Height()),
	}, nil
}

// ExistingClients returns the windows EWMH's _NET_CLIENT_LIST_STACKING
// currently reports, for adoption on startup (store/root.go's
// ClientListStackingGet).
func (c *Conn) ExistingClients() ([]xid.Xid, error) {
	wins, err := ewmh.ClientListStackingGet(c.X)
	if err != nil {
		return nil, wmerrors.Wrap(wmerrors.Backend, "client_list_stacking", err)
	}
	out := make([]xid.Xid, len(wins))
	for i, w := range wins {
		out[i] = xid.Xid(w)
	}
	return out, nil
}
