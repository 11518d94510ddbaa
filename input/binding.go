// Package input implements the key and mouse binding model (§4.7): a
// {modifier mask, code} key mapped to a handler, NumLock/CapsLock
// insensitivity via four-variant synthesis, and the pointer drag-state
// tracking a mouse binding's motion handler needs to resize or move a
// floating client.
package input

import (
	"github.com/tilecore/wm/geometry"
	"github.com/tilecore/wm/wmerrors"
	"github.com/tilecore/wm/xconn"
	"github.com/tilecore/wm/xid"
)

// Modifier is a bitmask of held modifier keys (§4.7: "any subset of
// {Shift, Control, Alt, Super, NumLock}"). capsLock is not part of the
// public binding vocabulary; it exists only so lockVariants can
// synthesize the same four ignored-lock variants for CapsLock as it
// does for NumLock. The values are the X core modifier masks, so an
// event's state converts directly and a grab passes them to X as-is.
type Modifier uint16

const (
	Shift    Modifier = 1 << 0 // ShiftMask
	Control  Modifier = 1 << 2 // ControlMask
	Alt      Modifier = 1 << 3 // Mod1Mask
	Super    Modifier = 1 << 6 // Mod4Mask
	NumLock  Modifier = 1 << 4 // Mod2Mask
	capsLock Modifier = 1 << 1 // LockMask
)

// KeyBinding identifies a key chord.
type KeyBinding struct {
	Modifiers Modifier
	Code      uint8 // X keycode, pre-resolved by an external keymap utility
}

// MouseAction distinguishes the three pointer event kinds a mouse
// binding can fire on.
type MouseAction int

const (
	MousePress MouseAction = iota
	MouseRelease
	MouseMotion
)

// MouseBinding identifies a button chord and the action it fires on.
type MouseBinding struct {
	Modifiers Modifier
	Button    uint8
	Action    MouseAction
}

// KeyHandler is invoked with &mut State and &X when its binding
// matches a key press (§4.7).
type KeyHandler[S any] func(state *S, x xconn.XConn)

// MouseHandler is invoked with &mut State, &X and the pointer's root
// coordinates when its binding matches.
type MouseHandler[S any] func(state *S, x xconn.XConn, rootX, rootY int32)

// Bindings holds the resolved key and mouse maps for a running manager.
type Bindings[S any] struct {
	Keys  map[KeyBinding]KeyHandler[S]
	Mouse map[MouseBinding]MouseHandler[S]
}

// NewBindings builds an empty binding set.
func NewBindings[S any]() *Bindings[S] {
	return &Bindings[S]{
		Keys:  make(map[KeyBinding]KeyHandler[S]),
		Mouse: make(map[MouseBinding]MouseHandler[S]),
	}
}

// lockVariants returns the four modifier masks obtained by
// independently toggling NumLock and CapsLock on top of base, so a
// binding registered once still matches no matter which locks are
// currently engaged on the keyboard.
func lockVariants(base Modifier) [4]Modifier {
	clean := base &^ (NumLock | capsLock)
	return [4]Modifier{
		clean,
		clean | NumLock,
		clean | capsLock,
		clean | NumLock | capsLock,
	}
}

// BindKey registers fn for binding (and its three NumLock/CapsLock
// variants). Returns a ParseBinding error, without registering
// anything, if any variant collides with an existing binding —
// duplicate bindings are a bootstrap error (§4.7).
func (b *Bindings[S]) BindKey(binding KeyBinding, fn KeyHandler[S]) error {
	variants := lockVariants(binding.Modifiers)
	for _, m := range variants {
		kb := KeyBinding{Modifiers: m, Code: binding.Code}
		if _, exists := b.Keys[kb]; exists {
			return wmerrors.Newf(wmerrors.ParseBinding,
				"duplicate key binding: modifiers=%#x code=%d", kb.Modifiers, kb.Code)
		}
	}
	for _, m := range variants {
		b.Keys[KeyBinding{Modifiers: m, Code: binding.Code}] = fn
	}
	return nil
}

// BindMouse registers fn for binding (and its lock variants). See
// BindKey for the duplicate-binding rule.
func (b *Bindings[S]) BindMouse(binding MouseBinding, fn MouseHandler[S]) error {
	variants := lockVariants(binding.Modifiers)
	for _, m := range variants {
		mb := MouseBinding{Modifiers: m, Button: binding.Button, Action: binding.Action}
		if _, exists := b.Mouse[mb]; exists {
			return wmerrors.Newf(wmerrors.ParseBinding,
				"duplicate mouse binding: modifiers=%#x button=%d action=%d", mb.Modifiers, mb.Button, mb.Action)
		}
	}
	for _, m := range variants {
		b.Mouse[MouseBinding{Modifiers: m, Button: binding.Button, Action: binding.Action}] = fn
	}
	return nil
}

// KeyHandlerFor looks up the handler for a matching key press. Absence
// is reported via ok=false, never an error (§4.7: "absence is
// ignored").
func (b *Bindings[S]) KeyHandlerFor(modifiers Modifier, code uint8) (KeyHandler[S], bool) {
	fn, ok := b.Keys[KeyBinding{Modifiers: modifiers, Code: code}]
	return fn, ok
}

// MouseHandlerFor looks up the handler for a matching mouse event.
func (b *Bindings[S]) MouseHandlerFor(modifiers Modifier, button uint8, action MouseAction) (MouseHandler[S], bool) {
	fn, ok := b.Mouse[MouseBinding{Modifiers: modifiers, Button: button, Action: action}]
	return fn, ok
}

// Grabs flattens the registered key bindings into the deduplicated
// KeyGrab list WindowManager.Run passes to XConn.Grab.
func (b *Bindings[S]) Grabs() []xconn.KeyGrab {
	grabs := make([]xconn.KeyGrab, 0, len(b.Keys))
	for kb := range b.Keys {
		grabs = append(grabs, xconn.KeyGrab{Modifiers: uint16(kb.Modifiers), Code: kb.Code})
	}
	return grabs
}

// MouseGrabs flattens the registered mouse bindings into the
// deduplicated MouseGrab list WindowManager.Run passes to XConn.Grab.
func (b *Bindings[S]) MouseGrabs() []xconn.MouseGrab {
	seen := make(map[xconn.MouseGrab]bool, len(b.Mouse))
	grabs := make([]xconn.MouseGrab, 0, len(b.Mouse))
	for mb := range b.Mouse {
		g := xconn.MouseGrab{Modifiers: uint16(mb.Modifiers), Button: mb.Button}
		if !seen[g] {
			seen[g] = true
			grabs = append(grabs, g)
		}
	}
	return grabs
}

// DragState tracks an in-progress pointer drag against a floating
// client, so a MotionNotify-bound handler can compute the new rect
// incrementally from where the drag started (§4.8: "drag gestures
// update float rect").
type DragState struct {
	Active    bool
	Window    xid.Xid
	StartRootX, StartRootY int32
	StartRect geometry.Rect
}

// Begin starts tracking a drag of window from the given root pointer
// position and its rect at drag-start.
func (d *DragState) Begin(window xid.Xid, rootX, rootY int32, rect geometry.Rect) {
	d.Active = true
	d.Window = window
	d.StartRootX, d.StartRootY = rootX, rootY
	d.StartRect = rect
}

// End stops tracking the current drag.
func (d *DragState) End() {
	*d = DragState{}
}

// MoveDelta returns the rect StartRect shifted by the pointer's motion
// since Begin, for a window-move drag.
func (d DragState) MoveDelta(rootX, rootY int32) geometry.Rect {
	r := d.StartRect
	r.X += rootX - d.StartRootX
	r.Y += rootY - d.StartRootY
	return r
}

// ResizeDelta returns the rect StartRect grown/shrunk by the pointer's
// motion since Begin, for a window-resize drag. Width/height never go
// below min.
func (d DragState) ResizeDelta(rootX, rootY int32, min uint32) geometry.Rect {
	r := d.StartRect
	dw := rootX - d.StartRootX
	dh := rootY - d.StartRootY
	newW := int64(r.Width) + int64(dw)
	newH := int64(r.Height) + int64(dh)
	if newW < int64(min) {
		newW = int64(min)
	}
	if newH < int64(min) {
		newH = int64(min)
	}
	r.Width = uint32(newW)
	r.Height = uint32(newH)
	return r
}
