// Package diff implements the reconciliation engine (§4.4): given a
// pre-refresh and a post-refresh snapshot of the pure StackSet, it
// computes an ordered Plan of X side effects that brings the live X
// server in line with the post-refresh state, without ever touching X
// itself — Apply is the only thing that does, and it does so purely by
// calling the xconn.XConn capability passed to it.
package diff

import (
	"github.com/tilecore/wm/geometry"
	"github.com/tilecore/wm/layout"
	"github.com/tilecore/wm/wm"
	"github.com/tilecore/wm/xconn"
	"github.com/tilecore/wm/xid"
)

// OpKind is the closed set of reconciliation actions §4.4 can emit.
type OpKind int

const (
	// OpLayoutMessage delivers a dynamic message (Hide, in practice) to
	// a workspace's active layout; it has no X side effect of its own.
	OpLayoutMessage OpKind = iota
	// OpUnmap unmaps a client.
	OpUnmap
	// OpMap maps a client.
	OpMap
	// OpConfigure pushes a client's geometry and border width.
	OpConfigure
	// OpBorderColor sets a client's border color (focused vs unfocused).
	OpBorderColor
	// OpStack restacks Window directly above StackAbove, the client
	// below it in its screen's stacking order.
	OpStack
	// OpFocus transfers X input focus.
	OpFocus
	// OpWarpPointer warps the pointer to a client's center.
	OpWarpPointer
	// OpSetProp updates a window-manager property.
	OpSetProp
)

// Op is a single reconciliation step. Only the fields relevant to Kind
// are populated.
type Op struct {
	Kind OpKind

	Window xid.Xid

	Message layout.Message

	Rect        geometry.Rect
	BorderWidth uint32
	BorderColor uint32

	StackAbove xid.Xid
	HasStackAbove bool

	PropName string
	Prop     xconn.Prop
}

// Plan is the ordered list of Ops a Compute pass produced. Ops are
// always safe to Apply in slice order: Compute itself guarantees the
// §4.4 ordering invariants (unmaps before maps, geometry before
// property updates, focus last).
type Plan struct {
	Ops []Op
}

// Apply issues every op in order against x, then flushes once — "a
// single flush terminates the pass" (§4.4). It stops and returns the
// first error encountered, leaving the plan partially applied; per
// §7's propagation policy a failed refresh abandons the rest of its
// own plan but does not roll back ops already issued.
func (p Plan) Apply(x xconn.XConn) error {
	for _, op := range p.Ops {
		if err := applyOp(x, op); err != nil {
			return err
		}
	}
	return x.Flush()
}

func applyOp(x xconn.XConn, op Op) error {
	switch op.Kind {
	case OpLayoutMessage:
		return nil
	case OpUnmap:
		return x.Unmap(op.Window)
	case OpMap:
		return x.Map(op.Window)
	case OpConfigure:
		cfg := xconn.ClientConfig{Rect: op.Rect, HasRect: true, BorderWidth: op.BorderWidth, HasBorder: true}
		return x.SetClientConfig(op.Window, cfg)
	case OpBorderColor:
		return x.SetClientAttributes(op.Window, xconn.ClientAttributes{BorderPixel: op.BorderColor, HasBorder: true})
	case OpStack:
		cfg := xconn.ClientConfig{HasStacking: true, StackAbove: op.StackAbove}
		return x.SetClientConfig(op.Window, cfg)
	case OpFocus:
		return x.Focus(op.Window)
	case OpWarpPointer:
		return x.WarpPointer(op.Window, int32(op.Rect.Width/2), int32(op.Rect.Height/2))
	case OpSetProp:
		return x.SetProp(op.Window, op.PropName, op.Prop)
	}
	return nil
}

// visibleWorkspace pairs a workspace with the screen geometry it
// occupies, for the workspaces Compute considers "visible" (those
// currently assigned to a screen in the StackSet being examined).
type visibleWorkspace struct {
	screenIndex int
	geometry    geometry.Rect
	workspace   wm.Workspace[xid.Xid]
}

func visibleWorkspaces(s wm.StackSet[xid.Xid]) map[string]visibleWorkspace {
	out := make(map[string]visibleWorkspace)
	for _, sc := range s.Screens.Iter() {
		out[sc.Workspace.Tag] = visibleWorkspace{screenIndex: sc.Index, geometry: sc.Geometry, workspace: sc.Workspace}
	}
	return out
}
