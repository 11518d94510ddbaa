package diff

import (
	"github.com/tilecore/wm/geometry"
	"github.com/tilecore/wm/layout"
	"github.com/tilecore/wm/wm"
	"github.com/tilecore/wm/xconn"
	"github.com/tilecore/wm/xid"
	"github.com/tilecore/wm/zipper"
)

// Style carries the ambient, non-pure-state configuration Compute needs
// to emit border and focus ops: border width/colors and whether to warp
// the pointer on a focus change are host-program config (§6.3), not
// part of the StackSet.
type Style struct {
	Root               xid.Xid
	BorderWidth        uint32
	FocusedColor       uint32
	UnfocusedColor     uint32
	WarpPointerOnFocus bool
}

// display is a client's computed on-screen placement for one snapshot.
type display struct {
	rect   geometry.Rect
	screen int
	order  int // position within its screen's final stacking list, 0 = topmost
}

// Compute produces the ordered Plan that reconciles the live X server
// from pre to post (§4.4), plus the StackSet that should actually be
// installed: workspaces that received a Hide message, or whose active
// layout's own positioning call returned a replacement, are folded
// back into the returned state rather than into post directly.
func Compute(pre, post wm.StackSet[xid.Xid], style Style) (Plan, wm.StackSet[xid.Xid]) {
	next := post.Clone()
	var ops []Op

	preVis := visibleWorkspaces(pre)
	postVis := visibleWorkspaces(next)

	// Step 1: tags that left visibility get a Hide message.
	for tag := range preVis {
		if _, stillVisible := postVis[tag]; stillVisible {
			continue
		}
		ops = append(ops, Op{Kind: OpLayoutMessage, Message: layout.NewMessage(layout.Hide{})})
		next = next.HandleMessageForTag(tag, layout.NewMessage(layout.Hide{}))
	}
	// Step 2 (newly visible tags) needs no emission of its own: the
	// positioning pass below treats every currently-visible workspace
	// uniformly, whether or not it was visible in pre.

	preDisplay, _ := computeDisplay(pre, preVis)

	postVis = visibleWorkspaces(next)
	nextDisplay, replacements := computeDisplay(next, postVis)
	for tag, repl := range replacements {
		next = next.SetActiveLayoutForTag(tag, repl)
	}

	// Step 4 (first half): unmap anything no longer displayed.
	for id := range preDisplay {
		if _, stillDisplayed := nextDisplay[id]; !stillDisplayed {
			ops = append(ops, Op{Kind: OpUnmap, Window: id})
		}
	}

	// Step 4 (second half) + step 5: map newly displayed clients; push
	// geometry/border for anything new or whose rect moved.
	focused, hasFocus := next.FocusedClient()
	screenOrder := make(map[int][]xid.Xid)
	for id, d := range nextDisplay {
		pd, wasDisplayed := preDisplay[id]
		if !wasDisplayed {
			ops = append(ops, Op{Kind: OpMap, Window: id})
		}
		if !wasDisplayed || pd.rect != d.rect {
			ops = append(ops, Op{Kind: OpConfigure, Window: id, Rect: d.rect, BorderWidth: style.BorderWidth})
		}
		color := style.UnfocusedColor
		if hasFocus && focused == id {
			color = style.FocusedColor
		}
		ops = append(ops, Op{Kind: OpBorderColor, Window: id, BorderColor: color})

		run := screenOrder[d.screen]
		for len(run) <= d.order {
			run = append(run, xid.None)
		}
		run[d.order] = id
		screenOrder[d.screen] = run
	}
	for _, run := range screenOrder {
		for i := 0; i < len(run)-1; i++ {
			if run[i] == xid.None || run[i+1] == xid.None {
				continue
			}
			ops = append(ops, Op{Kind: OpStack, Window: run[i], StackAbove: run[i+1], HasStackAbove: true})
		}
	}

	// Step 7: window-manager properties.
	ops = append(ops, propertyOps(next, style.Root)...)

	// Step 6: focus change, emitted last per the ordering guarantee
	// even though §4.4 numbers it before properties.
	preFocus, preOK := pre.FocusedClient()
	if hasFocus && (!preOK || preFocus != focused) {
		ops = append(ops, Op{Kind: OpFocus, Window: focused})
		if style.WarpPointerOnFocus {
			if d, ok := nextDisplay[focused]; ok {
				ops = append(ops, Op{Kind: OpWarpPointer, Window: focused, Rect: d.rect})
			}
		}
	}

	return Plan{Ops: ops}, next
}

// computeDisplay computes, for every visible workspace in vis, the
// final per-client rect and stacking order (step 3), and returns
// alongside it any replacement layout a workspace's positioning call
// produced, keyed by tag, for the caller to persist.
func computeDisplay(s wm.StackSet[xid.Xid], vis map[string]visibleWorkspace) (map[xid.Xid]display, map[string]layout.Layout) {
	out := make(map[xid.Xid]display)
	replacements := make(map[string]layout.Layout)
	focused, hasFocus := s.FocusedClient()

	for tag, v := range vis {
		floats, tiled := partitionFloating(v.workspace.Stack, s.Floating, s.Invisible)

		active := v.workspace.Layouts.Active()
		replacement, tiledPlacements := layout.LayoutWorkspace(active, tiled, v.geometry)
		if replacement != nil {
			replacements[tag] = replacement
		}

		order := 0
		for _, id := range orderFloats(floats, focused, hasFocus) {
			out[id] = display{rect: v.geometry.Scale(s.Floating[id]), screen: v.screenIndex, order: order}
			order++
		}
		for _, p := range tiledPlacements {
			if _, invisible := s.Invisible[p.Window]; invisible {
				continue
			}
			out[p.Window] = display{rect: p.Rect, screen: v.screenIndex, order: order}
			order++
		}
	}
	return out, replacements
}

// partitionFloating splits a workspace's client stack into the
// floating ids (in iteration order) and a tiled-only stack with
// floating and invisible ids removed (nil if nothing remains).
func partitionFloating(s *zipper.Stack[xid.Xid], floating map[xid.Xid]geometry.FracRect, invisible map[xid.Xid]struct{}) ([]xid.Xid, *zipper.Stack[xid.Xid]) {
	if s == nil {
		return nil, nil
	}
	var floats []xid.Xid
	for _, id := range s.Iter() {
		if _, ok := floating[id]; !ok {
			continue
		}
		if _, hidden := invisible[id]; hidden {
			continue
		}
		floats = append(floats, id)
	}
	tiled, ok := zipper.Filter(*s, func(id xid.Xid) bool {
		if _, ok := floating[id]; ok {
			return false
		}
		if _, ok := invisible[id]; ok {
			return false
		}
		return true
	})
	if !ok {
		return floats, nil
	}
	return floats, &tiled
}

// orderFloats sorts floating ids so the focused client (if floating and
// in this workspace) is topmost, preserving stack order otherwise.
func orderFloats(floats []xid.Xid, focused xid.Xid, hasFocus bool) []xid.Xid {
	if !hasFocus || len(floats) < 2 {
		return floats
	}
	out := make([]xid.Xid, 0, len(floats))
	for _, id := range floats {
		if id == focused {
			out = append([]xid.Xid{id}, out...)
		} else {
			out = append(out, id)
		}
	}
	return out
}

// propertyOps builds the window-manager property updates §4.4 step 7
// requires: active workspace (current tag), the flat client list, and
// the workspace (tag) list. The tag name and tag list use
// tilecore-specific atom names since tags, not numbered desktops, are
// this engine's unit of visibility; _NET_CURRENT_DESKTOP carries the
// current workspace's index, and _NET_CLIENT_LIST and
// _NET_ACTIVE_WINDOW are kept EWMH-standard.
func propertyOps(s wm.StackSet[xid.Xid], root xid.Xid) []Op {
	var tags []string
	var clients []xid.Xid
	for _, sc := range s.Screens.Iter() {
		tags = append(tags, sc.Workspace.Tag)
		if sc.Workspace.Stack != nil {
			clients = append(clients, sc.Workspace.Stack.Iter()...)
		}
	}
	for _, w := range s.Hidden {
		tags = append(tags, w.Tag)
		if w.Stack != nil {
			clients = append(clients, w.Stack.Iter()...)
		}
	}

	active := root
	if focused, ok := s.FocusedClient(); ok {
		active = focused
	}

	return []Op{
		{Kind: OpSetProp, Window: root, PropName: "_TILECORE_CURRENT_TAG",
			Prop: xconn.Prop{Kind: xconn.PropString, Strings: []string{s.CurrentTag()}}},
		{Kind: OpSetProp, Window: root, PropName: "_NET_CURRENT_DESKTOP",
			Prop: xconn.Prop{Kind: xconn.PropCardinal, Cardinals: []uint32{uint32(s.Screens.Focus.Workspace.ID)}}},
		{Kind: OpSetProp, Window: root, PropName: "_TILECORE_WORKSPACE_LIST",
			Prop: xconn.Prop{Kind: xconn.PropString, Strings: tags}},
		{Kind: OpSetProp, Window: root, PropName: "_NET_CLIENT_LIST",
			Prop: xconn.Prop{Kind: xconn.PropWindow, Windows: clients}},
		{Kind: OpSetProp, Window: root, PropName: "_NET_ACTIVE_WINDOW",
			Prop: xconn.Prop{Kind: xconn.PropWindow, Windows: []xid.Xid{active}}},
	}
}
