package core

import (
	"github.com/tilecore/wm/geometry"
	"github.com/tilecore/wm/wm"
	"github.com/tilecore/wm/xid"
	"github.com/tilecore/wm/zipper"

	log "github.com/sirupsen/logrus"
)

// ReindexScreens recomputes the screen list against newGeoms (§4.8's
// randr row / property-notify-on-root row): workspace↔screen mapping is
// preserved by index wherever a screen survives at that index; outputs
// that disappear spill their workspace to Hidden; new outputs are
// padded from the front of Hidden, in Hidden's slice order. If more screens
// appear than there are workspaces to cover them (Hidden exhausted),
// the excess outputs are left unassigned and logged — growing the tag
// list at runtime is out of scope (§2's explicit Non-goal on dynamic
// workspace creation).
//
// Screen focus is restored onto whichever new screen holds the tag
// that was focused before reindexing; if that tag ended up in Hidden
// (its screen disappeared), focus falls back to the first screen.
func ReindexScreens(s wm.StackSet[xid.Xid], newGeoms []geometry.Rect) wm.StackSet[xid.Xid] {
	clone := s.Clone()
	if len(newGeoms) == 0 {
		log.Warn("reindex_screens: backend reported zero outputs, keeping existing topology")
		return clone
	}

	focusedTag := clone.CurrentTag()
	oldScreens := clone.Screens.Iter()

	hidden := append([]wm.Workspace[xid.Xid]{}, clone.Hidden...)

	newScreens := make([]wm.Screen[xid.Xid], 0, len(newGeoms))
	for i, g := range newGeoms {
		var ws wm.Workspace[xid.Xid]
		switch {
		case i < len(oldScreens):
			ws = oldScreens[i].Workspace
		case len(hidden) > 0:
			ws = hidden[0]
			hidden = hidden[1:]
		default:
			log.Warnf("reindex_screens: no spare workspace for output %d, leaving unassigned", i)
			continue
		}
		newScreens = append(newScreens, wm.Screen[xid.Xid]{Index: i, Geometry: g, Workspace: ws})
	}
	for i := len(newScreens); i < len(oldScreens); i++ {
		hidden = append(hidden, oldScreens[i].Workspace)
	}

	if len(newScreens) == 0 {
		log.Warn("reindex_screens: no workspace available for any output, keeping existing topology")
		return clone
	}

	focusIdx := 0
	for i, sc := range newScreens {
		if sc.Workspace.Tag == focusedTag {
			focusIdx = i
			break
		}
	}

	clone.Screens = focusScreensAt(newScreens, focusIdx)
	clone.Hidden = hidden
	return clone
}

// focusScreensAt builds a zipper.Stack[Screen[xid.Xid]] from a flat
// slice, focused at idx — the shape zipper.Stack.Iter returns, in
// reverse for Up.
func focusScreensAt(all []wm.Screen[xid.Xid], idx int) zipper.Stack[wm.Screen[xid.Xid]] {
	up := make([]wm.Screen[xid.Xid], idx)
	copy(up, all[:idx])
	for i, j := 0, len(up)-1; i < j; i, j = i+1, j-1 {
		up[i], up[j] = up[j], up[i]
	}
	down := append([]wm.Screen[xid.Xid]{}, all[idx+1:]...)
	return zipper.Stack[wm.Screen[xid.Xid]]{Up: up, Focus: all[idx], Down: down}
}
