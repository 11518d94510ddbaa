package core

import (
	"github.com/tilecore/wm/ext"
	"github.com/tilecore/wm/wm"
	"github.com/tilecore/wm/xid"
)

// State is the mutable universe a running WindowManager owns: the pure
// StackSet, the typed extension bag (§4.6), and a Quit callback so a
// key handler (which only ever sees *State and an XConn, per §4.7) can
// ask the run loop to stop without holding a reference to the
// WindowManager itself.
type State struct {
	Stack wm.StackSet[xid.Xid]
	Ext   *ext.Bag
	Quit  func()
}

// isManaged reports whether id is present in any workspace's client
// stack, on a screen or hidden.
func isManaged(s wm.StackSet[xid.Xid], id xid.Xid) bool {
	for _, sc := range s.Screens.Iter() {
		if wm.Contains(sc.Workspace, id) {
			return true
		}
	}
	for _, w := range s.Hidden {
		if wm.Contains(w, id) {
			return true
		}
	}
	return false
}
