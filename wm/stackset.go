package wm

import (
	"github.com/tilecore/wm/geometry"
	"github.com/tilecore/wm/layout"
	"github.com/tilecore/wm/wmerrors"
	"github.com/tilecore/wm/zipper"
)

// StackSet is the top-level pure universe (§3): a focused stack of
// screens, workspaces not currently shown on any screen, per-window
// floating overrides, the previously-viewed tag, and the set of managed
// but intentionally unmapped windows. T is the client identifier type
// (xid.Xid in the backend, left generic here so the core stays
// independent of any particular X binding).
type StackSet[T comparable] struct {
	Screens     zipper.Stack[Screen[T]]
	Hidden      []Workspace[T]
	Floating    map[T]geometry.FracRect
	PreviousTag *string
	Invisible   map[T]struct{}
}

// New builds a StackSet from a tag list and one geometry per screen.
// len(tags) must be >= len(screenGeoms) and every tag must be unique
// and non-empty; excess tags become hidden workspaces. newLayouts is
// called once per workspace so that each gets its own independent
// layout cycle.
func New[T comparable](tags []string, screenGeoms []geometry.Rect, newLayouts func() layout.LayoutStack) (StackSet[T], error) {
	var zero StackSet[T]
	if len(tags) == 0 {
		return zero, wmerrors.New(wmerrors.InvalidState, "stackset: at least one tag is required")
	}
	if len(screenGeoms) == 0 {
		return zero, wmerrors.New(wmerrors.InvalidState, "stackset: at least one screen is required")
	}
	if len(tags) < len(screenGeoms) {
		return zero, wmerrors.Newf(wmerrors.InvalidState,
			"stackset: need at least %d tags for %d screens, got %d", len(screenGeoms), len(screenGeoms), len(tags))
	}
	seen := make(map[string]bool, len(tags))
	for _, t := range tags {
		if t == "" {
			return zero, wmerrors.New(wmerrors.InvalidState, "stackset: tags must be non-empty")
		}
		if seen[t] {
			return zero, wmerrors.Newf(wmerrors.InvalidState, "stackset: duplicate tag %q", t)
		}
		seen[t] = true
	}

	workspaces := make([]Workspace[T], len(tags))
	for i, t := range tags {
		workspaces[i] = NewWorkspace[T](i, t, newLayouts())
	}

	screens := make([]Screen[T], len(screenGeoms))
	for i, g := range screenGeoms {
		screens[i] = Screen[T]{Index: i, Geometry: g, Workspace: workspaces[i]}
	}

	hidden := append([]Workspace[T]{}, workspaces[len(screenGeoms):]...)

	return StackSet[T]{
		Screens:   zipper.FromList(screens),
		Hidden:    hidden,
		Floating:  make(map[T]geometry.FracRect),
		Invisible: make(map[T]struct{}),
	}, nil
}

// Clone deep-copies s so that mutating the result never aliases s.
func (s StackSet[T]) Clone() StackSet[T] {
	clone := s
	clone.Screens = zipper.Map(s.Screens, func(sc Screen[T]) Screen[T] { return sc.Clone() })
	clone.Hidden = make([]Workspace[T], len(s.Hidden))
	for i, w := range s.Hidden {
		clone.Hidden[i] = w.Clone()
	}
	clone.Floating = make(map[T]geometry.FracRect, len(s.Floating))
	for k, v := range s.Floating {
		clone.Floating[k] = v
	}
	clone.Invisible = make(map[T]struct{}, len(s.Invisible))
	for k := range s.Invisible {
		clone.Invisible[k] = struct{}{}
	}
	if s.PreviousTag != nil {
		t := *s.PreviousTag
		clone.PreviousTag = &t
	}
	return clone
}

// CurrentTag returns the focused screen's workspace tag.
func (s StackSet[T]) CurrentTag() string {
	return s.Screens.Focus.Workspace.Tag
}

// FocusedClient returns the focused workspace's focused client, if any.
func (s StackSet[T]) FocusedClient() (T, bool) {
	st := s.Screens.Focus.Workspace.Stack
	if st == nil {
		var zero T
		return zero, false
	}
	return st.Focus, true
}

// stackFromSlice rebuilds a zipper focused on all[idx], from a flat
// top-to-bottom slice (the shape zipper.Stack.Iter returns).
func stackFromSlice[E any](all []E, idx int) zipper.Stack[E] {
	up := make([]E, idx)
	copy(up, all[:idx])
	for i, j := 0, len(up)-1; i < j; i, j = i+1, j-1 {
		up[i], up[j] = up[j], up[i]
	}
	down := make([]E, len(all)-idx-1)
	copy(down, all[idx+1:])
	return zipper.Stack[E]{Up: up, Focus: all[idx], Down: down}
}

// focusIterIndex moves s's focus to position idx of s.Iter(), without
// reordering the underlying elements otherwise.
func focusIterIndex[E any](s zipper.Stack[E], idx int) zipper.Stack[E] {
	return stackFromSlice(s.Iter(), idx)
}

// locateClient finds which workspace (by tag) manages id, and whether
// that workspace currently sits on a screen (and at what position in
// Screens.Iter()) or is hidden (and at what index).
func (s StackSet[T]) locateClient(id T) (tag string, onScreen bool, screenPos, hiddenPos int, ok bool) {
	screens := s.Screens.Iter()
	for i, sc := range screens {
		if Contains(sc.Workspace, id) {
			return sc.Workspace.Tag, true, i, 0, true
		}
	}
	for i, w := range s.Hidden {
		if Contains(w, id) {
			return w.Tag, false, 0, i, true
		}
	}
	return "", false, 0, 0, false
}

// recordPreviousTag sets PreviousTag to oldTag iff the current tag
// actually changed, so toggle_tag can round-trip (invariant 5/6).
func (s *StackSet[T]) recordPreviousTag(oldTag string) {
	if oldTag != s.CurrentTag() {
		t := oldTag
		s.PreviousTag = &t
	}
}

// swapHiddenIntoFocusedScreen swaps Hidden[hiddenPos] into the focused
// screen, displacing that screen's previous workspace into Hidden at
// the same slot.
func (s *StackSet[T]) swapHiddenIntoFocusedScreen(hiddenPos int) {
	old := s.Screens.Focus.Workspace
	s.Screens.Focus.Workspace = s.Hidden[hiddenPos]
	s.Hidden[hiddenPos] = old
}

// mutateWorkspaceByTag applies fn to the workspace with the given tag,
// wherever it currently lives (on any screen, or hidden), and reports
// whether a matching workspace was found.
func (s *StackSet[T]) mutateWorkspaceByTag(tag string, fn func(Workspace[T]) Workspace[T]) bool {
	all := s.Screens.Iter()
	focusedIdx := len(s.Screens.Up)
	for i, sc := range all {
		if sc.Workspace.Tag == tag {
			all[i].Workspace = fn(sc.Workspace)
			s.Screens = stackFromSlice(all, focusedIdx)
			return true
		}
	}
	for i, w := range s.Hidden {
		if w.Tag == tag {
			s.Hidden[i] = fn(w)
			return true
		}
	}
	return false
}

// FocusClient brings the workspace managing id forward (per screen
// rules identical to View) and focuses id within that workspace's
// stack.
func (s StackSet[T]) FocusClient(id T) (StackSet[T], error) {
	_, onScreen, screenPos, hiddenPos, ok := s.locateClient(id)
	if !ok {
		return s, wmerrors.Newf(wmerrors.InvalidState, "focus_client: client is not managed")
	}
	clone := s.Clone()
	oldTag := clone.CurrentTag()
	if onScreen {
		clone.Screens = focusIterIndex(clone.Screens, screenPos)
	} else {
		clone.swapHiddenIntoFocusedScreen(hiddenPos)
	}
	clone.recordPreviousTag(oldTag)

	ws := clone.Screens.Focus.Workspace
	if ws.Stack != nil {
		newStack := focusOnValue(*ws.Stack, id)
		ws.Stack = &newStack
		clone.Screens.Focus.Workspace = ws
	}
	return clone, nil
}

// focusOnValue moves s's focus onto v, if present; otherwise returns s
// unchanged.
func focusOnValue[E comparable](s zipper.Stack[E], v E) zipper.Stack[E] {
	all := s.Iter()
	for i, e := range all {
		if e == v {
			return stackFromSlice(all, i)
		}
	}
	return s
}

// View makes tag the focused workspace. A no-op if tag is already
// current (invariant 5). If tag is on another screen, that screen
// becomes focused; if hidden, it is swapped with the focused screen's
// current workspace.
func (s StackSet[T]) View(tag string) (StackSet[T], error) {
	clone := s.Clone()
	oldTag := clone.CurrentTag()
	if oldTag == tag {
		return clone, nil
	}
	screens := clone.Screens.Iter()
	for i, sc := range screens {
		if sc.Workspace.Tag == tag {
			clone.Screens = focusIterIndex(clone.Screens, i)
			clone.recordPreviousTag(oldTag)
			return clone, nil
		}
	}
	for i, w := range clone.Hidden {
		if w.Tag == tag {
			old := clone.Screens.Focus.Workspace
			clone.Screens.Focus.Workspace = w
			clone.Hidden[i] = old
			clone.recordPreviousTag(oldTag)
			return clone, nil
		}
	}
	return s, wmerrors.Newf(wmerrors.InvalidState, "view: unknown tag %q", tag)
}

// GreedyView is like View, but if tag is on another screen the two
// screens' workspaces are swapped (screen focus does not move) instead
// of moving screen focus to tag's screen.
func (s StackSet[T]) GreedyView(tag string) (StackSet[T], error) {
	clone := s.Clone()
	oldTag := clone.CurrentTag()
	if oldTag == tag {
		return clone, nil
	}
	all := clone.Screens.Iter()
	focusedIdx := len(clone.Screens.Up)
	for i, sc := range all {
		if sc.Workspace.Tag == tag {
			all[focusedIdx].Workspace, all[i].Workspace = all[i].Workspace, all[focusedIdx].Workspace
			clone.Screens = stackFromSlice(all, focusedIdx)
			clone.recordPreviousTag(oldTag)
			return clone, nil
		}
	}
	for i, w := range clone.Hidden {
		if w.Tag == tag {
			old := clone.Screens.Focus.Workspace
			clone.Screens.Focus.Workspace = w
			clone.Hidden[i] = old
			clone.recordPreviousTag(oldTag)
			return clone, nil
		}
	}
	return s, wmerrors.Newf(wmerrors.InvalidState, "greedy_view: unknown tag %q", tag)
}

// ToggleTag views PreviousTag, if one is set; otherwise it is a no-op.
func (s StackSet[T]) ToggleTag() (StackSet[T], error) {
	if s.PreviousTag == nil {
		return s, nil
	}
	return s.View(*s.PreviousTag)
}

// MoveClientToTag removes the focused workspace's focused client and
// inserts it as the new focus of tag's stack.
func (s StackSet[T]) MoveClientToTag(tag string) (StackSet[T], error) {
	clone := s.Clone()
	focusedWS := clone.Screens.Focus.Workspace
	if focusedWS.Stack == nil {
		return s, wmerrors.New(wmerrors.InvalidState, "move_client_to_tag: focused workspace has no client")
	}
	if focusedWS.Tag == tag {
		return clone, nil
	}
	id := focusedWS.Stack.Focus

	newStack, hasMore := focusedWS.Stack.RemoveFocused()
	if hasMore {
		focusedWS.Stack = &newStack
	} else {
		focusedWS.Stack = nil
	}
	clone.Screens.Focus.Workspace = focusedWS

	ok := clone.mutateWorkspaceByTag(tag, func(w Workspace[T]) Workspace[T] {
		return insertIntoWorkspace(w, id)
	})
	if !ok {
		return s, wmerrors.Newf(wmerrors.InvalidState, "move_client_to_tag: unknown tag %q", tag)
	}
	return clone, nil
}

func insertIntoWorkspace[T any](w Workspace[T], id T) Workspace[T] {
	if w.Stack == nil {
		st := zipper.New(id)
		w.Stack = &st
		return w
	}
	st := zipper.Insert(*w.Stack, id, zipper.InsertHead)
	w.Stack = &st
	return w
}

// MoveClientToScreen removes the focused workspace's focused client and
// inserts it as the new focus of the stack of the workspace currently
// visible on the screen with the given index.
func (s StackSet[T]) MoveClientToScreen(index int) (StackSet[T], error) {
	clone := s.Clone()
	focusedWS := clone.Screens.Focus.Workspace
	if focusedWS.Stack == nil {
		return s, wmerrors.New(wmerrors.InvalidState, "move_client_to_screen: focused workspace has no client")
	}
	id := focusedWS.Stack.Focus

	all := clone.Screens.Iter()
	focusedIdx := len(clone.Screens.Up)
	targetPos := -1
	for i, sc := range all {
		if sc.Index == index {
			targetPos = i
			break
		}
	}
	if targetPos == -1 {
		return s, wmerrors.Newf(wmerrors.InvalidState, "move_client_to_screen: unknown screen %d", index)
	}
	if targetPos == focusedIdx {
		return clone, nil
	}

	newStack, hasMore := focusedWS.Stack.RemoveFocused()
	if hasMore {
		focusedWS.Stack = &newStack
	} else {
		focusedWS.Stack = nil
	}
	all[focusedIdx].Workspace = focusedWS
	all[targetPos].Workspace = insertIntoWorkspace(all[targetPos].Workspace, id)
	clone.Screens = stackFromSlice(all, focusedIdx)
	return clone, nil
}

// Insert adds id to the focused workspace's stack at pos. Returns
// InvalidState if id is already managed elsewhere.
func (s StackSet[T]) Insert(id T, pos zipper.InsertPosition) (StackSet[T], error) {
	if _, _, _, _, ok := s.locateClient(id); ok {
		return s, wmerrors.New(wmerrors.InvalidState, "insert: client is already managed")
	}
	clone := s.Clone()
	ws := clone.Screens.Focus.Workspace
	if ws.Stack == nil {
		st := zipper.New(id)
		ws.Stack = &st
	} else {
		st := zipper.Insert(*ws.Stack, id, pos)
		ws.Stack = &st
	}
	clone.Screens.Focus.Workspace = ws
	return clone, nil
}

// InsertDefault inserts id at the focused workspace using the default
// policy: it becomes the new focus, pushing the previous focus down.
func (s StackSet[T]) InsertDefault(id T) (StackSet[T], error) {
	return s.Insert(id, zipper.InsertHead)
}

func removeFromStack[T comparable](s zipper.Stack[T], id T) (zipper.Stack[T], bool) {
	if s.Focus == id {
		return s.RemoveFocused()
	}
	return zipper.Filter(s, func(v T) bool { return v != id })
}

// Remove strips id from every workspace stack, from Floating, and from
// Invisible. The pure counterpart to kill_focused, which additionally
// asks the X capability to close the client (§4.2).
func (s StackSet[T]) Remove(id T) StackSet[T] {
	clone := s.Clone()

	all := clone.Screens.Iter()
	focusedIdx := len(clone.Screens.Up)
	for i, sc := range all {
		if sc.Workspace.Stack == nil || !zipper.Contains(*sc.Workspace.Stack, id) {
			continue
		}
		if newStack, ok := removeFromStack(*sc.Workspace.Stack, id); ok {
			sc.Workspace.Stack = &newStack
		} else {
			sc.Workspace.Stack = nil
		}
		all[i] = sc
	}
	clone.Screens = stackFromSlice(all, focusedIdx)

	for i, w := range clone.Hidden {
		if w.Stack == nil || !zipper.Contains(*w.Stack, id) {
			continue
		}
		if newStack, ok := removeFromStack(*w.Stack, id); ok {
			w.Stack = &newStack
		} else {
			w.Stack = nil
		}
		clone.Hidden[i] = w
	}

	delete(clone.Floating, id)
	delete(clone.Invisible, id)
	return clone
}

// NextScreen moves screen focus to the next screen, wrapping around.
func (s StackSet[T]) NextScreen() StackSet[T] {
	clone := s.Clone()
	clone.Screens = clone.Screens.FocusDown()
	return clone
}

// PreviousScreen moves screen focus to the previous screen, wrapping
// around.
func (s StackSet[T]) PreviousScreen() StackSet[T] {
	clone := s.Clone()
	clone.Screens = clone.Screens.FocusUp()
	return clone
}

// Sink removes id's floating override, returning it to tiled layout.
func (s StackSet[T]) Sink(id T) StackSet[T] {
	clone := s.Clone()
	delete(clone.Floating, id)
	return clone
}

// Float normalizes rect against the geometry of the screen currently
// showing id's workspace (or, if id's workspace is hidden, the focused
// screen) and records the resulting fraction in Floating.
func (s StackSet[T]) Float(id T, rect geometry.Rect) (StackSet[T], error) {
	_, onScreen, screenPos, _, ok := s.locateClient(id)
	if !ok {
		return s, wmerrors.New(wmerrors.InvalidState, "float: client is not managed")
	}
	clone := s.Clone()
	screenGeom := clone.Screens.Focus.Geometry
	if onScreen {
		screenGeom = clone.Screens.Iter()[screenPos].Geometry
	}
	clone.Floating[id] = screenGeom.Normalize(rect)
	return clone, nil
}

// NextLayout rotates the focused workspace's layout cycle forward.
func (s StackSet[T]) NextLayout() StackSet[T] {
	clone := s.Clone()
	ws := clone.Screens.Focus.Workspace
	ws.Layouts = ws.Layouts.Next()
	clone.Screens.Focus.Workspace = ws
	return clone
}

// PreviousLayout rotates the focused workspace's layout cycle backward.
func (s StackSet[T]) PreviousLayout() StackSet[T] {
	clone := s.Clone()
	ws := clone.Screens.Focus.Workspace
	ws.Layouts = ws.Layouts.Previous()
	clone.Screens.Focus.Workspace = ws
	return clone
}

// HandleMessage dispatches m to the focused workspace's active layout
// only.
func (s StackSet[T]) HandleMessage(m layout.Message) StackSet[T] {
	clone := s.Clone()
	ws := clone.Screens.Focus.Workspace
	ws.Layouts = ws.Layouts.HandleActive(m)
	clone.Screens.Focus.Workspace = ws
	return clone
}

// BroadcastMessage dispatches m to every layout in the focused
// workspace's cycle, not only the active one.
func (s StackSet[T]) BroadcastMessage(m layout.Message) StackSet[T] {
	clone := s.Clone()
	ws := clone.Screens.Focus.Workspace
	ws.Layouts = ws.Layouts.Broadcast(m)
	clone.Screens.Focus.Workspace = ws
	return clone
}

// HandleMessageForTag dispatches m to the active layout of the
// workspace with the given tag, wherever it currently lives (on a
// screen or hidden). A no-op if no such tag exists — used by the diff
// engine to deliver Hide to a workspace that just left visibility,
// without requiring that workspace to be focused.
func (s StackSet[T]) HandleMessageForTag(tag string, m layout.Message) StackSet[T] {
	clone := s.Clone()
	clone.mutateWorkspaceByTag(tag, func(w Workspace[T]) Workspace[T] {
		w.Layouts = w.Layouts.HandleActive(m)
		return w
	})
	return clone
}

// SetActiveLayoutForTag replaces the active layout of the workspace
// with the given tag, wherever it currently lives. Used by the diff
// engine to persist the replacement layout a positioning call returns.
func (s StackSet[T]) SetActiveLayoutForTag(tag string, l layout.Layout) StackSet[T] {
	clone := s.Clone()
	clone.mutateWorkspaceByTag(tag, func(w Workspace[T]) Workspace[T] {
		w.Layouts = w.Layouts.SetActive(l)
		return w
	})
	return clone
}
