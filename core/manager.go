package core

import (
	"context"

	"github.com/tilecore/wm/diff"
	"github.com/tilecore/wm/ext"
	"github.com/tilecore/wm/hooks"
	"github.com/tilecore/wm/input"
	"github.com/tilecore/wm/wm"
	"github.com/tilecore/wm/wmerrors"
	"github.com/tilecore/wm/xconn"
	"github.com/tilecore/wm/xid"

	log "github.com/sirupsen/logrus"
)

// Phase is the run loop's coarse state (§4.9: "Starting → Running ↔
// Handling → ShuttingDown"), tracked only for logging/introspection —
// there is no concurrency to synchronize against it.
type Phase int

const (
	PhaseStarting Phase = iota
	PhaseRunning
	PhaseHandling
	PhaseShuttingDown
)

func (p Phase) String() string {
	switch p {
	case PhaseStarting:
		return "starting"
	case PhaseRunning:
		return "running"
	case PhaseHandling:
		return "handling"
	case PhaseShuttingDown:
		return "shutting_down"
	default:
		return "unknown"
	}
}

// WindowManager owns the State and the X capability (§4.9) and drives
// the single-threaded bootstrap → grab → loop lifecycle.
type WindowManager struct {
	conn  xconn.XConn
	cfg   Config
	state State
	phase Phase
	drag  input.DragState

	cancel context.CancelFunc
}

// New builds a WindowManager from a connected backend and a filled-in
// Config. The initial StackSet is built from cfg.Tags against the
// backend's current screen list.
func New(conn xconn.XConn, cfg Config) (*WindowManager, error) {
	if cfg.Bindings == nil {
		cfg.Bindings = input.NewBindings[State]()
	}
	if cfg.Hooks == nil {
		cfg.Hooks = hooks.NewRegistry[State]()
	}

	geoms, err := conn.ScreenDetails()
	if err != nil {
		return nil, wmerrors.Wrap(wmerrors.Backend, "new: screen_details", err)
	}
	stack, err := wm.New[xid.Xid](cfg.Tags, geoms, cfg.NewLayouts)
	if err != nil {
		return nil, err
	}

	m := &WindowManager{
		conn: conn,
		cfg:  cfg,
		state: State{
			Stack: stack,
			Ext:   ext.NewBag(),
		},
	}
	m.state.Quit = func() {
		if m.cancel != nil {
			m.cancel()
		}
	}
	return m, nil
}

// supportedAtoms is the subset of EWMH the core advertises via
// _NET_SUPPORTED (§6.2).
var supportedAtoms = []string{
	"_NET_SUPPORTED", "_NET_NUMBER_OF_DESKTOPS", "_NET_DESKTOP_NAMES",
	"_NET_CURRENT_DESKTOP", "_NET_CLIENT_LIST", "_NET_ACTIVE_WINDOW",
	"_NET_WM_NAME", "_NET_WM_DESKTOP", "_NET_CLOSE_WINDOW", "WM_STATE",
}

// initRootProperties sets the root-window properties that never change
// across a run (§6.2): the WM name, the supported-atoms list, the
// desktop count and names. _NET_CURRENT_DESKTOP, _NET_CLIENT_LIST and
// _NET_ACTIVE_WINDOW are dynamic and maintained by diff.Compute.
func (m *WindowManager) initRootProperties() error {
	root := m.conn.Root()
	name := m.cfg.WMName
	if name == "" {
		name = "tilecore"
	}

	atoms := make([]xid.Xid, 0, len(supportedAtoms))
	for _, a := range supportedAtoms {
		atom, err := m.conn.InternAtom(a)
		if err != nil {
			return wmerrors.Wrapf(wmerrors.Backend, err, "init_root_properties: intern %s", a)
		}
		atoms = append(atoms, atom)
	}
	if err := m.conn.SetProp(root, "_NET_SUPPORTED", xconn.Prop{Kind: xconn.PropAtom, Atoms: atoms}); err != nil {
		return err
	}
	if err := m.conn.SetProp(root, "_NET_WM_NAME", xconn.Prop{Kind: xconn.PropString, Strings: []string{name}}); err != nil {
		return err
	}
	if err := m.conn.SetProp(root, "_NET_NUMBER_OF_DESKTOPS", xconn.Prop{Kind: xconn.PropCardinal, Cardinals: []uint32{uint32(len(m.cfg.Tags))}}); err != nil {
		return err
	}
	return m.conn.SetProp(root, "_NET_DESKTOP_NAMES", xconn.Prop{Kind: xconn.PropString, Strings: m.cfg.Tags})
}

func (m *WindowManager) style() diff.Style {
	return diff.Style{
		Root:               m.conn.Root(),
		BorderWidth:        m.cfg.BorderWidth,
		FocusedColor:       m.cfg.FocusedColor,
		UnfocusedColor:     m.cfg.UnfocusedColor,
		WarpPointerOnFocus: m.cfg.WarpPointerOnFocus,
	}
}

// ModifyAndRefresh is the canonical mutation entry point (§4.9): clone
// the live state, apply f, diff against the live state, issue the
// resulting plan, install whatever diff.Compute says to install, and
// fire refresh hooks.
func (m *WindowManager) ModifyAndRefresh(f func(wm.StackSet[xid.Xid]) wm.StackSet[xid.Xid]) error {
	pre := m.state.Stack
	proposed := f(pre.Clone())

	plan, next := diff.Compute(pre, proposed, m.style())
	if err := plan.Apply(m.conn); err != nil {
		return wmerrors.Wrap(wmerrors.Backend, "modify_and_refresh: apply plan", err)
	}

	m.state.Stack = next
	m.cfg.Hooks.RunRefresh(&m.state, m.conn)
	return nil
}

// manageWindow runs the manage hook against live state, then inserts
// the client via the default policy and refreshes (§4.8's map-request
// row: "run manage hook, insert into state, refresh"). The manage hook
// runs first and outside the pure cycle because it is specified to
// mutate *State directly (e.g. to move the client to a tag before it
// is ever placed); the insert itself stays inside ModifyAndRefresh so
// it diffs and refreshes like every other mutation.
func (m *WindowManager) manageWindow(w xid.Xid) {
	if isManaged(m.state.Stack, w) {
		return
	}
	if m.cfg.ManageFilter != nil {
		attrs, err := m.conn.GetWindowAttributes(w)
		if err != nil {
			log.WithError(err).Warn("manage: get_window_attributes failed")
			return
		}
		if !m.cfg.ManageFilter(attrs) {
			return
		}
	}

	m.cfg.Hooks.RunManage(&m.state, m.conn, w)

	err := m.ModifyAndRefresh(func(s wm.StackSet[xid.Xid]) wm.StackSet[xid.Xid] {
		if isManaged(s, w) {
			return s
		}
		next, insErr := s.InsertDefault(w)
		if insErr != nil {
			return s
		}
		return next
	})
	if err != nil {
		log.WithError(err).Warn("manage: refresh failed")
		return
	}

	if err := m.conn.SetWMState(w, 1); err != nil {
		log.WithError(err).Debug("manage: set_wm_state failed")
	}
	if idx := tagIndex(m.cfg.Tags, m.state.Stack.CurrentTag()); idx >= 0 {
		prop := xconn.Prop{Kind: xconn.PropCardinal, Cardinals: []uint32{uint32(idx)}}
		if err := m.conn.SetProp(w, "_NET_WM_DESKTOP", prop); err != nil {
			log.WithError(err).Debug("manage: set _NET_WM_DESKTOP failed")
		}
	}
}

func tagIndex(tags []string, tag string) int {
	for i, t := range tags {
		if t == tag {
			return i
		}
	}
	return -1
}

// unmanage removes w from state and refreshes (§4.8's unmap-notify and
// destroy-notify rows).
func (m *WindowManager) unmanage(w xid.Xid) {
	if !isManaged(m.state.Stack, w) {
		return
	}
	if err := m.ModifyAndRefresh(func(s wm.StackSet[xid.Xid]) wm.StackSet[xid.Xid] {
		return s.Remove(w)
	}); err != nil {
		log.WithError(err).Warn("unmanage: refresh failed")
	}
}

// handleConfigureRequest honours the request unmodified if w is
// unmanaged, allows it outright if w is floating, and denies any
// geometry change (re-asserting the tiled rect) for a managed tiled
// client (§4.8's configure-request row).
func (m *WindowManager) handleConfigureRequest(ev xconn.Event) {
	w := ev.Window
	if !isManaged(m.state.Stack, w) {
		if err := m.conn.SetClientConfig(w, ev.RequestedConfig); err != nil {
			log.WithError(err).Debug("configure_request: forward failed")
		}
		return
	}
	if _, floating := m.state.Stack.Floating[w]; floating {
		if err := m.conn.SetClientConfig(w, ev.RequestedConfig); err != nil {
			log.WithError(err).Debug("configure_request: float forward failed")
		}
		return
	}
	rect, err := m.conn.ClientGeometry(w)
	if err != nil {
		return
	}
	_ = m.conn.SetClientConfig(w, xconn.ClientConfig{Rect: rect, HasRect: true})
}

// refreshScreens re-reads the backend's screen list, reindexes
// workspace↔screen assignment and refreshes if the topology changed
// (§4.8's property-notify-on-root and randr rows).
func (m *WindowManager) refreshScreens() {
	geoms, err := m.conn.ScreenDetails()
	if err != nil {
		log.WithError(err).Warn("refresh_screens: screen_details failed")
		return
	}
	if screens := m.state.Stack.Screens.Iter(); len(screens) == len(geoms) {
		changed := false
		for i, sc := range screens {
			if sc.Geometry != geoms[i] {
				changed = true
			}
		}
		if !changed {
			return
		}
	}
	if err := m.ModifyAndRefresh(func(s wm.StackSet[xid.Xid]) wm.StackSet[xid.Xid] {
		return ReindexScreens(s, geoms)
	}); err != nil {
		log.WithError(err).Warn("refresh_screens: refresh failed")
	}
}

// dispatch is the built-in event handler (§4.8's table), run after the
// event hook chain has had a chance to intercept and Stop.
func (m *WindowManager) dispatch(ev xconn.Event) {
	switch ev.Kind {
	case xconn.EventKeyPress:
		if fn, ok := m.cfg.Bindings.KeyHandlerFor(input.Modifier(ev.Modifiers), ev.Code); ok {
			fn(&m.state, m.conn)
		}
	case xconn.EventButtonPress:
		if fn, ok := m.cfg.Bindings.MouseHandlerFor(input.Modifier(ev.Modifiers), ev.Code, input.MousePress); ok {
			fn(&m.state, m.conn, ev.RootX, ev.RootY)
		}
	case xconn.EventButtonRelease:
		m.drag.End()
		if fn, ok := m.cfg.Bindings.MouseHandlerFor(input.Modifier(ev.Modifiers), ev.Code, input.MouseRelease); ok {
			fn(&m.state, m.conn, ev.RootX, ev.RootY)
		}
	case xconn.EventMotionNotify:
		if fn, ok := m.cfg.Bindings.MouseHandlerFor(input.Modifier(ev.Modifiers), ev.Code, input.MouseMotion); ok {
			fn(&m.state, m.conn, ev.RootX, ev.RootY)
		}
	case xconn.EventMapRequest:
		m.manageWindow(ev.Window)
	case xconn.EventUnmapNotify:
		if ev.Synthetic {
			m.unmanage(ev.Window)
		}
	case xconn.EventDestroyNotify:
		m.unmanage(ev.Window)
	case xconn.EventConfigureRequest:
		m.handleConfigureRequest(ev)
	case xconn.EventPropertyNotify:
		if ev.Window == m.conn.Root() {
			m.refreshScreens()
		}
	case xconn.EventEnterNotify:
		if m.cfg.FocusFollowsMouse && isManaged(m.state.Stack, ev.Window) {
			if err := m.ModifyAndRefresh(func(s wm.StackSet[xid.Xid]) wm.StackSet[xid.Xid] {
				next, err := s.FocusClient(ev.Window)
				if err != nil {
					return s
				}
				return next
			}); err != nil {
				log.WithError(err).Debug("enter_notify: focus failed")
			}
		}
	case xconn.EventClientMessage:
		// Routed entirely through event hooks; the built-in handler has
		// no default behaviour for arbitrary ClientMessage requests.
	case xconn.EventRandRScreenChange:
		m.refreshScreens()
	}
}

// Run performs §4.9's bootstrap sequence and then the main loop: intern
// required atoms (done lazily by the backend as properties are first
// touched), adopt existing clients through the manage hook, grab
// bindings, emit the startup hook, then loop reading events until ctx
// is cancelled, State.Quit is called, or a fatal backend error occurs.
func (m *WindowManager) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	m.cancel = cancel
	defer cancel()

	m.phase = PhaseStarting

	if err := m.initRootProperties(); err != nil {
		log.WithError(err).Warn("run: initial root properties failed")
	}

	existing, err := m.conn.ExistingClients()
	if err != nil {
		return wmerrors.Wrap(wmerrors.Backend, "run: existing_clients", err)
	}
	for _, w := range existing {
		m.manageWindow(w)
	}

	if err := m.conn.Grab(m.cfg.Bindings.Grabs(), m.cfg.Bindings.MouseGrabs()); err != nil {
		return wmerrors.Wrap(wmerrors.Backend, "run: grab", err)
	}
	defer func() {
		if err := m.conn.Ungrab(); err != nil {
			log.WithError(err).Warn("run: ungrab on shutdown failed")
		}
	}()

	m.cfg.Hooks.RunStartup(&m.state, m.conn)

	m.phase = PhaseRunning
	for {
		if ctx.Err() != nil {
			m.phase = PhaseShuttingDown
			return nil
		}

		ev, err := m.conn.NextEvent(ctx)
		if err != nil {
			if ctx.Err() != nil {
				m.phase = PhaseShuttingDown
				return nil
			}
			m.phase = PhaseShuttingDown
			return wmerrors.Wrap(wmerrors.Backend, "run: next_event", err)
		}

		m.phase = PhaseHandling
		if m.cfg.Hooks.RunEvent(&m.state, m.conn, ev) == hooks.Continue {
			m.dispatch(ev)
		}
		m.phase = PhaseRunning
	}
}
