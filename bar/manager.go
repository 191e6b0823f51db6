// Package bar owns the per-monitor bars and keeps them refreshed.
package bar

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync/atomic"

	"github.com/samber/lo"

	"github.com/sokolawesome/forgebar/hypr"
	"github.com/sokolawesome/forgebar/ui"
	"github.com/sokolawesome/forgebar/widgets"
)

var (
	ErrRegistryFrozen = errors.New("bar registry is frozen")
	ErrDuplicate      = errors.New("monitor already registered")
)

//go:generate mockgen -source=manager.go -destination=../mocks/mock_compositor.go -package=mocks Compositor

// Compositor is the window manager the bar reflects and controls.
type Compositor interface {
	ActiveWorkspace(ctx context.Context) (int, error)
	SwitchWorkspace(ctx context.Context, id int) error
}

// ActiveWorkspaceObserved carries a compositor answer from a background
// refresh to the UI thread. Seq orders answers for the same monitor.
type ActiveWorkspaceObserved struct {
	Monitor string
	ID      int
	Seq     uint64
}

// Manager maps monitor names to their widgets. It is filled while the bars
// are built, then frozen; after Freeze it is only read.
type Manager struct {
	compositor Compositor
	sched      ui.Scheduler
	log        *slog.Logger

	clocks     map[string]*widgets.Clock
	workspaces map[string]*widgets.Workspaces
	frozen     bool
	monitors   []string // workspace registrants, fixed at Freeze

	applied map[string]uint64 // UI thread only: last Seq applied per monitor

	seq     atomic.Uint64
	failing atomic.Bool
}

func NewManager(compositor Compositor, sched ui.Scheduler, log *slog.Logger) *Manager {
	return &Manager{
		compositor: compositor,
		sched:      sched,
		log:        log,
		clocks:     make(map[string]*widgets.Clock),
		workspaces: make(map[string]*widgets.Workspaces),
		applied:    make(map[string]uint64),
	}
}

func (m *Manager) RegisterClock(monitor string, c *widgets.Clock) error {
	if m.frozen {
		return fmt.Errorf("register clock %s: %w", monitor, ErrRegistryFrozen)
	}
	if _, ok := m.clocks[monitor]; ok {
		return fmt.Errorf("register clock %s: %w", monitor, ErrDuplicate)
	}
	m.clocks[monitor] = c
	return nil
}

func (m *Manager) RegisterWorkspaces(monitor string, w *widgets.Workspaces) error {
	if m.frozen {
		return fmt.Errorf("register workspaces %s: %w", monitor, ErrRegistryFrozen)
	}
	if _, ok := m.workspaces[monitor]; ok {
		return fmt.Errorf("register workspaces %s: %w", monitor, ErrDuplicate)
	}
	m.workspaces[monitor] = w
	return nil
}

// Freeze ends registration. Refreshes started before Freeze see no monitors.
func (m *Manager) Freeze() {
	if m.frozen {
		return
	}
	m.frozen = true
	m.monitors = lo.Keys(m.workspaces)
	sort.Strings(m.monitors)
}

// Monitors returns the monitors with a workspace indicator.
func (m *Manager) Monitors() []string {
	return append([]string(nil), m.monitors...)
}

// Workspaces returns the indicator registered for monitor.
func (m *Manager) Workspaces(monitor string) (*widgets.Workspaces, bool) {
	w, ok := m.workspaces[monitor]
	return w, ok
}

// Clock returns the clock registered for monitor.
func (m *Manager) Clock(monitor string) (*widgets.Clock, bool) {
	c, ok := m.clocks[monitor]
	return c, ok
}

// TickClocks re-renders every clock. UI thread only.
func (m *Manager) TickClocks() {
	for _, c := range m.clocks {
		c.Render()
	}
}

// TickWorkspaces asks the compositor for the active workspace once per
// monitor and posts each answer to the UI thread. It blocks on socket I/O and
// must not run on the UI thread. A failed query skips that monitor only,
// except for a missing signature, which ends the round.
func (m *Manager) TickWorkspaces(ctx context.Context) {
	for _, mon := range m.monitors {
		if ctx.Err() != nil {
			return
		}
		seq := m.seq.Add(1)
		id, err := m.compositor.ActiveWorkspace(ctx)
		if err != nil {
			m.noteFailure(mon, err)
			if errors.Is(err, hypr.ErrConfigMissing) {
				return
			}
			continue
		}
		m.noteSuccess()
		msg := ActiveWorkspaceObserved{Monitor: mon, ID: id, Seq: seq}
		m.sched.Post(func() { m.Apply(msg) })
	}
}

// Apply hands an observation to its monitor's indicator. Answers older than
// one already applied for the same monitor are dropped; a zero Seq is never
// dropped. UI thread only.
func (m *Manager) Apply(msg ActiveWorkspaceObserved) {
	w, ok := m.workspaces[msg.Monitor]
	if !ok {
		m.log.Debug("observation for unknown monitor", "monitor", msg.Monitor)
		return
	}
	if msg.Seq != 0 {
		if msg.Seq < m.applied[msg.Monitor] {
			m.log.Debug("stale observation dropped", "monitor", msg.Monitor, "id", msg.ID)
			return
		}
		m.applied[msg.Monitor] = msg.Seq
	}
	w.Observe(msg.ID)
}

// noteFailure logs the first failure of a streak at warn level and the rest
// at debug, so a missing compositor does not flood the log at 1 Hz.
func (m *Manager) noteFailure(monitor string, err error) {
	if m.failing.CompareAndSwap(false, true) {
		m.log.Warn("workspace refresh failed", "monitor", monitor, "err", err)
		return
	}
	m.log.Debug("workspace refresh failed", "monitor", monitor, "err", err)
}

func (m *Manager) noteSuccess() {
	if m.failing.CompareAndSwap(true, false) {
		m.log.Info("compositor reachable again")
	}
}
