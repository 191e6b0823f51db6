package bar

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sokolawesome/forgebar/config"
	"github.com/sokolawesome/forgebar/ui"
)

const DefaultTickInterval = config.DefaultTickInterval

// TickDriver refreshes every registered widget once per interval. Clocks are
// rendered on the UI thread; workspace queries go to a background goroutine.
type TickDriver struct {
	manager  *Manager
	interval time.Duration
	coalesce bool
	log      *slog.Logger

	inFlight atomic.Bool
	wg       sync.WaitGroup
}

func NewTickDriver(m *Manager, interval time.Duration, coalesce bool, log *slog.Logger) *TickDriver {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	return &TickDriver{manager: m, interval: interval, coalesce: coalesce, log: log}
}

// Start ticks once right away and then every interval until ctx is done.
// UI thread only.
func (d *TickDriver) Start(ctx context.Context, tk ui.Toolkit) {
	d.log.Debug("tick driver started", "interval", d.interval, "coalesce", d.coalesce)
	d.Tick(ctx)
	tk.Every(d.interval, func() bool {
		if ctx.Err() != nil {
			d.log.Debug("tick driver stopped")
			return false
		}
		d.Tick(ctx)
		return true
	})
}

// Tick runs one round. UI thread only.
func (d *TickDriver) Tick(ctx context.Context) {
	d.manager.TickClocks()

	if d.coalesce && !d.inFlight.CompareAndSwap(false, true) {
		d.log.Debug("workspace refresh still running, skipping")
		return
	}
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		if d.coalesce {
			defer d.inFlight.Store(false)
		}
		d.manager.TickWorkspaces(ctx)
	}()
}

// Wait blocks until every workspace refresh started so far has returned.
func (d *TickDriver) Wait() {
	d.wg.Wait()
}
