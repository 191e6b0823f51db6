// Package clicks moves workspace button clicks off the UI thread.
package clicks

import (
	"context"
	"log/slog"
	"time"
)

const queueSize = 16

// Click is a press on a workspace button.
type Click struct {
	Monitor   string
	Workspace int
}

//go:generate mockgen -source=clicks.go -destination=../mocks/mock_switcher.go -package=mocks Switcher

// Switcher focuses a workspace on the compositor.
type Switcher interface {
	SwitchWorkspace(ctx context.Context, id int) error
}

// Dispatcher queues clicks from the UI thread and sends one workspace switch
// per click from a background goroutine.
type Dispatcher struct {
	queue    chan Click
	switcher Switcher
	log      *slog.Logger
}

func NewDispatcher(switcher Switcher, log *slog.Logger) *Dispatcher {
	return &Dispatcher{
		queue:    make(chan Click, queueSize),
		switcher: switcher,
		log:      log,
	}
}

// Submit queues c without blocking. It drops the click and returns false when
// the queue is full.
func (d *Dispatcher) Submit(c Click) bool {
	select {
	case d.queue <- c:
		return true
	default:
		d.log.Warn("click dropped: dispatch queue full", "monitor", c.Monitor, "workspace", c.Workspace)
		return false
	}
}

// Run sends queued clicks until ctx is done. Switch failures are logged and
// do not stop the loop.
func (d *Dispatcher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case c := <-d.queue:
			d.dispatch(ctx, c)
		}
	}
}

func (d *Dispatcher) dispatch(ctx context.Context, c Click) {
	start := time.Now()
	if err := d.switcher.SwitchWorkspace(ctx, c.Workspace); err != nil {
		d.log.Error("failed to switch workspace", "monitor", c.Monitor, "workspace", c.Workspace, "err", err)
		return
	}
	d.log.Debug("switched workspace", "monitor", c.Monitor, "workspace", c.Workspace, "took", time.Since(start))
}
