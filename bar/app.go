package bar

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sokolawesome/forgebar/clicks"
	"github.com/sokolawesome/forgebar/config"
	"github.com/sokolawesome/forgebar/theme"
	"github.com/sokolawesome/forgebar/ui"
	"github.com/sokolawesome/forgebar/widgets"
)

// Options shape the bars built by Activate. Zero fields take defaults.
type Options struct {
	ClockLayout    string
	FontSize       int
	WorkspaceCount int
	TickInterval   time.Duration
	CoalesceTicks  bool
	Stylesheet     string
}

// OptionsFrom maps a loaded config onto bar options.
func OptionsFrom(cfg *config.Config) Options {
	return Options{
		ClockLayout:    cfg.Clock.Layout,
		FontSize:       cfg.Clock.FontSize,
		WorkspaceCount: cfg.Workspaces.Count,
		TickInterval:   cfg.TickInterval,
		CoalesceTicks:  cfg.CoalesceTicks,
		Stylesheet: theme.Stylesheet(theme.Palette{
			Active:     cfg.Theme.Active,
			Foreground: cfg.Theme.Foreground,
			Hover:      cfg.Theme.Hover,
		}),
	}
}

func (o Options) withDefaults() Options {
	if o.ClockLayout == "" {
		o.ClockLayout = config.DefaultClockLayout
	}
	if o.FontSize <= 0 {
		o.FontSize = config.DefaultFontSize
	}
	if o.WorkspaceCount <= 0 {
		o.WorkspaceCount = config.DefaultWorkspaceCount
	}
	if o.TickInterval <= 0 {
		o.TickInterval = DefaultTickInterval
	}
	if o.Stylesheet == "" {
		o.Stylesheet = theme.Stylesheet(theme.DefaultPalette)
	}
	return o
}

// App is the running set of bars.
type App struct {
	Manager *Manager
	Driver  *TickDriver
	Windows []*Window
}

// Activate builds one bar per connected monitor, shows them and starts
// refreshing. It must run on the UI thread, once. Work it starts stops when
// ctx is done.
func Activate(ctx context.Context, tk ui.Toolkit, compositor Compositor, opts Options, log *slog.Logger) (*App, error) {
	opts = opts.withDefaults()

	monitors, err := tk.Monitors()
	if err != nil {
		return nil, fmt.Errorf("enumerate monitors: %w", err)
	}
	if len(monitors) == 0 {
		log.Warn("no monitors connected, no bars created")
	}

	dispatcher := clicks.NewDispatcher(compositor, log.With("component", "clicks"))
	manager := NewManager(compositor, tk, log.With("component", "manager"))
	app := &App{
		Manager: manager,
		Driver:  NewTickDriver(manager, opts.TickInterval, opts.CoalesceTicks, log.With("component", "ticker")),
	}

	used := make(map[string]bool, len(monitors))
	for i, m := range monitors {
		name := MonitorName(m, i)
		if used[name] {
			log.Warn("duplicate monitor connector", "connector", name, "index", i)
			name = fallbackName(i)
		}
		used[name] = true

		clock := widgets.NewClock(tk, opts.ClockLayout, opts.FontSize)
		ws := widgets.NewWorkspaces(tk, opts.WorkspaceCount, func(id int) {
			dispatcher.Submit(clicks.Click{Monitor: name, Workspace: id})
		})
		win := NewWindow(tk, m, name, clock, ws)

		if err := manager.RegisterClock(name, clock); err != nil {
			return nil, err
		}
		if err := manager.RegisterWorkspaces(name, ws); err != nil {
			return nil, err
		}
		win.Present()
		app.Windows = append(app.Windows, win)
		log.Info("bar created", "monitor", name)
	}

	manager.Freeze()
	tk.LoadCSS(opts.Stylesheet)
	go dispatcher.Run(ctx)
	app.Driver.Start(ctx, tk)

	count := len(monitors)
	tk.OnMonitorsChanged(func() {
		now, err := tk.Monitors()
		if err != nil {
			log.Warn("monitor set changed", "err", err)
			return
		}
		log.Warn("monitor set changed, restart to rebuild bars", "bars", count, "monitors", len(now))
	})

	return app, nil
}

// MonitorName returns the connector of m, or monitor-<index> when it has none.
func MonitorName(m ui.Monitor, index int) string {
	if name := m.Connector(); name != "" {
		return name
	}
	return fallbackName(index)
}

func fallbackName(index int) string {
	return fmt.Sprintf("monitor-%d", index)
}
