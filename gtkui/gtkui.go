// Package gtkui implements ui.Toolkit on GTK 4 and gtk4-layer-shell.
package gtkui

import (
	"fmt"
	"log/slog"
	"time"

	layershell "github.com/diamondburned/gotk4-layer-shell/pkg/gtk4layershell"
	coreglib "github.com/diamondburned/gotk4/pkg/core/glib"
	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/sokolawesome/forgebar/ui"
)

var _ ui.Toolkit = (*Toolkit)(nil)

// Toolkit builds GTK widgets for one application. Use it from the GTK main
// loop only, except Post.
type Toolkit struct {
	app    *gtk.Application
	log    *slog.Logger
	styles ui.StyleSet
}

func New(app *gtk.Application, log *slog.Logger) *Toolkit {
	return &Toolkit{app: app, log: log}
}

// Post queues fn on the GTK main loop.
func (tk *Toolkit) Post(fn func()) {
	coreglib.IdleAdd(fn)
}

func (tk *Toolkit) Every(interval time.Duration, fn func() bool) {
	ms := interval.Milliseconds()
	if ms < 1 {
		ms = 1
	}
	coreglib.TimeoutAdd(uint(ms), fn)
}

func (tk *Toolkit) display() (*gdk.Display, error) {
	display := gdk.DisplayGetDefault()
	if display == nil {
		return nil, ui.ErrDisplayUnavailable
	}
	return display, nil
}

func (tk *Toolkit) Monitors() ([]ui.Monitor, error) {
	display, err := tk.display()
	if err != nil {
		return nil, err
	}
	list := display.Monitors()
	if list == nil {
		return nil, fmt.Errorf("%w: no monitor list", ui.ErrDisplayUnavailable)
	}

	var out []ui.Monitor
	for i := uint(0); i < list.NItems(); i++ {
		obj := list.Item(i)
		if obj == nil {
			continue
		}
		m, ok := obj.Cast().(*gdk.Monitor)
		if !ok {
			tk.log.Debug("skipping non-monitor list item", "index", i)
			continue
		}
		out = append(out, Monitor{m})
	}
	return out, nil
}

func (tk *Toolkit) OnMonitorsChanged(fn func()) {
	display, err := tk.display()
	if err != nil {
		return
	}
	if list := display.Monitors(); list != nil {
		list.ConnectItemsChanged(func(position, removed, added uint) {
			tk.log.Debug("monitors changed", "position", position, "removed", removed, "added", added)
			fn()
		})
	}
}

func (tk *Toolkit) NewLabel(markup string) ui.Label {
	l := gtk.NewLabel("")
	l.SetMarkup(markup)
	return &Label{l}
}

func (tk *Toolkit) NewButton(label string) ui.Button {
	return &Button{gtk.NewButtonWithLabel(label)}
}

func (tk *Toolkit) NewBox(spacing int) ui.Box {
	return &Box{gtk.NewBox(gtk.OrientationHorizontal, spacing)}
}

func (tk *Toolkit) NewCenterBox() ui.CenterBox {
	return &CenterBox{gtk.NewCenterBox()}
}

// NewLayerWindow creates a window on m. Without layer-shell support the
// window is still created, as a normal toplevel.
func (tk *Toolkit) NewLayerWindow(m ui.Monitor, cfg ui.LayerConfig) ui.Window {
	w := gtk.NewWindow()
	w.SetTitle(cfg.Title)
	w.SetDecorated(false)
	tk.app.AddWindow(w)

	if !layershell.IsSupported() {
		tk.log.Warn("compositor does not support layer shell", "window", cfg.Title)
		return &Window{w}
	}

	layershell.InitForWindow(w)
	layershell.SetNamespace(w, cfg.Namespace)
	layershell.SetLayer(w, layer(cfg.Layer))
	for _, e := range cfg.Anchors {
		layershell.SetAnchor(w, edge(e), true)
	}
	layershell.SetExclusiveZone(w, cfg.ExclusiveZone)
	if gm, ok := m.(Monitor); ok {
		layershell.SetMonitor(w, gm.Monitor)
	}
	return &Window{w}
}

func (tk *Toolkit) LoadCSS(css string) {
	display, err := tk.display()
	if err != nil {
		tk.log.Warn("stylesheet not loaded", "err", err)
		return
	}
	if !tk.styles.Add(css) {
		tk.log.Debug("stylesheet already installed")
		return
	}
	provider := gtk.NewCSSProvider()
	provider.LoadFromData(css)
	gtk.StyleContextAddProviderForDisplay(display, provider, gtk.STYLE_PROVIDER_PRIORITY_APPLICATION)
}

func layer(l ui.Layer) layershell.LayerShellLayer {
	switch l {
	case ui.LayerBackground:
		return layershell.LayerShellLayerBackground
	case ui.LayerBottom:
		return layershell.LayerShellLayerBottom
	case ui.LayerOverlay:
		return layershell.LayerShellLayerOverlay
	default:
		return layershell.LayerShellLayerTop
	}
}

func edge(e ui.Edge) layershell.LayerShellEdge {
	switch e {
	case ui.EdgeLeft:
		return layershell.LayerShellEdgeLeft
	case ui.EdgeRight:
		return layershell.LayerShellEdgeRight
	case ui.EdgeTop:
		return layershell.LayerShellEdgeTop
	default:
		return layershell.LayerShellEdgeBottom
	}
}
