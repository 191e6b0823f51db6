package bar

import (
	"github.com/sokolawesome/forgebar/ui"
	"github.com/sokolawesome/forgebar/widgets"
)

const (
	Namespace     = "forgebar"
	ExclusiveZone = 35

	regionSpacing = 10
	marginSide    = 10
	marginEdge    = 5
)

// Window is the bar on one monitor.
type Window struct {
	Monitor    string
	Clock      *widgets.Clock
	Workspaces *widgets.Workspaces

	window ui.Window
}

// NewWindow builds the bar for monitor m, with the workspace indicator on the
// left and the clock in the middle. The window is not shown until Present.
func NewWindow(tk ui.Toolkit, m ui.Monitor, name string, clock *widgets.Clock, ws *widgets.Workspaces) *Window {
	win := tk.NewLayerWindow(m, LayerConfig(name))

	left := tk.NewBox(regionSpacing)
	left.Append(ws.Widget())
	right := tk.NewBox(regionSpacing)

	root := tk.NewCenterBox()
	root.SetMargins(marginSide, marginSide, marginEdge, marginEdge)
	root.SetStartWidget(left)
	root.SetCenterWidget(clock.Widget())
	root.SetEndWidget(right)
	win.SetChild(root)

	return &Window{Monitor: name, Clock: clock, Workspaces: ws, window: win}
}

// LayerConfig places a bar along the bottom edge, reserving its height.
func LayerConfig(monitor string) ui.LayerConfig {
	return ui.LayerConfig{
		Title:         Namespace + " - " + monitor,
		Namespace:     Namespace,
		Layer:         ui.LayerTop,
		Anchors:       []ui.Edge{ui.EdgeBottom, ui.EdgeLeft, ui.EdgeRight},
		ExclusiveZone: ExclusiveZone,
	}
}

func (w *Window) Present() {
	w.window.Present()
}
