package gtkui

import (
	"fmt"

	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/sokolawesome/forgebar/ui"
)

// nativeWidget is implemented by every widget this package hands out.
type nativeWidget interface {
	native() gtk.Widgetter
}

func unwrap(w ui.Widget) gtk.Widgetter {
	n, ok := w.(nativeWidget)
	if !ok {
		panic(fmt.Sprintf("gtkui: foreign widget %T", w))
	}
	return n.native()
}

type Label struct{ *gtk.Label }

func (l *Label) native() gtk.Widgetter { return l.Label }

type Button struct{ *gtk.Button }

func (b *Button) native() gtk.Widgetter { return b.Button }

func (b *Button) ConnectClicked(fn func()) {
	b.Button.ConnectClicked(fn)
}

type Box struct{ *gtk.Box }

func (b *Box) native() gtk.Widgetter { return b.Box }

func (b *Box) Append(child ui.Widget) {
	b.Box.Append(unwrap(child))
}

type CenterBox struct{ *gtk.CenterBox }

func (c *CenterBox) native() gtk.Widgetter { return c.CenterBox }

func (c *CenterBox) SetMargins(start, end, top, bottom int) {
	c.SetMarginStart(start)
	c.SetMarginEnd(end)
	c.SetMarginTop(top)
	c.SetMarginBottom(bottom)
}

func (c *CenterBox) SetStartWidget(w ui.Widget)  { c.CenterBox.SetStartWidget(unwrap(w)) }
func (c *CenterBox) SetCenterWidget(w ui.Widget) { c.CenterBox.SetCenterWidget(unwrap(w)) }
func (c *CenterBox) SetEndWidget(w ui.Widget)    { c.CenterBox.SetEndWidget(unwrap(w)) }

// Monitor is a GDK output.
type Monitor struct{ *gdk.Monitor }

type Window struct{ *gtk.Window }

func (w *Window) SetChild(child ui.Widget) {
	w.Window.SetChild(unwrap(child))
}
