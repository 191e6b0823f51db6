// Package uitest is an in-memory ui.Toolkit for tests.
//
// The goroutine that calls RunPending, RunNext or Fire plays the UI thread.
package uitest

import (
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/sokolawesome/forgebar/ui"
)

type Widget struct {
	classes map[string]struct{}
}

func (w *Widget) AddCSSClass(class string) {
	if w.classes == nil {
		w.classes = make(map[string]struct{})
	}
	w.classes[class] = struct{}{}
}

func (w *Widget) RemoveCSSClass(class string) { delete(w.classes, class) }

func (w *Widget) HasCSSClass(class string) bool {
	_, ok := w.classes[class]
	return ok
}

// Classes returns the widget's CSS classes, sorted.
func (w *Widget) Classes() []string {
	out := make([]string, 0, len(w.classes))
	for c := range w.classes {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

type Label struct {
	Widget
	Markup string
}

func (l *Label) SetMarkup(markup string) { l.Markup = markup }

type Button struct {
	Widget
	Text          string
	Width, Height int
	handlers      []func()
}

func (b *Button) SetSizeRequest(width, height int) { b.Width, b.Height = width, height }
func (b *Button) ConnectClicked(fn func())         { b.handlers = append(b.handlers, fn) }

// Click runs the button's click handlers.
func (b *Button) Click() {
	for _, h := range b.handlers {
		h()
	}
}

type Box struct {
	Widget
	Spacing  int
	Children []ui.Widget
}

func (b *Box) Append(child ui.Widget) { b.Children = append(b.Children, child) }

type CenterBox struct {
	Widget
	MarginStart, MarginEnd, MarginTop, MarginBottom int
	Start, Center, End                              ui.Widget
}

func (c *CenterBox) SetMargins(start, end, top, bottom int) {
	c.MarginStart, c.MarginEnd, c.MarginTop, c.MarginBottom = start, end, top, bottom
}
func (c *CenterBox) SetStartWidget(w ui.Widget)  { c.Start = w }
func (c *CenterBox) SetCenterWidget(w ui.Widget) { c.Center = w }
func (c *CenterBox) SetEndWidget(w ui.Widget)    { c.End = w }

type Monitor struct {
	Name string
}

func (m Monitor) Connector() string { return m.Name }

type Window struct {
	Monitor   ui.Monitor
	Config    ui.LayerConfig
	Child     ui.Widget
	Presented bool
}

func (w *Window) SetChild(child ui.Widget) { w.Child = child }
func (w *Window) Present()                 { w.Presented = true }

type timer struct {
	interval time.Duration
	fn       func() bool
	stopped  bool
}

// Toolkit records everything the bar builds.
type Toolkit struct {
	Outputs    []ui.Monitor
	MonitorErr error

	posted chan func()

	mu              sync.Mutex
	windows         []*Window
	styles          ui.StyleSet
	css             []string
	cssCalls        int
	timers          []*timer
	monitorsChanged []func()
}

func New(outputs ...string) *Toolkit {
	tk := &Toolkit{posted: make(chan func(), 1024)}
	for _, o := range outputs {
		tk.Outputs = append(tk.Outputs, Monitor{Name: o})
	}
	return tk
}

func (tk *Toolkit) Post(fn func()) { tk.posted <- fn }

func (tk *Toolkit) Monitors() ([]ui.Monitor, error) {
	if tk.MonitorErr != nil {
		return nil, tk.MonitorErr
	}
	return tk.Outputs, nil
}

func (tk *Toolkit) OnMonitorsChanged(fn func()) {
	tk.mu.Lock()
	defer tk.mu.Unlock()
	tk.monitorsChanged = append(tk.monitorsChanged, fn)
}

// ChangeMonitors runs the OnMonitorsChanged callbacks.
func (tk *Toolkit) ChangeMonitors() {
	tk.mu.Lock()
	fns := append([]func(){}, tk.monitorsChanged...)
	tk.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

func (tk *Toolkit) NewLabel(markup string) ui.Label  { return &Label{Markup: markup} }
func (tk *Toolkit) NewButton(label string) ui.Button { return &Button{Text: label} }
func (tk *Toolkit) NewBox(spacing int) ui.Box        { return &Box{Spacing: spacing} }
func (tk *Toolkit) NewCenterBox() ui.CenterBox       { return &CenterBox{} }

func (tk *Toolkit) NewLayerWindow(m ui.Monitor, cfg ui.LayerConfig) ui.Window {
	w := &Window{Monitor: m, Config: cfg}
	tk.mu.Lock()
	tk.windows = append(tk.windows, w)
	tk.mu.Unlock()
	return w
}

func (tk *Toolkit) LoadCSS(css string) {
	tk.mu.Lock()
	defer tk.mu.Unlock()
	tk.cssCalls++
	if tk.styles.Add(css) {
		tk.css = append(tk.css, css)
	}
}

func (tk *Toolkit) Every(interval time.Duration, fn func() bool) {
	tk.mu.Lock()
	defer tk.mu.Unlock()
	tk.timers = append(tk.timers, &timer{interval: interval, fn: fn})
}

// Windows returns the windows built so far.
func (tk *Toolkit) Windows() []*Window {
	tk.mu.Lock()
	defer tk.mu.Unlock()
	return append([]*Window(nil), tk.windows...)
}

// Stylesheets returns the stylesheets installed, in order.
func (tk *Toolkit) Stylesheets() []string {
	tk.mu.Lock()
	defer tk.mu.Unlock()
	return append([]string(nil), tk.css...)
}

// LoadCSSCalls returns how many times LoadCSS was called.
func (tk *Toolkit) LoadCSSCalls() int {
	tk.mu.Lock()
	defer tk.mu.Unlock()
	return tk.cssCalls
}

// Intervals returns the intervals of the registered timers.
func (tk *Toolkit) Intervals() []time.Duration {
	tk.mu.Lock()
	defer tk.mu.Unlock()
	out := make([]time.Duration, 0, len(tk.timers))
	for _, t := range tk.timers {
		out = append(out, t.interval)
	}
	return out
}

// Fire runs every live timer once, as if its interval had elapsed.
func (tk *Toolkit) Fire() {
	tk.mu.Lock()
	timers := append([]*timer(nil), tk.timers...)
	tk.mu.Unlock()
	for _, t := range timers {
		if t.stopped {
			continue
		}
		if !t.fn() {
			t.stopped = true
		}
	}
}

// RunPending runs the functions posted so far and returns how many ran.
func (tk *Toolkit) RunPending() int {
	n := 0
	for {
		select {
		case fn := <-tk.posted:
			fn()
			n++
		default:
			return n
		}
	}
}

// RunNext waits for one posted function and runs it.
func (tk *Toolkit) RunNext(t testing.TB, timeout time.Duration) {
	t.Helper()
	select {
	case fn := <-tk.posted:
		fn()
	case <-time.After(timeout):
		t.Fatalf("nothing posted to the UI thread within %v", timeout)
	}
}
