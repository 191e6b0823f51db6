// Package ui is the part of the GUI toolkit the bar depends on.
//
// Every method except Scheduler.Post must be called on the UI thread.
package ui

import (
	"errors"
	"sync"
	"time"
)

var ErrDisplayUnavailable = errors.New("no default display")

// Widget is anything that can be placed in a container.
type Widget interface {
	AddCSSClass(class string)
	RemoveCSSClass(class string)
	HasCSSClass(class string) bool
}

type Label interface {
	Widget
	SetMarkup(markup string)
}

type Button interface {
	Widget
	SetSizeRequest(width, height int)
	ConnectClicked(fn func())
}

// Box lays its children out in a single row.
type Box interface {
	Widget
	Append(child Widget)
}

// CenterBox has a start, center and end region.
type CenterBox interface {
	Widget
	SetMargins(start, end, top, bottom int)
	SetStartWidget(w Widget)
	SetCenterWidget(w Widget)
	SetEndWidget(w Widget)
}

// Monitor is one connected output.
type Monitor interface {
	// Connector returns the compositor's output name (e.g. "DP-1"), or ""
	// when the backend cannot tell.
	Connector() string
}

type Layer int

const (
	LayerBackground Layer = iota
	LayerBottom
	LayerTop
	LayerOverlay
)

type Edge int

const (
	EdgeLeft Edge = iota
	EdgeRight
	EdgeTop
	EdgeBottom
)

// LayerConfig describes how a layer-shell surface is placed.
type LayerConfig struct {
	Title         string
	Namespace     string
	Layer         Layer
	Anchors       []Edge
	ExclusiveZone int
}

// Window is a top-level surface bound to one monitor.
type Window interface {
	SetChild(child Widget)
	Present()
}

// Scheduler runs functions on the UI thread. Post may be called from any
// goroutine.
type Scheduler interface {
	Post(fn func())
}

// Toolkit builds widgets and windows and drives the UI thread.
type Toolkit interface {
	Scheduler

	// Monitors lists connected outputs, or fails with ErrDisplayUnavailable.
	Monitors() ([]Monitor, error)
	// OnMonitorsChanged registers fn to run when outputs come or go.
	OnMonitorsChanged(fn func())

	NewLabel(markup string) Label
	NewButton(label string) Button
	NewBox(spacing int) Box
	NewCenterBox() CenterBox
	NewLayerWindow(m Monitor, cfg LayerConfig) Window

	// LoadCSS installs a stylesheet for the whole display. Installing the
	// same stylesheet again has no effect.
	LoadCSS(css string)

	// Every calls fn on the UI thread each interval until fn returns false.
	Every(interval time.Duration, fn func() bool)
}

// StyleSet records the stylesheets a display already carries so that each is
// installed once. The zero value is ready to use.
type StyleSet struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

// Add records css and reports whether it was new.
func (s *StyleSet) Add(css string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.seen[css]; ok {
		return false
	}
	if s.seen == nil {
		s.seen = make(map[string]struct{})
	}
	s.seen[css] = struct{}{}
	return true
}
