package widgets

import (
	"strconv"

	"github.com/samber/lo"

	"github.com/sokolawesome/forgebar/theme"
	"github.com/sokolawesome/forgebar/ui"
)

const (
	buttonWidth   = 30
	buttonHeight  = 25
	buttonSpacing = 5

	initialWorkspace = 1
)

// Workspaces is a row of buttons for workspaces 1..n. At most one button
// carries theme.ActiveClass: the one matching the last observed id.
type Workspaces struct {
	box     ui.Box
	buttons []ui.Button // buttons[i] is workspace i+1
	active  int
}

// NewWorkspaces builds count buttons. onClick runs on the UI thread with the
// clicked workspace id and must not block.
func NewWorkspaces(tk ui.Toolkit, count int, onClick func(id int)) *Workspaces {
	w := &Workspaces{box: tk.NewBox(buttonSpacing), active: initialWorkspace}
	for _, id := range lo.RangeFrom(1, count) {
		btn := tk.NewButton(strconv.Itoa(id))
		btn.SetSizeRequest(buttonWidth, buttonHeight)
		btn.ConnectClicked(func() { onClick(id) })
		w.box.Append(btn)
		w.buttons = append(w.buttons, btn)
	}
	if btn, ok := w.button(w.active); ok {
		btn.AddCSSClass(theme.ActiveClass)
	}
	return w
}

func (w *Workspaces) Widget() ui.Widget { return w.box }

// Active returns the last workspace id reported by the compositor.
func (w *Workspaces) Active() int { return w.active }

// Count returns the number of buttons.
func (w *Workspaces) Count() int { return len(w.buttons) }

// Observe moves the active style to workspace id. Ids without a button clear
// the style but are still remembered.
func (w *Workspaces) Observe(id int) {
	if btn, ok := w.button(w.active); ok {
		btn.RemoveCSSClass(theme.ActiveClass)
	}
	if btn, ok := w.button(id); ok {
		btn.AddCSSClass(theme.ActiveClass)
	}
	w.active = id
}

func (w *Workspaces) button(id int) (ui.Button, bool) {
	if id < 1 || id > len(w.buttons) {
		return nil, false
	}
	return w.buttons[id-1], true
}
