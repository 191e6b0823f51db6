package widgets

import (
	"fmt"
	"html"
	"time"

	"github.com/sokolawesome/forgebar/ui"
)

const loadingText = "Loading..."

// Clock shows the local wall-clock time.
type Clock struct {
	label    ui.Label
	layout   string
	fontSize int
	now      func() time.Time
	lastSec  int64 // last rendered wall-clock second
}

func NewClock(tk ui.Toolkit, layout string, fontSize int) *Clock {
	c := &Clock{layout: layout, fontSize: fontSize, now: time.Now}
	c.label = tk.NewLabel(c.markup(loadingText))
	return c
}

func (c *Clock) Widget() ui.Widget { return c.label }

// Render updates the label to the current time. It reports whether the text
// changed; within the same second it is a no-op.
func (c *Clock) Render() bool {
	now := c.now()
	sec := now.Unix()
	if sec == c.lastSec {
		return false
	}
	c.lastSec = sec
	c.label.SetMarkup(c.markup(now.Format(c.layout)))
	return true
}

func (c *Clock) markup(text string) string {
	return fmt.Sprintf("<span font='%d'>%s</span>", c.fontSize, html.EscapeString(text))
}
