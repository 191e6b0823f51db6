package widgets

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sokolawesome/forgebar/config"
	"github.com/sokolawesome/forgebar/ui/uitest"
)

var clockText = regexp.MustCompile(`^\d{2}:\d{2}:\d{2} \| \d{2}\.\d{2}\.\d{2}$`)

func labelText(t *testing.T, markup string) string {
	t.Helper()
	const open, closing = "<span font='16'>", "</span>"
	require.True(t, strings.HasPrefix(markup, open), markup)
	require.True(t, strings.HasSuffix(markup, closing), markup)
	return strings.TrimSuffix(strings.TrimPrefix(markup, open), closing)
}

func TestClock_InitialLoading(t *testing.T) {
	tk := uitest.New()
	c := NewClock(tk, config.DefaultClockLayout, config.DefaultFontSize)

	label := c.Widget().(*uitest.Label)
	require.Equal(t, "<span font='16'>Loading...</span>", label.Markup)
}

func TestClock_Render(t *testing.T) {
	req := require.New(t)
	tk := uitest.New()
	c := NewClock(tk, config.DefaultClockLayout, config.DefaultFontSize)
	c.now = func() time.Time { return time.Date(2024, 3, 7, 9, 5, 2, 0, time.Local) }

	req.True(c.Render())

	text := labelText(t, c.Widget().(*uitest.Label).Markup)
	req.Equal("09:05:02 | 07.03.24", text)
	req.Regexp(clockText, text)
}

func TestClock_RenderSameSecond(t *testing.T) {
	req := require.New(t)
	tk := uitest.New()
	c := NewClock(tk, config.DefaultClockLayout, config.DefaultFontSize)
	now := time.Date(2024, 3, 7, 23, 59, 59, 0, time.Local)
	c.now = func() time.Time { return now }

	req.True(c.Render())
	now = now.Add(300 * time.Millisecond)
	req.False(c.Render())
	now = now.Add(time.Second)
	req.True(c.Render())
	req.Equal("00:00:00 | 08.03.24", labelText(t, c.Widget().(*uitest.Label).Markup))
}

func TestClock_RenderRealTime(t *testing.T) {
	tk := uitest.New()
	c := NewClock(tk, config.DefaultClockLayout, config.DefaultFontSize)

	require.True(t, c.Render())
	require.Regexp(t, clockText, labelText(t, c.Widget().(*uitest.Label).Markup))
}

func TestClock_EscapesMarkup(t *testing.T) {
	tk := uitest.New()
	c := NewClock(tk, "15:04 <b>", 12)
	c.now = func() time.Time { return time.Date(2024, 1, 1, 10, 30, 0, 0, time.Local) }

	c.Render()
	require.Equal(t, "<span font='12'>10:30 &lt;b&gt;</span>", c.Widget().(*uitest.Label).Markup)
}
