package theme

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStylesheet_Defaults(t *testing.T) {
	req := require.New(t)
	css := Stylesheet(Palette{})

	req.Contains(css, "."+ActiveClass+" {")
	req.Contains(css, "color: #ff0000;")
	req.Contains(css, "font-weight: bold;")
	req.Contains(css, "text-decoration: underline;")
	req.Contains(css, "background: none;")
	req.Contains(css, "border: none;")
	req.Contains(css, "font-size: 16px;")
	req.Contains(css, "color: #d8dee9;")
	req.Contains(css, "button:hover {\n    color: #eceff4;")
	req.NotContains(css, "@")
}

func TestStylesheet_Override(t *testing.T) {
	req := require.New(t)
	css := Stylesheet(Palette{Active: "#bf616a", Foreground: "#fff", Hover: "#000"})

	req.Equal(1, strings.Count(css, "#bf616a"))
	req.Contains(css, "color: #fff;")
	req.Contains(css, "color: #000;")
	req.NotContains(css, "#ff0000")
}
