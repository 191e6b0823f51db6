// Package theme holds the bar's single stylesheet.
//
// Only the palette can be overridden; the rules themselves are fixed.
package theme

import (
	_ "embed"
	"strings"
)

// ActiveClass marks the button of the focused workspace.
const ActiveClass = "active-workspace"

type Palette struct {
	Active     string
	Foreground string
	Hover      string
}

var DefaultPalette = Palette{
	Active:     "#ff0000", // red
	Foreground: "#d8dee9", // nord snow storm
	Hover:      "#eceff4",
}

//go:embed forgebar.css
var stylesheet string

// Stylesheet renders the embedded stylesheet with p's colors. Empty palette
// fields fall back to DefaultPalette.
func Stylesheet(p Palette) string {
	if p.Active == "" {
		p.Active = DefaultPalette.Active
	}
	if p.Foreground == "" {
		p.Foreground = DefaultPalette.Foreground
	}
	if p.Hover == "" {
		p.Hover = DefaultPalette.Hover
	}
	return strings.NewReplacer(
		"@active@", p.Active,
		"@foreground@", p.Foreground,
		"@hover@", p.Hover,
	).Replace(stylesheet)
}
