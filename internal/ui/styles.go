package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Note: Warp terminal fix is in internal/termfix package, imported first in main.go

var (
	ColorCyan     = lipgloss.Color("#00FFFF")
	ColorGreen    = lipgloss.Color("#00FF00")
	ColorYellow   = lipgloss.Color("#FFFF00")
	ColorRed      = lipgloss.Color("#FF0000")
	ColorMagenta  = lipgloss.Color("#FF00FF")
	ColorBlue     = lipgloss.Color("#5555FF")
	ColorPurple   = lipgloss.Color("#AA55FF")
	ColorOrange   = lipgloss.Color("#FFA500")
	ColorWhite    = lipgloss.Color("#FFFFFF")
	ColorDarkGray = lipgloss.Color("8") // ANSI 8
)

// Diff colors follow the conventional git palette
var (
	ColorDiffAdded     = lipgloss.Color("#00FF00")
	ColorDiffRemoved   = lipgloss.Color("#FF5555")
	ColorDiffMeta      = lipgloss.Color("#00FFFF")
	ColorDiffCollapsed = collapsedColor()
)

// collapsedColor picks a folded-run color that stays readable on light
// terminals, where ANSI 8 tends to wash out.
func collapsedColor() lipgloss.Color {
	if termenv.HasDarkBackground() {
		return ColorDarkGray
	}
	return lipgloss.Color("#666666")
}
