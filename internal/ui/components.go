package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yanjianzhang/CommitAIFlow/internal/diffview"
)

// SectionHeader creates a styled section header with a title and color
// Example: "─── TITLE ───────────"
func SectionHeader(title string, color lipgloss.Color) string {
	dashes := strings.Repeat("─", max(25-len(title), 0))
	headerStyle := lipgloss.NewStyle().Foreground(color)
	titleStyle := lipgloss.NewStyle().Foreground(color).Bold(true)

	return fmt.Sprintf("%s%s%s",
		headerStyle.Render("  ─── "),
		titleStyle.Render(title),
		headerStyle.Render(" "+dashes),
	)
}

// Spinner frames using braille characters
var SpinnerFrames = []rune{'⠋', '⠙', '⠹', '⠸', '⠼', '⠴', '⠦', '⠧', '⠇', '⠏'}

// Spinner returns the spinner character at the given frame index
func Spinner(frame int) string {
	return string(SpinnerFrames[frame%len(SpinnerFrames)])
}

// Arrow returns an arrow indicator for selection
func Arrow(selected bool) string {
	if selected {
		return "▶ "
	}
	return "  "
}

// KeyBinding renders a key binding hint
func KeyBinding(key, description string, color lipgloss.Color) string {
	keyStyle := lipgloss.NewStyle().Foreground(color).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(ColorWhite)

	return fmt.Sprintf("%s %s",
		keyStyle.Render(key),
		descStyle.Render(description),
	)
}

// YesNoButtons creates interactive Yes/No buttons
// selection: 0 for Yes, 1 for No
func YesNoButtons(selection int) string {
	var yesColor, noColor lipgloss.Color
	var yesTextColor, noTextColor lipgloss.Color

	if selection == 0 {
		yesColor, yesTextColor = ColorGreen, ColorGreen
	} else {
		yesColor, yesTextColor = ColorDarkGray, ColorWhite
	}
	if selection == 1 {
		noColor, noTextColor = ColorRed, ColorRed
	} else {
		noColor, noTextColor = ColorDarkGray, ColorWhite
	}

	yesStyle := lipgloss.NewStyle().Foreground(yesColor)
	yesTextStyle := lipgloss.NewStyle().Foreground(yesTextColor).Bold(true)
	noStyle := lipgloss.NewStyle().Foreground(noColor)
	noTextStyle := lipgloss.NewStyle().Foreground(noTextColor).Bold(true)

	iconYes, iconNo := " ", " "
	if selection == 0 {
		iconYes = ">"
	} else {
		iconNo = ">"
	}

	line1 := yesStyle.Render("  ┌────────┐") + " " + noStyle.Render("┌───────┐")
	line2 := fmt.Sprintf("%s%s%s %s%s%s",
		yesStyle.Render("  │"),
		yesTextStyle.Render(fmt.Sprintf(" %s  YES ", yesStyle.Render(iconYes))),
		yesStyle.Render("│"),
		noStyle.Render("│"),
		noTextStyle.Render(fmt.Sprintf(" %s  NO ", noStyle.Render(iconNo))),
		noStyle.Render("│"),
	)
	line3 := yesStyle.Render("  └────────┘") + " " + noStyle.Render("└───────┘")

	return line1 + "\n" + line2 + "\n" + line3
}

// ColumnBox creates a bordered column with title for two-column layouts
// If height > 0, content is padded/truncated to exactly that many lines
func ColumnBox(content string, title string, color lipgloss.Color, isActive bool, width int, height int) string {
	borderColor := color
	if !isActive {
		borderColor = ColorDarkGray
	}

	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Width(width)

	var fullContent string
	if title != "" {
		titleStyle := lipgloss.NewStyle().Bold(true).Foreground(color)
		fullContent = titleStyle.Render(" "+title+" ") + "\n" + content
	} else {
		fullContent = content
	}

	if height > 0 {
		lines := strings.Split(fullContent, "\n")
		for len(lines) < height {
			lines = append(lines, "")
		}
		if len(lines) > height {
			lines = lines[:height]
		}
		fullContent = strings.Join(lines, "\n")
	}

	return style.Render(fullContent)
}

// MenuRow renders a menu row with optional highlight background
// width should be the inner width of the panel (excluding border)
func MenuRow(icon, title, desc string, color lipgloss.Color, selected bool, width int) []string {
	arrow := "  "
	if selected {
		arrow = "▶ "
	}

	if selected {
		rowStyle := lipgloss.NewStyle().Background(ColorDarkGray).Width(width)
		arrowStyle := lipgloss.NewStyle().Foreground(color).Background(ColorDarkGray)
		iconStyle := lipgloss.NewStyle().Background(ColorDarkGray)
		titleStyle := lipgloss.NewStyle().Foreground(color).Bold(true).Background(ColorDarkGray)
		descStyle := lipgloss.NewStyle().Foreground(ColorWhite).Background(ColorDarkGray)

		line1 := rowStyle.Render(arrowStyle.Render(arrow) + iconStyle.Render(icon+"  ") + titleStyle.Render(title))
		line2 := rowStyle.Render("       " + descStyle.Render(desc))

		return []string{line1, line2}
	}

	arrowStyle := lipgloss.NewStyle().Foreground(color)
	titleStyle := lipgloss.NewStyle().Foreground(color).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(ColorWhite)

	line1 := arrowStyle.Render(arrow) + icon + "  " + titleStyle.Render(title)
	line2 := "       " + descStyle.Render(desc)

	return []string{line1, line2}
}

// DiffRowView renders one display row as a styled terminal line. The
// number gutter is dropped when showNumbers is off; the row data keeps
// its numbers either way.
func DiffRowView(row diffview.Row, showNumbers bool) string {
	gutter := ""
	if showNumbers {
		gutter = numberGutter(row)
	}

	switch row.Kind {
	case diffview.RowAdded:
		style := lipgloss.NewStyle().Foreground(ColorDiffAdded)
		return gutter + style.Render(row.Text)
	case diffview.RowRemoved:
		style := lipgloss.NewStyle().Foreground(ColorDiffRemoved)
		return gutter + style.Render(row.Text)
	case diffview.RowMeta:
		style := lipgloss.NewStyle().Foreground(ColorDiffMeta)
		return gutter + style.Render(row.Text)
	case diffview.RowCollapsed:
		style := lipgloss.NewStyle().Foreground(ColorDiffCollapsed).Italic(true)
		return gutter + style.Render(fmt.Sprintf("··· %d unchanged lines (Enter to expand) ···", row.Count))
	default:
		return gutter + row.Text
	}
}

// numberGutter formats the two 4-wide number columns. Zero means the row
// has no number on that side and renders blank.
func numberGutter(row diffview.Row) string {
	gutterStyle := lipgloss.NewStyle().Foreground(ColorDarkGray)

	cell := func(n int) string {
		if n <= 0 {
			return "    "
		}
		return fmt.Sprintf("%4d", n)
	}

	return gutterStyle.Render(cell(row.OldNo)+" "+cell(row.NewNo)) + " "
}

// MenuInfoPanel returns the ASCII art and description for a menu item
func MenuInfoPanel(index int) (title string, lines []string) {
	switch index {
	case 0: // Staged changes
		title = "Staged Changes"
		box := lipgloss.NewStyle().Foreground(ColorCyan)
		text := lipgloss.NewStyle().Foreground(ColorCyan).Bold(true)
		lines = []string{
			"",
			box.Render("        ┌──────────┐"),
			box.Render("        │") + text.Render("   diff   ") + box.Render("│"),
			box.Render("        └──────────┘"),
			"",
			"  • Reads git diff --cached",
			"  • Sends it to the local model",
			"  • Cleans up the reply",
			"  • Commit straight from the review",
		}
	case 1: // Diff file
		title = "Diff From File"
		box := lipgloss.NewStyle().Foreground(ColorMagenta)
		text := lipgloss.NewStyle().Foreground(ColorMagenta).Bold(true)
		lines = []string{
			"",
			box.Render("     ┌────┐") + box.Render(" ┌────┐"),
			box.Render("     │") + text.Render(" +- ") + box.Render("│") + box.Render(" │") + text.Render(" +- ") + box.Render("│"),
			box.Render("     └────┘") + box.Render(" └────┘"),
			"",
			"  • Loads any saved .diff / .patch",
			"  • Tolerates hand-edited text",
			"  • Same viewer and generation flow",
		}
	default: // Quit
		title = "Quit"
		lines = []string{
			"",
			"  Exit the application",
		}
	}
	return title, lines
}

// max returns the maximum of two integers
func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
