package app

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/yanjianzhang/CommitAIFlow/internal/ui"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
)

const messagePanelWidth = 42

func (m Model) contentWidth() int {
	w := m.width - 4
	if w > 110 {
		w = 110
	}
	if w < 60 {
		w = 60
	}
	return w
}

// View renders the application
func (m Model) View() string {
	if m.shouldQuit {
		return ""
	}

	// Calculate fixed element heights
	bannerLines := len(ui.Banner)
	if m.dryRun {
		bannerLines += 2 // dry run warning
	}
	statusHeight := 3 // status bar with border

	// Available height for content = total - banner - gaps - status
	availableHeight := m.height - bannerLines - 3 - statusHeight
	if availableHeight < 10 {
		availableHeight = 10
	}

	var sections []string

	// Banner
	sections = append(sections, ui.RenderBanner(m.dryRun))
	sections = append(sections, "")

	contentWidth := m.contentWidth()

	// The review screen manages its own full layout (no outer box)
	if m.screen == ScreenReview {
		sections = append(sections, m.renderContentWithHeight(availableHeight))
	} else {
		outerBox := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ui.ColorPurple).
			Width(contentWidth).
			Padding(1, 2)

		sections = append(sections, outerBox.Render(m.renderContentWithHeight(availableHeight)))
	}

	// Status bar
	sections = append(sections, "")
	sections = append(sections, m.renderStatusBar())

	content := strings.Join(sections, "\n")

	// Center horizontally in the terminal
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Top, content)
}

func (m Model) renderContentWithHeight(availableHeight int) string {
	switch m.screen {
	case ScreenMainMenu:
		return m.renderMainMenu()
	case ScreenDiffPathInput:
		return m.renderDiffPathInput()
	case ScreenLoading:
		return m.renderLoading()
	case ScreenReview:
		return m.renderReviewWithHeight(availableHeight)
	case ScreenMessageEdit:
		return m.renderMessageEdit()
	case ScreenCommitConfirm:
		return m.renderCommitConfirm()
	case ScreenCommitting:
		return m.renderCommitting()
	case ScreenComplete:
		return m.renderComplete()
	case ScreenError:
		return m.renderError()
	case ScreenSessionHistory:
		return m.renderSessionHistory()
	case ScreenUpdatePrompt:
		return m.renderUpdatePrompt()
	case ScreenUpdating:
		return m.renderUpdating()
	default:
		return ""
	}
}

func (m Model) renderMainMenu() string {
	innerWidth := m.contentWidth() - 6

	items := []struct {
		icon  string
		title string
		desc  string
		color lipgloss.Color
	}{
		{"📝", "Staged Changes", "Generate a commit message for git diff --cached", ui.ColorCyan},
		{"📄", "Diff From File", "Load a saved diff or patch file", ui.ColorMagenta},
		{"🚪", "Quit", "Exit the application", ui.ColorRed},
	}

	var lines []string
	lines = append(lines, "")
	for i, item := range items {
		rows := ui.MenuRow(item.icon, item.title, item.desc, item.color, i == m.menuIndex, innerWidth)
		lines = append(lines, rows...)
		lines = append(lines, "")
	}

	// Info panel for the highlighted item
	title, info := ui.MenuInfoPanel(m.menuIndex)
	lines = append(lines, ui.SectionHeader(strings.ToUpper(title), ui.ColorYellow))
	lines = append(lines, info...)

	if m.pingError != nil {
		warnStyle := lipgloss.NewStyle().Foreground(ui.ColorYellow)
		lines = append(lines, "")
		lines = append(lines, warnStyle.Render("  ⚠ "+truncateString(m.pingError.Error(), innerWidth-4)))
	}

	if m.updateNotice != "" {
		noticeStyle := lipgloss.NewStyle().Foreground(ui.ColorGreen)
		lines = append(lines, "")
		lines = append(lines, noticeStyle.Render("  ✓ "+m.updateNotice))
	}

	return strings.Join(lines, "\n")
}

func (m Model) renderDiffPathInput() string {
	var lines []string
	lines = append(lines, "")
	lines = append(lines, ui.SectionHeader("DIFF FILE PATH", ui.ColorMagenta))
	lines = append(lines, "")
	lines = append(lines, "  "+m.pathInput.View())
	lines = append(lines, "")

	hintStyle := lipgloss.NewStyle().Foreground(ui.ColorWhite)
	enterStyle := lipgloss.NewStyle().Foreground(ui.ColorGreen).Bold(true)
	escStyle := lipgloss.NewStyle().Foreground(ui.ColorYellow).Bold(true)
	lines = append(lines, hintStyle.Render("  Press ")+enterStyle.Render("Enter")+hintStyle.Render(" to load"))
	lines = append(lines, hintStyle.Render("  ")+escStyle.Render("Esc")+hintStyle.Render(" to go back"))

	return strings.Join(lines, "\n")
}

func (m Model) renderLoading() string {
	spinnerStyle := lipgloss.NewStyle().Foreground(ui.ColorCyan).Bold(true)
	textStyle := lipgloss.NewStyle().Foreground(ui.ColorWhite)

	message := m.loadingMessage
	if message == "" {
		message = "Working..."
	}

	var lines []string
	lines = append(lines, "")
	lines = append(lines, "")
	lines = append(lines, fmt.Sprintf("  %s %s",
		spinnerStyle.Render(ui.Spinner(m.spinnerFrame)),
		textStyle.Render(message),
	))
	lines = append(lines, "")

	return strings.Join(lines, "\n")
}

// sizeDiffViewport fits the diff pane to the current window
func (m *Model) sizeDiffViewport() {
	width := m.contentWidth() - messagePanelWidth - 6
	if width < 40 {
		width = 40
	}
	height := m.height - len(ui.Banner) - 10
	if height < 8 {
		height = 8
	}
	m.diffViewport.Width = width
	m.diffViewport.Height = height
}

// syncDiffViewport rebuilds the diff pane content and keeps the cursor
// row visible.
func (m *Model) syncDiffViewport() {
	cursorStyle := lipgloss.NewStyle().Foreground(ui.ColorYellow).Bold(true)

	lines := make([]string, 0, len(m.rows))
	for i, row := range m.rows {
		prefix := "  "
		if i == m.diffCursor {
			prefix = cursorStyle.Render("▶ ")
		}
		lines = append(lines, prefix+ui.DiffRowView(row, m.opts.ShowLineNumbers))
	}
	m.diffViewport.SetContent(strings.Join(lines, "\n"))

	if m.diffCursor < m.diffViewport.YOffset {
		m.diffViewport.SetYOffset(m.diffCursor)
	} else if m.diffCursor >= m.diffViewport.YOffset+m.diffViewport.Height {
		m.diffViewport.SetYOffset(m.diffCursor - m.diffViewport.Height + 1)
	}
}

func (m Model) renderReviewWithHeight(availableHeight int) string {
	paneHeight := availableHeight - 2
	if paneHeight < 8 {
		paneHeight = 8
	}

	// Left: diff pane
	diffTitle := fmt.Sprintf("Diff (%s)", m.diff.Origin.Display())
	if m.diff.Truncated {
		diffTitle += " · truncated"
	}
	left := ui.ColumnBox(m.diffViewport.View(), diffTitle, ui.ColorCyan, true, m.diffViewport.Width+2, paneHeight)

	// Right: message pane
	right := ui.ColumnBox(m.renderMessagePanel(), "Commit Message", ui.ColorGreen, m.message != "", messagePanelWidth, paneHeight)

	return lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right)
}

func (m Model) renderMessagePanel() string {
	labelStyle := lipgloss.NewStyle().Foreground(ui.ColorDarkGray)
	valueStyle := lipgloss.NewStyle().Foreground(ui.ColorCyan)

	var lines []string
	lines = append(lines, "")
	lines = append(lines, labelStyle.Render("  Model: ")+valueStyle.Render(m.client.Model()))
	if m.repoInfo != nil {
		lines = append(lines, labelStyle.Render("  Repo:  ")+valueStyle.Render(m.repoInfo.DisplayName))
	}
	lines = append(lines, "")

	if m.session.InFlight() {
		// Pulse the indicator so a slow model visibly isn't a hang
		color := ui.ColorGreen
		if math.Sin(m.pulsePhase) < 0 {
			color = ui.ColorDarkGray
		}
		genStyle := lipgloss.NewStyle().Foreground(color).Bold(true)
		spinnerStyle := lipgloss.NewStyle().Foreground(ui.ColorCyan)
		lines = append(lines, fmt.Sprintf("  %s %s",
			spinnerStyle.Render(ui.Spinner(m.spinnerFrame)),
			genStyle.Render("Generating..."),
		))
		return strings.Join(lines, "\n")
	}

	if m.message == "" {
		dimStyle := lipgloss.NewStyle().Foreground(ui.ColorDarkGray)
		lines = append(lines, dimStyle.Render("  No message yet. Press r to generate."))
		return strings.Join(lines, "\n")
	}

	msgStyle := lipgloss.NewStyle().Foreground(ui.ColorWhite)
	titleStyle := lipgloss.NewStyle().Foreground(ui.ColorGreen).Bold(true)

	wrapped := wordwrap.String(m.message, messagePanelWidth-6)
	for i, line := range strings.Split(wrapped, "\n") {
		if i == 0 {
			lines = append(lines, "  "+titleStyle.Render(line))
		} else {
			lines = append(lines, "  "+msgStyle.Render(line))
		}
	}

	if m.copyFeedback != "" {
		lines = append(lines, "")
		feedbackStyle := lipgloss.NewStyle().Foreground(ui.ColorYellow).Bold(true)
		lines = append(lines, "  "+feedbackStyle.Render(m.copyFeedback))
	}

	return strings.Join(lines, "\n")
}

func (m Model) renderMessageEdit() string {
	var lines []string
	lines = append(lines, "")
	lines = append(lines, ui.SectionHeader("EDIT MESSAGE", ui.ColorYellow))
	lines = append(lines, "")
	lines = append(lines, m.msgEdit.View())
	lines = append(lines, "")

	hintStyle := lipgloss.NewStyle().Foreground(ui.ColorWhite)
	saveStyle := lipgloss.NewStyle().Foreground(ui.ColorGreen).Bold(true)
	escStyle := lipgloss.NewStyle().Foreground(ui.ColorYellow).Bold(true)
	lines = append(lines, hintStyle.Render("  ")+saveStyle.Render("Ctrl+S")+hintStyle.Render(" save · ")+escStyle.Render("Esc")+hintStyle.Render(" discard"))

	return strings.Join(lines, "\n")
}

func (m Model) renderCommitConfirm() string {
	var lines []string
	lines = append(lines, "")
	lines = append(lines, ui.SectionHeader("COMMIT STAGED CHANGES?", ui.ColorYellow))
	lines = append(lines, "")

	msgStyle := lipgloss.NewStyle().Foreground(ui.ColorWhite)
	for _, line := range strings.Split(m.message, "\n") {
		lines = append(lines, "  "+msgStyle.Render(line))
	}
	lines = append(lines, "")
	lines = append(lines, ui.YesNoButtons(m.confirmSelection))

	return strings.Join(lines, "\n")
}

func (m Model) renderCommitting() string {
	spinnerStyle := lipgloss.NewStyle().Foreground(ui.ColorGreen).Bold(true)
	textStyle := lipgloss.NewStyle().Foreground(ui.ColorWhite)

	var lines []string
	lines = append(lines, "")
	lines = append(lines, fmt.Sprintf("  %s %s",
		spinnerStyle.Render(ui.Spinner(m.spinnerFrame)),
		textStyle.Render("Committing..."),
	))
	lines = append(lines, "")

	return strings.Join(lines, "\n")
}

func (m Model) renderComplete() string {
	var lines []string

	// Confetti overlay
	if len(m.confetti) > 0 {
		lines = append(lines, m.renderConfetti())
	}

	successStyle := lipgloss.NewStyle().Foreground(ui.ColorGreen).Bold(true)
	lines = append(lines, "")

	// Typewriter reveal
	headline := []rune("✓ Committed!")
	reveal := m.typewriterPos
	if reveal > len(headline) {
		reveal = len(headline)
	}
	lines = append(lines, "  "+successStyle.Render(string(headline[:reveal])))
	lines = append(lines, "")

	msgStyle := lipgloss.NewStyle().Foreground(ui.ColorWhite)
	for _, line := range strings.Split(m.message, "\n") {
		lines = append(lines, "  "+msgStyle.Render(line))
	}

	if m.committedHead != "" {
		dimStyle := lipgloss.NewStyle().Foreground(ui.ColorDarkGray)
		lines = append(lines, "")
		lines = append(lines, "  "+dimStyle.Render("HEAD: "+m.committedHead))
	}

	if m.copyFeedback != "" {
		lines = append(lines, "")
		feedbackStyle := lipgloss.NewStyle().Foreground(ui.ColorYellow).Bold(true)
		lines = append(lines, "  "+feedbackStyle.Render(m.copyFeedback))
	}

	return strings.Join(lines, "\n")
}

func (m Model) renderConfetti() string {
	width := m.contentWidth() - 8
	height := 8
	grid := make([][]rune, height)
	colorGrid := make([][]lipgloss.Color, height)
	for y := range grid {
		grid[y] = make([]rune, width)
		colorGrid[y] = make([]lipgloss.Color, width)
		for x := range grid[y] {
			grid[y][x] = ' '
		}
	}

	for _, p := range m.confetti {
		x, y := int(p.X), int(p.Y)
		if x >= 0 && x < width && y >= 0 && y < height {
			grid[y][x] = p.Char
			colorGrid[y][x] = p.Color
		}
	}

	var lines []string
	for y := range grid {
		var sb strings.Builder
		for x := range grid[y] {
			if grid[y][x] == ' ' {
				sb.WriteRune(' ')
				continue
			}
			style := lipgloss.NewStyle().Foreground(colorGrid[y][x])
			sb.WriteString(style.Render(string(grid[y][x])))
		}
		lines = append(lines, sb.String())
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderError() string {
	errorStyle := lipgloss.NewStyle().Foreground(ui.ColorRed).Bold(true)
	textStyle := lipgloss.NewStyle().Foreground(ui.ColorWhite)

	var lines []string
	lines = append(lines, "")
	lines = append(lines, "  "+errorStyle.Render("✗ Error"))
	lines = append(lines, "")
	wrapped := wordwrap.String(m.errorMessage, m.contentWidth()-10)
	for _, line := range strings.Split(wrapped, "\n") {
		lines = append(lines, "  "+textStyle.Render(line))
	}

	return strings.Join(lines, "\n")
}

func (m Model) renderSessionHistory() string {
	var lines []string
	lines = append(lines, "")
	lines = append(lines, ui.SectionHeader("SESSION HISTORY", ui.ColorBlue))
	lines = append(lines, "")

	if len(m.history) == 0 {
		dimStyle := lipgloss.NewStyle().Foreground(ui.ColorDarkGray)
		lines = append(lines, dimStyle.Render("  No messages generated yet"))
		return strings.Join(lines, "\n")
	}

	timeStyle := lipgloss.NewStyle().Foreground(ui.ColorDarkGray)
	repoStyle := lipgloss.NewStyle().Foreground(ui.ColorCyan)
	committedStyle := lipgloss.NewStyle().Foreground(ui.ColorGreen)

	for i, entry := range m.history {
		arrow := ui.Arrow(i == m.historyIndex)
		mark := "  "
		if entry.committed {
			mark = committedStyle.Render("✓ ")
		}
		title := strings.SplitN(entry.message, "\n", 2)[0]
		line := fmt.Sprintf("%s%s%s %s %s",
			arrow,
			mark,
			repoStyle.Render(entry.repoName),
			truncateString(title, 44),
			timeStyle.Render(relativeTime(entry.createdAt)),
		)
		lines = append(lines, line)
	}

	if m.copyFeedback != "" {
		lines = append(lines, "")
		feedbackStyle := lipgloss.NewStyle().Foreground(ui.ColorYellow).Bold(true)
		lines = append(lines, "  "+feedbackStyle.Render(m.copyFeedback))
	}

	return strings.Join(lines, "\n")
}

func (m Model) renderUpdatePrompt() string {
	if m.updateAvailable == nil {
		return ""
	}

	titleStyle := lipgloss.NewStyle().Foreground(ui.ColorCyan).Bold(true)

	var lines []string
	lines = append(lines, "")
	lines = append(lines, "  "+titleStyle.Render(fmt.Sprintf("Update available: %s", m.updateAvailable.TagName)))
	lines = append(lines, "")

	options := []string{"Update now", "Skip", "Skip this version"}
	for i, opt := range options {
		style := lipgloss.NewStyle().Foreground(ui.ColorWhite)
		if i == m.updateSelection {
			style = lipgloss.NewStyle().Foreground(ui.ColorGreen).Bold(true)
		}
		lines = append(lines, "  "+ui.Arrow(i == m.updateSelection)+style.Render(opt))
	}

	return strings.Join(lines, "\n")
}

func (m Model) renderUpdating() string {
	spinnerStyle := lipgloss.NewStyle().Foreground(ui.ColorCyan).Bold(true)
	textStyle := lipgloss.NewStyle().Foreground(ui.ColorWhite)

	var lines []string
	lines = append(lines, "")
	lines = append(lines, fmt.Sprintf("  %s %s",
		spinnerStyle.Render(ui.Spinner(m.spinnerFrame)),
		textStyle.Render("Downloading update..."),
	))

	return strings.Join(lines, "\n")
}

func (m Model) renderStatusBar() string {
	var hints []string

	switch m.screen {
	case ScreenMainMenu:
		hints = []string{
			ui.KeyBinding("1-3", "Select", ui.ColorYellow),
			ui.KeyBinding("↑↓", "Navigate", ui.ColorWhite),
			ui.KeyBinding("Enter", "Select", ui.ColorGreen),
			ui.KeyBinding("c", "Config", ui.ColorMagenta),
			ui.KeyBinding("u", "Update", ui.ColorCyan),
		}
		if len(m.history) > 0 {
			hints = append(hints, ui.KeyBinding("h", "History", ui.ColorBlue))
		}
		hints = append(hints, ui.KeyBinding("q", "Quit", ui.ColorRed))
	case ScreenDiffPathInput:
		hints = []string{
			ui.KeyBinding("Enter", "Load", ui.ColorGreen),
			ui.KeyBinding("Esc", "Back", ui.ColorYellow),
		}
	case ScreenReview:
		hints = []string{
			ui.KeyBinding("↑↓", "Navigate", ui.ColorWhite),
			ui.KeyBinding("Enter", "Expand", ui.ColorGreen),
			ui.KeyBinding("n", "Numbers", ui.ColorCyan),
			ui.KeyBinding("c", "Collapse", ui.ColorCyan),
			ui.KeyBinding("r", "Regenerate", ui.ColorMagenta),
			ui.KeyBinding("y", "Copy", ui.ColorBlue),
			ui.KeyBinding("e", "Edit", ui.ColorYellow),
		}
		if m.canCommit() {
			hints = append(hints, ui.KeyBinding("C", "Commit", ui.ColorGreen))
		}
		hints = append(hints, ui.KeyBinding("Esc", "Back", ui.ColorYellow))
	case ScreenMessageEdit:
		hints = []string{
			ui.KeyBinding("Ctrl+S", "Save", ui.ColorGreen),
			ui.KeyBinding("Esc", "Discard", ui.ColorYellow),
		}
	case ScreenCommitConfirm:
		hints = []string{
			ui.KeyBinding("←→", "Select", ui.ColorWhite),
			ui.KeyBinding("y/n", "Quick", ui.ColorGreen),
			ui.KeyBinding("Enter", "Confirm", ui.ColorGreen),
			ui.KeyBinding("Esc", "Back", ui.ColorYellow),
		}
	case ScreenComplete:
		hints = []string{
			ui.KeyBinding("y", "Copy", ui.ColorBlue),
			ui.KeyBinding("Enter", "Done", ui.ColorGreen),
		}
	case ScreenError:
		hints = []string{
			ui.KeyBinding("Enter", "Back", ui.ColorGreen),
			ui.KeyBinding("q", "Quit", ui.ColorRed),
		}
	case ScreenSessionHistory:
		hints = []string{
			ui.KeyBinding("↑↓", "Navigate", ui.ColorWhite),
			ui.KeyBinding("y", "Copy", ui.ColorBlue),
			ui.KeyBinding("Esc", "Back", ui.ColorYellow),
		}
	case ScreenUpdatePrompt:
		hints = []string{
			ui.KeyBinding("↑↓", "Navigate", ui.ColorWhite),
			ui.KeyBinding("Enter", "Select", ui.ColorGreen),
			ui.KeyBinding("Esc", "Skip", ui.ColorYellow),
		}
	}

	barStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ui.ColorDarkGray).
		Padding(0, 1)

	return barStyle.Render(strings.Join(hints, "  "))
}

func truncateString(s string, maxLen int) string {
	if maxLen <= 3 || len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func relativeTime(t time.Time) string {
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	default:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	}
}
