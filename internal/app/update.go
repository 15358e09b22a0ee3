package app

import (
	"time"

	"github.com/yanjianzhang/CommitAIFlow/internal/models"
	"github.com/yanjianzhang/CommitAIFlow/internal/session"

	tea "github.com/charmbracelet/bubbletea"
)

// Update handles all messages and updates state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.sizeDiffViewport()
		m.syncDiffViewport()
		return m, nil

	case tickMsg:
		m.spinnerFrame = (m.spinnerFrame + 1) % 10
		m.updateAnimations()
		return m, tickCmd()

	case renderTickMsg:
		// Only the tick scheduled by the last toggle survives the window
		if time.Since(m.lastToggle) >= renderDebounce-10*time.Millisecond {
			m.refreshRows()
		}
		return m, nil

	// Task result messages
	case pingResult:
		m.pingError = msg.err
		return m, nil

	case stagedLoadedResult:
		return m.handleStagedLoaded(msg)

	case hostResponseMsg:
		return m.handleHostResponse(msg)

	case commitResult:
		return m.handleCommitResult(msg)

	case updateCheckResult:
		return m.handleUpdateCheckResult(msg)

	case updateDownloadResult:
		return m.handleUpdateDownloadResult(msg)
	}

	return m, nil
}

// handleKey processes keyboard input
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Clear copy feedback on any keypress
	m.copyFeedback = ""

	// Global quit
	if msg.Type == tea.KeyCtrlC {
		m.shouldQuit = true
		return m, tea.Quit
	}

	switch m.screen {
	case ScreenMainMenu:
		return m.handleMainMenuKey(msg)
	case ScreenDiffPathInput:
		return m.handleDiffPathInputKey(msg)
	case ScreenReview:
		return m.handleReviewKey(msg)
	case ScreenMessageEdit:
		return m.handleMessageEditKey(msg)
	case ScreenCommitConfirm:
		return m.handleCommitConfirmKey(msg)
	case ScreenComplete:
		return m.handleCompleteKey(msg)
	case ScreenError:
		return m.handleErrorKey(msg)
	case ScreenSessionHistory:
		return m.handleSessionHistoryKey(msg)
	case ScreenUpdatePrompt:
		return m.handleUpdatePromptKey(msg)
	}

	return m, nil
}

const menuItems = 3 // staged, diff file, quit

func (m Model) handleMainMenuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		m.shouldQuit = true
		return m, tea.Quit
	case "up", "k":
		if m.menuIndex > 0 {
			m.menuIndex--
		} else {
			m.menuIndex = menuItems - 1 // Wrap to bottom
		}
	case "down", "j":
		if m.menuIndex < menuItems-1 {
			m.menuIndex++
		} else {
			m.menuIndex = 0 // Wrap to top
		}
	case "enter":
		return m.selectMainMenuItem()
	case "1":
		m.menuIndex = 0
		return m.selectMainMenuItem()
	case "2":
		m.menuIndex = 1
		return m.selectMainMenuItem()
	case "3":
		m.menuIndex = 2
		return m.selectMainMenuItem()
	case "h":
		if len(m.history) > 0 {
			m.historyIndex = len(m.history) - 1
			m.screen = ScreenSessionHistory
		}
	case "c":
		return m, openConfigCmd()
	case "u":
		if !m.updateCheckInProgress {
			m.updateCheckInProgress = true
			return m, checkUpdateCmd(m.version, m.config.Update.Repo)
		}
	}
	return m, nil
}

func (m Model) selectMainMenuItem() (tea.Model, tea.Cmd) {
	switch m.menuIndex {
	case 0: // Generate from staged changes
		m.screen = ScreenLoading
		m.loadingMessage = "Reading staged changes..."
		return m, m.dispatchHost(session.Request{Kind: session.RequestLoadDiff})
	case 1: // Load diff from file
		m.pathInput.SetValue("")
		m.pathInput.Focus()
		m.screen = ScreenDiffPathInput
		return m, nil
	default: // Quit
		m.shouldQuit = true
		return m, tea.Quit
	}
}

func (m Model) handleDiffPathInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.pathInput.Blur()
		m.screen = ScreenMainMenu
		return m, nil
	case "enter":
		path := m.pathInput.Value()
		if path == "" {
			return m, nil
		}
		m.pathInput.Blur()
		m.screen = ScreenLoading
		m.loadingMessage = "Loading diff file..."
		return m, loadFileDiffCmd(path, m.config.Diff.MaxChars)
	}

	var cmd tea.Cmd
	m.pathInput, cmd = m.pathInput.Update(msg)
	return m, cmd
}

func (m Model) handleReviewKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m.reset()
	case "q":
		m.shouldQuit = true
		return m, tea.Quit
	case "up", "k":
		if m.diffCursor > 0 {
			m.diffCursor--
			m.syncDiffViewport()
		}
	case "down", "j":
		if m.diffCursor < len(m.rows)-1 {
			m.diffCursor++
			m.syncDiffViewport()
		}
	case "pgup", "b":
		m.diffCursor -= m.diffViewport.Height
		if m.diffCursor < 0 {
			m.diffCursor = 0
		}
		m.syncDiffViewport()
	case "pgdown", "f":
		m.diffCursor += m.diffViewport.Height
		if m.diffCursor > len(m.rows)-1 {
			m.diffCursor = len(m.rows) - 1
		}
		m.syncDiffViewport()
	case "g":
		m.diffCursor = 0
		m.syncDiffViewport()
	case "G":
		m.diffCursor = len(m.rows) - 1
		m.syncDiffViewport()
	case "enter":
		m.expandAtCursor()
	case "n":
		m.opts.ShowLineNumbers = !m.opts.ShowLineNumbers
		m.lastToggle = time.Now()
		return m, renderDebounceCmd()
	case "c":
		m.opts.CollapseContext = !m.opts.CollapseContext
		m.lastToggle = time.Now()
		return m, renderDebounceCmd()
	case "r":
		if m.session.InFlight() {
			m.copyFeedback = "Generation already running"
			return m, nil
		}
		m.message = ""
		return m, m.startGeneration()
	case "y":
		if m.message != "" {
			if err := copyToClipboard(m.message); err == nil {
				m.copyFeedback = "Copied!"
			}
		}
	case "e", "m":
		if m.message != "" {
			m.msgEdit.SetValue(m.message)
			m.msgEdit.Focus()
			m.screen = ScreenMessageEdit
		}
	case "C":
		if m.canCommit() {
			m.confirmSelection = 0
			m.screen = ScreenCommitConfirm
		}
	}
	return m, nil
}

// canCommit reports whether the reviewed message can be committed: a
// message exists, the diff came from the index, and we know the repo.
func (m Model) canCommit() bool {
	return m.message != "" && m.repoInfo != nil && m.diff.Origin == models.OriginStaged
}

func (m Model) handleMessageEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.msgEdit.Blur()
		m.screen = ScreenReview
		return m, nil
	case "ctrl+s":
		m.message = m.msgEdit.Value()
		m.msgEdit.Blur()
		m.screen = ScreenReview
		return m, nil
	}

	var cmd tea.Cmd
	m.msgEdit, cmd = m.msgEdit.Update(msg)
	return m, cmd
}

func (m Model) handleCommitConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "n":
		m.screen = ScreenReview
		return m, nil
	case "left", "right", "h", "l", "tab":
		m.confirmSelection = 1 - m.confirmSelection
	case "y":
		m.confirmSelection = 0
		return m.confirmCommit()
	case "enter":
		if m.confirmSelection == 0 {
			return m.confirmCommit()
		}
		m.screen = ScreenReview
		return m, nil
	}
	return m, nil
}

func (m Model) confirmCommit() (tea.Model, tea.Cmd) {
	if !m.canCommit() {
		m.screen = ScreenReview
		return m, nil
	}
	m.screen = ScreenCommitting
	return m, commitCmd(m.repoInfo.Path, m.message, m.dryRun)
}

func (m Model) handleCompleteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc":
		return m.reset()
	case "y":
		if m.message != "" {
			if err := copyToClipboard(m.message); err == nil {
				m.copyFeedback = "Copied!"
			}
		}
	case "q":
		m.shouldQuit = true
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) handleErrorKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc":
		return m.reset()
	case "q":
		m.shouldQuit = true
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) handleSessionHistoryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "h":
		m.screen = ScreenMainMenu
		return m, nil
	case "up", "k":
		if m.historyIndex > 0 {
			m.historyIndex--
		}
	case "down", "j":
		if m.historyIndex < len(m.history)-1 {
			m.historyIndex++
		}
	case "y":
		if m.historyIndex >= 0 && m.historyIndex < len(m.history) {
			if err := copyToClipboard(m.history[m.historyIndex].message); err == nil {
				m.copyFeedback = "Copied!"
			}
		}
	case "q":
		m.shouldQuit = true
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) handleUpdatePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.updateSelection > 0 {
			m.updateSelection--
		}
	case "down", "j":
		if m.updateSelection < 2 {
			m.updateSelection++
		}
	case "esc":
		m.updateAvailable = nil
		m.screen = ScreenMainMenu
		return m, nil
	case "enter":
		switch m.updateSelection {
		case 0: // Update now
			m.screen = ScreenUpdating
			return m, downloadUpdateCmd(m.updateAvailable, m.config.Update.Repo)
		case 1: // Skip
			m.updateAvailable = nil
			m.screen = ScreenMainMenu
		case 2: // Skip this version
			m.config.Update.SkippedVersion = m.updateAvailable.TagName
			_ = m.config.Save()
			m.updateAvailable = nil
			m.screen = ScreenMainMenu
		}
	}
	return m, nil
}

func (m Model) handleUpdateCheckResult(msg updateCheckResult) (tea.Model, tea.Cmd) {
	m.updateCheckInProgress = false
	m.config.RecordUpdateCheck()
	_ = m.config.Save()

	if msg.err != nil || msg.release == nil {
		return m, nil
	}
	if msg.release.TagName == m.config.Update.SkippedVersion {
		return m, nil
	}

	m.updateAvailable = msg.release
	m.updateSelection = 0
	m.screen = ScreenUpdatePrompt
	return m, nil
}

func (m Model) handleUpdateDownloadResult(msg updateDownloadResult) (tea.Model, tea.Cmd) {
	if !msg.success {
		m.errorMessage = "Update failed: " + msg.err.Error()
		m.screen = ScreenError
		return m, nil
	}
	// Updated binary takes effect on next launch
	m.updateNotice = "Updated to " + msg.version + ", restart to apply"
	m.updateAvailable = nil
	m.screen = ScreenMainMenu
	return m, nil
}

// reset returns to the main menu, keeping session history
func (m Model) reset() (tea.Model, tea.Cmd) {
	m.screen = ScreenMainMenu
	m.menuIndex = 0
	m.diff = models.DiffSource{}
	m.hunks = nil
	m.rows = nil
	m.diffCursor = 0
	m.message = ""
	m.committedHead = ""
	m.errorMessage = ""
	m.loadingMessage = ""
	m.confirmSelection = 0
	return m, nil
}
