package app

import (
	"math"
	"math/rand"
	"time"

	"github.com/yanjianzhang/CommitAIFlow/internal/config"
	"github.com/yanjianzhang/CommitAIFlow/internal/diffview"
	"github.com/yanjianzhang/CommitAIFlow/internal/llm"
	"github.com/yanjianzhang/CommitAIFlow/internal/models"
	"github.com/yanjianzhang/CommitAIFlow/internal/session"
	"github.com/yanjianzhang/CommitAIFlow/internal/ui"
	"github.com/yanjianzhang/CommitAIFlow/internal/update"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ConfettiParticle represents a single confetti particle
type ConfettiParticle struct {
	X, Y   float64
	VX, VY float64
	Char   rune
	Color  lipgloss.Color
}

// Display-option toggles re-render after this much key inactivity
const renderDebounce = 150 * time.Millisecond

// Model is the main application state
type Model struct {
	// Configuration
	config *config.Config
	dryRun bool

	// Collaborators
	client  *llm.Client
	session *session.Session

	// Navigation
	screen     Screen
	menuIndex  int
	shouldQuit bool

	// Repo / diff state
	repoInfo *models.RepoInfo
	diff     models.DiffSource
	hunks    []diffview.Hunk
	rows     []diffview.Row
	opts     diffview.Options

	// Diff pane
	diffViewport viewport.Model
	diffCursor   int
	lastToggle   time.Time

	// Message state
	message       string
	committedHead string // HEAD subject after a successful commit

	// Inputs
	pathInput textinput.Model
	msgEdit   textarea.Model

	// UI state
	confirmSelection int // 0=Yes, 1=No
	errorMessage     string
	loadingMessage   string
	spinnerFrame     int
	copyFeedback     string // Brief "Copied!" message, clears on next action
	pingError        error  // Non-nil if the model server ping failed

	// Update state
	version               string
	updateAvailable       *update.Release
	updateSelection       int // 0=Update now, 1=Skip, 2=Skip this version
	updateCheckInProgress bool
	updateNotice          string // shown on the main menu after an install

	// Animation state
	confetti      []ConfettiParticle
	pulsePhase    float64 // 0.0 - 2*PI for sine wave
	typewriterPos int     // Characters revealed so far

	// Session history (survives reset)
	history      []sessionEntry
	historyIndex int

	// Window size
	width  int
	height int
}

// New creates a new application model
func New(cfg *config.Config, dryRun bool, version string) Model {
	pathInput := textinput.New()
	pathInput.Placeholder = "path/to/changes.diff"
	pathInput.CharLimit = 512

	msgEdit := textarea.New()
	msgEdit.CharLimit = 0
	msgEdit.ShowLineNumbers = false

	return Model{
		config:  cfg,
		dryRun:  dryRun,
		version: version,
		client:  llm.NewClient(cfg.LLM.BaseURL, cfg.LLM.Model, cfg.Timeout()),
		session: session.New(),
		screen:  ScreenMainMenu,
		opts: diffview.Options{
			ShowLineNumbers: cfg.Diff.ShowLineNumbers,
			CollapseContext: cfg.Diff.CollapseContext,
		},
		diffViewport: viewport.New(80, 20),
		pathInput:    pathInput,
		msgEdit:      msgEdit,
		width:        80,
		height:       24,
		history:      loadHistory(),
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.EnterAltScreen,
		tickCmd(),
	}
	if !m.dryRun {
		cmds = append(cmds, pingCmd(m.client))
		if m.config.ShouldCheckForUpdate() {
			cmds = append(cmds, checkUpdateCmd(m.version, m.config.Update.Repo))
		}
	}
	return tea.Batch(cmds...)
}

// tickMsg is sent on each tick for animations
type tickMsg struct{}

func tickCmd() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(_ time.Time) tea.Msg {
		return tickMsg{}
	})
}

// setDiff installs a freshly loaded diff: parse once, render, reset the
// pane. Re-rendering on a display toggle goes through refreshRows and
// skips the parse.
func (m *Model) setDiff(d models.DiffSource) {
	m.diff = d
	m.hunks = diffview.Parse(d.Text)
	m.rows = diffview.Render(m.hunks, m.opts)
	m.diffCursor = 0
	m.syncDiffViewport()
}

// refreshRows re-renders the parsed hunks with the current options
func (m *Model) refreshRows() {
	m.rows = diffview.Render(m.hunks, m.opts)
	if m.diffCursor >= len(m.rows) {
		m.diffCursor = len(m.rows) - 1
	}
	if m.diffCursor < 0 {
		m.diffCursor = 0
	}
	m.syncDiffViewport()
}

// expandAtCursor splices the hidden rows of the collapsed run under the
// cursor back into the row sequence.
func (m *Model) expandAtCursor() {
	m.rows = diffview.Expand(m.rows, m.diffCursor)
	m.syncDiffViewport()
}

// spawnConfetti creates confetti particles for celebration
func (m *Model) spawnConfetti() {
	colors := []lipgloss.Color{
		ui.ColorCyan,
		ui.ColorMagenta,
		ui.ColorYellow,
		ui.ColorGreen,
		ui.ColorRed,
		ui.ColorWhite,
	}
	chars := []rune{'*', '•', '✦', '✧', '◆', '◇', '▪', '♦', '★', '☆'}

	m.confetti = nil
	for i := 0; i < 40; i++ {
		angle := (float64(i) / 40.0) * math.Pi * 2.0
		speed := 2.0 + float64(i%5)*0.5
		m.confetti = append(m.confetti, ConfettiParticle{
			X:     40.0, // center-ish
			Y:     5.0,
			VX:    math.Cos(angle) * speed,
			VY:    math.Sin(angle)*speed - 2.0, // bias upward initially
			Char:  chars[rand.Intn(len(chars))],
			Color: colors[rand.Intn(len(colors))],
		})
	}
	m.typewriterPos = 0
}

// updateAnimations updates all animation state
func (m *Model) updateAnimations() {
	// Update pulse phase (smooth sine wave)
	m.pulsePhase = math.Mod(m.pulsePhase+0.08, 2.0*math.Pi)

	// Update confetti physics
	for i := range m.confetti {
		m.confetti[i].X += m.confetti[i].VX
		m.confetti[i].Y += m.confetti[i].VY
		m.confetti[i].VY += 0.15 // gravity
		m.confetti[i].VX *= 0.98 // air resistance
	}

	// Remove particles that fell off screen
	filtered := m.confetti[:0]
	for _, p := range m.confetti {
		if p.Y < 50.0 {
			filtered = append(filtered, p)
		}
	}
	m.confetti = filtered

	// Typewriter effect - reveal more characters on the success screen
	if m.screen == ScreenComplete && m.typewriterPos < 100 {
		m.typewriterPos++
	}
}
