package app

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/yanjianzhang/CommitAIFlow/internal/config"
	"github.com/yanjianzhang/CommitAIFlow/internal/git"
	"github.com/yanjianzhang/CommitAIFlow/internal/llm"
	"github.com/yanjianzhang/CommitAIFlow/internal/models"
	"github.com/yanjianzhang/CommitAIFlow/internal/sanitize"
	"github.com/yanjianzhang/CommitAIFlow/internal/session"
	"github.com/yanjianzhang/CommitAIFlow/internal/update"

	tea "github.com/charmbracelet/bubbletea"
)

// Message types for async operations

type pingResult struct {
	err error
}

// stagedLoadedResult carries the repo info alongside the host response
// because repo discovery and diff loading happen in one background step.
type stagedLoadedResult struct {
	repo *models.RepoInfo
	resp session.Response
}

// hostResponseMsg wraps a typed host response (diff loaded, message
// ready, or a failure from either).
type hostResponseMsg struct {
	resp session.Response
}

type commitResult struct {
	head string // HEAD subject after the commit, for confirmation
	err  error
}

// renderTickMsg fires after the display-toggle debounce window
type renderTickMsg struct{}

// Update check messages
type updateCheckResult struct {
	release *update.Release
	err     error
}

type updateDownloadResult struct {
	success bool
	version string
	err     error
}

// pingCmd checks the model server in the background
func pingCmd(client *llm.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return pingResult{err: client.Ping(ctx)}
	}
}

// checkUpdateCmd checks for available updates
func checkUpdateCmd(currentVersion, repo string) tea.Cmd {
	return func() tea.Msg {
		release, err := update.CheckForUpdate(currentVersion, repo)
		return updateCheckResult{release: release, err: err}
	}
}

// downloadUpdateCmd downloads and installs an update
func downloadUpdateCmd(release *update.Release, repo string) tea.Cmd {
	return func() tea.Msg {
		err := update.DownloadAndInstall(release, repo)
		if err != nil {
			return updateDownloadResult{success: false, err: err}
		}
		return updateDownloadResult{success: true, version: update.VersionDisplay(release.TagName)}
	}
}

// openConfigCmd opens the config folder in the system file manager
func openConfigCmd() tea.Cmd {
	return func() tea.Msg {
		configPath, err := config.Path()
		if err != nil {
			return nil
		}
		configDir := filepath.Dir(configPath)

		var cmd *exec.Cmd
		switch runtime.GOOS {
		case "darwin":
			// macOS: open folder in Finder, select the file
			cmd = exec.Command("open", "-R", configPath)
		case "linux":
			if isWSL() {
				// Convert Linux path to Windows path and open in Explorer
				winPath, err := exec.Command("wslpath", "-w", configDir).Output()
				if err == nil {
					cmd = exec.Command("explorer.exe", strings.TrimSpace(string(winPath)))
				}
			} else {
				cmd = exec.Command("xdg-open", configDir)
			}
		}

		if cmd != nil {
			cmd.Start()
		}
		return nil
	}
}

// renderDebounceCmd schedules a re-render check after the debounce window
func renderDebounceCmd() tea.Cmd {
	return tea.Tick(renderDebounce, func(_ time.Time) tea.Msg {
		return renderTickMsg{}
	})
}

// dryRunDiff is the canned diff shown in dry-run mode. The long context
// run exercises collapsing without a real repository.
var dryRunDiff = func() string {
	var b strings.Builder
	b.WriteString("diff --git a/internal/server/handler.go b/internal/server/handler.go\n")
	b.WriteString("index 3f1c2aa..9e04b71 100644\n")
	b.WriteString("--- a/internal/server/handler.go\n")
	b.WriteString("+++ b/internal/server/handler.go\n")
	b.WriteString("@@ -10,30 +10,31 @@\n")
	b.WriteString("-\tlog.Println(\"starting\")\n")
	b.WriteString("+\tlog.Printf(\"starting on %s\", addr)\n")
	for i := 0; i < 25; i++ {
		fmt.Fprintf(&b, " \tline%d := compute(%d)\n", i, i)
	}
	b.WriteString("+\treturn srv.ListenAndServe()\n")
	return b.String()
}()

const dryRunResponse = "```\nfeat: log the listen address on startup\n\nInclude the bound address in the startup log line and return the\nserver error instead of swallowing it.\n```"

// Commands

// loadStagedCmd discovers the current repo and reads its staged diff
func loadStagedCmd(limit int, dryRun bool) tea.Cmd {
	return func() tea.Msg {
		if dryRun {
			time.Sleep(500 * time.Millisecond)
			repo := models.NewRepoInfo(".", "example-repo", "main")
			return stagedLoadedResult{
				repo: &repo,
				resp: session.Response{
					Kind: session.ResponseDiffReady,
					Diff: models.DiffSource{Text: dryRunDiff, Origin: models.OriginStaged},
				},
			}
		}

		repo, err := git.GetCurrentRepoInfo()
		if err != nil {
			return stagedLoadedResult{resp: session.Response{
				Kind: session.ResponseError,
				Err:  fmt.Errorf("not in a git repository: %w", err),
			}}
		}

		if !git.HasStagedChanges(repo.Path) {
			return stagedLoadedResult{repo: repo, resp: session.Response{
				Kind: session.ResponseError,
				Err:  fmt.Errorf("no staged changes in %s (stage files with git add first)", repo.DisplayName),
			}}
		}

		diff, err := git.StagedDiff(repo.Path, limit)
		if err != nil {
			return stagedLoadedResult{repo: repo, resp: session.Response{
				Kind: session.ResponseError,
				Err:  err,
			}}
		}

		return stagedLoadedResult{repo: repo, resp: session.Response{
			Kind: session.ResponseDiffReady,
			Diff: diff,
		}}
	}
}

// loadFileDiffCmd reads a user-supplied diff file
func loadFileDiffCmd(path string, limit int) tea.Cmd {
	return func() tea.Msg {
		diff, err := git.ReadDiffFile(config.ExpandPath(path), limit)
		if err != nil {
			return hostResponseMsg{resp: session.Response{
				Kind: session.ResponseError,
				Err:  fmt.Errorf("loading diff file: %w", err),
			}}
		}
		return hostResponseMsg{resp: session.Response{
			Kind: session.ResponseDiffReady,
			Diff: diff,
		}}
	}
}

// generateCmd sends the diff to the model and sanitizes the reply
func generateCmd(client *llm.Client, diff models.DiffSource, fallback string, dryRun bool) tea.Cmd {
	return func() tea.Msg {
		if dryRun {
			time.Sleep(800 * time.Millisecond)
			return hostResponseMsg{resp: session.Response{
				Kind:    session.ResponseMessageReady,
				Message: sanitize.Compose(dryRunResponse, fallback),
			}}
		}

		ctx, cancel := context.WithTimeout(context.Background(), client.Timeout())
		defer cancel()

		prompt := llm.BuildPrompt(diff.Text, diff.Truncated)
		raw, err := client.Generate(ctx, prompt)
		if err != nil {
			return hostResponseMsg{resp: session.Response{
				Kind: session.ResponseError,
				Err:  err,
			}}
		}

		return hostResponseMsg{resp: session.Response{
			Kind:    session.ResponseMessageReady,
			Message: sanitize.Compose(raw, fallback),
		}}
	}
}

// commitCmd records the staged changes with the reviewed message
func commitCmd(repoPath, message string, dryRun bool) tea.Cmd {
	return func() tea.Msg {
		if dryRun {
			time.Sleep(700 * time.Millisecond)
			return commitResult{head: strings.SplitN(message, "\n", 2)[0]}
		}
		if err := git.Commit(repoPath, message); err != nil {
			return commitResult{err: err}
		}
		return commitResult{head: git.HeadSummary(repoPath)}
	}
}

// dispatchHost routes a typed request to its background command. The
// session guard drops generation requests while one is running.
func (m *Model) dispatchHost(req session.Request) tea.Cmd {
	switch req.Kind {
	case session.RequestLoadDiff:
		return loadStagedCmd(m.config.Diff.MaxChars, m.dryRun)

	case session.RequestGenerate:
		if !m.session.Begin() {
			return nil
		}
		return generateCmd(m.client, m.diff, m.config.Commit.FallbackMessage, m.dryRun)

	case session.RequestGenerateFromDiff:
		if !m.session.Begin() {
			return nil
		}
		diff := m.diff
		if req.Diff != diff.Text {
			diff = models.DiffSource{Text: req.Diff, Origin: models.OriginCustom}
		}
		return generateCmd(m.client, diff, m.config.Commit.FallbackMessage, m.dryRun)
	}
	return nil
}

// startGeneration dispatches the generation request matching the loaded
// diff's provenance.
func (m *Model) startGeneration() tea.Cmd {
	req := session.Request{Kind: session.RequestGenerate}
	if m.diff.Origin == models.OriginCustom {
		req = session.Request{Kind: session.RequestGenerateFromDiff, Diff: m.diff.Text}
	}
	return m.dispatchHost(req)
}

// Result handlers

func (m Model) handleStagedLoaded(msg stagedLoadedResult) (tea.Model, tea.Cmd) {
	if msg.repo != nil {
		m.repoInfo = msg.repo
	}
	return m.handleHostResponse(hostResponseMsg{resp: msg.resp})
}

func (m Model) handleHostResponse(msg hostResponseMsg) (tea.Model, tea.Cmd) {
	switch msg.resp.Kind {
	case session.ResponseDiffReady:
		m.setDiff(msg.resp.Diff)
		m.message = ""
		m.screen = ScreenReview
		m.loadingMessage = ""
		return m, m.startGeneration()

	case session.ResponseMessageReady:
		m.session.End()
		m.message = msg.resp.Message
		m.recordMessage(msg.resp.Message)
		if m.screen == ScreenLoading {
			m.screen = ScreenReview
		}
		return m, nil

	case session.ResponseError:
		if m.session.InFlight() {
			m.session.End()
		}
		m.errorMessage = msg.resp.Err.Error()
		m.screen = ScreenError
		return m, nil
	}
	return m, nil
}

func (m Model) handleCommitResult(msg commitResult) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.errorMessage = msg.err.Error()
		m.screen = ScreenError
		return m, nil
	}

	m.markCommitted()
	m.committedHead = msg.head
	m.screen = ScreenComplete
	m.spawnConfetti()
	return m, nil
}

// isWSL checks if running under Windows Subsystem for Linux
func isWSL() bool {
	data, err := os.ReadFile("/proc/version")
	if err != nil {
		return false
	}
	version := strings.ToLower(string(data))
	return strings.Contains(version, "microsoft") || strings.Contains(version, "wsl")
}

// copyToClipboard copies text to the system clipboard
func copyToClipboard(text string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("pbcopy")
	case "windows":
		cmd = exec.Command("clip")
	default: // Linux
		if isWSL() {
			// WSL: use clip.exe to reach Windows clipboard
			cmd = exec.Command("clip.exe")
		} else if _, err := exec.LookPath("xclip"); err == nil {
			cmd = exec.Command("xclip", "-selection", "clipboard")
		} else {
			cmd = exec.Command("xsel", "--clipboard", "--input")
		}
	}

	cmd.Stdin = strings.NewReader(text)
	return cmd.Run()
}
