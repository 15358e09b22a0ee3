package app

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/yanjianzhang/CommitAIFlow/internal/models"
)

const historyMaxAge = 24 * time.Hour

// sessionEntry holds one generated commit message from this session
type sessionEntry struct {
	repoName  string
	message   string
	origin    models.DiffOrigin
	committed bool
	createdAt time.Time
}

// historyEntry is the persisted form of sessionEntry
type historyEntry struct {
	RepoName  string    `json:"repo_name"`
	Message   string    `json:"message"`
	Origin    string    `json:"origin"`
	Committed bool      `json:"committed"`
	CreatedAt time.Time `json:"created_at"`
}

func historyPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "commitai-history.json"), nil
}

func originFromString(s string) models.DiffOrigin {
	if s == "custom" {
		return models.OriginCustom
	}
	return models.OriginStaged
}

// loadHistory loads and prunes old entries from the history file
func loadHistory() []sessionEntry {
	path, err := historyPath()
	if err != nil {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}

	var entries []historyEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil
	}

	// Filter to entries within 24h
	cutoff := time.Now().Add(-historyMaxAge)
	var valid []historyEntry
	for _, e := range entries {
		if e.CreatedAt.After(cutoff) {
			valid = append(valid, e)
		}
	}

	// Rewrite file if we pruned anything
	if len(valid) != len(entries) {
		saveHistoryEntries(valid)
	}

	// Convert to sessionEntry
	var result []sessionEntry
	for _, e := range valid {
		result = append(result, sessionEntry{
			repoName:  e.RepoName,
			message:   e.Message,
			origin:    originFromString(e.Origin),
			committed: e.Committed,
			createdAt: e.CreatedAt,
		})
	}
	return result
}

// saveHistory saves the current session entries to disk
func saveHistory(entries []sessionEntry) {
	var persisted []historyEntry
	for _, e := range entries {
		persisted = append(persisted, historyEntry{
			RepoName:  e.repoName,
			Message:   e.message,
			Origin:    e.origin.Display(),
			Committed: e.committed,
			CreatedAt: e.createdAt,
		})
	}
	saveHistoryEntries(persisted)
}

func saveHistoryEntries(entries []historyEntry) {
	path, err := historyPath()
	if err != nil {
		return
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return
	}

	_ = os.WriteFile(path, data, 0644)
}

// recordMessage appends a generated message to the session history
func (m *Model) recordMessage(message string) {
	repoName := ""
	if m.repoInfo != nil {
		repoName = m.repoInfo.DisplayName
	}
	m.history = append(m.history, sessionEntry{
		repoName:  repoName,
		message:   message,
		origin:    m.diff.Origin,
		createdAt: time.Now(),
	})
	saveHistory(m.history)
}

// markCommitted flags the most recent history entry as committed
func (m *Model) markCommitted() {
	if len(m.history) == 0 {
		return
	}
	m.history[len(m.history)-1].committed = true
	saveHistory(m.history)
}
