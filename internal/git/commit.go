package git

import (
	"os/exec"
	"strings"
)

// Commit records the staged changes with the given message using the git
// CLI (to inherit hooks, signing and author configuration).
func Commit(repoPath, message string) error {
	cmd := exec.Command("git", "commit", "-m", message)
	cmd.Dir = repoPath

	output, err := cmd.CombinedOutput()
	if err != nil {
		outputStr := strings.TrimSpace(string(output))
		if outputStr == "" {
			outputStr = "commit failed"
		}
		return &GitError{Command: "commit", Output: outputStr}
	}

	return nil
}

// HeadSummary returns the subject line of the current HEAD commit,
// or "" when it cannot be read (e.g. an empty repository).
func HeadSummary(repoPath string) string {
	cmd := exec.Command("git", "log", "-1", "--pretty=%s")
	cmd.Dir = repoPath

	output, err := cmd.Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(output))
}
