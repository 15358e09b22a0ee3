package git

import (
	"os"
	"os/exec"
	"strings"

	"github.com/yanjianzhang/CommitAIFlow/internal/models"
)

// StagedDiff reads the index diff using the git CLI (to inherit the
// user's diff drivers and textconv settings). The text is truncated to
// limit characters for the model; limit <= 0 disables truncation.
func StagedDiff(repoPath string, limit int) (models.DiffSource, error) {
	cmd := exec.Command("git", "diff", "--cached", "--no-color")
	cmd.Dir = repoPath

	output, err := cmd.Output()
	if err != nil {
		outputStr := ""
		if ee, ok := err.(*exec.ExitError); ok {
			outputStr = strings.TrimSpace(string(ee.Stderr))
		}
		if outputStr == "" {
			outputStr = "failed to read staged changes"
		}
		return models.DiffSource{}, &GitError{Command: "diff --cached", Output: outputStr}
	}

	text, truncated := TruncateDiff(string(output), limit)
	return models.DiffSource{
		Text:      text,
		Truncated: truncated,
		Origin:    models.OriginStaged,
	}, nil
}

// ReadDiffFile loads diff text from a user-supplied file. The parser is
// lenient, so the file does not have to be a well-formed diff.
func ReadDiffFile(path string, limit int) (models.DiffSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.DiffSource{}, err
	}

	text, truncated := TruncateDiff(string(data), limit)
	return models.DiffSource{
		Text:      text,
		Truncated: truncated,
		Origin:    models.OriginCustom,
	}, nil
}

// TruncateDiff cuts text to at most limit characters, backing up to the
// previous line boundary so no line is cut in half. Reports whether
// anything was dropped.
func TruncateDiff(text string, limit int) (string, bool) {
	if limit <= 0 || len(text) <= limit {
		return text, false
	}

	cut := strings.LastIndexByte(text[:limit], '\n')
	if cut <= 0 {
		cut = limit
	}
	return text[:cut], true
}

// HasStagedChanges reports whether the index differs from HEAD
func HasStagedChanges(repoPath string) bool {
	cmd := exec.Command("git", "diff", "--cached", "--quiet")
	cmd.Dir = repoPath
	// Exit status 1 means there are staged changes
	return cmd.Run() != nil
}
