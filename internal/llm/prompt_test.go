package llm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt("+added line\n", false)

	assert.True(t, strings.Contains(prompt, "+added line\n"))
	assert.True(t, strings.HasPrefix(prompt, promptTemplate))
	assert.False(t, strings.Contains(prompt, "truncated"))
}

func TestBuildPromptAddsFinalNewline(t *testing.T) {
	prompt := BuildPrompt("+no trailing newline", false)

	assert.True(t, strings.HasSuffix(prompt, "\n"))
}

func TestBuildPromptTruncationNotice(t *testing.T) {
	prompt := BuildPrompt("+x\n", true)

	assert.True(t, strings.HasSuffix(prompt, truncationNotice))
}
