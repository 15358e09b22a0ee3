package config

import (
	"testing"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "http://localhost:11434", cfg.LLM.BaseURL)
	assert.Equal(t, "qwen2.5-coder", cfg.LLM.Model)
	assert.Equal(t, 120, cfg.LLM.TimeoutSeconds)
	assert.Equal(t, 24000, cfg.Diff.MaxChars)
	assert.True(t, cfg.Diff.ShowLineNumbers)
	assert.True(t, cfg.Diff.CollapseContext)
	assert.Empty(t, cfg.Commit.FallbackMessage)
	assert.True(t, cfg.Update.Enabled)
}

func TestTimeout(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 120*time.Second, cfg.Timeout())

	cfg.LLM.TimeoutSeconds = 30
	assert.Equal(t, 30*time.Second, cfg.Timeout())

	cfg.LLM.TimeoutSeconds = 0
	assert.Equal(t, 120*time.Second, cfg.Timeout())

	cfg.LLM.TimeoutSeconds = -5
	assert.Equal(t, 120*time.Second, cfg.Timeout())
}

func TestUnmarshalOverridesDefaults(t *testing.T) {
	data := []byte(`
[llm]
model = "llama3.2"

[diff]
collapse_context = false
`)

	cfg := DefaultConfig()
	require.NoError(t, toml.Unmarshal(data, cfg))

	assert.Equal(t, "llama3.2", cfg.LLM.Model)
	assert.False(t, cfg.Diff.CollapseContext)
	// Untouched sections keep defaults
	assert.Equal(t, "http://localhost:11434", cfg.LLM.BaseURL)
	assert.Equal(t, 24000, cfg.Diff.MaxChars)
}

func TestShouldCheckForUpdate(t *testing.T) {
	cfg := DefaultConfig()
	assert.True(t, cfg.ShouldCheckForUpdate())

	cfg.RecordUpdateCheck()
	assert.False(t, cfg.ShouldCheckForUpdate())

	cfg.Update.LastCheck = time.Now().Add(-25 * time.Hour)
	assert.True(t, cfg.ShouldCheckForUpdate())

	cfg.Update.Enabled = false
	assert.False(t, cfg.ShouldCheckForUpdate())
}

func TestExpandPath(t *testing.T) {
	t.Setenv("HOME", "/home/alice")

	assert.Equal(t, "/home/alice/x.diff", ExpandPath("~/x.diff"))
	assert.Equal(t, "/tmp/x.diff", ExpandPath("/tmp/x.diff"))
	assert.Equal(t, "rel/x.diff", ExpandPath("rel/x.diff"))
	assert.Equal(t, "~notuser/x", ExpandPath("~notuser/x"))
}
