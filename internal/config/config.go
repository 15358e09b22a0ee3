package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

type Config struct {
	LLM    LLMConfig    `toml:"llm"`
	Diff   DiffConfig   `toml:"diff"`
	Commit CommitConfig `toml:"commit"`
	Update UpdateConfig `toml:"update"`
}

type LLMConfig struct {
	BaseURL        string `toml:"base_url"`
	Model          string `toml:"model"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

type DiffConfig struct {
	// MaxChars truncates the loaded diff at a line boundary (0 = no
	// limit). Both the viewer and the prompt see the truncated text.
	MaxChars        int  `toml:"max_chars"`
	ShowLineNumbers bool `toml:"show_line_numbers"`
	CollapseContext bool `toml:"collapse_context"`
}

type CommitConfig struct {
	// FallbackMessage is used when nothing usable comes back from the model
	FallbackMessage string `toml:"fallback_message"`
}

type UpdateConfig struct {
	Enabled        bool      `toml:"enabled"`
	LastCheck      time.Time `toml:"last_check"`
	SkippedVersion string    `toml:"skipped_version"`
	Repo           string    `toml:"repo"`
}

func DefaultConfig() *Config {
	return &Config{
		LLM: LLMConfig{
			BaseURL:        "http://localhost:11434",
			Model:          "qwen2.5-coder",
			TimeoutSeconds: 120,
		},
		Diff: DiffConfig{
			MaxChars:        24000,
			ShowLineNumbers: true,
			CollapseContext: true,
		},
		Commit: CommitConfig{
			FallbackMessage: "",
		},
		Update: UpdateConfig{
			Enabled: true,
			Repo:    "yanjianzhang/CommitAIFlow",
		},
	}
}

// Path returns the config file location
func Path() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "commitai.toml"), nil
}

func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := DefaultConfig()
			_ = cfg.Save() // Best effort save
			return cfg, nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Save() error {
	path, err := Path()
	if err != nil {
		return err
	}

	// Ensure config directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Timeout returns the LLM request timeout as a duration
func (c *Config) Timeout() time.Duration {
	if c.LLM.TimeoutSeconds <= 0 {
		return 120 * time.Second
	}
	return time.Duration(c.LLM.TimeoutSeconds) * time.Second
}

// ShouldCheckForUpdate returns true if update check is enabled and 24h since last check
func (c *Config) ShouldCheckForUpdate() bool {
	if !c.Update.Enabled {
		return false
	}
	return time.Since(c.Update.LastCheck) > 24*time.Hour
}

// RecordUpdateCheck updates the last check time
func (c *Config) RecordUpdateCheck() {
	c.Update.LastCheck = time.Now()
}

func expandTilde(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// ExpandPath resolves a user-supplied path, expanding a leading ~/
func ExpandPath(path string) string {
	return expandTilde(path)
}
