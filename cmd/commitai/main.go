package main

// Must be first import - fixes Warp terminal delay before lipgloss loads
import _ "github.com/yanjianzhang/CommitAIFlow/internal/termfix"

import (
	"fmt"
	"os"

	"github.com/yanjianzhang/CommitAIFlow/internal/app"
	"github.com/yanjianzhang/CommitAIFlow/internal/config"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags
var version = "dev"

var (
	dryRun    bool
	modelName string
	baseURL   string
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "commitai",
		Short:   "TUI that writes commit messages from your staged diff with a local model",
		Version: version,
		RunE:    run,
	}

	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Simulate generation and commits without touching anything")
	rootCmd.Flags().StringVar(&modelName, "model", "", "Override the configured model name")
	rootCmd.Flags().StringVar(&baseURL, "base-url", "", "Override the configured model server URL")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if modelName != "" {
		cfg.LLM.Model = modelName
	}
	if baseURL != "" {
		cfg.LLM.BaseURL = baseURL
	}

	model := app.New(cfg, dryRun, version)
	p := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}

	return nil
}
