package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/userboard/internal/api"
	"github.com/jackzampolin/userboard/internal/config"
	"github.com/jackzampolin/userboard/internal/home"
	"github.com/jackzampolin/userboard/version"
)

var (
	cfgFile      string
	homeDir      string
	outputFormat string
)

var rootCmd = &cobra.Command{
	Use:   "userboard",
	Short: "User directory with paginated listings and per-user posts",
	Long: `Userboard serves a directory of users and their posts.

It provides:
  - A REST API for users, posts and runtime settings
  - A server-rendered users page with a dotted paginator
  - CLI commands that call the running server`,
	Version:      version.GitRelease,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.userboard/config.yaml)",
	)
	rootCmd.PersistentFlags().StringVar(
		&homeDir, "home", "", "userboard home directory (default: ~/.userboard)",
	)
	rootCmd.PersistentFlags().StringVarP(
		&outputFormat, "output", "o", "yaml", "output format: yaml, json or text",
	)

	// Set output format before any command runs
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		api.SetOutputFormat(outputFormat)
	}

	rootCmd.AddCommand(versionCmd)
}

// getHome resolves and creates the home directory.
func getHome() (*home.Dir, error) {
	h, err := home.New(homeDir)
	if err != nil {
		return nil, err
	}
	if err := h.EnsureExists(); err != nil {
		return nil, fmt.Errorf("failed to create home directory: %w", err)
	}
	return h, nil
}

// loadConfig reads the config file given by --config, falling back to the
// one in the home directory when --home points somewhere explicit.
func loadConfig(h *home.Dir) (*config.Manager, error) {
	path := cfgFile
	if path == "" && homeDir != "" && h.ConfigExists() {
		path = h.ConfigPath()
	}
	return config.NewManager(path)
}
