package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/userboard/internal/api"
	"github.com/jackzampolin/userboard/internal/server/endpoints"
)

var serverURL string

// getServerURL returns the server URL at runtime (after flag parsing).
func getServerURL() string {
	return serverURL
}

var apiCmd = endpoints.Registry().BuildCommands(getServerURL)

var (
	waitTimeout  time.Duration
	waitInterval time.Duration
)

var waitCmd = &cobra.Command{
	Use:   "wait",
	Short: "Block until the server reports ready",
	Long: `Poll /ready until the server and its database are up.

Useful in scripts that start the server in the background:
  userboard serve & userboard api wait --timeout 30s`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client := api.NewClient(getServerURL())
		if err := client.WaitReady(cmd.Context(), waitTimeout, waitInterval); err != nil {
			return fmt.Errorf("server not ready: %w", err)
		}
		fmt.Println("Server is ready")
		return nil
	},
}

func init() {
	// Add --server flag to api command (persistent so all subcommands inherit it)
	apiCmd.PersistentFlags().StringVar(
		&serverURL, "server", "http://localhost:8080", "Server URL",
	)

	waitCmd.Flags().DurationVar(&waitTimeout, "timeout", 30*time.Second, "How long to keep trying")
	waitCmd.Flags().DurationVar(&waitInterval, "interval", 500*time.Millisecond, "Delay between attempts")
	apiCmd.AddCommand(waitCmd)

	rootCmd.AddCommand(apiCmd)
}
