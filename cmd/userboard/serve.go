package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/userboard/internal/config"
	"github.com/jackzampolin/userboard/internal/server"
)

var (
	serveHost string
	servePort string
	serveSeed bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Userboard server",
	Long: `Start the Userboard HTTP server.

The server opens the SQLite database (creating and migrating it if needed)
and closes it again on shutdown (Ctrl+C or SIGTERM).

The server provides:
  - /        - Users page with the dotted paginator
  - /users   - Users API
  - /posts   - Posts API
  - /swagger - API documentation

Examples:
  userboard serve                    # Start on the configured address
  userboard serve --port 3000        # Start on custom port
  userboard serve --host 0.0.0.0     # Bind to all interfaces
  userboard serve --seed             # Load sample users into an empty database`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		h, err := getHome()
		if err != nil {
			return err
		}

		cfgMgr, err := loadConfig(h)
		if err != nil {
			return err
		}
		cfg := cfgMgr.Get()

		// Set up logger; the level follows log_level on config reload
		var level slog.LevelVar
		level.Set(config.ParseLogLevel(cfg.LogLevel))
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: &level,
		}))
		slog.SetDefault(logger)

		if cfgMgr.ConfigFile() != "" {
			logger.Info("using config file", "path", cfgMgr.ConfigFile())
			cfgMgr.WatchConfig()
		}

		host := cfg.Server.Host
		if cmd.Flags().Changed("host") {
			host = serveHost
		}
		port := cfg.Server.Port
		if cmd.Flags().Changed("port") {
			port = servePort
		}

		srv, err := server.New(server.Config{
			Host:          host,
			Port:          port,
			DatabasePath:  cfg.DatabasePath(h.DatabasePath()),
			CORSOrigin:    cfg.Server.CORSOrigin,
			Seed:          serveSeed,
			Home:          h,
			ConfigManager: cfgMgr,
			Logger:        logger,
			LogLevel:      &level,
		})
		if err != nil {
			return err
		}

		// Start server (blocks until shutdown)
		return srv.Start(ctx)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "127.0.0.1", "Host to bind to (overrides server.host)")
	serveCmd.Flags().StringVar(&servePort, "port", "8080", "Port to listen on (overrides server.port)")
	serveCmd.Flags().BoolVar(&serveSeed, "seed", false, "Load sample users when the database is empty")

	rootCmd.AddCommand(serveCmd)
}
