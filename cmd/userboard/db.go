package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/userboard/internal/api"
	"github.com/jackzampolin/userboard/internal/config"
	"github.com/jackzampolin/userboard/internal/seed"
	"github.com/jackzampolin/userboard/internal/store"
)

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Manage the SQLite database",
	Long: `Manage the SQLite database directly, without a running server.

The database lives at database.path from the config file, or
~/.userboard/userboard.db by default.

Examples:
  userboard db migrate   # Create the database and apply migrations
  userboard db seed      # Load sample users into an empty database
  userboard db status    # Show schema version and row counts`,
}

// openStore opens the configured database and seeds default settings.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	h, err := getHome()
	if err != nil {
		return nil, err
	}
	cfgMgr, err := loadConfig(h)
	if err != nil {
		return nil, err
	}
	cfg := cfgMgr.Get()

	st, err := store.Open(cfg.DatabasePath(h.DatabasePath()))
	if err != nil {
		return nil, err
	}

	settings := config.NewStore(st.DB())
	if err := config.SeedEntries(cmd.Context(), settings, config.StartupEntries(cfg), nil); err != nil {
		st.Close()
		return nil, err
	}
	return st, nil
}

var dbMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the database and apply migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		v, err := st.SchemaVersion(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("Database %s at schema version %d\n", st.Path(), v)
		return nil
	},
}

var dbSeedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load sample users into an empty database",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		n, err := seed.Seed(cmd.Context(), st)
		if err != nil {
			return err
		}
		if n == 0 {
			fmt.Println("Database already has users, nothing seeded")
			return nil
		}
		fmt.Printf("Seeded %d users\n", n)
		return nil
	},
}

// DBStatus summarizes the database for `db status`.
type DBStatus struct {
	Path          string `json:"path" yaml:"path"`
	SchemaVersion int    `json:"schema_version" yaml:"schema_version"`
	Users         int    `json:"users" yaml:"users"`
	Settings      int    `json:"settings" yaml:"settings"`
}

var dbStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show schema version and row counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		status := DBStatus{Path: st.Path()}
		if status.SchemaVersion, err = st.SchemaVersion(ctx); err != nil {
			return err
		}
		if status.Users, err = st.CountUsers(ctx); err != nil {
			return err
		}
		settings, err := config.NewStore(st.DB()).GetAll(ctx)
		if err != nil {
			return err
		}
		status.Settings = len(settings)

		return api.Output(status)
	},
}

func init() {
	dbCmd.AddCommand(dbMigrateCmd)
	dbCmd.AddCommand(dbSeedCmd)
	dbCmd.AddCommand(dbStatusCmd)

	rootCmd.AddCommand(dbCmd)
}
