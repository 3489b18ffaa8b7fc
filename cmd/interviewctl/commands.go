package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/onskyline/science-interview/internal/adapters/docstore"
	"github.com/onskyline/science-interview/internal/config"
	"github.com/onskyline/science-interview/internal/database"
	"github.com/onskyline/science-interview/internal/logging"
	"github.com/onskyline/science-interview/internal/services"
)

type rootOptions struct {
	storeType  string
	sqlitePath string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:           "interviewctl",
		Short:         "Administration commands for the interview API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := "warn"
			if opts.verbose {
				level = "debug"
			}
			logging.Setup(level, "text")
			logrus.SetOutput(cmd.ErrOrStderr())
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.storeType, "store", "", "Document store type (overrides STORE_TYPE)")
	rootCmd.PersistentFlags().StringVar(&opts.sqlitePath, "sqlite-path", "", "SQLite database path (overrides STORE_SQLITE_PATH)")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable verbose logging")

	rootCmd.AddCommand(newPasswordCmd(opts), newMigrateCmd(opts))
	return rootCmd
}

// loadConfig reads the environment and applies command line overrides
func (o *rootOptions) loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if o.storeType != "" {
		cfg.Store.Type = o.storeType
	}
	if o.sqlitePath != "" {
		cfg.Store.SQLitePath = o.sqlitePath
	}
	return cfg, nil
}

func (o *rootOptions) openAuthService(ctx context.Context) (services.AuthService, func(), error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, nil, err
	}

	store, err := docstore.NewFactory(false).Create(ctx, cfg.Store)
	if err != nil {
		return nil, nil, err
	}

	return services.NewAuthService(store), func() { _ = store.Close() }, nil
}

func newPasswordCmd(opts *rootOptions) *cobra.Command {
	passwordCmd := &cobra.Command{
		Use:   "password",
		Short: "Manage the shared login password",
	}

	setCmd := &cobra.Command{
		Use:   "set <value>",
		Short: "Store the login password",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			auth, closeStore, err := opts.openAuthService(cmd.Context())
			if err != nil {
				return err
			}
			defer closeStore()

			if err := auth.SetPassword(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Password updated")
			return nil
		},
	}

	checkCmd := &cobra.Command{
		Use:   "check <value>",
		Short: "Check a password the same way the login request does",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			auth, closeStore, err := opts.openAuthService(cmd.Context())
			if err != nil {
				return err
			}
			defer closeStore()

			result, err := auth.Login(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if result.Success {
				fmt.Fprintln(cmd.OutOrStdout(), "Password accepted")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Password rejected: %s\n", result.Message)
			return nil
		},
	}

	passwordCmd.AddCommand(setCmd, checkCmd)
	return passwordCmd
}

func newMigrateCmd(opts *rootOptions) *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the sqlite store schema",
	}

	manager := func() (*database.MigrationManager, error) {
		cfg, err := opts.loadConfig()
		if err != nil {
			return nil, err
		}
		dbPath, err := filepath.Abs(cfg.Store.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("failed to get absolute database path: %w", err)
		}
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		return database.NewMigrationManager(dbPath, logrus.StandardLogger()), nil
	}

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := manager()
			if err != nil {
				return err
			}
			if err := m.RunMigrations(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Migrations applied")
			return nil
		},
	}

	downCmd := &cobra.Command{
		Use:   "down",
		Short: "Roll back the latest migration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := manager()
			if err != nil {
				return err
			}
			if err := m.RollbackMigration(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Migration rolled back")
			return nil
		},
	}

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show the current schema version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := manager()
			if err != nil {
				return err
			}
			status, err := m.GetMigrationStatus()
			if err != nil {
				return fmt.Errorf("failed to get migration status: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Migration Status:\n")
			fmt.Fprintf(out, "  Version: %d\n", status.Version)
			fmt.Fprintf(out, "  Applied: %t\n", status.Applied)
			fmt.Fprintf(out, "  Dirty: %t\n", status.Dirty)
			return nil
		},
	}

	migrateCmd.AddCommand(upCmd, downCmd, statusCmd)
	return migrateCmd
}
