// Package commands wires the CLI surface onto the pipeline's public
// operations.
package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/uptrace/bun"
	"k8s.io/klog"

	"github.com/ledgerfeed/ledgerfeed/internal/importer"
	"github.com/ledgerfeed/ledgerfeed/internal/influxreporter"
	"github.com/ledgerfeed/ledgerfeed/internal/profile"
	"github.com/ledgerfeed/ledgerfeed/internal/storage"
	"github.com/ledgerfeed/ledgerfeed/pkg/config"
)

// Execute runs the root command.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

// NewRootCommand creates the root CLI command with all subcommands
// registered.
func NewRootCommand() *cobra.Command {
	flags := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:   "ledgerfeed",
		Short: "Import bank transaction exports into one ledger",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&flags.configFile, "config", "./config.yml", "configuration file")
	rootCmd.PersistentFlags().StringVar(&flags.secretsFile, "secrets", "./secrets.json", "secrets file")

	rootCmd.AddCommand(
		newImportCommand(flags),
		newWatchCommand(flags),
		newExportCommand(flags),
		newAccountsCommand(flags),
		newHistoryCommand(flags),
		newSetCategoryCommand(flags),
		newClearCommand(flags),
	)

	return rootCmd
}

type rootFlags struct {
	configFile  string
	secretsFile string
}

// app holds everything a command needs after configuration and storage are
// up.
type app struct {
	cfg     *config.Config
	secrets *config.Secrets
	db      *bun.DB
	store   *storage.Store
}

func setup(ctx context.Context, flags *rootFlags) (*app, error) {
	cfg, secrets, err := config.Load(flags.configFile, flags.secretsFile)
	if err != nil {
		return nil, fmt.Errorf("reading configuration: %w", err)
	}

	db, err := storage.NewDB(cfg.Database, secrets)
	if err != nil {
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}

	store := storage.New(db)
	if err := store.Init(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}

	return &app{cfg: cfg, secrets: secrets, db: db, store: store}, nil
}

func (a *app) Close() {
	if err := a.db.Close(); err != nil {
		klog.Errorf("Failed to close database: %v", err)
	}
}

// newImporter assembles the pipeline. Profiles from configuration are tried
// before the built-in ones; the influx reporter is attached only when
// configured.
func (a *app) newImporter() (*importer.Importer, error) {
	var reporter importer.Reporter
	if a.cfg.InfluxDatabase != "" && a.secrets.Influx.InfluxEndpoint != "" {
		r, err := influxreporter.New(a.secrets.Influx, a.cfg.InfluxDatabase)
		if err != nil {
			return nil, fmt.Errorf("connecting to influx: %w", err)
		}
		reporter = r
	}

	return importer.New(a.store, archiverFor(a.cfg), importer.Options{
		Profiles:    append(a.cfg.Profiles, profile.Defaults()...),
		Concurrency: a.cfg.Concurrency,
		Timeout:     a.cfg.ImportTimeout(),
		Reporter:    reporter,
	}), nil
}
