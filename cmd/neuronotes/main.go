package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/feelvm/neuronotes/internal/app"
	"github.com/feelvm/neuronotes/internal/config"
	"github.com/feelvm/neuronotes/internal/migrate"
	"github.com/feelvm/neuronotes/internal/schema"
	"github.com/feelvm/neuronotes/internal/store"
)

var targetDB string

func main() {
	rootCmd := &cobra.Command{
		Use:   "neuronotes",
		Short: "NeuroNotes desktop shell",
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Start the shell",
		RunE:  runShell,
	}

	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration commands",
	}
	migrateCmd.PersistentFlags().StringVar(&targetDB, "db", "prod", "target database (prod or dev)")

	migrateUpCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply all new database migrations",
		RunE:  runMigrateUp,
	}
	migrateDownCmd := &cobra.Command{
		Use:   "down",
		Short: "Rollback a single database migration",
		RunE:  runMigrateDown,
	}
	migrateStatusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show installed and available migration versions",
		RunE:  runMigrateStatus,
	}

	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd, migrateStatusCmd)
	rootCmd.AddCommand(runCmd, migrateCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// runShell composes the plugins in their fixed order and blocks until the
// process is interrupted. Any startup failure is fatal: the shell either
// comes up fully configured or not at all.
func runShell(cmd *cobra.Command, args []string) error {
	cfg, paths, err := loadConfig()
	if err != nil {
		return err
	}

	builder := app.NewBuilder().
		Plugin(app.NewSQLPlugin().
			AddMigrations("neuronotes", paths.Production(), schema.Registry()).
			AddMigrations("neuronotes_dev", paths.Dev(), schema.Registry())).
		Plugin(app.NewShellPlugin("xdg-open", "open")).
		Plugin(app.NewFSPlugin(cfg.DataDir)).
		Plugin(app.NewLogPlugin(cfg.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := builder.Run(ctx); err != nil {
		log.Fatalf("error while running neuronotes shell: %v", err)
	}
	return nil
}

func runMigrateUp(cmd *cobra.Command, args []string) error {
	db, runner, err := openTarget()
	if err != nil {
		return err
	}
	defer db.Close()
	return runner.Up(schema.Registry())
}

func runMigrateDown(cmd *cobra.Command, args []string) error {
	db, runner, err := openTarget()
	if err != nil {
		return err
	}
	defer db.Close()

	err = runner.Down(schema.Registry())
	if errors.Is(err, migrate.ErrNothingToRevert) || errors.Is(err, migrate.ErrIrreversible) {
		log.Warnf("Nothing reverted: %v", err)
		return nil
	}
	return err
}

func runMigrateStatus(cmd *cobra.Command, args []string) error {
	db, runner, err := openTarget()
	if err != nil {
		return err
	}
	defer db.Close()

	state, err := runner.State(schema.Registry())
	if err != nil {
		return err
	}
	fmt.Printf("installed: %d\navailable: %d\npending:   %d\n",
		state.InstalledVersion, state.AvailableVersion, len(state.Pending))
	return nil
}

func loadConfig() (config.Config, store.Paths, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, store.Paths{}, err
	}
	paths := store.Paths{
		DataDir:        cfg.DataDir,
		ProductionFile: cfg.ProductionFile,
		DevFile:        cfg.DevFile,
	}
	if err := paths.Validate(); err != nil {
		return config.Config{}, store.Paths{}, err
	}
	return cfg, paths, nil
}

// openTarget opens the database selected by --db with a SQLite runner.
func openTarget() (*sql.DB, *migrate.Runner, error) {
	_, paths, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}

	var name, path string
	switch targetDB {
	case "prod":
		name, path = "neuronotes", paths.Production()
	case "dev":
		name, path = "neuronotes_dev", paths.Dev()
	default:
		return nil, nil, fmt.Errorf("unknown database %q (want prod or dev)", targetDB)
	}

	db, err := store.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return db, migrate.New(db, migrate.SQLite, name), nil
}
