// Package migrate applies a schema registry to a database file.
//
// Each pending revision runs in its own transaction together with the insert
// of its applied-version marker row, so a failed script leaves neither schema
// change nor marker behind. The marker table records the highest version
// applied per database; two databases tracked against the same registry keep
// fully independent markers.
package migrate

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/feelvm/neuronotes/internal/schema"
)

var (
	// ErrNothingToRevert is returned by Down on a database with no applied revisions.
	ErrNothingToRevert = errors.New("no migrations to revert")
	// ErrIrreversible is returned by Down when the installed revision defines no down script.
	ErrIrreversible = errors.New("migration defines no down script")
)

// State describes a database relative to a registry.
type State struct {
	AvailableVersion int
	InstalledVersion int
	Pending          []schema.Migration
}

// Runner sequences and applies pending revisions on one database.
type Runner struct {
	db      *sql.DB
	queries *QueryDefinition
	name    string
}

// New returns a Runner for the named database. The name is only used in logs.
func New(db *sql.DB, queries *QueryDefinition, name string) *Runner {
	return &Runner{db: db, queries: queries, name: name}
}

// Up applies every revision whose version exceeds the installed marker, in
// ascending order. It is a no-op when the database is already current and
// fails when the marker is ahead of the registry (a database written by a
// newer build).
func (r *Runner) Up(migrations []schema.Migration) error {
	state, err := r.State(migrations)
	if err != nil {
		return err
	}

	if state.InstalledVersion == state.AvailableVersion {
		r.log().Infof("Already up to date at version %d.", state.InstalledVersion)
		return nil
	}
	if state.InstalledVersion > state.AvailableVersion {
		return fmt.Errorf(
			"installed migration version (%d) is higher than highest available migration (%d)",
			state.InstalledVersion, state.AvailableVersion)
	}

	r.log().Infof("Migrating from %d to %d...", state.InstalledVersion, state.AvailableVersion)
	for _, m := range state.Pending {
		if err := r.apply(m); err != nil {
			return err
		}
	}
	r.log().Info("Migration complete.")
	return nil
}

// Down reverts the single most recent applied revision using its down script.
func (r *Runner) Down(migrations []schema.Migration) error {
	state, err := r.State(migrations)
	if err != nil {
		return err
	}
	if state.InstalledVersion == 0 {
		return ErrNothingToRevert
	}

	var installed *schema.Migration
	for i := range migrations {
		if migrations[i].Version == state.InstalledVersion {
			installed = &migrations[i]
			break
		}
	}
	if installed == nil {
		return fmt.Errorf("installed migration %d not found in registry", state.InstalledVersion)
	}
	if installed.DownScript == "" {
		return fmt.Errorf("migration %d: %w", installed.Version, ErrIrreversible)
	}

	r.log().Infof("Reverting migration %d...", installed.Version)

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin revert of migration %d: %w", installed.Version, err)
	}
	if _, err := tx.Exec(installed.DownScript); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("revert migration %d: %w", installed.Version, err)
	}
	if _, err := tx.Exec(r.queries.DeleteMigration, installed.Version); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("remove marker for migration %d: %w", installed.Version, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit revert of migration %d: %w", installed.Version, err)
	}
	return nil
}

// State reads the applied-version marker and reports it next to the highest
// registry version and the pending revisions.
func (r *Runner) State(migrations []schema.Migration) (State, error) {
	installed, err := r.installedVersion()
	if err != nil {
		return State{}, err
	}

	state := State{InstalledVersion: installed}
	if len(migrations) > 0 {
		state.AvailableVersion = migrations[len(migrations)-1].Version
	}
	for _, m := range migrations {
		if m.Version > installed {
			state.Pending = append(state.Pending, m)
		}
	}
	return state, nil
}

// apply runs one revision script and its marker insert in a single transaction.
func (r *Runner) apply(m schema.Migration) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin migration %d: %w", m.Version, err)
	}

	r.log().Infof("Applying migration %d...", m.Version)
	if _, err := tx.Exec(m.Script); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("apply migration %d (%s): %w", m.Version, m.Description, err)
	}
	if _, err := tx.Exec(r.queries.InsertMigration, m.Version, time.Now()); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("record migration %d: %w", m.Version, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit migration %d: %w", m.Version, err)
	}
	return nil
}

// installedVersion ensures the marker table exists and returns the highest
// recorded version, or 0 when nothing has been applied yet.
func (r *Runner) installedVersion() (int, error) {
	if err := r.ensureMarkerTable(); err != nil {
		return 0, err
	}

	var version int
	err := r.db.QueryRow(r.queries.SelectInstalledVersion).Scan(&version)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read installed migration version: %w", err)
	}
	return version, nil
}

func (r *Runner) ensureMarkerTable() error {
	var exists bool
	if err := r.db.QueryRow(r.queries.CheckTableExists).Scan(&exists); err != nil {
		return fmt.Errorf("check migrations table: %w", err)
	}
	if exists {
		return nil
	}
	if _, err := r.db.Exec(r.queries.CreateMigrationsTable); err != nil {
		return fmt.Errorf("create migrations table: %w", err)
	}
	return nil
}

func (r *Runner) log() *log.Entry {
	return log.WithField("db", r.name)
}
