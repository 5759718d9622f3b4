package app

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/feelvm/neuronotes/internal/migrate"
	"github.com/feelvm/neuronotes/internal/schema"
	"github.com/feelvm/neuronotes/internal/store"
)

// SQLPlugin owns the shell's databases. On Init it validates each registered
// registry, opens each database file and applies pending migrations, so the
// stores are fully migrated before any later plugin can touch them.
type SQLPlugin struct {
	queries   *migrate.QueryDefinition
	databases []registration
	handles   map[string]*sql.DB
}

type registration struct {
	name       string
	path       string
	migrations []schema.Migration
}

func NewSQLPlugin() *SQLPlugin {
	return &SQLPlugin{
		queries: migrate.SQLite,
		handles: make(map[string]*sql.DB),
	}
}

// AddMigrations registers the database file at path under a logical name,
// with the registry to apply on startup. Names must be unique; two names
// must not point at one file.
func (p *SQLPlugin) AddMigrations(name, path string, migrations []schema.Migration) *SQLPlugin {
	p.databases = append(p.databases, registration{name: name, path: path, migrations: migrations})
	return p
}

func (p *SQLPlugin) Name() string { return "sql" }

func (p *SQLPlugin) Init(ctx context.Context) error {
	seenPaths := make(map[string]string, len(p.databases))
	for _, reg := range p.databases {
		if other, dup := seenPaths[reg.path]; dup {
			return fmt.Errorf("databases %s and %s share one file: %s", other, reg.name, reg.path)
		}
		seenPaths[reg.path] = reg.name

		if err := schema.Validate(reg.migrations); err != nil {
			return fmt.Errorf("registry for %s: %w", reg.name, err)
		}
	}

	for _, reg := range p.databases {
		db, err := store.Open(reg.path)
		if err != nil {
			_ = p.Close()
			return err
		}
		p.handles[reg.name] = db

		if err := migrate.New(db, p.queries, reg.name).Up(reg.migrations); err != nil {
			_ = p.Close()
			return err
		}
	}
	return nil
}

// DB returns the open handle for a logical database name.
func (p *SQLPlugin) DB(name string) (*sql.DB, bool) {
	db, ok := p.handles[name]
	return db, ok
}

func (p *SQLPlugin) Close() error {
	var firstErr error
	for i := len(p.databases) - 1; i >= 0; i-- {
		name := p.databases[i].name
		db, ok := p.handles[name]
		if !ok {
			continue
		}
		if err := db.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("close database %s: %w", name, err)
		}
		delete(p.handles, name)
	}
	return firstErr
}
