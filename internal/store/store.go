// Package store opens the shell's SQLite database files.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

const (
	// DefaultProductionFile is the production database file name.
	DefaultProductionFile = "neuronotes.db"
	// DefaultDevFile is the development database file name.
	DefaultDevFile = "neuronotes_dev.db"
)

// Paths resolves the physical locations of the two logical databases. The
// production and development names carry independent applied-version markers
// and must never be conflated into one file.
type Paths struct {
	DataDir        string
	ProductionFile string
	DevFile        string
}

// DefaultPaths returns the standard layout under dataDir.
func DefaultPaths(dataDir string) Paths {
	return Paths{
		DataDir:        dataDir,
		ProductionFile: DefaultProductionFile,
		DevFile:        DefaultDevFile,
	}
}

// Production returns the full path of the production database file.
func (p Paths) Production() string {
	return filepath.Join(p.DataDir, p.ProductionFile)
}

// Dev returns the full path of the development database file.
func (p Paths) Dev() string {
	return filepath.Join(p.DataDir, p.DevFile)
}

// Validate rejects layouts where the two logical databases would share a
// single physical file.
func (p Paths) Validate() error {
	if p.DataDir == "" {
		return fmt.Errorf("data directory is not set")
	}
	if p.ProductionFile == "" || p.DevFile == "" {
		return fmt.Errorf("database file names are not set")
	}
	if filepath.Clean(p.Production()) == filepath.Clean(p.Dev()) {
		return fmt.Errorf("production and development databases resolve to the same file: %s", p.Production())
	}
	return nil
}

// Open opens (creating if needed) the SQLite database at path and applies the
// startup pragmas. The parent directory is created on first run.
func Open(path string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("set pragma %q on %s: %w", pragma, path, err)
		}
	}
	return db, nil
}
