// Package schema defines the versioned revisions of the NeuroNotes store.
//
// The registry is append-only: once a version ships, its script is frozen.
// Deployed databases already record these scripts against their applied
// version markers, so corrections go into a later version performing
// corrective DDL, never into an existing one.
package schema

import (
	"fmt"
	"strings"
)

// Migration is a single forward-only schema revision.
type Migration struct {
	Version     int
	Description string
	Script      string
	// DownScript reverts the revision. Empty for every shipped revision;
	// the runner treats such revisions as irreversible.
	DownScript string
}

// Registry returns the ordered revision list for the note store, sorted by
// ascending version. It is pure data: repeated calls yield an identical
// sequence and no I/O happens here. Applying the scripts is the runner's job.
func Registry() []Migration {
	return []Migration{
		{
			Version:     1,
			Description: "create_initial_tables",
			Script: `
CREATE TABLE IF NOT EXISTS workspaces (id TEXT PRIMARY KEY, name TEXT NOT NULL, "order" INTEGER NOT NULL DEFAULT 0);
CREATE TABLE IF NOT EXISTS folders (id TEXT PRIMARY KEY, name TEXT NOT NULL, workspace_id TEXT NOT NULL, "order" INTEGER NOT NULL DEFAULT 0);
CREATE TABLE IF NOT EXISTS notes (id TEXT PRIMARY KEY, title TEXT NOT NULL, content_html TEXT, updated_at INTEGER NOT NULL, workspace_id TEXT NOT NULL, folder_id TEXT, "order" INTEGER NOT NULL DEFAULT 0, type TEXT NOT NULL DEFAULT 'text', spreadsheet TEXT);
CREATE TABLE IF NOT EXISTS calendarEvents (id TEXT PRIMARY KEY, date TEXT NOT NULL, title TEXT NOT NULL, time TEXT, workspace_id TEXT NOT NULL);
CREATE TABLE IF NOT EXISTS kanban (workspace_id TEXT PRIMARY KEY, columns TEXT NOT NULL);
CREATE TABLE IF NOT EXISTS settings (key TEXT PRIMARY KEY, value TEXT);
`,
		},
		{
			Version:     2,
			Description: "add_calendar_repeat_fields",
			Script: `
ALTER TABLE calendarEvents ADD COLUMN repeat TEXT;
ALTER TABLE calendarEvents ADD COLUMN repeat_on TEXT;
ALTER TABLE calendarEvents ADD COLUMN repeat_end TEXT;
ALTER TABLE calendarEvents ADD COLUMN exceptions TEXT;
`,
		},
		{
			Version:     3,
			Description: "add_calendar_event_color",
			Script: `
ALTER TABLE calendarEvents ADD COLUMN color TEXT;
`,
		},
	}
}

// Validate checks the ordering rules a registry must satisfy before any of
// its scripts may be applied: versions positive, strictly increasing, unique,
// and every revision carrying a non-empty script.
func Validate(migrations []Migration) error {
	seen := make(map[int]struct{}, len(migrations))
	prev := 0
	for _, m := range migrations {
		if m.Version <= 0 {
			return fmt.Errorf("migration %q: version %d is not positive", m.Description, m.Version)
		}
		if _, exists := seen[m.Version]; exists {
			return fmt.Errorf("duplicate migration version: %d", m.Version)
		}
		seen[m.Version] = struct{}{}
		if m.Version <= prev {
			return fmt.Errorf("migration versions out of order: %d after %d", m.Version, prev)
		}
		prev = m.Version
		if strings.TrimSpace(m.Script) == "" {
			return fmt.Errorf("migration %d has an empty script", m.Version)
		}
	}
	return nil
}
