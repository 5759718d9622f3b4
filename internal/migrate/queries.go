package migrate

// QueryDefinition describes the marker-table queries used by the runner for
// one SQL dialect. These can be overridden if you want to use a different
// engine or table name.
type QueryDefinition struct {
	CheckTableExists       string // Expect booly result
	CreateMigrationsTable  string
	InsertMigration        string
	DeleteMigration        string
	SelectInstalledVersion string
}

// SQLite is the dialect the shell binds for its database files.
var SQLite = &QueryDefinition{
	CheckTableExists:       "SELECT EXISTS (SELECT name FROM sqlite_master WHERE type='table' AND name='migrations')",
	CreateMigrationsTable:  "CREATE TABLE migrations (version INT NOT NULL, installed_at TIMESTAMP NOT NULL)",
	InsertMigration:        "INSERT INTO migrations (version, installed_at) VALUES (?, ?)",
	DeleteMigration:        "DELETE FROM migrations WHERE version = ?",
	SelectInstalledVersion: "SELECT version FROM migrations ORDER BY version DESC LIMIT 1",
}

var PostgreSQL = &QueryDefinition{
	CheckTableExists:       "SELECT EXISTS (SELECT FROM information_schema.tables WHERE table_name = 'migrations')",
	CreateMigrationsTable:  "CREATE TABLE migrations (version INT NOT NULL, installed_at TIMESTAMP NOT NULL)",
	InsertMigration:        "INSERT INTO migrations (version, installed_at) VALUES ($1, $2)",
	DeleteMigration:        "DELETE FROM migrations WHERE version = $1",
	SelectInstalledVersion: "SELECT version FROM migrations ORDER BY version DESC LIMIT 1",
}

var MySQL = &QueryDefinition{
	CheckTableExists:       "SELECT EXISTS (SELECT * FROM information_schema.tables WHERE table_schema = DATABASE() AND table_name = 'migrations')",
	CreateMigrationsTable:  "CREATE TABLE migrations (version INT NOT NULL, installed_at TIMESTAMP NOT NULL)",
	InsertMigration:        "INSERT INTO migrations (version, installed_at) VALUES (?, ?)",
	DeleteMigration:        "DELETE FROM migrations WHERE version = ?",
	SelectInstalledVersion: "SELECT version FROM migrations ORDER BY version DESC LIMIT 1",
}

var SQLServer = &QueryDefinition{
	CheckTableExists:       "SELECT CASE WHEN EXISTS (SELECT * FROM INFORMATION_SCHEMA.TABLES WHERE TABLE_NAME = 'migrations') THEN 1 ELSE 0 END",
	CreateMigrationsTable:  "CREATE TABLE migrations (version INT NOT NULL, installed_at DATETIME NOT NULL)",
	InsertMigration:        "INSERT INTO migrations (version, installed_at) VALUES (@p1, @p2)",
	DeleteMigration:        "DELETE FROM migrations WHERE version = @p1",
	SelectInstalledVersion: "SELECT TOP 1 version FROM migrations ORDER BY version DESC",
}
