package shared

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// MemoryDatabase is the path that opens a private in-memory SQLite database.
const MemoryDatabase = ":memory:"

// NewDatabase opens a connection to a SQLite database at the specified path.
// The path can be ":memory:" for an in-memory database.
// Returns an open database connection or an error if connection fails.
func NewDatabase(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// every new connection to :memory: is a fresh, empty database
	if path == MemoryDatabase {
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: failed to ping database: %v", ErrStorageUnavailable, err)
	}

	return db, nil
}

// ConfigureDatabase sets connection pool settings for the database.
func ConfigureDatabase(db *sql.DB, maxOpenConns, maxIdleConns int) {
	if maxOpenConns > 0 {
		db.SetMaxOpenConns(maxOpenConns)
	}
	if maxIdleConns > 0 {
		db.SetMaxIdleConns(maxIdleConns)
	}
}

// OpenDatabase opens the configured database, applies pool settings and runs pending migrations.
func OpenDatabase(cfg DatabaseConfig) (*sql.DB, error) {
	db, err := NewDatabase(cfg.Path)
	if err != nil {
		return nil, err
	}

	if cfg.Path != MemoryDatabase {
		ConfigureDatabase(db, cfg.MaxOpenConns, cfg.MaxIdleConns)
	}

	if err := RunMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, nil
}
