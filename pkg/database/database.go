package database

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

var DB *sql.DB

// Init opens the SQLite release-history database at the given path, creating
// it and its schema when missing
func Init(path string) error {
	var err error

	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_synchronous=NORMAL&_foreign_keys=ON&_busy_timeout=30000", path)
	DB, err = sql.Open("sqlite3", dsn)
	if err != nil {
		return err
	}

	DB.SetMaxOpenConns(25)
	DB.SetMaxIdleConns(10)
	DB.SetConnMaxLifetime(time.Hour)

	if err = DB.Ping(); err != nil {
		return err
	}

	return createTables()
}

// Close closes the database connection
func Close() error {
	if DB == nil {
		return nil
	}
	return DB.Close()
}

func createTables() error {
	query := `
		CREATE TABLE IF NOT EXISTS releases (
			id TEXT PRIMARY KEY,
			repository TEXT NOT NULL,
			tag_name TEXT NOT NULL,
			previous_tag TEXT NOT NULL,
			body TEXT NOT NULL,
			commit_count INTEGER NOT NULL,
			contributor_count INTEGER NOT NULL,
			records TEXT NOT NULL DEFAULT 'null',
			created_at DATETIME NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_releases_repository ON releases(repository);
	`
	_, err := DB.Exec(query)
	return err
}
