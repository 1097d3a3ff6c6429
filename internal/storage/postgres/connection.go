package postgres

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

// NewConnection opens a database/sql connection for the migrator. The API
// server uses pgxpool; this path only needs plain statement execution.
func NewConnection(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)

	return db, nil
}
