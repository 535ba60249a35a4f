package postgres

import (
	"context"
	_ "embed"
	"fmt"
	"log"
)

//go:embed schema.sql
var schemaSQL string

// RunMigrations applies the schema on an empty database.
// An already-migrated database is left untouched.
func RunMigrations(ctx context.Context, db *DB) error {
	var exists bool
	err := db.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT FROM information_schema.tables
			WHERE table_name = 'accounts'
		)
	`).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check schema state: %w", err)
	}

	if exists {
		return nil
	}

	log.Println("Database is empty, applying schema")
	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}

	return nil
}
