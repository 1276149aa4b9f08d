// Copyright (c) 2026 H. Ugur Yildiz.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Open connects to the configured database. dbType selects the driver:
// "postgres" (lib/pq) or "sqlite" (modernc, pure Go). The schema keeps to
// SQL both engines accept, including $1 placeholders.
func Open(dbType, url string) (*sql.DB, error) {
	var driver string
	switch dbType {
	case "postgres":
		driver = "postgres"
	case "sqlite", "":
		driver = "sqlite"
	default:
		return nil, fmt.Errorf("unsupported database type %q", dbType)
	}
	conn, err := sql.Open(driver, url)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", dbType, err)
	}
	if driver == "sqlite" {
		// sqlite serializes writers; a single connection avoids busy errors.
		conn.SetMaxOpenConns(1)
	}
	return conn, nil
}

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Credentials: one per identity, created on first contact
CREATE TABLE IF NOT EXISTS credential (
    identity_id TEXT PRIMARY KEY,
    display_name TEXT NOT NULL,
    organization TEXT NOT NULL,
    pin TEXT NOT NULL,
    failed_attempts INTEGER NOT NULL DEFAULT 0,
    locked BOOLEAN NOT NULL DEFAULT FALSE,
    created_at TIMESTAMP NOT NULL
);

-- Sessions: short-lived tokens issued on successful PIN verification
CREATE TABLE IF NOT EXISTS session (
    token TEXT PRIMARY KEY,
    identity_id TEXT NOT NULL,
    expires_at TIMESTAMP NOT NULL,
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_session_identity ON session(identity_id);

-- Evaluation records: the append-only log. Rows are never updated or
-- deleted; reconciliation happens entirely on read.
CREATE TABLE IF NOT EXISTS evaluation_record (
    id TEXT PRIMARY KEY,
    identity_id TEXT NOT NULL,
    group_id TEXT NOT NULL,
    recorded_at TEXT NOT NULL,
    scores TEXT NOT NULL,
    comment TEXT NOT NULL DEFAULT '',
    status TEXT NOT NULL,
    editing_flag TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_record_identity ON evaluation_record(identity_id);
CREATE INDEX IF NOT EXISTS idx_record_identity_group ON evaluation_record(identity_id, group_id);
`
