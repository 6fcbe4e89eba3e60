package db

import (
	"database/sql"
	"fmt"
)

// schema is the full database schema.
const schema = `
CREATE TABLE IF NOT EXISTS users (
    id            TEXT PRIMARY KEY,
    name          TEXT NOT NULL,
    email         TEXT NOT NULL,
    phone         TEXT NOT NULL DEFAULT '',
    password_hash TEXT NOT NULL,
    role          TEXT NOT NULL DEFAULT 'user' CHECK (role IN ('admin', 'user')),
    created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users(email);

CREATE TABLE IF NOT EXISTS items (
    id          TEXT PRIMARY KEY,
    title       TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    category    TEXT NOT NULL CHECK (category IN ('electronics', 'clothing', 'books', 'cards', 'keys', 'other')),
    location    TEXT NOT NULL DEFAULT '',
    event_date  DATETIME NOT NULL,
    tags        TEXT NOT NULL DEFAULT '',
    type        TEXT NOT NULL CHECK (type IN ('lost', 'found')),
    status      TEXT NOT NULL DEFAULT 'pending' CHECK (status IN ('pending', 'approved', 'rejected', 'claimed')),
    image       BLOB,
    image_mime  TEXT,
    reporter_id TEXT NOT NULL REFERENCES users(id),
    created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    deleted_at  DATETIME
);

CREATE INDEX IF NOT EXISTS idx_items_status ON items(status) WHERE deleted_at IS NULL;
CREATE INDEX IF NOT EXISTS idx_items_reporter ON items(reporter_id);

CREATE TABLE IF NOT EXISTS claim_requests (
    id                 TEXT PRIMARY KEY,
    item_id            TEXT NOT NULL REFERENCES items(id),
    claimant_id        TEXT NOT NULL REFERENCES users(id),
    student_id         TEXT NOT NULL,
    admission_number   TEXT NOT NULL,
    national_id        TEXT NOT NULL,
    contact_number     TEXT NOT NULL,
    reason             TEXT NOT NULL,
    proof_of_ownership TEXT NOT NULL DEFAULT '',
    status             TEXT NOT NULL DEFAULT 'pending' CHECK (status IN ('pending', 'approved', 'rejected')),
    created_at         DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    decided_at         DATETIME,
    decided_by         TEXT REFERENCES users(id)
);

CREATE INDEX IF NOT EXISTS idx_claims_item ON claim_requests(item_id);

CREATE UNIQUE INDEX IF NOT EXISTS idx_claims_one_approved
    ON claim_requests(item_id) WHERE status = 'approved';

CREATE UNIQUE INDEX IF NOT EXISTS idx_claims_one_pending_per_claimant
    ON claim_requests(item_id, claimant_id) WHERE status = 'pending';

CREATE TABLE IF NOT EXISTS settings (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS revoked_tokens (
    jti        TEXT PRIMARY KEY,
    expires_at DATETIME NOT NULL
);
`

// migrations is a list of SQL statements applied in order after schema creation.
// Each migration must be idempotent. Append new migrations at the end.
var migrations []string

// EnsureSchema creates all tables and indexes if they don't already exist.
func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

// Migrate ensures the schema and runs the migrations.
func Migrate(db *sql.DB) error {
	if err := EnsureSchema(db); err != nil {
		return err
	}

	for i, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return fmt.Errorf("running migration %d: %w", i+1, err)
		}
	}

	return nil
}
