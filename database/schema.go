package database

import (
	"context"
	"log"
)

// EnsureSchema creates required tables if they do not exist.
func EnsureSchema() {
	if Pool == nil {
		return
	}
	ctx := context.Background()

	stmts := []string{
		`CREATE TABLE IF NOT EXISTS uploads (
            id BIGSERIAL PRIMARY KEY,
            session_id TEXT NOT NULL,
            file_name TEXT NOT NULL,
            record_count INT NOT NULL,
            columns JSONB NOT NULL,
            column_mapping JSONB NOT NULL,
            company_name TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT now()
        )`,
		`CREATE INDEX IF NOT EXISTS uploads_session_id_idx ON uploads(session_id, created_at DESC)`,
		`CREATE TABLE IF NOT EXISTS column_mappings (
            id BIGSERIAL PRIMARY KEY,
            session_id TEXT NOT NULL,
            signature TEXT NOT NULL,
            mapping JSONB NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
            UNIQUE(session_id, signature)
        )`,
	}

	for _, s := range stmts {
		if _, err := Pool.Exec(ctx, s); err != nil {
			log.Printf("schema ensure error: %v in stmt: %s", err, s)
		}
	}
}
