// Package db provides PostgreSQL storage for roles, candidates,
// interviews, evaluation chats, and users.
package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// InitSchema creates the tables if they do not exist yet. The column
// holding the pipeline column is named pipeline_column because "column"
// is a reserved word.
func (db *DB) InitSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			email TEXT NOT NULL UNIQUE,
			role TEXT NOT NULL DEFAULT 'recruiter',
			password_hash TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS roles (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			title TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'active',
			hiring_budget DOUBLE PRECISION,
			vacancies INTEGER,
			urgency TEXT NOT NULL DEFAULT '',
			timeline TEXT NOT NULL DEFAULT '',
			candidate_requirement_fields JSONB NOT NULL DEFAULT '[]',
			evaluation_criteria JSONB NOT NULL DEFAULT '[]',
			created_by_user_id TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS candidates (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			role_id UUID NOT NULL REFERENCES roles(id) ON DELETE CASCADE,
			name TEXT NOT NULL,
			summary TEXT NOT NULL DEFAULT '',
			skills JSONB NOT NULL DEFAULT '[]',
			experience TEXT NOT NULL DEFAULT '',
			pipeline_column TEXT NOT NULL DEFAULT 'outreach',
			color TEXT NOT NULL DEFAULT 'amber-transparent',
			outreach_sent BOOLEAN NOT NULL DEFAULT FALSE,
			outreach_message TEXT NOT NULL DEFAULT '',
			checklist JSONB NOT NULL DEFAULT '{}',
			not_pushing_forward BOOLEAN NOT NULL DEFAULT FALSE,
			sent_to_client BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS interviews (
			role_id UUID NOT NULL REFERENCES roles(id) ON DELETE CASCADE,
			candidate_id UUID NOT NULL REFERENCES candidates(id) ON DELETE CASCADE,
			summary TEXT NOT NULL DEFAULT '',
			transcription TEXT NOT NULL DEFAULT '',
			candidate_responses JSONB NOT NULL DEFAULT '{}',
			fit_score INTEGER,
			strengths JSONB NOT NULL DEFAULT '[]',
			concerns JSONB NOT NULL DEFAULT '[]',
			recommendation TEXT NOT NULL DEFAULT '',
			interview_completed BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			PRIMARY KEY (role_id, candidate_id)
		)`,
		`CREATE TABLE IF NOT EXISTS evaluation_chats (
			role_id UUID PRIMARY KEY REFERENCES roles(id) ON DELETE CASCADE,
			messages JSONB NOT NULL DEFAULT '[]',
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
	}

	for _, stmt := range stmts {
		if _, err := db.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to initialize schema: %w", err)
		}
	}
	return nil
}
