package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS tasks (
	id          TEXT PRIMARY KEY,
	title       TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	due_date    TIMESTAMPTZ NULL,
	priority    TEXT NOT NULL DEFAULT 'Medium',
	status      TEXT NOT NULL DEFAULT 'To Do',
	category    TEXT NOT NULL DEFAULT 'Work',
	assignee    TEXT NULL,
	completed   BOOLEAN NOT NULL DEFAULT FALSE,
	subtasks    JSONB NOT NULL DEFAULT '[]'::jsonb,
	focus_time  BIGINT NOT NULL DEFAULT 0,
	created_at  TIMESTAMPTZ NOT NULL,
	updated_at  TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS tasks_created_at_idx ON tasks (created_at DESC);

CREATE TABLE IF NOT EXISTS users (
	id            TEXT PRIMARY KEY,
	name          TEXT NOT NULL,
	email         TEXT NOT NULL,
	login_id      TEXT NOT NULL,
	password_hash TEXT NOT NULL,
	role          TEXT NOT NULL DEFAULT 'Member',
	avatar        TEXT NOT NULL DEFAULT '',
	status        TEXT NOT NULL DEFAULT 'Active',
	created_at    TIMESTAMPTZ NOT NULL,
	updated_at    TIMESTAMPTZ NOT NULL,
	CONSTRAINT users_email_key UNIQUE (email),
	CONSTRAINT users_login_id_key UNIQUE (login_id)
);

CREATE TABLE IF NOT EXISTS activities (
	id          TEXT PRIMARY KEY,
	action      TEXT NOT NULL,
	task_title  TEXT NOT NULL,
	occurred_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS activities_occurred_at_idx ON activities (occurred_at DESC);
`

// OpenPostgres connects, applies the schema and returns the Postgres-backed store.
func OpenPostgres(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if _, err := db.ExecContext(ctx, postgresSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{
		Tasks:      NewTaskRepository(db),
		Users:      NewUserRepository(db),
		Activities: NewActivityRepository(db),
		Close: func(context.Context) error {
			return db.Close()
		},
	}, nil
}

var uniqueConstraintFields = map[string]string{
	"users_email_key":    "email",
	"users_login_id_key": "loginId",
}

// translatePQ turns unique violations into *DuplicateError.
func translatePQ(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return &DuplicateError{Field: uniqueConstraintFields[pqErr.Constraint]}
	}
	return err
}
