package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	msqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"finance-api/internal/repository"
)

// Open opens (or creates) a sqlite database at the given path and ensures directories exist.
// Foreign keys are enforced on every connection.
func Open(path string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	dsn := path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	// sqlite serialises writers anyway
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	return db, nil
}

// translateError maps constraint failures onto repository sentinels.
func translateError(err error, op string) error {
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return fmt.Errorf("%s: %w", op, repository.ErrAlreadyExists)
		case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
			return fmt.Errorf("%s: %w", op, repository.ErrInvalidReference)
		case sqlite3.SQLITE_CONSTRAINT:
			// primary code only; fall back to the message
			msg := sqliteErr.Error()
			switch {
			case strings.Contains(msg, "FOREIGN KEY"):
				return fmt.Errorf("%s: %w", op, repository.ErrInvalidReference)
			case strings.Contains(msg, "UNIQUE"):
				return fmt.Errorf("%s: %w", op, repository.ErrAlreadyExists)
			}
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}

type scanner interface {
	Scan(dest ...any) error
}
