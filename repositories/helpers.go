package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

// SQLExecutor is satisfied by both *sql.DB and *sql.Tx.
type SQLExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// Dialect is the SQL flavour of the underlying store.
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite"
)

func ParseDialect(driver string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "postgres", "postgresql", "pq":
		return DialectPostgres, nil
	case "sqlite", "sqlite3":
		return DialectSQLite, nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", driver)
	}
}

// Rebind rewrites $N placeholders into SQLite's ?N form. Queries are written for PostgreSQL.
func (d Dialect) Rebind(query string) string {
	if d != DialectSQLite {
		return query
	}
	// modernc sqlite accepts ?N with the same numbering, so only the sigil changes.
	// Queries in this package never carry a literal '$'.
	return strings.ReplaceAll(query, "$", "?")
}

type constraintKind int

const (
	constraintNone constraintKind = iota
	constraintForeignKey
	constraintUnique
	constraintCheck
)

// classifyConstraint maps driver errors from lib/pq and modernc sqlite onto a common kind.
func classifyConstraint(err error) constraintKind {
	if err == nil {
		return constraintNone
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23503": // foreign_key_violation
			return constraintForeignKey
		case "23505": // unique_violation
			return constraintUnique
		case "23514": // check_violation
			return constraintCheck
		}
		return constraintNone
	}
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_FOREIGNKEY:
			return constraintForeignKey
		case sqlite3lib.SQLITE_CONSTRAINT_UNIQUE, sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY:
			return constraintUnique
		case sqlite3lib.SQLITE_CONSTRAINT_CHECK:
			return constraintCheck
		}
		// The low byte is the primary result code.
		if sqliteErr.Code()&0xff == sqlite3lib.SQLITE_CONSTRAINT {
			return constraintFromMessage(sqliteErr.Error())
		}
	}
	return constraintNone
}

// constraintFromMessage covers connections opened without extended result codes.
func constraintFromMessage(msg string) constraintKind {
	switch {
	case strings.Contains(msg, "FOREIGN KEY constraint failed"):
		return constraintForeignKey
	case strings.Contains(msg, "UNIQUE constraint failed"):
		return constraintUnique
	case strings.Contains(msg, "CHECK constraint failed"):
		return constraintCheck
	}
	return constraintNone
}

func checkAffectedRows(result sql.Result, notFoundError error) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if rowsAffected == 0 {
		return notFoundError
	}
	return nil
}
