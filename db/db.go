package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/Dosada05/swiss-tournament/repositories"
	_ "github.com/lib/pq"   // postgres driver
	_ "modernc.org/sqlite" // sqlite driver
)

const sqlitePragmas = "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"

// Connect opens a pooled handle for the given dialect and verifies it within timeout.
func Connect(dialect repositories.Dialect, dsn string, timeout time.Duration) (*sql.DB, error) {
	driverName, dataSource, err := driverDSN(dialect, dsn)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(driverName, dataSource)
	if err != nil {
		return nil, fmt.Errorf("failed to create database handle: %w", err)
	}

	switch dialect {
	case repositories.DialectSQLite:
		// Single connection: SQLite serialises writers anyway.
		db.SetMaxOpenConns(1)
	default:
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(25)
		db.SetConnMaxLifetime(5 * time.Minute)
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err = db.PingContext(ctx); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			return nil, fmt.Errorf("failed to ping database within %v: %w (close also failed: %v)", timeout, err, closeErr)
		}
		return nil, fmt.Errorf("failed to ping database within %v: %w", timeout, err)
	}

	return db, nil
}

func driverDSN(dialect repositories.Dialect, dsn string) (string, string, error) {
	if strings.TrimSpace(dsn) == "" {
		return "", "", fmt.Errorf("database dsn is required")
	}
	switch dialect {
	case repositories.DialectPostgres:
		return "postgres", dsn, nil
	case repositories.DialectSQLite:
		if strings.Contains(dsn, "_pragma=") {
			return "sqlite", dsn, nil
		}
		sep := "?"
		if strings.Contains(dsn, "?") {
			sep = "&"
		}
		return "sqlite", dsn + sep + sqlitePragmas, nil
	default:
		return "", "", fmt.Errorf("unsupported database dialect %q", dialect)
	}
}
