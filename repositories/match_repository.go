package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/swiss-tournament/models"
)

var (
	ErrMatchAlreadyPlayed = errors.New("match between these players already exists")
	ErrMatchPlayerInvalid = errors.New("match references an unknown player")
	ErrMatchSamePlayer    = errors.New("match requires two distinct players")
)

type MatchRepository interface {
	Create(ctx context.Context, exec SQLExecutor, match models.MatchRecord) error
	List(ctx context.Context, exec SQLExecutor) ([]models.MatchRecord, error)
	Count(ctx context.Context, exec SQLExecutor) (int, error)
	DeleteAll(ctx context.Context, exec SQLExecutor) error
	// Lock blocks other pairing runs until exec's transaction ends. It is a no-op where the
	// store already serialises writers.
	Lock(ctx context.Context, exec SQLExecutor) error
}

type sqlMatchRepository struct {
	db      *sql.DB
	dialect Dialect
}

func NewMatchRepository(db *sql.DB, dialect Dialect) MatchRepository {
	return &sqlMatchRepository{db: db, dialect: dialect}
}

func (r *sqlMatchRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *sqlMatchRepository) Create(ctx context.Context, exec SQLExecutor, match models.MatchRecord) error {
	if match.Player1ID == match.Player2ID {
		return ErrMatchSamePlayer
	}
	// Stored as (low id, high id) so the UNIQUE pair catches a repeat in either order.
	m := match.Normalized()
	query := r.dialect.Rebind(`INSERT INTO matches (player1_id, player2_id) VALUES ($1, $2)`)
	_, err := r.getExecutor(exec).ExecContext(ctx, query, m.Player1ID, m.Player2ID)
	return r.handleMatchError(err, m)
}

func (r *sqlMatchRepository) List(ctx context.Context, exec SQLExecutor) ([]models.MatchRecord, error) {
	rows, err := r.getExecutor(exec).QueryContext(ctx,
		`SELECT player1_id, player2_id FROM matches ORDER BY player1_id ASC, player2_id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches: %w", err)
	}
	defer rows.Close()

	matches := make([]models.MatchRecord, 0)
	for rows.Next() {
		var m models.MatchRecord
		if scanErr := rows.Scan(&m.Player1ID, &m.Player2ID); scanErr != nil {
			return nil, fmt.Errorf("failed to scan match row: %w", scanErr)
		}
		matches = append(matches, m)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during match rows iteration: %w", err)
	}
	return matches, nil
}

func (r *sqlMatchRepository) Count(ctx context.Context, exec SQLExecutor) (int, error) {
	var count int
	if err := r.getExecutor(exec).QueryRowContext(ctx, `SELECT COUNT(*) FROM matches`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count matches: %w", err)
	}
	return count, nil
}

func (r *sqlMatchRepository) DeleteAll(ctx context.Context, exec SQLExecutor) error {
	if _, err := r.getExecutor(exec).ExecContext(ctx, `DELETE FROM matches`); err != nil {
		return fmt.Errorf("failed to delete matches: %w", err)
	}
	return nil
}

func (r *sqlMatchRepository) Lock(ctx context.Context, exec SQLExecutor) error {
	if r.dialect != DialectPostgres {
		return nil
	}
	if _, err := r.getExecutor(exec).ExecContext(ctx, `LOCK TABLE matches IN EXCLUSIVE MODE`); err != nil {
		return fmt.Errorf("failed to lock matches table: %w", err)
	}
	return nil
}

func (r *sqlMatchRepository) handleMatchError(err error, m models.MatchRecord) error {
	if err == nil {
		return nil
	}
	switch classifyConstraint(err) {
	case constraintUnique:
		return fmt.Errorf("%w: %d-%d", ErrMatchAlreadyPlayed, m.Player1ID, m.Player2ID)
	case constraintForeignKey:
		return fmt.Errorf("%w: %d-%d", ErrMatchPlayerInvalid, m.Player1ID, m.Player2ID)
	}
	return fmt.Errorf("failed to create match %d-%d: %w", m.Player1ID, m.Player2ID, err)
}
