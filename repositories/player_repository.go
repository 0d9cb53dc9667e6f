package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/swiss-tournament/models"
)

var (
	ErrPlayerNotFound       = errors.New("player not found")
	ErrPlayerCounterInvalid = errors.New("player counters violate wins <= matches")
)

type PlayerRepository interface {
	Create(ctx context.Context, exec SQLExecutor, player *models.Player) error
	Count(ctx context.Context, exec SQLExecutor) (int, error)
	ListStandings(ctx context.Context, exec SQLExecutor, order models.StandingOrder) ([]models.Standing, error)
	RecordWin(ctx context.Context, exec SQLExecutor, id int) error
	RecordLoss(ctx context.Context, exec SQLExecutor, id int) error
	ResetCounters(ctx context.Context, exec SQLExecutor) error
	DeleteAll(ctx context.Context, exec SQLExecutor) error
}

type sqlPlayerRepository struct {
	db      *sql.DB
	dialect Dialect
}

func NewPlayerRepository(db *sql.DB, dialect Dialect) PlayerRepository {
	return &sqlPlayerRepository{db: db, dialect: dialect}
}

func (r *sqlPlayerRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *sqlPlayerRepository) Create(ctx context.Context, exec SQLExecutor, player *models.Player) error {
	query := r.dialect.Rebind(`
		INSERT INTO players (name, wins, matches)
		VALUES ($1, $2, $3)
		RETURNING id`)
	err := r.getExecutor(exec).QueryRowContext(ctx, query, player.Name, 0, 0).Scan(&player.ID)
	if err != nil {
		return fmt.Errorf("failed to create player: %w", err)
	}
	player.Wins, player.Matches = 0, 0
	return nil
}

func (r *sqlPlayerRepository) Count(ctx context.Context, exec SQLExecutor) (int, error) {
	var count int
	if err := r.getExecutor(exec).QueryRowContext(ctx, `SELECT COUNT(*) FROM players`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count players: %w", err)
	}
	return count, nil
}

// ListStandings returns every player ordered by wins in the requested direction.
// Ties are broken by id ascending in both orders.
func (r *sqlPlayerRepository) ListStandings(ctx context.Context, exec SQLExecutor, order models.StandingOrder) ([]models.Standing, error) {
	var query string
	switch order {
	case models.OrderWinsAscending:
		query = `SELECT id, name, wins, matches FROM players ORDER BY wins ASC, id ASC`
	case models.OrderWinsDescending:
		query = `SELECT id, name, wins, matches FROM players ORDER BY wins DESC, id ASC`
	default:
		return nil, fmt.Errorf("unknown standings order %q", order)
	}

	rows, err := r.getExecutor(exec).QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query standings: %w", err)
	}
	defer rows.Close()

	standings := make([]models.Standing, 0)
	for rows.Next() {
		var s models.Standing
		if scanErr := rows.Scan(&s.ID, &s.Name, &s.Wins, &s.Matches); scanErr != nil {
			return nil, fmt.Errorf("failed to scan standing row: %w", scanErr)
		}
		standings = append(standings, s)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during standings rows iteration: %w", err)
	}
	return standings, nil
}

// RecordWin increments both counters in one statement so wins <= matches holds after every statement.
func (r *sqlPlayerRepository) RecordWin(ctx context.Context, exec SQLExecutor, id int) error {
	query := r.dialect.Rebind(`UPDATE players SET wins = wins + 1, matches = matches + 1 WHERE id = $1`)
	return r.updateCounters(ctx, exec, query, id)
}

func (r *sqlPlayerRepository) RecordLoss(ctx context.Context, exec SQLExecutor, id int) error {
	query := r.dialect.Rebind(`UPDATE players SET matches = matches + 1 WHERE id = $1`)
	return r.updateCounters(ctx, exec, query, id)
}

func (r *sqlPlayerRepository) updateCounters(ctx context.Context, exec SQLExecutor, query string, id int) error {
	result, err := r.getExecutor(exec).ExecContext(ctx, query, id)
	if err != nil {
		if classifyConstraint(err) == constraintCheck {
			return ErrPlayerCounterInvalid
		}
		return fmt.Errorf("failed to update counters for player %d: %w", id, err)
	}
	if err := checkAffectedRows(result, ErrPlayerNotFound); err != nil {
		if errors.Is(err, ErrPlayerNotFound) {
			return fmt.Errorf("%w: id %d", ErrPlayerNotFound, id)
		}
		return err
	}
	return nil
}

func (r *sqlPlayerRepository) ResetCounters(ctx context.Context, exec SQLExecutor) error {
	if _, err := r.getExecutor(exec).ExecContext(ctx, `UPDATE players SET wins = 0, matches = 0`); err != nil {
		return fmt.Errorf("failed to reset player counters: %w", err)
	}
	return nil
}

// DeleteAll removes every player. Match records go with them through ON DELETE CASCADE.
func (r *sqlPlayerRepository) DeleteAll(ctx context.Context, exec SQLExecutor) error {
	if _, err := r.getExecutor(exec).ExecContext(ctx, `DELETE FROM players`); err != nil {
		return fmt.Errorf("failed to delete players: %w", err)
	}
	return nil
}
