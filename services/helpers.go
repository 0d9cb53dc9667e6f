package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Dosada05/swiss-tournament/brackets"
	"github.com/Dosada05/swiss-tournament/repositories"
)

// withTx runs fn inside a transaction, committing on success and rolling back on error or panic.
func withTx(ctx context.Context, db *sql.DB, logger *slog.Logger, fn func(tx *sql.Tx) error) (err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	// err is the named result, so the deferred block sees fn's error and can replace it with a commit failure.
	defer func() {
		// A panicking fn must not leave the transaction open; roll back, then let the panic continue.
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			// ErrTxDone means fn already ended the transaction itself.
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				logger.ErrorContext(ctx, "transaction rollback failed", slog.Any("error", rbErr), slog.Any("cause", err))
				err = fmt.Errorf("%w (rollback also failed: %v)", err, rbErr)
			}
			return
		}
		if cErr := tx.Commit(); cErr != nil {
			err = fmt.Errorf("failed to commit transaction: %w", cErr)
		}
	}()
	return fn(tx)
}

// mapRepositoryError translates repository sentinels into service sentinels, keeping the cause.
func mapRepositoryError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repositories.ErrPlayerNotFound), errors.Is(err, repositories.ErrMatchPlayerInvalid):
		return fmt.Errorf("%w: %w", ErrPlayerNotFound, err)
	case errors.Is(err, repositories.ErrMatchAlreadyPlayed):
		return fmt.Errorf("%w: %w", ErrMatchAlreadyPlayed, err)
	case errors.Is(err, repositories.ErrMatchSamePlayer):
		return fmt.Errorf("%w: %w", ErrSamePlayer, err)
	}
	return err
}

// invalidateStandings runs after commit. A failure only logs: the store is already correct and the cached
// report expires after its TTL.
func invalidateStandings(ctx context.Context, cache StandingsCache, logger *slog.Logger) {
	if cache == nil {
		return
	}
	if err := cache.Invalidate(ctx); err != nil {
		logger.WarnContext(ctx, "failed to invalidate standings cache", slog.Any("error", err))
	}
}

func notify(n Notifier, eventType string, payload interface{}) {
	if n == nil {
		return
	}
	n.BroadcastToRoom(brackets.TournamentRoom, eventType, payload)
}

func orDefaultLogger(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}
