package services

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/Dosada05/swiss-tournament/brackets"
	"github.com/Dosada05/swiss-tournament/models"
	"github.com/Dosada05/swiss-tournament/repositories"
)

// MatchResult is the payload broadcast when a result is recorded.
type MatchResult struct {
	WinnerID int `json:"winner_id"`
	LoserID  int `json:"loser_id"`
}

type MatchService interface {
	// ReportMatch records one played match. It does not check that the pair was scheduled,
	// and calling it twice counts two matches.
	ReportMatch(ctx context.Context, winnerID, loserID int) error
	ListMatches(ctx context.Context) ([]models.MatchRecord, error)
}

type matchService struct {
	db         *sql.DB
	playerRepo repositories.PlayerRepository
	matchRepo  repositories.MatchRepository
	cache      StandingsCache
	notifier   Notifier
	logger     *slog.Logger
}

func NewMatchService(
	db *sql.DB,
	playerRepo repositories.PlayerRepository,
	matchRepo repositories.MatchRepository,
	cache StandingsCache,
	notifier Notifier,
	logger *slog.Logger,
) MatchService {
	return &matchService{
		db:         db,
		playerRepo: playerRepo,
		matchRepo:  matchRepo,
		cache:      cache,
		notifier:   notifier,
		logger:     orDefaultLogger(logger),
	}
}

func (s *matchService) ReportMatch(ctx context.Context, winnerID, loserID int) error {
	if winnerID <= 0 || loserID <= 0 {
		return ErrInvalidPlayerID
	}
	if winnerID == loserID {
		return ErrSamePlayer
	}

	// An unknown loser rolls back the winner's increment too.
	err := withTx(ctx, s.db, s.logger, func(tx *sql.Tx) error {
		if err := s.playerRepo.RecordWin(ctx, tx, winnerID); err != nil {
			return err
		}
		return s.playerRepo.RecordLoss(ctx, tx, loserID)
	})
	if err != nil {
		return fmt.Errorf("failed to report match %d beat %d: %w", winnerID, loserID, mapRepositoryError(err))
	}
	s.logger.InfoContext(ctx, "match reported", slog.Int("winner_id", winnerID), slog.Int("loser_id", loserID))

	// Only after commit: invalidating earlier lets a reader re-cache pre-commit counters.
	invalidateStandings(ctx, s.cache, s.logger)
	notify(s.notifier, brackets.EventMatchReported, MatchResult{WinnerID: winnerID, LoserID: loserID})
	return nil
}

func (s *matchService) ListMatches(ctx context.Context) ([]models.MatchRecord, error) {
	matches, err := s.matchRepo.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	return matches, nil
}
