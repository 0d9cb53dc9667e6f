package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Dosada05/swiss-tournament/models"
	"github.com/Dosada05/swiss-tournament/repositories"
)

type StandingsService interface {
	// PlayerStandings is the public report: wins ascending, id ascending on ties.
	PlayerStandings(ctx context.Context) ([]models.Standing, error)
	// Rankings is the pairing order: wins descending, id ascending on ties. A nil exec reads outside any transaction.
	Rankings(ctx context.Context, exec repositories.SQLExecutor) ([]models.Standing, error)
	ListStandings(ctx context.Context, order models.StandingOrder) ([]models.Standing, error)
}

type standingsService struct {
	playerRepo repositories.PlayerRepository
	cache      StandingsCache
	logger     *slog.Logger
}

func NewStandingsService(playerRepo repositories.PlayerRepository, cache StandingsCache, logger *slog.Logger) StandingsService {
	return &standingsService{
		playerRepo: playerRepo,
		cache:      cache,
		logger:     orDefaultLogger(logger),
	}
}

func (s *standingsService) PlayerStandings(ctx context.Context) ([]models.Standing, error) {
	if s.cache == nil {
		return s.loadStandings(ctx)
	}

	cached, ok, err := s.cache.Get(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "standings cache read failed, falling back to store", slog.Any("error", err))
	} else if ok {
		return cached, nil
	}

	// The generation must be read before the store: a write committing in between bumps it
	// and Set then discards these rows.
	generation, genErr := s.cache.Generation(ctx)

	standings, err := s.loadStandings(ctx)
	if err != nil {
		return nil, err
	}

	if genErr != nil {
		s.logger.WarnContext(ctx, "standings cache generation unavailable, not caching", slog.Any("error", genErr))
		return standings, nil
	}
	if err := s.cache.Set(ctx, generation, standings); err != nil {
		s.logger.WarnContext(ctx, "standings cache write failed", slog.Any("error", err))
	}
	return standings, nil
}

func (s *standingsService) loadStandings(ctx context.Context) ([]models.Standing, error) {
	standings, err := s.playerRepo.ListStandings(ctx, nil, models.OrderWinsAscending)
	if err != nil {
		return nil, fmt.Errorf("failed to load player standings: %w", err)
	}
	return standings, nil
}

func (s *standingsService) Rankings(ctx context.Context, exec repositories.SQLExecutor) ([]models.Standing, error) {
	ranked, err := s.playerRepo.ListStandings(ctx, exec, models.OrderWinsDescending)
	if err != nil {
		return nil, fmt.Errorf("failed to load rankings: %w", err)
	}
	return ranked, nil
}

func (s *standingsService) ListStandings(ctx context.Context, order models.StandingOrder) ([]models.Standing, error) {
	if order == "" {
		order = models.OrderWinsAscending
	}
	if !order.Valid() {
		return nil, ErrInvalidOrder
	}
	if order == models.OrderWinsDescending {
		return s.Rankings(ctx, nil)
	}
	return s.PlayerStandings(ctx)
}
