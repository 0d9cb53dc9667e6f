package services

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Dosada05/swiss-tournament/brackets"
	"github.com/Dosada05/swiss-tournament/models"
	"github.com/Dosada05/swiss-tournament/repositories"
)

// PlayerService covers registration, counting and the two reset operations.
type PlayerService interface {
	RegisterPlayer(ctx context.Context, name string) (*models.Player, error)
	CountPlayers(ctx context.Context) (int, error)
	// DeleteMatches zeroes every player's counters and clears the match history, keeping the roster.
	DeleteMatches(ctx context.Context) error
	// DeletePlayers removes the roster and, with it, all match history.
	DeletePlayers(ctx context.Context) error
}

type playerService struct {
	db         *sql.DB
	playerRepo repositories.PlayerRepository
	matchRepo  repositories.MatchRepository
	cache      StandingsCache
	notifier   Notifier
	logger     *slog.Logger
}

func NewPlayerService(
	db *sql.DB,
	playerRepo repositories.PlayerRepository,
	matchRepo repositories.MatchRepository,
	cache StandingsCache,
	notifier Notifier,
	logger *slog.Logger,
) PlayerService {
	return &playerService{
		db:         db,
		playerRepo: playerRepo,
		matchRepo:  matchRepo,
		cache:      cache,
		notifier:   notifier,
		logger:     orDefaultLogger(logger),
	}
}

// RegisterPlayer stores name with leading and trailing whitespace removed. Inner spacing is kept.
func (s *playerService) RegisterPlayer(ctx context.Context, name string) (*models.Player, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrPlayerNameRequired
	}

	player := &models.Player{Name: name}
	if err := s.playerRepo.Create(ctx, nil, player); err != nil {
		return nil, fmt.Errorf("failed to register player %q: %w", name, err)
	}
	s.logger.InfoContext(ctx, "player registered", slog.Int("player_id", player.ID), slog.String("name", player.Name))

	invalidateStandings(ctx, s.cache, s.logger)
	notify(s.notifier, brackets.EventPlayerRegistered, player)
	return player, nil
}

func (s *playerService) CountPlayers(ctx context.Context) (int, error) {
	return s.playerRepo.Count(ctx, nil)
}

func (s *playerService) DeleteMatches(ctx context.Context) error {
	err := withTx(ctx, s.db, s.logger, func(tx *sql.Tx) error {
		if err := s.playerRepo.ResetCounters(ctx, tx); err != nil {
			return err
		}
		return s.matchRepo.DeleteAll(ctx, tx)
	})
	if err != nil {
		return fmt.Errorf("failed to delete matches: %w", err)
	}
	s.logger.InfoContext(ctx, "match history cleared")

	invalidateStandings(ctx, s.cache, s.logger)
	notify(s.notifier, brackets.EventTournamentReset, map[string]string{"scope": "matches"})
	return nil
}

func (s *playerService) DeletePlayers(ctx context.Context) error {
	err := withTx(ctx, s.db, s.logger, func(tx *sql.Tx) error {
		// The foreign keys cascade as well; deleting explicitly keeps the reset complete
		// on stores where cascading is switched off.
		if err := s.matchRepo.DeleteAll(ctx, tx); err != nil {
			return err
		}
		return s.playerRepo.DeleteAll(ctx, tx)
	})
	if err != nil {
		return fmt.Errorf("failed to delete players: %w", err)
	}
	s.logger.InfoContext(ctx, "player roster cleared")

	invalidateStandings(ctx, s.cache, s.logger)
	notify(s.notifier, brackets.EventTournamentReset, map[string]string{"scope": "players"})
	return nil
}
