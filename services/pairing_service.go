package services

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sync"

	"github.com/Dosada05/swiss-tournament/brackets"
	"github.com/Dosada05/swiss-tournament/models"
	"github.com/Dosada05/swiss-tournament/repositories"
)

type PairingService interface {
	// SwissPairings generates and records the next round's pairings.
	SwissPairings(ctx context.Context) ([]models.Pairing, error)
	// NextRound is SwissPairings plus the player who sits the round out, if any.
	NextRound(ctx context.Context) (*models.Round, error)
}

type pairingService struct {
	db        *sql.DB
	standings StandingsService
	matchRepo repositories.MatchRepository
	generator brackets.PairingGenerator
	notifier  Notifier
	logger    *slog.Logger

	// mu serialises pairing runs within the process; the store lock covers other processes.
	mu sync.Mutex
}

func NewPairingService(
	db *sql.DB,
	standings StandingsService,
	matchRepo repositories.MatchRepository,
	generator brackets.PairingGenerator,
	notifier Notifier,
	logger *slog.Logger,
) PairingService {
	if generator == nil {
		generator = brackets.NewSwissGenerator(brackets.StrategyBacktracking, 0)
	}
	return &pairingService{
		db:        db,
		standings: standings,
		matchRepo: matchRepo,
		generator: generator,
		notifier:  notifier,
		logger:    orDefaultLogger(logger),
	}
}

func (s *pairingService) SwissPairings(ctx context.Context) ([]models.Pairing, error) {
	round, err := s.NextRound(ctx)
	if err != nil {
		return nil, err
	}
	return round.Pairings, nil
}

// NextRound reads rankings and history, pairs the field and persists one match record per
// pairing, all inside a single transaction. Either every record of the run is stored or none is.
func (s *pairingService) NextRound(ctx context.Context) (*models.Round, error) {
	// The mutex covers this process; the table lock covers other instances sharing the database.
	s.mu.Lock()
	defer s.mu.Unlock()

	var round *models.Round
	err := withTx(ctx, s.db, s.logger, func(tx *sql.Tx) error {
		if err := s.matchRepo.Lock(ctx, tx); err != nil {
			return err
		}

		// Rankings and history are read under the lock so no concurrent run can pair the same players.
		ranked, err := s.standings.Rankings(ctx, tx)
		if err != nil {
			return err
		}
		records, err := s.matchRepo.List(ctx, tx)
		if err != nil {
			return err
		}
		history := brackets.NewHistory(records)

		round, err = s.generator.GeneratePairings(ctx, brackets.GeneratePairingsParams{
			Ranked: ranked,
			Played: history.Has,
		})
		if err != nil {
			return err
		}

		// One failed insert rolls back the whole round.
		for _, p := range round.Pairings {
			if err := s.matchRepo.Create(ctx, tx, p.Record()); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.logger.WarnContext(ctx, "pairing run failed", slog.String("generator", s.generator.GetName()), slog.Any("error", err))
		return nil, fmt.Errorf("failed to generate swiss pairings: %w", mapRepositoryError(err))
	}

	attrs := []any{slog.Int("pairings", len(round.Pairings)), slog.String("generator", s.generator.GetName())}
	if round.Bye != nil {
		attrs = append(attrs, slog.Int("bye_player_id", round.Bye.ID))
	}
	s.logger.InfoContext(ctx, "round paired", attrs...)

	notify(s.notifier, brackets.EventRoundPaired, round)
	return round, nil
}
