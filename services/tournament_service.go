package services

import (
	"context"
	"fmt"
	"time"

	"github.com/Dosada05/swiss-tournament/models"
	"github.com/Dosada05/swiss-tournament/repositories"
	"golang.org/x/sync/errgroup"
)

// TournamentService answers read-only questions about the whole tournament.
type TournamentService interface {
	Overview(ctx context.Context) (*models.Overview, error)
}

type tournamentService struct {
	playerRepo repositories.PlayerRepository
	matchRepo  repositories.MatchRepository
	standings  StandingsService
	now        func() time.Time
}

func NewTournamentService(
	playerRepo repositories.PlayerRepository,
	matchRepo repositories.MatchRepository,
	standings StandingsService,
) TournamentService {
	return &tournamentService{
		playerRepo: playerRepo,
		matchRepo:  matchRepo,
		standings:  standings,
		now:        time.Now,
	}
}

func (s *tournamentService) Overview(ctx context.Context) (*models.Overview, error) {
	overview := &models.Overview{TakenAt: s.now().UTC()}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		count, err := s.playerRepo.Count(gctx, nil)
		if err != nil {
			return err
		}
		overview.PlayerCount = count
		return nil
	})
	g.Go(func() error {
		standings, err := s.standings.PlayerStandings(gctx)
		if err != nil {
			return err
		}
		overview.Standings = standings
		return nil
	})
	g.Go(func() error {
		matches, err := s.matchRepo.List(gctx, nil)
		if err != nil {
			return err
		}
		overview.Matches = matches
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to build tournament overview: %w", err)
	}
	return overview, nil
}
