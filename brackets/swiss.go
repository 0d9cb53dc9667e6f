package brackets

import (
	"context"
	"errors"
	"fmt"

	"github.com/Dosada05/swiss-tournament/models"
)

// ErrNoValidPairing is returned when some player cannot be given an opponent they have not met.
var ErrNoValidPairing = errors.New("no valid pairing found")

// Strategy selects how the Swiss generator reacts to a dead end.
type Strategy string

const (
	// StrategyGreedy takes the first unplayed opponent for each player and fails on a dead end.
	StrategyGreedy Strategy = "greedy"
	// StrategyBacktracking revisits earlier choices, in the same scan order, when a dead end is reached.
	StrategyBacktracking Strategy = "backtracking"
)

const defaultMaxSteps = 100_000

func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case StrategyGreedy, StrategyBacktracking:
		return Strategy(s), nil
	case "":
		return StrategyBacktracking, nil
	default:
		return "", fmt.Errorf("unknown pairing strategy %q", s)
	}
}

type SwissGenerator struct {
	strategy Strategy
	maxSteps int
}

// NewSwissGenerator returns a generator. maxSteps bounds the backtracking search; zero means the default.
func NewSwissGenerator(strategy Strategy, maxSteps int) PairingGenerator {
	if strategy == "" {
		strategy = StrategyBacktracking
	}
	if maxSteps <= 0 {
		maxSteps = defaultMaxSteps
	}
	return &SwissGenerator{strategy: strategy, maxSteps: maxSteps}
}

func (g *SwissGenerator) GetName() string {
	return "Swiss/" + string(g.strategy)
}

// GeneratePairings pairs adjacent-strength players who have not met yet.
//
// With an odd field the last-ranked player gets the bye. Players are then taken strongest first and
// matched with the first later player they have not played. The backtracking strategy explores the
// alternatives in that same order, so whenever the greedy walk succeeds both strategies agree.
func (g *SwissGenerator) GeneratePairings(ctx context.Context, params GeneratePairingsParams) (*models.Round, error) {
	pool := make([]models.Standing, len(params.Ranked))
	copy(pool, params.Ranked)

	played := params.Played
	if played == nil {
		played = func(int, int) bool { return false }
	}

	round := &models.Round{Pairings: make([]models.Pairing, 0, len(pool)/2)}
	if len(pool)%2 != 0 {
		bye := pool[len(pool)-1]
		round.Bye = &bye
		pool = pool[:len(pool)-1]
	}
	if len(pool) == 0 {
		return round, nil
	}

	s := &swissSearch{
		ctx:       ctx,
		pool:      pool,
		used:      make([]bool, len(pool)),
		played:    played,
		backtrack: g.strategy == StrategyBacktracking,
		maxSteps:  g.maxSteps,
		stuck:     -1,
	}
	ok, err := s.pair(0)
	if err != nil {
		return nil, err
	}
	if !ok {
		if s.exhausted {
			if s.stuck < 0 {
				return nil, fmt.Errorf("%w: search budget of %d steps exhausted", ErrNoValidPairing, g.maxSteps)
			}
			return nil, fmt.Errorf("%w: search budget of %d steps exhausted (first stuck player %d)", ErrNoValidPairing, g.maxSteps, pool[s.stuck].ID)
		}
		stuck := pool[0]
		if s.stuck >= 0 {
			stuck = pool[s.stuck]
		}
		return nil, fmt.Errorf("%w: player %d (%s) has no unplayed opponent", ErrNoValidPairing, stuck.ID, stuck.Name)
	}

	for _, c := range s.chosen {
		hi, lo := pool[c[0]], pool[c[1]]
		round.Pairings = append(round.Pairings, models.Pairing{ID1: hi.ID, Name1: hi.Name, ID2: lo.ID, Name2: lo.Name})
	}
	return round, nil
}

type swissSearch struct {
	ctx       context.Context
	pool      []models.Standing
	used      []bool
	played    func(a, b int) bool
	backtrack bool
	maxSteps  int
	steps     int
	exhausted bool
	stuck     int
	chosen    [][2]int
}

// pair matches the highest-ranked unused player at or after start, then recurses on the rest.
func (s *swissSearch) pair(start int) (bool, error) {
	i := start
	for i < len(s.pool) && s.used[i] {
		i++
	}
	if i == len(s.pool) {
		return true, nil
	}
	if err := s.ctx.Err(); err != nil {
		return false, err
	}

	s.used[i] = true
	tried := false
	// Candidates are scanned in rank order, so the first success is the closest-ranked opponent.
	for j := i + 1; j < len(s.pool); j++ {
		if s.used[j] || s.played(s.pool[i].ID, s.pool[j].ID) {
			continue
		}
		if s.steps >= s.maxSteps {
			s.exhausted = true
			break
		}
		s.steps++
		tried = true

		s.used[j] = true
		s.chosen = append(s.chosen, [2]int{i, j})
		ok, err := s.pair(i + 1)
		if err != nil || ok {
			return ok, err
		}
		// Undo and try the next candidate.
		s.chosen = s.chosen[:len(s.chosen)-1]
		s.used[j] = false

		if !s.backtrack || s.exhausted {
			break
		}
	}
	s.used[i] = false

	// Only a player with no legal opponent at all is a dead end. Running out of budget is not.
	if !tried && !s.exhausted && s.stuck < 0 {
		s.stuck = i
	}
	return false, nil
}
