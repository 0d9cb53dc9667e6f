package services

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/Dosada05/swiss-tournament/brackets"
	"github.com/Dosada05/swiss-tournament/db"
	"github.com/Dosada05/swiss-tournament/models"
	"github.com/Dosada05/swiss-tournament/repositories"
)

type recordingNotifier struct {
	mu     sync.Mutex
	events []string
}

func (n *recordingNotifier) BroadcastToRoom(roomID string, eventType string, payload interface{}) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, eventType)
}

func (n *recordingNotifier) has(eventType string) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, e := range n.events {
		if e == eventType {
			return true
		}
	}
	return false
}

type memoryCache struct {
	mu            sync.Mutex
	data          []models.Standing
	ok            bool
	generation    int64
	gets, sets    int
	invalidations int
	getErr        error
	// beforeSet runs once, outside the lock, ahead of the next Set.
	beforeSet func()
}

func (c *memoryCache) Get(ctx context.Context) ([]models.Standing, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	return c.data, c.ok, nil
}

func (c *memoryCache) Generation(ctx context.Context) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generation, nil
}

func (c *memoryCache) Set(ctx context.Context, generation int64, standings []models.Standing) error {
	c.mu.Lock()
	hook := c.beforeSet
	c.beforeSet = nil
	c.mu.Unlock()
	if hook != nil {
		hook()
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if generation != c.generation {
		return nil
	}
	c.sets++
	c.data, c.ok = standings, true
	return nil
}

func (c *memoryCache) Invalidate(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidations++
	c.generation++
	c.data, c.ok = nil, false
	return nil
}

type fixture struct {
	db         *sql.DB
	playerRepo repositories.PlayerRepository
	matchRepo  repositories.MatchRepository
	players    PlayerService
	matches    MatchService
	standings  StandingsService
	pairing    PairingService
	tournament TournamentService
	notifier   *recordingNotifier
	logger     *slog.Logger
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newFixture(t *testing.T, cache StandingsCache) *fixture {
	t.Helper()
	conn, err := db.Connect(repositories.DialectSQLite, "file:"+filepath.Join(t.TempDir(), "swiss.db"), 5*time.Second)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	if err := db.EnsureSchema(context.Background(), conn, repositories.DialectSQLite); err != nil {
		t.Fatalf("schema: %v", err)
	}

	f := &fixture{
		db:         conn,
		playerRepo: repositories.NewPlayerRepository(conn, repositories.DialectSQLite),
		matchRepo:  repositories.NewMatchRepository(conn, repositories.DialectSQLite),
		notifier:   &recordingNotifier{},
		logger:     discardLogger(),
	}
	f.standings = NewStandingsService(f.playerRepo, cache, f.logger)
	f.players = NewPlayerService(conn, f.playerRepo, f.matchRepo, cache, f.notifier, f.logger)
	f.matches = NewMatchService(conn, f.playerRepo, f.matchRepo, cache, f.notifier, f.logger)
	f.pairing = NewPairingService(conn, f.standings, f.matchRepo, brackets.NewSwissGenerator(brackets.StrategyBacktracking, 0), f.notifier, f.logger)
	f.tournament = NewTournamentService(f.playerRepo, f.matchRepo, f.standings)
	return f
}

func (f *fixture) register(t *testing.T, names ...string) []int {
	t.Helper()
	ids := make([]int, len(names))
	for i, name := range names {
		p, err := f.players.RegisterPlayer(context.Background(), name)
		if err != nil {
			t.Fatalf("RegisterPlayer(%q): %v", name, err)
		}
		ids[i] = p.ID
	}
	return ids
}

func (f *fixture) report(t *testing.T, winner, loser int) {
	t.Helper()
	if err := f.matches.ReportMatch(context.Background(), winner, loser); err != nil {
		t.Fatalf("ReportMatch(%d, %d): %v", winner, loser, err)
	}
}

func (f *fixture) standingOf(t *testing.T, id int) models.Standing {
	t.Helper()
	standings, err := f.standings.PlayerStandings(context.Background())
	if err != nil {
		t.Fatalf("PlayerStandings: %v", err)
	}
	for _, s := range standings {
		if s.ID == id {
			return s
		}
	}
	t.Fatalf("player %d missing from standings", id)
	return models.Standing{}
}

func (f *fixture) matchCount(t *testing.T) int {
	t.Helper()
	n, err := f.matchRepo.Count(context.Background(), nil)
	if err != nil {
		t.Fatalf("count matches: %v", err)
	}
	return n
}

func pairsOf(pairings []models.Pairing) [][2]int {
	out := make([][2]int, len(pairings))
	for i, p := range pairings {
		out[i] = [2]int{p.ID1, p.ID2}
	}
	return out
}
