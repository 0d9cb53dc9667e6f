package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/Dosada05/swiss-tournament/brackets"
	"github.com/Dosada05/swiss-tournament/models"
	"github.com/Dosada05/swiss-tournament/repositories"
)

func TestSwissPairingsFourPlayersNeverRepeat(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	ids := f.register(t, "A", "B", "C", "D")

	first, err := f.pairing.SwissPairings(ctx)
	if err != nil {
		t.Fatalf("first round: %v", err)
	}
	want := [][2]int{{ids[0], ids[1]}, {ids[2], ids[3]}}
	if got := pairsOf(first); got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("first round = %v, want %v", got, want)
	}

	f.report(t, ids[0], ids[1])
	f.report(t, ids[2], ids[3])

	second, err := f.pairing.SwissPairings(ctx)
	if err != nil {
		t.Fatalf("second round: %v", err)
	}
	want = [][2]int{{ids[0], ids[2]}, {ids[1], ids[3]}}
	if got := pairsOf(second); got[0] != want[0] || got[1] != want[1] {
		t.Errorf("second round = %v, want winners together and losers together %v", got, want)
	}
	for _, p := range second {
		if (p.ID1 == ids[0] && p.ID2 == ids[1]) || (p.ID1 == ids[2] && p.ID2 == ids[3]) {
			t.Errorf("rematch %+v", p)
		}
	}
	if p := second[0]; p.Name1 != "A" || p.Name2 != "C" {
		t.Errorf("names = %q/%q", p.Name1, p.Name2)
	}
}

func TestSwissPairingsOddFieldLeavesLastPlaceUnpaired(t *testing.T) {
	f := newFixture(t, nil)
	ids := f.register(t, "A", "B", "C", "D", "E")

	round, err := f.pairing.NextRound(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(round.Pairings) != 2 {
		t.Fatalf("len(pairings) = %d, want 2", len(round.Pairings))
	}
	if round.Bye == nil || round.Bye.ID != ids[4] {
		t.Fatalf("bye = %+v, want player %d", round.Bye, ids[4])
	}
	for _, p := range round.Pairings {
		if p.ID1 == ids[4] || p.ID2 == ids[4] {
			t.Errorf("fifth player paired: %+v", p)
		}
	}
	if !f.notifier.has(brackets.EventRoundPaired) {
		t.Error("round was not broadcast")
	}
}

func TestSwissPairingsByeFollowsStandings(t *testing.T) {
	f := newFixture(t, nil)
	ids := f.register(t, "A", "B", "C")

	// Ranked C(1), A(0), B(0): B is last place.
	f.report(t, ids[2], ids[0])

	round, err := f.pairing.NextRound(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if round.Bye == nil || round.Bye.ID != ids[1] {
		t.Errorf("bye = %+v, want last-placed player %d", round.Bye, ids[1])
	}
	if got := pairsOf(round.Pairings); len(got) != 1 || got[0] != [2]int{ids[2], ids[0]} {
		t.Errorf("pairings = %v", got)
	}
}

func TestSwissPairingsEmptyAndSingleField(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	pairs, err := f.pairing.SwissPairings(ctx)
	if err != nil || len(pairs) != 0 {
		t.Fatalf("empty field: %v, %v", pairs, err)
	}
	f.register(t, "Solo")
	pairs, err = f.pairing.SwissPairings(ctx)
	if err != nil || len(pairs) != 0 {
		t.Fatalf("single player: %v, %v", pairs, err)
	}
	if n := f.matchCount(t); n != 0 {
		t.Errorf("%d records persisted", n)
	}
}

func TestSwissPairingsNoValidPairingPersistsNothing(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	f.register(t, "A", "B")

	if _, err := f.pairing.SwissPairings(ctx); err != nil {
		t.Fatal(err)
	}
	_, err := f.pairing.SwissPairings(ctx)
	if !errors.Is(err, ErrNoValidPairing) {
		t.Fatalf("error = %v, want ErrNoValidPairing", err)
	}
	if n := f.matchCount(t); n != 1 {
		t.Errorf("match records = %d, want 1", n)
	}
}

func TestSwissPairingsNeverRepeatAcrossRounds(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	f.register(t, "A", "B", "C", "D", "E", "F", "G", "H")

	seen := make(map[[2]int]bool)
	for round := 1; round <= 4; round++ {
		pairs, err := f.pairing.SwissPairings(ctx)
		if err != nil {
			t.Fatalf("round %d: %v", round, err)
		}
		if len(pairs) != 4 {
			t.Fatalf("round %d: %d pairings", round, len(pairs))
		}
		players := make(map[int]bool)
		for _, p := range pairs {
			key := models.MatchRecord{Player1ID: p.ID1, Player2ID: p.ID2}.Normalized()
			k := [2]int{key.Player1ID, key.Player2ID}
			if seen[k] {
				t.Errorf("round %d repeats %v", round, k)
			}
			seen[k] = true
			if players[p.ID1] || players[p.ID2] {
				t.Errorf("round %d uses a player twice: %+v", round, p)
			}
			players[p.ID1], players[p.ID2] = true, true
			f.report(t, p.ID1, p.ID2)
		}
	}
	if n := f.matchCount(t); n != 16 {
		t.Errorf("match records = %d, want 16", n)
	}
}

func TestSwissPairingsConcurrentRunsDoNotCollide(t *testing.T) {
	f := newFixture(t, nil)
	f.register(t, "A", "B", "C", "D")

	var wg sync.WaitGroup
	errs := make(chan error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.pairing.SwissPairings(context.Background())
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Errorf("concurrent run failed: %v", err)
		}
	}

	records, err := f.matchRepo.List(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 4 {
		t.Errorf("records = %+v, want four distinct pairs", records)
	}
}

type failingMatchRepo struct {
	repositories.MatchRepository
	failAfter int
	creates   int
}

var errInjected = errors.New("injected failure")

func (r *failingMatchRepo) Create(ctx context.Context, exec repositories.SQLExecutor, m models.MatchRecord) error {
	r.creates++
	if r.creates > r.failAfter {
		return errInjected
	}
	return r.MatchRepository.Create(ctx, exec, m)
}

func TestSwissPairingsRollsBackPartialRound(t *testing.T) {
	f := newFixture(t, nil)
	f.register(t, "A", "B", "C", "D")

	repo := &failingMatchRepo{MatchRepository: f.matchRepo, failAfter: 1}
	svc := NewPairingService(f.db, f.standings, repo, nil, nil, f.logger)

	_, err := svc.SwissPairings(context.Background())
	if !errors.Is(err, errInjected) {
		t.Fatalf("error = %v, want injected failure", err)
	}
	if repo.creates != 2 {
		t.Errorf("creates = %d, want 2", repo.creates)
	}
	if n := f.matchCount(t); n != 0 {
		t.Errorf("%d records survived the rolled back run", n)
	}
}
