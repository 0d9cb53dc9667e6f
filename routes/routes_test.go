package routes_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Dosada05/swiss-tournament/brackets"
	"github.com/Dosada05/swiss-tournament/db"
	"github.com/Dosada05/swiss-tournament/handlers"
	"github.com/Dosada05/swiss-tournament/repositories"
	"github.com/Dosada05/swiss-tournament/routes"
	"github.com/Dosada05/swiss-tournament/services"
	"github.com/go-chi/chi/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	testSecret   = "route-test-secret"
	testPassword = "organizer-pass"
)

func newServer(t *testing.T, withAuth bool) *httptest.Server {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	conn, err := db.Connect(repositories.DialectSQLite, "file:"+filepath.Join(t.TempDir(), "swiss.db"), 5*time.Second)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { conn.Close() })
	if err := db.EnsureSchema(context.Background(), conn, repositories.DialectSQLite); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	hub := brackets.NewHub(logger)
	go hub.Run(ctx)

	playerRepo := repositories.NewPlayerRepository(conn, repositories.DialectSQLite)
	matchRepo := repositories.NewMatchRepository(conn, repositories.DialectSQLite)
	standings := services.NewStandingsService(playerRepo, nil, logger)
	tournament := services.NewTournamentService(playerRepo, matchRepo, standings)

	secret, hash := "", ""
	if withAuth {
		h, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
		if err != nil {
			t.Fatal(err)
		}
		secret, hash = testSecret, string(h)
	}

	router := chi.NewRouter()
	routes.SetupRoutes(router, routes.Handlers{
		Player:    handlers.NewPlayerHandler(services.NewPlayerService(conn, playerRepo, matchRepo, nil, hub, logger), logger),
		Match:     handlers.NewMatchHandler(services.NewMatchService(conn, playerRepo, matchRepo, nil, hub, logger), services.NewPairingService(conn, standings, matchRepo, nil, hub, logger), logger),
		Standings: handlers.NewStandingsHandler(standings, tournament, services.NewArchiveService(tournament, nil, logger), logger),
		Auth:      handlers.NewAuthHandler(services.NewAuthService(hash, secret, time.Hour), logger),
		WebSocket: handlers.NewWebSocketHandler(hub, nil, logger),
		Health:    handlers.NewHealthHandler(conn, logger),
	}, routes.Options{JWTSecret: secret})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, srv *httptest.Server, method, path, body, token string) (*http.Response, map[string]json.RawMessage) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, srv.URL+path, reader)
	if err != nil {
		t.Fatal(err)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	out := map[string]json.RawMessage{}
	data, _ := io.ReadAll(resp.Body)
	if len(data) > 0 {
		if err := json.Unmarshal(data, &out); err != nil {
			t.Fatalf("%s %s: invalid JSON %q", method, path, data)
		}
	}
	return resp, out
}

func TestTournamentFlowOverHTTP(t *testing.T) {
	srv := newServer(t, false)

	for _, name := range []string{"A", "B", "C", "D"} {
		resp, _ := do(t, srv, http.MethodPost, "/players", `{"name":"`+name+`"}`, "")
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("register %s: status %d", name, resp.StatusCode)
		}
	}

	_, body := do(t, srv, http.MethodGet, "/players/count", "", "")
	if string(body["count"]) != "4" {
		t.Errorf("count = %s, want 4", body["count"])
	}

	resp, body := do(t, srv, http.MethodPost, "/rounds", "", "")
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("pair round: status %d", resp.StatusCode)
	}
	var pairings []struct {
		ID1 int `json:"id1"`
		ID2 int `json:"id2"`
	}
	if err := json.Unmarshal(body["pairings"], &pairings); err != nil || len(pairings) != 2 {
		t.Fatalf("pairings = %s (%v)", body["pairings"], err)
	}

	for _, p := range pairings {
		payload, _ := json.Marshal(map[string]int{"winner_id": p.ID1, "loser_id": p.ID2})
		if resp, _ := do(t, srv, http.MethodPost, "/matches", string(payload), ""); resp.StatusCode != http.StatusNoContent {
			t.Fatalf("report: status %d", resp.StatusCode)
		}
	}

	resp, body = do(t, srv, http.MethodGet, "/standings?order=desc", "", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("standings: status %d", resp.StatusCode)
	}
	var standings []struct {
		ID   int `json:"id"`
		Wins int `json:"wins"`
	}
	if err := json.Unmarshal(body["standings"], &standings); err != nil || len(standings) != 4 {
		t.Fatalf("standings = %s", body["standings"])
	}
	if standings[0].Wins != 1 || standings[3].Wins != 0 {
		t.Errorf("desc standings = %+v", standings)
	}

	if resp, _ := do(t, srv, http.MethodGet, "/standings?order=sideways", "", ""); resp.StatusCode != http.StatusBadRequest {
		t.Errorf("invalid order: status %d", resp.StatusCode)
	}
	if resp, _ := do(t, srv, http.MethodPost, "/matches", `{"winner_id":1,"loser_id":1}`, ""); resp.StatusCode != http.StatusBadRequest {
		t.Errorf("same player: status %d", resp.StatusCode)
	}
	if resp, _ := do(t, srv, http.MethodPost, "/matches", `{"winner_id":1,"loser_id":999}`, ""); resp.StatusCode != http.StatusNotFound {
		t.Errorf("unknown player: status %d", resp.StatusCode)
	}

	_, body = do(t, srv, http.MethodGet, "/matches", "", "")
	var matches []json.RawMessage
	if err := json.Unmarshal(body["matches"], &matches); err != nil || len(matches) != 2 {
		t.Errorf("matches = %s", body["matches"])
	}

	if resp, _ := do(t, srv, http.MethodGet, "/overview", "", ""); resp.StatusCode != http.StatusOK {
		t.Errorf("overview: status %d", resp.StatusCode)
	}
	if resp, _ := do(t, srv, http.MethodPost, "/archive", "", ""); resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("archive without storage: status %d", resp.StatusCode)
	}

	if resp, _ := do(t, srv, http.MethodDelete, "/matches", "", ""); resp.StatusCode != http.StatusNoContent {
		t.Errorf("delete matches: status %d", resp.StatusCode)
	}
	if resp, _ := do(t, srv, http.MethodDelete, "/players", "", ""); resp.StatusCode != http.StatusNoContent {
		t.Errorf("delete players: status %d", resp.StatusCode)
	}
	_, body = do(t, srv, http.MethodGet, "/players/count", "", "")
	if string(body["count"]) != "0" {
		t.Errorf("count after delete = %s", body["count"])
	}
}

func TestNoValidPairingIsConflict(t *testing.T) {
	srv := newServer(t, false)
	do(t, srv, http.MethodPost, "/players", `{"name":"A"}`, "")
	do(t, srv, http.MethodPost, "/players", `{"name":"B"}`, "")

	if resp, _ := do(t, srv, http.MethodPost, "/rounds", "", ""); resp.StatusCode != http.StatusCreated {
		t.Fatalf("first round: status %d", resp.StatusCode)
	}
	if resp, _ := do(t, srv, http.MethodPost, "/rounds", "", ""); resp.StatusCode != http.StatusConflict {
		t.Errorf("second round: status %d, want 409", resp.StatusCode)
	}
}

func TestMutatingRoutesRequireOrganizerToken(t *testing.T) {
	srv := newServer(t, true)

	if resp, _ := do(t, srv, http.MethodPost, "/players", `{"name":"A"}`, ""); resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("anonymous register: status %d, want 401", resp.StatusCode)
	}
	if resp, _ := do(t, srv, http.MethodGet, "/standings", "", ""); resp.StatusCode != http.StatusOK {
		t.Errorf("anonymous standings: status %d, want 200", resp.StatusCode)
	}
	if resp, _ := do(t, srv, http.MethodPost, "/auth/token", `{"password":"nope"}`, ""); resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("bad password: status %d", resp.StatusCode)
	}

	resp, body := do(t, srv, http.MethodPost, "/auth/token", `{"password":"`+testPassword+`"}`, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("token: status %d", resp.StatusCode)
	}
	var token string
	if err := json.Unmarshal(body["token"], &token); err != nil || token == "" {
		t.Fatalf("token = %s", body["token"])
	}

	if resp, _ := do(t, srv, http.MethodPost, "/players", `{"name":"A"}`, token); resp.StatusCode != http.StatusCreated {
		t.Errorf("organizer register: status %d, want 201", resp.StatusCode)
	}
}

func TestHealthz(t *testing.T) {
	srv := newServer(t, false)
	resp, body := do(t, srv, http.MethodGet, "/healthz", "", "")
	if resp.StatusCode != http.StatusOK || string(body["status"]) != `"ok"` {
		t.Errorf("healthz = %d %s", resp.StatusCode, body["status"])
	}
}
