package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/playperu/minibasket/internal/database"
	"github.com/playperu/minibasket/internal/migrations"
	"github.com/playperu/minibasket/internal/minibasket"
	"github.com/playperu/minibasket/internal/scorekeeper"
)

const (
	testEmail    = "scorer@example.com"
	testPassword = "courtside"
)

type testEnv struct {
	handler http.Handler
	store   *DocStore
	keeper  *scorekeeper.Keeper
}

func setupStore(t *testing.T) *DocStore {
	t.Helper()
	ctx := context.Background()

	db, err := database.Open(ctx, database.Memory)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := migrations.Run(ctx, db, slog.Default()); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
	return NewDocStore(db)
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvWithOrigins(t)
}

func newTestEnvWithOrigins(t *testing.T, origins ...string) *testEnv {
	t.Helper()
	store := setupStore(t)

	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if err := SeedScorer(context.Background(), slog.Default(), store, testEmail, string(hash)); err != nil {
		t.Fatalf("seed scorer: %v", err)
	}

	reducer := minibasket.NewReducer()
	keeper := scorekeeper.New(slog.Default(), reducer, reducer.Initial(), store, 0)
	srv := New(":0", slog.Default(), Deps{Store: store, Keeper: keeper, CORSOrigins: origins}, nil)

	return &testEnv{handler: srv.Handler(), store: store, keeper: keeper}
}

func newTestRouter(t *testing.T) http.Handler {
	return newTestEnv(t).handler
}

func (e *testEnv) do(t *testing.T, method, path string, body any, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

// login returns the scorer session cookie.
func (e *testEnv) login(t *testing.T) *http.Cookie {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/api/scorer/login",
		ScorerLoginRequest{Email: testEmail, Password: testPassword}, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	for _, c := range rec.Result().Cookies() {
		if c.Name == scorerCookieName {
			return c
		}
	}
	t.Fatal("login: no scorer_session cookie")
	return nil
}

func testTeam(id minibasket.TeamID, name string) minibasket.Team {
	team := minibasket.NewTeam(id, name)
	prefix := "a"
	if id == minibasket.TeamB {
		prefix = "b"
	}
	for i := 1; i <= 7; i++ {
		p := minibasket.NewPlayer(fmt.Sprintf("%s%d", prefix, i), i+3, fmt.Sprintf("Player %s%d", prefix, i))
		p.IsOnCourt = i <= 5
		team.Players = append(team.Players, p)
	}
	return team
}

// startGame sets up two rosters and starts the first quarter.
func (e *testEnv) startGame(t *testing.T) {
	t.Helper()
	if _, ok := e.keeper.Dispatch(minibasket.SetTeams{
		TeamA: testTeam(minibasket.TeamA, "Tigers"),
		TeamB: testTeam(minibasket.TeamB, "Lions"),
	}); !ok {
		t.Fatal("SET_TEAMS was not applied")
	}
	if _, ok := e.keeper.Dispatch(minibasket.StartGame{}); !ok {
		t.Fatal("START_GAME was not applied")
	}
}

func envelope(t *testing.T, a minibasket.Action) json.RawMessage {
	t.Helper()
	data, err := minibasket.EncodeAction(a)
	if err != nil {
		t.Fatalf("encode action: %v", err)
	}
	return data
}
