package server

import (
	"context"
	"errors"

	"github.com/playperu/minibasket/internal/minibasket"
)

var ErrNotFound = errors.New("not found")

// SessionSummary describes a saved game a scorer can resume later.
type SessionSummary struct {
	ID      string           `json:"id"`
	Name    string           `json:"name"`
	GameID  string           `json:"gameId"`
	TeamA   string           `json:"teamA"`
	TeamB   string           `json:"teamB"`
	ScoreA  int              `json:"scoreA"`
	ScoreB  int              `json:"scoreB"`
	Phase   minibasket.Phase `json:"phase"`
	Quarter int              `json:"quarter"`
	SavedAt int64            `json:"savedAt"`
}

// HistorySummary describes an archived finished game.
type HistorySummary struct {
	ID         string `json:"id"`
	TeamA      string `json:"teamA"`
	TeamB      string `json:"teamB"`
	ScoreA     int    `json:"scoreA"`
	ScoreB     int    `json:"scoreB"`
	StartTime  int64  `json:"startTime,omitempty"`
	FinishedAt int64  `json:"finishedAt"`
}

type scorerSession struct {
	ScorerID string
	Email    string
}

type Store interface {
	LoadCurrent(ctx context.Context) (minibasket.Game, error)
	SaveCurrent(ctx context.Context, g minibasket.Game) error

	ListSessions(ctx context.Context) ([]SessionSummary, error)
	SaveSession(ctx context.Context, name string, g minibasket.Game) (SessionSummary, error)
	GetSession(ctx context.Context, id string) (minibasket.Game, error)
	DeleteSession(ctx context.Context, id string) error

	ArchiveGame(ctx context.Context, g minibasket.Game) (HistorySummary, error)
	ListHistory(ctx context.Context) ([]HistorySummary, error)
	GetHistory(ctx context.Context, id string) (minibasket.Game, error)
	DeleteHistory(ctx context.Context, id string) error

	UpsertScorer(ctx context.Context, email, passwordHash string) error
	ScorerCredentials(ctx context.Context, email string) (id, passwordHash string, err error)
	CreateScorerSession(ctx context.Context, scorerID string) (string, error)
	ScorerFromSession(ctx context.Context, sessionID string) (scorerSession, error)
	DeleteScorerSession(ctx context.Context, sessionID string) error
}
