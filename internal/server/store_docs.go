package server

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/playperu/minibasket/internal/minibasket"
)

// currentGameID is the row holding the live game.
const currentGameID = "current"

type sessionDoc struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	SavedAt int64           `json:"savedAt"`
	Game    minibasket.Game `json:"game"`
}

type historyDoc struct {
	FinishedAt int64           `json:"finishedAt"`
	Game       minibasket.Game `json:"game"`
}

// DocStore implements Store with one JSONB document per row. The schema is
// owned by the migrations package.
type DocStore struct {
	db  *sql.DB
	now func() time.Time
}

func NewDocStore(db *sql.DB) *DocStore {
	return &DocStore{db: db, now: time.Now}
}

// Generic helpers

func (s *DocStore) get(ctx context.Context, table, id string, dest any) error {
	var data string
	err := s.db.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT json(data) FROM %s WHERE id = ?`, table), id,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(data), dest)
}

func (s *DocStore) del(ctx context.Context, table, id string) error {
	result, err := s.db.ExecContext(ctx,
		fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, table), id,
	)
	if err != nil {
		return err
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// all decodes every document of table in the given order into fresh values
// produced by decode.
func (s *DocStore) all(ctx context.Context, table, orderBy string, decode func([]byte) error) error {
	rows, err := s.db.QueryContext(ctx,
		fmt.Sprintf(`SELECT json(data) FROM %s ORDER BY %s`, table, orderBy),
	)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return err
		}
		if err := decode([]byte(data)); err != nil {
			return err
		}
	}
	return rows.Err()
}

// Current game

func (s *DocStore) LoadCurrent(ctx context.Context) (minibasket.Game, error) {
	var g minibasket.Game
	err := s.get(ctx, "games", currentGameID, &g)
	return g, err
}

func (s *DocStore) SaveCurrent(ctx context.Context, g minibasket.Game) error {
	data, err := json.Marshal(g)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO games (id, updated_at, data) VALUES (?, ?, jsonb(?))
		 ON CONFLICT(id) DO UPDATE SET updated_at = excluded.updated_at, data = excluded.data`,
		currentGameID, g.UpdatedAt, string(data),
	)
	return err
}

// Saved sessions

func sessionSummary(doc sessionDoc) SessionSummary {
	a, b := minibasket.FinalScore(doc.Game.ScoreHistory)
	return SessionSummary{
		ID:      doc.ID,
		Name:    doc.Name,
		GameID:  doc.Game.ID,
		TeamA:   doc.Game.TeamA.Name,
		TeamB:   doc.Game.TeamB.Name,
		ScoreA:  a,
		ScoreB:  b,
		Phase:   doc.Game.Phase,
		Quarter: doc.Game.CurrentQuarter,
		SavedAt: doc.SavedAt,
	}
}

func (s *DocStore) ListSessions(ctx context.Context) ([]SessionSummary, error) {
	sessions := []SessionSummary{}
	err := s.all(ctx, "sessions", "saved_at DESC", func(data []byte) error {
		var doc sessionDoc
		if err := json.Unmarshal(data, &doc); err != nil {
			return err
		}
		sessions = append(sessions, sessionSummary(doc))
		return nil
	})
	return sessions, err
}

func (s *DocStore) SaveSession(ctx context.Context, name string, g minibasket.Game) (SessionSummary, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = fmt.Sprintf("%s vs %s", g.TeamA.Name, g.TeamB.Name)
	}
	doc := sessionDoc{
		ID:      uuid.NewString(),
		Name:    name,
		SavedAt: s.now().UnixMilli(),
		Game:    g,
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return SessionSummary{}, err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO sessions (id, name, saved_at, data) VALUES (?, ?, ?, jsonb(?))`,
		doc.ID, doc.Name, doc.SavedAt, string(data),
	)
	if err != nil {
		return SessionSummary{}, err
	}
	return sessionSummary(doc), nil
}

func (s *DocStore) GetSession(ctx context.Context, id string) (minibasket.Game, error) {
	var doc sessionDoc
	if err := s.get(ctx, "sessions", id, &doc); err != nil {
		return minibasket.Game{}, err
	}
	return doc.Game, nil
}

func (s *DocStore) DeleteSession(ctx context.Context, id string) error {
	return s.del(ctx, "sessions", id)
}

// History

func historySummary(doc historyDoc) HistorySummary {
	a, b := minibasket.FinalScore(doc.Game.ScoreHistory)
	return HistorySummary{
		ID:         doc.Game.ID,
		TeamA:      doc.Game.TeamA.Name,
		TeamB:      doc.Game.TeamB.Name,
		ScoreA:     a,
		ScoreB:     b,
		StartTime:  doc.Game.StartTime,
		FinishedAt: doc.FinishedAt,
	}
}

// ArchiveGame stores a finished game under its own id. Archiving the same
// game again replaces the earlier copy.
func (s *DocStore) ArchiveGame(ctx context.Context, g minibasket.Game) (HistorySummary, error) {
	finished := g.EndTime
	if finished == 0 {
		finished = s.now().UnixMilli()
	}
	doc := historyDoc{FinishedAt: finished, Game: g}
	data, err := json.Marshal(doc)
	if err != nil {
		return HistorySummary{}, err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO history (id, finished_at, data) VALUES (?, ?, jsonb(?))
		 ON CONFLICT(id) DO UPDATE SET finished_at = excluded.finished_at, data = excluded.data`,
		g.ID, finished, string(data),
	)
	if err != nil {
		return HistorySummary{}, err
	}
	return historySummary(doc), nil
}

func (s *DocStore) ListHistory(ctx context.Context) ([]HistorySummary, error) {
	games := []HistorySummary{}
	err := s.all(ctx, "history", "finished_at DESC", func(data []byte) error {
		var doc historyDoc
		if err := json.Unmarshal(data, &doc); err != nil {
			return err
		}
		games = append(games, historySummary(doc))
		return nil
	})
	return games, err
}

func (s *DocStore) GetHistory(ctx context.Context, id string) (minibasket.Game, error) {
	var doc historyDoc
	if err := s.get(ctx, "history", id, &doc); err != nil {
		return minibasket.Game{}, err
	}
	return doc.Game, nil
}

func (s *DocStore) DeleteHistory(ctx context.Context, id string) error {
	return s.del(ctx, "history", id)
}

// Scorer auth

func normalizeEmail(email string) string {
	return strings.TrimSpace(strings.ToLower(email))
}

// UpsertScorer creates the scorer account or replaces its password hash.
func (s *DocStore) UpsertScorer(ctx context.Context, email, passwordHash string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO scorers (id, email, password_hash) VALUES (?, ?, ?)
		 ON CONFLICT(email) DO UPDATE SET password_hash = excluded.password_hash`,
		uuid.NewString(), normalizeEmail(email), passwordHash,
	)
	return err
}

func (s *DocStore) ScorerCredentials(ctx context.Context, email string) (string, string, error) {
	var id, hash string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, password_hash FROM scorers WHERE email = ?`, normalizeEmail(email),
	).Scan(&id, &hash)
	if errors.Is(err, sql.ErrNoRows) {
		return "", "", ErrNotFound
	}
	return id, hash, err
}

func (s *DocStore) CreateScorerSession(ctx context.Context, scorerID string) (string, error) {
	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO scorer_sessions (id, scorer_id, created_at) VALUES (?, ?, ?)`,
		id, scorerID, s.now().UnixMilli(),
	)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *DocStore) ScorerFromSession(ctx context.Context, sessionID string) (scorerSession, error) {
	var sess scorerSession
	err := s.db.QueryRowContext(ctx, `
		SELECT sc.id, sc.email
		FROM scorer_sessions s
		JOIN scorers sc ON sc.id = s.scorer_id
		WHERE s.id = ?
	`, sessionID).Scan(&sess.ScorerID, &sess.Email)
	if errors.Is(err, sql.ErrNoRows) {
		return scorerSession{}, errNoScorerSession
	}
	return sess, err
}

func (s *DocStore) DeleteScorerSession(ctx context.Context, sessionID string) error {
	return s.del(ctx, "scorer_sessions", sessionID)
}

// Ensure DocStore implements Store at compile time.
var _ Store = (*DocStore)(nil)
