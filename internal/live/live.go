// Package live mirrors the scorekeeper's state into Redis: the latest snapshot
// under a TTL'd key for read replicas, and every applied action appended to a
// capped stream for downstream consumers.
package live

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/playperu/minibasket/internal/minibasket"
)

const (
	LiveGameTTL     = 12 * time.Hour
	FinishedGameTTL = 7 * 24 * time.Hour

	streamMaxLen = 10_000
	queueSize    = 256
)

var ErrNotFound = errors.New("snapshot not found")

// CurrentKey points at the id of the most recently published game.
const CurrentKey = "minibasket:current"

func SnapshotKey(gameID string) string { return fmt.Sprintf("minibasket:game:%s:snapshot", gameID) }
func StreamKey(gameID string) string   { return fmt.Sprintf("minibasket:game:%s:actions", gameID) }

type update struct {
	game   minibasket.Game
	action minibasket.Action
}

// Publisher writes snapshots and actions to Redis from a single background
// worker so the scorekeeper never waits on the network.
type Publisher struct {
	client *redis.Client
	logger *slog.Logger
	queue  chan update
}

func NewPublisher(client *redis.Client, logger *slog.Logger) *Publisher {
	return &Publisher{
		client: client,
		logger: logger,
		queue:  make(chan update, queueSize),
	}
}

// Enqueue hands an update to the worker. It drops the update when the queue
// is full.
func (p *Publisher) Enqueue(g minibasket.Game, a minibasket.Action) {
	select {
	case p.queue <- update{game: g, action: a}:
	default:
		p.logger.Warn("live publish queue full, dropping update", "game_id", g.ID, "type", a.Type())
	}
}

// Run drains the queue until ctx is done.
func (p *Publisher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case u := <-p.queue:
			if err := p.Publish(ctx, u.game, u.action); err != nil {
				p.logger.Error("live publish failed", "game_id", u.game.ID, "type", u.action.Type(), "error", err)
			}
		}
	}
}

// Publish stores the snapshot and appends the action to the game's stream in
// one pipeline.
func (p *Publisher) Publish(ctx context.Context, g minibasket.Game, a minibasket.Action) error {
	snapshot, err := json.Marshal(g)
	if err != nil {
		return fmt.Errorf("marshaling snapshot: %w", err)
	}
	action, err := minibasket.EncodeAction(a)
	if err != nil {
		return fmt.Errorf("marshaling action: %w", err)
	}

	pipe := p.client.Pipeline()
	pipe.Set(ctx, SnapshotKey(g.ID), snapshot, ttlFor(g))
	pipe.Set(ctx, CurrentKey, g.ID, ttlFor(g))
	pipe.XAdd(ctx, &redis.XAddArgs{
		Stream: StreamKey(g.ID),
		MaxLen: streamMaxLen,
		Approx: true,
		Values: map[string]any{
			"type":       string(a.Type()),
			"action":     string(action),
			"phase":      string(g.Phase),
			"score_a":    g.TeamA.Score(),
			"score_b":    g.TeamB.Score(),
			"updated_at": g.UpdatedAt,
		},
	})
	_, err = pipe.Exec(ctx)
	return err
}

// Latest reads the cached snapshot for gameID.
func (p *Publisher) Latest(ctx context.Context, gameID string) (minibasket.Game, error) {
	data, err := p.client.Get(ctx, SnapshotKey(gameID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return minibasket.Game{}, ErrNotFound
	}
	if err != nil {
		return minibasket.Game{}, err
	}
	var g minibasket.Game
	if err := json.Unmarshal(data, &g); err != nil {
		return minibasket.Game{}, fmt.Errorf("unmarshaling snapshot: %w", err)
	}
	return g, nil
}

// Current reads the snapshot of the most recently published game.
func (p *Publisher) Current(ctx context.Context) (minibasket.Game, error) {
	id, err := p.client.Get(ctx, CurrentKey).Result()
	if errors.Is(err, redis.Nil) {
		return minibasket.Game{}, ErrNotFound
	}
	if err != nil {
		return minibasket.Game{}, err
	}
	return p.Latest(ctx, id)
}

// Newer reports whether the cached snapshot is a later state of the same game
// than saved. The mirror is written on every action while the database save
// is debounced, so after a crash the mirror can be ahead.
func Newer(cached, saved minibasket.Game) bool {
	return cached.ID == saved.ID && cached.UpdatedAt > saved.UpdatedAt
}

func ttlFor(g minibasket.Game) time.Duration {
	if g.Phase == minibasket.PhaseFinished {
		return FinishedGameTTL
	}
	return LiveGameTTL
}

// Open parses rawURL and pings the server.
func Open(ctx context.Context, rawURL string) (*redis.Client, error) {
	opt, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}
	rdb := redis.NewClient(opt)
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("pinging redis: %w", err)
	}
	return rdb, nil
}
