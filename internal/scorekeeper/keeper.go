// Package scorekeeper owns the live game: it serializes dispatched actions
// through the reducer, fans the resulting snapshots out to listeners and
// persists them after a quiet period.
package scorekeeper

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/playperu/minibasket/internal/minibasket"
)

// Saver persists the current game snapshot.
type Saver interface {
	SaveCurrent(ctx context.Context, g minibasket.Game) error
}

// Listener receives every snapshot produced by an applied action. Listeners
// run under the keeper's lock, in dispatch order, and must not block or call
// back into the Keeper.
type Listener func(g minibasket.Game, a minibasket.Action)

type Keeper struct {
	logger  *slog.Logger
	reducer *minibasket.Reducer
	saver   Saver
	delay   time.Duration

	// saveMu is held for a whole save so writes reach the saver in snapshot
	// order and Flush waits out an autosave already in flight.
	saveMu sync.Mutex

	mu        sync.Mutex
	game      minibasket.Game
	dirty     bool
	timer     *time.Timer
	listeners map[int]Listener
	nextID    int
}

// New returns a keeper holding initial. A zero delay saves synchronously
// after every applied action.
func New(logger *slog.Logger, reducer *minibasket.Reducer, initial minibasket.Game, saver Saver, delay time.Duration) *Keeper {
	return &Keeper{
		logger:    logger,
		reducer:   reducer,
		saver:     saver,
		delay:     delay,
		game:      initial,
		listeners: make(map[int]Listener),
	}
}

// Snapshot returns the current game. Callers must treat it as read-only.
func (k *Keeper) Snapshot() minibasket.Game {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.game
}

// Dispatch applies a and reports whether the game changed.
func (k *Keeper) Dispatch(a minibasket.Action) (minibasket.Game, bool) {
	k.mu.Lock()
	next, changed := k.reducer.Reduce(k.game, a)
	if !changed {
		k.mu.Unlock()
		k.logger.Debug("action ignored", "type", a.Type(), "game_id", next.ID)
		return next, false
	}
	k.game = next
	k.dirty = true
	for _, fn := range k.listeners {
		fn(next, a)
	}
	syncSave := k.delay <= 0
	if !syncSave {
		k.scheduleLocked()
	}
	k.mu.Unlock()

	k.logger.Debug("action applied", "type", a.Type(), "game_id", next.ID, "phase", next.Phase)
	if syncSave {
		k.save(context.Background())
	}
	return next, true
}

// Subscribe registers fn and returns a function that removes it.
func (k *Keeper) Subscribe(fn Listener) func() {
	k.mu.Lock()
	id := k.nextID
	k.nextID++
	k.listeners[id] = fn
	k.mu.Unlock()

	return func() {
		k.mu.Lock()
		delete(k.listeners, id)
		k.mu.Unlock()
	}
}

// Flush cancels any pending autosave, waits for one already running, and
// writes the current snapshot if it still has unsaved changes.
func (k *Keeper) Flush(ctx context.Context) error {
	k.mu.Lock()
	if k.timer != nil {
		k.timer.Stop()
		k.timer = nil
	}
	k.mu.Unlock()
	return k.save(ctx)
}

func (k *Keeper) scheduleLocked() {
	if k.timer != nil {
		k.timer.Reset(k.delay)
		return
	}
	k.timer = time.AfterFunc(k.delay, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		k.save(ctx)
	})
}

func (k *Keeper) save(ctx context.Context) error {
	k.saveMu.Lock()
	defer k.saveMu.Unlock()

	k.mu.Lock()
	if !k.dirty || k.saver == nil {
		k.mu.Unlock()
		return nil
	}
	g := k.game
	k.dirty = false
	k.mu.Unlock()

	if err := k.saver.SaveCurrent(ctx, g); err != nil {
		k.logger.Error("autosave failed", "game_id", g.ID, "error", err)
		k.mu.Lock()
		k.dirty = true
		k.mu.Unlock()
		return err
	}
	k.logger.Debug("game saved", "game_id", g.ID, "updated_at", g.UpdatedAt)
	return nil
}
