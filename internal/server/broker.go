package server

import (
	"encoding/json"
	"sync"

	"github.com/playperu/minibasket/internal/minibasket"
)

// GameEvent is the payload pushed to live subscribers after every applied
// action. Action is empty for the snapshot sent on connect.
type GameEvent struct {
	Action minibasket.ActionType `json:"action,omitempty"`
	Game   minibasket.Game       `json:"game"`
}

// Broker is an in-process pub/sub for game snapshots shared by the SSE and
// WebSocket feeds.
type Broker struct {
	mu   sync.RWMutex
	subs map[chan []byte]struct{}
}

func NewBroker() *Broker {
	return &Broker{
		subs: make(map[chan []byte]struct{}),
	}
}

// Subscribe returns a channel that receives JSON-encoded GameEvents.
func (b *Broker) Subscribe() chan []byte {
	ch := make(chan []byte, 16)
	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()
	return ch
}

func (b *Broker) Unsubscribe(ch chan []byte) {
	b.mu.Lock()
	delete(b.subs, ch)
	b.mu.Unlock()
}

// Publish matches scorekeeper.Listener so the broker can be registered on
// the keeper directly.
func (b *Broker) Publish(g minibasket.Game, a minibasket.Action) {
	ev := GameEvent{Game: g}
	if a != nil {
		ev.Action = a.Type()
	}
	data, _ := json.Marshal(ev)
	b.mu.RLock()
	for ch := range b.subs {
		select {
		case ch <- data:
		default:
			// Drop if subscriber is slow.
		}
	}
	b.mu.RUnlock()
}

func encodeSnapshot(g minibasket.Game) []byte {
	data, _ := json.Marshal(GameEvent{Game: g})
	return data
}
