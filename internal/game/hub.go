// internal/game/hub.go
//
// Per-game fan-out of real-time events to subscribed listeners.
// Delivery is decoupled from the command path through per-subscriber
// buffered channels: a slow or dead listener drops events, it never
// blocks the player whose command produced them.

package game

import (
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Event is one notification delivered to a game's listeners.
// Names in use: "turn", "gameEnded", "nextGame".
type Event struct {
	Name string `json:"event"`
	Data any    `json:"data"`
}

// subscriberBuffer bounds the backlog of one listener.
const subscriberBuffer = 16

// Hub is the transient listener set of one game. It is never
// persisted; a game loaded from the store starts with an empty hub.
type Hub struct {
	mu   sync.Mutex
	subs map[string]chan Event
}

func newHub() *Hub {
	return &Hub{subs: make(map[string]chan Event)}
}

// Subscribe registers a listener and returns its event channel along
// with a cancel function that removes the listener and closes the
// channel. Cancel is safe to call more than once.
func (h *Hub) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, subscriberBuffer)
	id := uuid.NewString()

	h.mu.Lock()
	h.subs[id] = ch
	h.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, id)
			h.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

// Broadcast delivers an event to every current subscriber,
// best-effort. Subscribers whose buffer is full miss the event.
func (h *Hub) Broadcast(name string, data any) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, ch := range h.subs {
		select {
		case ch <- Event{Name: name, Data: data}:
		default:
			log.Warn().Str("subscriber", id).Str("event", name).
				Msg("listener too slow, event dropped")
		}
	}
}

// Listeners reports the current subscriber count.
func (h *Hub) Listeners() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}
