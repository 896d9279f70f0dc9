package http

import (
	"log"
	"sync"
)

// Event is one operator console message.
type Event struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

type logPayload struct {
	Line string `json:"line"`
}

type lobbyPayload struct {
	Players  int  `json:"players"`
	CanStart bool `json:"canStart"`
}

// Hub implements game.Notifier and fans events out to console
// subscribers. Transcript lines are mirrored to the process log.
type Hub struct {
	mu        sync.Mutex
	subs      map[chan Event]struct{}
	lastLobby Event
	haveLobby bool
}

func NewHub() *Hub {
	return &Hub{subs: make(map[chan Event]struct{})}
}

// Log appends a transcript line.
func (h *Hub) Log(line string) {
	log.Printf("%s", line)
	h.publish(Event{Type: "log", Payload: logPayload{Line: line}})
}

// LobbyUpdate reports the player count and start eligibility. The latest
// value is replayed to new subscribers.
func (h *Hub) LobbyUpdate(players int, canStart bool) {
	ev := Event{Type: "lobby", Payload: lobbyPayload{Players: players, CanStart: canStart}}
	h.mu.Lock()
	h.lastLobby = ev
	h.haveLobby = true
	h.publishLocked(ev)
	h.mu.Unlock()
}

// Subscribe returns an event channel primed with the current lobby
// snapshot. The caller must invoke cancel to avoid leaks.
func (h *Hub) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, 16)

	h.mu.Lock()
	h.subs[ch] = struct{}{}
	if h.haveLobby {
		ch <- h.lastLobby
	}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		if _, ok := h.subs[ch]; ok {
			delete(h.subs, ch)
			close(ch)
		}
		h.mu.Unlock()
	}
	return ch, cancel
}

func (h *Hub) publish(ev Event) {
	h.mu.Lock()
	h.publishLocked(ev)
	h.mu.Unlock()
}

func (h *Hub) publishLocked(ev Event) {
	for ch := range h.subs {
		select {
		case ch <- ev:
		default:
			// Drop the oldest queued event so a slow console never
			// blocks the game.
			select {
			case <-ch:
			default:
			}
			ch <- ev
		}
	}
}
