// Package http serves the operator console over WebSocket. It streams
// the game transcript and lobby state and accepts the operator commands
// (start, stop, round count, bank reload).
package http

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"multiplayer-quiz/internal/game"

	"github.com/gorilla/websocket"
)

type AdminHandler struct {
	game     *game.Game
	hub      *Hub
	loadBank func(path string) error
	upgrader websocket.Upgrader
}

// NewAdminHandler wires the console. loadBank reloads the question bank
// from a file path; it may be nil to disable the command.
func NewAdminHandler(g *game.Game, hub *Hub, loadBank func(path string) error) *AdminHandler {
	return &AdminHandler{
		game:     g,
		hub:      hub,
		loadBank: loadBank,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type command struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type roundsPayload struct {
	Count int `json:"count"`
}

type bankPayload struct {
	File string `json:"file"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// ServeWS upgrades the request and runs the console session: one writer
// goroutine draining events, one reader loop executing commands.
func (h *AdminHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("console upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	events, cancel := h.hub.Subscribe()
	defer cancel()

	send := make(chan Event, 16)
	done := make(chan struct{})
	writerDone := make(chan struct{})
	forwardDone := make(chan struct{})

	go func() {
		defer close(writerDone)
		for ev := range send {
			if err := conn.WriteJSON(ev); err != nil {
				log.Printf("console write error: %v", err)
				return
			}
		}
	}()

	go func() {
		defer close(forwardDone)
		for {
			select {
			case ev, ok := <-events:
				if !ok {
					return
				}
				select {
				case send <- ev:
				case <-done:
					return
				}
			case <-done:
				return
			}
		}
	}()

	for {
		var cmd command
		if err := conn.ReadJSON(&cmd); err != nil {
			break
		}
		if err := h.run(cmd); err != nil {
			select {
			case send <- Event{Type: "error", Payload: errorPayload{Message: err.Error()}}:
			default:
			}
		}
	}

	close(done)
	<-forwardDone
	close(send)
	<-writerDone
}

func (h *AdminHandler) run(cmd command) error {
	switch cmd.Type {
	case "start":
		return h.game.Start()
	case "stop":
		h.game.Stop()
		return nil
	case "rounds":
		var p roundsPayload
		if err := json.Unmarshal(cmd.Payload, &p); err != nil {
			return fmt.Errorf("invalid rounds payload: %w", err)
		}
		if err := h.game.SetRounds(p.Count); err != nil {
			return err
		}
		h.hub.Log(fmt.Sprintf("Success: QA number set to %d.", p.Count))
		return nil
	case "bank":
		if h.loadBank == nil {
			return fmt.Errorf("bank reload not available")
		}
		var p bankPayload
		if err := json.Unmarshal(cmd.Payload, &p); err != nil {
			return fmt.Errorf("invalid bank payload: %w", err)
		}
		if err := h.loadBank(p.File); err != nil {
			return err
		}
		h.hub.Log(fmt.Sprintf("Success: File '%s' read successfully.", p.File))
		return nil
	}
	return fmt.Errorf("unsupported command type %q", cmd.Type)
}
