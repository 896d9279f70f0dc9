// Package tcp implements the player wire protocol: a line-oriented text
// protocol over one TCP connection per player. The handshake is a raw
// username followed by a single "OK" or "Error: ..." reply; afterwards
// the server broadcasts newline-terminated lines and players send bare
// A/B/C answer bytes.
package tcp

import (
	"errors"
	"fmt"
	"net"
	"strings"
	"sync/atomic"
	"time"

	"multiplayer-quiz/internal/domain"
	"multiplayer-quiz/internal/game"
)

// DefaultHandshakeTimeout bounds the wait for the username after accept.
const DefaultHandshakeTimeout = time.Second

// Server accepts player connections and feeds their input into a Game.
type Server struct {
	game             *game.Game
	notifier         game.Notifier
	handshakeTimeout time.Duration

	ln      net.Listener
	closing atomic.Bool
}

// NewServer wires a listener-less server. A nil notifier is allowed.
func NewServer(g *game.Game, notifier game.Notifier, handshakeTimeout time.Duration) *Server {
	if notifier == nil {
		notifier = game.NopNotifier()
	}
	if handshakeTimeout <= 0 {
		handshakeTimeout = DefaultHandshakeTimeout
	}
	return &Server{game: g, notifier: notifier, handshakeTimeout: handshakeTimeout}
}

// Listen binds the server address. Serve must be called to accept.
func (s *Server) Listen(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	s.ln = ln
	s.notifier.Log(fmt.Sprintf("--- Server listening on %s ---", ln.Addr()))
	return nil
}

// Addr returns the bound listener address, useful with ":0" in tests.
func (s *Server) Addr() net.Addr {
	if s.ln == nil {
		return nil
	}
	return s.ln.Addr()
}

// Serve runs the accept loop until Close. Each accepted connection gets
// its own handshake and receive-loop goroutine.
func (s *Server) Serve() error {
	for {
		conn, err := s.ln.Accept()
		if err != nil {
			if s.closing.Load() || errors.Is(err, net.ErrClosed) {
				return nil
			}
			return fmt.Errorf("accept: %w", err)
		}
		go s.handle(conn)
	}
}

// Close stops accepting and disconnects every registered player. Blocked
// reads fail once their sockets close, so all loops exit promptly.
func (s *Server) Close() error {
	s.closing.Store(true)
	var err error
	if s.ln != nil {
		err = s.ln.Close()
	}
	s.game.Shutdown()
	s.notifier.Log("--- Server stopped ---")
	return err
}

// handle runs the join handshake and, on success, the receive loop.
func (s *Server) handle(conn net.Conn) {
	remote := conn.RemoteAddr()

	// Late joiners are turned away before the username is even read.
	if s.game.State() != game.StateIdle {
		_, _ = conn.Write([]byte("Error: Game already started."))
		conn.Close()
		s.notifier.Log("Connection attempt rejected: Game in progress.")
		return
	}

	username, err := s.readUsername(conn)
	if err != nil {
		conn.Close()
		s.notifier.Log(fmt.Sprintf("Connection attempt from %s abandoned: %v", remote, err))
		return
	}

	handle := newLineConn(conn)
	if err := s.game.Join(username, handle); err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicateUsername):
			_, _ = conn.Write([]byte(fmt.Sprintf("Error: Username '%s' is already taken.", username)))
			s.notifier.Log(fmt.Sprintf("Connection attempt by '%s' rejected (Name taken).", username))
		case errors.Is(err, domain.ErrGameInProgress):
			_, _ = conn.Write([]byte("Error: Game already started."))
			s.notifier.Log("Connection attempt rejected: Game in progress.")
		default:
			_, _ = conn.Write([]byte("Error: Invalid username."))
			s.notifier.Log(fmt.Sprintf("Connection attempt from %s rejected: %v", remote, err))
		}
		conn.Close()
		return
	}

	// The handshake reply carries no newline; the peer frames it with a
	// single fixed-size read.
	if _, err := conn.Write([]byte("OK")); err != nil {
		s.game.Leave(username)
		return
	}
	s.notifier.Log(fmt.Sprintf("New connection from %s as '%s'", remote, username))

	s.receiveLoop(conn, username)
}

func (s *Server) readUsername(conn net.Conn) (string, error) {
	if err := conn.SetReadDeadline(time.Now().Add(s.handshakeTimeout)); err != nil {
		return "", err
	}
	buf := make([]byte, 1024)
	n, err := conn.Read(buf)
	if err != nil {
		return "", err
	}
	if err := conn.SetReadDeadline(time.Time{}); err != nil {
		return "", err
	}
	return strings.TrimSpace(string(buf[:n])), nil
}

// receiveLoop blocks on reads until data, close or error. Single A/B/C
// bytes become answer submissions; anything else is not an answer and is
// ignored. Any read failure is a terminal disconnect for this player.
func (s *Server) receiveLoop(conn net.Conn, username string) {
	buf := make([]byte, 1024)
	for {
		n, err := conn.Read(buf)
		if err != nil || n == 0 {
			s.game.Leave(username)
			return
		}
		if choice, ok := domain.ParseChoice(string(buf[:n])); ok {
			s.game.Submit(username, choice)
		}
	}
}
