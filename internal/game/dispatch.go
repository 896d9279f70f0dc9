package game

import "fmt"

// broadcast delivers a newline-terminated message to every registered
// player. A failed send evicts exactly that player; delivery to the
// others continues. The registry lock is not held during writes.
func (g *Game) broadcast(message string) {
	g.mu.Lock()
	targets := make([]*Player, 0, len(g.players))
	for _, p := range g.players {
		targets = append(targets, p)
	}
	g.mu.Unlock()

	for _, p := range targets {
		if err := p.conn.WriteLine(message); err != nil {
			g.Leave(p.Username)
		}
	}
}

// unicast delivers a message to one player by username. An unknown
// username is a local log, not an error for the caller; a failed send
// evicts the player.
func (g *Game) unicast(username, message string) {
	g.mu.Lock()
	p, ok := g.players[username]
	g.mu.Unlock()

	if !ok {
		g.notifier.Log(fmt.Sprintf("Error: Player '%s' not found.", username))
		return
	}
	if err := p.conn.WriteLine(message); err != nil {
		g.notifier.Log(fmt.Sprintf("Error sending message to '%s'. Disconnecting.", username))
		g.Leave(username)
	}
}

// announce mirrors a broadcast onto the operator transcript so the
// console sees every game message players see.
func (g *Game) announce(message string) {
	g.notifier.Log(message)
	g.broadcast(message)
}
