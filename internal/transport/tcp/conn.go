package tcp

import (
	"net"
	"sync"
)

// lineConn wraps a player socket as a game.Conn. Writes append the
// protocol's newline terminator and are serialized: broadcasts, unicasts
// and leave notices can arrive from different goroutines.
type lineConn struct {
	mu   sync.Mutex
	conn net.Conn
}

func newLineConn(conn net.Conn) *lineConn {
	return &lineConn{conn: conn}
}

func (c *lineConn) WriteLine(line string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, err := c.conn.Write([]byte(line + "\n"))
	return err
}

func (c *lineConn) Close() error {
	return c.conn.Close()
}
