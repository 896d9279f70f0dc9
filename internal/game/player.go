package game

// Conn is the transport handle owned by a player for its lifetime.
// WriteLine must append the protocol's newline terminator; implementations
// must be safe for concurrent use since broadcasts and unicasts can run
// from different goroutines.
type Conn interface {
	WriteLine(line string) error
	Close() error
}

// Player is a registered session member. Identity is the username,
// enforced unique at join time.
type Player struct {
	Username string
	conn     Conn
}
