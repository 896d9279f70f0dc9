package game

// Notifier is the operator surface: the transcript log and the lobby
// signals the console renders. Implementations must not call back into
// the Game synchronously from Log or LobbyUpdate.
type Notifier interface {
	// Log appends one line (possibly multi-line text) to the operator transcript.
	Log(line string)
	// LobbyUpdate reports the connected player count and whether a game
	// could be started right now.
	LobbyUpdate(players int, canStart bool)
}

type nopNotifier struct{}

func (nopNotifier) Log(string)            {}
func (nopNotifier) LobbyUpdate(int, bool) {}

// NopNotifier returns a notifier that discards everything.
func NopNotifier() Notifier {
	return nopNotifier{}
}
