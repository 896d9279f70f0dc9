package game

import "multiplayer-quiz/internal/domain"

// ledger is the per-round record of who answered what and in which order.
// It holds no lock of its own; every method runs under the owning Game's
// mutex. A username appears at most once per round, and order always has
// exactly one entry per member of the answered set.
type ledger struct {
	submitted map[string]domain.Choice
	order     []string
	answered  map[string]struct{}
}

func newLedger() ledger {
	l := ledger{}
	l.reset()
	return l
}

// reset clears the ledger atomically at the start of every round.
func (l *ledger) reset() {
	l.submitted = make(map[string]domain.Choice)
	l.order = l.order[:0]
	l.answered = make(map[string]struct{})
}

func (l *ledger) has(username string) bool {
	_, ok := l.answered[username]
	return ok
}

func (l *ledger) record(username string, choice domain.Choice) {
	if l.has(username) {
		return
	}
	l.submitted[username] = choice
	l.order = append(l.order, username)
	l.answered[username] = struct{}{}
}

// remove withdraws a player's answer when they leave mid-round, so the
// quorum denominator and the recorded answers stay consistent.
func (l *ledger) remove(username string) {
	if !l.has(username) {
		return
	}
	delete(l.submitted, username)
	delete(l.answered, username)
	for i, u := range l.order {
		if u == username {
			l.order = append(l.order[:i], l.order[i+1:]...)
			break
		}
	}
}

func (l *ledger) count() int {
	return len(l.answered)
}
