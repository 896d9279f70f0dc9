package game

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"multiplayer-quiz/internal/domain"
)

// State is the round controller's position in a session.
type State int

const (
	// StateIdle means no game is running; players may join.
	StateIdle State = iota
	// StateBroadcasting is the transient window while a question goes out.
	StateBroadcasting
	// StateCollecting means a question is open for answers.
	StateCollecting
	// StateEvaluating is the transient window while a round is scored.
	StateEvaluating
)

var stateToString = map[State]string{
	StateIdle:         "idle",
	StateBroadcasting: "broadcasting",
	StateCollecting:   "collecting",
	StateEvaluating:   "evaluating",
}

func (s State) String() string {
	if str, ok := stateToString[s]; ok {
		return str
	}
	return "unknown"
}

// SubmitResult reports how a single answer submission was handled.
type SubmitResult int

const (
	SubmitAccepted SubmitResult = iota
	SubmitAlreadyAnswered
	SubmitRejected
)

// Game is one trivia session: the player registry, the round state
// machine, the per-round answer ledger and the cumulative scoreboard.
//
// Multiple goroutines may invoke methods on a Game simultaneously. One
// mutex guards all session state; message dispatch always happens with
// the lock released so a slow connection never blocks other players'
// receive loops.
type Game struct {
	notifier   Notifier
	minPlayers int

	mu      sync.Mutex
	players map[string]*Player
	scores  scoreboard
	bank    []domain.Question
	rounds  int
	state   State
	index   int // current question index, wraps around the bank
	asked   int
	round   ledger
}

// New returns an idle session. A nil notifier is allowed.
func New(minPlayers int, notifier Notifier) *Game {
	if minPlayers <= 0 {
		minPlayers = 2
	}
	if notifier == nil {
		notifier = nopNotifier{}
	}
	return &Game{
		notifier:   notifier,
		minPlayers: minPlayers,
		players:    make(map[string]*Player),
		scores:     make(scoreboard),
		state:      StateIdle,
		index:      -1,
		round:      newLedger(),
	}
}

// Join registers a player. It fails while a game is in progress, for a
// duplicate username (case-sensitive exact match) and for an empty name.
// The caller starts exactly one receive loop per accepted player.
func (g *Game) Join(username string, conn Conn) error {
	if strings.TrimSpace(username) == "" {
		return domain.ErrEmptyUsername
	}

	g.mu.Lock()
	if g.state != StateIdle {
		g.mu.Unlock()
		return domain.ErrGameInProgress
	}
	if _, taken := g.players[username]; taken {
		g.mu.Unlock()
		return domain.ErrDuplicateUsername
	}
	g.players[username] = &Player{Username: username, conn: conn}
	count, eligible := len(g.players), g.canStartLocked()
	g.mu.Unlock()

	g.notifier.LobbyUpdate(count, eligible)
	return nil
}

// Leave removes a player, releases their connection and withdraws them
// from the current round's quorum. If the removal completes the quorum
// the round evaluates with the remaining answers; if it leaves fewer than
// the minimum players mid-game, the game ends with a final scoreboard.
func (g *Game) Leave(username string) {
	g.mu.Lock()
	p, ok := g.players[username]
	if !ok {
		g.mu.Unlock()
		return
	}
	delete(g.players, username)
	g.round.remove(username)

	var followUp func()
	switch {
	case g.state != StateIdle && len(g.players) < g.minPlayers:
		followUp = g.endGameLocked()
	case g.quorumLocked():
		followUp = g.closeRoundLocked()
	}
	count, eligible := len(g.players), g.canStartLocked()
	g.mu.Unlock()

	p.conn.Close()
	g.notifier.Log(fmt.Sprintf("'%s' has disconnected.", username))
	g.broadcast(fmt.Sprintf("'%s' has left the chat.", username))
	if followUp != nil {
		followUp()
	}
	g.notifier.LobbyUpdate(count, eligible)
}

// Count returns the number of registered players.
func (g *Game) Count() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.players)
}

// Usernames returns the registered usernames in sorted order.
func (g *Game) Usernames() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	names := make([]string, 0, len(g.players))
	for u := range g.players {
		names = append(names, u)
	}
	sort.Strings(names)
	return names
}

// State returns the current round controller state.
func (g *Game) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// CanStart reports whether a start request would currently succeed.
func (g *Game) CanStart() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.canStartLocked()
}

func (g *Game) canStartLocked() bool {
	return len(g.bank) > 0 && g.rounds > 0 && len(g.players) >= g.minPlayers
}

// SetBank installs the question bank. An empty bank is rejected and the
// previously loaded bank stays in effect; so does a mid-game update.
func (g *Game) SetBank(questions []domain.Question) error {
	if len(questions) == 0 {
		return domain.ErrEmptyBank
	}
	g.mu.Lock()
	if g.state != StateIdle {
		g.mu.Unlock()
		return domain.ErrGameInProgress
	}
	g.bank = questions
	count, eligible := len(g.players), g.canStartLocked()
	g.mu.Unlock()

	g.notifier.LobbyUpdate(count, eligible)
	return nil
}

// SetRounds sets the target question count for the next game. Invalid
// values leave the previous count untouched.
func (g *Game) SetRounds(n int) error {
	if n <= 0 {
		return domain.ErrInvalidRounds
	}
	g.mu.Lock()
	if g.state != StateIdle {
		g.mu.Unlock()
		return domain.ErrGameInProgress
	}
	g.rounds = n
	count, eligible := len(g.players), g.canStartLocked()
	g.mu.Unlock()

	g.notifier.LobbyUpdate(count, eligible)
	return nil
}

// Rounds returns the configured target question count.
func (g *Game) Rounds() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rounds
}

// Standings returns the ongoing scoreboard.
func (g *Game) Standings() []domain.Standing {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.scores.ongoing()
}

// FinalStandings returns the tie-aware final scoreboard.
func (g *Game) FinalStandings() []domain.FinalStanding {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.scores.final()
}

// Start begins a new game if the bank is loaded, a round count is set and
// enough players are connected; otherwise it returns ErrNotReady and
// changes nothing.
func (g *Game) Start() error {
	g.mu.Lock()
	if g.state != StateIdle {
		g.mu.Unlock()
		return domain.ErrGameInProgress
	}
	if !g.canStartLocked() {
		g.mu.Unlock()
		return domain.ErrNotReady
	}

	g.state = StateBroadcasting
	g.index = -1
	g.asked = 0
	g.scores = make(scoreboard, len(g.players))
	for u := range g.players {
		g.scores[u] = 0
	}
	board := g.scores.renderOngoing()
	question := g.openRoundLocked()
	g.mu.Unlock()

	g.announce("--- Game Starting ---")
	g.announce("Scoreboard:")
	g.announce(board)
	g.announce(question)
	return nil
}

// Stop forces the session back to idle, broadcasting the final
// scoreboard first. Stopping an idle session is a no-op.
func (g *Game) Stop() {
	g.mu.Lock()
	if g.state == StateIdle {
		g.mu.Unlock()
		return
	}
	finish := g.endGameLocked()
	g.mu.Unlock()
	finish()
}

// Submit records one player's answer for the open round. The result is
// surfaced to that player only; acceptance of the final missing answer
// closes the round.
func (g *Game) Submit(username string, choice domain.Choice) SubmitResult {
	if !choice.Valid() {
		return SubmitRejected
	}

	g.mu.Lock()
	if g.state != StateCollecting {
		g.mu.Unlock()
		g.unicast(username, "No question is open for answers")
		return SubmitRejected
	}
	if _, ok := g.players[username]; !ok {
		g.mu.Unlock()
		return SubmitRejected
	}
	if g.round.has(username) {
		g.mu.Unlock()
		g.notifier.Log(fmt.Sprintf("Error: '%s' already answered.", username))
		g.unicast(username, "You already answered")
		return SubmitAlreadyAnswered
	}

	g.round.record(username, choice)
	var followUp func()
	if g.quorumLocked() {
		followUp = g.closeRoundLocked()
	}
	g.mu.Unlock()

	g.unicast(username, fmt.Sprintf("Your answer: '%s' is received", choice))
	if followUp != nil {
		g.notifier.Log("----------------------")
		followUp()
	}
	return SubmitAccepted
}

// quorumLocked is the single quorum check consulted by both the submit
// and the leave path, always under g.mu.
func (g *Game) quorumLocked() bool {
	return g.state == StateCollecting && len(g.players) > 0 && g.round.count() == len(g.players)
}

// openRoundLocked advances to the next question (wrapping around a bank
// smaller than the round target), opens a fresh ledger and returns the
// question broadcast text.
func (g *Game) openRoundLocked() string {
	g.round.reset()
	if g.index+1 >= len(g.bank) {
		g.index = 0
	} else {
		g.index++
	}
	g.asked++
	g.state = StateCollecting

	q := g.bank[g.index]
	return fmt.Sprintf("--- Question %d / %d ---\n%s\nA - %s\nB - %s\nC - %s",
		g.asked, g.rounds, q.Text, q.OptionA, q.OptionB, q.OptionC)
}

// closeRoundLocked transitions Collecting to Evaluating and scores
// the round. The transition under the held lock is what makes evaluation
// fire exactly once even when the last answer and a disconnect race. It
// returns the dispatch work to run after the lock is released.
func (g *Game) closeRoundLocked() func() {
	g.state = StateEvaluating

	q := g.bank[g.index]
	correct := q.Answer

	var firstCorrect string
	for _, u := range g.round.order {
		if g.round.submitted[u] == correct {
			firstCorrect = u
			break
		}
	}

	playerCount := len(g.players)
	type verdict struct{ username, text string }
	verdicts := make([]verdict, 0, len(g.round.order))
	for _, u := range g.round.order {
		switch {
		case g.round.submitted[u] == correct && u == firstCorrect:
			bonus := playerCount - 1
			g.scores[u] += 1 + bonus
			verdicts = append(verdicts, verdict{u, fmt.Sprintf("%s is first and correct +1 point and (bonus +%d Points).", u, bonus)})
		case g.round.submitted[u] == correct:
			g.scores[u]++
			verdicts = append(verdicts, verdict{u, fmt.Sprintf("%s your answer is correct +1 Point.", u)})
		default:
			verdicts = append(verdicts, verdict{u, fmt.Sprintf("%s your answer is wrong 0 Point.", u)})
		}
	}
	g.round.reset()
	board := g.scores.renderOngoing()

	return func() {
		g.announce("Correct Answer: " + string(correct))
		for _, v := range verdicts {
			g.notifier.Log(v.text)
			g.unicast(v.username, v.text)
		}
		g.announce(board)
		g.advance()
	}
}

// advance opens the next round, or ends the game once the target count
// has been asked. It aborts if the state changed underneath it (an
// explicit stop or a below-minimum disconnect during dispatch).
func (g *Game) advance() {
	g.mu.Lock()
	if g.state != StateEvaluating {
		g.mu.Unlock()
		return
	}
	if g.asked >= g.rounds {
		finish := g.endGameLocked()
		g.mu.Unlock()
		g.announce("--- Game Over ---")
		finish()
		return
	}
	g.state = StateBroadcasting
	question := g.openRoundLocked()
	g.mu.Unlock()

	g.announce(question)
}

// Shutdown closes every player connection and resets the session to
// idle without broadcasting; used when the server stops listening.
func (g *Game) Shutdown() {
	g.mu.Lock()
	players := make([]*Player, 0, len(g.players))
	for _, p := range g.players {
		players = append(players, p)
	}
	g.players = make(map[string]*Player)
	g.round.reset()
	g.state = StateIdle
	g.mu.Unlock()

	for _, p := range players {
		p.conn.Close()
		g.notifier.Log(fmt.Sprintf("'%s' has disconnected.", p.Username))
	}
	g.notifier.LobbyUpdate(0, false)
}

// endGameLocked resets to idle and returns the final-scoreboard dispatch
// to run after the lock is released. No new ledger is opened.
func (g *Game) endGameLocked() func() {
	g.state = StateIdle
	g.round.reset()
	final := g.scores.renderFinal()
	return func() {
		g.announce(final)
		g.announce("--- Game Ended ---")
	}
}
