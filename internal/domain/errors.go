package domain

import "errors"

var (
	// ErrDuplicateUsername is returned when a joining player's name is already taken.
	ErrDuplicateUsername = errors.New("username already taken")
	// ErrGameInProgress is returned when a player tries to join mid-game.
	ErrGameInProgress = errors.New("game already started")
	// ErrEmptyUsername is returned for a malformed handshake with no name.
	ErrEmptyUsername = errors.New("empty username")
	// ErrNotReady is returned when a start request arrives before the
	// bank, round count and minimum player count are all in place.
	ErrNotReady = errors.New("game cannot start yet")
	// ErrInvalidRounds rejects a non-positive round count. The previously
	// configured count stays in effect.
	ErrInvalidRounds = errors.New("round count must be a positive integer")
	// ErrEmptyBank rejects a question bank with no usable questions.
	ErrEmptyBank = errors.New("no questions found or file format is incorrect")
	// ErrSetNotFound indicates the named question set could not be loaded.
	ErrSetNotFound = errors.New("question set not found")
)
