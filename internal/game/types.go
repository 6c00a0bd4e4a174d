// apps/go-server/internal/game/types.go
//
// Core type definitions for the hangman game engine.
// Defines:
//   - Status: lifecycle of a session (active/won/lost).
//   - Kind + Outcome: discriminated result of a guess attempt.
//   - Session: state of the single game owned by an Engine.
//   - DisplayState / Snapshot: read-only views handed to callers.

package game

import (
	"errors"
	"time"
)

// Placeholder stands in for every unrevealed letter of the secret.
const Placeholder = '_'

// DefaultAttempts is the wrong-guess budget of every session.
const DefaultAttempts = 7

// SentinelWord is used when Start receives an empty word pool.
const SentinelWord = "ERRO"

// Default messages used when a message pool is empty.
const (
	DefaultCorrectMessage = "Você acertou uma letra!"
	DefaultWrongMessage   = "Letra incorreta!"
)

// ErrBusy is returned by Start when another call is still in flight.
var ErrBusy = errors.New("game: engine busy")

// Status is the lifecycle state of a session.
// Active is the only non-terminal state.
type Status string

const (
	StatusActive Status = "active"
	StatusWon    Status = "won"
	StatusLost   Status = "lost"
)

// Finished reports whether s is terminal.
func (s Status) Finished() bool { return s == StatusWon || s == StatusLost }

// Kind discriminates the Outcome of a SubmitGuess call.
type Kind string

const (
	KindCorrect          Kind = "correct"
	KindIncorrect        Kind = "incorrect"
	KindAlreadyGuessed   Kind = "already_guessed"
	KindInvalidInput     Kind = "invalid_input"
	KindRevealSecret     Kind = "reveal_secret"
	KindNoActiveSession  Kind = "no_active_session"
	KindSessionNotActive Kind = "session_not_active"
	KindBusy             Kind = "busy"
)

// Mutating reports whether an outcome of this kind changed the session.
func (k Kind) Mutating() bool { return k == KindCorrect || k == KindIncorrect }

// Outcome is the result of a single SubmitGuess call.
type Outcome struct {
	Kind              Kind   `json:"kind"`
	Letter            string `json:"letter,omitempty"`   // normalized guess (Correct/Incorrect/AlreadyGuessed)
	Message           string `json:"message,omitempty"`  // randomly picked feedback (Correct/Incorrect)
	Secret            string `json:"secret,omitempty"`   // RevealSecret only
	Revealed          int    `json:"revealed,omitempty"` // positions uncovered by a Correct guess
	AttemptsRemaining int    `json:"attemptsRemaining"`
	Status            Status `json:"status,omitempty"` // empty when there is no session

	// Final is the session as it ended, set only on the guess that finished it.
	Final *Snapshot `json:"-"`
}

// Ended reports whether this outcome moved the session into a terminal state.
func (o Outcome) Ended() bool { return o.Kind.Mutating() && o.Status.Finished() }

// Session holds the state of one game.
type Session struct {
	ID                string
	Secret            string
	Pattern           []rune
	Wrong             []rune
	Correct           map[rune]struct{}
	AttemptsRemaining int
	Status            Status
	StartedAt         time.Time
	FinishedAt        time.Time
}

// DisplayState is what a presentation layer renders after each mutating call.
type DisplayState struct {
	Pattern           string `json:"pattern"`
	CorrectCount      int    `json:"correctCount"`
	WrongCount        int    `json:"wrongCount"`
	WrongLetters      string `json:"wrongLetters"`
	AttemptsRemaining int    `json:"attemptsRemaining"`
	Status            Status `json:"status"`
}

// Snapshot is a detached copy of a session, secret included.
type Snapshot struct {
	ID                string
	Secret            string
	Pattern           string
	WrongLetters      string
	AttemptsRemaining int
	Status            Status
	StartedAt         time.Time
	FinishedAt        time.Time
}
