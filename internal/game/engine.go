// apps/go-server/internal/game/engine.go
//
// Core game engine for a single hangman session.
// Responsibilities:
//   - Start new sessions from caller-supplied word/message pools.
//   - Validate and apply letter guesses.
//   - Track state transitions: active → won/lost.
//   - Pick feedback messages through a pluggable Picker.
//
// Notes:
//   - The engine performs no I/O; pools arrive already loaded.
//   - Expected conditions (bad input, repeats, no session) are Outcome kinds, not errors.
//   - A reentrancy guard rejects overlapping Start/SubmitGuess calls.
package game

import (
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Engine owns one session and the message pools it was started with.
type Engine struct {
	picker Picker
	now    func() time.Time

	busy atomic.Bool  // reentrancy guard for Start/SubmitGuess
	mu   sync.RWMutex // guards the fields below for concurrent readers

	session *Session
	correct []string
	wrong   []string
}

// Option configures an Engine.
type Option func(*Engine)

// WithPicker replaces the random source used for word and message selection.
func WithPicker(p Picker) Option {
	return func(e *Engine) {
		if p != nil {
			e.picker = p
		}
	}
}

// WithClock replaces time.Now for session timestamps.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// New constructs an Engine with no session.
func New(opts ...Option) *Engine {
	e := &Engine{picker: CryptoPicker{}, now: time.Now}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Start replaces the current session with a fresh one.
// An empty word pool, or a picked word that is not all A–Z after
// upper-casing, degrades to SentinelWord; empty message pools degrade to the
// default messages. Start only fails when another call is in flight.
func (e *Engine) Start(wordPool, correctMessages, wrongMessages []string) (DisplayState, error) {
	if !e.busy.CompareAndSwap(false, true) {
		return DisplayState{}, ErrBusy
	}
	defer e.busy.Store(false)

	secret := SentinelWord
	if len(wordPool) > 0 {
		secret = strings.ToUpper(strings.TrimSpace(pick(e.picker, wordPool)))
	}
	if !guessable(secret) {
		secret = SentinelWord
	}

	pattern := make([]rune, 0, len(secret))
	for range secret {
		pattern = append(pattern, Placeholder)
	}

	s := &Session{
		ID:                uuid.NewString(),
		Secret:            secret,
		Pattern:           pattern,
		Wrong:             []rune{},
		Correct:           make(map[rune]struct{}),
		AttemptsRemaining: DefaultAttempts,
		Status:            StatusActive,
		StartedAt:         e.now().UTC(),
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.session = s
	e.correct = withDefault(correctMessages, DefaultCorrectMessage)
	e.wrong = withDefault(wrongMessages, DefaultWrongMessage)
	return s.display(), nil
}

// SubmitGuess applies one raw input to the session.
//
// Order of checks:
//   - "debug" (any case) reveals the secret without touching state.
//   - No session → NoActiveSession; finished session → SessionNotActive.
//   - Anything but a single ASCII letter → InvalidInput.
//   - A letter already tried → AlreadyGuessed.
//
// Otherwise the guess is Correct (every occurrence revealed) or Incorrect
// (one attempt spent). Win is checked before loss.
func (e *Engine) SubmitGuess(raw string) Outcome {
	if !e.busy.CompareAndSwap(false, true) {
		return Outcome{Kind: KindBusy}
	}
	defer e.busy.Store(false)

	input := strings.TrimSpace(raw)

	e.mu.Lock()
	defer e.mu.Unlock()
	s := e.session

	if strings.EqualFold(input, "debug") {
		if s == nil {
			return Outcome{Kind: KindNoActiveSession}
		}
		return s.outcome(KindRevealSecret, func(o *Outcome) { o.Secret = s.Secret })
	}
	if s == nil {
		return Outcome{Kind: KindNoActiveSession}
	}
	if s.Status != StatusActive {
		return s.outcome(KindSessionNotActive, nil)
	}

	letter, ok := parseLetter(input)
	if !ok {
		return s.outcome(KindInvalidInput, nil)
	}
	if s.tried(letter) {
		return s.outcome(KindAlreadyGuessed, func(o *Outcome) { o.Letter = string(letter) })
	}

	var out Outcome
	if n := s.reveal(letter); n > 0 {
		s.Correct[letter] = struct{}{}
		msg := pick(e.picker, e.correct)
		out = Outcome{Kind: KindCorrect, Letter: string(letter), Message: msg, Revealed: n}
	} else {
		s.Wrong = append(s.Wrong, letter)
		if s.AttemptsRemaining > 0 {
			s.AttemptsRemaining--
		}
		msg := pick(e.picker, e.wrong)
		out = Outcome{Kind: KindIncorrect, Letter: string(letter), Message: msg}
	}

	switch {
	case !s.hasPlaceholder():
		s.Status = StatusWon
	case s.AttemptsRemaining <= 0:
		s.Status = StatusLost
	}
	if s.Status.Finished() {
		s.FinishedAt = e.now().UTC()
		final := s.snapshot()
		out.Final = &final
	}

	out.AttemptsRemaining = s.AttemptsRemaining
	out.Status = s.Status
	return out
}

// State returns the display state, or false when no game was started.
func (e *Engine) State() (DisplayState, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.session == nil {
		return DisplayState{}, false
	}
	return e.session.display(), true
}

// Snapshot returns a detached copy of the session.
func (e *Engine) Snapshot() (Snapshot, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.session == nil {
		return Snapshot{}, false
	}
	return e.session.snapshot(), true
}

func (s *Session) snapshot() Snapshot {
	return Snapshot{
		ID:                s.ID,
		Secret:            s.Secret,
		Pattern:           string(s.Pattern),
		WrongLetters:      string(s.Wrong),
		AttemptsRemaining: s.AttemptsRemaining,
		Status:            s.Status,
		StartedAt:         s.StartedAt,
		FinishedAt:        s.FinishedAt,
	}
}

// outcome builds a non-mutating outcome carrying the current counters.
func (s *Session) outcome(k Kind, fill func(*Outcome)) Outcome {
	o := Outcome{Kind: k, AttemptsRemaining: s.AttemptsRemaining, Status: s.Status}
	if fill != nil {
		fill(&o)
	}
	return o
}

// reveal uncovers every position holding letter and returns how many.
func (s *Session) reveal(letter rune) int {
	n := 0
	for i, r := range []rune(s.Secret) {
		if r == letter {
			s.Pattern[i] = letter
			n++
		}
	}
	return n
}

func (s *Session) tried(letter rune) bool {
	if _, ok := s.Correct[letter]; ok {
		return true
	}
	for _, w := range s.Wrong {
		if w == letter {
			return true
		}
	}
	return false
}

func (s *Session) hasPlaceholder() bool {
	for _, r := range s.Pattern {
		if r == Placeholder {
			return true
		}
	}
	return false
}

func (s *Session) display() DisplayState {
	correct := 0
	for _, r := range s.Pattern {
		if r != Placeholder {
			correct++
		}
	}
	return DisplayState{
		Pattern:           string(s.Pattern),
		CorrectCount:      correct,
		WrongCount:        len(s.Wrong),
		WrongLetters:      string(s.Wrong),
		AttemptsRemaining: s.AttemptsRemaining,
		Status:            s.Status,
	}
}

// parseLetter accepts exactly one ASCII letter and upper-cases it.
func parseLetter(input string) (rune, bool) {
	if len(input) != 1 {
		return 0, false
	}
	c := rune(input[0])
	switch {
	case c >= 'A' && c <= 'Z':
		return c, true
	case c >= 'a' && c <= 'z':
		return c - 'a' + 'A', true
	}
	return 0, false
}

// guessable reports whether every rune of w can be produced by parseLetter.
func guessable(w string) bool {
	if w == "" {
		return false
	}
	for _, r := range w {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

func withDefault(pool []string, def string) []string {
	out := make([]string, 0, len(pool))
	for _, m := range pool {
		if m = strings.TrimSpace(m); m != "" {
			out = append(out, m)
		}
	}
	if len(out) == 0 {
		return []string{def}
	}
	return out
}
