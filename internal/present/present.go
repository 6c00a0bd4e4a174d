// apps/go-server/internal/present/present.go
//
// Presentation adapter between the game engine and whatever shows the game
// (the browser page through HTTP, or a terminal).
//
// The adapter is the only place that knows about display text and sound
// cues: it turns each engine Outcome into a DisplayState render plus zero or
// more Notifications, and gates cues behind a per-player mute toggle.

package present

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/robalobadob/forca/apps/go-server/internal/game"
	"github.com/robalobadob/forca/apps/go-server/internal/words"
)

// Cue names an audio trigger; the empty cue means "no sound".
type Cue string

const (
	CueNone    Cue = ""
	CueCorrect Cue = "correct"
	CueWrong   Cue = "wrong"
	CueWon     Cue = "won"
	CueLost    Cue = "lost"
)

// Notification is one message for the player.
// End marks the won/lost announcement that closes a game.
type Notification struct {
	Text string `json:"text"`
	Cue  Cue    `json:"cue,omitempty"`
	End  bool   `json:"end,omitempty"`
}

// Sink receives everything the player should see.
type Sink interface {
	Render(game.DisplayState)
	Notify(Notification)
}

// Player-facing texts.
const (
	TextInvalidInput     = "Por favor, insira uma única letra válida."
	TextAlreadyGuessed   = "Você já tentou essa letra."
	TextNoActiveSession  = "Nenhum jogo em andamento para revelar."
	TextSessionNotActive = "O jogo terminou. Comece um novo jogo."
	TextBusy             = "Aguarde, a tentativa anterior ainda está em processamento."
	textReveal           = "A palavra é: %s"
	textWrong            = "%s Tentativas restantes: %d."
	textWon              = "Parabéns, você ganhou! A palavra era %s."
	textLost             = "Você perdeu! A palavra era %s."
)

// Adapter drives one engine for one player.
type Adapter struct {
	engine *game.Engine
	pools  words.Pools
	muted  atomic.Bool

	mu       sync.Mutex
	lastSeen time.Time
}

// NewAdapter wraps engine; pools are shared and never modified.
func NewAdapter(engine *game.Engine, pools words.Pools) *Adapter {
	return &Adapter{engine: engine, pools: pools, lastSeen: time.Now()}
}

// Engine exposes the wrapped engine (read access for history and state routes).
func (a *Adapter) Engine() *game.Engine { return a.engine }

// NewGame starts a new session and renders it.
func (a *Adapter) NewGame(sink Sink) error {
	a.touch()
	st, err := a.engine.Start(a.pools.Words, a.pools.Correct, a.pools.Wrong)
	if err != nil {
		sink.Notify(Notification{Text: TextBusy})
		return err
	}
	sink.Render(st)
	return nil
}

// Guess submits input and reports the result to sink.
func (a *Adapter) Guess(input string, sink Sink) game.Outcome {
	a.touch()
	out := a.engine.SubmitGuess(input)

	a.notify(sink, feedback(out))
	if out.Kind.Mutating() {
		if st, ok := a.engine.State(); ok {
			sink.Render(st)
		}
	}
	if out.Ended() {
		a.notify(sink, announcement(out))
	}
	return out
}

func (a *Adapter) notify(sink Sink, n Notification) {
	if a.muted.Load() {
		n.Cue = CueNone
	}
	sink.Notify(n)
}

// ToggleMute flips the mute flag and returns the new value.
func (a *Adapter) ToggleMute() bool {
	for {
		cur := a.muted.Load()
		if a.muted.CompareAndSwap(cur, !cur) {
			return !cur
		}
	}
}

// Muted reports whether cues are currently suppressed.
func (a *Adapter) Muted() bool { return a.muted.Load() }

// LastSeen is the time of the last NewGame or Guess call.
func (a *Adapter) LastSeen() time.Time {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.lastSeen
}

func (a *Adapter) touch() {
	a.mu.Lock()
	a.lastSeen = time.Now()
	a.mu.Unlock()
}

// feedback maps an outcome to the message shown for it.
func feedback(out game.Outcome) Notification {
	switch out.Kind {
	case game.KindCorrect:
		return Notification{Text: out.Message, Cue: CueCorrect}
	case game.KindIncorrect:
		return Notification{Text: fmt.Sprintf(textWrong, out.Message, out.AttemptsRemaining), Cue: CueWrong}
	case game.KindInvalidInput:
		return Notification{Text: TextInvalidInput}
	case game.KindAlreadyGuessed:
		return Notification{Text: TextAlreadyGuessed}
	case game.KindRevealSecret:
		return Notification{Text: fmt.Sprintf(textReveal, out.Secret)}
	case game.KindNoActiveSession:
		return Notification{Text: TextNoActiveSession}
	case game.KindSessionNotActive:
		return Notification{Text: TextSessionNotActive}
	default:
		return Notification{Text: TextBusy}
	}
}

// announcement closes a finished game with its secret word. The secret comes
// from the outcome itself; the session may already have been replaced.
func announcement(out game.Outcome) Notification {
	secret := ""
	if out.Final != nil {
		secret = out.Final.Secret
	}
	if out.Status == game.StatusWon {
		return Notification{Text: fmt.Sprintf(textWon, secret), Cue: CueWon, End: true}
	}
	return Notification{Text: fmt.Sprintf(textLost, secret), Cue: CueLost, End: true}
}

// Recorder is a Sink that keeps everything it receives.
type Recorder struct {
	Display       *game.DisplayState
	Notifications []Notification
}

// Render implements Sink; only the latest state is kept.
func (r *Recorder) Render(st game.DisplayState) { r.Display = &st }

// Notify implements Sink.
func (r *Recorder) Notify(n Notification) { r.Notifications = append(r.Notifications, n) }
