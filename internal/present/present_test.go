package present

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/forca/apps/go-server/internal/game"
	"github.com/robalobadob/forca/apps/go-server/internal/words"
)

func newAdapter(t *testing.T, secret string) (*Adapter, *Recorder) {
	t.Helper()
	eng := game.New(game.WithPicker(game.PickerFunc(func(int) int { return 0 })))
	a := NewAdapter(eng, words.Pools{
		Words:   []string{secret},
		Correct: []string{"Boa!"},
		Wrong:   []string{"Errou!"},
	})
	rec := &Recorder{}
	require.NoError(t, a.NewGame(rec))
	return a, rec
}

func TestNewGame_Renders(t *testing.T) {
	_, rec := newAdapter(t, "SOL")
	require.NotNil(t, rec.Display)
	assert.Equal(t, "___", rec.Display.Pattern)
	assert.Empty(t, rec.Notifications)
}

func TestGuess_Notifications(t *testing.T) {
	tests := []struct {
		name   string
		inputs []string
		want   Notification
		render bool
	}{
		{"correct", []string{"s"}, Notification{Text: "Boa!", Cue: CueCorrect}, true},
		{"incorrect", []string{"x"}, Notification{Text: "Errou! Tentativas restantes: 6.", Cue: CueWrong}, true},
		{"invalid", []string{"ab"}, Notification{Text: TextInvalidInput}, false},
		{"repeat", []string{"x", "X"}, Notification{Text: TextAlreadyGuessed}, false},
		{"debug", []string{"debug"}, Notification{Text: "A palavra é: SOL"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, _ := newAdapter(t, "SOL")
			for _, in := range tt.inputs[:len(tt.inputs)-1] {
				a.Guess(in, &Recorder{})
			}
			rec := &Recorder{}
			a.Guess(tt.inputs[len(tt.inputs)-1], rec)
			require.Len(t, rec.Notifications, 1)
			assert.Equal(t, tt.want, rec.Notifications[0])
			assert.Equal(t, tt.render, rec.Display != nil)
		})
	}
}

func TestGuess_WinAnnouncement(t *testing.T) {
	a, _ := newAdapter(t, "OI")
	a.Guess("o", &Recorder{})

	rec := &Recorder{}
	out := a.Guess("i", rec)
	assert.Equal(t, game.StatusWon, out.Status)
	require.Len(t, rec.Notifications, 2)
	assert.Equal(t, Notification{Text: "Parabéns, você ganhou! A palavra era OI.", Cue: CueWon, End: true}, rec.Notifications[1])
	require.NotNil(t, rec.Display)
	assert.Equal(t, "OI", rec.Display.Pattern)

	rec = &Recorder{}
	a.Guess("z", rec)
	assert.Equal(t, []Notification{{Text: TextSessionNotActive}}, rec.Notifications)
}

func TestGuess_LossAnnouncement(t *testing.T) {
	a, _ := newAdapter(t, "SOL")
	rec := &Recorder{}
	for _, l := range []string{"b", "c", "d", "f", "h", "j", "k"} {
		rec = &Recorder{}
		a.Guess(l, rec)
	}
	require.Len(t, rec.Notifications, 2)
	assert.Equal(t, "Errou! Tentativas restantes: 0.", rec.Notifications[0].Text)
	assert.Equal(t, Notification{Text: "Você perdeu! A palavra era SOL.", Cue: CueLost, End: true}, rec.Notifications[1])
}

func TestGuess_MutedStripsCues(t *testing.T) {
	a, _ := newAdapter(t, "A")
	assert.True(t, a.ToggleMute())
	assert.True(t, a.Muted())

	rec := &Recorder{}
	a.Guess("a", rec)
	require.Len(t, rec.Notifications, 2)
	for _, n := range rec.Notifications {
		assert.Equal(t, CueNone, n.Cue)
	}

	assert.False(t, a.ToggleMute())
}

func TestGuess_NoGame(t *testing.T) {
	a := NewAdapter(game.New(), words.Pools{})
	rec := &Recorder{}
	out := a.Guess("debug", rec)
	assert.Equal(t, game.KindNoActiveSession, out.Kind)
	assert.Equal(t, []Notification{{Text: TextNoActiveSession}}, rec.Notifications)
	assert.Nil(t, rec.Display)
}

func TestLastSeen_Advances(t *testing.T) {
	a, _ := newAdapter(t, "SOL")
	before := a.LastSeen()
	a.Guess("s", &Recorder{})
	assert.False(t, a.LastSeen().Before(before))
}

// restartingSink starts a new game the first time it renders a finished board.
type restartingSink struct {
	Recorder
	a    *Adapter
	next *int
}

func (s *restartingSink) Render(st game.DisplayState) {
	s.Recorder.Render(st)
	if st.Status.Finished() {
		*s.next = 1
		_ = s.a.NewGame(&Recorder{})
	}
}

func TestGuess_AnnouncesFinishedSecretAfterRestart(t *testing.T) {
	next := 0
	eng := game.New(game.WithPicker(game.PickerFunc(func(n int) int { return min(next, n-1) })))
	a := NewAdapter(eng, words.Pools{Words: []string{"OI", "SEGREDO"}, Correct: []string{"Boa!"}, Wrong: []string{"Errou!"}})
	require.NoError(t, a.NewGame(&Recorder{}))

	sink := &restartingSink{a: a, next: &next}
	a.Guess("o", sink)
	out := a.Guess("i", sink)
	assert.Equal(t, game.StatusWon, out.Status)

	require.NotEmpty(t, sink.Notifications)
	end := sink.Notifications[len(sink.Notifications)-1]
	assert.True(t, end.End)
	assert.Equal(t, "Parabéns, você ganhou! A palavra era OI.", end.Text)

	snap, ok := eng.Snapshot()
	require.True(t, ok)
	assert.Equal(t, "SEGREDO", snap.Secret)
}
