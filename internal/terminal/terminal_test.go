package terminal

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/forca/apps/go-server/internal/game"
	"github.com/robalobadob/forca/apps/go-server/internal/present"
	"github.com/robalobadob/forca/apps/go-server/internal/words"
)

func newClient(input string, prompt bool) (*Client, *bytes.Buffer) {
	eng := game.New(game.WithPicker(game.PickerFunc(func(int) int { return 0 })))
	pools := words.Pools{Words: []string{"SOL"}, Correct: []string{"Boa!"}, Wrong: []string{"Errou!"}}
	var out bytes.Buffer
	return New(present.NewAdapter(eng, pools), strings.NewReader(input), &out, prompt), &out
}

func TestRun_Win(t *testing.T) {
	c, out := newClient("s\nO\nl\n", false)
	require.NoError(t, c.Run(context.Background()))

	text := out.String()
	assert.Contains(t, text, "Palavra: _ _ _")
	assert.Contains(t, text, "Palavra: S O L")
	assert.Contains(t, text, "[som: correct] Boa!")
	assert.Contains(t, text, "[som: won] Parabéns, você ganhou! A palavra era SOL.")
	assert.NotContains(t, text, "> ")
}

func TestRun_CommandsAndMute(t *testing.T) {
	c, out := newClient("/som\nx\n\n/som\nab\n/sair\nq\n", true)
	require.NoError(t, c.Run(context.Background()))

	text := out.String()
	assert.Contains(t, text, "Sons desligados.")
	assert.Contains(t, text, "Errou! Tentativas restantes: 6.")
	assert.NotContains(t, text, "[som: wrong]")
	assert.Contains(t, text, "Sons ligados.")
	assert.Contains(t, text, present.TextInvalidInput)
	assert.Contains(t, text, "Até a próxima!")
	assert.Contains(t, text, "> ")

	// q after /sair is never read as a guess.
	assert.Equal(t, 1, strings.Count(text, "Tentativas restantes: 6."))
}

func TestRun_NewGameAfterLoss(t *testing.T) {
	c, out := newClient("a\nb\nc\nd\ne\nf\ng\nh\n/novo\n", false)
	require.NoError(t, c.Run(context.Background()))

	text := out.String()
	assert.Contains(t, text, "[som: lost] Você perdeu! A palavra era SOL.")
	assert.Contains(t, text, present.TextSessionNotActive)
	assert.Equal(t, 2, strings.Count(text, "Erradas: - | Tentativas restantes: 7"))
}

func TestRun_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c, out := newClient("s\n", false)
	require.NoError(t, c.Run(ctx))
	assert.NotContains(t, out.String(), "Boa!")
}

func TestRun_CancelWhileWaitingForInput(t *testing.T) {
	pr, pw := io.Pipe()
	t.Cleanup(func() { _ = pw.Close() })

	eng := game.New(game.WithPicker(game.PickerFunc(func(int) int { return 0 })))
	var out bytes.Buffer
	c := New(present.NewAdapter(eng, words.Pools{Words: []string{"SOL"}}), pr, &out, false)

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- c.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-errc:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run kept waiting for input after cancellation")
	}
}
