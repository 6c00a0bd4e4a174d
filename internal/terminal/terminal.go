// Package terminal plays hangman on a line-oriented terminal: one guess or
// command per line on the input, rendered boards and messages on the output.
package terminal

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/robalobadob/forca/apps/go-server/internal/game"
	"github.com/robalobadob/forca/apps/go-server/internal/present"
)

// Commands recognised besides plain guesses.
const (
	CmdNew   = "/novo"
	CmdSound = "/som"
	CmdQuit  = "/sair"
)

const help = "Comandos: /novo (novo jogo), /som (liga/desliga sons), /sair."

// IsInteractive reports whether f is attached to a terminal.
func IsInteractive(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// Client runs one adapter against an input and an output stream.
type Client struct {
	adapter *present.Adapter
	in      io.Reader
	out     io.Writer
	prompt  bool
}

// New builds a Client. A "> " prompt is printed before each read when prompt is set.
func New(a *present.Adapter, in io.Reader, out io.Writer, prompt bool) *Client {
	return &Client{adapter: a, in: in, out: out, prompt: prompt}
}

// Run starts a game and processes lines until /sair, end of input or ctx is
// done. Cancellation does not wait for the next line.
func (c *Client) Run(ctx context.Context) error {
	sink := &writerSink{w: c.out}
	fmt.Fprintln(c.out, help)
	if err := c.adapter.NewGame(sink); err != nil {
		return fmt.Errorf("starting game: %w", err)
	}

	done := make(chan struct{})
	defer close(done)
	lines, errc := readLines(c.in, done)

	for {
		if err := ctx.Err(); err != nil {
			return nil
		}
		if c.prompt {
			fmt.Fprint(c.out, "> ")
		}

		var line string
		select {
		case <-ctx.Done():
			return nil
		case l, ok := <-lines:
			if !ok {
				return <-errc
			}
			line = strings.TrimSpace(l)
		}

		switch strings.ToLower(line) {
		case "":
			continue
		case CmdQuit:
			fmt.Fprintln(c.out, "Até a próxima!")
			return nil
		case CmdNew:
			if err := c.adapter.NewGame(sink); err != nil {
				return fmt.Errorf("starting game: %w", err)
			}
		case CmdSound:
			if c.adapter.ToggleMute() {
				fmt.Fprintln(c.out, "Sons desligados.")
			} else {
				fmt.Fprintln(c.out, "Sons ligados.")
			}
		default:
			c.adapter.Guess(line, sink)
		}
	}
}

// readLines scans r on its own goroutine. lines is closed at end of input,
// after the scan error (possibly nil) has been put on errc. The goroutine
// stops early once done is closed, unless it is blocked reading r.
func readLines(r io.Reader, done <-chan struct{}) (<-chan string, <-chan error) {
	lines := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(r)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-done:
				errc <- nil
				return
			}
		}
		errc <- sc.Err()
	}()
	return lines, errc
}

// writerSink prints renders and notifications as plain text lines.
type writerSink struct {
	w io.Writer
}

func (s *writerSink) Render(st game.DisplayState) {
	fmt.Fprintf(s.w, "Palavra: %s\n", spaced(st.Pattern))
	wrong := "-"
	if st.WrongLetters != "" {
		wrong = spaced(st.WrongLetters)
	}
	fmt.Fprintf(s.w, "Erradas: %s | Tentativas restantes: %d\n", wrong, st.AttemptsRemaining)
}

func (s *writerSink) Notify(n present.Notification) {
	if n.Cue != present.CueNone {
		fmt.Fprintf(s.w, "[som: %s] ", n.Cue)
	}
	fmt.Fprintln(s.w, n.Text)
	if n.End {
		fmt.Fprintf(s.w, "Digite %s para jogar de novo ou %s para sair.\n", CmdNew, CmdQuit)
	}
}

func spaced(s string) string {
	return strings.Join(strings.Split(s, ""), " ")
}
