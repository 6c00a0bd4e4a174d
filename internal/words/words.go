// apps/go-server/internal/words/words.go
//
// Content providers for the game engine: the secret word pool and the two
// feedback message pools.
//
// Responsibilities:
//   - Load each pool from a configured file, or fall back to the embedded defaults.
//   - Normalize entries (words: accent-folded, upper-case A–Z only; messages: trimmed).
//   - Substitute a documented single-entry fallback when loading fails or yields nothing.
//
// Fallbacks:
//   words            → ["ERRO"]
//   correct messages → ["Você acertou uma letra!"]
//   wrong messages   → ["Letra incorreta!"]
//
// The engine never sees a load error; failures are logged here and degraded.

package words

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode"

	"github.com/rs/zerolog/log"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/robalobadob/forca/apps/go-server/assets"
	"github.com/robalobadob/forca/apps/go-server/internal/game"
)

// ErrEmpty is returned by providers whose source held no usable entries.
var ErrEmpty = errors.New("words: list is empty")

// Fallback pools used when a provider fails.
var (
	FallbackWords   = []string{game.SentinelWord}
	FallbackCorrect = []string{game.DefaultCorrectMessage}
	FallbackWrong   = []string{game.DefaultWrongMessage}
)

// Provider loads one list of normalized entries.
type Provider interface {
	Load() ([]string, error)
}

// Normalizer maps a raw line to an entry; false drops the line.
type Normalizer func(line string) (string, bool)

// FileProvider reads one entry per line from a file on disk.
type FileProvider struct {
	Path      string
	Normalize Normalizer
}

// Load implements Provider.
func (p FileProvider) Load() ([]string, error) {
	f, err := os.Open(p.Path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if v, ok := p.Normalize(line); ok {
			out = append(out, v)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", p.Path, err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%s: %w", p.Path, ErrEmpty)
	}
	return out, nil
}

// EmbeddedProvider reads one of the lists compiled into the binary.
type EmbeddedProvider struct {
	Name      string
	Normalize Normalizer
}

// Load implements Provider.
func (p EmbeddedProvider) Load() ([]string, error) {
	lines, err := assets.ReadLines(p.Name)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, l := range lines {
		if v, ok := p.Normalize(l); ok {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("embedded %s: %w", p.Name, ErrEmpty)
	}
	return out, nil
}

// NormalizeWord strips diacritics and upper-cases s.
// Words containing anything but A–Z after folding are dropped, since a single
// letter guess could never reveal them.
func NormalizeWord(s string) (string, bool) {
	folded, _, err := transform.String(foldAccents(), strings.TrimSpace(s))
	if err != nil {
		return "", false
	}
	w := strings.ToUpper(folded)
	if w == "" {
		return "", false
	}
	for _, r := range w {
		if r < 'A' || r > 'Z' {
			return "", false
		}
	}
	return w, true
}

// NormalizeMessage keeps any non-empty trimmed line.
func NormalizeMessage(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != ""
}

// foldAccents returns a fresh transformer: NFD, drop combining marks, NFC.
// transform.Chain values are stateful and must not be shared.
func foldAccents() transform.Transformer {
	return transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
}

// LoadOrFallback loads p and degrades to fallback on error or an empty result.
func LoadOrFallback(p Provider, fallback []string, kind string) []string {
	list, err := p.Load()
	if err == nil && len(list) > 0 {
		log.Debug().Str("list", kind).Int("entries", len(list)).Msg("content loaded")
		return list
	}
	if err == nil {
		err = ErrEmpty
	}
	log.Warn().Err(err).Str("list", kind).Strs("fallback", fallback).Msg("content unavailable, using fallback")
	return append([]string(nil), fallback...)
}

// Sources names optional files overriding the embedded lists.
// Empty paths select the embedded default.
type Sources struct {
	WordsFile           string
	CorrectMessagesFile string
	WrongMessagesFile   string
}

// Pools is the loaded, read-only content shared by every engine.
type Pools struct {
	Words   []string
	Correct []string
	Wrong   []string
}

// LoadPools resolves each list from its file or the embedded default.
func LoadPools(src Sources) Pools {
	return Pools{
		Words:   LoadOrFallback(provider(src.WordsFile, assets.WordsFile, NormalizeWord), FallbackWords, "words"),
		Correct: LoadOrFallback(provider(src.CorrectMessagesFile, assets.CorrectMessagesFile, NormalizeMessage), FallbackCorrect, "correct_messages"),
		Wrong:   LoadOrFallback(provider(src.WrongMessagesFile, assets.WrongMessagesFile, NormalizeMessage), FallbackWrong, "wrong_messages"),
	}
}

func provider(path, embedded string, n Normalizer) Provider {
	if path != "" {
		return FileProvider{Path: path, Normalize: n}
	}
	return EmbeddedProvider{Name: embedded, Normalize: n}
}

// Stats returns the pool sizes: (words, correct messages, wrong messages).
func (p Pools) Stats() (words, correct, wrong int) {
	return len(p.Words), len(p.Correct), len(p.Wrong)
}
