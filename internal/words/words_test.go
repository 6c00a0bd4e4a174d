package words

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "list.txt")
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestNormalizeWord(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"gato", "GATO", true},
		{"  Sol \r", "SOL", true},
		{"Ação", "ACAO", true},
		{"paralelepípedo", "PARALELEPIPEDO", true},
		{"jacaré", "JACARE", true},
		{"guarda-chuva", "", false},
		{"dois nomes", "", false},
		{"r2d2", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := NormalizeWord(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFileProvider_Load(t *testing.T) {
	p := FileProvider{
		Path:      writeFile(t, "# comentário\ngato\n\n  casa  \nguarda-chuva\ncoração\n"),
		Normalize: NormalizeWord,
	}
	list, err := p.Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"GATO", "CASA", "CORACAO"}, list)
}

func TestFileProvider_Empty(t *testing.T) {
	p := FileProvider{Path: writeFile(t, "\n  \n# nada\n"), Normalize: NormalizeMessage}
	_, err := p.Load()
	assert.True(t, errors.Is(err, ErrEmpty))
}

func TestLoadOrFallback(t *testing.T) {
	missing := FileProvider{Path: filepath.Join(t.TempDir(), "nope.txt"), Normalize: NormalizeWord}
	assert.Equal(t, []string{"ERRO"}, LoadOrFallback(missing, FallbackWords, "words"))

	empty := FileProvider{Path: writeFile(t, ""), Normalize: NormalizeMessage}
	assert.Equal(t, FallbackWrong, LoadOrFallback(empty, FallbackWrong, "wrong_messages"))

	ok := FileProvider{Path: writeFile(t, "Muito bem!\n"), Normalize: NormalizeMessage}
	assert.Equal(t, []string{"Muito bem!"}, LoadOrFallback(ok, FallbackCorrect, "correct_messages"))
}

func TestLoadOrFallback_CopiesFallback(t *testing.T) {
	missing := FileProvider{Path: filepath.Join(t.TempDir(), "nope.txt"), Normalize: NormalizeWord}
	got := LoadOrFallback(missing, FallbackWords, "words")
	got[0] = "MUDOU"
	assert.Equal(t, "ERRO", FallbackWords[0])
}

func TestLoadPools_Embedded(t *testing.T) {
	p := LoadPools(Sources{})
	w, c, r := p.Stats()
	assert.Greater(t, w, 10)
	assert.Greater(t, c, 1)
	assert.Greater(t, r, 1)
	assert.Contains(t, p.Words, "PARALELEPIPEDO")
	assert.Contains(t, p.Correct, "Você acertou uma letra!")
	for _, word := range p.Words {
		_, ok := NormalizeWord(word)
		assert.True(t, ok, word)
	}
}

func TestLoadPools_FileOverride(t *testing.T) {
	p := LoadPools(Sources{
		WordsFile:         writeFile(t, "lua\n"),
		WrongMessagesFile: filepath.Join(t.TempDir(), "missing.txt"),
	})
	assert.Equal(t, []string{"LUA"}, p.Words)
	assert.Equal(t, FallbackWrong, p.Wrong)
	assert.NotEmpty(t, p.Correct)
}
