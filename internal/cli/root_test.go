package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlayCommand(t *testing.T) {
	words := filepath.Join(t.TempDir(), "palavras.txt")
	require.NoError(t, os.WriteFile(words, []byte("pé\n"), 0o644))
	t.Setenv("WORDS_FILE", words)

	var out bytes.Buffer
	rootCmd.SetIn(strings.NewReader("p\ne\n"))
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"play", "--config", filepath.Join(t.TempDir(), "missing.yaml")})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "Palavra: _ _")
	assert.Contains(t, out.String(), "A palavra era PE.")
}

func TestBadConfigFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "forca.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: abc"), 0o644))

	rootCmd.SetArgs([]string{"play", "--config", path})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })
	assert.Error(t, rootCmd.Execute())
}
