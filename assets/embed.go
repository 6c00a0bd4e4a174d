// apps/go-server/assets/embed.go
//
// Embedded default content: the word list, the two feedback message lists,
// the browser page and the SQL migrations.

package assets

import (
	"bufio"
	"embed"
	"io/fs"
	"strings"
)

// Names of the embedded content lists.
const (
	WordsFile           = "palavras.txt"
	CorrectMessagesFile = "mensagens_acerto.txt"
	WrongMessagesFile   = "mensagens_erro.txt"
)

//go:embed palavras.txt mensagens_acerto.txt mensagens_erro.txt
var FS embed.FS

//go:embed web
var web embed.FS

//go:embed sql/*.sql
var migrations embed.FS

// ReadLines returns the trimmed, non-empty, non-comment lines of an embedded list.
func ReadLines(name string) ([]string, error) {
	f, err := FS.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, s)
	}
	return out, sc.Err()
}

// Web returns the browser page files rooted at web/.
func Web() fs.FS {
	sub, err := fs.Sub(web, "web")
	if err != nil {
		panic(err)
	}
	return sub
}

// Migrations returns the SQL migration files rooted at sql/.
func Migrations() fs.FS {
	sub, err := fs.Sub(migrations, "sql")
	if err != nil {
		panic(err)
	}
	return sub
}
