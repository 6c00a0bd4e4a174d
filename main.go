// apps/go-server/main.go
//
// Entry point of the forca binary; see internal/cli for the commands.

package main

import "github.com/robalobadob/forca/apps/go-server/internal/cli"

func main() {
	cli.Execute()
}
