package cli

import (
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/robalobadob/forca/apps/go-server/internal/game"
	"github.com/robalobadob/forca/apps/go-server/internal/present"
	"github.com/robalobadob/forca/apps/go-server/internal/terminal"
	"github.com/robalobadob/forca/apps/go-server/internal/words"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		a := present.NewAdapter(game.New(), words.LoadPools(contentSources(cfg)))
		return terminal.New(a, cmd.InOrStdin(), cmd.OutOrStdout(), terminal.IsInteractive(os.Stdin)).Run(ctx)
	},
}
