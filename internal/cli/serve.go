package cli

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/forca/apps/go-server/assets"
	"github.com/robalobadob/forca/apps/go-server/internal/history"
	"github.com/robalobadob/forca/apps/go-server/internal/httpserver"
	"github.com/robalobadob/forca/apps/go-server/internal/store"
	"github.com/robalobadob/forca/apps/go-server/internal/words"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pools := words.LoadPools(contentSources(cfg))
	wc, cc, rc := pools.Stats()
	log.Info().Int("words", wc).Int("correct", cc).Int("wrong", rc).Msg("content loaded")

	db, err := history.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening history db: %w", err)
	}
	defer db.Close()
	if err := history.Migrate(db, assets.Migrations()); err != nil {
		return fmt.Errorf("migrating history db: %w", err)
	}

	srv := httpserver.New(cfg, store.NewMemoryStore(), pools, history.NewStore(db))
	log.Info().Str("port", cfg.Port).Str("db", cfg.DBPath).Msg("starting forca server")
	if err := srv.Start(ctx, ":"+cfg.Port); err != nil {
		return fmt.Errorf("server exited: %w", err)
	}
	log.Info().Msg("server stopped")
	return nil
}
