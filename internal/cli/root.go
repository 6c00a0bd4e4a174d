// Package cli defines the cobra commands of the forca binary.
package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/forca/apps/go-server/internal/config"
	"github.com/robalobadob/forca/apps/go-server/internal/terminal"
	"github.com/robalobadob/forca/apps/go-server/internal/words"
)

var (
	configPath string
	cfg        config.Config
	version    = "dev" // set via ldflags at build time
)

var rootCmd = &cobra.Command{
	Use:   "forca",
	Short: "Jogo da forca: servidor web e cliente de terminal",
	Long: `forca runs the hangman game either as an HTTP server with a browser page
(forca serve) or directly in the terminal (forca play).`,
	Version:       version,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// .env is optional; real environment variables win.
		_ = godotenv.Load()

		path := configPath
		if path == "" {
			path = os.Getenv("FORCA_CONFIG")
		}
		c, err := config.Load(path)
		if err != nil {
			return err
		}
		cfg = c
		setupLogging(cfg.LogLevel)
		return nil
	},
}

// Execute runs the root command. Called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file (default $FORCA_CONFIG)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(playCmd)
}

func setupLogging(level string) {
	if lvl, err := zerolog.ParseLevel(level); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if terminal.IsInteractive(os.Stderr) {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}

func contentSources(c config.Config) words.Sources {
	return words.Sources{
		WordsFile:           c.Content.WordsFile,
		CorrectMessagesFile: c.Content.CorrectMessagesFile,
		WrongMessagesFile:   c.Content.WrongMessagesFile,
	}
}
