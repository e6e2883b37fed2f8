package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/matheuskafuri/billwatch/internal/collection"
	"github.com/matheuskafuri/billwatch/internal/config"
	"github.com/matheuskafuri/billwatch/internal/tui"
)

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	rng, err := resolveRange(flagFrom, flagTo, cfg.LookbackDuration(), time.Now())
	if err != nil {
		return err
	}

	// The TUI owns the terminal, so logs go to a file.
	logFile, err := config.OpenLog(config.LogPath())
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer logFile.Close()
	log := config.NewLogger(logFile, cfg.LogLevel, false)

	client := newClient(cfg, log)
	log.Info().Str("range", rng.String()).Str("version", version).Msg("starting dashboard")

	return tui.Run(tui.RunOpts{
		Loader:   collection.NewLoader(client, log),
		Details:  client,
		Range:    rng,
		Terms:    cfg.ExcludeTerms,
		PageSize: cfg.GetPageSize(),
		Logger:   log,
	})
}
