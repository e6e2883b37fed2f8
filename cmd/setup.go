package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/matheuskafuri/billwatch/internal/config"
	"github.com/matheuskafuri/billwatch/internal/congress"
)

// loadConfig reads the config file named by --config and applies
// --log-level on top.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if flagLogLevel != "" {
		cfg.LogLevel = flagLogLevel
	}
	return cfg, nil
}

// newClient builds the API client. Without a configured key it falls back
// to the shared demo key and says so.
func newClient(cfg *config.Config, log zerolog.Logger) *congress.Client {
	key := cfg.ResolvedAPIKey()
	if key == "" {
		log.Warn().Msgf("no API key configured (set api_key or $%s); using the rate-limited %s", config.APIKeyEnv, congress.DemoKey)
	}
	return congress.NewClient(congress.Options{
		Endpoint:  cfg.APIURL,
		APIKey:    key,
		Timeout:   cfg.TimeoutDuration(),
		UserAgent: "billwatch/" + version,
		Logger:    log,
	})
}

func consoleLogger(w io.Writer, cfg *config.Config) zerolog.Logger {
	return config.NewLogger(w, cfg.LogLevel, true)
}

// resolveRange applies --from/--to over the configured lookback. A missing
// end is today; a missing start is the lookback before the end.
func resolveRange(from, to string, lookback time.Duration, now time.Time) (congress.DateRange, error) {
	rng := congress.Lookback(now, lookback)
	if to != "" {
		end, err := congress.ParseDate(to)
		if err != nil {
			return congress.DateRange{}, fmt.Errorf("invalid --to value %q: %w", to, err)
		}
		rng = congress.Lookback(end, lookback)
	}
	if from != "" {
		start, err := congress.ParseDate(from)
		if err != nil {
			return congress.DateRange{}, fmt.Errorf("invalid --from value %q: %w", from, err)
		}
		rng.Start = start
	}
	return rng, nil
}
