// autoplay plays a batch of random self-play games and writes the results.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime/pprof"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/domino14/solitaire/automatic"
	"github.com/domino14/solitaire/config"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run does all the work, so deferred cleanup happens before main exits
// with a failure status.
func run(args []string) error {
	cfg := &config.Config{}
	if err := cfg.Load(args); err != nil {
		return err
	}

	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	log.Logger = zerolog.New(output).With().Timestamp().Logger()
	if cfg.GetBool(config.ConfigDebug) {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	log.Debug().Msgf("Loaded config: %v", cfg.SanitizedSettings())

	if cfg.GetString(config.ConfigCPUProfile) != "" {
		f, err := os.Create(cfg.GetString(config.ConfigCPUProfile))
		if err != nil {
			return err
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			return err
		}
		defer pprof.StopCPUProfile()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tstart := time.Now()
	sum, err := automatic.StartSelfPlay(ctx,
		cfg,
		cfg.GetInt(config.ConfigAutoplayGames),
		cfg.GetInt(config.ConfigAutoplayThreads),
		cfg.GetString(config.ConfigAutoplayOutput))
	if sum != nil {
		log.Info().Dur("elapsed", time.Since(tstart)).Msg("autoplay finished")
		fmt.Print(sum)
	}
	if err != nil {
		return fmt.Errorf("autoplay failed: %w", err)
	}
	return nil
}
