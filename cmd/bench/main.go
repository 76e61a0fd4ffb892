package main

import (
	"flag"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"vidar/internal/bench"
)

func main() {
	configPath := flag.String("config", "", "Path to a bench config file (default: ./bench.yaml if present)")
	flag.Parse()

	cfg, err := bench.LoadConfig(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("bad config")
	}
	if cfg.Pretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
	}

	runID := uuid.New().String()
	logger := log.With().Str("run_id", runID).Logger()
	logger.Info().
		Str("scenario", cfg.Scenario).
		Int("ops", cfg.Ops).
		Int64("seed", cfg.Seed).
		Str("out", cfg.Out).
		Msg("starting benchmark")

	rec, err := bench.NewRecorder(cfg.Out)
	if err != nil {
		logger.Fatal().Err(err).Msg("unable to open csv output")
	}

	runner := bench.NewRunner(cfg.Seed, rec)
	report := runner.Run(cfg.Scenario, cfg.Ops)

	if err := rec.Close(); err != nil {
		logger.Fatal().Err(err).Msg("unable to flush csv output")
	}

	logger.Info().
		Int("ops", report.Ops).
		Dur("elapsed", report.Elapsed).
		Float64("ops_per_sec", report.Throughput()).
		Int("resting_orders", runner.Book().Len()).
		Msg("benchmark complete")

	runner.Stats().WriteSummary(os.Stdout)
}
