package main

import (
	"flag"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"vidar/internal/conformance"
)

func main() {
	pretty := flag.Bool("pretty", false, "Human console output instead of JSON")
	flag.Parse()

	logger := log.Logger
	if *pretty {
		logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
	}

	checks := conformance.Checks()
	fails := conformance.Run(logger, checks)
	if fails > 0 {
		logger.Error().Int("failed", fails).Int("total", len(checks)).Msg("conformance failed")
		os.Exit(1)
	}
	logger.Info().Int("total", len(checks)).Msg("conformance passed")
}
