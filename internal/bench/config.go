package bench

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// Config drives a benchmark run. Values come from defaults, then an
// optional bench.yaml, then BENCH_* environment variables.
type Config struct {
	Scenario string // burst | poisson
	Ops      int    // timed operations after the warm-up seed
	Seed     int64  // rng seed; same seed, same op sequence
	Out      string // CSV path
	Pretty   bool   // human console logging instead of JSON
}

// LoadConfig reads configuration with viper. path may be empty, in which
// case ./bench.yaml is used when present and silently skipped when not; an
// explicit path that cannot be read is an error.
func LoadConfig(path string) (Config, error) {
	v := viper.New()
	v.SetDefault("scenario", "burst")
	v.SetDefault("ops", 100000)
	v.SetDefault("seed", 42)
	v.SetDefault("out", "bench_results.csv")
	v.SetDefault("pretty", false)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("bench")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	v.SetEnvPrefix("bench")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("reading bench config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("parsing bench config: %w", err)
	}
	if cfg.Scenario != ScenarioBurst && cfg.Scenario != ScenarioPoisson {
		return Config{}, fmt.Errorf("unknown scenario %q (use: %s | %s)",
			cfg.Scenario, ScenarioBurst, ScenarioPoisson)
	}
	if cfg.Ops <= 0 {
		return Config{}, fmt.Errorf("ops must be positive, got %d", cfg.Ops)
	}
	return cfg, nil
}
