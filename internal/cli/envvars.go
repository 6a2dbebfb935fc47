package cli

import (
	envparse "github.com/caarlos0/env/v11"

	"github.com/bench-kit/benchctl/internal/logging"
)

// baseEnv defines root CLI defaults sourced from BENCHCTL_* env vars.
type baseEnv struct {
	// ConfigPath is the bench.yaml path from BENCHCTL_CONFIG.
	ConfigPath string `env:"BENCHCTL_CONFIG"`
	// LogLevel is the logging level from BENCHCTL_LOG_LEVEL.
	LogLevel string `env:"BENCHCTL_LOG_LEVEL"`
}

// runEnv captures BENCHCTL_* inputs for the run command.
type runEnv struct {
	// Parallel is the concurrency from BENCHCTL_PARALLEL.
	Parallel int `env:"BENCHCTL_PARALLEL"`
	// Format is the report format from BENCHCTL_FORMAT.
	Format string `env:"BENCHCTL_FORMAT"`
	// Output is the report file path from BENCHCTL_OUTPUT.
	Output string `env:"BENCHCTL_OUTPUT"`
	// Vars is a k=v,k2=v2 list from BENCHCTL_VARS.
	Vars string `env:"BENCHCTL_VARS"`
}

// applyBaseEnv overlays BENCHCTL_* root defaults onto opts before flag parsing.
func applyBaseEnv(opts *Options) {
	var be baseEnv
	if err := parseEnv(&be); err != nil {
		return
	}
	if be.ConfigPath != "" {
		opts.ConfigPath = be.ConfigPath
	}
	if be.LogLevel != "" {
		opts.LogLevel = logging.ParseLevel(be.LogLevel)
	}
}

// parseEnv fills target from BENCHCTL_* env vars via caarlos0/env.
func parseEnv(target interface{}) error {
	return envparse.Parse(target)
}
