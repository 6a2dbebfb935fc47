// Package config contains the loader and strongly typed model for bench.yaml.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/bench-kit/benchctl/internal/env"
	"github.com/bench-kit/benchctl/internal/sieve"
)

// Benchmark kinds understood by the suite runner.
const (
	// KindSieve runs the Sieve of Eratosthenes up to Bound.
	KindSieve = "sieve"
	// KindPi sums Terms elements of the Leibniz series.
	KindPi = "pi"
)

// SuiteConfig represents the high-level description of a benchmark suite.
// It mirrors the structure of bench.yaml after template rendering.
type SuiteConfig struct {
	// Project is the short project name used in logs and report keys.
	Project string `yaml:"project"`
	// EnvFiles lists .env files to load before rendering.
	EnvFiles []string `yaml:"envFiles,omitempty"`
	// MaxBound caps the sieve marking-slice size; defaults to sieve.DefaultMaxBound.
	MaxBound int `yaml:"maxBound,omitempty"`
	// Parallel is the number of benchmarks run concurrently; defaults to 1.
	Parallel int `yaml:"parallel,omitempty"`
	// Benchmarks lists the benchmark definitions in execution order.
	Benchmarks []Benchmark `yaml:"benchmarks"`
}

// Benchmark describes a single benchmark entry in the suite.
type Benchmark struct {
	// Name is the identifier used in logs and reports.
	Name string `yaml:"name"`
	// Kind selects the workload: "sieve" or "pi".
	Kind string `yaml:"kind"`
	// Bound is the inclusive sieve upper limit (sieve kind only).
	Bound int `yaml:"bound,omitempty"`
	// Terms is the Leibniz series length (pi kind only).
	Terms int64 `yaml:"terms,omitempty"`
	// Repeat is how many timed runs to take; the best one is reported. Defaults to 1.
	Repeat int `yaml:"repeat,omitempty"`
}

// LoadOptions describes parameters that influence template rendering of bench.yaml.
type LoadOptions struct {
	// UserVars are inline variables for template rendering.
	UserVars env.Vars
}

// TemplateContext represents the data exposed to Go-templates when rendering bench.yaml.
type TemplateContext struct {
	// Project is the project identifier.
	Project string
	// ProjectRoot is the path to the directory containing bench.yaml.
	ProjectRoot string
	// Now is the timestamp captured for template rendering.
	Now time.Time
	// UserVars contains inline user variables.
	UserVars env.Vars
	// EnvMap merges OS env, envFiles, and user variables.
	EnvMap env.Vars
}

// rawHeader is a minimal struct used to extract top-level fields before templating.
type rawHeader struct {
	Project  string   `yaml:"project"`
	EnvFiles []string `yaml:"envFiles"`
}

// LoadAndRender reads bench.yaml, loads envFiles and user vars, and returns rendered YAML bytes
// together with the template context that was used.
func LoadAndRender(path string, opts LoadOptions) ([]byte, TemplateContext, error) {
	var zeroCtx TemplateContext

	if path == "" {
		return nil, zeroCtx, fmt.Errorf("config path is empty")
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, zeroCtx, fmt.Errorf("resolve config path: %w", err)
	}

	rawBytes, err := os.ReadFile(absPath)
	if err != nil {
		return nil, zeroCtx, fmt.Errorf("read config %q: %w", absPath, err)
	}

	var header rawHeader
	if err := yaml.Unmarshal(rawBytes, &header); err != nil {
		return nil, zeroCtx, fmt.Errorf("parse top-level config fields: %w", err)
	}

	baseDir := filepath.Dir(absPath)
	osVars := env.FromOS()

	envFileVars, err := env.LoadEnvFiles(baseDir, header.EnvFiles)
	if err != nil {
		return nil, zeroCtx, err
	}

	envMap := env.Merge(osVars, envFileVars, opts.UserVars)

	ctx := TemplateContext{
		Project:     header.Project,
		ProjectRoot: baseDir,
		Now:         time.Now().UTC(),
		UserVars:    opts.UserVars,
		EnvMap:      envMap,
	}

	tmpl, err := template.New(filepath.Base(absPath)).Option("missingkey=zero").Parse(string(rawBytes))
	if err != nil {
		return nil, zeroCtx, fmt.Errorf("parse config template: %w", err)
	}

	var rendered bytes.Buffer
	if err := tmpl.Execute(&rendered, ctx); err != nil {
		return nil, zeroCtx, fmt.Errorf("render config template: %w", err)
	}

	return rendered.Bytes(), ctx, nil
}

// Parse decodes rendered bench.yaml bytes, applies defaults and validates the suite.
func Parse(rendered []byte) (*SuiteConfig, error) {
	dec := yaml.NewDecoder(bytes.NewReader(rendered))
	dec.KnownFields(true)

	var cfg SuiteConfig
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	applyDefaults(&cfg)
	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Load renders and parses bench.yaml in one step.
func Load(path string, opts LoadOptions) (*SuiteConfig, TemplateContext, error) {
	rendered, ctx, err := LoadAndRender(path, opts)
	if err != nil {
		return nil, ctx, err
	}
	cfg, err := Parse(rendered)
	if err != nil {
		return nil, ctx, err
	}
	return cfg, ctx, nil
}

func applyDefaults(cfg *SuiteConfig) {
	if cfg.MaxBound == 0 {
		cfg.MaxBound = sieve.DefaultMaxBound
	}
	if cfg.Parallel == 0 {
		cfg.Parallel = 1
	}
	for i := range cfg.Benchmarks {
		if cfg.Benchmarks[i].Repeat == 0 {
			cfg.Benchmarks[i].Repeat = 1
		}
	}
}

func validate(cfg *SuiteConfig) error {
	if len(cfg.Benchmarks) == 0 {
		return fmt.Errorf("config defines no benchmarks")
	}
	if cfg.Parallel < 1 {
		return fmt.Errorf("parallel must be >= 1, got %d", cfg.Parallel)
	}
	if cfg.MaxBound < 0 {
		return fmt.Errorf("maxBound must be non-negative, got %d", cfg.MaxBound)
	}

	seen := make(map[string]struct{}, len(cfg.Benchmarks))
	for i, b := range cfg.Benchmarks {
		name := strings.TrimSpace(b.Name)
		if name == "" {
			return fmt.Errorf("benchmark %d has no name", i)
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("duplicate benchmark name %q", name)
		}
		seen[name] = struct{}{}

		switch b.Kind {
		case KindSieve:
			if b.Bound < 0 {
				return fmt.Errorf("benchmark %q: bound must be non-negative, got %d", name, b.Bound)
			}
			if b.Bound > cfg.MaxBound {
				return fmt.Errorf("benchmark %q: bound %d exceeds maxBound %d", name, b.Bound, cfg.MaxBound)
			}
		case KindPi:
			if b.Terms <= 0 {
				return fmt.Errorf("benchmark %q: terms must be positive, got %d", name, b.Terms)
			}
		default:
			return fmt.Errorf("benchmark %q: unknown kind %q", name, b.Kind)
		}

		if b.Repeat < 1 {
			return fmt.Errorf("benchmark %q: repeat must be >= 1, got %d", name, b.Repeat)
		}
	}
	return nil
}
