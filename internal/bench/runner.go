// Package bench contains the high-level orchestration logic for benchmark suites.
package bench

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/bench-kit/benchctl/internal/config"
	"github.com/bench-kit/benchctl/internal/pi"
	"github.com/bench-kit/benchctl/internal/sieve"
)

// completionMarker is written to the runner's output after a successful suite.
const completionMarker = "End Program"

// Result holds the outcome of one benchmark entry.
type Result struct {
	// Name is the benchmark identifier from the suite config.
	Name string `json:"name" yaml:"name"`
	// Kind is the workload kind that was run.
	Kind string `json:"kind" yaml:"kind"`
	// Repeat is how many timed runs were taken.
	Repeat int `json:"repeat" yaml:"repeat"`
	// Duration is the best wall time across the repeats.
	Duration time.Duration `json:"duration" yaml:"duration"`
	// PrimeCount is the number of primes found (sieve kind only).
	PrimeCount int `json:"primeCount,omitempty" yaml:"primeCount,omitempty"`
	// PiEstimate is the series value (pi kind only).
	PiEstimate float64 `json:"piEstimate,omitempty" yaml:"piEstimate,omitempty"`
	// FinishedAt is when the last repeat completed.
	FinishedAt time.Time `json:"finishedAt" yaml:"finishedAt"`
}

// Runner executes benchmark suites.
type Runner struct {
	logger   *slog.Logger
	output   io.Writer
	engine   *sieve.Engine
	parallel int
}

// RunnerOption customizes a Runner.
type RunnerOption func(*Runner)

// WithLogger sets the logger used for per-benchmark progress.
func WithLogger(logger *slog.Logger) RunnerOption {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithOutput sets the writer that receives the completion marker.
func WithOutput(w io.Writer) RunnerOption {
	return func(r *Runner) {
		if w != nil {
			r.output = w
		}
	}
}

// WithParallel sets how many benchmarks may run concurrently.
func WithParallel(n int) RunnerOption {
	return func(r *Runner) {
		if n > 0 {
			r.parallel = n
		}
	}
}

// WithMaxBound caps the sieve engine's marking-slice size.
func WithMaxBound(max int) RunnerOption {
	return func(r *Runner) {
		r.engine = sieve.New(sieve.WithMaxBound(max))
	}
}

// NewRunner constructs a Runner. By default it runs benchmarks one at a
// time, logs nowhere visible and discards the completion marker.
func NewRunner(opts ...RunnerOption) *Runner {
	r := &Runner{
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		output:   io.Discard,
		engine:   sieve.New(),
		parallel: 1,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes every benchmark in the suite and returns results in suite
// order. Benchmarks run concurrently up to the configured parallelism; each
// individual benchmark is repeated Repeat times and the best wall time kept.
// The first failure cancels the remaining work and no results are returned.
func (r *Runner) Run(ctx context.Context, benchmarks []config.Benchmark) ([]Result, error) {
	if len(benchmarks) == 0 {
		return nil, fmt.Errorf("no benchmarks to run")
	}

	results := make([]Result, len(benchmarks))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.parallel)

	for i, b := range benchmarks {
		i, b := i, b
		g.Go(func() error {
			res, err := r.runOne(gctx, b)
			if err != nil {
				return fmt.Errorf("benchmark %q: %w", b.Name, err)
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	fmt.Fprintln(r.output, completionMarker)
	return results, nil
}

// runOne executes a single benchmark entry with repeats.
func (r *Runner) runOne(ctx context.Context, b config.Benchmark) (Result, error) {
	res := Result{Name: b.Name, Kind: b.Kind, Repeat: b.Repeat}

	for rep := 0; rep < b.Repeat; rep++ {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}

		start := time.Now()
		switch b.Kind {
		case config.KindSieve:
			count, err := r.engine.Count(b.Bound)
			if err != nil {
				return Result{}, err
			}
			res.PrimeCount = count
		case config.KindPi:
			res.PiEstimate = pi.Estimate(b.Terms)
		default:
			return Result{}, fmt.Errorf("unknown kind %q", b.Kind)
		}
		elapsed := time.Since(start)

		if rep == 0 || elapsed < res.Duration {
			res.Duration = elapsed
		}
		r.logger.Debug("benchmark repeat finished",
			"name", b.Name,
			"repeat", rep+1,
			"of", b.Repeat,
			"elapsed", elapsed,
		)
	}

	res.FinishedAt = time.Now().UTC()
	r.logger.Info("benchmark finished",
		"name", b.Name,
		"kind", b.Kind,
		"best", res.Duration,
	)
	return res, nil
}
