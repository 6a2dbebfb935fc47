package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bench-kit/benchctl/internal/bench"
	"github.com/bench-kit/benchctl/internal/config"
	"github.com/bench-kit/benchctl/internal/env"
	"github.com/bench-kit/benchctl/internal/logging"
	"github.com/bench-kit/benchctl/internal/report"
)

// newRunCommand creates "run", which executes the whole configured suite.
func newRunCommand(opts *Options) *cobra.Command {
	var (
		parallel   int
		format     = report.FormatJSON
		outputPath string
		inlineVars string
	)

	var re runEnv
	if err := parseEnv(&re); err == nil {
		if re.Parallel > 0 {
			parallel = re.Parallel
		}
		if re.Format != "" {
			format = re.Format
		}
		if re.Output != "" {
			outputPath = re.Output
		}
		if re.Vars != "" {
			inlineVars = re.Vars
		}
	}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the benchmark suite defined in bench.yaml",
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := LoggerFromContext(cmd.Context())

			userVars, err := env.ParseInlineVars(inlineVars)
			if err != nil {
				return err
			}

			cfg, _, err := config.Load(opts.ConfigPath, config.LoadOptions{UserVars: userVars})
			if err != nil {
				return err
			}

			if parallel > 0 {
				cfg.Parallel = parallel
			}

			logger.Info("running benchmark suite",
				"project", cfg.Project,
				"benchmarks", len(cfg.Benchmarks),
				"parallel", cfg.Parallel,
			)

			runner := bench.NewRunner(
				bench.WithLogger(logger),
				bench.WithOutput(logging.NewWriter(logger)),
				bench.WithParallel(cfg.Parallel),
				bench.WithMaxBound(cfg.MaxBound),
			)

			results, err := runner.Run(cmd.Context(), cfg.Benchmarks)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if outputPath != "" {
				f, err := os.Create(outputPath)
				if err != nil {
					return fmt.Errorf("create report file %q: %w", outputPath, err)
				}
				defer func() { _ = f.Close() }()
				out = f
			}

			if err := report.Write(out, format, results); err != nil {
				return err
			}
			return report.WriteGitHubOutput(results)
		},
	}

	cmd.Flags().IntVar(&parallel, "parallel", parallel, "Run up to N benchmarks concurrently (overrides config)")
	cmd.Flags().StringVar(&format, "format", format, "Report format (json, yaml, github)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", outputPath, "Write the report to a file instead of stdout")
	cmd.Flags().StringVar(&inlineVars, "vars", inlineVars, "Inline template vars as k=v,k2=v2")

	return cmd
}
