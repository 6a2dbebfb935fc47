package cli

import (
	"math"
	"time"

	"github.com/spf13/cobra"

	"github.com/bench-kit/benchctl/internal/pi"
)

// newPiCommand creates "pi", a single ad-hoc Leibniz-series run outside any suite.
func newPiCommand(_ *Options) *cobra.Command {
	var terms int64

	cmd := &cobra.Command{
		Use:   "pi",
		Short: "Estimate pi by summing --terms elements of the Leibniz series",
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := LoggerFromContext(cmd.Context())

			start := time.Now()
			estimate := pi.Estimate(terms)
			elapsed := time.Since(start)

			logger.Info("pi estimate finished",
				"terms", terms,
				"estimate", estimate,
				"error", math.Abs(estimate-math.Pi),
				"elapsed", elapsed,
			)
			return nil
		},
	}

	cmd.Flags().Int64VarP(&terms, "terms", "t", 1_000_000, "Number of series terms to sum")

	return cmd
}
