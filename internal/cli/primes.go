package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/bench-kit/benchctl/internal/sieve"
)

// newPrimesCommand creates "primes", a single ad-hoc sieve run outside any suite.
func newPrimesCommand(_ *Options) *cobra.Command {
	var (
		bound    int
		maxBound int
		list     bool
	)

	cmd := &cobra.Command{
		Use:   "primes",
		Short: "Compute the primes up to --bound with the Sieve of Eratosthenes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := LoggerFromContext(cmd.Context())

			engine := sieve.New(sieve.WithMaxBound(maxBound))

			start := time.Now()
			primes, err := engine.Primes(bound)
			if err != nil {
				return err
			}
			elapsed := time.Since(start)

			logger.Info("sieve finished",
				"bound", bound,
				"primes", len(primes),
				"elapsed", elapsed,
			)

			if list {
				out := cmd.OutOrStdout()
				for _, p := range primes {
					if _, err := fmt.Fprintln(out, p); err != nil {
						return err
					}
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&bound, "bound", "b", 1_000_000, "Inclusive upper limit of the prime search")
	cmd.Flags().IntVar(&maxBound, "max-bound", sieve.DefaultMaxBound, "Largest bound the engine will allocate for")
	cmd.Flags().BoolVar(&list, "list", false, "Print the primes to stdout, one per line")

	return cmd
}
