// Package report serializes suite results for humans, files and CI.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/bench-kit/benchctl/internal/bench"
)

// Supported report formats.
const (
	FormatJSON   = "json"
	FormatYAML   = "yaml"
	FormatGitHub = "github"
)

// Write encodes results in the requested format to w. The "github" format
// writes key=value output lines (see GitHubOutputLines) to w instead of the
// GITHUB_OUTPUT file, which suits previewing the CI output locally.
func Write(w io.Writer, format string, results []bench.Result) error {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case FormatJSON, "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(results); err != nil {
			_ = enc.Close()
			return fmt.Errorf("encode results: %w", err)
		}
		return enc.Close()
	case FormatGitHub:
		for _, line := range GitHubOutputLines(results) {
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown report format %q", format)
	}
}

// GitHubOutputLines flattens results into sorted key=value lines suitable
// for appending to a GitHub Actions output file.
func GitHubOutputLines(results []bench.Result) []string {
	var lines []string
	for _, res := range results {
		key := sanitizeKey(res.Name)
		lines = append(lines,
			fmt.Sprintf("%s_duration_ns=%d", key, res.Duration.Nanoseconds()),
		)
		switch res.Kind {
		case "sieve":
			lines = append(lines, fmt.Sprintf("%s_prime_count=%d", key, res.PrimeCount))
		case "pi":
			lines = append(lines, fmt.Sprintf("%s_pi_estimate=%g", key, res.PiEstimate))
		}
	}
	return lines
}

// sanitizeKey converts a benchmark name to a safe output key.
func sanitizeKey(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
