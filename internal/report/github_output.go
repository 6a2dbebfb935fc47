package report

import (
	"fmt"
	"os"
	"strings"

	"github.com/bench-kit/benchctl/internal/bench"
)

// WriteGitHubOutput appends result outputs to the GITHUB_OUTPUT file when available.
func WriteGitHubOutput(results []bench.Result) error {
	path := strings.TrimSpace(os.Getenv("GITHUB_OUTPUT"))
	if path == "" {
		return nil
	}
	lines := GitHubOutputLines(results)
	if len(lines) == 0 {
		return nil
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	for _, line := range lines {
		if _, err := fmt.Fprintln(f, line); err != nil {
			return err
		}
	}
	return nil
}
