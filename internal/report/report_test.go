package report

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/bench-kit/benchctl/internal/bench"
)

func sampleResults() []bench.Result {
	return []bench.Result{
		{
			Name:       "primes-1m",
			Kind:       "sieve",
			Repeat:     3,
			Duration:   12 * time.Millisecond,
			PrimeCount: 78498,
			FinishedAt: time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
		},
		{
			Name:       "pi 1m",
			Kind:       "pi",
			Repeat:     1,
			Duration:   3 * time.Millisecond,
			PiEstimate: 3.141591653589774,
			FinishedAt: time.Date(2026, 8, 30, 12, 0, 1, 0, time.UTC),
		},
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, "json", sampleResults()))

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "primes-1m", decoded[0]["name"])
	assert.Equal(t, float64(78498), decoded[0]["primeCount"])
	// Omitted zero fields stay out of the payload.
	assert.NotContains(t, decoded[0], "piEstimate")
}

func TestWriteJSONIsDefault(t *testing.T) {
	var explicit, fallback bytes.Buffer
	require.NoError(t, Write(&explicit, "json", sampleResults()))
	require.NoError(t, Write(&fallback, "", sampleResults()))
	assert.Equal(t, explicit.String(), fallback.String())
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, "yaml", sampleResults()))

	var decoded []map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "pi 1m", decoded[1]["name"])
}

func TestWriteUnknownFormat(t *testing.T) {
	err := Write(&bytes.Buffer{}, "xml", sampleResults())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown report format")
}

func TestGitHubOutputLines(t *testing.T) {
	lines := GitHubOutputLines(sampleResults())
	assert.Equal(t, []string{
		"primes_1m_duration_ns=12000000",
		"primes_1m_prime_count=78498",
		"pi_1m_duration_ns=3000000",
		"pi_1m_pi_estimate=3.141591653589774",
	}, lines)
}

func TestWriteGitHubOutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "output")
	require.NoError(t, os.WriteFile(path, []byte("existing=1\n"), 0o600))
	t.Setenv("GITHUB_OUTPUT", path)

	require.NoError(t, WriteGitHubOutput(sampleResults()))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "existing=1\n")
	assert.Contains(t, string(content), "primes_1m_prime_count=78498\n")
}

func TestWriteGitHubOutputUnset(t *testing.T) {
	t.Setenv("GITHUB_OUTPUT", "")
	assert.NoError(t, WriteGitHubOutput(sampleResults()))
}
