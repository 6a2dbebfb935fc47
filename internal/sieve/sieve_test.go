package sieve

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// trialDivision is the test oracle for small bounds.
func trialDivision(n int) []int {
	var primes []int
	for c := 2; c <= n; c++ {
		isPrime := true
		for d := 2; d*d <= c; d++ {
			if c%d == 0 {
				isPrime = false
				break
			}
		}
		if isPrime {
			primes = append(primes, c)
		}
	}
	return primes
}

func TestPrimesBoundaries(t *testing.T) {
	cases := []struct {
		name  string
		bound int
		want  []int
	}{
		{name: "zero", bound: 0, want: nil},
		{name: "one", bound: 1, want: nil},
		{name: "two", bound: 2, want: []int{2}},
		{name: "three", bound: 3, want: []int{2, 3}},
		{name: "ten", bound: 10, want: []int{2, 3, 5, 7}},
		{name: "thirty", bound: 30, want: []int{2, 3, 5, 7, 11, 13, 17, 19, 23, 29}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Primes(tc.bound)
			require.NoError(t, err)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("primes mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPrimesMatchTrialDivision(t *testing.T) {
	for _, bound := range []int{2, 17, 100, 1000, 9973} {
		got, err := Primes(bound)
		require.NoError(t, err)
		if diff := cmp.Diff(trialDivision(bound), got); diff != "" {
			t.Fatalf("bound %d: primes mismatch (-want +got):\n%s", bound, diff)
		}
	}
}

func TestSieveMapping(t *testing.T) {
	marks, err := Sieve(10)
	require.NoError(t, err)
	require.Len(t, marks, 11)

	assert.False(t, marks[0])
	assert.False(t, marks[1])
	for i, want := range map[int]bool{2: true, 3: true, 4: false, 5: true, 9: false, 10: false} {
		assert.Equal(t, want, marks[i], "index %d", i)
	}
}

func TestSieveIdempotent(t *testing.T) {
	first, err := Primes(500)
	require.NoError(t, err)
	second, err := Primes(500)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestPrimesMonotonic(t *testing.T) {
	small, err := Primes(100)
	require.NoError(t, err)
	large, err := Primes(1000)
	require.NoError(t, err)

	require.GreaterOrEqual(t, len(large), len(small))
	assert.Equal(t, small, large[:len(small)])
}

func TestCount(t *testing.T) {
	count, err := Count(1_000_000)
	require.NoError(t, err)
	// pi(10^6), a standard reference value.
	assert.Equal(t, 78498, count)
}

func TestAllocationRefused(t *testing.T) {
	e := New(WithMaxBound(1000))

	marks, err := e.Sieve(1001)
	require.Nil(t, marks)
	require.Error(t, err)
	require.True(t, IsAllocationError(err))

	var allocErr *AllocationError
	require.ErrorAs(t, err, &allocErr)
	assert.Equal(t, 1001, allocErr.Bound)
	assert.Equal(t, 1000, allocErr.Max)

	// Bounds at the limit still succeed.
	_, err = e.Sieve(1000)
	assert.NoError(t, err)
}

func TestNegativeBound(t *testing.T) {
	_, err := Sieve(-1)
	require.Error(t, err)
	assert.False(t, IsAllocationError(err))
}

func BenchmarkSieve(b *testing.B) {
	for i := 0; i < b.N; i++ {
		if _, err := Sieve(1_000_000); err != nil {
			b.Fatal(err)
		}
	}
}
