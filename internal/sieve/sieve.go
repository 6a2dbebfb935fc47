// Package sieve implements prime generation with the Sieve of Eratosthenes.
package sieve

import (
	"errors"
	"fmt"
	"math"
)

// DefaultMaxBound is the largest bound accepted by a default Engine.
// Bounds above it would require a marking slice larger than the engine
// is willing to allocate.
const DefaultMaxBound = 1<<31 - 1

// Engine computes primality mappings up to a committed maximum bound.
// The zero value is not usable; construct engines with New.
type Engine struct {
	maxBound int
}

// Option customizes an Engine.
type Option func(*Engine)

// WithMaxBound overrides the engine's allocation limit. Values below zero
// are clamped to zero, which makes every bound except 0 unacceptable.
func WithMaxBound(max int) Option {
	return func(e *Engine) {
		if max < 0 {
			max = 0
		}
		e.maxBound = max
	}
}

// New constructs an Engine with DefaultMaxBound unless overridden.
func New(opts ...Option) *Engine {
	e := &Engine{maxBound: DefaultMaxBound}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// AllocationError indicates that the marking slice for the requested bound
// could not be obtained because the bound exceeds the engine's limit.
type AllocationError struct {
	// Bound is the rejected bound.
	Bound int
	// Max is the engine's committed maximum bound.
	Max int
}

func (e *AllocationError) Error() string {
	if e == nil {
		return "marking slice allocation refused"
	}
	return fmt.Sprintf("cannot allocate marking slice for bound %d: limit is %d", e.Bound, e.Max)
}

// IsAllocationError reports whether err is or wraps an *AllocationError.
func IsAllocationError(err error) bool {
	var allocErr *AllocationError
	return errors.As(err, &allocErr)
}

// checkBound validates n against the engine's limits before any allocation.
func (e *Engine) checkBound(n int) error {
	if n < 0 {
		return fmt.Errorf("bound must be non-negative, got %d", n)
	}
	if n > e.maxBound || n == math.MaxInt {
		return &AllocationError{Bound: n, Max: e.maxBound}
	}
	return nil
}

// Sieve returns the primality mapping over [0, n]: a slice of n+1 booleans
// where index i is true iff i is prime. The slice is freshly allocated per
// call and owned by the caller afterwards.
//
// Bounds larger than the engine's limit are rejected with *AllocationError
// before anything is allocated; negative bounds are a plain error.
func (e *Engine) Sieve(n int) ([]bool, error) {
	if err := e.checkBound(n); err != nil {
		return nil, err
	}

	marks := make([]bool, n+1)
	for i := 2; i <= n; i++ {
		marks[i] = true
	}

	// The outer condition is p*p <= n written as p <= n/p so that the
	// square can never overflow, whatever bound the engine commits to.
	for p := 2; p <= n/p; p++ {
		if !marks[p] {
			continue
		}
		// Multiples below p*p were struck by smaller prime factors.
		for m := p * p; m <= n; m += p {
			marks[m] = false
		}
	}

	return marks, nil
}

// Primes returns the ordered primes <= n.
func (e *Engine) Primes(n int) ([]int, error) {
	marks, err := e.Sieve(n)
	if err != nil {
		return nil, err
	}
	var primes []int
	for i, isPrime := range marks {
		if isPrime {
			primes = append(primes, i)
		}
	}
	return primes, nil
}

// Count returns the number of primes <= n.
func (e *Engine) Count(n int) (int, error) {
	marks, err := e.Sieve(n)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, isPrime := range marks {
		if isPrime {
			count++
		}
	}
	return count, nil
}

// defaultEngine backs the package-level convenience wrappers.
var defaultEngine = New()

// Sieve computes the primality mapping over [0, n] with a default Engine.
func Sieve(n int) ([]bool, error) { return defaultEngine.Sieve(n) }

// Primes returns the ordered primes <= n with a default Engine.
func Primes(n int) ([]int, error) { return defaultEngine.Primes(n) }

// Count returns the number of primes <= n with a default Engine.
func Count(n int) (int, error) { return defaultEngine.Count(n) }
