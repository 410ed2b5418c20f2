// Package pool holds the shared option pool that bingo cards are drawn from.
package pool

import (
	"fmt"
	"math/rand"
)

// MinOptions is the smallest pool a server can start with: one full card.
const MinOptions = 24

// Pool is an immutable ordered collection of unique option strings, loaded
// once at startup.
type Pool struct {
	options []string
}

// New validates the loaded options and builds a pool. The input is copied;
// callers may reuse their slice.
func New(options []string) (*Pool, error) {
	if len(options) < MinOptions {
		return nil, fmt.Errorf("option pool needs at least %d options, got %d", MinOptions, len(options))
	}

	seen := make(map[string]struct{}, len(options))
	for _, opt := range options {
		if opt == "" {
			return nil, fmt.Errorf("option pool contains an empty option")
		}
		if _, dup := seen[opt]; dup {
			return nil, fmt.Errorf("option pool contains duplicate option %q", opt)
		}
		seen[opt] = struct{}{}
	}

	copied := make([]string, len(options))
	copy(copied, options)
	return &Pool{options: copied}, nil
}

// Options returns a copy of the full pool in load order.
func (p *Pool) Options() []string {
	out := make([]string, len(p.options))
	copy(out, p.options)
	return out
}

// Size returns the number of options in the pool.
func (p *Pool) Size() int {
	return len(p.options)
}

// Sample draws n distinct options uniformly at random, without replacement.
func (p *Pool) Sample(n int) ([]string, error) {
	if n > len(p.options) {
		return nil, fmt.Errorf("cannot sample %d options from a pool of %d", n, len(p.options))
	}

	// Partial Fisher-Yates over a scratch copy; only the first n slots are
	// ever settled.
	scratch := make([]string, len(p.options))
	copy(scratch, p.options)
	for i := 0; i < n; i++ {
		j := i + rand.Intn(len(scratch)-i)
		scratch[i], scratch[j] = scratch[j], scratch[i]
	}
	return scratch[:n], nil
}
