package dice

import (
	"context"
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
	"sync"
)

// Roller evaluates a formula against a random source.
type Roller interface {
	Roll(ctx context.Context, formula string) (Result, error)
}

// RNGRoller rolls formulas on a seeded math/rand source. It is safe for
// concurrent use.
type RNGRoller struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRoller returns a roller seeded with seed.
func NewRoller(seed int64) *RNGRoller {
	return &RNGRoller{rng: rand.New(rand.NewSource(seed))}
}

// NewRandomRoller returns a roller seeded from crypto/rand.
func NewRandomRoller() (*RNGRoller, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return nil, fmt.Errorf("read random seed: %w", err)
	}
	return NewRoller(int64(binary.LittleEndian.Uint64(b[:]))), nil
}

// Roll parses formula and rolls it. Advantage and disadvantage formulas
// produce two Rolls.
func (r *RNGRoller) Roll(ctx context.Context, formula string) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	parsed, err := ParseFormula(formula)
	if err != nil {
		return Result{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return RollWithRng(r.rng, parsed.Specs())
}

var _ Roller = (*RNGRoller)(nil)
