package sim

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"sync"
	"time"
)

// Counts is the frequency table produced by Run: outcome bitstrings (qubit 0
// leftmost) mapped to occurrence counts. Counts sum to the shot count.
type Counts map[string]int

// Total returns the number of recorded shots.
func (c Counts) Total() int {
	total := 0
	for _, n := range c {
		total += n
	}
	return total
}

// Keys returns the observed outcomes in lexicographic order.
func (c Counts) Keys() []string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

type runConfig struct {
	seed    int64
	workers int
}

// RunOption adjusts shot execution.
type RunOption func(*runConfig)

// WithSeed fixes the base random seed. Each shot derives its own generator
// from seed+shotIndex, so results for a given seed are identical regardless
// of worker count or scheduling order.
func WithSeed(seed int64) RunOption {
	return func(cfg *runConfig) { cfg.seed = seed }
}

// WithWorkers runs shots across n parallel workers. Shots are independent,
// so workers share only the read-only circuit; each accumulates a local
// table merged at the end.
func WithWorkers(n int) RunOption {
	return func(cfg *runConfig) {
		if n > 0 {
			cfg.workers = n
		}
	}
}

// Run executes the circuit for the given number of independent trials and
// returns the completed frequency table. Each trial replays the gate
// sequence on a fresh state vector, honoring mid-circuit measurements and
// classical conditioning, then measures every remaining qubit. The input
// circuit is never mutated. No partial table is returned on failure.
func Run(c *Circuit, shots int, opts ...RunOption) (Counts, error) {
	if c == nil {
		return nil, fmt.Errorf("%w: nil circuit", ErrInvalidDimension)
	}
	if shots < 1 {
		return nil, fmt.Errorf("%w: %d (must be >= 1)", ErrInvalidShotCount, shots)
	}

	cfg := runConfig{
		seed:    time.Now().UnixNano(),
		workers: 1,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.workers == 1 {
		counts := make(Counts)
		for shot := 0; shot < shots; shot++ {
			outcome, err := runShot(c, rand.New(rand.NewSource(cfg.seed+int64(shot))))
			if err != nil {
				return nil, err
			}
			counts[outcome]++
		}
		return counts, nil
	}

	workers := cfg.workers
	if workers > shots {
		workers = shots
	}

	locals := make([]Counts, workers)
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		lo := w * shots / workers
		hi := (w + 1) * shots / workers
		wg.Add(1)
		go func(w, lo, hi int) {
			defer wg.Done()
			local := make(Counts)
			for shot := lo; shot < hi; shot++ {
				outcome, err := runShot(c, rand.New(rand.NewSource(cfg.seed+int64(shot))))
				if err != nil {
					errs[w] = err
					return
				}
				local[outcome]++
			}
			locals[w] = local
		}(w, lo, hi)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	counts := make(Counts)
	for _, local := range locals {
		for outcome, n := range local {
			counts[outcome] += n
		}
	}
	return counts, nil
}

// runShot executes one trial: fresh state vector, gate replay in circuit
// order with the unit-norm invariant checked after every unitary, and a
// terminal measurement of every qubit no explicit Measure gate already
// collapsed. Previously measured qubits keep their recorded bits.
func runShot(c *Circuit, rng *rand.Rand) (string, error) {
	sv, err := NewStateVector(c.numQubits)
	if err != nil {
		return "", err
	}

	bits := make([]int, c.numQubits)
	measured := make([]bool, c.numQubits)

	for _, g := range c.gates {
		if g.ClassicalControl >= 0 && bits[g.ClassicalControl] != 1 {
			continue
		}
		if g.Kind == Measure {
			bits[g.Target] = sv.MeasureQubit(g.Target, rng)
			measured[g.Target] = true
			continue
		}
		sv.Apply(g)
		if err := sv.checkNorm(); err != nil {
			return "", fmt.Errorf("after %v on qubit %d: %w", g.Kind, g.Target, err)
		}
	}

	for q := 0; q < c.numQubits; q++ {
		if !measured[q] {
			bits[q] = sv.MeasureQubit(q, rng)
		}
	}

	var sb strings.Builder
	for _, b := range bits {
		if b == 1 {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String(), nil
}
