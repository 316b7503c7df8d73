package sim

import (
	"math"
	"math/rand"
	"strings"
)

// MeasureQubit samples a classical outcome for qubit q, collapses the state
// vector to the consistent subspace and renormalizes it, then returns the
// drawn bit. The random source is injected so trials stay independent and
// tests reproducible. Measuring an already-collapsed qubit is deterministic:
// the only nonzero-probability bit is returned and the state is unchanged up
// to renormalization.
func (s *StateVector) MeasureQubit(q int, rng *rand.Rand) int {
	n := len(s.Amplitudes)
	bit := 1 << q

	prob1 := 0.0
	for i := 0; i < n; i++ {
		if i&bit != 0 {
			prob1 += s.Probability(i)
		}
	}

	outcome := 0
	if rng.Float64() < prob1 {
		outcome = 1
	}

	kept := prob1
	if outcome == 0 {
		kept = 1 - prob1
	}
	norm := complex(math.Sqrt(kept), 0)

	for i := 0; i < n; i++ {
		consistent := (i&bit != 0) == (outcome == 1)
		if consistent {
			s.Amplitudes[i] /= norm
		} else {
			s.Amplitudes[i] = 0
		}
	}
	return outcome
}

// MeasureAll collapses every qubit in index order 0..n-1 and returns the
// outcome as a bitstring with qubit 0 leftmost. Sequential per-qubit
// measurement is statistically equivalent to one joint draw from the full
// distribution; the test suite verifies this rather than assuming it.
func (s *StateVector) MeasureAll(rng *rand.Rand) string {
	var sb strings.Builder
	for q := 0; q < s.NumQubits; q++ {
		if s.MeasureQubit(q, rng) == 1 {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}
