package sim

import (
	"fmt"
	"math"
	"math/cmplx"
)

// MaxQubits bounds register size. 2^25 complex128 amplitudes is already half
// a gigabyte of state; beyond that the dense representation stops being
// practical.
const MaxQubits = 25

// normTolerance is the allowed deviation of total probability mass from 1.
const normTolerance = 1e-9

// StateVector holds the 2^n complex amplitudes of an n-qubit register,
// indexed by the n-bit binary representation of each basis state (qubit 0 is
// the least significant bit).
type StateVector struct {
	Amplitudes []complex128
	NumQubits  int
}

// NewStateVector allocates an n-qubit register initialized to |00...0⟩.
func NewStateVector(numQubits int) (*StateVector, error) {
	if numQubits <= 0 || numQubits > MaxQubits {
		return nil, fmt.Errorf("%w: %d qubits (supported range 1..%d)", ErrInvalidDimension, numQubits, MaxQubits)
	}
	amps := make([]complex128, 1<<numQubits)
	amps[0] = 1
	return &StateVector{Amplitudes: amps, NumQubits: numQubits}, nil
}

// Clone returns an independent copy of the state vector.
func (s *StateVector) Clone() *StateVector {
	amps := make([]complex128, len(s.Amplitudes))
	copy(amps, s.Amplitudes)
	return &StateVector{Amplitudes: amps, NumQubits: s.NumQubits}
}

// Probability returns the probability of observing the given basis state.
func (s *StateVector) Probability(basisState int) float64 {
	a := s.Amplitudes[basisState]
	return real(a * cmplx.Conj(a))
}

// Norm returns the total probability mass. It is 1 within normTolerance
// after every unitary operation.
func (s *StateVector) Norm() float64 {
	total := 0.0
	for _, a := range s.Amplitudes {
		total += real(a * cmplx.Conj(a))
	}
	return total
}

// checkNorm reports drift of the unit-norm invariant. Drift is a defect in
// the gate engine, so callers abort rather than renormalize.
func (s *StateVector) checkNorm() error {
	if norm := s.Norm(); math.Abs(norm-1) > normTolerance {
		return fmt.Errorf("%w: norm %.12f", ErrNormDrift, norm)
	}
	return nil
}

// Apply dispatches a recorded unitary gate, honoring nothing but the gate
// descriptor: measurements and classical conditioning are handled by the
// shot runner. Gates are assumed validated at circuit build time.
func (s *StateVector) Apply(g Gate) {
	switch g.Kind {
	case Hadamard:
		s.ApplyHadamard(g.Target)
	case PauliX:
		s.ApplyPauliX(g.Target)
	case ControlledNot:
		s.ApplyCNOT(g.Control, g.Target)
	case PhaseRotation:
		s.ApplyPhaseRotation(g.Target, g.Theta)
	case Measure:
		// not a unitary; the runner samples it
	}
}

// ApplyHadamard replaces amplitudes at index pairs differing only in bit q
// with (a+b)/√2 and (a-b)/√2.
func (s *StateVector) ApplyHadamard(q int) {
	hFactor := complex(1.0/math.Sqrt2, 0)
	n := len(s.Amplitudes)
	bit := 1 << q
	for i := 0; i < n; i++ {
		if i&bit == 0 {
			j := i | bit
			a, b := s.Amplitudes[i], s.Amplitudes[j]
			s.Amplitudes[i] = hFactor * (a + b)
			s.Amplitudes[j] = hFactor * (a - b)
		}
	}
}

// ApplyPauliX swaps amplitude pairs differing in bit q.
func (s *StateVector) ApplyPauliX(q int) {
	n := len(s.Amplitudes)
	bit := 1 << q
	for i := 0; i < n; i++ {
		if i&bit == 0 {
			j := i | bit
			s.Amplitudes[i], s.Amplitudes[j] = s.Amplitudes[j], s.Amplitudes[i]
		}
	}
}

// ApplyCNOT flips the target bit within the subspace where the control bit
// is 1; the control-0 subspace is untouched.
func (s *StateVector) ApplyCNOT(control, target int) {
	n := len(s.Amplitudes)
	cBit := 1 << control
	tBit := 1 << target
	for i := 0; i < n; i++ {
		if i&cBit != 0 && i&tBit == 0 {
			j := i | tBit
			s.Amplitudes[i], s.Amplitudes[j] = s.Amplitudes[j], s.Amplitudes[i]
		}
	}
}

// ApplyPhaseRotation multiplies amplitudes where bit q is 1 by e^(i*theta),
// leaving the bit-0 amplitudes unchanged.
func (s *StateVector) ApplyPhaseRotation(q int, theta float64) {
	n := len(s.Amplitudes)
	bit := 1 << q
	phase := cmplx.Exp(complex(0, theta))
	for i := 0; i < n; i++ {
		if i&bit != 0 {
			s.Amplitudes[i] *= phase
		}
	}
}
