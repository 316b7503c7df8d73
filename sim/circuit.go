// Package sim is a small dense state-vector quantum simulator. It supports
// the gate set {H, X, CNOT, RZ, measurement}, mid-circuit measurement with
// classically conditioned gates, and repeated-shot execution that tabulates
// outcome frequencies.
package sim

import (
	"errors"
	"fmt"
)

// Sentinel errors for build- and run-time validation. Callers match them
// with errors.Is.
var (
	ErrInvalidDimension  = errors.New("invalid register dimension")
	ErrInvalidQubitIndex = errors.New("invalid qubit index")
	ErrInvalidShotCount  = errors.New("invalid shot count")
	ErrUnsupportedGate   = errors.New("unsupported gate kind")
	ErrNormDrift         = errors.New("state vector norm drifted out of tolerance")
)

// GateKind identifies an operation in the closed gate set. Dispatch is a
// single exhaustive switch; an out-of-range kind fails circuit validation.
type GateKind int

const (
	Hadamard GateKind = iota
	PauliX
	ControlledNot
	PhaseRotation
	Measure
)

func (k GateKind) String() string {
	switch k {
	case Hadamard:
		return "H"
	case PauliX:
		return "X"
	case ControlledNot:
		return "CNOT"
	case PhaseRotation:
		return "RZ"
	case Measure:
		return "M"
	default:
		return fmt.Sprintf("GateKind(%d)", int(k))
	}
}

// Gate describes one recorded operation. Gates are immutable once recorded
// on a circuit.
type Gate struct {
	Kind    GateKind
	Target  int
	Control int     // control qubit for ControlledNot, -1 otherwise
	Theta   float64 // rotation angle for PhaseRotation

	// ClassicalControl gates the operation on a previously measured bit:
	// the gate applies only if the classical bit at this index measured 1.
	// -1 for unconditional gates. Classical bits are indexed by the qubit
	// they were measured from.
	ClassicalControl int
}

// H returns a Hadamard gate on the target qubit.
func H(target int) Gate {
	return Gate{Kind: Hadamard, Target: target, Control: -1, ClassicalControl: -1}
}

// X returns a Pauli-X (bit flip) gate on the target qubit.
func X(target int) Gate {
	return Gate{Kind: PauliX, Target: target, Control: -1, ClassicalControl: -1}
}

// CNOT returns a controlled-NOT gate.
func CNOT(control, target int) Gate {
	return Gate{Kind: ControlledNot, Target: target, Control: control, ClassicalControl: -1}
}

// RZ returns a phase rotation on the target qubit: amplitudes with the
// target bit set are multiplied by e^(i*theta).
func RZ(target int, theta float64) Gate {
	return Gate{Kind: PhaseRotation, Target: target, Theta: theta, Control: -1, ClassicalControl: -1}
}

// M returns a measurement of the target qubit into the classical bit of the
// same index.
func M(target int) Gate {
	return Gate{Kind: Measure, Target: target, Control: -1, ClassicalControl: -1}
}

// XIf returns a Pauli-X applied only if the given classical bit measured 1.
func XIf(target, classicalBit int) Gate {
	return Gate{Kind: PauliX, Target: target, Control: -1, ClassicalControl: classicalBit}
}

// RZIf returns a phase rotation applied only if the given classical bit
// measured 1.
func RZIf(target int, theta float64, classicalBit int) Gate {
	return Gate{Kind: PhaseRotation, Target: target, Theta: theta, Control: -1, ClassicalControl: classicalBit}
}

// Register is a validated qubit count, the unit a circuit is built against.
type Register struct {
	Qubits int
}

// NewRegister validates the qubit count against the supported range.
func NewRegister(n int) (Register, error) {
	if n <= 0 || n > MaxQubits {
		return Register{}, fmt.Errorf("%w: %d qubits (supported range 1..%d)", ErrInvalidDimension, n, MaxQubits)
	}
	return Register{Qubits: n}, nil
}

// Circuit is an ordered gate sequence over a fixed register size. It is
// read-only once built: Run replays it without mutation and Gates returns a
// copy.
type Circuit struct {
	numQubits int
	gates     []Gate
}

// NumQubits returns the register size the circuit was built for.
func (c *Circuit) NumQubits() int { return c.numQubits }

// Gates returns a copy of the recorded gate sequence.
func (c *Circuit) Gates() []Gate {
	gates := make([]Gate, len(c.gates))
	copy(gates, c.gates)
	return gates
}

// CustomCircuit builds a circuit from an arbitrary gate sequence, validating
// every gate against the register before any shot can execute.
func CustomCircuit(reg Register, gates []Gate) (*Circuit, error) {
	if _, err := NewRegister(reg.Qubits); err != nil {
		return nil, err
	}
	measured := make([]bool, reg.Qubits)
	for i, g := range gates {
		if err := validateGate(g, reg.Qubits); err != nil {
			return nil, fmt.Errorf("gate %d: %w", i, err)
		}
		if g.ClassicalControl >= 0 && !measured[g.ClassicalControl] {
			return nil, fmt.Errorf("gate %d: %w: classical bit %d conditioned before qubit %d was measured",
				i, ErrInvalidQubitIndex, g.ClassicalControl, g.ClassicalControl)
		}
		if g.Kind == Measure {
			measured[g.Target] = true
		}
	}
	recorded := make([]Gate, len(gates))
	copy(recorded, gates)
	return &Circuit{numQubits: reg.Qubits, gates: recorded}, nil
}

func validateGate(g Gate, numQubits int) error {
	switch g.Kind {
	case Hadamard, PauliX, PhaseRotation, Measure:
		if g.Target < 0 || g.Target >= numQubits {
			return fmt.Errorf("%w: target %d on %d-qubit register", ErrInvalidQubitIndex, g.Target, numQubits)
		}
	case ControlledNot:
		if g.Target < 0 || g.Target >= numQubits {
			return fmt.Errorf("%w: target %d on %d-qubit register", ErrInvalidQubitIndex, g.Target, numQubits)
		}
		if g.Control < 0 || g.Control >= numQubits {
			return fmt.Errorf("%w: control %d on %d-qubit register", ErrInvalidQubitIndex, g.Control, numQubits)
		}
		if g.Control == g.Target {
			return fmt.Errorf("%w: control and target are both %d", ErrInvalidQubitIndex, g.Target)
		}
	default:
		return fmt.Errorf("%w: %v", ErrUnsupportedGate, g.Kind)
	}
	if g.ClassicalControl < -1 || g.ClassicalControl >= numQubits {
		return fmt.Errorf("%w: classical control bit %d on %d-qubit register", ErrInvalidQubitIndex, g.ClassicalControl, numQubits)
	}
	if g.Kind == Measure && g.ClassicalControl >= 0 {
		return fmt.Errorf("%w: measurements cannot be classically conditioned", ErrUnsupportedGate)
	}
	return nil
}
