package sim

import "math"

// TeleportState describes the single-qubit state handed to the teleportation
// protocol as an (amplitude, phase) pair: a nonzero amplitude flips the
// input qubit to |1⟩ and a nonzero phase applies an RZ rotation to it.
type TeleportState struct {
	Amplitude float64
	Phase     float64
}

// BellPair builds the canonical 2-qubit entangling circuit: Hadamard on
// qubit 0 followed by CNOT(0,1). The ideal outcome distribution is exactly
// 50/50 over {00, 11}; anything else signals a defect in the engine.
func BellPair() *Circuit {
	return &Circuit{
		numQubits: 2,
		gates: []Gate{
			H(0),
			CNOT(0, 1),
		},
	}
}

// Teleportation builds the 3-qubit teleportation protocol: qubit 0 carries
// the state to teleport, qubits 1 and 2 form the entangled channel. Qubits
// 0 and 1 are measured mid-circuit and qubit 2 is corrected based on the
// two classical bits (X for bit 1, a π phase rotation — Z up to global
// phase — for bit 0), so the input state always arrives on qubit 2.
func Teleportation(state TeleportState) *Circuit {
	var gates []Gate

	// Prepare the state to teleport on qubit 0.
	if state.Amplitude != 0 {
		gates = append(gates, X(0))
	}
	if state.Phase != 0 {
		gates = append(gates, RZ(0, state.Phase))
	}

	// Entangled channel between qubits 1 and 2.
	gates = append(gates,
		H(1),
		CNOT(1, 2),
	)

	// Bell measurement of qubit 0 against its half of the channel.
	gates = append(gates,
		CNOT(0, 1),
		H(0),
		M(0),
		M(1),
	)

	// Corrections conditioned on the measured bits.
	gates = append(gates,
		XIf(2, 1),
		RZIf(2, math.Pi, 0),
	)

	return &Circuit{numQubits: 3, gates: gates}
}
