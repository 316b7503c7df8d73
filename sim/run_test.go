package sim

import (
	"errors"
	"math/rand"
	"reflect"
	"testing"

	"gonum.org/v1/gonum/stat"
)

func TestRunRejectsInvalidShots(t *testing.T) {
	c := BellPair()
	for _, shots := range []int{0, -3} {
		if _, err := Run(c, shots); !errors.Is(err, ErrInvalidShotCount) {
			t.Errorf("Run(shots=%d): got %v, want ErrInvalidShotCount", shots, err)
		}
	}
}

func TestRunRejectsNilCircuit(t *testing.T) {
	if _, err := Run(nil, 10); err == nil {
		t.Error("Run(nil, 10) succeeded")
	}
}

func TestBellPairDistribution(t *testing.T) {
	const shots = 10000
	counts, err := Run(BellPair(), shots, WithSeed(1))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if total := counts.Total(); total != shots {
		t.Errorf("counts total %d, want %d", total, shots)
	}
	for outcome := range counts {
		if outcome != "00" && outcome != "11" {
			t.Errorf("outcome %q outside the bell support {00, 11}", outcome)
		}
	}
	for _, outcome := range []string{"00", "11"} {
		n := counts[outcome]
		if n < 4500 || n > 5500 {
			t.Errorf("count of %q = %d, want within 5000±500", outcome, n)
		}
	}
}

func TestTeleportationSupport(t *testing.T) {
	const shots = 10000
	counts, err := Run(Teleportation(TeleportState{Amplitude: 1, Phase: 0.5}), shots, WithSeed(7))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if total := counts.Total(); total != shots {
		t.Errorf("counts total %d, want %d", total, shots)
	}

	// Teleporting |1⟩ (the phase is global) pins qubit 2 to 1 while the two
	// mid-circuit bits stay uniform, so the support is exactly these four.
	support := map[string]bool{"001": true, "011": true, "101": true, "111": true}
	for outcome := range counts {
		if !support[outcome] {
			t.Errorf("outcome %q outside the teleportation support", outcome)
		}
	}
	for outcome := range support {
		n := counts[outcome]
		if n < 2000 || n > 3000 {
			t.Errorf("count of %q = %d, want within 2500±500", outcome, n)
		}
	}
}

func TestEndToEndExample(t *testing.T) {
	reg, _ := NewRegister(2)
	c, err := CustomCircuit(reg, []Gate{H(0), CNOT(0, 1), M(0), M(1)})
	if err != nil {
		t.Fatalf("CustomCircuit: %v", err)
	}
	counts, err := Run(c, 1000, WithSeed(3))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if total := counts.Total(); total != 1000 {
		t.Errorf("counts total %d, want 1000", total)
	}
	for outcome, n := range counts {
		if outcome != "00" && outcome != "11" {
			t.Errorf("unexpected outcome %q", outcome)
		}
		if n < 450 || n > 550 {
			t.Errorf("count of %q = %d, want within 500±50", outcome, n)
		}
	}
}

func TestRunReproducibleAcrossWorkerCounts(t *testing.T) {
	c := Teleportation(TeleportState{Amplitude: 1, Phase: 0.5})

	sequential, err := Run(c, 2000, WithSeed(99))
	if err != nil {
		t.Fatalf("sequential run: %v", err)
	}
	parallel, err := Run(c, 2000, WithSeed(99), WithWorkers(4))
	if err != nil {
		t.Fatalf("parallel run: %v", err)
	}
	if !reflect.DeepEqual(sequential, parallel) {
		t.Errorf("same seed, different tables:\nsequential: %v\nparallel:   %v", sequential, parallel)
	}
}

func TestRunDoesNotMutateCircuit(t *testing.T) {
	c := BellPair()
	before := c.Gates()
	if _, err := Run(c, 100, WithSeed(5)); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !reflect.DeepEqual(before, c.Gates()) {
		t.Error("Run mutated the circuit's gate sequence")
	}
}

// Consecutive shots must be statistically independent. Bell outcomes form a
// binary sequence; a chi-square test on the 2x2 contingency table of
// adjacent pairs detects carry-over between shots.
func TestShotIndependence(t *testing.T) {
	const shots = 4000
	const seed = int64(12345)

	c := BellPair()
	seq := make([]int, shots)
	for i := 0; i < shots; i++ {
		// Mirror Run's per-shot generator derivation.
		outcome, err := runShot(c, rand.New(rand.NewSource(seed+int64(i))))
		if err != nil {
			t.Fatalf("shot %d: %v", i, err)
		}
		if outcome == "11" {
			seq[i] = 1
		}
	}

	var table [2][2]float64
	for i := 0; i+1 < shots; i++ {
		table[seq[i]][seq[i+1]]++
	}

	pairs := float64(shots - 1)
	observed := make([]float64, 0, 4)
	expected := make([]float64, 0, 4)
	for a := 0; a < 2; a++ {
		for b := 0; b < 2; b++ {
			rowTotal := table[a][0] + table[a][1]
			colTotal := table[0][b] + table[1][b]
			observed = append(observed, table[a][b])
			expected = append(expected, rowTotal*colTotal/pairs)
		}
	}

	// df=1; 10.83 is the 0.001 critical value.
	if x2 := stat.ChiSquare(observed, expected); x2 > 10.83 {
		t.Errorf("adjacent shots look correlated: chi-square %.2f, table %v", x2, table)
	}
}
