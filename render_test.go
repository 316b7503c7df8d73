package main

import (
	"strings"
	"testing"

	"qtermlab/sim"
)

func TestHistogramFormatting(t *testing.T) {
	counts := sim.Counts{"00": 498, "11": 502}
	out := renderHistogram(counts)

	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 histogram lines, got %d:\n%s", len(lines), out)
	}

	// Outcomes are sorted, so |00⟩ comes first.
	if !strings.Contains(lines[0], "|00⟩") || !strings.Contains(lines[0], "49.8%") || !strings.Contains(lines[0], "(498)") {
		t.Errorf("first line = %q, want |00⟩ at 49.8%% (498)", lines[0])
	}
	if !strings.Contains(lines[1], "|11⟩") || !strings.Contains(lines[1], "50.2%") || !strings.Contains(lines[1], "(502)") {
		t.Errorf("second line = %q, want |11⟩ at 50.2%% (502)", lines[1])
	}

	// Two percent per bar block: 49.8% → 24 blocks.
	if got := strings.Count(lines[0], "█"); got != 24 {
		t.Errorf("first line has %d bar blocks, want 24", got)
	}
	if got := strings.Count(lines[1], "█"); got != 25 {
		t.Errorf("second line has %d bar blocks, want 25", got)
	}
}

func TestRenderStatsAlignsLabels(t *testing.T) {
	out := renderStats([]statRow{
		{"Total Measurements", "1000"},
		{"Fidelity", "0.990"},
	})
	if !strings.Contains(out, "Total Measurements") || !strings.Contains(out, "0.990") {
		t.Errorf("stats table missing rows:\n%s", out)
	}
}

func TestRenderCircuitBell(t *testing.T) {
	out := renderCircuit(sim.BellPair())

	for _, want := range []string{"q[0]", "q[1]", "┤H├", "●", "⊕"} {
		if !strings.Contains(out, want) {
			t.Errorf("bell diagram missing %q:\n%s", want, out)
		}
	}
	// No measurements or conditionals, so no classical wire.
	if strings.Contains(out, "═") {
		t.Errorf("bell diagram should not have a classical wire:\n%s", out)
	}
}

func TestRenderCircuitTeleportation(t *testing.T) {
	c := sim.Teleportation(sim.TeleportState{Amplitude: 1, Phase: 0.5})
	out := renderCircuit(c)

	for _, want := range []string{"q[2]", "┤M├", "┤RZ├", "╩0", "╩1", "║"} {
		if !strings.Contains(out, want) {
			t.Errorf("teleportation diagram missing %q:\n%s", want, out)
		}
	}
}

func TestCellWidthCoversLabels(t *testing.T) {
	if w := cellWidth(sim.RZ(0, 1.0)); w != 6 {
		t.Errorf("cellWidth(RZ) = %d, want 6", w)
	}
	if w := cellWidth(sim.H(0)); w != minCellW {
		t.Errorf("cellWidth(H) = %d, want %d", w, minCellW)
	}
	if w := cellWidth(sim.CNOT(0, 1)); w != minCellW {
		t.Errorf("cellWidth(CNOT) = %d, want %d", w, minCellW)
	}
}
