package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"qtermlab/sim"
)

// ──────────────────────────── Rendering helpers ────────────────────────────

// panel renders a bordered panel, fixing its width only when one is given
// (the plain CLI mode lets panels size to their content).
func panel(style lipgloss.Style, width int, body string) string {
	if width > 0 {
		style = style.Width(width)
	}
	return style.Render(body)
}

// gateLabel returns the boxed display name for a single-qubit gate.
func gateLabel(g sim.Gate) string {
	switch g.Kind {
	case sim.Hadamard:
		return "H"
	case sim.PauliX:
		return "X"
	case sim.PhaseRotation:
		return "RZ"
	case sim.Measure:
		return "M"
	default:
		return "?"
	}
}

// cellWidth returns the diagram column width needed for a gate.
func cellWidth(g sim.Gate) int {
	switch g.Kind {
	case sim.ControlledNot:
		return minCellW
	default:
		if w := len(gateLabel(g)) + 4; w > minCellW {
			return w
		}
		return minCellW
	}
}

// ──────────────────────────── Histogram ────────────────────────────

// renderHistogram builds the measurement distribution body, one bar per
// outcome: |state⟩ ████████ 49.8% (498). Bars scale at two percent per
// block, matching the histograms the demos document.
func renderHistogram(counts sim.Counts) string {
	var sb strings.Builder
	total := counts.Total()
	for _, key := range counts.Keys() {
		n := counts[key]
		pct := 0.0
		if total > 0 {
			pct = float64(n) / float64(total) * 100
		}
		bars := strings.Repeat("█", int(pct/2))
		fmt.Fprintf(&sb, "%s %s %5.1f%% (%d)\n",
			outcomeStyle.Render("|"+key+"⟩"), barStyle.Render(bars), pct, n)
	}
	return strings.TrimRight(sb.String(), "\n")
}

// ──────────────────────────── Statistics table ────────────────────────────

func renderStats(rows []statRow) string {
	maxLabel := 0
	for _, r := range rows {
		if len(r.Label) > maxLabel {
			maxLabel = len(r.Label)
		}
	}
	var sb strings.Builder
	for _, r := range rows {
		fmt.Fprintf(&sb, "%s  %s\n",
			statLabelStyle.Render(fmt.Sprintf("%-*s", maxLabel, r.Label)),
			statValueStyle.Render(r.Value))
	}
	return strings.TrimRight(sb.String(), "\n")
}

// ──────────────────────────── Circuit diagram ────────────────────────────

// renderCircuit renders the gate sequence as a wire diagram: one column per
// gate, three lines per qubit, and a classical double wire below when the
// circuit measures or classically conditions anything.
func renderCircuit(c *sim.Circuit) string {
	gates := c.Gates()
	n := c.NumQubits()

	widths := make([]int, len(gates))
	hasClassical := false
	for j, g := range gates {
		widths[j] = cellWidth(g)
		if g.Kind == sim.Measure || g.ClassicalControl >= 0 {
			hasClassical = true
		}
	}

	var sb strings.Builder
	for q := 0; q < n; q++ {
		label := fmt.Sprintf("q[%d]", q)
		top := strings.Repeat(" ", labelVisualW)
		mid := qubitLabelStyle.Render(fmt.Sprintf("%-5s", label)) + "──"
		bot := strings.Repeat(" ", labelVisualW)

		for j, g := range gates {
			t, m, b := diagramCell(g, q, widths[j])
			top += t
			mid += m
			bot += b
		}
		sb.WriteString(top + "\n")
		sb.WriteString(mid + "\n")
		sb.WriteString(bot + "\n")
	}

	if hasClassical {
		sb.WriteString(renderClassicalWire(gates, widths))
	}

	return strings.TrimRight(sb.String(), "\n")
}

// diagramCell returns the three lines of one diagram cell for the given
// gate column and qubit wire.
func diagramCell(g sim.Gate, qubit, w int) (top, mid, bot string) {
	empty := strings.Repeat(" ", w)
	half := w / 2
	vert := strings.Repeat(" ", half) + "│" + strings.Repeat(" ", w-half-1)
	dblVert := strings.Repeat(" ", half) + cbitConnectorStyle.Render("║") + strings.Repeat(" ", w-half-1)
	dashL := (w - 1) / 2
	dashR := w - dashL - 1

	// Column's connection down to the classical wire, if any.
	classicalQ := -1
	if g.Kind == sim.Measure || g.ClassicalControl >= 0 {
		classicalQ = g.Target
	}

	switch {
	case g.Kind == sim.ControlledNot && qubit == g.Control:
		top, bot = empty, empty
		if g.Target < qubit {
			top = vert
		} else {
			bot = vert
		}
		mid = strings.Repeat("─", dashL) + gateStyle.Render("●") + strings.Repeat("─", dashR)

	case g.Kind == sim.ControlledNot && qubit == g.Target:
		top, bot = empty, empty
		if g.Control < qubit {
			top = vert
		} else {
			bot = vert
		}
		mid = strings.Repeat("─", dashL) + gateStyle.Render("⊕") + strings.Repeat("─", dashR)

	case g.Kind == sim.ControlledNot && betweenWires(qubit, g.Control, g.Target):
		top, bot = vert, vert
		mid = strings.Repeat("─", dashL) + "┼" + strings.Repeat("─", dashR)

	case qubit == g.Target:
		label := gateLabel(g)
		boxW := len(label) + 2
		margin := (w - boxW) / 2
		right := w - margin - boxW
		top = strings.Repeat(" ", margin) + gateStyle.Render("┌"+strings.Repeat("─", len(label))+"┐") + strings.Repeat(" ", right)
		mid = strings.Repeat("─", margin) + gateStyle.Render("┤"+label+"├") + strings.Repeat("─", right)
		bot = strings.Repeat(" ", margin) + gateStyle.Render("└"+strings.Repeat("─", len(label))+"┘") + strings.Repeat(" ", right)
		if classicalQ == qubit {
			bot = dblVert
		}

	case classicalQ >= 0 && qubit > classicalQ:
		// A measurement/conditioning connection passes through this wire.
		top, bot = dblVert, dblVert
		mid = strings.Repeat("─", dashL) + cbitConnectorStyle.Render("╫") + strings.Repeat("─", dashR)

	default:
		top, bot = empty, empty
		mid = strings.Repeat("─", w)
	}
	return
}

// renderClassicalWire renders the single classical wire line under the
// qubit wires, marking where measurements land and where conditioned gates
// read from.
func renderClassicalWire(gates []sim.Gate, widths []int) string {
	line := cbitLabelStyle.Render(fmt.Sprintf("%-5s", "c")) + cbitWireStyle.Render("══")

	for j, g := range gates {
		w := widths[j]
		bit := -1
		switch {
		case g.Kind == sim.Measure:
			bit = g.Target
		case g.ClassicalControl >= 0:
			bit = g.ClassicalControl
		}
		if bit < 0 {
			line += cbitWireStyle.Render(strings.Repeat("═", w))
			continue
		}
		bitLabel := fmt.Sprintf("%d", bit)
		dashL := (w - 1) / 2
		dashR := w - dashL - 1 - len(bitLabel)
		if dashR < 0 {
			dashR = 0
		}
		line += cbitWireStyle.Render(strings.Repeat("═", dashL)) +
			cbitConnectorStyle.Render("╩"+bitLabel) +
			cbitWireStyle.Render(strings.Repeat("═", dashR))
	}
	return line
}

// betweenWires reports whether q lies strictly between a and b.
func betweenWires(q, a, b int) bool {
	lo, hi := a, b
	if lo > hi {
		lo, hi = hi, lo
	}
	return q > lo && q < hi
}
