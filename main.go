// qtermlab is a terminal demo of a small state-vector quantum simulator: it
// runs the canned Bell pair and quantum teleportation protocols and renders
// their measurement distributions as histograms, statistics tables, and
// circuit diagrams. The simulation itself lives in the sim package; this
// binary only consumes frequency tables and gate sequences.
package main

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	flag "github.com/spf13/pflag"

	"qtermlab/sim"
)

var (
	shotsFlag   = flag.Int("shots", 1000, "Shots per run.")
	seedFlag    = flag.Int64("seed", 0, "Base random seed; 0 derives one from the clock.")
	workersFlag = flag.Int("workers", 1, "Parallel shot workers.")
	demoFlag    = flag.String("demo", "bell", `Initial demo: "bell" or "teleport".`)
	plainFlag   = flag.Bool("plain", false, "Print a single run to stdout instead of starting the TUI.")
	thetaFlag   = flag.Float64("theta", 0.5, "Phase of the state handed to teleportation.")
	ampFlag     = flag.Float64("amplitude", 1, "Amplitude of the state handed to teleportation; nonzero flips the input to |1⟩.")
)

// appConfig carries the parsed command-line configuration.
type appConfig struct {
	shots     int
	seed      int64
	workers   int
	demo      int // index into demos
	theta     float64
	amplitude float64
}

func main() {
	flag.Parse()

	cfg := appConfig{
		shots:     *shotsFlag,
		seed:      *seedFlag,
		workers:   *workersFlag,
		theta:     *thetaFlag,
		amplitude: *ampFlag,
	}
	if cfg.seed == 0 {
		cfg.seed = time.Now().UnixNano()
	}
	cfg.demo = demoIndex(*demoFlag)
	if cfg.demo < 0 {
		log.Fatal("unknown demo", "demo", *demoFlag)
	}
	if cfg.shots < 1 {
		log.Fatal("shots must be a positive integer", "shots", cfg.shots)
	}

	if *plainFlag {
		runPlain(cfg)
		return
	}

	if _, err := tea.NewProgram(initialModel(cfg), tea.WithAltScreen()).Run(); err != nil {
		log.Fatal("running TUI", "err", err)
	}
}

// runPlain executes the selected demo once and prints the panels to stdout.
func runPlain(cfg appConfig) {
	demo := demos[cfg.demo]
	log.Info("running demo", "demo", demo.key, "shots", cfg.shots, "seed", cfg.seed, "workers", cfg.workers)

	circuit := demo.build(cfg)
	counts, err := sim.Run(circuit, cfg.shots, sim.WithSeed(cfg.seed), sim.WithWorkers(cfg.workers))
	if err != nil {
		log.Fatal("run failed", "err", err)
	}

	fmt.Println(panel(circuitStyle, 0, titleStyle.Render("Quantum Circuit")+"\n\n"+renderCircuit(circuit)))
	fmt.Println(panel(histStyle, 0, titleStyle.Render("Measurement Distribution")+"\n\n"+renderHistogram(counts)))
	fmt.Println(panel(statsStyle, 0, titleStyle.Render("Statistical Analysis")+"\n\n"+renderStats(demo.rows(counts))))
}
