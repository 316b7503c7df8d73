package main

import "qtermlab/sim"

// demoSpec describes one canned protocol demo: how to build its circuit and
// which statistics its table reports.
type demoSpec struct {
	name  string
	key   string // value accepted by --demo
	build func(cfg appConfig) *sim.Circuit
	rows  func(counts sim.Counts) []statRow
}

var demos = []demoSpec{
	{
		name:  "Bell Pair",
		key:   "bell",
		build: func(appConfig) *sim.Circuit { return sim.BellPair() },
		rows:  bellRows,
	},
	{
		name: "Quantum Teleportation",
		key:  "teleport",
		build: func(cfg appConfig) *sim.Circuit {
			return sim.Teleportation(sim.TeleportState{Amplitude: cfg.amplitude, Phase: cfg.theta})
		},
		rows: teleportRows,
	},
}

// demoIndex resolves a --demo flag value, returning -1 for unknown names.
func demoIndex(key string) int {
	for i, d := range demos {
		if d.key == key {
			return i
		}
	}
	return -1
}
