package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"qtermlab/sim"
)

// focus represents which element has keyboard input.
type focus int

const (
	focusDemo focus = iota
	focusShots
)

// Model is the TUI application state.
type Model struct {
	cfg      appConfig
	selected int // index into demos
	shots    int
	runs     int // rerun counter, slides the base seed
	circuit  *sim.Circuit
	counts   sim.Counts
	runErr   error

	shotsInput textinput.Model
	focus      focus
	width      int
	height     int
	statusMsg  string
}

func initialModel(cfg appConfig) Model {
	ti := textinput.New()
	ti.Placeholder = "1000"
	ti.CharLimit = 7
	ti.Width = 10

	m := Model{
		cfg:        cfg,
		selected:   cfg.demo,
		shots:      cfg.shots,
		shotsInput: ti,
	}
	m.rerun()
	return m
}

// rerun executes the selected demo on a fresh slice of the seed space so
// every rerun draws new samples while staying reproducible for a fixed
// --seed.
func (m *Model) rerun() {
	demo := demos[m.selected]
	m.circuit = demo.build(m.cfg)
	seed := m.cfg.seed + int64(m.runs)*1_000_003
	m.runs++
	m.counts, m.runErr = sim.Run(m.circuit, m.shots,
		sim.WithSeed(seed), sim.WithWorkers(m.cfg.workers))
	if m.runErr == nil {
		m.statusMsg = fmt.Sprintf("ran %d shots", m.shots)
	}
}

func (m Model) Init() tea.Cmd { return nil }

// Update handles key and resize events.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if m.focus == focusShots {
			return m.updateShotsInput(msg)
		}
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "tab", "right", "l":
			m.selected = (m.selected + 1) % len(demos)
			m.rerun()
		case "shift+tab", "left", "h":
			m.selected = (m.selected - 1 + len(demos)) % len(demos)
			m.rerun()
		case "r":
			m.rerun()
		case "s":
			m.focus = focusShots
			m.shotsInput.SetValue(strconv.Itoa(m.shots))
			return m, m.shotsInput.Focus()
		}
	}
	return m, nil
}

func (m Model) updateShotsInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.focus = focusDemo
		m.shotsInput.Blur()
		v, err := strconv.Atoi(strings.TrimSpace(m.shotsInput.Value()))
		if err != nil || v < 1 {
			m.statusMsg = "shots must be a positive integer"
			return m, nil
		}
		m.shots = v
		m.rerun()
		return m, nil
	case "esc":
		m.focus = focusDemo
		m.shotsInput.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.shotsInput, cmd = m.shotsInput.Update(msg)
	return m, cmd
}

// View renders the UI.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	header := m.renderHeader()

	contentWidth := m.width - 4
	circuitPanel := panel(circuitStyle, contentWidth,
		titleStyle.Render("Quantum Circuit")+"\n\n"+renderCircuit(m.circuit))

	histWidth := contentWidth * 3 / 5
	statsWidth := contentWidth - histWidth - 2

	var histBody, statsBody string
	if m.runErr != nil {
		histBody = errStyle.Render(m.runErr.Error())
		statsBody = errStyle.Render("no results")
	} else {
		histBody = renderHistogram(m.counts)
		statsBody = renderStats(demos[m.selected].rows(m.counts))
	}
	histPanel := panel(histStyle, histWidth,
		titleStyle.Render("Measurement Distribution")+"\n\n"+histBody)
	statsPanel := panel(statsStyle, statsWidth,
		titleStyle.Render("Statistical Analysis")+"\n\n"+statsBody)

	controls := panel(controlsStyle, contentWidth, m.renderControls())

	results := lipgloss.JoinHorizontal(lipgloss.Top, histPanel, statsPanel)
	return lipgloss.JoinVertical(lipgloss.Left, header, circuitPanel, results, controls)
}

func (m Model) renderHeader() string {
	var tabs []string
	for i, d := range demos {
		if i == m.selected {
			tabs = append(tabs, selectedDemoStyle.Render("▸ "+d.name))
		} else {
			tabs = append(tabs, dimStyle.Render("  "+d.name))
		}
	}
	return "  " + strings.Join(tabs, "   ")
}

func (m Model) renderControls() string {
	var sb strings.Builder
	if m.focus == focusShots {
		sb.WriteString(activeStyle.Render("Shots: "))
		sb.WriteString(m.shotsInput.View())
		sb.WriteString(dimStyle.Render("   Enter Confirm  Esc Cancel"))
		return sb.String()
	}

	sb.WriteString(activeStyle.Render("Demos:   "))
	sb.WriteString("Tab/←→ Switch demo  r Rerun  s Set shots  q Quit\n")
	sb.WriteString(activeStyle.Render("Status:  "))
	fmt.Fprintf(&sb, "%s, %d shots", demos[m.selected].name, m.shots)
	if m.statusMsg != "" {
		fmt.Fprintf(&sb, "  │  %s", dimStyle.Render(m.statusMsg))
	}
	return sb.String()
}
