// Package report renders models and controllers for humans: terminal
// plots and tables, and PNG step-response charts. It is a thin adapter
// over the numeric packages and owns no state of its own.
package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/luizn22/auto-control-tools/internal/lti"
	"github.com/luizn22/auto-control-tools/internal/pid"
	"github.com/luizn22/auto-control-tools/internal/plant"
)

const (
	graphWidth  = 72
	graphHeight = 14
)

var (
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Width(18)
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	graphStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("63"))
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
)

// StepChart renders a step-response trajectory as an ascii chart.
func StepChart(y []float64, caption string) string {
	chart := asciigraph.Plot(y,
		asciigraph.Height(graphHeight),
		asciigraph.Width(graphWidth),
		asciigraph.Caption(caption),
	)
	return graphStyle.Render(chart)
}

// ModelSummary renders the identified parameters and step metrics.
func ModelSummary(m *plant.FirstOrder, info lti.Info) string {
	var s strings.Builder
	s.WriteString(titleStyle.Render("MODEL") + "\n")
	s.WriteString(row("K", m.K()))
	s.WriteString(row("tau", m.Tau()))
	s.WriteString(row("theta", m.Theta()))
	s.WriteString(InfoTable(info))
	return s.String()
}

// GainsSummary renders a tuned controller.
func GainsSummary(c *pid.Controller, info lti.Info) string {
	var s strings.Builder
	s.WriteString(titleStyle.Render("CONTROLLER") + "\n")
	s.WriteString(row("Kp", c.Kp()))
	s.WriteString(row("Ki", c.Ki()))
	s.WriteString(row("Kd", c.Kd()))
	s.WriteString(InfoTable(info))
	return s.String()
}

// InfoTable renders the standard step-response characteristics.
func InfoTable(info lti.Info) string {
	var s strings.Builder
	s.WriteString(row("RiseTime", info.RiseTime))
	s.WriteString(row("SettlingTime", info.SettlingTime))
	s.WriteString(row("SettlingMin", info.SettlingMin))
	s.WriteString(row("SettlingMax", info.SettlingMax))
	s.WriteString(row("Overshoot", info.Overshoot))
	s.WriteString(row("Undershoot", info.Undershoot))
	s.WriteString(row("Peak", info.Peak))
	s.WriteString(row("PeakTime", info.PeakTime))
	s.WriteString(row("SteadyStateValue", info.SteadyStateValue))
	return s.String()
}

func row(label string, v float64) string {
	return labelStyle.Render(label) + valueStyle.Render(fmt.Sprintf("%.4f", v)) + "\n"
}
