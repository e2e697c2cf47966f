package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	// Glass panel effect with subtle border
	GlassPanel = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444466")).
			Padding(1, 2)

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#00ffff"))

	Subtle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666688"))

	StateOn = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#00ff88"))

	StateOff = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ff4444"))

	MetricValue = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00ccff")).
			Bold(true)

	MetricLabel = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888899")).
			Width(14)

	KeyHint = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666688")).
		Italic(true)

	ErrorBox = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("#ff4444")).
			Foreground(lipgloss.Color("#ffffff")).
			Padding(1, 3)

	SparkHigh = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ff88"))
	SparkMid  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffcc00"))
	SparkLow  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444"))
)

// PenStyles colours the canvas: the room shell grey, other meshes white, and
// each particle cloud in its point-sprite colour.
var PenStyles = map[Pen]lipgloss.Style{
	PenRoom:   lipgloss.NewStyle().Foreground(lipgloss.Color("#808080")),
	PenMesh:   lipgloss.NewStyle().Foreground(lipgloss.Color("#dddddd")),
	PenAC:     lipgloss.NewStyle().Foreground(lipgloss.Color("#00ffff")),
	PenWindow: lipgloss.NewStyle().Foreground(lipgloss.Color("#88ff88")),
}

// StateStyle picks the on/off style for a readout value.
func StateStyle(on bool) lipgloss.Style {
	if on {
		return StateOn
	}
	return StateOff
}

// ProgressBar renders percent (0-100) as a bar of width cells.
func ProgressBar(percent, width int) string {
	if width < 1 {
		return ""
	}
	filled := percent * width / 100
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)

	if percent > 80 {
		return SparkHigh.Render(bar)
	} else if percent > 40 {
		return SparkMid.Render(bar)
	}
	return SparkLow.Render(bar)
}

// AnimatedSpinner returns frame of animated spinner
func AnimatedSpinner(frame int) string {
	spinners := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	return spinners[frame%len(spinners)]
}
