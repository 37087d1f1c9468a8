package theme

import "github.com/charmbracelet/lipgloss"

var (
	Base     = lipgloss.Color("#1b2119")
	Mantle   = lipgloss.Color("#151a14")
	Surface0 = lipgloss.Color("#2a3327")
	Surface1 = lipgloss.Color("#3d4a38")
	Text     = lipgloss.Color("#dfe8d6")
	Subtext0 = lipgloss.Color("#a3b39a")
	Leaf     = lipgloss.Color("#8fd18a")
	Moss     = lipgloss.Color("#6aa56c")
	Sky      = lipgloss.Color("#7cc4d8")
	Bark     = lipgloss.Color("#c9a36b")
	Ember    = lipgloss.Color("#e07a5f")

	Pane = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Surface1).
		Background(Mantle).
		Foreground(Text).
		Padding(1)

	Title = lipgloss.NewStyle().Foreground(Sky).Bold(true)
	Muted = lipgloss.NewStyle().Foreground(Subtext0)
	Hot   = lipgloss.NewStyle().Foreground(Bark).Bold(true)
	Good  = lipgloss.NewStyle().Foreground(Leaf).Bold(true)
	Bad   = lipgloss.NewStyle().Foreground(Ember)
	Clock = lipgloss.NewStyle().Foreground(Leaf).Bold(true).Padding(1, 4).
		BorderStyle(lipgloss.DoubleBorder()).BorderForeground(Moss)
)
