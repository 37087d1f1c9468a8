package components

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hara-desu/ForestOnchain/internal/platform/units"
	"github.com/hara-desu/ForestOnchain/internal/ui/theme"
)

// PaletteSubmitMsg is emitted when the user confirms a command.
type PaletteSubmitMsg struct{ Input string }

// PaletteCancelMsg is emitted when the user presses esc.
type PaletteCancelMsg struct{}

var (
	paletteStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Bark).
			Background(theme.Mantle).
			Foreground(theme.Text).
			Padding(0, 1)

	hintStyle = lipgloss.NewStyle().Foreground(theme.Subtext0)
)

// hints must stay in sync with the switch in app/model.go executePalette.
var paletteHints = []string{
	"goal:create <activity> <days> <trees>",
	"goal:claim [activity]",
	"goal:quote <trees>",
	"session:start <minutes> [activity]",
	"break:start <minutes>",
	"break:end",
	"refresh",
	"tx:list",
}

// Palette is a command-palette overlay backed by bubbles/textinput.
type Palette struct {
	input   textinput.Model
	visible bool
	width   int
	// costPerTree prices goal:create while it is typed. nil until loaded.
	costPerTree *big.Int
}

// NewPalette creates an inactive Palette ready to be opened.
func NewPalette() Palette {
	ti := textinput.New()
	ti.Placeholder = "type a command…"
	ti.CharLimit = 256
	return Palette{input: ti}
}

// Visible reports whether the palette is currently shown.
func (p Palette) Visible() bool { return p.visible }

// Open shows the palette, clears the input, and returns the focus command.
func (p *Palette) Open() tea.Cmd {
	p.visible = true
	p.input.SetValue("")
	return p.input.Focus()
}

// SetWidth sets the render width for the overlay.
func (p *Palette) SetWidth(w int) { p.width = w }

// SetCostPerTree sets the price used for the goal:create stake preview.
func (p *Palette) SetCostPerTree(wei *big.Int) { p.costPerTree = wei }

func (p Palette) Update(msg tea.Msg) (Palette, tea.Cmd) {
	if !p.visible {
		return p, nil
	}
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			p.visible = false
			p.input.Blur()
			return p, func() tea.Msg { return PaletteCancelMsg{} }
		case "enter":
			val := strings.TrimSpace(p.input.Value())
			p.visible = false
			p.input.Blur()
			return p, func() tea.Msg { return PaletteSubmitMsg{Input: val} }
		case "tab":
			// Completes the command name once the prefix is unambiguous.
			if matching := matchingHints(p.input.Value()); len(matching) == 1 {
				name, _, _ := strings.Cut(matching[0], " ")
				if !strings.Contains(p.input.Value(), " ") {
					p.input.SetValue(name + " ")
					p.input.CursorEnd()
				}
			}
			return p, nil
		}
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

func (p Palette) View() string {
	if !p.visible {
		return ""
	}
	matching := matchingHints(p.input.Value())

	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Forest commands") + "\n")
	sb.WriteString(": " + p.input.View() + "\n")
	if len(matching) > 0 {
		sb.WriteString("\n")
		for _, h := range matching {
			sb.WriteString(hintStyle.Render("  "+h) + "\n")
		}
	}
	if preview := p.stakePreview(); preview != "" {
		sb.WriteString("\n" + theme.Good.Render(preview) + "\n")
	}

	w := p.width
	if w < 20 {
		w = 64
	}
	return paletteStyle.Width(w - 2).Render(sb.String())
}

// stakePreview prices "goal:create <activity> <days> <trees>" as it is typed.
func (p Palette) stakePreview() string {
	fields := strings.Fields(p.input.Value())
	if len(fields) != 4 || fields[0] != "goal:create" || p.costPerTree == nil || p.costPerTree.Sign() == 0 {
		return ""
	}
	trees, err := strconv.ParseUint(fields[3], 10, 64)
	if err != nil || trees == 0 {
		return ""
	}
	stake := new(big.Int).Mul(new(big.Int).SetUint64(trees), p.costPerTree)
	return fmt.Sprintf("stake: %d × %s = %s ETH", trees, units.FormatEther(p.costPerTree), units.FormatEther(stake))
}

// matchingHints returns up to five hints for the typed input. Before the
// first space it matches command prefixes; after it, the typed command only.
func matchingHints(input string) []string {
	text := strings.ToLower(strings.TrimLeft(input, " "))
	name, _, hasArgs := strings.Cut(text, " ")
	var matching []string
	for _, h := range paletteHints {
		hintName, _, _ := strings.Cut(h, " ")
		if (hasArgs && hintName == name) || (!hasArgs && strings.HasPrefix(hintName, name)) {
			matching = append(matching, h)
			if len(matching) == 5 {
				break
			}
		}
	}
	return matching
}
