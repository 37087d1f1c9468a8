package goals

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	goaldto "github.com/hara-desu/ForestOnchain/internal/modules/goal/dto"
	apperrors "github.com/hara-desu/ForestOnchain/internal/platform/errors"
	"github.com/hara-desu/ForestOnchain/internal/platform/refresh"
	"github.com/hara-desu/ForestOnchain/internal/platform/units"
	"github.com/hara-desu/ForestOnchain/internal/ui/theme"
)

type GoalsPort interface {
	List(ctx context.Context, account string, sessionOnly bool) (goaldto.ListOutput, error)
}

// LoadedMsg carries one refresh result. Results of superseded refreshes are
// dropped on arrival.
type LoadedMsg struct {
	ticket refresh.Ticket
	Out    goaldto.ListOutput
	Err    error
}

type goalItem struct {
	goal goaldto.GoalOutput
}

func (i goalItem) Title() string { return i.goal.ActivityType }

func (i goalItem) Description() string {
	desc := fmt.Sprintf("%d trees left", i.goal.TreesRemaining)
	switch {
	case i.goal.Claimable:
		desc += "  claimable"
	case i.goal.Expired:
		desc += "  expired"
	}
	return desc
}

func (i goalItem) FilterValue() string { return i.goal.ActivityType }

type Model struct {
	port    GoalsPort
	account string
	timeout time.Duration
	source  *refresh.Source[goaldto.ListOutput]

	list    list.Model
	detail  viewport.Model
	spinner spinner.Model
	loading bool
	missing int
	err     error
	width   int
	height  int
}

func New(port GoalsPort, account string, timeout time.Duration) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Leaf).BorderForeground(theme.Leaf)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sky).BorderForeground(theme.Leaf)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Ongoing goals"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().Background(theme.Mantle).Foreground(theme.Text).Padding(1)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Leaf)

	return Model{
		port:    port,
		account: account,
		timeout: timeout,
		source:  &refresh.Source[goaldto.ListOutput]{},
		list:    l,
		detail:  vp,
		spinner: sp,
		loading: true,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.Refresh(), m.spinner.Tick)
}

// Refresh starts a new read generation. A refresh superseded before it runs
// skips the read.
func (m Model) Refresh() tea.Cmd {
	ticket := m.source.Begin()
	port, account, timeout, source := m.port, m.account, m.timeout, m.source
	return func() tea.Msg {
		if source.Stale(ticket) {
			return nil
		}
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		out, err := port.List(ctx, account, false)
		return LoadedMsg{ticket: ticket, Out: out, Err: err}
	}
}

// Close drops every in-flight refresh.
func (m Model) Close() {
	m.source.Close()
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case LoadedMsg:
		if !m.source.Publish(msg.ticket, msg.Out, msg.Err) {
			return m, nil
		}
		m.loading = false
		m.err = msg.Err
		if msg.Err != nil {
			m.detail.SetContent(m.renderDetail())
			return m, nil
		}
		m.missing = msg.Out.MissingSlots
		items := make([]list.Item, len(msg.Out.Goals))
		for i, g := range msg.Out.Goals {
			items[i] = goalItem{goal: g}
		}
		cmds = append(cmds, m.list.SetItems(items))
		m.detail.SetContent(m.renderDetail())

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	if !m.loading {
		prevIdx := m.list.Index()
		var lCmd tea.Cmd
		m.list, lCmd = m.list.Update(msg)
		cmds = append(cmds, lCmd)
		if m.list.Index() != prevIdx {
			m.detail.SetContent(m.renderDetail())
		}
		var vCmd tea.Cmd
		m.detail, vCmd = m.detail.Update(msg)
		cmds = append(cmds, vCmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading goals…")
	}
	listW := m.width * 4 / 10
	detailW := m.width - listW

	listPane := lipgloss.NewStyle().Width(listW).Height(m.height).Render(m.list.View())
	detailPane := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Surface1).
		Background(theme.Mantle).
		Width(detailW - 2).
		Height(m.height - 2).
		Render(m.detail.View())
	return lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane)
}

// Selected returns the highlighted goal.
func (m Model) Selected() (goaldto.GoalOutput, bool) {
	if item, ok := m.list.SelectedItem().(goalItem); ok {
		return item.goal, true
	}
	return goaldto.GoalOutput{}, false
}

func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m *Model) resize() {
	listW := m.width * 4 / 10
	detailW := m.width - listW
	m.list.SetSize(listW, m.height)
	m.detail.Width = detailW - 4
	m.detail.Height = m.height - 4
}

func (m Model) renderDetail() string {
	if m.err != nil {
		return theme.Bad.Render(apperrors.UserMessage(m.err))
	}
	g, ok := m.Selected()
	if !ok {
		return theme.Muted.Render("No ongoing goals. Create one with :goal:create")
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(g.ActivityType) + "\n\n")
	sb.WriteString(fmt.Sprintf("%s%d\n", theme.Muted.Render("trees left: "), g.TreesRemaining))
	sb.WriteString(theme.Muted.Render("ends:       ") + formatEnd(g.EndTime) + "\n")
	sb.WriteString(theme.Muted.Render("staked:     ") + units.FormatEther(g.StakedWei) + " ETH\n")
	switch {
	case g.Claimable:
		sb.WriteString("\n" + theme.Good.Render("All trees grown. Press c to claim your stake."))
	case g.Expired:
		sb.WriteString("\n" + theme.Bad.Render("This goal has expired."))
	}
	if m.missing > 0 {
		sb.WriteString("\n\n" + theme.Muted.Render(fmt.Sprintf("%d reads were incomplete and are shown as zero", m.missing)))
	}
	return sb.String()
}

func formatEnd(sec int64) string {
	if sec == 0 {
		return "-"
	}
	return time.Unix(sec, 0).Local().Format("2006-01-02 15:04")
}
