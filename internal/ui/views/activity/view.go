package activity

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	journaldto "github.com/hara-desu/ForestOnchain/internal/modules/journal/dto"
	apperrors "github.com/hara-desu/ForestOnchain/internal/platform/errors"
	"github.com/hara-desu/ForestOnchain/internal/platform/refresh"
	"github.com/hara-desu/ForestOnchain/internal/ui/theme"
)

const historyLimit = 50

type JournalPort interface {
	List(ctx context.Context, limit int) (journaldto.ListOutput, error)
}

type LoadedMsg struct {
	ticket refresh.Ticket
	Out    journaldto.ListOutput
	Err    error
}

type Model struct {
	port   JournalPort
	source *refresh.Source[journaldto.ListOutput]
	view   viewport.Model
	width  int
	height int
}

func New(port JournalPort) Model {
	return Model{
		port:   port,
		source: &refresh.Source[journaldto.ListOutput]{},
		view:   viewport.New(0, 0),
	}
}

func (m Model) Init() tea.Cmd {
	return m.Refresh()
}

func (m Model) Refresh() tea.Cmd {
	ticket := m.source.Begin()
	port, source := m.port, m.source
	return func() tea.Msg {
		if source.Stale(ticket) {
			return nil
		}
		out, err := port.List(context.Background(), historyLimit)
		return LoadedMsg{ticket: ticket, Out: out, Err: err}
	}
}

func (m Model) Close() {
	m.source.Close()
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.view.Width = msg.Width
		m.view.Height = msg.Height
	case LoadedMsg:
		if m.source.Publish(msg.ticket, msg.Out, msg.Err) {
			m.view.SetContent(render(msg.Out, msg.Err))
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.view, cmd = m.view.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	return m.view.View()
}

func render(out journaldto.ListOutput, err error) string {
	if err != nil {
		return theme.Bad.Render(apperrors.UserMessage(err))
	}
	if len(out.Entries) == 0 {
		return theme.Muted.Render("No transactions yet.")
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Recent transactions") + "\n\n")
	for _, e := range out.Entries {
		state := e.State
		switch e.State {
		case "succeeded":
			state = theme.Good.Render(state)
		case "failed":
			state = theme.Bad.Render(state)
		default:
			state = theme.Hot.Render(state)
		}
		sb.WriteString(fmt.Sprintf("%s  %-18s %s\n", theme.Muted.Render(e.UpdatedAt.Local().Format(time.DateTime)), e.Method, state))
		if e.Hash != "" {
			sb.WriteString(theme.Muted.Render("    "+e.Hash) + "\n")
		}
		if e.Message != "" {
			sb.WriteString("    " + e.Message + "\n")
		}
	}
	return sb.String()
}
