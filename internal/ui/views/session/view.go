package session

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	goaldto "github.com/hara-desu/ForestOnchain/internal/modules/goal/dto"
	sessiondto "github.com/hara-desu/ForestOnchain/internal/modules/session/dto"
	"github.com/hara-desu/ForestOnchain/internal/platform/clock"
	"github.com/hara-desu/ForestOnchain/internal/platform/countdown"
	apperrors "github.com/hara-desu/ForestOnchain/internal/platform/errors"
	"github.com/hara-desu/ForestOnchain/internal/platform/refresh"
	"github.com/hara-desu/ForestOnchain/internal/ui/theme"
)

type SessionPort interface {
	Status(ctx context.Context, account string) (sessiondto.StatusOutput, error)
}

type StatusLoadedMsg struct {
	ticket refresh.Ticket
	Out    sessiondto.StatusOutput
	Err    error
}

// TickMsg is one countdown update.
type TickMsg struct {
	Update countdown.Update
}

// CompletedMsg is emitted once when a running countdown reaches zero. A
// deadline already past when it was loaded does not emit it.
type CompletedMsg struct {
	Break bool
}

type Model struct {
	port    SessionPort
	account string
	timeout time.Duration
	source  *refresh.Source[sessiondto.StatusOutput]
	timer   *countdown.Timer

	episode   uint64
	remaining int64
	waiting   bool
	selected  int
	width     int
	height    int
}

func New(port SessionPort, account string, clk clock.Clock, timeout time.Duration) Model {
	return Model{
		port:    port,
		account: account,
		timeout: timeout,
		source:  &refresh.Source[sessiondto.StatusOutput]{},
		timer:   countdown.New(clk),
	}
}

func (m Model) Init() tea.Cmd {
	return m.Refresh()
}

func (m Model) Refresh() tea.Cmd {
	ticket := m.source.Begin()
	port, account, timeout, source := m.port, m.account, m.timeout, m.source
	return func() tea.Msg {
		if source.Stale(ticket) {
			return nil
		}
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		out, err := port.Status(ctx, account)
		return StatusLoadedMsg{ticket: ticket, Out: out, Err: err}
	}
}

// Close stops the countdown and drops in-flight refreshes.
func (m Model) Close() {
	m.timer.Stop()
	m.source.Close()
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case StatusLoadedMsg:
		if !m.source.Publish(msg.ticket, msg.Out, msg.Err) {
			return m, nil
		}
		if msg.Err != nil {
			return m, nil
		}
		if m.selected >= len(msg.Out.Goals) {
			m.selected = 0
		}
		target := countdown.None
		if msg.Out.HasCountdown {
			target = countdown.At(msg.Out.Deadline)
		}
		first := m.timer.Set(target)
		m.episode = first.Episode
		m.remaining = first.Remaining
		cmd := m.wait()
		return m, cmd

	case TickMsg:
		m.waiting = false
		if msg.Update.Episode != m.episode {
			cmd := m.wait()
			return m, cmd
		}
		counting := m.remaining > 0
		m.remaining = msg.Update.Remaining
		if msg.Update.Completed && counting {
			status := m.status()
			isBreak := status.BreakNeeded && !status.HasActiveSession
			return m, func() tea.Msg { return CompletedMsg{Break: isBreak} }
		}
		cmd := m.wait()
		return m, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}
		case "down", "j":
			if m.selected < len(m.status().Goals)-1 {
				m.selected++
			}
		}
	}
	return m, nil
}

// wait arms a single reader of the timer's updates.
func (m *Model) wait() tea.Cmd {
	if m.waiting || !m.timer.Running() {
		return nil
	}
	m.waiting = true
	updates := m.timer.Updates()
	return func() tea.Msg {
		return TickMsg{Update: <-updates}
	}
}

// status is the last published snapshot. A failed refresh yields the zero
// value.
func (m Model) status() sessiondto.StatusOutput {
	out, _, _ := m.source.Current()
	return out
}

// SelectedActivity is the goal highlighted for the next session.
func (m Model) SelectedActivity() string {
	goals := m.status().Goals
	if m.selected < len(goals) {
		return goals[m.selected].ActivityType
	}
	return ""
}

// Remaining is the seconds left on the shown countdown, or 0 when nothing is
// counting down.
func (m Model) Remaining() int64 { return m.remaining }

func (m Model) View() string {
	s, err, loaded := m.source.Current()
	if !loaded {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, theme.Muted.Render("Loading session…"))
	}
	if err != nil {
		return theme.Bad.Render(apperrors.UserMessage(err))
	}

	var sb strings.Builder
	switch {
	case s.HasActiveSession:
		sb.WriteString(theme.Title.Render("Focusing on "+s.Session.ActivityType) + "\n\n")
		sb.WriteString(theme.Clock.Render(countdown.Format(m.remaining)) + "\n\n")
		if s.MatchedGoal != nil {
			sb.WriteString(fmt.Sprintf("%s%d\n", theme.Muted.Render("trees left: "), s.MatchedGoal.TreesRemaining))
		}
	case s.BreakNeeded && s.HasCountdown:
		sb.WriteString(theme.Title.Render("On a break") + "\n\n")
		sb.WriteString(theme.Clock.Render(countdown.Format(m.remaining)) + "\n\n")
		sb.WriteString(theme.Muted.Render("When the break is over run :break:end") + "\n")
	case s.BreakNeeded:
		sb.WriteString(theme.Hot.Render("A break is required before the next session.") + "\n")
		sb.WriteString(theme.Muted.Render("Start one with :break:start <minutes>") + "\n")
	default:
		sb.WriteString(theme.Title.Render("No active session") + "\n\n")
		sb.WriteString(renderGoals(s.Goals, m.selected))
		sb.WriteString("\n" + theme.Muted.Render("↑/↓ select  :session:start <minutes>") + "\n")
	}
	return theme.Pane.Width(max(m.width-4, 20)).Render(sb.String())
}

func renderGoals(goals []goaldto.GoalOutput, selected int) string {
	if len(goals) == 0 {
		return theme.Muted.Render("No goal a session can be started for.") + "\n"
	}
	var sb strings.Builder
	for i, g := range goals {
		line := fmt.Sprintf("%s  %d trees left", g.ActivityType, g.TreesRemaining)
		if i == selected {
			sb.WriteString(theme.Good.Render("› "+line) + "\n")
			continue
		}
		sb.WriteString("  " + line + "\n")
	}
	return sb.String()
}
