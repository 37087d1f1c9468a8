package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	goaldto "github.com/hara-desu/ForestOnchain/internal/modules/goal/dto"
	journaldto "github.com/hara-desu/ForestOnchain/internal/modules/journal/dto"
	sessiondto "github.com/hara-desu/ForestOnchain/internal/modules/session/dto"
	"github.com/hara-desu/ForestOnchain/internal/platform/clock"
	"github.com/hara-desu/ForestOnchain/internal/platform/countdown"
	apperrors "github.com/hara-desu/ForestOnchain/internal/platform/errors"
	"github.com/hara-desu/ForestOnchain/internal/platform/tx"
	"github.com/hara-desu/ForestOnchain/internal/platform/units"
	"github.com/hara-desu/ForestOnchain/internal/ui/components"
	"github.com/hara-desu/ForestOnchain/internal/ui/theme"
	activityview "github.com/hara-desu/ForestOnchain/internal/ui/views/activity"
	goalsview "github.com/hara-desu/ForestOnchain/internal/ui/views/goals"
	sessionview "github.com/hara-desu/ForestOnchain/internal/ui/views/session"
)

// ─── ports ───────────────────────────────────────────────────────────────────

type goalsPort interface {
	List(ctx context.Context, account string, sessionOnly bool) (goaldto.ListOutput, error)
	Create(ctx context.Context, account, activity, days, trees string) (goaldto.TxOutput, error)
	Claim(ctx context.Context, account, activity string) (goaldto.TxOutput, error)
	Quote(ctx context.Context, trees string) (goaldto.QuoteOutput, error)
}

type sessionPort interface {
	Status(ctx context.Context, account string) (sessiondto.StatusOutput, error)
	Start(ctx context.Context, account, activity, minutes string) (sessiondto.TxOutput, error)
	ScheduleBreak(ctx context.Context, minutes string) (sessiondto.BreakOutput, error)
	EndBreak(ctx context.Context, account string) (sessiondto.TxOutput, error)
}

type journalPort interface {
	List(ctx context.Context, limit int) (journaldto.ListOutput, error)
}

// transactions reports whether the latest lifecycle is between submission
// and confirmation.
type transactions interface {
	Submitting() bool
}

// Deps is everything the UI needs from the wired application.
type Deps struct {
	Account      string
	Goals        goalsPort
	Session      sessionPort
	Journal      journalPort
	Clock        clock.Clock
	Transactions transactions
	// Events carries every lifecycle transition, Succeeded only the
	// receipts of confirmed writes.
	Events         <-chan tx.Event
	Succeeded      <-chan tx.Receipt
	RequestTimeout time.Duration
	WriteTimeout   time.Duration
}

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabGoals tabID = iota
	tabSession
	tabActivity
	tabCount
)

var tabLabels = [tabCount]string{"Goals", "Session", "Activity"}

// ─── async messages ───────────────────────────────────────────────────────────

type txEventMsg struct{ ev tx.Event }

type txSucceededMsg struct{ receipt tx.Receipt }

type costLoadedMsg struct{ out goaldto.QuoteOutput }

// actionDoneMsg reports the end of a user action started from the palette or
// a key binding.
type actionDoneMsg struct {
	label string
	err   error
	write bool
}

type breakScheduledMsg struct {
	endsAt int64
	err    error
}

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Tab     key.Binding
	Help    key.Binding
	Palette key.Binding
	Quit    key.Binding
	Refresh key.Binding
	Claim   key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Claim:   key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "claim selected goal")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.Refresh, k.Claim},
		{k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It owns tab routing, the palette and
// the transaction status line; reads and rendering live in the tab views.
type Model struct {
	deps Deps

	goalsView    goalsview.Model
	sessionView  sessionview.Model
	activityView activityview.Model

	activeTab tabID
	keys      keyMap
	help      help.Model
	showHelp  bool
	palette   components.Palette
	// pending covers a write from the moment it is issued until its command
	// returns, including validation before the lifecycle submits.
	pending bool
	status  string
	width  int
	height int
}

func NewModel(deps Deps) Model {
	return Model{
		deps:         deps,
		goalsView:    goalsview.New(deps.Goals, deps.Account, deps.RequestTimeout),
		sessionView:  sessionview.New(deps.Session, deps.Account, deps.Clock, deps.RequestTimeout),
		activityView: activityview.New(deps.Journal),
		activeTab:    tabGoals,
		keys:         defaultKeys(),
		help:         help.New(),
		palette:      components.NewPalette(),
		status:       "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.goalsView.Init(),
		m.sessionView.Init(),
		m.activityView.Init(),
		m.listenEvents(),
		m.listenSucceeded(),
		m.loadCostCmd(),
	)
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// Results of background reads go to their view whichever tab is shown.
	switch bg := msg.(type) {
	case goalsview.LoadedMsg:
		var cmd tea.Cmd
		m.goalsView, cmd = m.goalsView.Update(msg)
		return m, cmd
	case sessionview.StatusLoadedMsg, sessionview.TickMsg:
		var cmd tea.Cmd
		m.sessionView, cmd = m.sessionView.Update(msg)
		return m, cmd
	case activityview.LoadedMsg:
		var cmd tea.Cmd
		m.activityView, cmd = m.activityView.Update(msg)
		return m, cmd
	case costLoadedMsg:
		m.palette.SetCostPerTree(bg.out.CostPerTreeWei)
		return m, nil
	}

	// The palette takes every key while open. Other messages still reach
	// the model so listeners and pending writes are never lost.
	if m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		if _, ok := msg.(tea.KeyMsg); ok {
			return m, cmd
		}
		cmds = append(cmds, cmd)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.propagateSize()
		return m, nil

	case txEventMsg:
		ev := msg.ev
		m.status = fmt.Sprintf("%s: %s", ev.Method, ev.State)
		if ev.Err != nil {
			m.status += " (" + apperrors.UserMessage(ev.Err) + ")"
		}
		return m, tea.Batch(m.activityView.Refresh(), m.listenEvents())

	case txSucceededMsg:
		cmds = append(cmds, m.goalsView.Refresh(), m.sessionView.Refresh(), m.listenSucceeded())
		return m, tea.Batch(cmds...)

	case actionDoneMsg:
		if msg.write {
			m.pending = false
		}
		if msg.err != nil {
			m.status = msg.label + " failed: " + apperrors.UserMessage(msg.err)
		} else {
			m.status = msg.label
		}
		return m, nil

	case breakScheduledMsg:
		if msg.err != nil {
			m.status = "break failed: " + apperrors.UserMessage(msg.err)
			return m, nil
		}
		m.status = "break until " + time.Unix(msg.endsAt, 0).Local().Format("15:04:05")
		return m, m.sessionView.Refresh()

	case sessionview.CompletedMsg:
		if msg.Break {
			m.status = "break is over, run :break:end"
		} else {
			m.status = "session complete"
		}
		return m, tea.Batch(m.sessionView.Refresh(), m.goalsView.Refresh())

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"
		return m, nil

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}
		if m.activeTab == tabGoals && m.goalsView.Filtering() {
			break
		}
		switch msg.String() {
		case "ctrl+c", "q":
			m.goalsView.Close()
			m.sessionView.Close()
			m.activityView.Close()
			return m, tea.Quit
		case "tab":
			m.activeTab = (m.activeTab + 1) % tabCount
			return m, nil
		case "shift+tab":
			m.activeTab = (m.activeTab + tabCount - 1) % tabCount
			return m, nil
		case "?":
			m.showHelp = !m.showHelp
			return m, nil
		case ":":
			return m, m.palette.Open()
		case "r":
			return m, m.refreshAll()
		case "c":
			if m.activeTab == tabGoals {
				if g, ok := m.goalsView.Selected(); ok {
					return m.startWrite("claim "+g.ActivityType, m.claimCmd(g.ActivityType))
				}
			}
		}
	}

	var tabCmd tea.Cmd
	switch m.activeTab {
	case tabGoals:
		m.goalsView, tabCmd = m.goalsView.Update(msg)
	case tabSession:
		m.sessionView, tabCmd = m.sessionView.Update(msg)
	case tabActivity:
		m.activityView, tabCmd = m.activityView.Update(msg)
	}
	cmds = append(cmds, tabCmd)
	return m, tea.Batch(cmds...)
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	contentH := m.height - lipgloss.Height(tabBar) - lipgloss.Height(statusBar)
	if contentH < 1 {
		contentH = 1
	}

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH, lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		content = m.activeView()
	}
	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) activeView() string {
	switch m.activeTab {
	case tabGoals:
		return m.goalsView.View()
	case tabSession:
		return m.sessionView.View()
	case tabActivity:
		return m.activityView.View()
	}
	return ""
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		label := tabLabels[i]
		if i == tabSession && m.sessionView.Remaining() > 0 {
			label += " " + countdown.Format(m.sessionView.Remaining())
		}
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + label + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + label + " ")
		}
	}
	bar := "forest  " + strings.Join(parts, theme.Muted.Render(" │ "))
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	if m.deps.Account == "" {
		left = theme.Bad.Render("no account") + "  " + left
	} else {
		left = theme.Good.Render("● "+shortAddress(m.deps.Account)) + "  " + left
	}
	switch {
	case m.submitting():
		left = theme.Hot.Render("⧗ confirming ") + left
	case m.pending:
		left = theme.Hot.Render("⧗ ") + left
	}
	right := theme.Muted.Render("?:help  tab:switch  :::palette  q:quit")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(left+strings.Repeat(" ", gap)+right)
}

// ─── palette execution ────────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return m, nil
	}

	switch parts[0] {
	case "goal:create":
		if len(parts) != 4 {
			m.status = "usage: goal:create <activity> <days> <trees>"
			return m, nil
		}
		return m.startWrite("goal created: "+parts[1], m.createCmd(parts[1], parts[2], parts[3]))

	case "goal:claim":
		activity := ""
		if len(parts) >= 2 {
			activity = parts[1]
		} else if g, ok := m.goalsView.Selected(); ok {
			activity = g.ActivityType
		}
		if activity == "" {
			m.status = "no goal selected"
			return m, nil
		}
		return m.startWrite("stake claimed: "+activity, m.claimCmd(activity))

	case "goal:quote":
		if len(parts) != 2 {
			m.status = "usage: goal:quote <trees>"
			return m, nil
		}
		return m, m.quoteCmd(parts[1])

	case "session:start":
		if len(parts) < 2 {
			m.status = "usage: session:start <minutes> [activity]"
			return m, nil
		}
		activity := m.sessionView.SelectedActivity()
		if len(parts) >= 3 {
			activity = strings.Join(parts[2:], " ")
		}
		m.activeTab = tabSession
		return m.startWrite("session started", m.startSessionCmd(activity, parts[1]))

	case "break:start":
		if len(parts) != 2 {
			m.status = "usage: break:start <minutes>"
			return m, nil
		}
		m.activeTab = tabSession
		return m, m.scheduleBreakCmd(parts[1])

	case "break:end":
		return m.startWrite("break taken", m.endBreakCmd())

	case "refresh":
		return m, m.refreshAll()

	case "tx:list":
		m.activeTab = tabActivity
		return m, m.activityView.Refresh()

	default:
		m.status = "unknown command: " + parts[0]
	}
	return m, nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

func (m Model) submitting() bool {
	return m.deps.Transactions != nil && m.deps.Transactions.Submitting()
}

// startWrite runs one write at a time. Further writes are refused while one
// is issued or its lifecycle is still submitting.
func (m Model) startWrite(label string, cmd tea.Cmd) (tea.Model, tea.Cmd) {
	if m.pending || m.submitting() {
		m.status = "a transaction is already in progress"
		return m, nil
	}
	m.pending = true
	m.status = label + "…"
	return m, cmd
}

func (m Model) refreshAll() tea.Cmd {
	return tea.Batch(m.goalsView.Refresh(), m.sessionView.Refresh(), m.activityView.Refresh())
}

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
	m.goalsView, _ = m.goalsView.Update(sz)
	m.sessionView, _ = m.sessionView.Update(sz)
	m.activityView, _ = m.activityView.Update(sz)
}

func shortAddress(addr string) string {
	if len(addr) < 12 {
		return addr
	}
	return addr[:6] + "…" + addr[len(addr)-4:]
}

// ─── async commands ───────────────────────────────────────────────────────────

func (m Model) listenEvents() tea.Cmd {
	events := m.deps.Events
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return nil
		}
		return txEventMsg{ev: ev}
	}
}

func (m Model) listenSucceeded() tea.Cmd {
	succeeded := m.deps.Succeeded
	if succeeded == nil {
		return nil
	}
	return func() tea.Msg {
		r, ok := <-succeeded
		if !ok {
			return nil
		}
		return txSucceededMsg{receipt: r}
	}
}

// loadCostCmd reads the cost per tree for the palette's stake preview. A
// failed read leaves the preview off.
func (m Model) loadCostCmd() tea.Cmd {
	goals, timeout := m.deps.Goals, m.deps.RequestTimeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		out, err := goals.Quote(ctx, "1")
		if err != nil {
			return nil
		}
		return costLoadedMsg{out: out}
	}
}

func (m Model) writeContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), m.deps.WriteTimeout)
}

func (m Model) createCmd(activity, days, trees string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.writeContext()
		defer cancel()
		out, err := m.deps.Goals.Create(ctx, m.deps.Account, activity, days, trees)
		label := "goal created: " + activity
		if err == nil {
			label += " staked " + units.FormatEther(out.ValueWei) + " ETH"
		}
		return actionDoneMsg{label: label, err: err, write: true}
	}
}

func (m Model) claimCmd(activity string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.writeContext()
		defer cancel()
		_, err := m.deps.Goals.Claim(ctx, m.deps.Account, activity)
		return actionDoneMsg{label: "stake claimed: " + activity, err: err, write: true}
	}
}

func (m Model) quoteCmd(trees string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), m.deps.RequestTimeout)
		defer cancel()
		out, err := m.deps.Goals.Quote(ctx, trees)
		return actionDoneMsg{
			label: fmt.Sprintf("stake for %s trees: %s ETH", trees, units.FormatEther(out.StakeWei)),
			err:   err,
		}
	}
}

func (m Model) startSessionCmd(activity, minutes string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.writeContext()
		defer cancel()
		_, err := m.deps.Session.Start(ctx, m.deps.Account, activity, minutes)
		return actionDoneMsg{label: "session started: " + activity, err: err, write: true}
	}
}

func (m Model) scheduleBreakCmd(minutes string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.deps.Session.ScheduleBreak(context.Background(), minutes)
		return breakScheduledMsg{endsAt: out.EndsAt, err: err}
	}
}

func (m Model) endBreakCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.writeContext()
		defer cancel()
		_, err := m.deps.Session.EndBreak(ctx, m.deps.Account)
		return actionDoneMsg{label: "break taken", err: err, write: true}
	}
}
