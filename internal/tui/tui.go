// Package tui renders watch mode: a live view of an agent playing a
// session, with the grid, ranked lines and the agent's commentary.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/lox/pokergrid/internal/agent"
	"github.com/lox/pokergrid/internal/deck"
	"github.com/lox/pokergrid/internal/grid"
	"github.com/lox/pokergrid/internal/session"
)

// Messages sent by the session observer.
type (
	// RoundStartedMsg opens a round.
	RoundStartedMsg struct {
		Round int
		Quota int
	}
	// GridDealtMsg carries the post-freeze grid snapshot.
	GridDealtMsg struct {
		Grid   *grid.Grid
		Frozen []grid.CellRef
	}
	// RoundScoredMsg carries the final grid scoring for a round.
	RoundScoredMsg struct {
		Result session.RoundResult
	}
	// ShopActionMsg reports one shop decision.
	ShopActionMsg struct {
		Action      agent.Action
		Explanation string
	}
	// SessionDoneMsg ends the watch.
	SessionDoneMsg struct {
		Result session.Result
		Err    error
	}
)

type keyMap struct {
	Quit key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Quit}}
}

var keys = keyMap{
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c", "esc"),
		key.WithHelp("q", "quit"),
	),
}

// Model is the bubbletea model for watch mode.
type Model struct {
	agentName string

	round  int
	quota  int
	grid   *grid.Grid
	frozen map[grid.CellRef]bool
	last   *session.RoundResult
	done   *session.Result
	err    error

	commentary []string
	help       help.Model
	width      int
	height     int
	quitting   bool
}

// NewModel creates the watch model for the named agent.
func NewModel(agentName string) *Model {
	return &Model{
		agentName: agentName,
		frozen:    make(map[grid.CellRef]bool),
		help:      help.New(),
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case tea.KeyMsg:
		if key.Matches(msg, keys.Quit) {
			m.quitting = true
			return m, tea.Quit
		}

	case RoundStartedMsg:
		m.round = msg.Round
		m.quota = msg.Quota
		m.last = nil
		m.frozen = make(map[grid.CellRef]bool)
		m.say(fmt.Sprintf("round %d begins, quota %d", msg.Round, msg.Quota))

	case GridDealtMsg:
		m.grid = msg.Grid
		m.frozen = make(map[grid.CellRef]bool)
		for _, ref := range msg.Frozen {
			m.frozen[ref] = true
		}
		if len(msg.Frozen) > 0 {
			m.say(fmt.Sprintf("freezing %d cells before the redeal", len(msg.Frozen)))
		} else {
			m.say("redealing the whole grid")
		}

	case RoundScoredMsg:
		m.last = &msg.Result
		verdict := "missed"
		if msg.Result.Beat {
			verdict = "cleared"
		}
		m.say(fmt.Sprintf("scored %d against quota %d: %s", msg.Result.Result.Total, msg.Result.Quota, verdict))

	case ShopActionMsg:
		m.say(fmt.Sprintf("shop: %s (%s)", msg.Action, msg.Explanation))

	case SessionDoneMsg:
		m.done = &msg.Result
		m.err = msg.Err
		return m, nil
	}
	return m, nil
}

func (m *Model) say(line string) {
	m.commentary = append(m.commentary, line)
	if len(m.commentary) > 8 {
		m.commentary = m.commentary[len(m.commentary)-8:]
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(HeaderStyle.Render(fmt.Sprintf("pokergrid (%s agent)", m.agentName)))
	b.WriteString("\n\n")

	if m.round > 0 {
		b.WriteString(fmt.Sprintf("Round %d  quota %d\n\n", m.round, m.quota))
	}
	if m.grid != nil {
		b.WriteString(m.renderGrid())
		b.WriteString("\n")
	}
	if m.last != nil {
		b.WriteString(m.renderLines())
		b.WriteString("\n")
	}
	if m.done != nil {
		b.WriteString(m.renderOutcome())
		b.WriteString("\n")
	}

	for _, line := range m.commentary {
		b.WriteString(CommentaryStyle.Render("· " + line))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(keys))
	return b.String()
}

func (m *Model) renderGrid() string {
	var b strings.Builder
	for r := 0; r < m.grid.Rows(); r++ {
		cells := make([]string, 0, m.grid.Cols())
		for c := 0; c < m.grid.Cols(); c++ {
			card, ok := m.grid.Card(r, c)
			if !ok {
				cells = append(cells, InfoStyle.Render(" · "))
				continue
			}
			cells = append(cells, renderCard(card, m.frozen[grid.CellRef{Row: r, Col: c}]))
		}
		b.WriteString(strings.Join(cells, " "))
		b.WriteString("\n")
	}
	return b.String()
}

// renderCard styles one card: red suits in red, frozen cells on a cold
// background.
func renderCard(card deck.Card, frozen bool) string {
	text := fmt.Sprintf("%3s", card)
	style := BlackCardStyle
	if card.Suit == deck.Hearts || card.Suit == deck.Diamonds {
		style = RedCardStyle
	}
	if frozen {
		style = FrozenCardStyle.Foreground(style.GetForeground())
	}
	return style.Render(text)
}

func (m *Model) renderLines() string {
	var b strings.Builder
	b.WriteString("Top lines:\n")
	for _, line := range m.last.Result.Top {
		b.WriteString(fmt.Sprintf("  %s %-8s %-15s %4d × %-3d = %d\n",
			LineRankStyle.Render(fmt.Sprintf("#%d", line.Rank)),
			line.Label(), line.Hand.Type, line.Chips, line.Mult, line.Score))
	}
	return b.String()
}

func (m *Model) renderOutcome() string {
	if m.err != nil {
		return ErrorStyle.Render(fmt.Sprintf("session aborted: %v", m.err))
	}
	if m.done.Won {
		return SuccessStyle.Render(m.done.Describe())
	}
	return ErrorStyle.Render(m.done.Describe())
}

// Observer bridges session events into the running program.
type Observer struct {
	program *tea.Program
}

// NewObserver wraps a program so a session can feed it.
func NewObserver(program *tea.Program) *Observer {
	return &Observer{program: program}
}

// RoundStarted implements session.Observer.
func (o *Observer) RoundStarted(round, quota int) {
	o.program.Send(RoundStartedMsg{Round: round, Quota: quota})
}

// GridDealt implements session.Observer. The grid is cloned so the
// model never races the session's mutations.
func (o *Observer) GridDealt(g *grid.Grid, frozen []grid.CellRef) {
	o.program.Send(GridDealtMsg{Grid: g.Clone(), Frozen: frozen})
}

// RoundScored implements session.Observer.
func (o *Observer) RoundScored(result session.RoundResult) {
	o.program.Send(RoundScoredMsg{Result: result})
}

// ShopAction implements session.Observer.
func (o *Observer) ShopAction(action agent.Action, explanation string) {
	o.program.Send(ShopActionMsg{Action: action, Explanation: explanation})
}
