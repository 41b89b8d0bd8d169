package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/lox/blackjack/blackjack"
	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/ledger"
)

const (
	eventBuffer    = 256
	maxLogLines    = 500
	sidebarWidth   = 28
	defaultBetStep = 5
)

// Options configures the table host
type Options struct {
	Decks          int
	ReshuffleAtCut bool
	BetStep        int
}

// eventMsg carries a round event into the update loop
type eventMsg struct {
	event game.Event
}

// Model is the Bubble Tea model hosting a single-player blackjack table
type Model struct {
	round  *game.Round
	ledger *ledger.Ledger
	opts   Options
	logger *log.Logger

	keys      keyMap
	help      help.Model
	viewport  viewport.Model
	formatter *game.EventFormatter

	events  chan game.Event
	state   game.State
	gameLog []string
	status  string

	width    int
	height   int
	quitting bool
}

// New creates a table model driving round and ledger. The model subscribes
// to the round's events; the dealer may keep publishing from its own
// goroutine while the program runs.
func New(round *game.Round, l *ledger.Ledger, opts Options, logger *log.Logger) *Model {
	if opts.Decks <= 0 {
		opts.Decks = 1
	}
	if opts.BetStep <= 0 {
		opts.BetStep = defaultBetStep
	}

	m := &Model{
		round:     round,
		ledger:    l,
		opts:      opts,
		logger:    logger.WithPrefix("tui"),
		keys:      defaultKeyMap(),
		help:      help.New(),
		viewport:  viewport.New(10, 5),
		formatter: game.NewEventFormatter(game.FormattingOptions{ShowBets: true}),
		events:    make(chan game.Event, eventBuffer),
	}
	round.Subscribe(game.SubscriberFunc(m.onEvent))
	m.state = round.State()
	return m
}

// onEvent runs on whichever goroutine published the event
func (m *Model) onEvent(e game.Event) {
	select {
	case m.events <- e:
	default:
		m.logger.Warn("Dropping round event, UI is behind", "type", e.EventType())
	}
}

// waitForEvent returns a command that delivers the next round event
func (m *Model) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		return eventMsg{event: <-m.events}
	}
}

// Init initializes the TUI model
func (m *Model) Init() tea.Cmd {
	return m.waitForEvent()
}

// Update handles messages in the TUI
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.logger.Debug("Updating dimensions", "width", m.width, "height", m.height)

	case eventMsg:
		m.handleEvent(msg.event)
		return m, m.waitForEvent()

	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *Model) handleEvent(e game.Event) {
	if line := m.formatter.Format(e); line != "" {
		m.addLogEntry(line)
	}
	m.state = m.round.State()
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Hit):
		m.round.Hit(m.state.CurrentHand)
	case key.Matches(msg, m.keys.Stand):
		m.round.Stand(m.state.CurrentHand)
	case key.Matches(msg, m.keys.Split):
		m.round.Split(m.state.CurrentHand)
	case key.Matches(msg, m.keys.Deal):
		m.deal()
	case key.Matches(msg, m.keys.Clear):
		m.round.Clear()
		m.status = ""
	case key.Matches(msg, m.keys.BetUp):
		m.changeBet(m.opts.BetStep)
	case key.Matches(msg, m.keys.BetDown):
		m.changeBet(-m.opts.BetStep)
	}
	m.state = m.round.State()
	return nil
}

// deal starts a new round, reshuffling first when the shoe calls for it.
// A round in the player's turn is never abandoned by a deal.
func (m *Model) deal() {
	if m.state.Dealt() && m.state.Phase == game.PlayerTurn {
		m.status = "Finish the current round first"
		return
	}

	if m.state.ShoeRemaining < 4 || (m.opts.ReshuffleAtCut && m.state.PastCut) {
		if err := m.round.InitializeDeck(m.opts.Decks); err != nil {
			m.logger.Error("Failed to shuffle", "error", err)
			m.status = err.Error()
			return
		}
		m.addLogEntry(fmt.Sprintf("Shuffled %d deck shoe", m.opts.Decks))
	}
	m.round.InitializeHands()
	m.status = ""
}

func (m *Model) changeBet(delta int) {
	bet := max(0, m.ledger.BetValue()+delta)
	if err := m.ledger.SetBetValue(bet); err != nil {
		m.status = err.Error()
		return
	}
	m.status = fmt.Sprintf("Bet set to $%d for new hands", bet)
}

// addLogEntry appends a line to the game log, keeping the tail
func (m *Model) addLogEntry(line string) {
	m.gameLog = append(m.gameLog, line)
	if len(m.gameLog) > maxLogLines {
		m.gameLog = m.gameLog[len(m.gameLog)-maxLogLines:]
	}
	m.viewport.SetContent(strings.Join(m.gameLog, "\n"))
	m.viewport.GotoBottom()
}

// View renders the TUI
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	header := HeaderStyle.Render("Blackjack")
	table := m.renderTable()
	helpView := m.help.View(m.keys)

	sidebar := PaneStyle.Width(sidebarWidth).Render(m.renderSidebar())

	logWidth := max(1, m.width-sidebarWidth-4)
	logHeight := max(1, m.height-lipgloss.Height(header)-lipgloss.Height(table)-lipgloss.Height(helpView)-4)
	m.viewport.Width = logWidth
	m.viewport.Height = logHeight
	logPane := PaneStyle.Width(logWidth).Height(logHeight).Render(m.viewport.View())

	body := lipgloss.JoinHorizontal(lipgloss.Top, logPane, sidebar)
	return lipgloss.JoinVertical(lipgloss.Left, header, table, body, helpView)
}

// renderTable renders the dealer and player hands
func (m *Model) renderTable() string {
	var b strings.Builder
	s := m.state

	if !s.Dealt() {
		b.WriteString(InfoStyle.Render("Press n to deal"))
		b.WriteString("\n")
		if m.status != "" {
			b.WriteString(WarningStyle.Render(m.status))
			b.WriteString("\n")
		}
		return b.String()
	}

	dealerValue := fmt.Sprintf("%d", s.DealerShowing)
	if len(s.Dealer) > 0 && !s.Dealer[0].FaceUp {
		dealerValue += "+?"
	}
	fmt.Fprintf(&b, "Dealer: %s  (%s)\n", renderHand(s.Dealer), dealerValue)

	for i, h := range s.Hands {
		line := fmt.Sprintf("Hand %d: %s  (%d)  $%d", i+1, renderHand(h.Cards), h.Value, h.Bet)
		switch {
		case h.Outcome != game.OutcomeNone:
			line += "  " + renderOutcome(h.Outcome)
		case h.Stood:
			line += "  " + InfoStyle.Render("stood")
		}
		if s.Phase == game.PlayerTurn && i == s.CurrentHand && !h.Done() {
			line = CurrentHandStyle.Render("> ") + line
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	switch s.Phase {
	case game.DealerTurn:
		b.WriteString(InfoStyle.Render("Dealer is playing..."))
	case game.GameOver:
		b.WriteString(HandInfoStyle.Render("Round over. Press n for the next round"))
	default:
		b.WriteString(HandInfoStyle.Render("Your move"))
	}
	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(WarningStyle.Render(m.status))
		b.WriteString("\n")
	}
	return b.String()
}

// renderSidebar shows the bankroll and shoe
func (m *Model) renderSidebar() string {
	var b strings.Builder
	balance := m.ledger.Balance()
	balanceStyle := SuccessStyle
	if balance < 0 {
		balanceStyle = ErrorStyle
	}
	b.WriteString(balanceStyle.Render(fmt.Sprintf("Balance: $%d", balance)))
	b.WriteString("\n")
	b.WriteString(WarningStyle.Render(fmt.Sprintf("Bet: $%d", m.ledger.BetValue())))
	b.WriteString("\n\n")
	b.WriteString(Sparkline(m.ledger.History(), sidebarWidth-2))
	b.WriteString("\n\n")
	b.WriteString(InfoStyle.Render(fmt.Sprintf("Shoe: %d cards", m.state.ShoeRemaining)))
	if m.state.PastCut {
		b.WriteString("\n")
		b.WriteString(InfoStyle.Render("Cut card passed"))
	}
	return b.String()
}

func renderHand(h blackjack.Hand) string {
	parts := make([]string, len(h))
	for i, c := range h {
		parts[i] = renderCard(c)
	}
	return strings.Join(parts, " ")
}

func renderCard(c blackjack.Card) string {
	if !c.FaceUp {
		return HiddenCardStyle.Render("??")
	}
	if c.Suit.IsRed() {
		return RedCardStyle.Render(c.String())
	}
	return BlackCardStyle.Render(c.String())
}

func renderOutcome(o game.Outcome) string {
	switch {
	case o.PlayerWon():
		return SuccessStyle.Render(o.String())
	case o == game.OutcomeTie:
		return WarningStyle.Render(o.String())
	default:
		return ErrorStyle.Render(o.String())
	}
}

// GameLog returns a copy of the log lines shown in the log pane
func (m *Model) GameLog() []string {
	out := make([]string, len(m.gameLog))
	copy(out, m.gameLog)
	return out
}
