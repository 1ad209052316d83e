package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/domain/shared"
	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/events"
	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/presentation"
	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/services/arena"
	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/services/match"
)

// maxLog is how many log lines the screen keeps
const maxLog = 12

type cell struct {
	highlight presentation.Highlight
	icon      presentation.Icon
}

type startedMsg struct {
	matchID string
	err     error
}

type outcomeMsg struct {
	outcome arena.Outcome
	err     error
}

// Model is the terminal screen of one match
type Model struct {
	matches match.Service
	input   *match.CreateMatchInput
	matchID string

	cells   [shared.GridWidth][shared.GridHeight]cell
	cursor  shared.Point
	log     []string
	stats   map[presentation.Stat]string
	track   string
	message *presentation.Message
	notice  string

	busy     bool
	winner   string
	aborted  string
	spinner  spinner.Model
	err      error
	quitting bool
}

// ModelConfig holds what the model needs to run a match
type ModelConfig struct {
	Matches match.Service
	// Input is the match to create once the program runs. Its Sink should
	// be the Sink attached to the program.
	Input *match.CreateMatchInput
}

// NewModel creates the model. The match starts from Init.
func NewModel(cfg *ModelConfig) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot

	m := Model{
		matches: cfg.Matches,
		input:   cfg.Input,
		cursor:  shared.Pt(1, 1),
		stats:   make(map[presentation.Stat]string),
		spinner: s,
	}
	for x := range m.cells {
		for y := range m.cells[x] {
			m.cells[x][y] = cell{icon: presentation.IconEmpty}
		}
	}
	return m
}

// Err is why the match stopped early, if it did
func (m Model) Err() error { return m.err }

// MatchID is the running match, empty until it has started
func (m Model) MatchID() string { return m.matchID }

func (m Model) Init() tea.Cmd {
	matches, input := m.matches, m.input
	return func() tea.Msg {
		rec, err := matches.CreateMatch(context.Background(), input)
		if err != nil {
			return startedMsg{err: err}
		}
		return startedMsg{matchID: rec.ID}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case startedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.quitting = true
			return m, tea.Quit
		}
		m.matchID = msg.matchID

	case outcomeMsg:
		m.notice = ""
		if msg.err != nil {
			m.notice = msg.err.Error()
		} else if msg.outcome == arena.OutcomeIgnored {
			m.notice = "Nothing to do there."
		}

	case logMsg:
		m.log = append(m.log, msg.line)
		if len(m.log) > maxLog {
			m.log = m.log[len(m.log)-maxLog:]
		}

	case statMsg:
		m.stats[msg.stat] = msg.value

	case highlightMsg:
		if c := m.cell(msg.p); c != nil {
			c.highlight = msg.h
		}

	case iconMsg:
		if c := m.cell(msg.p); c != nil {
			c.icon = msg.icon
		}

	case musicMsg:
		m.track = msg.cue.Track

	case messageMsg:
		pm := presentation.Message(msg)
		m.message = &pm

	case eventMsg:
		return m.handleEvent(msg.event)

	case fatalMsg:
		m.err = msg.err
		m.quitting = true
		return m, tea.Quit

	case spinner.TickMsg:
		if m.busy {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	}

	if m.matchID == "" || m.busy || m.winner != "" || m.aborted != "" {
		return m, nil
	}

	switch msg.String() {
	case "up", "k":
		m.moveCursor(0, -1)
	case "down", "j":
		m.moveCursor(0, 1)
	case "left", "h":
		m.moveCursor(-1, 0)
	case "right", "l":
		m.moveCursor(1, 0)
	case "enter", " ":
		m.message = nil
		return m, m.clickCmd(m.cursor)
	case "r":
		m.message = nil
		return m, m.restCmd()
	}
	return m, nil
}

func (m Model) handleEvent(e events.Event) (tea.Model, tea.Cmd) {
	if e.Board != nil {
		m.sync(e.Board)
	}

	switch e.Type {
	case events.EventTypeTurnStarted:
		if e.Board != nil {
			if cur, ok := e.Board.CurrentPlayer(); ok {
				m.cursor = shared.Pt(cur.X, cur.Y)
			}
		}
	case events.EventTypeExchangeStarted:
		m.busy = true
		return m, m.spinner.Tick
	case events.EventTypeExchangeFinished:
		m.busy = false
	case events.EventTypeMatchOver:
		m.busy = false
		m.winner = e.Winner
	case events.EventTypeMatchAborted:
		m.busy = false
		m.aborted = e.Reason
	}
	return m, nil
}

// sync copies a snapshot onto the grid
func (m *Model) sync(board *presentation.BoardView) {
	for _, column := range board.Cells {
		for _, cv := range column {
			if c := m.cell(shared.Pt(cv.X, cv.Y)); c != nil {
				c.highlight = cv.Highlight
				c.icon = cv.Icon
			}
		}
	}
}

func (m *Model) cell(p shared.Point) *cell {
	if !p.InBounds() {
		return nil
	}
	return &m.cells[p.X-1][p.Y-1]
}

func (m *Model) moveCursor(dx, dy int) {
	next := shared.Pt(m.cursor.X+dx, m.cursor.Y+dy)
	if next.InBounds() {
		m.cursor = next
	}
}

func (m Model) clickCmd(p shared.Point) tea.Cmd {
	matches, id := m.matches, m.matchID
	return func() tea.Msg {
		out, err := matches.Click(context.Background(), id, p)
		return outcomeMsg{outcome: out, err: err}
	}
}

func (m Model) restCmd() tea.Cmd {
	matches, id := m.matches, m.matchID
	return func() tea.Msg {
		out, err := matches.Rest(context.Background(), id)
		return outcomeMsg{outcome: out, err: err}
	}
}
