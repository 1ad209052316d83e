package tui_test

import (
	"context"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/domain/shared"
	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/errors"
	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/events"
	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/handlers/tui"
	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/presentation"
	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/repositories/matches"
	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/services/arena"
	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/services/match"
	mockmatch "github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/services/match/mock"
	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/testutils"
)

type recordingSender struct {
	mu   sync.Mutex
	msgs []tea.Msg
}

func (r *recordingSender) Send(msg tea.Msg) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, msg)
}

func (r *recordingSender) take() []tea.Msg {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.msgs
	r.msgs = nil
	return out
}

type harness struct {
	t      *testing.T
	svc    *mockmatch.MockService
	sink   *tui.Sink
	sender *recordingSender
	input  *match.CreateMatchInput
	model  tui.Model
}

func newHarness(t *testing.T) *harness {
	ctrl := gomock.NewController(t)
	h := &harness{
		t:      t,
		svc:    mockmatch.NewMockService(ctrl),
		sink:   tui.NewSink(),
		sender: &recordingSender{},
	}
	h.sink.Attach(h.sender)
	h.input = &match.CreateMatchInput{ChannelID: "terminal", Monsters: 2, Sink: h.sink}
	h.model = tui.NewModel(&tui.ModelConfig{Matches: h.svc, Input: h.input})
	return h
}

// update feeds msg and returns the command the model asked for
func (h *harness) update(msg tea.Msg) tea.Cmd {
	next, cmd := h.model.Update(msg)
	h.model = next.(tui.Model)
	return cmd
}

// drain feeds everything the sink has sent so far
func (h *harness) drain() {
	for _, msg := range h.sender.take() {
		h.update(msg)
	}
}

func (h *harness) emit(e *events.Event) {
	require.NoError(h.t, h.sink.Listener().HandleEvent(e))
	h.drain()
}

func (h *harness) start() {
	h.svc.EXPECT().
		CreateMatch(gomock.Any(), h.input).
		DoAndReturn(func(_ context.Context, input *match.CreateMatchInput) (*matches.Match, error) {
			input.Sink.AppendLog(arena.EnteredMessage)
			input.Sink.SetStat(presentation.StatName, "Conan")
			input.Sink.SetStat(presentation.StatHP, "300")
			require.NoError(h.t, input.Sink.PlayMusic(presentation.Cue{Kind: presentation.CueAmbient, Track: "charwood"}))
			return &matches.Match{ID: "match-1"}, nil
		})

	h.update(h.model.Init()())
	h.drain()

	board := testutils.CreateTestBoard()
	h.emit(&events.Event{Type: events.EventTypeTurnStarted, MatchID: "match-1", Board: &board})
}

func key(s string) tea.KeyMsg {
	switch s {
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestModel_StartAndRender(t *testing.T) {
	h := newHarness(t)
	assert.Contains(t, h.model.View(), "Entering the arena")

	h.start()

	assert.Equal(t, "match-1", h.model.MatchID())
	view := h.model.View()
	assert.Contains(t, view, arena.EnteredMessage)
	assert.Contains(t, view, "Name: Conan")
	assert.Contains(t, view, "HP: 300")
	assert.Contains(t, view, "♪ charwood")
	// Cursor on the current player, free cells around it
	assert.Contains(t, view, "[1]")
	assert.Contains(t, view, "(·)")
}

func TestModel_ClickAndRest(t *testing.T) {
	h := newHarness(t)
	h.start()

	h.update(key("right"))
	cmd := h.update(key("enter"))
	require.NotNil(t, cmd)

	h.svc.EXPECT().Click(gomock.Any(), "match-1", shared.Pt(2, 1)).Return(arena.OutcomeMoved, nil)
	h.update(cmd())

	h.svc.EXPECT().Rest(gomock.Any(), "match-1").Return(arena.OutcomeRestRejected, nil)
	cmd = h.update(key("r"))
	require.NotNil(t, cmd)
	h.update(cmd())

	h.update(key("down"))
	h.update(key("down"))
	cmd = h.update(key("enter"))
	h.svc.EXPECT().Click(gomock.Any(), "match-1", shared.Pt(2, 3)).Return(arena.OutcomeIgnored, nil)
	h.update(cmd())
	assert.Contains(t, h.model.View(), "Nothing to do there.")
}

func TestModel_CellUpdates(t *testing.T) {
	h := newHarness(t)
	h.start()

	h.sink.SetCellIcon(shared.Pt(7, 6), presentation.IconMonster)
	h.sink.SetCellHighlight(shared.Pt(7, 6), presentation.HighlightAttackable)
	h.sink.SetCellIcon(shared.Pt(30, 30), presentation.IconMonster)
	h.drain()

	assert.Contains(t, h.model.View(), "!M!")
}

func TestModel_ExchangeBlocksInput(t *testing.T) {
	h := newHarness(t)
	h.start()

	h.emit(&events.Event{Type: events.EventTypeExchangeStarted, MatchID: "match-1"})
	assert.Contains(t, h.model.View(), "Battle in progress")
	assert.Nil(t, h.update(key("enter")))
	assert.Nil(t, h.update(key("r")))

	h.sink.ShowMessage("Exchange interrupted", "context canceled")
	h.drain()
	assert.Contains(t, h.model.View(), "Exchange interrupted: context canceled")

	h.emit(&events.Event{Type: events.EventTypeExchangeFinished, MatchID: "match-1"})
	assert.NotContains(t, h.model.View(), "Battle in progress")
}

func TestModel_MatchOver(t *testing.T) {
	h := newHarness(t)
	h.start()

	h.emit(&events.Event{Type: events.EventTypeMatchOver, MatchID: "match-1", Winner: "Merlin"})

	assert.Contains(t, h.model.View(), "Merlin is the champion")
	assert.Nil(t, h.update(key("enter")))

	cmd := h.update(key("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.NoError(t, h.model.Err())
}

func TestModel_StartFailure(t *testing.T) {
	h := newHarness(t)
	h.svc.EXPECT().CreateMatch(gomock.Any(), h.input).Return(nil, errors.Validationf("exactly 4 players are required, got 0"))

	cmd := h.update(h.model.Init()())

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.True(t, errors.IsValidation(h.model.Err()))
}

func TestModel_FatalError(t *testing.T) {
	h := newHarness(t)
	h.start()

	h.sink.Fatal("match-1", errors.New(errors.CodeInterrupted, "exchange interrupted").
		WithExitCode(errors.ExitExchangeInterrupted))
	msgs := h.sender.take()
	require.Len(t, msgs, 1)
	cmd := h.update(msgs[0])

	require.NotNil(t, cmd)
	assert.Equal(t, errors.ExitExchangeInterrupted, errors.ExitCode(h.model.Err()))
}

func TestSink_DetachedDropsMessages(t *testing.T) {
	sink := tui.NewSink()
	sink.AppendLog("lost")
	require.NoError(t, sink.PlayMusic(presentation.Cue{Track: "end"}))

	sender := &recordingSender{}
	sink.Attach(sender)
	sink.AppendLog("kept")
	sink.PlayClick()

	assert.Len(t, sender.take(), 1)
}
