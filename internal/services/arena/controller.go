// Package arena drives a match from player input: whose turn it is, what a
// click on a cell means, and when an exchange starts and ends.
package arena

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/dice"
	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/domain/character"
	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/domain/game"
	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/domain/shared"
	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/errors"
	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/events"
	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/logging"
	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/presentation"
	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/services/round"
)

const (
	EnteredMessage = "[Game] You have entered a PvP area!"
	RestRejected   = "You don't need to rest right now."
)

// State is where a match is in its life
type State int

const (
	StateNew State = iota
	StateWaiting
	StateExchangeRunning
	StateGameOver
	StateAborted
)

func (s State) String() string {
	switch s {
	case StateNew:
		return "new"
	case StateWaiting:
		return "waiting"
	case StateExchangeRunning:
		return "exchange_running"
	case StateGameOver:
		return "game_over"
	case StateAborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// Outcome says what an input did
type Outcome int

const (
	OutcomeIgnored Outcome = iota
	OutcomeMoved
	OutcomeRested
	OutcomeRestRejected
	OutcomeExchangeStarted
	OutcomeTurnEnded
	OutcomeGameOver
	OutcomeAborted
)

func (o Outcome) String() string {
	switch o {
	case OutcomeIgnored:
		return "ignored"
	case OutcomeMoved:
		return "moved"
	case OutcomeRested:
		return "rested"
	case OutcomeRestRejected:
		return "rest_rejected"
	case OutcomeExchangeStarted:
		return "exchange_started"
	case OutcomeTurnEnded:
		return "turn_ended"
	case OutcomeGameOver:
		return "game_over"
	case OutcomeAborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// Config holds what a controller needs
type Config struct {
	MatchID string
	Game    *game.Game
	Sink    presentation.Sink
	// Events is optional
	Events events.Emitter
	// Pacer spaces sub-attacks; nil uses round.DefaultPace
	Pacer round.Pacer
	// MusicRoller picks tracks; nil uses a random roller
	MusicRoller    dice.Roller
	RevealMonsters bool
	Logger         *zap.Logger
}

// Controller is the turn state machine of one match. It is not safe for
// concurrent use: a single owner feeds it input and exchange results.
type Controller struct {
	matchID  string
	game     *game.Game
	board    *Board
	sink     presentation.Sink
	events   events.Emitter
	pacer    round.Pacer
	playlist *Playlist
	reveal   bool
	logger   *zap.Logger

	state      State
	turnActive bool
	clicked    shared.Point
	pending    <-chan round.Result
	winner     string
}

// NewController validates cfg. The match begins with Start.
func NewController(cfg *Config) (*Controller, error) {
	if cfg == nil || cfg.Game == nil || cfg.Sink == nil {
		return nil, errors.InvalidArgument("controller needs a game and a sink")
	}

	c := &Controller{
		matchID: cfg.MatchID,
		game:    cfg.Game,
		board:   NewBoard(cfg.Sink),
		sink:    cfg.Sink,
		events:  cfg.Events,
		pacer:   cfg.Pacer,
		reveal:  cfg.RevealMonsters,
		logger:  cfg.Logger,
	}
	if c.pacer == nil {
		c.pacer = round.NewTimerPacer(round.DefaultPace)
	}
	roller := cfg.MusicRoller
	if roller == nil {
		roller = dice.NewRandomRoller()
	}
	c.playlist = NewPlaylist(roller)
	if c.logger == nil {
		c.logger = logging.L().Named("arena")
	}
	c.logger = c.logger.With(zap.String("match_id", c.matchID))
	return c, nil
}

// State returns the current state
func (c *Controller) State() State { return c.state }

// Winner returns the last player standing once the match is over
func (c *Controller) Winner() string { return c.winner }

// Pending yields the result of the running exchange. It is nil when no
// exchange is running.
func (c *Controller) Pending() <-chan round.Result { return c.pending }

// Start sets the match up and begins the first turn
func (c *Controller) Start() error {
	if c.state != StateNew {
		return errors.FailedPreconditionf("match already %s", c.state)
	}

	if err := c.game.Setup(); err != nil {
		return errors.WrapWithCode(err, errors.CodeInternal, "failed to set up match")
	}

	for _, p := range c.game.Players() {
		pos := p.Coordinates()
		c.board.SetIcon(pos, presentation.PlayerIcon(p.Index()))
		c.board.SetHasPlayer(pos, true)
	}
	for _, m := range c.game.Monsters() {
		pos := m.Coordinates()
		c.board.SetHasMonster(pos, true)
		if c.reveal {
			c.board.SetIcon(pos, presentation.IconMonster)
		}
	}

	c.sink.AppendLog(EnteredMessage)
	c.state = StateWaiting
	c.emit(&events.Event{Type: events.EventTypeMatchStarted})

	cue, err := c.playlist.Ambient()
	if err == nil {
		err = c.sink.PlayMusic(cue)
	}
	if err != nil {
		_, err = c.abort(errors.WrapWithCode(err, errors.CodeUnavailable, "setup music failed"), errors.ExitSetupMusic)
		return err
	}

	_, err = c.newRound()
	return err
}

// HandleCell acts on a click on p for the current player. Clicks that mean
// nothing in the current state are ignored.
func (c *Controller) HandleCell(ctx context.Context, p shared.Point) (Outcome, error) {
	if c.state != StateWaiting || !p.InBounds() {
		return OutcomeIgnored, nil
	}
	c.sink.PlayClick()

	cur := c.game.CurrentPlayer()
	cell := c.board.Cell(p)

	switch {
	case cell.Highlight == presentation.HighlightFree && !cell.HasMonster:
		c.turnActive = true
		c.clicked = p
		c.logger.Debug("player moved", zap.String("player", cur.Name()), zap.Stringer("to", p))
		c.emit(&events.Event{Type: events.EventTypePlayerMoved, Actor: cur.Name(), X: p.X, Y: p.Y})

		out, err := c.finishTurn()
		if out == OutcomeTurnEnded {
			out = OutcomeMoved
		}
		return out, err

	case cell.Highlight == presentation.HighlightFree && cell.HasMonster:
		monster := c.game.MonsterAt(p)
		if monster == nil {
			c.logger.Warn("monster flag without a monster", zap.Stringer("cell", p))
			return OutcomeIgnored, nil
		}
		c.turnActive = true
		c.clicked = p
		return c.startExchange(ctx, monster, cur, errors.ExitMonsterBattleMusic)

	case cell.Highlight == presentation.HighlightAttackable && cell.HasPlayer:
		occupant := c.game.PlayerAt(p)
		if occupant == nil {
			c.logger.Warn("player flag without a player", zap.Stringer("cell", p))
			return OutcomeIgnored, nil
		}
		c.turnActive = true
		c.clicked = p
		return c.startExchange(ctx, cur, occupant, errors.ExitPlayerBattleMusic)

	default:
		return OutcomeIgnored, nil
	}
}

// Rest heals the current player and ends their turn, or logs that they are
// already at full health and leaves the turn open.
func (c *Controller) Rest() (Outcome, error) {
	if c.state != StateWaiting {
		return OutcomeIgnored, nil
	}
	c.sink.PlayClick()

	cur := c.game.CurrentPlayer()
	if !c.game.RestCurrentPlayer() {
		c.sink.AppendLog(RestRejected)
		return OutcomeRestRejected, nil
	}

	c.emit(&events.Event{Type: events.EventTypePlayerRested, Actor: cur.Name()})
	out, err := c.finishTurn()
	if out == OutcomeTurnEnded {
		out = OutcomeRested
	}
	return out, err
}

// CompleteExchange applies the result of the running exchange and moves on
// to the next turn.
func (c *Controller) CompleteExchange(res round.Result) (Outcome, error) {
	if c.state != StateExchangeRunning {
		return OutcomeIgnored, errors.FailedPreconditionf("no exchange running (match %s)", c.state)
	}
	c.pending = nil

	if res.State != round.StateCompleted || res.Err != nil {
		err := res.Err
		if err == nil {
			err = errors.Internalf("exchange ended %s", res.State)
		}
		return c.abort(errors.Wrap(err, "exchange failed"), errors.ExitGeneric)
	}

	c.state = StateWaiting
	c.emit(&events.Event{
		Type:   events.EventTypeExchangeFinished,
		Actor:  res.Winner.Name(),
		Target: res.Loser.Name(),
	})
	if res.Loser.IsPlayer() {
		c.emit(&events.Event{Type: events.EventTypePlayerDefeated, Actor: res.Winner.Name(), Target: res.Loser.Name()})
	}

	cue, err := c.playlist.Ambient()
	if err == nil {
		err = c.sink.PlayMusic(cue)
	}
	if err != nil {
		return c.abort(errors.WrapWithCode(err, errors.CodeUnavailable, "ambient music failed"), errors.ExitAmbientAfterExchange)
	}

	return c.finishTurn()
}

func (c *Controller) startExchange(ctx context.Context, attacker, defender character.Combatant, exitCode int) (Outcome, error) {
	cue, err := c.playlist.Battle()
	if err == nil {
		err = c.sink.PlayMusic(cue)
	}
	if err != nil {
		return c.abort(errors.WrapWithCode(err, errors.CodeUnavailable, "battle music failed"), exitCode)
	}

	ex, err := round.New(&round.Config{
		Game:   c.game,
		Sink:   c.sink,
		Pacer:  c.pacer,
		Stats:  c.publishStats,
		Logger: c.logger.Named("round"),
	}, attacker, defender)
	if err != nil {
		return c.abort(errors.Wrap(err, "failed to prepare exchange"), errors.ExitGeneric)
	}

	pending, err := ex.Start(ctx)
	if err != nil {
		return c.abort(errors.Wrap(err, "failed to start exchange"), errors.ExitGeneric)
	}

	c.pending = pending
	c.state = StateExchangeRunning
	c.logger.Info("exchange started",
		zap.String("attacker", attacker.Name()),
		zap.String("defender", defender.Name()))
	c.emit(&events.Event{
		Type:   events.EventTypeExchangeStarted,
		Actor:  attacker.Name(),
		Target: defender.Name(),
		X:      c.clicked.X,
		Y:      c.clicked.Y,
	})
	return OutcomeExchangeStarted, nil
}

// finishTurn settles the board after a move, a rest or an exchange, then
// starts the next turn.
func (c *Controller) finishTurn() (Outcome, error) {
	cur := c.game.CurrentPlayer()
	c.board.SetSurround(cur.Coordinates(), true)

	if c.turnActive {
		c.turnActive = false

		old := cur.Coordinates()
		c.board.SetIcon(old, presentation.IconEmpty)
		c.board.SetHasPlayer(old, false)

		if !c.game.IsDead(cur) {
			if occupant := c.game.PlayerAt(c.clicked); occupant != nil && occupant != cur {
				if err := c.game.MovePlayer(occupant.Index(), shared.OffMap); err != nil {
					return c.abort(errors.Wrap(err, "failed to remove defeated player"), errors.ExitGeneric)
				}
			}
			if monster := c.game.MonsterAt(c.clicked); monster != nil {
				c.game.RemoveMonster(monster)
			}

			c.board.SetIcon(c.clicked, presentation.PlayerIcon(cur.Index()))
			c.board.SetHasMonster(c.clicked, false)
			c.board.SetHasPlayer(c.clicked, true)
			if err := c.game.MoveCurrentPlayer(c.clicked); err != nil {
				return c.abort(errors.Wrap(err, "failed to move player"), errors.ExitGeneric)
			}
		} else if err := c.game.MoveCurrentPlayer(shared.OffMap); err != nil {
			return c.abort(errors.Wrap(err, "failed to remove slain player"), errors.ExitGeneric)
		}
	}

	return c.newRound()
}

// newRound hands the turn to the next living player, or ends the match when
// only one is left.
func (c *Controller) newRound() (Outcome, error) {
	if err := c.game.NextPlayer(); err != nil {
		return c.abort(errors.Wrap(err, "failed to advance turn"), errors.ExitGeneric)
	}
	cur := c.game.CurrentPlayer()

	if c.game.AlivePlayers() == 1 {
		c.publishStats(cur.Index())
		c.sink.AppendLog("[Game] " + cur.Name() + " won the Epic Arena!")
		c.state = StateGameOver
		c.winner = cur.Name()
		c.logger.Info("match over", zap.String("winner", c.winner))

		if err := c.sink.PlayMusic(c.playlist.Victory()); err != nil {
			return c.abort(errors.WrapWithCode(err, errors.CodeUnavailable, "victory music failed"), errors.ExitVictoryMusic)
		}
		c.emit(&events.Event{Type: events.EventTypeMatchOver, Winner: c.winner})
		return OutcomeGameOver, nil
	}

	c.board.SetSurround(cur.Coordinates(), false)
	c.publishStats(cur.Index())
	c.emit(&events.Event{Type: events.EventTypeTurnStarted, Actor: cur.Name()})
	return OutcomeTurnEnded, nil
}

// publishStats shows the indexed player in the stat panel. Monsters have no
// panel.
func (c *Controller) publishStats(index int) {
	p := c.game.Player(index)
	if p == nil {
		return
	}
	st := c.game.State(p)
	c.sink.SetStat(presentation.StatName, st.Name)
	c.sink.SetStat(presentation.StatClass, st.Class.String())
	c.sink.SetStat(presentation.StatAC, fmt.Sprint(st.AC))
	c.sink.SetStat(presentation.StatHP, fmt.Sprint(st.Health))
	c.sink.SetStat(presentation.StatAttack, fmt.Sprint(st.AB))
}

// abort stops the match for good. err keeps its exit code when it already
// has one.
func (c *Controller) abort(wrapped *errors.Error, exitCode int) (Outcome, error) {
	if !errors.IsFatal(wrapped) {
		wrapped = wrapped.WithExitCode(exitCode)
	}

	c.state = StateAborted
	c.pending = nil
	c.logger.Error("match aborted", zap.Error(wrapped), zap.Int("exit_code", errors.ExitCode(wrapped)))
	c.emit(&events.Event{Type: events.EventTypeMatchAborted, Reason: wrapped.Error()})
	return OutcomeAborted, wrapped
}

func (c *Controller) emit(e *events.Event) {
	if c.events == nil {
		return
	}
	e.MatchID = c.matchID
	board := c.Snapshot()
	e.Board = &board
	if err := c.events.Emit(e); err != nil {
		c.logger.Warn("event listener failed", zap.String("event", string(e.Type)), zap.Error(err))
	}
}

// Snapshot copies the match for surfaces that draw the whole board
func (c *Controller) Snapshot() presentation.BoardView {
	snap := c.game.Snapshot()
	view := presentation.BoardView{
		MatchID: c.matchID,
		Width:   shared.GridWidth,
		Height:  shared.GridHeight,
		Cells:   c.board.View(c.reveal),
		Current: snap.Current,
		State:   c.state.String(),
		Winner:  c.winner,
	}
	for _, p := range snap.Players {
		view.Players = append(view.Players, combatantView(p))
	}
	for _, m := range snap.Monsters {
		if c.reveal || m.Dead {
			view.Monsters = append(view.Monsters, combatantView(m))
		}
	}
	return view
}

func combatantView(s game.CombatantState) presentation.CombatantView {
	return presentation.CombatantView{
		Name:        s.Name,
		Class:       s.Class.String(),
		Index:       s.Index,
		Player:      s.Player,
		Health:      s.Health,
		HealthLimit: s.HealthLimit,
		AC:          s.AC,
		AB:          s.AB,
		X:           s.Position.X,
		Y:           s.Position.Y,
		Dead:        s.Dead,
	}
}
