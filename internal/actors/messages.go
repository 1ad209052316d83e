package actors

import (
	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/domain/shared"
	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/presentation"
	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/services/arena"
	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/services/round"
)

// matchMessage is routed by the manager to the actor owning the match
type matchMessage interface {
	matchID() string
}

// FatalHandler is told when a match aborts. It runs on the match actor.
type FatalHandler func(matchID string, err error)

type startMatch struct {
	id         string
	controller *arena.Controller
	onFatal    FatalHandler
}

type stopMatch struct {
	id string
}

type clickCell struct {
	id    string
	point shared.Point
}

type restTurn struct {
	id string
}

type snapshotRequest struct {
	id string
}

// matchFinished tells the manager a match actor is done
type matchFinished struct {
	id string
}

// exchangeFinished carries a worker result back onto the match actor
type exchangeFinished struct {
	result round.Result
}

func (m *startMatch) matchID() string      { return m.id }
func (m *stopMatch) matchID() string       { return m.id }
func (m *clickCell) matchID() string       { return m.id }
func (m *restTurn) matchID() string        { return m.id }
func (m *snapshotRequest) matchID() string { return m.id }

type commandResult struct {
	outcome arena.Outcome
	err     error
}

type snapshotResult struct {
	board presentation.BoardView
}
