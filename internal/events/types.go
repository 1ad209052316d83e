package events

import (
	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/presentation"
)

// EventType represents the type of match event
type EventType string

// Event type constants
const (
	EventTypeMatchStarted     EventType = "match_started"
	EventTypeTurnStarted      EventType = "turn_started"
	EventTypePlayerMoved      EventType = "player_moved"
	EventTypePlayerRested     EventType = "player_rested"
	EventTypeExchangeStarted  EventType = "exchange_started"
	EventTypeExchangeFinished EventType = "exchange_finished"
	EventTypePlayerDefeated   EventType = "player_defeated"
	EventTypeMatchOver        EventType = "match_over"
	EventTypeMatchAborted     EventType = "match_aborted"
)

// AllEventTypes lists every event the engine emits
var AllEventTypes = []EventType{
	EventTypeMatchStarted,
	EventTypeTurnStarted,
	EventTypePlayerMoved,
	EventTypePlayerRested,
	EventTypeExchangeStarted,
	EventTypeExchangeFinished,
	EventTypePlayerDefeated,
	EventTypeMatchOver,
	EventTypeMatchAborted,
}

// Priority levels for listener order. Lower runs first.
const (
	PriorityState   = 100 // match registry bookkeeping
	PriorityFeed    = 200 // spectator feeds
	PrioritySurface = 300 // chat and screen updates
)

// Event is something that happened in a match
type Event struct {
	Type    EventType `json:"type"`
	MatchID string    `json:"match_id"`
	Actor   string    `json:"actor,omitempty"`
	Target  string    `json:"target,omitempty"`
	X       int       `json:"x,omitempty"`
	Y       int       `json:"y,omitempty"`
	Winner  string    `json:"winner,omitempty"`
	Reason  string    `json:"reason,omitempty"`

	// Board is the state of the match right after the event
	Board *presentation.BoardView `json:"board,omitempty"`

	cancelled bool
}

func (e *Event) GetType() EventType { return e.Type }
func (e *Event) IsCancelled() bool  { return e.cancelled }
func (e *Event) Cancel()            { e.cancelled = true }
