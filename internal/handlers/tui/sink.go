// Package tui plays a match in the terminal
package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/domain/shared"
	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/events"
	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/presentation"
)

// Sender delivers messages to a running program. *tea.Program is one.
type Sender interface {
	Send(msg tea.Msg)
}

type logMsg struct{ line string }

type statMsg struct {
	stat  presentation.Stat
	value string
}

type highlightMsg struct {
	p shared.Point
	h presentation.Highlight
}

type iconMsg struct {
	p    shared.Point
	icon presentation.Icon
}

type musicMsg struct{ cue presentation.Cue }

type messageMsg presentation.Message

type eventMsg struct{ event events.Event }

type fatalMsg struct{ err error }

// Sink turns engine output into program messages. Calls before Attach are
// dropped.
type Sink struct {
	mu     sync.RWMutex
	sender Sender
}

// NewSink creates a detached sink
func NewSink() *Sink {
	return &Sink{}
}

var _ presentation.Sink = (*Sink)(nil)

// Attach sets the program that receives the messages
func (s *Sink) Attach(sender Sender) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sender = sender
}

func (s *Sink) send(msg tea.Msg) {
	s.mu.RLock()
	sender := s.sender
	s.mu.RUnlock()
	if sender != nil {
		sender.Send(msg)
	}
}

func (s *Sink) AppendLog(line string) { s.send(logMsg{line: line}) }

func (s *Sink) SetStat(stat presentation.Stat, value string) {
	s.send(statMsg{stat: stat, value: value})
}

func (s *Sink) SetCellHighlight(p shared.Point, h presentation.Highlight) {
	s.send(highlightMsg{p: p, h: h})
}

func (s *Sink) SetCellIcon(p shared.Point, icon presentation.Icon) {
	s.send(iconMsg{p: p, icon: icon})
}

// PlayMusic shows the track name. The terminal has no audio device to fail.
func (s *Sink) PlayMusic(cue presentation.Cue) error {
	s.send(musicMsg{cue: cue})
	return nil
}

func (s *Sink) PlayClick() {}

func (s *Sink) ShowMessage(title, text string) {
	s.send(messageMsg{Title: title, Text: text})
}

// Fatal forwards a match abort. It fits actors.FatalHandler.
func (s *Sink) Fatal(_ string, err error) {
	s.send(fatalMsg{err: err})
}

// Listener forwards match events so the model can follow exchanges and the
// end of the match.
func (s *Sink) Listener() events.EventListener {
	return events.NewListener("tui", events.PrioritySurface, func(e *events.Event) error {
		s.send(eventMsg{event: *e})
		return nil
	})
}
