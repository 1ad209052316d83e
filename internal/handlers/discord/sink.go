package discord

import (
	"sync"

	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/domain/shared"
	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/presentation"
)

// maxLogLines is how many log lines a board post carries
const maxLogLines = 20

// ChannelSink collects what a match says between two board posts. The grid
// itself is drawn from the event snapshot, so cell updates are dropped.
type ChannelSink struct {
	mu       sync.Mutex
	lines    []string
	stats    map[presentation.Stat]string
	track    string
	messages []presentation.Message
}

// NewChannelSink creates an empty sink
func NewChannelSink() *ChannelSink {
	return &ChannelSink{stats: make(map[presentation.Stat]string)}
}

var _ presentation.Sink = (*ChannelSink)(nil)

func (s *ChannelSink) AppendLog(line string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = append(s.lines, line)
}

func (s *ChannelSink) SetStat(stat presentation.Stat, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats[stat] = value
}

func (s *ChannelSink) SetCellHighlight(shared.Point, presentation.Highlight) {}

func (s *ChannelSink) SetCellIcon(shared.Point, presentation.Icon) {}

// PlayMusic remembers the track for the next post's footer. Chat has no
// audio, so it never fails.
func (s *ChannelSink) PlayMusic(cue presentation.Cue) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.track = cue.Track
	return nil
}

func (s *ChannelSink) PlayClick() {}

func (s *ChannelSink) ShowMessage(title, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, presentation.Message{Title: title, Text: text})
}

// Post is what a sink has gathered since the last flush
type Post struct {
	Lines    []string
	Stats    map[presentation.Stat]string
	Track    string
	Messages []presentation.Message
}

// Flush returns the gathered lines and messages and starts over. Stats and
// the track carry over since they describe the current state.
func (s *ChannelSink) Flush() Post {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.lines
	if len(lines) > maxLogLines {
		lines = lines[len(lines)-maxLogLines:]
	}

	stats := make(map[presentation.Stat]string, len(s.stats))
	for k, v := range s.stats {
		stats[k] = v
	}

	post := Post{
		Lines:    append([]string(nil), lines...),
		Stats:    stats,
		Track:    s.track,
		Messages: s.messages,
	}
	s.lines = nil
	s.messages = nil
	return post
}
