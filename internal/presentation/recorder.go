package presentation

import (
	"sync"

	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/domain/shared"
)

// Message is a ShowMessage call
type Message struct {
	Title string
	Text  string
}

// Recorder is a Sink that remembers what it was told. It backs headless
// matches and tests.
type Recorder struct {
	mu         sync.Mutex
	log        []string
	stats      map[Stat]string
	highlights map[shared.Point]Highlight
	icons      map[shared.Point]Icon
	music      []Cue
	clicks     int
	messages   []Message

	// MusicErr, when set, is returned by PlayMusic
	MusicErr error
}

// NewRecorder returns an empty recorder
func NewRecorder() *Recorder {
	return &Recorder{
		stats:      make(map[Stat]string),
		highlights: make(map[shared.Point]Highlight),
		icons:      make(map[shared.Point]Icon),
	}
}

var _ Sink = (*Recorder)(nil)

func (r *Recorder) AppendLog(line string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.log = append(r.log, line)
}

func (r *Recorder) SetStat(stat Stat, value string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stats[stat] = value
}

func (r *Recorder) SetCellHighlight(p shared.Point, h Highlight) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.highlights[p] = h
}

func (r *Recorder) SetCellIcon(p shared.Point, icon Icon) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.icons[p] = icon
}

func (r *Recorder) PlayMusic(cue Cue) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.MusicErr != nil {
		return r.MusicErr
	}
	r.music = append(r.music, cue)
	return nil
}

func (r *Recorder) PlayClick() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clicks++
}

func (r *Recorder) ShowMessage(title, text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, Message{Title: title, Text: text})
}

// Log returns a copy of the log lines
func (r *Recorder) Log() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.log...)
}

// Stat returns the last value set for stat
func (r *Recorder) Stat(stat Stat) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stats[stat]
}

// Highlight returns the last highlight set on p (neutral if never set)
func (r *Recorder) Highlight(p shared.Point) Highlight {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.highlights[p]
}

// Icon returns the last icon set on p
func (r *Recorder) Icon(p shared.Point) (Icon, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	icon, ok := r.icons[p]
	return icon, ok
}

// Music returns the cues played so far
func (r *Recorder) Music() []Cue {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Cue(nil), r.music...)
}

// Clicks returns the number of click cues
func (r *Recorder) Clicks() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.clicks
}

// Messages returns the blocking messages shown
func (r *Recorder) Messages() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Message(nil), r.messages...)
}
