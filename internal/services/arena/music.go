package arena

import (
	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/dice"
	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/presentation"
)

// Track names, as understood by surfaces that can play audio
var (
	AmbientTracks = []string{"aribeth", "beggarsnest", "charwood", "neverwinterwood", "undermountain"}
	BattleTracks  = []string{"battle1", "battle2", "battle3"}
)

const (
	VictoryTrack = "end"
	ClickTrack   = "click"
)

// Playlist picks tracks at random, never the same one twice in a row
type Playlist struct {
	roller      dice.Roller
	lastAmbient int
	lastBattle  int
}

// NewPlaylist returns a playlist that draws from roller
func NewPlaylist(roller dice.Roller) *Playlist {
	return &Playlist{roller: roller, lastAmbient: -1, lastBattle: -1}
}

func (p *Playlist) pick(tracks []string, last *int) (string, error) {
	for {
		roll, err := p.roller.Roll(1, len(tracks), 0)
		if err != nil {
			return "", err
		}
		i := roll.Total - 1
		if i != *last || len(tracks) == 1 {
			*last = i
			return tracks[i], nil
		}
	}
}

// Ambient returns the next background cue
func (p *Playlist) Ambient() (presentation.Cue, error) {
	track, err := p.pick(AmbientTracks, &p.lastAmbient)
	return presentation.Cue{Kind: presentation.CueAmbient, Track: track}, err
}

// Battle returns the next battle cue
func (p *Playlist) Battle() (presentation.Cue, error) {
	track, err := p.pick(BattleTracks, &p.lastBattle)
	return presentation.Cue{Kind: presentation.CueBattle, Track: track}, err
}

// Victory returns the end-of-match cue
func (p *Playlist) Victory() presentation.Cue {
	return presentation.Cue{Kind: presentation.CueVictory, Track: VictoryTrack}
}
