// Package presentation defines what the engine tells a surface and what a
// surface can show back.
package presentation

//go:generate mockgen -destination=mock/mock_sink.go -package=mockpresentation -source=sink.go

import (
	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/domain/shared"
)

// Stat is a field of the active player panel
type Stat int

const (
	StatName Stat = iota
	StatClass
	StatAC
	StatHP
	StatAttack
)

func (s Stat) String() string {
	switch s {
	case StatName:
		return "Name"
	case StatClass:
		return "Class"
	case StatAC:
		return "AC"
	case StatHP:
		return "HP"
	case StatAttack:
		return "Attack"
	default:
		return "Unknown"
	}
}

// Highlight is the interaction state of a cell
type Highlight int

const (
	HighlightNeutral Highlight = iota
	HighlightFree
	HighlightAttackable
)

func (h Highlight) String() string {
	switch h {
	case HighlightFree:
		return "free"
	case HighlightAttackable:
		return "attackable"
	default:
		return "neutral"
	}
}

// Icon is what a cell shows
type Icon int

const (
	IconPlayer1 Icon = iota
	IconPlayer2
	IconPlayer3
	IconPlayer4
	IconMonster
	IconEmpty
)

// PlayerIcon maps a roster index to its icon
func PlayerIcon(index int) Icon {
	if index < 0 || index > int(IconPlayer4) {
		return IconEmpty
	}
	return Icon(index)
}

func (i Icon) String() string {
	switch i {
	case IconPlayer1, IconPlayer2, IconPlayer3, IconPlayer4:
		return string(rune('1' + int(i)))
	case IconMonster:
		return "M"
	default:
		return ""
	}
}

// CueKind groups music tracks
type CueKind string

const (
	CueAmbient CueKind = "ambient"
	CueBattle  CueKind = "battle"
	CueVictory CueKind = "victory"
)

// Cue is a music track to switch to
type Cue struct {
	Kind  CueKind
	Track string
}

// Sink receives every visible effect of a match. Implementations are called
// from the match owner and from the exchange worker, so they must be safe for
// concurrent use.
type Sink interface {
	AppendLog(line string)
	SetStat(stat Stat, value string)
	SetCellHighlight(p shared.Point, h Highlight)
	SetCellIcon(p shared.Point, icon Icon)
	PlayMusic(cue Cue) error
	PlayClick()
	ShowMessage(title, text string)
}
