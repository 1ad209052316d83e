package presentation

import (
	"errors"

	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/domain/shared"
)

// Multi fans every call out to several sinks
type Multi []Sink

var _ Sink = Multi(nil)

func (m Multi) AppendLog(line string) {
	for _, s := range m {
		s.AppendLog(line)
	}
}

func (m Multi) SetStat(stat Stat, value string) {
	for _, s := range m {
		s.SetStat(stat, value)
	}
}

func (m Multi) SetCellHighlight(p shared.Point, h Highlight) {
	for _, s := range m {
		s.SetCellHighlight(p, h)
	}
}

func (m Multi) SetCellIcon(p shared.Point, icon Icon) {
	for _, s := range m {
		s.SetCellIcon(p, icon)
	}
}

// PlayMusic plays on every sink and joins the failures
func (m Multi) PlayMusic(cue Cue) error {
	var errs []error
	for _, s := range m {
		if err := s.PlayMusic(cue); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m Multi) PlayClick() {
	for _, s := range m {
		s.PlayClick()
	}
}

func (m Multi) ShowMessage(title, text string) {
	for _, s := range m {
		s.ShowMessage(title, text)
	}
}
