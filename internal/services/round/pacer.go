package round

import (
	"context"
	"time"
)

// DefaultPace is the delay between sub-attacks
const DefaultPace = time.Second

// Pacer is the suspension point between sub-attacks
type Pacer interface {
	// Wait blocks for one pace or until ctx is done
	Wait(ctx context.Context) error
}

// TimerPacer waits a fixed delay
type TimerPacer struct {
	Delay time.Duration
}

// NewTimerPacer returns a pacer with the given delay (DefaultPace when zero)
func NewTimerPacer(delay time.Duration) *TimerPacer {
	if delay <= 0 {
		delay = DefaultPace
	}
	return &TimerPacer{Delay: delay}
}

// Wait implements Pacer
func (p *TimerPacer) Wait(ctx context.Context) error {
	timer := time.NewTimer(p.Delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// NoPacer never waits but still honours cancellation
type NoPacer struct{}

// Wait implements Pacer
func (NoPacer) Wait(ctx context.Context) error {
	return ctx.Err()
}
