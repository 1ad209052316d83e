// Package round resolves one exchange between two combatants on a worker
// goroutine and reports the outcome on a channel.
package round

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/domain/character"
	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/errors"
	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/logging"
	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/presentation"
)

// State is where an exchange is in its life
type State int

const (
	StateIdle State = iota
	StateRunning
	StateCompleted
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateCompleted:
		return "completed"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Attacker is the slice of the game an exchange is allowed to touch
type Attacker interface {
	AttackRound(offender, defender character.Combatant) (int, error)
	IsDead(c character.Combatant) bool
}

// Result is delivered exactly once per exchange
type Result struct {
	State  State
	Winner character.Combatant
	Loser  character.Combatant
	Passes int
	Err    error
}

// Config holds what an exchange needs
type Config struct {
	Game  Attacker
	Sink  presentation.Sink
	Pacer Pacer
	// Stats publishes the acting combatant's stats by roster index
	Stats  func(index int)
	Logger *zap.Logger
}

// Exchange is one fight to the death between two combatants
type Exchange struct {
	game     Attacker
	sink     presentation.Sink
	pacer    Pacer
	stats    func(int)
	logger   *zap.Logger
	attacker character.Combatant
	defender character.Combatant

	mu    sync.Mutex
	state State
}

// New prepares an exchange. The attacker swings first.
func New(cfg *Config, attacker, defender character.Combatant) (*Exchange, error) {
	if cfg == nil || cfg.Game == nil || cfg.Sink == nil {
		return nil, errors.InvalidArgument("exchange needs a game and a sink")
	}
	if attacker == nil || defender == nil {
		return nil, errors.InvalidArgument("exchange needs two combatants")
	}

	e := &Exchange{
		game:     cfg.Game,
		sink:     cfg.Sink,
		pacer:    cfg.Pacer,
		stats:    cfg.Stats,
		logger:   cfg.Logger,
		attacker: attacker,
		defender: defender,
	}
	if e.pacer == nil {
		e.pacer = NewTimerPacer(DefaultPace)
	}
	if e.stats == nil {
		e.stats = func(int) {}
	}
	if e.logger == nil {
		e.logger = logging.L().Named("round")
	}
	return e, nil
}

// State returns the current state
func (e *Exchange) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

func (e *Exchange) setState(s State) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state = s
}

// Start runs the exchange on its own goroutine. The returned channel yields
// one Result and is then closed.
func (e *Exchange) Start(ctx context.Context) (<-chan Result, error) {
	e.mu.Lock()
	if e.state != StateIdle {
		e.mu.Unlock()
		return nil, errors.FailedPreconditionf("exchange already %s", e.state)
	}
	e.state = StateRunning
	e.mu.Unlock()

	results := make(chan Result, 1)
	go func() {
		defer close(results)
		res := e.run(ctx)
		e.setState(res.State)
		results <- res
	}()
	return results, nil
}

func (e *Exchange) run(ctx context.Context) Result {
	e.logger.Debug("exchange started",
		zap.String("attacker", e.attacker.Name()),
		zap.String("defender", e.defender.Name()))

	// One hint only; the attacker's advantage wins a mutual pairing
	if e.attacker.Class().Prefers(e.defender.Class()) {
		e.sink.AppendLog(e.attacker.Name() + ", holds a Class advantage against " + e.defender.Name())
	} else if e.defender.Class().Prefers(e.attacker.Class()) {
		e.sink.AppendLog(e.defender.Name() + ", holds a Class advantage against " + e.attacker.Name())
	}

	off, def := e.attacker, e.defender
	passes := 0
	for {
		passes++
		e.stats(off.Index())

		for i := 0; i < off.AttackRounds(); i++ {
			damage, err := e.game.AttackRound(off, def)
			if err != nil {
				return e.fail(errors.WrapWithCode(err, errors.CodeInternal, "attack round failed"), passes)
			}

			if damage <= 0 {
				e.sink.AppendLog(off.Name() + " tried to hit " + def.Name())
			} else {
				e.sink.AppendLog(fmt.Sprintf("%s attacked %s - Damage dealt: %d", off.Name(), def.Name(), damage))
			}

			if err := e.pacer.Wait(ctx); err != nil {
				e.sink.ShowMessage("Exchange interrupted", err.Error())
				interrupted := errors.WrapWithCode(err, errors.CodeInterrupted, "exchange interrupted").
					WithExitCode(errors.ExitExchangeInterrupted)
				return e.fail(interrupted, passes)
			}

			if e.game.IsDead(def) {
				break
			}
		}

		if e.game.IsDead(def) {
			break
		}
		off, def = def, off
	}

	e.sink.AppendLog(off.Name() + " killed " + def.Name() + "!")
	e.logger.Debug("exchange completed",
		zap.String("winner", off.Name()),
		zap.String("loser", def.Name()),
		zap.Int("passes", passes))

	return Result{
		State:  StateCompleted,
		Winner: off,
		Loser:  def,
		Passes: passes,
	}
}

func (e *Exchange) fail(err error, passes int) Result {
	e.logger.Error("exchange failed", zap.Error(err))
	return Result{
		State:  StateFailed,
		Passes: passes,
		Err:    err,
	}
}
