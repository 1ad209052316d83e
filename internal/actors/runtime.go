// Package actors runs every match on its own actor so that input from
// several surfaces is applied one event at a time.
package actors

import (
	"context"
	"time"

	"github.com/asynkron/protoactor-go/actor"
	"go.uber.org/zap"

	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/domain/shared"
	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/errors"
	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/logging"
	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/presentation"
	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/services/arena"
)

const defaultAskTimeout = 3 * time.Second

type Runtime struct {
	system  *actor.ActorSystem
	root    *actor.RootContext
	manager *actor.PID
	timeout time.Duration
	cancel  context.CancelFunc
}

// NewRuntime starts an actor system with a match manager. askTimeout bounds
// every request; zero uses a default.
func NewRuntime(askTimeout time.Duration, logger *zap.Logger) *Runtime {
	if askTimeout <= 0 {
		askTimeout = defaultAskTimeout
	}
	if logger == nil {
		logger = logging.L()
	}
	logger = logger.Named("actors")

	ctx, cancel := context.WithCancel(context.Background())
	system := actor.NewActorSystem()
	root := system.Root
	managerProps := actor.PropsFromProducer(func() actor.Actor {
		return NewManagerActor(ctx, logger)
	})
	manager := root.Spawn(managerProps)

	return &Runtime{
		system:  system,
		root:    root,
		manager: manager,
		timeout: askTimeout,
		cancel:  cancel,
	}
}

// Shutdown interrupts running exchanges and stops every actor
func (r *Runtime) Shutdown() {
	if r == nil {
		return
	}
	if r.cancel != nil {
		r.cancel()
	}
	if r.root != nil && r.manager != nil {
		r.root.Stop(r.manager)
	}
	if r.system != nil {
		r.system.Shutdown()
	}
}

// StartMatch hands controller to a new match actor and starts the match.
// onFatal may be nil.
func (r *Runtime) StartMatch(ctx context.Context, matchID string, controller *arena.Controller, onFatal FatalHandler) error {
	if controller == nil {
		return errors.InvalidArgument("controller is required")
	}
	_, err := r.command(ctx, &startMatch{id: matchID, controller: controller, onFatal: onFatal})
	return err
}

// StopMatch stops the match actor
func (r *Runtime) StopMatch(ctx context.Context, matchID string) error {
	_, err := r.command(ctx, &stopMatch{id: matchID})
	return err
}

// Click activates a cell for the current player
func (r *Runtime) Click(ctx context.Context, matchID string, p shared.Point) (arena.Outcome, error) {
	return r.command(ctx, &clickCell{id: matchID, point: p})
}

// Rest rests the current player
func (r *Runtime) Rest(ctx context.Context, matchID string) (arena.Outcome, error) {
	return r.command(ctx, &restTurn{id: matchID})
}

// Snapshot copies the match board
func (r *Runtime) Snapshot(ctx context.Context, matchID string) (presentation.BoardView, error) {
	res, err := r.request(r.manager, &snapshotRequest{id: matchID}, r.timeoutFromContext(ctx))
	if err != nil {
		return presentation.BoardView{}, err
	}
	switch v := res.(type) {
	case *snapshotResult:
		return v.board, nil
	case *commandResult:
		return presentation.BoardView{}, v.err
	default:
		return presentation.BoardView{}, errors.Internalf("unexpected snapshot response %T", res)
	}
}

func (r *Runtime) command(ctx context.Context, msg matchMessage) (arena.Outcome, error) {
	res, err := r.request(r.manager, msg, r.timeoutFromContext(ctx))
	if err != nil {
		return arena.OutcomeIgnored, err
	}
	cr, ok := res.(*commandResult)
	if !ok {
		return arena.OutcomeIgnored, errors.Internalf("unexpected response %T", res)
	}
	return cr.outcome, cr.err
}

func (r *Runtime) request(pid *actor.PID, msg any, timeout time.Duration) (any, error) {
	if r == nil || r.root == nil {
		return nil, errors.Internalf("actor runtime not initialised")
	}
	if pid == nil {
		return nil, errors.Internalf("actor pid is nil")
	}

	future := r.root.RequestFuture(pid, msg, timeout)
	res, err := future.Result()
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "actor request failed")
	}
	return res, nil
}

func (r *Runtime) timeoutFromContext(ctx context.Context) time.Duration {
	if r == nil || r.timeout <= 0 {
		return defaultAskTimeout
	}
	if ctx == nil {
		return r.timeout
	}
	deadline, ok := ctx.Deadline()
	if !ok {
		return r.timeout
	}
	remain := time.Until(deadline)
	if remain <= 0 {
		return time.Millisecond
	}
	if remain < r.timeout {
		return remain
	}
	return r.timeout
}
