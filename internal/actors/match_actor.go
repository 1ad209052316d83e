package actors

import (
	"context"

	"github.com/asynkron/protoactor-go/actor"
	"go.uber.org/zap"

	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/services/arena"
	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/services/round"
)

// MatchActor is the single owner of a match controller. Input, snapshots and
// exchange results are handled one message at a time.
type MatchActor struct {
	// ctx bounds exchange workers; it ends when the runtime shuts down
	ctx        context.Context
	id         string
	controller *arena.Controller
	onFatal    FatalHandler
	logger     *zap.Logger
	retired    bool
}

func NewMatchActor(ctx context.Context, id string, controller *arena.Controller, onFatal FatalHandler, logger *zap.Logger) *MatchActor {
	return &MatchActor{
		ctx:        ctx,
		id:         id,
		controller: controller,
		onFatal:    onFatal,
		logger:     logger.With(zap.String("match_id", id)),
	}
}

func (a *MatchActor) Receive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *startMatch:
		err := a.controller.Start()
		a.fatal(err)
		a.retireIfFinished(ctx)
		ctx.Respond(&commandResult{err: err})

	case *clickCell:
		out, err := a.controller.HandleCell(a.ctx, msg.point)
		a.afterInput(ctx, out, err)
		a.retireIfFinished(ctx)
		ctx.Respond(&commandResult{outcome: out, err: err})

	case *restTurn:
		out, err := a.controller.Rest()
		a.afterInput(ctx, out, err)
		a.retireIfFinished(ctx)
		ctx.Respond(&commandResult{outcome: out, err: err})

	case *exchangeFinished:
		out, err := a.controller.CompleteExchange(msg.result)
		a.fatal(err)
		a.logger.Debug("exchange applied", zap.Stringer("outcome", out))
		a.retireIfFinished(ctx)

	case *snapshotRequest:
		ctx.Respond(&snapshotResult{board: a.controller.Snapshot()})

	case *actor.Stopping:
		a.logger.Debug("match actor stopping")
	}
}

// retireIfFinished asks the manager to retire the match once it is over or
// aborted.
func (a *MatchActor) retireIfFinished(ctx actor.Context) {
	if a.retired {
		return
	}
	switch a.controller.State() {
	case arena.StateGameOver, arena.StateAborted:
	default:
		return
	}
	a.retired = true
	a.logger.Debug("match finished, retiring actor", zap.Stringer("state", a.controller.State()))
	ctx.Send(ctx.Parent(), &matchFinished{id: a.id})
}

func (a *MatchActor) afterInput(ctx actor.Context, out arena.Outcome, err error) {
	a.fatal(err)
	if out == arena.OutcomeExchangeStarted {
		a.forward(ctx, a.controller.Pending())
	}
}

// forward waits for the worker result off the actor and sends it back in
func (a *MatchActor) forward(ctx actor.Context, pending <-chan round.Result) {
	if pending == nil {
		return
	}
	self := ctx.Self()
	root := ctx.ActorSystem().Root

	go func() {
		res, ok := <-pending
		if !ok {
			return
		}
		root.Send(self, &exchangeFinished{result: res})
	}()
}

func (a *MatchActor) fatal(err error) {
	if err == nil || a.controller.State() != arena.StateAborted {
		return
	}
	a.logger.Error("match aborted", zap.Error(err))
	if a.onFatal != nil {
		a.onFatal(a.id, err)
	}
}
