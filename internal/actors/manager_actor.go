package actors

import (
	"context"

	"github.com/asynkron/protoactor-go/actor"
	"go.uber.org/zap"

	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/errors"
)

// ManagerActor owns one MatchActor per running match and routes requests
// to it by match ID.
type ManagerActor struct {
	ctx     context.Context
	logger  *zap.Logger
	matches map[string]*actor.PID
}

func NewManagerActor(ctx context.Context, logger *zap.Logger) *ManagerActor {
	return &ManagerActor{
		ctx:     ctx,
		logger:  logger,
		matches: make(map[string]*actor.PID),
	}
}

func (m *ManagerActor) Receive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *startMatch:
		if _, ok := m.matches[msg.id]; ok {
			ctx.Respond(&commandResult{err: errors.AlreadyExistsf("match %s is already running", msg.id)})
			return
		}
		props := actor.PropsFromProducer(func() actor.Actor {
			return NewMatchActor(m.ctx, msg.id, msg.controller, msg.onFatal, m.logger)
		})
		pid := ctx.Spawn(props)
		ctx.Watch(pid)
		m.matches[msg.id] = pid
		ctx.Forward(pid)

	case *stopMatch:
		pid, ok := m.matches[msg.id]
		if !ok {
			ctx.Respond(&commandResult{err: errors.NotFoundf("match not found: %s", msg.id)})
			return
		}
		delete(m.matches, msg.id)
		ctx.Stop(pid)
		ctx.Respond(&commandResult{})

	case *matchFinished:
		// Requests already forwarded are answered before the poison lands;
		// later ones get NotFound.
		if pid, ok := m.matches[msg.id]; ok {
			delete(m.matches, msg.id)
			ctx.Poison(pid)
			m.logger.Debug("match finished", zap.String("match_id", msg.id))
		}

	case *actor.Terminated:
		for id, pid := range m.matches {
			if pid.Id == msg.Who.Id {
				delete(m.matches, id)
				m.logger.Debug("match actor terminated", zap.String("match_id", id))
			}
		}

	case matchMessage:
		pid, ok := m.matches[msg.matchID()]
		if !ok {
			ctx.Respond(&commandResult{err: errors.NotFoundf("match not found: %s", msg.matchID())})
			return
		}
		ctx.Forward(pid)
	}
}
