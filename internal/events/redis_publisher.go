package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/logging"
)

const (
	// Key patterns
	eventsChannelPattern = "arena:match:%s:events"
	boardKeyPattern      = "arena:match:%s:board"

	defaultBoardTTL       = 24 * time.Hour
	defaultPublishTimeout = 2 * time.Second
)

// EventsChannel is the pub/sub channel a match's events go to
func EventsChannel(matchID string) string {
	return fmt.Sprintf(eventsChannelPattern, matchID)
}

// BoardKey holds the latest board of a match for late spectators
func BoardKey(matchID string) string {
	return fmt.Sprintf(boardKeyPattern, matchID)
}

// RedisPublisherConfig holds configuration for the Redis spectator feed
type RedisPublisherConfig struct {
	Client   redis.UniversalClient
	BoardTTL time.Duration
	Timeout  time.Duration
	Logger   *zap.Logger
}

// RedisPublisher mirrors match events onto Redis pub/sub
type RedisPublisher struct {
	client   redis.UniversalClient
	boardTTL time.Duration
	timeout  time.Duration
	logger   *zap.Logger
}

// NewRedisPublisher creates a new Redis-backed event listener
func NewRedisPublisher(cfg *RedisPublisherConfig) (*RedisPublisher, error) {
	if cfg == nil || cfg.Client == nil {
		return nil, fmt.Errorf("redis client is required")
	}

	p := &RedisPublisher{
		client:   cfg.Client,
		boardTTL: cfg.BoardTTL,
		timeout:  cfg.Timeout,
		logger:   cfg.Logger,
	}
	if p.boardTTL == 0 {
		p.boardTTL = defaultBoardTTL
	}
	if p.timeout == 0 {
		p.timeout = defaultPublishTimeout
	}
	if p.logger == nil {
		p.logger = logging.L().Named("events")
	}
	return p, nil
}

func (p *RedisPublisher) ID() string    { return "redis-publisher" }
func (p *RedisPublisher) Priority() int { return PriorityFeed }

// HandleEvent stores the board snapshot, if any, and publishes the event.
// A feed outage is logged and never stops the listeners after it.
func (p *RedisPublisher) HandleEvent(event *Event) error {
	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()

	if err := p.Publish(ctx, event); err != nil {
		p.logger.Warn("spectator feed publish failed", zap.Error(err))
	}
	return nil
}

// Publish writes one event to Redis
func (p *RedisPublisher) Publish(ctx context.Context, event *Event) error {
	if event == nil {
		return fmt.Errorf("event cannot be nil")
	}
	if event.MatchID == "" {
		return fmt.Errorf("event %s has no match ID", event.Type)
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	pipe := p.client.Pipeline()
	if event.Board != nil {
		board, err := json.Marshal(event.Board)
		if err != nil {
			return fmt.Errorf("failed to marshal board: %w", err)
		}
		pipe.Set(ctx, BoardKey(event.MatchID), string(board), p.boardTTL)
	}
	pipe.Publish(ctx, EventsChannel(event.MatchID), string(payload))

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to publish %s for match %s: %w", event.Type, event.MatchID, err)
	}
	return nil
}
