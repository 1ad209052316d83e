package events

import (
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/logging"
)

// EventListener processes events
type EventListener interface {
	HandleEvent(event *Event) error
	Priority() int
	ID() string
}

// Emitter is the publishing half of the bus
type Emitter interface {
	Emit(event *Event) error
}

// Bus manages event distribution
type Bus struct {
	listeners map[EventType][]EventListener
	mu        sync.RWMutex
	logger    *zap.Logger
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{
		listeners: make(map[EventType][]EventListener),
		logger:    logging.L().Named("events"),
	}
}

// Subscribe adds a listener for specific event types
func (b *Bus) Subscribe(eventType EventType, listener EventListener) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.listeners[eventType] = append(b.listeners[eventType], listener)

	// Sort by priority
	sort.SliceStable(b.listeners[eventType], func(i, j int) bool {
		return b.listeners[eventType][i].Priority() < b.listeners[eventType][j].Priority()
	})

	b.logger.Debug("subscribed listener",
		zap.String("listener", listener.ID()),
		zap.String("event", string(eventType)),
		zap.Int("priority", listener.Priority()))
}

// SubscribeAll adds a listener for every event type
func (b *Bus) SubscribeAll(listener EventListener) {
	for _, t := range AllEventTypes {
		b.Subscribe(t, listener)
	}
}

// Unsubscribe removes a listener
func (b *Bus) Unsubscribe(eventType EventType, listenerID string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	listeners := b.listeners[eventType]
	for i, l := range listeners {
		if l.ID() != listenerID {
			continue
		}
		b.listeners[eventType] = append(listeners[:i:i], listeners[i+1:]...)

		b.logger.Debug("unsubscribed listener",
			zap.String("listener", listenerID),
			zap.String("event", string(eventType)))
		return
	}
}

// Emit sends an event to all registered listeners
func (b *Bus) Emit(event *Event) error {
	b.mu.RLock()
	listeners := make([]EventListener, len(b.listeners[event.GetType()]))
	copy(listeners, b.listeners[event.GetType()])
	b.mu.RUnlock()

	// Process listeners in priority order
	for _, listener := range listeners {
		if event.IsCancelled() {
			b.logger.Debug("event cancelled, stopping propagation", zap.String("event", string(event.GetType())))
			break
		}

		if err := listener.HandleEvent(event); err != nil {
			return fmt.Errorf("listener %s failed: %w", listener.ID(), err)
		}
	}

	return nil
}

// Clear removes all listeners
func (b *Bus) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.listeners = make(map[EventType][]EventListener)
}

// ListenerFunc adapts a function to EventListener
type ListenerFunc struct {
	id       string
	priority int
	fn       func(*Event) error
}

// NewListener wraps fn as a listener
func NewListener(id string, priority int, fn func(*Event) error) *ListenerFunc {
	return &ListenerFunc{id: id, priority: priority, fn: fn}
}

func (l *ListenerFunc) ID() string                 { return l.id }
func (l *ListenerFunc) Priority() int              { return l.priority }
func (l *ListenerFunc) HandleEvent(e *Event) error { return l.fn(e) }
