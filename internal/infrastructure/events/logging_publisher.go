// Package events provides the in-process publisher for report lifecycle events.
package events

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/romanresh/test-runner-nunit-reporter/internal/ports"
)

// LoggingPublisher writes every report event as a debug log entry and then
// dispatches it synchronously to the handlers subscribed to its type.
type LoggingPublisher struct {
	logger ports.Logger

	mu       sync.RWMutex
	handlers map[string]map[int]ports.EventHandler
	order    map[string][]int
	nextID   int
}

// NewLoggingPublisher creates a publisher backed by logger.
func NewLoggingPublisher(logger ports.Logger) *LoggingPublisher {
	return &LoggingPublisher{
		logger:   logger,
		handlers: make(map[string]map[int]ports.EventHandler),
		order:    make(map[string][]int),
	}
}

// Publish logs the event and runs its handlers in subscription order. Handler
// failures are logged and do not stop delivery.
func (p *LoggingPublisher) Publish(ctx context.Context, event ports.DomainEvent) error {
	if p == nil || event == nil {
		return nil
	}

	if p.logger != nil {
		p.logger.Debug(ctx, "report event", eventFields(event)...)
	}

	for _, handler := range p.snapshot(event.EventType()) {
		if err := handler(ctx, event); err != nil && p.logger != nil {
			p.logger.Warn(ctx, "event handler failed", "event_type", event.EventType(), "error", err)
		}
	}
	return nil
}

// Subscribe registers handler for eventType.
func (p *LoggingPublisher) Subscribe(eventType string, handler ports.EventHandler) (ports.Subscription, error) {
	if p == nil || handler == nil {
		return unsubscribeFunc(nil), nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.nextID++
	id := p.nextID
	if p.handlers[eventType] == nil {
		p.handlers[eventType] = make(map[int]ports.EventHandler)
	}
	p.handlers[eventType][id] = handler
	p.order[eventType] = append(p.order[eventType], id)

	return unsubscribeFunc(func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		delete(p.handlers[eventType], id)
		p.order[eventType] = slices.DeleteFunc(p.order[eventType], func(v int) bool { return v == id })
	}), nil
}

func (p *LoggingPublisher) snapshot(eventType string) []ports.EventHandler {
	p.mu.RLock()
	defer p.mu.RUnlock()

	ids := p.order[eventType]
	out := make([]ports.EventHandler, 0, len(ids))
	for _, id := range ids {
		out = append(out, p.handlers[eventType][id])
	}
	return out
}

func eventFields(event ports.DomainEvent) []interface{} {
	fields := []interface{}{"event_type", event.EventType()}
	switch payload := event.Payload().(type) {
	case nil:
	case map[string]interface{}:
		for _, key := range slices.Sorted(maps.Keys(payload)) {
			fields = append(fields, key, payload[key])
		}
	default:
		fields = append(fields, "payload", payload)
	}
	return fields
}

type unsubscribeFunc func()

func (f unsubscribeFunc) Unsubscribe() {
	if f != nil {
		f()
	}
}

// Event is a report lifecycle event with a key/value payload.
type Event struct {
	Type   string
	Fields map[string]interface{}
}

// EventType implements ports.DomainEvent.
func (e Event) EventType() string { return e.Type }

// Payload implements ports.DomainEvent.
func (e Event) Payload() interface{} { return e.Fields }

var _ ports.EventPublisher = (*LoggingPublisher)(nil)
