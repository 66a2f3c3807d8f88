package ports

import "context"

const (
	// EventReportStarted is emitted before result files are loaded.
	EventReportStarted = "report.started"
	// EventReportGenerated is emitted once the document has been assembled.
	EventReportGenerated = "report.generated"
	// EventReportWritten is emitted after the document has been persisted.
	EventReportWritten = "report.written"
	// EventReportFailed is emitted when loading, serializing or persisting fails.
	EventReportFailed = "report.failed"
)

// DomainEvent represents a significant occurrence during report generation.
type DomainEvent interface {
	EventType() string
	Payload() interface{}
}

// EventPublisher distributes events to interested subscribers. Dispatch is
// synchronous: Publish blocks until all handlers run. Implementations must be
// thread-safe.
type EventPublisher interface {
	Publish(ctx context.Context, event DomainEvent) error
	Subscribe(eventType string, handler EventHandler) (Subscription, error)
}

// EventHandler processes an event of a specific type. Failures are returned so
// publishers can log them and keep delivering to remaining subscribers.
type EventHandler func(context.Context, DomainEvent) error

// Subscription represents a registered handler.
type Subscription interface {
	Unsubscribe()
}
