package notifiers

import "context"

// Notifier accepts human-readable log lines. Add never fails.
type Notifier interface {
	Add(message string)
}

// Sink delivers notifier messages to a downstream channel (webhook, SQS, etc).
type Sink interface {
	ID() string
	Type() string
	Deliver(ctx context.Context, msg Message) error
}
