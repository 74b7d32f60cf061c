package notifiers

import "context"

// logSink writes messages to the structured logger.
type logSink struct {
	id  string
	log Logger
}

func newLogSink(_ context.Context, cfg SinkConfig, log Logger) (Sink, error) {
	return &logSink{id: cfg.ID, log: ensureLogger(log)}, nil
}

func (l *logSink) ID() string   { return l.id }
func (l *logSink) Type() string { return TypeLog }

func (l *logSink) Deliver(_ context.Context, msg Message) error {
	l.log.InfoObj("notifier message", "message", msg)
	return nil
}
