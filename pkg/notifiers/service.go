package notifiers

import (
	"context"
	"time"

	"github.com/samvad-hq/hero-client/internal/storage"
)

const defaultDeliveryTimeout = 5 * time.Second

// MessageService is the Notifier backing the message log panel. Every
// message is recorded in the store before being forwarded to the sinks.
type MessageService struct {
	source  string
	store   storage.MessageStore
	fanout  *Fanout
	timeout time.Duration
	log     Logger
}

// Option customizes a MessageService.
type Option func(*MessageService)

// WithSource sets the Source stamped on delivered messages.
func WithSource(source string) Option {
	return func(s *MessageService) { s.source = source }
}

// WithDeliveryTimeout bounds how long Add waits on the sinks.
func WithDeliveryTimeout(d time.Duration) Option {
	return func(s *MessageService) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// NewMessageService builds a message service. A nil fanout records messages only.
func NewMessageService(store storage.MessageStore, fanout *Fanout, log Logger, opts ...Option) *MessageService {
	s := &MessageService{
		source:  "hero-client",
		store:   store,
		fanout:  fanout,
		timeout: defaultDeliveryTimeout,
		log:     ensureLogger(log),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add records message and forwards it to the sinks. Failures are logged only.
func (s *MessageService) Add(message string) {
	if s == nil {
		return
	}
	if s.store != nil {
		if err := s.store.Append(message); err != nil {
			s.log.WarnObj("message store append failed", "error", err.Error())
		}
	}
	if s.fanout.Size() == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	delivered, err := s.fanout.Deliver(ctx, NewMessage(s.source, message))
	if err != nil {
		s.log.WarnObj("message delivery incomplete", "delivery_meta", map[string]any{
			"delivered": delivered,
			"sinks":     s.fanout.Size(),
			"error":     err.Error(),
		})
	}
}

// Messages returns the recorded messages in arrival order.
func (s *MessageService) Messages() []string {
	if s == nil || s.store == nil {
		return nil
	}
	msgs, err := s.store.List()
	if err != nil {
		s.log.WarnObj("message store list failed", "error", err.Error())
		return nil
	}
	return msgs
}

// Clear drops the recorded messages.
func (s *MessageService) Clear() {
	if s == nil || s.store == nil {
		return
	}
	if err := s.store.Clear(); err != nil {
		s.log.WarnObj("message store clear failed", "error", err.Error())
	}
}

// Close releases the sinks.
func (s *MessageService) Close() error {
	if s == nil {
		return nil
	}
	return s.fanout.Close()
}
