package notifiers

import "time"

// Message is the payload delivered to sinks.
type Message struct {
	Source string    `json:"source"`
	Text   string    `json:"text"`
	At     time.Time `json:"at"`
}

// NewMessage stamps text from source with the current time.
func NewMessage(source, text string) Message {
	return Message{
		Source: source,
		Text:   text,
		At:     time.Now().UTC(),
	}
}
