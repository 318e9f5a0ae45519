package realtime

import (
	"time"

	"anilink/internal/cache"
)

const (
	EventInvalidated  = "cache.invalidated"
	EventSessionReset = "session.reset"
	EventPong         = "pong"
	EventError        = "error"
)

// Event is a server-to-client message.
type Event struct {
	Type    string         `json:"type"`
	Targets []cache.Target `json:"targets,omitempty"`
	At      time.Time      `json:"at"`
	Code    string         `json:"code,omitempty"`
	Message string         `json:"message,omitempty"`
}

// ClientMessage is what clients may send. Only pings are understood.
type ClientMessage struct {
	Type string `json:"type"`
}

func NewInvalidatedEvent(targets []cache.Target) *Event {
	return &Event{Type: EventInvalidated, Targets: targets, At: time.Now().UTC()}
}

func NewSessionResetEvent() *Event {
	return &Event{Type: EventSessionReset, At: time.Now().UTC()}
}

func NewPongEvent() *Event {
	return &Event{Type: EventPong, At: time.Now().UTC()}
}

func NewErrorEvent(code, message string) *Event {
	return &Event{Type: EventError, Code: code, Message: message, At: time.Now().UTC()}
}
