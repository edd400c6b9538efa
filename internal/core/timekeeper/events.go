package timekeeper

import (
	"sync"
	"time"
)

// EventType defines the type of controller event.
type EventType string

const (
	EventProgress        EventType = "progress"
	EventCompleted       EventType = "completed"
	EventElapsed         EventType = "elapsed"
	EventInvalidDuration EventType = "invalid_duration"
	EventWakeLockError   EventType = "wake_lock_error"
)

// Event represents a timer update for observers.
// Progress and Completed carry Percent, Elapsed carries Elapsed.
type Event struct {
	Type    EventType
	Percent float64
	Elapsed Elapsed
	Message string
	At      time.Time
}

// broadcaster fans events out to subscriber channels without blocking the sender.
type broadcaster struct {
	mu     sync.Mutex
	events []chan Event
	closed bool
}

func (hub *broadcaster) subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	hub.mu.Lock()
	defer hub.mu.Unlock()
	if hub.closed {
		close(ch)
		return ch
	}
	hub.events = append(hub.events, ch)
	return ch
}

func (hub *broadcaster) emit(event Event) {
	hub.mu.Lock()
	defer hub.mu.Unlock()
	for _, ch := range hub.events {
		select {
		case ch <- event:
		default:
		}
	}
}

func (hub *broadcaster) close() {
	hub.mu.Lock()
	events := hub.events
	hub.events = nil
	hub.closed = true
	hub.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}
