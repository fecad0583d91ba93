package service

import "sync"

// EventType defines the type of event
type EventType string

const (
	EventDataReloaded     EventType = "data_reloaded"
	EventPositionsUpdated EventType = "positions_updated"
	EventDragStarted      EventType = "drag_started"
	EventDragEnded        EventType = "drag_ended"
	EventFiltersChanged   EventType = "filters_changed"
	EventHighlightMoved   EventType = "highlight_moved"
)

// Event represents an event that occurred in the system
type Event struct {
	Type    EventType `json:"type"`
	Payload any       `json:"payload,omitempty"`
}

// EventBus allows publishing and subscribing to events. Publishers never
// block: a subscriber that cannot keep up misses events.
type EventBus struct {
	mu          sync.RWMutex
	subscribers []chan<- Event
}

// NewEventBus creates a new event bus
func NewEventBus() *EventBus {
	return &EventBus{
		subscribers: make([]chan<- Event, 0),
	}
}

// Subscribe adds a subscriber to receive events
func (eb *EventBus) Subscribe(ch chan<- Event) {
	eb.mu.Lock()
	eb.subscribers = append(eb.subscribers, ch)
	eb.mu.Unlock()
}

// Publish sends an event to all subscribers
func (eb *EventBus) Publish(event Event) {
	eb.mu.RLock()
	defer eb.mu.RUnlock()
	for _, ch := range eb.subscribers {
		select {
		case ch <- event:
		default:
			// Subscriber is slow, skip
		}
	}
}
