package ecs

// EventType identifies an event payload.
type EventType string

const (
	EventExitRequested EventType = "exit_requested"
	EventPauseToggled  EventType = "pause_toggled"
	// EventScript carries a ScriptEvent emitted by a scene script.
	EventScript EventType = "script"
)

// Event is a generic ECS event payload.
type Event struct {
	Type EventType
	Data any
}

// ScriptEvent is the payload of EventScript.
type ScriptEvent struct {
	Entity Entity
	Name   string
}

// EventQueue is a simple FIFO queue.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Has reports whether an event of type t is queued.
func (q *EventQueue) Has(t EventType) bool {
	if q == nil {
		return false
	}
	for _, evt := range q.items {
		if evt.Type == t {
			return true
		}
	}
	return false
}

// Of returns the queued events of type t without removing them.
func (q *EventQueue) Of(t EventType) []Event {
	if q == nil {
		return nil
	}
	var out []Event
	for _, evt := range q.items {
		if evt.Type == t {
			out = append(out, evt)
		}
	}
	return out
}

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}
