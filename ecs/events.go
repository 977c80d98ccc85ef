package ecs

// Event is a generic ECS event payload.
type Event struct {
	Type string
	Data any
}

// EventQueue is a FIFO queue of events published during the current tick.
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

// Each visits queued events of the given type without consuming them. An
// empty type visits every event.
func (q *EventQueue) Each(eventType string, fn func(Event)) {
	if q == nil || fn == nil {
		return
	}
	// fn may publish follow-up events; those are visited too.
	for i := 0; i < len(q.items); i++ {
		if eventType == "" || q.items[i].Type == eventType {
			fn(q.items[i])
		}
	}
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}
