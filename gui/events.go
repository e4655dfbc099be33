package gui

// EventType identifies a kind of GUI event
type EventType int

const (
	ButtonClicked EventType = iota + 1
)

func (t EventType) String() string {
	switch t {
	case ButtonClicked:
		return "ButtonClicked"
	}
	return "Unknown"
}

// Event is delivered to subscribers of a widget
type Event struct {
	Type EventType
	ID   string
}

// Handler receives events for the widget id it subscribed to
type Handler func(id string, ev Event)

type subscription struct {
	id  string
	typ EventType
}

// EventBus routes events by widget id and event type
type EventBus struct {
	handlers map[subscription][]Handler
}

// Subscribe registers fn for events of typ published by widget id
func (b *EventBus) Subscribe(id string, typ EventType, fn Handler) {
	if b.handlers == nil {
		b.handlers = make(map[subscription][]Handler)
	}
	key := subscription{id: id, typ: typ}
	b.handlers[key] = append(b.handlers[key], fn)
}

// Unsubscribe drops every handler registered for widget id
func (b *EventBus) Unsubscribe(id string) {
	for key := range b.handlers {
		if key.id == id {
			delete(b.handlers, key)
		}
	}
}

// Publish delivers ev to the handlers of widget id and returns how many ran
func (b *EventBus) Publish(id string, ev Event) int {
	handlers := b.handlers[subscription{id: id, typ: ev.Type}]
	for _, fn := range handlers {
		fn(id, ev)
	}
	return len(handlers)
}
