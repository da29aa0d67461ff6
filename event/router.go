package event

// Handler processes routed events
type Handler interface {
	// HandleEvent is called synchronously during Dispatch on the game loop
	HandleEvent(ev Event)

	// EventTypes returns the event types this handler processes
	EventTypes() []EventType
}

// HandlerFunc adapts a function to Handler for a fixed set of types
type HandlerFunc struct {
	Types []EventType
	Fn    func(ev Event)
}

func (h HandlerFunc) HandleEvent(ev Event)    { h.Fn(ev) }
func (h HandlerFunc) EventTypes() []EventType { return h.Types }

// Router dispatches queued events to registered handlers
//
// Architecture:
//   - Single-threaded dispatch on the game loop
//   - Multiple handlers per event type, invoked in registration order
//   - Every handler for an event runs before the next event
type Router struct {
	handlers    map[EventType][]Handler
	queue       *Queue
	buf         []Event
	dispatching bool
}

// NewRouter creates a router attached to the given queue
func NewRouter(queue *Queue) *Router {
	return &Router{
		handlers: make(map[EventType][]Handler),
		queue:    queue,
	}
}

// Queue returns the attached queue
func (r *Router) Queue() *Queue {
	return r.queue
}

// Register adds a handler for its declared event types
func (r *Router) Register(h Handler) {
	for _, t := range h.EventTypes() {
		r.handlers[t] = append(r.handlers[t], h)
	}
}

// Dispatch drains pending events and routes them, returns the number consumed
// Events emitted by handlers during dispatch are delivered on the next call;
// a nested Dispatch from a handler is a no-op
func (r *Router) Dispatch() int {
	if r.dispatching {
		return 0
	}
	r.dispatching = true
	defer func() { r.dispatching = false }()

	r.buf = r.queue.Drain(r.buf[:0])
	for i, ev := range r.buf {
		for _, h := range r.handlers[ev.Type] {
			h.HandleEvent(ev)
		}
		r.buf[i] = Event{}
	}
	return len(r.buf)
}
