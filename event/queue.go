package event

import (
	"sync"
	"sync/atomic"

	"github.com/lixenwraith/into-the-hole/parameter"
)

// Queue is a bounded FIFO of game events stamped with the frame they were
// emitted on. Producers may run on any goroutine; Drain is called by the
// game loop only.
//
// Overflow: when full, routine events (advance, bonus) are dropped on push,
// while lifecycle events (start, end, obstacle hit) evict the oldest pending
// event so a run can never start or end unnoticed. Both cases count as dropped.
type Queue struct {
	mu     sync.Mutex
	events [parameter.EventQueueSize]Event
	head   int
	n      int

	frame   atomic.Int64
	dropped atomic.Uint64
}

func NewQueue() *Queue {
	return &Queue{}
}

// SetFrame sets the stamp applied to subsequently emitted events
func (q *Queue) SetFrame(frame int64) {
	q.frame.Store(frame)
}

// Emit queues an event of type t stamped with the current frame
func (q *Queue) Emit(t EventType, payload any) {
	ev := Event{Type: t, Payload: payload, Frame: q.frame.Load()}

	q.mu.Lock()
	defer q.mu.Unlock()

	if q.n == len(q.events) {
		q.dropped.Add(1)
		if !t.Lifecycle() {
			return
		}
		q.events[q.head] = Event{}
		q.head = (q.head + 1) % len(q.events)
		q.n--
	}
	q.events[(q.head+q.n)%len(q.events)] = ev
	q.n++
}

// Drain appends all pending events to dst in FIFO order and empties the queue
func (q *Queue) Drain(dst []Event) []Event {
	q.mu.Lock()
	defer q.mu.Unlock()

	for ; q.n > 0; q.n-- {
		dst = append(dst, q.events[q.head])
		q.events[q.head] = Event{}
		q.head = (q.head + 1) % len(q.events)
	}
	q.head = 0
	return dst
}

// Len returns the pending event count
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.n
}

// Dropped returns the number of events lost to overflow
func (q *Queue) Dropped() uint64 {
	return q.dropped.Load()
}
