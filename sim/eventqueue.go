package sim

import "container/heap"

// EventQueue is a priority queue for simulation events, ordered by
// timestamp. Ties are broken deterministically: GeneratedKind before
// ServedKind, then insertion order. Push and Pop are O(log n).
//
// The monotonic-time invariant follows from the heap order: no Pop may
// return an event whose timestamp is smaller than a previously popped
// event's timestamp, because events are only ever scheduled at or after
// the current clock.
type EventQueue struct {
	events eventHeap
	seq    uint64
}

// NewEventQueue creates an empty event queue.
func NewEventQueue() *EventQueue {
	eq := &EventQueue{events: make(eventHeap, 0)}
	heap.Init(&eq.events)
	return eq
}

// Push adds an event to the queue.
func (eq *EventQueue) Push(ev Event) {
	eq.seq++
	heap.Push(&eq.events, queueItem{event: ev, seq: eq.seq})
}

// Pop removes and returns the earliest event. Popping an empty queue is a
// programming error under correct dispatch, not a runtime condition.
func (eq *EventQueue) Pop() Event {
	if eq.IsEmpty() {
		panic("Pop: empty event queue")
	}
	return heap.Pop(&eq.events).(queueItem).event
}

// Peek returns the earliest event without removing it, or nil when empty.
func (eq *EventQueue) Peek() Event {
	if eq.IsEmpty() {
		return nil
	}
	return eq.events[0].event
}

// IsEmpty returns true if the queue holds no events.
func (eq *EventQueue) IsEmpty() bool {
	return eq.events.Len() == 0
}

// Len returns the number of events in the queue.
func (eq *EventQueue) Len() int {
	return eq.events.Len()
}

// Events returns all events in the queue in heap order (for inspection).
// The returned slice is a copy; mutating it does not affect the queue.
func (eq *EventQueue) Events() []Event {
	events := make([]Event, len(eq.events))
	for i, item := range eq.events {
		events[i] = item.event
	}
	return events
}

type queueItem struct {
	event Event
	seq   uint64
}

// eventHeap implements heap.Interface for queueItem.
// See canonical Golang example here: https://pkg.go.dev/container/heap#example-package-IntHeap
type eventHeap []queueItem

func (h eventHeap) Len() int { return len(h) }

func (h eventHeap) Less(i, j int) bool {
	if h[i].event.Timestamp() != h[j].event.Timestamp() {
		return h[i].event.Timestamp() < h[j].event.Timestamp()
	}
	if h[i].event.Kind() != h[j].event.Kind() {
		return h[i].event.Kind() < h[j].event.Kind()
	}
	return h[i].seq < h[j].seq
}

func (h eventHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *eventHeap) Push(x any) {
	*h = append(*h, x.(queueItem))
}

func (h *eventHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[0 : n-1]
	return item
}
