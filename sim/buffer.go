// Implements the bounded priority buffer between sources and devices —
// priority-ordered admission with conditional eviction under capacity
// pressure.

package sim

import "github.com/sirupsen/logrus"

// DefaultBufferCapacity is the holding capacity of the buffer.
const DefaultBufferCapacity = 8

// Buffer is the bounded holding area between sources and devices.
//
// Ordering invariant: scanning front to back yields non-decreasing
// priority rank (Corporate first) with ties broken by ascending arrival
// time. One exception is deliberate: when a full buffer admits a Premium
// or Corporate request by evicting a lower-class occupant, the new request
// is appended at the tail rather than re-inserted at its rank position.
// The next in-capacity admission re-sorts around it. The original system
// behaves this way and downstream pop order depends on it, so it is
// preserved rather than corrected.
type Buffer struct {
	capacity int
	requests []*Request
	metrics  *Metrics
}

// NewBuffer creates an empty buffer. Rejections (incoming and evicted) are
// counted on the supplied metrics.
func NewBuffer(capacity int, metrics *Metrics) *Buffer {
	return &Buffer{
		capacity: capacity,
		metrics:  metrics,
	}
}

// Add attempts to admit req, re-stamping its buffer-enter time on success.
// When the buffer is full the outcome depends on class: Free never
// preempts and is rejected outright; Premium may evict the first Free
// occupant; Corporate may evict the first Free occupant, else the first
// Premium occupant. Every rejection is counted against the rejected
// request's own class.
func (b *Buffer) Add(req *Request) bool {
	if len(b.requests) < b.capacity {
		b.insert(req)
		req.BufferEnterTime = req.ArrivalTime
		logrus.Infof("request %d admitted to buffer (%s)", req.ID, req.Priority)
		return true
	}

	switch req.Priority {
	case Free:
		// No chance to preempt anything.
		b.reject(req)
		return false
	case Premium:
		if b.evictFirst(Free, req) {
			b.admitAtTail(req)
			return true
		}
		b.reject(req)
		return false
	case Corporate:
		if b.evictFirst(Free, req) || b.evictFirst(Premium, req) {
			b.admitAtTail(req)
			return true
		}
		b.reject(req)
		return false
	}

	b.reject(req)
	return false
}

// Pop removes and returns the front request (highest priority, earliest
// arrival among ties), or nil when the buffer is empty.
func (b *Buffer) Pop() *Request {
	if len(b.requests) == 0 {
		return nil
	}
	req := b.requests[0]
	b.requests = b.requests[1:]
	return req
}

// Len returns the current occupancy.
func (b *Buffer) Len() int {
	return len(b.requests)
}

// IsEmpty reports whether the buffer holds no requests.
func (b *Buffer) IsEmpty() bool {
	return len(b.requests) == 0
}

// Capacity returns the buffer's holding capacity.
func (b *Buffer) Capacity() int {
	return b.capacity
}

// Items returns the buffer contents for inspection. The returned slice is
// the buffer's internal storage — callers may iterate over it but MUST NOT
// append to or reslice it.
func (b *Buffer) Items() []*Request {
	return b.requests
}

// insert places req at its rank position: before the first occupant of
// strictly lower priority, or of equal priority but later arrival.
func (b *Buffer) insert(req *Request) {
	i := 0
	for i < len(b.requests) {
		r := b.requests[i]
		if r.Priority.Outranks(req.Priority) || (r.Priority == req.Priority && r.ArrivalTime < req.ArrivalTime) {
			i++
			continue
		}
		break
	}
	b.requests = append(b.requests, nil)
	copy(b.requests[i+1:], b.requests[i:])
	b.requests[i] = req
}

// admitAtTail appends a preempting request after an eviction, re-stamping
// its buffer-enter time.
func (b *Buffer) admitAtTail(req *Request) {
	b.requests = append(b.requests, req)
	req.BufferEnterTime = req.ArrivalTime
	logrus.Infof("request %d admitted to buffer after eviction (%s)", req.ID, req.Priority)
}

// evictFirst removes the first occupant of the given class, counting it as
// a rejection of that class. Returns false if no such occupant exists.
func (b *Buffer) evictFirst(class Priority, incoming *Request) bool {
	for i, r := range b.requests {
		if r.Priority == class {
			b.requests = append(b.requests[:i], b.requests[i+1:]...)
			b.metrics.recordRejection(r.Priority)
			logrus.Warnf("evicting %s request %d for new %s request %d",
				r.Priority, r.ID, incoming.Priority, incoming.ID)
			return true
		}
	}
	return false
}

// reject counts the incoming request against its own class.
func (b *Buffer) reject(req *Request) {
	b.metrics.recordRejection(req.Priority)
	logrus.Warnf("request %d rejected (%s, buffer full)", req.ID, req.Priority)
}
