// Defines the Request struct that models an individual request in the
// simulation. Tracks arrival time, priority class, and the timestamps used
// for wait-time accounting.

package sim

import "fmt"

// Request models a single unit of demand flowing from a source through the
// buffer to a device. At any instant a request is owned by exactly one of:
// an in-flight arrival event, the buffer, or one device.
type Request struct {
	ID          int64    // Unique identifier, assigned by the controller
	Priority    Priority // Class of the originating source
	ArrivalTime float64  // Simulated hours, set once at creation
	SourceIndex int      // Index of the source that created this request

	// BufferEnterTime is re-stamped whenever the request (re)enters the
	// buffer. Wait time is measured from this timestamp, not from
	// ArrivalTime, so a request is only credited for time it actually
	// spent waiting.
	BufferEnterTime float64

	// ServiceStartTime is set when a device accepts the request.
	// Invariant: once set, ServiceStartTime >= BufferEnterTime >= ArrivalTime.
	ServiceStartTime float64
}

// NewRequest creates a request with BufferEnterTime initialized to the
// arrival time.
func NewRequest(id int64, priority Priority, arrivalTime float64, sourceIndex int) *Request {
	return &Request{
		ID:              id,
		Priority:        priority,
		ArrivalTime:     arrivalTime,
		SourceIndex:     sourceIndex,
		BufferEnterTime: arrivalTime,
	}
}

// This method returns a human-readable string representation of a Request.
func (r *Request) String() string {
	return fmt.Sprintf("Request: (ID: %d, Priority: %s, ArrivalTime: %.4f, Source: %d)",
		r.ID, r.Priority, r.ArrivalTime, r.SourceIndex)
}
