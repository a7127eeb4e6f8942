package sim

import "github.com/sirupsen/logrus"

// Event defines the interface for all simulation events.
// Each event carries a Timestamp (in simulated hours), a Kind used for
// deterministic tie-breaking, and an Execute method that advances
// simulation state when invoked.
type Event interface {
	Timestamp() float64
	Kind() EventKind
	Execute(*Controller)
}

// EventKind tags the two event types the controller dispatches. The
// numeric order matters: when two events share a timestamp, GeneratedKind
// is processed before ServedKind.
type EventKind int

const (
	GeneratedKind EventKind = iota
	ServedKind
)

func (k EventKind) String() string {
	switch k {
	case GeneratedKind:
		return "generated"
	case ServedKind:
		return "served"
	default:
		return "unknown"
	}
}

// GeneratedEvent represents the arrival of a new request into the system.
type GeneratedEvent struct {
	time    float64  // Simulation time of arrival (in hours)
	Request *Request // The incoming request associated with this event
}

// Timestamp returns the scheduled time of the GeneratedEvent.
func (e *GeneratedEvent) Timestamp() float64 {
	return e.time
}

func (e *GeneratedEvent) Kind() EventKind {
	return GeneratedKind
}

// Execute attempts buffer admission for the arriving request and schedules
// the originating source's next arrival.
func (e *GeneratedEvent) Execute(c *Controller) {
	logrus.Infof("<< Generated: request %d at %s", e.Request.ID, FormatClock(e.time))
	c.handleGenerated(e.Request, e.time)
}

// ServedEvent represents a device finishing service of a request.
type ServedEvent struct {
	time     float64  // Simulation time of completion (in hours)
	Request  *Request // The request that finished service
	DeviceID int      // Which device completed it
}

// Timestamp returns the scheduled time of the ServedEvent.
func (e *ServedEvent) Timestamp() float64 {
	return e.time
}

func (e *ServedEvent) Kind() EventKind {
	return ServedKind
}

// Execute frees the named device and re-runs the device-loading scan.
func (e *ServedEvent) Execute(c *Controller) {
	logrus.Infof("<< Served: request %d on device %d at %s", e.Request.ID, e.DeviceID, FormatClock(e.time))
	c.handleServed(e.DeviceID, e.time, e.Request)
}
