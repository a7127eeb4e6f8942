// sim/controller.go
//
// The Controller owns the event queue, the buffer, the device pool and the
// sources, and drives the dispatch loop that ties them together.

package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Config holds the construction parameters for one simulation run.
type Config struct {
	CorporateSources int // number of corporate-class sources
	PremiumSources   int // number of premium-class sources
	FreeSources      int // number of free-class sources
	Devices          int // number of identical processing devices

	// TargetRequests bounds the run: sources stop generating once this
	// many requests have been created, and the loop exits once this many
	// have been served.
	TargetRequests int

	BufferCapacity int     // 0 means DefaultBufferCapacity
	ServiceRate    float64 // completions per hour; 0 means DefaultServiceRate

	// ArrivalRate is the time-of-day arrival-rate function shared by all
	// sources; nil means DiurnalRate.
	ArrivalRate RateFunc

	// Seed derives every subsystem's random stream via PartitionedRNG.
	Seed int64

	// ArrivalSampler and ServiceSampler, when non-nil, replace the seeded
	// exponential samplers of every source and device. Deterministic
	// samplers make scenario tests reproducible without touching the RNG
	// partition.
	ArrivalSampler DurationSampler
	ServiceSampler DurationSampler
}

// RunState tracks where the dispatch loop is in its lifecycle.
type RunState int

const (
	StateRunning   RunState = iota // loop in progress (or not started)
	StateTargetMet                 // served count reached the target
	StateDrained                   // event queue emptied before the target
)

func (s RunState) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateTargetMet:
		return "target-met"
	case StateDrained:
		return "drained"
	default:
		return fmt.Sprintf("unknown(%d)", int(s))
	}
}

// Controller is the core object that owns the simulation clock, the event
// queue, and all system state. Single-threaded: exactly one event is in
// flight at a time, and every handler runs to completion before the next
// pop.
type Controller struct {
	events  *EventQueue
	sources []*Source
	devices []*Device
	buffer  *Buffer

	// Metrics is read out by reporting once the run completes.
	Metrics *Metrics

	nextID int64
	target int
	state  RunState
}

// NewController builds the full topology from cfg: sources in
// corporate/premium/free order, devices numbered from 1, and one bounded
// buffer between them.
func NewController(cfg Config) *Controller {
	capacity := cfg.BufferCapacity
	if capacity == 0 {
		capacity = DefaultBufferCapacity
	}
	serviceRate := cfg.ServiceRate
	if serviceRate == 0 {
		serviceRate = DefaultServiceRate
	}
	arrivalRate := cfg.ArrivalRate
	if arrivalRate == nil {
		arrivalRate = DiurnalRate
	}

	rng := NewPartitionedRNG(NewSimulationKey(cfg.Seed))
	metrics := NewMetrics()

	c := &Controller{
		events:  NewEventQueue(),
		buffer:  NewBuffer(capacity, metrics),
		Metrics: metrics,
		target:  cfg.TargetRequests,
		state:   StateRunning,
	}

	sourceSampler := func(index int) DurationSampler {
		if cfg.ArrivalSampler != nil {
			return cfg.ArrivalSampler
		}
		return NewExponentialSampler(rng.ForSubsystem(SubsystemSource(index)))
	}
	index := 0
	for i := 0; i < cfg.CorporateSources; i++ {
		c.sources = append(c.sources, NewSource(Corporate, index, arrivalRate, sourceSampler(index)))
		index++
	}
	for i := 0; i < cfg.PremiumSources; i++ {
		c.sources = append(c.sources, NewSource(Premium, index, arrivalRate, sourceSampler(index)))
		index++
	}
	for i := 0; i < cfg.FreeSources; i++ {
		c.sources = append(c.sources, NewSource(Free, index, arrivalRate, sourceSampler(index)))
		index++
	}

	for id := 1; id <= cfg.Devices; id++ {
		sampler := cfg.ServiceSampler
		if sampler == nil {
			sampler = NewExponentialSampler(rng.ForSubsystem(SubsystemDevice(id)))
		}
		c.devices = append(c.devices, NewDevice(id, serviceRate, sampler))
	}

	return c
}

// Schedule pushes an event onto the controller's event queue.
func (c *Controller) Schedule(ev Event) {
	c.events.Push(ev)
}

// SeedArrivals schedules the first arrival for every source from time zero.
func (c *Controller) SeedArrivals() {
	for _, src := range c.sources {
		src.ScheduleNext(c, 0.0)
	}
}

// Run drives the dispatch loop: pop the earliest event, advance the clock
// watermark, execute. The loop exits once the served count reaches the
// target and every device has completed its in-service request, so the
// completion event of a loaded request always fires and busy-time
// accounting closes out. Draining the event queue first is a legitimate
// but degenerate termination meaning the stream starved before the target.
func (c *Controller) Run() {
	for c.Metrics.ServedRequests < c.target || c.anyDeviceBusy() {
		if c.events.IsEmpty() {
			c.state = StateDrained
			logrus.Info("no more events, simulation ends")
			return
		}

		ev := c.events.Pop()
		c.advanceClock(ev.Timestamp())
		ev.Execute(c)
	}
	c.state = StateTargetMet
	logrus.Infof("served target of %d requests reached at %s", c.target, FormatClock(c.Metrics.LastEventTime))
}

func (c *Controller) anyDeviceBusy() bool {
	for _, d := range c.devices {
		if d.IsBusy() {
			return true
		}
	}
	return false
}

// State returns the loop's lifecycle state.
func (c *Controller) State() RunState {
	return c.state
}

// Sources returns the source list, ordered corporate, premium, free.
func (c *Controller) Sources() []*Source {
	return c.sources
}

// Devices returns the device pool in loading-scan order.
func (c *Controller) Devices() []*Device {
	return c.devices
}

// Buffer returns the priority buffer.
func (c *Controller) Buffer() *Buffer {
	return c.buffer
}

// GeneratedCount returns how many requests the sources have created so far.
func (c *Controller) GeneratedCount() int {
	return c.Metrics.GeneratedRequests
}

// TargetRequests returns the generated/served target for this run.
func (c *Controller) TargetRequests() int {
	return c.target
}

// InFlight returns how many admitted requests are neither served nor
// rejected yet: buffer occupants plus busy devices. Together with the
// counters it satisfies generated = served + rejected + in-flight +
// scheduled arrivals.
func (c *Controller) InFlight() int {
	n := c.buffer.Len()
	for _, d := range c.devices {
		if d.IsBusy() {
			n++
		}
	}
	return n
}

// nextRequestID allocates the next process-wide request identifier.
// Identifiers are monotonically assigned starting at 1.
func (c *Controller) nextRequestID() int64 {
	c.nextID++
	return c.nextID
}

// recordGenerated counts one request against the generation gate.
func (c *Controller) recordGenerated() {
	c.Metrics.GeneratedRequests++
}

// advanceClock moves the last-event-time watermark forward. The watermark
// never decreases; the event queue's ordering guarantees popped timestamps
// are non-regressing.
func (c *Controller) advanceClock(t float64) {
	if t > c.Metrics.LastEventTime {
		c.Metrics.LastEventTime = t
	}
}

// handleGenerated processes an arrival: attempt buffer admission, load
// idle devices on success, and in either case have the originating source
// schedule its own next arrival.
func (c *Controller) handleGenerated(req *Request, now float64) {
	if c.buffer.Add(req) {
		c.loadIdleDevices(now)
	}
	c.sources[req.SourceIndex].ScheduleNext(c, now)
}

// handleServed processes a completion: free the named device, then re-run
// the device-loading scan so waiting work is pulled immediately.
func (c *Controller) handleServed(deviceID int, now float64, _ *Request) {
	c.devices[deviceID-1].Free(now)
	c.loadIdleDevices(now)
}

// loadIdleDevices scans devices in fixed order and feeds each idle one
// from the buffer front, until either idle devices or buffered work runs
// out. Loading accumulates the request's buffer wait, counts it as served,
// and schedules its completion.
func (c *Controller) loadIdleDevices(now float64) {
	for _, d := range c.devices {
		if d.IsBusy() {
			continue
		}
		req := c.buffer.Pop()
		if req == nil {
			break
		}

		serviceTime := d.Load(req, now)
		c.Metrics.TotalWaitTime += now - req.BufferEnterTime
		c.Metrics.ServedRequests++

		c.Schedule(&ServedEvent{
			time:     now + serviceTime,
			Request:  req,
			DeviceID: d.ID(),
		})
	}
}
