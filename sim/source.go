// Implements the Source, a producer of requests for one priority class.
// Each source schedules its own next arrival after every dispatch, so the
// number of in-flight GeneratedEvents per source is always exactly one
// until the generated-count gate closes.

package sim

import "github.com/sirupsen/logrus"

// Source generates the request stream for one priority class. It is
// stateless between invocations except for the internal cursor of its
// random stream.
type Source struct {
	priority Priority
	index    int
	rate     RateFunc
	sampler  DurationSampler
}

// NewSource creates a source with a fixed class and index. The sampler is
// the source's private random stream capability.
func NewSource(priority Priority, index int, rate RateFunc, sampler DurationSampler) *Source {
	return &Source{
		priority: priority,
		index:    index,
		rate:     rate,
		sampler:  sampler,
	}
}

// Priority returns the class this source produces.
func (s *Source) Priority() Priority {
	return s.priority
}

// Index returns the source's position in the controller's source list.
func (s *Source) Index() int {
	return s.index
}

// InterArrivalTime samples the delay until this source's next arrival,
// using the arrival rate in effect at now.
func (s *Source) InterArrivalTime(now float64) float64 {
	return s.sampler.Sample(s.rate(now))
}

// NewRequest creates a request of this source's class.
func (s *Source) NewRequest(id int64, arrivalTime float64) *Request {
	return NewRequest(id, s.priority, arrivalTime, s.index)
}

// ScheduleNext samples the next inter-arrival delay and schedules a
// GeneratedEvent for it. No-op once the controller's generated count has
// reached the target, which is what eventually drains the event queue.
func (s *Source) ScheduleNext(c *Controller, now float64) {
	if c.GeneratedCount() >= c.TargetRequests() {
		return
	}

	arrivalTime := now + s.InterArrivalTime(now)
	req := s.NewRequest(c.nextRequestID(), arrivalTime)
	c.recordGenerated()

	c.Schedule(&GeneratedEvent{time: arrivalTime, Request: req})
	logrus.Debugf("source %d (%s): next request %d scheduled for %s",
		s.index, s.priority, req.ID, FormatClock(arrivalTime))
}
