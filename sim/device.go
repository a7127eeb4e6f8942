package sim

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
)

// DefaultServiceRate is the device completion rate: an average of 40
// minutes per service, expressed in completions per hour.
const DefaultServiceRate = 1.0 / (40.0 / 60.0)

// Device models one server. A device holds at most one request at a time
// and accumulates its total busy time for utilization reporting.
type Device struct {
	id            int
	busy          bool
	current       *Request
	startBusyTime float64
	finishTime    float64
	busyTotal     float64
	serviceRate   float64
	sampler       DurationSampler
}

// NewDevice creates an idle device. The sampler is the device's private
// random stream capability for service durations.
func NewDevice(id int, serviceRate float64, sampler DurationSampler) *Device {
	return &Device{
		id:          id,
		serviceRate: serviceRate,
		sampler:     sampler,
	}
}

// ID returns the device identifier.
func (d *Device) ID() int {
	return d.id
}

// IsBusy reports whether the device currently holds a request.
func (d *Device) IsBusy() bool {
	return d.busy
}

// Current returns the request being serviced, or nil when idle.
func (d *Device) Current() *Request {
	return d.current
}

// FinishTime returns the scheduled completion time of the current request.
// Only meaningful while the device is busy.
func (d *Device) FinishTime() float64 {
	return d.finishTime
}

// BusyTotal returns the cumulative busy time in hours.
func (d *Device) BusyTotal() float64 {
	return d.busyTotal
}

// Load places req on the device, samples its service duration, and returns
// that duration. The caller guarantees the device is idle; loading a busy
// device is a contract violation.
func (d *Device) Load(req *Request, now float64) float64 {
	if d.busy {
		panic(fmt.Sprintf("Load: device %d is already busy with request %d", d.id, d.current.ID))
	}

	d.busy = true
	d.current = req
	d.startBusyTime = now

	serviceTime := d.sampler.Sample(d.serviceRate)
	d.finishTime = now + serviceTime
	req.ServiceStartTime = now

	logrus.Infof("device %d: request %d started at %s, estimated finish %s (service %d min)",
		d.id, req.ID, FormatClock(now), FormatClock(d.finishTime), int(math.Round(serviceTime*60.0)))
	return serviceTime
}

// Free releases the device after a completion and accumulates the elapsed
// busy interval.
func (d *Device) Free(now float64) {
	if d.current != nil {
		logrus.Infof("device %d: request %d finished at %s", d.id, d.current.ID, FormatClock(now))
	}
	d.busyTotal += now - d.startBusyTime
	d.busy = false
	d.current = nil
}
