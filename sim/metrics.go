// Tracks simulation-wide statistics accumulated by the controller and
// buffer, read out once at the end of a run for reporting.

package sim

import (
	"fmt"
	"math"
)

// Metrics aggregates statistics about the simulation for final reporting.
// Useful for evaluating system performance and debugging behavior over time.
type Metrics struct {
	GeneratedRequests int // Number of requests created by sources
	ServedRequests    int // Number of requests loaded onto a device
	TotalRejected     int // Rejections across all classes, incoming and evicted

	RejectedByPriority map[Priority]int // Per-class rejection counts

	TotalWaitTime float64 // Sum of buffer wait times of served requests (hours)
	LastEventTime float64 // Watermark of the last processed event (hours)
}

// NewMetrics creates a Metrics with all per-class counters present.
func NewMetrics() *Metrics {
	return &Metrics{
		RejectedByPriority: map[Priority]int{
			Corporate: 0,
			Premium:   0,
			Free:      0,
		},
	}
}

// recordRejection counts one rejection globally and against the rejected
// request's class.
func (m *Metrics) recordRejection(p Priority) {
	m.TotalRejected++
	m.RejectedByPriority[p]++
}

// AverageWaitTime returns the mean buffer wait of served requests in hours,
// or zero when nothing was served.
func (m *Metrics) AverageWaitTime() float64 {
	if m.ServedRequests == 0 {
		return 0
	}
	return m.TotalWaitTime / float64(m.ServedRequests)
}

// Utilization returns the fraction of elapsed simulated time the device
// spent busy, or zero before any event has been processed.
func (m *Metrics) Utilization(d *Device) float64 {
	if m.LastEventTime <= 0 {
		return 0
	}
	return d.BusyTotal() / m.LastEventTime
}

// Print displays aggregated metrics at the end of the simulation.
// Includes rejection counts by class, average wait, and device utilization.
func (m *Metrics) Print(devices []*Device) {
	fmt.Println("=== Simulation Metrics ===")
	fmt.Printf("Requests generated   : %d\n", m.GeneratedRequests)
	fmt.Printf("Requests served      : %d\n", m.ServedRequests)
	fmt.Printf("Requests rejected    : %d\n", m.TotalRejected)
	for _, p := range Priorities() {
		fmt.Printf("  Rejected %-9s : %d\n", p, m.RejectedByPriority[p])
	}

	avgWait := m.AverageWaitTime()
	fmt.Printf("Average waiting time : %.4f h (~%.1f min)\n", avgWait, avgWait*60.0)

	fmt.Println("Device utilization:")
	for _, d := range devices {
		fmt.Printf("  Device %d: busy %.4f h, load %.2f %%\n",
			d.ID(), d.BusyTotal(), m.Utilization(d)*100.0)
	}

	fmt.Printf("Total simulated time : %.4f hours\n", m.LastEventTime)
}

// FormatClock renders simulated hours as a wall clock HH:MM within a
// 24-hour day.
func FormatClock(timeHours float64) string {
	totalMinutes := int(math.Floor(timeHours * 60.0))
	return fmt.Sprintf("%02d:%02d", (totalMinutes/60)%24, totalMinutes%60)
}
