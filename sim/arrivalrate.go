package sim

import "math"

// RateFunc returns the arrival rate (requests per hour) in effect at a
// given simulated time. Implementations must return a strictly positive
// rate so the exponential inter-arrival distribution stays well-defined.
type RateFunc func(timeHours float64) float64

const (
	diurnalPeriodHours = 24.0
	diurnalOffset      = 0.45 // average rate
	diurnalAmplitude   = 0.25 // swing between the night trough and day peak

	// minArrivalRate is the positive floor substituted when a computed
	// rate is non-positive.
	minArrivalRate = 0.01
)

// DiurnalRate models a day/night load cycle: a sinusoid around a 24-hour
// period, higher in the daytime phase and lower at night.
func DiurnalRate(timeHours float64) float64 {
	phase := 2.0 * math.Pi * (timeHours / diurnalPeriodHours)
	rate := diurnalOffset + diurnalAmplitude*math.Sin(phase)
	if rate <= 0 {
		rate = minArrivalRate
	}
	return rate
}

// ConstantRate returns a RateFunc that ignores time.
func ConstantRate(rate float64) RateFunc {
	return func(_ float64) float64 {
		if rate <= 0 {
			return minArrivalRate
		}
		return rate
	}
}
