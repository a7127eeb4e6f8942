package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDevice_Load_SetsBusyStateAndTimestamps(t *testing.T) {
	// GIVEN an idle device with a deterministic service sampler
	d := NewDevice(1, DefaultServiceRate, FixedSampler{Duration: 0.5})
	req := NewRequest(1, Corporate, 1.0, 0)
	req.BufferEnterTime = 1.0

	// WHEN a request is loaded at t=2.0
	serviceTime := d.Load(req, 2.0)

	// THEN the device is busy until now + service time and the request is
	// stamped with its service start
	assert.Equal(t, 0.5, serviceTime)
	assert.True(t, d.IsBusy())
	assert.Equal(t, req, d.Current())
	assert.Equal(t, 2.5, d.FinishTime())
	assert.Equal(t, 2.0, req.ServiceStartTime)
	assert.GreaterOrEqual(t, req.ServiceStartTime, req.BufferEnterTime)
}

func TestDevice_Free_AccumulatesBusyTime(t *testing.T) {
	d := NewDevice(1, DefaultServiceRate, FixedSampler{Duration: 0.5})
	req := NewRequest(1, Free, 0, 0)

	d.Load(req, 2.0)
	d.Free(2.5)

	assert.False(t, d.IsBusy())
	assert.Nil(t, d.Current())
	assert.InDelta(t, 0.5, d.BusyTotal(), 1e-12)
}

func TestDevice_BusyTime_AccumulatesAcrossCycles(t *testing.T) {
	d := NewDevice(2, DefaultServiceRate, FixedSampler{Duration: 1.0})

	d.Load(NewRequest(1, Free, 0, 0), 0.0)
	d.Free(1.0)
	d.Load(NewRequest(2, Free, 0, 0), 3.0)
	d.Free(4.0)

	assert.InDelta(t, 2.0, d.BusyTotal(), 1e-12)
}

func TestDevice_Load_WhileBusy_Panics(t *testing.T) {
	// Loading a busy device is a contract violation the controller must
	// never commit.
	d := NewDevice(1, DefaultServiceRate, FixedSampler{Duration: 0.5})
	d.Load(NewRequest(1, Free, 0, 0), 0.0)

	require.Panics(t, func() {
		d.Load(NewRequest(2, Free, 0, 0), 0.1)
	})
}

func TestDevice_Load_SamplesWithServiceRate(t *testing.T) {
	// GIVEN a sampler that records the rate it was asked for
	var gotRate float64
	d := NewDevice(1, 1.5, rateRecorder{rate: &gotRate, duration: 0.25})

	d.Load(NewRequest(1, Free, 0, 0), 0.0)

	assert.Equal(t, 1.5, gotRate)
	assert.Equal(t, 0.25, d.FinishTime())
}

type rateRecorder struct {
	rate     *float64
	duration float64
}

func (r rateRecorder) Sample(rate float64) float64 {
	*r.rate = rate
	return r.duration
}

func TestDefaultServiceRate_Mean40Minutes(t *testing.T) {
	assert.InDelta(t, 1.5, DefaultServiceRate, 1e-12)
}
