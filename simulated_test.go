package pulse

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cgxeiji/pulse/sim"
)

func TestHeartRate_Simulated(t *testing.T) {
	for _, rate := range []float64{60, 72} {
		clock := newFakeClock()
		sensor := sim.New(rate, sim.WithClock(clock), sim.Noise(2, 1))
		ind := &countingIndicator{}
		m, err := New(sensor,
			WithClock(clock),
			WithRand(rand.New(rand.NewSource(7))),
			WithIndicator(ind),
		)
		require.NoError(t, err)

		bpm, err := m.HeartRate(context.Background())
		require.NoError(t, err)
		assert.InDelta(t, rate, bpm, 20, "simulated %v bpm", rate)
		assert.NotZero(t, ind.on)
	}
}

// slowADC is a sensor whose every reading takes a conversion's worth of time.
type slowADC struct {
	sensor     *sim.Sensor
	clock      *fakeClock
	conversion time.Duration
}

func (a *slowADC) Voltage() (int, error) {
	a.clock.now = a.clock.now.Add(a.conversion)
	return a.sensor.Voltage()
}

func TestHeartRate_SimulatedSlowADC(t *testing.T) {
	for _, conversion := range []time.Duration{1200 * time.Microsecond, 2 * time.Millisecond} {
		for _, rate := range []float64{60, 72} {
			clock := newFakeClock()
			adc := &slowADC{
				sensor:     sim.New(rate, sim.WithClock(clock), sim.Noise(2, 1)),
				clock:      clock,
				conversion: conversion,
			}
			n := int(16 * time.Millisecond / conversion)
			m, err := New(adc,
				WithClock(clock),
				WithRand(rand.New(rand.NewSource(7))),
				SmoothingSize(n),
				Oversample(n),
			)
			require.NoError(t, err)

			bpm, err := m.HeartRate(context.Background())
			require.NoError(t, err)
			assert.InDelta(t, rate, bpm, 20, "simulated %v bpm at %v per reading", rate, conversion)
		}
	}
}

func TestHeartRate_SimulatedNoContact(t *testing.T) {
	clock := newFakeClock()
	sensor := sim.New(72, sim.WithClock(clock))
	sensor.SetContact(false)

	m, err := New(sensor,
		WithClock(clock),
		WithRand(rand.New(rand.NewSource(7))),
		MaxRetries(2),
	)
	require.NoError(t, err)

	_, err = m.HeartRate(context.Background())
	assert.ErrorIs(t, err, ErrNotDetected)
}
