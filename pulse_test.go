package pulse

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock only moves when slept on.
type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.now = c.now.Add(d)
	return nil
}

// sensorFunc adapts a function to a Sensor.
type sensorFunc func() (int, error)

func (f sensorFunc) Voltage() (int, error) { return f() }

func constant(mv int) Sensor {
	return sensorFunc(func() (int, error) { return mv, nil })
}

// script returns the voltages in order, then the baseline forever.
func script(mvs ...int) Sensor {
	i := 0
	return sensorFunc(func() (int, error) {
		if i >= len(mvs) {
			return DefaultBaseline, nil
		}
		v := mvs[i]
		i++
		return v, nil
	})
}

type countingIndicator struct {
	on, off int
	err     error
}

func (c *countingIndicator) Set(on bool) error {
	if on {
		c.on++
	} else {
		c.off++
	}
	return c.err
}

// reading is a scripted raw BPM result.
type reading struct {
	bpm int
	err error
}

func bpms(vs ...int) []reading {
	r := make([]reading, len(vs))
	for i, v := range vs {
		r[i] = reading{bpm: v}
	}
	return r
}

// detector replaces the burst measurement of m with the given readings.
func detector(t *testing.T, m *Meter, readings ...reading) *int {
	t.Helper()
	calls := 0
	m.detect = func(ctx context.Context) (int, error) {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		if calls >= len(readings) {
			return 0, errors.New("no more readings")
		}
		r := readings[calls]
		calls++
		return r.bpm, r.err
	}
	return &calls
}

func newTestMeter(t *testing.T, sensor Sensor, options ...Option) *Meter {
	t.Helper()
	options = append([]Option{
		WithClock(newFakeClock()),
		WithRand(rand.New(rand.NewSource(1))),
	}, options...)

	m, err := New(sensor, options...)
	require.NoError(t, err)
	return m
}

func TestNew_Defaults(t *testing.T) {
	m, err := New(constant(DefaultBaseline))
	require.NoError(t, err)

	assert.Len(t, m.smooth.buffer, DefaultSmoothingSize)
	assert.Len(t, m.window.slots, DefaultWindowSize)
	assert.Equal(t, DefaultBaseline, m.smooth.baseline)
	assert.Equal(t, DefaultMargin, m.beat.margin)
}

func TestNew_Invalid(t *testing.T) {
	tests := map[string]Option{
		"smoothing size": SmoothingSize(0),
		"oversample":     Oversample(0),
		"burst length":   BurstLength(10, 5),
		"sample delay":   SampleDelay(time.Millisecond, 3, 2),
		"margin":         Margin(-1),
		"window size":    WindowSize(0),
		"thresholds":     Thresholds(30, 40),
		"max retries":    MaxRetries(0),
		"nil clock":      WithClock(nil),
	}
	for name, opt := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := New(constant(DefaultBaseline), opt)
			assert.ErrorIs(t, err, ErrInvalidOption)
		})
	}

	_, err := New(nil)
	assert.ErrorIs(t, err, ErrInvalidOption)
}

func TestOptions_RestorePrevious(t *testing.T) {
	m := &Meter{baseline: DefaultBaseline}

	old := m.options(Baseline(1500))
	assert.Equal(t, 1500, m.baseline)

	m.options(old)
	assert.Equal(t, DefaultBaseline, m.baseline)
}

func TestReset(t *testing.T) {
	m := newTestMeter(t, constant(1700), SmoothingSize(4), Oversample(4))
	_, err := m.Sample(context.Background())
	require.NoError(t, err)
	m.window.push(60)

	require.NoError(t, m.Reset(context.Background()))
	assert.Zero(t, m.smooth.sum)
	assert.Equal(t, []int{0, 0, 0, 0}, m.smooth.buffer)
	assert.Zero(t, m.window.sum)
}
