// Package pulse estimates the heart rate from the voltage of an analog pulse
// sensor.
package pulse

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"time"
)

var (
	// ErrNotDetected is thrown when no plausible heart rate could be read
	// after several bursts (e.g. no finger is placed on the sensor).
	ErrNotDetected = errors.New("nothing detected on the sensor")
	// ErrNoEstimate is thrown when a burst or the averaging window cannot
	// produce a value (e.g. the clock did not advance during a burst).
	ErrNoEstimate = errors.New("no estimate available")
	// ErrInvalidOption is thrown by New when the options leave the meter in
	// an unusable state.
	ErrInvalidOption = errors.New("invalid option")
)

// Sensor reads the calibrated output of a pulse sensor.
type Sensor interface {
	// Voltage returns one reading in mV.
	Voltage() (int, error)
}

// Indicator is driven on and off for every detected beat.
type Indicator interface {
	Set(on bool) error
}

// Rand picks the random burst lengths and sample delays.
type Rand interface {
	Intn(n int) int
}

type noIndicator struct{}

func (noIndicator) Set(bool) error { return nil }

// Meter estimates the heart rate from a Sensor.
type Meter struct {
	sensor    Sensor
	indicator Indicator
	clock     Clock
	rand      Rand
	log       *slog.Logger

	smooth *smoother
	window *bpmWindow
	beat   beat
	// detect measures a raw BPM reading without taking the lock.
	detect func(ctx context.Context) (int, error)
	lock   chan struct{}

	baseline      int
	ceiling       int
	smoothingSize int
	oversample    int

	burstMin int
	burstMax int
	tick     time.Duration
	delayMin int
	delayMax int
	margin   int

	windowSize int
	retryBelow int
	resetBelow int
	maxRetries int
}

// New returns a new Meter reading from sensor. Without options the meter uses
// the Default* values.
func New(sensor Sensor, options ...Option) (*Meter, error) {
	if sensor == nil {
		return nil, fmt.Errorf("pulse: nil sensor: %w", ErrInvalidOption)
	}

	m := &Meter{
		sensor:    sensor,
		indicator: noIndicator{},
		clock:     realClock{},
		rand:      rand.New(rand.NewSource(time.Now().UnixNano())),
		log:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		lock:      make(chan struct{}, 1),

		baseline:      DefaultBaseline,
		ceiling:       DefaultCeiling,
		smoothingSize: DefaultSmoothingSize,
		oversample:    DefaultOversample,

		burstMin: DefaultBurstMin,
		burstMax: DefaultBurstMax,
		tick:     DefaultTick,
		delayMin: DefaultDelayMin,
		delayMax: DefaultDelayMax,
		margin:   DefaultMargin,

		windowSize: DefaultWindowSize,
		retryBelow: DefaultRetryBelow,
		resetBelow: DefaultResetBelow,
		maxRetries: DefaultMaxRetries,
	}
	m.options(options...)

	if err := m.validate(); err != nil {
		return nil, fmt.Errorf("pulse: could not create meter: %w", err)
	}

	m.smooth = newSmoother(m.smoothingSize, m.baseline, m.ceiling)
	m.window = newBPMWindow(m.windowSize)
	m.beat = beat{
		margin: m.margin,
		pulse:  m.blink,
	}
	m.detect = m.rawBPM
	m.lock <- struct{}{}

	return m, nil
}

func (m *Meter) validate() error {
	switch {
	case m.indicator == nil || m.clock == nil || m.rand == nil || m.log == nil:
		return fmt.Errorf("nil collaborator: %w", ErrInvalidOption)
	case m.smoothingSize < 1:
		return fmt.Errorf("smoothing size %d: %w", m.smoothingSize, ErrInvalidOption)
	case m.oversample < 1:
		return fmt.Errorf("oversample %d: %w", m.oversample, ErrInvalidOption)
	case m.ceiling < 0:
		return fmt.Errorf("ceiling %d: %w", m.ceiling, ErrInvalidOption)
	case m.burstMin < 1 || m.burstMax < m.burstMin:
		return fmt.Errorf("burst length [%d, %d]: %w", m.burstMin, m.burstMax, ErrInvalidOption)
	case m.tick < 0 || m.delayMin < 0 || m.delayMax < m.delayMin:
		return fmt.Errorf("sample delay %v x [%d, %d]: %w", m.tick, m.delayMin, m.delayMax, ErrInvalidOption)
	case m.margin < 0:
		return fmt.Errorf("margin %d: %w", m.margin, ErrInvalidOption)
	case m.windowSize < 1:
		return fmt.Errorf("window size %d: %w", m.windowSize, ErrInvalidOption)
	case m.resetBelow > m.retryBelow:
		return fmt.Errorf("reset threshold %d above retry threshold %d: %w", m.resetBelow, m.retryBelow, ErrInvalidOption)
	case m.maxRetries < 1:
		return fmt.Errorf("max retries %d: %w", m.maxRetries, ErrInvalidOption)
	}

	return nil
}

// acquire takes exclusive use of the meter state.
func (m *Meter) acquire(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-m.lock:
		return nil
	}
}

func (m *Meter) release() {
	m.lock <- struct{}{}
}

// Reset forgets every reading, e.g. when the sensor is moved to another
// person.
func (m *Meter) Reset(ctx context.Context) error {
	if err := m.acquire(ctx); err != nil {
		return err
	}
	defer m.release()

	m.smooth.reset()
	m.window.reset()

	return nil
}

func (m *Meter) blink() {
	if err := m.indicator.Set(true); err != nil {
		m.log.Warn("could not set indicator", "error", err)
		return
	}
	if err := m.indicator.Set(false); err != nil {
		m.log.Warn("could not clear indicator", "error", err)
	}
}
