package pulse

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Sample returns the current smoothed pulse amplitude, in mV above the
// baseline.
func (m *Meter) Sample(ctx context.Context) (int, error) {
	if err := m.acquire(ctx); err != nil {
		return 0, err
	}
	defer m.release()

	return m.sample()
}

func (m *Meter) sample() (int, error) {
	var out int
	for i := 0; i < m.oversample; i++ {
		v, err := m.sensor.Voltage()
		if err != nil {
			return 0, fmt.Errorf("pulse: could not read sensor: %w", err)
		}
		out = m.smooth.next(v)
	}

	return out, nil
}

// RawBPM measures a single burst of samples and returns the beats per minute
// found in it. A burst without beats returns 0. If the clock does not advance
// during the burst, it returns 0 with an ErrNoEstimate error.
func (m *Meter) RawBPM(ctx context.Context) (int, error) {
	if err := m.acquire(ctx); err != nil {
		return 0, err
	}
	defer m.release()

	return m.rawBPM(ctx)
}

func (m *Meter) rawBPM(ctx context.Context) (int, error) {
	burst := make([]int, m.between(m.burstMin, m.burstMax))

	start := m.clock.Now()
	for i := range burst {
		v, err := m.sample()
		if err != nil {
			return 0, err
		}
		burst[i] = v

		delay := m.tick * time.Duration(m.between(m.delayMin, m.delayMax))
		if err := m.clock.Sleep(ctx, delay); err != nil {
			return 0, err
		}
	}
	elapsed := m.clock.Now().Sub(start)

	beats := m.beat.count(burst)
	bpm, err := perMinute(beats, elapsed)
	if err != nil {
		return 0, fmt.Errorf("pulse: burst of %d samples took %v: %w", len(burst), elapsed, err)
	}
	m.log.Debug("burst", "samples", len(burst), "elapsed", elapsed, "beats", beats, "bpm", bpm)

	return bpm, nil
}

// between returns a random integer in [lo, hi].
func (m *Meter) between(lo, hi int) int {
	return lo + m.rand.Intn(hi-lo+1)
}

// HeartRate measures a new raw BPM reading, adds it to the averaging window
// and returns the average of the window.
//
// Readings under 40 BPM are measured again until a reading of at least 30
// BPM is found. A reading under 30 BPM while retrying is taken as lost
// contact and discards every previous reading. If no acceptable reading is
// found after MaxRetries bursts, it returns 0 with an ErrNotDetected error.
func (m *Meter) HeartRate(ctx context.Context) (int, error) {
	if err := m.acquire(ctx); err != nil {
		return 0, err
	}
	defer m.release()

	return m.heartRate(ctx)
}

func (m *Meter) heartRate(ctx context.Context) (int, error) {
	bpm, err := m.detect(ctx)
	if err != nil && !errors.Is(err, ErrNoEstimate) {
		return 0, err
	}

	if err != nil || bpm < m.retryBelow {
		bpm, err = m.retry(ctx)
		if err != nil {
			return 0, err
		}
	}

	m.window.push(bpm)

	avg, ok := m.window.average()
	if !ok {
		return 0, fmt.Errorf("pulse: could not average heart rate: %w", ErrNoEstimate)
	}
	m.log.Debug("heart rate", "raw", bpm, "average", avg)

	return avg, nil
}

// retry measures until a reading reaches the reset threshold.
func (m *Meter) retry(ctx context.Context) (int, error) {
	for i := 0; i < m.maxRetries; i++ {
		bpm, err := m.detect(ctx)
		if errors.Is(err, ErrNoEstimate) {
			m.log.Debug("retry without estimate", "attempt", i+1, "error", err)
			continue
		} else if err != nil {
			return 0, err
		}
		m.log.Debug("retry", "attempt", i+1, "bpm", bpm)

		if bpm >= m.resetBelow {
			return bpm, nil
		}
		if m.window.sum != 0 {
			m.window.reset()
			m.log.Debug("window reset", "bpm", bpm)
		}
	}

	return 0, fmt.Errorf("pulse: could not get heart rate after %d retries: %w", m.maxRetries, ErrNotDetected)
}

// Run measures the heart rate until ctx is done and calls report with every
// new average. When no heart rate is detected, it reports 0; bursts without
// an estimate are skipped. It returns the first error that is not caused by
// the signal itself.
func (m *Meter) Run(ctx context.Context, report func(bpm int)) error {
	for {
		bpm, err := m.HeartRate(ctx)
		switch {
		case errors.Is(err, ErrNotDetected):
			m.log.Info("no heart rate", "error", err)
			report(0)
		case errors.Is(err, ErrNoEstimate):
			m.log.Info("no heart rate", "error", err)
		case err != nil:
			return err
		default:
			report(bpm)
		}
	}
}
