package pulse

import (
	"log/slog"
	"time"
)

// An Option configures a meter. It returns an Option that restores the
// previous value.
type Option func(m *Meter) Option

// options applies every option and returns the restoring Option of the last
// one.
func (m *Meter) options(options ...Option) Option {
	var old Option
	for _, opt := range options {
		old = opt(m)
	}

	return old
}

// Baseline sets the output of the sensor at rest, in mV. By default, it is
// 1630mV.
func Baseline(mv int) Option {
	return func(m *Meter) Option {
		old := m.baseline
		m.baseline = mv
		return Baseline(old)
	}
}

// Ceiling sets the highest valid pulse amplitude above the baseline, in mV.
// Larger amplitudes are treated as saturation and read as 0. By default, it
// is 150mV.
func Ceiling(mv int) Option {
	return func(m *Meter) Option {
		old := m.ceiling
		m.ceiling = mv
		return Ceiling(old)
	}
}

// SmoothingSize sets how many readings are averaged into a sample.
func SmoothingSize(n int) Option {
	return func(m *Meter) Option {
		old := m.smoothingSize
		m.smoothingSize = n
		return SmoothingSize(old)
	}
}

// Oversample sets how many sensor readings are taken for every sample. By
// default, the whole smoothing window is refreshed.
//
// The readings of one sample should span a small part of a heartbeat. With
// a sensor that takes 1ms or more per reading, use about 16ms worth of
// readings for both Oversample and SmoothingSize.
func Oversample(n int) Option {
	return func(m *Meter) Option {
		old := m.oversample
		m.oversample = n
		return Oversample(old)
	}
}

// BurstLength sets the range of the random number of samples taken to
// estimate one raw BPM value.
func BurstLength(min, max int) Option {
	return func(m *Meter) Option {
		oldMin, oldMax := m.burstMin, m.burstMax
		m.burstMin, m.burstMax = min, max
		return BurstLength(oldMin, oldMax)
	}
}

// SampleDelay sets the random pause between samples, as a number of ticks in
// [min, max].
func SampleDelay(tick time.Duration, min, max int) Option {
	return func(m *Meter) Option {
		oldTick, oldMin, oldMax := m.tick, m.delayMin, m.delayMax
		m.tick, m.delayMin, m.delayMax = tick, min, max
		return SampleDelay(oldTick, oldMin, oldMax)
	}
}

// Margin sets how far above the burst mean a sample must be to count as a
// peak.
func Margin(mv int) Option {
	return func(m *Meter) Option {
		old := m.margin
		m.margin = mv
		return Margin(old)
	}
}

// Thresholds sets the BPM under which a reading is measured again (retry)
// and the BPM under which a repeated reading discards all previous readings
// (reset).
func Thresholds(retry, reset int) Option {
	return func(m *Meter) Option {
		oldRetry, oldReset := m.retryBelow, m.resetBelow
		m.retryBelow, m.resetBelow = retry, reset
		return Thresholds(oldRetry, oldReset)
	}
}

// MaxRetries sets how many bursts are measured again after a low reading
// before giving up with ErrNotDetected.
func MaxRetries(n int) Option {
	return func(m *Meter) Option {
		old := m.maxRetries
		m.maxRetries = n
		return MaxRetries(old)
	}
}

// WindowSize sets how many raw BPM readings are averaged.
func WindowSize(n int) Option {
	return func(m *Meter) Option {
		old := m.windowSize
		m.windowSize = n
		return WindowSize(old)
	}
}

// WithIndicator sets the indicator pulsed on every beat.
func WithIndicator(i Indicator) Option {
	return func(m *Meter) Option {
		old := m.indicator
		m.indicator = i
		return WithIndicator(old)
	}
}

// WithClock replaces the wall clock.
func WithClock(c Clock) Option {
	return func(m *Meter) Option {
		old := m.clock
		m.clock = c
		return WithClock(old)
	}
}

// WithRand replaces the random source.
func WithRand(r Rand) Option {
	return func(m *Meter) Option {
		old := m.rand
		m.rand = r
		return WithRand(old)
	}
}

// WithLogger sets the logger. By default, nothing is logged.
func WithLogger(l *slog.Logger) Option {
	return func(m *Meter) Option {
		old := m.log
		m.log = l
		return WithLogger(old)
	}
}
