// Package sim simulates an analog pulse sensor. It is not a physiological
// model: the wave is a systolic peak and a small dicrotic bump on top of the
// resting output of the sensor, repeated at a fixed heart rate.
package sim

import (
	"math"
	"math/rand"
	"sync"
	"time"
)

// Clock returns the current time.
type Clock interface {
	Now() time.Time
}

type wallClock struct{}

func (wallClock) Now() time.Time { return time.Now() }

// Sensor defines a simulated pulse sensor.
type Sensor struct {
	mu sync.Mutex

	clock Clock
	start time.Time
	rand  *rand.Rand

	bpm       float64
	baseline  int
	offset    int
	amplitude int
	noise     int
	contact   bool
}

// An Option configures a simulated sensor.
type Option func(s *Sensor)

// WithClock sets the clock that drives the wave.
func WithClock(c Clock) Option {
	return func(s *Sensor) {
		s.clock = c
	}
}

// Baseline sets the output with nothing on the sensor, in mV. By default, it
// is 1630mV.
func Baseline(mv int) Option {
	return func(s *Sensor) {
		s.baseline = mv
	}
}

// Amplitude sets the height of the systolic peak, in mV. By default, it is
// 80mV.
func Amplitude(mv int) Option {
	return func(s *Sensor) {
		s.amplitude = mv
	}
}

// Noise adds uniform noise in [-mv, mv] drawn from a source seeded with seed.
func Noise(mv int, seed int64) Option {
	return func(s *Sensor) {
		s.noise = mv
		s.rand = rand.New(rand.NewSource(seed))
	}
}

// New returns a simulated sensor beating at bpm.
func New(bpm float64, options ...Option) *Sensor {
	s := &Sensor{
		clock:     wallClock{},
		rand:      rand.New(rand.NewSource(1)),
		bpm:       bpm,
		baseline:  1630,
		offset:    20,
		amplitude: 80,
		contact:   true,
	}
	for _, opt := range options {
		opt(s)
	}
	s.start = s.clock.Now()

	return s
}

// SetBPM changes the simulated heart rate.
func (s *Sensor) SetBPM(bpm float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bpm = bpm
}

// SetContact places (true) or removes (false) the finger from the sensor.
// Without contact the sensor outputs its baseline.
func (s *Sensor) SetContact(contact bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.contact = contact
}

// Voltage returns the simulated output in mV.
func (s *Sensor) Voltage() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.contact {
		return s.baseline, nil
	}

	t := s.clock.Now().Sub(s.start).Seconds()
	_, phase := math.Modf(t * s.bpm / 60)

	a := float64(s.amplitude)
	wave := a*gauss(phase, 0.2, 0.08) + 0.15*a*gauss(phase, 0.5, 0.06)

	n := 0
	if s.noise > 0 {
		n = s.rand.Intn(2*s.noise+1) - s.noise
	}

	return s.baseline + s.offset + int(math.Round(wave)) + n, nil
}

func gauss(x, mu, sigma float64) float64 {
	z := (x - mu) / sigma
	return math.Exp(-0.5 * z * z)
}
