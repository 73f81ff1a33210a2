package pulse

// smoother is a fixed size moving average over calibrated sensor readings,
// offset by the resting output of the sensor.
type smoother struct {
	buffer []int
	idx    int
	sum    int

	baseline int
	ceiling  int
}

func newSmoother(size, baseline, ceiling int) *smoother {
	return &smoother{
		buffer:   make([]int, size),
		baseline: baseline,
		ceiling:  ceiling,
	}
}

// next adds a reading (in mV) to the window and returns the smoothed pulse
// amplitude. Amplitudes below the baseline or above the ceiling are reported
// as 0.
func (s *smoother) next(v int) int {
	s.sum -= s.buffer[s.idx]
	s.buffer[s.idx] = v
	s.sum += v
	s.idx++
	s.idx %= len(s.buffer)

	out := s.sum/len(s.buffer) - s.baseline
	if out < 0 || out > s.ceiling {
		return 0
	}

	return out
}

func (s *smoother) reset() {
	for i := range s.buffer {
		s.buffer[i] = 0
	}
	s.sum = 0
	s.idx = 0
}
