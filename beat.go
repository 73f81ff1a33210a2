package pulse

import (
	"math"
	"time"
)

type beat struct {
	margin int
	// pulse is called once for every counted beat.
	pulse func()
}

// mean returns the integer mean of a burst.
func mean(burst []int) int {
	if len(burst) == 0 {
		return 0
	}

	sum := 0
	for _, v := range burst {
		sum += v
	}

	return sum / len(burst)
}

// count returns the number of beats in a burst of smoothed samples. A beat is
// a peak higher than the burst mean plus the margin, followed by a sample
// below the mean. A peak still open at the end of the burst is counted only
// if at least one full beat was seen before it.
func (b *beat) count(burst []int) int {
	baseline := mean(burst)

	beats := 0
	peak := -1
	for _, v := range burst {
		if v > baseline && v-baseline > b.margin {
			if peak == -1 || v > peak {
				peak = v
			}
		} else if v < baseline && peak != -1 {
			beats++
			b.indicate()
			peak = -1
		}
	}

	if peak != -1 && beats != 0 {
		beats++
		b.indicate()
	}

	return beats
}

func (b *beat) indicate() {
	if b.pulse != nil {
		b.pulse()
	}
}

// perMinute converts the beats counted over elapsed into beats per minute.
func perMinute(beats int, elapsed time.Duration) (int, error) {
	if elapsed <= 0 {
		return 0, ErrNoEstimate
	}

	return int(math.Round(60 / elapsed.Seconds() * float64(beats))), nil
}
