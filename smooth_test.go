package pulse

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSmoother_RunningSum(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	s := newSmoother(DefaultSmoothingSize, DefaultBaseline, DefaultCeiling)

	for i := 0; i < 1000; i++ {
		out := s.next(DefaultBaseline - 200 + r.Intn(500))

		sum := 0
		for _, v := range s.buffer {
			sum += v
		}
		require.Equal(t, sum, s.sum, "reading %d", i)
		require.GreaterOrEqual(t, out, 0)
		require.LessOrEqual(t, out, DefaultCeiling)
	}
}

func TestSmoother_Clamp(t *testing.T) {
	s := newSmoother(1, DefaultBaseline, DefaultCeiling)

	assert.Equal(t, 0, s.next(1600), "below baseline")
	assert.Equal(t, 70, s.next(1700))
	assert.Equal(t, 150, s.next(1780), "at ceiling")
	assert.Equal(t, 0, s.next(1781), "saturated")
}

func TestSmoother_Average(t *testing.T) {
	s := newSmoother(4, DefaultBaseline, DefaultCeiling)

	s.next(1630)
	s.next(1630)
	s.next(1630)
	assert.Equal(t, 10, s.next(1670))

	// oldest reading (1630) is replaced
	assert.Equal(t, 20, s.next(1670))
	assert.Equal(t, 1, s.idx)
}

func TestSmoother_Flat(t *testing.T) {
	s := newSmoother(8, DefaultBaseline, DefaultCeiling)

	for i := 0; i < 20; i++ {
		assert.Equal(t, 0, s.next(DefaultBaseline))
	}
}
