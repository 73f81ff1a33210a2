package pulse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBPMWindow_Average(t *testing.T) {
	w := newBPMWindow(4)
	for _, v := range []int{45, 50, 48, 52} {
		w.push(v)
	}

	assert.Equal(t, 195, w.sum)
	assert.Equal(t, 4, w.nonZero())

	avg, ok := w.average()
	assert.True(t, ok)
	assert.Equal(t, 48, avg)
}

func TestBPMWindow_Rolling(t *testing.T) {
	w := newBPMWindow(4)
	for _, v := range []int{45, 50, 48, 52, 60} {
		w.push(v)
	}

	assert.Equal(t, []int{60, 50, 48, 52}, w.slots)
	assert.Equal(t, 210, w.sum)
	avg, _ := w.average()
	assert.Equal(t, 52, avg)
}

func TestBPMWindow_EmptySlotsDoNotDilute(t *testing.T) {
	w := newBPMWindow(4)
	w.push(60)
	w.push(80)

	avg, ok := w.average()
	assert.True(t, ok)
	assert.Equal(t, 70, avg)
}

func TestBPMWindow_Reset(t *testing.T) {
	w := newBPMWindow(4)
	w.push(60)
	w.push(70)
	w.reset()

	assert.Equal(t, []int{0, 0, 0, 0}, w.slots)
	assert.Zero(t, w.sum)
	_, ok := w.average()
	assert.False(t, ok)

	w.push(75)
	assert.Equal(t, 1, w.nonZero())
	avg, ok := w.average()
	assert.True(t, ok)
	assert.Equal(t, 75, avg)
}
