package pulse

// bpmWindow stores the last few raw BPM readings. Empty slots hold 0 and are
// not counted by average.
type bpmWindow struct {
	slots []int
	idx   int
	sum   int
}

func newBPMWindow(size int) *bpmWindow {
	return &bpmWindow{
		slots: make([]int, size),
	}
}

// push replaces the oldest reading with n.
func (w *bpmWindow) push(n int) {
	w.sum -= w.slots[w.idx]
	w.slots[w.idx] = n
	w.sum += n
	w.idx++
	w.idx %= len(w.slots)
}

// reset discards every reading. The cursor is left where it is.
func (w *bpmWindow) reset() {
	for i := range w.slots {
		w.slots[i] = 0
	}
	w.sum = 0
}

func (w *bpmWindow) nonZero() int {
	n := 0
	for _, v := range w.slots {
		if v != 0 {
			n++
		}
	}
	return n
}

// average returns the mean of the non-empty slots. ok is false when the
// window holds no reading.
func (w *bpmWindow) average() (avg int, ok bool) {
	n := w.nonZero()
	if n == 0 {
		return 0, false
	}
	return w.sum / n, true
}
