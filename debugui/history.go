package debugui

// history is a fixed-size ring of samples laid out for ImGui plots.
type history struct {
	samples []float32
	next    int
	filled  int
}

func newHistory(size int) *history {
	return &history{samples: make([]float32, max(size, 1))}
}

func (h *history) push(v float32) {
	h.samples[h.next] = v
	h.next = (h.next + 1) % len(h.samples)
	h.filled = min(h.filled+1, len(h.samples))
}

// average is taken over the samples pushed so far.
func (h *history) average() float32 {
	if h.filled == 0 {
		return 0
	}
	var sum float32
	for i := range h.filled {
		sum += h.samples[i]
	}
	return sum / float32(h.filled)
}
