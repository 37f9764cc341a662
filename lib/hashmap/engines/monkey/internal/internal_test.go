package internal

import "testing"

func TestProbeHistogram(t *testing.T) {
	h := NewProbeHistogram(50)

	if h.MaxDepthInUse() != 0 {
		t.Errorf("empty histogram: MaxDepthInUse() = %d, want 0", h.MaxDepthInUse())
	}

	h.Add(1)
	h.Add(1)
	h.Add(3)
	if h.MaxDepthInUse() != 3 {
		t.Errorf("MaxDepthInUse() = %d, want 3", h.MaxDepthInUse())
	}
	if h.Count(1) != 2 || h.Count(3) != 1 {
		t.Errorf("counts = (%d, %d), want (2, 1)", h.Count(1), h.Count(3))
	}
	if h.Total() != 3 {
		t.Errorf("Total() = %d, want 3", h.Total())
	}

	// Removing below the top does not move the maximum.
	h.Remove(1)
	if h.MaxDepthInUse() != 3 {
		t.Errorf("MaxDepthInUse() = %d after removing depth 1, want 3", h.MaxDepthInUse())
	}

	// Emptying the top bucket scans down to the next occupied one.
	h.Remove(3)
	if h.MaxDepthInUse() != 1 {
		t.Errorf("MaxDepthInUse() = %d after removing depth 3, want 1", h.MaxDepthInUse())
	}

	h.Remove(1)
	if h.MaxDepthInUse() != 0 {
		t.Errorf("MaxDepthInUse() = %d after removing everything, want 0", h.MaxDepthInUse())
	}
}

func TestProbeHistogramReset(t *testing.T) {
	h := NewProbeHistogram(10)
	for d := 1; d <= 10; d++ {
		h.Add(d)
	}
	h.Reset()

	if h.MaxDepthInUse() != 0 || h.Total() != 0 {
		t.Errorf("after Reset: MaxDepthInUse() = %d, Total() = %d, want 0, 0",
			h.MaxDepthInUse(), h.Total())
	}
	for d := 1; d <= 10; d++ {
		if h.Count(d) != 0 {
			t.Errorf("Count(%d) = %d after Reset, want 0", d, h.Count(d))
		}
	}
}

func TestSlotLive(t *testing.T) {
	s := &Slot[int64, int64]{Home: 7}
	if s.Live() {
		t.Errorf("fresh slot reported live")
	}

	key, value := int64(1), int64(2)
	s.Value.Store(&value)
	s.Key.Store(&key)
	if !s.Live() {
		t.Errorf("published slot reported not live")
	}

	s.Key.Store(nil)
	if s.Live() {
		t.Errorf("cleared slot reported live")
	}
	if s.Home != 7 {
		t.Errorf("Home changed: %d", s.Home)
	}
}
