package dispatch

import "sync"

// history is a fixed-capacity ring of recent alerts. The dispatcher
// writes from the fast loop; the dashboard reads from its own handlers.
type history struct {
	mu    sync.Mutex
	ring  []AlertEvent
	next  int
	count int
}

func newHistory(size int) *history {
	if size < 1 {
		size = 1
	}
	return &history{ring: make([]AlertEvent, size)}
}

func (h *history) add(ev AlertEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.ring[h.next] = ev
	h.next = (h.next + 1) % len(h.ring)
	if h.count < len(h.ring) {
		h.count++
	}
}

// recent returns the stored alerts, newest first.
func (h *history) recent() []AlertEvent {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]AlertEvent, 0, h.count)
	for i := 1; i <= h.count; i++ {
		idx := (h.next - i + len(h.ring)) % len(h.ring)
		out = append(out, h.ring[idx])
	}
	return out
}
