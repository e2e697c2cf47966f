// Package loading provides the rendezvous that dismisses the loading screen
// once every named resource has reported ready.
package loading

import "sync"

// Join fires a callback once every named signal has arrived.
type Join struct {
	mu      sync.Mutex
	pending map[string]bool
	onReady func()
	fired   bool
}

// NewJoin waits for each of names. With no names it is ready immediately
// but onReady still runs only on the first Signal.
func NewJoin(onReady func(), names ...string) *Join {
	pending := make(map[string]bool, len(names))
	for _, n := range names {
		pending[n] = true
	}
	return &Join{pending: pending, onReady: onReady}
}

// Signal marks name as arrived. Repeated or unknown names are ignored.
// When the last pending name arrives, onReady runs on the caller's
// goroutine, exactly once.
func (j *Join) Signal(name string) {
	j.mu.Lock()
	delete(j.pending, name)
	fire := len(j.pending) == 0 && !j.fired
	if fire {
		j.fired = true
	}
	j.mu.Unlock()

	if fire && j.onReady != nil {
		j.onReady()
	}
}

// Ready reports whether onReady has fired.
func (j *Join) Ready() bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.fired
}

// Pending returns the names still outstanding.
func (j *Join) Pending() []string {
	j.mu.Lock()
	defer j.mu.Unlock()
	out := make([]string, 0, len(j.pending))
	for n := range j.pending {
		out = append(out, n)
	}
	return out
}
