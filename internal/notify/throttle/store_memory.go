package throttle

import (
	"context"
	"sync"
	"time"
)

// Memory implements Limiter with in-process sliding windows, one per key.
// Suitable for a single instance; use the Redis limiter when sends are
// distributed.
type Memory struct {
	mu      sync.Mutex
	windows map[string]*slidingWindow
	now     func() time.Time
}

// slidingWindow tracks send timestamps inside the quota window.
type slidingWindow struct {
	timestamps []time.Time
	window     time.Duration
}

// NewMemory creates an in-memory limiter.
func NewMemory() *Memory {
	return &Memory{windows: make(map[string]*slidingWindow), now: time.Now}
}

// NewMemoryWithClock creates an in-memory limiter with an injected clock for
// deterministic tests.
func NewMemoryWithClock(now func() time.Time) *Memory {
	return &Memory{windows: make(map[string]*slidingWindow), now: now}
}

// Allow checks the quota for key and records the send when permitted.
func (m *Memory) Allow(_ context.Context, key string, limit int, window time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	sw := m.windows[key]
	if sw == nil {
		sw = &slidingWindow{window: window}
		m.windows[key] = sw
	}
	sw.window = window
	sw.cleanup(now)

	if len(sw.timestamps) >= limit {
		return false, nil
	}
	sw.timestamps = append(sw.timestamps, now)
	return true, nil
}

// cleanup removes timestamps that fell out of the window.
func (sw *slidingWindow) cleanup(now time.Time) {
	cutoff := now.Add(-sw.window)
	i := 0
	for ; i < len(sw.timestamps); i++ {
		if sw.timestamps[i].After(cutoff) {
			break
		}
	}
	sw.timestamps = sw.timestamps[i:]
}
