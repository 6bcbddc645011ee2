// Package throttle enforces per-channel send ceilings with a sliding window,
// preventing the boundary bursts a fixed window would allow.
package throttle

import (
	"context"
	"time"
)

// Limiter answers whether one more send on a channel fits under its quota,
// counting the send if it does.
type Limiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}
