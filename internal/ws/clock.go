package ws

import (
	"sync"
	"time"
)

// Clock hands out wall-clock milliseconds that strictly increase across
// calls, so two writes landing in the same millisecond still get distinct
// ordered stamps.
type Clock struct {
	mu   sync.Mutex
	last int64
}

func (c *Clock) NowMS() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := time.Now().UnixMilli()
	if now <= c.last {
		now = c.last + 1
	}
	c.last = now
	return now
}
