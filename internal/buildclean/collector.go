package buildclean

import (
	"context"
	"sync"
	"time"
)

// DefaultProgressInterval is the default interval for progress updates.
const DefaultProgressInterval = 500 * time.Millisecond

// collector tallies scan counters from concurrent walk and measure callbacks.
// Records themselves are never stored here.
type collector struct {
	mu         sync.Mutex // Protect concurrent access
	dirs       int64
	candidates int64
	bytes      int64
	errorCount int64
}

// addDir counts one visited directory.
func (c *collector) addDir() {
	if c == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.dirs++
}

// addCandidate counts one classified project.
func (c *collector) addCandidate() {
	if c == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.candidates++
}

// addBytes accumulates measured bytes for progress reporting.
func (c *collector) addBytes(n int64) {
	if c == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.bytes += n
}

// addError counts a candidate dropped during measurement.
func (c *collector) addError() {
	if c == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.errorCount++
}

// snapshot returns the current counters.
func (c *collector) snapshot() (dirs, candidates, bytes, errs int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.dirs, c.candidates, c.bytes, c.errorCount
}

// startProgressReporter invokes hook(dirs, bytes) on each tick until ctx is done.
//
//nolint:varnamelen // c is idiomatic for collector
func startProgressReporter(ctx context.Context, c *collector, hook func(int64, int64), interval time.Duration) {
	if hook == nil {
		return
	}

	if interval <= 0 {
		interval = DefaultProgressInterval
	}

	ticker := time.NewTicker(interval)

	go func() {
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				dirs, _, bytes, _ := c.snapshot()
				hook(dirs, bytes)
			case <-ctx.Done():
				return
			}
		}
	}()
}
