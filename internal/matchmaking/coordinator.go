package matchmaking

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// coordinator coalesces bursts of interest changes into a single evaluation
// pass. Each notify cancels the pending timer and rearms it with the quiet
// period, so evaluation runs once per burst, with the target of the last
// call winning. A nil target means "evaluate every activity".
type coordinator struct {
	mu     sync.Mutex
	quiet  time.Duration
	timer  *time.Timer
	target *uuid.UUID
	gen    uint64
	run    func(target *uuid.UUID)
}

func newCoordinator(quiet time.Duration, run func(target *uuid.UUID)) *coordinator {
	return &coordinator{quiet: quiet, run: run}
}

func (c *coordinator) notify(target *uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.timer != nil {
		c.timer.Stop()
	}
	if target != nil {
		t := *target
		c.target = &t
	} else {
		c.target = nil
	}

	// The generation guards against a timer that fired between Stop and
	// rearm: a superseded firing must not run a second pass.
	c.gen++
	gen := c.gen
	c.timer = time.AfterFunc(c.quiet, func() { c.fire(gen) })
}

func (c *coordinator) fire(gen uint64) {
	c.mu.Lock()
	if gen != c.gen {
		c.mu.Unlock()
		return
	}
	target := c.target
	c.target = nil
	c.timer = nil
	c.mu.Unlock()

	c.run(target)
}

func (c *coordinator) stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.gen++
}
