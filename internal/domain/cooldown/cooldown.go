// Package cooldown provides named countdown timers with completion callbacks.
//
// Timers are recycled through a free list so a real-time loop that arms and
// expires timers every frame does not allocate.
package cooldown

import "time"

type timer struct {
	name     string
	time     time.Duration
	elapsed  time.Duration
	callback func()
}

// ratio returns the fraction of time remaining
func (t *timer) ratio() float64 {
	if t.time <= 0 {
		return 0
	}
	return 1 - float64(t.elapsed)/float64(t.time)
}

func (t *timer) finished() bool {
	return t.elapsed >= t.time
}

func (t *timer) reset() {
	t.name = ""
	t.time = 0
	t.elapsed = 0
	t.callback = nil
}

// Cooldown is a registry of named timers.
// It is not safe for concurrent use; it belongs to the simulation thread.
type Cooldown struct {
	timers   []*timer
	byName   map[string]*timer
	free     []*timer
	finished []*timer
}

// New creates an empty registry
func New() *Cooldown {
	return &Cooldown{
		byName: make(map[string]*timer),
	}
}

// Timeout arms a timer. If a timer with the same name exists it is reset in
// place: duration and callback are replaced and elapsed time starts over.
// A nil callback is allowed.
func (c *Cooldown) Timeout(name string, d time.Duration, callback func()) {
	if c.byName == nil {
		c.byName = make(map[string]*timer)
	}
	if t, ok := c.byName[name]; ok {
		t.time = d
		t.callback = callback
		t.elapsed = 0
		return
	}

	t := c.acquire()
	t.name = name
	t.time = d
	t.callback = callback
	c.timers = append(c.timers, t)
	c.byName[name] = t
}

// Update advances every live timer by dt. Timers that reach their duration
// fire their callback once and are released in the same pass.
func (c *Cooldown) Update(dt time.Duration) {
	if len(c.timers) == 0 {
		return
	}

	c.finished = c.finished[:0]
	live := c.timers[:0]
	for _, t := range c.timers {
		t.elapsed += dt
		if t.finished() {
			delete(c.byName, t.name)
			c.finished = append(c.finished, t)
			continue
		}
		live = append(live, t)
	}
	for i := len(live); i < len(c.timers); i++ {
		c.timers[i] = nil
	}
	c.timers = live

	// Callbacks run after bookkeeping so they may re-arm their own name.
	for i, t := range c.finished {
		if t.callback != nil {
			t.callback()
		}
		c.release(t)
		c.finished[i] = nil
	}
	c.finished = c.finished[:0]
}

// Has reports whether a timer with the given name is running
func (c *Cooldown) Has(name string) bool {
	_, ok := c.byName[name]
	return ok
}

// Ratio returns the fraction of the named timer still remaining, in [0, 1].
// Unknown names report 0.
func (c *Cooldown) Ratio(name string) float64 {
	t, ok := c.byName[name]
	if !ok {
		return 0
	}
	return t.ratio()
}

// Remaining returns the time left on the named timer, or 0 if absent
func (c *Cooldown) Remaining(name string) time.Duration {
	t, ok := c.byName[name]
	if !ok {
		return 0
	}
	return t.time - t.elapsed
}

// Remove cancels the named timer without firing its callback.
// Removing an unknown name is a no-op.
func (c *Cooldown) Remove(name string) {
	t, ok := c.byName[name]
	if !ok {
		return
	}
	delete(c.byName, name)
	for i, live := range c.timers {
		if live == t {
			copy(c.timers[i:], c.timers[i+1:])
			c.timers[len(c.timers)-1] = nil
			c.timers = c.timers[:len(c.timers)-1]
			break
		}
	}
	c.release(t)
}

// Len returns the number of running timers
func (c *Cooldown) Len() int {
	return len(c.timers)
}

func (c *Cooldown) acquire() *timer {
	if n := len(c.free); n > 0 {
		t := c.free[n-1]
		c.free[n-1] = nil
		c.free = c.free[:n-1]
		return t
	}
	return &timer{}
}

func (c *Cooldown) release(t *timer) {
	t.reset()
	c.free = append(c.free, t)
}
