// Package sim is the deterministic heist simulation: a fixed-step loop in
// which the live player acts alongside clones replaying earlier attempts,
// while plates, doors, loot and sensors react on every tick.
//
// Nothing in this package reads the wall clock or a random source. Given
// the same level, config and input frames, every run produces the same
// sequence of snapshots.
package sim

// TickClock counts the ticks of one loop attempt.
type TickClock struct {
	tick     int
	duration int
	tps      int
}

// NewTickClock creates a clock for loops of durationTicks at tps ticks per second.
func NewTickClock(durationTicks, tps int) *TickClock {
	if tps <= 0 {
		tps = 1
	}
	return &TickClock{duration: durationTicks, tps: tps}
}

// Tick advances the counter. It returns true, and rewinds to 0, on the tick
// the loop runs out.
func (c *TickClock) Tick() bool {
	c.tick++
	if c.tick >= c.duration {
		c.tick = 0
		return true
	}
	return false
}

// CurrentTick returns the tick within the current attempt.
func (c *TickClock) CurrentTick() int {
	return c.tick
}

// DurationTicks returns the loop length in ticks.
func (c *TickClock) DurationTicks() int {
	return c.duration
}

// TimeRemainingSeconds returns the simulated time left in the loop.
func (c *TickClock) TimeRemainingSeconds() float64 {
	rem := float64(c.duration-c.tick) / float64(c.tps)
	if rem < 0 {
		return 0
	}
	return rem
}

// Reset rewinds the clock to the start of a loop.
func (c *TickClock) Reset() {
	c.tick = 0
}
