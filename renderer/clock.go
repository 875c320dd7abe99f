package renderer

// clock turns the surface's running time into shader time, supporting pause
// and reset.
type clock struct {
	origin   float64
	pausedAt float64
	paused   bool
}

func newClock(now float64) clock {
	return clock{origin: now}
}

// at returns elapsed shader time at wall time now.
func (c *clock) at(now float64) float64 {
	if c.paused {
		return c.pausedAt - c.origin
	}
	return now - c.origin
}

// toggle pauses or resumes. Time spent paused is not counted.
func (c *clock) toggle(now float64) {
	if c.paused {
		c.origin += now - c.pausedAt
		c.paused = false
		return
	}
	c.pausedAt = now
	c.paused = true
}

func (c *clock) reset(now float64) {
	c.origin = now
	c.pausedAt = now
}
