package mouse

import "math"

// Position is an absolute cursor position in window coordinates.
type Position struct {
	X int16
	Y int16
}

// Tracker remembers the current and previous cursor positions so the
// frame-to-frame movement can be computed. It is owned by the event
// dispatcher and is not safe for concurrent use.
type Tracker struct {
	current  Position
	previous Position
}

func NewTracker() *Tracker {
	return &Tracker{}
}

// UpdatePosition records a new absolute position. Values are stored as
// reported, even when they fall outside the window.
func (t *Tracker) UpdatePosition(x, y int16) {
	t.previous = t.current
	t.current = Position{X: x, Y: y}
}

// Delta returns the movement between the two most recent positions.
// The result is widened to int so a full int16 span never wraps.
func (t *Tracker) Delta() (dx, dy int) {
	return int(t.current.X) - int(t.previous.X), int(t.current.Y) - int(t.previous.Y)
}

func (t *Tracker) Position() Position {
	return t.current
}

// Coord converts a platform cursor coordinate to int16, truncating toward
// zero and saturating at the int16 range. NaN maps to 0.
func Coord(v float64) int16 {
	switch {
	case math.IsNaN(v):
		return 0
	case v >= math.MaxInt16:
		return math.MaxInt16
	case v <= math.MinInt16:
		return math.MinInt16
	}
	return int16(v)
}
