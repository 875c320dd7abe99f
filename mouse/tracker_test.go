package mouse

import (
	"math"
	"testing"
)

func TestDeltaBeforeMovement(t *testing.T) {
	tr := NewTracker()
	dx, dy := tr.Delta()
	if dx != 0 || dy != 0 {
		t.Errorf("Delta() = %d,%d, want 0,0", dx, dy)
	}
	if p := tr.Position(); p != (Position{}) {
		t.Errorf("Position() = %v, want zero", p)
	}
}

func TestDeltaSequence(t *testing.T) {
	moves := []Position{
		{10, 20},
		{15, 18},
		{-40, 300},
		{-40, 300},
		{32767, -32768},
		{-32768, 32767},
	}
	tr := NewTracker()
	prev := Position{}
	for i, p := range moves {
		tr.UpdatePosition(p.X, p.Y)
		dx, dy := tr.Delta()
		wantX, wantY := int(p.X)-int(prev.X), int(p.Y)-int(prev.Y)
		if dx != wantX || dy != wantY {
			t.Errorf("move %d: Delta() = %d,%d, want %d,%d", i, dx, dy, wantX, wantY)
		}
		if got := tr.Position(); got != p {
			t.Errorf("move %d: Position() = %v, want %v", i, got, p)
		}
		prev = p
	}
}

func TestDeltaIsIdempotent(t *testing.T) {
	tr := NewTracker()
	tr.UpdatePosition(5, 5)
	tr.UpdatePosition(8, 1)
	for i := 0; i < 3; i++ {
		dx, dy := tr.Delta()
		if dx != 3 || dy != -4 {
			t.Fatalf("call %d: Delta() = %d,%d, want 3,-4", i, dx, dy)
		}
	}
}

func TestCoord(t *testing.T) {
	tests := []struct {
		in   float64
		want int16
	}{
		{0, 0},
		{12.9, 12},
		{-12.9, -12},
		{-0.5, 0},
		{40000, math.MaxInt16},
		{-40000, math.MinInt16},
		{math.Inf(1), math.MaxInt16},
		{math.Inf(-1), math.MinInt16},
		{math.NaN(), 0},
	}
	for _, tt := range tests {
		if got := Coord(tt.in); got != tt.want {
			t.Errorf("Coord(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
