package app

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/richinsley/glscaffold/events"
	"github.com/richinsley/glscaffold/graphics"
)

func TestRunOnceHiddenDoesNotDraw(t *testing.T) {
	var built []*fakeContext
	loop := &fakeLoop{maxCycles: 10}
	if err := RunOnce(loop, fakeApp(&built), false, WithOutput(io.Discard)); err != nil {
		t.Fatalf("RunOnce: %v", err)
	}
	if loop.resumes != 1 {
		t.Errorf("resumes = %d, want 1", loop.resumes)
	}
	if len(built) != 1 {
		t.Fatalf("contexts built = %d, want 1", len(built))
	}
	if n := built[0].count("draw"); n != 0 {
		t.Errorf("draws = %d, want 0", n)
	}
	if !loop.exit {
		t.Error("loop was not told to exit")
	}
	if !built[0].released || !loop.window().destroyed {
		t.Error("state was not torn down on exit")
	}
	attrs := loop.attrs[0]
	if attrs.Width != graphics.DefaultWidth || attrs.Height != graphics.DefaultHeight {
		t.Errorf("hidden window size = %dx%d, want %dx%d", attrs.Width, attrs.Height, graphics.DefaultWidth, graphics.DefaultHeight)
	}
}

func TestRunOnceVisibleDrawsExactlyOnce(t *testing.T) {
	var built []*fakeContext
	loop := &fakeLoop{maxCycles: 10}
	if err := RunOnce(loop, fakeApp(&built), true, WithOutput(io.Discard)); err != nil {
		t.Fatalf("RunOnce: %v", err)
	}
	c := built[0]
	want := []string{"update", "draw"}
	if len(c.calls) != len(want) {
		t.Fatalf("calls = %v, want %v", c.calls, want)
	}
	for i := range want {
		if c.calls[i] != want[i] {
			t.Errorf("calls[%d] = %q, want %q", i, c.calls[i], want[i])
		}
	}
	if s := loop.window().surface; s.swaps != 1 {
		t.Errorf("swaps = %d, want 1", s.swaps)
	}
}

func TestRunOnceCapturesFrame(t *testing.T) {
	var built []*fakeContext
	sink := &fakeSink{}
	loop := &fakeLoop{maxCycles: 10}
	err := RunOnce(loop, fakeApp(&built), true, WithOutput(io.Discard), WithCapture(sink), WithSize(64, 32))
	if err != nil {
		t.Fatalf("RunOnce: %v", err)
	}
	if len(sink.frames) != 1 {
		t.Fatalf("frames = %d, want 1", len(sink.frames))
	}
	if b := sink.frames[0].Bounds(); b.Dx() != 64 || b.Dy() != 32 {
		t.Errorf("frame bounds = %v, want 64x32", b)
	}
}

func TestRunOnceCaptureFailure(t *testing.T) {
	var built []*fakeContext
	loop := &fakeLoop{maxCycles: 10}
	err := RunOnce(loop, fakeApp(&built), true, WithOutput(io.Discard), WithCapture(&fakeSink{err: errBoom}))
	if !errors.Is(err, errBoom) {
		t.Fatalf("RunOnce error = %v, want %v", err, errBoom)
	}
	if s := loop.window().surface; s.swaps != 0 {
		t.Errorf("swaps = %d, want 0 after failed capture", s.swaps)
	}
}

func TestRunLoopContinuousRedraws(t *testing.T) {
	var built []*fakeContext
	loop := &fakeLoop{maxCycles: 5}
	if err := RunLoop(loop, fakeApp(&built), WithOutput(io.Discard)); err != nil {
		t.Fatalf("RunLoop: %v", err)
	}
	if n := built[0].count("draw"); n != 5 {
		t.Errorf("draws = %d, want 5", n)
	}
	if !loop.attrs[0].Visible {
		t.Error("continuous mode window is hidden")
	}
}

func TestRunLoopCloseRequested(t *testing.T) {
	var built []*fakeContext
	loop := &fakeLoop{
		script:    []events.Event{events.CloseRequested{}, events.RedrawRequested{}},
		maxCycles: 5,
	}
	if err := RunLoop(loop, fakeApp(&built), WithOutput(io.Discard)); err != nil {
		t.Fatalf("RunLoop: %v", err)
	}
	if loop.delivered != 1 {
		t.Errorf("delivered = %d, want 1", loop.delivered)
	}
	if n := built[0].count("draw"); n != 0 {
		t.Errorf("draws = %d, want 0", n)
	}
	if w := loop.window(); w.redraws != 0 {
		t.Errorf("redraw requests = %d, want 0", w.redraws)
	}
}

func TestRunLoopEscape(t *testing.T) {
	var built []*fakeContext
	loop := &fakeLoop{
		script: []events.Event{
			events.KeyboardInput{Key: events.KeyEscape, State: events.Pressed},
			events.Focused{Focused: true},
		},
		maxCycles: 5,
	}
	if err := RunLoop(loop, fakeApp(&built), WithOutput(io.Discard)); err != nil {
		t.Fatalf("RunLoop: %v", err)
	}
	if loop.delivered != 1 {
		t.Errorf("delivered = %d, want 1", loop.delivered)
	}
	if len(built[0].events) != 0 {
		t.Errorf("forwarded %v, want nothing", built[0].events)
	}
}

func TestRunConstructorFailure(t *testing.T) {
	loop := &fakeLoop{maxCycles: 5}
	application := App{
		Title: "broken",
		New: func(graphics.Surface) (Context, error) {
			return nil, errBoom
		},
	}
	err := RunLoop(loop, application, WithOutput(io.Discard))
	if !errors.Is(err, errBoom) {
		t.Fatalf("RunLoop error = %v, want %v", err, errBoom)
	}
	if !loop.window().destroyed {
		t.Error("window not destroyed after constructor failure")
	}
}

func TestRunWindowFailure(t *testing.T) {
	var built []*fakeContext
	loop := &fakeLoop{maxCycles: 5, createErr: errBoom}
	err := RunLoop(loop, fakeApp(&built), WithOutput(io.Discard))
	if !errors.Is(err, errBoom) {
		t.Fatalf("RunLoop error = %v, want %v", err, errBoom)
	}
	if len(built) != 0 {
		t.Errorf("contexts built = %d, want 0", len(built))
	}
}

func TestRunUsesAttempts(t *testing.T) {
	var built []*fakeContext
	loop := &fakeLoop{}
	err := RunOnce(loop, fakeApp(&built), false, WithOutput(&bytes.Buffer{}), WithAttempts(graphics.GLESAttempts()...))
	if err != nil {
		t.Fatalf("RunOnce: %v", err)
	}
	got := loop.attrs[0].Attempts
	if len(got) != 1 || got[0].API != graphics.OpenGLES {
		t.Errorf("attempts = %v, want GLES only", got)
	}
}
