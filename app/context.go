// Package app runs a user application context inside a platform event loop.
//
// The loop owns at most one State at a time. A State is built when the
// platform reports Resumed and torn down on Suspended or when the loop
// exits. Window events are routed to the State's Context, except for the
// handful the harness handles itself (resize, redraw, close, Escape and
// mouse diagnostics).
package app

import (
	"image"

	"github.com/richinsley/glscaffold/events"
	"github.com/richinsley/glscaffold/graphics"
)

// Context is implemented by applications built on the harness.
type Context interface {
	// Update advances application state by one frame.
	Update()
	// DrawFrame issues the draw calls for one frame. The harness swaps
	// buffers afterwards.
	DrawFrame(surface graphics.Surface)
	// HandleWindowEvent receives every event the harness does not consume.
	HandleWindowEvent(ev events.Event, window graphics.Window)
}

// Constructor builds a Context once its surface is current.
type Constructor func(surface graphics.Surface) (Context, error)

// App pairs a window title with the Context constructor.
type App struct {
	Title string
	New   Constructor
}

// Releaser is implemented by contexts holding resources that must be freed
// while the GL context is still current.
type Releaser interface {
	Release()
}

// FrameSink receives a copy of the frame drawn in single-shot mode.
type FrameSink interface {
	WriteFrame(img *image.RGBA) error
}

// Base provides no-op hooks for embedding.
type Base struct{}

func (Base) Update()                                         {}
func (Base) DrawFrame(graphics.Surface)                      {}
func (Base) HandleWindowEvent(events.Event, graphics.Window) {}
