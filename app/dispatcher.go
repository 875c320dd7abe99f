package app

import (
	"fmt"
	"io"

	"github.com/kmcsr/go-logger"
	"github.com/richinsley/glscaffold/events"
	"github.com/richinsley/glscaffold/graphics"
	"github.com/richinsley/glscaffold/mouse"
)

// Dispatcher is the events.Handler driving an App. It is Suspended until the
// loop reports Resumed and Active while it holds a State.
type Dispatcher struct {
	app   App
	cfg   RunConfig
	mouse *mouse.Tracker
	log   logger.Logger
	out   io.Writer

	state *State
	err   error
}

var _ events.Handler = (*Dispatcher)(nil)

func NewDispatcher(application App, cfg RunConfig, tracker *mouse.Tracker) *Dispatcher {
	cfg = cfg.withDefaults()
	return &Dispatcher{
		app:   application,
		cfg:   cfg,
		mouse: tracker,
		log:   cfg.Logger,
		out:   cfg.Output,
	}
}

// Active reports whether a State is currently held.
func (d *Dispatcher) Active() bool {
	return d.state != nil
}

// State returns the current State, or nil while suspended.
func (d *Dispatcher) State() *State {
	return d.state
}

// Err returns the first fatal error seen by the dispatcher.
func (d *Dispatcher) Err() error {
	return d.err
}

func (d *Dispatcher) fail(l events.Loop, err error) {
	if d.err == nil {
		d.err = err
	}
	d.log.Errorf("%v", err)
	l.Exit()
}

func (d *Dispatcher) Resumed(l events.Loop) {
	if d.state != nil {
		d.log.Warnf("Resumed while active, dropping previous window")
		d.dropState()
	}

	state, err := NewState(l, d.app, d.cfg)
	if err != nil {
		d.fail(l, err)
		return
	}
	d.state = state
	w, h := state.Surface.FramebufferSize()
	d.log.Debugf("Resumed: %q %dx%d on %s", d.app.Title, w, h, state.Surface.API())

	if !d.cfg.Visible && d.cfg.ClosePromptly {
		l.Exit()
	}
}

func (d *Dispatcher) Suspended(l events.Loop) {
	d.log.Debugf("Suspended")
	d.dropState()
}

func (d *Dispatcher) Exiting(l events.Loop) {
	d.dropState()
}

func (d *Dispatcher) AboutToWait(l events.Loop) {
	if d.state != nil {
		d.state.Window.RequestRedraw()
	}
}

func (d *Dispatcher) WindowEvent(l events.Loop, ev events.Event) {
	switch ev := ev.(type) {
	case events.Resized:
		if d.state != nil {
			d.state.Surface.Resize(ev.Width, ev.Height)
		}
	case events.RedrawRequested:
		if d.state != nil {
			d.redraw(l)
		}
	case events.CloseRequested:
		l.Exit()
	case events.KeyboardInput:
		if ev.Key == events.KeyEscape && ev.State == events.Pressed {
			l.Exit()
			return
		}
		d.forward(ev)
	case events.CursorMoved:
		d.mouse.UpdatePosition(mouse.Coord(ev.X), mouse.Coord(ev.Y))
		dx, dy := d.mouse.Delta()
		pos := d.mouse.Position()
		fmt.Fprintf(d.out, "Delta mouse position: %dx%d\n", dx, dy)
		fmt.Fprintf(d.out, "Mouse position: %dx%d\n", pos.X, pos.Y)
	case events.MouseInput:
		if ev.State == events.Pressed {
			fmt.Fprintf(d.out, "Mouse clicked: %v\n", ev.Button)
		}
	default:
		d.forward(ev)
	}
}

func (d *Dispatcher) redraw(l events.Loop) {
	s := d.state
	s.Context.Update()
	s.Context.DrawFrame(s.Surface)
	if d.cfg.ClosePromptly && d.cfg.Capture != nil {
		if err := d.capture(s.Surface); err != nil {
			d.fail(l, err)
			return
		}
	}
	s.Surface.SwapBuffers()
	if d.cfg.ClosePromptly {
		l.Exit()
	}
}

func (d *Dispatcher) capture(surface graphics.Surface) error {
	img, err := surface.ReadPixels()
	if err != nil {
		return fmt.Errorf("failed to read frame: %w", err)
	}
	if err := d.cfg.Capture.WriteFrame(img); err != nil {
		return fmt.Errorf("failed to write frame: %w", err)
	}
	return nil
}

func (d *Dispatcher) forward(ev events.Event) {
	if d.state != nil {
		d.state.Context.HandleWindowEvent(ev, d.state.Window)
	}
}

func (d *Dispatcher) dropState() {
	if d.state != nil {
		d.state.Destroy()
		d.state = nil
	}
}
