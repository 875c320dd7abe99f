package app

import (
	"errors"
	"image"

	"github.com/richinsley/glscaffold/events"
	"github.com/richinsley/glscaffold/graphics"
)

// fakeLoop mimics a desktop event loop: Resumed first, then scripted events,
// then idle cycles that deliver requested redraws until exit or maxCycles.
type fakeLoop struct {
	script    []events.Event
	maxCycles int
	createErr error

	exit      bool
	resumes   int
	exits     int
	delivered int
	windows   []*fakeWindow
	attrs     []graphics.WindowAttributes
}

func (l *fakeLoop) Exit()         { l.exit = true }
func (l *fakeLoop) Exiting() bool { return l.exit }

func (l *fakeLoop) CreateWindow(attrs graphics.WindowAttributes) (graphics.Window, graphics.Surface, error) {
	l.attrs = append(l.attrs, attrs)
	if l.createErr != nil {
		return nil, nil, l.createErr
	}
	w := &fakeWindow{title: attrs.Title, visible: attrs.Visible}
	w.surface = &fakeSurface{width: attrs.Width, height: attrs.Height}
	if len(attrs.Attempts) > 0 {
		w.surface.api = attrs.Attempts[0].API
	}
	l.windows = append(l.windows, w)
	return w, w.surface, nil
}

func (l *fakeLoop) window() *fakeWindow {
	if len(l.windows) == 0 {
		return nil
	}
	return l.windows[len(l.windows)-1]
}

func (l *fakeLoop) Run(h events.Handler) error {
	l.resumes++
	h.Resumed(l)
	for _, ev := range l.script {
		if l.exit {
			break
		}
		l.delivered++
		h.WindowEvent(l, ev)
	}
	for i := 0; i < l.maxCycles && !l.exit; i++ {
		h.AboutToWait(l)
		if w := l.window(); w != nil && w.redrawPending {
			w.redrawPending = false
			l.delivered++
			h.WindowEvent(l, events.RedrawRequested{})
		}
	}
	l.exits++
	h.Exiting(l)
	return nil
}

type fakeWindow struct {
	title         string
	visible       bool
	redrawPending bool
	redraws       int
	destroyed     bool
	surface       *fakeSurface
}

func (w *fakeWindow) Title() string         { return w.title }
func (w *fakeWindow) SetTitle(title string) { w.title = title }
func (w *fakeWindow) Size() (int, int)      { return w.surface.width, w.surface.height }
func (w *fakeWindow) Visible() bool         { return w.visible }
func (w *fakeWindow) Destroy()              { w.destroyed = true }

func (w *fakeWindow) RequestRedraw() {
	w.redraws++
	w.redrawPending = true
}

type fakeSurface struct {
	width, height int
	api           graphics.API
	swaps         int
	current       int
	readErr       error
}

func (s *fakeSurface) MakeCurrent()                { s.current++ }
func (s *fakeSurface) SwapBuffers()                { s.swaps++ }
func (s *fakeSurface) FramebufferSize() (int, int) { return s.width, s.height }
func (s *fakeSurface) Resize(width, height int)    { s.width, s.height = width, height }
func (s *fakeSurface) API() graphics.API           { return s.api }
func (s *fakeSurface) Time() float64               { return 0 }

func (s *fakeSurface) ReadPixels() (*image.RGBA, error) {
	if s.readErr != nil {
		return nil, s.readErr
	}
	return image.NewRGBA(image.Rect(0, 0, s.width, s.height)), nil
}

// fakeContext records the order of calls it receives.
type fakeContext struct {
	calls    []string
	events   []events.Event
	windows  []graphics.Window
	released bool
}

func (c *fakeContext) Update() { c.calls = append(c.calls, "update") }

func (c *fakeContext) DrawFrame(graphics.Surface) { c.calls = append(c.calls, "draw") }

func (c *fakeContext) HandleWindowEvent(ev events.Event, w graphics.Window) {
	c.events = append(c.events, ev)
	c.windows = append(c.windows, w)
}

func (c *fakeContext) Release() { c.released = true }

func (c *fakeContext) count(call string) int {
	n := 0
	for _, c := range c.calls {
		if c == call {
			n++
		}
	}
	return n
}

// fakeApp returns an App whose constructed contexts are appended to *built.
func fakeApp(built *[]*fakeContext) App {
	return App{
		Title: "test",
		New: func(graphics.Surface) (Context, error) {
			c := &fakeContext{}
			*built = append(*built, c)
			return c, nil
		},
	}
}

type fakeSink struct {
	frames []*image.RGBA
	err    error
}

func (s *fakeSink) WriteFrame(img *image.RGBA) error {
	if s.err != nil {
		return s.err
	}
	s.frames = append(s.frames, img)
	return nil
}

var errBoom = errors.New("boom")
