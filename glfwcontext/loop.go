package glfwcontext

import (
	glfw "github.com/go-gl/glfw/v3.3/glfw"
	"github.com/kmcsr/go-logger"
	"github.com/richinsley/glscaffold/events"
	"github.com/richinsley/glscaffold/graphics"
)

// EventLoop pumps GLFW events into an events.Handler. It must run on the
// main thread.
type EventLoop struct {
	log     logger.Logger
	queue   []events.Event
	windows []*Context
	exit    bool
}

var _ events.Loop = (*EventLoop)(nil)

func NewEventLoop(log logger.Logger) *EventLoop {
	return &EventLoop{log: log}
}

// Run initializes GLFW, reports Resumed and then cycles until exit is
// signalled: pending redraws, polled events, then the idle notification.
func (l *EventLoop) Run(h events.Handler) error {
	if err := InitGraphics(l.log); err != nil {
		return err
	}
	defer TerminateGraphics(l.log)

	l.exit = false
	h.Resumed(l)
	for !l.exit {
		l.deliverRedraws(h)
		if l.exit {
			break
		}
		glfw.PollEvents()
		l.deliverQueued(h)
		if l.exit {
			break
		}
		h.AboutToWait(l)
	}
	h.Exiting(l)

	for len(l.windows) > 0 {
		l.windows[0].Destroy()
	}
	l.queue = l.queue[:0]
	return nil
}

func (l *EventLoop) deliverRedraws(h events.Handler) {
	for _, w := range l.windows {
		if l.exit {
			return
		}
		if w.takeRedraw() {
			h.WindowEvent(l, events.RedrawRequested{})
		}
	}
}

func (l *EventLoop) deliverQueued(h events.Handler) {
	for i := 0; i < len(l.queue) && !l.exit; i++ {
		h.WindowEvent(l, l.queue[i])
	}
	l.queue = l.queue[:0]
}

func (l *EventLoop) push(ev events.Event) {
	l.queue = append(l.queue, ev)
}

func (l *EventLoop) forget(c *Context) {
	for i, w := range l.windows {
		if w == c {
			l.windows = append(l.windows[:i], l.windows[i+1:]...)
			return
		}
	}
}

func (l *EventLoop) Exit() {
	l.exit = true
}

func (l *EventLoop) Exiting() bool {
	return l.exit
}

func (l *EventLoop) CreateWindow(attrs graphics.WindowAttributes) (graphics.Window, graphics.Surface, error) {
	c, err := New(l, attrs)
	if err != nil {
		return nil, nil, err
	}
	l.windows = append(l.windows, c)
	return c, c, nil
}
