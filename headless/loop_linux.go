//go:build linux

package headless

import (
	"github.com/kmcsr/go-logger"
	"github.com/richinsley/glscaffold/events"
	"github.com/richinsley/glscaffold/graphics"
)

// EventLoop drives a single pbuffer surface. There is no input, so the only
// events are the redraws the handler requests.
type EventLoop struct {
	log     logger.Logger
	surface *Headless
	exit    bool
}

var _ events.Loop = (*EventLoop)(nil)

func NewEventLoop(log logger.Logger) (*EventLoop, error) {
	return &EventLoop{log: log}, nil
}

func (l *EventLoop) Run(h events.Handler) error {
	l.exit = false
	h.Resumed(l)
	for !l.exit {
		if l.surface != nil && l.surface.takeRedraw() {
			h.WindowEvent(l, events.RedrawRequested{})
			if l.exit {
				break
			}
		}
		h.AboutToWait(l)
		if l.surface == nil && !l.exit {
			l.log.Warnf("No surface to draw to, stopping")
			break
		}
	}
	h.Exiting(l)
	if l.surface != nil {
		l.surface.Destroy()
	}
	return nil
}

func (l *EventLoop) Exit() {
	l.exit = true
}

func (l *EventLoop) Exiting() bool {
	return l.exit
}

func (l *EventLoop) CreateWindow(attrs graphics.WindowAttributes) (graphics.Window, graphics.Surface, error) {
	if l.surface != nil {
		l.surface.Destroy()
	}
	if attrs.Visible {
		l.log.Debugf("No window system, rendering %q offscreen", attrs.Title)
	}
	s, err := NewHeadless(l.log, attrs.Title, attrs.Width, attrs.Height, attrs.Attempts)
	if err != nil {
		return nil, nil, err
	}
	s.destroy = func() {
		if l.surface == s {
			l.surface = nil
		}
	}
	l.surface = s
	return s, s, nil
}
