//go:build !linux

package headless

import (
	"errors"

	"github.com/kmcsr/go-logger"
	"github.com/richinsley/glscaffold/events"
)

type EventLoop struct{}

func NewEventLoop(log logger.Logger) (*EventLoop, error) {
	return nil, errors.New("egl headless rendering is not supported on this platform")
}

func (l *EventLoop) Run(h events.Handler) error {
	return errors.New("egl headless rendering is not supported on this platform")
}
