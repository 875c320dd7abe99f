package app

import (
	"errors"
	"fmt"

	"github.com/richinsley/glscaffold/events"
	"github.com/richinsley/glscaffold/graphics"
)

// State bundles a window, its surface and the user context. The three share
// one lifetime.
type State struct {
	Surface graphics.Surface
	Window  graphics.Window
	Context Context
}

// NewState creates the window and surface, then constructs the user context
// with the surface current.
func NewState(loop events.Loop, application App, cfg RunConfig) (*State, error) {
	if application.New == nil {
		return nil, errors.New("application has no constructor")
	}

	attrs := graphics.WindowAttributes{
		Title:    application.Title,
		Width:    cfg.Width,
		Height:   cfg.Height,
		Visible:  cfg.Visible,
		Attempts: cfg.Attempts,
	}
	if !attrs.Visible {
		attrs.Width, attrs.Height = graphics.DefaultWidth, graphics.DefaultHeight
	}

	window, surface, err := loop.CreateWindow(attrs)
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	surface.MakeCurrent()
	ctx, err := application.New(surface)
	if err != nil {
		window.Destroy()
		return nil, fmt.Errorf("failed to create application context: %w", err)
	}

	return &State{
		Surface: surface,
		Window:  window,
		Context: ctx,
	}, nil
}

// Destroy releases the user context and then the window.
func (s *State) Destroy() {
	if s == nil {
		return
	}
	if r, ok := s.Context.(Releaser); ok {
		s.Surface.MakeCurrent()
		r.Release()
	}
	s.Window.Destroy()
}
