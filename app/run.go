package app

import (
	"io"
	"os"

	"github.com/kmcsr/go-logger"
	"github.com/richinsley/glscaffold/events"
	"github.com/richinsley/glscaffold/graphics"
	"github.com/richinsley/glscaffold/logging"
	"github.com/richinsley/glscaffold/mouse"
)

// EventLoop is a platform event source.
type EventLoop interface {
	// Run delivers events to h until h or the platform signals exit.
	Run(h events.Handler) error
}

// RunConfig controls window visibility and whether the loop stops after the
// first frame.
type RunConfig struct {
	Visible       bool
	ClosePromptly bool

	// Attempts defaults to graphics.DefaultAttempts.
	Attempts []graphics.Attempt
	// Width and Height size a visible window. Hidden windows always use
	// graphics.DefaultWidth by graphics.DefaultHeight.
	Width  int
	Height int
	// Capture, if set, receives the frame drawn in single-shot mode.
	Capture FrameSink
	// Output receives the mouse diagnostic lines. Defaults to stdout.
	Output io.Writer
	Logger logger.Logger
}

func (c RunConfig) withDefaults() RunConfig {
	if len(c.Attempts) == 0 {
		c.Attempts = graphics.DefaultAttempts()
	}
	if c.Width <= 0 || c.Height <= 0 {
		c.Width, c.Height = graphics.DefaultWidth, graphics.DefaultHeight
	}
	if c.Output == nil {
		c.Output = os.Stdout
	}
	if c.Logger == nil {
		c.Logger = logging.Discard()
	}
	return c
}

type Option func(*RunConfig)

func WithLogger(l logger.Logger) Option {
	return func(c *RunConfig) { c.Logger = l }
}

func WithOutput(w io.Writer) Option {
	return func(c *RunConfig) { c.Output = w }
}

func WithCapture(sink FrameSink) Option {
	return func(c *RunConfig) { c.Capture = sink }
}

func WithAttempts(attempts ...graphics.Attempt) Option {
	return func(c *RunConfig) { c.Attempts = attempts }
}

func WithSize(width, height int) Option {
	return func(c *RunConfig) { c.Width, c.Height = width, height }
}

// Run drives application on loop until exit. It returns the platform error,
// if any, or the first fatal error raised while dispatching.
func Run(loop EventLoop, application App, cfg RunConfig) error {
	d := NewDispatcher(application, cfg, mouse.NewTracker())
	if err := loop.Run(d); err != nil {
		return err
	}
	return d.Err()
}

// RunLoop shows the window and renders continuously until it is closed or
// Escape is pressed.
func RunLoop(loop EventLoop, application App, opts ...Option) error {
	cfg := RunConfig{Visible: true}
	for _, o := range opts {
		o(&cfg)
	}
	return Run(loop, application, cfg)
}

// RunOnce stops after the first frame. A hidden window stops as soon as it
// has been created, without drawing.
func RunOnce(loop EventLoop, application App, visible bool, opts ...Option) error {
	cfg := RunConfig{Visible: visible, ClosePromptly: true}
	for _, o := range opts {
		o(&cfg)
	}
	return Run(loop, application, cfg)
}
