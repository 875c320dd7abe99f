package glfwcontext

import (
	"fmt"
	"image"
	"runtime"

	glfw "github.com/go-gl/glfw/v3.3/glfw"
	"github.com/kmcsr/go-logger"
	"github.com/richinsley/glscaffold/glutil"
	"github.com/richinsley/glscaffold/graphics"
)

// Context is a GLFW window together with its GL context. It serves as both
// the graphics.Window and the graphics.Surface of a State.
type Context struct {
	loop    *EventLoop
	window  *glfw.Window
	title   string
	visible bool
	api     graphics.API
	width   int
	height  int
	redraw  bool
}

var (
	_ graphics.Window  = (*Context)(nil)
	_ graphics.Surface = (*Context)(nil)
)

// New creates a window, trying each context configuration in attrs.Attempts
// until one succeeds.
func New(loop *EventLoop, attrs graphics.WindowAttributes) (*Context, error) {
	win, attempt, err := graphics.Negotiate(attrs.Attempts, func(a graphics.Attempt) (*glfw.Window, error) {
		applyHints(a, attrs.Visible)
		w, err := glfw.CreateWindow(attrs.Width, attrs.Height, attrs.Title, nil, nil)
		if err != nil {
			loop.log.Warnf("Context %s unavailable: %v", a, err)
			return nil, err
		}
		return w, nil
	})
	if err != nil {
		return nil, err
	}

	c := &Context{
		loop:    loop,
		window:  win,
		title:   attrs.Title,
		visible: attrs.Visible,
		api:     attempt.API,
	}

	c.MakeCurrent()
	if err := glutil.Init(); err != nil {
		win.Destroy()
		return nil, err
	}
	c.width, c.height = graphics.FramebufferSize(attrs.Visible, win.GetFramebufferSize)
	glutil.Viewport(c.width, c.height)
	loop.log.Infof("Created %dx%d window with %s (%s)", c.width, c.height, attempt, glutil.Version())

	c.installCallbacks()
	return c, nil
}

func applyHints(a graphics.Attempt, visible bool) {
	glfw.DefaultWindowHints()
	if a.API == graphics.OpenGLES {
		glfw.WindowHint(glfw.ClientAPI, glfw.OpenGLESAPI)
	} else {
		glfw.WindowHint(glfw.ClientAPI, glfw.OpenGLAPI)
	}
	glfw.WindowHint(glfw.ContextVersionMajor, a.Major)
	glfw.WindowHint(glfw.ContextVersionMinor, a.Minor)
	if a.CoreProfile {
		glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	}
	if a.ForwardCompatible {
		glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	}

	if visible {
		glfw.WindowHint(glfw.Resizable, glfw.True)
	} else {
		glfw.WindowHint(glfw.Visible, glfw.False)
	}
}

func (c *Context) installCallbacks() {
	w := c.window
	w.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		c.loop.push(resized(width, height))
	})
	w.SetCloseCallback(func(w *glfw.Window) {
		// The dispatcher decides whether to close.
		w.SetShouldClose(false)
		c.loop.push(closeRequested())
	})
	w.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		c.loop.push(keyboardInput(key, scancode, action, mods))
	})
	w.SetCharCallback(func(_ *glfw.Window, char rune) {
		c.loop.push(receivedCharacter(char))
	})
	w.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		c.loop.push(cursorMoved(x, y))
	})
	w.SetCursorEnterCallback(func(_ *glfw.Window, entered bool) {
		c.loop.push(cursorEntered(entered))
	})
	w.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		c.loop.push(mouseInput(button, action, mods))
	})
	w.SetScrollCallback(func(_ *glfw.Window, dx, dy float64) {
		c.loop.push(mouseWheel(dx, dy))
	})
	w.SetFocusCallback(func(_ *glfw.Window, gained bool) {
		c.loop.push(focused(gained))
	})
	w.SetDropCallback(func(_ *glfw.Window, names []string) {
		c.loop.push(droppedFiles(names))
	})
	w.SetPosCallback(func(_ *glfw.Window, x, y int) {
		c.loop.push(moved(x, y))
	})
	w.SetContentScaleCallback(func(_ *glfw.Window, x, y float32) {
		c.loop.push(scaleFactorChanged(x, y))
	})
	w.SetIconifyCallback(func(_ *glfw.Window, iconified bool) {
		c.loop.push(occluded(iconified))
	})
}

func (c *Context) Title() string {
	return c.title
}

func (c *Context) SetTitle(title string) {
	c.title = title
	c.window.SetTitle(title)
}

func (c *Context) Size() (int, int) {
	return c.window.GetSize()
}

func (c *Context) Visible() bool {
	return c.visible
}

func (c *Context) RequestRedraw() {
	c.redraw = true
}

// takeRedraw reports and clears a pending redraw request.
func (c *Context) takeRedraw() bool {
	r := c.redraw
	c.redraw = false
	return r
}

// Destroy closes the window and releases its context.
func (c *Context) Destroy() {
	if c.window == nil {
		return
	}
	c.loop.forget(c)
	c.window.Destroy()
	c.window = nil
}

// MakeCurrent makes the context current for the calling goroutine.
func (c *Context) MakeCurrent() {
	c.window.MakeContextCurrent()
}

func (c *Context) SwapBuffers() {
	c.window.SwapBuffers()
}

func (c *Context) FramebufferSize() (int, int) {
	return c.width, c.height
}

func (c *Context) Resize(width, height int) {
	c.width, c.height = width, height
	glutil.Viewport(width, height)
}

func (c *Context) ReadPixels() (*image.RGBA, error) {
	return glutil.ReadPixels(c.width, c.height)
}

func (c *Context) API() graphics.API {
	return c.api
}

func (c *Context) Time() float64 {
	return glfw.GetTime()
}

// GLFW returns the underlying *glfw.Window.
func (c *Context) GLFW() *glfw.Window {
	return c.window
}

// InitGraphics initializes GLFW. Must be called from the main thread.
func InitGraphics(log logger.Logger) error {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("failed to initialize glfw: %w", err)
	}
	log.Debugf("GLFW %s initialized", glfw.GetVersionString())
	return nil
}

// TerminateGraphics shuts GLFW down. Must be called from the main thread.
func TerminateGraphics(log logger.Logger) {
	glfw.Terminate()
	log.Debugf("GLFW terminated")
}
