package graphics

import "image"

// Surface is the drawable target backing a window together with the GL
// context bound to it.
type Surface interface {
	// MakeCurrent makes the GL context current on the calling thread.
	MakeCurrent()
	SwapBuffers()
	// FramebufferSize returns the recorded drawable size in pixels.
	FramebufferSize() (int, int)
	// Resize records a new drawable size and adjusts the viewport.
	Resize(width, height int)
	// ReadPixels reads the back buffer into a top-down RGBA image.
	ReadPixels() (*image.RGBA, error)
	// API reports which client API the context was negotiated with.
	API() API
	Time() float64
}

// Window is the native window that owns a Surface.
type Window interface {
	Title() string
	SetTitle(title string)
	Size() (int, int)
	Visible() bool
	// RequestRedraw asks the event loop to deliver a redraw event on its
	// next cycle.
	RequestRedraw()
	// Destroy closes the window and releases its surface and context.
	Destroy()
}

// WindowAttributes describes a window to create.
type WindowAttributes struct {
	Title   string
	Width   int
	Height  int
	Visible bool
	// Attempts is the ordered list of context configurations to try.
	Attempts []Attempt
}
