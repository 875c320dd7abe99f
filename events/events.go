// Package events defines the platform-neutral window events delivered by an
// event loop and the handler contract the loop drives.
package events

import (
	"fmt"

	"github.com/richinsley/glscaffold/graphics"
)

// Event is a window event. The concrete types below are the complete set.
type Event interface {
	windowEvent()
}

type ElementState int

const (
	Released ElementState = iota
	Pressed
)

func (s ElementState) String() string {
	if s == Pressed {
		return "Pressed"
	}
	return "Released"
}

type MouseButton int

const (
	ButtonLeft MouseButton = iota
	ButtonRight
	ButtonMiddle
)

func (b MouseButton) String() string {
	switch b {
	case ButtonLeft:
		return "Left"
	case ButtonRight:
		return "Right"
	case ButtonMiddle:
		return "Middle"
	}
	return fmt.Sprintf("Other(%d)", int(b))
}

type Modifiers int

const (
	ModShift Modifiers = 1 << iota
	ModControl
	ModAlt
	ModSuper
)

type (
	Resized struct {
		Width, Height int
	}
	Moved struct {
		X, Y int
	}
	RedrawRequested struct{}
	CloseRequested  struct{}
	KeyboardInput   struct {
		Key      Key
		Scancode int
		State    ElementState
		Repeat   bool
		Mods     Modifiers
	}
	ReceivedCharacter struct {
		Char rune
	}
	CursorMoved struct {
		X, Y float64
	}
	CursorEntered struct{}
	CursorLeft    struct{}
	MouseInput    struct {
		Button MouseButton
		State  ElementState
		Mods   Modifiers
	}
	MouseWheel struct {
		DeltaX, DeltaY float64
	}
	Focused struct {
		Focused bool
	}
	DroppedFiles struct {
		Paths []string
	}
	ScaleFactorChanged struct {
		X, Y float32
	}
	// Occluded reports the window being minimized or restored.
	Occluded struct {
		Occluded bool
	}
)

func (Resized) windowEvent()            {}
func (Moved) windowEvent()              {}
func (RedrawRequested) windowEvent()    {}
func (CloseRequested) windowEvent()     {}
func (KeyboardInput) windowEvent()      {}
func (ReceivedCharacter) windowEvent()  {}
func (CursorMoved) windowEvent()        {}
func (CursorEntered) windowEvent()      {}
func (CursorLeft) windowEvent()         {}
func (MouseInput) windowEvent()         {}
func (MouseWheel) windowEvent()         {}
func (Focused) windowEvent()            {}
func (DroppedFiles) windowEvent()       {}
func (ScaleFactorChanged) windowEvent() {}
func (Occluded) windowEvent()           {}

// Loop is the view of a running event loop that handlers get.
type Loop interface {
	// Exit signals the loop to stop after the current event.
	Exit()
	Exiting() bool
	// CreateWindow creates a window and its surface, negotiating the GL
	// context through attrs.Attempts.
	CreateWindow(attrs graphics.WindowAttributes) (graphics.Window, graphics.Surface, error)
}

// Handler receives lifecycle and window events from a Loop. All methods are
// called on the loop's thread, one at a time.
type Handler interface {
	Resumed(l Loop)
	Suspended(l Loop)
	WindowEvent(l Loop, ev Event)
	// AboutToWait is called once the loop has drained the pending events.
	AboutToWait(l Loop)
	// Exiting is called once before the loop returns.
	Exiting(l Loop)
}
