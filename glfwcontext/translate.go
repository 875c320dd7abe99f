package glfwcontext

import (
	glfw "github.com/go-gl/glfw/v3.3/glfw"
	"github.com/richinsley/glscaffold/events"
)

var namedKeys = map[glfw.Key]events.Key{
	glfw.KeyEscape:    events.KeyEscape,
	glfw.KeyEnter:     events.KeyEnter,
	glfw.KeyKPEnter:   events.KeyEnter,
	glfw.KeyTab:       events.KeyTab,
	glfw.KeyBackspace: events.KeyBackspace,
	glfw.KeySpace:     events.KeySpace,
	glfw.KeyLeft:      events.KeyLeft,
	glfw.KeyRight:     events.KeyRight,
	glfw.KeyUp:        events.KeyUp,
	glfw.KeyDown:      events.KeyDown,
}

// translateKey maps a GLFW key code. Digits, letters and F1-F12 are
// contiguous in both tables.
func translateKey(k glfw.Key) events.Key {
	switch {
	case k >= glfw.Key0 && k <= glfw.Key9:
		return events.Key0 + events.Key(k-glfw.Key0)
	case k >= glfw.KeyA && k <= glfw.KeyZ:
		return events.KeyA + events.Key(k-glfw.KeyA)
	case k >= glfw.KeyF1 && k <= glfw.KeyF12:
		return events.KeyF1 + events.Key(k-glfw.KeyF1)
	}
	if key, ok := namedKeys[k]; ok {
		return key
	}
	return events.KeyUnknown
}

func translateMods(m glfw.ModifierKey) events.Modifiers {
	var mods events.Modifiers
	if m&glfw.ModShift != 0 {
		mods |= events.ModShift
	}
	if m&glfw.ModControl != 0 {
		mods |= events.ModControl
	}
	if m&glfw.ModAlt != 0 {
		mods |= events.ModAlt
	}
	if m&glfw.ModSuper != 0 {
		mods |= events.ModSuper
	}
	return mods
}

func translateButton(b glfw.MouseButton) events.MouseButton {
	switch b {
	case glfw.MouseButtonLeft:
		return events.ButtonLeft
	case glfw.MouseButtonRight:
		return events.ButtonRight
	case glfw.MouseButtonMiddle:
		return events.ButtonMiddle
	}
	return events.MouseButton(b)
}

func translateAction(a glfw.Action) (state events.ElementState, repeat bool) {
	switch a {
	case glfw.Press:
		return events.Pressed, false
	case glfw.Repeat:
		return events.Pressed, true
	}
	return events.Released, false
}

func resized(width, height int) events.Event {
	return events.Resized{Width: width, Height: height}
}

func closeRequested() events.Event {
	return events.CloseRequested{}
}

func keyboardInput(key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) events.Event {
	state, repeat := translateAction(action)
	return events.KeyboardInput{
		Key:      translateKey(key),
		Scancode: scancode,
		State:    state,
		Repeat:   repeat,
		Mods:     translateMods(mods),
	}
}

func receivedCharacter(char rune) events.Event {
	return events.ReceivedCharacter{Char: char}
}

func cursorMoved(x, y float64) events.Event {
	return events.CursorMoved{X: x, Y: y}
}

func cursorEntered(entered bool) events.Event {
	if entered {
		return events.CursorEntered{}
	}
	return events.CursorLeft{}
}

func mouseInput(button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) events.Event {
	state, _ := translateAction(action)
	return events.MouseInput{
		Button: translateButton(button),
		State:  state,
		Mods:   translateMods(mods),
	}
}

func mouseWheel(dx, dy float64) events.Event {
	return events.MouseWheel{DeltaX: dx, DeltaY: dy}
}

func focused(f bool) events.Event {
	return events.Focused{Focused: f}
}

func droppedFiles(names []string) events.Event {
	paths := make([]string, len(names))
	copy(paths, names)
	return events.DroppedFiles{Paths: paths}
}

func moved(x, y int) events.Event {
	return events.Moved{X: x, Y: y}
}

func scaleFactorChanged(x, y float32) events.Event {
	return events.ScaleFactorChanged{X: x, Y: y}
}

func occluded(iconified bool) events.Event {
	return events.Occluded{Occluded: iconified}
}
