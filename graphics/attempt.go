package graphics

import (
	"errors"
	"fmt"
)

type API int

const (
	OpenGL API = iota
	OpenGLES
)

func (a API) String() string {
	switch a {
	case OpenGL:
		return "OpenGL"
	case OpenGLES:
		return "OpenGL ES"
	}
	return fmt.Sprintf("API(%d)", int(a))
}

// Attempt is one context configuration in a negotiation list.
type Attempt struct {
	API               API
	Major             int
	Minor             int
	CoreProfile       bool
	ForwardCompatible bool
}

func (a Attempt) String() string {
	s := fmt.Sprintf("%s %d.%d", a.API, a.Major, a.Minor)
	if a.CoreProfile {
		s += " core"
	}
	return s
}

// DefaultAttempts prefers a desktop 4.1 core context and falls back to
// OpenGL ES 3.0.
func DefaultAttempts() []Attempt {
	return []Attempt{
		{API: OpenGL, Major: 4, Minor: 1, CoreProfile: true, ForwardCompatible: true},
		{API: OpenGLES, Major: 3, Minor: 0},
	}
}

// GLESAttempts skips the desktop tier.
func GLESAttempts() []Attempt {
	return DefaultAttempts()[1:]
}

// Negotiate calls create once per attempt, in order, and returns the first
// success along with the attempt that produced it.
func Negotiate[T any](attempts []Attempt, create func(Attempt) (T, error)) (T, Attempt, error) {
	var zero T
	if len(attempts) == 0 {
		return zero, Attempt{}, errors.New("no context configurations to try")
	}

	var errs []error
	for _, a := range attempts {
		v, err := create(a)
		if err == nil {
			return v, a, nil
		}
		errs = append(errs, fmt.Errorf("%s: %w", a, err))
	}
	return zero, Attempt{}, fmt.Errorf("failed to create context: %w", errors.Join(errs...))
}

// Default drawable size for windows that are not shown. A hidden window has
// no meaningful client area.
const (
	DefaultWidth  = 800
	DefaultHeight = 600
)

// FramebufferSize picks the initial drawable size for a new window.
func FramebufferSize(visible bool, actual func() (int, int)) (int, int) {
	if !visible {
		return DefaultWidth, DefaultHeight
	}
	return actual()
}
