//go:build linux

package headless

import (
	"fmt"
	"image"
	"time"
	"unsafe"

	"github.com/kmcsr/go-logger"
	"github.com/richinsley/glscaffold/glutil"
	"github.com/richinsley/glscaffold/graphics"
)

/*
#cgo LDFLAGS: -lEGL
#include <EGL/egl.h>
#include <EGL/eglext.h>

// Extension entry points have to be looked up at runtime.
static PFNEGLQUERYDEVICESEXTPROC eglQueryDevicesEXT_ptr = NULL;
static PFNEGLGETPLATFORMDISPLAYEXTPROC eglGetPlatformDisplayEXT_ptr = NULL;

static void initialize_egl_extension_pointers() {
    eglQueryDevicesEXT_ptr = (PFNEGLQUERYDEVICESEXTPROC) eglGetProcAddress("eglQueryDevicesEXT");
    eglGetPlatformDisplayEXT_ptr = (PFNEGLGETPLATFORMDISPLAYEXTPROC) eglGetProcAddress("eglGetPlatformDisplayEXT");
}

static EGLDisplay get_platform_display(EGLenum platform, void *native_display, const EGLint *attrib_list) {
    if (eglGetPlatformDisplayEXT_ptr) {
        return eglGetPlatformDisplayEXT_ptr(platform, native_display, attrib_list);
    }
    return EGL_NO_DISPLAY;
}

static EGLBoolean query_devices(EGLint max_devices, EGLDeviceEXT *devices, EGLint *num_devices) {
    if (eglQueryDevicesEXT_ptr) {
        return eglQueryDevicesEXT_ptr(max_devices, devices, num_devices);
    }
    return EGL_FALSE;
}
*/
import "C"

// Headless is an EGL pbuffer surface with no window system behind it. It
// stands in for both the window and the surface of a State.
type Headless struct {
	display C.EGLDisplay
	context C.EGLContext
	surface C.EGLSurface

	title   string
	api     graphics.API
	width   int
	height  int
	start   time.Time
	redraw  bool
	destroy func()
}

var (
	_ graphics.Window  = (*Headless)(nil)
	_ graphics.Surface = (*Headless)(nil)
)

// getEGLDisplay tries device enumeration first and falls back to the
// default display.
func getEGLDisplay(log logger.Logger) (C.EGLDisplay, error) {
	C.initialize_egl_extension_pointers()

	var numDevices C.EGLint
	if C.query_devices(0, nil, &numDevices) == C.EGL_FALSE || numDevices == 0 {
		log.Warnf("EGL_EXT_device_query not supported or no devices found, falling back to EGL_DEFAULT_DISPLAY")
		display := C.eglGetDisplay(C.EGLNativeDisplayType(C.EGL_DEFAULT_DISPLAY))
		if display == C.EGLDisplay(C.EGL_NO_DISPLAY) {
			return C.EGLDisplay(C.EGL_NO_DISPLAY), fmt.Errorf("eglGetDisplay(EGL_DEFAULT_DISPLAY) failed")
		}
		return display, nil
	}

	log.Debugf("Found %d EGL device(s)", numDevices)
	devices := make([]C.EGLDeviceEXT, numDevices)
	if C.query_devices(numDevices, &devices[0], &numDevices) == C.EGL_FALSE {
		return C.EGLDisplay(C.EGL_NO_DISPLAY), fmt.Errorf("failed to query EGL devices")
	}

	for i := 0; i < int(numDevices); i++ {
		display := C.get_platform_display(C.EGL_PLATFORM_DEVICE_EXT, unsafe.Pointer(devices[i]), nil)
		if display != C.EGLDisplay(C.EGL_NO_DISPLAY) {
			log.Debugf("Using EGL display from device %d", i)
			return display, nil
		}
	}
	return C.EGLDisplay(C.EGL_NO_DISPLAY), fmt.Errorf("no EGL device yielded a display")
}

// NewHeadless creates a pbuffer surface of the given size, negotiating the
// context through attempts.
func NewHeadless(log logger.Logger, title string, width, height int, attempts []graphics.Attempt) (*Headless, error) {
	h := &Headless{
		title:   title,
		width:   width,
		height:  height,
		display: C.EGLDisplay(C.EGL_NO_DISPLAY),
		context: C.EGLContext(C.EGL_NO_CONTEXT),
		surface: C.EGLSurface(C.EGL_NO_SURFACE),
	}

	var err error
	h.display, err = getEGLDisplay(log)
	if err != nil {
		return nil, fmt.Errorf("failed to get EGL display: %w", err)
	}

	var major, minor C.EGLint
	if C.eglInitialize(h.display, &major, &minor) == C.EGL_FALSE {
		return nil, fmt.Errorf("failed to initialize EGL")
	}
	log.Debugf("EGL %d.%d initialized", major, minor)

	attempt, err := h.negotiate(attempts)
	if err != nil {
		h.shutdown()
		return nil, err
	}
	h.api = attempt.API

	if C.eglMakeCurrent(h.display, h.surface, h.surface, h.context) == C.EGL_FALSE {
		h.shutdown()
		return nil, fmt.Errorf("failed to make EGL context current")
	}
	if err := glutil.Init(); err != nil {
		h.shutdown()
		return nil, err
	}
	glutil.Viewport(width, height)
	log.Infof("Created %dx%d pbuffer with %s (%s)", width, height, attempt, glutil.Version())

	h.start = time.Now()
	return h, nil
}

func (h *Headless) negotiate(attempts []graphics.Attempt) (graphics.Attempt, error) {
	_, attempt, err := graphics.Negotiate(attempts, func(a graphics.Attempt) (struct{}, error) {
		return struct{}{}, h.createContext(a)
	})
	return attempt, err
}

// createContext picks a config, pbuffer and context for one attempt,
// releasing partial state on failure.
func (h *Headless) createContext(a graphics.Attempt) error {
	renderable := C.EGLint(C.EGL_OPENGL_BIT)
	bindAPI := C.EGLenum(C.EGL_OPENGL_API)
	if a.API == graphics.OpenGLES {
		renderable = C.EGL_OPENGL_ES3_BIT
		bindAPI = C.EGL_OPENGL_ES_API
	}
	if C.eglBindAPI(bindAPI) == C.EGL_FALSE {
		return fmt.Errorf("eglBindAPI failed")
	}

	configAttribs := []C.EGLint{
		C.EGL_SURFACE_TYPE, C.EGL_PBUFFER_BIT,
		C.EGL_RED_SIZE, 8,
		C.EGL_GREEN_SIZE, 8,
		C.EGL_BLUE_SIZE, 8,
		C.EGL_ALPHA_SIZE, 8,
		C.EGL_DEPTH_SIZE, 24,
		C.EGL_RENDERABLE_TYPE, renderable,
		C.EGL_NONE,
	}
	var config C.EGLConfig
	var numConfig C.EGLint
	if C.eglChooseConfig(h.display, &configAttribs[0], &config, 1, &numConfig) == C.EGL_FALSE || numConfig == 0 {
		return fmt.Errorf("no matching EGL config")
	}

	pbufferAttribs := []C.EGLint{
		C.EGL_WIDTH, C.EGLint(h.width),
		C.EGL_HEIGHT, C.EGLint(h.height),
		C.EGL_NONE,
	}
	surface := C.eglCreatePbufferSurface(h.display, config, &pbufferAttribs[0])
	if surface == C.EGLSurface(C.EGL_NO_SURFACE) {
		return fmt.Errorf("failed to create pbuffer surface")
	}

	contextAttribs := []C.EGLint{
		C.EGL_CONTEXT_MAJOR_VERSION, C.EGLint(a.Major),
		C.EGL_CONTEXT_MINOR_VERSION, C.EGLint(a.Minor),
	}
	if a.API == graphics.OpenGL && a.CoreProfile {
		contextAttribs = append(contextAttribs, C.EGL_CONTEXT_OPENGL_PROFILE_MASK, C.EGL_CONTEXT_OPENGL_CORE_PROFILE_BIT)
	}
	contextAttribs = append(contextAttribs, C.EGL_NONE)

	context := C.eglCreateContext(h.display, config, C.EGLContext(C.EGL_NO_CONTEXT), &contextAttribs[0])
	if context == C.EGLContext(C.EGL_NO_CONTEXT) {
		C.eglDestroySurface(h.display, surface)
		return fmt.Errorf("failed to create EGL context")
	}

	h.surface = surface
	h.context = context
	return nil
}

func (h *Headless) shutdown() {
	if h.display == C.EGLDisplay(C.EGL_NO_DISPLAY) {
		return
	}
	C.eglMakeCurrent(h.display, C.EGLSurface(C.EGL_NO_SURFACE), C.EGLSurface(C.EGL_NO_SURFACE), C.EGLContext(C.EGL_NO_CONTEXT))
	if h.context != C.EGLContext(C.EGL_NO_CONTEXT) {
		C.eglDestroyContext(h.display, h.context)
	}
	if h.surface != C.EGLSurface(C.EGL_NO_SURFACE) {
		C.eglDestroySurface(h.display, h.surface)
	}
	C.eglTerminate(h.display)
	h.display = C.EGLDisplay(C.EGL_NO_DISPLAY)
}

func (h *Headless) Title() string         { return h.title }
func (h *Headless) SetTitle(title string) { h.title = title }
func (h *Headless) Size() (int, int)      { return h.width, h.height }
func (h *Headless) Visible() bool         { return false }
func (h *Headless) RequestRedraw()        { h.redraw = true }

func (h *Headless) takeRedraw() bool {
	r := h.redraw
	h.redraw = false
	return r
}

func (h *Headless) Destroy() {
	if h.destroy != nil {
		h.destroy()
	}
	h.shutdown()
}

func (h *Headless) MakeCurrent() {
	C.eglMakeCurrent(h.display, h.surface, h.surface, h.context)
}

func (h *Headless) SwapBuffers() {
	C.eglSwapBuffers(h.display, h.surface)
}

func (h *Headless) FramebufferSize() (int, int) {
	return h.width, h.height
}

// Resize only moves the viewport. A pbuffer cannot grow after creation.
func (h *Headless) Resize(width, height int) {
	h.width, h.height = width, height
	glutil.Viewport(width, height)
}

func (h *Headless) ReadPixels() (*image.RGBA, error) {
	return glutil.ReadPixels(h.width, h.height)
}

func (h *Headless) API() graphics.API {
	return h.api
}

func (h *Headless) Time() float64 {
	return time.Since(h.start).Seconds()
}
