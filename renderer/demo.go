package renderer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/kmcsr/go-logger"
	"github.com/richinsley/glscaffold/app"
	"github.com/richinsley/glscaffold/events"
	"github.com/richinsley/glscaffold/graphics"
	"github.com/richinsley/glscaffold/shader"
	"github.com/richinsley/glscaffold/translator"
)

// Demo draws a single full-screen fragment shader written against the
// Shadertoy mainImage convention.
type Demo struct {
	log     logger.Logger
	surface graphics.Surface

	program uint32
	vao     uint32
	vbo     uint32

	resolutionLoc int32
	timeLoc       int32
	frameLoc      int32

	clock clock
	time  float64
	frame int32
}

var (
	_ app.Context  = (*Demo)(nil)
	_ app.Releaser = (*Demo)(nil)
)

// App returns an app.App running image, a mainImage function body. An
// empty image selects shader.DefaultImage.
func App(title, image string, log logger.Logger) app.App {
	if image == "" {
		image = shader.DefaultImage
	}
	return app.App{
		Title: title,
		New: func(surface graphics.Surface) (app.Context, error) {
			return New(surface, image, log)
		},
	}
}

// New builds the demo on the current surface.
func New(surface graphics.Surface, image string, log logger.Logger) (*Demo, error) {
	d := &Demo{
		log:     log,
		surface: surface,
		clock:   newClock(surface.Time()),
	}
	d.vao, d.vbo = newQuad()
	if err := d.load(image); err != nil {
		d.Release()
		return nil, err
	}
	return d, nil
}

// load compiles image and swaps it in. On failure the current program is
// kept.
func (d *Demo) load(image string) error {
	api := d.surface.API()
	fragment, names, err := translator.TranslateFragment(shader.GetFragmentShader(image), api)
	if err != nil {
		return fmt.Errorf("fragment shader translation failed: %w", err)
	}
	program, err := newProgram(shader.GenerateVertexShader(api == graphics.OpenGLES), fragment)
	if err != nil {
		return fmt.Errorf("failed to create shader program: %w", err)
	}

	if d.program != 0 {
		gl.DeleteProgram(d.program)
	}
	d.program = program
	d.resolutionLoc = uniformLocation(program, names, "iResolution")
	d.timeLoc = uniformLocation(program, names, "iTime")
	d.frameLoc = uniformLocation(program, names, "iFrame")
	return nil
}

func (d *Demo) Update() {
	d.time = d.clock.at(d.surface.Time())
	d.frame++
}

func (d *Demo) DrawFrame(surface graphics.Surface) {
	width, height := surface.FramebufferSize()
	gl.Viewport(0, 0, int32(width), int32(height))
	gl.ClearColor(0, 0, 0, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT)

	gl.UseProgram(d.program)
	if d.resolutionLoc != -1 {
		gl.Uniform3f(d.resolutionLoc, float32(width), float32(height), 1)
	}
	if d.timeLoc != -1 {
		gl.Uniform1f(d.timeLoc, float32(d.time))
	}
	if d.frameLoc != -1 {
		gl.Uniform1i(d.frameLoc, d.frame)
	}
	gl.BindVertexArray(d.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
	gl.BindVertexArray(0)
}

func (d *Demo) HandleWindowEvent(ev events.Event, window graphics.Window) {
	switch ev := ev.(type) {
	case events.KeyboardInput:
		if ev.State != events.Pressed || ev.Repeat {
			return
		}
		switch ev.Key {
		case events.KeySpace:
			d.clock.toggle(d.surface.Time())
			d.log.Debugf("Paused: %v", d.clock.paused)
		case events.KeyR:
			d.clock.reset(d.surface.Time())
			d.frame = 0
		}
	case events.DroppedFiles:
		for _, path := range ev.Paths {
			if isShaderFile(path) {
				d.reload(path, window)
				return
			}
		}
	case events.Focused:
		d.log.Debugf("Focused: %v", ev.Focused)
	}
}

func (d *Demo) reload(path string, window graphics.Window) {
	src, err := os.ReadFile(path)
	if err != nil {
		d.log.Errorf("Failed to read %s: %v", path, err)
		return
	}
	if err := d.load(string(src)); err != nil {
		d.log.Errorf("Keeping previous shader: %v", err)
		return
	}
	d.log.Infof("Loaded %s", path)
	window.SetTitle(filepath.Base(path))
}

func isShaderFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".glsl", ".frag", ".fs":
		return true
	}
	return false
}

// Release frees the GL objects. The context must be current.
func (d *Demo) Release() {
	if d.program != 0 {
		gl.DeleteProgram(d.program)
		d.program = 0
	}
	if d.vao != 0 {
		gl.DeleteVertexArrays(1, &d.vao)
		d.vao = 0
	}
	if d.vbo != 0 {
		gl.DeleteBuffers(1, &d.vbo)
		d.vbo = 0
	}
}
