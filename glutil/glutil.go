// Package glutil holds the few raw GL calls shared by the platform backends.
package glutil

import (
	"fmt"
	"image"
	"sync"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/richinsley/glscaffold/graphics"
)

var (
	initOnce sync.Once
	initErr  error
)

// Init loads the GL function pointers. A context must be current. Only the
// first call does any work.
func Init() error {
	initOnce.Do(func() {
		initErr = gl.Init()
	})
	if initErr != nil {
		return fmt.Errorf("failed to initialize OpenGL: %w", initErr)
	}
	return nil
}

// Version returns the GL_VERSION string of the current context.
func Version() string {
	return gl.GoStr(gl.GetString(gl.VERSION))
}

func Viewport(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
}

// ReadPixels reads the back buffer of the current context into a top-down
// RGBA image.
func ReadPixels(width, height int) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid read size %dx%d", width, height)
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))

	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadBuffer(gl.BACK)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	if code := gl.GetError(); code != gl.NO_ERROR {
		return nil, fmt.Errorf("glReadPixels failed: 0x%x", code)
	}

	graphics.FlipVertical(img)
	return img, nil
}
