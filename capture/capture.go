// Package capture writes single rendered frames to image files through
// ffmpeg.
package capture

import (
	"bytes"
	"errors"
	"fmt"
	"image"

	"github.com/kmcsr/go-logger"
	"github.com/richinsley/glscaffold/app"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// Writer encodes each frame it receives into Path, overwriting it.
type Writer struct {
	Path       string
	FFmpegPath string
	log        logger.Logger
}

var _ app.FrameSink = (*Writer)(nil)

func NewWriter(path, ffmpegPath string, log logger.Logger) *Writer {
	return &Writer{
		Path:       path,
		FFmpegPath: ffmpegPath,
		log:        log,
	}
}

// getArgs builds the rawvideo input and single-frame output arguments.
func getArgs(width, height int) (inputArgs ffmpeg.KwArgs, outputArgs ffmpeg.KwArgs) {
	inputArgs = ffmpeg.KwArgs{
		"f":       "rawvideo",
		"pix_fmt": "rgba",
		"s":       fmt.Sprintf("%dx%d", width, height),
	}
	outputArgs = ffmpeg.KwArgs{
		"frames:v": 1,
		"update":   1,
	}
	return
}

// packed returns the pixel rows without stride padding.
func packed(img *image.RGBA) []byte {
	b := img.Bounds()
	rowLen := b.Dx() * 4
	if img.Stride == rowLen {
		return img.Pix[:rowLen*b.Dy()]
	}
	out := make([]byte, 0, rowLen*b.Dy())
	for y := 0; y < b.Dy(); y++ {
		off := y * img.Stride
		out = append(out, img.Pix[off:off+rowLen]...)
	}
	return out
}

func (w *Writer) WriteFrame(img *image.RGBA) error {
	if w.Path == "" {
		return errors.New("no capture path")
	}
	b := img.Bounds()
	if b.Empty() {
		return errors.New("empty frame")
	}

	inputArgs, outputArgs := getArgs(b.Dx(), b.Dy())
	var stderr bytes.Buffer
	cmd := ffmpeg.Input("pipe:", inputArgs).
		Output(w.Path, outputArgs).
		OverWriteOutput().
		WithInput(bytes.NewReader(packed(img))).
		WithErrorOutput(&stderr)
	if w.FFmpegPath != "" {
		cmd = cmd.SetFfmpegPath(w.FFmpegPath)
	}

	w.log.Debugf("Encoding %dx%d frame to %s", b.Dx(), b.Dy(), w.Path)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("ffmpeg failed: %w: %s", err, bytes.TrimSpace(stderr.Bytes()))
	}
	w.log.Infof("Wrote %s", w.Path)
	return nil
}
