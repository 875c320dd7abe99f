package graphics

import (
	"errors"
	"image"
	"strings"
	"testing"
)

func TestNegotiatePrimarySucceeds(t *testing.T) {
	var tried []Attempt
	v, got, err := Negotiate(DefaultAttempts(), func(a Attempt) (string, error) {
		tried = append(tried, a)
		return "ctx", nil
	})
	if err != nil {
		t.Fatalf("Negotiate: %v", err)
	}
	if v != "ctx" {
		t.Errorf("value = %q, want ctx", v)
	}
	if got.API != OpenGL {
		t.Errorf("attempt API = %v, want %v", got.API, OpenGL)
	}
	if len(tried) != 1 {
		t.Errorf("tried %d attempts, want 1", len(tried))
	}
}

func TestNegotiateFallsBackOnce(t *testing.T) {
	var tried []Attempt
	_, got, err := Negotiate(DefaultAttempts(), func(a Attempt) (int, error) {
		tried = append(tried, a)
		if a.API == OpenGL {
			return 0, errors.New("no 4.1 core")
		}
		return 1, nil
	})
	if err != nil {
		t.Fatalf("Negotiate: %v", err)
	}
	if got.API != OpenGLES {
		t.Errorf("attempt API = %v, want %v", got.API, OpenGLES)
	}
	if len(tried) != 2 {
		t.Errorf("tried %d attempts, want 2", len(tried))
	}
}

func TestNegotiateAllFail(t *testing.T) {
	calls := 0
	_, _, err := Negotiate(DefaultAttempts(), func(a Attempt) (int, error) {
		calls++
		return 0, errors.New("nope " + a.API.String())
	})
	if err == nil {
		t.Fatal("Negotiate succeeded, want error")
	}
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
	for _, want := range []string{"nope OpenGL", "nope OpenGL ES"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %q", err, want)
		}
	}
}

func TestNegotiateEmpty(t *testing.T) {
	_, _, err := Negotiate(nil, func(Attempt) (int, error) {
		t.Fatal("create called with no attempts")
		return 0, nil
	})
	if err == nil {
		t.Fatal("Negotiate(nil) succeeded, want error")
	}
}

func TestGLESAttempts(t *testing.T) {
	a := GLESAttempts()
	if len(a) != 1 || a[0].API != OpenGLES {
		t.Errorf("GLESAttempts() = %v, want a single OpenGL ES entry", a)
	}
}

func TestFramebufferSize(t *testing.T) {
	actual := func() (int, int) { return 1920, 1080 }
	if w, h := FramebufferSize(false, actual); w != 800 || h != 600 {
		t.Errorf("hidden size = %dx%d, want 800x600", w, h)
	}
	if w, h := FramebufferSize(true, actual); w != 1920 || h != 1080 {
		t.Errorf("visible size = %dx%d, want 1920x1080", w, h)
	}
}

func TestFlipVertical(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 3))
	for y := 0; y < 3; y++ {
		for x := 0; x < 2; x++ {
			img.Pix[y*img.Stride+x*4] = byte(y)
		}
	}
	FlipVertical(img)
	for y := 0; y < 3; y++ {
		if got := img.Pix[y*img.Stride]; got != byte(2-y) {
			t.Errorf("row %d = %d, want %d", y, got, 2-y)
		}
	}
}
