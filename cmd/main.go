package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"

	"github.com/kmcsr/go-logger"
	"github.com/richinsley/glscaffold/app"
	"github.com/richinsley/glscaffold/capture"
	"github.com/richinsley/glscaffold/glfwcontext"
	"github.com/richinsley/glscaffold/graphics"
	"github.com/richinsley/glscaffold/headless"
	"github.com/richinsley/glscaffold/logging"
	"github.com/richinsley/glscaffold/options"
	"github.com/richinsley/glscaffold/renderer"
)

func init() {
	// GLFW and GL calls must stay on the main thread.
	runtime.LockOSThread()
}

func newEventLoop(opts *options.Options, loger logger.Logger) (app.EventLoop, error) {
	if *opts.Platform == options.PlatformEGL {
		return headless.NewEventLoop(loger)
	}
	return glfwcontext.NewEventLoop(loger), nil
}

func main() {
	opts, err := options.Parse(flag.CommandLine, os.Args[1:], os.Getenv)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if *opts.Help {
		fmt.Println("glscaffold: windowed OpenGL demo harness")
		flag.PrintDefaults()
		return
	}

	loger := logging.New(*opts.Debug)
	if err := opts.Validate(); err != nil {
		loger.Fatalf("Invalid options: %v", err)
	}

	var image string
	if *opts.ShaderFile != "" {
		src, err := os.ReadFile(*opts.ShaderFile)
		if err != nil {
			loger.Fatalf("Error reading shader: %v", err)
		}
		image = string(src)
	}

	loop, err := newEventLoop(opts, loger)
	if err != nil {
		loger.Fatalf("Error creating event loop: %v", err)
	}

	runOpts := []app.Option{
		app.WithLogger(loger),
		app.WithSize(*opts.Width, *opts.Height),
	}
	if *opts.GLES {
		runOpts = append(runOpts, app.WithAttempts(graphics.GLESAttempts()...))
	}
	if *opts.Capture != "" {
		runOpts = append(runOpts, app.WithCapture(capture.NewWriter(*opts.Capture, *opts.FFMPEGPath, loger)))
	}

	demo := renderer.App(*opts.Title, image, loger)
	if *opts.Once {
		// Without a window system there is nothing to hide: always draw.
		visible := !*opts.Hidden || *opts.Platform == options.PlatformEGL
		loger.Infof("Running a single frame (visible=%v)", visible)
		err = app.RunOnce(loop, demo, visible, runOpts...)
	} else {
		loger.Infof("Starting interactive render loop")
		err = app.RunLoop(loop, demo, runOpts...)
	}
	if err != nil {
		loger.Fatalf("Run failed: %v", err)
	}
}
