package options

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/tidwall/gjson"
)

const (
	PlatformGLFW = "glfw"
	PlatformEGL  = "egl"
)

type Options struct {
	ConfigFile *string
	Title      *string
	Width      *int
	Height     *int
	Once       *bool
	Hidden     *bool
	Platform   *string
	GLES       *bool
	ShaderFile *string
	Capture    *string
	FFMPEGPath *string
	Debug      *bool
	Help       *bool
}

// Bind registers the command-line flags on fs.
func Bind(fs *flag.FlagSet) *Options {
	return &Options{
		ConfigFile: fs.String("config", "", "JSON config file (GLSCAFFOLD_CONFIG env var if not set)"),
		Title:      fs.String("title", "glscaffold", "Window title"),
		Width:      fs.Int("width", 800, "Window width"),
		Height:     fs.Int("height", 600, "Window height"),
		Once:       fs.Bool("once", false, "Stop after the first frame"),
		Hidden:     fs.Bool("hidden", false, "Do not show the window (with -once, exits without drawing)"),
		Platform:   fs.String("platform", PlatformGLFW, "Windowing platform: glfw or egl"),
		GLES:       fs.Bool("gles", false, "Only try an OpenGL ES context"),
		ShaderFile: fs.String("shader", "", "Fragment shader file defining mainImage"),
		Capture:    fs.String("capture", "", "Write the first frame to this image file (requires -once)"),
		FFMPEGPath: fs.String("ffmpeg", "", "Path to ffmpeg executable (GLSCAFFOLD_FFMPEG env var if not set)"),
		Debug:      fs.Bool("debug", false, "Enable debug logging"),
		Help:       fs.Bool("help", false, "Show help message"),
	}
}

// Parse binds the flags, parses args, then fills unset options from the
// environment and the config file.
func Parse(fs *flag.FlagSet, args []string, getenv func(string) string) (*Options, error) {
	o := Bind(fs)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if *o.ConfigFile == "" {
		*o.ConfigFile = getenv("GLSCAFFOLD_CONFIG")
	}
	if *o.ConfigFile != "" {
		data, err := os.ReadFile(*o.ConfigFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := o.ApplyJSON(data, set); err != nil {
			return nil, err
		}
	}
	if *o.FFMPEGPath == "" {
		*o.FFMPEGPath = getenv("GLSCAFFOLD_FFMPEG")
	}
	return o, nil
}

// ApplyJSON copies values from a JSON config document into o, skipping any
// option named in set.
func (o *Options) ApplyJSON(data []byte, set map[string]bool) error {
	if !gjson.ValidBytes(data) {
		return errors.New("config is not valid JSON")
	}
	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		return errors.New("config must be a JSON object")
	}

	strs := map[string]*string{
		"title":    o.Title,
		"platform": o.Platform,
		"shader":   o.ShaderFile,
		"capture":  o.Capture,
		"ffmpeg":   o.FFMPEGPath,
	}
	ints := map[string]*int{
		"width":  o.Width,
		"height": o.Height,
	}
	bools := map[string]*bool{
		"once":   o.Once,
		"hidden": o.Hidden,
		"gles":   o.GLES,
		"debug":  o.Debug,
	}

	var err error
	doc.ForEach(func(key, value gjson.Result) bool {
		name := key.String()
		if set[name] {
			return true
		}
		if p, ok := strs[name]; ok {
			if value.Type != gjson.String {
				err = fmt.Errorf("config %q must be a string", name)
				return false
			}
			*p = value.String()
		} else if p, ok := ints[name]; ok {
			if value.Type != gjson.Number {
				err = fmt.Errorf("config %q must be a number", name)
				return false
			}
			*p = int(value.Int())
		} else if p, ok := bools[name]; ok {
			if value.Type != gjson.True && value.Type != gjson.False {
				err = fmt.Errorf("config %q must be a boolean", name)
				return false
			}
			*p = value.Bool()
		} else {
			err = fmt.Errorf("unknown config key %q", name)
			return false
		}
		return true
	})
	return err
}

// Validate reports conflicting or out-of-range options.
func (o *Options) Validate() error {
	if *o.Width <= 0 || *o.Height <= 0 {
		return fmt.Errorf("invalid window size %dx%d", *o.Width, *o.Height)
	}
	switch *o.Platform {
	case PlatformGLFW:
	case PlatformEGL:
		if !*o.Once {
			return errors.New("-platform egl requires -once")
		}
	default:
		return fmt.Errorf("unknown platform %q", *o.Platform)
	}
	if *o.Capture != "" {
		if !*o.Once {
			return errors.New("-capture requires -once")
		}
		if *o.Hidden && *o.Platform == PlatformGLFW {
			return errors.New("-capture cannot be used with -hidden: a hidden single-shot run draws nothing")
		}
	}
	return nil
}
