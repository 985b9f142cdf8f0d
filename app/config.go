package app

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the application configuration loaded from YAML.
// Animation constants are fixed and intentionally absent.
type Config struct {
	Window     WindowConfig   `yaml:"window"`
	Renderer   RendererConfig `yaml:"renderer"`
	Page       PageConfig     `yaml:"page"`
	Textures   TexturesConfig `yaml:"textures"`
	FrameLimit float64        `yaml:"frame_limit"` // frames per second, 0 = uncapped
	Profiling  bool           `yaml:"profiling"`
	Verbose    bool           `yaml:"verbose"`
	Headless   HeadlessConfig `yaml:"headless"`
}

// WindowConfig describes the native window.
type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// RendererConfig selects renderer quality settings.
type RendererConfig struct {
	MSAA     int  `yaml:"msaa"` // 1 or 4
	VSync    bool `yaml:"vsync"`
	Software bool `yaml:"software"` // force the fallback adapter
}

// PageConfig describes the virtual scrolling document.
type PageConfig struct {
	Height    float32 `yaml:"height"`     // document scroll height in px
	WheelStep float32 `yaml:"wheel_step"` // px per wheel notch
	KeyStep   float32 `yaml:"key_step"`   // px per arrow key press
}

// TexturesConfig holds the box texture sources. Each is a file path or an http(s) URL; blank uses a checker.
type TexturesConfig struct {
	Base   string `yaml:"base"`
	Detail string `yaml:"detail"`
}

// HeadlessConfig drives RunHeadless.
type HeadlessConfig struct {
	Frames int           `yaml:"frames"`
	Hz     float64       `yaml:"hz"`
	Script []ScrollEvent `yaml:"script"`
}

// ScrollEvent scrolls the page to Offset before frame Frame runs.
type ScrollEvent struct {
	Frame  int     `yaml:"frame"`
	Offset float32 `yaml:"offset"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		Window: WindowConfig{
			Title:  "oxy-scroll",
			Width:  1280,
			Height: 720,
		},
		Renderer: RendererConfig{
			MSAA: 4,
		},
		Page: PageConfig{
			Height:    3000,
			WheelStep: 100,
			KeyStep:   40,
		},
		Headless: HeadlessConfig{
			Frames: 600,
			Hz:     60,
		},
	}
}

// LoadConfig reads a YAML file over DefaultConfig and validates the result.
// Keys missing from the file keep their defaults.
//
// Parameters:
//   - path: the YAML file, empty for defaults only
//
// Returns:
//   - Config: the loaded configuration
//   - error: error if the file cannot be read, parsed or validated
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, cfg.Validate()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}

	log.Printf("[Config] loaded %s", path)
	return cfg, nil
}

// Validate reports every invalid field at once.
func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Window.Title) == "" {
		errs = append(errs, errors.New("window.title is empty"))
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	if c.Renderer.MSAA != 1 && c.Renderer.MSAA != 4 {
		errs = append(errs, fmt.Errorf("renderer.msaa %d must be 1 or 4", c.Renderer.MSAA))
	}
	if c.Page.Height < 0 {
		errs = append(errs, fmt.Errorf("page.height %.1f is negative", c.Page.Height))
	}
	if c.Page.WheelStep <= 0 || c.Page.KeyStep <= 0 {
		errs = append(errs, errors.New("page.wheel_step and page.key_step must be positive"))
	}
	if c.FrameLimit < 0 {
		errs = append(errs, fmt.Errorf("frame_limit %.1f is negative", c.FrameLimit))
	}
	if c.Headless.Frames < 0 {
		errs = append(errs, fmt.Errorf("headless.frames %d is negative", c.Headless.Frames))
	}
	if c.Headless.Hz < 0 {
		errs = append(errs, fmt.Errorf("headless.hz %.1f is negative", c.Headless.Hz))
	}
	for i, ev := range c.Headless.Script {
		if ev.Frame < 0 {
			errs = append(errs, fmt.Errorf("headless.script[%d].frame %d is negative", i, ev.Frame))
		}
	}
	return errors.Join(errs...)
}
