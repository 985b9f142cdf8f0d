package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Window.Width != 1280 || cfg.Renderer.MSAA != 4 || cfg.Page.Height != 3000 {
		t.Errorf("defaults = %+v", cfg)
	}
}

func TestLoadConfigOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
window:
  title: demo
renderer:
  msaa: 1
  vsync: true
page:
  height: 5000
textures:
  base: https://example.com/base.jpg
headless:
  frames: 10
  script:
    - frame: 2
      offset: 1200
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Window.Title != "demo" || cfg.Window.Width != 1280 {
		t.Errorf("window = %+v, want title demo and default width", cfg.Window)
	}
	if cfg.Renderer.MSAA != 1 || !cfg.Renderer.VSync {
		t.Errorf("renderer = %+v", cfg.Renderer)
	}
	if cfg.Page.Height != 5000 || cfg.Page.WheelStep != 100 {
		t.Errorf("page = %+v", cfg.Page)
	}
	if cfg.Textures.Base != "https://example.com/base.jpg" || cfg.Textures.Detail != "" {
		t.Errorf("textures = %+v", cfg.Textures)
	}
	if len(cfg.Headless.Script) != 1 || cfg.Headless.Script[0].Offset != 1200 || cfg.Headless.Hz != 60 {
		t.Errorf("headless = %+v", cfg.Headless)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"bad yaml", "window: [", "failed to parse"},
		{"msaa", "renderer:\n  msaa: 2\n", "renderer.msaa"},
		{"size", "window:\n  width: 0\n", "window size"},
		{"steps", "page:\n  wheel_step: -1\n", "wheel_step"},
		{"script", "headless:\n  script:\n    - frame: -3\n", "headless.script[0]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.body))
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}

	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestValidateJoinsErrors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Window.Title = " "
	cfg.FrameLimit = -1
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected an error")
	}
	for _, want := range []string{"window.title", "frame_limit"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %q", err, want)
		}
	}
}
