package loader

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.SetRGBA(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return buf.Bytes()
}

func writePNG(t *testing.T, w, h int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tex.png")
	if err := os.WriteFile(path, encodePNG(t, w, h), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoadFile(t *testing.T) {
	path := writePNG(t, 4, 2)
	l := NewLoader()

	tex, err := l.Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if tex.Width != 4 || tex.Height != 2 || !tex.Valid() {
		t.Fatalf("texture = %dx%d valid=%v", tex.Width, tex.Height, tex.Valid())
	}
	if tex.Pixels[0] != 255 || tex.Pixels[3] != 255 {
		t.Errorf("first pixel = %v, want red", tex.Pixels[:4])
	}
	if _, ok := l.Get(path); !ok {
		t.Error("texture not cached")
	}

	// The cache answers even after the file is gone.
	if err := os.Remove(path); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, err := l.Load(context.Background(), path); err != nil {
		t.Errorf("cached Load: %v", err)
	}
}

func TestLoadErrors(t *testing.T) {
	notImage := filepath.Join(t.TempDir(), "plain.txt")
	if err := os.WriteFile(notImage, []byte("hello"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	tests := []struct {
		name   string
		source string
		empty  bool
	}{
		{"blank", "   ", true},
		{"missing file", filepath.Join(t.TempDir(), "nope.png"), false},
		{"not an image", notImage, false},
	}
	l := NewLoader()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := l.Load(context.Background(), tt.source)
			if err == nil {
				t.Fatal("expected an error")
			}
			if got := errors.Is(err, ErrEmptySource); got != tt.empty {
				t.Errorf("errors.Is(ErrEmptySource) = %v, want %v", got, tt.empty)
			}
		})
	}
	if len(l.Textures()) != 0 {
		t.Error("failed loads were cached")
	}
}

func TestLoadHTTP(t *testing.T) {
	body := encodePNG(t, 8, 8)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/base.png" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(body)
	}))
	defer srv.Close()

	l := NewLoader(WithHTTPClient(srv.Client()))

	tex, err := l.Load(context.Background(), srv.URL+"/base.png")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if tex.Width != 8 || tex.Height != 8 {
		t.Errorf("size = %dx%d, want 8x8", tex.Width, tex.Height)
	}

	if _, err := l.Load(context.Background(), srv.URL+"/missing.png"); err == nil {
		t.Error("expected an error for a 404")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := l.Load(ctx, srv.URL+"/other.png"); !errors.Is(err, context.Canceled) {
		t.Errorf("cancelled Load error = %v, want context.Canceled", err)
	}
}

func TestLoadPairFallback(t *testing.T) {
	path := writePNG(t, 2, 2)
	l := NewLoader(WithFallbackChecker(16, 4))

	base, detail, err := l.LoadPair(context.Background(), path, "")
	if err != nil {
		t.Fatalf("LoadPair: %v", err)
	}
	if base.Width != 2 {
		t.Errorf("base width = %d, want 2", base.Width)
	}
	if detail.Width != 16 || detail.Height != 16 || !detail.Valid() {
		t.Errorf("detail = %dx%d, want the 16px checker", detail.Width, detail.Height)
	}

	if _, _, err := l.LoadPair(context.Background(), filepath.Join(t.TempDir(), "x.png"), ""); err == nil {
		t.Error("expected the base error to surface")
	}
}

func TestChecker(t *testing.T) {
	tex := checker(4, 2)
	if !tex.Valid() {
		t.Fatal("checker texture invalid")
	}
	// (0,0) is light, (2,0) is dark.
	if tex.Pixels[0] != 200 || tex.Pixels[2*4] != 90 {
		t.Errorf("pixels = %d, %d", tex.Pixels[0], tex.Pixels[2*4])
	}
	if got := checker(0, 0); got.Width != 1 || !got.Valid() {
		t.Errorf("degenerate checker = %dx%d", got.Width, got.Height)
	}
}

func TestWithTexture(t *testing.T) {
	seed := checker(2, 1)
	l := NewLoader(WithTexture("seed", seed))
	got, err := l.Load(context.Background(), "seed")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Width != 2 {
		t.Errorf("width = %d, want 2", got.Width)
	}
}
