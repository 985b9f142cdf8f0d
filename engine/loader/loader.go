package loader

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"log"
	"strings"
	"sync"

	"github.com/Carmen-Shannon/oxy-scroll/common"
)

// ErrEmptySource is returned by Load when the source string is blank.
var ErrEmptySource = errors.New("texture source is empty")

// LoaderBackendType identifies where texture bytes are fetched from.
type LoaderBackendType int

const (
	// BackendTypeFile reads textures from the local filesystem.
	BackendTypeFile LoaderBackendType = iota
	// BackendTypeHTTP fetches textures from an http or https URL.
	BackendTypeHTTP
)

// loader is the implementation of the Loader interface.
type loader struct {
	mu sync.RWMutex

	textureCache map[string]common.TextureStagingData

	backends map[LoaderBackendType]loaderBackend

	// fallbackSize and fallbackCell describe the procedural checker used for missing sources.
	fallbackSize int
	fallbackCell int
}

// Loader fetches encoded images and decodes them into staging data ready for upload.
// Results are cached by source so the same texture is only decoded once.
// Safe for use from worker goroutines.
type Loader interface {
	// Load fetches and decodes a single texture.
	// Sources starting with http:// or https:// are fetched over the network, anything else is a file path.
	//
	// Parameters:
	//   - ctx: cancels a network fetch
	//   - source: file path or URL
	//
	// Returns:
	//   - common.TextureStagingData: the decoded RGBA pixels
	//   - error: ErrEmptySource for a blank source, or a wrapped fetch or decode error
	Load(ctx context.Context, source string) (common.TextureStagingData, error)

	// LoadPair loads the base and detail textures of the box.
	// A blank source is replaced with the procedural checker so the box still renders.
	//
	// Parameters:
	//   - ctx: cancels network fetches
	//   - base: source of the base colour texture
	//   - detail: source of the detail texture
	//
	// Returns:
	//   - common.TextureStagingData: base texture
	//   - common.TextureStagingData: detail texture
	//   - error: first load error encountered
	LoadPair(ctx context.Context, base, detail string) (common.TextureStagingData, common.TextureStagingData, error)

	// Get returns a cached texture and whether it was present.
	Get(source string) (common.TextureStagingData, bool)

	// Textures returns a copy of the texture cache.
	//
	// Returns:
	//   - map[string]common.TextureStagingData: cached textures keyed by source
	Textures() map[string]common.TextureStagingData

	// Fallback returns the procedural checker texture.
	Fallback() common.TextureStagingData
}

var _ Loader = &loader{}

// NewLoader creates a new Loader with the file and http backends registered.
//
// Parameters:
//   - options: a variadic list of LoaderBuilderOption functions to configure the Loader
//
// Returns:
//   - Loader: the configured loader
func NewLoader(options ...LoaderBuilderOption) Loader {
	l := &loader{
		mu:           sync.RWMutex{},
		textureCache: make(map[string]common.TextureStagingData),
		backends: map[LoaderBackendType]loaderBackend{
			BackendTypeFile: newFileLoaderBackend(),
			BackendTypeHTTP: newHTTPLoaderBackend(nil),
		},
		fallbackSize: 64,
		fallbackCell: 8,
	}

	for _, option := range options {
		option(l)
	}
	return l
}

func (l *loader) Load(ctx context.Context, source string) (common.TextureStagingData, error) {
	source = strings.TrimSpace(source)
	if source == "" {
		return common.TextureStagingData{}, ErrEmptySource
	}

	if cached, ok := l.Get(source); ok {
		return cached, nil
	}

	backend, err := l.resolveBackend(source)
	if err != nil {
		return common.TextureStagingData{}, err
	}

	data, err := backend.Fetch(ctx, source)
	if err != nil {
		return common.TextureStagingData{}, fmt.Errorf("failed to load texture %s: %w", source, err)
	}

	src := common.TextureSource{Name: source, Data: data}
	staging, err := src.Decode()
	if err != nil {
		return common.TextureStagingData{}, err
	}

	l.mu.Lock()
	l.textureCache[source] = staging
	l.mu.Unlock()

	log.Printf("[Loader] loaded %s (%dx%d)", source, staging.Width, staging.Height)
	return staging, nil
}

func (l *loader) LoadPair(ctx context.Context, base, detail string) (common.TextureStagingData, common.TextureStagingData, error) {
	baseTex, err := l.loadOrFallback(ctx, base)
	if err != nil {
		return common.TextureStagingData{}, common.TextureStagingData{}, err
	}
	detailTex, err := l.loadOrFallback(ctx, detail)
	if err != nil {
		return common.TextureStagingData{}, common.TextureStagingData{}, err
	}
	return baseTex, detailTex, nil
}

func (l *loader) Get(source string) (common.TextureStagingData, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	t, ok := l.textureCache[source]
	return t, ok
}

func (l *loader) Textures() map[string]common.TextureStagingData {
	l.mu.RLock()
	defer l.mu.RUnlock()

	result := make(map[string]common.TextureStagingData, len(l.textureCache))
	for k, v := range l.textureCache {
		result[k] = v
	}
	return result
}

func (l *loader) Fallback() common.TextureStagingData {
	return checker(l.fallbackSize, l.fallbackCell)
}

func (l *loader) loadOrFallback(ctx context.Context, source string) (common.TextureStagingData, error) {
	tex, err := l.Load(ctx, source)
	if errors.Is(err, ErrEmptySource) {
		log.Printf("[Loader] no texture source given, using %dpx checker", l.fallbackSize)
		return l.Fallback(), nil
	}
	return tex, err
}

// resolveBackend selects the backend from the source scheme.
func (l *loader) resolveBackend(source string) (loaderBackend, error) {
	kind := BackendTypeFile
	lower := strings.ToLower(source)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		kind = BackendTypeHTTP
	}

	l.mu.RLock()
	defer l.mu.RUnlock()
	backend, ok := l.backends[kind]
	if !ok || backend == nil {
		return nil, fmt.Errorf("no loader backend registered for %s", source)
	}
	return backend, nil
}

// checker builds a two-tone grey checkerboard of size x size pixels with cell-sized squares.
func checker(size, cell int) common.TextureStagingData {
	if size <= 0 {
		size = 1
	}
	if cell <= 0 {
		cell = 1
	}
	light := color.RGBA{R: 200, G: 200, B: 200, A: 255}
	dark := color.RGBA{R: 90, G: 90, B: 90, A: 255}

	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if (x/cell+y/cell)%2 == 0 {
				img.SetRGBA(x, y, light)
			} else {
				img.SetRGBA(x, y, dark)
			}
		}
	}
	return common.ImageToStaging(img)
}
