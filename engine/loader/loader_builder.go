package loader

import (
	"net/http"

	"github.com/Carmen-Shannon/oxy-scroll/common"
)

// LoaderBuilderOption is a functional option for configuring a Loader via NewLoader.
type LoaderBuilderOption func(*loader)

// WithHTTPClient sets the client used for http and https sources.
//
// Parameters:
//   - client: the http client, nil keeps http.DefaultClient
//
// Returns:
//   - LoaderBuilderOption: a function that applies the client option to a loader
func WithHTTPClient(client *http.Client) LoaderBuilderOption {
	return func(l *loader) {
		l.backends[BackendTypeHTTP] = newHTTPLoaderBackend(client)
	}
}

// WithFallbackChecker sets the size and cell size of the procedural checker used for blank sources.
func WithFallbackChecker(size, cell int) LoaderBuilderOption {
	return func(l *loader) {
		l.fallbackSize = size
		l.fallbackCell = cell
	}
}

// WithTexture pre-populates the texture cache.
//
// Parameters:
//   - source: the cache key
//   - tex: the decoded texture
//
// Returns:
//   - LoaderBuilderOption: a function that applies the texture option to a loader
func WithTexture(source string, tex common.TextureStagingData) LoaderBuilderOption {
	return func(l *loader) {
		l.textureCache[source] = tex
	}
}
