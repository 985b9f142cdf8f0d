package loader

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
)

// maxTextureBytes bounds a single texture download.
const maxTextureBytes = 64 << 20

// loaderBackend fetches the encoded bytes of a texture.
// Concrete implementations (fileLoaderBackend, httpLoaderBackend) handle the transport.
type loaderBackend interface {
	// Fetch returns the raw encoded image at source.
	//
	// Parameters:
	//   - ctx: cancels the fetch where the transport supports it
	//   - source: file path or URL
	//
	// Returns:
	//   - []byte: encoded image bytes
	//   - error: error if the source cannot be read
	Fetch(ctx context.Context, source string) ([]byte, error)
}

type fileLoaderBackend struct{}

func newFileLoaderBackend() loaderBackend {
	return &fileLoaderBackend{}
}

func (b *fileLoaderBackend) Fetch(ctx context.Context, source string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(source)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return data, nil
}

type httpLoaderBackend struct {
	client *http.Client
}

// newHTTPLoaderBackend wraps client, or http.DefaultClient when nil.
func newHTTPLoaderBackend(client *http.Client) loaderBackend {
	if client == nil {
		client = http.DefaultClient
	}
	return &httpLoaderBackend{client: client}
}

func (b *httpLoaderBackend) Fetch(ctx context.Context, source string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := b.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxTextureBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return data, nil
}
