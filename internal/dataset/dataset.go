// Package dataset loads the raw Hot 100 CSV, preferring a local copy and
// falling back to the published export.
package dataset

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
)

const (
	DefaultSourceURL = "https://raw.githubusercontent.com/utdata/rwd-billboard-data/refs/heads/main/data-out/hot-100-current.csv"
	DefaultCachePath = "./hot-100-current.csv"
)

var ErrFetch = errors.New("failed to fetch data")

// Fetcher retrieves the body at a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Provider is a write-through cache in front of a Fetcher, keyed by a
// single file path. The cache is never invalidated.
type Provider struct {
	CachePath string
	SourceURL string
	Fetcher   Fetcher

	// Progress messages are written here. May be nil.
	Out io.Writer
}

func New(cachePath, sourceURL string, out io.Writer) *Provider {
	return &Provider{
		CachePath: cachePath,
		SourceURL: sourceURL,
		Fetcher:   NewHTTPFetcher(),
		Out:       out,
	}
}

// Load returns the cached dataset if the cache file exists and isn't empty.
// Otherwise it fetches the dataset once and writes it to the cache before
// returning.
func (p *Provider) Load(ctx context.Context) ([]byte, error) {
	data, err := os.ReadFile(p.CachePath)
	if err == nil && len(data) > 0 {
		return data, nil
	}
	// An empty file is what an interrupted cache write leaves behind.
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("reading cache %s: %w", p.CachePath, err)
	}

	if p.Out != nil {
		fmt.Fprintln(p.Out, "Fetching data from source...")
	}
	data, err = p.Fetcher.Fetch(ctx, p.SourceURL)
	if err != nil {
		return nil, err
	}

	if err := os.WriteFile(p.CachePath, data, 0644); err != nil {
		return nil, fmt.Errorf("writing cache %s: %w", p.CachePath, err)
	}
	return data, nil
}

type HTTPFetcher struct {
	client *http.Client
}

// NewHTTPFetcher returns a fetcher with no timeout; the export is large and
// a single attempt either completes or fails.
func NewHTTPFetcher() *HTTPFetcher {
	return &HTTPFetcher{client: &http.Client{}}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s", ErrFetch, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	return body, nil
}
