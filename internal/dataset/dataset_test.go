package dataset

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const csvBody = "chart_week,current_week,title,performer,last_week,peak_pos,wks_on_chart\n" +
	"2000-01-01,1,X,A,NA,1,1\n"

type countingFetcher struct {
	calls int
	body  []byte
	err   error
}

func (f *countingFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	f.calls++
	return f.body, f.err
}

func TestLoadUsesCache(t *testing.T) {
	cachePath := filepath.Join(t.TempDir(), "hot-100-current.csv")
	if err := os.WriteFile(cachePath, []byte(csvBody), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	fetcher := &countingFetcher{}
	var out bytes.Buffer
	p := &Provider{CachePath: cachePath, SourceURL: "https://example.invalid", Fetcher: fetcher, Out: &out}

	data, err := p.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if string(data) != csvBody {
		t.Errorf("Load() = %q, want cache contents", data)
	}
	if fetcher.calls != 0 {
		t.Errorf("Expected no fetch with a populated cache, got %d", fetcher.calls)
	}
	if out.Len() != 0 {
		t.Errorf("Expected no progress output, got %q", out.String())
	}
}

func TestLoadFetchesAndPopulatesCache(t *testing.T) {
	cachePath := filepath.Join(t.TempDir(), "hot-100-current.csv")
	fetcher := &countingFetcher{body: []byte(csvBody)}
	var out bytes.Buffer
	p := &Provider{CachePath: cachePath, SourceURL: "https://example.invalid", Fetcher: fetcher, Out: &out}

	data, err := p.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if string(data) != csvBody {
		t.Errorf("Load() = %q", data)
	}
	if !strings.Contains(out.String(), "Fetching data from source...") {
		t.Errorf("Expected fetch notice, got %q", out.String())
	}

	cached, err := os.ReadFile(cachePath)
	if err != nil {
		t.Fatalf("cache not written: %v", err)
	}
	if string(cached) != csvBody {
		t.Errorf("cache = %q, want fetched body", cached)
	}

	// Second load is served from the cache.
	if _, err := p.Load(context.Background()); err != nil {
		t.Fatalf("Load() repeat error: %v", err)
	}
	if fetcher.calls != 1 {
		t.Errorf("Expected exactly 1 fetch, got %d", fetcher.calls)
	}
}

func TestLoadRefetchesEmptyCache(t *testing.T) {
	cachePath := filepath.Join(t.TempDir(), "hot-100-current.csv")
	if err := os.WriteFile(cachePath, nil, 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	fetcher := &countingFetcher{body: []byte(csvBody)}
	p := &Provider{CachePath: cachePath, SourceURL: "https://example.invalid", Fetcher: fetcher}

	data, err := p.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if string(data) != csvBody {
		t.Errorf("Load() = %q, want fetched body", data)
	}
	if fetcher.calls != 1 {
		t.Errorf("Expected exactly 1 fetch for an empty cache, got %d", fetcher.calls)
	}

	cached, err := os.ReadFile(cachePath)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(cached) != csvBody {
		t.Errorf("cache = %q, want fetched body", cached)
	}
}

func TestLoadEmptyFetchBody(t *testing.T) {
	cachePath := filepath.Join(t.TempDir(), "hot-100-current.csv")
	fetcher := &countingFetcher{}
	p := &Provider{CachePath: cachePath, SourceURL: "https://example.invalid", Fetcher: fetcher}

	data, err := p.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(data) != 0 || fetcher.calls != 1 {
		t.Errorf("Load() = %q after %d fetches, want empty body after 1", data, fetcher.calls)
	}
}

func TestLoadFetchErrorDoesNotWriteCache(t *testing.T) {
	cachePath := filepath.Join(t.TempDir(), "hot-100-current.csv")
	fetcher := &countingFetcher{err: ErrFetch}
	p := &Provider{CachePath: cachePath, SourceURL: "https://example.invalid", Fetcher: fetcher}

	if _, err := p.Load(context.Background()); !errors.Is(err, ErrFetch) {
		t.Fatalf("Expected ErrFetch, got %v", err)
	}
	if _, err := os.Stat(cachePath); !os.IsNotExist(err) {
		t.Errorf("Cache should not exist after failed fetch, stat err: %v", err)
	}
}

func TestLoadCacheReadError(t *testing.T) {
	// A directory at the cache path can't be read as a file.
	cachePath := t.TempDir()
	fetcher := &countingFetcher{body: []byte(csvBody)}
	p := &Provider{CachePath: cachePath, Fetcher: fetcher}

	if _, err := p.Load(context.Background()); err == nil {
		t.Fatal("Expected error reading a directory as cache")
	}
	if fetcher.calls != 0 {
		t.Errorf("Read errors other than not-exist must not fall back to fetch")
	}
}

func TestHTTPFetcher(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(csvBody))
	}))
	defer server.Close()

	f := NewHTTPFetcher()
	body, err := f.Fetch(context.Background(), server.URL+"/hot-100.csv")
	if err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}
	if string(body) != csvBody {
		t.Errorf("Fetch() = %q", body)
	}

	_, err = f.Fetch(context.Background(), server.URL+"/missing")
	if !errors.Is(err, ErrFetch) {
		t.Fatalf("Expected ErrFetch, got %v", err)
	}
	if !strings.Contains(err.Error(), "404 Not Found") {
		t.Errorf("Error should carry the status, got %q", err.Error())
	}
}
