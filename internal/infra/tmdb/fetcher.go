package infra_tmdb

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

var (
	ErrNotFound     = errors.New("tmdb: not found")
	ErrUnauthorized = errors.New("tmdb: unauthorized")
	ErrUnavailable  = errors.New("tmdb: unavailable")
)

// Fetcher returns the raw JSON body of a TMDB API path.
type Fetcher interface {
	Fetch(ctx context.Context, path string, query url.Values) ([]byte, error)
}

type HTTPFetcher struct {
	client  *http.Client
	baseURL string
	apiKey  string
}

func NewHTTPFetcher(baseURL, apiKey string, timeout time.Duration) *HTTPFetcher {
	return &HTTPFetcher{
		client:  &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
	}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, path string, query url.Values) ([]byte, error) {
	q := url.Values{}
	for k, v := range query {
		q[k] = v
	}
	q.Set("api_key", f.apiKey)

	return f.get(ctx, f.baseURL+path+"?"+q.Encode())
}

// Download fetches an arbitrary URL, e.g. a poster from the image CDN.
func (f *HTTPFetcher) Download(ctx context.Context, rawURL string) ([]byte, error) {
	return f.get(ctx, rawURL)
}

func (f *HTTPFetcher) get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, errors.Join(ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, ErrUnauthorized
	case resp.StatusCode >= http.StatusBadRequest:
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Join(ErrUnavailable, err)
	}
	return body, nil
}
