package counter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

var (
	// ErrStatus is returned when the endpoint answers with a non-2xx status.
	ErrStatus = errors.New("counter: unexpected status")
	// ErrPayload is returned when the body is not {"count": <non-negative integer>}.
	ErrPayload = errors.New("counter: malformed payload")
)

// CountPath is the counter endpoint relative to the API base URL.
const CountPath = "/srt-count"

// maxBody bounds how much of a response is read.
const maxBody = 1 << 16

// Fetcher reads the current counter value.
type Fetcher interface {
	Fetch(ctx context.Context) (int64, error)
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc func(ctx context.Context) (int64, error)

func (f FetcherFunc) Fetch(ctx context.Context) (int64, error) { return f(ctx) }

// HTTPFetcher reads GET {BaseURL}/srt-count.
type HTTPFetcher struct {
	BaseURL string
	Client  *http.Client
}

// NewHTTPFetcher creates a fetcher with its own client bounded by timeout.
func NewHTTPFetcher(baseURL string, timeout time.Duration) *HTTPFetcher {
	return &HTTPFetcher{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: timeout},
	}
}

type countPayload struct {
	Count *json.Number `json:"count"`
}

// Fetch performs one read of the counter endpoint.
func (f *HTTPFetcher) Fetch(ctx context.Context) (int64, error) {
	url := strings.TrimRight(f.BaseURL, "/") + CountPath
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("building counter request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("fetching counter: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBody))
		return 0, fmt.Errorf("%w: %d", ErrStatus, resp.StatusCode)
	}
	return decodeCount(io.LimitReader(resp.Body, maxBody))
}

func decodeCount(r io.Reader) (int64, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var p countPayload
	if err := dec.Decode(&p); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrPayload, err)
	}
	if p.Count == nil {
		return 0, fmt.Errorf("%w: missing count", ErrPayload)
	}
	n, err := p.Count.Int64()
	if err != nil {
		// accept integral floats such as 1500.0
		fl, ferr := p.Count.Float64()
		if ferr != nil || fl != float64(int64(fl)) {
			return 0, fmt.Errorf("%w: count %q is not an integer", ErrPayload, p.Count.String())
		}
		n = int64(fl)
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: negative count %d", ErrPayload, n)
	}
	return n, nil
}
