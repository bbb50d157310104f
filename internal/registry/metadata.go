package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Metadata is the decoded JSON object of one registry file. Keys are
// optional; absent or oddly typed values never fail the pipeline.
type Metadata map[string]interface{}

// String returns the value for key rendered as a string, or "" when the
// key is absent.
func (m Metadata) String(key string) string {
	v, ok := m[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

// MetadataResult distinguishes "no data" (empty Fields, nil Err) from a
// failed fetch (Err set). Callers that only need the reference behavior
// use Fields after checking nothing; Err exists for diagnostics.
type MetadataResult struct {
	Fields Metadata
	Err    error
}

// MetadataFetcher fetches the JSON content behind a raw-content locator
type MetadataFetcher interface {
	Fetch(ctx context.Context, rawURL string) MetadataResult
}

// Fetcher is the HTTP MetadataFetcher
type Fetcher struct {
	httpClient *http.Client
	timeout    time.Duration
}

// NewFetcher creates a fetcher whose every request is bounded by timeout,
// keeping total run time proportional to the number of changed files.
func NewFetcher(timeout time.Duration) *Fetcher {
	return &Fetcher{
		httpClient: &http.Client{Timeout: timeout},
		timeout:    timeout,
	}
}

// Fetch GETs the raw content and decodes it as a JSON object. An empty URL
// is "no data", not a failure. Every failure mode (transport, non-2xx,
// non-JSON, JSON that is not an object) is reported through Err and never
// propagated.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) MetadataResult {
	if rawURL == "" {
		return MetadataResult{Fields: Metadata{}}
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return MetadataResult{Fields: Metadata{}, Err: err}
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return MetadataResult{Fields: Metadata{}, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return MetadataResult{
			Fields: Metadata{},
			Err:    fmt.Errorf("unexpected status %d", resp.StatusCode),
		}
	}

	var fields Metadata
	if err := json.NewDecoder(resp.Body).Decode(&fields); err != nil {
		return MetadataResult{Fields: Metadata{}, Err: err}
	}
	if fields == nil {
		// "null" decodes without error but is not an object
		return MetadataResult{
			Fields: Metadata{},
			Err:    fmt.Errorf("metadata is not a JSON object"),
		}
	}

	return MetadataResult{Fields: fields}
}
