package registry

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestFetcher_Fetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"name": "Midnight Cash", "ticker": "MNC", "decimals": 6}`))
	}))
	defer server.Close()

	fetcher := NewFetcher(10 * time.Second)
	result := fetcher.Fetch(context.Background(), server.URL+"/mappings/x.json")

	if result.Err != nil {
		t.Fatalf("Fetch failed: %v", result.Err)
	}
	if got := result.Fields.String("name"); got != "Midnight Cash" {
		t.Errorf("name = %q", got)
	}
	if got := result.Fields.String("ticker"); got != "MNC" {
		t.Errorf("ticker = %q", got)
	}
}

func TestFetcher_EmptyURLIsNoData(t *testing.T) {
	fetcher := NewFetcher(10 * time.Second)
	result := fetcher.Fetch(context.Background(), "")

	if result.Err != nil {
		t.Errorf("empty locator is no data, not a failure: %v", result.Err)
	}
	if len(result.Fields) != 0 {
		t.Errorf("Fields = %v, want empty", result.Fields)
	}
}

func TestFetcher_Failures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"not found", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}},
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}},
		{"not json", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("<html>not json</html>"))
		}},
		{"json array not object", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`[1, 2, 3]`))
		}},
		{"json null not object", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`null`))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			fetcher := NewFetcher(10 * time.Second)
			result := fetcher.Fetch(context.Background(), server.URL)

			if result.Err == nil {
				t.Error("expected Err to be set")
			}
			if result.Fields == nil || len(result.Fields) != 0 {
				t.Errorf("Fields = %v, want empty map", result.Fields)
			}
		})
	}
}

func TestFetcher_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	fetcher := NewFetcher(20 * time.Millisecond)
	result := fetcher.Fetch(context.Background(), server.URL)

	if result.Err == nil {
		t.Error("expected timeout error")
	}
	if len(result.Fields) != 0 {
		t.Errorf("Fields = %v, want empty", result.Fields)
	}
}

func TestMetadata_String(t *testing.T) {
	m := Metadata{
		"name":     "Token",
		"decimals": float64(6),
		"nothing":  nil,
	}

	tests := []struct {
		key      string
		expected string
	}{
		{"name", "Token"},
		{"decimals", "6"},
		{"nothing", ""},
		{"absent", ""},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if got := m.String(tt.key); got != tt.expected {
				t.Errorf("String(%q) = %q, want %q", tt.key, got, tt.expected)
			}
		})
	}
}
