package metadata

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func withEndpoint(t *testing.T, handler http.HandlerFunc) {
	t.Helper()
	srv := httptest.NewServer(handler)
	old := endpoint
	endpoint = srv.URL
	t.Cleanup(func() {
		endpoint = old
		srv.Close()
	})
}

func TestFetch(t *testing.T) {
	withEndpoint(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("url"); got != "https://youtu.be/dQw4w9WgXcQ" {
			t.Errorf("oEmbed url param = %q", got)
		}
		fmt.Fprint(w, `{"title": "  A Video  ", "author_name": "A Channel"}`)
	})

	info := Fetch(context.Background(), "dQw4w9WgXcQ")
	if info.Title != "A Video" || info.Channel != "A Channel" {
		t.Errorf("Fetch() = %+v, want trimmed title and channel", info)
	}
	if info.URL != "https://youtu.be/dQw4w9WgXcQ" {
		t.Errorf("Fetch() URL = %q", info.URL)
	}
}

func TestFetchFailsOpen(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"http error", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "nope", http.StatusNotFound)
		}},
		{"bad json", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, "not json")
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withEndpoint(t, tt.handler)

			info := Fetch(context.Background(), "dQw4w9WgXcQ")
			if info.Title != "" || info.Channel != "" {
				t.Errorf("Fetch() = %+v, want empty metadata", info)
			}
			if info.URL != "https://youtu.be/dQw4w9WgXcQ" {
				t.Errorf("Fetch() URL = %q, want watch URL even on failure", info.URL)
			}
		})
	}
}

func TestFetchUnreachableFailsOpen(t *testing.T) {
	old := endpoint
	endpoint = "http://127.0.0.1:1"
	t.Cleanup(func() { endpoint = old })

	info := Fetch(context.Background(), "dQw4w9WgXcQ")
	if info.Title != "" || info.Channel != "" {
		t.Errorf("Fetch() = %+v, want empty metadata", info)
	}
}

func TestHeader(t *testing.T) {
	info := Info{Title: "A Video", Channel: "A Channel", URL: "https://youtu.be/dQw4w9WgXcQ"}
	h := info.Header()

	for _, want := range []string{
		"Title: A Video\n",
		"Channel: A Channel\n",
		"Video: https://youtu.be/dQw4w9WgXcQ\n",
		strings.Repeat("-", 70) + "\n",
	} {
		if !strings.Contains(h, want) {
			t.Errorf("Header() missing %q:\n%s", want, h)
		}
	}
}

func TestHeaderUnknownFields(t *testing.T) {
	h := Info{URL: "https://youtu.be/x"}.Header()
	if !strings.Contains(h, "Unknown Title") || !strings.Contains(h, "Unknown Channel") {
		t.Errorf("Header() should fall back to Unknown labels:\n%s", h)
	}
}
