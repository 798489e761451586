package transcript

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// fakeProvider serves canned tracks and a canned default fetch.
type fakeProvider struct {
	tracks     []Track
	listErr    error
	defaults   []any
	defaultErr error

	defaultCalls int
}

func (p *fakeProvider) ListTracks(ctx context.Context, videoID string) ([]Track, error) {
	return p.tracks, p.listErr
}

func (p *fakeProvider) DefaultEntries(ctx context.Context, videoID string) ([]any, error) {
	p.defaultCalls++
	return p.defaults, p.defaultErr
}

func rawEntries(texts ...string) []any {
	raws := make([]any, len(texts))
	for i, text := range texts {
		raws[i] = map[string]any{"text": text, "start": float64(i)}
	}
	return raws
}

func TestFetchSelectedTrack(t *testing.T) {
	p := &fakeProvider{
		tracks: []Track{
			trackWithSource("en", &fakeSource{count: 2}),
			trackWithSource("es", &fakeSource{count: 4}),
		},
	}

	entries, report, err := Fetch(context.Background(), p, "dQw4w9WgXcQ", Selection{Index: 2})
	if err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}
	if len(entries) != 4 {
		t.Errorf("Fetch() returned %d entries, want 4 (second track)", len(entries))
	}
	if report.IndexFellBack || report.UsedDefault {
		t.Errorf("Fetch() report = %+v, want no fallbacks for a valid index", report)
	}
	if report.Track.LanguageCode != "es" {
		t.Errorf("report.Track = %+v, want the chosen es track", report.Track)
	}
	if p.defaultCalls != 0 {
		t.Errorf("default fetch called %d times, want 0", p.defaultCalls)
	}
}

func TestFetchReportsInvalidIndexFallback(t *testing.T) {
	p := &fakeProvider{
		tracks: []Track{
			trackWithSource("en", &fakeSource{count: 2}),
			trackWithSource("es", &fakeSource{count: 4}),
		},
	}

	// asking for track 9 of 2 must substitute the first track, and that
	// substitution must be visible to the caller
	entries, report, err := Fetch(context.Background(), p, "dQw4w9WgXcQ", Selection{Index: 9})
	if err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("Fetch() returned %d entries, want 2 (first track)", len(entries))
	}
	if !report.IndexFellBack {
		t.Error("report.IndexFellBack = false, want true for an out-of-range index")
	}
	if report.Track.LanguageCode != "en" {
		t.Errorf("report.Track = %+v, want the substituted en track", report.Track)
	}
}

func TestFetchFullestSelection(t *testing.T) {
	p := &fakeProvider{
		tracks: []Track{
			trackWithSource("en", &fakeSource{count: 1}),
			trackWithSource("es", &fakeSource{count: 6}),
		},
	}

	entries, report, err := Fetch(context.Background(), p, "dQw4w9WgXcQ", Selection{Fullest: true})
	if err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}
	if len(entries) != 6 {
		t.Errorf("Fetch() returned %d entries, want 6 (fullest track)", len(entries))
	}
	if report.Track.LanguageCode != "es" {
		t.Errorf("report.Track = %+v, want the fullest es track", report.Track)
	}
}

func TestFetchNoTracks(t *testing.T) {
	tests := []struct {
		name string
		p    *fakeProvider
	}{
		{"empty listing", &fakeProvider{}},
		{"failed listing", &fakeProvider{listErr: errors.New("boom")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Fetch(context.Background(), tt.p, "dQw4w9WgXcQ", Selection{})
			if !errors.Is(err, ErrNoTracks) {
				t.Errorf("Fetch() error = %v, want ErrNoTracks", err)
			}
		})
	}
}

func TestFetchFallsBackToDefault(t *testing.T) {
	p := &fakeProvider{
		tracks: []Track{
			trackWithSource("en", &fakeSource{err: errors.New("track gone")}),
		},
		defaults: rawEntries("from", "fallback"),
	}

	entries, report, err := Fetch(context.Background(), p, "dQw4w9WgXcQ", Selection{})
	if err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}
	if len(entries) != 2 || entries[0].Text != "from" {
		t.Errorf("Fetch() = %+v, want the fallback entries", entries)
	}
	if !report.UsedDefault {
		t.Error("report.UsedDefault = false, want true when the fallback tier served")
	}
	if report.Track != (Track{}) {
		t.Errorf("report.Track = %+v, want zero track for a default fetch", report.Track)
	}
	if p.defaultCalls != 1 {
		t.Errorf("default fetch called %d times, want 1", p.defaultCalls)
	}
}

func TestFetchBothTiersFail(t *testing.T) {
	p := &fakeProvider{
		tracks: []Track{
			trackWithSource("en", &fakeSource{err: errors.New("track gone")}),
		},
		defaultErr: errors.New("default gone"),
	}

	_, _, err := Fetch(context.Background(), p, "dQw4w9WgXcQ", Selection{})

	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("Fetch() error = %v, want *FetchError", err)
	}
	msg := fetchErr.Error()
	if !strings.Contains(msg, "track gone") || !strings.Contains(msg, "default gone") {
		t.Errorf("FetchError message %q should carry both tier errors", msg)
	}
}

func TestFetchEmptyTranscript(t *testing.T) {
	p := &fakeProvider{
		tracks: []Track{
			trackWithSource("en", &fakeSource{count: 0}),
		},
	}

	_, _, err := Fetch(context.Background(), p, "dQw4w9WgXcQ", Selection{})
	if !errors.Is(err, ErrEmptyTranscript) {
		t.Errorf("Fetch() error = %v, want ErrEmptyTranscript", err)
	}
}
