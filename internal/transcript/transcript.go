package transcript

import (
	"context"
	"fmt"
)

// single normalized caption entry
type Entry struct {
	Text     string
	Start    float64 // seconds
	Duration float64 // seconds
}

// one caption track variant (language/style) available for a video
type Track struct {
	Language     string
	LanguageCode string
	Generated    bool
	Source       EntrySource
}

// interface for fetching a track's raw entries; one-shot, may fail
type EntrySource interface {
	Entries(ctx context.Context) ([]any, error)
}

// interface for a caption provider
type Provider interface {
	// ListTracks returns the caption tracks available for a video.
	ListTracks(ctx context.Context, videoID string) ([]Track, error)
	// DefaultEntries fetches raw entries without an explicit track choice,
	// relying on the provider's own default-language resolution.
	DefaultEntries(ctx context.Context, videoID string) ([]any, error)
}

// Snippet is the attribute-shaped raw entry produced by XML caption
// payloads. Timing fields stay strings until normalization.
type Snippet struct {
	Text  string
	Start string
	Dur   string
}

// human-readable track label for listings
func (t Track) Description() string {
	kind := "MANUAL"
	if t.Generated {
		kind = "AUTO"
	}
	return fmt.Sprintf("%s (%s) - %s", t.Language, t.LanguageCode, kind)
}
