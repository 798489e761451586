package transcript

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrNoTracks means the provider listed no caption tracks at all.
	ErrNoTracks = errors.New("no caption tracks available for this video")
	// ErrEmptyTranscript means a fetch nominally succeeded but produced
	// zero entries.
	ErrEmptyTranscript = errors.New("transcript fetch returned 0 entries")
)

// FetchError reports that both the selected-track fetch and the
// default-fetch fallback failed. Both underlying errors are kept so the
// caller can tell which tier broke and why.
type FetchError struct {
	TrackErr    error
	FallbackErr error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch transcript:\n- track fetch error: %v\n- fallback error: %v",
		e.TrackErr, e.FallbackErr)
}

// how a track is chosen from the listing
type Selection struct {
	// Fullest enables the eager fullest-track heuristic.
	Fullest bool
	// Index is a 1-based track choice; values outside the listing fall
	// back to the first track. Ignored when Fullest is set.
	Index int
}

// Report describes how a fetch obtained its entries, so callers can tell
// the user about silent substitutions.
type Report struct {
	// Track is the track the entries came from; zero when the default
	// fallback produced them.
	Track Track
	// IndexFellBack is set when the requested track index was invalid
	// and the first track was used instead.
	IndexFellBack bool
	// UsedDefault is set when the selected-track fetch failed and the
	// entries came from the provider's default fetch.
	UsedDefault bool
}

type fetchState int

const (
	stateSelecting fetchState = iota
	stateFetchingSelected
	stateFetchingFallback
	stateSucceeded
	stateFailed
)

// Fetch acquires and normalizes a video's transcript. The control flow is a
// small sequential state machine rather than nested error handling so that
// the aggregated dual-tier failure stays a first-class value:
//
//	selecting -> fetchingSelected -> succeeded
//	                   |
//	                   v
//	          fetchingFallback -> succeeded | failed
//
// Neither tier is retried; re-prompting or retrying belongs to the caller.
func Fetch(ctx context.Context, p Provider, videoID string, sel Selection) ([]Entry, Report, error) {
	var report Report

	tracks, err := p.ListTracks(ctx, videoID)
	if err != nil {
		return nil, report, fmt.Errorf("%w: %v", ErrNoTracks, err)
	}
	if len(tracks) == 0 {
		return nil, report, ErrNoTracks
	}

	var (
		chosen   Track
		raws     []any
		trackErr error
		fbErr    error
	)
	for state := stateSelecting; ; {
		switch state {
		case stateSelecting:
			if sel.Fullest {
				chosen = SelectFullest(ctx, tracks)
			} else {
				chosen, report.IndexFellBack = SelectIndex(tracks, sel.Index)
			}
			report.Track = chosen
			state = stateFetchingSelected

		case stateFetchingSelected:
			raws, trackErr = chosen.Source.Entries(ctx)
			if trackErr != nil {
				state = stateFetchingFallback
			} else {
				state = stateSucceeded
			}

		case stateFetchingFallback:
			raws, fbErr = p.DefaultEntries(ctx, videoID)
			if fbErr != nil {
				state = stateFailed
			} else {
				report.Track = Track{}
				report.UsedDefault = true
				state = stateSucceeded
			}

		case stateSucceeded:
			entries := NormalizeAll(raws)
			if len(entries) == 0 {
				return nil, report, ErrEmptyTranscript
			}
			return entries, report, nil

		case stateFailed:
			return nil, report, &FetchError{TrackErr: trackErr, FallbackErr: fbErr}
		}
	}
}
