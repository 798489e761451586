package transcript

import "context"

// SelectIndex picks a track by 1-based index. An index that is out of range
// (or zero/negative, i.e. "no choice made") falls back to the first track;
// the returned bool reports whether the fallback was taken.
func SelectIndex(tracks []Track, index int) (Track, bool) {
	if index >= 1 && index <= len(tracks) {
		return tracks[index-1], false
	}
	return tracks[0], true
}

// SelectFullest downloads every track and returns the one with the most
// entries. This is deliberately correctness-over-cost: each candidate is
// fetched in full so that an abridged default track loses to a complete one.
// A failed fetch counts as -1 (worse than an empty track); ties keep the
// first track seen. If every track fails, the first listed track is
// returned.
func SelectFullest(ctx context.Context, tracks []Track) Track {
	best := -1
	bestLen := -1
	for i, t := range tracks {
		n := -1
		if raws, err := t.Source.Entries(ctx); err == nil {
			n = len(raws)
		}
		if n > bestLen {
			bestLen = n
			best = i
		}
	}
	if best < 0 {
		return tracks[0]
	}
	return tracks[best]
}
