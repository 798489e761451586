package transcript

import (
	"fmt"
	"strings"
)

// default paragraph gap threshold in seconds
const DefaultGapSeconds = 1.25

// collapses embedded newlines to spaces and trims
func cleanText(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, "\n", " "))
}

// Timestamped renders one "[12.34s] text" line per non-empty entry.
func Timestamped(entries []Entry) string {
	var out []string
	for _, e := range entries {
		text := cleanText(e.Text)
		if text == "" {
			continue
		}
		out = append(out, fmt.Sprintf("[%.2fs] %s", e.Start, text))
	}
	return strings.TrimSpace(strings.Join(out, "\n")) + "\n"
}

// Lines renders one text line per non-empty entry, no timestamps.
func Lines(entries []Entry) string {
	var out []string
	for _, e := range entries {
		text := cleanText(e.Text)
		if text == "" {
			continue
		}
		out = append(out, text)
	}
	return strings.TrimSpace(strings.Join(out, "\n")) + "\n"
}

// Paragraphs merges entries into paragraphs, starting a new one whenever the
// start-time gap between two consecutive entries exceeds gapSeconds.
//
// The gap is measured against the previous entry's start, not the start of
// the current paragraph, so a long run of sub-threshold gaps never forces a
// break no matter how far the paragraph drifts. That is a known
// characteristic of the algorithm, kept on purpose.
func Paragraphs(entries []Entry, gapSeconds float64) string {
	var (
		paras   []string
		current []string
		prev    float64
		hasPrev bool
	)

	commit := func() {
		if p := strings.TrimSpace(strings.Join(current, " ")); p != "" {
			paras = append(paras, p)
		}
	}

	for _, e := range entries {
		text := cleanText(e.Text)
		if text == "" {
			continue
		}
		if hasPrev && e.Start-prev > gapSeconds {
			commit()
			current = []string{text}
		} else {
			current = append(current, text)
		}
		prev = e.Start
		hasPrev = true
	}
	commit()

	return strings.TrimSpace(strings.Join(paras, "\n\n")) + "\n"
}
