// Package videoid extracts the 11-character YouTube video ID from a URL or
// bare ID string.
package videoid

import (
	"errors"
	"regexp"
	"strings"
)

// ErrNoVideoID means the input contained no valid 11-character video ID.
var ErrNoVideoID = errors.New("no valid 11-character YouTube video ID found in input")

var (
	bareIDRe = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)
	urlIDRe  = regexp.MustCompile(`(?:v=|youtu\.be/|youtube\.com/(?:embed/|watch\?v=|shorts/))([A-Za-z0-9_-]{11})`)
)

// Extract returns the video ID found in s. A trimmed input that already is a
// bare 11-character ID is returned verbatim; otherwise the first ID reachable
// through a known URL marker (v=, youtu.be/, embed/, watch?v=, shorts/) wins.
func Extract(s string) (string, error) {
	s = strings.TrimSpace(s)
	if bareIDRe.MatchString(s) {
		return s, nil
	}
	if m := urlIDRe.FindStringSubmatch(s); m != nil {
		return m[1], nil
	}
	return "", ErrNoVideoID
}
