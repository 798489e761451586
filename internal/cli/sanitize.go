package cli

import (
	"regexp"
	"strings"
)

var (
	unsafeChars = regexp.MustCompile(`[^\w\-. ]+`)
	multiSpace  = regexp.MustCompile(`\s+`)
)

// sanitizeFilename strips characters that are unsafe in file names and
// collapses runs of whitespace. An empty result becomes "transcript".
func sanitizeFilename(name string) string {
	name = strings.TrimSpace(name)
	name = unsafeChars.ReplaceAllString(name, "_")
	name = strings.TrimSpace(multiSpace.ReplaceAllString(name, " "))
	if name == "" {
		return "transcript"
	}
	return name
}
