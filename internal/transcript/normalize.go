package transcript

import "strconv"

// Raw provider entries arrive in two shapes: a key-value map (JSON caption
// payloads) or a Snippet (XML attribute payloads). Normalize maps either to
// an Entry and never fails: a malformed timing field on one entry must not
// abort the whole transcript, so unparseable numbers default to 0.0 and
// missing text to "".
func Normalize(raw any) Entry {
	switch e := raw.(type) {
	case map[string]any:
		return Entry{
			Text:     textValue(e["text"]),
			Start:    secondsValue(e["start"]),
			Duration: secondsValue(e["duration"]),
		}
	case Snippet:
		return Entry{
			Text:     e.Text,
			Start:    parseSeconds(e.Start),
			Duration: parseSeconds(e.Dur),
		}
	default:
		return Entry{}
	}
}

// NormalizeAll maps raw entries in order.
func NormalizeAll(raws []any) []Entry {
	entries := make([]Entry, len(raws))
	for i, raw := range raws {
		entries[i] = Normalize(raw)
	}
	return entries
}

func textValue(v any) string {
	s, _ := v.(string)
	return s
}

func secondsValue(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case string:
		return parseSeconds(n)
	default:
		return 0.0
	}
}

func parseSeconds(s string) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0.0
	}
	return f
}
