// Package youtube fetches caption tracks and timed caption entries through
// YouTube's unauthenticated Innertube endpoints. No API key is needed.
//
// Track listing and per-track fetch use the ANDROID /player client, whose
// caption tracks come back as timedtext XML. The default fetch scrapes the
// watch page's ytInitialPlayerResponse instead and reads captions as json3;
// it is the fallback tier when the selected-track path fails.
package youtube

import (
	"bytes"
	"context"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"html"
	"io"
	"net/http"
	"strings"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/bggg/transcriptor/internal/transcript"
)

const (
	defaultPlayerURL = "https://www.youtube.com/youtubei/v1/player"
	defaultWatchURL  = "https://www.youtube.com/watch"
	androidVersion   = "20.10.38"
	androidUA        = "com.google.android.youtube/" + androidVersion + " (Linux; U; Android 11) gzip"

	maxCaptionBytes = 512 * 1024
	maxPageBytes    = 6 * 1024 * 1024
)

// playerResponseMarker marks the start of the player response JSON in watch
// page HTML.
const playerResponseMarker = "ytInitialPlayerResponse = "

// Client lists caption tracks and fetches caption entries for videos.
// Requests carry no timeout of their own; cancellation comes from the
// caller's context and the transport's defaults.
type Client struct {
	HTTPClient *http.Client
	Languages  []string // preferred language codes for the default fetch

	playerURL string
	watchURL  string
}

func NewClient(languages []string) *Client {
	if len(languages) == 0 {
		languages = []string{"en"}
	}
	return &Client{
		HTTPClient: &http.Client{},
		Languages:  languages,
		playerURL:  defaultPlayerURL,
		watchURL:   defaultWatchURL,
	}
}

// ListTracks returns the caption tracks the ANDROID player reports for the
// video. Each track fetches its own timedtext XML on demand.
func (c *Client) ListTracks(ctx context.Context, videoID string) ([]transcript.Track, error) {
	raw, err := c.playerCaptionTracks(ctx, videoID)
	if err != nil {
		return nil, err
	}
	tracks := make([]transcript.Track, 0, len(raw))
	for _, t := range raw {
		language := t.Name.text()
		if language == "" {
			language = t.LanguageCode
		}
		tracks = append(tracks, transcript.Track{
			Language:     language,
			LanguageCode: t.LanguageCode,
			Generated:    t.Kind == "asr",
			Source:       &timedtextSource{client: c, baseURL: t.BaseURL},
		})
	}
	return tracks, nil
}

// DefaultEntries fetches caption entries without an explicit track choice,
// scraping the watch page and applying its own language preference. Raw
// entries come back as key-value maps (json3 shape).
func (c *Client) DefaultEntries(ctx context.Context, videoID string) ([]any, error) {
	body, err := c.get(ctx, c.watchURL+"?v="+videoID, map[string]string{
		"User-Agent":      gofakeit.UserAgent(),
		"Accept-Language": "en-US,en;q=0.9",
		"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
	}, maxPageBytes)
	if err != nil {
		return nil, fmt.Errorf("watch page: %w", err)
	}

	idx := bytes.Index(body, []byte(playerResponseMarker))
	if idx < 0 {
		return nil, errors.New("ytInitialPlayerResponse not found in watch page")
	}
	jsonData := extractJSON(body[idx+len(playerResponseMarker):])
	if jsonData == nil {
		return nil, errors.New("failed to extract ytInitialPlayerResponse JSON")
	}

	var resp playerResp
	if err := json.Unmarshal(jsonData, &resp); err != nil {
		return nil, fmt.Errorf("decode ytInitialPlayerResponse: %w", err)
	}
	if resp.Captions == nil {
		return nil, errors.New("no captions in ytInitialPlayerResponse")
	}
	tracks := resp.Captions.PlayerCaptionsTracklistRenderer.CaptionTracks
	if len(tracks) == 0 {
		return nil, errors.New("no caption tracks in watch page")
	}
	track, ok := pickDefaultTrack(tracks, c.Languages)
	if !ok {
		return nil, errors.New("all caption tracks require PoToken")
	}

	data, err := c.get(ctx, track.BaseURL+"&fmt=json3", map[string]string{
		"User-Agent": gofakeit.UserAgent(),
	}, maxCaptionBytes)
	if err != nil {
		return nil, fmt.Errorf("fetch json3 captions: %w", err)
	}
	return json3Entries(data)
}

// playerCaptionTracks calls the ANDROID Innertube /player endpoint and
// returns its caption track list.
func (c *Client) playerCaptionTracks(ctx context.Context, videoID string) ([]captionTrack, error) {
	reqBody, err := json.Marshal(playerReq{
		VideoID: videoID,
		Context: clientCtx{
			Client: clientInfo{
				ClientName:        "ANDROID",
				ClientVersion:     androidVersion,
				AndroidSdkVersion: 30,
				Hl:                "en",
				Gl:                "US",
			},
		},
		RacyCheckOk:    true,
		ContentCheckOk: true,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.playerURL+"?prettyPrint=false", bytes.NewReader(reqBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", androidUA)
	req.Header.Set("X-Youtube-Client-Name", "3")
	req.Header.Set("X-Youtube-Client-Version", androidVersion)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("android innertube: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return nil, fmt.Errorf("android innertube: HTTP %d: %s", resp.StatusCode, snippet)
	}

	var player playerResp
	if err := json.NewDecoder(resp.Body).Decode(&player); err != nil {
		return nil, fmt.Errorf("decode player: %w", err)
	}
	if player.Captions == nil {
		if player.PlayabilityStatus != nil && player.PlayabilityStatus.Reason != "" {
			return nil, fmt.Errorf("captions unavailable: %s", player.PlayabilityStatus.Reason)
		}
		return nil, errors.New("no captions in player response")
	}
	return player.Captions.PlayerCaptionsTracklistRenderer.CaptionTracks, nil
}

// timedtextSource fetches one caption track's timedtext XML. One-shot: the
// signed baseUrl expires, so a source is not reusable across sessions.
type timedtextSource struct {
	client  *Client
	baseURL string
}

func (s *timedtextSource) Entries(ctx context.Context) ([]any, error) {
	body, err := s.client.get(ctx, s.baseURL, map[string]string{
		"User-Agent": gofakeit.UserAgent(),
	}, maxCaptionBytes)
	if err != nil {
		return nil, fmt.Errorf("fetch timedtext: %w", err)
	}

	var tt timedText
	if err := xml.Unmarshal(body, &tt); err != nil {
		return nil, fmt.Errorf("parse timedtext XML: %w", err)
	}

	entries := make([]any, 0, len(tt.Lines))
	for _, line := range tt.Lines {
		entries = append(entries, transcript.Snippet{
			Text:  html.UnescapeString(line.Text),
			Start: line.Start,
			Dur:   line.Dur,
		})
	}
	return entries, nil
}

// json3Entries converts a json3 caption payload into raw map entries.
func json3Entries(data []byte) ([]any, error) {
	var resp json3Resp
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("parse json3 captions: %w", err)
	}
	entries := make([]any, 0, len(resp.Events))
	for _, ev := range resp.Events {
		if len(ev.Segs) == 0 {
			continue
		}
		var sb strings.Builder
		for _, seg := range ev.Segs {
			sb.WriteString(seg.Utf8)
		}
		entries = append(entries, map[string]any{
			"text":     sb.String(),
			"start":    float64(ev.StartMs) / 1000.0,
			"duration": float64(ev.DurationMs) / 1000.0,
		})
	}
	return entries, nil
}

// needsPoToken reports whether a caption track URL requires a PoToken
// (browser-only). Tracks with &exp=xpe cannot be fetched server-side.
func needsPoToken(baseURL string) bool {
	return strings.Contains(baseURL, "&exp=xpe")
}

// pickDefaultTrack selects a usable caption track for the given language
// preferences: manual preferred-language first, then any preferred-language,
// then any English track, then the first usable one.
func pickDefaultTrack(tracks []captionTrack, langs []string) (captionTrack, bool) {
	usable := make([]captionTrack, 0, len(tracks))
	for _, t := range tracks {
		if !needsPoToken(t.BaseURL) {
			usable = append(usable, t)
		}
	}
	if len(usable) == 0 {
		return captionTrack{}, false
	}
	for _, lang := range langs {
		for _, t := range usable {
			if t.LanguageCode == lang && t.Kind != "asr" {
				return t, true
			}
		}
	}
	for _, lang := range langs {
		for _, t := range usable {
			if t.LanguageCode == lang {
				return t, true
			}
		}
	}
	for _, t := range usable {
		if strings.HasPrefix(t.LanguageCode, "en") {
			return t, true
		}
	}
	return usable[0], true
}

// extractJSON extracts a complete JSON object starting at b[0] == '{' by
// tracking brace depth.
func extractJSON(b []byte) []byte {
	if len(b) == 0 || b[0] != '{' {
		return nil
	}
	depth := 0
	inStr := false
	escaped := false
	for i, c := range b {
		if inStr {
			// track escape parity so a string ending in an escaped
			// backslash ("a\\") still closes on the next quote
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inStr = false
			}
			continue
		}
		switch c {
		case '"':
			inStr = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return b[:i+1]
			}
		}
	}
	return nil
}

// get performs a bounded GET and returns the body.
func (c *Client) get(ctx context.Context, rawURL string, headers map[string]string, maxBytes int64) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d", resp.StatusCode)
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxBytes))
}
