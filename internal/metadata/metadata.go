// Package metadata resolves a video's title and channel through YouTube's
// unauthenticated oEmbed endpoint. The lookup is decorative, so it fails
// open: any network, timeout, or parse problem yields empty fields instead
// of an error.
package metadata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const lookupTimeout = 12 * time.Second

// endpoint is a var so tests can point it at a local server.
var endpoint = "https://www.youtube.com/oembed"

// video metadata used to decorate transcript output
type Info struct {
	Title   string
	Channel string
	URL     string
}

// Fetch looks up title and channel for a video. It never fails: on any
// error the returned Info has empty Title/Channel, with URL still set.
func Fetch(ctx context.Context, videoID string) Info {
	watch := "https://youtu.be/" + videoID
	info := Info{URL: watch}

	ctx, cancel := context.WithTimeout(ctx, lookupTimeout)
	defer cancel()

	q := url.Values{}
	q.Set("url", watch)
	q.Set("format", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return info
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return info
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return info
	}

	var payload struct {
		Title      string `json:"title"`
		AuthorName string `json:"author_name"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 64*1024)).Decode(&payload); err != nil {
		return info
	}
	info.Title = strings.TrimSpace(payload.Title)
	info.Channel = strings.TrimSpace(payload.AuthorName)
	return info
}

// Header renders the block prefixed to transcript output.
func (i Info) Header() string {
	title := i.Title
	if title == "" {
		title = "Unknown Title"
	}
	channel := i.Channel
	if channel == "" {
		channel = "Unknown Channel"
	}
	return fmt.Sprintf("Transcriptor\nTitle: %s\nChannel: %s\nVideo: %s\n%s\n",
		title, channel, i.URL, strings.Repeat("-", 70))
}
