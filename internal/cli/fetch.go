package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/bggg/transcriptor/internal/metadata"
	"github.com/bggg/transcriptor/internal/transcript"
	"github.com/bggg/transcriptor/internal/videoid"
	"github.com/bggg/transcriptor/internal/youtube"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch [url_or_id]",
	Short: "Fetch a video's transcript and render it as text",
	Long: `Fetch the transcript for a YouTube video and render it in one of three
formats: timestamps (one "[12.34s] text" line per caption), lines (caption
text only), or paragraphs (captions merged until the gap between two
consecutive start times exceeds the threshold).

By default the first listed caption track is used. Pick another with
--track (see the 'tracks' command), or pass --fullest to download every
track and keep the one with the most entries — slower, but helps when the
default track is abridged.

Examples:
  transcriptor fetch https://youtu.be/dQw4w9WgXcQ
  transcriptor fetch dQw4w9WgXcQ -f paragraphs --gap 2.0
  transcriptor fetch dQw4w9WgXcQ --track 2 -o transcript.txt
  transcriptor fetch dQw4w9WgXcQ --fullest --all`,
	Args: cobra.ExactArgs(1),
	RunE: runFetch,
}

func init() {
	rootCmd.AddCommand(fetchCmd)

	fetchCmd.Flags().
		StringP("format", "f", "timestamps", "Output format (timestamps, lines, paragraphs)")
	fetchCmd.Flags().
		Float64("gap", 0, "Paragraph gap threshold in seconds (default from config, 1.25)")
	fetchCmd.Flags().
		IntP("track", "t", 0, "Caption track number, 1-based (default: first track)")
	fetchCmd.Flags().
		Bool("fullest", false, "Auto-pick the track with the most entries (downloads every track)")
	fetchCmd.Flags().
		Bool("all", false, "Write all three formats to the output directory")
	fetchCmd.Flags().
		Bool("copy", false, "Copy the result to the clipboard")
	fetchCmd.Flags().
		Bool("no-header", false, "Omit the title/channel header block")
}

func runFetch(cmd *cobra.Command, args []string) error {
	formatStr, _ := cmd.Flags().GetString("format")
	gap, _ := cmd.Flags().GetFloat64("gap")
	trackIdx, _ := cmd.Flags().GetInt("track")
	fullest, _ := cmd.Flags().GetBool("fullest")
	all, _ := cmd.Flags().GetBool("all")
	copyOut, _ := cmd.Flags().GetBool("copy")
	noHeader, _ := cmd.Flags().GetBool("no-header")
	outputPath, _ := cmd.Flags().GetString("output")

	if !all && !validFormat(formatStr) {
		return fmt.Errorf("unsupported format %q: use timestamps, lines, or paragraphs", formatStr)
	}
	if err := checkFlagConflicts(all, outputPath, copyOut); err != nil {
		return err
	}
	if gap <= 0 {
		gap = cfg.GapSeconds
	}

	videoID, err := videoid.Extract(args[0])
	if err != nil {
		return err
	}

	ctx := context.Background()
	client := youtube.NewClient(preferredLanguages(cmd))

	logger.Infow("Fetching transcript",
		"video_id", videoID,
		"track", trackIdx,
		"fullest", fullest,
	)

	entries, report, err := transcript.Fetch(ctx, client, videoID, transcript.Selection{
		Fullest: fullest,
		Index:   trackIdx,
	})
	if err != nil {
		return err
	}

	if report.IndexFellBack && trackIdx != 0 {
		logger.Warnw("Invalid track selection, using default (1)",
			"requested", trackIdx,
		)
	}
	if report.UsedDefault {
		logger.Warnw("Selected track fetch failed, used the provider default track")
		logger.Infow("Fetched transcript entries",
			"count", len(entries),
		)
	} else {
		logger.Infow("Fetched transcript entries",
			"count", len(entries),
			"track", report.Track.Description(),
		)
	}

	meta := metadata.Fetch(ctx, videoID)
	header := ""
	if !noHeader {
		header = meta.Header()
	}

	if all {
		return saveAll(meta, videoID, header, entries, gap)
	}

	full := header + renderBody(formatStr, entries, gap)

	if copyOut {
		if err := clipboard.WriteAll(full); err != nil {
			logger.Warnw("Clipboard copy failed", "error", err)
		} else {
			logger.Infow("Copied transcript to clipboard")
		}
	}

	if outputPath != "" {
		if err := os.WriteFile(outputPath, []byte(full), 0644); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		absOutput, _ := filepath.Abs(outputPath)
		fmt.Printf("Transcript saved: %s\n", absOutput)
		return nil
	}

	fmt.Print(full)
	return nil
}

// checkFlagConflicts rejects combinations --all cannot honor: it writes its
// own set of files and produces no single rendition to redirect or copy.
func checkFlagConflicts(all bool, outputPath string, copyOut bool) error {
	if all && outputPath != "" {
		return fmt.Errorf("--all writes its own files to the output directory and cannot be combined with --output")
	}
	if all && copyOut {
		return fmt.Errorf("--all produces three files and cannot be combined with --copy")
	}
	return nil
}

func validFormat(format string) bool {
	switch format {
	case "timestamps", "lines", "paragraphs":
		return true
	}
	return false
}

func renderBody(format string, entries []transcript.Entry, gap float64) string {
	switch format {
	case "lines":
		return transcript.Lines(entries)
	case "paragraphs":
		return transcript.Paragraphs(entries, gap)
	default:
		return transcript.Timestamped(entries)
	}
}

// saveAll writes the three renditions side by side, the way a full archive
// of a video's transcript is kept.
func saveAll(meta metadata.Info, videoID, header string, entries []transcript.Entry, gap float64) error {
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	base := defaultBase(meta, videoID)
	stamp := time.Now().Format("20060102_150405")

	outputs := []struct {
		suffix string
		body   string
	}{
		{"timestamps", transcript.Timestamped(entries)},
		{"lines", transcript.Lines(entries)},
		{"paragraphs", transcript.Paragraphs(entries, gap)},
	}

	fmt.Println("Saved:")
	for _, out := range outputs {
		path := filepath.Join(cfg.OutputDir, fmt.Sprintf("%s_%s_%s.txt", base, stamp, out.suffix))
		if err := os.WriteFile(path, []byte(header+out.body), 0644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		fmt.Printf(" - %s\n", path)
	}
	return nil
}

// defaultBase builds the output file base name from the title when known,
// falling back to the bare video ID.
func defaultBase(meta metadata.Info, videoID string) string {
	if meta.Title != "" {
		return sanitizeFilename(meta.Title + " - " + videoID)
	}
	return sanitizeFilename(videoID)
}
