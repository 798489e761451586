package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bggg/transcriptor/internal/transcript"
	"github.com/bggg/transcriptor/internal/videoid"
	"github.com/bggg/transcriptor/internal/youtube"
)

var tracksCmd = &cobra.Command{
	Use:   "tracks [url_or_id]",
	Short: "List available caption tracks for a video",
	Long: `List the caption tracks YouTube reports for a video, one per line,
numbered for use with 'fetch --track'.

Examples:
  transcriptor tracks https://www.youtube.com/watch?v=dQw4w9WgXcQ
  transcriptor tracks dQw4w9WgXcQ`,
	Args: cobra.ExactArgs(1),
	RunE: runTracks,
}

func init() {
	rootCmd.AddCommand(tracksCmd)
}

func runTracks(cmd *cobra.Command, args []string) error {
	videoID, err := videoid.Extract(args[0])
	if err != nil {
		return err
	}

	client := youtube.NewClient(preferredLanguages(cmd))

	tracks, err := client.ListTracks(context.Background(), videoID)
	if err != nil {
		return fmt.Errorf("list tracks: %w", err)
	}
	if len(tracks) == 0 {
		return transcript.ErrNoTracks
	}

	fmt.Println("Available transcript tracks:")
	for i, t := range tracks {
		fmt.Printf("  [%d] %s\n", i+1, t.Description())
	}
	return nil
}

// preferredLanguages resolves the -l flag over the config default.
func preferredLanguages(cmd *cobra.Command) []string {
	if lang, _ := cmd.Flags().GetString("language"); lang != "" {
		return append([]string{lang}, cfg.Languages...)
	}
	return cfg.Languages
}
