package cli

import (
	"github.com/spf13/cobra"

	"github.com/bggg/transcriptor/internal/config"
	"github.com/bggg/transcriptor/internal/logging"
)

var (
	verbose bool
	cfgPath string
	logger  *logging.Logger
	cfg     config.Config
)

var rootCmd = &cobra.Command{
	Use:   "transcriptor",
	Short: "Pull full YouTube transcripts as plain text",
	Long: `Transcriptor pulls YouTube captions and renders them as timestamped,
line-by-line, or paragraph-formatted text. No YouTube API key needed.

Many videos carry multiple caption tracks (manual and auto-generated, in
several languages); pick one by number or let the tool auto-pick the
fullest track.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger = logging.NewLogger(verbose)
		var err error
		cfg, err = config.Load(cfgPath)
		return err
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().
		BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		StringVar(&cfgPath, "config", "", "Path to a YAML config file (default: transcriptor.yaml if present)")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output file path")
	rootCmd.PersistentFlags().
		StringP("language", "l", "", "Preferred caption language code (e.g., en, es, fr)")
}
