package cmd

import (
	"fetchbites/tui"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var tuiEndpoint string

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive recipe browser",
	Run: func(cmd *cobra.Command, args []string) {
		p := newImagePipeline(cfg)
		opts := tui.Options{
			Repository: newRepository(cfg, tuiEndpoint),
			Store:      p.store,
			Fetcher:    p.fetcher,
			Decoder:    p.decoder,
			Sort:       cfg.DefaultSort,
		}
		if err := tui.Run(opts); err != nil {
			logrus.Fatalf("TUI exited with error: %v", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
	tuiCmd.Flags().StringVar(&tuiEndpoint, "endpoint", "", "Feed to read: recipes, malformed or empty")
}
