package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"fetchbites/loader"
	"fetchbites/utils"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var previewRepeat int

var previewCmd = &cobra.Command{
	Use:   "preview [url]...",
	Short: "Load images through the cache and report what happened",
	Long: `Resolves each image URL through a loader backed by one shared cache and
prints the result. With --repeat the same URLs are requested again, which
shows cache hits and the cache bounds at work.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		for _, locator := range args {
			if err := utils.ValidateLocator(locator); err != nil {
				logrus.Fatal(err)
			}
		}
		if previewRepeat < 1 {
			previewRepeat = 1
		}

		p := newImagePipeline(cfg)
		tw := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
		fmt.Fprintf(tw, "ROUND\tSTATE\tSIZE\tFORMAT\tENCODED\tDECODED\tURL\n")

		for round := 1; round <= previewRepeat; round++ {
			for _, locator := range args {
				st, err := previewOne(cmd.Context(), p, locator)
				if err != nil {
					logrus.Fatal(err)
				}
				fmt.Fprintf(tw, "%d\t%s\n", round, describeState(st))
			}
		}
		tw.Flush()

		stats := p.store.Stats()
		fmt.Printf("\ncache: %d entries, %s, %d hits, %d misses, %d evictions, %d rejected\n",
			stats.Entries, utils.FormatBytes(stats.Cost), stats.Hits, stats.Misses, stats.Evictions, stats.Rejected)
	},
}

func previewOne(ctx context.Context, p imagePipeline, locator string) (loader.State, error) {
	c := loader.New(p.store, p.fetcher, p.decoder,
		loader.WithListener(func(st loader.State) {
			logrus.WithFields(logrus.Fields{"locator": st.Locator, "phase": st.Phase}).Debug("state")
		}))
	defer c.Close()

	c.RequestLoad(locator)
	if err := c.Wait(ctx); err != nil {
		return loader.State{}, err
	}
	return c.State(), nil
}

func describeState(st loader.State) string {
	switch {
	case st.Phase == loader.Loaded && st.Image != nil:
		img := st.Image
		return fmt.Sprintf("%s\t%dx%d\t%s\t%s\t%s\t%s",
			st.Phase, img.Width(), img.Height(), img.Format,
			utils.FormatBytes(int64(img.EncodedSize)), utils.FormatBytes(img.Cost), st.Locator)
	case st.Failed():
		return fmt.Sprintf("failed\t-\t-\t-\t-\t%s (%v)", st.Locator, st.Err)
	default:
		return fmt.Sprintf("%s\t-\t-\t-\t-\t%s", st.Phase, st.Locator)
	}
}

func init() {
	rootCmd.AddCommand(previewCmd)
	previewCmd.Flags().IntVarP(&previewRepeat, "repeat", "r", 1, "Request every URL this many times")
}
