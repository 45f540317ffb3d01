package cmd

import (
	"fmt"
	"os"

	"fetchbites/config"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "fetchbites",
	Short: "Browse recipes and their photos from the terminal",
	Long: `fetchbites reads a recipe feed and shows it as a list or in a TUI.

Photos are fetched once and kept in a bounded in-memory cache shared by every
view, so scrolling back to a recipe does not hit the network again.

Examples:
  fetchbites list --sort cuisine
  fetchbites preview https://example.com/photo.jpg --repeat 2
  fetchbites tui`,
	Version: "1.0.0",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		initConfig()
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.fetchbites.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

func initConfig() {
	var err error
	if cfgFile != "" {
		cfg, err = config.LoadConfigFile(cfgFile)
	} else {
		cfg, err = config.LoadConfig()
	}
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	if err := config.ValidateConfig(cfg); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	if verbose {
		logrus.SetLevel(logrus.DebugLevel)
		if cfgFile != "" {
			fmt.Println("Using config file:", cfgFile)
		}
		return
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
}
