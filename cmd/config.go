package cmd

import (
	"fmt"

	"fetchbites/config"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var configForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the fetchbites config file",
	// The file may be missing or invalid here, so skip loading it.
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			logrus.SetLevel(logrus.DebugLevel)
		}
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with the default settings",
	Long: `Writes the default settings to the file named by --config, or to
$HOME/.fetchbites.yaml. An existing file is left alone unless --force is set.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		path, err := config.CreateDefaultConfig(cfgFile, configForce)
		if err != nil {
			logrus.Fatalf("failed to create config: %v", err)
		}
		fmt.Println("Wrote default config to", path)
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if cfgFile != "" {
			fmt.Println(cfgFile)
			return
		}
		path, err := config.GetConfigPath()
		if err != nil {
			logrus.Fatal(err)
		}
		fmt.Println(path)
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)

	configInitCmd.Flags().BoolVarP(&configForce, "force", "f", false, "overwrite an existing config file")
}
