package cmd

import (
	"path/filepath"
	"testing"

	"fetchbites/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigInitWritesDefaults(t *testing.T) {
	t.Cleanup(func() {
		cfgFile, configForce = "", false
		rootCmd.SetArgs(nil)
	})

	path := filepath.Join(t.TempDir(), "fresh.yaml")
	rootCmd.SetArgs([]string{"--config", path, "config", "init"})
	require.NoError(t, rootCmd.Execute())

	loaded, err := config.LoadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig(), loaded)

	rootCmd.SetArgs([]string{"--config", path, "config", "init", "--force"})
	require.NoError(t, rootCmd.Execute())
	assert.True(t, configForce)
}
