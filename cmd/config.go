package cmd

import (
	"github.com/spf13/cobra"
)

// ConfigCmd is the top-level config command.
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage jaylock configuration",
	Long: `Provides commands for managing the jaylock config file.

The config file sets the notes directory, the cipher new notes are written
with, and whether the banner is shown. Flags and JAYLOCK_DIR override it.

Examples:
  # Create a config file with the defaults
  jaylock config init

  # Create a config that writes secretbox notes to another directory
  jaylock config init --cipher secretbox --dir ~/private/notes

  # Show the effective configuration
  jaylock config show`,
}

// GetConfigCmd returns the ConfigCmd for testing.
func GetConfigCmd() *cobra.Command {
	return ConfigCmd
}

// resetConfigCommandState resets all config command global variables for testing.
func resetConfigCommandState() {
	resetConfigInitState()
	resetConfigShowState()
}
