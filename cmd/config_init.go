package cmd

import (
	"fmt"

	"github.com/PolarWolf314/jaylock/internal/configs"
	"github.com/PolarWolf314/jaylock/internal/ui"

	"github.com/spf13/cobra"
)

var configInitForce bool

func init() {
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "overwrite an existing config file")
	ConfigCmd.AddCommand(configInitCmd)
}

// resetConfigInitState resets the config init command's global state for testing.
func resetConfigInitState() {
	configInitForce = false
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the config file",
	Long: `Writes a config file with the default settings.

The global --dir and --cipher flags, when given, are stored in the new file
instead of the defaults. An existing file is left alone unless --force is
used.

Examples:
  jaylock config init
  jaylock config init --cipher secretbox
  jaylock config init --dir ~/private/notes --force`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting config init command")
		path := configs.JaylockSettings.ConfigPath
		Logger.Debugf("Config path: %s, force=%t", path, configInitForce)

		if configs.ConfigExists() && !configInitForce {
			fmt.Println(ui.Warning.Sprint("⚠") + " Config file already exists at " + ui.Path.Sprint(path))
			fmt.Println(ui.Info.Sprint("→") + " Use " + ui.Command.Sprint("--force") + " to overwrite it")
			return nil
		}

		cfg := configs.DefaultConfig()
		if notesDir != "" {
			cfg.Storage.Dir = notesDir
		}
		if cipherFlag.set {
			cfg.Crypto.Cipher = cipherFlag.String()
		}

		if err := configs.SaveConfig(cfg); err != nil {
			return Logger.ErrorfAndReturn("Failed to write config: %v", err)
		}

		fmt.Println(ui.Success.Sprint("✓") + " Configuration saved to " + ui.Path.Sprint(path))
		fmt.Println()
		printConfigValues(cfg)
		return nil
	},
}

// printConfigValues prints the stored values of a config file.
func printConfigValues(cfg *configs.Config) {
	dir := cfg.Storage.Dir
	if dir == "" {
		dir = "(default) " + configs.JaylockSettings.DefaultNotesDir
	}
	fmt.Printf("  %-11s %s\n", "Notes dir:", ui.Path.Sprint(dir))
	fmt.Printf("  %-11s %s\n", "Cipher:", ui.Info.Sprint(cfg.Crypto.Cipher))
	fmt.Printf("  %-11s %t\n", "Banner:", cfg.Editor.Banner)
}
