package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/PolarWolf314/jaylock/internal/configs"
	"github.com/PolarWolf314/jaylock/internal/ui"

	"github.com/spf13/cobra"
)

var configShowJSON bool

func init() {
	configShowCmd.Flags().BoolVar(&configShowJSON, "json", false, "output in JSON format")
	ConfigCmd.AddCommand(configShowCmd)
}

// resetConfigShowState resets the config show command's global state for testing.
func resetConfigShowState() {
	configShowJSON = false
}

// effectiveConfig is what jaylock will actually use after flags,
// environment and config file are merged.
type effectiveConfig struct {
	ConfigPath   string `json:"config_path"`
	ConfigExists bool   `json:"config_exists"`
	NotesDir     string `json:"notes_dir"`
	Cipher       string `json:"cipher"`
	Banner       bool   `json:"banner"`
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display the effective configuration",
	Long: `Displays the configuration jaylock will use, after --dir, --cipher,
JAYLOCK_DIR and the config file have been applied.

Examples:
  jaylock config show
  jaylock config show --json
  JAYLOCK_DIR=/tmp/notes jaylock config show`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting config show command")

		s, err := loadSettings()
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to load configuration: %v", err)
		}

		eff := effectiveConfig{
			ConfigPath:   configs.JaylockSettings.ConfigPath,
			ConfigExists: configs.ConfigExists(),
			NotesDir:     s.Dir,
			Cipher:       s.Cipher.String(),
			Banner:       s.Config.Editor.Banner,
		}

		if configShowJSON {
			output, err := json.MarshalIndent(eff, "", "  ")
			if err != nil {
				return Logger.ErrorfAndReturn("Failed to marshal config to JSON: %v", err)
			}
			fmt.Println(string(output))
			return nil
		}

		source := ui.Path.Sprint(eff.ConfigPath)
		if !eff.ConfigExists {
			source += " " + ui.Muted.Sprint("not found, using defaults")
		}
		fmt.Println(ui.Info.Sprint("Configuration") + " " + source)
		fmt.Println()
		fmt.Printf("  %-11s %s\n", "Notes dir:", ui.Path.Sprint(eff.NotesDir))
		fmt.Printf("  %-11s %s\n", "Cipher:", ui.Info.Sprint(eff.Cipher))
		fmt.Printf("  %-11s %t\n", "Banner:", eff.Banner)
		return nil
	},
}
