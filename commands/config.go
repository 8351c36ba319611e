package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pomotrack/pomotrack/internal/prefs"
)

var (
	configVolume int
	configTheme  string

	configCmd = &cobra.Command{
		Use:   "config",
		Short: "Show or change local preferences",
		Long: `Show or change the locally stored preferences. The timer picks up
changes while it is running.

Examples:
  pomotrack config                  # Show current preferences
  pomotrack config --volume 80      # Raise the cue volume
  pomotrack config --theme light    # Switch to the light theme`,
		RunE: runConfig,
	}
)

func init() {
	configCmd.Flags().IntVar(&configVolume, "volume", -1,
		"Sound volume 0-100 (50 is the default level)")
	configCmd.Flags().StringVar(&configTheme, "theme", "",
		"Color theme (dark, light)")
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, args []string) error {
	if err := initRuntime(); err != nil {
		return err
	}

	path := expandPath(defaultPrefsFile)
	p, err := prefs.Load(path)
	if err != nil {
		return err
	}

	changed := false
	if cmd.Flags().Changed("volume") {
		if configVolume < 0 || configVolume > 100 {
			return fmt.Errorf("volume must be between 0 and 100")
		}
		p.SoundVolume = configVolume
		changed = true
	}
	if cmd.Flags().Changed("theme") {
		if configTheme != prefs.ThemeDark && configTheme != prefs.ThemeLight {
			return fmt.Errorf("theme must be dark or light")
		}
		p.Theme = configTheme
		changed = true
	}

	if changed {
		if err := prefs.Save(path, p); err != nil {
			return err
		}
	}

	fmt.Printf("Volume: %d (gain %.2f)\n", p.SoundVolume, p.Gain())
	fmt.Printf("Theme:  %s\n", p.Theme)
	return nil
}
