// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"modget-cli/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage modget configuration",
	Long: `Manage modget configuration.

Configuration is stored in:
  - Linux: ~/.config/modget/config.cue
  - macOS: ~/Library/Application Support/modget/config.cue
  - Windows: %APPDATA%\modget\config.cue`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func init() {
	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig()
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfigPath()
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return initConfigFile()
		},
	})
}

func showConfig() error {
	cfg := currentConfig()

	fmt.Println(TitleStyle.Render("modget configuration"))
	if loadedCfgPath != "" {
		fmt.Println(SubtitleStyle.Render("loaded from " + loadedCfgPath))
	} else {
		fmt.Println(SubtitleStyle.Render("built-in defaults (no config file found)"))
	}
	fmt.Println()

	fmt.Printf("  loader:                %s\n", SlugStyle.Render(cfg.Loader))
	fmt.Printf("  game_version:          %s\n", SlugStyle.Render(cfg.GameVersion))
	fmt.Printf("  download_dir:          %s\n", SlugStyle.Render(cfg.DownloadDir))
	fmt.Printf("  downloads.concurrency: %d\n", cfg.Downloads.Concurrency)
	fmt.Printf("  http.timeout_seconds:  %d\n", cfg.HTTP.TimeoutSeconds)
	fmt.Printf("  ui.verbose:            %t\n", cfg.UI.Verbose)
	if cfg.APIKey != "" {
		fmt.Printf("  api_key:               %s\n", SubtitleStyle.Render("(set)"))
	}
	return nil
}

func showConfigPath() error {
	dir, err := config.ConfigDir()
	if err != nil {
		return err
	}
	fmt.Println(filepath.Join(dir, config.ConfigFileName+"."+config.ConfigFileExt))
	return nil
}

// defaultConfigContent is what `modget config init` writes.
const defaultConfigContent = `// modget configuration.
// Every field is optional; omitted fields keep their built-in defaults.

loader:       "forge"
game_version: "1.20.1"
download_dir: "mods"

downloads: concurrency: 4
http: timeout_seconds:  30
`

func initConfigFile() error {
	dir, err := config.ConfigDir()
	if err != nil {
		return err
	}
	path := filepath.Join(dir, config.ConfigFileName+"."+config.ConfigFileExt)

	if _, err := os.Stat(path); err == nil {
		fmt.Printf("%s config file already exists: %s\n", iconWarn, path)
		return nil
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(defaultConfigContent), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Printf("%s created %s\n", iconOK, SlugStyle.Render(path))
	return nil
}
