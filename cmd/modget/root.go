// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"modget-cli/internal/config"
	"modget-cli/internal/issue"
	"modget-cli/internal/registry"
	"modget-cli/internal/resolve"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// Verbose enables verbose output
	verbose bool
	// cfgFile allows specifying a custom config file
	cfgFile string

	// loadedCfg is the resolved configuration, populated by initRootConfig.
	loadedCfg *config.Config
	// loadedCfgPath is the config file the values came from ("" for defaults).
	loadedCfgPath string

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "modget",
		Short: "A mod installer for the Modrinth registry",
		Long: TitleStyle.Render("modget") + SubtitleStyle.Render(" - A mod installer for the Modrinth registry") + `

modget installs mods from Modrinth together with their required
dependencies. It picks the newest version compatible with your mod
loader and game version, resolves the full required-dependency
closure, and downloads everything in parallel.

` + SubtitleStyle.Render("Quick Start:") + `
  1. Find a mod:      modget search sodium
  2. Check targets:   modget info sodium
  3. Install it:      modget install sodium --loader fabric --game-version 1.21

` + SubtitleStyle.Render("Examples:") + `
  modget install sodium lithium   Install two mods and their dependencies
  modget deps fabric-api          Show the dependency tree without installing
  modget list                     List mods recorded in the manifest
  modget config show              Show current configuration`,
	}
)

func init() {
	cobra.OnInitialize(initRootConfig)

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/modget/config.cue)")

	// Add subcommands
	rootCmd.AddCommand(installCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(depsCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(configCmd)
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	// Use fang.Execute for enhanced Cobra styling
	// Pass version via fang.WithVersion() since fang overrides rootCmd.Version
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

// initRootConfig reads in config file and ENV variables if set.
func initRootConfig() {
	// Set custom config file path if provided via --config flag
	if cfgFile != "" {
		config.SetConfigFilePathOverride(cfgFile)
	}

	cfg, path, err := config.Load()
	if err != nil {
		// Config errors never abort the run; defaults still work.
		fmt.Fprintln(os.Stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, verbose))
		if rendered, rerr := issue.Get(issue.ConfigLoadFailedId).Render("dark"); rerr == nil && verbose {
			fmt.Fprint(os.Stderr, rendered)
		}
	}
	loadedCfg = cfg
	loadedCfgPath = path

	// Apply verbose from config if not set via flag
	if cfg != nil && !verbose {
		verbose = cfg.UI.Verbose
	}
}

// currentConfig returns the loaded configuration, falling back to the
// built-in defaults when loading failed.
func currentConfig() *config.Config {
	if loadedCfg != nil {
		return loadedCfg
	}
	defaults := config.DefaultConfig()
	return &defaults
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}

// newLogger builds the CLI logger honoring the verbose flag.
func newLogger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "modget"})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// newRegistryClient builds a registry client from the resolved config.
// An apiKey flag value overrides the config file and environment.
func newRegistryClient(apiKey string) *registry.Client {
	cfg := currentConfig()

	token := cfg.APIKey
	if apiKey != "" {
		token = apiKey
	}

	opts := []registry.ClientOption{
		registry.WithTimeout(time.Duration(cfg.HTTP.TimeoutSeconds) * time.Second),
		registry.WithUserAgent("modget/" + Version),
	}
	if token != "" {
		opts = append(opts, registry.WithToken(token))
	}
	return registry.NewClient(opts...)
}

// constraintFromFlags merges the config defaults with flag overrides.
func constraintFromFlags(loader, gameVersion string) resolve.Constraint {
	cfg := currentConfig()

	c := resolve.Constraint{Loader: cfg.Loader, GameVersion: cfg.GameVersion}
	if loader != "" {
		c.Loader = loader
	}
	if gameVersion != "" {
		c.GameVersion = gameVersion
	}
	return c
}

// GetVerbose returns the verbose flag value
func GetVerbose() bool {
	return verbose
}
