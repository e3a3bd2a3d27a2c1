// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"strings"

	"modget-cli/internal/registry"
	"modget-cli/internal/resolve"

	"github.com/spf13/cobra"
	"golang.org/x/exp/slices"
	"golang.org/x/mod/semver"
)

const infoVersionLimit = 10

var (
	infoLoader      string
	infoGameVersion string
	infoAPIKey      string

	infoCmd = &cobra.Command{
		Use:   "info <slug>",
		Short: "Show project metadata and compatible versions",
		Long: `Show a project's metadata along with the versions that match your
mod loader and game version. The newest compatible version listed first
is the one 'modget install' would pick.

Examples:
  modget info sodium
  modget info sodium --loader fabric --game-version 1.21`,
		Args: cobra.ExactArgs(1),
		RunE: runInfo,
	}
)

func init() {
	infoCmd.Flags().StringVar(&infoLoader, "loader", "", "mod loader to target (default from config)")
	infoCmd.Flags().StringVar(&infoGameVersion, "game-version", "", "game version to target (default from config)")
	infoCmd.Flags().StringVar(&infoAPIKey, "api-key", "", "registry API token (default from config or MODGET_API_KEY)")
}

func runInfo(cmd *cobra.Command, args []string) error {
	client := newRegistryClient(infoAPIKey)
	ctx := cmd.Context()

	project, err := client.Project(ctx, args[0])
	if err != nil {
		return fmt.Errorf("failed to fetch project %q: %w", args[0], err)
	}

	versions, err := client.Versions(ctx, project.Slug)
	if err != nil {
		return fmt.Errorf("failed to fetch versions for %q: %w", project.Slug, err)
	}

	fmt.Println(TitleStyle.Render(project.Title) + SubtitleStyle.Render(" ("+project.Slug+")"))
	if project.Description != "" {
		fmt.Println(SubtitleStyle.Render(project.Description))
	}
	fmt.Println()

	fmt.Printf("%s %d published versions\n", iconInfo, len(versions))
	if gvs := supportedGameVersions(versions); len(gvs) > 0 {
		fmt.Printf("%s game versions: %s\n", iconInfo, strings.Join(gvs, ", "))
	}

	constraint := constraintFromFlags(infoLoader, infoGameVersion)
	compatible := resolve.SelectCompatible(versions, constraint)
	fmt.Printf("%s %d compatible with %s\n", iconInfo, len(compatible), SlugStyle.Render(constraint.String()))

	if len(compatible) == 0 {
		return nil
	}

	fmt.Println()
	shown := compatible
	if len(shown) > infoVersionLimit {
		shown = shown[:infoVersionLimit]
	}
	for i, v := range shown {
		icon := iconInfo
		if i == 0 {
			icon = iconOK
		}
		fmt.Printf("%s %s %s %s\n",
			icon,
			SlugStyle.Render(v.VersionNumber),
			SubtitleStyle.Render(strings.Join(v.Loaders, "/")),
			SubtitleStyle.Render(strings.Join(v.GameVersions, ", ")))
	}
	if rest := len(compatible) - len(shown); rest > 0 {
		fmt.Println(SubtitleStyle.Render(fmt.Sprintf("  ... and %d more", rest)))
	}
	return nil
}

// supportedGameVersions collects the distinct game versions across all
// published versions, newest first. Game versions are not quite semver
// ("1.21" has no patch component), so comparison goes through the
// canonicalized "v"-prefixed form; anything that still fails to parse
// sorts after the valid versions.
func supportedGameVersions(versions []registry.Version) []string {
	seen := make(map[string]bool)
	var out []string
	for _, v := range versions {
		for _, gv := range v.GameVersions {
			if !seen[gv] {
				seen[gv] = true
				out = append(out, gv)
			}
		}
	}

	slices.SortFunc(out, func(a, b string) int {
		ca, cb := semver.Canonical("v"+a), semver.Canonical("v"+b)
		if (ca == "") != (cb == "") {
			if ca == "" {
				return 1
			}
			return -1
		}
		if c := semver.Compare(cb, ca); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	})
	return out
}
