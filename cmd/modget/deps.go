// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"
	"os"

	"modget-cli/internal/install"
	"modget-cli/internal/registry"
	"modget-cli/internal/resolve"

	"github.com/spf13/cobra"
)

var (
	depsLoader      string
	depsGameVersion string
	depsAPIKey      string

	depsCmd = &cobra.Command{
		Use:   "deps <slug>",
		Short: "Show a mod's required dependency tree",
		Long: `Resolve a mod's required dependencies and print them as a tree,
without downloading anything. Each dependency appears at the position it
was first discovered; later references to the same project are marked.

Examples:
  modget deps fabric-api
  modget deps create --loader forge --game-version 1.20.1`,
		Args: cobra.ExactArgs(1),
		RunE: runDeps,
	}
)

func init() {
	depsCmd.Flags().StringVar(&depsLoader, "loader", "", "mod loader to target (default from config)")
	depsCmd.Flags().StringVar(&depsGameVersion, "game-version", "", "game version to target (default from config)")
	depsCmd.Flags().StringVar(&depsAPIKey, "api-key", "", "registry API token (default from config or MODGET_API_KEY)")
}

func runDeps(cmd *cobra.Command, args []string) error {
	constraint := constraintFromFlags(depsLoader, depsGameVersion)
	installer := install.New(newRegistryClient(depsAPIKey), install.Options{
		Constraint: constraint,
		Logger:     newLogger(),
	})

	plan, err := installer.Plan(cmd.Context(), args[0])
	if err != nil {
		fmt.Fprintln(os.Stderr, ErrorStyle.Render("Error: ")+formatErrorForDisplay(err, verbose))
		renderInstallIssue(err)
		return &ExitError{Code: 1, Err: err}
	}

	renderDepsTree(os.Stdout, plan)
	fmt.Println()
	fmt.Printf("%s %d required dependencies for %s\n",
		iconInfo, plan.Resolution.Len(), SlugStyle.Render(constraint.String()))
	return nil
}

// renderDepsTree prints the dependency tree rooted at the planned version.
// The resolution set is flat; nesting is reconstructed from each resolved
// version's own dependency declarations. A project already printed is
// shown again as a leaf marked "seen" so cycles and diamonds stay finite.
func renderDepsTree(w io.Writer, plan *install.Plan) {
	fmt.Fprintln(w, TitleStyle.Render(plan.Project.Title)+" "+SlugStyle.Render(plan.Version.VersionNumber))

	// seen maps an already-printed project id to its display name, so a
	// later reference (including a cycle back to the root) prints the name
	// rather than an opaque id.
	seen := map[string]string{plan.Version.ProjectID: plan.Project.Title}
	renderDepsLevel(w, plan.Version.Dependencies, plan.Resolution, seen, "")
}

func renderDepsLevel(w io.Writer, deps []registry.Dependency, res *resolve.Resolution, seen map[string]string, prefix string) {
	required := make([]registry.Dependency, 0, len(deps))
	for _, dep := range deps {
		if dep.RequiresInstall() && dep.ProjectID != "" {
			required = append(required, dep)
		}
	}

	for i, dep := range required {
		branch, childPrefix := "├── ", prefix+"│   "
		if i == len(required)-1 {
			branch, childPrefix = "└── ", prefix+"    "
		}

		if name, ok := seen[dep.ProjectID]; ok {
			fmt.Fprintln(w, prefix+branch+SubtitleStyle.Render(name+" (seen)"))
			continue
		}

		entry, resolved := res.Get(dep.ProjectID)
		if !resolved {
			fmt.Fprintln(w, prefix+branch+WarningStyle.Render(dep.ProjectID+" (not resolved)"))
			continue
		}

		seen[dep.ProjectID] = entry.Project.Title
		fmt.Fprintln(w, prefix+branch+entry.Project.Title+" "+SlugStyle.Render(entry.Version.VersionNumber))
		renderDepsLevel(w, entry.Version.Dependencies, res, seen, childPrefix)
	}
}
