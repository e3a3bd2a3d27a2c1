// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"os"

	"modget-cli/internal/install"
	"modget-cli/internal/issue"
	"modget-cli/internal/registry"

	"github.com/spf13/cobra"
)

var (
	installLoader      string
	installGameVersion string
	installDownloadDir string
	installAPIKey      string
	installConcurrency int

	installCmd = &cobra.Command{
		Use:   "install <slug>...",
		Short: "Install mods and their required dependencies",
		Long: `Install one or more mods from the Modrinth registry.

For each mod, modget picks the newest version compatible with your mod
loader and game version, resolves the full closure of required
dependencies, and downloads every file into the download directory.
Installed mods are recorded in ` + "`modget.lock.toml`" + ` next to the files.

A failed dependency download does not abort the install; the main mod
and the remaining dependencies are still written, and the failures are
listed at the end.

Examples:
  modget install sodium
  modget install sodium lithium --loader fabric --game-version 1.21
  modget install create --download-dir ~/server/mods`,
		Args: cobra.MinimumNArgs(1),
		RunE: runInstall,
	}
)

func init() {
	installCmd.Flags().StringVar(&installLoader, "loader", "", "mod loader to target (default from config)")
	installCmd.Flags().StringVar(&installGameVersion, "game-version", "", "game version to target (default from config)")
	installCmd.Flags().StringVar(&installDownloadDir, "download-dir", "", "directory to download files into (default from config)")
	installCmd.Flags().StringVar(&installAPIKey, "api-key", "", "registry API token (default from config or MODGET_API_KEY)")
	installCmd.Flags().IntVar(&installConcurrency, "concurrency", 0, "parallel dependency downloads (default from config)")
}

func runInstall(cmd *cobra.Command, args []string) error {
	cfg := currentConfig()

	downloadDir := cfg.DownloadDir
	if installDownloadDir != "" {
		downloadDir = installDownloadDir
	}
	concurrency := cfg.Downloads.Concurrency
	if installConcurrency > 0 {
		concurrency = installConcurrency
	}

	constraint := constraintFromFlags(installLoader, installGameVersion)
	installer := install.New(newRegistryClient(installAPIKey), install.Options{
		Constraint:  constraint,
		DownloadDir: downloadDir,
		Concurrency: concurrency,
		Logger:      newLogger(),
	})

	fmt.Printf("%s %s\n", TitleStyle.Render("Installing"), SubtitleStyle.Render(constraint.String()))

	failed := 0
	for _, slug := range args {
		if err := installOne(cmd, installer, slug); err != nil {
			failed++
		}
	}

	if failed > 0 {
		return &ExitError{Code: 1, Err: fmt.Errorf("%d of %d installs failed", failed, len(args))}
	}
	return nil
}

// installOne installs a single mod and prints its outcome. The returned
// error marks a fatal, root-level failure; partial dependency failures are
// reported but count as success.
func installOne(cmd *cobra.Command, installer *install.Installer, slug string) error {
	fmt.Println()
	result, err := installer.Install(cmd.Context(), slug)
	if err != nil {
		fmt.Printf("%s %s %s\n", iconFail, SlugStyle.Render(slug), ErrorStyle.Render("FAILED"))
		fmt.Fprintln(os.Stderr, ErrorStyle.Render("Error: ")+formatErrorForDisplay(err, verbose))
		renderInstallIssue(err)
		return err
	}

	fmt.Printf("%s %s %s %s\n",
		iconOK,
		SlugStyle.Render(result.Project.Title),
		result.Version.VersionNumber,
		SubtitleStyle.Render("("+result.MainFile.Filename+")"))

	for _, dep := range result.Dependencies {
		name := dep.Title
		if name == "" {
			name = dep.ProjectID
		}
		if dep.Downloaded {
			fmt.Printf("  %s %s %s\n", iconOK, name, SubtitleStyle.Render(dep.VersionNumber))
		} else {
			fmt.Printf("  %s %s %s\n", iconWarn, name, WarningStyle.Render(fmt.Sprintf("not installed: %v", dep.Err)))
		}
	}

	if failures := result.FailedDependencies(); len(failures) > 0 {
		fmt.Printf("%s %d of %d dependencies failed; the mod may not run until they are installed\n",
			iconWarn, len(failures), len(result.Dependencies))
	}
	return nil
}

// renderInstallIssue prints the remediation card matching a fatal install
// error. Unknown causes get no card; the plain error line already printed
// is all we know.
func renderInstallIssue(err error) {
	id, ok := issueForInstallError(err)
	if !ok {
		return
	}
	if rendered, rerr := issue.Get(id).Render("dark"); rerr == nil {
		fmt.Fprint(os.Stderr, rendered)
	}
}

// issueForInstallError maps a fatal install error to the issue catalog.
func issueForInstallError(err error) (issue.Id, bool) {
	switch {
	case errors.Is(err, registry.ErrProjectNotFound):
		return issue.ProjectNotFoundId, true
	case errors.Is(err, install.ErrNoCompatibleVersion):
		return issue.NoCompatibleVersionId, true
	case errors.Is(err, install.ErrNoFiles):
		return issue.NoFilesId, true
	}

	var fatal *install.FatalError
	if errors.As(err, &fatal) {
		switch fatal.Stage {
		case install.StageDownloadMain:
			return issue.DownloadFailedId, true
		case install.StageFetchProject, install.StageSelectVersion:
			return issue.RegistryUnreachableId, true
		}
	}
	return 0, false
}
