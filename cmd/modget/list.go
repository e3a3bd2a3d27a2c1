// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"modget-cli/internal/manifest"

	"github.com/spf13/cobra"
)

var (
	listDownloadDir string

	listCmd = &cobra.Command{
		Use:   "list",
		Short: "List installed mods",
		Long: `List the mods recorded in the download directory's manifest
(` + manifest.FileName + `). Mods installed by other tools, or files copied in
by hand, do not appear here.

Examples:
  modget list
  modget list --download-dir ~/server/mods`,
		Args: cobra.ExactArgs(0),
		RunE: runList,
	}
)

func init() {
	listCmd.Flags().StringVar(&listDownloadDir, "download-dir", "", "directory holding the manifest (default from config)")
}

func runList(cmd *cobra.Command, args []string) error {
	downloadDir := currentConfig().DownloadDir
	if listDownloadDir != "" {
		downloadDir = listDownloadDir
	}

	m, err := manifest.Load(manifest.Path(downloadDir))
	if err != nil {
		return fmt.Errorf("failed to read manifest: %w", err)
	}

	entries := m.Entries()
	if len(entries) == 0 {
		fmt.Printf("%s no mods installed in %s\n", iconInfo, downloadDir)
		return nil
	}

	for _, e := range entries {
		fmt.Printf("%s %s %s %s\n",
			iconOK,
			TitleStyle.Render(e.Title),
			SlugStyle.Render(e.VersionNumber),
			SubtitleStyle.Render("("+e.Filename+")"))
	}
	fmt.Println()
	fmt.Printf("%s %d mods in %s\n", iconInfo, len(entries), downloadDir)
	return nil
}
