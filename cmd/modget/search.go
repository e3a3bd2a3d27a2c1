// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	searchLimit  int
	searchAPIKey string

	searchCmd = &cobra.Command{
		Use:   "search <query>",
		Short: "Search the registry for projects",
		Long: `Search the Modrinth registry and print matching projects with their
slugs. The slug is what 'modget install' and 'modget info' take.

Examples:
  modget search sodium
  modget search "shader engine" --limit 5`,
		Args: cobra.ExactArgs(1),
		RunE: runSearch,
	}
)

func init() {
	searchCmd.Flags().IntVar(&searchLimit, "limit", 10, "maximum number of results")
	searchCmd.Flags().StringVar(&searchAPIKey, "api-key", "", "registry API token (default from config or MODGET_API_KEY)")
}

func runSearch(cmd *cobra.Command, args []string) error {
	client := newRegistryClient(searchAPIKey)

	result, err := client.Search(cmd.Context(), args[0], searchLimit)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if len(result.Hits) == 0 {
		fmt.Printf("%s no projects match %q\n", iconInfo, args[0])
		return nil
	}

	for _, hit := range result.Hits {
		fmt.Printf("%s %s %s\n",
			SlugStyle.Render(hit.Slug),
			TitleStyle.Render(hit.Title),
			SubtitleStyle.Render(formatDownloads(hit.Downloads)+" downloads"))
		if hit.Description != "" {
			fmt.Printf("  %s\n", SubtitleStyle.Render(hit.Description))
		}
	}
	fmt.Println()
	fmt.Printf("%s showing %d of %d results\n", iconInfo, len(result.Hits), result.TotalHits)
	return nil
}

// formatDownloads renders a download count in compact form (12.3M, 847K).
func formatDownloads(n int64) string {
	switch {
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000)
	case n >= 1_000:
		return fmt.Sprintf("%.0fK", float64(n)/1_000)
	default:
		return fmt.Sprintf("%d", n)
	}
}
