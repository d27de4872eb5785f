package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rgould/projdex/internal/domain/catalog"
)

var (
	metaLocation string
	metaStatus   string
	metaTeam     string
	metaTags     []string
	metaFavorite bool
	metaClearFav bool
)

var metaCmd = &cobra.Command{
	Use:   "meta <project-number-or-id>",
	Short: "Show or edit a project's annotations",
	Long: `Show or edit the user annotations (location, status, team, tags, favorite)
for a project. With no flags, prints the current annotations. Flags update
only the fields they name; other fields are kept.

  projdex meta 2024638.001
  projdex meta 2024638.001 --status Active --location Miami
  projdex meta 2024638.001 --fav`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.close()

		ctx := cmd.Context()
		projectID := resolveProjectID(args[0])

		meta, err := a.catalog.Metadata(ctx, projectID)
		if err != nil {
			return err
		}
		if meta == nil {
			meta = &catalog.ProjectMetadata{ProjectID: projectID}
		}

		edited := false
		if cmd.Flags().Changed("location") {
			meta.Location = metaLocation
			edited = true
		}
		if cmd.Flags().Changed("status") {
			meta.Status = metaStatus
			edited = true
		}
		if cmd.Flags().Changed("team") {
			meta.Team = metaTeam
			edited = true
		}
		if cmd.Flags().Changed("tag") {
			meta.Tags = metaTags
			edited = true
		}
		if cmd.Flags().Changed("fav") {
			meta.IsFavorite = metaFavorite
			edited = true
		}
		if cmd.Flags().Changed("no-fav") && metaClearFav {
			meta.IsFavorite = false
			edited = true
		}

		if edited {
			if err := a.catalog.SetMetadata(ctx, meta); err != nil {
				return err
			}
		}

		printMetadata(meta)
		return nil
	},
}

func printMetadata(meta *catalog.ProjectMetadata) {
	fav := ""
	if meta.IsFavorite {
		fav = " " + favoriteStyle.Render("*")
	}
	fmt.Printf("%s%s\n", accentStyle.Render(meta.ProjectID), fav)
	fmt.Printf("  location: %s\n", orDash(meta.Location))
	fmt.Printf("  status:   %s\n", orDash(meta.Status))
	fmt.Printf("  team:     %s\n", orDash(meta.Team))
	fmt.Printf("  tags:     %s\n", orDash(strings.Join(meta.Tags, ", ")))
}

func orDash(s string) string {
	if s == "" {
		return mutedStyle.Render("-")
	}
	return s
}

// resolveProjectID accepts either a raw project id or a project number; a
// number is mapped through the same derivation scanning uses.
func resolveProjectID(arg string) string {
	if strings.Count(arg, "-") == 4 && len(arg) == 36 {
		return arg
	}
	return catalog.ProjectID(arg)
}

func init() {
	metaCmd.Flags().StringVar(&metaLocation, "location", "", "project location")
	metaCmd.Flags().StringVar(&metaStatus, "status", "", "project status")
	metaCmd.Flags().StringVar(&metaTeam, "team", "", "project team")
	metaCmd.Flags().StringSliceVar(&metaTags, "tag", nil, "project tags (repeatable)")
	metaCmd.Flags().BoolVar(&metaFavorite, "fav", false, "mark as favorite")
	metaCmd.Flags().BoolVar(&metaClearFav, "no-fav", false, "clear the favorite flag")
	rootCmd.AddCommand(metaCmd)
}
