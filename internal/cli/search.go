package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rgould/projdex/internal/search"
)

var searchMaxResults int

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the catalog with fuzzy matching and prefix filters",
	Long: `Search the project catalog. The query is split on ";" into free text and
prefix filters:

  projdex search "palm beach"
  projdex search "palm; loc:Miami; status:Active"
  projdex search "year:2024; fav"`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.close()

		ctx := cmd.Context()
		records, err := a.catalog.GetAll(ctx)
		if err != nil {
			return err
		}

		filter := search.ParseQuery(strings.Join(args, " "))
		switch {
		case searchMaxResults > 0:
			filter.MaxResults = searchMaxResults
		case a.cfg.Search.MaxResults > 0:
			filter.MaxResults = a.cfg.Search.MaxResults
		}

		results, err := a.engine.Search(ctx, records, filter)
		if err != nil {
			return err
		}

		if len(results) == 0 {
			fmt.Println(mutedStyle.Render("no matches"))
			return nil
		}

		for i, res := range results {
			marker := " "
			if res.Project.Metadata != nil && res.Project.Metadata.IsFavorite {
				marker = favoriteStyle.Render("*")
			}
			name := res.Project.Name
			if name == "" {
				name = "(unnamed)"
			}
			fmt.Printf("%s %s %s  %s  %s\n",
				mutedStyle.Render(fmt.Sprintf("%3d.", i+1)),
				marker,
				accentStyle.Render(res.Project.FullNumber),
				name,
				mutedStyle.Render(fmt.Sprintf("%.2f", res.Score)),
			)
			fmt.Printf("       %s\n", mutedStyle.Render(res.Project.Path))
		}
		return nil
	},
}

func init() {
	searchCmd.Flags().IntVar(&searchMaxResults, "max", 0, "maximum number of results (default 50)")
	rootCmd.AddCommand(searchCmd)
}
