package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"fetchbites/recipes"
	"fetchbites/utils"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	listJSON     bool
	listSort     string
	listEndpoint string
	listGroup    bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the recipe feed",
	Long:  "Fetches the recipe feed and prints name, cuisine and links, sorted by name or cuisine.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		sortValue := listSort
		if sortValue == "" {
			sortValue = cfg.DefaultSort
		}
		opt, err := recipes.ParseSortOption(sortValue)
		if err != nil {
			logrus.Fatal(err)
		}

		repo := newRepository(cfg, listEndpoint)
		list, err := repo.FetchRecipes(cmd.Context())
		if err != nil {
			logrus.Fatalf("failed to fetch recipes: %v", err)
		}
		list = recipes.Sort(list, opt)

		if listJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(recipes.Response{Recipes: list}); err != nil {
				logrus.Fatal(err)
			}
			return
		}

		if len(list) == 0 {
			fmt.Println("No recipes available.")
			return
		}

		tw := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
		if listGroup {
			for _, g := range recipes.GroupByCuisine(list) {
				fmt.Fprintf(tw, "%s (%d)\n", g.Cuisine, len(g.Recipes))
				for _, r := range g.Recipes {
					fmt.Fprintf(tw, "  %s\t%s\n", r.Name, linkSummary(r))
				}
			}
		} else {
			fmt.Fprintf(tw, "NAME\tCUISINE\tLINKS\n")
			for _, r := range list {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", utils.Truncate(r.Name, 40), r.Cuisine, linkSummary(r))
			}
		}
		tw.Flush()
	},
}

func linkSummary(r recipes.Recipe) string {
	var s string
	if r.SourceURL != "" {
		s += "source "
	}
	if r.YoutubeURL != "" {
		s += "video "
	}
	if r.PhotoURLSmall != "" || r.PhotoURLLarge != "" {
		s += "photo"
	}
	if s == "" {
		return "-"
	}
	return s
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output as JSON")
	listCmd.Flags().StringVar(&listSort, "sort", "", "Sort by alphabetical or cuisine (default from config)")
	listCmd.Flags().StringVar(&listEndpoint, "endpoint", "", "Feed to read: recipes, malformed or empty")
	listCmd.Flags().BoolVar(&listGroup, "group", false, "Group recipes under their cuisine")
}
