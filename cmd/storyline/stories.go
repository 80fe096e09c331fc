package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/kerbaras/storyline/pkg/api"
	"github.com/kerbaras/storyline/pkg/app"
)

var storiesCategory string
var storiesSearch string

var storiesCmd = &cobra.Command{
	Use:   "stories",
	Short: "List stories from the catalog",
	Long:  "Display the story catalog in a formatted table, optionally filtered by category or search query",
	Run: func(cmd *cobra.Command, args []string) {
		a, err := app.New()
		if err != nil {
			cobra.CheckErr(err)
		}
		defer a.Close()

		page, err := a.Deps.API.ListStories(context.Background(), api.StoriesQuery{
			Category: storiesCategory,
			Search:   storiesSearch,
			PageSize: a.Deps.Config.Pages.Stories,
		})
		if err != nil {
			cobra.CheckErr(err)
		}

		if len(page.Results) == 0 {
			fmt.Println("No stories found.")
			return
		}

		var (
			purple = lipgloss.Color("99")

			headerStyle = lipgloss.NewStyle().Foreground(purple).Bold(true).Align(lipgloss.Center)
			cellStyle   = lipgloss.NewStyle().Padding(0, 1)
		)

		t := table.New().
			Border(lipgloss.HiddenBorder()).
			BorderStyle(lipgloss.NewStyle().Foreground(purple)).
			StyleFunc(func(row, col int) lipgloss.Style {
				switch {
				case row == table.HeaderRow:
					return headerStyle
				default:
					return cellStyle
				}
			}).
			Headers("ID", "Title", "Author", "Category", "Likes", "Views")

		for _, story := range page.Results {
			t.Row(
				fmt.Sprintf("%d", story.ID),
				truncateString(story.Title, 38),
				story.Author.Username,
				story.Category.Name,
				fmt.Sprintf("%d", story.LikesCount),
				fmt.Sprintf("%d", story.Views),
			)
		}

		fmt.Printf("\n%d of %d stories\n", len(page.Results), page.Total)
		fmt.Println(t)
	},
}

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List story categories",
	Run: func(cmd *cobra.Command, args []string) {
		a, err := app.New()
		if err != nil {
			cobra.CheckErr(err)
		}
		defer a.Close()

		categories, err := a.Deps.API.ListCategories(context.Background())
		if err != nil {
			cobra.CheckErr(err)
		}

		names := make([]string, len(categories))
		for i, category := range categories {
			names[i] = category.Name
		}
		fmt.Println(strings.Join(names, ", "))
	},
}

func init() {
	storiesCmd.Flags().StringVarP(&storiesCategory, "category", "c", "", "filter by category name")
	storiesCmd.Flags().StringVarP(&storiesSearch, "search", "s", "", "search in title and description")
	rootCmd.AddCommand(storiesCmd)
	rootCmd.AddCommand(categoriesCmd)
}
