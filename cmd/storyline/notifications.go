package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kerbaras/storyline/pkg/app"
)

var notificationsCmd = &cobra.Command{
	Use:   "notifications",
	Short: "Show your latest notifications",
	Run: func(cmd *cobra.Command, args []string) {
		a, err := app.New()
		if err != nil {
			cobra.CheckErr(err)
		}
		defer a.Close()

		ctx := context.Background()

		count, err := a.Deps.API.CountUnreadNotifications(ctx)
		if err != nil {
			cobra.CheckErr(err)
		}

		page, err := a.Deps.API.ListNotifications(ctx, a.Deps.Config.Pages.Notifications, "")
		if err != nil {
			cobra.CheckErr(err)
		}

		fmt.Printf("%d unread\n\n", count)
		for _, n := range page.Results {
			marker := " "
			if !n.IsRead {
				marker = "●"
			}
			fmt.Printf("%s %s  %s\n", marker, n.CreatedAt, n.Message)
		}
	},
}

func init() {
	rootCmd.AddCommand(notificationsCmd)
}
