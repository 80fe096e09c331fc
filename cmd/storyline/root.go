package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/kerbaras/storyline/pkg/app"
)

var rootCmd = &cobra.Command{
	Use:   "storyline",
	Short: "A chat-fiction reader for your terminal",
	Long:  "Read, write and follow serialized chat fiction with a beautiful TUI and CLI",
	Run: func(cmd *cobra.Command, args []string) {
		// Launch TUI by default
		a, err := app.New()
		if err != nil {
			cobra.CheckErr(err)
		}
		defer a.Close()
		if err := a.Run(); err != nil {
			cobra.CheckErr(err)
		}
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func truncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
