package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/kerbaras/storyline/pkg/app"
	"github.com/kerbaras/storyline/pkg/integrations"
)

var exportDir string

var exportCmd = &cobra.Command{
	Use:   "export [story-id]",
	Short: "Export a story as an EPUB",
	Long:  "Fetch every episode of a story and write it out as an EPUB, one chapter per episode",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		storyID, err := strconv.Atoi(args[0])
		if err != nil {
			cobra.CheckErr(fmt.Errorf("invalid story id %q", args[0]))
		}

		a, err := app.New()
		if err != nil {
			cobra.CheckErr(err)
		}
		defer a.Close()

		dir := exportDir
		if dir == "" {
			dir = a.Deps.Config.Data.Dir
		}

		builder := integrations.NewEPubBuilder(a.Deps.API, dir)
		path, err := builder.ExportStory(context.Background(), storyID)
		if err != nil {
			cobra.CheckErr(err)
		}

		fmt.Printf("✓ Exported to %s\n", path)
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportDir, "output", "o", "", "output directory (defaults to the data dir)")
	rootCmd.AddCommand(exportCmd)
}
