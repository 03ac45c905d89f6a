package cli

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"dialoq/internal/adapters/seedfile"
)

var seedCmd = &cobra.Command{
	Use:   "seed [file]",
	Short: "Bulk-import dialogs from a source document",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := initContext()
		defer ctx.Close()

		path := ctx.Config.SeedFile
		if len(args) == 1 {
			path = args[0]
		}
		doc, err := seedfile.New(path).Load(cmd.Context())
		if err != nil {
			exitError("%v", err)
		}
		n, err := ctx.Workflow.SeedFromSource(cmd.Context(), doc)
		if err != nil {
			exitError("seed failed: %v", err)
		}
		color.New(color.FgGreen).Printf("Seeded %d dialogs from %s\n", n, path)
	},
}
