package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"dialoq/internal/domain"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show workflow statistics",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := initContext()
		defer ctx.Close()

		stats, err := ctx.Workflow.Statistics(cmd.Context())
		if err != nil {
			exitError("statistics failed: %v", err)
		}

		yellow := color.New(color.FgYellow)
		cyan := color.New(color.FgCyan)
		green := color.New(color.FgGreen)

		fmt.Printf("Total dialogs: %d\n", stats.TotalDocuments)
		yellow.Printf("  pending:     %d\n", stats.StatusCounts[domain.StatusPending])
		cyan.Printf("  in_progress: %d\n", stats.StatusCounts[domain.StatusInProgress])
		green.Printf("  translated:  %d\n", stats.StatusCounts[domain.StatusTranslated])
	},
}
