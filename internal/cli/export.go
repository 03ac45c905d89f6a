package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"dialoq/internal/adapters/seedfile"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export the patched source document",
	Long: `Export reads the source document, replaces its text entries with the
current store contents, and writes the result to stdout or -o.`,
	Args: cobra.MaximumNArgs(1),
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
		patched, err := ctx.Workflow.ExportPatched(cmd.Context(), doc)
		if err != nil {
			exitError("export failed: %v", err)
		}
		b, err := json.MarshalIndent(patched, "", "  ")
		if err != nil {
			exitError("encode document: %v", err)
		}
		if exportOut == "" {
			fmt.Println(string(b))
			return
		}
		if err := os.WriteFile(exportOut, b, 0o644); err != nil {
			exitError("write %s: %v", exportOut, err)
		}
		color.New(color.FgGreen).Printf("Wrote %d entries to %s\n", len(patched.Text), exportOut)
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "output", "o", "", "write the document to a file instead of stdout")
}
