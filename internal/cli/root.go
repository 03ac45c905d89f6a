// Package cli implements the dialoqctl command-line interface for working
// with the dialog store without going through the HTTP API.
package cli

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	dbsqlite "dialoq/internal/adapters/db/sqlite"
	"dialoq/internal/config"
	"dialoq/internal/usecase/workflow"
)

// cmdContext holds common resources for CLI commands.
type cmdContext struct {
	Config   *config.Config
	DB       *sql.DB
	Workflow *workflow.Service
}

// Close releases resources held by cmdContext.
func (c *cmdContext) Close() {
	if c.DB != nil {
		c.DB.Close()
	}
}

// initContext loads config, opens the store, and builds the workflow.
// Commands here never call the translation provider, so none is wired.
func initContext() *cmdContext {
	cfg, err := config.Load()
	if err != nil {
		exitError("%v", err)
	}
	db, err := dbsqlite.Init(cfg.DBPath)
	if err != nil {
		exitError("failed to open store: %v", err)
	}
	wf := workflow.New(workflow.Deps{
		Dialogs: dbsqlite.NewDialogRepo(db),
	}, workflow.Config{
		DefaultActor: cfg.DefaultActor,
		ProviderName: cfg.Provider,
	})
	return &cmdContext{Config: cfg, DB: db, Workflow: wf}
}

var rootCmd = &cobra.Command{
	Use:   "dialoqctl",
	Short: "Dialog localization backlog tool",
	Long: `dialoqctl manages the dialoq localization backlog from the command line:
seed the store from a source document, inspect workflow statistics, and
export the patched document.`,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(exportCmd)
}

// exitError prints an error and exits.
func exitError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
	os.Exit(1)
}
