// Command dialoqctl is the dialoq maintenance CLI.
package main

import (
	"os"

	"dialoq/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
