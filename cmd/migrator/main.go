// Command migrator runs the AIA token migration portal.
//
// Usage:
//
//	migrator serve --config portal.yaml
//	migrator tui
//	migrator history --config portal.yaml
package main

import (
	"os"

	"github.com/aiachain/migrator/cmd/migrator/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
