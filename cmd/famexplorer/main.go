// Command famexplorer opens the sprite explorer and provides data tooling
// around it.
package main

import (
	"os"

	"github.com/phanxgames/famexplorer/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
