// langcat serves a searchable catalog of programming languages.
package main

import (
	"os"

	"langcat/cmd/langcat/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
