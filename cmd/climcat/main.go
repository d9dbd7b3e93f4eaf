// Package main is the entry point for the climcat CLI binary.
package main

import (
	"os"

	"github.com/couchcryptid/clim-settings-service/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
