// Package cli implements climcat, a command-line browser for the project
// settings catalog.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/clim-settings-service/internal/catalog"
)

var (
	version = "dev"
	commit  = "none"
)

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	var (
		override string
		output   string
	)

	rootCmd := &cobra.Command{
		Use:           "climcat",
		Short:         "Browse the climatology settings catalog",
		Long:          "Inspect, validate and export the variable, dataset, style and axis-range tables used by the plotting routines.",
		Version:       fmt.Sprintf("%s (%s)", version, commit),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			if override == "" {
				override = os.Getenv("CATALOG_OVERRIDE_PATH")
			}
			return validateOutputFormat(output)
		},
	}

	rootCmd.PersistentFlags().StringVar(&override, "override", "", "YAML file merged over the built-in catalog (default $CATALOG_OVERRIDE_PATH)")
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "yaml", "Output format (yaml, json)")

	load := func() (*catalog.Catalog, error) {
		return catalog.Load(catalog.LoadOptions{OverridePath: override})
	}

	rootCmd.AddCommand(
		newValidateCmd(load),
		newListCmd(load),
		newShowCmd(load),
		newExportCmd(load),
		newDefaultsCmd(),
	)

	return rootCmd
}

// loaderFunc builds the catalog once flags have been parsed.
type loaderFunc func() (*catalog.Catalog, error)

func writeLine(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format+"\n", args...)
}
