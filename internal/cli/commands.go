package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/clim-settings-service/internal/catalog"
)

func newValidateCmd(load loaderFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Load the catalog and check its invariants",
		Long:  "Builds the catalog from the built-in tables and the optional override file and reports every broken invariant.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cat, err := load()
			if err != nil {
				var joined interface{ Unwrap() []error }
				if errors.As(err, &joined) {
					out := cmd.ErrOrStderr()
					writeLine(out, "Catalog has %d validation error(s):", len(joined.Unwrap()))
					for _, e := range joined.Unwrap() {
						writeLine(out, "  - %s", e)
					}
					return errors.New("catalog is invalid")
				}
				return err
			}

			if getOutputFormat(cmd) == "json" {
				return printValue(cmd, map[string]any{
					"valid": true,
					"sizes": cat.Sizes(),
				})
			}
			out := cmd.OutOrStdout()
			writeLine(out, "Catalog is valid.")
			for _, table := range catalog.TableNames {
				if n, ok := cat.Sizes()[table]; ok {
					writeLine(out, "  %-18s %d", table, n)
				}
			}
			return nil
		},
	}
}

func newListCmd(load loaderFunc) *cobra.Command {
	return &cobra.Command{
		Use:       "list <table>",
		Short:     "List the entry names of a table",
		Long:      "Lists the entry names of a table. Tables: " + strings.Join(catalog.TableNames, ", ") + ".",
		Args:      cobra.ExactArgs(1),
		ValidArgs: catalog.TableNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := load()
			if err != nil {
				return err
			}
			keys, err := cat.Keys(args[0])
			if err != nil {
				return err
			}
			if getOutputFormat(cmd) == "json" {
				return printValue(cmd, keys)
			}
			for _, key := range keys {
				writeLine(cmd.OutOrStdout(), "%s", key)
			}
			return nil
		},
	}
}

func newShowCmd(load loaderFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "show <table> [name]",
		Short: "Print a table or a single entry",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := load()
			if err != nil {
				return err
			}
			if len(args) == 1 {
				table, err := cat.Table(args[0])
				if err != nil {
					return err
				}
				return printValue(cmd, table)
			}
			entry, err := cat.Entry(args[0], args[1])
			if err != nil {
				return err
			}
			return printValue(cmd, entry)
		},
	}
}

func newExportCmd(load loaderFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Print the fully expanded catalog",
		Long:  "Prints every table after derived groups, plot styles and shape ranges have been expanded.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cat, err := load()
			if err != nil {
				return fmt.Errorf("export: %w", err)
			}
			return printValue(cmd, cat.Snapshot())
		},
	}
}

func newDefaultsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "defaults",
		Short:   "Print the built-in catalog source",
		Long:    "Prints the built-in catalog document unexpanded. Copy sections of it into an override file to change them.",
		Example: "  climcat defaults > override.yaml",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := io.WriteString(cmd.OutOrStdout(), catalog.DefaultContent())
			return err
		},
	}
}
