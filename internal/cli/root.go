// Package cli implements the ordersheet command: offline import of an order
// export, catalog listing and state store maintenance.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/JonMunkholm/OrderSheet/internal/catalog"
	"github.com/JonMunkholm/OrderSheet/internal/core"
	"github.com/JonMunkholm/OrderSheet/internal/logging"
)

// Output formats accepted by --format.
const (
	FormatJSON  = "json"
	FormatYAML  = "yaml"
	FormatTable = "table"
)

type rootOptions struct {
	catalogFile string
	verbose     bool
}

// NewRootCmd builds the command tree.
//
//	ordersheet
//	├── import <file>
//	├── catalog
//	├── purge
//	├── reset <session>...
//	└── version
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "ordersheet",
		Short: "Turn a weekly order export into the store's order sheet",
		Long: `ordersheet reads the order export (UTF-8 or Shift-JIS CSV), maps every
line to the store's fixed item list and prints the resulting order quantities.
It can also write the printable sheet as HTML or XLSX.

Example Usage:
  ordersheet import orders.csv
  ordersheet import orders.csv --format yaml --xlsx sheet.xlsx
  ordersheet catalog --format table`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := "warn"
			if opts.verbose {
				level = "debug"
			}
			slog.SetDefault(logging.New(cmd.ErrOrStderr(), level, "text"))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	root.PersistentFlags().StringVar(&opts.catalogFile, "catalog", "",
		"YAML file overriding item labels (default: built-in catalog)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false,
		"Enable debug logging on stderr")

	root.AddCommand(
		newImportCmd(opts),
		newCatalogCmd(opts),
		newPurgeCmd(),
		newResetCmd(),
		newVersionCmd(),
	)
	return root
}

// Execute runs the command tree with os.Args.
// Errors with a known user message come back as *core.UserError.
func Execute() error {
	err := NewRootCmd().Execute()
	if core.IsUserFacing(err) {
		return core.NewUserError(err)
	}
	return err
}

func (o *rootOptions) loadCatalog() (*catalog.Catalog, error) {
	if o.catalogFile == "" {
		return catalog.Default(), nil
	}
	return catalog.LoadFile(o.catalogFile)
}

func writeStructured(w io.Writer, format string, v any) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q (want json or yaml)", format)
	}
}
