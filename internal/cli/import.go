package cli

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/JonMunkholm/OrderSheet/internal/catalog"
	"github.com/JonMunkholm/OrderSheet/internal/core"
	"github.com/JonMunkholm/OrderSheet/internal/export"
	"github.com/JonMunkholm/OrderSheet/internal/state"
)

type importOptions struct {
	*rootOptions
	format    string
	xlsxPath  string
	htmlPath  string
	stockPath string
	title     string
	date      string
	maxBytes  int64
}

// importOutput is what import prints. Orders lists every catalog id, zero or
// not, in catalog order.
type importOutput struct {
	File       string            `json:"file" yaml:"file"`
	Encoding   core.Encoding     `json:"encoding" yaml:"encoding"`
	Rows       int               `json:"rows" yaml:"rows"`
	Skipped    int               `json:"skipped" yaml:"skipped"`
	Unresolved int               `json:"unresolved" yaml:"unresolved"`
	Orders     []orderLine       `json:"orders" yaml:"orders"`
	Notes      map[string]string `json:"notes,omitempty" yaml:"notes,omitempty"`
}

type orderLine struct {
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Order int    `json:"order" yaml:"order"`
}

func newImportCmd(root *rootOptions) *cobra.Command {
	opts := &importOptions{rootOptions: root}

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import an order export and print the order quantities",
		Long: `Import reads one order export and prints the quantity to order for every
item on the sheet. With --xlsx or --html the printable sheet is written too;
--stock supplies the counted stock as a YAML map of item id to count.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd, opts, args[0])
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.format, "format", "f", FormatJSON, "Output format: json or yaml")
	f.StringVar(&opts.xlsxPath, "xlsx", "", "Write the order sheet workbook to this path")
	f.StringVar(&opts.htmlPath, "html", "", "Write the printable HTML sheet to this path")
	f.StringVar(&opts.stockPath, "stock", "", "YAML file with stock counts (id: count)")
	f.StringVar(&opts.title, "title", export.DefaultTitle, "Sheet title")
	f.StringVar(&opts.date, "date", "", "Date label printed on the sheet")
	f.Int64Var(&opts.maxBytes, "max-size", core.DefaultMaxImportBytes, "Largest file accepted, in bytes")
	return cmd
}

func runImport(cmd *cobra.Command, opts *importOptions, path string) error {
	if opts.format != FormatJSON && opts.format != FormatYAML {
		return fmt.Errorf("unknown format %q (want json or yaml)", opts.format)
	}

	cat, err := opts.loadCatalog()
	if err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	ctx := cmd.Context()
	report, err := core.ImportReader(ctx, cat, core.NewEngine(), f, opts.maxBytes)
	if err != nil {
		return err
	}
	slog.Debug("import completed",
		"file", path,
		"encoding", report.Encoding,
		"rows", report.Rows,
		"skipped", report.Skipped,
		"unresolved", report.Unresolved,
	)

	out := importOutput{
		File:       filepath.Base(path),
		Encoding:   report.Encoding,
		Rows:       report.Rows,
		Skipped:    report.Skipped,
		Unresolved: report.Unresolved,
		Notes:      report.Notes,
	}
	for _, it := range cat.Items() {
		out.Orders = append(out.Orders, orderLine{ID: it.ID, Name: it.DisplayName, Order: report.Quantities[it.ID]})
	}
	if err := writeStructured(cmd.OutOrStdout(), opts.format, out); err != nil {
		return err
	}

	if opts.xlsxPath == "" && opts.htmlPath == "" {
		return nil
	}

	stock, err := loadStock(opts.stockPath, cat)
	if err != nil {
		return err
	}
	st := state.Default().WithOrders(out.File, report.Quantities).WithStock(stock)
	payload := export.BuildPayload(cat, st, catalog.Notes(catalog.DefaultMapping()), opts.title, opts.date)

	if opts.xlsxPath != "" {
		var buf bytes.Buffer
		if err := export.WriteWorkbook(&buf, payload); err != nil {
			return fmt.Errorf("build workbook: %w", err)
		}
		if err := os.WriteFile(opts.xlsxPath, buf.Bytes(), 0o644); err != nil {
			return fmt.Errorf("write workbook: %w", err)
		}
	}
	if opts.htmlPath != "" {
		var buf bytes.Buffer
		if err := export.RenderSheet(ctx, &buf, payload); err != nil {
			return fmt.Errorf("render sheet: %w", err)
		}
		if err := os.WriteFile(opts.htmlPath, buf.Bytes(), 0o644); err != nil {
			return fmt.Errorf("write sheet: %w", err)
		}
	}
	return nil
}

// loadStock reads an id-to-count YAML map. Ids must be in the catalog.
func loadStock(path string, cat *catalog.Catalog) (map[string]int, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read stock file: %w", err)
	}
	var stock map[string]int
	if err := yaml.Unmarshal(data, &stock); err != nil {
		return nil, fmt.Errorf("parse stock file: %w", err)
	}
	for id, n := range stock {
		if !cat.Has(id) {
			return nil, fmt.Errorf("%w: %s", core.ErrUnknownItem, id)
		}
		if n < 0 {
			return nil, fmt.Errorf("%w: %s = %d", core.ErrInvalidStock, id, n)
		}
	}
	return stock, nil
}
