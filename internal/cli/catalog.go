package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/OrderSheet/internal/catalog"
)

type catalogLine struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Section     string `json:"section" yaml:"section"`
	TargetStock string `json:"targetStock" yaml:"targetStock"`
	StockInput  bool   `json:"stockInput" yaml:"stockInput"`
}

func newCatalogCmd(root *rootOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List the items on the order sheet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := root.loadCatalog()
			if err != nil {
				return err
			}
			lines := catalogLines(cat)
			if format == FormatTable {
				return writeCatalogTable(cmd, lines)
			}
			return writeStructured(cmd.OutOrStdout(), format, lines)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", FormatTable, "Output format: table, json or yaml")
	return cmd
}

func catalogLines(cat *catalog.Catalog) []catalogLine {
	input := make(map[string]bool)
	for _, it := range cat.StockInputItems() {
		input[it.ID] = true
	}

	lines := make([]catalogLine, 0, cat.Len())
	for _, it := range cat.Items() {
		lines = append(lines, catalogLine{
			ID:          it.ID,
			Name:        it.DisplayName,
			Section:     it.Section.Label(),
			TargetStock: it.TargetStockLabel,
			StockInput:  input[it.ID],
		})
	}
	return lines
}

func writeCatalogTable(cmd *cobra.Command, lines []catalogLine) error {
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSECTION\tNAME\tTARGET")
	for _, l := range lines {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", l.ID, l.Section, l.Name, l.TargetStock)
	}
	return tw.Flush()
}
