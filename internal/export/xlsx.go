package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// WorkbookSheet is the name of the order sheet tab.
const WorkbookSheet = "発注書"

var workbookHeader = []any{"区分", "商品", "適正在庫", "在庫", "発注", "備考", "要確認"}

// workbookLine is one spreadsheet row. A nil Order leaves the cell empty.
type workbookLine struct {
	Band   string
	Name   string
	Target string
	Stock  *int
	Order  *int
	Note   string
	Warn   bool
}

// WriteWorkbook writes the order sheet as an XLSX workbook, one row per
// printed value, in print order.
func WriteWorkbook(w io.Writer, p PrintPayload) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", WorkbookSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	headStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"F3F4F6"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	warnStyle, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"FFF7C7"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("warn style: %w", err)
	}
	titleStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}})
	if err != nil {
		return fmt.Errorf("title style: %w", err)
	}

	if err := f.SetCellValue(WorkbookSheet, "A1", p.Title); err != nil {
		return err
	}
	if err := f.SetCellStyle(WorkbookSheet, "A1", "A1", titleStyle); err != nil {
		return err
	}
	if p.DateLabel != "" {
		if err := f.SetCellValue(WorkbookSheet, "G1", p.DateLabel); err != nil {
			return err
		}
	}

	if err := f.SetSheetRow(WorkbookSheet, "A3", &workbookHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if err := f.SetCellStyle(WorkbookSheet, "A3", "G3", headStyle); err != nil {
		return err
	}

	row := 4
	for _, line := range workbookLines(Layout(p)) {
		values := []any{line.Band, line.Name, line.Target, optInt(line.Stock), optInt(line.Order), line.Note, ""}
		if line.Warn {
			values[6] = "!"
		}
		start, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(WorkbookSheet, start, &values); err != nil {
			return fmt.Errorf("write row %d: %w", row, err)
		}
		if line.Warn {
			end, _ := excelize.CoordinatesToCellName(len(values), row)
			if err := f.SetCellStyle(WorkbookSheet, start, end, warnStyle); err != nil {
				return err
			}
		}
		row++
	}

	footnote, _ := excelize.CoordinatesToCellName(1, row+1)
	if err := f.SetCellValue(WorkbookSheet, footnote, Footnote); err != nil {
		return err
	}

	for col, width := range map[string]float64{"A": 10, "B": 28, "C": 20, "D": 8, "E": 8, "F": 32, "G": 8} {
		if err := f.SetColWidth(WorkbookSheet, col, col, width); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// workbookLines flattens the sheet layout. Split cells become one line per
// half and the sponge cell one line per stock box and bag size plus a total.
func workbookLines(rows []Row) []workbookLine {
	var out []workbookLine
	for _, r := range rows {
		col := 0
		for _, c := range r.Cells {
			band := bandAt(r.Bands, col)
			col += c.Span

			switch c.Kind {
			case CellSplit:
				for _, h := range c.Halves {
					out = append(out, workbookLine{
						Band:   band,
						Name:   c.Name + "（" + h.Tag + "）",
						Target: h.Target,
						Stock:  intPtr(h.Stock),
						Order:  intPtr(h.Order),
						Warn:   h.Warn,
					})
				}
			case CellSponge:
				out = append(out,
					workbookLine{Band: band, Name: c.Name + "（未加工）", Stock: intPtr(c.SpongeRaw)},
					workbookLine{Band: band, Name: c.Name + "（加工済）", Stock: intPtr(c.SpongeDone)},
				)
				for _, o := range c.SpongeOrders {
					out = append(out, workbookLine{
						Band:  band,
						Name:  fmt.Sprintf("%s（%d）", c.Name, o.Unit),
						Order: intPtr(o.Qty),
					})
				}
				out = append(out, workbookLine{Band: band, Name: c.Name + "合計（個）", Order: intPtr(c.TotalPieces)})
			default:
				line := workbookLine{
					Band:   band,
					Name:   c.Name,
					Target: c.Target,
					Stock:  intPtr(c.Stock),
					Note:   c.Note,
					Warn:   c.Warn,
				}
				if !c.HideOrder {
					line.Order = intPtr(c.Order)
				}
				out = append(out, line)
			}
		}
	}
	return out
}

func bandAt(bands []Band, col int) string {
	at := 0
	for _, b := range bands {
		at += b.Span
		if col < at {
			return b.Label
		}
	}
	return ""
}

func intPtr(n int) *int { return &n }

func optInt(n *int) any {
	if n == nil {
		return ""
	}
	return *n
}
