package core

// table.go splits decoded text into header-keyed rows.
//
// The export has a few preamble lines (store name, date range) above the real
// header, so the header is located by content rather than position.

import (
	"strings"
	"unicode"
)

// ParseTable returns one Row per data line after the header. An empty text or
// a header with no data lines yields nil.
func ParseTable(text string) []Row {
	lines := splitLines(text)
	if len(lines) == 0 {
		return nil
	}

	start := FindHeaderLine(lines)
	header := SplitLine(lines[start])
	data := lines[start+1:]
	if len(data) == 0 {
		return nil
	}

	rows := make([]Row, 0, len(data))
	for _, line := range data {
		rows = append(rows, zipRow(header, SplitLine(line)))
	}
	return rows
}

// FindHeaderLine returns the index of the first line naming both the
// product-name and order-quantity columns, or 0 when none does.
func FindHeaderLine(lines []string) int {
	for i, l := range lines {
		if strings.Contains(l, ColumnProductName) && strings.Contains(l, ColumnOrderQty) {
			return i
		}
	}
	return 0
}

// SplitLine splits one CSV line on commas outside double quotes. Inside
// quotes "" is a literal quote. Quote characters themselves are dropped and
// every field is trimmed.
func SplitLine(line string) []string {
	var (
		out   []string
		cur   strings.Builder
		inQ   bool
		runes = []rune(line)
	)

	for i := 0; i < len(runes); i++ {
		ch := runes[i]
		switch {
		case ch == '"':
			if inQ && i+1 < len(runes) && runes[i+1] == '"' {
				cur.WriteRune('"')
				i++
				continue
			}
			inQ = !inQ
		case ch == ',' && !inQ:
			out = append(out, strings.TrimSpace(cur.String()))
			cur.Reset()
		default:
			cur.WriteRune(ch)
		}
	}
	return append(out, strings.TrimSpace(cur.String()))
}

func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	var lines []string
	for _, l := range strings.Split(text, "\n") {
		l = strings.TrimRightFunc(l, unicode.IsSpace)
		if l == "" {
			continue
		}
		lines = append(lines, l)
	}
	return lines
}

// zipRow pairs header names with cells. Missing cells are "", extra cells are
// ignored and a repeated header name keeps its last column.
func zipRow(header, cells []string) Row {
	row := make(Row, len(header))
	for i, name := range header {
		if i < len(cells) {
			row[name] = cells[i]
		} else {
			row[name] = ""
		}
	}
	return row
}
