package stockgrid

import "strconv"

// DefaultDecimals is the number of decimals of grid values.
const DefaultDecimals = 4

// FormatValue formats a cell with exactly 'decimals' digits after the point.
// NoData is formatted as an empty string. Negative decimals are treated as 0.
//
// It is the only formatter of grid values: tables, CSV and JSON exports all go
// through it.
func FormatValue(c Cell, decimals int) string {
	if !c.Valid {
		return ""
	}
	return c.Value.StringFixed(int32(max(decimals, 0)))
}

// Table is a grid formatted as text: a header and rows of strings.
type Table struct {
	Header []string
	Rows   [][]string
}

// Table formats the grid: the header is Year followed by Columns, and each row
// starts with its year.
func (g *Grid) Table(decimals int) *Table {
	t := &Table{
		Header: append([]string{YearColumn}, g.Columns()...),
		Rows:   make([][]string, 0, len(g.Rows)),
	}
	for _, row := range g.Rows {
		record := make([]string, 0, len(t.Header))
		record = append(record, strconv.Itoa(row.Year))
		for _, c := range row.Months {
			record = append(record, FormatValue(c, decimals))
		}
		if g.HasTotal() {
			total := NoData
			if row.Total != nil {
				total = *row.Total
			}
			record = append(record, FormatValue(total, decimals))
		}
		t.Rows = append(t.Rows, record)
	}
	return t
}
