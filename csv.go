package stockgrid

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
)

// WriteCSV writes the grid as comma separated values, header first, rows in
// grid order.
func (g *Grid) WriteCSV(w io.Writer, decimals int) error {
	return g.Table(decimals).WriteCSV(w)
}

// WriteCSV writes the table as comma separated values.
func (t *Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Header); err != nil {
		return err
	}
	if err := cw.WriteAll(t.Rows); err != nil {
		return err
	}
	return cw.Error()
}

// ToDelimitedText returns the UTF-8 CSV export of the grid. The output only
// depends on the grid and decimals.
func ToDelimitedText(g *Grid, decimals int) ([]byte, error) {
	var buf bytes.Buffer
	if err := g.WriteCSV(&buf, decimals); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ParseDelimitedText reads back a CSV export into a Table of formatted cells.
func ParseDelimitedText(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading grid: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("reading grid: missing header")
	}
	if records[0][0] != YearColumn {
		return nil, fmt.Errorf("reading grid: first column is %q want %q", records[0][0], YearColumn)
	}
	return &Table{Header: records[0], Rows: records[1:]}, nil
}
