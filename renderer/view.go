package renderer

import (
	"github.com/etnz/stockgrid"
)

// NoDataText is printed in place of an empty table.
const NoDataText = "No data available in the selected year range."

// GridView is a grid ready to be printed: formatted cells, emphasized by tag.
type GridView struct {
	Title     string
	Header    []string
	Rows      [][]string // the first cell is the year
	Empty     bool
	EmptyText string
}

// NewGridView formats g with decimals and emphasizes cells according to tags.
// High and Paid cells are bold, Low cells are italic.
func NewGridView(title string, g *stockgrid.Grid, tags []stockgrid.RowTags, decimals int) *GridView {
	table := g.Table(decimals)
	v := &GridView{
		Title:     title,
		Header:    table.Header,
		Rows:      table.Rows,
		Empty:     g.Empty(),
		EmptyText: NoDataText,
	}
	for i, record := range v.Rows {
		if i >= len(tags) {
			break
		}
		for m := range tags[i].Months {
			record[m+1] = emphasize(record[m+1], tags[i].Months[m])
		}
		if g.HasTotal() {
			record[13] = emphasize(record[13], tags[i].Total)
		}
	}
	return v
}

// emphasize decorates a formatted value with Markdown emphasis.
func emphasize(s string, tag stockgrid.Tag) string {
	if s == "" {
		return s
	}
	bold := tag.Has(stockgrid.High) || tag.Has(stockgrid.Paid)
	italic := tag.Has(stockgrid.Low)
	switch {
	case bold && italic:
		return "***" + s + "***"
	case bold:
		return "**" + s + "**"
	case italic:
		return "_" + s + "_"
	}
	return s
}

// ReportView is the whole company report.
type ReportView struct {
	Name      string
	Symbol    string
	Sector    string
	LastPrice string // empty without quote
	Change    string
	Up        bool
	QuoteNote string // why there is no last price
	Years     string
	Prices    *GridView
	Dividends *GridView // nil to skip the section
}
