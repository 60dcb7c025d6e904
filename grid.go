package stockgrid

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

// MonthLabels are the month columns of every grid, in calendar order.
var MonthLabels = [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

const (
	// YearColumn is the header of the leading column of an exported grid.
	YearColumn = "Year"
	// TotalColumn is the header of the trailing column of a Sum grid.
	TotalColumn = "Total"
)

// Cell is one grid value. The zero Cell is NoData.
type Cell struct {
	Value decimal.Decimal
	Valid bool // false means no observation fell in that cell
}

// NoData is the cell of a month without observations.
var NoData = Cell{}

// ValueCell returns a cell holding v.
func ValueCell(v decimal.Decimal) Cell { return Cell{Value: v, Valid: true} }

// IsNonZero reports whether the cell holds a value different from zero.
func (c Cell) IsNonZero() bool { return c.Valid && !c.Value.IsZero() }

// Row holds the twelve month cells of one year.
type Row struct {
	Year   int
	Months [12]Cell
	Total  *Cell // only for Sum grids
}

// Month returns the cell of month m.
func (r Row) Month(m time.Month) Cell { return r.Months[m-1] }

// Grid is a Year x Month table of aggregated values.
type Grid struct {
	Reducer Reducer
	Rows    []Row // most recent year first
}

// ToGrid pivots aggregated values into a grid.
//
// There is one row per year present in aggregated, most recent first, and every
// row has all twelve months; months without values are NoData. Sum grids get a
// Total cell per row, where NoData counts as the reducer's identity (zero).
func ToGrid(aggregated Aggregated, reducer Reducer) *Grid {
	years := make([]int, 0)
	rows := make(map[int]*Row)
	for k, v := range aggregated {
		row, ok := rows[k.Year]
		if !ok {
			row = &Row{Year: k.Year}
			rows[k.Year] = row
			years = append(years, k.Year)
		}
		row.Months[k.Month-1] = ValueCell(v)
	}
	slices.Sort(years)
	slices.Reverse(years)

	g := &Grid{Reducer: reducer, Rows: make([]Row, 0, len(years))}
	for _, y := range years {
		row := *rows[y]
		if identity, ok := reducer.Identity(); ok {
			total := identity
			for _, c := range row.Months {
				if c.Valid {
					total = total.Add(c.Value)
				}
			}
			cell := ValueCell(total)
			row.Total = &cell
		}
		g.Rows = append(g.Rows, row)
	}
	return g
}

// HasTotal reports whether rows carry a Total cell.
func (g *Grid) HasTotal() bool { return g.Reducer == Sum }

// Columns returns the value column headers: the twelve months, then Total for Sum grids.
func (g *Grid) Columns() []string {
	cols := append([]string(nil), MonthLabels[:]...)
	if g.HasTotal() {
		cols = append(cols, TotalColumn)
	}
	return cols
}

// Years returns the row years, most recent first.
func (g *Grid) Years() []int {
	years := make([]int, len(g.Rows))
	for i, r := range g.Rows {
		years[i] = r.Year
	}
	return years
}

// Row returns the row of year and true, or false if the grid has no such year.
func (g *Grid) Row(year int) (Row, bool) {
	for _, r := range g.Rows {
		if r.Year == year {
			return r, true
		}
	}
	return Row{}, false
}

// Cell returns the cell at (year, month), NoData if the grid has no such year.
func (g *Grid) Cell(year int, month time.Month) Cell {
	r, ok := g.Row(year)
	if !ok {
		return NoData
	}
	return r.Month(month)
}

// Empty reports whether the grid has no rows.
func (g *Grid) Empty() bool { return len(g.Rows) == 0 }
