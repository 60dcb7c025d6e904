package stockgrid

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Tag marks a cell for presentation. Tags are flags: a cell can be both High and Low.
type Tag uint8

const (
	Normal Tag = 0
	High   Tag = 1 << iota
	Low
	Paid
)

// None is the tag of a dividend cell without payment.
const None = Normal

// Has reports whether all flags of x are set in t.
func (t Tag) Has(x Tag) bool { return t&x == x && x != 0 }

func (t Tag) String() string {
	if t == Normal {
		return "NORMAL"
	}
	var names []string
	for _, f := range []struct {
		tag  Tag
		name string
	}{{High, "HIGH"}, {Low, "LOW"}, {Paid, "PAID"}} {
		if t.Has(f.tag) {
			names = append(names, f.name)
		}
	}
	return strings.Join(names, "|")
}

// RowTags holds the tags of one grid row.
type RowTags struct {
	Year   int
	Months [12]Tag
	Total  Tag
}

// Highlight tags, in each row independently, every cell equal to the row
// maximum High and every cell equal to the row minimum Low. Ties are all
// tagged, so a row of equal values is tagged High|Low everywhere. NoData cells
// are ignored and a row without values stays Normal.
func Highlight(g *Grid) []RowTags {
	tags := make([]RowTags, len(g.Rows))
	for i, row := range g.Rows {
		tags[i].Year = row.Year
		var hi, lo decimal.Decimal
		found := false
		for _, c := range row.Months {
			if !c.Valid {
				continue
			}
			if !found {
				hi, lo, found = c.Value, c.Value, true
				continue
			}
			if c.Value.GreaterThan(hi) {
				hi = c.Value
			}
			if c.Value.LessThan(lo) {
				lo = c.Value
			}
		}
		if !found {
			continue
		}
		for m, c := range row.Months {
			if !c.Valid {
				continue
			}
			if c.Value.Equal(hi) {
				tags[i].Months[m] |= High
			}
			if c.Value.Equal(lo) {
				tags[i].Months[m] |= Low
			}
		}
	}
	return tags
}

// HighlightNonZero tags Paid every cell holding a non zero value, Total included.
func HighlightNonZero(g *Grid) []RowTags {
	tags := make([]RowTags, len(g.Rows))
	for i, row := range g.Rows {
		tags[i].Year = row.Year
		for m, c := range row.Months {
			if c.IsNonZero() {
				tags[i].Months[m] = Paid
			}
		}
		if row.Total != nil && row.Total.IsNonZero() {
			tags[i].Total = Paid
		}
	}
	return tags
}
