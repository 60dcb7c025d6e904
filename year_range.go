package stockgrid

import (
	"fmt"

	"github.com/etnz/stockgrid/date"
)

// YearRange is an inclusive range of calendar years.
type YearRange struct{ Min, Max int }

// NewYearRange creates a new year range. If 'from' is after 'to', they are swapped.
func NewYearRange(from, to int) YearRange {
	if from > to {
		from, to = to, from
	}
	return YearRange{Min: from, Max: to}
}

// Contains return true if year is included in the range (boundaries included).
func (r YearRange) Contains(year int) bool { return year >= r.Min && year <= r.Max }

// Dates returns the date range from January 1st of Min to December 31st of Max.
func (r YearRange) Dates() date.Range { return date.Years(r.Min, r.Max) }

// String returns the range as displayed in reports: "2019 - 2024".
func (r YearRange) String() string { return fmt.Sprintf("%d - %d", r.Min, r.Max) }

// FilterByYearRange returns the observations whose year is within r, in their
// original order. A nil range returns observations unchanged.
//
// Observations with an invalid date cannot be placed in any year; they are
// kept so that Aggregate reports them.
func FilterByYearRange(observations []Observation, r *YearRange) []Observation {
	if r == nil {
		return observations
	}
	kept := r.indices(observations)
	out := make([]Observation, len(kept))
	for i, k := range kept {
		out[i] = observations[k]
	}
	return out
}

// indices returns the positions of the observations FilterByYearRange keeps.
func (r YearRange) indices(observations []Observation) []int {
	dates := r.Dates()
	kept := make([]int, 0, len(observations))
	for i, o := range observations {
		if !o.Date.Valid() || dates.Contains(o.Date) {
			kept = append(kept, i)
		}
	}
	return kept
}
