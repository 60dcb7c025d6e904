package stockgrid

import "fmt"

// AggregationSpec selects what Run computes.
type AggregationSpec struct {
	Field   string
	Reducer Reducer
	Years   *YearRange // nil for all years
}

// PriceSpec is the spec of the average price table.
func PriceSpec(years *YearRange) AggregationSpec {
	return AggregationSpec{Field: FieldAverage, Reducer: Mean, Years: years}
}

// DividendSpec is the spec of the dividend table.
func DividendSpec(years *YearRange) AggregationSpec {
	return AggregationSpec{Field: FieldDividends, Reducer: Sum, Years: years}
}

// Report is the result of Run.
type Report struct {
	Spec     AggregationSpec
	Grid     *Grid
	Tags     []RowTags // aligned with Grid.Rows
	Warnings []MissingFieldWarning
}

// Run validates observations, filters them by year, aggregates them and pivots
// the result. Mean grids are tagged with Highlight, Sum grids with HighlightNonZero.
//
// Malformed observations and warnings are reported with their position in
// 'observations'.
func Run(observations []Observation, spec AggregationSpec) (*Report, error) {
	if spec.Field == "" {
		return nil, fmt.Errorf("missing field to aggregate")
	}
	if err := Validate(observations); err != nil {
		return nil, err
	}
	filtered, kept := observations, []int(nil)
	if spec.Years != nil {
		kept = spec.Years.indices(observations)
		filtered = make([]Observation, len(kept))
		for i, k := range kept {
			filtered[i] = observations[k]
		}
	}
	aggregated, warnings, err := Aggregate(filtered, spec.Field, spec.Reducer)
	if err != nil {
		return nil, err
	}
	for i := range warnings {
		if kept != nil {
			warnings[i].Position = kept[warnings[i].Position]
		}
	}
	grid := ToGrid(aggregated, spec.Reducer)
	r := &Report{Spec: spec, Grid: grid, Warnings: warnings}
	if spec.Reducer == Sum {
		r.Tags = HighlightNonZero(grid)
	} else {
		r.Tags = Highlight(grid)
	}
	return r, nil
}
