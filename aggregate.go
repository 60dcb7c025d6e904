package stockgrid

import (
	"slices"

	"github.com/shopspring/decimal"
)

// Aggregated maps each (year, month) having at least one value to its reduced value.
type Aggregated map[YearMonth]decimal.Decimal

// Validate returns a *MalformedInputError for the first observation whose date
// cannot be resolved to a year and month.
func Validate(observations []Observation) error {
	for i, o := range observations {
		if !o.Date.Valid() {
			return &MalformedInputError{Position: i, Err: errUnresolvableDate}
		}
	}
	return nil
}

// Aggregate groups the values of field by (year, month) and reduces each group.
//
// Observations without the field are skipped, and reported as warnings in
// input order. Values are reduced in ascending date order (input order among
// equal dates), so that the result is identical across calls. Observations are
// not modified.
func Aggregate(observations []Observation, field string, reducer Reducer) (Aggregated, []MissingFieldWarning, error) {
	if err := Validate(observations); err != nil {
		return nil, nil, err
	}

	order := make([]int, len(observations))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return observations[a].Date.Compare(observations[b].Date)
	})

	var warnings []MissingFieldWarning
	groups := make(map[YearMonth][]decimal.Decimal)
	for _, i := range order {
		o := observations[i]
		v, ok := o.Fields[field]
		if !ok {
			warnings = append(warnings, MissingFieldWarning{Position: i, Field: field})
			continue
		}
		k := YearMonthOf(o.Date)
		groups[k] = append(groups[k], v)
	}
	slices.SortFunc(warnings, func(a, b MissingFieldWarning) int { return a.Position - b.Position })

	result := make(Aggregated, len(groups))
	for k, values := range groups {
		result[k] = reducer.reduce(values)
	}
	return result, warnings, nil
}
