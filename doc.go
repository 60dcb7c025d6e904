// Package stockgrid turns dated market observations into Year x Month grids.
//
// A grid is built in a few pure steps:
//   - FilterByYearRange keeps the observations of an inclusive range of years.
//   - Aggregate groups the values of one field by (year, month) and reduces each
//     group with a Reducer: Mean for prices, Sum for dividends.
//   - ToGrid pivots the groups into rows of years (most recent first) and the
//     twelve month columns, plus a Total column for summed grids.
//   - Highlight and HighlightNonZero tag cells for presentation.
//   - FormatValue, Table and ToDelimitedText produce the exported text.
//
// Months without observations hold the NoData cell, which is never confused
// with an observed zero. Run chains all the steps for an AggregationSpec.
//
// All functions are free of shared state and never modify their input, so they
// are safe for concurrent use.
package stockgrid
