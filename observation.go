package stockgrid

import (
	"time"

	"github.com/etnz/stockgrid/date"
	"github.com/shopspring/decimal"
)

// Well known observation fields.
const (
	FieldOpen          = "Open"
	FieldHigh          = "High"
	FieldLow           = "Low"
	FieldClose         = "Close"
	FieldAdjustedClose = "Adj Close"
	FieldVolume        = "Volume"
	FieldDividends     = "Dividends"
	// FieldAverage is derived from High and Low, see WithAverage.
	FieldAverage = "Average"
)

// Observation is one dated set of numeric values, typically a trading day.
type Observation struct {
	Date   date.Date
	Fields map[string]decimal.Decimal
}

// NewObservation returns an Observation on 'on' with a copy of 'fields'.
func NewObservation(on date.Date, fields map[string]decimal.Decimal) Observation {
	o := Observation{Date: on, Fields: make(map[string]decimal.Decimal, len(fields))}
	for k, v := range fields {
		o.Fields[k] = v
	}
	return o
}

// Get returns the value of field and whether the observation has it.
func (o Observation) Get(field string) (decimal.Decimal, bool) {
	v, ok := o.Fields[field]
	return v, ok
}

// YearMonth is the calendar month an observation is grouped into.
type YearMonth struct {
	Year  int
	Month time.Month
}

// YearMonthOf returns the calendar month of a date.
func YearMonthOf(on date.Date) YearMonth { return YearMonth{Year: on.Year(), Month: on.Month()} }

var two = decimal.NewFromInt(2)

// WithAverage returns a copy of observations where every observation holding
// both High and Low also holds Average = (High + Low) / 2.
func WithAverage(observations []Observation) []Observation {
	out := make([]Observation, len(observations))
	for i, o := range observations {
		out[i] = NewObservation(o.Date, o.Fields)
		high, okh := o.Fields[FieldHigh]
		low, okl := o.Fields[FieldLow]
		if okh && okl {
			out[i].Fields[FieldAverage] = high.Add(low).Div(two)
		}
	}
	return out
}

// Years returns the smallest range covering the years of all valid observations.
// It returns false if there is none.
func Years(observations []Observation) (YearRange, bool) {
	var r YearRange
	found := false
	for _, o := range observations {
		if !o.Date.Valid() {
			continue
		}
		y := o.Date.Year()
		if !found {
			r, found = YearRange{Min: y, Max: y}, true
			continue
		}
		r.Min, r.Max = min(r.Min, y), max(r.Max, y)
	}
	return r, found
}
