package source

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/etnz/stockgrid"
	"github.com/etnz/stockgrid/date"
	"github.com/shopspring/decimal"
)

// eodhdRow is one element of an EODHD payload. End-of-day rows look like
//
//	{"date":"2024-02-13","open":675.066,"high":684.219,"low":648.659,"close":668.445,"adjusted_close":67.705,"volume":0}
//
// and dividend rows like
//
//	{"date":"2024-02-13","value":0.035,"currency":"MYR"}
type eodhdRow struct {
	Date          string           `json:"date"`
	Open          *decimal.Decimal `json:"open"`
	High          *decimal.Decimal `json:"high"`
	Low           *decimal.Decimal `json:"low"`
	Close         *decimal.Decimal `json:"close"`
	AdjustedClose *decimal.Decimal `json:"adjusted_close"`
	Volume        *decimal.Decimal `json:"volume"`
	Value         *decimal.Decimal `json:"value"`
	Currency      string           `json:"currency"`
}

// dividend reports whether the row is a dividend row.
func (r eodhdRow) dividend() bool { return r.Value != nil && r.Close == nil }

// DecodeJSON reads an EODHD JSON array of end-of-day rows, dividend rows, or both.
// Dividend values are decoded as the Dividends field.
func DecodeJSON(r io.Reader) ([]stockgrid.Observation, error) {
	var rows []eodhdRow
	if err := json.NewDecoder(r).Decode(&rows); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("reading eodhd payload: %w", err)
	}

	observations := make([]stockgrid.Observation, 0, len(rows))
	for pos, row := range rows {
		on, err := date.Parse(row.Date)
		if err != nil {
			return nil, &stockgrid.MalformedInputError{Position: pos, Err: err}
		}
		fields := make(map[string]decimal.Decimal)
		set := func(name string, v *decimal.Decimal) {
			if v != nil {
				fields[name] = *v
			}
		}
		if row.dividend() {
			set(stockgrid.FieldDividends, row.Value)
		} else {
			set(stockgrid.FieldOpen, row.Open)
			set(stockgrid.FieldHigh, row.High)
			set(stockgrid.FieldLow, row.Low)
			set(stockgrid.FieldClose, row.Close)
			set(stockgrid.FieldAdjustedClose, row.AdjustedClose)
			set(stockgrid.FieldVolume, row.Volume)
		}
		observations = append(observations, stockgrid.Observation{Date: on, Fields: fields})
	}
	return observations, nil
}
