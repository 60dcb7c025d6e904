package source

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/etnz/stockgrid"
	"github.com/etnz/stockgrid/date"
	"github.com/shopspring/decimal"
)

// DateColumn is the header of the date column of a history CSV.
const DateColumn = "Date"

// DecodeCSV reads a history export: a header row with a Date column and
// numeric columns (Open, High, Low, Close, Adj Close, Volume, Dividends, ...).
// Yahoo exports write "null" for missing values.
//
// Every non-date column becomes a field named after its header. An empty or
// null cell is an absent field. A record with a bad date or a bad number is reported as a
// *stockgrid.MalformedInputError positioned on the record (0-based, header excluded).
func DecodeCSV(r io.Reader) ([]stockgrid.Observation, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading csv header: %w", err)
	}
	dateIdx := -1
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		header[i] = h
		if strings.EqualFold(h, DateColumn) {
			dateIdx = i
		}
	}
	if dateIdx < 0 {
		return nil, fmt.Errorf("csv header %q has no %q column", header, DateColumn)
	}

	var observations []stockgrid.Observation
	for pos := 0; ; pos++ {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return observations, nil
		}
		if err != nil {
			return nil, &stockgrid.MalformedInputError{Position: pos, Err: err}
		}
		on, err := date.Parse(strings.TrimSpace(record[dateIdx]))
		if err != nil {
			return nil, &stockgrid.MalformedInputError{Position: pos, Err: err}
		}
		o := stockgrid.Observation{Date: on, Fields: make(map[string]decimal.Decimal, len(record)-1)}
		for i, cell := range record {
			cell = strings.TrimSpace(cell)
			if i == dateIdx || cell == "" || strings.EqualFold(cell, "null") || header[i] == "" {
				continue
			}
			v, err := decimal.NewFromString(cell)
			if err != nil {
				return nil, &stockgrid.MalformedInputError{Position: pos, Err: fmt.Errorf("column %q: %w", header[i], err)}
			}
			o.Fields[header[i]] = v
		}
		observations = append(observations, o)
	}
}
