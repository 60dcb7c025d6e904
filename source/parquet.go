package source

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/etnz/stockgrid"
	"github.com/etnz/stockgrid/date"
	"github.com/parquet-go/parquet-go"
	"github.com/shopspring/decimal"
)

// ObservationRecord is the parquet schema of observation files.
// Absent fields are null.
type ObservationRecord struct {
	Date      string   `parquet:"date"`
	Open      *float64 `parquet:"open,optional"`
	High      *float64 `parquet:"high,optional"`
	Low       *float64 `parquet:"low,optional"`
	Close     *float64 `parquet:"close,optional"`
	Volume    *float64 `parquet:"volume,optional"`
	Dividends *float64 `parquet:"dividends,optional"`
}

// GridRecord is the parquet schema of a grid export: one record per (year, month).
// NoData cells have a null value.
type GridRecord struct {
	Year    int32    `parquet:"year"`
	Month   int32    `parquet:"month"`
	Reducer string   `parquet:"reducer"`
	Value   *float64 `parquet:"value,optional"`
}

// columns maps the nullable columns of ObservationRecord to field names.
func (r *ObservationRecord) columns() []struct {
	field string
	value **float64
} {
	return []struct {
		field string
		value **float64
	}{
		{stockgrid.FieldOpen, &r.Open},
		{stockgrid.FieldHigh, &r.High},
		{stockgrid.FieldLow, &r.Low},
		{stockgrid.FieldClose, &r.Close},
		{stockgrid.FieldVolume, &r.Volume},
		{stockgrid.FieldDividends, &r.Dividends},
	}
}

// ReadParquet reads an observation file.
func ReadParquet(path string) ([]stockgrid.Observation, error) {
	records, err := parquet.ReadFile[ObservationRecord](path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	observations := make([]stockgrid.Observation, 0, len(records))
	for pos, r := range records {
		on, err := date.Parse(r.Date)
		if err != nil {
			return nil, &stockgrid.MalformedInputError{Position: pos, Err: err}
		}
		fields := make(map[string]decimal.Decimal)
		for _, c := range r.columns() {
			if *c.value != nil {
				fields[c.field] = decimal.NewFromFloat(**c.value)
			}
		}
		observations = append(observations, stockgrid.Observation{Date: on, Fields: fields})
	}
	return observations, nil
}

// WriteParquet writes observations to path. Fields outside of the file schema
// are not written.
func WriteParquet(path string, observations []stockgrid.Observation) error {
	records := make([]ObservationRecord, 0, len(observations))
	for _, o := range observations {
		r := ObservationRecord{Date: o.Date.String()}
		for _, c := range r.columns() {
			if v, ok := o.Get(c.field); ok {
				f := v.InexactFloat64()
				*c.value = &f
			}
		}
		records = append(records, r)
	}
	return writeParquetFile(path, records)
}

// WriteGridParquet exports the twelve months of every grid row, most recent year first.
func WriteGridParquet(path string, g *stockgrid.Grid) error {
	records := make([]GridRecord, 0, 12*len(g.Rows))
	for _, row := range g.Rows {
		for i, c := range row.Months {
			r := GridRecord{Year: int32(row.Year), Month: int32(i + 1), Reducer: g.Reducer.String()}
			if c.Valid {
				f := c.Value.InexactFloat64()
				r.Value = &f
			}
			records = append(records, r)
		}
	}
	return writeParquetFile(path, records)
}

// ReadGridParquet reads back the records of a grid export.
func ReadGridParquet(path string) ([]GridRecord, error) {
	return parquet.ReadFile[GridRecord](path)
}

func writeParquetFile[T any](path string, records []T) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return parquet.WriteFile(path, records)
}
