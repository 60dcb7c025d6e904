package stockgrid

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
)

// jsonObjectWriter helps construct a JSON object with a specific field order.
// Its zero value is ready to use.
type jsonObjectWriter struct {
	bytes.Buffer
	err error
}

// Append adds a new key-value pair to the JSON object. The value is marshaled
// to JSON using `json.Marshal`.
func (w *jsonObjectWriter) Append(key string, value any) *jsonObjectWriter {
	if w.err != nil {
		return w
	}

	valBytes, err := json.Marshal(value)
	if err != nil {
		w.err = fmt.Errorf("failed to marshal value for key %q: %w", key, err)
		return w
	}

	w.WriteString(fmt.Sprintf("%q:", key))
	w.Write(valBytes)
	w.WriteString(",")
	return w
}

// Optional appends a key-value pair to the JSON object only if the provided
// value is not its type's zero value.
func (w *jsonObjectWriter) Optional(key string, value any) *jsonObjectWriter {
	if w.err != nil {
		return w
	}
	v := reflect.ValueOf(value)
	if !v.IsValid() || v.IsZero() {
		return w
	}
	return w.Append(key, value)
}

// MarshalJSON finalizes the JSON object construction, wraps the content in
// braces, and returns the complete JSON byte slice.
func (w *jsonObjectWriter) MarshalJSON() ([]byte, error) {
	if w.err != nil {
		return nil, w.err
	}

	content := bytes.TrimSuffix(w.Bytes(), []byte(","))
	final := make([]byte, 0, len(content)+2)
	final = append(final, '{')
	final = append(final, content...)
	final = append(final, '}')

	return final, nil
}

// jsonRow is one row of the JSON export. NoData cells are null.
type jsonRow struct {
	year  int
	cells []*string
}

func (r jsonRow) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("year", r.year)
	w.Append("cells", r.cells)
	return w.MarshalJSON()
}

// JSON returns the grid as a JSON object with formatted values:
//
//	{"reducer":"mean","columns":["Jan",...],"rows":[{"year":2023,"cells":["10.0000",null,...]}]}
func (g *Grid) JSON(decimals int) ([]byte, error) {
	table := g.Table(decimals)
	rows := make([]jsonRow, 0, len(table.Rows))
	for _, record := range table.Rows {
		row := jsonRow{year: g.Rows[len(rows)].Year, cells: make([]*string, 0, len(record)-1)}
		for _, s := range record[1:] {
			if s == "" {
				row.cells = append(row.cells, nil)
				continue
			}
			row.cells = append(row.cells, &s)
		}
		rows = append(rows, row)
	}

	var w jsonObjectWriter
	w.Append("reducer", g.Reducer)
	w.Optional("decimals", decimals)
	w.Append("columns", g.Columns())
	w.Append("rows", rows)
	return w.MarshalJSON()
}

// MarshalJSON implements json.Marshaler with DefaultDecimals.
func (g *Grid) MarshalJSON() ([]byte, error) { return g.JSON(DefaultDecimals) }
