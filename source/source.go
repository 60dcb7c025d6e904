// Package source decodes dated observations from files: history CSV exports,
// EODHD end-of-day and dividend JSON payloads, and parquet observation files.
package source

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/etnz/stockgrid"
)

// Open decodes the observations of path, choosing the decoder by extension.
func Open(path string) ([]stockgrid.Observation, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".parquet":
		return ReadParquet(path)
	case ".csv", ".json":
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		if ext == ".csv" {
			return DecodeCSV(f)
		}
		return DecodeJSON(f)
	default:
		return nil, fmt.Errorf("unsupported observation file %q: want .csv, .json or .parquet", path)
	}
}
