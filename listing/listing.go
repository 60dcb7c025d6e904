// Package listing holds the reference table of listed companies: their
// security code, sector and market type.
package listing

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// All selects every market type or sector in a filter.
const All = "All"

// DefaultSuffix is the exchange suffix of Bursa Malaysia symbols.
const DefaultSuffix = ".KL"

// Company is one row of the listing.
type Company struct {
	Name       string
	Code       string
	Sector     string
	MarketType string
}

// Symbol returns the provider symbol of the company: its code followed by suffix.
func (c Company) Symbol(suffix string) string { return c.Code + suffix }

// Listing is an ordered list of companies.
type Listing struct {
	companies []Company
}

// required columns of a listing file.
const (
	colName       = "Company_Name"
	colCode       = "Security_Code"
	colSector     = "Sector"
	colMarketType = "Market_Type"
)

// Decode reads a listing CSV. Columns are found by name, extra columns are ignored.
func Decode(r io.Reader) (*Listing, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading listing header: %w", err)
	}
	index := make(map[string]int)
	for i, h := range header {
		index[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}
	var missing []string
	for _, c := range []string{colName, colCode, colSector, colMarketType} {
		if _, ok := index[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("listing is missing column(s) %s", strings.Join(missing, ", "))
	}

	l := new(Listing)
	for line := 2; ; line++ {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return l, nil
		}
		if err != nil {
			return nil, fmt.Errorf("reading listing: %w", err)
		}
		get := func(col string) string { return strings.TrimSpace(record[index[col]]) }
		c := Company{Name: get(colName), Code: get(colCode), Sector: get(colSector), MarketType: get(colMarketType)}
		if c.Name == "" || c.Code == "" {
			return nil, fmt.Errorf("listing line %d: company name and security code are required", line)
		}
		l.companies = append(l.companies, c)
	}
}

// Load reads the listing file at path.
func Load(path string) (*Listing, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}

// Len returns the number of companies.
func (l *Listing) Len() int { return len(l.companies) }

// Companies returns the companies in file order.
func (l *Listing) Companies() []Company { return append([]Company(nil), l.companies...) }

// matches reports whether v is selected by filter; All and "" select everything.
func matches(filter, v string) bool { return filter == "" || filter == All || filter == v }

// Filter returns the companies of marketType and sector, in file order.
func (l *Listing) Filter(marketType, sector string) *Listing {
	out := new(Listing)
	for _, c := range l.companies {
		if matches(marketType, c.MarketType) && matches(sector, c.Sector) {
			out.companies = append(out.companies, c)
		}
	}
	return out
}

// unique returns the distinct non empty values of f in first-seen order.
func (l *Listing) unique(f func(Company) string) []string {
	seen := make(map[string]bool)
	var values []string
	for _, c := range l.companies {
		v := f(c)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		values = append(values, v)
	}
	return values
}

// MarketTypes returns the distinct market types.
func (l *Listing) MarketTypes() []string {
	return l.unique(func(c Company) string { return c.MarketType })
}

// Sectors returns the distinct sectors of marketType.
func (l *Listing) Sectors(marketType string) []string {
	return l.Filter(marketType, All).unique(func(c Company) string { return c.Sector })
}

// Names returns the distinct company names.
func (l *Listing) Names() []string {
	return l.unique(func(c Company) string { return c.Name })
}

// Codes returns the distinct security codes.
func (l *Listing) Codes() []string {
	return l.unique(func(c Company) string { return c.Code })
}

// ByName returns the first company named name.
func (l *Listing) ByName(name string) (Company, bool) {
	for _, c := range l.companies {
		if c.Name == name {
			return c, true
		}
	}
	return Company{}, false
}

// ByCode returns the first company with the security code.
func (l *Listing) ByCode(code string) (Company, bool) {
	for _, c := range l.companies {
		if c.Code == code {
			return c, true
		}
	}
	return Company{}, false
}
