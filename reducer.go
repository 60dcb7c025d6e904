package stockgrid

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Reducer combines the values of one (year, month) group.
type Reducer int

const (
	// Mean is the arithmetic mean, used for prices.
	Mean Reducer = iota
	// Sum is the arithmetic sum, used for dividends.
	Sum
)

func (r Reducer) String() string {
	switch r {
	case Mean:
		return "mean"
	case Sum:
		return "sum"
	default:
		return fmt.Sprintf("Reducer(%d)", int(r))
	}
}

// ParseReducer parses "mean" or "sum" (case insensitive).
func ParseReducer(s string) (Reducer, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mean", "average", "avg":
		return Mean, nil
	case "sum", "total":
		return Sum, nil
	default:
		return Mean, fmt.Errorf("unknown reducer %q want mean or sum", s)
	}
}

// Identity returns the value of an empty group, if the reducer has one.
// Only Sum has an identity (zero); an empty Mean is undefined.
func (r Reducer) Identity() (decimal.Decimal, bool) {
	if r == Sum {
		return decimal.Zero, true
	}
	return decimal.Decimal{}, false
}

// reduce applies the reducer to a non empty list of values, in order.
func (r Reducer) reduce(values []decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	if r == Mean {
		return total.Div(decimal.NewFromInt(int64(len(values))))
	}
	return total
}

// MarshalText implements encoding.TextMarshaler.
func (r Reducer) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Reducer) UnmarshalText(text []byte) error {
	v, err := ParseReducer(string(text))
	if err != nil {
		return err
	}
	*r = v
	return nil
}
