package stockgrid

import (
	"testing"

	"github.com/etnz/stockgrid/date"
	"github.com/shopspring/decimal"
)

// obs builds an observation from string values, to keep decimals exact.
func obs(on string, kv ...string) Observation {
	if len(kv)%2 != 0 {
		panic("obs: odd number of key values")
	}
	fields := make(map[string]decimal.Decimal)
	for i := 0; i < len(kv); i += 2 {
		fields[kv[i]] = decimal.RequireFromString(kv[i+1])
	}
	return Observation{Date: date.MustParse(on), Fields: fields}
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// mustRun is Run that fails the test on error.
func mustRun(t *testing.T, observations []Observation, spec AggregationSpec) *Report {
	t.Helper()
	r, err := Run(observations, spec)
	if err != nil {
		t.Fatalf("Run() unexpected error: %v", err)
	}
	return r
}
