package stockgrid

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewYearRange(t *testing.T) {
	if got := NewYearRange(2024, 2019); got != (YearRange{2019, 2024}) {
		t.Errorf("NewYearRange(2024, 2019) = %v, want 2019 - 2024", got)
	}
	if got := NewYearRange(2019, 2024).String(); got != "2019 - 2024" {
		t.Errorf("String() = %q", got)
	}
}

func TestFilterByYearRange(t *testing.T) {
	input := []Observation{
		obs("2018-12-31", "Close", "1"),
		obs("2019-01-01", "Close", "2"),
		obs("2021-12-31", "Close", "3"),
		obs("2020-06-15", "Close", "4"),
		obs("2022-01-01", "Close", "5"),
	}
	r := &YearRange{2019, 2021}

	got := FilterByYearRange(input, r)
	want := []Observation{input[1], input[2], input[3]}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("FilterByYearRange() mismatch (-want +got):\n%s", diff)
	}

	again := FilterByYearRange(got, r)
	if diff := cmp.Diff(got, again); diff != "" {
		t.Errorf("FilterByYearRange() is not idempotent (-once +twice):\n%s", diff)
	}

	if got := FilterByYearRange(input, nil); len(got) != len(input) {
		t.Errorf("FilterByYearRange(nil range) returned %d observations, want %d", len(got), len(input))
	}
	if got := FilterByYearRange(nil, r); len(got) != 0 {
		t.Errorf("FilterByYearRange(empty) = %v, want empty", got)
	}
}
