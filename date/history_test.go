package date

import "testing"

func TestAppend(t *testing.T) {
	h := new(History[string])
	d1, v1 := New(2025, 07, 01), "25 Jul 1"
	d2, v2 := New(2024, 07, 01), "24 Jul 1"

	// Appending two values in reverse order must keep the history chronological.

	if h.Len() != 0 {
		t.Errorf("History.Len() = %v want 0", h.Len())
	}

	h.Append(d1, v1)
	if h.Len() != 1 {
		t.Errorf("Append(d1, v1).Len() = %v want 1", h.Len())
	}

	h.Append(d2, v2)
	if h.Len() != 2 {
		t.Errorf("Append(d2, v2).Len() = %v want 2", h.Len())
	}

	if day, value := h.First(); day != d2 || value != v2 {
		t.Errorf("First() = %v, %q want %v, %q", day, value, d2, v2)
	}
	if day, value := h.Latest(); day != d1 || value != v1 {
		t.Errorf("Latest() = %v, %q want %v, %q", day, value, d1, v1)
	}

	h.Append(d1, "overwritten")
	if h.Len() != 2 {
		t.Errorf("Append(d1, ...).Len() = %v want 2", h.Len())
	}
	if got, ok := h.Get(d1); !ok || got != "overwritten" {
		t.Errorf("Get(d1) = %q, %v want %q, true", got, ok, "overwritten")
	}
}

func TestEmptyHistory(t *testing.T) {
	var h History[float64]
	if day, value := h.Latest(); day != (Date{}) || value != 0 {
		t.Errorf("Latest() on empty history = %v, %v want zero values", day, value)
	}
	if _, ok := h.Get(New(2024, 1, 1)); ok {
		t.Error("Get() on empty history returned ok")
	}
	for range h.Values() {
		t.Error("Values() on empty history yielded a value")
	}
}
