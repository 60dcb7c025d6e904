package date

import "fmt"

// Range represents a range of dates.
type Range struct{ From, To Date }

// NewRange creates a new date range. If 'from' is after 'to', they are swapped.
func NewRange(from, to Date) Range {
	if from.After(to) {
		from, to = to, from
	}
	return Range{From: from, To: to}
}

// Years returns the range covering whole calendar years, from January 1st of
// 'from' to December 31st of 'to'.
func Years(from, to int) Range {
	if from > to {
		from, to = to, from
	}
	return NewRange(New(from, 1, 1).StartOf(Yearly), New(to, 1, 1).EndOf(Yearly))
}

// Contains return true date is included in the range (boundaries included)
func (r Range) Contains(date Date) bool { return (!date.Before(r.From) && !date.After(r.To)) }

// String returns "from..to".
func (r Range) String() string { return fmt.Sprintf("%s..%s", r.From, r.To) }
