package date

import (
	"iter"
)

// Range is an inclusive range of dates.
type Range struct{ From, To Date }

// NewRange returns the period containing d.
func NewRange(d Date, period Period) Range {
	return Range{From: d.StartOf(period), To: d.EndOf(period)}
}

// Next returns the range of the same period that follows r.
func (r Range) Next(period Period) Range { return NewRange(r.To.Add(1), period) }

// Periods returns an iterator over the consecutive ranges of period covering
// r, from the one containing r.From to the one containing r.To.
func (r Range) Periods(period Period) iter.Seq[Range] {
	return func(yield func(Range) bool) {
		for p := NewRange(r.From, period); !p.From.After(r.To); p = p.Next(period) {
			if !yield(p) {
				return
			}
		}
	}
}

// Period returns the period r spans exactly, if any. A single day is Daily.
func (r Range) Period() (Period, bool) {
	for _, p := range []Period{Daily, Weekly, Monthly, Quarterly, Yearly} {
		if NewRange(r.From, p) == r {
			return p, true
		}
	}
	return Daily, false
}

// Identifier is the label of the period r spans, or "from_to" when r is not
// a period.
func (r Range) Identifier() string {
	if p, ok := r.Period(); ok {
		return p.label(r.From)
	}
	return r.From.String() + "_" + r.To.String()
}
