package lots

import (
	"fmt"

	"github.com/etnz/lots/date"
)

// PeriodRealised is the realised gain or loss of a position over a period.
type PeriodRealised struct {
	Range    date.Range
	Matches  int // number of disposals (sell to lot matches), not of trades
	Realised Money
}

// RealisedByPeriod buckets the disposals of pos by the period containing
// their sell date, from the first to the last bucket. Periods without any
// disposal are included with a zero amount.
//
// Disposal dates must be parseable by [date.Parse].
func RealisedByPeriod(pos Position, period date.Period) ([]PeriodRealised, error) {
	if !period.Valid() {
		return nil, fmt.Errorf("invalid period %s", period)
	}
	if len(pos.Disposals) == 0 {
		return nil, nil
	}
	cur := pos.Currency()

	type bucket struct {
		matches  int
		realised Money
	}
	buckets := make(map[date.Date]*bucket)
	var first, last date.Date
	for i, d := range pos.Disposals {
		on, err := date.Parse(d.Date)
		if err != nil {
			return nil, fmt.Errorf("disposal #%d: %w", i+1, err)
		}
		start := on.StartOf(period)
		b, ok := buckets[start]
		if !ok {
			b = &bucket{realised: M(0, cur)}
			buckets[start] = b
		}
		b.matches++
		b.realised = b.realised.Add(d.Gain())

		if first.IsZero() || start.Before(first) {
			first = start
		}
		if last.IsZero() || start.After(last) {
			last = start
		}
	}

	var res []PeriodRealised
	for r := range (date.Range{From: first, To: last}).Periods(period) {
		row := PeriodRealised{Range: r, Realised: M(0, cur)}
		if b, ok := buckets[r.From]; ok {
			row.Matches = b.matches
			row.Realised = b.realised
		}
		res = append(res, row)
	}
	return res, nil
}

// MarshalJSON writes the period with its identifier.
func (p PeriodRealised) MarshalJSON() ([]byte, error) {
	var o jsonObject
	o.text("period", p.Range.Identifier())
	o.text("from", p.Range.From.String())
	o.text("to", p.Range.To.String())
	o.count("matches", p.Matches)
	o.optText("currency", p.Realised.cur)
	o.number("realised", p.Realised.value)
	return o.bytes()
}
