package date

import (
	"slices"
	"testing"
	"time"
)

func TestNewRange(t *testing.T) {
	testCases := []struct {
		name   string
		in     Date
		period Period
		want   Range
	}{
		{"day", New(2025, time.September, 8), Daily, Range{New(2025, time.September, 8), New(2025, time.September, 8)}},
		{"wednesday", New(2025, time.September, 10), Weekly, Range{New(2025, time.September, 8), New(2025, time.September, 14)}},
		{"sunday", New(2025, time.September, 14), Weekly, Range{New(2025, time.September, 8), New(2025, time.September, 14)}},
		{"leap february", New(2024, time.February, 15), Monthly, Range{New(2024, time.February, 1), New(2024, time.February, 29)}},
		{"second quarter", New(2025, time.May, 20), Quarterly, Range{New(2025, time.April, 1), New(2025, time.June, 30)}},
		{"year", New(2025, time.September, 8), Yearly, Range{New(2025, time.January, 1), New(2025, time.December, 31)}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NewRange(tc.in, tc.period); got != tc.want {
				t.Errorf("NewRange(%v, %v) = %v, want %v", tc.in, tc.period, got, tc.want)
			}
		})
	}
}

func TestRange_Identifier(t *testing.T) {
	testCases := []struct {
		in   Range
		want string
	}{
		{NewRange(New(2025, time.September, 8), Daily), "2025-09-08"},
		{NewRange(New(2025, time.September, 8), Weekly), "2025-W37"},
		{NewRange(New(2025, time.January, 6), Weekly), "2025-W02"},
		{NewRange(New(2024, time.December, 31), Weekly), "2025-W01"},
		{NewRange(New(2025, time.September, 1), Monthly), "2025-09"},
		{NewRange(New(2025, time.July, 1), Quarterly), "2025-Q3"},
		{NewRange(New(2025, time.January, 1), Yearly), "2025"},
		{Range{From: New(2025, time.September, 2), To: New(2025, time.September, 10)}, "2025-09-02_2025-09-10"},
		{Range{From: New(2025, time.January, 1), To: New(2026, time.December, 31)}, "2025-01-01_2026-12-31"},
	}

	for _, tc := range testCases {
		t.Run(tc.want, func(t *testing.T) {
			if got := tc.in.Identifier(); got != tc.want {
				t.Errorf("Identifier() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestRange_Period(t *testing.T) {
	if p, ok := NewRange(New(2025, time.February, 3), Monthly).Period(); !ok || p != Monthly {
		t.Errorf("Period() = %v, %v, want %v, true", p, ok, Monthly)
	}
	// a month starting on a Monday is not a week.
	if p, ok := NewRange(New(2025, time.September, 1), Monthly).Period(); !ok || p != Monthly {
		t.Errorf("Period() = %v, %v, want %v, true", p, ok, Monthly)
	}
	if _, ok := (Range{From: New(2025, time.March, 3), To: New(2025, time.March, 4)}).Period(); ok {
		t.Error("Period() of a two days range is a period, want none")
	}
}

func TestRange_Periods(t *testing.T) {
	r := Range{From: New(2025, time.January, 15), To: New(2025, time.March, 2)}

	var got []string
	for p := range r.Periods(Monthly) {
		got = append(got, p.Identifier())
	}
	want := []string{"2025-01", "2025-02", "2025-03"}
	if !slices.Equal(got, want) {
		t.Errorf("Periods(Monthly) = %v, want %v", got, want)
	}
}

func TestRange_PeriodsSingleDay(t *testing.T) {
	d := New(2025, time.May, 5)
	r := Range{From: d, To: d}

	var got []Range
	for p := range r.Periods(Daily) {
		got = append(got, p)
	}
	if len(got) != 1 || got[0] != r {
		t.Errorf("Periods(Daily) = %v, want [%v]", got, r)
	}
}

func TestRange_PeriodsStopsEarly(t *testing.T) {
	r := NewRange(New(2025, time.January, 1), Yearly)
	n := 0
	for range r.Periods(Weekly) {
		n++
		if n == 3 {
			break
		}
	}
	if n != 3 {
		t.Errorf("Periods(Weekly) yielded %d ranges before break, want 3", n)
	}
}
