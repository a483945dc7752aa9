package date

import (
	"fmt"
	"slices"
	"strings"
)

// Period is a calendar period used to bucket dates: a day, a week starting
// on Monday, a month, a quarter or a year.
type Period int

const (
	Daily Period = iota
	Weekly
	Monthly
	Quarterly
	Yearly
)

// periodNames are the canonical names, indexed by Period.
var periodNames = [...]string{"daily", "weekly", "monthly", "quarterly", "yearly"}

// periodAliases are the other names accepted by ParsePeriod.
var periodAliases = map[string]Period{
	"day": Daily, "d": Daily,
	"week": Weekly, "w": Weekly,
	"month": Monthly, "m": Monthly,
	"quarter": Quarterly, "q": Quarterly,
	"year": Yearly, "y": Yearly,
}

// Periods returns the canonical names of every period, shortest first.
func Periods() []string { return slices.Clone(periodNames[:]) }

// Valid reports whether p is one of the defined periods.
func (p Period) Valid() bool { return p >= Daily && p <= Yearly }

func (p Period) String() string {
	if !p.Valid() {
		return fmt.Sprintf("Period(%d)", int(p))
	}
	return periodNames[p]
}

// ParsePeriod parses a period name, case insensitive. Besides the canonical
// names it accepts "day", "week", "month", "quarter", "year" and their first
// letter.
func ParsePeriod(s string) (Period, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range periodNames {
		if s == name {
			return Period(i), nil
		}
	}
	if p, ok := periodAliases[s]; ok {
		return p, nil
	}
	return Daily, fmt.Errorf("unknown period %q, want one of %s", s, strings.Join(periodNames[:], ", "))
}

// MarshalText writes the canonical name of the period.
func (p Period) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("cannot marshal %s", p)
	}
	return []byte(p.String()), nil
}

// UnmarshalText reads any name accepted by ParsePeriod.
func (p *Period) UnmarshalText(text []byte) error {
	v, err := ParsePeriod(string(text))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// label is the short identifier of the period starting on from, as used in
// reports: "2025-01-02", "2025-W01", "2025-01", "2025-Q1" or "2025".
func (p Period) label(from Date) string {
	switch p {
	case Weekly:
		year, week := from.ISOWeek()
		return fmt.Sprintf("%d-W%02d", year, week)
	case Monthly:
		return from.Format("2006-01")
	case Quarterly:
		return fmt.Sprintf("%d-Q%d", from.Year(), (from.Month()-1)/3+1)
	case Yearly:
		return from.Format("2006")
	default:
		return from.String()
	}
}
