package lots

import (
	"errors"
	"fmt"
)

var (
	ErrZeroQuantity     = errors.New("zero quantity")
	ErrNegativePrice    = errors.New("negative price")
	ErrCurrencyMismatch = errors.New("currency mismatch")
	ErrSymbolMismatch   = errors.New("symbol mismatch")
	ErrOversell         = errors.New("sell exceeds open quantity")
)

// Validate checks that trades form a meaningful history for a single
// instrument and returns all the failures found, joined.
//
// FIFO does not call Validate: it is meant for callers building the trade
// sequence (importers, command line, server).
func Validate(trades []Trade) error {
	var errs []error
	var cur, symbol string
	for i, t := range trades {
		if t.Quantity.IsZero() {
			errs = append(errs, tradeError(i, t, ErrZeroQuantity))
		}
		if t.Price.IsNegative() {
			errs = append(errs, tradeError(i, t, fmt.Errorf("%w: %s", ErrNegativePrice, t.Price)))
		}
		if c := t.Price.Currency(); c != "" {
			switch {
			case cur == "":
				cur = c
			case c != cur:
				errs = append(errs, tradeError(i, t, fmt.Errorf("%w: %q, previous trades use %q", ErrCurrencyMismatch, c, cur)))
			}
		}
		if s := t.Symbol; s != "" {
			switch {
			case symbol == "":
				symbol = s
			case s != symbol:
				errs = append(errs, tradeError(i, t, fmt.Errorf("%w: %q, previous trades are for %q", ErrSymbolMismatch, s, symbol)))
			}
		}
	}
	return errors.Join(errs...)
}

// CheckOversell returns an error wrapping ErrOversell if some sells in
// trades could not be matched against open lots.
func CheckOversell(trades []Trade) error {
	pos := FIFO(trades)
	if pos.Oversold.IsZero() {
		return nil
	}
	return fmt.Errorf("%w: %s units sold without matching lot", ErrOversell, pos.Oversold)
}

func tradeError(i int, t Trade, err error) error {
	if t.Date == "" {
		return fmt.Errorf("trade #%d: %w", i+1, err)
	}
	return fmt.Errorf("trade #%d on %s: %w", i+1, t.Date, err)
}
