package lots

import (
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
)

// Trade is a single execution for one instrument.
//
// A positive Quantity is a buy, a negative one is a sell. Date is an opaque
// token: trades are processed in the order they are given, never sorted.
type Trade struct {
	ID       string // optional, unique identifier of the execution
	Date     string
	Symbol   string // optional, informational
	Quantity Quantity
	Price    Money // unit price
}

// NewTrade returns a trade with no currency.
func NewTrade(on string, quantity, price float64) Trade {
	return Trade{Date: on, Quantity: Q(quantity), Price: M(price, "")}
}

// NewBuy returns a buy of quantity units at price in currency cur.
func NewBuy(on, symbol string, quantity, price float64, cur string) Trade {
	return Trade{Date: on, Symbol: symbol, Quantity: Q(quantity).Abs(), Price: M(price, cur)}
}

// NewSell returns a sell of quantity units at price in currency cur.
func NewSell(on, symbol string, quantity, price float64, cur string) Trade {
	return Trade{Date: on, Symbol: symbol, Quantity: Q(quantity).Abs().Neg(), Price: M(price, cur)}
}

// Side returns the direction of the trade.
func (t Trade) Side() Side {
	switch {
	case t.Quantity.IsPositive():
		return Buy
	case t.Quantity.IsNegative():
		return Sell
	default:
		return None
	}
}

// Amount returns the signed cash value of the trade (quantity times price).
func (t Trade) Amount() Money { return t.Price.Mul(t.Quantity) }

// withID returns a copy of the trade with a fresh ID if it had none.
func (t Trade) withID() Trade {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return t
}

// SplitBySymbol groups trades by symbol, keeping the input order within each
// group. It also returns the sorted list of symbols.
func SplitBySymbol(trades []Trade) (map[string][]Trade, []string) {
	groups := make(map[string][]Trade)
	var symbols []string
	for _, t := range trades {
		if _, ok := groups[t.Symbol]; !ok {
			symbols = append(symbols, t.Symbol)
		}
		groups[t.Symbol] = append(groups[t.Symbol], t)
	}
	slices.Sort(symbols)
	return groups, symbols
}

// WithCurrency returns a copy of trades where prices without currency are
// expressed in cur.
func WithCurrency(trades []Trade, cur string) []Trade {
	res := make([]Trade, len(trades))
	for i, t := range trades {
		if t.Price.Currency() == "" {
			t.Price = t.Price.In(cur)
		}
		res[i] = t
	}
	return res
}

// SelectSymbol returns the trades of symbol, and the symbol itself. An empty
// symbol selects every trade if they share the same symbol, and fails
// otherwise.
func SelectSymbol(trades []Trade, symbol string) ([]Trade, string, error) {
	groups, symbols := SplitBySymbol(trades)
	if symbol == "" {
		switch len(symbols) {
		case 0:
			return nil, "", nil
		case 1:
			return trades, symbols[0], nil
		default:
			return nil, "", fmt.Errorf("trades have several symbols, choose one of %s", strings.Join(symbols, ", "))
		}
	}
	selected, ok := groups[symbol]
	if !ok {
		return nil, "", fmt.Errorf("unknown symbol %q, known symbols are %s", symbol, strings.Join(symbols, ", "))
	}
	return selected, symbol, nil
}
